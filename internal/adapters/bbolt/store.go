// Package bbolt implements the ports.KBStore interface using bbolt (embedded B+ tree).
// Each named knowledge base gets its own top-level bucket holding a "meta" record and
// an "entries" sub-bucket of JSON-serialized entries. Writes are transactional: a
// crash mid-write cannot corrupt a previously committed snapshot.
package bbolt

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/corey/faq/internal/domain/kb"
	"github.com/corey/faq/internal/ports"
)

// Bucket keys
var (
	bucketEntries = []byte("entries")
	keyMeta       = []byte("meta")
)

// ErrLocked is returned by NewStore when another process holds the database.
// The daemon keeps its snapshot store open for its whole lifetime.
var ErrLocked = errors.New("snapshot store is locked")

// Store implements ports.KBStore backed by bbolt.
type Store struct {
	db  *bolt.DB
	now func() time.Time
}

var _ ports.KBStore = (*Store)(nil)

// NewStore opens (or creates) a bbolt database at the given path.
// A database held open by another process fails after one second rather
// than blocking forever.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if errors.Is(err, bolt.ErrTimeout) {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.db.Path()
}

// SaveKB replaces the snapshot stored under name with the contents of k.
func (s *Store) SaveKB(name, source string, k *kb.KB) error {
	if name == "" {
		return fmt.Errorf("empty snapshot name")
	}
	if k == nil {
		return fmt.Errorf("nil knowledge base")
	}

	entries := k.Entries()
	encoded := make([][]byte, len(entries))
	for i, e := range entries {
		data, err := encodeEntry(e)
		if err != nil {
			return err
		}
		encoded[i] = data
	}
	meta, err := json.Marshal(snapshotMeta{
		Entries:     len(entries),
		SavedAt:     s.now().UTC(),
		Source:      source,
		Suggestions: k.Suggestions(),
	})
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(name)); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		b, err := tx.CreateBucket([]byte(name))
		if err != nil {
			return err
		}
		eb, err := b.CreateBucket(bucketEntries)
		if err != nil {
			return err
		}
		for i, data := range encoded {
			if err := eb.Put(ordinalKey(i), data); err != nil {
				return err
			}
		}
		return b.Put(keyMeta, meta)
	})
}

// LoadKB rebuilds the snapshot stored under name, re-validating it through
// kb.New. Returns nil, nil if no snapshot exists.
func (s *Store) LoadKB(name string) (*kb.KB, error) {
	var (
		metaJSON []byte
		raw      [][]byte
		found    bool
	)

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(name))
		if b == nil {
			return nil
		}
		found = true
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := b.Get(keyMeta); v != nil {
			metaJSON = append([]byte(nil), v...)
		}
		eb := b.Bucket(bucketEntries)
		if eb == nil {
			return nil
		}
		return eb.ForEach(func(k, v []byte) error {
			i, err := parseOrdinalKey(k)
			if err != nil {
				return err
			}
			if i != len(raw) {
				return fmt.Errorf("entry key %q out of sequence (want %d)", k, len(raw))
			}
			raw = append(raw, append([]byte(nil), v...))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	if !found {
		return nil, nil
	}

	var meta snapshotMeta
	if metaJSON != nil {
		if meta, err = decodeMeta(metaJSON); err != nil {
			return nil, fmt.Errorf("load %q: %w", name, err)
		}
		if meta.Entries != len(raw) {
			return nil, fmt.Errorf("load %q: meta records %d entries, found %d", name, meta.Entries, len(raw))
		}
	}

	entries := make([]kb.KnowledgeEntry, len(raw))
	for i, v := range raw {
		if entries[i], err = decodeEntry(v); err != nil {
			return nil, fmt.Errorf("load %q: %w", name, err)
		}
	}

	k, err := kb.New(entries, kb.WithSuggestions(meta.Suggestions...))
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	return k, nil
}

// ListKBs describes every stored snapshot, sorted by name.
func (s *Store) ListKBs() ([]ports.SnapshotInfo, error) {
	var out []ports.SnapshotInfo
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, b *bolt.Bucket) error {
			info := ports.SnapshotInfo{Name: string(name)}
			if v := b.Get(keyMeta); v != nil {
				meta, err := decodeMeta(v)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				info.Entries = meta.Entries
				info.SavedAt = meta.SavedAt
				info.Source = meta.Source
			}
			out = append(out, info)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteKB removes a snapshot.
// Idempotent: deleting a nonexistent snapshot is not an error.
func (s *Store) DeleteKB(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(name)); errors.Is(err, bolt.ErrBucketNotFound) {
			return nil // idempotent
		} else {
			return err
		}
	})
}
