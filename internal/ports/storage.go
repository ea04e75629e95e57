// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

import (
	"time"

	"github.com/corey/faq/internal/domain/kb"
)

// KBStore persists named knowledge base snapshots to durable storage.
// Each name gets its own namespace. Concurrent reads are safe; writes are
// serialized by the adapter.
//
// Crash safety: SaveKB must be transactional. A crash mid-write must not
// corrupt a previously committed snapshot.
type KBStore interface {
	// SaveKB persists the entries and suggestions of k under name, in
	// declaration order. source records where k came from (a file path or
	// "default"). Overwrites any prior snapshot with that name.
	SaveKB(name, source string, k *kb.KB) error

	// LoadKB retrieves and re-validates the snapshot stored under name.
	// Returns nil, nil if no snapshot exists.
	LoadKB(name string) (*kb.KB, error)

	// ListKBs describes every stored snapshot, sorted by name.
	ListKBs() ([]SnapshotInfo, error)

	// DeleteKB removes a snapshot.
	// Idempotent: deleting a nonexistent snapshot is not an error.
	DeleteKB(name string) error
}

// SnapshotInfo describes a stored knowledge base snapshot.
type SnapshotInfo struct {
	Name    string    `json:"name"`
	Entries int       `json:"entries"`
	SavedAt time.Time `json:"saved_at"`
	Source  string    `json:"source,omitempty"` // file the snapshot was imported from, if any
}
