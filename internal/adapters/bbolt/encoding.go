// Record encoding for knowledge base snapshots.
//
// Layout inside a snapshot bucket:
//
//	meta                 JSON snapshotMeta
//	entries/  00000000   JSON kb.KnowledgeEntry
//	          00000001   ...
//
// Entry keys are fixed-width decimal ordinals so that bbolt's byte-ordered
// cursor walks entries in declaration order.
package bbolt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/corey/faq/internal/domain/kb"
)

// ordinalWidth bounds a snapshot at 10^8 entries.
const ordinalWidth = 8

// snapshotMeta is stored under keyMeta.
type snapshotMeta struct {
	Entries     int       `json:"entries"`
	SavedAt     time.Time `json:"saved_at"`
	Source      string    `json:"source,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
}

func ordinalKey(i int) []byte {
	return []byte(fmt.Sprintf("%0*d", ordinalWidth, i))
}

func parseOrdinalKey(k []byte) (int, error) {
	if len(k) != ordinalWidth {
		return 0, fmt.Errorf("entry key %q: want %d digits", k, ordinalWidth)
	}
	return strconv.Atoi(string(k))
}

func encodeEntry(e kb.KnowledgeEntry) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal entry %q: %w", e.ID, err)
	}
	return data, nil
}

func decodeEntry(v []byte) (kb.KnowledgeEntry, error) {
	var e kb.KnowledgeEntry
	if err := json.Unmarshal(v, &e); err != nil {
		return kb.KnowledgeEntry{}, fmt.Errorf("unmarshal entry: %w", err)
	}
	return e, nil
}

func decodeMeta(v []byte) (snapshotMeta, error) {
	var m snapshotMeta
	if err := json.Unmarshal(v, &m); err != nil {
		return snapshotMeta{}, fmt.Errorf("unmarshal meta: %w", err)
	}
	return m, nil
}
