// Package kb holds the curated FAQ knowledge base: an ordered, read-only set of
// question/answer entries with keyword signals. A KB is validated once when it is
// built and never changes afterwards; declaration order is significant because the
// matcher breaks score ties in favor of the earliest entry.
package kb

import (
	"errors"
	"fmt"
	"strings"
)

// Validation failures returned (wrapped) by New.
var (
	ErrEmptyKB     = errors.New("knowledge base has no entries")
	ErrEmptyID     = errors.New("entry id is empty")
	ErrDuplicateID = errors.New("duplicate entry id")
	ErrEmptyAnswer = errors.New("entry answer is empty")
)

// KnowledgeEntry is one curated FAQ item.
type KnowledgeEntry struct {
	ID       string   `json:"id" yaml:"id"`
	Question string   `json:"question" yaml:"question"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Answer   string   `json:"answer" yaml:"answer"`
}

// KB is an immutable, ordered knowledge base. Safe for concurrent reads.
type KB struct {
	entries     []KnowledgeEntry
	byID        map[string]int
	suggestions []string
}

// Option configures optional KB data at construction time.
type Option func(*KB)

// WithSuggestions sets the example prompts offered to users alongside answers.
// Blank prompts are dropped.
func WithSuggestions(prompts ...string) Option {
	return func(k *KB) {
		for _, p := range prompts {
			if p = strings.TrimSpace(p); p != "" {
				k.suggestions = append(k.suggestions, p)
			}
		}
	}
}

// New validates entries and returns a KB holding private copies of them.
// Every entry needs a non-empty unique ID and a non-empty answer; keywords
// may be empty.
func New(entries []KnowledgeEntry, opts ...Option) (*KB, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyKB
	}

	k := &KB{
		entries: make([]KnowledgeEntry, 0, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}

	for i, e := range entries {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyID)
		}
		if prev, dup := k.byID[id]; dup {
			return nil, fmt.Errorf("entry %d %q (first declared at %d): %w", i, id, prev, ErrDuplicateID)
		}
		if strings.TrimSpace(e.Answer) == "" {
			return nil, fmt.Errorf("entry %d %q: %w", i, id, ErrEmptyAnswer)
		}

		kws := make([]string, len(e.Keywords))
		copy(kws, e.Keywords)

		k.byID[id] = len(k.entries)
		k.entries = append(k.entries, KnowledgeEntry{
			ID:       id,
			Question: e.Question,
			Keywords: kws,
			Answer:   e.Answer,
		})
	}

	for _, opt := range opts {
		opt(k)
	}
	return k, nil
}

// Len returns the number of entries.
func (k *KB) Len() int {
	return len(k.entries)
}

// Entries returns a copy of all entries in declaration order.
func (k *KB) Entries() []KnowledgeEntry {
	out := make([]KnowledgeEntry, len(k.entries))
	for i, e := range k.entries {
		out[i] = e.clone()
	}
	return out
}

// At returns a copy of the entry at position i.
func (k *KB) At(i int) KnowledgeEntry {
	return k.entries[i].clone()
}

// Get looks up an entry by ID.
func (k *KB) Get(id string) (KnowledgeEntry, bool) {
	i, ok := k.byID[id]
	if !ok {
		return KnowledgeEntry{}, false
	}
	return k.entries[i].clone(), true
}

// Suggestions returns the example prompts configured for this KB.
func (k *KB) Suggestions() []string {
	out := make([]string, len(k.suggestions))
	copy(out, k.suggestions)
	return out
}

func (e KnowledgeEntry) clone() KnowledgeEntry {
	kws := make([]string, len(e.Keywords))
	copy(kws, e.Keywords)
	e.Keywords = kws
	return e
}
