// Package matcher selects the best FAQ entry for free-text input.
//
// Every entry is scored additively (exact question match, keyword containment,
// question-token overlap). The first entry in KB order with the highest score
// wins, and only scores at or above Threshold are trusted; anything weaker
// yields the fixed fallback guidance. A Matcher holds no mutable state, so one
// instance can serve any number of goroutines.
package matcher

import (
	"sort"
	"strings"

	"github.com/corey/faq/internal/domain/kb"
	"github.com/corey/faq/internal/ports"
)

// Threshold is the minimum score for a confident match. An exact question
// match always clears it; a single keyword hit alone does not.
const Threshold = 4

// FallbackMessage is shown when no entry clears Threshold.
const FallbackMessage = "I can help with services, monitoring, incident reporting, access logs, compliance documents, and consultation requests. Ask a specific question (for example: ‘Do you offer 24/7 monitoring?’)."

// Matcher answers questions against one immutable KB.
type Matcher struct {
	kb       *kb.KB
	entries  []compiledEntry
	scanner  ports.KeywordScanner
	keywords int
}

// Option configures a Matcher.
type Option func(*config)

type config struct {
	newScanner ports.ScannerFactory
}

// WithKeywordScanner replaces the per-keyword substring check with a scanner
// built from the KB's distinct normalized keywords (e.g. an Aho-Corasick
// automaton). Scores are identical either way.
func WithKeywordScanner(f ports.ScannerFactory) Option {
	return func(c *config) { c.newScanner = f }
}

// New compiles k for matching.
func New(k *kb.KB, opts ...Option) *Matcher {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Matcher{
		kb:      k,
		entries: make([]compiledEntry, k.Len()),
	}

	var all []string
	seen := make(map[string]bool)
	for i := range m.entries {
		m.entries[i] = compile(k.At(i))
		for _, kw := range m.entries[i].keywords {
			if !seen[kw] {
				seen[kw] = true
				all = append(all, kw)
			}
		}
	}

	m.keywords = len(all)
	if cfg.newScanner != nil {
		m.scanner = cfg.newScanner(all)
	} else {
		m.scanner = containsScanner(all)
	}
	return m
}

// KB returns the knowledge base this matcher answers from.
func (m *Matcher) KB() *kb.KB {
	return m.kb
}

// KeywordCount returns the number of distinct normalized keywords.
func (m *Matcher) KeywordCount() int {
	return m.keywords
}

// Answer picks the best entry for userText. It never fails: input with no
// usable signal (empty, whitespace, punctuation only, unrelated words)
// produces the fallback result.
func (m *Matcher) Answer(userText string) MatchResult {
	u := Normalize(userText)
	if u == "" {
		return fallback()
	}
	tokens := strings.Split(u, " ")
	present := m.scanner.Scan(u)

	best, bestScore := -1, 0
	for i := range m.entries {
		// Strictly greater: earlier entries keep ties.
		if s := m.entries[i].score(u, tokens, present); s > bestScore {
			best, bestScore = i, s
		}
	}

	if best < 0 || bestScore < Threshold {
		return fallback()
	}

	e := m.entries[best].entry
	return MatchResult{
		Text: e.Answer,
		Provenance: Provenance{
			Kind:     Matched,
			Question: e.Question,
			EntryID:  e.ID,
		},
		Score: bestScore,
	}
}

// Ranked scores every entry and returns them best first, KB order breaking
// ties. Intended for diagnostics (`faq ask --explain`); callers deciding
// what to display must use Answer.
func (m *Matcher) Ranked(userText string) []Ranking {
	out := make([]Ranking, len(m.entries))
	u := Normalize(userText)
	var tokens []string
	var present map[string]bool
	if u != "" {
		tokens = strings.Split(u, " ")
		present = m.scanner.Scan(u)
	}
	for i := range m.entries {
		out[i] = Ranking{EntryID: m.entries[i].entry.ID}
		if u != "" {
			out[i].Score = m.entries[i].score(u, tokens, present)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Ranking is one entry's score for a query.
type Ranking struct {
	EntryID string `json:"entry_id"`
	Score   int    `json:"score"`
}

func fallback() MatchResult {
	return MatchResult{
		Text:       FallbackMessage,
		Provenance: Provenance{Kind: Fallback},
	}
}
