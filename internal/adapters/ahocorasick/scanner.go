// Package ahocorasick provides multi-keyword containment checks using an Aho-Corasick automaton.
// It wraps the petar-dambovaliev/aho-corasick library so a query is scanned once
// for every keyword in the knowledge base, O(n + m + z) instead of one pass per keyword.
package ahocorasick

import (
	aho "github.com/petar-dambovaliev/aho-corasick"

	"github.com/corey/faq/internal/ports"
)

// Scanner implements ports.KeywordScanner over a compiled DFA.
// It is immutable after construction and safe for concurrent Scan calls.
type Scanner struct {
	automaton aho.AhoCorasick
	keywords  []string
}

var _ ports.KeywordScanner = (*Scanner)(nil)

// NewScanner compiles the automaton from keywords. Matching is byte-exact:
// callers normalize keywords and text the same way before using the scanner.
func NewScanner(keywords []string) *Scanner {
	k := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw != "" {
			k = append(k, kw)
		}
	}
	s := &Scanner{keywords: k}
	if len(k) > 0 {
		// StandardMatch (the zero MatchKind) is required for overlapping iteration.
		builder := aho.NewAhoCorasickBuilder(aho.Opts{
			DFA: true,
		})
		s.automaton = builder.Build(k)
	}
	return s
}

// Factory adapts NewScanner to ports.ScannerFactory.
func Factory(keywords []string) ports.KeywordScanner {
	return NewScanner(keywords)
}

// Scan returns every keyword that occurs in text, including keywords that
// overlap or nest inside each other ("soc" within "social").
func (s *Scanner) Scan(text string) map[string]bool {
	if len(s.keywords) == 0 || text == "" {
		return nil
	}
	var found map[string]bool
	iter := s.automaton.IterOverlappingByte([]byte(text))
	for next := iter.Next(); next != nil; next = iter.Next() {
		if found == nil {
			found = make(map[string]bool)
		}
		found[s.keywords[next.Pattern()]] = true
		if len(found) == len(s.keywords) {
			break
		}
	}
	return found
}

// KeywordCount returns the number of keywords in the automaton.
func (s *Scanner) KeywordCount() int {
	return len(s.keywords)
}
