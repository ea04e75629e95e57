package matcher

import (
	"strings"

	"github.com/corey/faq/internal/domain/kb"
)

// Points awarded by the scorer.
const (
	ExactMatchPoints = 8 // normalized input equals the normalized question
	KeywordPoints    = 3 // per keyword contained in the normalized input
	TokenPoints      = 1 // per input token that also appears in the question
)

// compiledEntry is a KB entry with its question and keywords pre-normalized.
type compiledEntry struct {
	entry    kb.KnowledgeEntry
	question string
	qTokens  map[string]struct{}
	keywords []string // normalized, non-empty, distinct
}

func compile(e kb.KnowledgeEntry) compiledEntry {
	c := compiledEntry{
		entry:    e,
		question: Normalize(e.Question),
		qTokens:  make(map[string]struct{}),
	}
	for _, t := range Tokenize(e.Question) {
		c.qTokens[t] = struct{}{}
	}

	// Keywords are a set: a keyword listed twice, or two spellings that
	// normalize alike ("SOC", "soc"), earn KeywordPoints once. Lint reports them.
	seen := make(map[string]bool, len(e.Keywords))
	for _, kw := range e.Keywords {
		k := Normalize(kw)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		c.keywords = append(c.keywords, k)
	}
	return c
}

// score sums the three signals for an already-normalized, non-empty input.
// present reports which normalized keywords occur in u.
func (c *compiledEntry) score(u string, tokens []string, present map[string]bool) int {
	s := 0
	if u == c.question {
		s += ExactMatchPoints
	}
	for _, k := range c.keywords {
		if present[k] {
			s += KeywordPoints
		}
	}
	// Repeated input tokens each score.
	for _, t := range tokens {
		if _, ok := c.qTokens[t]; ok {
			s += TokenPoints
		}
	}
	return s
}

// Score rates how well userText matches entry. Both sides are normalized
// internally; an input that normalizes to nothing scores 0.
func Score(userText string, entry kb.KnowledgeEntry) int {
	u := Normalize(userText)
	if u == "" {
		return 0
	}
	c := compile(entry)
	return c.score(u, strings.Split(u, " "), containsScanner(c.keywords).Scan(u))
}

// containsScanner checks each keyword with strings.Contains. It is the
// default when no automaton-backed scanner is configured.
type containsScanner []string

func (s containsScanner) Scan(text string) map[string]bool {
	var found map[string]bool
	for _, k := range s {
		if strings.Contains(text, k) {
			if found == nil {
				found = make(map[string]bool)
			}
			found[k] = true
		}
	}
	return found
}
