package matcher

import (
	"testing"

	"github.com/corey/faq/internal/domain/kb"
	"github.com/stretchr/testify/assert"
)

var monitoring = kb.KnowledgeEntry{
	ID:       "monitoring-247",
	Question: "Do you offer 24/7 monitoring?",
	Keywords: []string{"24/7", "monitoring", "soc"},
	Answer:   "Yes. We monitor around the clock.",
}

func TestScore_EmptyInputIsZero(t *testing.T) {
	assert.Equal(t, 0, Score("", monitoring))
	assert.Equal(t, 0, Score("   ", monitoring))
	assert.Equal(t, 0, Score("???", monitoring))
}

func TestScore_ExactQuestion(t *testing.T) {
	// exact 8 + keywords "24 7" and "monitoring" (6) + six shared tokens
	assert.Equal(t, 8+6+6, Score("do you offer 24/7 monitoring", monitoring))
}

func TestScore_KeywordsOnly(t *testing.T) {
	// "soc" is a keyword but not a question token.
	assert.Equal(t, KeywordPoints, Score("soc", monitoring))
}

func TestScore_KeywordIsSubstring(t *testing.T) {
	// Containment, not token equality: "soc" hits inside "social".
	assert.Equal(t, KeywordPoints, Score("social", monitoring))
}

func TestScore_MultiWordKeyword(t *testing.T) {
	e := kb.KnowledgeEntry{ID: "x", Question: "unrelated", Keywords: []string{"after hours"}, Answer: "a"}
	assert.Equal(t, KeywordPoints, Score("After-Hours coverage", e))
}

func TestScore_TokenOverlap(t *testing.T) {
	// do, you, monitoring overlap; "please" does not.
	assert.Equal(t, 3*TokenPoints+KeywordPoints, Score("please do you monitoring", monitoring))
}

func TestScore_RepeatedTokensCountEachTime(t *testing.T) {
	e := kb.KnowledgeEntry{ID: "x", Question: "alpha beta", Answer: "a"}
	assert.Equal(t, 4, Score("alpha alpha alpha alpha", e))
}

func TestScore_DuplicateKeywordsCountOnce(t *testing.T) {
	e := kb.KnowledgeEntry{ID: "x", Question: "q", Keywords: []string{"zeta", "ZETA", " zeta "}, Answer: "a"}
	assert.Equal(t, KeywordPoints, Score("zeta", e))
}

func TestScore_BlankKeywordsIgnored(t *testing.T) {
	e := kb.KnowledgeEntry{ID: "x", Question: "q", Keywords: []string{"", "  ", "?!"}, Answer: "a"}
	assert.Equal(t, 0, Score("anything at all", e))
}

func TestScore_NoKeywords(t *testing.T) {
	e := kb.KnowledgeEntry{ID: "x", Question: "Where is the office?", Answer: "a"}
	assert.Equal(t, ExactMatchPoints+4*TokenPoints, Score("where is the office", e))
}

func TestScore_CaseAndPunctuationInsensitive(t *testing.T) {
	assert.Equal(t,
		Score("do you offer 24 7 monitoring", monitoring),
		Score("DO YOU OFFER 24/7 MONITORING???", monitoring))
}
