package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Lowercases(t *testing.T) {
	assert.Equal(t, "login", Normalize("LOGIN"))
}

func TestNormalize_PunctuationBecomesSpace(t *testing.T) {
	assert.Equal(t, "do you offer 24 7 monitoring", Normalize("Do you offer 24/7 monitoring?"))
}

func TestNormalize_CollapsesAndTrims(t *testing.T) {
	assert.Equal(t, "a b", Normalize("  a \t\n  b   "))
}

func TestNormalize_Empty(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, "", Normalize("?!...///"))
}

func TestNormalize_NonASCIIIsSeparator(t *testing.T) {
	// "é" is not a-z, so it splits the word.
	assert.Equal(t, "r sum", Normalize("résumé"))
	assert.Equal(t, "don t", Normalize("don’t"))
}

func TestNormalize_Hyphenated(t *testing.T) {
	assert.Equal(t, "after hours", Normalize("after-hours"))
}

func TestNormalize_Idempotent(t *testing.T) {
	n := Normalize("Can you support EMERGENCY response & liaison?")
	assert.Equal(t, n, Normalize(n))
}

func TestTokenize_PreservesOrderAndDuplicates(t *testing.T) {
	assert.Equal(t, []string{"do", "you", "do", "24", "7"}, Tokenize("Do you DO 24/7"))
}

func TestTokenize_Empty(t *testing.T) {
	assert.Nil(t, Tokenize(""))
	assert.Nil(t, Tokenize(" ... "))
}
