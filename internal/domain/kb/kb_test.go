package kb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []KnowledgeEntry {
	return []KnowledgeEntry{
		{ID: "a", Question: "First?", Keywords: []string{"one"}, Answer: "A"},
		{ID: "b", Question: "Second?", Answer: "B"},
	}
}

func TestNew_PreservesOrder(t *testing.T) {
	k, err := New(sampleEntries())
	require.NoError(t, err)
	require.Equal(t, 2, k.Len())
	assert.Equal(t, "a", k.At(0).ID)
	assert.Equal(t, "b", k.At(1).ID)
}

func TestNew_EmptyKeywordsAllowed(t *testing.T) {
	k, err := New(sampleEntries())
	require.NoError(t, err)
	e, ok := k.Get("b")
	require.True(t, ok)
	assert.Empty(t, e.Keywords)
}

func TestNew_RejectsEmpty(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmptyKB)
}

func TestNew_RejectsDuplicateID(t *testing.T) {
	entries := append(sampleEntries(), KnowledgeEntry{ID: "a", Answer: "again"})
	_, err := New(entries)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Contains(t, err.Error(), `"a"`)
}

func TestNew_RejectsDuplicateIDAfterTrim(t *testing.T) {
	entries := append(sampleEntries(), KnowledgeEntry{ID: " a ", Answer: "again"})
	_, err := New(entries)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestNew_RejectsEmptyAnswer(t *testing.T) {
	_, err := New([]KnowledgeEntry{{ID: "x", Question: "q", Answer: "   "}})
	assert.ErrorIs(t, err, ErrEmptyAnswer)
}

func TestNew_RejectsEmptyID(t *testing.T) {
	_, err := New([]KnowledgeEntry{{ID: "", Answer: "a"}})
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestNew_CopiesInput(t *testing.T) {
	entries := sampleEntries()
	k, err := New(entries)
	require.NoError(t, err)

	entries[0].Answer = "mutated"
	entries[0].Keywords[0] = "mutated"

	e := k.At(0)
	assert.Equal(t, "A", e.Answer)
	assert.Equal(t, []string{"one"}, e.Keywords)
}

func TestEntries_ReturnsCopies(t *testing.T) {
	k, err := New(sampleEntries())
	require.NoError(t, err)

	out := k.Entries()
	out[0].Keywords[0] = "changed"
	out[1].ID = "changed"

	assert.Equal(t, []string{"one"}, k.At(0).Keywords)
	assert.Equal(t, "b", k.At(1).ID)
}

func TestGet_Missing(t *testing.T) {
	k, err := New(sampleEntries())
	require.NoError(t, err)
	_, ok := k.Get("nope")
	assert.False(t, ok)
}

func TestWithSuggestions_DropsBlank(t *testing.T) {
	k, err := New(sampleEntries(), WithSuggestions("Hello?", "  ", ""))
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello?"}, k.Suggestions())
}

func TestDefault_Valid(t *testing.T) {
	var k *KB
	require.NotPanics(t, func() { k = Default() })
	assert.Equal(t, 10, k.Len())
	assert.Equal(t, DefaultSuggestions, k.Suggestions())

	e, ok := k.Get("monitoring-247")
	require.True(t, ok)
	assert.Equal(t, "Do you offer 24/7 monitoring?", e.Question)
	assert.Contains(t, e.Keywords, "soc")
}
