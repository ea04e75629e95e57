package kbfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/faq/internal/domain/kb"
)

const sampleYAML = `entries:
  - id: hours
    question: What are your office hours?
    keywords: [hours, open]
    answer: Weekdays 9 to 5.
  - id: parking
    question: Is there parking?
    answer: Yes, behind the building.
suggestions:
  - What are your office hours?
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	k, err := Load(writeFile(t, "faq.yaml", sampleYAML))
	require.NoError(t, err)
	require.Equal(t, 2, k.Len())
	assert.Equal(t, "hours", k.At(0).ID)
	assert.Equal(t, []string{"hours", "open"}, k.At(0).Keywords)
	assert.Empty(t, k.At(1).Keywords)
	assert.Equal(t, []string{"What are your office hours?"}, k.Suggestions())
}

func TestLoad_YMLExtension(t *testing.T) {
	_, err := Load(writeFile(t, "faq.YML", sampleYAML))
	assert.NoError(t, err)
}

func TestLoad_JSON(t *testing.T) {
	k, err := Load(writeFile(t, "faq.json", `{"entries":[{"id":"a","question":"Q?","keywords":["x"],"answer":"A."}]}`))
	require.NoError(t, err)
	assert.Equal(t, 1, k.Len())
	assert.Empty(t, k.Suggestions())
}

func TestLoad_UnknownExtension(t *testing.T) {
	_, err := Load(writeFile(t, "faq.txt", sampleYAML))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_EmptyFile(t *testing.T) {
	_, err := Load(writeFile(t, "faq.yaml", "  \n"))
	assert.ErrorIs(t, err, kb.ErrEmptyKB)
}

func TestLoad_ValidationErrorsSurface(t *testing.T) {
	_, err := Load(writeFile(t, "faq.yaml", `entries:
  - id: a
    question: Q?
    answer: A.
  - id: a
    question: Q2?
    answer: B.
`))
	assert.ErrorIs(t, err, kb.ErrDuplicateID)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("entries:\n  - id: a\n    question: Q\n    keyword: [x]\n    answer: A\n"), YAML)
	assert.Error(t, err)

	_, err = Parse([]byte(`{"entries":[{"id":"a","question":"Q","answer":"A","extra":1}]}`), JSON)
	assert.Error(t, err)
}

func TestParse_RejectsMultipleYAMLDocuments(t *testing.T) {
	_, err := Parse([]byte(sampleYAML+"---\n"+sampleYAML), YAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple YAML documents")
}

func TestWrite_RoundtripBothFormats(t *testing.T) {
	orig := kb.Default()
	for _, name := range []string{"out.yaml", "out.json"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, Write(path, orig))

		got, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, orig.Entries(), got.Entries(), name)
		assert.Equal(t, orig.Suggestions(), got.Suggestions(), name)
	}
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(filepath.Join(dir, "kb.yaml"), kb.Default()))
	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "kb.yaml", files[0].Name())
}

func TestWrite_UnknownExtension(t *testing.T) {
	assert.ErrorIs(t, Write(filepath.Join(t.TempDir(), "kb.toml"), kb.Default()), ErrUnknownFormat)
}
