package repository

import (
	"os"
	"path/filepath"
	"testing"

	"abit-advisor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "knowledge_base.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCorpusFile_PreservesOrder(t *testing.T) {
	path := writeTempCorpus(t, `[
		{"id": "ai_about", "text": "о программе ИИ", "program": "ai", "type": "программы"},
		{"id": "ai_product_about", "text": "о программе AI Product", "program": "ai_product", "type": "программы"}
	]`)

	entries, err := LoadCorpusFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "ai_about", entries[0].ID)
	assert.Equal(t, models.ProgramAI, entries[0].Program)
	assert.Equal(t, "программы", entries[0].Category)
	assert.Equal(t, "ai_product_about", entries[1].ID)
	assert.Equal(t, models.ProgramAIProduct, entries[1].Program)
}

func TestLoadCorpusFile_MissingFile(t *testing.T) {
	_, err := LoadCorpusFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadCorpusFile_InvalidJSON(t *testing.T) {
	path := writeTempCorpus(t, `{not json`)
	_, err := LoadCorpusFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestLoadCorpusFile_MissingRequiredFields(t *testing.T) {
	path := writeTempCorpus(t, `[{"id": "", "text": "текст", "program": "ai", "type": "x"}]`)
	_, err := LoadCorpusFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id or text")
}

func TestLoadCorpusFile_UnknownProgram(t *testing.T) {
	path := writeTempCorpus(t, `[{"id": "x", "text": "текст", "program": "law", "type": "x"}]`)
	_, err := LoadCorpusFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown program")
}

func TestLoadCorpusFile_ReadsCommittedCorpus(t *testing.T) {
	entries, err := LoadCorpusFile(filepath.Join("..", "..", "data", "knowledge_base.json"))
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
