package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("embedding.provider", "gemini"))
	require.NoError(t, store.Set("search.limit", 15))
	require.NoError(t, store.Set("search.min_similarity", 0.7))
	require.NoError(t, store.Set("chat.enabled", true))

	assert.Equal(t, "gemini", store.GetString("embedding.provider"))
	assert.Equal(t, 15, store.GetInt("search.limit"))
	assert.InDelta(t, 0.7, store.GetFloat("search.min_similarity"), 1e-9)
	assert.True(t, store.GetBool("chat.enabled"))
}

func TestConfigStore_PersistsAcrossLoads(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.model", "gemini-2.0-flash"))
	require.NoError(t, store.Set("search.min_similarity", 0.8))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", reopened.GetString("llm.model"))
	assert.InDelta(t, 0.8, reopened.GetFloat("search.min_similarity"), 1e-9)
}

func TestConfigStore_FlattensNestedTOML(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[embedding]
provider = "gemini"
model = "text-embedding-004"

[ingest]
languages = ["en", "fr"]
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "gemini", store.GetString("embedding.provider"))
	assert.Equal(t, "text-embedding-004", store.GetString("embedding.model"))
	assert.Equal(t, []string{"en", "fr"}, store.GetStringSlice("ingest.languages"))
}

func TestConfigStore_MissingAndMistypedKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("key", "string value"))

	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("key"))
	assert.Zero(t, store.GetFloat("key"))
	assert.False(t, store.GetBool("key"))
	assert.Nil(t, store.GetStringSlice("key"))
}

func TestConfigStore_WholeNumberFloat(t *testing.T) {
	tmpDir := t.TempDir()
	// A whole number in TOML decodes as int64, GetFloat still serves it.
	content := "min_similarity = 1\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, store.GetFloat("min_similarity"), 1e-9)
}
