package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("embedding.provider", "gemini"))
	require.NoError(t, store.Set("search.limit", 15))
	require.NoError(t, store.Set("search.min_similarity", 0.7))
	require.NoError(t, store.Set("chat.compare", true))
	require.NoError(t, store.Set("ingest.languages", []string{"en", "fr"}))

	assert.Equal(t, "gemini", store.GetString("embedding.provider"))
	assert.Equal(t, 15, store.GetInt("search.limit"))
	assert.InDelta(t, 0.7, store.GetFloat("search.min_similarity"), 1e-9)
	assert.True(t, store.GetBool("chat.compare"))
	assert.Equal(t, []string{"en", "fr"}, store.GetStringSlice("ingest.languages"))
}

func TestConfigStore_MissingKeys(t *testing.T) {
	store := NewConfigStore()

	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("missing"))
	assert.Zero(t, store.GetFloat("missing"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_TypeCoercion(t *testing.T) {
	store := NewConfigStore()

	// TOML decodes integers as int64 and mixed arrays as []any.
	require.NoError(t, store.Set("limit", int64(25)))
	require.NoError(t, store.Set("ratio", float64(3)))
	require.NoError(t, store.Set("names", []any{"a", "b"}))

	assert.Equal(t, 25, store.GetInt("limit"))
	assert.InDelta(t, 3.0, store.GetFloat("ratio"), 1e-9)
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("names"))
}

func TestConfigStore_Path(t *testing.T) {
	store := NewConfigStore()
	assert.Equal(t, ":memory:", store.Path())
}
