package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptStore_CreatesDefaultFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt := store.SystemPrompt()
	assert.Contains(t, prompt, "Canadian politics expert")

	// First access seeds the user-editable file.
	data, err := os.ReadFile(filepath.Join(dir, systemPromptFile))
	require.NoError(t, err)
	assert.Equal(t, defaultSystemPrompt, string(data))
}

func TestPromptStore_UserOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, systemPromptFile),
		[]byte("You are a terse policy analyst.\n"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "You are a terse policy analyst.", store.SystemPrompt())
}

func TestPromptStore_ReloadPicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	first := store.SystemPrompt()
	assert.Contains(t, first, "Canadian politics expert")

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, systemPromptFile),
		[]byte("Edited persona."), 0600))

	// Cached until Reload.
	assert.Equal(t, first, store.SystemPrompt())
	store.Reload()
	assert.Equal(t, "Edited persona.", store.SystemPrompt())
}

func TestPromptStore_EmptyFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, systemPromptFile), []byte("   \n"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)
	assert.Equal(t, defaultSystemPrompt, store.SystemPrompt())
}
