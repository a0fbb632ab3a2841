package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c, err := New()
		require.NoError(t, err)
		assert.Equal(t, DefaultChunkSize, c.Size())
		assert.Equal(t, DefaultChunkOverlap, c.Overlap())
	})

	t.Run("custom values", func(t *testing.T) {
		c, err := New(WithChunkSize(500), WithOverlap(100))
		require.NoError(t, err)
		assert.Equal(t, 500, c.Size())
		assert.Equal(t, 100, c.Overlap())
	})

	t.Run("overlap equal to size is rejected", func(t *testing.T) {
		_, err := New(WithChunkSize(100), WithOverlap(100))
		require.Error(t, err)
	})

	t.Run("overlap larger than size is rejected", func(t *testing.T) {
		_, err := New(WithChunkSize(100), WithOverlap(150))
		require.Error(t, err)
	})

	t.Run("negative overlap is rejected", func(t *testing.T) {
		_, err := New(WithOverlap(-1))
		require.Error(t, err)
	})

	t.Run("zero size is rejected", func(t *testing.T) {
		_, err := New(WithChunkSize(0))
		require.Error(t, err)
	})
}

func TestSplit_ShortText(t *testing.T) {
	c, err := New(WithChunkSize(100), WithOverlap(20))
	require.NoError(t, err)

	for _, text := range []string{"", "short", strings.Repeat("x", 100)} {
		chunks := c.Split(text)
		require.Len(t, chunks, 1, "text of length %d", len(text))
		assert.Equal(t, text, chunks[0])
	}
}

func TestSplit_ReconstructsText(t *testing.T) {
	c, err := New(WithChunkSize(200), WithOverlap(40))
	require.NoError(t, err)

	text := strings.Repeat("The committee met on Tuesday to discuss the housing bill. ", 30)
	text = strings.TrimSpace(text)

	chunks := c.Split(text)
	require.Greater(t, len(chunks), 1)

	// Dropping each chunk's leading overlap reconstructs the input:
	// no character lost, no duplication beyond the overlap band.
	var b strings.Builder
	b.WriteString(chunks[0])
	for _, chunk := range chunks[1:] {
		require.GreaterOrEqual(t, len(chunk), c.Overlap())
		b.WriteString(chunk[c.Overlap():])
	}
	assert.Equal(t, text, b.String())
}

func TestSplit_AdvanceBoundedWithoutPunctuation(t *testing.T) {
	c, err := New(WithChunkSize(1000), WithOverlap(200))
	require.NoError(t, err)

	text := strings.Repeat("a", 2500)
	chunks := c.Split(text)

	// No punctuation and no spaces: every window cuts at the naive
	// boundary and advances by size-overlap = 800 characters.
	require.Len(t, chunks, 4)
	covered := len(chunks[0])
	for i, chunk := range chunks {
		if i == 0 {
			continue
		}
		advance := len(chunk) - c.Overlap()
		assert.LessOrEqual(t, advance, 800, "chunk %d", i)
		covered += advance
	}
	assert.Equal(t, 2500, covered)
}

func TestSplit_PrefersSentenceBoundary(t *testing.T) {
	c, err := New(WithChunkSize(20), WithOverlap(5))
	require.NoError(t, err)

	text := "The cat sat. The dog ran far away today."
	chunks := c.Split(text)

	// The first window must cut after "sat. " rather than splitting
	// mid-sentence, because a sentence ending sits inside the search
	// window around the naive cutoff.
	require.NotEmpty(t, chunks)
	assert.Equal(t, "The cat sat. ", chunks[0])
}

func TestSplit_FallsBackToWordBoundary(t *testing.T) {
	c, err := New(WithChunkSize(30), WithOverlap(5))
	require.NoError(t, err)

	text := "no sentence punctuation here just plain words going on and on forever"
	chunks := c.Split(text)
	require.Greater(t, len(chunks), 1)

	// Every non-final chunk should end on a space, not mid-word.
	for i, chunk := range chunks[:len(chunks)-1] {
		assert.True(t, strings.HasSuffix(chunk, " "), "chunk %d = %q", i, chunk)
	}
}

func TestSplit_AlwaysTerminates(t *testing.T) {
	// Sentence punctuation packed tighter than the overlap must not
	// stall the window.
	c, err := New(WithChunkSize(20), WithOverlap(10))
	require.NoError(t, err)

	text := strings.Repeat("a. ", 50)
	chunks := c.Split(text)
	require.NotEmpty(t, chunks)

	total := len(chunks[0])
	for _, chunk := range chunks[1:] {
		total += len(chunk) - c.Overlap()
	}
	assert.Equal(t, len(text), total)
}
