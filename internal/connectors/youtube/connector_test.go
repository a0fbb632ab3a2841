package youtube

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapleline/policyscan/internal/core/domain"
	"github.com/mapleline/policyscan/internal/core/ports/driven"
)

type stubMetadata struct {
	meta map[string]*driven.VideoMetadata
	err  error
}

func (s *stubMetadata) Metadata(_ context.Context, url string) (*driven.VideoMetadata, error) {
	if s.err != nil {
		return nil, s.err
	}
	meta, ok := s.meta[url]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return meta, nil
}

type stubTranscripts struct {
	text     string
	err      error
	lastLang string
}

func (s *stubTranscripts) Transcript(_ context.Context, _, language string) (string, error) {
	s.lastLang = language
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func TestConnector_Fetch(t *testing.T) {
	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	metadata := &stubMetadata{meta: map[string]*driven.VideoMetadata{
		url: {
			ID:          "dQw4w9WgXcQ",
			Title:       "Housing Announcement",
			UploadDate:  "2024-03-15",
			URL:         url,
			Description: "Press conference on housing.",
			Language:    "en",
		},
	}}
	transcripts := &stubTranscripts{text: "We will build more homes."}

	c := NewConnector(metadata, transcripts)
	doc, err := c.Fetch(context.Background(), url, 1)
	require.NoError(t, err)

	assert.Equal(t, url, doc.URL)
	assert.Equal(t, "Housing Announcement", doc.Title)
	assert.Equal(t, domain.SourceKindVideo, doc.Kind)
	assert.Equal(t, int64(1), doc.PartyID)
	assert.Equal(t, "dQw4w9WgXcQ", doc.ExternalID)
	assert.Equal(t, "2024-03-15", doc.DatePublished)
	assert.Equal(t, "en", doc.Language)
	assert.Equal(t, "We will build more homes.", doc.Text)
	assert.Equal(t, "Press conference on housing.", doc.Metadata["description"])
}

func TestConnector_Fetch_DefaultLanguage(t *testing.T) {
	url := "https://youtu.be/dQw4w9WgXcQ"
	metadata := &stubMetadata{meta: map[string]*driven.VideoMetadata{
		url: {ID: "dQw4w9WgXcQ", Title: "Untitled", URL: url},
	}}
	transcripts := &stubTranscripts{text: "text"}

	c := NewConnector(metadata, transcripts)
	doc, err := c.Fetch(context.Background(), url, 0)
	require.NoError(t, err)

	assert.Equal(t, "en", doc.Language)
	assert.Equal(t, "en", transcripts.lastLang)
	assert.Nil(t, doc.Metadata)
}

func TestConnector_Fetch_BeforeCutoff(t *testing.T) {
	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	metadata := &stubMetadata{meta: map[string]*driven.VideoMetadata{
		url: {ID: "dQw4w9WgXcQ", Title: "Old Speech", URL: url, UploadDate: "2019-06-01"},
	}}

	c := NewConnector(metadata, &stubTranscripts{text: "text"})
	c.CutoffDate = "2021-01-01"

	_, err := c.Fetch(context.Background(), url, 0)
	assert.ErrorIs(t, err, domain.ErrSkipped)
}

func TestConnector_Fetch_NoTranscript(t *testing.T) {
	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	metadata := &stubMetadata{meta: map[string]*driven.VideoMetadata{
		url: {ID: "dQw4w9WgXcQ", Title: "Silent", URL: url},
	}}
	transcripts := &stubTranscripts{err: domain.ErrNotFound}

	c := NewConnector(metadata, transcripts)
	_, err := c.Fetch(context.Background(), url, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConnector_FetchAll_SkipsFailures(t *testing.T) {
	good := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	bad := "https://www.youtube.com/watch?v=AAAAAAAAAAA"
	metadata := &stubMetadata{meta: map[string]*driven.VideoMetadata{
		good: {ID: "dQw4w9WgXcQ", Title: "Kept", URL: good},
	}}

	c := NewConnector(metadata, &stubTranscripts{text: "text"})
	docs, err := c.FetchAll(context.Background(), []string{bad, good}, 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Kept", docs[0].Title)
}

func TestConnector_Fetch_ExportsMarkdown(t *testing.T) {
	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	metadata := &stubMetadata{meta: map[string]*driven.VideoMetadata{
		url: {ID: "dQw4w9WgXcQ", Title: "Housing Announcement", URL: url, UploadDate: "2024-03-15"},
	}}

	c := NewConnector(metadata, &stubTranscripts{text: "We will build more homes."})
	c.ExportDir = filepath.Join(t.TempDir(), "transcripts")

	_, err := c.Fetch(context.Background(), url, 0)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(c.ExportDir, "dQw4w9WgXcQ.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Housing Announcement")
	assert.Contains(t, string(data), "Published: 2024-03-15")
	assert.Contains(t, string(data), "We will build more homes.")
}

func TestConnector_FetchAll_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewConnector(&stubMetadata{}, &stubTranscripts{})
	_, err := c.FetchAll(ctx, []string{"https://youtu.be/dQw4w9WgXcQ"}, 0)
	assert.True(t, errors.Is(err, context.Canceled))
}
