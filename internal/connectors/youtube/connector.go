package youtube

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mapleline/policyscan/internal/core/domain"
	"github.com/mapleline/policyscan/internal/core/ports/driven"
	"github.com/mapleline/policyscan/internal/logger"
)

// Connector turns YouTube watch URLs into ingestable documents by
// combining video metadata with the transcript track.
type Connector struct {
	metadata    driven.VideoMetadataProvider
	transcripts driven.TranscriptProvider

	// CutoffDate skips videos published before this YYYY-MM-DD date
	// when non-empty. Dates in that form compare lexically.
	CutoffDate string

	// DefaultLanguage is requested when the video declares no audio
	// language. Defaults to "en".
	DefaultLanguage string

	// ExportDir, when non-empty, receives a markdown copy of each
	// fetched transcript for manual review. Export failures are logged,
	// not fatal.
	ExportDir string
}

// NewConnector creates a YouTube connector from its two collaborators.
func NewConnector(metadata driven.VideoMetadataProvider, transcripts driven.TranscriptProvider) *Connector {
	return &Connector{
		metadata:        metadata,
		transcripts:     transcripts,
		DefaultLanguage: "en",
	}
}

// Fetch resolves one watch URL into a document for the given party.
// Returns domain.ErrNotFound when the video has no transcript, and a
// wrapped error with the video URL for any other failure.
func (c *Connector) Fetch(ctx context.Context, url string, partyID int64) (*domain.DocumentInput, error) {
	meta, err := c.metadata.Metadata(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("metadata for %s: %w", url, err)
	}

	if c.CutoffDate != "" && meta.UploadDate != "" && meta.UploadDate < c.CutoffDate {
		return nil, fmt.Errorf("video %s published %s, before cutoff %s: %w",
			meta.ID, meta.UploadDate, c.CutoffDate, domain.ErrSkipped)
	}

	lang := meta.Language
	if lang == "" {
		lang = c.DefaultLanguage
	}

	text, err := c.transcripts.Transcript(ctx, meta.URL, lang)
	if err != nil {
		return nil, fmt.Errorf("transcript for %s: %w", meta.ID, err)
	}

	doc := &domain.DocumentInput{
		URL:           meta.URL,
		Title:         meta.Title,
		Kind:          domain.SourceKindVideo,
		PartyID:       partyID,
		ExternalID:    meta.ID,
		DatePublished: meta.UploadDate,
		Language:      lang,
		Text:          text,
	}
	if meta.Description != "" {
		doc.Metadata = map[string]any{"description": meta.Description}
	}

	if c.ExportDir != "" {
		if err := c.export(meta, text); err != nil {
			logger.Warn("Exporting transcript %s: %v", meta.ID, err)
		}
	}

	logger.Debug("Fetched video %s (%s, %d chars)", meta.ID, meta.UploadDate, len(text))
	return doc, nil
}

// export writes the transcript as a markdown file named after the
// video ID.
func (c *Connector) export(meta *driven.VideoMetadata, text string) error {
	if err := os.MkdirAll(c.ExportDir, 0o755); err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", meta.Title)
	fmt.Fprintf(&b, "- URL: %s\n", meta.URL)
	if meta.UploadDate != "" {
		fmt.Fprintf(&b, "- Published: %s\n", meta.UploadDate)
	}
	b.WriteString("\n")
	b.WriteString(text)
	b.WriteString("\n")
	path := filepath.Join(c.ExportDir, meta.ID+".md")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// FetchAll resolves a batch of watch URLs. Per-video failures are
// logged and skipped so one broken video cannot abort a channel sweep.
func (c *Connector) FetchAll(ctx context.Context, urls []string, partyID int64) ([]*domain.DocumentInput, error) {
	docs := make([]*domain.DocumentInput, 0, len(urls))
	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return docs, err
		}
		doc, err := c.Fetch(ctx, url, partyID)
		if err != nil {
			logger.Warn("Skipping video %s: %v", url, err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
