package youtube

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"

	"github.com/mapleline/policyscan/internal/core/domain"
	"github.com/mapleline/policyscan/internal/core/ports/driven"
)

// Ensure MetadataProvider implements the interface.
var _ driven.VideoMetadataProvider = (*MetadataProvider)(nil)

// MetadataProvider fetches video metadata from the YouTube Data API
// using an API key. No OAuth flow is needed for public video data.
type MetadataProvider struct {
	service *youtubeapi.Service
}

// NewMetadataProvider creates a metadata provider backed by the
// YouTube Data API.
func NewMetadataProvider(ctx context.Context, apiKey string) (*MetadataProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube: API key is required")
	}

	service, err := youtubeapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("youtube: create service: %w", err)
	}

	return &MetadataProvider{service: service}, nil
}

// Metadata fetches snippet metadata for the given watch URL.
func (p *MetadataProvider) Metadata(ctx context.Context, url string) (*driven.VideoMetadata, error) {
	videoID, err := VideoID(url)
	if err != nil {
		return nil, err
	}

	resp, err := p.service.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("youtube: fetch video %s: %w", videoID, err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("youtube: video %s: %w", videoID, domain.ErrNotFound)
	}

	snippet := resp.Items[0].Snippet
	meta := &driven.VideoMetadata{
		ID:          videoID,
		Title:       snippet.Title,
		UploadDate:  publishedDate(snippet.PublishedAt),
		URL:         WatchURL(videoID),
		Description: snippet.Description,
		Language:    language(snippet),
	}

	return meta, nil
}

// publishedDate reduces the RFC 3339 publish timestamp to YYYY-MM-DD.
func publishedDate(publishedAt string) string {
	ts, err := time.Parse(time.RFC3339, publishedAt)
	if err != nil {
		// Best effort: keep the date part of whatever came back.
		if len(publishedAt) >= 10 {
			return publishedAt[:10]
		}
		return ""
	}
	return ts.Format("2006-01-02")
}

// language returns the declared audio language, normalised to its
// primary subtag ("en-CA" becomes "en").
func language(snippet *youtubeapi.VideoSnippet) string {
	lang := snippet.DefaultAudioLanguage
	if lang == "" {
		lang = snippet.DefaultLanguage
	}
	if i := strings.IndexByte(lang, '-'); i > 0 {
		lang = lang[:i]
	}
	return strings.ToLower(lang)
}
