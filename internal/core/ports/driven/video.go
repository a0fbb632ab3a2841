package driven

import "context"

// VideoMetadata is what the metadata collaborator knows about one video.
type VideoMetadata struct {
	// ID is the platform video identifier.
	ID string

	// Title is the video title.
	Title string

	// UploadDate is the publication date in YYYY-MM-DD form.
	UploadDate string

	// URL is the canonical watch URL.
	URL string

	// Description is the uploader-written description, possibly empty.
	Description string

	// Language is the declared audio language code, possibly empty.
	Language string
}

// VideoMetadataProvider fetches metadata for a video URL.
// Implementations: YouTube Data API, yt-dlp fallback.
type VideoMetadataProvider interface {
	// Metadata fetches metadata for the given watch URL.
	Metadata(ctx context.Context, url string) (*VideoMetadata, error)
}

// TranscriptProvider fetches the spoken-word transcript for a video.
// Implementations shell out to an external binary; failures are
// per-video and must not abort a batch.
type TranscriptProvider interface {
	// Transcript returns the transcript text for the given watch URL in
	// the requested language. Returns domain.ErrNotFound when the video
	// has no transcript in that language.
	Transcript(ctx context.Context, url, language string) (string, error)
}
