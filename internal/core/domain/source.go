package domain

import "time"

// SourceKind tags the origin of an ingested source.
type SourceKind string

// Supported source kinds.
const (
	SourceKindVideo   SourceKind = "video"
	SourceKindArticle SourceKind = "article"
	SourceKindWebpage SourceKind = "webpage"
)

// Valid reports whether the kind is one of the supported values.
func (k SourceKind) Valid() bool {
	switch k {
	case SourceKindVideo, SourceKindArticle, SourceKindWebpage:
		return true
	}
	return false
}

// Source is one ingested unit of content: a video, article, or page.
// The URL is the identity key and is globally unique.
type Source struct {
	// ID is the database identifier.
	ID int64

	// PartyID is the owning party, or 0 when the source belongs to no party.
	PartyID int64

	// Title is the human-readable title.
	Title string

	// Kind tags the source as video, article, or webpage.
	Kind SourceKind

	// URL is the original location. Globally unique.
	URL string

	// ExternalID is a platform-specific identifier, e.g. a YouTube video ID.
	ExternalID string

	// DatePublished is the publication date in YYYY-MM-DD form.
	DatePublished string

	// Language is the ISO 639-1 language code, "en" or "fr".
	Language string

	// CreatedAt is when the source was ingested.
	CreatedAt time.Time
}

// Content is the extracted full text body for exactly one source.
// It is owned by the source and destroyed with it.
type Content struct {
	// ID is the database identifier.
	ID int64

	// SourceID links to the owning Source.
	SourceID int64

	// Text is the complete extracted text before chunking.
	Text string

	// Metadata is an opaque kind-specific JSON blob
	// (candidate name, video description, selector used, ...).
	Metadata string
}

// DocumentInput carries everything the ingestion pipeline needs to
// store one source: identity, attribution, and the extracted text.
// Connectors produce these; the ingest service consumes them.
type DocumentInput struct {
	URL           string
	Title         string
	Kind          SourceKind
	PartyID       int64
	ExternalID    string
	DatePublished string
	Language      string
	Text          string
	Metadata      map[string]any
}

// Validate checks the input is complete enough to ingest.
func (d DocumentInput) Validate() error {
	if d.URL == "" || d.Title == "" {
		return ErrInvalidInput
	}
	if !d.Kind.Valid() {
		return ErrInvalidInput
	}
	return nil
}
