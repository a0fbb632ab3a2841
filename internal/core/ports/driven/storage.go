package driven

import (
	"context"

	"github.com/mapleline/policyscan/internal/core/domain"
)

// PartyStore provides read access to the seeded party reference data.
type PartyStore interface {
	// List returns all parties ordered by name.
	List(ctx context.Context) ([]domain.Party, error)

	// GetByName retrieves a party by exact name.
	// Returns domain.ErrNotFound when no party matches.
	GetByName(ctx context.Context, name string) (*domain.Party, error)

	// GetByAbbreviation retrieves a party by exact abbreviation.
	GetByAbbreviation(ctx context.Context, abbreviation string) (*domain.Party, error)

	// GetByID retrieves a party by database identifier.
	GetByID(ctx context.Context, id int64) (*domain.Party, error)
}

// SourceStore provides read access to ingested sources.
// Sources are written only through DocumentWriter.
type SourceStore interface {
	// ExistsByURL reports whether a source with the given URL exists.
	ExistsByURL(ctx context.Context, url string) (bool, error)

	// GetByURL retrieves a source by URL.
	GetByURL(ctx context.Context, url string) (*domain.Source, error)

	// ListByParty returns a party's sources, newest publication first.
	ListByParty(ctx context.Context, partyID int64) ([]domain.Source, error)
}

// ChunkFilters narrows the candidate set before similarity is computed.
// Zero-valued fields apply no restriction.
type ChunkFilters struct {
	// PartyIDs restricts candidates to sources owned by these parties.
	PartyIDs []int64

	// SourceKinds restricts candidates to these source kinds.
	SourceKinds []domain.SourceKind

	// DateFrom and DateTo bound the publication date (YYYY-MM-DD, inclusive).
	DateFrom string
	DateTo   string
}

// CandidateChunk is one stored chunk row offered to the similarity
// ranker, carrying the encoded vector and the denormalised display
// fields needed to cite the chunk.
type CandidateChunk struct {
	ChunkID       int64
	ContentID     int64
	Text          string
	Embedding     []byte
	Title         string
	URL           string
	SourceKind    domain.SourceKind
	PartyName     string
	DatePublished string
}

// ChunkStore supplies candidate chunks for similarity search.
type ChunkStore interface {
	// Candidates returns stored chunks matching the filters. The ranker
	// performs the similarity scan; this is a plain filtered read.
	Candidates(ctx context.Context, filters ChunkFilters) ([]CandidateChunk, error)

	// ListByContent returns a content's chunks ordered by index.
	// Embeddings are not hydrated.
	ListByContent(ctx context.Context, contentID int64) ([]domain.Chunk, error)
}

// DocumentWriter persists one ingested document atomically: the source
// row, its content, and all chunks commit in a single transaction, so a
// crash mid-batch leaves no partial chunk set behind.
type DocumentWriter interface {
	// SaveDocument stores the source, content, and chunks, returning the
	// new source ID. A URL collision fails with domain.ErrAlreadyExists.
	SaveDocument(ctx context.Context, source domain.Source, content domain.Content, chunks []domain.Chunk) (int64, error)
}

// ProcessingLogStore is the ingestion idempotency ledger.
type ProcessingLogStore interface {
	// Record upserts a processing record keyed by URL and returns the
	// record's ID. When a record for the URL already exists with the
	// same status the call is a no-op (timestamps stay meaningful); on a
	// status change the row is updated in place.
	Record(ctx context.Context, rec domain.ProcessingRecord) (int64, error)

	// Get retrieves the record for a URL.
	// Returns domain.ErrNotFound when the URL was never processed.
	Get(ctx context.Context, url string) (*domain.ProcessingRecord, error)

	// HasSucceeded reports whether the URL is marked success.
	HasSucceeded(ctx context.Context, url string) (bool, error)
}
