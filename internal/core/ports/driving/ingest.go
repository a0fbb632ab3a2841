package driving

import (
	"context"

	"github.com/mapleline/policyscan/internal/core/domain"
)

// IngestResult reports what one ingestion attempt did.
type IngestResult struct {
	// SourceID is the stored source's identifier, 0 when skipped.
	SourceID int64

	// ChunkCount is the number of chunks embedded and stored.
	ChunkCount int

	// Skipped is true when the URL was already ingested successfully
	// and the call was a no-op.
	Skipped bool
}

// IngestService runs the chunk-embed-persist pipeline for one document
// at a time. Connectors feed it; it owns idempotency and the
// processing ledger.
type IngestService interface {
	// IngestDocument chunks the input text, embeds each chunk
	// sequentially, and persists source + content + chunks atomically.
	// A URL already ingested (existing source or success ledger entry)
	// is skipped. Failures are recorded in the processing ledger before
	// being returned, so a batch caller can log and continue.
	IngestDocument(ctx context.Context, input domain.DocumentInput) (IngestResult, error)
}
