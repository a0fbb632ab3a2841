package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Implementations may include:
//   - Gemini (text-embedding-004)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//
// Providers enforce rate limits, so callers embed chunk batches
// sequentially; there is deliberately no batch method and no
// concurrent fan-out against a single provider. The pacing/retry
// decorator in the embedding adapter package handles delays and
// rate-limit backoff.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	// Rate-limit failures wrap domain.ErrRateLimited.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g. 768, 1536, 3072).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup before committing to ingestion.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
