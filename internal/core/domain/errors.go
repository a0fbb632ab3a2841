package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	// Storage adapters map uniqueness violations to this error so callers
	// can treat a concurrent duplicate insert as "already there" and continue.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSkipped indicates a document was deliberately excluded from
	// ingestion, such as a video published before the cutoff date.
	ErrSkipped = errors.New("skipped")

	// ErrRateLimited indicates the embedding or LLM provider returned a
	// rate-limit response. The embedding pacer retries these with a delay
	// scaled by the retry count.
	ErrRateLimited = errors.New("rate limited")

	// ErrEmbeddingExhausted indicates embedding generation failed after all
	// retries. The failing chunk must not be silently dropped.
	ErrEmbeddingExhausted = errors.New("embedding retries exhausted")

	// ErrDimensionMismatch indicates a query and candidate vector have
	// different lengths. This is a configuration error and is never retried.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Ingestion and semantic search are disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// The chat assistant is disabled; plain retrieval still works.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
