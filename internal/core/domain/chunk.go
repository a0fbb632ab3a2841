package domain

// Chunk is one contiguous, possibly-overlapping slice of a content's
// text together with its embedding. Chunks are the unit similarity is
// computed over.
//
// Uniqueness holds on (ContentID, Index, EmbeddingModel): the same
// content re-embedded under a different model coexists without conflict.
type Chunk struct {
	// ID is the database identifier.
	ID int64

	// ContentID links to the parent Content.
	ContentID int64

	// Index establishes the chunk's order within its content.
	Index int

	// Text is the literal chunk text.
	Text string

	// EmbeddingModel names the model the embedding was computed with.
	EmbeddingModel string

	// Embedding is the vector representation of Text.
	Embedding []float32
}
