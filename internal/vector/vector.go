// Package vector provides the binary codec for stored embeddings and
// the cosine similarity metric used by retrieval.
//
// Embeddings are stored as little-endian 32-bit floats, four bytes per
// element. The codec does not persist dimensionality; callers track it
// via the embedding model.
package vector

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/mapleline/policyscan/internal/core/domain"
)

// Encode converts a vector to its storage representation.
// Encode(nil) returns nil.
func Encode(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// Decode converts a storage blob back to a vector. The blob length must
// be a multiple of four bytes.
func Decode(data []byte) ([]float32, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("decode embedding: %d bytes is not a whole number of float32s: %w",
			len(data), domain.ErrInvalidInput)
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats, nil
}

// Cosine computes the cosine similarity between two vectors, in [-1, 1].
// A zero-norm operand yields 0 rather than dividing by zero. Vectors of
// different lengths fail with domain.ErrDimensionMismatch.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("cosine: %d vs %d elements: %w", len(a), len(b), domain.ErrDimensionMismatch)
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
