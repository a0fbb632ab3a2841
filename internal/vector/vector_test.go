package vector

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapleline/policyscan/internal/core/domain"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	// 768 and 3072 are the embedding sizes we actually store.
	for _, dim := range []int{768, 3072} {
		rng := rand.New(rand.NewSource(int64(dim)))
		v := make([]float32, dim)
		for i := range v {
			v[i] = float32(rng.NormFloat64())
		}
		v[0] = 0
		v[1] = -v[1]

		decoded, err := Decode(Encode(v))
		require.NoError(t, err)
		require.Len(t, decoded, dim)
		for i := range v {
			assert.Equal(t, v[i], decoded[i], "element %d", i)
		}
	}
}

func TestEncode_Empty(t *testing.T) {
	assert.Nil(t, Encode(nil))
	assert.Nil(t, Encode([]float32{}))
}

func TestDecode_Empty(t *testing.T) {
	v, err := Decode(nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestDecode_RaggedLength(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCosine_Identity(t *testing.T) {
	v := []float32{0.3, -1.2, 4.5, 0.01}

	sim, err := Cosine(v, v)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)
}

func TestCosine_Opposite(t *testing.T) {
	v := []float32{1, 2, 3}
	neg := []float32{-1, -2, -3}

	sim, err := Cosine(v, neg)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, sim, 1e-9)
}

func TestCosine_ZeroNorm(t *testing.T) {
	v := []float32{1, 2, 3}
	zero := []float32{0, 0, 0}

	sim, err := Cosine(v, zero)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim)

	sim, err = Cosine(zero, v)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim)
}

func TestCosine_DimensionMismatch(t *testing.T) {
	_, err := Cosine([]float32{1, 2}, []float32{1, 2, 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestCosine_Orthogonal(t *testing.T) {
	sim, err := Cosine([]float32{1, 0}, []float32{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sim, 1e-9)
}
