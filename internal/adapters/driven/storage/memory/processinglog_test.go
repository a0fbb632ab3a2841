package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapleline/policyscan/internal/core/domain"
)

func TestProcessingLog_Record(t *testing.T) {
	log := NewProcessingLog()

	id, err := log.Record(context.Background(), domain.ProcessingRecord{
		URL:        "https://example.org/a",
		SourceKind: domain.SourceKindArticle,
		Status:     domain.ProcessingPending,
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	rec, err := log.Get(context.Background(), "https://example.org/a")
	require.NoError(t, err)
	assert.Equal(t, domain.ProcessingPending, rec.Status)
}

func TestProcessingLog_Record_SameStatusKeepsTimestamp(t *testing.T) {
	log := NewProcessingLog()
	ctx := context.Background()

	rec := domain.ProcessingRecord{URL: "https://example.org/a", Status: domain.ProcessingSuccess}
	id1, err := log.Record(ctx, rec)
	require.NoError(t, err)

	first, err := log.Get(ctx, rec.URL)
	require.NoError(t, err)

	id2, err := log.Record(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	second, err := log.Get(ctx, rec.URL)
	require.NoError(t, err)
	assert.Equal(t, first.ProcessedAt, second.ProcessedAt)
}

func TestProcessingLog_Record_StatusChangeUpdates(t *testing.T) {
	log := NewProcessingLog()
	ctx := context.Background()

	id1, err := log.Record(ctx, domain.ProcessingRecord{URL: "https://example.org/a", Status: domain.ProcessingPending})
	require.NoError(t, err)

	id2, err := log.Record(ctx, domain.ProcessingRecord{
		URL:     "https://example.org/a",
		Status:  domain.ProcessingError,
		Message: "fetch failed",
	})
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	rec, err := log.Get(ctx, "https://example.org/a")
	require.NoError(t, err)
	assert.Equal(t, domain.ProcessingError, rec.Status)
	assert.Equal(t, "fetch failed", rec.Message)
}

func TestProcessingLog_Record_EmptyURL(t *testing.T) {
	log := NewProcessingLog()
	_, err := log.Record(context.Background(), domain.ProcessingRecord{Status: domain.ProcessingPending})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProcessingLog_HasSucceeded(t *testing.T) {
	log := NewProcessingLog()
	ctx := context.Background()

	ok, err := log.HasSucceeded(ctx, "https://example.org/a")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = log.Record(ctx, domain.ProcessingRecord{URL: "https://example.org/a", Status: domain.ProcessingError})
	require.NoError(t, err)
	ok, err = log.HasSucceeded(ctx, "https://example.org/a")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = log.Record(ctx, domain.ProcessingRecord{URL: "https://example.org/a", Status: domain.ProcessingSuccess})
	require.NoError(t, err)
	ok, err = log.HasSucceeded(ctx, "https://example.org/a")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProcessingLog_Get_NotFound(t *testing.T) {
	log := NewProcessingLog()
	_, err := log.Get(context.Background(), "https://example.org/missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
