package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mapleline/policyscan/internal/chunker"
	"github.com/mapleline/policyscan/internal/core/domain"
	"github.com/mapleline/policyscan/internal/core/ports/driven"
	"github.com/mapleline/policyscan/internal/core/ports/driving"
	"github.com/mapleline/policyscan/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs the chunk-embed-persist pipeline.
//
// Idempotency is tracked at source granularity: the source row is
// written only after every chunk has been embedded, in one transaction
// with content and chunks, so a partially-embedded document leaves no
// trace and is safe to redo from scratch. The same policy applies to
// every source kind.
type IngestService struct {
	chunker          *chunker.Chunker
	embeddingService driven.EmbeddingService
	writer           driven.DocumentWriter
	sourceStore      driven.SourceStore
	processingLog    driven.ProcessingLogStore
}

// NewIngestService creates an ingest service.
func NewIngestService(
	ch *chunker.Chunker,
	embeddingService driven.EmbeddingService,
	writer driven.DocumentWriter,
	sourceStore driven.SourceStore,
	processingLog driven.ProcessingLogStore,
) *IngestService {
	return &IngestService{
		chunker:          ch,
		embeddingService: embeddingService,
		writer:           writer,
		sourceStore:      sourceStore,
		processingLog:    processingLog,
	}
}

// IngestDocument chunks, embeds, and persists one document.
// See driving.IngestService for the contract.
func (s *IngestService) IngestDocument(
	ctx context.Context, input domain.DocumentInput,
) (driving.IngestResult, error) {
	logger.Section("Ingest")
	logger.Debug("URL: %s", input.URL)

	if err := input.Validate(); err != nil {
		return driving.IngestResult{}, err
	}
	if s.embeddingService == nil {
		return driving.IngestResult{}, domain.ErrEmbeddingUnavailable
	}

	skipped, err := s.alreadyIngested(ctx, input.URL)
	if err != nil {
		return driving.IngestResult{}, err
	}
	if skipped {
		logger.Info("URL already ingested, skipping: %s", input.URL)
		return driving.IngestResult{Skipped: true}, nil
	}

	if _, err := s.processingLog.Record(ctx, domain.ProcessingRecord{
		SourceKind: input.Kind,
		ExternalID: s.externalID(input),
		URL:        input.URL,
		Status:     domain.ProcessingPending,
	}); err != nil {
		return driving.IngestResult{}, fmt.Errorf("record pending: %w", err)
	}

	result, err := s.ingest(ctx, input)
	if err != nil {
		// Record the failure so the batch can continue, then surface it.
		if _, logErr := s.processingLog.Record(ctx, domain.ProcessingRecord{
			SourceKind: input.Kind,
			ExternalID: s.externalID(input),
			URL:        input.URL,
			Status:     domain.ProcessingError,
			Message:    err.Error(),
		}); logErr != nil {
			logger.Error("record failure for %s: %v", input.URL, logErr)
		}
		return driving.IngestResult{}, err
	}

	if _, err := s.processingLog.Record(ctx, domain.ProcessingRecord{
		SourceKind: input.Kind,
		ExternalID: s.externalID(input),
		URL:        input.URL,
		Status:     domain.ProcessingSuccess,
	}); err != nil {
		return driving.IngestResult{}, fmt.Errorf("record success: %w", err)
	}

	logger.Info("Ingested %s: %d chunks", input.URL, result.ChunkCount)
	return result, nil
}

// ingest performs the chunk-embed-persist steps once idempotency
// checks have passed.
func (s *IngestService) ingest(
	ctx context.Context, input domain.DocumentInput,
) (driving.IngestResult, error) {
	pieces := s.chunker.Split(input.Text)
	logger.Debug("Split into %d chunks", len(pieces))

	model := s.embeddingService.ModelName()
	chunks := make([]domain.Chunk, 0, len(pieces))

	// Providers enforce rate limits; chunks embed one at a time so the
	// pacing decorator can space the calls.
	for i, piece := range pieces {
		logger.Debug("Embedding chunk %d/%d (%d chars)", i+1, len(pieces), len(piece))

		embedding, err := s.embeddingService.Embed(ctx, piece)
		if err != nil {
			return driving.IngestResult{}, fmt.Errorf("embed chunk %d/%d: %w", i+1, len(pieces), err)
		}

		chunks = append(chunks, domain.Chunk{
			Index:          i,
			Text:           piece,
			EmbeddingModel: model,
			Embedding:      embedding,
		})
	}

	metadata, err := s.encodeMetadata(input.Metadata)
	if err != nil {
		return driving.IngestResult{}, err
	}

	sourceID, err := s.writer.SaveDocument(ctx,
		domain.Source{
			PartyID:       input.PartyID,
			Title:         input.Title,
			Kind:          input.Kind,
			URL:           input.URL,
			ExternalID:    input.ExternalID,
			DatePublished: input.DatePublished,
			Language:      s.language(input),
		},
		domain.Content{Text: input.Text, Metadata: metadata},
		chunks,
	)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Lost a race to another run; the document is there.
			logger.Warn("Source already stored by a concurrent run: %s", input.URL)
			return driving.IngestResult{Skipped: true}, nil
		}
		return driving.IngestResult{}, fmt.Errorf("save document: %w", err)
	}

	return driving.IngestResult{SourceID: sourceID, ChunkCount: len(chunks)}, nil
}

// alreadyIngested reports whether the URL has a stored source or a
// success ledger entry.
func (s *IngestService) alreadyIngested(ctx context.Context, url string) (bool, error) {
	exists, err := s.sourceStore.ExistsByURL(ctx, url)
	if err != nil {
		return false, fmt.Errorf("check source: %w", err)
	}
	if exists {
		return true, nil
	}

	succeeded, err := s.processingLog.HasSucceeded(ctx, url)
	if err != nil {
		return false, fmt.Errorf("check processing log: %w", err)
	}
	return succeeded, nil
}

func (s *IngestService) externalID(input domain.DocumentInput) string {
	if input.ExternalID != "" {
		return input.ExternalID
	}
	return input.URL
}

func (s *IngestService) language(input domain.DocumentInput) string {
	if input.Language == "" {
		return "en"
	}
	return input.Language
}

func (s *IngestService) encodeMetadata(metadata map[string]any) (string, error) {
	if len(metadata) == 0 {
		return "", nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}
	return string(data), nil
}
