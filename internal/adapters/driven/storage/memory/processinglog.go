package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mapleline/policyscan/internal/core/domain"
	"github.com/mapleline/policyscan/internal/core/ports/driven"
)

// Ensure ProcessingLog implements the interface.
var _ driven.ProcessingLogStore = (*ProcessingLog)(nil)

// ProcessingLog is an in-memory implementation of driven.ProcessingLogStore.
type ProcessingLog struct {
	mu      sync.RWMutex
	nextID  int64
	records map[string]domain.ProcessingRecord // keyed by URL
}

// NewProcessingLog creates a new in-memory processing log.
func NewProcessingLog() *ProcessingLog {
	return &ProcessingLog{records: make(map[string]domain.ProcessingRecord)}
}

// Record upserts a processing record keyed by URL. An existing record
// keeps its ID; the row is only rewritten when the status changes.
func (s *ProcessingLog) Record(_ context.Context, rec domain.ProcessingRecord) (int64, error) {
	if rec.URL == "" {
		return 0, domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.records[rec.URL]; ok {
		if existing.Status == rec.Status {
			return existing.ID, nil
		}
		rec.ID = existing.ID
		rec.ProcessedAt = time.Now()
		s.records[rec.URL] = rec
		return existing.ID, nil
	}

	s.nextID++
	rec.ID = s.nextID
	rec.ProcessedAt = time.Now()
	s.records[rec.URL] = rec
	return rec.ID, nil
}

// Get retrieves the record for a URL.
func (s *ProcessingLog) Get(_ context.Context, url string) (*domain.ProcessingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[url]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// HasSucceeded reports whether the URL is marked success.
func (s *ProcessingLog) HasSucceeded(_ context.Context, url string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[url]
	return ok && rec.Status == domain.ProcessingSuccess, nil
}
