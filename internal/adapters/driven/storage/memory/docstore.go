package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/mapleline/policyscan/internal/core/domain"
	"github.com/mapleline/policyscan/internal/core/ports/driven"
	"github.com/mapleline/policyscan/internal/vector"
)

// Ensure DocumentStore implements the interfaces.
var (
	_ driven.SourceStore    = (*DocumentStore)(nil)
	_ driven.ChunkStore     = (*DocumentStore)(nil)
	_ driven.DocumentWriter = (*DocumentStore)(nil)
)

// DocumentStore is an in-memory implementation of the source, chunk,
// and document writer ports. Sources, content, and chunks live in one
// store because they are written together.
type DocumentStore struct {
	mu      sync.RWMutex
	nextID  int64
	sources map[int64]domain.Source
	content map[int64]domain.Content // keyed by source ID
	chunks  map[int64][]domain.Chunk // keyed by content ID
	parties *PartyStore
}

// NewDocumentStore creates a new in-memory document store. The party
// store is used to resolve party names on candidate rows and may be nil.
func NewDocumentStore(parties *PartyStore) *DocumentStore {
	return &DocumentStore{
		sources: make(map[int64]domain.Source),
		content: make(map[int64]domain.Content),
		chunks:  make(map[int64][]domain.Chunk),
		parties: parties,
	}
}

// SaveDocument stores the source, content, and chunks together.
func (s *DocumentStore) SaveDocument(_ context.Context, source domain.Source, content domain.Content, chunks []domain.Chunk) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.sources {
		if existing.URL == source.URL {
			return 0, domain.ErrAlreadyExists
		}
	}

	s.nextID++
	source.ID = s.nextID
	if source.CreatedAt.IsZero() {
		source.CreatedAt = time.Now()
	}
	s.sources[source.ID] = source

	s.nextID++
	content.ID = s.nextID
	content.SourceID = source.ID
	s.content[source.ID] = content

	stored := make([]domain.Chunk, len(chunks))
	for i, chunk := range chunks {
		s.nextID++
		chunk.ID = s.nextID
		chunk.ContentID = content.ID
		stored[i] = chunk
	}
	s.chunks[content.ID] = stored

	return source.ID, nil
}

// ExistsByURL reports whether a source with the given URL exists.
func (s *DocumentStore) ExistsByURL(_ context.Context, url string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, src := range s.sources {
		if src.URL == url {
			return true, nil
		}
	}
	return false, nil
}

// GetByURL retrieves a source by URL.
func (s *DocumentStore) GetByURL(_ context.Context, url string) (*domain.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, src := range s.sources {
		if src.URL == url {
			source := src
			return &source, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListByParty returns a party's sources, newest publication first.
func (s *DocumentStore) ListByParty(_ context.Context, partyID int64) ([]domain.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Source
	for _, src := range s.sources {
		if src.PartyID == partyID {
			result = append(result, src)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DatePublished > result[j].DatePublished
	})
	return result, nil
}

// Candidates returns stored chunks matching the filters. Chunks are
// returned in insertion order so ranking ties stay deterministic.
func (s *DocumentStore) Candidates(_ context.Context, filters driven.ChunkFilters) ([]driven.CandidateChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sourceIDs := make([]int64, 0, len(s.sources))
	for id := range s.sources {
		sourceIDs = append(sourceIDs, id)
	}
	sort.Slice(sourceIDs, func(i, j int) bool { return sourceIDs[i] < sourceIDs[j] })

	var result []driven.CandidateChunk
	for _, sourceID := range sourceIDs {
		src := s.sources[sourceID]
		if !matchesFilters(src, filters) {
			continue
		}
		content, ok := s.content[sourceID]
		if !ok {
			continue
		}
		for _, chunk := range s.chunks[content.ID] {
			result = append(result, driven.CandidateChunk{
				ChunkID:       chunk.ID,
				ContentID:     content.ID,
				Text:          chunk.Text,
				Embedding:     vector.Encode(chunk.Embedding),
				Title:         src.Title,
				URL:           src.URL,
				SourceKind:    src.Kind,
				PartyName:     s.partyName(src.PartyID),
				DatePublished: src.DatePublished,
			})
		}
	}
	return result, nil
}

// ListByContent returns a content's chunks ordered by index.
func (s *DocumentStore) ListByContent(_ context.Context, contentID int64) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chunks := slices.Clone(s.chunks[contentID])
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].Index < chunks[j].Index })
	for i := range chunks {
		chunks[i].Embedding = nil
	}
	return chunks, nil
}

func (s *DocumentStore) partyName(partyID int64) string {
	if s.parties == nil || partyID == 0 {
		return ""
	}
	party, err := s.parties.GetByID(context.Background(), partyID)
	if err != nil {
		return ""
	}
	return party.Name
}

func matchesFilters(src domain.Source, filters driven.ChunkFilters) bool {
	if len(filters.PartyIDs) > 0 && !slices.Contains(filters.PartyIDs, src.PartyID) {
		return false
	}
	if len(filters.SourceKinds) > 0 && !slices.Contains(filters.SourceKinds, src.Kind) {
		return false
	}
	// YYYY-MM-DD compares correctly as text.
	if filters.DateFrom != "" && src.DatePublished < filters.DateFrom {
		return false
	}
	if filters.DateTo != "" && src.DatePublished > filters.DateTo {
		return false
	}
	return true
}
