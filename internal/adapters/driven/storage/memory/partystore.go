package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mapleline/policyscan/internal/core/domain"
	"github.com/mapleline/policyscan/internal/core/ports/driven"
)

// Ensure PartyStore implements the interface.
var _ driven.PartyStore = (*PartyStore)(nil)

// PartyStore is an in-memory implementation of driven.PartyStore.
type PartyStore struct {
	mu      sync.RWMutex
	nextID  int64
	parties map[int64]domain.Party
}

// NewPartyStore creates a new in-memory party store.
func NewPartyStore() *PartyStore {
	return &PartyStore{parties: make(map[int64]domain.Party)}
}

// NewSeededPartyStore creates a party store holding the two tracked
// Canadian parties, matching the seed the sqlite store applies.
func NewSeededPartyStore() *PartyStore {
	s := NewPartyStore()
	s.Add(domain.Party{Name: "Liberal Party of Canada", Abbreviation: "LPC"})
	s.Add(domain.Party{Name: "Conservative Party of Canada", Abbreviation: "CPC"})
	return s
}

// Add stores a party and returns its assigned ID.
func (s *PartyStore) Add(party domain.Party) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	party.ID = s.nextID
	if party.CreatedAt.IsZero() {
		party.CreatedAt = time.Now()
	}
	s.parties[party.ID] = party
	return party.ID
}

// List returns all parties ordered by name.
func (s *PartyStore) List(_ context.Context) ([]domain.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Party, 0, len(s.parties))
	for _, p := range s.parties {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// GetByName retrieves a party by exact name.
func (s *PartyStore) GetByName(_ context.Context, name string) (*domain.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.parties {
		if p.Name == name {
			party := p
			return &party, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetByAbbreviation retrieves a party by exact abbreviation.
func (s *PartyStore) GetByAbbreviation(_ context.Context, abbreviation string) (*domain.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.parties {
		if strings.EqualFold(p.Abbreviation, abbreviation) {
			party := p
			return &party, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetByID retrieves a party by database identifier.
func (s *PartyStore) GetByID(_ context.Context, id int64) (*domain.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.parties[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}
