package mcp

import (
	"context"

	"github.com/mapleline/policyscan/internal/core/domain"
	"github.com/mapleline/policyscan/internal/core/ports/driving"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	results  []domain.SearchResult
	partyIDs []int64
	lastOpts domain.SearchOptions
	err      error
}

var _ driving.RetrievalService = (*mockRetrievalService)(nil)

func (m *mockRetrievalService) Search(
	_ context.Context, _ string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockRetrievalService) Context(
	_ context.Context, _ string, _ domain.SearchOptions,
) (string, error) {
	return "", m.err
}

func (m *mockRetrievalService) ResolveParties(
	_ context.Context, _ []string,
) ([]int64, error) {
	return m.partyIDs, m.err
}

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	answer   string
	lastOpts domain.ChatOptions
	err      error
}

var _ driving.ChatService = (*mockChatService)(nil)

func (m *mockChatService) Ask(
	_ context.Context, _ string, opts domain.ChatOptions,
) (string, error) {
	m.lastOpts = opts
	return m.answer, m.err
}

// mockPartyStore is a mock implementation of driven.PartyStore.
type mockPartyStore struct {
	parties []domain.Party
	err     error
}

func (m *mockPartyStore) List(_ context.Context) ([]domain.Party, error) {
	return m.parties, m.err
}

func (m *mockPartyStore) GetByName(_ context.Context, _ string) (*domain.Party, error) {
	return nil, domain.ErrNotFound
}

func (m *mockPartyStore) GetByAbbreviation(_ context.Context, _ string) (*domain.Party, error) {
	return nil, domain.ErrNotFound
}

func (m *mockPartyStore) GetByID(_ context.Context, _ int64) (*domain.Party, error) {
	return nil, domain.ErrNotFound
}
