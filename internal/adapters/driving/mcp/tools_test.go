package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapleline/policyscan/internal/core/domain"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		mockRetrieval := &mockRetrievalService{
			results: []domain.SearchResult{
				{
					Title:         "Housing Plan",
					URL:           "https://liberal.ca/housing",
					PartyName:     "Liberal Party of Canada",
					SourceKind:    domain.SourceKindWebpage,
					DatePublished: "2024-03-01",
					Similarity:    0.95,
					ChunkText:     "We will build more homes.",
				},
			},
		}

		server, err := NewServer(&Ports{Retrieval: mockRetrieval})
		require.NoError(t, err)

		input := SearchInput{Query: "housing", Limit: 10}
		_, output, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "Housing Plan", output.Results[0].Title)
		assert.Equal(t, "https://liberal.ca/housing", output.Results[0].URL)
		assert.Equal(t, "Liberal Party of Canada", output.Results[0].Party)
		assert.Equal(t, "webpage", output.Results[0].Kind)
		assert.Equal(t, 0.95, output.Results[0].Similarity)
		assert.Equal(t, "We will build more homes.", output.Results[0].Text)
	})

	t.Run("default limit is 10", func(t *testing.T) {
		mockRetrieval := &mockRetrievalService{}
		server, err := NewServer(&Ports{Retrieval: mockRetrieval})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "test"})
		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.Equal(t, 10, mockRetrieval.lastOpts.Limit)
	})

	t.Run("party hints become ID filters", func(t *testing.T) {
		mockRetrieval := &mockRetrievalService{partyIDs: []int64{2}}
		server, err := NewServer(&Ports{Retrieval: mockRetrieval})
		require.NoError(t, err)

		input := SearchInput{Query: "carbon tax", Parties: []string{"cpc"}}
		_, _, err = server.handleSearch(ctx, nil, input)
		require.NoError(t, err)
		assert.Equal(t, []int64{2}, mockRetrieval.lastOpts.PartyIDs)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mockRetrieval := &mockRetrievalService{err: errors.New("search failed")}
		server, err := NewServer(&Ports{Retrieval: mockRetrieval})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "test"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	mockChat := &mockChatService{answer: "Both parties support some form of childcare funding."}
	server, err := NewServer(&Ports{
		Retrieval: &mockRetrievalService{},
		Chat:      mockChat,
	})
	require.NoError(t, err)

	input := AskInput{
		Question: "Where do the parties stand on childcare?",
		Parties:  []string{"liberal", "conservative"},
		Compare:  true,
	}
	_, output, err := server.handleAsk(ctx, nil, input)

	require.NoError(t, err)
	assert.Equal(t, "Both parties support some form of childcare funding.", output.Answer)
	assert.True(t, mockChat.lastOpts.CompareParties)
	assert.Equal(t, []string{"liberal", "conservative"}, mockChat.lastOpts.Parties)
}

func TestServer_handleListParties(t *testing.T) {
	ctx := context.Background()

	server, err := NewServer(&Ports{
		Retrieval: &mockRetrievalService{},
		Parties: &mockPartyStore{parties: []domain.Party{
			{ID: 2, Name: "Conservative Party of Canada", Abbreviation: "CPC"},
			{ID: 1, Name: "Liberal Party of Canada", Abbreviation: "LPC"},
		}},
	})
	require.NoError(t, err)

	_, output, err := server.handleListParties(ctx, nil, struct{}{})
	require.NoError(t, err)
	require.Len(t, output.Parties, 2)
	assert.Equal(t, "CPC", output.Parties[0].Abbreviation)
}

func TestNewServer_RequiresRetrieval(t *testing.T) {
	_, err := NewServer(&Ports{})
	assert.ErrorIs(t, err, ErrMissingRetrievalService)
}
