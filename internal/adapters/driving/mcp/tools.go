package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mapleline/policyscan/internal/core/domain"
)

// SearchInput is the input schema for the search_policies tool.
type SearchInput struct {
	Query   string   `json:"query" jsonschema:"the policy topic or question to search for"`
	Parties []string `json:"parties,omitempty" jsonschema:"restrict to these parties (names or abbreviations)"`
	Limit   int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search_policies tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Party         string  `json:"party,omitempty"`
	Kind          string  `json:"kind"`
	DatePublished string  `json:"date_published,omitempty"`
	Similarity    float64 `json:"similarity"`
	Text          string  `json:"text"`
}

// AskInput is the input schema for the ask_policy_question tool.
type AskInput struct {
	Question string   `json:"question" jsonschema:"the policy question to answer"`
	Parties  []string `json:"parties,omitempty" jsonschema:"restrict context to these parties"`
	Compare  bool     `json:"compare,omitempty" jsonschema:"compare party positions in the answer"`
}

// AskOutput is the output schema for the ask_policy_question tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

// PartiesOutput is the output schema for the list_parties tool.
type PartiesOutput struct {
	Parties []PartyOutput `json:"parties"`
}

// PartyOutput represents one tracked party.
type PartyOutput struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// registerTools registers all tool handlers with the MCP server.
// Tools whose port is missing are simply not offered.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_policies",
		Description: "Search stored Canadian party policy content by semantic similarity",
	}, s.handleSearch)

	if s.ports.Chat != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask_policy_question",
			Description: "Ask the policy assistant a question answered from stored party content with citations",
		}, s.handleAsk)
	}

	if s.ports.Parties != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_parties",
			Description: "List the political parties tracked in the database",
		}, s.handleListParties)
	}
}

// handleSearch handles the search_policies tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	opts := domain.SearchOptions{Limit: limit}
	if len(input.Parties) > 0 {
		ids, err := s.ports.Retrieval.ResolveParties(ctx, input.Parties)
		if err != nil {
			return nil, SearchOutput{}, err
		}
		opts.PartyIDs = ids
	}

	results, err := s.ports.Retrieval.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			Title:         results[i].Title,
			URL:           results[i].URL,
			Party:         results[i].PartyName,
			Kind:          string(results[i].SourceKind),
			DatePublished: results[i].DatePublished,
			Similarity:    results[i].Similarity,
			Text:          results[i].ChunkText,
		}
	}

	return nil, output, nil
}

// handleAsk handles the ask_policy_question tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	opts := domain.ChatOptions{
		Parties:        input.Parties,
		CompareParties: input.Compare,
	}

	answer, err := s.ports.Chat.Ask(ctx, input.Question, opts)
	if err != nil {
		return nil, AskOutput{}, err
	}
	return nil, AskOutput{Answer: answer}, nil
}

// handleListParties handles the list_parties tool invocation.
func (s *Server) handleListParties(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, PartiesOutput, error) {
	parties, err := s.ports.Parties.List(ctx)
	if err != nil {
		return nil, PartiesOutput{}, err
	}

	output := PartiesOutput{Parties: make([]PartyOutput, len(parties))}
	for i, party := range parties {
		output.Parties[i] = PartyOutput{
			Name:         party.Name,
			Abbreviation: party.Abbreviation,
		}
	}
	return nil, output, nil
}
