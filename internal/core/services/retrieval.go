package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mapleline/policyscan/internal/core/domain"
	"github.com/mapleline/policyscan/internal/core/ports/driven"
	"github.com/mapleline/policyscan/internal/core/ports/driving"
	"github.com/mapleline/policyscan/internal/logger"
	"github.com/mapleline/policyscan/internal/vector"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// RetrievalService ranks stored chunks against a query embedding.
//
// Ranking is a brute-force cosine scan over every candidate row. That
// is deliberate: the corpus this system targets is a few thousand
// chunks, where a linear scan is simpler and fast enough, and no
// approximate index is warranted.
type RetrievalService struct {
	chunkStore       driven.ChunkStore
	partyStore       driven.PartyStore
	embeddingService driven.EmbeddingService
}

// NewRetrievalService creates a retrieval service.
func NewRetrievalService(
	chunkStore driven.ChunkStore,
	partyStore driven.PartyStore,
	embeddingService driven.EmbeddingService,
) *RetrievalService {
	return &RetrievalService{
		chunkStore:       chunkStore,
		partyStore:       partyStore,
		embeddingService: embeddingService,
	}
}

// Search embeds the query and returns chunks ranked by cosine
// similarity, filtered and truncated per the options.
func (s *RetrievalService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Retrieval")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}
	if s.embeddingService == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	opts = opts.Normalised()
	logger.Debug("Limit: %d, MinSimilarity: %.2f", opts.Limit, opts.MinSimilarity)

	queryVec, err := s.embeddingService.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(queryVec))

	candidates, err := s.chunkStore.Candidates(ctx, driven.ChunkFilters{
		PartyIDs:    opts.PartyIDs,
		SourceKinds: opts.SourceKinds,
		DateFrom:    opts.DateFrom,
		DateTo:      opts.DateTo,
	})
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	logger.Debug("Candidates: %d chunks", len(candidates))

	results, err := Rank(queryVec, candidates, opts.MinSimilarity, opts.Limit)
	if err != nil {
		return nil, err
	}

	logger.Info("Results: %d above threshold", len(results))
	return results, nil
}

// Rank scores candidates against the query vector, keeps those at or
// above minSimilarity, sorts by descending similarity (ties keep input
// order), and truncates to limit. Candidates may arrive pre-filtered
// or not; Rank never assumes storage applied any filter.
func Rank(
	queryVec []float32, candidates []driven.CandidateChunk, minSimilarity float64, limit int,
) ([]domain.SearchResult, error) {
	results := make([]domain.SearchResult, 0, len(candidates))

	for i := range candidates {
		candVec, err := vector.Decode(candidates[i].Embedding)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", candidates[i].ChunkID, err)
		}

		sim, err := vector.Cosine(queryVec, candVec)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", candidates[i].ChunkID, err)
		}

		if sim < minSimilarity {
			continue
		}

		results = append(results, domain.SearchResult{
			ChunkID:       candidates[i].ChunkID,
			ContentID:     candidates[i].ContentID,
			ChunkText:     candidates[i].Text,
			Similarity:    sim,
			Title:         candidates[i].Title,
			URL:           candidates[i].URL,
			SourceKind:    candidates[i].SourceKind,
			PartyName:     candidates[i].PartyName,
			DatePublished: candidates[i].DatePublished,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// Context embeds the query, ranks, and formats the hits into the
// grouped, citation-annotated block handed to the language model.
func (s *RetrievalService) Context(
	ctx context.Context, query string, opts domain.SearchOptions,
) (string, error) {
	results, err := s.Search(ctx, query, opts)
	if err != nil {
		return "", err
	}
	return FormatContext(results), nil
}

// ResolveParties maps party hints to IDs. A hint matches on a
// case-insensitive name substring or an exact abbreviation. Unknown
// hints resolve to nothing rather than failing.
func (s *RetrievalService) ResolveParties(ctx context.Context, hints []string) ([]int64, error) {
	if len(hints) == 0 {
		return nil, nil
	}

	parties, err := s.partyStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}

	var ids []int64
	for _, party := range parties {
		for _, hint := range hints {
			if party.Matches(hint) {
				ids = append(ids, party.ID)
				break
			}
		}
	}

	logger.Debug("Party hints %v resolved to %v", hints, ids)
	return ids, nil
}

// FormatContext renders ranked results as the retrieval context block:
// a heading per party, then one "Source:" citation per originating
// source with that source's chunk texts beneath it. Multiple chunks
// from the same source merge under a single citation. Empty input
// yields the NoResultsMessage sentinel.
func FormatContext(results []domain.SearchResult) string {
	if len(results) == 0 {
		return driving.NoResultsMessage
	}

	// Group by party, then by source URL, preserving rank order within
	// each group.
	partyOrder := make([]string, 0, 2)
	bySource := make(map[string]map[string][]domain.SearchResult)
	sourceOrder := make(map[string][]string)

	for _, r := range results {
		if _, ok := bySource[r.PartyName]; !ok {
			partyOrder = append(partyOrder, r.PartyName)
			bySource[r.PartyName] = make(map[string][]domain.SearchResult)
		}
		if _, ok := bySource[r.PartyName][r.URL]; !ok {
			sourceOrder[r.PartyName] = append(sourceOrder[r.PartyName], r.URL)
		}
		bySource[r.PartyName][r.URL] = append(bySource[r.PartyName][r.URL], r)
	}

	var b strings.Builder
	b.WriteString("I found the following relevant policy information from Canadian political parties:\n\n")

	for _, party := range partyOrder {
		fmt.Fprintf(&b, "## %s Position\n", party)

		for _, url := range sourceOrder[party] {
			hits := bySource[party][url]
			fmt.Fprintf(&b, "Source: %q (%s)\n", hits[0].Title, url)
			for _, hit := range hits {
				b.WriteString(hit.ChunkText)
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}
