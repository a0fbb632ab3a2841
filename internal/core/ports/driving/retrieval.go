package driving

import (
	"context"

	"github.com/mapleline/policyscan/internal/core/domain"
)

// NoResultsMessage is returned by Context when nothing clears the
// similarity threshold. It is a valid, non-error outcome: callers must
// not treat it as empty output.
const NoResultsMessage = "No relevant policy information found for this query."

// RetrievalService answers natural-language queries against the stored
// chunk corpus.
type RetrievalService interface {
	// Search embeds the query and returns the chunks ranked by cosine
	// similarity, filtered and truncated per the options.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// Context embeds the query, ranks, and formats the hits into the
	// grouped, citation-annotated block handed to the language model.
	// Returns NoResultsMessage when nothing clears the threshold.
	Context(ctx context.Context, query string, opts domain.SearchOptions) (string, error)

	// ResolveParties maps party hints (name substrings or exact
	// abbreviations, case-insensitive) to party IDs.
	ResolveParties(ctx context.Context, hints []string) ([]int64, error)
}
