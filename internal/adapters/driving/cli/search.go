package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mapleline/policyscan/internal/core/domain"
)

var (
	searchLimit     int
	searchThreshold float64
	searchParty     string
	searchKind      string
	searchFrom      string
	searchTo        string
	searchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search stored policy content",
	Long: `Performs semantic search over ingested policy content.
The query is embedded and compared against stored chunks by cosine
similarity; results above the similarity threshold are returned with
their source citations.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results")
	searchCmd.Flags().Float64Var(&searchThreshold, "threshold", 0, "minimum cosine similarity")
	searchCmd.Flags().StringVar(&searchParty, "party", "", "restrict to one party (name or abbreviation)")
	searchCmd.Flags().StringVar(&searchKind, "kind", "", "restrict to a source kind (video, article, webpage)")
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "earliest publication date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "latest publication date (YYYY-MM-DD)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	opts := domain.SearchOptions{
		Limit:         searchLimit,
		MinSimilarity: searchThreshold,
		DateFrom:      searchFrom,
		DateTo:        searchTo,
	}

	if searchParty != "" {
		party, err := resolveParty(cmd, searchParty)
		if err != nil {
			return err
		}
		opts.PartyIDs = []int64{party.ID}
	}
	if searchKind != "" {
		kind := domain.SourceKind(searchKind)
		if !kind.Valid() {
			return fmt.Errorf("invalid source kind %q", searchKind)
		}
		opts.SourceKinds = []domain.SourceKind{kind}
	}

	results, err := retrievalService.Search(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, result := range results {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, result.Title, result.Similarity)
		if result.PartyName != "" {
			cmd.Printf("      %s", result.PartyName)
			if result.DatePublished != "" {
				cmd.Printf(", %s", result.DatePublished)
			}
			cmd.Println()
		}
		cmd.Printf("      %s\n", result.URL)
		cmd.Printf("      %s\n", snippet(result.ChunkText, 200))
		cmd.Println()
	}
	return nil
}

// snippet truncates text for terminal display.
func snippet(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
