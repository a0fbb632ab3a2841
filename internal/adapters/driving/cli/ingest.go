package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mapleline/policyscan/internal/connectors/markdown"
	"github.com/mapleline/policyscan/internal/connectors/news"
	"github.com/mapleline/policyscan/internal/connectors/webpage"
	"github.com/mapleline/policyscan/internal/connectors/youtube"
	"github.com/mapleline/policyscan/internal/core/domain"
	"github.com/mapleline/policyscan/internal/logger"
)

var (
	ingestParty     string
	ingestCutoff    string
	ingestSelector  string
	ingestExportDir string
	ingestWatch     bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest party content into the local database",
	Long: `Ingest commands fetch content from a source, split it into
chunks, embed each chunk, and store everything locally. URLs that were
already ingested successfully are skipped.`,
}

var ingestVideosCmd = &cobra.Command{
	Use:   "videos [urls...]",
	Short: "Ingest YouTube video transcripts",
	Long: `Fetches metadata and transcripts for the given YouTube watch
URLs. Requires YOUTUBE_API_KEY for metadata and the yt-dlp binary on
PATH for transcript download.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngestVideos,
}

var ingestPagesCmd = &cobra.Command{
	Use:   "pages [urls...]",
	Short: "Ingest webpages",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIngestPages,
}

var ingestNewsCmd = &cobra.Command{
	Use:   "news [feed-urls...]",
	Short: "Ingest news articles from RSS/Atom feeds",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIngestNews,
}

var ingestMarkdownCmd = &cobra.Command{
	Use:   "markdown [dir]",
	Short: "Ingest markdown files from a drop directory",
	Long: `Ingests every markdown file in the directory. With --watch the
command keeps running and ingests new files as they appear.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestMarkdown,
}

func init() {
	ingestCmd.PersistentFlags().StringVar(&ingestParty, "party", "", "party to attribute content to (name or abbreviation)")
	ingestCmd.PersistentFlags().StringVar(&ingestCutoff, "cutoff", "", "skip content published before this date (YYYY-MM-DD)")
	ingestVideosCmd.Flags().StringVar(&ingestExportDir, "export-dir", "", "also write transcripts as markdown files here")
	ingestPagesCmd.Flags().StringVar(&ingestSelector, "selector", "", "CSS selector for the content container")
	ingestNewsCmd.Flags().StringVar(&ingestSelector, "selector", "", "CSS selector for article pages")
	ingestMarkdownCmd.Flags().BoolVar(&ingestWatch, "watch", false, "watch the directory for new files")

	ingestCmd.AddCommand(ingestVideosCmd)
	ingestCmd.AddCommand(ingestPagesCmd)
	ingestCmd.AddCommand(ingestNewsCmd)
	ingestCmd.AddCommand(ingestMarkdownCmd)
	rootCmd.AddCommand(ingestCmd)
}

// ingestPartyID resolves the --party flag, 0 when unset.
func ingestPartyID(cmd *cobra.Command) (int64, error) {
	if ingestParty == "" {
		return 0, nil
	}
	party, err := resolveParty(cmd, ingestParty)
	if err != nil {
		return 0, err
	}
	return party.ID, nil
}

// ingestAll runs the pipeline for a batch of documents, reporting a
// summary line at the end. Per-document failures are logged and
// counted, not fatal.
func ingestAll(cmd *cobra.Command, docs []*domain.DocumentInput) error {
	var stored, skipped, failed int
	for _, doc := range docs {
		result, err := ingestService.IngestDocument(cmd.Context(), *doc)
		switch {
		case err != nil:
			if errors.Is(err, domain.ErrEmbeddingUnavailable) {
				return err
			}
			logger.Warn("Failed to ingest %s: %v", doc.URL, err)
			failed++
		case result.Skipped:
			skipped++
		default:
			cmd.Printf("  Ingested %s (%d chunks)\n", doc.Title, result.ChunkCount)
			stored++
		}
	}
	cmd.Printf("Done: %d ingested, %d skipped, %d failed.\n", stored, skipped, failed)
	return nil
}

func runIngestVideos(cmd *cobra.Command, args []string) error {
	partyID, err := ingestPartyID(cmd)
	if err != nil {
		return err
	}

	apiKey := os.Getenv("YOUTUBE_API_KEY")
	if apiKey == "" {
		return errors.New("YOUTUBE_API_KEY not set")
	}
	metadata, err := youtube.NewMetadataProvider(cmd.Context(), apiKey)
	if err != nil {
		return fmt.Errorf("create youtube client: %w", err)
	}

	connector := youtube.NewConnector(metadata, youtube.NewTranscriptProvider(""))
	connector.CutoffDate = ingestCutoff
	connector.ExportDir = ingestExportDir

	docs, err := connector.FetchAll(cmd.Context(), args, partyID)
	if err != nil {
		return err
	}
	return ingestAll(cmd, docs)
}

func runIngestPages(cmd *cobra.Command, args []string) error {
	partyID, err := ingestPartyID(cmd)
	if err != nil {
		return err
	}

	pages := make([]webpage.Page, 0, len(args))
	for _, url := range args {
		pages = append(pages, webpage.Page{
			URL:      url,
			PartyID:  partyID,
			Selector: ingestSelector,
		})
	}

	docs, err := webpage.NewConnector(nil).FetchAll(cmd.Context(), pages)
	if err != nil {
		return err
	}
	return ingestAll(cmd, docs)
}

func runIngestNews(cmd *cobra.Command, args []string) error {
	partyID, err := ingestPartyID(cmd)
	if err != nil {
		return err
	}

	connector := news.NewConnector(webpage.NewConnector(nil))
	connector.CutoffDate = ingestCutoff

	for _, feedURL := range args {
		docs, err := connector.Fetch(cmd.Context(), news.Feed{
			URL:      feedURL,
			PartyID:  partyID,
			Selector: ingestSelector,
		})
		if err != nil {
			logger.Warn("Skipping feed %s: %v", feedURL, err)
			continue
		}
		if err := ingestAll(cmd, docs); err != nil {
			return err
		}
	}
	return nil
}

func runIngestMarkdown(cmd *cobra.Command, args []string) error {
	partyID, err := ingestPartyID(cmd)
	if err != nil {
		return err
	}
	dir := args[0]

	docs, err := markdown.ScanDir(dir)
	if err != nil {
		return err
	}
	inputs := make([]*domain.DocumentInput, 0, len(docs))
	for _, doc := range docs {
		inputs = append(inputs, doc.Input(partyID))
	}
	if err := ingestAll(cmd, inputs); err != nil {
		return err
	}

	if !ingestWatch {
		return nil
	}

	svc := ingestService
	return markdown.Watch(cmd.Context(), dir, func(doc *markdown.Document) {
		result, err := svc.IngestDocument(cmd.Context(), *doc.Input(partyID))
		if err != nil {
			logger.Warn("Failed to ingest %s: %v", doc.Path, err)
			return
		}
		if !result.Skipped {
			cmd.Printf("  Ingested %s (%d chunks)\n", doc.Title, result.ChunkCount)
		}
	})
}
