// Package cli wires the application together and exposes it as a
// cobra command tree.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mapleline/policyscan/internal/adapters/driven/config/file"
	"github.com/mapleline/policyscan/internal/adapters/driven/embedding"
	embeddinggemini "github.com/mapleline/policyscan/internal/adapters/driven/embedding/gemini"
	"github.com/mapleline/policyscan/internal/adapters/driven/embedding/openai"
	llmgemini "github.com/mapleline/policyscan/internal/adapters/driven/llm/gemini"
	"github.com/mapleline/policyscan/internal/adapters/driven/storage/sqlite"
	"github.com/mapleline/policyscan/internal/chunker"
	"github.com/mapleline/policyscan/internal/core/ports/driven"
	"github.com/mapleline/policyscan/internal/core/services"
	"github.com/mapleline/policyscan/internal/logger"
)

var version = "dev"

var (
	verbose   bool
	configDir string
	dataDir   string
)

// Wired services, available to every command after PersistentPreRunE.
var (
	store            *sqlite.Store
	configStore      *file.ConfigStore
	promptStore      *file.PromptStore
	embeddingService driven.EmbeddingService
	llmService       driven.LLMService
	retrievalService *services.RetrievalService
	ingestService    *services.IngestService
	chatService      *services.ChatService
)

var rootCmd = &cobra.Command{
	Use:   "policyscan",
	Short: "Search and question Canadian party policy positions",
	Long: `Policyscan ingests Canadian political party content (video
transcripts, news articles, platform webpages) into a local database,
embeds it for semantic search, and answers policy questions with
citations back to the original sources.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

// Execute runs the command tree. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.policyscan)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.policyscan/data)")
}

// setup builds the adapter and service graph before any command runs.
// Missing API keys degrade features rather than failing here: commands
// that need embeddings or the LLM report their own errors.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		configDir = filepath.Join(home, ".policyscan")
	}
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}

	file.LoadEnv(configDir)

	var err error
	configStore, err = file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	promptStore, err = file.NewPromptStore(configDir)
	if err != nil {
		return fmt.Errorf("load prompts: %w", err)
	}

	store, err = sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	embeddingService = buildEmbedding()
	llmService = buildLLM()

	ch, err := chunker.New()
	if err != nil {
		return fmt.Errorf("build chunker: %w", err)
	}

	retrievalService = services.NewRetrievalService(
		store.ChunkStore(), store.PartyStore(), embeddingService)
	ingestService = services.NewIngestService(
		ch, embeddingService, store.DocumentWriter(),
		store.SourceStore(), store.ProcessingLogStore())
	chatService = services.NewChatService(retrievalService, llmService, promptStore)

	return nil
}

func teardown(_ *cobra.Command, _ []string) {
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Warn("Closing database: %v", err)
		}
	}
}

// buildEmbedding picks the embedding provider from config, wrapping it
// in the retry and pacing decorator. Returns nil when no provider is
// configured; ingestion and search are disabled without one.
func buildEmbedding() driven.EmbeddingService {
	var inner driven.EmbeddingService

	provider := configStore.GetString("embedding.provider")
	if provider == "" {
		provider = "gemini"
	}

	switch provider {
	case "gemini":
		key := os.Getenv("GEMINI_API_KEY")
		if key == "" {
			logger.Debug("GEMINI_API_KEY not set, embeddings disabled")
			return nil
		}
		cfg := embeddinggemini.Config{APIKey: key, Model: configStore.GetString("embedding.model")}
		svc, err := embeddinggemini.NewEmbeddingService(cfg)
		if err != nil {
			logger.Warn("Embedding provider unavailable: %v", err)
			return nil
		}
		inner = svc
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			logger.Debug("OPENAI_API_KEY not set, embeddings disabled")
			return nil
		}
		cfg := openai.Config{APIKey: key, Model: configStore.GetString("embedding.model")}
		svc, err := openai.NewEmbeddingService(cfg)
		if err != nil {
			logger.Warn("Embedding provider unavailable: %v", err)
			return nil
		}
		inner = svc
	default:
		logger.Warn("Unknown embedding provider %q, embeddings disabled", provider)
		return nil
	}

	return embedding.NewPacedService(inner, embedding.RetryConfig{})
}

// buildLLM creates the chat model client. Returns nil when no key is
// configured; chat is disabled but search still works.
func buildLLM() driven.LLMService {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		logger.Debug("GEMINI_API_KEY not set, chat disabled")
		return nil
	}
	cfg := llmgemini.Config{APIKey: key, Model: configStore.GetString("llm.model")}
	svc, err := llmgemini.NewLLMService(cfg)
	if err != nil {
		logger.Warn("LLM provider unavailable: %v", err)
		return nil
	}
	return svc
}
