// ABOUTME: Serve command runs the HTTP question-answering API
// ABOUTME: Wires config, corpus, providers, limiter, and engine together
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ashishsinghal/askinsight/internal/config"
	"github.com/ashishsinghal/askinsight/internal/corpus"
	"github.com/ashishsinghal/askinsight/internal/llm"
	"github.com/ashishsinghal/askinsight/internal/rag"
	"github.com/ashishsinghal/askinsight/internal/ratelimit"
	"github.com/ashishsinghal/askinsight/internal/server"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ask API over HTTP",
		Long: `Serve the ask API over HTTP.

Loads the embeddings corpus, then answers POST /api/ask requests with
grounded answers and source citations. Per-client rate limiting keys off
the X-Forwarded-For header.`,
		RunE: runServe,
		Example: `  # Serve with defaults (:8080, data/embeddings.json)
  askinsight serve

  # Custom address and corpus
  ASKINSIGHT_ADDR=:9000 ASKINSIGHT_CORPUS=/srv/embeddings.json askinsight serve`,
	}

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("initializing LLM client: %w", err)
	}

	store := corpus.NewStore(cfg.CorpusPath)
	limiter := ratelimit.NewLimiter(cfg.RateLimit, cfg.RateWindow)
	engine := rag.NewEngine(store, client, client, limiter, cfg.TopK)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(engine, store, cfg.ListenAddr)
	return srv.Run(ctx)
}
