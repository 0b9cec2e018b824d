// ABOUTME: MCP command starts the Model Context Protocol server
// ABOUTME: Lets LLM agents query the article corpus via stdio
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
	"github.com/ashishsinghal/askinsight/internal/mcp"
	"github.com/ashishsinghal/askinsight/internal/rag"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents.

Runs askinsight as an MCP (Model Context Protocol) server over stdio,
exposing the ask_insights tool for grounded question answering.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically launched by the agent host)
  askinsight mcp

  # Configure in the agent host's config:
  # {
  #   "mcpServers": {
  #     "askinsight": {
  #       "command": "askinsight",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
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
	// A missing corpus should fail here, not on the first tool call
	if _, err := store.Load(); err != nil {
		return err
	}

	engine := rag.NewEngine(store, client, client, nil, cfg.TopK)

	srv := mcpserver.NewMCPServer(
		"askinsight",
		versionInfo.Version,
	)
	mcp.RegisterTools(srv, engine)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("askinsight MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(srv)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received")
		}
		return nil
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}
