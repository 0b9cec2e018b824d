// ABOUTME: CLI command to ask a one-shot question from the terminal
// ABOUTME: Runs the full pipeline locally and prints answer plus citations
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ashishsinghal/askinsight/internal/config"
	"github.com/ashishsinghal/askinsight/internal/corpus"
	"github.com/ashishsinghal/askinsight/internal/llm"
	"github.com/ashishsinghal/askinsight/internal/rag"
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about the articles",
		Long: `Ask a question about the articles.

Embeds the question, retrieves the most relevant corpus chunks, and
prints a grounded answer with its sources. The local CLI is trusted, so
no rate limit applies.

Examples:
  askinsight ask "What is chunking?"
  askinsight ask --format json "How do embeddings work?"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("initializing LLM client: %w", err)
	}

	store := corpus.NewStore(cfg.CorpusPath)
	engine := rag.NewEngine(store, client, client, nil, cfg.TopK)

	answer, err := engine.Ask(cmd.Context(), "local", args[0])
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer.Text)

	if len(answer.Sources) > 0 && !quiet {
		fmt.Fprintln(cmd.OutOrStdout())
		color.New(color.Bold).Fprintln(cmd.OutOrStdout(), "Sources:")
		for _, src := range answer.Sources {
			color.New(color.FgCyan).Fprintf(cmd.OutOrStdout(), "  %s", src.Title)
			fmt.Fprintf(cmd.OutOrStdout(), " (%s)\n", src.URL)
		}
	}

	return nil
}
