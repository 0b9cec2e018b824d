// ABOUTME: Root command for the askinsight CLI
// ABOUTME: Registers subcommands and global flags
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "askinsight",
		Short: "Retrieval-augmented Q&A over the blog's articles",
		Long: `askinsight answers questions about the blog's articles.

Questions are embedded, matched against a precomputed corpus of article
chunks by cosine similarity, and answered by an LLM constrained to the
retrieved context. Serve it over HTTP, over MCP for agents, or ask a
one-shot question from the terminal.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, json, plain")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}
