// ABOUTME: MCP tool handler implementations for the askinsight server
// ABOUTME: Bridges CallToolRequest arguments to the engine and back to JSON
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ashishsinghal/askinsight/internal/rag"
	"github.com/ashishsinghal/askinsight/internal/server"
)

// mcpIdentity is the rate-limit key for stdio callers. The stdio surface
// is local and trusted, but a shared limiter still sees it as one client.
const mcpIdentity = "mcp-local"

// Handlers holds the tool handler state.
type Handlers struct {
	engine server.Asker
}

// AskInsights handles the ask_insights tool.
func (h *Handlers) AskInsights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	answer, err := h.engine.Ask(ctx, mcpIdentity, question)
	if err != nil {
		switch {
		case errors.Is(err, rag.ErrNoQuestion):
			return mcp.NewToolResultError("question must not be empty"), nil
		case errors.Is(err, rag.ErrRateLimited):
			return mcp.NewToolResultError("rate limit exceeded, try again later"), nil
		default:
			log.Printf("ask_insights failed: %v", err)
			return mcp.NewToolResultError("something went wrong answering the question"), nil
		}
	}

	payload, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding answer: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
