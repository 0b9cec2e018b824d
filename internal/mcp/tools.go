// ABOUTME: MCP tool definitions for the askinsight stdio server
// ABOUTME: Exposes the question-answering engine as the ask_insights tool
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ashishsinghal/askinsight/internal/server"
)

// RegisterTools registers the ask tool with the MCP server.
func RegisterTools(srv *mcpserver.MCPServer, engine server.Asker) *Handlers {
	handlers := &Handlers{engine: engine}

	srv.AddTool(mcp.Tool{
		Name:        "ask_insights",
		Description: "Ask a question about the blog's articles. Answers are grounded in the embedded corpus and cite their sources.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Natural-language question to answer from the articles",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskInsights)

	return handlers
}
