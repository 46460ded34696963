package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/shiori/internal/core/domain"
)

// noResultsText is sent to the assistant when nothing in the corpus matched.
const noResultsText = "No relevant passages found in the knowledge base."

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the question or keywords to look up in the knowledge base"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of passages to return (1-15, default 15)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []domain.Passage `json:"results"`
	Count   int              `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "search",
		Description: "Search the local knowledge base for passages relevant to a question. " +
			"Works with Japanese and English. Returns at most 15 passages, best first, " +
			"each labelled with its source file.",
	}, s.handleSearch)
}

// handleSearch handles the search tool invocation. The text content is
// the passages formatted as a ready-to-use context block.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	passages := s.ports.Search.Search(ctx, input.Query, domain.SearchOptions{Limit: input.Limit})
	if passages == nil {
		passages = []domain.Passage{}
	}

	output := SearchOutput{
		Results: passages,
		Count:   len(passages),
	}

	text := noResultsText
	if len(passages) > 0 {
		text = domain.FormatContext(passages)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, output, nil
}
