package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// QueryInput is the input schema for both GDPR tools.
type QueryInput struct {
	Query string `json:"query" jsonschema:"the question about GDPR articles 1 to 21"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Chunks []ChunkOutput `json:"chunks"`
	Count  int           `json:"count"`
}

// ChunkOutput represents a single retrieved chunk.
type ChunkOutput struct {
	ID      string  `json:"id"`
	Article int     `json:"article"`
	Summary string  `json:"summary"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
	Model   string   `json:"model"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve_gdpr",
		Description: "Retrieve the GDPR article chunks most relevant to a question",
	}, s.handleRetrieve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_gdpr",
		Description: "Answer a question using only GDPR articles 1 to 21, citing chunk ids",
	}, s.handleAsk)
}

// handleRetrieve handles the retrieve_gdpr tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	hits, err := s.ports.Query.Retrieve(ctx, input.Query)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	output := RetrieveOutput{
		Chunks: make([]ChunkOutput, len(hits)),
		Count:  len(hits),
	}
	for i, h := range hits {
		output.Chunks[i] = ChunkOutput{
			ID:      h.Chunk.ID,
			Article: h.Chunk.ArticleNumber,
			Summary: h.Chunk.Summary,
			Content: h.Chunk.Content,
			Score:   h.Score,
		}
	}
	return nil, output, nil
}

// handleAsk handles the ask_gdpr tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Query.Ask(ctx, input.Query)
	if err != nil {
		return nil, AskOutput{}, err
	}
	return nil, AskOutput{
		Answer:  answer.Text,
		Sources: answer.Sources,
		Model:   answer.Model,
	}, nil
}
