package mcp

import (
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query retrieves chunks and answers questions.
	Query driving.QueryService

	// Articles lists the article summaries. Optional.
	Articles driving.ArticleService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
