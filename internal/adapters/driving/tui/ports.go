// Package tui provides the interactive ask session for gdpr-rag.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Query answers questions from the index.
	Query driving.QueryService

	// Articles lists article summaries. Optional; the articles view is
	// empty without it.
	Articles driving.ArticleService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
