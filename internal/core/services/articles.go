package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driving"
)

// Ensure ArticleService implements the interface.
var _ driving.ArticleService = (*ArticleService)(nil)

// ArticleService serves the article summary table.
type ArticleService struct {
	summaries driven.SummarySource
}

// NewArticleService creates a new article service.
func NewArticleService(summaries driven.SummarySource) *ArticleService {
	return &ArticleService{summaries: summaries}
}

// List returns articles 1..21 with their summaries.
func (s *ArticleService) List(ctx context.Context) ([]domain.ArticleDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	table, err := s.summaries.Summaries()
	if err != nil {
		return nil, fmt.Errorf("load summaries: %w", err)
	}
	return AssembleArticles(nil, table)
}
