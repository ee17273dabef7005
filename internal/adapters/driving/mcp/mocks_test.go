package mcp

import (
	"context"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	hits   []domain.RetrievedChunk
	answer *domain.Answer
	err    error
	asked  []string
}

func (m *mockQueryService) Retrieve(_ context.Context, _ string) ([]domain.RetrievedChunk, error) {
	return m.hits, m.err
}

func (m *mockQueryService) Prepare(_ context.Context, question string) (*domain.Answer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Answer{Question: question, Sources: domain.SourceIDs(m.hits)}, nil
}

func (m *mockQueryService) Complete(_ context.Context, _ *domain.Answer) error {
	return m.err
}

func (m *mockQueryService) Ask(_ context.Context, question string) (*domain.Answer, error) {
	m.asked = append(m.asked, question)
	return m.answer, m.err
}

func (m *mockQueryService) ModelName() string {
	return "mistral"
}

// mockArticleService is a mock implementation of driving.ArticleService.
type mockArticleService struct {
	docs []domain.ArticleDocument
	err  error
}

func (m *mockArticleService) List(_ context.Context) ([]domain.ArticleDocument, error) {
	return m.docs, m.err
}
