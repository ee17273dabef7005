package tui

import (
	"context"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
)

// MockQueryService is a mock implementation of driving.QueryService.
type MockQueryService struct {
	Answer *domain.Answer
	Err    error
}

func (m *MockQueryService) Retrieve(context.Context, string) ([]domain.RetrievedChunk, error) {
	return nil, m.Err
}

func (m *MockQueryService) Prepare(_ context.Context, q string) (*domain.Answer, error) {
	return &domain.Answer{Question: q}, m.Err
}

func (m *MockQueryService) Complete(context.Context, *domain.Answer) error {
	return m.Err
}

func (m *MockQueryService) Ask(context.Context, string) (*domain.Answer, error) {
	return m.Answer, m.Err
}

func (m *MockQueryService) ModelName() string {
	return "mistral"
}

// MockArticleService is a mock implementation of driving.ArticleService.
type MockArticleService struct {
	Docs []domain.ArticleDocument
}

func (m *MockArticleService) List(context.Context) ([]domain.ArticleDocument, error) {
	return m.Docs, nil
}
