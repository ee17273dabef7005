package driven

import (
	"context"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
)

// AIConfigValidator checks that configured AI providers are reachable.
type AIConfigValidator interface {
	// ValidateEmbedding creates the embedding service and pings it.
	ValidateEmbedding(ctx context.Context, config *domain.EmbeddingSettings) error

	// ValidateLLM creates the LLM service and pings it.
	ValidateLLM(ctx context.Context, config *domain.LLMSettings) error
}
