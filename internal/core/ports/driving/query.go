package driving

import (
	"context"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
)

// QueryService answers questions grounded in the indexed articles.
type QueryService interface {
	// Retrieve returns the top-k chunks for the question.
	Retrieve(ctx context.Context, question string) ([]domain.RetrievedChunk, error)

	// Prepare retrieves context and assembles the prompt.
	// The returned answer has Prompt and Sources set but no Text.
	Prepare(ctx context.Context, question string) (*domain.Answer, error)

	// Complete sends a prepared prompt to the language model and fills Text.
	Complete(ctx context.Context, answer *domain.Answer) error

	// Ask runs Prepare then Complete.
	Ask(ctx context.Context, question string) (*domain.Answer, error)

	// ModelName returns the generating model's name.
	ModelName() string
}
