package driven

import "context"

// LLMService writes the answer from a filled-in prompt.
type LLMService interface {
	// Generate returns one complete, non-streamed reply.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	ModelName() string

	// Ping makes the cheapest request the provider offers.
	Ping(ctx context.Context) error

	Close() error
}

// GenerateOptions tunes a reply. Zero values keep the provider defaults.
type GenerateOptions struct {
	MaxTokens   int
	Temperature float64
	StopWords   []string
}
