// Package ai creates the embedding and LLM adapters named by settings.
package ai

import (
	"context"
	"fmt"
	"time"

	geminiembed "github.com/custodia-labs/gdpr-rag/internal/adapters/driven/embedding/gemini"
	ollamaembed "github.com/custodia-labs/gdpr-rag/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/gdpr-rag/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/gdpr-rag/internal/adapters/driven/embedding/throttle"
	anthropicllm "github.com/custodia-labs/gdpr-rag/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/custodia-labs/gdpr-rag/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/gdpr-rag/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/gdpr-rag/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
)

// pingTimeout bounds each provider check.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates the embedding service named by settings.
// A positive RequestsPerSecond wraps the service in a rate limiter.
func CreateEmbeddingService(ctx context.Context, settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: no embedding settings", domain.ErrEmbeddingUnavailable)
	}
	if !settings.Provider.SupportsEmbeddings() {
		return nil, fmt.Errorf("%w: %q cannot produce embeddings, use ollama, openai or gemini",
			domain.ErrUnsupportedProvider, settings.Provider)
	}
	if err := requireKey(settings.Provider, settings.APIKey); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}

	var (
		svc driven.EmbeddingService
		err error
	)
	switch settings.Provider {
	case domain.AIProviderOllama:
		svc = ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.AIProviderOpenAI:
		svc, err = openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.AIProviderGemini:
		svc, err = geminiembed.NewEmbeddingService(ctx, geminiembed.Config{
			APIKey: settings.APIKey,
			Model:  settings.Model,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}

	return throttle.Wrap(svc, throttle.Config{RequestsPerSecond: settings.RequestsPerSecond}), nil
}

// CreateLLMService creates the LLM service named by settings.
func CreateLLMService(ctx context.Context, settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: no LLM settings", domain.ErrLLMUnavailable)
	}
	if !settings.Provider.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedProvider, settings.Provider)
	}
	if err := requireKey(settings.Provider, settings.APIKey); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}

	var (
		svc driven.LLMService
		err error
	)
	switch settings.Provider {
	case domain.AIProviderOllama:
		svc = ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.AIProviderOpenAI:
		svc, err = openaillm.NewLLMService(openaillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.AIProviderAnthropic:
		svc, err = anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.AIProviderGemini:
		svc, err = geminillm.NewLLMService(ctx, geminillm.Config{
			APIKey: settings.APIKey,
			Model:  settings.Model,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	return svc, nil
}

func requireKey(provider domain.AIProvider, key string) error {
	if provider.RequiresAPIKey() && key == "" {
		return fmt.Errorf("%s requires an API key (set %s)", provider, provider.APIKeyEnv())
	}
	return nil
}

var _ driven.AIConfigValidator = ConfigValidator{}

// ConfigValidator checks settings by creating the service and pinging it.
type ConfigValidator struct{}

// NewConfigValidator returns a ConfigValidator.
func NewConfigValidator() ConfigValidator {
	return ConfigValidator{}
}

// ValidateEmbedding fails with ErrEmbeddingUnavailable when the provider
// cannot be created or does not answer within pingTimeout.
func (ConfigValidator) ValidateEmbedding(ctx context.Context, settings *domain.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(ctx, settings)
	if err != nil {
		return err
	}
	return ping(ctx, svc, domain.ErrEmbeddingUnavailable)
}

// ValidateLLM fails with ErrLLMUnavailable when the provider cannot be
// created or does not answer within pingTimeout.
func (ConfigValidator) ValidateLLM(ctx context.Context, settings *domain.LLMSettings) error {
	svc, err := CreateLLMService(ctx, settings)
	if err != nil {
		return err
	}
	return ping(ctx, svc, domain.ErrLLMUnavailable)
}

type pinger interface {
	Ping(ctx context.Context) error
	Close() error
}

func ping(ctx context.Context, svc pinger, unavailable error) error {
	defer svc.Close()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: service unreachable (%w)", unavailable, err)
	}
	return nil
}
