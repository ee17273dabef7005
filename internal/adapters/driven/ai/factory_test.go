package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gdpr-rag/internal/adapters/driven/embedding/throttle"
	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
)

func TestCreateEmbeddingService(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		settings *domain.EmbeddingSettings
		wantErr  error
	}{
		{name: "nil settings", settings: nil, wantErr: domain.ErrEmbeddingUnavailable},
		{
			name:     "ollama",
			settings: &domain.EmbeddingSettings{Provider: domain.AIProviderOllama, Model: "all-minilm"},
		},
		{
			name:     "openai",
			settings: &domain.EmbeddingSettings{Provider: domain.AIProviderOpenAI, APIKey: "k"},
		},
		{
			name:     "openai without key",
			settings: &domain.EmbeddingSettings{Provider: domain.AIProviderOpenAI},
			wantErr:  domain.ErrEmbeddingUnavailable,
		},
		{
			name:     "anthropic has no embeddings",
			settings: &domain.EmbeddingSettings{Provider: domain.AIProviderAnthropic, APIKey: "k"},
			wantErr:  domain.ErrUnsupportedProvider,
		},
		{
			name:     "unknown provider",
			settings: &domain.EmbeddingSettings{Provider: "faiss"},
			wantErr:  domain.ErrUnsupportedProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(ctx, tt.settings)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, svc)
			assert.NoError(t, svc.Close())
		})
	}
}

func TestCreateEmbeddingService_Throttled(t *testing.T) {
	svc, err := CreateEmbeddingService(context.Background(), &domain.EmbeddingSettings{
		Provider:          domain.AIProviderOllama,
		RequestsPerSecond: 2,
	})
	require.NoError(t, err)

	_, ok := svc.(*throttle.Service)
	assert.True(t, ok)
	assert.Equal(t, 384, svc.Dimensions())
}

func TestCreateLLMService(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		settings  *domain.LLMSettings
		wantModel string
		wantErr   error
	}{
		{name: "nil settings", wantErr: domain.ErrLLMUnavailable},
		{
			name:      "ollama default model",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderOllama},
			wantModel: "mistral",
		},
		{
			name:      "openai",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderOpenAI, APIKey: "k", Model: "gpt-4o"},
			wantModel: "gpt-4o",
		},
		{
			name:      "anthropic",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderAnthropic, APIKey: "k"},
			wantModel: "claude-3-5-sonnet-latest",
		},
		{
			name:     "anthropic without key",
			settings: &domain.LLMSettings{Provider: domain.AIProviderAnthropic},
			wantErr:  domain.ErrLLMUnavailable,
		},
		{
			name:     "unknown provider",
			settings: &domain.LLMSettings{Provider: "llamacpp"},
			wantErr:  domain.ErrUnsupportedProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(ctx, tt.settings)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantModel, svc.ModelName())
		})
	}
}

func TestConfigValidator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			_, _ = w.Write([]byte(`{"models":[]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	v := NewConfigValidator()
	ctx := context.Background()

	assert.NoError(t, v.ValidateLLM(ctx, &domain.LLMSettings{Provider: domain.AIProviderOllama, BaseURL: srv.URL}))
	assert.NoError(t, v.ValidateEmbedding(ctx, &domain.EmbeddingSettings{Provider: domain.AIProviderOllama, BaseURL: srv.URL}))

	err := v.ValidateLLM(ctx, &domain.LLMSettings{Provider: domain.AIProviderOllama, BaseURL: "http://127.0.0.1:1"})
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}
