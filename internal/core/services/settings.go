package services

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyPDFPath         = "paths.pdf"
	KeyIndexDir        = "paths.index_dir"
	KeySummaries       = "paths.summaries"
	KeyEmbedProvider   = "embedding.provider"
	KeyEmbedModel      = "embedding.model"
	KeyEmbedBaseURL    = "embedding.base_url"
	KeyEmbedAPIKey     = "embedding.api_key"
	KeyEmbedRPS        = "embedding.requests_per_second"
	KeyLLMProvider     = "llm.provider"
	KeyLLMModel        = "llm.model"
	KeyLLMBaseURL      = "llm.base_url"
	KeyLLMAPIKey       = "llm.api_key"
	KeyChunkSize       = "pipeline.chunker.chunk_size"
	KeyChunkOverlap    = "pipeline.chunker.overlap"
	KeyRetrievalTopK   = "retrieval.top_k"
	chunkerProcessorID = "chunker"
)

type valueKind int

const (
	kindString valueKind = iota
	kindEmbedProvider
	kindLLMProvider
	kindPositiveInt
	kindNonNegativeInt
	kindNonNegativeFloat
)

var settingKinds = map[string]valueKind{
	KeyPDFPath:       kindString,
	KeyIndexDir:      kindString,
	KeySummaries:     kindString,
	KeyEmbedProvider: kindEmbedProvider,
	KeyEmbedModel:    kindString,
	KeyEmbedBaseURL:  kindString,
	KeyEmbedAPIKey:   kindString,
	KeyEmbedRPS:      kindNonNegativeFloat,
	KeyLLMProvider:   kindLLMProvider,
	KeyLLMModel:      kindString,
	KeyLLMBaseURL:    kindString,
	KeyLLMAPIKey:     kindString,
	KeyChunkSize:     kindPositiveInt,
	KeyChunkOverlap:  kindNonNegativeInt,
	KeyRetrievalTopK: kindPositiveInt,
}

// SettingKeys returns every settable key in sorted order.
func SettingKeys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
// The aiValidator is optional (can be nil).
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings with defaults applied.
// API keys missing from the config file are taken from the provider's
// environment variable.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	embedProvider := s.getProvider(KeyEmbedProvider, defaults.Embedding.Provider)
	if !embedProvider.SupportsEmbeddings() {
		embedProvider = defaults.Embedding.Provider
	}
	llmProvider := s.getProvider(KeyLLMProvider, defaults.LLM.Provider)

	chunkSize := s.getInt(KeyChunkSize, domain.DefaultChunkSize)
	overlap := s.getInt(KeyChunkOverlap, domain.DefaultChunkOverlap)

	pipeline := domain.DefaultPipelineConfig()
	pipeline.ProcessorConfigs[chunkerProcessorID] = map[string]any{
		"chunk_size": chunkSize,
		"overlap":    overlap,
	}

	settings := &domain.AppSettings{
		Paths: domain.PathSettings{
			PDF:       s.getString(KeyPDFPath, defaults.Paths.PDF),
			IndexDir:  s.getString(KeyIndexDir, defaults.Paths.IndexDir),
			Summaries: s.getString(KeySummaries, ""),
		},
		Embedding: domain.EmbeddingSettings{
			Provider:          embedProvider,
			Model:             s.getString(KeyEmbedModel, domain.DefaultEmbeddingModels()[embedProvider]),
			BaseURL:           s.getString(KeyEmbedBaseURL, defaultBaseURL(embedProvider)),
			APIKey:            s.apiKey(KeyEmbedAPIKey, embedProvider),
			RequestsPerSecond: s.getFloat(KeyEmbedRPS),
		},
		LLM: domain.LLMSettings{
			Provider: llmProvider,
			Model:    s.getString(KeyLLMModel, domain.DefaultLLMModels()[llmProvider]),
			BaseURL:  s.getString(KeyLLMBaseURL, defaultBaseURL(llmProvider)),
			APIKey:   s.apiKey(KeyLLMAPIKey, llmProvider),
		},
		Retrieval: domain.RetrievalSettings{
			TopK: s.getInt(KeyRetrievalTopK, defaults.Retrieval.TopK),
		},
		Pipeline: pipeline,
	}

	return settings, nil
}

// Set validates and persists a single key.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var stored any
	switch kind {
	case kindString:
		stored = value
	case kindEmbedProvider:
		p := domain.AIProvider(value)
		if !p.SupportsEmbeddings() {
			return fmt.Errorf("%w: %q does not provide embeddings", domain.ErrUnsupportedProvider, value)
		}
		stored = value
	case kindLLMProvider:
		if !domain.AIProvider(value).IsValid() {
			return fmt.Errorf("%w: %q", domain.ErrUnsupportedProvider, value)
		}
		stored = value
	case kindPositiveInt:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive whole number", domain.ErrInvalidInput, key)
		}
		stored = n
	case kindNonNegativeInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative whole number", domain.ErrInvalidInput, key)
		}
		stored = n
	case kindNonNegativeFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		stored = f
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Validate checks that the configured providers can be constructed.
// It does not contact them; see Check.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("%w: %s needs an API key (set %s or %s)", domain.ErrEmbeddingUnavailable,
			settings.Embedding.Provider, KeyEmbedAPIKey, settings.Embedding.Provider.APIKeyEnv())
	}
	if !settings.LLM.IsConfigured() {
		return fmt.Errorf("%w: %s needs an API key (set %s or %s)", domain.ErrLLMUnavailable,
			settings.LLM.Provider, KeyLLMAPIKey, settings.LLM.Provider.APIKeyEnv())
	}

	size := s.getInt(KeyChunkSize, domain.DefaultChunkSize)
	overlap := s.getInt(KeyChunkOverlap, domain.DefaultChunkOverlap)
	if overlap >= size {
		return fmt.Errorf("%w: %s (%d) must be below %s (%d)", domain.ErrInvalidInput,
			KeyChunkOverlap, overlap, KeyChunkSize, size)
	}
	return nil
}

// Check validates the settings and pings both providers.
func (s *SettingsService) Check(ctx context.Context) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.aiValidator == nil {
		return nil
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := s.aiValidator.ValidateEmbedding(ctx, &settings.Embedding); err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(ctx, &settings.LLM)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val, _ := s.configStore.Get(key)
	if str, _ := val.(string); str != "" {
		return str
	}
	return defaultVal
}

// getInt accepts the int64 that TOML decodes to as well as a plain int.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func (s *SettingsService) getFloat(key string) float64 {
	val, _ := s.configStore.Get(key)
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	p := domain.AIProvider(s.getString(key, ""))
	if p.IsValid() {
		return p
	}
	return defaultVal
}

func (s *SettingsService) apiKey(key string, provider domain.AIProvider) string {
	if val := s.getString(key, ""); val != "" {
		return val
	}
	if env := provider.APIKeyEnv(); env != "" {
		return s.getenv(env)
	}
	return ""
}

func defaultBaseURL(p domain.AIProvider) string {
	if p.IsLocal() {
		return domain.DefaultOllamaBaseURL
	}
	return ""
}
