package domain

// AIProvider names a service that embeds text, answers prompts, or both.
type AIProvider string

const (
	AIProviderOllama    AIProvider = "ollama"
	AIProviderOpenAI    AIProvider = "openai"
	AIProviderAnthropic AIProvider = "anthropic"
	AIProviderGemini    AIProvider = "gemini"
)

const unknownDescription = "Unknown"

// providerInfo describes what a provider offers. An empty keyEnv means
// the provider runs locally and needs no API key.
type providerInfo struct {
	description    string
	keyEnv         string
	embeddingModel string
	llmModel       string
}

// providers lists the supported providers in display order.
var providers = []struct {
	id   AIProvider
	info providerInfo
}{
	{AIProviderOllama, providerInfo{"Ollama (local)", "", DefaultEmbeddingModel, DefaultLLMModel}},
	{AIProviderOpenAI, providerInfo{"OpenAI (cloud)", "OPENAI_API_KEY", "text-embedding-3-small", "gpt-4o-mini"}},
	{AIProviderAnthropic, providerInfo{"Anthropic (cloud)", "ANTHROPIC_API_KEY", "", "claude-3-5-sonnet-latest"}},
	{AIProviderGemini, providerInfo{"Gemini (cloud)", "GEMINI_API_KEY", "text-embedding-004", "gemini-1.5-flash"}},
}

func (p AIProvider) info() (providerInfo, bool) {
	for _, e := range providers {
		if e.id == p {
			return e.info, true
		}
	}
	return providerInfo{}, false
}

// IsValid reports whether p is a supported provider.
func (p AIProvider) IsValid() bool {
	_, ok := p.info()
	return ok
}

// RequiresAPIKey reports whether p is a cloud provider.
func (p AIProvider) RequiresAPIKey() bool {
	return p.APIKeyEnv() != ""
}

// IsLocal reports whether p runs on this machine.
func (p AIProvider) IsLocal() bool {
	info, ok := p.info()
	return ok && info.keyEnv == ""
}

// SupportsEmbeddings reports whether p offers an embedding API.
func (p AIProvider) SupportsEmbeddings() bool {
	info, _ := p.info()
	return info.embeddingModel != ""
}

// APIKeyEnv returns the environment variable read when no API key is
// configured, or "" for local providers.
func (p AIProvider) APIKeyEnv() string {
	info, _ := p.info()
	return info.keyEnv
}

func (p AIProvider) String() string {
	return string(p)
}

// Description returns a label for display, such as "Ollama (local)".
func (p AIProvider) Description() string {
	if info, ok := p.info(); ok {
		return info.description
	}
	return unknownDescription
}

// EmbeddingSettings selects the model that embeds chunks and questions.
// BaseURL applies to Ollama and OpenAI-compatible servers; APIKey to
// cloud providers.
type EmbeddingSettings struct {
	Provider AIProvider
	Model    string
	BaseURL  string
	APIKey   string

	// RequestsPerSecond throttles embedding calls during a build.
	// Zero disables throttling.
	RequestsPerSecond float64
}

// IsConfigured reports whether the provider can embed and has its key.
func (e EmbeddingSettings) IsConfigured() bool {
	return e.Provider.SupportsEmbeddings() && hasKey(e.Provider, e.APIKey)
}

// LLMSettings selects the model that writes answers.
type LLMSettings struct {
	Provider AIProvider
	Model    string
	BaseURL  string
	APIKey   string
}

// IsConfigured reports whether the provider is known and has its key.
func (l LLMSettings) IsConfigured() bool {
	return l.Provider.IsValid() && hasKey(l.Provider, l.APIKey)
}

func hasKey(p AIProvider, key string) bool {
	return !p.RequiresAPIKey() || key != ""
}

// PathSettings locates the pipeline's files. Summaries optionally names
// a TOML file replacing the built-in summary table.
type PathSettings struct {
	PDF       string
	IndexDir  string
	Summaries string
}

// RetrievalSettings controls query-time retrieval.
type RetrievalSettings struct {
	// TopK is the number of chunks retrieved per question.
	TopK int
}

// AppSettings is the resolved configuration: stored values, then
// environment API keys, then defaults.
type AppSettings struct {
	Paths     PathSettings
	Embedding EmbeddingSettings
	LLM       LLMSettings
	Retrieval RetrievalSettings
	Pipeline  PipelineConfig
}

// Defaults for the GDPR pipeline.
const (
	DefaultPDFPath        = "data/GDPR Art 1-21.pdf"
	DefaultIndexDir       = "FAISS_db"
	DefaultOllamaBaseURL  = "http://localhost:11434"
	DefaultTopK           = 5
	DefaultChunkSize      = 800
	DefaultChunkOverlap   = 80
	DefaultEmbeddingModel = "all-minilm"
	DefaultLLMModel       = "mistral"
)

// DefaultAppSettings uses a local Ollama for both models, so nothing
// leaves the machine until a cloud provider is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Paths: PathSettings{
			PDF:      DefaultPDFPath,
			IndexDir: DefaultIndexDir,
		},
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    DefaultEmbeddingModel,
			BaseURL:  DefaultOllamaBaseURL,
		},
		LLM: LLMSettings{
			Provider: AIProviderOllama,
			Model:    DefaultLLMModel,
			BaseURL:  DefaultOllamaBaseURL,
		},
		Retrieval: RetrievalSettings{
			TopK: DefaultTopK,
		},
		Pipeline: DefaultPipelineConfig(),
	}
}

// AllEmbeddingProviders returns the providers that can embed text.
func AllEmbeddingProviders() []AIProvider {
	var out []AIProvider
	for _, e := range providers {
		if e.info.embeddingModel != "" {
			out = append(out, e.id)
		}
	}
	return out
}

// AllLLMProviders returns the providers that can answer prompts.
func AllLLMProviders() []AIProvider {
	out := make([]AIProvider, len(providers))
	for i, e := range providers {
		out[i] = e.id
	}
	return out
}

// DefaultEmbeddingModels maps each embedding provider to its default model.
func DefaultEmbeddingModels() map[AIProvider]string {
	out := map[AIProvider]string{}
	for _, e := range providers {
		if e.info.embeddingModel != "" {
			out[e.id] = e.info.embeddingModel
		}
	}
	return out
}

// DefaultLLMModels maps each provider to its default LLM.
func DefaultLLMModels() map[AIProvider]string {
	out := map[AIProvider]string{}
	for _, e := range providers {
		out[e.id] = e.info.llmModel
	}
	return out
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"all-minilm":        384,
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		// Gemini models
		"text-embedding-004": 768,
	}
}

// PipelineConfig lists the processors run on each article, in order,
// with each processor's settings table keyed by its name.
type PipelineConfig struct {
	Processors       []string
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns the settings table for name, or nil.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	return c.ProcessorConfigs[name]
}

// DefaultPipelineConfig runs the chunker alone at its default sizes.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Processors: []string{"chunker"},
		ProcessorConfigs: map[string]map[string]any{
			"chunker": {"chunk_size": DefaultChunkSize, "overlap": DefaultChunkOverlap},
		},
	}
}
