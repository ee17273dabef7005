package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure file paths, AI providers and retrieval options.

Settings are stored in ~/.gdpr-rag/config.toml. API keys may instead be
supplied through OPENAI_API_KEY, ANTHROPIC_API_KEY or GEMINI_API_KEY,
including from a .env file in the working directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Validate and store one setting.

Keys:
  paths.pdf                        source PDF
  paths.index_dir                  vector index directory
  paths.summaries                  TOML file replacing the built-in summaries
  embedding.provider               ollama, openai or gemini
  embedding.model                  embedding model name
  embedding.base_url               API endpoint
  embedding.api_key                API key for cloud providers
  embedding.requests_per_second    embedding rate limit during build (0 = off)
  llm.provider                     ollama, openai, anthropic or gemini
  llm.model                        LLM model name
  llm.base_url                     API endpoint
  llm.api_key                      API key for cloud providers
  pipeline.chunker.chunk_size      characters per chunk
  pipeline.chunker.overlap         characters shared by neighbouring chunks
  retrieval.top_k                  chunks retrieved per question

Changing the embedding provider or model, or the chunker settings, needs
'gdpr-rag build --rerun' before the next query.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the configured providers are reachable",
	Args:  cobra.NoArgs,
	RunE:  runSettingsCheck,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsCheckCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Paths]")
	cmd.Printf("  PDF: %s\n", settings.Paths.PDF)
	cmd.Printf("  Index: %s\n", settings.Paths.IndexDir)
	summaries := settings.Paths.Summaries
	if summaries == "" {
		summaries = "(built-in)"
	}
	cmd.Printf("  Summaries: %s\n", summaries)
	cmd.Println()

	cmd.Println("[Embedding]")
	showProvider(cmd, settings.Embedding.Provider, settings.Embedding.Model,
		settings.Embedding.BaseURL, settings.Embedding.APIKey, settings.Embedding.IsConfigured())
	if settings.Embedding.RequestsPerSecond > 0 {
		cmd.Printf("  Rate limit: %g requests/s\n", settings.Embedding.RequestsPerSecond)
	}
	cmd.Println()

	cmd.Println("[LLM]")
	showProvider(cmd, settings.LLM.Provider, settings.LLM.Model,
		settings.LLM.BaseURL, settings.LLM.APIKey, settings.LLM.IsConfigured())
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Top K: %d\n", settings.Retrieval.TopK)
	chunker := settings.Pipeline.GetProcessorConfig("chunker")
	if chunker != nil {
		cmd.Printf("  Chunk size: %v\n", chunker["chunk_size"])
		cmd.Printf("  Chunk overlap: %v\n", chunker["overlap"])
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'gdpr-rag settings set' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func showProvider(cmd *cobra.Command, provider domain.AIProvider, model, baseURL, apiKey string, configured bool) {
	cmd.Printf("  Provider: %s\n", provider.Description())
	cmd.Printf("  Model: %s\n", model)
	if baseURL != "" {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if provider.RequiresAPIKey() {
		if apiKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
		} else {
			cmd.Printf("  API Key: (not set, checked %s)\n", provider.APIKeyEnv())
		}
	}
	status := "configured"
	if !configured {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	shown := value
	if isSecretKey(key) {
		shown = maskAPIKey(value)
	}
	cmd.Printf("Set %s = %s\n", key, shown)
	return nil
}

func runSettingsCheck(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("Checking providers... ")
	if err := settingsService.Check(cmd.Context()); err != nil {
		cmd.Println("FAILED")
		return fmt.Errorf("provider check failed: %w", err)
	}
	cmd.Println("OK")
	return nil
}

func isSecretKey(key string) bool {
	return key == "embedding.api_key" || key == "llm.api_key"
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
