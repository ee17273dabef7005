package driving

import (
	"context"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings with defaults applied.
	Get() (*domain.AppSettings, error)

	// Set validates and persists a single dotted key.
	Set(key, value string) error

	// Validate checks that the configured providers are usable
	// without contacting them.
	Validate() error

	// Check validates the settings and pings the configured providers.
	Check(ctx context.Context) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
