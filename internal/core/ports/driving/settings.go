package driving

import "github.com/custodia-labs/aptline/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetStorageBackend updates the storage backend.
	SetStorageBackend(backend domain.StorageBackend) error

	// SetSourcesDir updates the deb822 sources directory.
	SetSourcesDir(dir string) error

	// SetNamePrefix updates the prefix used for derived names.
	SetNamePrefix(prefix string) error

	// SetVerbose toggles debug logging.
	SetVerbose(verbose bool) error

	// Validate checks if current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
