package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/aptline/internal/core/domain"
	"github.com/custodia-labs/aptline/internal/core/ports/driven"
	"github.com/custodia-labs/aptline/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStorageBackend = "storage.backend"
	keyDataDir        = "storage.data_dir"
	keySourcesDir     = "storage.sources_dir"
	keyNamePrefix     = "naming.prefix"
	keyLogVerbose     = "log.verbose"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Backend:    s.getBackend(defaults.Storage.Backend),
			DataDir:    s.configStore.GetString(keyDataDir), // Empty means the adapter default
			SourcesDir: s.getString(keySourcesDir, defaults.Storage.SourcesDir),
		},
		Naming: domain.NamingSettings{
			Prefix: s.getString(keyNamePrefix, defaults.Naming.Prefix),
		},
		Log: domain.LogSettings{
			Verbose: s.getBool(keyLogVerbose, defaults.Log.Verbose),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	if err := s.configStore.Set(keyStorageBackend, settings.Storage.Backend.String()); err != nil {
		return fmt.Errorf("save storage backend: %w", err)
	}
	if settings.Storage.DataDir != "" {
		if err := s.configStore.Set(keyDataDir, settings.Storage.DataDir); err != nil {
			return fmt.Errorf("save storage data_dir: %w", err)
		}
	}
	if err := s.configStore.Set(keySourcesDir, settings.Storage.SourcesDir); err != nil {
		return fmt.Errorf("save storage sources_dir: %w", err)
	}
	if err := s.configStore.Set(keyNamePrefix, settings.Naming.Prefix); err != nil {
		return fmt.Errorf("save naming prefix: %w", err)
	}
	if err := s.configStore.Set(keyLogVerbose, settings.Log.Verbose); err != nil {
		return fmt.Errorf("save log verbose: %w", err)
	}

	return nil
}

// SetStorageBackend updates the storage backend.
func (s *SettingsService) SetStorageBackend(backend domain.StorageBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedBackend, backend)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Storage.Backend = backend
	return s.Save(settings)
}

// SetSourcesDir updates the deb822 sources directory.
func (s *SettingsService) SetSourcesDir(dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return fmt.Errorf("%w: sources directory cannot be empty", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Storage.SourcesDir = dir
	return s.Save(settings)
}

// SetNamePrefix updates the prefix used for derived names.
func (s *SettingsService) SetNamePrefix(prefix string) error {
	if err := validatePrefix(prefix); err != nil {
		return err
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Naming.Prefix = prefix
	return s.Save(settings)
}

// SetVerbose toggles debug logging.
func (s *SettingsService) SetVerbose(verbose bool) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Log.Verbose = verbose
	return s.Save(settings)
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	// Get falls back to defaults for unknown backends, so check the raw value.
	if raw := s.configStore.GetString(keyStorageBackend); raw != "" {
		if !domain.StorageBackend(raw).IsValid() {
			return fmt.Errorf("%w: %s", domain.ErrUnsupportedBackend, raw)
		}
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.Storage.Backend == domain.StorageBackendSourcesDir && settings.Storage.SourcesDir == "" {
		return fmt.Errorf("%w: backend %q requires storage.sources_dir", domain.ErrInvalidInput, settings.Storage.Backend)
	}

	return validatePrefix(settings.Naming.Prefix)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func validatePrefix(prefix string) error {
	if strings.ContainsAny(prefix, "/ \t") {
		return fmt.Errorf("%w: name prefix %q may not contain '/' or whitespace", domain.ErrInvalidInput, prefix)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(keyStorageBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
