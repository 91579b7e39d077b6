// Command aptline converts and manages APT source entries.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/custodia-labs/aptline/internal/adapters/driven/config/file"
	"github.com/custodia-labs/aptline/internal/adapters/driven/deb822"
	"github.com/custodia-labs/aptline/internal/adapters/driven/debian"
	"github.com/custodia-labs/aptline/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/aptline/internal/adapters/driven/storage/sourcesdir"
	"github.com/custodia-labs/aptline/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/aptline/internal/adapters/driving/cli"
	"github.com/custodia-labs/aptline/internal/core/domain"
	"github.com/custodia-labs/aptline/internal/core/ports/driven"
	"github.com/custodia-labs/aptline/internal/core/services"
	"github.com/custodia-labs/aptline/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	var closer io.Closer

	cli.SetVersion(version)
	cli.SetInitializer(func(opts cli.GlobalOptions) (*cli.Services, error) {
		svcs, c, err := buildServices(opts)
		closer = c
		return svcs, err
	})

	err := cli.Execute(context.Background())
	if closer != nil {
		if cerr := closer.Close(); cerr != nil {
			logger.Warn("closing store: %v", cerr)
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

// buildServices wires the driven adapters selected by the settings file.
func buildServices(opts cli.GlobalOptions) (*cli.Services, io.Closer, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, nil, err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, err
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}
	if settings.Log.Verbose || opts.Verbose {
		logger.SetVerbose(true)
	}
	if err := settingsService.Validate(); err != nil {
		logger.Warn("settings: %v", err)
	}

	codec := deb822.NewCodec()
	store, closer, err := openStore(settings, configDir, codec)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("storage backend: %s", settings.Storage.Backend)

	sourceService := services.NewSourceService(store)
	sourceService.SetRecordCodec(codec)
	sourceService.SetOptionValidator(debian.NewArchValidator())
	sourceService.SetNamePrefix(settings.Naming.Prefix)

	return &cli.Services{
		Source:   sourceService,
		Settings: settingsService,
	}, closer, nil
}

// openStore opens the source store for the configured backend.
func openStore(settings *domain.AppSettings, configDir string, codec driven.RecordCodec) (driven.SourceStore, io.Closer, error) {
	switch settings.Storage.Backend {
	case domain.StorageBackendMemory:
		return memory.NewSourceStore(), nil, nil
	case domain.StorageBackendSourcesDir:
		store, err := sourcesdir.NewStore(settings.Storage.SourcesDir, codec)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sources directory: %w", err)
		}
		return store, nil, nil
	default:
		dataDir := settings.Storage.DataDir
		if dataDir == "" {
			dataDir = filepath.Join(configDir, "data")
		}
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		return store.SourceStore(), store, nil
	}
}
