package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/aptline/internal/core/domain"
)

// settingKeys lists the keys accepted by "settings set".
var settingKeys = []string{
	"storage.backend",
	"storage.data_dir",
	"storage.sources_dir",
	"naming.prefix",
	"log.verbose",
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change aptline settings stored in config.toml.

Use subcommands to show or change individual settings.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting.

Keys:
  storage.backend      sqlite, memory or sourcesdir
  storage.data_dir     directory holding the SQLite database
  storage.sources_dir  directory holding .sources files
  naming.prefix        prefix for derived source names
  log.verbose          true or false`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
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

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	dataDir := settings.Storage.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}
	cmd.Printf("  Data dir: %s\n", dataDir)
	cmd.Printf("  Sources dir: %s\n", settings.Storage.SourcesDir)
	cmd.Println()

	cmd.Println("[Naming]")
	cmd.Printf("  Prefix: %s\n", settings.Naming.Prefix)
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Verbose: %s\n", yesNo(settings.Log.Verbose))

	if err := settingsService.Validate(); err != nil {
		cmd.Println()
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	var err error
	switch key {
	case "storage.backend":
		err = settingsService.SetStorageBackend(domain.StorageBackend(strings.ToLower(value)))
	case "storage.data_dir":
		err = setDataDir(value)
	case "storage.sources_dir":
		err = settingsService.SetSourcesDir(value)
	case "naming.prefix":
		err = settingsService.SetNamePrefix(value)
	case "log.verbose":
		var v bool
		v, err = strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: log.verbose must be true or false", domain.ErrInvalidInput)
		}
		err = settingsService.SetVerbose(v)
	default:
		return fmt.Errorf("%w: unknown setting %q (valid: %s)",
			domain.ErrInvalidInput, key, strings.Join(settingKeys, ", "))
	}
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func setDataDir(dir string) error {
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}
	settings.Storage.DataDir = strings.TrimSpace(dir)
	return settingsService.Save(settings)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
