// Package cli implements the aptline command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/aptline/internal/core/ports/driving"
	"github.com/custodia-labs/aptline/internal/logger"
)

var (
	// version is set by SetVersion, usually from -ldflags.
	version = "dev"

	// verbose enables debug logging.
	verbose bool

	// configDir overrides the default ~/.aptline directory.
	configDir string

	sourceService   driving.SourceService
	settingsService driving.SettingsService

	initializer Initializer
)

// errSourceServiceMissing is returned when a command runs without a source service.
var errSourceServiceMissing = errors.New("source service not configured")

// GlobalOptions carries the values of the persistent flags.
type GlobalOptions struct {
	ConfigDir string
	Verbose   bool
}

// Services holds the driving ports the commands call into.
type Services struct {
	Source   driving.SourceService
	Settings driving.SettingsService
}

// Initializer builds the services once global flags are parsed.
type Initializer func(opts GlobalOptions) (*Services, error)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "aptline",
	Short: "Convert and manage APT source entries",
	Long: `aptline converts APT package sources between the classic one-line form
used in sources.list and the structured deb822 form used in .sources files.

Examples:
  aptline parse "deb [ arch=amd64 ] http://deb.debian.org/debian bookworm main"
  aptline render /etc/apt/sources.list.d/debian.sources
  aptline source add "deb http://deb.debian.org/debian bookworm main"
  aptline source list`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.aptline)")
}

// SetVersion sets the version reported by the CLI.
func SetVersion(v string) {
	version = v
}

// SetInitializer sets the function that builds services before a command runs.
func SetInitializer(fn Initializer) {
	initializer = fn
}

// SetServices injects services directly, bypassing the initializer.
func SetServices(services *Services) {
	sourceService = services.Source
	settingsService = services.Settings
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	)
}

func initServices(_ *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}
	if initializer == nil {
		return nil
	}

	services, err := initializer(GlobalOptions{ConfigDir: configDir, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(services)
	return nil
}
