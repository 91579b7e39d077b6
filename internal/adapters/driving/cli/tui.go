package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/aptline/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for aptline.

The TUI lists stored sources and shows each one in both one-line and deb822
form. Sources can be added, enabled, disabled and deleted.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / Add
  Space    - Enable / disable
  d        - Delete
  r        - Reload
  Esc      - Back
  q        - Quit (from the menu)`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// newTUIApp builds the TUI from the configured services.
func newTUIApp() (*tui.App, error) {
	app, err := tui.NewApp(tui.NewPorts(sourceService, settingsService))
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	return app, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := newTUIApp()
	if err != nil {
		return err
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
