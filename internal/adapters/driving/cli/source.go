package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/aptline/internal/core/domain"
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage stored APT sources",
	Long:  `Add, list, inspect, toggle and remove stored APT sources.`,
}

var sourceAddCmd = &cobra.Command{
	Use:   "add <line>",
	Short: "Add a source from a one-line entry",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSourceAdd,
}

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sources",
	Args:  cobra.NoArgs,
	RunE:  runSourceList,
}

var sourceShowCmd = &cobra.Command{
	Use:   "show [source-id]",
	Short: "Show a stored source",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceShow,
}

var sourceRemoveCmd = &cobra.Command{
	Use:   "remove [source-id]",
	Short: "Remove a stored source",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceRemove,
}

var sourceEnableCmd = &cobra.Command{
	Use:   "enable [source-id]",
	Short: "Enable a stored source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setSourceEnabled(cmd, args[0], true)
	},
}

var sourceDisableCmd = &cobra.Command{
	Use:   "disable [source-id]",
	Short: "Disable a stored source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setSourceEnabled(cmd, args[0], false)
	},
}

var sourceSourceCodeCmd = &cobra.Command{
	Use:   "source-code [source-id] on|off",
	Short: "Add or drop deb-src entries on a stored source",
	Long: `Turn source-package (deb-src) entries on or off for a stored source.

With "on" the source provides both deb and deb-src types. With "off" it
provides deb only.`,
	Example: `  aptline source source-code 3f0c... on`,
	Args:    cobra.ExactArgs(2),
	RunE:    runSourceSourceCode,
}

var sourceValidateCmd = &cobra.Command{
	Use:   "validate [source-id]",
	Short: "Check a stored source for problems",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceValidate,
}

var sourceWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Report changes made to the sources directory",
	Long: `Print a line for each .sources file written or removed by other programs.

Only the sourcesdir storage backend can be watched. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runSourceWatch,
}

func init() {
	sourceCmd.AddCommand(sourceAddCmd)
	sourceCmd.AddCommand(sourceListCmd)
	sourceCmd.AddCommand(sourceShowCmd)
	sourceCmd.AddCommand(sourceRemoveCmd)
	sourceCmd.AddCommand(sourceEnableCmd)
	sourceCmd.AddCommand(sourceDisableCmd)
	sourceCmd.AddCommand(sourceSourceCodeCmd)
	sourceCmd.AddCommand(sourceValidateCmd)
	sourceCmd.AddCommand(sourceWatchCmd)
	rootCmd.AddCommand(sourceCmd)
}

func runSourceAdd(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errSourceServiceMissing
	}

	src, err := sourceService.AddLine(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("failed to add source: %w", err)
	}

	cmd.Printf("Added source %s\n", src.Name)
	cmd.Printf("  ID: %s\n", src.ID)
	for _, w := range sourceService.Validate(*src) {
		cmd.PrintErrln(styled(cmd.ErrOrStderr(), warningStyle, "warning: "+w))
	}
	return nil
}

func runSourceList(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errSourceServiceMissing
	}

	sources, err := sourceService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(sources) == 0 {
		fmt.Fprintln(out, "No sources configured.")
		return nil
	}

	fmt.Fprintln(out, "Configured sources:")
	for i := range sources {
		src := sources[i]
		state := "enabled"
		style := nameStyle
		if !src.Enabled {
			state = "disabled"
			style = disabledStyle
		}
		fmt.Fprintf(out, "  %s (%s) [%s]\n", styled(out, style, src.DisplayName()), src.ID, state)

		lines, err := sourceService.RenderLines(src)
		if err != nil {
			fmt.Fprintf(out, "    (no one-line form: %v)\n", err)
			continue
		}
		for _, line := range lines {
			fmt.Fprintf(out, "    %s\n", line)
		}
	}
	return nil
}

func runSourceShow(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errSourceServiceMissing
	}

	src, err := sourceService.Get(cmd.Context(), args[0])
	if err != nil {
		return sourceLookupError(args[0], err)
	}

	text, err := sourceService.Describe(*src)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, text)
	fmt.Fprintln(out)
	if line, err := sourceService.RenderLine(*src); err == nil {
		fmt.Fprintln(out, line)
	} else {
		fmt.Fprintf(out, "(no one-line form: %v)\n", err)
	}
	return nil
}

func runSourceRemove(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errSourceServiceMissing
	}

	if err := sourceService.Remove(cmd.Context(), args[0]); err != nil {
		return sourceLookupError(args[0], err)
	}

	cmd.Printf("Removed source %s\n", args[0])
	return nil
}

func setSourceEnabled(cmd *cobra.Command, id string, enabled bool) error {
	if sourceService == nil {
		return errSourceServiceMissing
	}

	src, err := sourceService.SetEnabled(cmd.Context(), id, enabled)
	if err != nil {
		return sourceLookupError(id, err)
	}

	state := "Enabled"
	if !enabled {
		state = "Disabled"
	}
	cmd.Printf("%s source %s\n", state, src.DisplayName())
	return nil
}

func runSourceSourceCode(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errSourceServiceMissing
	}

	var enabled bool
	switch strings.ToLower(args[1]) {
	case "on":
		enabled = true
	case "off":
	default:
		return fmt.Errorf("%w: expected on or off, got %q", domain.ErrInvalidInput, args[1])
	}

	src, err := sourceService.SetSourceCode(cmd.Context(), args[0], enabled)
	if err != nil {
		return sourceLookupError(args[0], err)
	}

	state := "on"
	if !enabled {
		state = "off"
	}
	cmd.Printf("Source code %s for %s\n", state, src.DisplayName())
	return nil
}

func runSourceValidate(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errSourceServiceMissing
	}

	src, err := sourceService.Get(cmd.Context(), args[0])
	if err != nil {
		return sourceLookupError(args[0], err)
	}

	warnings := sourceService.Validate(*src)
	if len(warnings) == 0 {
		cmd.Printf("%s: no problems found\n", src.DisplayName())
		return nil
	}

	for _, w := range warnings {
		cmd.Printf("%s: %s\n", src.DisplayName(), w)
	}
	return fmt.Errorf("%d problem(s) found", len(warnings))
}

func runSourceWatch(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errSourceServiceMissing
	}

	ctx := cmd.Context()
	events, err := sourceService.Watch(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch {
			case ev.Err != nil:
				fmt.Fprintf(out, "error   %s: %v\n", ev.Path, ev.Err)
			case ev.Kind == domain.SourceEventWritten && ev.Source != nil:
				fmt.Fprintf(out, "%-7s %s (%s)\n", ev.Kind, ev.Path, ev.Source.DisplayName())
			default:
				fmt.Fprintf(out, "%-7s %s\n", ev.Kind, ev.Path)
			}
		}
	}
}

// sourceLookupError adds the source ID to not-found errors.
func sourceLookupError(id string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("source %s: %w", id, err)
	}
	return err
}
