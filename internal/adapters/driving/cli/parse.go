package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <line>",
	Short: "Convert a one-line source entry to deb822",
	Long: `Parse a one-line APT source entry and print it in another form.

Arguments are joined with spaces, so quoting the line is optional.

Formats:
  deb822 - structured .sources paragraph (default)
  line   - normalised one-line form
  json   - JSON object`,
	Example: `  aptline parse "deb [ arch=amd64 ] http://deb.debian.org/debian bookworm main"
  aptline parse --format json deb http://deb.debian.org/debian bookworm main`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringP("format", "f", formatDeb822, "output format: deb822, line or json")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errSourceServiceMissing
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	src, err := sourceService.ParseLine(strings.Join(args, " "))
	if err != nil {
		return err
	}

	for _, w := range sourceService.Validate(*src) {
		cmd.PrintErrln(styled(cmd.ErrOrStderr(), warningStyle, "warning: "+w))
	}
	return writeSource(cmd.OutOrStdout(), *src, format)
}
