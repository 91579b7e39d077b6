package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Convert deb822 paragraphs to one-line entries",
	Long: `Read deb822 source paragraphs from a file, or from stdin when no file or
"-" is given, and print the equivalent one-line entries.

A paragraph with several types, URIs or suites becomes several lines.`,
	Example: `  aptline render /etc/apt/sources.list.d/debian.sources
  cat debian.sources | aptline render`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errSourceServiceMissing
	}

	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	paragraphs, err := splitParagraphs(data)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if len(paragraphs) == 0 {
		return fmt.Errorf("no deb822 paragraphs found")
	}

	out := cmd.OutOrStdout()
	for _, para := range paragraphs {
		src, err := sourceService.ParseRecord(para)
		if err != nil {
			return err
		}
		lines, err := sourceService.RenderLines(*src)
		if err != nil {
			return err
		}
		for _, line := range lines {
			fmt.Fprintln(out, line)
		}
	}
	return nil
}

// maxLineSize bounds a single deb822 line.
const maxLineSize = 1 << 20

// splitParagraphs splits deb822 text on blank lines. Comment lines are dropped.
func splitParagraphs(data []byte) ([][]byte, error) {
	var (
		paragraphs [][]byte
		current    bytes.Buffer
	)
	flush := func() {
		if current.Len() > 0 {
			paragraphs = append(paragraphs, bytes.Clone(current.Bytes()))
			current.Reset()
		}
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.TrimSpace(line) == "":
			flush()
		case strings.HasPrefix(line, "#"):
			continue
		default:
			current.WriteString(line)
			current.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return paragraphs, nil
}
