package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/aptline/internal/core/domain"
)

// Output formats accepted by --format.
const (
	formatDeb822 = "deb822"
	formatLine   = "line"
	formatJSON   = "json"
)

var (
	nameStyle     = lipgloss.NewStyle().Bold(true)
	disabledStyle = lipgloss.NewStyle().Faint(true)
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// sourceJSON is the JSON form of a source record.
type sourceJSON struct {
	ID         string          `json:"id,omitempty"`
	Name       string          `json:"name"`
	Enabled    bool            `json:"enabled"`
	Types      []string        `json:"types"`
	URIs       []string        `json:"uris"`
	Suites     []string        `json:"suites"`
	Components []string        `json:"components"`
	Options    []domain.Option `json:"options,omitempty"`
}

func toJSON(src domain.Source) sourceJSON {
	types := make([]string, len(src.Types))
	for i, t := range src.Types {
		types[i] = t.String()
	}
	components := src.Components
	if components == nil {
		components = []string{}
	}
	return sourceJSON{
		ID:         src.ID,
		Name:       src.Name,
		Enabled:    src.Enabled,
		Types:      types,
		URIs:       src.URIs,
		Suites:     src.Suites,
		Components: components,
		Options:    src.Options.Entries(),
	}
}

// writeSource prints src to w in the requested format.
func writeSource(w io.Writer, src domain.Source, format string) error {
	switch format {
	case formatDeb822:
		text, err := sourceService.Describe(src)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, text)
		return err
	case formatLine:
		line, err := sourceService.RenderLine(src)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, line)
		return err
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toJSON(src))
	default:
		return fmt.Errorf("unknown format %q (want %s)", format,
			strings.Join([]string{formatDeb822, formatLine, formatJSON}, ", "))
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// styled renders s with style only when writing to a terminal.
func styled(w io.Writer, style lipgloss.Style, s string) string {
	if !isTerminal(w) {
		return s
	}
	return style.Render(s)
}
