// Package sources provides the sources list view for the TUI.
package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/aptline/internal/core/domain"
	"github.com/custodia-labs/aptline/internal/core/ports/driving"
)

var errNoService = errors.New("source service not available")

// View is the sources list view.
type View struct {
	styles        *styles.Styles
	keys          *keymap.KeyMap
	sourceService driving.SourceService

	sources  []domain.Source
	selected int
	width    int
	height   int
	ready    bool
	err      error
	loading  bool
}

// NewView creates a new sources view.
func NewView(s *styles.Styles, sourceService driving.SourceService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		keys:          keymap.DefaultKeyMap(),
		sourceService: sourceService,
		sources:       []domain.Source{},
	}
}

// Init initialises the view and loads sources.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadSources()
}

// loadSources returns a command that loads sources from the service.
func (v *View) loadSources() tea.Cmd {
	return func() tea.Msg {
		if v.sourceService == nil {
			return messages.SourcesLoaded{Err: errNoService}
		}
		sources, err := v.sourceService.List(context.Background())
		return messages.SourcesLoaded{Sources: sources, Err: err}
	}
}

// Update handles messages for the sources view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SourcesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.sources = msg.Sources
		v.err = nil
		if v.selected >= len(v.sources) {
			v.selected = max(len(v.sources)-1, 0)
		}
		return v, nil

	case messages.SourceRemoved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, v.loadSources()

	case messages.SourceToggled:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		for i := range v.sources {
			if v.sources[i].ID == msg.Source.ID {
				v.sources[i] = msg.Source
			}
		}
		v.err = nil
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keys.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keys.Down):
		if v.selected < len(v.sources)-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keys.Select):
		if src, ok := v.current(); ok {
			return v, func() tea.Msg {
				return messages.SourceSelected{Source: src}
			}
		}
	case keymap.Matches(k, v.keys.Toggle):
		if src, ok := v.current(); ok {
			return v, v.toggleSource(src)
		}
	case keymap.Matches(k, v.keys.Delete):
		if src, ok := v.current(); ok {
			return v, v.deleteSource(src.ID)
		}
	case keymap.Matches(k, v.keys.Reload):
		v.loading = true
		return v, v.loadSources()
	case keymap.Matches(k, v.keys.Add):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewAddSource}
		}
	}

	return v, nil
}

func (v *View) current() (domain.Source, bool) {
	if v.selected < 0 || v.selected >= len(v.sources) {
		return domain.Source{}, false
	}
	return v.sources[v.selected], true
}

// toggleSource returns a command that flips the enabled flag of src.
func (v *View) toggleSource(src domain.Source) tea.Cmd {
	return func() tea.Msg {
		if v.sourceService == nil {
			return messages.SourceToggled{Source: src, Err: errNoService}
		}
		updated, err := v.sourceService.SetEnabled(context.Background(), src.ID, !src.Enabled)
		if err != nil {
			return messages.SourceToggled{Source: src, Err: err}
		}
		return messages.SourceToggled{Source: *updated}
	}
}

// deleteSource returns a command that deletes a source.
func (v *View) deleteSource(id string) tea.Cmd {
	return func() tea.Msg {
		if v.sourceService == nil {
			return messages.SourceRemoved{ID: id, Err: errNoService}
		}
		err := v.sourceService.Remove(context.Background(), id)
		return messages.SourceRemoved{ID: id, Err: err}
	}
}

// View renders the sources view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Sources"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading sources..."))
		b.WriteString("\n\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if !v.loading && len(v.sources) == 0 && v.err == nil {
		b.WriteString(v.styles.Muted.Render("No sources configured."))
		b.WriteString("\n\n")
	}

	if !v.loading {
		for i := range v.sources {
			b.WriteString(v.renderSource(i, &v.sources[i]))
			b.WriteString("\n")
		}
		if len(v.sources) > 0 {
			b.WriteString("\n")
		}
	}

	b.WriteString(v.styles.Help.Render(keymap.HelpLine(v.keys.SourcesHelp())))
	return b.String()
}

// renderSource renders a source as its name and state followed by its first one-line form.
func (v *View) renderSource(index int, src *domain.Source) string {
	indicator := "  "
	name := src.DisplayName()
	if index == v.selected {
		indicator = "> "
		name = v.styles.Selected.Render(name)
	} else {
		name = v.styles.Normal.Render(name)
	}

	summary := "(no one-line form)"
	if v.sourceService != nil {
		if lines, err := v.sourceService.RenderLines(*src); err == nil && len(lines) > 0 {
			summary = lines[0]
			if len(lines) > 1 {
				summary += fmt.Sprintf(" (+%d more)", len(lines)-1)
			}
		}
	}
	if maxLen := v.width - 6; maxLen > 10 && len(summary) > maxLen {
		summary = summary[:maxLen-3] + "..."
	}

	return fmt.Sprintf("%s%s  %s\n    %s", indicator, name, v.styles.State(src.Enabled), v.styles.Muted.Render(summary))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Sources returns the current list of sources.
func (v *View) Sources() []domain.Source {
	return v.sources
}

// SelectedIndex returns the currently selected source index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
