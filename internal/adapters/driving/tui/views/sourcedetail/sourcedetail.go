// Package sourcedetail provides the source detail view for the TUI.
package sourcedetail

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

// View shows one source in one-line and deb822 form.
type View struct {
	styles        *styles.Styles
	keys          *keymap.KeyMap
	sourceService driving.SourceService

	source   *domain.Source
	width    int
	height   int
	ready    bool
	err      error
	deleting bool
}

// NewView creates a new source detail view.
func NewView(s *styles.Styles, sourceService driving.SourceService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		keys:          keymap.DefaultKeyMap(),
		sourceService: sourceService,
	}
}

// SetSource sets the source to display.
func (v *View) SetSource(source domain.Source) {
	v.source = &source
	v.err = nil
	v.deleting = false
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the source detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SourceToggled:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.SetSource(msg.Source)
		return v, nil

	case messages.SourceRemoved:
		v.deleting = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSources}
		}

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keys.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSources}
		}
	case v.source == nil:
		return v, nil
	case keymap.Matches(k, v.keys.Toggle):
		return v, v.toggle(*v.source)
	case keymap.Matches(k, v.keys.SourceCode):
		return v, v.toggleSourceCode(*v.source)
	case keymap.Matches(k, v.keys.Delete):
		v.deleting = true
		return v, v.delete(v.source.ID)
	}
	return v, nil
}

func (v *View) toggle(src domain.Source) tea.Cmd {
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

func (v *View) toggleSourceCode(src domain.Source) tea.Cmd {
	return func() tea.Msg {
		if v.sourceService == nil {
			return messages.SourceToggled{Source: src, Err: errNoService}
		}
		updated, err := v.sourceService.SetSourceCode(context.Background(), src.ID, !src.HasType(domain.SourceTypeSource))
		if err != nil {
			return messages.SourceToggled{Source: src, Err: err}
		}
		return messages.SourceToggled{Source: *updated}
	}
}

func (v *View) delete(id string) tea.Cmd {
	return func() tea.Msg {
		if v.sourceService == nil {
			return messages.SourceRemoved{ID: id, Err: errNoService}
		}
		return messages.SourceRemoved{ID: id, Err: v.sourceService.Remove(context.Background(), id)}
	}
}

// View renders the source detail view.
func (v *View) View() string {
	if v.source == nil {
		return v.styles.Muted.Render("No source selected.")
	}
	src := *v.source

	var b strings.Builder

	b.WriteString(v.styles.Title.Render(src.DisplayName()))
	b.WriteString("  ")
	b.WriteString(v.styles.State(src.Enabled))
	b.WriteString("\n")
	if src.ID != "" {
		b.WriteString(v.styles.Muted.Render("ID: " + src.ID))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(v.styles.Subtitle.Render("One-line"))
	b.WriteString("\n")
	b.WriteString(v.styles.Code.Render(v.oneLine(src)))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Subtitle.Render("deb822"))
	b.WriteString("\n")
	b.WriteString(v.styles.Code.Render(v.deb822(src)))
	b.WriteString("\n\n")

	if v.sourceService != nil {
		for _, w := range v.sourceService.Validate(src) {
			b.WriteString(v.styles.Warning.Render("warning: " + w))
			b.WriteString("\n")
		}
	}

	if v.deleting {
		b.WriteString(v.styles.Muted.Render("Deleting..."))
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(keymap.HelpLine(v.keys.DetailHelp())))
	return b.String()
}

func (v *View) oneLine(src domain.Source) string {
	if v.sourceService == nil {
		return "(unavailable)"
	}
	lines, err := v.sourceService.RenderLines(src)
	if err != nil {
		return fmt.Sprintf("(no one-line form: %v)", err)
	}
	return strings.Join(lines, "\n")
}

func (v *View) deb822(src domain.Source) string {
	if v.sourceService == nil {
		return "(unavailable)"
	}
	text, err := v.sourceService.Describe(src)
	if err != nil {
		return fmt.Sprintf("(unavailable: %v)", err)
	}
	return strings.TrimRight(text, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Source returns the displayed source.
func (v *View) Source() *domain.Source {
	return v.source
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
