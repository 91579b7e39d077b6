// Package addsource provides the add source view for the TUI.
package addsource

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/aptline/internal/core/domain"
	"github.com/custodia-labs/aptline/internal/core/ports/driving"
)

// Step tracks where the user is in the add flow.
type Step int

const (
	StepEnterLine Step = iota
	StepComplete
)

// Key constants.
const (
	keyEnter = "enter"
	keyEsc   = "esc"
)

var errNoService = errors.New("source service not available")

// View lets the user type a one-line source and store it.
type View struct {
	styles        *styles.Styles
	sourceService driving.SourceService
	input         *input.LineInput

	step     Step
	preview  *domain.Source
	parseErr error
	saving   bool

	source *domain.Source
	err    error

	width  int
	height int
}

// NewView creates a new add source view.
func NewView(s *styles.Styles, sourceService driving.SourceService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		sourceService: sourceService,
		input:         input.NewLineInput(s, "Line:"),
		step:          StepEnterLine,
	}
}

// Init resets the view for a new entry.
func (v *View) Init() tea.Cmd {
	v.Reset()
	return v.input.Init()
}

// Reset clears all state.
func (v *View) Reset() {
	v.input.Reset()
	v.step = StepEnterLine
	v.preview = nil
	v.parseErr = nil
	v.saving = false
	v.source = nil
	v.err = nil
}

// Update handles messages for the add source view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SourceAdded:
		v.saving = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		src := msg.Source
		v.source = &src
		v.step = StepComplete
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSources}
		}
	case keyEnter:
		if v.step == StepComplete {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewSources}
			}
		}
		return v, v.submit()
	}

	if v.step == StepComplete {
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.refreshPreview()
	return v, cmd
}

// refreshPreview parses the current input so the user sees the result while typing.
func (v *View) refreshPreview() {
	v.err = nil
	line := strings.TrimSpace(v.input.Value())
	if line == "" || v.sourceService == nil {
		v.preview = nil
		v.parseErr = nil
		return
	}
	v.preview, v.parseErr = v.sourceService.ParseLine(line)
}

func (v *View) submit() tea.Cmd {
	line := strings.TrimSpace(v.input.Value())
	if line == "" {
		v.err = domain.ErrInvalidInput
		return nil
	}
	if v.sourceService == nil {
		v.err = errNoService
		return nil
	}
	v.saving = true
	svc := v.sourceService
	return func() tea.Msg {
		src, err := svc.AddLine(context.Background(), line)
		if err != nil {
			return messages.SourceAdded{Err: err}
		}
		return messages.SourceAdded{Source: *src}
	}
}

// View renders the add source view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Add Source"))
	b.WriteString("\n\n")

	if v.step == StepComplete && v.source != nil {
		b.WriteString(v.styles.Enabled.Render("Added source " + v.source.DisplayName()))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("ID: " + v.source.ID))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[enter] sources  [esc] back"))
		return b.String()
	}

	b.WriteString(v.input.View())
	b.WriteString("\n\n")

	switch {
	case v.parseErr != nil:
		b.WriteString(v.styles.Warning.Render(v.parseErr.Error()))
		b.WriteString("\n")
	case v.preview != nil:
		b.WriteString(v.styles.Subtitle.Render("Preview"))
		b.WriteString("\n")
		b.WriteString(v.renderPreview(*v.preview))
		b.WriteString("\n")
	}

	if v.saving {
		b.WriteString(v.styles.Muted.Render("Saving..."))
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] add  [esc] back"))
	return b.String()
}

func (v *View) renderPreview(src domain.Source) string {
	text, err := v.sourceService.Describe(src)
	if err != nil {
		return v.styles.Code.Render("Name: " + src.DisplayName())
	}
	return v.styles.Code.Render(strings.TrimRight(text, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
}

// SetValue sets the input line and refreshes the preview.
func (v *View) SetValue(line string) {
	v.input.SetValue(line)
	v.refreshPreview()
}

// Step returns the current step.
func (v *View) Step() Step {
	return v.step
}

// Source returns the added source, if any.
func (v *View) Source() *domain.Source {
	return v.source
}

// Preview returns the parsed preview of the current input.
func (v *View) Preview() *domain.Source {
	return v.preview
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
