// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/styles"
)

// LineInput wraps a bubbles textinput for entering one-line APT sources.
type LineInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewLineInput creates a focused input with the given label.
func NewLineInput(s *styles.Styles, label string) *LineInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "deb [ arch=amd64 ] http://deb.debian.org/debian bookworm main"
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = 60

	return &LineInput{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     60,
	}
}

// Init starts the cursor blinking.
func (l *LineInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (l *LineInput) Update(msg tea.Msg) (*LineInput, tea.Cmd) {
	var cmd tea.Cmd
	l.textinput, cmd = l.textinput.Update(msg)
	return l, cmd
}

// View renders the label and input.
func (l *LineInput) View() string {
	label := l.styles.Title.Render(l.label + " ")
	field := l.styles.InputField.Render(l.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (l *LineInput) Value() string {
	return l.textinput.Value()
}

// SetValue sets the input value.
func (l *LineInput) SetValue(value string) {
	l.textinput.SetValue(value)
}

// Focused returns whether the input is focused.
func (l *LineInput) Focused() bool {
	return l.textinput.Focused()
}

// SetWidth sets the width of the input, leaving room for the label.
func (l *LineInput) SetWidth(width int) {
	l.width = width
	inputWidth := width - len(l.label) - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	l.textinput.Width = inputWidth
}

// Width returns the current width.
func (l *LineInput) Width() int {
	return l.width
}

// Reset clears the input.
func (l *LineInput) Reset() {
	l.textinput.Reset()
}
