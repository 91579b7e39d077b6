package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/styles"
)

func TestNewLineInput(t *testing.T) {
	input := NewLineInput(styles.DefaultStyles(), "Line:")

	require.NotNil(t, input)
	assert.Equal(t, "", input.Value())
	assert.True(t, input.Focused())
}

func TestNewLineInput_NilStyles(t *testing.T) {
	input := NewLineInput(nil, "Line:")

	require.NotNil(t, input)
	assert.NotNil(t, input.styles)
}

func TestLineInput_Init(t *testing.T) {
	input := NewLineInput(nil, "Line:")

	assert.NotNil(t, input.Init())
}

func TestLineInput_Update(t *testing.T) {
	input := NewLineInput(nil, "Line:")

	updated, _ := input.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})

	assert.Equal(t, input, updated)
	assert.Equal(t, "d", input.Value())
}

func TestLineInput_View(t *testing.T) {
	input := NewLineInput(nil, "Line:")

	assert.Contains(t, input.View(), "Line:")
}

func TestLineInput_SetValueAndReset(t *testing.T) {
	input := NewLineInput(nil, "Line:")

	input.SetValue("deb http://example.com/ stable main")
	assert.Equal(t, "deb http://example.com/ stable main", input.Value())

	input.Reset()
	assert.Empty(t, input.Value())
}

func TestLineInput_SetWidth(t *testing.T) {
	input := NewLineInput(nil, "Line:")

	input.SetWidth(100)
	assert.Equal(t, 100, input.Width())
	assert.Equal(t, 89, input.textinput.Width)

	input.SetWidth(10)
	assert.Equal(t, 20, input.textinput.Width)
}
