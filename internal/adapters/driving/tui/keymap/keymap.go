// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Toggle enables or disables the selected source.
	Toggle key.Binding

	// SourceCode adds or drops deb-src entries on the selected source.
	SourceCode key.Binding

	// Delete removes the selected source.
	Delete key.Binding

	// Reload reloads sources from the store.
	Reload key.Binding

	// Add opens the add source view.
	Add key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "enable/disable"),
		),
		SourceCode: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "deb-src on/off"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// SourcesHelp returns keybindings for the sources list.
func (k *KeyMap) SourcesHelp() []key.Binding {
	return []key.Binding{k.Add, k.Select, k.Toggle, k.Delete, k.Reload, k.Back}
}

// DetailHelp returns keybindings for the source detail view.
func (k *KeyMap) DetailHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.SourceCode, k.Delete, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Add, k.Toggle, k.SourceCode, k.Delete, k.Reload},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}

// HelpLine renders bindings as "[key] desc" pairs separated by two spaces.
func HelpLine(bindings []key.Binding) string {
	line := ""
	for i, b := range bindings {
		if i > 0 {
			line += "  "
		}
		h := b.Help()
		line += "[" + h.Key + "] " + h.Desc
	}
	return line
}
