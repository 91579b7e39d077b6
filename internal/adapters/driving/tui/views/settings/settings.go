// Package settings provides the settings view for the TUI.
package settings

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/aptline/internal/core/domain"
	"github.com/custodia-labs/aptline/internal/core/ports/driving"
)

// Editable rows.
const (
	rowBackend = iota
	rowVerbose
	rowCount
)

// View shows the current settings and lets the user change the backend
// and verbose logging.
type View struct {
	styles          *styles.Styles
	keys            *keymap.KeyMap
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error
	warning  string
	selected int
	changed  bool

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		keys:            keymap.DefaultKeyMap(),
		settingsService: settingsService,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.settings = msg.Settings
		v.err = nil
		v.warning = ""
		if v.settingsService != nil {
			if err := v.settingsService.Validate(); err != nil {
				v.warning = err.Error()
			}
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.changed = true
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keys.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(k, v.keys.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keys.Down):
		if v.selected < rowCount-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keys.Select), keymap.Matches(k, v.keys.Toggle):
		return v, v.changeSelected()
	}
	return v, nil
}

// changeSelected cycles the backend or flips verbose logging.
func (v *View) changeSelected() tea.Cmd {
	if v.settings == nil || v.settingsService == nil {
		return nil
	}
	svc := v.settingsService
	current := *v.settings

	switch v.selected {
	case rowBackend:
		next := nextBackend(current.Storage.Backend)
		return func() tea.Msg {
			return messages.SettingsSaved{Err: svc.SetStorageBackend(next)}
		}
	case rowVerbose:
		return func() tea.Msg {
			return messages.SettingsSaved{Err: svc.SetVerbose(!current.Log.Verbose)}
		}
	}
	return nil
}

func nextBackend(current domain.StorageBackend) domain.StorageBackend {
	all := domain.AllStorageBackends()
	for i, b := range all {
		if b == current {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.settings == nil {
		if v.err != nil {
			b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		} else {
			b.WriteString(v.styles.Muted.Render("Loading settings..."))
		}
		b.WriteString("\n")
		return b.String()
	}
	s := v.settings

	b.WriteString(v.styles.Subtitle.Render("Storage"))
	b.WriteString("\n")
	b.WriteString(v.row(rowBackend, "Backend", s.Storage.Backend.Description()))
	dataDir := s.Storage.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}
	b.WriteString(v.styles.Muted.Render("    Data dir:    " + dataDir))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("    Sources dir: " + s.Storage.SourcesDir))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Subtitle.Render("Naming"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("    Prefix:      " + s.Naming.Prefix))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Subtitle.Render("Log"))
	b.WriteString("\n")
	verbose := "no"
	if s.Log.Verbose {
		verbose = "yes"
	}
	b.WriteString(v.row(rowVerbose, "Verbose", verbose))
	b.WriteString("\n")

	if v.warning != "" {
		b.WriteString(v.styles.Warning.Render("warning: " + v.warning))
		b.WriteString("\n")
	}
	if v.changed {
		b.WriteString(v.styles.Muted.Render("Backend changes apply on next start."))
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/k] up  [↓/j] down  [enter] change  [esc] back"))
	return b.String()
}

func (v *View) row(index int, label, value string) string {
	line := fmt.Sprintf("%-12s %s", label+":", value)
	if index == v.selected {
		return v.styles.Selected.Render("> "+line) + "\n"
	}
	return v.styles.Normal.Render("  "+line) + "\n"
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Selected returns the selected row.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
