// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/aptline/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSources lists stored sources.
	ViewSources
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSourceDetail shows one source in both forms.
	ViewSourceDetail
	// ViewAddSource adds a source from a one-line entry.
	ViewAddSource
	// ViewSettings shows the current settings.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSources:
		return "sources"
	case ViewHelp:
		return "help"
	case ViewSourceDetail:
		return "source_detail"
	case ViewAddSource:
		return "add_source"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SourcesLoaded carries the list of sources from the service.
type SourcesLoaded struct {
	Sources []domain.Source
	Err     error
}

// SourceAdded signals a source was added.
type SourceAdded struct {
	Source domain.Source
	Err    error
}

// SourceRemoved signals a source was removed.
type SourceRemoved struct {
	ID  string
	Err error
}

// SourceToggled signals a source was enabled or disabled.
type SourceToggled struct {
	Source domain.Source
	Err    error
}

// SourceSelected signals a source was selected for detail view.
type SourceSelected struct {
	Source domain.Source
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved indicates a settings change was persisted.
type SettingsSaved struct {
	Err error
}
