package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/views/addsource"
	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/views/sourcedetail"
	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/views/sources"
	"github.com/custodia-labs/aptline/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles

	menuView         *menu.View
	sourcesView      *sources.View
	sourceDetailView *sourcedetail.View
	addSourceView    *addsource.View
	settingsView     *settings.View

	// selectedSource tracks the source shown in the detail view.
	selectedSource *domain.Source

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:            ports,
		ctx:              context.Background(),
		styles:           s,
		menuView:         menu.NewView(s),
		sourcesView:      sources.NewView(s, ports.Source),
		sourceDetailView: sourcedetail.NewView(s, ports.Source),
		addSourceView:    addsource.NewView(s, ports.Source),
		settingsView:     settings.NewView(s, ports.Settings),
		currentView:      messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("aptline - APT sources"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.SourceSelected:
		src := msg.Source
		a.selectedSource = &src
		a.sourceDetailView.SetSource(src)
		a.currentView = messages.ViewSourceDetail
		return a, a.sourceDetailView.Init()

	case messages.SourcesLoaded:
		a.sourcesView, cmd = a.sourcesView.Update(msg)
		return a, cmd

	case messages.SourceToggled, messages.SourceRemoved:
		if a.currentView == messages.ViewSourceDetail {
			a.sourceDetailView, cmd = a.sourceDetailView.Update(msg)
			return a, cmd
		}
		a.sourcesView, cmd = a.sourcesView.Update(msg)
		return a, cmd

	case messages.SourceAdded:
		a.addSourceView, cmd = a.addSourceView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewSourceDetail {
			a.sourceDetailView, cmd = a.sourceDetailView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a.forward(msg)
}

// handleKeyMsg routes key presses to the active view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.currentView {
	case messages.ViewSources:
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
			return a, nil
		}
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
		return a, nil
	}
	return a.forward(msg)
}

// forward passes a message to the active view.
func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSources:
		a.sourcesView, cmd = a.sourcesView.Update(msg)
	case messages.ViewSourceDetail:
		a.sourceDetailView, cmd = a.sourceDetailView.Update(msg)
	case messages.ViewAddSource:
		a.addSourceView, cmd = a.addSourceView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// switchTo activates a view and returns its initial command.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	switch view {
	case messages.ViewSources:
		return a.sourcesView.Init()
	case messages.ViewSourceDetail:
		return a.sourceDetailView.Init()
	case messages.ViewAddSource:
		return a.addSourceView.Init()
	case messages.ViewSettings:
		return a.settingsView.Init()
	case messages.ViewMenu, messages.ViewHelp:
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSources:
		return a.sourcesView.View()
	case messages.ViewSourceDetail:
		return a.sourceDetailView.View()
	case messages.ViewAddSource:
		return a.addSourceView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Sources:
  j/k, ↑/↓    Navigate sources
  enter       Show details
  space       Enable/disable
  d           Delete
  r           Reload
  a           Add source

Add source:
  (type)      Enter a one-line source
  enter       Add

` + a.styles.Help.Render("[esc] back to menu")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// SelectedSource returns the source shown in the detail view.
func (a *App) SelectedSource() *domain.Source {
	return a.selectedSource
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.sourcesView.SetDimensions(width, height)
	a.sourceDetailView.SetDimensions(width, height)
	a.addSourceView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
