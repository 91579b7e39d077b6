package settings

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/aptline/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/aptline/internal/core/domain"
	"github.com/custodia-labs/aptline/internal/core/services"
)

func loadedView(t *testing.T) (*View, *services.SettingsService) {
	t.Helper()
	svc := services.NewSettingsService(memory.NewConfigStore())
	view := NewView(nil, svc)
	cmd := view.Init()
	require.NotNil(t, cmd)
	view, _ = view.Update(cmd())
	require.NotNil(t, view.Settings())
	return view, svc
}

// apply runs a command and feeds every resulting message back into the view.
func apply(view *View, cmd tea.Cmd) *View {
	for cmd != nil {
		view, cmd = view.Update(cmd())
	}
	return view
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil)

	require.NotNil(t, view)
	assert.Nil(t, view.Settings())
	assert.Contains(t, view.View(), "Loading settings...")
}

func TestView_Init_NoService(t *testing.T) {
	view := NewView(nil, nil)

	view, _ = view.Update(view.Init()())

	assert.Error(t, view.Err())
	assert.Contains(t, view.View(), "settings service not available")
}

func TestView_View_ShowsDefaults(t *testing.T) {
	view, _ := loadedView(t)

	out := view.View()
	assert.Contains(t, out, "SQLite (local database)")
	assert.Contains(t, out, domain.DefaultSourcesDir)
	assert.Contains(t, out, "Prefix:      "+domain.DefaultNamePrefix)
	assert.Contains(t, out, "(default)")
}

func TestView_Navigation(t *testing.T) {
	view, _ := loadedView(t)

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, rowVerbose, view.Selected())

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, rowVerbose, view.Selected())

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, rowBackend, view.Selected())
}

func TestView_Enter_CyclesBackend(t *testing.T) {
	view, svc := loadedView(t)

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view = apply(view, cmd)

	assert.Equal(t, domain.StorageBackendMemory, view.Settings().Storage.Backend)
	stored, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StorageBackendMemory, stored.Storage.Backend)
	assert.Contains(t, view.View(), "Backend changes apply on next start.")
}

func TestView_Enter_TogglesVerbose(t *testing.T) {
	view, svc := loadedView(t)

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyDown})
	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view = apply(view, cmd)

	assert.True(t, view.Settings().Log.Verbose)
	stored, err := svc.Get()
	require.NoError(t, err)
	assert.True(t, stored.Log.Verbose)
}

func TestView_SettingsSavedError(t *testing.T) {
	view, _ := loadedView(t)

	view, cmd := view.Update(messages.SettingsSaved{Err: domain.ErrInvalidInput})

	assert.Nil(t, cmd)
	assert.ErrorIs(t, view.Err(), domain.ErrInvalidInput)
	assert.Contains(t, view.View(), "Error:")
}

func TestView_Esc_GoesToMenu(t *testing.T) {
	view := NewView(nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestNextBackend(t *testing.T) {
	assert.Equal(t, domain.StorageBackendMemory, nextBackend(domain.StorageBackendSQLite))
	assert.Equal(t, domain.StorageBackendSourcesDir, nextBackend(domain.StorageBackendMemory))
	assert.Equal(t, domain.StorageBackendSQLite, nextBackend(domain.StorageBackendSourcesDir))
	assert.Equal(t, domain.StorageBackendSQLite, nextBackend("bogus"))
}
