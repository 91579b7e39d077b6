package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/aptline/internal/adapters/driving/tui"
	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/messages"
)

func TestTUICmd_Exists(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "tui" {
			found = true
			break
		}
	}
	assert.True(t, found, "tui command should be registered")
}

func TestTUICmd_Metadata(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
	assert.Contains(t, tuiCmd.Long, "deb822")
}

func TestNewTUIApp(t *testing.T) {
	setupTestServices(t)

	app, err := newTUIApp()

	require.NoError(t, err)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestNewTUIApp_NoSourceService(t *testing.T) {
	clearServices(t)

	app, err := newTUIApp()

	assert.Nil(t, app)
	assert.ErrorIs(t, err, tui.ErrMissingSourceService)
}
