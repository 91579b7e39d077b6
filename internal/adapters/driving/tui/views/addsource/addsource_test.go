package addsource

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/aptline/internal/adapters/driven/deb822"
	"github.com/custodia-labs/aptline/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/aptline/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/aptline/internal/core/debline"
	"github.com/custodia-labs/aptline/internal/core/domain"
	"github.com/custodia-labs/aptline/internal/core/services"
)

func newService() *services.SourceService {
	svc := services.NewSourceService(memory.NewSourceStore())
	svc.SetRecordCodec(deb822.NewCodec())
	return svc
}

func typeText(v *View, text string) *View {
	for _, r := range text {
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return v
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil)

	require.NotNil(t, view)
	assert.Equal(t, StepEnterLine, view.Step())
	assert.Nil(t, view.Source())
	assert.Contains(t, view.View(), "Add Source")
}

func TestView_Typing_UpdatesPreview(t *testing.T) {
	view := NewView(nil, newService())
	view.Init()

	view = typeText(view, "deb http://example.com/ stable main")

	require.NotNil(t, view.Preview())
	assert.Equal(t, []string{"http://example.com/"}, view.Preview().URIs)
	out := view.View()
	assert.Contains(t, out, "Preview")
	assert.Contains(t, out, "Name: deb-example-com")
}

func TestView_Preview_ShowsParseError(t *testing.T) {
	view := NewView(nil, newService())

	view.SetValue("deb http://example.com/")

	assert.Nil(t, view.Preview())
	assert.Contains(t, view.View(), debline.ErrMalformedLine.Error())
}

func TestView_Enter_AddsSource(t *testing.T) {
	svc := newService()
	view := NewView(nil, svc)
	view.SetValue("deb http://example.com/ stable main")

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Contains(t, view.View(), "Saving...")

	msg := cmd()
	added, ok := msg.(messages.SourceAdded)
	require.True(t, ok)
	require.NoError(t, added.Err)

	view, _ = view.Update(msg)
	assert.Equal(t, StepComplete, view.Step())
	require.NotNil(t, view.Source())
	assert.Contains(t, view.View(), "Added source deb-example-com")

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, back := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, back)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewSources}, back())
}

func TestView_Enter_InvalidLine(t *testing.T) {
	view := NewView(nil, newService())
	view.SetValue("not a source")

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	view, _ = view.Update(cmd())

	assert.Equal(t, StepEnterLine, view.Step())
	assert.ErrorIs(t, view.Err(), domain.ErrInvalidInput)
	assert.Contains(t, view.View(), "Error:")
}

func TestView_Enter_Empty(t *testing.T) {
	view := NewView(nil, newService())

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.ErrorIs(t, view.Err(), domain.ErrInvalidInput)
}

func TestView_Enter_NoService(t *testing.T) {
	view := NewView(nil, nil)
	view.SetValue("deb http://example.com/ stable main")

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Error(t, view.Err())
}

func TestView_Esc_GoesBack(t *testing.T) {
	view := NewView(nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewSources}, cmd())
}

func TestView_Init_Resets(t *testing.T) {
	view := NewView(nil, newService())
	view.SetValue("deb http://example.com/ stable main")
	view, _ = view.Update(messages.SourceAdded{Source: domain.Source{Name: "x"}})
	require.Equal(t, StepComplete, view.Step())

	cmd := view.Init()

	assert.NotNil(t, cmd)
	assert.Equal(t, StepEnterLine, view.Step())
	assert.Nil(t, view.Preview())
	assert.Nil(t, view.Source())
}
