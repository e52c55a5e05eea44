package browser

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/colorbar"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/colormap"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/registry"
)

func newBrowser(t *testing.T) Model {
	t.Helper()

	cmaps := colormap.NewRegistry()
	reg := registry.New(cmaps)
	t.Cleanup(reg.Close)

	require.NoError(t, reg.Add("temperature", colorbar.Raw{
		"cmap": map[string]any{"name": "viridis"},
		"cbar": map[string]any{"label": "Temperature [K]"},
	}, false))
	require.NoError(t, reg.Add("temperature_alias", colorbar.Raw{"reference": "temperature"}, false))

	return New(reg, cmaps)
}

func TestBrowser_ListsRegisteredColorbars(t *testing.T) {
	m := newBrowser(t)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return len(out) > 0
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final := tm.FinalModel(t).(Model)
	require.Len(t, final.list.Items(), 2)
}

func TestBrowser_QuitKeys(t *testing.T) {
	m := newBrowser(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	require.IsType(t, Model{}, updated)
	require.Equal(t, tea.Quit(), cmd())
}

func TestBrowser_PreviewShowsSelection(t *testing.T) {
	m := newBrowser(t)

	resized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := resized.(Model).View()

	require.Contains(t, view, "temperature")
	require.Contains(t, view, "Temperature [K]")
}

func TestBrowser_ReferenceItemDescription(t *testing.T) {
	entry := item{name: "alias", reference: "temperature"}
	require.Equal(t, "→ temperature", entry.Description())

	concrete := item{name: "rain", categories: []string{"precipitation"}}
	require.Equal(t, "precipitation", concrete.Description())
}
