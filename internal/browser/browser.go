// Package browser implements the interactive colorbar browser: a list of
// registered colorbars with a live terminal preview of the selection.
package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/colormap"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/materialize"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/registry"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/render"
)

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true)

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	referenceStyle = lipgloss.NewStyle().Faint(true)
)

// item is one registered colorbar in the list.
type item struct {
	name       string
	reference  string
	categories []string
}

func (i item) Title() string { return i.name }

func (i item) Description() string {
	if i.reference != "" {
		return "→ " + i.reference
	}
	if len(i.categories) > 0 {
		return strings.Join(i.categories, ", ")
	}
	return "colorbar"
}

func (i item) FilterValue() string {
	return i.name + " " + strings.Join(i.categories, " ")
}

// Model holds the browser state: the colorbar list on the left and the
// preview of the selection on the right.
type Model struct {
	registry *registry.Registry
	cmaps    *colormap.Registry

	list   list.Model
	width  int
	height int
}

// New builds the browser over the given registries.
func New(reg *registry.Registry, cmaps *colormap.Registry) Model {
	items := make([]list.Item, 0)
	for _, name := range reg.Names() {
		entry := item{name: name}
		if raw, err := reg.Get(name, false); err == nil {
			entry.reference = raw.Reference()
			entry.categories = raw.Categories()
		}
		items = append(items, entry)
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Colorbars"
	l.SetShowStatusBar(false)

	return Model{registry: reg, cmaps: cmaps, list: l}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.listWidth(), msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		// Don't swallow keys while the user is filtering.
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "ctrl+c", "esc":
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list and the preview side by side.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.list.View(),
		paneStyle.Width(m.previewWidth()).Render(m.preview()),
	)
}

func (m Model) listWidth() int {
	w := m.width / 3
	if w < 24 {
		w = 24
	}
	return w
}

func (m Model) previewWidth() int {
	w := m.width - m.listWidth() - 4
	if w < 20 {
		w = 20
	}
	return w
}

// preview renders the selected colorbar, or the reason it cannot be shown.
func (m Model) preview() string {
	selected, ok := m.list.SelectedItem().(item)
	if !ok {
		return "no colorbars registered"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(selected.name))
	b.WriteString("\n\n")

	if selected.reference != "" {
		b.WriteString(referenceStyle.Render(fmt.Sprintf("reference → %s", selected.reference)))
		b.WriteString("\n\n")
	}

	record, err := m.registry.GetRecord(selected.name)
	if err != nil {
		b.WriteString(errorStyle.Render(err.Error()))
		return b.String()
	}

	params, err := materialize.Materialize(context.Background(), record, m.cmaps)
	if err != nil {
		b.WriteString(errorStyle.Render(err.Error()))
		return b.String()
	}

	b.WriteString(render.New(m.previewWidth() - 4).Colorbar(params))
	b.WriteString("\n\n")
	b.WriteString(referenceStyle.Render("norm: " + params.Norm.Name))

	return b.String()
}
