// Package render draws colorbar previews in the terminal: a colored strip
// built from the materialized lookup table, extend arrows, tick labels and
// the colorbar label.
package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/colormap"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/materialize"
)

const defaultWidth = 60

// Renderer draws colorbar previews at a fixed width, degrading colors to
// the terminal's color profile.
type Renderer struct {
	width   int
	profile termenv.Profile
}

// New returns a renderer for the given width. Widths below 10 fall back to
// the default.
func New(width int) *Renderer {
	if width < 10 {
		width = defaultWidth
	}
	return &Renderer{width: width, profile: termenv.ColorProfile()}
}

// WithProfile overrides the detected terminal color profile. Tests use
// this to force a deterministic profile.
func (r *Renderer) WithProfile(profile termenv.Profile) *Renderer {
	r.profile = profile
	return r
}

// Colorbar renders the full preview: strip with extend arrows, tick labels
// and the label line.
func (r *Renderer) Colorbar(params *materialize.Params) string {
	lines := []string{r.strip(params)}

	if ticks := r.tickLine(params); ticks != "" {
		lines = append(lines, ticks)
	}
	if params.Cbar.Label != "" {
		lines = append(lines, r.labelLines(params.Cbar.Label)...)
	}

	return strings.Join(lines, "\n")
}

// strip renders the colored bar itself. Extend arrows take one cell on
// each extended side, colored with the under/over overrides when given.
func (r *Renderer) strip(params *materialize.Params) string {
	extendMin := params.Cbar.Extend == "min" || params.Cbar.Extend == "both"
	extendMax := params.Cbar.Extend == "max" || params.Cbar.Extend == "both"

	barWidth := r.width
	if extendMin {
		barWidth--
	}
	if extendMax {
		barWidth--
	}

	var b strings.Builder
	if extendMin {
		b.WriteString(r.arrow("◄", params.Cmap.UnderColor, firstColor(params)))
	}
	b.WriteString(r.bar(params.Cmap.Colors, barWidth))
	if extendMax {
		b.WriteString(r.arrow("►", params.Cmap.OverColor, lastColor(params)))
	}
	return b.String()
}

func (r *Renderer) bar(colors []colormap.RGBA, width int) string {
	if len(colors) == 0 || width <= 0 {
		return ""
	}

	var b strings.Builder
	for x := 0; x < width; x++ {
		idx := x * len(colors) / width
		b.WriteString(r.cell(colors[idx]))
	}
	return b.String()
}

func (r *Renderer) cell(c colormap.RGBA) string {
	return r.profile.String(" ").Background(r.termColor(c)).String()
}

func (r *Renderer) arrow(glyph string, override *colormap.RGBA, fallback colormap.RGBA) string {
	c := fallback
	if override != nil {
		c = *override
	}
	return r.profile.String(glyph).Foreground(r.termColor(c)).String()
}

// termColor adapts a color to the renderer's profile; on monochrome
// profiles it is nil and styling becomes a no-op.
func (r *Renderer) termColor(c colormap.RGBA) termenv.Color {
	return r.profile.Color(c.Colorful().Clamped().Hex())
}

// tickLine lays the tick labels out under the strip: first label left
// aligned, last right aligned, the rest spread evenly.
func (r *Renderer) tickLine(params *materialize.Params) string {
	labels := params.Cbar.TickLabels
	if labels == nil {
		for _, tick := range params.Cbar.Ticks {
			labels = append(labels, formatTick(tick))
		}
	}
	if len(labels) == 0 {
		return ""
	}

	cells := make([]rune, r.width)
	for i := range cells {
		cells[i] = ' '
	}

	for i, label := range labels {
		pos := 0
		if len(labels) > 1 {
			pos = i * (r.width - runewidth.StringWidth(label)) / (len(labels) - 1)
		}
		placeLabel(cells, label, pos)
	}
	return strings.TrimRight(string(cells), " ")
}

func placeLabel(cells []rune, label string, pos int) {
	for _, ch := range label {
		w := runewidth.RuneWidth(ch)
		if pos+w > len(cells) {
			return
		}
		cells[pos] = ch
		for i := 1; i < w; i++ {
			cells[pos+i] = ' '
		}
		pos += w
	}
}

func formatTick(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

// labelLines centers the label under the bar, wrapping it when it exceeds
// the render width.
func (r *Renderer) labelLines(label string) []string {
	wrapped := wordwrap.String(label, r.width)

	var lines []string
	for _, line := range strings.Split(wrapped, "\n") {
		pad := (r.width - runewidth.StringWidth(line)) / 2
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, strings.Repeat(" ", pad)+line)
	}
	return lines
}

func firstColor(params *materialize.Params) colormap.RGBA {
	if len(params.Cmap.Colors) == 0 {
		return colormap.RGBA{A: 1}
	}
	return params.Cmap.Colors[0]
}

func lastColor(params *materialize.Params) colormap.RGBA {
	if len(params.Cmap.Colors) == 0 {
		return colormap.RGBA{A: 1}
	}
	return params.Cmap.Colors[len(params.Cmap.Colors)-1]
}
