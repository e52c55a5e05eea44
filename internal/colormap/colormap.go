// Package colormap manages the colormap namespace: built-in palettes,
// YAML-defined colormaps registered by name, and the color codec between
// external encodings and the internal [0, 1] representation.
package colormap

import (
	"math"
	"strings"
)

// Colormap maps positions in [0, 1] to colors. A listed colormap snaps to
// its nearest entry; an interpolating one blends between neighbours.
type Colormap struct {
	Name        string
	Colors      []RGBA
	Interpolate bool
}

// At returns the color at position t, with t clamped to [0, 1].
func (c *Colormap) At(t float64) RGBA {
	if len(c.Colors) == 0 {
		return RGBA{A: 1}
	}
	if t <= 0 {
		return c.Colors[0]
	}
	if t >= 1 {
		return c.Colors[len(c.Colors)-1]
	}

	if !c.Interpolate {
		idx := int(t * float64(len(c.Colors)))
		if idx >= len(c.Colors) {
			idx = len(c.Colors) - 1
		}
		return c.Colors[idx]
	}

	pos := t * float64(len(c.Colors)-1)
	lo := int(math.Floor(pos))
	hi := lo + 1
	if hi >= len(c.Colors) {
		return c.Colors[len(c.Colors)-1]
	}
	return blend(c.Colors[lo], c.Colors[hi], pos-float64(lo))
}

// Resample returns n colors sampled evenly across the colormap.
func (c *Colormap) Resample(n int) []RGBA {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []RGBA{c.At(0.5)}
	}
	colors := make([]RGBA, n)
	for i := range colors {
		colors[i] = c.At(float64(i) / float64(n-1))
	}
	return colors
}

// Reversed returns the colormap with its color order flipped. The reversed
// name carries the conventional "_r" suffix, or drops it if already there.
func (c *Colormap) Reversed() *Colormap {
	colors := make([]RGBA, len(c.Colors))
	for i, color := range c.Colors {
		colors[len(colors)-1-i] = color
	}

	name := c.Name + reversedSuffix
	if strings.HasSuffix(c.Name, reversedSuffix) {
		name = strings.TrimSuffix(c.Name, reversedSuffix)
	}

	return &Colormap{Name: name, Colors: colors, Interpolate: c.Interpolate}
}

// blend interpolates between two colors in the perceptually uniform Luv
// space, with linear alpha.
func blend(a, b RGBA, t float64) RGBA {
	mixed := a.Colorful().BlendLuv(b.Colorful(), t).Clamped()
	return RGBA{
		R: mixed.R,
		G: mixed.G,
		B: mixed.B,
		A: a.A + (b.A-a.A)*t,
	}
}
