// Package materialize turns validated colorbar records into the concrete
// parameter bundles a rendering sink consumes: a color lookup table, the
// normalization fields and the decoration settings.
package materialize

import (
	"context"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/colorbar"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/colormap"
)

// continuousLUTSize is the lookup table resolution for non-discrete
// normalizations.
const continuousLUTSize = 256

// CmapParams is the materialized colormap: a ready color lookup table plus
// the special-value color overrides.
type CmapParams struct {
	Names      []string
	Colors     []colormap.RGBA
	Discrete   bool
	BadColor   *colormap.RGBA
	OverColor  *colormap.RGBA
	UnderColor *colormap.RGBA
}

// NormParams carries the normalization discriminant and exactly the fields
// that variant needs, with defaults filled in.
type NormParams struct {
	Name   string
	Fields map[string]any
}

// CbarParams is the materialized decoration block. For category
// normalizations the ticks and tick labels default to one per category.
type CbarParams struct {
	Extend     string
	ExtendFrac colorbar.ExtendFrac
	ExtendRect bool
	Label      string
	Ticks      []float64
	TickLabels []string
}

// Params bundles everything a rendering sink needs for one colorbar.
type Params struct {
	Cmap CmapParams
	Norm NormParams
	Cbar CbarParams
}

// Materialize builds the rendering parameters for a validated record,
// resolving colormap names through the given colormap registry.
func Materialize(ctx context.Context, record *colorbar.Record, cmaps *colormap.Registry) (*Params, error) {
	cmapParams, err := materializeCmap(ctx, record, cmaps)
	if err != nil {
		return nil, err
	}

	return &Params{
		Cmap: cmapParams,
		Norm: materializeNorm(record.Norm),
		Cbar: materializeCbar(record),
	}, nil
}

func materializeCmap(ctx context.Context, record *colorbar.Record, cmaps *colormap.Registry) (CmapParams, error) {
	settings := record.Cmap

	expected, discrete := colorbar.ExpectedNColors(record.Norm)
	if !discrete && settings.TotalN() > 0 {
		// An explicit n on a continuous normalization still yields a
		// discrete lookup table.
		discrete = true
		expected = settings.TotalN()
	}

	colors, err := BuildLookupTable(ctx, cmaps, &settings, discrete, expected)
	if err != nil {
		return CmapParams{}, err
	}

	params := CmapParams{
		Names:    append([]string(nil), settings.Names...),
		Colors:   colors,
		Discrete: discrete,
	}

	params.BadColor, err = overrideColor(settings.BadColor, settings.BadAlpha)
	if err != nil {
		return CmapParams{}, err
	}
	params.OverColor, err = overrideColor(settings.OverColor, settings.OverAlpha)
	if err != nil {
		return CmapParams{}, err
	}
	params.UnderColor, err = overrideColor(settings.UnderColor, settings.UnderAlpha)
	if err != nil {
		return CmapParams{}, err
	}

	return params, nil
}

// BuildLookupTable samples the record's colormaps into one color table.
// For discrete normalizations each colormap contributes its declared share
// of the expected color count; without a declared split the count divides
// evenly, remainder to the last colormap. Continuous normalizations sample
// a fixed-resolution table, with multiple colormaps stacked end to end.
func BuildLookupTable(ctx context.Context, cmaps *colormap.Registry, settings *colorbar.CmapSettings, discrete bool, expected int) ([]colormap.RGBA, error) {
	loaded := make([]*colormap.Colormap, 0, len(settings.Names))
	for _, name := range settings.Names {
		cmap, err := cmaps.Get(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("building lookup table: %w", err)
		}
		loaded = append(loaded, cmap)
	}

	if !discrete {
		counts := splitEvenly(continuousLUTSize, len(loaded))
		return sampleAll(loaded, counts), nil
	}

	counts := settings.N
	if len(counts) != len(loaded) {
		counts = splitEvenly(expected, len(loaded))
	}
	return sampleAll(loaded, counts), nil
}

func sampleAll(loaded []*colormap.Colormap, counts []int) []colormap.RGBA {
	var colors []colormap.RGBA
	for i, cmap := range loaded {
		colors = append(colors, cmap.Resample(counts[i])...)
	}
	return colors
}

func splitEvenly(total, parts int) []int {
	counts := make([]int, parts)
	for i := range counts {
		counts[i] = total / parts
	}
	counts[parts-1] += total % parts
	return counts
}

// overrideColor converts a validated color override to the internal
// representation, applying the alpha override when given.
func overrideColor(c *colorbar.Color, alpha *float64) (*colormap.RGBA, error) {
	if c == nil {
		return nil, nil
	}

	var rgba colormap.RGBA
	switch {
	case c.None:
		rgba = colormap.RGBA{}
	case c.Name != "":
		named, ok := colormap.NamedColor(c.Name)
		if !ok {
			return nil, fmt.Errorf("unrecognized color name %q", c.Name)
		}
		rgba = colormap.RGBA{R: named.R, G: named.G, B: named.B, A: 1}
	case c.Hex != "":
		parsed, err := parseHex(c.Hex)
		if err != nil {
			return nil, err
		}
		rgba = parsed
	default:
		rgba = colormap.RGBA{R: c.Channels[0], G: c.Channels[1], B: c.Channels[2], A: 1}
		if len(c.Channels) == 4 {
			rgba.A = c.Channels[3]
		}
	}

	if alpha != nil && !c.None {
		rgba.A = *alpha
	}
	return &rgba, nil
}

// parseHex accepts the #RGB, #RRGGBB and #RRGGBBAA forms.
func parseHex(s string) (colormap.RGBA, error) {
	if len(s) == 4 {
		var b strings.Builder
		b.WriteByte('#')
		for _, ch := range s[1:] {
			b.WriteRune(ch)
			b.WriteRune(ch)
		}
		s = b.String()
	}

	alpha := 1.0
	if len(s) == 9 {
		var a int
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return colormap.RGBA{}, fmt.Errorf("%q has an invalid alpha component", s)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return colormap.RGBA{}, fmt.Errorf("%q is not a valid hex color", s)
	}
	return colormap.RGBA{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// materializeNorm emits the discriminant plus exactly the fields the
// variant needs, defaults included. The switch is exhaustive over the
// closed variant set.
func materializeNorm(norm colorbar.NormSettings) NormParams {
	fields := map[string]any{}

	switch n := norm.(type) {
	case *colorbar.LinearNorm:
		putRange(fields, n.VMin, n.VMax)
		fields["clip"] = n.Clip
	case *colorbar.NoNorm:
		putRange(fields, n.VMin, n.VMax)
		fields["clip"] = n.Clip
	case *colorbar.BoundaryNorm:
		fields["boundaries"] = append([]float64(nil), n.Boundaries...)
		fields["ncolors"] = n.NColors
		fields["clip"] = n.Clip
		fields["extend"] = n.Extend
	case *colorbar.CategoryNorm:
		fields["labels"] = append([]string(nil), n.Labels...)
		fields["first_value"] = n.FirstValue
	case *colorbar.CenteredNorm:
		fields["vcenter"] = n.VCenter
		if n.Halfrange != nil {
			fields["halfrange"] = *n.Halfrange
		}
		fields["clip"] = n.Clip
	case *colorbar.TwoSlopeNorm:
		fields["vcenter"] = n.VCenter
		putRange(fields, n.VMin, n.VMax)
	case *colorbar.LogNorm:
		putRange(fields, n.VMin, n.VMax)
		fields["clip"] = n.Clip
	case *colorbar.SymLogNorm:
		fields["linthresh"] = n.LinThresh
		fields["linscale"] = n.LinScale
		fields["base"] = n.Base
		putRange(fields, n.VMin, n.VMax)
		fields["clip"] = n.Clip
	case *colorbar.PowerNorm:
		fields["gamma"] = n.Gamma
		putRange(fields, n.VMin, n.VMax)
		fields["clip"] = n.Clip
	case *colorbar.AsinhNorm:
		fields["linear_width"] = n.LinearWidth
		putRange(fields, n.VMin, n.VMax)
		fields["clip"] = n.Clip
	}

	return NormParams{Name: norm.NormName(), Fields: fields}
}

func putRange(fields map[string]any, vmin, vmax *float64) {
	if vmin != nil {
		fields["vmin"] = *vmin
	}
	if vmax != nil {
		fields["vmax"] = *vmax
	}
}

// materializeCbar fills the decoration parameters. Category normalizations
// get one centered tick per label unless the record declares its own.
func materializeCbar(record *colorbar.Record) CbarParams {
	cbar := record.Cbar

	params := CbarParams{
		Extend:     cbar.Extend,
		ExtendFrac: cbar.ExtendFrac,
		ExtendRect: cbar.ExtendRect,
		Label:      cbar.Label,
		Ticks:      append([]float64(nil), cbar.Ticks...),
		TickLabels: append([]string(nil), cbar.TickLabels...),
	}

	if category, ok := record.Norm.(*colorbar.CategoryNorm); ok && params.Ticks == nil {
		ticks := make([]float64, len(category.Labels))
		for i := range category.Labels {
			ticks[i] = float64(category.FirstValue+i) + 0.5
		}
		params.Ticks = ticks
		if params.TickLabels == nil {
			params.TickLabels = append([]string(nil), category.Labels...)
		}
	}

	return params
}
