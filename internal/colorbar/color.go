package colorbar

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/colormap"
)

// hexColorPattern accepts #RGB, #RRGGBB and #RRGGBBAA hex strings.
var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Color is a validated bad/over/under color override. Exactly one of the
// fields below is populated.
type Color struct {
	None     bool      // the literal "none": draw nothing
	Name     string    // a recognized named color
	Hex      string    // a #RGB / #RRGGBB / #RRGGBBAA hex string
	Channels []float64 // a 3/4-component tuple, each channel in [0,1]
}

// rawValue returns the canonical persisted form of the color.
func (c *Color) rawValue() any {
	switch {
	case c.None:
		return "none"
	case c.Name != "":
		return c.Name
	case c.Hex != "":
		return c.Hex
	default:
		return append([]float64(nil), c.Channels...)
	}
}

// parseColorField validates a bad_color/over_color/under_color value.
func parseColorField(field string, v any) (*Color, error) {
	switch val := v.(type) {
	case string:
		if strings.EqualFold(val, "none") {
			return &Color{None: true}, nil
		}
		if colormap.IsNamedColor(val) {
			return &Color{Name: val}, nil
		}
		if strings.HasPrefix(val, "#") {
			if !hexColorPattern.MatchString(val) {
				return nil, &InvalidColorError{
					Field:  field,
					Reason: fmt.Sprintf("invalid hex color %q, expected #RGB, #RRGGBB or #RRGGBBAA", val),
				}
			}
			return &Color{Hex: val}, nil
		}
		return nil, &InvalidColorError{
			Field:  field,
			Reason: fmt.Sprintf("%q is neither a named color, a hex string nor \"none\"", val),
		}
	default:
		channels, ok := toFloatSlice(v)
		if !ok {
			return nil, &InvalidColorError{
				Field:  field,
				Reason: "expected a named color, hex string, \"none\" or RGB/RGBA tuple",
			}
		}
		if len(channels) != 3 && len(channels) != 4 {
			return nil, &InvalidColorError{
				Field:  field,
				Reason: fmt.Sprintf("RGB/RGBA tuple must have 3 or 4 components, got %d", len(channels)),
			}
		}
		for _, ch := range channels {
			if ch < 0 || ch > 1 {
				return nil, &InvalidColorError{
					Field:  field,
					Reason: fmt.Sprintf("RGB/RGBA components must be in [0, 1], got %g", ch),
				}
			}
		}
		return &Color{Channels: channels}, nil
	}
}
