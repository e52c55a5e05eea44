package colormap

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Recognized color spaces for colormap definition files.
const (
	SpaceHex  = "hex"
	SpaceName = "name"
	SpaceRGB  = "rgb"
	SpaceRGBA = "rgba"
	SpaceHSV  = "hsv"
)

var colorSpaces = map[string]bool{
	SpaceHex:  true,
	SpaceName: true,
	SpaceRGB:  true,
	SpaceRGBA: true,
	SpaceHSV:  true,
}

// IsColorSpace reports whether s is a recognized color space identifier.
func IsColorSpace(s string) bool {
	return colorSpaces[strings.ToLower(s)]
}

// ColorSpaces lists the recognized color space identifiers.
func ColorSpaces() []string {
	return []string{SpaceHex, SpaceName, SpaceRGB, SpaceRGBA, SpaceHSV}
}

// RGBA is the internal color representation: all channels in [0, 1].
// External encodings (0-255 channels, hex strings, named colors, HSV) are
// decoded to this form at read time and encoded back at write time.
type RGBA struct {
	R float64
	G float64
	B float64
	A float64
}

// Colorful converts to a go-colorful color, dropping alpha.
func (c RGBA) Colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// Hex returns the #rrggbb encoding of the color. Alpha is appended only
// when it differs from fully opaque.
func (c RGBA) Hex() string {
	hex := c.Colorful().Clamped().Hex()
	if c.A < 1 {
		hex += fmt.Sprintf("%02x", int(c.A*255+0.5))
	}
	return hex
}

var paletteHexPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// DecodeColors converts an external color palette to the internal [0, 1]
// representation. The expected element shape depends on the color space:
// strings for "hex" and "name", 3-tuples for "rgb" and "hsv", 4-tuples for
// "rgba". RGB(A) channels are 0-255; HSV is hue 0-360 with saturation and
// value in [0, 1].
func DecodeColors(colorSpace string, palette []any) ([]RGBA, error) {
	space := strings.ToLower(colorSpace)
	if !colorSpaces[space] {
		return nil, fmt.Errorf("unrecognized color space %q (expected one of %s)", colorSpace, strings.Join(ColorSpaces(), ", "))
	}

	colors := make([]RGBA, 0, len(palette))
	for i, entry := range palette {
		color, err := decodeColor(space, entry)
		if err != nil {
			return nil, fmt.Errorf("color_palette[%d]: %w", i, err)
		}
		colors = append(colors, color)
	}
	return colors, nil
}

func decodeColor(space string, entry any) (RGBA, error) {
	switch space {
	case SpaceHex:
		s, ok := entry.(string)
		if !ok {
			return RGBA{}, fmt.Errorf("expected a hex string, got %T", entry)
		}
		return decodeHex(s)
	case SpaceName:
		s, ok := entry.(string)
		if !ok {
			return RGBA{}, fmt.Errorf("expected a color name, got %T", entry)
		}
		c, ok := NamedColor(s)
		if !ok {
			return RGBA{}, fmt.Errorf("%q is not a recognized color name", s)
		}
		return RGBA{R: c.R, G: c.G, B: c.B, A: 1}, nil
	case SpaceRGB:
		ch, err := channelTuple(entry, 3)
		if err != nil {
			return RGBA{}, err
		}
		return decodeRGBChannels(ch[0], ch[1], ch[2], 255)
	case SpaceRGBA:
		ch, err := channelTuple(entry, 4)
		if err != nil {
			return RGBA{}, err
		}
		return decodeRGBChannels(ch[0], ch[1], ch[2], ch[3])
	case SpaceHSV:
		ch, err := channelTuple(entry, 3)
		if err != nil {
			return RGBA{}, err
		}
		return decodeHSVChannels(ch[0], ch[1], ch[2])
	}
	return RGBA{}, fmt.Errorf("unrecognized color space %q", space)
}

func decodeHex(s string) (RGBA, error) {
	if !paletteHexPattern.MatchString(s) {
		return RGBA{}, fmt.Errorf("%q is not a valid hex color", s)
	}
	c, err := colorful.Hex(s[:7])
	if err != nil {
		return RGBA{}, fmt.Errorf("%q is not a valid hex color", s)
	}
	alpha := 1.0
	if len(s) == 9 {
		var a int
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return RGBA{}, fmt.Errorf("%q has an invalid alpha component", s)
		}
		alpha = float64(a) / 255
	}
	return RGBA{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

func decodeRGBChannels(r, g, b, a float64) (RGBA, error) {
	for _, v := range []float64{r, g, b, a} {
		if v < 0 || v > 255 {
			return RGBA{}, fmt.Errorf("channel value %v outside [0, 255]", v)
		}
	}
	return RGBA{R: r / 255, G: g / 255, B: b / 255, A: a / 255}, nil
}

func decodeHSVChannels(h, s, v float64) (RGBA, error) {
	if h < 0 || h > 360 {
		return RGBA{}, fmt.Errorf("hue %v outside [0, 360]", h)
	}
	if s < 0 || s > 1 || v < 0 || v > 1 {
		return RGBA{}, fmt.Errorf("saturation/value outside [0, 1]")
	}
	c := colorful.Hsv(h, s, v)
	return RGBA{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

func channelTuple(entry any, n int) ([]float64, error) {
	values, ok := entry.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a %d-element list, got %T", n, entry)
	}
	if len(values) != n {
		return nil, fmt.Errorf("expected %d channels, got %d", n, len(values))
	}
	channels := make([]float64, n)
	for i, v := range values {
		f, ok := asFloat(v)
		if !ok {
			return nil, fmt.Errorf("channel %d is not a number (%T)", i, v)
		}
		channels[i] = f
	}
	return channels, nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// EncodeColors converts internal colors back to the external encoding of
// the given color space, for writing definition files. Decoding the result
// yields the same colors up to channel rounding.
func EncodeColors(colorSpace string, colors []RGBA) ([]any, error) {
	space := strings.ToLower(colorSpace)
	if !colorSpaces[space] {
		return nil, fmt.Errorf("unrecognized color space %q", colorSpace)
	}

	palette := make([]any, 0, len(colors))
	for _, c := range colors {
		switch space {
		case SpaceHex, SpaceName:
			// Named colors do not round-trip exactly, so both string
			// spaces encode to hex.
			palette = append(palette, c.Hex())
		case SpaceRGB:
			palette = append(palette, []any{round255(c.R), round255(c.G), round255(c.B)})
		case SpaceRGBA:
			palette = append(palette, []any{round255(c.R), round255(c.G), round255(c.B), round255(c.A)})
		case SpaceHSV:
			h, s, v := c.Colorful().Hsv()
			palette = append(palette, []any{h, s, v})
		}
	}
	return palette, nil
}

func round255(v float64) int {
	return int(v*255 + 0.5)
}
