package colormap

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// namedColors maps recognized color names to their sRGB hex values. The set
// follows the common CSS/X11 names plotting libraries accept, plus the
// spelling variants ("gray"/"grey") that show up in existing configurations.
var namedColors = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"red":       "#ff0000",
	"green":     "#008000",
	"lime":      "#00ff00",
	"blue":      "#0000ff",
	"yellow":    "#ffff00",
	"cyan":      "#00ffff",
	"magenta":   "#ff00ff",
	"orange":    "#ffa500",
	"purple":    "#800080",
	"violet":    "#ee82ee",
	"pink":      "#ffc0cb",
	"brown":     "#a52a2a",
	"gray":      "#808080",
	"grey":      "#808080",
	"lightgray": "#d3d3d3",
	"lightgrey": "#d3d3d3",
	"darkgray":  "#a9a9a9",
	"darkgrey":  "#a9a9a9",
	"silver":    "#c0c0c0",
	"maroon":    "#800000",
	"olive":     "#808000",
	"navy":      "#000080",
	"teal":      "#008080",
	"aqua":      "#00ffff",
	"fuchsia":   "#ff00ff",
	"gold":      "#ffd700",
	"indigo":    "#4b0082",
	"ivory":     "#fffff0",
	"khaki":     "#f0e68c",
	"lavender":  "#e6e6fa",
	"salmon":    "#fa8072",
	"sienna":    "#a0522d",
	"tan":       "#d2b48c",
	"tomato":    "#ff6347",
	"turquoise": "#40e0d0",
	"coral":     "#ff7f50",
	"crimson":   "#dc143c",
	"orchid":    "#da70d6",
	"plum":      "#dda0dd",
	"skyblue":   "#87ceeb",
	"steelblue": "#4682b4",
	"slategray": "#708090",
	"slategrey": "#708090",
	"seagreen":  "#2e8b57",
	"darkred":   "#8b0000",
	"darkblue":  "#00008b",
	"darkgreen": "#006400",
}

// IsNamedColor reports whether name is a recognized named color.
func IsNamedColor(name string) bool {
	_, ok := namedColors[strings.ToLower(name)]
	return ok
}

// NamedColor returns the color value for a recognized color name.
func NamedColor(name string) (colorful.Color, bool) {
	hex, ok := namedColors[strings.ToLower(name)]
	if !ok {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}
