package colormap

import "strings"

const reversedSuffix = "_r"

// builtinAnchors holds the anchor colors of the built-in colormaps. The
// full colormaps interpolate between the anchors. Sequential maps use the
// standard matplotlib anchor values; diverging ones the ColorBrewer values.
var builtinAnchors = map[string][]string{
	"viridis":  {"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"},
	"plasma":   {"#0d0887", "#6a00a8", "#b12a90", "#e16462", "#fca636", "#f0f921"},
	"inferno":  {"#000004", "#420a68", "#932667", "#dd513a", "#fca50a", "#fcffa4"},
	"magma":    {"#000004", "#3b0f70", "#8c2981", "#de4968", "#fe9f6d", "#fcfdbf"},
	"cividis":  {"#00224e", "#35456c", "#666970", "#948e77", "#c8b866", "#fee838"},
	"spectral": {"#9e0142", "#f46d43", "#fee08b", "#ffffbf", "#e6f598", "#66c2a5", "#5e4fa2"},
	"RdBu":     {"#67001f", "#d6604d", "#f7f7f7", "#4393c3", "#053061"},
	"YlGnBu":   {"#ffffd9", "#c7e9b4", "#41b6c4", "#225ea8", "#081d58"},
	"OrRd":     {"#fff7ec", "#fdd49e", "#fc8d59", "#d7301f", "#7f0000"},
	"greys":    {"#ffffff", "#969696", "#252525", "#000000"},
}

// IsBuiltin reports whether name is a built-in colormap, including the
// reversed "_r" variants.
func IsBuiltin(name string) bool {
	_, ok := builtinAnchors[strings.TrimSuffix(name, reversedSuffix)]
	return ok
}

// BuiltinNames lists the built-in colormap names, without reversed variants.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinAnchors))
	for name := range builtinAnchors {
		names = append(names, name)
	}
	return names
}

// Builtin returns the built-in colormap of the given name, handling the
// reversed "_r" variants.
func Builtin(name string) (*Colormap, bool) {
	base := strings.TrimSuffix(name, reversedSuffix)
	anchors, ok := builtinAnchors[base]
	if !ok {
		return nil, false
	}

	colors := make([]RGBA, 0, len(anchors))
	for _, hex := range anchors {
		c, err := decodeHex(hex)
		if err != nil {
			return nil, false
		}
		colors = append(colors, c)
	}

	cmap := &Colormap{Name: base, Colors: colors, Interpolate: true}
	if strings.HasSuffix(name, reversedSuffix) && name != base {
		cmap = cmap.Reversed()
	}
	return cmap, true
}
