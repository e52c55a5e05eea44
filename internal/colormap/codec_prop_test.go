package colormap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Decoding a hex palette and encoding it back must reproduce the input.
func TestCodec_HexRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(2, 16).Draw(rt, "n")
		palette := make([]any, n)
		for i := range palette {
			r := rapid.IntRange(0, 255).Draw(rt, "r")
			g := rapid.IntRange(0, 255).Draw(rt, "g")
			b := rapid.IntRange(0, 255).Draw(rt, "b")
			palette[i] = fmt.Sprintf("#%02x%02x%02x", r, g, b)
		}

		colors, err := DecodeColors(SpaceHex, palette)
		require.NoError(t, err)
		require.Len(t, colors, n)

		encoded, err := EncodeColors(SpaceHex, colors)
		require.NoError(t, err)
		require.Equal(t, palette, encoded)
	})
}

// RGB channel palettes must survive a decode/encode cycle: decoding maps
// 0-255 channels into the unit interval and encoding rounds back.
func TestCodec_RGBRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(2, 12).Draw(rt, "n")
		palette := make([]any, n)
		for i := range palette {
			palette[i] = []any{
				rapid.IntRange(0, 255).Draw(rt, "r"),
				rapid.IntRange(0, 255).Draw(rt, "g"),
				rapid.IntRange(0, 255).Draw(rt, "b"),
			}
		}

		colors, err := DecodeColors(SpaceRGB, palette)
		require.NoError(t, err)

		for _, c := range colors {
			require.GreaterOrEqual(t, c.R, 0.0)
			require.LessOrEqual(t, c.R, 1.0)
			require.GreaterOrEqual(t, c.G, 0.0)
			require.LessOrEqual(t, c.G, 1.0)
			require.GreaterOrEqual(t, c.B, 0.0)
			require.LessOrEqual(t, c.B, 1.0)
			require.Equal(t, 1.0, c.A)
		}

		encoded, err := EncodeColors(SpaceRGB, colors)
		require.NoError(t, err)
		require.Len(t, encoded, n)
		for i, entry := range encoded {
			require.Equal(t, palette[i], entry)
		}
	})
}
