package colormap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefinition_Valid(t *testing.T) {
	raw := map[string]any{
		"color_space":   "hex",
		"color_palette": []any{"#000000", "#ffffff"},
	}

	def, err := ParseDefinition(raw)
	require.NoError(t, err)
	require.Equal(t, "hex", def.ColorSpace)
	require.Len(t, def.Colors, 2)
	require.False(t, def.Interpolate)
}

func TestParseDefinition_WithOptionalFields(t *testing.T) {
	raw := map[string]any{
		"color_space":   "rgb",
		"color_palette": []any{[]any{0, 0, 0}, []any{255, 255, 255}},
		"interpolate":   true,
		"auxiliary": map[string]any{
			"category": []any{"sequential", "precipitation"},
		},
	}

	def, err := ParseDefinition(raw)
	require.NoError(t, err)
	require.True(t, def.Interpolate)
	require.Equal(t, []string{"sequential", "precipitation"}, def.Categories())
}

func TestParseDefinition_CategoryAsString(t *testing.T) {
	raw := map[string]any{
		"color_space":   "hex",
		"color_palette": []any{"#000000", "#ffffff"},
		"auxiliary":     map[string]any{"category": "diverging"},
	}

	def, err := ParseDefinition(raw)
	require.NoError(t, err)
	require.Equal(t, []string{"diverging"}, def.Categories())
}

func TestParseDefinition_MissingRequiredKeys(t *testing.T) {
	_, err := ParseDefinition(map[string]any{"color_palette": []any{"#000000", "#ffffff"}})
	require.ErrorIs(t, err, ErrMissingColorSpace)

	_, err = ParseDefinition(map[string]any{"color_space": "hex"})
	require.ErrorIs(t, err, ErrMissingColorPalette)
}

func TestParseDefinition_Invalid(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
	}{
		{"unknown color space", map[string]any{"color_space": "lab", "color_palette": []any{"#000000", "#ffffff"}}},
		{"color space wrong type", map[string]any{"color_space": 1, "color_palette": []any{"#000000", "#ffffff"}}},
		{"palette wrong type", map[string]any{"color_space": "hex", "color_palette": "#000000"}},
		{"palette too short", map[string]any{"color_space": "hex", "color_palette": []any{"#000000"}}},
		{"palette invalid color", map[string]any{"color_space": "hex", "color_palette": []any{"#000000", "nope"}}},
		{"interpolate wrong type", map[string]any{"color_space": "hex", "color_palette": []any{"#000000", "#ffffff"}, "interpolate": "yes"}},
		{"unexpected field", map[string]any{"color_space": "hex", "color_palette": []any{"#000000", "#ffffff"}, "colors": []any{}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDefinition(tc.raw)
			require.Error(t, err)
		})
	}
}

func TestDefinition_RawRoundTrip(t *testing.T) {
	raw := map[string]any{
		"color_space":   "rgb",
		"color_palette": []any{[]any{0, 0, 0}, []any{255, 255, 255}},
		"interpolate":   true,
	}

	def, err := ParseDefinition(raw)
	require.NoError(t, err)

	emitted := def.Raw()
	require.Equal(t, raw, emitted)

	again, err := ParseDefinition(emitted)
	require.NoError(t, err)
	require.Equal(t, def.Colors, again.Colors)
}
