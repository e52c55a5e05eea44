package colorbar

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// drawBoundaries generates a strictly increasing boundary sequence.
func drawBoundaries(rt *rapid.T, minLen int) []any {
	count := rapid.IntRange(minLen, 12).Draw(rt, "count")
	value := rapid.Float64Range(-1000, 1000).Draw(rt, "start")

	boundaries := make([]any, count)
	for i := range boundaries {
		boundaries[i] = value
		value += rapid.Float64Range(0.001, 100).Draw(rt, fmt.Sprintf("step%d", i))
	}
	return boundaries
}

func TestProperty_BoundaryNormColorCountLaw(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		boundaries := drawBoundaries(rt, 3)
		extend := rapid.SampledFrom([]string{"neither", "min", "max", "both"}).Draw(rt, "extend")

		norm, errs := validateNorm(map[string]any{
			"name":       "BoundaryNorm",
			"boundaries": boundaries,
			"extend":     extend,
		})
		require.Empty(t, errs)

		want := len(boundaries) - 1
		switch extend {
		case "min", "max":
			want = len(boundaries)
		case "both":
			want = len(boundaries) + 1
		}

		expected, discrete := ExpectedNColors(norm)
		require.True(t, discrete)
		require.Equal(t, want, expected)
		require.Equal(t, want, norm.(*BoundaryNorm).NColors)
	})
}

// drawNormBlock generates a valid norm block of a random variant.
func drawNormBlock(rt *rapid.T) map[string]any {
	switch rapid.SampledFrom([]string{"Norm", "BoundaryNorm", "CategoryNorm", "LogNorm"}).Draw(rt, "variant") {
	case "BoundaryNorm":
		return map[string]any{
			"name":       "BoundaryNorm",
			"boundaries": drawBoundaries(rt, 3),
			"extend":     rapid.SampledFrom([]string{"neither", "min", "max", "both"}).Draw(rt, "extend"),
		}
	case "CategoryNorm":
		count := rapid.IntRange(2, 6).Draw(rt, "labels")
		labels := make([]any, count)
		for i := range labels {
			labels[i] = fmt.Sprintf("class%d", i)
		}
		return map[string]any{
			"name":        "CategoryNorm",
			"labels":      labels,
			"first_value": rapid.IntRange(-3, 3).Draw(rt, "first_value"),
		}
	case "LogNorm":
		return map[string]any{
			"name": "LogNorm",
			"vmin": rapid.Float64Range(0.001, 1).Draw(rt, "vmin"),
			"vmax": rapid.Float64Range(2, 1000).Draw(rt, "vmax"),
		}
	default:
		return map[string]any{
			"name": "Norm",
			"vmin": rapid.Float64Range(-1000, -1).Draw(rt, "vmin"),
			"vmax": rapid.Float64Range(0, 1000).Draw(rt, "vmax"),
		}
	}
}

func TestProperty_ValidateRecordIsIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cmap := map[string]any{"name": "viridis"}
		if rapid.Bool().Draw(rt, "override") {
			cmap["over_color"] = fmt.Sprintf("#%02x%02x%02x",
				rapid.IntRange(0, 255).Draw(rt, "r"),
				rapid.IntRange(0, 255).Draw(rt, "g"),
				rapid.IntRange(0, 255).Draw(rt, "b"))
			cmap["over_alpha"] = rapid.Float64Range(0, 1).Draw(rt, "alpha")
		}

		raw := Raw{"cmap": cmap, "norm": drawNormBlock(rt)}
		if rapid.Bool().Draw(rt, "tagged") {
			raw["auxiliary"] = map[string]any{
				"category": rapid.SampledFrom([]string{"temperature", "precipitation", "radar"}).Draw(rt, "category"),
			}
		}

		first, err := ValidateRecord("generated", raw, Options{ColormapExists: allColormaps})
		require.NoError(t, err)

		second, err := ValidateRecord("generated", first.Raw(), Options{ColormapExists: allColormaps})
		require.NoError(t, err)
		require.Equal(t, first, second)
		require.Equal(t, first.Raw(), second.Raw())
	})
}
