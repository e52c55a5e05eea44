package colorbar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateNorm_DefaultsToLinear(t *testing.T) {
	norm, errs := validateNorm(map[string]any{})
	require.Empty(t, errs)
	require.Equal(t, "Norm", norm.NormName())

	linear, ok := norm.(*LinearNorm)
	require.True(t, ok)
	require.Nil(t, linear.VMin)
	require.Nil(t, linear.VMax)
	require.False(t, linear.Clip)
}

func TestValidateNorm_UnknownName(t *testing.T) {
	_, errs := validateNorm(map[string]any{"name": "GammaNorm"})
	require.Len(t, errs, 1)

	var schema *SchemaError
	require.ErrorAs(t, errs[0], &schema)
	require.Equal(t, "name", schema.Field)
	require.Contains(t, schema.Msg, "GammaNorm")
}

func TestValidateNorm_RejectsExcessFields(t *testing.T) {
	_, errs := validateNorm(map[string]any{"name": "Norm", "gamma": 2.0})
	require.Len(t, errs, 1)

	var unexpected *UnexpectedFieldError
	require.ErrorAs(t, errs[0], &unexpected)
	require.Equal(t, []string{"gamma"}, unexpected.Fields)
}

func TestValidateNorm_VMinMustBeLessThanVMax(t *testing.T) {
	_, errs := validateNorm(map[string]any{"name": "Norm", "vmin": 10, "vmax": 5})
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "less than vmax")
}

func TestBoundaryNorm_ExpectedColorCounts(t *testing.T) {
	// Four boundaries delimit three bins; each extend arrow adds a color.
	cases := []struct {
		extend   string
		expected int
	}{
		{"neither", 3},
		{"min", 4},
		{"max", 4},
		{"both", 5},
	}
	for _, tc := range cases {
		t.Run(tc.extend, func(t *testing.T) {
			norm, errs := validateNorm(map[string]any{
				"name":       "BoundaryNorm",
				"boundaries": []any{0, 1, 2, 3},
				"extend":     tc.extend,
			})
			require.Empty(t, errs)

			expected, discrete := ExpectedNColors(norm)
			require.True(t, discrete)
			require.Equal(t, tc.expected, expected)
			require.Equal(t, tc.expected, norm.(*BoundaryNorm).NColors)
		})
	}
}

func TestValidateNorm_BoundaryNorm_Errors(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
		msg  string
	}{
		{
			name: "missing boundaries",
			raw:  map[string]any{"name": "BoundaryNorm"},
			msg:  "required for BoundaryNorm",
		},
		{
			name: "single boundary",
			raw:  map[string]any{"name": "BoundaryNorm", "boundaries": []any{1}},
			msg:  "at least two values",
		},
		{
			name: "not strictly increasing",
			raw:  map[string]any{"name": "BoundaryNorm", "boundaries": []any{0, 2, 2, 3}},
			msg:  "strictly increasing",
		},
		{
			name: "invalid extend",
			raw:  map[string]any{"name": "BoundaryNorm", "boundaries": []any{0, 1}, "extend": "above"},
			msg:  `"neither", "both", "min", "max"`,
		},
		{
			name: "ncolors below bin count",
			raw:  map[string]any{"name": "BoundaryNorm", "boundaries": []any{0, 1, 2, 3}, "ncolors": 2},
			msg:  "equal or larger than 3",
		},
		{
			name: "single inferred color",
			raw:  map[string]any{"name": "BoundaryNorm", "boundaries": []any{0, 1}},
			msg:  "at least two colors",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, errs := validateNorm(tc.raw)
			require.NotEmpty(t, errs)
			require.Contains(t, errs[0].Error(), tc.msg)
		})
	}
}

func TestValidateNorm_CategoryNorm(t *testing.T) {
	norm, errs := validateNorm(map[string]any{
		"name":        "CategoryNorm",
		"labels":      []any{"clear", "liquid", "ice"},
		"first_value": 1,
	})
	require.Empty(t, errs)

	category := norm.(*CategoryNorm)
	require.Equal(t, []string{"clear", "liquid", "ice"}, category.Labels)
	require.Equal(t, 1, category.FirstValue)

	expected, discrete := ExpectedNColors(norm)
	require.True(t, discrete)
	require.Equal(t, 3, expected)
}

func TestValidateNorm_CategoryNorm_Errors(t *testing.T) {
	_, errs := validateNorm(map[string]any{"name": "CategoryNorm"})
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0].Error(), "required for CategoryNorm")

	_, errs = validateNorm(map[string]any{"name": "CategoryNorm", "labels": []any{"only"}})
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0].Error(), "at least two strings")

	_, errs = validateNorm(map[string]any{
		"name": "CategoryNorm", "labels": []any{"a", "b"}, "first_value": 1.5,
	})
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0].Error(), "must be an integer")
}

func TestValidateNorm_LogNorm(t *testing.T) {
	norm, errs := validateNorm(map[string]any{"name": "LogNorm", "vmin": 0.1, "vmax": 10})
	require.Empty(t, errs)
	require.Equal(t, 0.1, *norm.(*LogNorm).VMin)

	_, errs = validateNorm(map[string]any{"name": "LogNorm", "vmin": -1})
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0].Error(), "greater than 0 for LogNorm")
}

func TestValidateNorm_TwoSlopeNorm(t *testing.T) {
	norm, errs := validateNorm(map[string]any{
		"name": "TwoSlopeNorm", "vcenter": 0, "vmin": -5, "vmax": 5,
	})
	require.Empty(t, errs)
	require.Equal(t, 0.0, norm.(*TwoSlopeNorm).VCenter)

	_, errs = validateNorm(map[string]any{"name": "TwoSlopeNorm"})
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0].Error(), "required for TwoSlopeNorm")

	_, errs = validateNorm(map[string]any{"name": "TwoSlopeNorm", "vcenter": 0, "vmin": 1})
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0].Error(), "less than vcenter")
}

func TestValidateNorm_SymLogNorm(t *testing.T) {
	norm, errs := validateNorm(map[string]any{"name": "SymLogNorm", "linthresh": 0.5})
	require.Empty(t, errs)

	symlog := norm.(*SymLogNorm)
	require.Equal(t, 0.5, symlog.LinThresh)
	require.Equal(t, 1.0, symlog.LinScale)
	require.Equal(t, 10.0, symlog.Base)

	_, errs = validateNorm(map[string]any{"name": "SymLogNorm", "linthresh": -1})
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0].Error(), "must be positive")
}

func TestValidateNorm_PowerNorm(t *testing.T) {
	norm, errs := validateNorm(map[string]any{"name": "PowerNorm", "gamma": 0.5})
	require.Empty(t, errs)
	require.Equal(t, 0.5, norm.(*PowerNorm).Gamma)

	_, errs = validateNorm(map[string]any{"name": "PowerNorm"})
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0].Error(), "required for PowerNorm")
}

func TestValidateNorm_AsinhNorm_DefaultLinearWidth(t *testing.T) {
	norm, errs := validateNorm(map[string]any{"name": "AsinhNorm"})
	require.Empty(t, errs)
	require.Equal(t, 1.0, norm.(*AsinhNorm).LinearWidth)
}

func TestNormRaw_RoundTrip(t *testing.T) {
	// Re-validating an emitted norm block yields an identical variant.
	raws := []map[string]any{
		{"name": "Norm", "vmin": -30, "vmax": 45},
		{"name": "NoNorm"},
		{"name": "BoundaryNorm", "boundaries": []any{0, 1, 5, 10}, "extend": "max"},
		{"name": "CategoryNorm", "labels": []any{"low", "mid", "high"}, "first_value": 1},
		{"name": "CenteredNorm", "vcenter": 2.5},
		{"name": "TwoSlopeNorm", "vcenter": 0, "vmin": -10, "vmax": 20},
		{"name": "LogNorm", "vmin": 0.01, "vmax": 100},
		{"name": "SymLogNorm", "linthresh": 0.1, "base": 2},
		{"name": "PowerNorm", "gamma": 2, "clip": true},
		{"name": "AsinhNorm", "linear_width": 3},
	}
	for _, raw := range raws {
		name := raw["name"].(string)
		t.Run(name, func(t *testing.T) {
			first, errs := validateNorm(raw)
			require.Empty(t, errs)

			second, errs := validateNorm(first.Raw())
			require.Empty(t, errs)
			require.Equal(t, first, second)
		})
	}
}
