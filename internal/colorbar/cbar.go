package colorbar

import "fmt"

// ExtendFrac is the length of the colorbar's extend arrows: the literal
// "auto", a single fraction, or one fraction per arrow.
type ExtendFrac struct {
	Auto   bool
	Values []float64
}

// rawValue returns the canonical persisted form of the extend fraction.
func (f ExtendFrac) rawValue() any {
	if f.Auto {
		return "auto"
	}
	if len(f.Values) == 1 {
		return f.Values[0]
	}
	return append([]float64(nil), f.Values...)
}

// CbarSettings is the validated colorbar-decoration block.
type CbarSettings struct {
	Extend     string
	ExtendFrac ExtendFrac
	ExtendRect bool
	Label      string
	Ticks      []float64
	TickLabels []string
}

// Raw returns the canonical persisted form of the block, omitting defaults.
func (c *CbarSettings) Raw() map[string]any {
	out := map[string]any{}
	if c.Extend != "neither" {
		out["extend"] = c.Extend
	}
	if !c.ExtendFrac.Auto {
		out["extendfrac"] = c.ExtendFrac.rawValue()
	}
	if c.ExtendRect {
		out["extendrect"] = true
	}
	if c.Label != "" {
		out["label"] = c.Label
	}
	if c.Ticks != nil {
		out["ticks"] = append([]float64(nil), c.Ticks...)
	}
	if c.TickLabels != nil {
		out["ticklabels"] = append([]string(nil), c.TickLabels...)
	}
	return out
}

// validateCbar validates the cbar block and returns the normalized block
// together with every problem found in it.
func validateCbar(raw map[string]any) (*CbarSettings, []error) {
	var errs []error
	checkExcessFields("cbar", raw, &errs,
		"extend", "extendfrac", "extendrect", "label", "ticks", "ticklabels")

	c := &CbarSettings{Extend: "neither", ExtendFrac: ExtendFrac{Auto: true}}

	if v, ok := raw["extend"]; ok {
		if s, isStr := toString(v); !isStr || !validExtends[s] {
			errs = append(errs, &SchemaError{
				Block: "cbar", Field: "extend",
				Msg: `must be one of "neither", "both", "min", "max"`,
			})
		} else {
			c.Extend = s
		}
	}

	if v, ok := raw["extendfrac"]; ok && v != nil {
		c.ExtendFrac = validateExtendFrac(v, &errs)
	}

	if v, ok := raw["extendrect"]; ok {
		if b, isBool := toBool(v); !isBool {
			errs = append(errs, &SchemaError{Block: "cbar", Field: "extendrect", Msg: "must be a boolean"})
		} else {
			c.ExtendRect = b
		}
	}

	if v, ok := raw["label"]; ok && v != nil {
		if s, isStr := toString(v); !isStr {
			errs = append(errs, &SchemaError{Block: "cbar", Field: "label", Msg: "must be a string"})
		} else {
			c.Label = s
		}
	}

	if v, ok := raw["ticks"]; ok && v != nil {
		if ticks, isList := toFloatSlice(v); !isList {
			errs = append(errs, &SchemaError{Block: "cbar", Field: "ticks", Msg: "must be a list of numbers"})
		} else {
			c.Ticks = ticks
		}
	}

	if v, ok := raw["ticklabels"]; ok && v != nil {
		if labels, isList := toStringSlice(v); !isList {
			errs = append(errs, &SchemaError{Block: "cbar", Field: "ticklabels", Msg: "must be a list of strings"})
		} else {
			c.TickLabels = labels
		}
	}

	if c.Ticks != nil && c.TickLabels != nil && len(c.Ticks) != len(c.TickLabels) {
		errs = append(errs, &SchemaError{
			Block: "cbar", Field: "ticklabels",
			Msg: fmt.Sprintf("must match the number of ticks (%d)", len(c.Ticks)),
		})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return c, nil
}

func validateExtendFrac(v any, errs *[]error) ExtendFrac {
	if s, isStr := toString(v); isStr {
		if s == "auto" {
			return ExtendFrac{Auto: true}
		}
		*errs = append(*errs, &SchemaError{
			Block: "cbar", Field: "extendfrac",
			Msg: `must be "auto", a fraction in [0, 1], or a list of such fractions`,
		})
		return ExtendFrac{Auto: true}
	}

	if f, isNum := toFloat(v); isNum {
		if f < 0 || f > 1 {
			*errs = append(*errs, &SchemaError{Block: "cbar", Field: "extendfrac", Msg: "must be between 0 and 1"})
			return ExtendFrac{Auto: true}
		}
		return ExtendFrac{Values: []float64{f}}
	}

	if fracs, isList := toFloatSlice(v); isList {
		for _, f := range fracs {
			if f < 0 || f > 1 {
				*errs = append(*errs, &SchemaError{Block: "cbar", Field: "extendfrac", Msg: "each fraction must be between 0 and 1"})
				return ExtendFrac{Auto: true}
			}
		}
		return ExtendFrac{Values: fracs}
	}

	*errs = append(*errs, &SchemaError{
		Block: "cbar", Field: "extendfrac",
		Msg: `must be "auto", a fraction in [0, 1], or a list of such fractions`,
	})
	return ExtendFrac{Auto: true}
}
