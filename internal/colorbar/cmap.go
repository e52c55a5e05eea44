package colorbar

import "fmt"

// CmapSettings is the validated colormap-appearance block. Names always
// holds at least one colormap name; N, when set, has one discrete color
// count per name.
type CmapSettings struct {
	Names []string
	N     []int

	BadColor   *Color
	OverColor  *Color
	UnderColor *Color

	BadAlpha   *float64
	OverAlpha  *float64
	UnderAlpha *float64
}

// TotalN returns the summed discrete color count, or 0 when N is unset.
func (c *CmapSettings) TotalN() int {
	total := 0
	for _, n := range c.N {
		total += n
	}
	return total
}

// Raw returns the canonical persisted form of the block. A single colormap
// is emitted as a scalar name, multiple as a list.
func (c *CmapSettings) Raw() map[string]any {
	out := map[string]any{}
	if len(c.Names) == 1 {
		out["name"] = c.Names[0]
	} else {
		out["name"] = append([]string(nil), c.Names...)
	}
	if c.N != nil {
		if len(c.N) == 1 {
			out["n"] = c.N[0]
		} else {
			out["n"] = append([]int(nil), c.N...)
		}
	}
	putColor(out, "bad_color", c.BadColor)
	putColor(out, "over_color", c.OverColor)
	putColor(out, "under_color", c.UnderColor)
	putFloat(out, "bad_alpha", c.BadAlpha)
	putFloat(out, "over_alpha", c.OverAlpha)
	putFloat(out, "under_alpha", c.UnderAlpha)
	return out
}

func putColor(out map[string]any, key string, c *Color) {
	if c != nil {
		out[key] = c.rawValue()
	}
}

// validateCmap validates the cmap block, resolving colormap names through
// the provided name checker. It returns the normalized block and every
// problem found in it.
func validateCmap(raw map[string]any, colormapExists func(string) bool) (*CmapSettings, []error) {
	var errs []error
	checkExcessFields("cmap", raw, &errs,
		"name", "n", "bad_color", "bad_alpha", "over_color", "over_alpha", "under_color", "under_alpha")

	c := &CmapSettings{}

	nameVal, ok := raw["name"]
	if !ok {
		errs = append(errs, &SchemaError{Block: "cmap", Field: "name", Msg: "required"})
	} else if s, isStr := toString(nameVal); isStr {
		c.Names = []string{s}
	} else if names, isList := toStringSlice(nameVal); isList && len(names) > 0 {
		c.Names = names
	} else {
		errs = append(errs, &SchemaError{Block: "cmap", Field: "name", Msg: "must be a string or a non-empty list of strings"})
	}

	for _, name := range c.Names {
		if !colormapExists(name) {
			errs = append(errs, &UnknownColormapError{Name: name})
		}
	}

	if nVal, ok := raw["n"]; ok && nVal != nil {
		_, nameIsScalar := toString(nameVal)
		if n, isInt := toInt(nVal); isInt {
			if !nameIsScalar {
				errs = append(errs, &SchemaError{Block: "cmap", Field: "n", Msg: "must be a list when multiple colormaps are named"})
			} else if n <= 0 {
				errs = append(errs, &SchemaError{Block: "cmap", Field: "n", Msg: "must be a positive integer"})
			} else {
				c.N = []int{n}
			}
		} else if ns, isList := toIntSlice(nVal); isList {
			switch {
			case nameIsScalar:
				errs = append(errs, &SchemaError{Block: "cmap", Field: "n", Msg: "must be a single integer when a single colormap is named"})
			case len(ns) != len(c.Names):
				errs = append(errs, &SchemaError{
					Block: "cmap", Field: "n",
					Msg: fmt.Sprintf("must have one entry per colormap in name (%d)", len(c.Names)),
				})
			default:
				valid := true
				for _, n := range ns {
					if n <= 0 {
						errs = append(errs, &SchemaError{Block: "cmap", Field: "n", Msg: "values must be positive integers"})
						valid = false
						break
					}
				}
				if valid {
					c.N = ns
				}
			}
		} else {
			errs = append(errs, &SchemaError{Block: "cmap", Field: "n", Msg: "must be an integer or a list of integers"})
		}
	}

	c.BadColor = validateColorField(raw, "bad_color", &errs)
	c.OverColor = validateColorField(raw, "over_color", &errs)
	c.UnderColor = validateColorField(raw, "under_color", &errs)

	c.BadAlpha = validateAlphaField(raw, "bad_alpha", &errs)
	c.OverAlpha = validateAlphaField(raw, "over_alpha", &errs)
	c.UnderAlpha = validateAlphaField(raw, "under_alpha", &errs)

	if len(errs) > 0 {
		return nil, errs
	}
	return c, nil
}

func validateColorField(raw map[string]any, field string, errs *[]error) *Color {
	v, ok := raw[field]
	if !ok || v == nil {
		return nil
	}
	color, err := parseColorField(field, v)
	if err != nil {
		*errs = append(*errs, err)
		return nil
	}
	return color
}

func validateAlphaField(raw map[string]any, field string, errs *[]error) *float64 {
	v, ok := raw[field]
	if !ok || v == nil {
		return nil
	}
	f, isNum := toFloat(v)
	if !isNum {
		*errs = append(*errs, &SchemaError{Block: "cmap", Field: field, Msg: "must be a number"})
		return nil
	}
	if f < 0 || f > 1 {
		*errs = append(*errs, &SchemaError{Block: "cmap", Field: field, Msg: "must be between 0 and 1"})
		return nil
	}
	return &f
}
