package colorbar

import "fmt"

// Valid extend options for BoundaryNorm and the cbar block.
var validExtends = map[string]bool{
	"neither": true,
	"both":    true,
	"min":     true,
	"max":     true,
}

// NormSettings is the closed set of normalization variants. Each variant maps
// data values to the [0,1] color-lookup domain in its own way; the validator
// selects the variant by the "name" discriminant and rejects everything else.
type NormSettings interface {
	// NormName returns the discriminant value ("Norm", "BoundaryNorm", ...).
	NormName() string
	// Raw returns the canonical persisted form of the normalization block.
	Raw() map[string]any
}

// LinearNorm is the default linear mapping ("Norm").
type LinearNorm struct {
	VMin, VMax *float64
	Clip       bool
}

// NoNorm disables normalization; values index colors directly.
type NoNorm struct {
	VMin, VMax *float64
	Clip       bool
}

// BoundaryNorm partitions values into bins delimited by a strictly
// increasing boundary sequence, one color per bin.
type BoundaryNorm struct {
	Boundaries []float64
	NColors    int // inferred from boundaries and extend when not given
	Clip       bool
	Extend     string
}

// CategoryNorm maps a run of consecutive integers to labeled categories.
type CategoryNorm struct {
	Labels     []string
	FirstValue int
}

// CenteredNorm maps values symmetrically around a center.
type CenteredNorm struct {
	VCenter   float64
	Halfrange *float64
	Clip      bool
}

// TwoSlopeNorm maps with different slopes on each side of vcenter.
type TwoSlopeNorm struct {
	VCenter    float64
	VMin, VMax *float64
}

// LogNorm maps values on a logarithmic scale; vmin must stay positive.
type LogNorm struct {
	VMin, VMax *float64
	Clip       bool
}

// SymLogNorm is logarithmic in both directions with a linear band around zero.
type SymLogNorm struct {
	LinThresh  float64
	LinScale   float64
	Base       float64
	VMin, VMax *float64
	Clip       bool
}

// PowerNorm maps values with a power-law gamma curve.
type PowerNorm struct {
	Gamma      float64
	VMin, VMax *float64
	Clip       bool
}

// AsinhNorm maps values through an inverse hyperbolic sine.
type AsinhNorm struct {
	LinearWidth float64
	VMin, VMax  *float64
	Clip        bool
}

func (*LinearNorm) NormName() string   { return "Norm" }
func (*NoNorm) NormName() string       { return "NoNorm" }
func (*BoundaryNorm) NormName() string { return "BoundaryNorm" }
func (*CategoryNorm) NormName() string { return "CategoryNorm" }
func (*CenteredNorm) NormName() string { return "CenteredNorm" }
func (*TwoSlopeNorm) NormName() string { return "TwoSlopeNorm" }
func (*LogNorm) NormName() string      { return "LogNorm" }
func (*SymLogNorm) NormName() string   { return "SymLogNorm" }
func (*PowerNorm) NormName() string    { return "PowerNorm" }
func (*AsinhNorm) NormName() string    { return "AsinhNorm" }

// NormNames lists the recognized normalization discriminants.
func NormNames() []string {
	return []string{
		"Norm", "NoNorm", "BoundaryNorm", "CategoryNorm", "CenteredNorm",
		"TwoSlopeNorm", "LogNorm", "SymLogNorm", "PowerNorm", "AsinhNorm",
	}
}

// ExpectedNColors returns the number of discrete colors the normalization
// partitions values into, and whether the normalization is discrete at all.
// Only BoundaryNorm and CategoryNorm are discrete.
func ExpectedNColors(n NormSettings) (int, bool) {
	switch norm := n.(type) {
	case *BoundaryNorm:
		return boundaryNormNColors(len(norm.Boundaries), norm.Extend), true
	case *CategoryNorm:
		return len(norm.Labels), true
	}
	return 0, false
}

// boundaryNormNColors computes the expected color count for a boundary
// sequence: one color per bin, plus one per extend arrow.
func boundaryNormNColors(nboundaries int, extend string) int {
	switch extend {
	case "min", "max":
		return nboundaries
	case "both":
		return nboundaries + 1
	default: // "neither"
		return nboundaries - 1
	}
}

// validateNorm validates the norm block, dispatching on the "name"
// discriminant. It returns the normalized variant and every problem found
// in the block.
func validateNorm(raw map[string]any) (NormSettings, []error) {
	name := "Norm"
	if v, ok := raw["name"]; ok {
		s, ok := toString(v)
		if !ok {
			return nil, []error{&SchemaError{Block: "norm", Field: "name", Msg: "must be a string"}}
		}
		name = s
	}

	switch name {
	case "Norm":
		return validateLinearNorm(raw)
	case "NoNorm":
		return validateNoNorm(raw)
	case "BoundaryNorm":
		return validateBoundaryNorm(raw)
	case "CategoryNorm":
		return validateCategoryNorm(raw)
	case "CenteredNorm":
		return validateCenteredNorm(raw)
	case "TwoSlopeNorm":
		return validateTwoSlopeNorm(raw)
	case "LogNorm":
		return validateLogNorm(raw)
	case "SymLogNorm":
		return validateSymLogNorm(raw)
	case "PowerNorm":
		return validatePowerNorm(raw)
	case "AsinhNorm":
		return validateAsinhNorm(raw)
	default:
		return nil, []error{&SchemaError{
			Block: "norm",
			Field: "name",
			Msg:   fmt.Sprintf("unknown normalization %q, valid options are %v", name, NormNames()),
		}}
	}
}

func validateLinearNorm(raw map[string]any) (NormSettings, []error) {
	var errs []error
	checkExcessFields("norm", raw, &errs, "name", "vmin", "vmax", "clip")
	n := &LinearNorm{
		VMin: optionalFloat(raw, "vmin", &errs),
		VMax: optionalFloat(raw, "vmax", &errs),
		Clip: optionalBool(raw, "clip", &errs),
	}
	checkVMinVMax(n.VMin, n.VMax, &errs)
	if len(errs) > 0 {
		return nil, errs
	}
	return n, nil
}

func validateNoNorm(raw map[string]any) (NormSettings, []error) {
	var errs []error
	checkExcessFields("norm", raw, &errs, "name", "vmin", "vmax", "clip")
	n := &NoNorm{
		VMin: optionalFloat(raw, "vmin", &errs),
		VMax: optionalFloat(raw, "vmax", &errs),
		Clip: optionalBool(raw, "clip", &errs),
	}
	checkVMinVMax(n.VMin, n.VMax, &errs)
	if len(errs) > 0 {
		return nil, errs
	}
	return n, nil
}

func validateBoundaryNorm(raw map[string]any) (NormSettings, []error) {
	var errs []error
	checkExcessFields("norm", raw, &errs, "name", "boundaries", "ncolors", "clip", "extend")

	n := &BoundaryNorm{Extend: "neither"}

	v, ok := raw["boundaries"]
	if !ok {
		errs = append(errs, &SchemaError{Block: "norm", Field: "boundaries", Msg: "required for BoundaryNorm"})
	} else if boundaries, ok := toFloatSlice(v); !ok {
		errs = append(errs, &SchemaError{Block: "norm", Field: "boundaries", Msg: "must be a list of numbers"})
	} else {
		if len(boundaries) < 2 {
			errs = append(errs, &SchemaError{Block: "norm", Field: "boundaries", Msg: "must have at least two values"})
		}
		for i := 1; i < len(boundaries); i++ {
			if boundaries[i] <= boundaries[i-1] {
				errs = append(errs, &SchemaError{Block: "norm", Field: "boundaries", Msg: "must be strictly increasing"})
				break
			}
		}
		n.Boundaries = boundaries
	}

	if v, ok := raw["extend"]; ok {
		if s, ok := toString(v); !ok || !validExtends[s] {
			errs = append(errs, &SchemaError{
				Block: "norm", Field: "extend",
				Msg: `must be one of "neither", "both", "min", "max"`,
			})
		} else {
			n.Extend = s
		}
	}

	n.Clip = optionalBool(raw, "clip", &errs)

	inferred := boundaryNormNColors(len(n.Boundaries), n.Extend)
	if v, ok := raw["ncolors"]; ok {
		ncolors, isInt := toInt(v)
		switch {
		case !isInt:
			errs = append(errs, &SchemaError{Block: "norm", Field: "ncolors", Msg: "must be an integer"})
		case ncolors < 2:
			errs = append(errs, &SchemaError{Block: "norm", Field: "ncolors", Msg: "must be equal or larger than 2"})
		case n.Boundaries != nil && ncolors < inferred:
			errs = append(errs, &SchemaError{
				Block: "norm", Field: "ncolors",
				Msg: fmt.Sprintf("must be equal or larger than %d for the given boundaries and extend", inferred),
			})
		default:
			n.NColors = ncolors
		}
	} else if n.Boundaries != nil && inferred < 2 {
		// Inferred counts honor the same floor as an explicit ncolors.
		errs = append(errs, &SchemaError{
			Block: "norm", Field: "boundaries",
			Msg: "must yield at least two colors for the given extend",
		})
	} else {
		n.NColors = inferred
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return n, nil
}

func validateCategoryNorm(raw map[string]any) (NormSettings, []error) {
	var errs []error
	checkExcessFields("norm", raw, &errs, "name", "labels", "first_value")

	n := &CategoryNorm{}

	v, ok := raw["labels"]
	if !ok {
		errs = append(errs, &SchemaError{Block: "norm", Field: "labels", Msg: "required for CategoryNorm"})
	} else if labels, ok := toStringSlice(v); !ok {
		errs = append(errs, &SchemaError{Block: "norm", Field: "labels", Msg: "must be a list of strings"})
	} else if len(labels) < 2 {
		errs = append(errs, &SchemaError{Block: "norm", Field: "labels", Msg: "must have at least two strings"})
	} else {
		n.Labels = labels
	}

	if v, ok := raw["first_value"]; ok {
		if first, ok := toInt(v); !ok {
			errs = append(errs, &SchemaError{Block: "norm", Field: "first_value", Msg: "must be an integer"})
		} else {
			n.FirstValue = first
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return n, nil
}

func validateCenteredNorm(raw map[string]any) (NormSettings, []error) {
	var errs []error
	checkExcessFields("norm", raw, &errs, "name", "vcenter", "halfrange", "clip")

	n := &CenteredNorm{}
	if v, ok := raw["vcenter"]; ok {
		if f, ok := toFloat(v); !ok {
			errs = append(errs, &SchemaError{Block: "norm", Field: "vcenter", Msg: "must be a number"})
		} else {
			n.VCenter = f
		}
	}
	n.Halfrange = optionalFloat(raw, "halfrange", &errs)
	n.Clip = optionalBool(raw, "clip", &errs)

	if len(errs) > 0 {
		return nil, errs
	}
	return n, nil
}

func validateTwoSlopeNorm(raw map[string]any) (NormSettings, []error) {
	var errs []error
	checkExcessFields("norm", raw, &errs, "name", "vcenter", "vmin", "vmax")

	n := &TwoSlopeNorm{}
	v, ok := raw["vcenter"]
	if !ok {
		errs = append(errs, &SchemaError{Block: "norm", Field: "vcenter", Msg: "required for TwoSlopeNorm"})
	} else if f, ok := toFloat(v); !ok {
		errs = append(errs, &SchemaError{Block: "norm", Field: "vcenter", Msg: "must be a number"})
	} else {
		n.VCenter = f
	}

	n.VMin = optionalFloat(raw, "vmin", &errs)
	n.VMax = optionalFloat(raw, "vmax", &errs)

	if n.VMin != nil && *n.VMin >= n.VCenter {
		errs = append(errs, &SchemaError{Block: "norm", Field: "vmin", Msg: "must be less than vcenter"})
	}
	if n.VMax != nil && *n.VMax <= n.VCenter {
		errs = append(errs, &SchemaError{Block: "norm", Field: "vmax", Msg: "must be greater than vcenter"})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return n, nil
}

func validateLogNorm(raw map[string]any) (NormSettings, []error) {
	var errs []error
	checkExcessFields("norm", raw, &errs, "name", "vmin", "vmax", "clip")
	n := &LogNorm{
		VMin: optionalFloat(raw, "vmin", &errs),
		VMax: optionalFloat(raw, "vmax", &errs),
		Clip: optionalBool(raw, "clip", &errs),
	}
	checkVMinVMax(n.VMin, n.VMax, &errs)
	if n.VMin != nil && *n.VMin <= 0 {
		errs = append(errs, &SchemaError{Block: "norm", Field: "vmin", Msg: "must be greater than 0 for LogNorm"})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return n, nil
}

func validateSymLogNorm(raw map[string]any) (NormSettings, []error) {
	var errs []error
	checkExcessFields("norm", raw, &errs, "name", "linthresh", "linscale", "base", "vmin", "vmax", "clip")

	n := &SymLogNorm{LinScale: 1, Base: 10}

	v, ok := raw["linthresh"]
	if !ok {
		errs = append(errs, &SchemaError{Block: "norm", Field: "linthresh", Msg: "required for SymLogNorm"})
	} else if f, ok := toFloat(v); !ok {
		errs = append(errs, &SchemaError{Block: "norm", Field: "linthresh", Msg: "must be a number"})
	} else if f <= 0 {
		errs = append(errs, &SchemaError{Block: "norm", Field: "linthresh", Msg: "must be positive"})
	} else {
		n.LinThresh = f
	}

	for _, field := range []string{"linscale", "base"} {
		v, ok := raw[field]
		if !ok {
			continue
		}
		f, isNum := toFloat(v)
		if !isNum {
			errs = append(errs, &SchemaError{Block: "norm", Field: field, Msg: "must be a number"})
			continue
		}
		if f <= 0 {
			errs = append(errs, &SchemaError{Block: "norm", Field: field, Msg: "must be positive"})
			continue
		}
		if field == "linscale" {
			n.LinScale = f
		} else {
			n.Base = f
		}
	}

	n.VMin = optionalFloat(raw, "vmin", &errs)
	n.VMax = optionalFloat(raw, "vmax", &errs)
	n.Clip = optionalBool(raw, "clip", &errs)
	checkVMinVMax(n.VMin, n.VMax, &errs)

	if len(errs) > 0 {
		return nil, errs
	}
	return n, nil
}

func validatePowerNorm(raw map[string]any) (NormSettings, []error) {
	var errs []error
	checkExcessFields("norm", raw, &errs, "name", "gamma", "vmin", "vmax", "clip")

	n := &PowerNorm{}
	v, ok := raw["gamma"]
	if !ok {
		errs = append(errs, &SchemaError{Block: "norm", Field: "gamma", Msg: "required for PowerNorm"})
	} else if f, ok := toFloat(v); !ok {
		errs = append(errs, &SchemaError{Block: "norm", Field: "gamma", Msg: "must be a number"})
	} else {
		n.Gamma = f
	}

	n.VMin = optionalFloat(raw, "vmin", &errs)
	n.VMax = optionalFloat(raw, "vmax", &errs)
	n.Clip = optionalBool(raw, "clip", &errs)
	checkVMinVMax(n.VMin, n.VMax, &errs)

	if len(errs) > 0 {
		return nil, errs
	}
	return n, nil
}

func validateAsinhNorm(raw map[string]any) (NormSettings, []error) {
	var errs []error
	checkExcessFields("norm", raw, &errs, "name", "linear_width", "vmin", "vmax", "clip")

	n := &AsinhNorm{LinearWidth: 1}
	if v, ok := raw["linear_width"]; ok {
		if f, ok := toFloat(v); !ok {
			errs = append(errs, &SchemaError{Block: "norm", Field: "linear_width", Msg: "must be a number"})
		} else {
			n.LinearWidth = f
		}
	}

	n.VMin = optionalFloat(raw, "vmin", &errs)
	n.VMax = optionalFloat(raw, "vmax", &errs)
	n.Clip = optionalBool(raw, "clip", &errs)
	checkVMinVMax(n.VMin, n.VMax, &errs)

	if len(errs) > 0 {
		return nil, errs
	}
	return n, nil
}

// checkExcessFields rejects any key outside the block's recognized set.
func checkExcessFields(block string, raw map[string]any, errs *[]error, allowed ...string) {
	allowedSet := make(map[string]bool, len(allowed))
	for _, key := range allowed {
		allowedSet[key] = true
	}
	var excess []string
	for key := range raw {
		if !allowedSet[key] {
			excess = append(excess, key)
		}
	}
	if len(excess) > 0 {
		*errs = append(*errs, &UnexpectedFieldError{Block: block, Fields: excess})
	}
}

func optionalFloat(raw map[string]any, field string, errs *[]error) *float64 {
	v, ok := raw[field]
	if !ok || v == nil {
		return nil
	}
	f, isNum := toFloat(v)
	if !isNum {
		*errs = append(*errs, &SchemaError{Block: "norm", Field: field, Msg: "must be a number"})
		return nil
	}
	return &f
}

func optionalBool(raw map[string]any, field string, errs *[]error) bool {
	v, ok := raw[field]
	if !ok || v == nil {
		return false
	}
	b, isBool := toBool(v)
	if !isBool {
		*errs = append(*errs, &SchemaError{Block: "norm", Field: field, Msg: "must be a boolean"})
		return false
	}
	return b
}

func checkVMinVMax(vmin, vmax *float64, errs *[]error) {
	if vmin != nil && vmax != nil && *vmin >= *vmax {
		*errs = append(*errs, &SchemaError{Block: "norm", Field: "vmin", Msg: "must be less than vmax"})
	}
}
