// Package colorbar defines the colorbar record model and its schema-driven
// validation: per-block validators for the colormap-appearance,
// normalization and colorbar-decoration blocks, plus the cross-field
// consistency checks that span them. Validation is a pure function from a
// raw record to a normalized one; it never mutates its input.
package colorbar

import (
	"fmt"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/colormap"
)

// Record is a validated, normalized concrete colorbar record.
type Record struct {
	Cmap      CmapSettings
	Norm      NormSettings
	Cbar      CbarSettings
	Auxiliary map[string]any
}

// Raw returns the canonical persisted form of the record. Validating the
// result yields an identical Record, including any inferred color counts.
func (r *Record) Raw() Raw {
	out := Raw{
		"cmap": r.Cmap.Raw(),
		"norm": r.Norm.Raw(),
	}
	if cbar := r.Cbar.Raw(); len(cbar) > 0 {
		out["cbar"] = cbar
	}
	if r.Auxiliary != nil {
		out["auxiliary"] = cloneValue(r.Auxiliary).(map[string]any)
	}
	return out
}

// Categories returns the auxiliary category tags attached to the record.
func (r *Record) Categories() []string {
	return Raw{"auxiliary": r.Auxiliary}.Categories()
}

// Options configures record validation.
type Options struct {
	// ColormapExists reports whether a colormap name is recognized. It is
	// consulted for every name in the cmap block. When nil, only the
	// built-in colormap namespace is recognized.
	ColormapExists func(name string) bool
}

func (o Options) colormapExists() func(string) bool {
	if o.ColormapExists != nil {
		return o.ColormapExists
	}
	return colormap.IsBuiltin
}

// recognized top-level record keys.
var recordKeys = map[string]bool{
	"cmap":      true,
	"norm":      true,
	"cbar":      true,
	"auxiliary": true,
}

// ValidateRecord validates a raw concrete record and returns its normalized
// form. Every problem in every block is collected before failing, so the
// returned *ValidationError names all of them at once. Reference records
// are not validated here; ErrIsReference is returned for those.
func ValidateRecord(name string, raw Raw, opts Options) (*Record, error) {
	if raw.IsReference() {
		return nil, ErrIsReference
	}

	var errs []error

	for key := range raw {
		if !recordKeys[key] {
			errs = append(errs, &UnexpectedFieldError{Block: "record", Fields: []string{key}})
		}
	}

	_, hasCmap := raw["cmap"]
	if !hasCmap {
		errs = append(errs, ErrMissingCmap)
	}
	cmapRaw, cmapOK := blockMap(raw, "cmap", &errs)
	normRaw, _ := blockMap(raw, "norm", &errs)
	cbarRaw, _ := blockMap(raw, "cbar", &errs)

	var cmap *CmapSettings
	if hasCmap && cmapOK {
		var cmapErrs []error
		cmap, cmapErrs = validateCmap(cmapRaw, opts.colormapExists())
		errs = append(errs, cmapErrs...)
	}

	norm, normErrs := validateNorm(normRaw)
	errs = append(errs, normErrs...)

	cbar, cbarErrs := validateCbar(cbarRaw)
	errs = append(errs, cbarErrs...)

	// The cross-field check needs validated shapes on both sides.
	if len(errs) == 0 {
		errs = append(errs, checkDiscreteColorCount(cmap, norm)...)
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Record: name, Errs: errs}
	}

	rec := &Record{
		Cmap: *cmap,
		Norm: norm,
		Cbar: *cbar,
	}
	if aux := raw.Auxiliary(); aux != nil {
		rec.Auxiliary = cloneValue(aux).(map[string]any)
	}
	return rec, nil
}

// blockMap extracts a block as a mapping; a missing or empty block yields
// an empty mapping so block validators can fill defaults. Only a present
// value of the wrong shape fails.
func blockMap(raw Raw, key string, errs *[]error) (map[string]any, bool) {
	v, ok := raw[key]
	if !ok || v == nil {
		return map[string]any{}, true
	}
	m, isMap := v.(map[string]any)
	if !isMap {
		*errs = append(*errs, &SchemaError{Block: key, Msg: "must be a mapping"})
		return map[string]any{}, false
	}
	return m, true
}

// checkDiscreteColorCount enforces that a discrete normalization's expected
// color count matches the colormap's declared n. When n is absent it is
// filled in from the expected count, splitting evenly across multiple
// colormaps with the remainder assigned to the last one.
func checkDiscreteColorCount(cmap *CmapSettings, norm NormSettings) []error {
	expected, discrete := ExpectedNColors(norm)
	if !discrete {
		return nil
	}

	if cmap.N != nil {
		if got := cmap.TotalN(); got != expected {
			return []error{&ColorCountMismatchError{Expected: expected, Got: got}}
		}
		return nil
	}

	if expected < len(cmap.Names) {
		return []error{&SchemaError{
			Block: "cmap", Field: "name",
			Msg: fmt.Sprintf("more colormaps (%d) than discrete colors (%d)", len(cmap.Names), expected),
		}}
	}

	n := make([]int, len(cmap.Names))
	each := expected / len(cmap.Names)
	for i := range n {
		n[i] = each
	}
	n[len(n)-1] += expected - each*len(cmap.Names)
	cmap.N = n
	return nil
}
