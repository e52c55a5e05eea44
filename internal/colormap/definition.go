package colormap

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Definition errors
var (
	ErrMissingColorSpace   = errors.New("definition must define 'color_space'")
	ErrMissingColorPalette = errors.New("definition must define 'color_palette'")
)

// DefinitionError reports an invalid field in a colormap definition.
type DefinitionError struct {
	Field string
	Msg   string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// Definition is a validated colormap definition as stored in a YAML file:
// an external color palette in a declared color space, plus optional
// interpolation and auxiliary metadata.
type Definition struct {
	ColorSpace  string
	Palette     []any  // external palette entries, as given
	Colors      []RGBA // decoded internal representation
	Interpolate bool
	Auxiliary   map[string]any
}

var definitionKeys = map[string]bool{
	"color_space":   true,
	"color_palette": true,
	"interpolate":   true,
	"auxiliary":     true,
}

// ParseDefinition validates a raw colormap definition and decodes its
// palette. Errors name the offending field.
func ParseDefinition(raw map[string]any) (*Definition, error) {
	var unexpected []string
	for key := range raw {
		if !definitionKeys[key] {
			unexpected = append(unexpected, key)
		}
	}
	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		return nil, &DefinitionError{Field: strings.Join(unexpected, ", "), Msg: "unexpected fields"}
	}

	spaceValue, ok := raw["color_space"]
	if !ok {
		return nil, ErrMissingColorSpace
	}
	space, ok := spaceValue.(string)
	if !ok {
		return nil, &DefinitionError{Field: "color_space", Msg: fmt.Sprintf("expected a string, got %T", spaceValue)}
	}
	if !IsColorSpace(space) {
		return nil, &DefinitionError{
			Field: "color_space",
			Msg:   fmt.Sprintf("%q is not recognized (expected one of %s)", space, strings.Join(ColorSpaces(), ", ")),
		}
	}

	paletteValue, ok := raw["color_palette"]
	if !ok {
		return nil, ErrMissingColorPalette
	}
	palette, ok := paletteValue.([]any)
	if !ok {
		return nil, &DefinitionError{Field: "color_palette", Msg: fmt.Sprintf("expected a list, got %T", paletteValue)}
	}
	if len(palette) < 2 {
		return nil, &DefinitionError{Field: "color_palette", Msg: "must have at least 2 colors"}
	}

	colors, err := DecodeColors(space, palette)
	if err != nil {
		return nil, &DefinitionError{Field: "color_palette", Msg: err.Error()}
	}

	def := &Definition{
		ColorSpace: strings.ToLower(space),
		Palette:    append([]any(nil), palette...),
		Colors:     colors,
	}

	if v, ok := raw["interpolate"]; ok {
		b, ok := v.(bool)
		if !ok {
			return nil, &DefinitionError{Field: "interpolate", Msg: fmt.Sprintf("expected a boolean, got %T", v)}
		}
		def.Interpolate = b
	}

	if v, ok := raw["auxiliary"]; ok && v != nil {
		aux, ok := v.(map[string]any)
		if !ok {
			return nil, &DefinitionError{Field: "auxiliary", Msg: fmt.Sprintf("expected a mapping, got %T", v)}
		}
		def.Auxiliary = aux
	}

	return def, nil
}

// Raw emits the definition in its external YAML form. The palette entries
// are re-emitted exactly as given, so reading a written definition yields
// the same definition.
func (d *Definition) Raw() map[string]any {
	raw := map[string]any{
		"color_space":   d.ColorSpace,
		"color_palette": append([]any(nil), d.Palette...),
	}
	if d.Interpolate {
		raw["interpolate"] = true
	}
	if len(d.Auxiliary) > 0 {
		raw["auxiliary"] = d.Auxiliary
	}
	return raw
}

// Categories returns the auxiliary category tags of the definition, if any.
// The auxiliary.category value may be a single string or a list of strings.
func (d *Definition) Categories() []string {
	if d.Auxiliary == nil {
		return nil
	}
	switch v := d.Auxiliary["category"].(type) {
	case string:
		return []string{v}
	case []any:
		categories := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				categories = append(categories, s)
			}
		}
		return categories
	case []string:
		return append([]string(nil), v...)
	}
	return nil
}

// Colormap builds the usable colormap from the definition.
func (d *Definition) Colormap(name string) *Colormap {
	return &Colormap{
		Name:        name,
		Colors:      append([]RGBA(nil), d.Colors...),
		Interpolate: d.Interpolate,
	}
}
