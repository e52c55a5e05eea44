package colorbar

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Validation errors
var (
	// ErrIsReference is returned by ValidateRecord when the raw record is a
	// reference to another record. References are resolved by the registry,
	// not validated as concrete records.
	ErrIsReference = errors.New("record is a reference")

	// ErrMissingCmap is returned when a concrete record has no cmap block.
	ErrMissingCmap = errors.New("record must define a 'cmap' block")
)

// SchemaError reports a field that is missing, has the wrong type, or is
// out of its allowed range.
type SchemaError struct {
	Block string // "cmap", "norm" or "cbar"
	Field string
	Msg   string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Block, e.Msg)
	}
	return fmt.Sprintf("%s.%s: %s", e.Block, e.Field, e.Msg)
}

// UnexpectedFieldError reports keys outside a block's recognized set.
type UnexpectedFieldError struct {
	Block  string
	Fields []string
}

func (e *UnexpectedFieldError) Error() string {
	fields := append([]string(nil), e.Fields...)
	sort.Strings(fields)
	return fmt.Sprintf("%s: unexpected fields [%s]", e.Block, strings.Join(fields, ", "))
}

// UnknownColormapError reports a colormap name that resolves against neither
// the built-in namespace nor any registry.
type UnknownColormapError struct {
	Name string
}

func (e *UnknownColormapError) Error() string {
	return fmt.Sprintf("cmap.name: %q is not a recognized colormap name", e.Name)
}

// InvalidColorError reports a color field value that is not a named color,
// a hex string, an RGB/RGBA tuple or the literal "none".
type InvalidColorError struct {
	Field  string
	Reason string
}

func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("cmap.%s: %s", e.Field, e.Reason)
}

// ColorCountMismatchError reports a discrete normalization whose expected
// color count disagrees with the colormap's declared 'n'.
type ColorCountMismatchError struct {
	Expected int
	Got      int
}

func (e *ColorCountMismatchError) Error() string {
	return fmt.Sprintf("cmap.n: discrete normalization expects %d colors, got %d", e.Expected, e.Got)
}

// ValidationError aggregates every problem found while validating a single
// record, so a caller sees all of them at once.
type ValidationError struct {
	Record string
	Errs   []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("colorbar %q has an invalid configuration: %s", e.Record, strings.Join(msgs, "; "))
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	return e.Errs
}
