package registry

import (
	"fmt"
	"sort"
	"strings"
)

// NotFoundError reports a name with no registry entry.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("colorbar %q is not registered", e.Name)
}

// DuplicateNameError reports a register attempt over an existing name with
// overwriting disabled.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("a colorbar named %q already exists (overwriting is disabled)", e.Name)
}

// UnknownReferenceError reports a reference whose target is not registered.
type UnknownReferenceError struct {
	Name   string
	Target string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("colorbar %q references %q, which is not registered", e.Name, e.Target)
}

// CircularReferenceError reports a reference chain that revisits a name.
type CircularReferenceError struct {
	Chain []string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("circular reference: %s", strings.Join(e.Chain, " -> "))
}

// MalformedReferenceError reports a reference record carrying fields other
// than the reference itself and auxiliary metadata.
type MalformedReferenceError struct {
	Name   string
	Fields []string
}

func (e *MalformedReferenceError) Error() string {
	fields := append([]string(nil), e.Fields...)
	sort.Strings(fields)
	return fmt.Sprintf("colorbar %q mixes 'reference' with other fields [%s]", e.Name, strings.Join(fields, ", "))
}

// InvalidRecordsError aggregates the registry entries that failed
// validation.
type InvalidRecordsError struct {
	Names []string
	Errs  []error
}

func (e *InvalidRecordsError) Error() string {
	return fmt.Sprintf("colorbars with invalid configurations: %s", strings.Join(e.Names, ", "))
}

// Unwrap exposes the per-record failures to errors.Is and errors.As.
func (e *InvalidRecordsError) Unwrap() []error {
	return e.Errs
}
