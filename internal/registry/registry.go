// Package registry implements the colorbar configuration store: a mapping
// from name to raw record, with registration from YAML files, validation,
// reference resolution and export.
package registry

import (
	"sort"
	"strings"
	"sync"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/colorbar"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/colormap"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/log"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/pubsub"
)

// Registry stores colorbar records by name. Entries are raw records;
// validation happens when adding in-memory records, on demand via Validate,
// and when resolving references through Get. The registry owns its entries:
// callers receive clones, never the stored maps.
type Registry struct {
	mu      sync.RWMutex
	records map[string]colorbar.Raw
	cmaps   *colormap.Registry
	broker  *pubsub.Broker[string]
}

// New returns an empty colorbar registry. Colormap names in records are
// resolved against the given colormap registry plus the built-in namespace.
func New(cmaps *colormap.Registry) *Registry {
	return &Registry{
		records: make(map[string]colorbar.Raw),
		cmaps:   cmaps,
		broker:  pubsub.NewBroker[string](),
	}
}

// Subscriber exposes the registry change events. Subscriptions end when
// their context is cancelled.
func (r *Registry) Subscriber() pubsub.Subscriber[string] {
	return r.broker
}

// Close releases the event broker.
func (r *Registry) Close() {
	r.broker.Close()
}

func (r *Registry) validationOptions() colorbar.Options {
	return colorbar.Options{
		ColormapExists: func(name string) bool {
			return colormap.IsBuiltin(name) || (r.cmaps != nil && r.cmaps.Contains(name))
		},
	}
}

// RegisterFile registers every record defined in a colorbar YAML file. A
// single file may define multiple named records; the file name itself is
// not used. Records are not validated at registration; use Validate.
func (r *Registry) RegisterFile(path string, force bool) ([]string, error) {
	records, err := ReadRecords(path)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)

	r.mu.Lock()
	defer r.mu.Unlock()

	// Reject duplicates before storing anything, so a failed register
	// leaves the registry unchanged.
	if !force {
		for _, name := range names {
			if _, exists := r.records[name]; exists {
				return nil, &DuplicateNameError{Name: name}
			}
		}
	}

	for _, name := range names {
		eventType := pubsub.RegisteredEvent
		if _, exists := r.records[name]; exists {
			eventType = pubsub.OverwrittenEvent
			log.Warn(log.CatRegistry, "overwriting registered colorbar", "name", name)
		}
		r.records[name] = records[name]
		r.broker.Publish(eventType, name)
	}

	log.Debug(log.CatRegistry, "registered colorbars", "filepath", path, "count", len(names))

	return names, nil
}

// RegisterDir registers every YAML file in a directory and returns all the
// registered record names.
func (r *Registry) RegisterDir(dir string, force bool) ([]string, error) {
	paths, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, path := range paths {
		registered, err := r.RegisterFile(path, force)
		if err != nil {
			return names, err
		}
		names = append(names, registered...)
	}
	sort.Strings(names)
	return names, nil
}

// Add validates a record and stores it under the given name. Reference
// records are checked for shape and resolvability; concrete records are
// stored in their normalized form, so adding is idempotent.
func (r *Registry) Add(name string, raw colorbar.Raw, force bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[name]; exists && !force {
		return &DuplicateNameError{Name: name}
	}

	stored := raw.Clone()
	if raw.IsReference() {
		if _, err := resolve(name, raw, r.lookup); err != nil {
			return err
		}
	} else {
		record, err := colorbar.ValidateRecord(name, raw, r.validationOptions())
		if err != nil {
			return err
		}
		stored = record.Raw()
	}

	eventType := pubsub.RegisteredEvent
	if _, exists := r.records[name]; exists {
		eventType = pubsub.OverwrittenEvent
		log.Warn(log.CatRegistry, "overwriting registered colorbar", "name", name)
	}
	r.records[name] = stored
	r.broker.Publish(eventType, name)

	return nil
}

// Unregister removes a record from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[name]; !exists {
		return &NotFoundError{Name: name}
	}
	delete(r.records, name)
	r.broker.Publish(pubsub.UnregisteredEvent, name)

	log.Debug(log.CatRegistry, "unregistered colorbar", "name", name)

	return nil
}

// lookup returns the stored record for a name. Callers must hold the lock.
func (r *Registry) lookup(name string) (colorbar.Raw, bool) {
	raw, ok := r.records[name]
	return raw, ok
}

// Get returns the raw record stored under a name. With resolveReference
// set, a reference record is followed to its terminal concrete record,
// which is re-validated and returned in normalized form; an invalid
// target fails the lookup even when the target was registered unchecked.
// The returned record is a clone; mutating it does not affect the registry.
func (r *Registry) Get(name string, resolveReference bool) (colorbar.Raw, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	raw, ok := r.records[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}

	if resolveReference && raw.IsReference() {
		resolved, err := resolve(name, raw, r.lookup)
		if err != nil {
			return nil, err
		}
		record, err := colorbar.ValidateRecord(name, resolved, r.validationOptions())
		if err != nil {
			return nil, err
		}
		return record.Raw(), nil
	}
	return raw.Clone(), nil
}

// GetRecord resolves and validates the record stored under a name,
// returning the normalized concrete record.
func (r *Registry) GetRecord(name string) (*colorbar.Record, error) {
	raw, err := r.Get(name, true)
	if err != nil {
		return nil, err
	}
	return colorbar.ValidateRecord(name, raw, r.validationOptions())
}

// Names lists all registered record names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.records))
	for name := range r.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StandaloneNames lists the registered names whose record is concrete.
func (r *Registry) StandaloneNames() []string {
	return r.filterNames(func(raw colorbar.Raw) bool { return !raw.IsReference() })
}

// ReferencedNames lists the registered names whose record is a reference.
func (r *Registry) ReferencedNames() []string {
	return r.filterNames(func(raw colorbar.Raw) bool { return raw.IsReference() })
}

func (r *Registry) filterNames(keep func(colorbar.Raw) bool) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name, raw := range r.records {
		if keep(raw) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Contains reports whether a name is registered.
func (r *Registry) Contains(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.records[name]
	return ok
}

// Validate validates the named records, or every registered record when no
// names are given. Reference records are checked for shape and resolution;
// concrete records run the full schema validation. All failures are
// collected and reported at once.
func (r *Registry) Validate(names ...string) error {
	if len(names) == 0 {
		names = r.Names()
	}

	var (
		invalid []string
		errs    []error
	)
	for _, name := range names {
		if err := r.validateOne(name); err != nil {
			invalid = append(invalid, name)
			errs = append(errs, err)
			log.Warn(log.CatValidate, "invalid colorbar configuration", "name", name, "error", err.Error())
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return &InvalidRecordsError{Names: invalid, Errs: errs}
	}
	return nil
}

func (r *Registry) validateOne(name string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	raw, ok := r.records[name]
	if !ok {
		return &NotFoundError{Name: name}
	}

	if raw.IsReference() {
		_, err := resolve(name, raw, r.lookup)
		return err
	}

	_, err := colorbar.ValidateRecord(name, raw, r.validationOptions())
	return err
}

// Available lists registered names, optionally filtered by auxiliary
// category tag (case-insensitive) and optionally excluding reference
// records. Category filtering considers the resolved record's tags, so a
// reference inherits its target's categories.
func (r *Registry) Available(category string, excludeReferenced bool) []string {
	names := r.Names()
	if excludeReferenced {
		names = r.StandaloneNames()
	}
	if category == "" {
		return names
	}

	var matched []string
	for _, name := range names {
		raw, err := r.Get(name, true)
		if err != nil {
			continue
		}
		for _, cat := range raw.Categories() {
			if strings.EqualFold(cat, category) {
				matched = append(matched, name)
				break
			}
		}
	}
	return matched
}

// Export writes the named records (all records when names is empty) to a
// colorbar YAML file. With sortKeys the records are emitted alphabetically,
// otherwise in the given order.
func (r *Registry) Export(path string, names []string, force, sortKeys bool) error {
	if len(names) == 0 {
		names = r.Names()
	}
	if sortKeys {
		names = append([]string(nil), names...)
		sort.Strings(names)
	}

	r.mu.RLock()
	records := make(map[string]colorbar.Raw, len(names))
	for _, name := range names {
		if raw, ok := r.records[name]; ok {
			records[name] = raw.Clone()
		}
	}
	r.mu.RUnlock()

	if err := WriteRecords(path, names, records, force); err != nil {
		return err
	}

	log.Info(log.CatRegistry, "exported colorbars", "filepath", path, "count", len(names))

	return nil
}

// Reset clears the entire registry.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name := range r.records {
		r.broker.Publish(pubsub.UnregisteredEvent, name)
	}
	r.records = make(map[string]colorbar.Raw)

	log.Debug(log.CatRegistry, "colorbar registry reset")
}
