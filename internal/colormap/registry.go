package colormap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/cachemanager"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/log"
)

// NotRegisteredError reports a colormap name with no registry entry.
type NotRegisteredError struct {
	Name string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("colormap %q is not registered", e.Name)
}

// AlreadyRegisteredError reports a register attempt over an existing name
// without the force flag.
type AlreadyRegisteredError struct {
	Name string
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("a colormap named %q already exists (use force to overwrite)", e.Name)
}

// InvalidDefinitionsError aggregates the colormaps whose definition files
// failed validation.
type InvalidDefinitionsError struct {
	Names []string
}

func (e *InvalidDefinitionsError) Error() string {
	return fmt.Sprintf("colormaps with invalid definitions: %s", strings.Join(e.Names, ", "))
}

// Registry maps colormap names to their definition file paths. Definitions
// are read and validated lazily on first access, through a read-through
// cache, so registering a directory stays cheap. A trailing "_r" on a name
// resolves to the reversed form of the base colormap.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]string
	tmpDir  string
	cache   *cachemanager.ReadThroughCache[string, *Definition, string]
}

// NewRegistry returns an empty colormap registry.
func NewRegistry() *Registry {
	manager := cachemanager.NewInMemoryCacheManager[string, *Definition](
		"colormap",
		cachemanager.DefaultExpiration,
		cachemanager.DefaultCleanupInterval,
	)
	loader := func(ctx context.Context, path string) (*Definition, error) {
		return ReadDefinition(path)
	}
	return &Registry{
		entries: make(map[string]string),
		cache:   cachemanager.NewReadThroughCache(manager, loader, false),
	}
}

// RegisterFile registers a colormap definition file. The colormap takes the
// file's base name without extension. The file is not validated at
// register time; validation happens on first access or via Validate.
func (r *Registry) RegisterFile(path string, force bool) (string, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("colormap file %s does not exist", path)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		if !force {
			return "", &AlreadyRegisteredError{Name: name}
		}
		log.Warn(log.CatColormap, "overwriting registered colormap", "name", name)
	}
	r.entries[name] = path
	r.cache.Invalidate(context.Background(), name)

	log.Debug(log.CatColormap, "registered colormap", "name", name, "filepath", path)

	return name, nil
}

// RegisterDir registers every YAML file in a directory and returns the
// registered names.
func (r *Registry) RegisterDir(dir string, force bool) ([]string, error) {
	paths, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(paths))
	for _, path := range paths {
		name, err := r.RegisterFile(path, force)
		if err != nil {
			return names, err
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func yamlFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("directory %s does not exist", dir)
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Add validates a colormap definition given as a raw mapping and registers
// it under the given name. The definition is written to a YAML file in a
// temporary directory, so every registered name keeps a backing file.
func (r *Registry) Add(name string, raw map[string]any, force bool) error {
	def, err := ParseDefinition(raw)
	if err != nil {
		return fmt.Errorf("invalid colormap %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists && !force {
		return &AlreadyRegisteredError{Name: name}
	}

	if r.tmpDir == "" {
		dir, err := os.MkdirTemp("", "colormaps-")
		if err != nil {
			return fmt.Errorf("creating temporary colormap directory: %w", err)
		}
		r.tmpDir = dir
	}

	path := filepath.Join(r.tmpDir, name+".yaml")
	if err := WriteDefinition(def, path, true); err != nil {
		return err
	}

	r.entries[name] = path
	r.cache.Invalidate(context.Background(), name)

	log.Debug(log.CatColormap, "added colormap", "name", name)

	return nil
}

// Unregister removes a colormap from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; !exists {
		return &NotRegisteredError{Name: name}
	}
	delete(r.entries, name)
	r.cache.Invalidate(context.Background(), name)

	log.Debug(log.CatColormap, "unregistered colormap", "name", name)

	return nil
}

// Names lists the registered colormap names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Contains reports whether name resolves against the registry, accepting
// the reversed "_r" form of any registered name.
func (r *Registry) Contains(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[strings.TrimSuffix(name, reversedSuffix)]
	return ok
}

// Filepath returns the definition file path backing a colormap name. The
// reversed "_r" form maps to the base colormap's file.
func (r *Registry) Filepath(name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	base := strings.TrimSuffix(name, reversedSuffix)
	path, ok := r.entries[base]
	if !ok {
		return "", &NotRegisteredError{Name: base}
	}
	return path, nil
}

// GetDefinition reads, validates and caches the definition of a registered
// colormap. The reversed "_r" form yields the base definition.
func (r *Registry) GetDefinition(ctx context.Context, name string) (*Definition, error) {
	base := strings.TrimSuffix(name, reversedSuffix)

	path, err := r.Filepath(base)
	if err != nil {
		return nil, err
	}
	return r.cache.Get(ctx, base, path, cachemanager.DefaultExpiration)
}

// Get returns the usable colormap for a name: a registered definition if
// one exists, otherwise a built-in. The "_r" suffix reverses the result.
func (r *Registry) Get(ctx context.Context, name string) (*Colormap, error) {
	base := strings.TrimSuffix(name, reversedSuffix)

	if r.Contains(base) {
		def, err := r.GetDefinition(ctx, base)
		if err != nil {
			return nil, err
		}
		cmap := def.Colormap(base)
		if name != base {
			cmap = cmap.Reversed()
		}
		return cmap, nil
	}

	if cmap, ok := Builtin(name); ok {
		return cmap, nil
	}
	return nil, &NotRegisteredError{Name: name}
}

// Validate reads and validates the named colormaps, or every registered
// colormap when no names are given. All invalid names are reported at
// once.
func (r *Registry) Validate(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		names = r.Names()
	}

	var invalid []string
	for _, name := range names {
		if !r.Contains(name) {
			return &NotRegisteredError{Name: name}
		}
		if _, err := r.GetDefinition(ctx, name); err != nil {
			invalid = append(invalid, name)
			log.Warn(log.CatColormap, "invalid colormap configuration", "name", name, "error", err.Error())
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return &InvalidDefinitionsError{Names: invalid}
	}
	return nil
}

// Available lists registered colormap names, optionally filtered by
// auxiliary category (case-insensitive) and optionally including the
// reversed "_r" variants. Colormaps whose definitions fail to read are
// skipped when filtering by category.
func (r *Registry) Available(ctx context.Context, category string, includeReversed bool) []string {
	names := r.Names()

	if category != "" {
		matched := make([]string, 0, len(names))
		for _, name := range names {
			def, err := r.GetDefinition(ctx, name)
			if err != nil {
				continue
			}
			for _, cat := range def.Categories() {
				if strings.EqualFold(cat, category) {
					matched = append(matched, name)
					break
				}
			}
		}
		names = matched
	}

	if includeReversed {
		reversed := make([]string, 0, len(names))
		for _, name := range names {
			reversed = append(reversed, name+reversedSuffix)
		}
		names = append(names, reversed...)
	}

	sort.Strings(names)
	return names
}

// Reset clears the registry and its definition cache.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]string)
	r.cache.Reset(context.Background())

	log.Debug(log.CatColormap, "colormap registry reset")
}
