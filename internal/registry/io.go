package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/colorbar"
)

// ReadRecords reads a colorbar configuration YAML file: a mapping of
// record name to raw record. Records are not validated at read time.
func ReadRecords(path string) (map[string]colorbar.Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading colorbar file: %w", err)
	}

	var decoded map[string]map[string]any
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("parsing colorbar file %s: %w", path, err)
	}

	records := make(map[string]colorbar.Raw, len(decoded))
	for name, raw := range decoded {
		records[name] = colorbar.Raw(raw)
	}
	return records, nil
}

// WriteRecords writes named records to a YAML file in the given name
// order. The write is atomic: records are written to a temporary sibling
// file first, then moved into place. An existing file is only replaced
// when force is set.
func WriteRecords(path string, names []string, records map[string]colorbar.Raw, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("file %s already exists (use force to overwrite)", path)
	}

	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range names {
		raw, ok := records[name]
		if !ok {
			return &NotFoundError{Name: name}
		}

		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: name}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(map[string]any(raw)); err != nil {
			return fmt.Errorf("encoding colorbar %q: %w", name, err)
		}
		doc.Content = append(doc.Content, keyNode, valueNode)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding colorbar records: %w", err)
	}

	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing colorbar file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing colorbar file: %w", err)
	}
	return nil
}

// yamlFiles lists the YAML files directly inside a directory, sorted.
func yamlFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("directory %s does not exist", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
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
