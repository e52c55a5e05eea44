package colormap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ReadDefinition reads and validates a colormap definition YAML file.
func ReadDefinition(filepath string) (*Definition, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading colormap file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing colormap file %s: %w", filepath, err)
	}

	def, err := ParseDefinition(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid colormap file %s: %w", filepath, err)
	}
	return def, nil
}

// WriteDefinition writes a colormap definition to a YAML file. An existing
// file is only replaced when force is set.
func WriteDefinition(def *Definition, filepath string, force bool) error {
	if _, err := os.Stat(filepath); err == nil && !force {
		return fmt.Errorf("file %s already exists (use force to overwrite)", filepath)
	}

	data, err := yaml.Marshal(def.Raw())
	if err != nil {
		return fmt.Errorf("encoding colormap definition: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0o644); err != nil {
		return fmt.Errorf("writing colormap file: %w", err)
	}
	return nil
}
