package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Directory-list keys that SaveDirs accepts.
const (
	KeyColorbarDirs = "colorbar_dirs"
	KeyColormapDirs = "colormap_dirs"
)

// SaveDirs updates a directory-list key in the config file.
// This preserves comments and formatting in other sections by using yaml.Node.
func SaveDirs(configPath, key string, dirs []string) error {
	if key != KeyColorbarDirs && key != KeyColormapDirs {
		return fmt.Errorf("unknown directory key %q", key)
	}

	// Read existing file content
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	dirsNode := buildDirsNode(dirs)

	// Update or create the key
	if doc.Kind == 0 {
		// Empty or new file - create document structure
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: key},
						dirsNode,
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.MappingNode {
			// Find and replace the key, or append it
			found := false
			for i := 0; i < len(root.Content)-1; i += 2 {
				if root.Content[i].Value == key {
					root.Content[i+1] = dirsNode
					found = true
					break
				}
			}
			if !found {
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: key},
					dirsNode,
				)
			}
		}
	}

	// Marshal back to YAML
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	// Write atomically (write to temp, then rename)
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".pycolorbar.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// AddDir appends a directory to a directory-list key and saves.
// Adding a directory that is already present is a no-op.
func AddDir(configPath, key, dir string, existing []string) error {
	for _, d := range existing {
		if d == dir {
			return nil
		}
	}
	return SaveDirs(configPath, key, append(existing, dir))
}

// RemoveDir removes a directory from a directory-list key and saves.
// Returns an error if the directory is not present.
func RemoveDir(configPath, key, dir string, existing []string) error {
	updated := make([]string, 0, len(existing))
	found := false
	for _, d := range existing {
		if d == dir {
			found = true
			continue
		}
		updated = append(updated, d)
	}
	if !found {
		return fmt.Errorf("directory %q not configured under %s", dir, key)
	}
	return SaveDirs(configPath, key, updated)
}

// buildDirsNode creates a yaml.Node representing the directory list.
func buildDirsNode(dirs []string) *yaml.Node {
	node := &yaml.Node{
		Kind:    yaml.SequenceNode,
		Content: make([]*yaml.Node, 0, len(dirs)),
	}
	for _, dir := range dirs {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: dir})
	}
	return node
}
