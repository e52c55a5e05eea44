// Package assets embeds the default colorbar and colormap definitions that
// ship with pycolorbar. They are registered into fresh registries at startup
// before any user-configured directories.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/colorbar"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/colormap"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/registry"
)

//go:embed colorbars colormaps
var defaults embed.FS

// ColorbarsFS returns the embedded filesystem of default colorbar files.
func ColorbarsFS() fs.FS {
	sub, err := fs.Sub(defaults, "colorbars")
	if err != nil {
		panic(err)
	}
	return sub
}

// ColormapsFS returns the embedded filesystem of default colormap files.
func ColormapsFS() fs.FS {
	sub, err := fs.Sub(defaults, "colormaps")
	if err != nil {
		panic(err)
	}
	return sub
}

// RegisterDefaults loads the embedded colormaps and colorbars into the given
// registries. Colormaps are registered first so colorbar validation can see
// them. Reference records are registered after concrete ones so targets
// within the same file always resolve.
func RegisterDefaults(cmaps *colormap.Registry, reg *registry.Registry) error {
	if err := registerColormaps(cmaps); err != nil {
		return err
	}
	return registerColorbars(reg)
}

func registerColormaps(cmaps *colormap.Registry) error {
	files, err := yamlFiles(ColormapsFS())
	if err != nil {
		return err
	}
	for _, file := range files {
		data, err := fs.ReadFile(ColormapsFS(), file)
		if err != nil {
			return fmt.Errorf("read embedded colormap %s: %w", file, err)
		}
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parse embedded colormap %s: %w", file, err)
		}
		name := strings.TrimSuffix(path.Base(file), path.Ext(file))
		if err := cmaps.Add(name, raw, false); err != nil {
			return fmt.Errorf("register embedded colormap %s: %w", name, err)
		}
	}
	return nil
}

func registerColorbars(reg *registry.Registry) error {
	files, err := yamlFiles(ColorbarsFS())
	if err != nil {
		return err
	}
	for _, file := range files {
		data, err := fs.ReadFile(ColorbarsFS(), file)
		if err != nil {
			return fmt.Errorf("read embedded colorbars %s: %w", file, err)
		}
		var decoded map[string]map[string]any
		if err := yaml.Unmarshal(data, &decoded); err != nil {
			return fmt.Errorf("parse embedded colorbars %s: %w", file, err)
		}

		// Concrete records first so references within the file resolve.
		names := make([]string, 0, len(decoded))
		for name := range decoded {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			iRef := isReference(decoded[names[i]])
			jRef := isReference(decoded[names[j]])
			if iRef != jRef {
				return !iRef
			}
			return names[i] < names[j]
		})

		for _, name := range names {
			if err := reg.Add(name, colorbar.Raw(decoded[name]), false); err != nil {
				return fmt.Errorf("register embedded colorbar %s: %w", name, err)
			}
		}
	}
	return nil
}

func isReference(raw map[string]any) bool {
	_, ok := raw["reference"]
	return ok
}

func yamlFiles(fsys fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		ext := path.Ext(p)
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
