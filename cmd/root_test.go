package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/config"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/tracing"
)

func withConfig(t *testing.T, c config.Config) {
	t.Helper()
	old := cfg
	cfg = c
	t.Cleanup(func() { cfg = old })
}

func noopProvider(t *testing.T) *tracing.Provider {
	t.Helper()
	provider, err := tracing.NewProvider(tracing.Config{Enabled: false})
	require.NoError(t, err)
	return provider
}

func TestBuildRegistries_Defaults(t *testing.T) {
	withConfig(t, config.Defaults())

	cmaps, reg, err := buildRegistries(context.Background(), noopProvider(t))
	require.NoError(t, err)
	defer reg.Close()

	require.NotEmpty(t, reg.Names(), "embedded defaults should be registered")
	require.NotEmpty(t, cmaps.Names())
	require.NoError(t, reg.Validate())
}

func TestBuildRegistries_UserDirectory(t *testing.T) {
	dir := t.TempDir()
	record := map[string]map[string]any{
		"wind_speed": {
			"cmap": map[string]any{"name": "viridis"},
			"norm": map[string]any{"name": "Norm", "vmin": 0, "vmax": 30},
		},
	}
	data, err := yaml.Marshal(record)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wind.yaml"), data, 0o644))

	c := config.Defaults()
	c.ColorbarDirs = []string{dir}
	withConfig(t, c)

	_, reg, err := buildRegistries(context.Background(), noopProvider(t))
	require.NoError(t, err)
	defer reg.Close()

	require.Contains(t, reg.Names(), "wind_speed")
}

func TestBuildRegistries_MissingDirectoryFails(t *testing.T) {
	c := config.Defaults()
	c.ColorbarDirs = []string{filepath.Join(t.TempDir(), "does-not-exist")}
	withConfig(t, c)

	_, _, err := buildRegistries(context.Background(), noopProvider(t))
	require.Error(t, err)
}

func TestNewRenderer_ProfileFromConfig(t *testing.T) {
	c := config.Defaults()
	c.UI.ColorProfile = "ascii"
	c.UI.Width = 30
	withConfig(t, c)

	r := newRenderer()
	require.NotNil(t, r)
}

func TestNewTracingProvider_Disabled(t *testing.T) {
	withConfig(t, config.Defaults())

	provider, err := newTracingProvider()
	require.NoError(t, err)
	require.False(t, provider.Enabled())
	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewTracingProvider_FillsDefaultFilePath(t *testing.T) {
	c := config.Defaults()
	c.Tracing.Enabled = true
	c.Tracing.Exporter = "none"
	withConfig(t, c)

	provider, err := newTracingProvider()
	require.NoError(t, err)
	require.True(t, provider.Enabled())
	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestDirsKey(t *testing.T) {
	c := config.Defaults()
	c.ColorbarDirs = []string{"/a"}
	c.ColormapDirs = []string{"/b"}
	withConfig(t, c)

	dirsColormaps = false
	key, dirs := dirsKey()
	require.Equal(t, config.KeyColorbarDirs, key)
	require.Equal(t, []string{"/a"}, dirs)

	dirsColormaps = true
	defer func() { dirsColormaps = false }()
	key, dirs = dirsKey()
	require.Equal(t, config.KeyColormapDirs, key)
	require.Equal(t, []string{"/b"}, dirs)
}
