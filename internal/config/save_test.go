package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveDirs_CreatesNewFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	err := SaveDirs(configPath, KeyColorbarDirs, []string{"/data/colorbars"})
	require.NoError(t, err)

	_, err = os.Stat(configPath)
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "colorbar_dirs")
	assert.Contains(t, string(data), "/data/colorbars")
}

func TestSaveDirs_RejectsUnknownKey(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	err := SaveDirs(configPath, "random_key", []string{"/data"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown directory key")
}

func TestSaveDirs_PreservesOtherConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	initial := `overwrite: true
ui:
  width: 80
  color_profile: ansi256
`
	err := os.WriteFile(configPath, []byte(initial), 0644)
	require.NoError(t, err)

	err = SaveDirs(configPath, KeyColormapDirs, []string{"/data/colormaps"})
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "overwrite: true")
	assert.Contains(t, string(data), "width: 80")
	assert.Contains(t, string(data), "color_profile: ansi256")
	assert.Contains(t, string(data), "/data/colormaps")
}

func TestSaveDirs_PreservesComments(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	initial := `# my settings
overwrite: false

# strip width
ui:
  width: 40
`
	err := os.WriteFile(configPath, []byte(initial), 0644)
	require.NoError(t, err)

	err = SaveDirs(configPath, KeyColorbarDirs, []string{"/data/colorbars"})
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# my settings")
	assert.Contains(t, string(data), "# strip width")
}

func TestSaveDirs_ReplacesExistingKey(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	require.NoError(t, SaveDirs(configPath, KeyColorbarDirs, []string{"/old"}))
	require.NoError(t, SaveDirs(configPath, KeyColorbarDirs, []string{"/new/a", "/new/b"}))

	// Verify with viper that the key holds only the new dirs
	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	dirs := v.GetStringSlice(KeyColorbarDirs)
	assert.Equal(t, []string{"/new/a", "/new/b"}, dirs)
}

func TestSaveDirs_RoundTripsThroughViper(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	require.NoError(t, SaveDirs(configPath, KeyColorbarDirs, []string{"/data/colorbars"}))
	require.NoError(t, SaveDirs(configPath, KeyColormapDirs, []string{"/data/colormaps"}))

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.Equal(t, []string{"/data/colorbars"}, cfg.ColorbarDirs)
	assert.Equal(t, []string{"/data/colormaps"}, cfg.ColormapDirs)
}

func TestAddDir_AppendsNewDir(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	err := AddDir(configPath, KeyColorbarDirs, "/data/extra", []string{"/data/colorbars"})
	require.NoError(t, err)

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())
	assert.Equal(t, []string{"/data/colorbars", "/data/extra"}, v.GetStringSlice(KeyColorbarDirs))
}

func TestAddDir_DuplicateIsNoop(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	err := AddDir(configPath, KeyColorbarDirs, "/data/colorbars", []string{"/data/colorbars"})
	require.NoError(t, err)

	// No file should have been written
	_, err = os.Stat(configPath)
	require.True(t, os.IsNotExist(err), "duplicate add should not touch the config file")
}

func TestRemoveDir_RemovesDir(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	err := RemoveDir(configPath, KeyColormapDirs, "/data/b", []string{"/data/a", "/data/b"})
	require.NoError(t, err)

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())
	assert.Equal(t, []string{"/data/a"}, v.GetStringSlice(KeyColormapDirs))
}

func TestRemoveDir_MissingDirErrors(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	err := RemoveDir(configPath, KeyColormapDirs, "/data/missing", []string{"/data/a"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "not configured")
}
