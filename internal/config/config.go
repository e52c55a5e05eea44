// Package config provides configuration types and defaults for pycolorbar.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/log"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/tracing"
)

// Config holds all configuration options for pycolorbar.
type Config struct {
	// ColorbarDirs are directories of colorbar YAML files registered at startup.
	ColorbarDirs []string `mapstructure:"colorbar_dirs"`

	// ColormapDirs are directories of colormap YAML files registered at startup.
	ColormapDirs []string `mapstructure:"colormap_dirs"`

	// Overwrite allows user directories to shadow names already registered
	// from the embedded defaults.
	Overwrite bool `mapstructure:"overwrite"`

	UI      UIConfig       `mapstructure:"ui"`
	Watch   WatchConfig    `mapstructure:"watch"`
	Log     LogConfig      `mapstructure:"log"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// UIConfig holds terminal rendering configuration options.
type UIConfig struct {
	// Width is the character width of rendered colorbar strips.
	Width int `mapstructure:"width"`

	// ColorProfile forces a terminal color profile.
	// Valid values: "auto", "truecolor", "ansi256", "ansi", "ascii"
	// Default: "auto" (detect from terminal)
	ColorProfile string `mapstructure:"color_profile"`
}

// WatchConfig holds file watcher configuration options.
type WatchConfig struct {
	// DebounceMs is the quiet period after a filesystem event before the
	// registries are reloaded. Editors often emit bursts of writes.
	DebounceMs int `mapstructure:"debounce_ms"`
}

// LogConfig holds debug logging configuration options.
type LogConfig struct {
	// Enabled turns the debug log on. Equivalent to the --debug flag.
	Enabled bool `mapstructure:"enabled"`

	// Path is the log file location.
	// Default: ~/.config/pycolorbar/debug.log
	Path string `mapstructure:"path"`

	// Level is the minimum level written. "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
}

// MinLevel maps the configured level string to a log.Level.
// Unknown values fall back to debug.
func (l LogConfig) MinLevel() log.Level {
	switch l.Level {
	case "info":
		return log.LevelInfo
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelDebug
	}
}

// DefaultLogFilePath returns the default path for the debug log.
// Returns ~/.config/pycolorbar/debug.log or empty string if home dir unavailable.
func DefaultLogFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pycolorbar", "debug.log")
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/pycolorbar/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pycolorbar", "traces", "traces.jsonl")
}

// ValidateDirs checks that configured directories are non-empty strings.
// Missing directories are not an error here; registration reports them
// with full context.
func ValidateDirs(key string, dirs []string) error {
	for i, dir := range dirs {
		if dir == "" {
			return fmt.Errorf("%s[%d]: directory path must not be empty", key, i)
		}
	}
	return nil
}

// ValidateUI checks UI configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateUI(ui UIConfig) error {
	if ui.Width < 0 {
		return fmt.Errorf("ui.width must not be negative, got %d", ui.Width)
	}

	switch ui.ColorProfile {
	case "", "auto", "truecolor", "ansi256", "ansi", "ascii":
		// Valid
	default:
		return fmt.Errorf("ui.color_profile must be \"auto\", \"truecolor\", \"ansi256\", \"ansi\", or \"ascii\", got %q", ui.ColorProfile)
	}
	return nil
}

// ValidateWatch checks watcher configuration for errors.
func ValidateWatch(watch WatchConfig) error {
	if watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got %d", watch.DebounceMs)
	}
	return nil
}

// ValidateLog checks log configuration for errors.
func ValidateLog(lg LogConfig) error {
	switch lg.Level {
	case "", "debug", "info", "warn", "error":
		// Valid
	default:
		return fmt.Errorf("log.level must be \"debug\", \"info\", \"warn\", or \"error\", got %q", lg.Level)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tc tracing.Config) error {
	if tc.SampleRate < 0.0 || tc.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}

	switch tc.Exporter {
	case "", "none", "file", "stdout":
		// Valid
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", or \"stdout\", got %q", tc.Exporter)
	}

	// Only validate path requirements when tracing is enabled
	if tc.Enabled && tc.Exporter == "file" && tc.FilePath == "" {
		return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
	}

	return nil
}

// Validate checks the whole configuration for errors.
func (c Config) Validate() error {
	if err := ValidateDirs("colorbar_dirs", c.ColorbarDirs); err != nil {
		return err
	}
	if err := ValidateDirs("colormap_dirs", c.ColormapDirs); err != nil {
		return err
	}
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	if err := ValidateWatch(c.Watch); err != nil {
		return err
	}
	if err := ValidateLog(c.Log); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		ColorbarDirs: nil,
		ColormapDirs: nil,
		Overwrite:    false,
		UI: UIConfig{
			Width:        60,
			ColorProfile: "auto",
		},
		Watch: WatchConfig{
			DebounceMs: 250,
		},
		Log: LogConfig{
			Enabled: false,
			Path:    "", // Derived from config dir at runtime
			Level:   "debug",
		},
		Tracing: func() tracing.Config {
			tc := tracing.DefaultConfig()
			tc.FilePath = "" // Derived from config dir at runtime
			return tc
		}(),
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# pycolorbar Configuration

# Directories of colorbar YAML files registered at startup.
# Each file may hold one or more named colorbar records.
# colorbar_dirs:
#   - /path/to/colorbars

# Directories of colormap YAML files registered at startup.
# Each file defines one colormap named after the file.
# colormap_dirs:
#   - /path/to/colormaps

# Allow user directories to overwrite names registered from the
# embedded defaults (default: false)
overwrite: false

# Terminal rendering settings
ui:
  width: 60            # Character width of rendered colorbar strips
  color_profile: auto  # auto, truecolor, ansi256, ansi, or ascii

# Watch mode settings (pycolorbar watch)
watch:
  debounce_ms: 250  # Quiet period after a file change before reloading

# Debug logging
# log:
#   enabled: true
#   path: ~/.config/pycolorbar/debug.log
#   level: debug  # debug, info, warn, or error

# Tracing configuration
# Records spans for registration, validation, and export operations
# tracing:
#   enabled: false    # Enable/disable tracing (default: false)
#   exporter: file    # Export backend: none, file, stdout (default: file)
#   file_path: ~/.config/pycolorbar/traces/traces.jsonl
#   sample_rate: 1.0  # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
