package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/config"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/log"
)

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config

	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "pycolorbar",
	Short: "Registry and validator for colorbar configurations",
	Long: `pycolorbar manages YAML-defined colorbar and colormap configurations.

Records are validated against a schema covering colormap settings, ten
normalization variants, and colorbar appearance, with reference records
that alias other entries. Registered colorbars can be listed, previewed
in the terminal, browsed interactively, and exported back to YAML.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runBrowse,
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/pycolorbar/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write a debug log (also via PYCOLORBAR_DEBUG=1)")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("overwrite", defaults.Overwrite)
	viper.SetDefault("ui.width", defaults.UI.Width)
	viper.SetDefault("ui.color_profile", defaults.UI.ColorProfile)
	viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .pycolorbar/config.yaml (current directory)
		// 2. ~/.config/pycolorbar/config.yaml (user config)
		if _, err := os.Stat(".pycolorbar/config.yaml"); err == nil {
			viper.SetConfigFile(".pycolorbar/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "pycolorbar"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create a commented default
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "pycolorbar", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func initLogging() {
	enabled := debug || cfg.Log.Enabled || os.Getenv("PYCOLORBAR_DEBUG") == "1"
	if !enabled {
		return
	}

	path := cfg.Log.Path
	if path == "" {
		path = config.DefaultLogFilePath()
	}
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot create log directory: %v\n", err)
		return
	}

	cleanup, err := log.Init(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot open debug log: %v\n", err)
		return
	}
	logCleanup = cleanup
	log.SetMinLevel(cfg.Log.MinLevel())
	log.Debug(log.CatConfig, "Logging initialized", "path", path, "config", viper.ConfigFileUsed())
}

// configFilePath returns the path used for config persistence.
func configFilePath() string {
	if path := viper.ConfigFileUsed(); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pycolorbar/config.yaml"
	}
	return filepath.Join(home, ".config", "pycolorbar", "config.yaml")
}

// Execute runs the root command
func Execute() error {
	defer func() {
		if logCleanup != nil {
			logCleanup()
		}
	}()
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
