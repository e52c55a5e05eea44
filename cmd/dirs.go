package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/config"
)

var dirsColormaps bool

var dirsCmd = &cobra.Command{
	Use:   "dirs",
	Short: "Manage configured colorbar and colormap directories",
	Long: `Manage the directories registered at startup.

Changes are written back to the config file, preserving comments and
other settings. Use --colormaps to operate on colormap_dirs instead of
colorbar_dirs.`,
}

var dirsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured directories",
	RunE: func(cmd *cobra.Command, args []string) error {
		dirs := cfg.ColorbarDirs
		if dirsColormaps {
			dirs = cfg.ColormapDirs
		}
		for _, dir := range dirs {
			fmt.Fprintln(cmd.OutOrStdout(), dir)
		}
		return nil
	},
}

var dirsAddCmd = &cobra.Command{
	Use:   "add <dir>",
	Short: "Add a directory to the config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		key, existing := dirsKey()
		if err := config.AddDir(configFilePath(), key, dir, existing); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added %s to %s\n", dir, key)
		return nil
	},
}

var dirsRemoveCmd = &cobra.Command{
	Use:   "remove <dir>",
	Short: "Remove a directory from the config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		key, existing := dirsKey()
		if err := config.RemoveDir(configFilePath(), key, dir, existing); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s from %s\n", dir, key)
		return nil
	},
}

func dirsKey() (string, []string) {
	if dirsColormaps {
		return config.KeyColormapDirs, cfg.ColormapDirs
	}
	return config.KeyColorbarDirs, cfg.ColorbarDirs
}

func init() {
	dirsCmd.PersistentFlags().BoolVar(&dirsColormaps, "colormaps", false, "operate on colormap_dirs instead of colorbar_dirs")
	dirsCmd.AddCommand(dirsListCmd, dirsAddCmd, dirsRemoveCmd)
	rootCmd.AddCommand(dirsCmd)
}
