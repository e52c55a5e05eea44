package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/log"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/tracing"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Revalidate colorbar directories on change",
	Long: `Watch the configured colorbar and colormap directories and reload the
registries whenever a YAML file changes. Each reload validates every
record and reports problems, making this a live lint loop while
editing definitions.

Stops on Ctrl-C. Requires colorbar_dirs or colormap_dirs in the config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dirs := append(append([]string{}, cfg.ColorbarDirs...), cfg.ColormapDirs...)
		if len(dirs) == 0 {
			return fmt.Errorf("no colorbar_dirs or colormap_dirs configured in %s", configFilePath())
		}

		ctx := context.Background()
		provider, err := newTracingProvider()
		if err != nil {
			return err
		}
		defer func() { _ = provider.Shutdown(ctx) }()

		wcfg := watcher.DefaultConfig(dirs...)
		if cfg.Watch.DebounceMs > 0 {
			wcfg.DebounceDur = time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
		}

		w, err := watcher.New(wcfg)
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		events, err := w.Start()
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		defer func() { _ = w.Stop() }()

		// Initial load
		reload(ctx, cmd, provider)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		fmt.Fprintf(cmd.OutOrStdout(), "watching %d directories (Ctrl-C to stop)\n", len(dirs))
		for {
			select {
			case <-events:
				log.Debug(log.CatWatcher, "Change detected, reloading registries")
				reload(ctx, cmd, provider)
			case <-sig:
				fmt.Fprintln(cmd.OutOrStdout(), "stopping")
				return nil
			}
		}
	},
}

// reload rebuilds the registries from scratch and reports validation
// problems. Failures do not end the watch loop; the next save gets
// another chance.
func reload(ctx context.Context, cmd *cobra.Command, provider *tracing.Provider) {
	cmaps, reg, err := buildRegistries(ctx, provider)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "reload failed: %v\n", err)
		return
	}
	defer reg.Close()

	if err := cmaps.Validate(ctx); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
		return
	}
	if err := reg.Validate(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d colorbars, %d colormaps valid\n",
		time.Now().Format("15:04:05"), len(reg.Names()), len(cmaps.Names()))
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
