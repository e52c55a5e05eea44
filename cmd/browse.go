package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/browser"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse registered colorbars interactively",
	Long: `Open an interactive terminal browser over the registered colorbars.

The left pane lists records with their categories (or reference target);
the right pane previews the highlighted colorbar. Type / to filter,
q or esc to quit.`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	provider, err := newTracingProvider()
	if err != nil {
		return err
	}
	defer func() { _ = provider.Shutdown(ctx) }()

	cmaps, reg, err := buildRegistries(ctx, provider)
	if err != nil {
		return err
	}
	defer reg.Close()

	model := browser.New(reg, cmaps)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
