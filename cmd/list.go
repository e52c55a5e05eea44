package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/tracing"
)

var (
	listCategory          string
	listExcludeReferenced bool
	listColormaps         bool
	listIncludeReversed   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered colorbars or colormaps",
	Long: `List the names of registered colorbar records, one per line.

Use --category to keep only records tagged with a category in their
auxiliary metadata (case-insensitive). References inherit the categories
of the record they resolve to. Use --colormaps to list registered
colormap names instead.

Examples:
  pycolorbar list
  pycolorbar list --category precipitation
  pycolorbar list --exclude-referenced
  pycolorbar list --colormaps --include-reversed`,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		ctx, span := provider.Tracer().Start(ctx, tracing.SpanList)
		defer span.End()
		span.SetAttributes(attribute.String(tracing.AttrColorbarCategory, listCategory))

		var names []string
		if listColormaps {
			names = cmaps.Available(ctx, listCategory, listIncludeReversed)
		} else {
			names = reg.Available(listCategory, listExcludeReferenced)
		}
		span.SetAttributes(attribute.Int(tracing.AttrColorbarCount, len(names)))

		if len(names) == 0 {
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "only names tagged with this category")
	listCmd.Flags().BoolVar(&listExcludeReferenced, "exclude-referenced", false, "omit records that are targets of references")
	listCmd.Flags().BoolVar(&listColormaps, "colormaps", false, "list colormap names instead of colorbars")
	listCmd.Flags().BoolVar(&listIncludeReversed, "include-reversed", false, "include _r reversed variants (with --colormaps)")
	rootCmd.AddCommand(listCmd)
}
