package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/materialize"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/tracing"
)

var showCmd = &cobra.Command{
	Use:   "show <name> [name...]",
	Short: "Render colorbar previews in the terminal",
	Long: `Render one or more registered colorbars as colored strips with tick
marks and labels. References are resolved before rendering.

The strip width and color profile follow the ui section of the config
file. Use --config or edit ui.color_profile to force a profile when
piping output.

Examples:
  pycolorbar show precipitation
  pycolorbar show temperature air_temperature`,
	Args: cobra.MinimumNArgs(1),
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

		renderer := newRenderer()

		for i, name := range args {
			ctx, span := provider.Tracer().Start(ctx, tracing.SpanRenderBar)
			span.SetAttributes(attribute.String(tracing.AttrColorbarName, name))

			if stored, err := reg.Get(name, false); err == nil && stored.IsReference() {
				span.AddEvent(tracing.EventReferenceResolved, trace.WithAttributes(
					attribute.String(tracing.AttrReferenceTarget, stored.Reference()),
				))
			}

			record, err := reg.GetRecord(name)
			if err != nil {
				span.SetStatus(codes.Error, err.Error())
				span.End()
				return err
			}

			readCtx, readSpan := provider.Tracer().Start(ctx, tracing.SpanColormapRead)
			readSpan.SetAttributes(attribute.String(tracing.AttrColormapName, strings.Join(record.Cmap.Names, ",")))
			params, err := materialize.Materialize(readCtx, record, cmaps)
			if err != nil {
				readSpan.SetStatus(codes.Error, err.Error())
				readSpan.End()
				span.SetStatus(codes.Error, err.Error())
				span.End()
				return fmt.Errorf("materializing %s: %w", name, err)
			}
			readSpan.SetAttributes(attribute.Int(tracing.AttrColormapSize, len(params.Cmap.Colors)))
			readSpan.End()

			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", name, renderer.Colorbar(params))
			span.End()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
