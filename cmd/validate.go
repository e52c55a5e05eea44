package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/colormap"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/registry"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/tracing"
)

var validateColormaps bool

var validateCmd = &cobra.Command{
	Use:   "validate [name...]",
	Short: "Validate registered colorbar records",
	Long: `Validate registered colorbar records against the schema.

With no arguments every registered record is checked, including
reference resolution. Validation reports all problems found rather
than stopping at the first one. The command exits non-zero when any
record is invalid.

Examples:
  pycolorbar validate
  pycolorbar validate precipitation temperature
  pycolorbar validate --colormaps`,
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

		ctx, span := provider.Tracer().Start(ctx, tracing.SpanValidate)
		defer span.End()
		span.SetAttributes(attribute.Int(tracing.AttrColorbarCount, len(args)))

		if validateColormaps {
			err = cmaps.Validate(ctx, args...)
		} else {
			err = reg.Validate(args...)
		}
		if err != nil {
			span.SetAttributes(attribute.Int(tracing.AttrValidationErrors, invalidCount(err)))
			span.AddEvent(tracing.EventErrorOccurred, trace.WithAttributes(
				attribute.String(tracing.AttrErrorMessage, err.Error()),
			))
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		span.SetAttributes(attribute.Int(tracing.AttrValidationErrors, 0))
		for _, name := range args {
			span.AddEvent(tracing.EventRecordValidated, trace.WithAttributes(
				attribute.String(tracing.AttrColorbarName, name),
			))
		}

		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "all records valid")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%d record(s) valid\n", len(args))
		}
		return nil
	},
}

// invalidCount extracts how many records failed from an aggregate
// validation error, falling back to 1 for any other failure.
func invalidCount(err error) int {
	var invalidRecords *registry.InvalidRecordsError
	if errors.As(err, &invalidRecords) {
		return len(invalidRecords.Names)
	}
	var invalidDefs *colormap.InvalidDefinitionsError
	if errors.As(err, &invalidDefs) {
		return len(invalidDefs.Names)
	}
	return 1
}

func init() {
	validateCmd.Flags().BoolVar(&validateColormaps, "colormaps", false, "validate colormap definitions instead of colorbars")
	rootCmd.AddCommand(validateCmd)
}
