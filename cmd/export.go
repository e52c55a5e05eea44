package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/tracing"
)

var (
	exportOutput string
	exportForce  bool
	exportSort   bool
)

var exportCmd = &cobra.Command{
	Use:   "export [name...]",
	Short: "Export colorbar records to a YAML file",
	Long: `Export registered colorbar records to a single YAML file.

With no arguments all records are exported. Records are written exactly
as registered: references stay references and are not resolved. The file
is written atomically and existing files are only replaced with --force.

Examples:
  pycolorbar export -o colorbars.yaml
  pycolorbar export precipitation temperature -o subset.yaml --sort`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		provider, err := newTracingProvider()
		if err != nil {
			return err
		}
		defer func() { _ = provider.Shutdown(ctx) }()

		_, reg, err := buildRegistries(ctx, provider)
		if err != nil {
			return err
		}
		defer reg.Close()

		_, span := provider.Tracer().Start(ctx, tracing.SpanExport)
		defer span.End()
		span.SetAttributes(
			attribute.String(tracing.AttrFilePath, exportOutput),
			attribute.Int(tracing.AttrColorbarCount, len(args)),
		)

		if err := reg.Export(exportOutput, args, exportForce, exportSort); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return err
		}

		count := len(args)
		if count == 0 {
			count = len(reg.Names())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d record(s) to %s\n", count, exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file path (required)")
	exportCmd.Flags().BoolVarP(&exportForce, "force", "f", false, "overwrite an existing file")
	exportCmd.Flags().BoolVar(&exportSort, "sort", false, "sort records by name instead of registration order")
	_ = exportCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(exportCmd)
}
