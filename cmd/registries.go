package cmd

import (
	"context"
	"fmt"

	"github.com/muesli/termenv"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/EPFL-ENAC/lte-pycolorbar/internal/assets"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/colormap"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/config"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/log"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/registry"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/render"
	"github.com/EPFL-ENAC/lte-pycolorbar/internal/tracing"
)

// buildRegistries assembles the colormap and colorbar registries from the
// embedded defaults plus any user-configured directories. User directories
// only shadow embedded names when the overwrite option is set.
func buildRegistries(ctx context.Context, provider *tracing.Provider) (*colormap.Registry, *registry.Registry, error) {
	_, span := provider.Tracer().Start(ctx, tracing.SpanRegisterDir)
	defer span.End()

	cmaps := colormap.NewRegistry()
	reg := registry.New(cmaps)

	if err := assets.RegisterDefaults(cmaps, reg); err != nil {
		reg.Close()
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, fmt.Errorf("loading embedded defaults: %w", err)
	}

	for _, dir := range cfg.ColormapDirs {
		names, err := cmaps.RegisterDir(dir, cfg.Overwrite)
		if err != nil {
			reg.Close()
			span.SetStatus(codes.Error, err.Error())
			return nil, nil, fmt.Errorf("registering colormap directory %s: %w", dir, err)
		}
		log.Info(log.CatColormap, "Registered colormap directory", "dir", dir, "count", len(names))
	}

	for _, dir := range cfg.ColorbarDirs {
		names, err := reg.RegisterDir(dir, cfg.Overwrite)
		if err != nil {
			reg.Close()
			span.SetStatus(codes.Error, err.Error())
			return nil, nil, fmt.Errorf("registering colorbar directory %s: %w", dir, err)
		}
		log.Info(log.CatRegistry, "Registered colorbar directory", "dir", dir, "count", len(names))
	}

	span.SetAttributes(
		attribute.Int(tracing.AttrColorbarCount, len(reg.Names())),
		attribute.Int(tracing.AttrFileCount, len(cfg.ColorbarDirs)+len(cfg.ColormapDirs)),
	)
	return cmaps, reg, nil
}

// newTracingProvider builds the trace provider from config, filling in the
// default trace file path when the file exporter is selected without one.
func newTracingProvider() (*tracing.Provider, error) {
	tc := cfg.Tracing
	if tc.Enabled && tc.Exporter == "file" && tc.FilePath == "" {
		tc.FilePath = config.DefaultTracesFilePath()
	}
	if err := config.ValidateTracing(tc); err != nil {
		return nil, err
	}
	return tracing.NewProvider(tc)
}

// newRenderer builds a colorbar renderer honoring the configured width and
// color profile.
func newRenderer() *render.Renderer {
	r := render.New(cfg.UI.Width)
	switch cfg.UI.ColorProfile {
	case "truecolor":
		r = r.WithProfile(termenv.TrueColor)
	case "ansi256":
		r = r.WithProfile(termenv.ANSI256)
	case "ansi":
		r = r.WithProfile(termenv.ANSI)
	case "ascii":
		r = r.WithProfile(termenv.Ascii)
	default:
		// "auto" and unset detect from the terminal
		r = r.WithProfile(termenv.ColorProfile())
	}
	return r
}
