package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/polymap/pkg/errors"
	"github.com/matzehuels/polymap/pkg/observability"
	"github.com/matzehuels/polymap/pkg/polygraph"
	"github.com/matzehuels/polymap/pkg/render/nodelink"
	"github.com/matzehuels/polymap/pkg/render/svgmap"
)

// Render generates output artifacts for a generated map in the requested
// formats. It records RenderTime on result.Stats.
func (r *Runner) Render(ctx context.Context, result *Result, opts Options) (map[string][]byte, error) {
	if result == nil || result.Graph == nil {
		return nil, errors.New(errors.ErrCodeGraphNotBuilt, "render: no generated map")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	var artifacts map[string][]byte
	err := r.stage(ctx, observability.StageRender, &result.Stats.RenderTime, func() (err error) {
		artifacts, err = RenderGraph(ctx, result.Graph, opts)
		return err
	})
	if err != nil {
		return nil, err
	}

	r.Logger.Info("rendered outputs",
		"view", opts.View,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)
	return artifacts, nil
}

// RenderGraph renders g for opts.View in every format of opts.Formats.
// Options must already carry defaults.
func RenderGraph(ctx context.Context, g *polygraph.Graph, opts Options) (map[string][]byte, error) {
	if opts.View == ViewNeighbors {
		return renderNeighbors(ctx, g, opts)
	}
	return renderMap(ctx, g, opts)
}

// renderMap generates filled terrain map outputs.
func renderMap(ctx context.Context, g *polygraph.Graph, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svgmap.RenderSVG(g, svgOpts...)
		case FormatPNG:
			data, err = svgmap.RenderPNG(ctx, g, svgmap.WithPNGSVGOptions(svgOpts...), svgmap.WithScale(opts.Scale))
		case FormatPDF:
			data, err = svgmap.RenderPDF(ctx, g, svgOpts...)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported map format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderNeighbors generates neighbor-graph outputs from a DOT string built on demand.
func renderNeighbors(ctx context.Context, g *polygraph.Graph, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed})
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported neighbors format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []svgmap.SVGOption {
	var svgOpts []svgmap.SVGOption
	if opts.Corners {
		svgOpts = append(svgOpts, svgmap.WithCorners())
	}
	if opts.Sites {
		svgOpts = append(svgOpts, svgmap.WithSites())
	}
	return svgOpts
}
