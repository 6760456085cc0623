package svgmap

import (
	"context"

	"github.com/matzehuels/polymap/pkg/polygraph"
	"github.com/matzehuels/polymap/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG renders the map as PNG via SVG conversion.
func RenderPNG(ctx context.Context, g *polygraph.Graph, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	return render.ToPNG(ctx, RenderSVG(g, r.svgOpts...), r.scale)
}

// RenderPDF renders the map as PDF via SVG conversion.
func RenderPDF(ctx context.Context, g *polygraph.Graph, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(g, opts...))
}
