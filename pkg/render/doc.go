// Package render turns a generated polygon map into viewable artifacts.
//
// # Overview
//
// Renderers only read the graph through its public accessors; they never
// change it. This package provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Filled terrain maps (in [svgmap] subpackage)
//   - Polygon neighbor diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := svgmap.RenderSVG(g)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [svgmap]: github.com/matzehuels/polymap/pkg/render/svgmap
// [nodelink]: github.com/matzehuels/polymap/pkg/render/nodelink
package render
