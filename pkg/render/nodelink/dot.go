package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/polymap/pkg/errors"
	"github.com/matzehuels/polymap/pkg/polygraph"
	"github.com/matzehuels/polymap/pkg/render"
)

// pointsPerInch converts map units to Graphviz inches.
const pointsPerInch = 72.0

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the elevation and classification to node labels.
	// When false, only the polygon ID is shown.
	Detailed bool
}

// ToDOT converts the polygon neighbor graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Border polygons are drawn with dashed outlines.
func ToDOT(g *polygraph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=8, width=0.3, fixedsize=true];\n")
	buf.WriteString("  edge [color=\"#00000066\"];\n")
	buf.WriteString("\n")

	for _, p := range g.Polygons() {
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(p), strings.Join(fmtAttrs(p, g.Height, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, p := range g.Polygons() {
		for _, q := range p.NeighborList() {
			if q.ID > p.ID {
				fmt.Fprintf(&buf, "  %q -- %q;\n", nodeID(p), nodeID(q))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(p *polygraph.Polygon) string {
	return strconv.Itoa(p.ID)
}

func fmtLabel(p *polygraph.Polygon, detailed bool) string {
	if !detailed {
		return nodeID(p)
	}
	kind := "land"
	if p.IsOcean {
		kind = "ocean"
	}
	return fmt.Sprintf("%d\n%s\n%.1f", p.ID, kind, p.Elevation)
}

func fmtAttrs(p *polygraph.Polygon, height float64, detailed bool) []string {
	// Graphviz puts the origin at the bottom left.
	x := p.Position.X / pointsPerInch
	y := (height - p.Position.Y) / pointsPerInch
	attrs := []string{
		fmt.Sprintf("label=%q", fmtLabel(p, detailed)),
		fmt.Sprintf("pos=\"%.4f,%.4f!\"", x, y),
	}
	if p.Fill != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", p.Fill))
		if p.IsOcean {
			attrs = append(attrs, "fontcolor=white")
		}
	}
	if p.IsBorder {
		attrs = append(attrs, "style=\"filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using the neato engine.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
