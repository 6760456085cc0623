package svgmap

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/polymap/pkg/polygraph"
)

// Colors used when a polygon carries no annotation.
const (
	DefaultFill   = "#FFF"
	DefaultStroke = "#000"
)

// Corner marker colors.
var cornerColors = map[string]string{
	"coast": "#e0c068",
	"ocean": "#0b1470",
	"land":  "#35502c",
}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	strokeWidth float64
	background  string
	corners     bool
	sites       bool
}

// WithStrokeWidth sets the polygon outline width (default 1).
func WithStrokeWidth(w float64) SVGOption { return func(r *svgRenderer) { r.strokeWidth = w } }

// WithBackground fills the canvas behind the polygons.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithCorners marks every corner with a dot colored by its classification.
func WithCorners() SVGOption { return func(r *svgRenderer) { r.corners = true } }

// WithSites marks every polygon's site.
func WithSites() SVGOption { return func(r *svgRenderer) { r.sites = true } }

// RenderSVG draws the graph.
func RenderSVG(g *polygraph.Graph, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		g.Width, g.Height, g.Width, g.Height)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)
	}

	buf.WriteString(`  <g class="polygons">` + "\n")
	for _, p := range g.Polygons() {
		renderPolygon(&buf, p, r.strokeWidth)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="edges" stroke-linecap="round">` + "\n")
	for _, e := range g.Edges() {
		if e.IsAnnotated() {
			renderEdge(&buf, e)
		}
	}
	buf.WriteString("  </g>\n")

	if r.sites {
		buf.WriteString(`  <g class="sites" fill="#000">` + "\n")
		for _, p := range g.Polygons() {
			fmt.Fprintf(&buf, `    <circle cx="%.2f" cy="%.2f" r="1.5"/>`+"\n", p.Position.X, p.Position.Y)
		}
		buf.WriteString("  </g>\n")
	}
	if r.corners {
		buf.WriteString(`  <g class="corners">` + "\n")
		for _, c := range g.Corners() {
			fmt.Fprintf(&buf, `    <circle id="corner-%s" cx="%.2f" cy="%.2f" r="2" fill="%s"/>`+"\n",
				c.ID, c.Position.X, c.Position.Y, cornerColors[cornerClass(c)])
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{strokeWidth: 1}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderPolygon(buf *bytes.Buffer, p *polygraph.Polygon, width float64) {
	outline := p.Outline()
	if len(outline) < 3 {
		return
	}
	pts := make([]string, len(outline))
	for i, pt := range outline {
		pts[i] = fmt.Sprintf("%.2f,%.2f", pt.X, pt.Y)
	}
	fmt.Fprintf(buf, `    <polygon id="polygon-%d" points="%s" fill="%s" stroke="%s" stroke-width="%.2f"/>`+"\n",
		p.ID, strings.Join(pts, " "), orDefault(p.Fill, DefaultFill), orDefault(p.Stroke, DefaultStroke), width)
}

func renderEdge(buf *bytes.Buffer, e *polygraph.Edge) {
	thickness := e.Thickness
	if thickness <= 0 {
		thickness = 5
	}
	fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
		e.Start.Position.X, e.Start.Position.Y, e.End.Position.X, e.End.Position.Y, e.Stroke, thickness)
}

func cornerClass(c *polygraph.Corner) string {
	switch {
	case c.IsCoast:
		return "coast"
	case c.IsOcean:
		return "ocean"
	default:
		return "land"
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
