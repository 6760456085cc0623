// Package nodelink renders the polygon neighbor graph as a node-link diagram.
//
// # Overview
//
// Each polygon becomes a node pinned at its site and filled with its terrain
// color; each pair of neighboring polygons becomes an undirected edge. The
// result shows the dual of the map: the Delaunay-like graph the Voronoi cells
// were grown from.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Layout
//
// Node positions are pinned (pos="x,y!") and the neato engine is used, so
// Graphviz only routes edges and never moves a polygon.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
