// Package svgmap draws a polygon map as a filled SVG.
//
// Every polygon is drawn with its Fill and Stroke annotations (white and black
// when a stage has not set them), then every annotated edge is drawn on top
// with its own stroke and thickness. Rivers therefore appear without the
// renderer knowing what a river is.
//
//	svg := svgmap.RenderSVG(g, svgmap.WithCorners())
//	png, err := svgmap.RenderPNG(ctx, g, svgmap.WithPNGSVGOptions(svgmap.WithSites()))
//
// Output is deterministic: polygons are written in ID order and edges in
// graph order.
package svgmap
