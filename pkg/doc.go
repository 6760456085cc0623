// Package pkg provides the public library for polymap: procedural polygon
// terrain maps built from relaxed Voronoi diagrams.
//
// # Overview
//
// A map is produced in five stages, each consuming the previous stage's
// output:
//
//  1. Geometry: scatter random sites and run Lloyd relaxation ([geometry])
//  2. Graph: fold the raw diagram into canonical polygons, corners and edges ([polygraph])
//  3. Coastline: split polygons into land and ocean, tag coast corners ([terrain])
//  4. Elevation: breadth-first rolling average outward from the coast ([terrain])
//  5. Rivers: greedy descent from random land corners to the coast ([terrain])
//
// The result can then be rendered as a filled polygon map or as a neighbor
// graph ([render/svgmap], [render/nodelink]).
//
// # Quick Start
//
//	src := terrain.NewSource(42)
//
//	// 1-2. Build the graph
//	g, _ := polygraph.Generate(1000, 600, 200, 2, src)
//
//	// 3. Classify the coastline
//	c, _ := terrain.ClassifyCoastline(g, terrain.CoastOptions{Fill: true, Noise: 1}, terrain.UniformJitter{Src: src})
//
//	// 4. Propagate elevation
//	e, _ := terrain.PropagateElevation(c, terrain.ElevationOptions{})
//
//	// 5. Trace rivers and render
//	terrain.TraceRivers(e, terrain.RiverOptions{Count: 5}, src)
//	svg := svgmap.RenderSVG(g)
//
// The [pipeline] package runs all stages with validated options and is what
// the CLI uses.
//
// # Main Packages
//
// [geometry] - Voronoi computation and Lloyd relaxation over a bounding box.
//
// [polygraph] - The canonical polygon graph with symmetric adjacency and one
// edge per unordered corner pair.
//
// [terrain] - Coastline classification, elevation propagation, river tracing
// and the land color palette.
//
// [render/svgmap] - SVG, PNG and PDF output of the filled map.
//
// [render/nodelink] - Polygon adjacency as a Graphviz graph.
//
// [pipeline] - End-to-end generation and rendering with lifecycle hooks.
//
// [config] - TOML configuration files.
//
// [geometry]: https://pkg.go.dev/github.com/matzehuels/polymap/pkg/geometry
// [polygraph]: https://pkg.go.dev/github.com/matzehuels/polymap/pkg/polygraph
// [terrain]: https://pkg.go.dev/github.com/matzehuels/polymap/pkg/terrain
// [render/svgmap]: https://pkg.go.dev/github.com/matzehuels/polymap/pkg/render/svgmap
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/polymap/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/polymap/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/polymap/pkg/config
package pkg
