// Package polygraph provides the canonical graph of a polygon map.
//
// # Overview
//
// A Voronoi diagram describes each region by its own boundary, so a vertex
// shared by three regions appears three times and a shared segment twice.
// [Build] folds that raw output into a single connected structure:
//
//   - [Polygon]: one per region, with its bounding edges and neighbors
//   - [Corner]: one per distinct vertex, with adjacent corners and the
//     polygons touching it
//   - [Edge]: one per unordered corner pair
//
// Corners are keyed by [CornerKey], a quantized coordinate pair, rather than
// by formatted coordinate strings. Edges are keyed by [EdgeKey], which is the
// same for both directions, so [Graph.Edge] finds a segment regardless of the
// order its endpoints are given in.
//
// # Basic Usage
//
//	g, err := polygraph.Generate(1000, 600, 200, 2, rng)
//	if err != nil {
//	    return err
//	}
//	for _, c := range g.Corners() {
//	    for _, n := range c.Adjacent {
//	        e, _ := g.EdgeBetween(c, n)
//	        _ = e
//	    }
//	}
//
// # Invariants
//
// A built graph satisfies the checks in [Graph.Validate]: neighbor and
// adjacency relations are symmetric and no corner pair has two edges.
// Later stages (see package terrain) only write attributes on the existing
// entities; nothing is added or removed once the graph is built.
//
// # Ordering
//
// Every accessor returns entities in a deterministic order (polygons by ID,
// corners and edges by creation), so algorithms whose results depend on
// visiting order are reproducible.
package polygraph
