// Package terrain turns a bare polygon graph into a landscape: oceans and
// coastlines, an elevation field that rises inland and deepens offshore, and
// rivers that run downhill to the sea.
//
// # Stages
//
// The stages must run in order, and each one returns a value that is the only
// way to obtain the next:
//
//	c, err := terrain.ClassifyCoastline(g, terrain.CoastOptions{Noise: 1}, terrain.UniformJitter{Src: src})
//	e, err := terrain.PropagateElevation(c, terrain.ElevationOptions{})
//	rivers, err := terrain.TraceRivers(e, terrain.RiverOptions{Count: 5}, src)
//
// Elevation therefore cannot be computed for a graph that has no coastline;
// a map without oceans is not supported.
//
// # Mutation
//
// All stages write their results into the graph itself (Polygon.IsOcean,
// Corner.Elevation, Edge.Stroke, fill colors). Re-running a stage overwrites
// the previous results. Stages are not safe for concurrent use on the same
// graph.
//
// # Determinism
//
// Randomness only enters through the [Source] and [Jitter] arguments. Given the
// same graph and a source with the same seed, every stage produces identical
// output.
package terrain
