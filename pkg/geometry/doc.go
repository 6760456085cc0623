// Package geometry wraps the Voronoi solver used to seed a polygon map.
//
// The package is the only place that talks to the solver. It scatters random
// sites over the map rectangle, runs Lloyd relaxation (re-centering each site
// on the mean of its cell's vertices) and converts the final diagram into
// plain [Cell] and [Edge] values. Repeated sites are dropped before each pass
// and a solver panic on degenerate input is returned as an INVALID_INPUT
// error. Shared vertices are not deduplicated here; that is the job of the
// polygraph package.
//
// # Usage
//
//	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
//	d, err := geometry.Compute(1000, 600, 200, 2, rng)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(len(d.Cells), len(d.Edges))
//
// # Determinism
//
// The solver is deterministic, so a seeded [Source] reproduces the same
// diagram for the same parameters.
package geometry
