package polygraph

import (
	"github.com/matzehuels/polymap/pkg/errors"
)

// Graph is the canonical polygon map: deduplicated corners, one Edge per
// unordered corner pair, and symmetric adjacency for polygons and corners.
//
// The zero value is not usable - use [Build] or [Generate].
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	Width, Height float64

	polygons     []*Polygon // ordered by ID
	polygonIndex map[int]*Polygon
	corners      []*Corner // creation order
	cornerIndex  map[CornerKey]*Corner
	edges        []*Edge // creation order
	edgeIndex    map[EdgeKey]*Edge
}

func newGraph(width, height float64) *Graph {
	return &Graph{
		Width:        width,
		Height:       height,
		polygonIndex: make(map[int]*Polygon),
		cornerIndex:  make(map[CornerKey]*Corner),
		edgeIndex:    make(map[EdgeKey]*Edge),
	}
}

// Polygons returns all polygons ordered by ID.
func (g *Graph) Polygons() []*Polygon { return g.polygons }

// Corners returns all corners in creation order.
func (g *Graph) Corners() []*Corner { return g.corners }

// Edges returns all canonical edges in creation order.
func (g *Graph) Edges() []*Edge { return g.edges }

// PolygonCount returns the number of polygons.
func (g *Graph) PolygonCount() int { return len(g.polygons) }

// CornerCount returns the number of corners.
func (g *Graph) CornerCount() int { return len(g.corners) }

// EdgeCount returns the number of canonical edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Polygon returns the polygon with the given ID.
func (g *Graph) Polygon(id int) (*Polygon, bool) {
	p, ok := g.polygonIndex[id]
	return p, ok
}

// Corner returns the corner with the given key.
func (g *Graph) Corner(k CornerKey) (*Corner, bool) {
	c, ok := g.cornerIndex[k]
	return c, ok
}

// Edge returns the canonical edge between two corners, in either direction.
func (g *Graph) Edge(a, b CornerKey) (*Edge, bool) {
	e, ok := g.edgeIndex[MakeEdgeKey(a, b)]
	return e, ok
}

// EdgeBetween is [Graph.Edge] for corner values.
func (g *Graph) EdgeBetween(a, b *Corner) (*Edge, bool) {
	return g.Edge(a.ID, b.ID)
}

// Validate checks the structural invariants of the graph:
//   - Polygon neighbor maps are symmetric
//   - Corner adjacency is symmetric and every adjacent pair has an Edge
//   - Each unordered corner pair has at most one Edge
//   - Polygon boundaries reference only canonical edges
//
// A graph returned by [Build] always validates; a failure indicates
// corruption and is reported as an internal error.
func (g *Graph) Validate() error {
	for _, p := range g.polygons {
		for id, q := range p.Neighbors {
			if q.ID != id {
				return errors.New(errors.ErrCodeInternal, "polygon %d: neighbor %d filed under %d", p.ID, q.ID, id)
			}
			if q.Neighbors[p.ID] != p {
				return errors.New(errors.ErrCodeInternal, "polygon %d lists %d as neighbor but not vice versa", p.ID, q.ID)
			}
		}
		for _, e := range p.Edges {
			if g.edgeIndex[e.Key()] != e {
				return errors.New(errors.ErrCodeInternal, "polygon %d references a non-canonical edge %v", p.ID, e.Key())
			}
		}
	}

	for _, a := range g.corners {
		for _, b := range a.Adjacent {
			if !b.IsAdjacent(a) {
				return errors.New(errors.ErrCodeInternal, "corner %s lists %s as adjacent but not vice versa", a.ID, b.ID)
			}
			if _, ok := g.EdgeBetween(a, b); !ok {
				return errors.New(errors.ErrCodeEdgeNotFound, "no edge between adjacent corners %s and %s", a.ID, b.ID)
			}
		}
	}

	if len(g.edges) != len(g.edgeIndex) {
		return errors.New(errors.ErrCodeInternal, "%d edges but %d distinct corner pairs", len(g.edges), len(g.edgeIndex))
	}
	for _, e := range g.edges {
		if g.edgeIndex[e.Key()] != e {
			return errors.New(errors.ErrCodeInternal, "duplicate edge for %v", e.Key())
		}
	}
	return nil
}
