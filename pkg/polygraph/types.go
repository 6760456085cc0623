package polygraph

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/matzehuels/polymap/pkg/geometry"
)

// keyScale quantizes coordinates to 1e-6 map units when folding vertices.
const keyScale = 1e6

// CornerKey identifies a Corner by its quantized coordinates. Vertices shared
// by neighboring cells map to the same key.
type CornerKey struct {
	X, Y int64
}

// KeyOf returns the key for a vertex position.
func KeyOf(p geometry.Point) CornerKey {
	return CornerKey{
		X: int64(math.Round(p.X * keyScale)),
		Y: int64(math.Round(p.Y * keyScale)),
	}
}

// String returns a stable "x,y" form, suitable as an element ID.
func (k CornerKey) String() string {
	return fmt.Sprintf("%d,%d", k.X, k.Y)
}

func (k CornerKey) less(o CornerKey) bool {
	if k.X != o.X {
		return k.X < o.X
	}
	return k.Y < o.Y
}

// EdgeKey identifies an Edge by its unordered pair of Corner keys.
type EdgeKey struct {
	A, B CornerKey
}

// MakeEdgeKey returns the same key for (a, b) and (b, a).
func MakeEdgeKey(a, b CornerKey) EdgeKey {
	if b.less(a) {
		a, b = b, a
	}
	return EdgeKey{A: a, B: b}
}

// Polygon is one Voronoi region, grown from a single site.
type Polygon struct {
	ID       int            // Site index in the source diagram
	Position geometry.Point // Site coordinate
	IsBorder bool           // Touches the map boundary
	IsOcean  bool           // Set by coastline classification

	Elevation float64 // Rolling average written by elevation propagation
	Fill      string  // Display fill color, empty until classified
	Stroke    string  // Display outline color, empty means default

	// Edges bounds the region in the solver's half-edge order.
	Edges []*Edge
	// Neighbors holds every polygon sharing an Edge with this one.
	Neighbors map[int]*Polygon

	// reversed[i] is true when Edges[i] runs End->Start for this polygon.
	reversed []bool
}

// Segment returns the i-th boundary edge oriented for this polygon.
func (p *Polygon) Segment(i int) (start, end *Corner) {
	e := p.Edges[i]
	if p.reversed[i] {
		return e.End, e.Start
	}
	return e.Start, e.End
}

// Outline returns the polygon's vertices in boundary order.
func (p *Polygon) Outline() []geometry.Point {
	pts := make([]geometry.Point, 0, len(p.Edges))
	for i := range p.Edges {
		start, _ := p.Segment(i)
		pts = append(pts, start.Position)
	}
	return pts
}

// NeighborList returns the neighbors ordered by ID.
func (p *Polygon) NeighborList() []*Polygon {
	return sortedPolygons(p.Neighbors)
}

// Corner is a distinct boundary vertex shared by one or more polygons.
type Corner struct {
	ID       CornerKey
	Position geometry.Point

	// Adjacent lists directly connected corners in insertion order, without
	// duplicates. The relation is symmetric.
	Adjacent []*Corner
	// Polygons holds every region touching this vertex.
	Polygons map[int]*Polygon

	// Exactly one of these is true once the coastline is classified.
	IsCoast bool
	IsOcean bool
	IsLand  bool

	Elevation float64
}

// PolygonList returns the incident polygons ordered by ID.
func (c *Corner) PolygonList() []*Polygon {
	return sortedPolygons(c.Polygons)
}

// IsAdjacent reports whether o is directly connected to c.
func (c *Corner) IsAdjacent(o *Corner) bool {
	return slices.Contains(c.Adjacent, o)
}

func (c *Corner) link(o *Corner) {
	if !c.IsAdjacent(o) {
		c.Adjacent = append(c.Adjacent, o)
	}
}

// Edge is a boundary segment between two corners. Start and End are
// non-owning references; the Graph owns every Corner.
type Edge struct {
	Start, End *Corner

	// Render annotations; empty unless the edge carries a river.
	Stroke    string
	Thickness float64
}

// Key returns the edge's direction-independent key.
func (e *Edge) Key() EdgeKey {
	return MakeEdgeKey(e.Start.ID, e.End.ID)
}

// IsAnnotated reports whether a stage marked this edge for rendering.
func (e *Edge) IsAnnotated() bool {
	return e.Stroke != ""
}

// Other returns the endpoint opposite c, or nil if c is not an endpoint.
func (e *Edge) Other(c *Corner) *Corner {
	switch c {
	case e.Start:
		return e.End
	case e.End:
		return e.Start
	}
	return nil
}

func sortedPolygons(m map[int]*Polygon) []*Polygon {
	out := make([]*Polygon, 0, len(m))
	for _, id := range slices.Sorted(maps.Keys(m)) {
		out = append(out, m[id])
	}
	return out
}
