package polygraph

import (
	"cmp"
	"slices"

	"github.com/matzehuels/polymap/pkg/errors"
	"github.com/matzehuels/polymap/pkg/geometry"
)

// Generate scatters pointCount sites over the map, relaxes them iterations
// times and builds the canonical graph from the result.
func Generate(width, height float64, pointCount, iterations int, src geometry.Source) (*Graph, error) {
	d, err := geometry.Compute(width, height, pointCount, iterations, src)
	if err != nil {
		return nil, err
	}
	return Build(d)
}

// Build converts a raw diagram into the canonical graph in a single pass over
// its edges:
//
//  1. Polygons are created on first reference to their site, copying the
//     site position and the cell's boundary.
//  2. Both sites of an interior edge become mutual neighbors; the lone site
//     of a bounding-box edge is flagged as a border polygon.
//  3. Endpoints are folded into Corners by [KeyOf], linked to each other and
//     to the incident polygons.
//  4. One canonical Edge is created per unordered corner pair.
//
// Each polygon's boundary is then rewritten from raw coordinates into
// references to the canonical edges.
func Build(d *geometry.Diagram) (*Graph, error) {
	if d == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "diagram is required")
	}
	if err := errors.ValidateDimensions(d.Width, d.Height); err != nil {
		return nil, err
	}

	b := &builder{g: newGraph(d.Width, d.Height), cells: d.Cells}
	for i, e := range d.Edges {
		if err := b.addEdge(e); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "raw edge %d", i)
		}
	}
	if err := b.resolveBoundaries(); err != nil {
		return nil, err
	}

	g := b.g
	slices.SortFunc(g.polygons, func(a, b *Polygon) int { return cmp.Compare(a.ID, b.ID) })
	if len(g.polygons) < errors.MinPointCount {
		return nil, errors.New(errors.ErrCodeInvalidInput, "degenerate diagram: %d polygons", len(g.polygons))
	}
	return g, nil
}

type builder struct {
	g     *Graph
	cells []geometry.Cell
}

func (b *builder) addEdge(e geometry.Edge) error {
	left, err := b.polygon(e.Left)
	if err != nil {
		return err
	}
	var right *Polygon
	if !e.IsBorder() {
		if right, err = b.polygon(e.Right); err != nil {
			return err
		}
	}

	if right != nil {
		left.Neighbors[right.ID] = right
		right.Neighbors[left.ID] = left
	} else {
		left.IsBorder = true
	}

	ca := b.corner(e.VA)
	cb := b.corner(e.VB)
	for _, c := range []*Corner{ca, cb} {
		c.Polygons[left.ID] = left
		if right != nil {
			c.Polygons[right.ID] = right
		}
	}

	// Endpoints that fold onto one corner carry no segment.
	if ca == cb {
		return nil
	}
	ca.link(cb)
	cb.link(ca)
	b.edge(ca, cb)
	return nil
}

func (b *builder) polygon(id int) (*Polygon, error) {
	if p, ok := b.g.polygonIndex[id]; ok {
		return p, nil
	}
	if id < 0 || id >= len(b.cells) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "site %d out of range (%d cells)", id, len(b.cells))
	}
	p := &Polygon{
		ID:        id,
		Position:  b.cells[id].Site,
		Neighbors: make(map[int]*Polygon),
	}
	b.g.polygonIndex[id] = p
	b.g.polygons = append(b.g.polygons, p)
	return p, nil
}

func (b *builder) corner(pos geometry.Point) *Corner {
	k := KeyOf(pos)
	if c, ok := b.g.cornerIndex[k]; ok {
		return c
	}
	c := &Corner{
		ID:       k,
		Position: pos,
		Polygons: make(map[int]*Polygon),
	}
	b.g.cornerIndex[k] = c
	b.g.corners = append(b.g.corners, c)
	return c
}

func (b *builder) edge(start, end *Corner) *Edge {
	k := MakeEdgeKey(start.ID, end.ID)
	if e, ok := b.g.edgeIndex[k]; ok {
		return e
	}
	e := &Edge{Start: start, End: end}
	b.g.edgeIndex[k] = e
	b.g.edges = append(b.g.edges, e)
	return e
}

// resolveBoundaries replaces each polygon's raw half-edges with the canonical
// edges created from the diagram's edge list.
func (b *builder) resolveBoundaries() error {
	for _, p := range b.g.polygons {
		hes := b.cells[p.ID].HalfEdges
		p.Edges = make([]*Edge, 0, len(hes))
		p.reversed = make([]bool, 0, len(hes))
		for _, he := range hes {
			ks, ke := KeyOf(he.Start), KeyOf(he.End)
			if ks == ke {
				continue
			}
			e, ok := b.g.Edge(ks, ke)
			if !ok {
				return errors.New(errors.ErrCodeInternal,
					"polygon %d: boundary segment %s-%s has no canonical edge", p.ID, ks, ke)
			}
			p.Edges = append(p.Edges, e)
			p.reversed = append(p.reversed, e.Start.ID != ks)
		}
	}
	return nil
}
