package geometry

import (
	"fmt"
	"math"
	"slices"

	"github.com/pzsz/voronoi"

	"github.com/matzehuels/polymap/pkg/errors"
)

// NoSite marks the missing right-hand site of an edge that lies on the
// bounding box.
const NoSite = -1

// Point is a coordinate in map space. X grows to the right, Y grows down.
type Point struct {
	X, Y float64
}

// HalfEdge is one boundary segment of a cell, oriented for that cell.
type HalfEdge struct {
	Start, End Point
}

// Cell is a raw Voronoi region: the site it was grown from and its boundary
// segments in the solver's angular order.
type Cell struct {
	Site      Point
	HalfEdges []HalfEdge
}

// Edge is a raw boundary segment between two sites, or between one site and
// the bounding box (Right == NoSite).
type Edge struct {
	VA, VB Point
	Left   int
	Right  int
}

// IsBorder reports whether the edge lies on the map boundary.
func (e Edge) IsBorder() bool { return e.Right == NoSite }

// Diagram is the solver output for one relaxation run. Cell indices are the
// site identifiers referenced by Edge.Left and Edge.Right.
type Diagram struct {
	Width, Height float64
	Cells         []Cell
	Edges         []Edge
}

// Source is a uniform random source in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Compute scatters pointCount random sites over a width x height rectangle
// and runs iterations passes of Lloyd relaxation, returning the diagram of
// the final pass.
//
// Sites keep their full precision. Duplicate sites are dropped before each
// pass, so the returned diagram may hold fewer cells than pointCount.
func Compute(width, height float64, pointCount, iterations int, src Source) (*Diagram, error) {
	if err := errors.ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	if err := errors.ValidatePointCount(pointCount); err != nil {
		return nil, err
	}
	if err := errors.ValidateIterations(iterations); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "random source is required")
	}
	return Relax(RandomPoints(width, height, pointCount, src), width, height, iterations)
}

// RandomPoints draws n points uniformly inside the half-open rectangle
// [0, width) x [0, height).
func RandomPoints(width, height float64, n int, src Source) []Point {
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{X: src.Float64() * width, Y: src.Float64() * height}
	}
	return points
}

// Relax computes the diagram of points and re-centers every site on its
// cell centroid between passes. The last pass is returned unmodified.
//
// A solver failure on degenerate input is returned as INVALID_INPUT.
func Relax(points []Point, width, height float64, iterations int) (*Diagram, error) {
	if err := errors.ValidateIterations(iterations); err != nil {
		return nil, err
	}
	bbox := voronoi.NewBBox(0, width, 0, height)

	var d *Diagram
	for i := 0; i < iterations; i++ {
		vd, err := solve(dedupe(points), bbox)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err,
				"degenerate subdivision in pass %d of %d", i+1, iterations)
		}
		d = convert(vd, width, height)
		if i+1 < iterations {
			next := make([]Point, 0, len(d.Cells))
			for _, c := range d.Cells {
				if len(c.HalfEdges) == 0 {
					continue
				}
				next = append(next, Centroid(c))
			}
			points = next
		}
	}

	if len(d.Cells) < errors.MinPointCount {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"degenerate subdivision: %d cells from %d sites", len(d.Cells), len(points))
	}
	return d, nil
}

// Centroid is the arithmetic mean of a cell's boundary vertices (the start
// point of each half-edge), not its area centroid.
func Centroid(c Cell) Point {
	if len(c.HalfEdges) == 0 {
		return c.Site
	}
	var x, y float64
	for _, he := range c.HalfEdges {
		x += he.Start.X
		y += he.Start.Y
	}
	n := float64(len(c.HalfEdges))
	return Point{X: x / n, Y: y / n}
}

// solve runs the solver and turns a panic inside it into an error.
func solve(points []Point, bbox voronoi.BBox) (vd *voronoi.Diagram, err error) {
	defer func() {
		if r := recover(); r != nil {
			vd, err = nil, fmt.Errorf("voronoi: %v", r)
		}
	}()
	return voronoi.ComputeDiagram(toVertices(points), bbox, true), nil
}

// dedupe drops repeated sites, keeping the first occurrence.
func dedupe(points []Point) []Point {
	seen := make(map[Point]struct{}, len(points))
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// toVertices copies points into solver vertices; ComputeDiagram sorts its
// input in place.
func toVertices(points []Point) []voronoi.Vertex {
	sites := make([]voronoi.Vertex, len(points))
	for i, p := range points {
		sites[i] = voronoi.Vertex{X: p.X, Y: p.Y}
	}
	return sites
}

func convert(vd *voronoi.Diagram, width, height float64) *Diagram {
	index := make(map[*voronoi.Cell]int, len(vd.Cells))
	d := &Diagram{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, len(vd.Cells)),
	}
	for i, c := range vd.Cells {
		index[c] = i
		hes := make([]HalfEdge, 0, len(c.Halfedges))
		for _, he := range c.Halfedges {
			hes = append(hes, HalfEdge{
				Start: fromVertex(he.GetStartpoint()),
				End:   fromVertex(he.GetEndpoint()),
			})
		}
		d.Cells[i] = Cell{Site: fromVertex(c.Site), HalfEdges: hes}
	}

	d.Edges = make([]Edge, 0, len(vd.Edges))
	for _, e := range vd.Edges {
		if e.LeftCell == nil {
			continue
		}
		left, ok := index[e.LeftCell]
		if !ok {
			continue
		}
		right := NoSite
		if e.RightCell != nil {
			if r, ok := index[e.RightCell]; ok {
				right = r
			}
		}
		d.Edges = append(d.Edges, Edge{
			VA:    fromVertex(e.Va.Vertex),
			VB:    fromVertex(e.Vb.Vertex),
			Left:  left,
			Right: right,
		})
	}
	// Solver edges that were clipped away entirely keep NO_VERTEX endpoints.
	d.Edges = slices.DeleteFunc(d.Edges, func(e Edge) bool {
		return !finite(e.VA) || !finite(e.VB)
	})
	return d
}

func fromVertex(v voronoi.Vertex) Point { return Point{X: v.X, Y: v.Y} }

func finite(p Point) bool {
	return !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0) && !math.IsNaN(p.X) && !math.IsNaN(p.Y)
}
