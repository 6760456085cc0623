package terrain

import (
	stderrors "errors"
	"slices"

	"github.com/matzehuels/polymap/pkg/errors"
	"github.com/matzehuels/polymap/pkg/geometry"
	"github.com/matzehuels/polymap/pkg/polygraph"
)

// DefaultRiverThickness is the stroke width of river edges.
const DefaultRiverThickness = 5.0

// RiverOptions controls river tracing.
type RiverOptions struct {
	// Count is the number of rivers to trace.
	Count int
	// MaxSteps bounds a single walk. Zero selects the graph's corner count.
	MaxSteps int
	// Stroke and Thickness annotate every traversed edge. Zero values select
	// RiverStroke and DefaultRiverThickness.
	Stroke    string
	Thickness float64
}

func (o RiverOptions) withDefaults(g *polygraph.Graph) RiverOptions {
	if o.MaxSteps == 0 {
		o.MaxSteps = g.CornerCount()
	}
	if o.Stroke == "" {
		o.Stroke = RiverStroke
	}
	if o.Thickness == 0 {
		o.Thickness = DefaultRiverThickness
	}
	return o
}

// River is a downhill path of corners joined by canonical edges.
type River struct {
	Source    *polygraph.Polygon // Polygon the river was sampled from
	Corners   []*polygraph.Corner
	Edges     []*polygraph.Edge // Edges[i] joins Corners[i] and Corners[i+1]
	Stroke    string
	Thickness float64
}

// First returns the corner the river springs from.
func (r *River) First() *polygraph.Corner { return r.Corners[0] }

// Last returns the corner where the river reached the coast or the ocean.
func (r *River) Last() *polygraph.Corner { return r.Corners[len(r.Corners)-1] }

// Len returns the number of edges in the river.
func (r *River) Len() int { return len(r.Edges) }

// Points returns the corner positions along the river.
func (r *River) Points() []geometry.Point {
	pts := make([]geometry.Point, len(r.Corners))
	for i, c := range r.Corners {
		pts[i] = c.Position
	}
	return pts
}

func (r *River) append(c *polygraph.Corner, e *polygraph.Edge) {
	r.Corners = append(r.Corners, c)
	r.Edges = append(r.Edges, e)
}

// RiverSet is the outcome of [TraceRivers].
type RiverSet struct {
	Rivers []*River
	// Abandoned holds one entry per walk that hit MaxSteps. Those walks
	// left no annotations on the graph.
	Abandoned []*errors.BoundExceededError
}

// TraceRivers traces opts.Count rivers over the elevation field.
//
// Each river starts at the first boundary corner of a uniformly sampled land
// polygon whose first corner is itself land. Polygons failing either test are
// redrawn, so a polygon whose first corner lies on the coast is skipped too.
// This consumes more draws than resampling on ocean alone and yields a
// different sequence of sources for the same seed, but every traced river
// has at least one edge. From there it repeatedly steps
// to the adjacent corner with the strictly lowest elevation (the first one
// wins ties), marking the connecting edge with the river stroke, until it
// reaches a corner that is not land.
//
// A walk that takes more than MaxSteps steps is abandoned: its annotations
// are rolled back, a [errors.BoundExceededError] is recorded in the result,
// and tracing continues with the next river. A missing canonical edge between
// adjacent corners is fatal and returned as EDGE_NOT_FOUND.
func TraceRivers(e *Elevated, opts RiverOptions, src Source) (*RiverSet, error) {
	if e == nil || e.Classified == nil || e.Graph == nil {
		return nil, errors.New(errors.ErrCodeGraphNotBuilt, "rivers: elevation has not been propagated")
	}
	if opts.Count < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "river count must not be negative, got %d", opts.Count)
	}
	if opts.MaxSteps < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "river step limit must not be negative, got %d", opts.MaxSteps)
	}
	set := &RiverSet{}
	if opts.Count == 0 {
		return set, nil
	}
	if src == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "random source is required")
	}

	g := e.Graph
	opts = opts.withDefaults(g)
	polygons := g.Polygons()
	if !slices.ContainsFunc(polygons, isRiverSource) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "rivers: no land polygon has a land corner to start from")
	}

	for i := 0; i < opts.Count; i++ {
		p := polygons[src.IntN(len(polygons))]
		for !isRiverSource(p) {
			p = polygons[src.IntN(len(polygons))]
		}

		r, err := trace(g, p, opts)
		var bound *errors.BoundExceededError
		switch {
		case stderrors.As(err, &bound):
			set.Abandoned = append(set.Abandoned, bound)
		case err != nil:
			return nil, err
		default:
			set.Rivers = append(set.Rivers, r)
		}
	}
	return set, nil
}

func isRiverSource(p *polygraph.Polygon) bool {
	if p.IsOcean || len(p.Edges) == 0 {
		return false
	}
	start, _ := p.Segment(0)
	return start.IsLand
}

// LowestNeighbor returns the adjacent corner with the strictly lowest
// elevation, preferring the earliest in c.Adjacent on ties.
func LowestNeighbor(c *polygraph.Corner) *polygraph.Corner {
	if len(c.Adjacent) == 0 {
		return nil
	}
	low := c.Adjacent[0]
	for _, n := range c.Adjacent[1:] {
		if n.Elevation < low.Elevation {
			low = n
		}
	}
	return low
}

type edgeStyle struct {
	stroke    string
	thickness float64
}

func trace(g *polygraph.Graph, p *polygraph.Polygon, opts RiverOptions) (*River, error) {
	start, _ := p.Segment(0)
	r := &River{
		Source:    p,
		Corners:   []*polygraph.Corner{start},
		Stroke:    opts.Stroke,
		Thickness: opts.Thickness,
	}

	prior := make(map[*polygraph.Edge]edgeStyle)
	cur := start
	for steps := 0; cur.IsLand; steps++ {
		if steps == opts.MaxSteps {
			for edge, s := range prior {
				edge.Stroke, edge.Thickness = s.stroke, s.thickness
			}
			return nil, &errors.BoundExceededError{Steps: steps, Walk: "river"}
		}
		next := LowestNeighbor(cur)
		if next == nil {
			return nil, errors.New(errors.ErrCodeInternal, "land corner %s has no adjacent corners", cur.ID)
		}
		edge, ok := g.EdgeBetween(cur, next)
		if !ok {
			return nil, errors.New(errors.ErrCodeEdgeNotFound, "no edge between adjacent corners %s and %s", cur.ID, next.ID)
		}
		if _, ok := prior[edge]; !ok {
			prior[edge] = edgeStyle{edge.Stroke, edge.Thickness}
		}
		edge.Stroke, edge.Thickness = opts.Stroke, opts.Thickness
		r.append(next, edge)
		cur = next
	}
	return r, nil
}
