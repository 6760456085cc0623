package terrain

import (
	"math"

	"github.com/matzehuels/polymap/pkg/errors"
	"github.com/matzehuels/polymap/pkg/polygraph"
)

// DefaultElevationStep is the rise per corner hop when
// ElevationOptions.StepSize is zero.
const DefaultElevationStep = 10.0

// ElevationOptions controls elevation propagation.
type ElevationOptions struct {
	// StepSize is added per hop inland and subtracted per hop offshore.
	StepSize float64
	// SeaLevel is the elevation assigned to every coast corner.
	SeaLevel float64
}

func (o ElevationOptions) withDefaults() ElevationOptions {
	if o.StepSize == 0 {
		o.StepSize = DefaultElevationStep
	}
	return o
}

// ElevationStats summarizes the propagated field.
type ElevationStats struct {
	Reached      int
	Unreached    int
	MinElevation float64
	MaxElevation float64
}

// Elevated is a classified graph carrying an elevation field. It is the only
// input [TraceRivers] accepts.
type Elevated struct {
	*Classified
	Options ElevationOptions // with defaults applied
	Stats   ElevationStats

	order     []*polygraph.Corner
	parent    map[*polygraph.Corner]*polygraph.Corner
	unreached []*polygraph.Corner
}

// Order returns the corners in the order the search visited them, coast
// corners first.
func (e *Elevated) Order() []*polygraph.Corner { return e.order }

// Parent returns the corner from which c was reached. Coast corners and
// unreached corners have no parent.
func (e *Elevated) Parent(c *polygraph.Corner) (*polygraph.Corner, bool) {
	p, ok := e.parent[c]
	return p, ok
}

// Unreached returns the corners with no path to any coast, for example those
// of a map that is entirely land or entirely ocean. They keep elevation zero.
func (e *Elevated) Unreached() []*polygraph.Corner { return e.unreached }

// PropagateElevation assigns elevations by breadth-first search outward from
// the coast.
//
// Coast corners are seeded at SeaLevel in graph order. Each dequeued corner
// folds its elevation into every incident polygon as a rolling average,
// (old + corner) / 2, so a polygon's final value leans toward the corners
// visited last. Each unvisited neighbor is then enqueued one step higher if it
// is a land corner or one step lower if it is an ocean corner.
//
// Once the queue drains every land polygon is filled from [LandPalette].
func PropagateElevation(c *Classified, opts ElevationOptions) (*Elevated, error) {
	if c == nil || c.Graph == nil {
		return nil, errors.New(errors.ErrCodeGraphNotBuilt, "elevation: coastline has not been classified")
	}
	opts = opts.withDefaults()
	for _, v := range []float64{opts.StepSize, opts.SeaLevel} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "elevation options must be finite, got step %v, sea level %v",
				opts.StepSize, opts.SeaLevel)
		}
	}

	g := c.Graph
	for _, k := range g.Corners() {
		k.Elevation = 0
	}
	for _, p := range g.Polygons() {
		p.Elevation = 0
	}

	e := &Elevated{
		Classified: c,
		Options:    opts,
		order:      make([]*polygraph.Corner, 0, g.CornerCount()),
		parent:     make(map[*polygraph.Corner]*polygraph.Corner, g.CornerCount()),
	}
	seen := make(map[*polygraph.Corner]bool, g.CornerCount())
	for _, k := range g.Corners() {
		if k.IsCoast {
			k.Elevation = opts.SeaLevel
			seen[k] = true
			e.order = append(e.order, k)
		}
	}

	// e.order doubles as the queue.
	for head := 0; head < len(e.order); head++ {
		cur := e.order[head]
		for _, p := range cur.PolygonList() {
			p.Elevation = (p.Elevation + cur.Elevation) / 2
		}
		for _, n := range cur.Adjacent {
			if seen[n] {
				continue
			}
			seen[n] = true
			e.parent[n] = cur
			if n.IsOcean {
				n.Elevation = cur.Elevation - opts.StepSize
			} else {
				n.Elevation = cur.Elevation + opts.StepSize
			}
			e.order = append(e.order, n)
		}
	}

	for _, k := range g.Corners() {
		if !seen[k] {
			e.unreached = append(e.unreached, k)
		}
	}
	for _, p := range g.Polygons() {
		if !p.IsOcean {
			p.Fill = LandFill(p.Elevation)
		}
	}

	e.Stats = ElevationStats{Reached: len(e.order), Unreached: len(e.unreached)}
	for i, k := range e.order {
		if i == 0 || k.Elevation < e.Stats.MinElevation {
			e.Stats.MinElevation = k.Elevation
		}
		if i == 0 || k.Elevation > e.Stats.MaxElevation {
			e.Stats.MaxElevation = k.Elevation
		}
	}
	return e, nil
}
