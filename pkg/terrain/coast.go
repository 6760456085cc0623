package terrain

import (
	"math"

	"github.com/matzehuels/polymap/pkg/errors"
	"github.com/matzehuels/polymap/pkg/polygraph"
)

// DefaultCoastStep scales the jitter offset when CoastOptions.StepSize is zero.
const DefaultCoastStep = 20.0

// CoastOptions controls coastline classification.
type CoastOptions struct {
	// Fill forces every border polygon to be ocean, so the map becomes an
	// island surrounded by water.
	Fill bool
	// Noise is the jitter amplitude. Zero gives a rectangular coastline.
	Noise float64
	// Threshold is the border distance below which a polygon is ocean.
	// Zero selects a sixth of the map width.
	Threshold float64
	// StepSize scales the jitter. Zero selects DefaultCoastStep.
	StepSize float64
}

func (o CoastOptions) withDefaults(width float64) CoastOptions {
	if o.Threshold == 0 {
		o.Threshold = width / 6
	}
	if o.StepSize == 0 {
		o.StepSize = DefaultCoastStep
	}
	return o
}

func (o CoastOptions) validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{{"noise", o.Noise}, {"threshold", o.Threshold}, {"step size", o.StepSize}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errors.New(errors.ErrCodeInvalidInput, "coast %s must be finite, got %v", f.name, f.v)
		}
	}
	if o.StepSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "coast step size must not be negative, got %v", o.StepSize)
	}
	return nil
}

// CoastStats counts the classification result.
type CoastStats struct {
	OceanPolygons int
	LandPolygons  int
	CoastCorners  int
	OceanCorners  int
	LandCorners   int
}

// Classified is a graph whose polygons and corners have been labeled ocean,
// land or coast. It is the only input [PropagateElevation] accepts.
type Classified struct {
	Graph   *polygraph.Graph
	Options CoastOptions // with defaults applied
	Stats   CoastStats
}

// BorderDistance returns the distance from the polygon's site to the nearest
// side of the map.
func BorderDistance(p *polygraph.Polygon, width, height float64) float64 {
	return min(p.Position.X, width-p.Position.X, p.Position.Y, height-p.Position.Y)
}

// ClassifyCoastline labels every polygon as ocean or land and every corner as
// ocean, land or coast.
//
// A polygon is ocean when opts.Fill is set and it touches the map border, or
// when its border distance plus Noise*StepSize*jitter falls below Threshold.
// Ocean polygons get [OceanFill] and [OceanStroke]. Jitter is consulted once
// per polygon, in ID order, regardless of Fill or Noise. A nil jitter adds no
// offset.
//
// A corner is coast if it touches both kinds of polygon, ocean if it touches
// only ocean, and land if it touches only land.
func ClassifyCoastline(g *polygraph.Graph, opts CoastOptions, jitter Jitter) (*Classified, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeGraphNotBuilt, "coastline: graph has not been built")
	}
	opts = opts.withDefaults(g.Width)
	if err := opts.validate(); err != nil {
		return nil, err
	}

	c := &Classified{Graph: g, Options: opts}
	for _, p := range g.Polygons() {
		offset := 0.0
		if jitter != nil {
			offset = jitter.Offset(p)
		}
		d := BorderDistance(p, g.Width, g.Height)
		p.IsOcean = (opts.Fill && p.IsBorder) || d+offset*opts.Noise*opts.StepSize < opts.Threshold
		if p.IsOcean {
			p.Fill, p.Stroke = OceanFill, OceanStroke
			c.Stats.OceanPolygons++
		} else {
			p.Fill, p.Stroke = "", ""
			c.Stats.LandPolygons++
		}
	}

	for _, k := range g.Corners() {
		var hasOcean, hasLand bool
		for _, p := range k.Polygons {
			if p.IsOcean {
				hasOcean = true
			} else {
				hasLand = true
			}
		}
		k.IsCoast = hasOcean && hasLand
		k.IsOcean = hasOcean && !hasLand
		k.IsLand = hasLand && !hasOcean
		switch {
		case k.IsCoast:
			c.Stats.CoastCorners++
		case k.IsOcean:
			c.Stats.OceanCorners++
		default:
			c.Stats.LandCorners++
		}
	}
	return c, nil
}
