package terrain

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/matzehuels/polymap/pkg/geometry"
	"github.com/matzehuels/polymap/pkg/polygraph"
)

// Jitter perturbs the distance test that decides whether a polygon is ocean.
// Offset returns a value in [-0.5, 0.5) which is scaled by the noise amplitude
// and step size before being added to the polygon's border distance.
type Jitter interface {
	Offset(p *polygraph.Polygon) float64
}

// UniformJitter draws an independent uniform offset for every polygon, which
// gives ragged, salt-and-pepper coastlines.
type UniformJitter struct {
	Src geometry.Source
}

// Offset implements [Jitter].
func (j UniformJitter) Offset(*polygraph.Polygon) float64 {
	return j.Src.Float64() - 0.5
}

// DefaultSimplexFrequency samples the noise field about once per 100 map units.
const DefaultSimplexFrequency = 0.01

// maxOffset is the largest float64 below 0.5, the open end of an offset.
var maxOffset = math.Nextafter(0.5, 0)

// SimplexJitter samples coherent OpenSimplex noise at each polygon's site, so
// neighboring polygons receive similar offsets and coastlines form bays and
// peninsulas instead of isolated specks.
type SimplexJitter struct {
	noise     opensimplex.Noise
	frequency float64
}

// NewSimplexJitter returns a jitter seeded with seed. A frequency of zero or
// less selects [DefaultSimplexFrequency].
func NewSimplexJitter(seed int64, frequency float64) *SimplexJitter {
	if frequency <= 0 {
		frequency = DefaultSimplexFrequency
	}
	return &SimplexJitter{
		noise:     opensimplex.NewNormalized(seed),
		frequency: frequency,
	}
}

// Offset implements [Jitter].
func (j *SimplexJitter) Offset(p *polygraph.Polygon) float64 {
	v := j.noise.Eval2(p.Position.X*j.frequency, p.Position.Y*j.frequency) - 0.5
	return min(max(v, -0.5), maxOffset)
}
