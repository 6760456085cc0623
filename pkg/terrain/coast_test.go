package terrain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/polymap/pkg/errors"
	"github.com/matzehuels/polymap/pkg/polygraph"
)

func TestClassifyCoastlineIsland(t *testing.T) {
	c := island(t)
	g := c.Graph

	assert.Equal(t, CoastStats{
		OceanPolygons: 16,
		LandPolygons:  9,
		CoastCorners:  12,
		OceanCorners:  20,
		LandCorners:   4,
	}, c.Stats)

	for _, p := range g.Polygons() {
		assert.Equal(t, p.IsBorder, p.IsOcean, "polygon %d", p.ID)
		if p.IsOcean {
			assert.Equal(t, OceanFill, p.Fill)
			assert.Equal(t, OceanStroke, p.Stroke)
		} else {
			assert.Empty(t, p.Fill)
		}
	}

	assert.True(t, cornerAt(t, g, 0, 0).IsOcean)
	assert.True(t, cornerAt(t, g, 1, 1).IsCoast)
	assert.True(t, cornerAt(t, g, 4, 2).IsCoast)
	assert.True(t, cornerAt(t, g, 2, 2).IsLand)
	assert.InDelta(t, 5.0/6, c.Options.Threshold, 1e-12)
	assert.Equal(t, DefaultCoastStep, c.Options.StepSize)
}

func TestClassifyCoastlineThreshold(t *testing.T) {
	tests := []struct {
		name      string
		jitter    float64 // uniform draw, offset is draw-0.5
		noise     float64
		wantOcean int
	}{
		// Site distances are 0.5, 1.5 and 2.5 for the three rings.
		{"no noise", 0.5, 0, 20},
		{"noise pulls coast inland", 0, 1, 32},
		{"noise pushes coast out", 1, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ClassifyCoastline(lattice(t, 6, 6),
				CoastOptions{Noise: tt.noise, Threshold: 1, StepSize: 2},
				UniformJitter{Src: &constSource{v: tt.jitter}})
			require.NoError(t, err)
			assert.Equal(t, tt.wantOcean, c.Stats.OceanPolygons)
			assert.Equal(t, 36-tt.wantOcean, c.Stats.LandPolygons)
		})
	}
}

func TestClassifyCoastlinePartition(t *testing.T) {
	e, _ := generated(t, 42)
	for _, k := range e.Graph.Corners() {
		n := 0
		for _, b := range []bool{k.IsCoast, k.IsOcean, k.IsLand} {
			if b {
				n++
			}
		}
		require.Equal(t, 1, n, "corner %s: coast=%v ocean=%v land=%v", k.ID, k.IsCoast, k.IsOcean, k.IsLand)
	}
	s := e.Stats
	assert.Positive(t, e.Classified.Stats.CoastCorners)
	assert.Equal(t, e.Graph.CornerCount(), s.Reached+s.Unreached)
}

func TestClassifyCoastlineDrawsOncePerPolygon(t *testing.T) {
	src := &constSource{v: 0.25}
	g := lattice(t, 4, 4)
	_, err := ClassifyCoastline(g, CoastOptions{Fill: true, Noise: 0}, UniformJitter{Src: src})
	require.NoError(t, err)
	assert.Equal(t, g.PolygonCount(), src.draws)
}

func TestClassifyCoastlineReclassifies(t *testing.T) {
	g := lattice(t, 5, 5)
	_, err := ClassifyCoastline(g, CoastOptions{Fill: true}, nil)
	require.NoError(t, err)

	c, err := ClassifyCoastline(g, CoastOptions{Threshold: -1}, nil)
	require.NoError(t, err)
	assert.Zero(t, c.Stats.OceanPolygons)
	for _, p := range g.Polygons() {
		assert.False(t, p.IsOcean)
		assert.Empty(t, p.Stroke)
	}
}

func TestClassifyCoastlineErrors(t *testing.T) {
	_, err := ClassifyCoastline(nil, CoastOptions{}, nil)
	assert.True(t, errors.Is(err, errors.ErrCodeGraphNotBuilt), "err = %v", err)

	_, err = ClassifyCoastline(lattice(t, 3, 3), CoastOptions{StepSize: -1}, nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "err = %v", err)
}

func TestSimplexJitter(t *testing.T) {
	e, _ := generated(t, 7)
	a := NewSimplexJitter(3, 0)
	b := NewSimplexJitter(3, DefaultSimplexFrequency)

	for _, p := range e.Graph.Polygons() {
		v := a.Offset(p)
		assert.GreaterOrEqual(t, v, -0.5)
		assert.Less(t, v, 0.5)
		assert.Equal(t, v, b.Offset(p), "same seed must give the same field")
	}
}

// flatNoise evaluates to the same value everywhere.
type flatNoise float64

func (n flatNoise) Eval2(x, y float64) float64 { return float64(n) }
func (n flatNoise) Eval3(x, y, z float64) float64 { return float64(n) }
func (n flatNoise) Eval4(x, y, z, w float64) float64 { return float64(n) }

func TestSimplexJitterClampsToHalfOpenRange(t *testing.T) {
	p := &polygraph.Polygon{}
	tests := []struct {
		noise float64
		want  float64
	}{
		{0, -0.5},
		{0.75, 0.25},
		{1, math.Nextafter(0.5, 0)},
		{1.2, math.Nextafter(0.5, 0)},
		{-0.3, -0.5},
	}
	for _, tt := range tests {
		j := &SimplexJitter{noise: flatNoise(tt.noise), frequency: 1}
		got := j.Offset(p)
		assert.Equal(t, tt.want, got, "noise %v", tt.noise)
		assert.Less(t, got, 0.5)
	}
}

func TestBorderDistance(t *testing.T) {
	g := lattice(t, 5, 3)
	tests := []struct {
		id   int
		want float64
	}{
		{0, 0.5},
		{6, 1.5},
		{7, 1.5},
		{14, 0.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BorderDistance(polygonAt(t, g, tt.id), g.Width, g.Height), "polygon %d", tt.id)
	}
}
