package terrain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/polymap/pkg/geometry"
	"github.com/matzehuels/polymap/pkg/polygraph"
)

// constSource returns the same uniform draw forever and counts how often it
// was asked.
type constSource struct {
	v     float64
	draws int
}

func (s *constSource) Float64() float64 {
	s.draws++
	return s.v
}

// seqSource replays a fixed sequence of polygon picks.
type seqSource struct {
	picks []int
	i     int
}

func (s *seqSource) Float64() float64 { return 0.5 }

func (s *seqSource) IntN(n int) int {
	v := s.picks[s.i%len(s.picks)] % n
	s.i++
	return v
}

func lattice(t *testing.T, nx, ny int) *polygraph.Graph {
	t.Helper()
	g, err := polygraph.Build(geometry.Lattice(nx, ny, 1))
	require.NoError(t, err)
	return g
}

// island is a 5x5 grid whose outer ring is ocean, leaving a 3x3 block of land
// with four land corners at (2,2), (3,2), (2,3) and (3,3).
func island(t *testing.T) *Classified {
	t.Helper()
	c, err := ClassifyCoastline(lattice(t, 5, 5), CoastOptions{Fill: true}, UniformJitter{Src: &constSource{v: 0.5}})
	require.NoError(t, err)
	return c
}

func elevatedIsland(t *testing.T) *Elevated {
	t.Helper()
	e, err := PropagateElevation(island(t), ElevationOptions{})
	require.NoError(t, err)
	return e
}

func cornerAt(t *testing.T, g *polygraph.Graph, x, y float64) *polygraph.Corner {
	t.Helper()
	c, ok := g.Corner(polygraph.KeyOf(geometry.Point{X: x, Y: y}))
	require.True(t, ok, "corner (%v,%v) missing", x, y)
	return c
}

func polygonAt(t *testing.T, g *polygraph.Graph, id int) *polygraph.Polygon {
	t.Helper()
	p, ok := g.Polygon(id)
	require.True(t, ok, "polygon %d missing", id)
	return p
}

// generated builds the reference map: 1000x600, 200 sites, two relaxation
// passes, a ragged coast and a 10-unit elevation step.
func generated(t *testing.T, seed uint64) (*Elevated, Source) {
	t.Helper()
	src := NewSource(seed)
	g, err := polygraph.Generate(1000, 600, 200, 2, src)
	require.NoError(t, err)
	c, err := ClassifyCoastline(g, CoastOptions{Fill: false, Noise: 1, Threshold: 166, StepSize: 20}, UniformJitter{Src: src})
	require.NoError(t, err)
	e, err := PropagateElevation(c, ElevationOptions{StepSize: 10})
	require.NoError(t, err)
	return e, src
}
