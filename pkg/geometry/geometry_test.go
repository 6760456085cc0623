package geometry

import (
	"fmt"
	"math"
	"math/rand/v2"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/polymap/pkg/errors"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func TestComputeRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		points, iters int
		src           Source
	}{
		{"zero width", 0, 600, 200, 2, newRand(1)},
		{"negative height", 1000, -600, 200, 2, newRand(1)},
		{"too few points", 1000, 600, 2, 2, newRand(1)},
		{"no iterations", 1000, 600, 200, 0, newRand(1)},
		{"nil source", 1000, 600, 200, 2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.width, tt.height, tt.points, tt.iters, tt.src)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Compute() error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestComputeDiagram(t *testing.T) {
	d, err := Compute(1000, 600, 200, 2, newRand(42))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if len(d.Cells) < 3 || len(d.Cells) > 200 {
		t.Fatalf("cells = %d, want 3..200", len(d.Cells))
	}
	if d.Width != 1000 || d.Height != 600 {
		t.Errorf("bounds = %vx%v, want 1000x600", d.Width, d.Height)
	}

	const eps = 1e-6
	var border int
	for i, e := range d.Edges {
		if e.Left < 0 || e.Left >= len(d.Cells) {
			t.Fatalf("edge %d: left site %d out of range", i, e.Left)
		}
		if e.Right != NoSite && (e.Right < 0 || e.Right >= len(d.Cells)) {
			t.Fatalf("edge %d: right site %d out of range", i, e.Right)
		}
		if e.IsBorder() {
			border++
		}
		for _, p := range []Point{e.VA, e.VB} {
			if p.X < -eps || p.X > 1000+eps || p.Y < -eps || p.Y > 600+eps {
				t.Fatalf("edge %d: vertex %v outside the map", i, p)
			}
		}
	}
	if border == 0 {
		t.Error("expected at least one border edge")
	}
	for i, c := range d.Cells {
		if len(c.HalfEdges) < 3 {
			t.Errorf("cell %d has %d half-edges, want a closed polygon", i, len(c.HalfEdges))
		}
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	a, err := Compute(400, 300, 60, 3, newRand(7))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	b, err := Compute(400, 300, 60, 3, newRand(7))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different diagrams")
	}
}

func TestRelaxDoesNotMutateInput(t *testing.T) {
	points := []Point{{10, 10}, {90, 20}, {50, 80}, {20, 60}}
	orig := append([]Point(nil), points...)

	if _, err := Relax(points, 100, 100, 3); err != nil {
		t.Fatalf("Relax() error = %v", err)
	}
	if !reflect.DeepEqual(points, orig) {
		t.Errorf("Relax() modified its input: %v", points)
	}
}

func TestRandomPointsInsideMap(t *testing.T) {
	var fractional int
	for _, p := range RandomPoints(1000, 600, 50, newRand(3)) {
		if p.X < 0 || p.X >= 1000 || p.Y < 0 || p.Y >= 600 {
			t.Fatalf("point %v outside the map", p)
		}
		if p.X != math.Trunc(p.X) || p.Y != math.Trunc(p.Y) {
			fractional++
		}
	}
	if fractional == 0 {
		t.Error("points should keep their fractional part")
	}
}

func TestComputeSeedSweep(t *testing.T) {
	failures := make(chan []string, 1)
	go func() {
		var out []string
		for seed := uint64(0); seed < 250; seed++ {
			d, err := Compute(1000, 600, 200, 2, newRand(seed))
			switch {
			case err != nil && !errors.Is(err, errors.ErrCodeInvalidInput):
				out = append(out, fmt.Sprintf("seed %d: error = %v", seed, err))
			case err == nil && len(d.Cells) < 3:
				out = append(out, fmt.Sprintf("seed %d: %d cells", seed, len(d.Cells)))
			}
		}
		failures <- out
	}()

	select {
	case out := <-failures:
		for _, f := range out {
			t.Error(f)
		}
	case <-time.After(time.Minute):
		t.Fatal("Compute did not finish for every seed")
	}
}

func TestRelaxDegenerateSites(t *testing.T) {
	points := []Point{{5, 5}, {5, 5}, {5, 5}, {5, 5}}
	_, err := Relax(points, 10, 10, 2)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Relax() error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestDedupe(t *testing.T) {
	got := dedupe([]Point{{1, 2}, {3, 4}, {1, 2}, {5, 6}, {3, 4}})
	want := []Point{{1, 2}, {3, 4}, {5, 6}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dedupe() = %v, want %v", got, want)
	}
}

func TestCentroid(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want Point
	}{
		{
			name: "square",
			cell: Cell{HalfEdges: []HalfEdge{
				{Start: Point{0, 0}, End: Point{2, 0}},
				{Start: Point{2, 0}, End: Point{2, 2}},
				{Start: Point{2, 2}, End: Point{0, 2}},
				{Start: Point{0, 2}, End: Point{0, 0}},
			}},
			want: Point{1, 1},
		},
		{
			name: "vertex mean not area centroid",
			cell: Cell{HalfEdges: []HalfEdge{
				{Start: Point{0, 0}, End: Point{3, 0}},
				{Start: Point{3, 0}, End: Point{0, 3}},
				{Start: Point{0, 3}, End: Point{0, 0}},
			}},
			want: Point{1, 1},
		},
		{
			name: "empty falls back to site",
			cell: Cell{Site: Point{4, 5}},
			want: Point{4, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Centroid(tt.cell); got != tt.want {
				t.Errorf("Centroid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLattice(t *testing.T) {
	d := Lattice(3, 2, 10)

	if len(d.Cells) != 6 {
		t.Fatalf("cells = %d, want 6", len(d.Cells))
	}
	// (ny+1)*nx horizontal sides plus (nx+1)*ny vertical sides.
	if len(d.Edges) != 3*3+4*2 {
		t.Fatalf("edges = %d, want %d", len(d.Edges), 3*3+4*2)
	}
	if d.Width != 30 || d.Height != 20 {
		t.Errorf("bounds = %vx%v, want 30x20", d.Width, d.Height)
	}

	var border int
	for _, e := range d.Edges {
		if e.IsBorder() {
			border++
		}
	}
	if border != 2*3+2*2 {
		t.Errorf("border edges = %d, want 10", border)
	}
	if got := Centroid(d.Cells[4]); got != d.Cells[4].Site {
		t.Errorf("centroid of cell 4 = %v, want its site %v", got, d.Cells[4].Site)
	}
}
