package geometry

// Lattice returns the diagram of an nx x ny grid of square cells with the
// given side length. Every cell is a Voronoi region of its center, so the
// result is a valid diagram with exactly known topology.
//
// Cell (i, j) has index j*nx+i. Its half-edges run top, right, bottom, left,
// starting at the top-left vertex. Edges are emitted cell by cell in row-major
// order: the top and left side of each cell, then the right side of the last
// column and the bottom side of the last row.
func Lattice(nx, ny int, size float64) *Diagram {
	d := &Diagram{
		Width:  float64(nx) * size,
		Height: float64(ny) * size,
		Cells:  make([]Cell, 0, nx*ny),
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			x0, y0 := float64(i)*size, float64(j)*size
			x1, y1 := x0+size, y0+size
			d.Cells = append(d.Cells, Cell{
				Site: Point{X: x0 + size/2, Y: y0 + size/2},
				HalfEdges: []HalfEdge{
					{Start: Point{x0, y0}, End: Point{x1, y0}},
					{Start: Point{x1, y0}, End: Point{x1, y1}},
					{Start: Point{x1, y1}, End: Point{x0, y1}},
					{Start: Point{x0, y1}, End: Point{x0, y0}},
				},
			})

			id := j*nx + i
			above, left := NoSite, NoSite
			if j > 0 {
				above = id - nx
			}
			if i > 0 {
				left = id - 1
			}
			d.Edges = append(d.Edges,
				Edge{VA: Point{x0, y0}, VB: Point{x1, y0}, Left: id, Right: above},
				Edge{VA: Point{x0, y1}, VB: Point{x0, y0}, Left: id, Right: left},
			)
			if i == nx-1 {
				d.Edges = append(d.Edges, Edge{VA: Point{x1, y0}, VB: Point{x1, y1}, Left: id, Right: NoSite})
			}
			if j == ny-1 {
				d.Edges = append(d.Edges, Edge{VA: Point{x1, y1}, VB: Point{x0, y1}, Left: id, Right: NoSite})
			}
		}
	}
	return d
}
