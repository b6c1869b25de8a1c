package hexbin

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"
)

func mustLattice(t *testing.T, points []r2.Point, bwx, bwy float64) *Lattice {
	t.Helper()
	l, err := NewLattice(points, bwx, bwy)
	if err != nil {
		t.Fatalf("NewLattice: %v", err)
	}
	return l
}

func TestNewLattice_RoundsBoundsOutward(t *testing.T) {
	points := []r2.Point{{X: 3, Y: -7}, {X: 27, Y: 22}}
	l := mustLattice(t, points, 15, 15)

	// X: [3, 27] rounds to [0, 30]; Y: [-7, 22] rounds to [-15, 30].
	if math.Abs(l.XMin-0) > 1e-6 || math.Abs(l.XMax-30) > 1e-6 {
		t.Errorf("x bounds: want [0, 30], got [%f, %f]", l.XMin, l.XMax)
	}
	if math.Abs(l.YMin+15) > 1e-6 || math.Abs(l.YMax-30) > 1e-6 {
		t.Errorf("y bounds: want [-15, 30], got [%f, %f]", l.YMin, l.YMax)
	}
	if l.NX != 2 || l.NY != 3 {
		t.Errorf("bin counts: want (2, 3), got (%d, %d)", l.NX, l.NY)
	}
	if l.ShapeRatio != 1.5 {
		t.Errorf("shape ratio: want 1.5, got %f", l.ShapeRatio)
	}
}

func TestNewLattice_BoundaryPointsStrictlyInside(t *testing.T) {
	// Points exactly on bin-width multiples must end up strictly inside the
	// padded bounds, never exactly on them.
	points := []r2.Point{{X: 0, Y: 0}, {X: 30, Y: 15}}
	l := mustLattice(t, points, 15, 15)

	if !(l.XMin < 0 && l.XMax > 30) {
		t.Errorf("x bounds not padded: [%v, %v]", l.XMin, l.XMax)
	}
	if !(l.YMin < 0 && l.YMax > 15) {
		t.Errorf("y bounds not padded: [%v, %v]", l.YMin, l.YMax)
	}
}

func TestNewLattice_SinglePointCloud(t *testing.T) {
	// All points at one location: extent collapses, but the lattice still
	// gets one bin per axis so the batch remains chartable.
	points := []r2.Point{{X: 0, Y: 0}, {X: 0, Y: 0}}
	l := mustLattice(t, points, 15, 15)

	if l.NX != 1 || l.NY != 1 {
		t.Errorf("bin counts: want (1, 1), got (%d, %d)", l.NX, l.NY)
	}
	id := l.CellID(0, 0)
	if id < 0 || id >= l.NumCells() {
		t.Errorf("cell id %d out of range [0, %d)", id, l.NumCells())
	}
}

func TestNewLattice_Errors(t *testing.T) {
	if _, err := NewLattice(nil, 15, 15); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty cloud: want ErrEmptyInput, got %v", err)
	}

	points := []r2.Point{{X: 1, Y: 1}}
	for _, bw := range []float64{0, -5, math.NaN()} {
		if _, err := NewLattice(points, bw, 15); !errors.Is(err, ErrDegenerateLattice) {
			t.Errorf("bin width %v: want ErrDegenerateLattice, got %v", bw, err)
		}
	}

	bad := []r2.Point{{X: math.Inf(1), Y: 0}}
	if _, err := NewLattice(bad, 15, 15); !errors.Is(err, ErrDegenerateLattice) {
		t.Errorf("non-finite point: want ErrDegenerateLattice, got %v", err)
	}
}

func TestCellID_Deterministic(t *testing.T) {
	points := []r2.Point{{X: -100, Y: -50}, {X: 100, Y: 200}}
	l := mustLattice(t, points, 15, 15)

	// Identical locations always get identical ids; rebuilding with the same
	// parameters doesn't change them.
	l2 := mustLattice(t, points, 15, 15)
	for _, p := range []r2.Point{{X: 0, Y: 0}, {X: 7.5, Y: 7.5}, {X: -99, Y: 199}, {X: 33.3, Y: 66.6}} {
		a, b := l.CellID(p.X, p.Y), l.CellID(p.X, p.Y)
		if a != b {
			t.Errorf("CellID(%v) not stable: %d vs %d", p, a, b)
		}
		if c := l2.CellID(p.X, p.Y); c != a {
			t.Errorf("CellID(%v) differs across identical lattices: %d vs %d", p, a, c)
		}
	}
}

// TestCellID_NearestCenter brute-forces the invariant behind the doubled
// lattice tie-break: the assigned cell's center is the nearest of all cell
// centers under the grid-space metric (dx/SX)^2 + 3*(dy/SY)^2.
func TestCellID_NearestCenter(t *testing.T) {
	points := []r2.Point{{X: -100, Y: -50}, {X: 100, Y: 200}}
	l := mustLattice(t, points, 15, 15)

	dist := func(p, c r2.Point) float64 {
		dx := (p.X - c.X) / l.SX
		dy := (p.Y - c.Y) / l.SY
		return dx*dx + 3*dy*dy
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		p := r2.Point{
			X: l.XMin + rng.Float64()*(l.XMax-l.XMin),
			Y: l.YMin + rng.Float64()*(l.YMax-l.YMin),
		}
		got := l.CellID(p.X, p.Y)
		gotDist := dist(p, l.CellCenter(got))

		for id := 0; id < l.NumCells(); id++ {
			if d := dist(p, l.CellCenter(id)); d < gotDist-1e-12 {
				t.Fatalf("point %v assigned to cell %d (d=%g) but cell %d is nearer (d=%g)",
					p, got, gotDist, id, d)
			}
		}
	}
}

func TestCellID_RasterOrderStable(t *testing.T) {
	points := []r2.Point{{X: 0, Y: 0}, {X: 45, Y: 45}}
	l := mustLattice(t, points, 15, 15)

	// Aligned-lattice centers at integer grid coords map to row-major ids.
	for row := 0; row <= l.NY; row++ {
		for col := 0; col <= l.NX; col++ {
			want := row*(l.NX+1) + col
			c := l.CellCenter(want)
			if got := l.CellID(c.X, c.Y); got != want {
				t.Errorf("center of cell %d assigned to %d", want, got)
			}
		}
	}
}

func TestCellVertices_RegularHexagonAroundCentroid(t *testing.T) {
	points := []r2.Point{{X: 0, Y: 0}, {X: 45, Y: 45}}
	l := mustLattice(t, points, 15, 15)

	for _, id := range []int{0, 1, l.NumCells() - 1} {
		c := l.CellCenter(id)
		verts := l.CellVertices(id)
		if len(verts) != 6 {
			t.Fatalf("cell %d: want 6 vertices, got %d", id, len(verts))
		}
		// Vertex centroid coincides with the cell centroid.
		var sum r2.Point
		for _, v := range verts {
			sum = sum.Add(v)
		}
		mean := sum.Mul(1.0 / 6)
		if math.Abs(mean.X-c.X) > 1e-9 || math.Abs(mean.Y-c.Y) > 1e-9 {
			t.Errorf("cell %d: vertex centroid %v != cell centroid %v", id, mean, c)
		}
		// Width SX, height 2*SY/3.
		if w := verts[0].X - verts[3].X; math.Abs(w-l.SX) > 1e-9 {
			t.Errorf("cell %d: hexagon width %f, want %f", id, w, l.SX)
		}
		if h := verts[2].Y - verts[5].Y; math.Abs(h-2*l.SY/3) > 1e-9 {
			t.Errorf("cell %d: hexagon height %f, want %f", id, h, 2*l.SY/3)
		}
	}
}
