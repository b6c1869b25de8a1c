package hexbin

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Lattice is a hexagonal tiling of a bounded rectangle, derived from a point
// cloud's extent and a configured bin width. It is a pure function of its
// inputs and carries no per-point state.
//
// The tiling is the standard doubled lattice: an axis-aligned grid of
// (NX+1)x(NY+1) hexagon centers at integer grid coordinates, interleaved with
// an offset grid of NX x NY centers at half-integer coordinates. Cell ids are
// raster-ordered (row-major), aligned lattice first, so ids are stable across
// runs on the same lattice parameters.
type Lattice struct {
	XMin, XMax float64
	YMin, YMax float64
	NX, NY     int     // bin counts per axis
	SX, SY     float64 // cell pitch per axis, == bin width up to the epsilon padding
	// ShapeRatio is NY / NX, the aspect that keeps hexagons regular in
	// court units. The vertex geometry realizes it through SX and SY
	// directly; the field is exported for callers sizing a drawing surface.
	ShapeRatio float64
}

// NewLattice derives lattice bounds and dimensions from the point cloud.
// Bounds are the point min/max rounded outward to the nearest bin-width
// multiple, then padded by a negligible epsilon so no point sits exactly on a
// bound. A cloud whose extent collapses to a single location still gets one
// bin per axis.
func NewLattice(points []r2.Point, binWidthX, binWidthY float64) (*Lattice, error) {
	if len(points) == 0 {
		return nil, ErrEmptyInput
	}
	if binWidthX <= 0 || binWidthY <= 0 || math.IsNaN(binWidthX) || math.IsNaN(binWidthY) {
		return nil, fmt.Errorf("%w: bin width (%g, %g)", ErrDegenerateLattice, binWidthX, binWidthY)
	}

	xMin, xMax := points[0].X, points[0].X
	yMin, yMax := points[0].Y, points[0].Y
	for _, p := range points {
		xMin = math.Min(xMin, p.X)
		xMax = math.Max(xMax, p.X)
		yMin = math.Min(yMin, p.Y)
		yMax = math.Max(yMax, p.Y)
	}
	if !isFinite(xMin) || !isFinite(xMax) || !isFinite(yMin) || !isFinite(yMax) {
		return nil, fmt.Errorf("%w: non-finite point coordinates", ErrDegenerateLattice)
	}

	xMin, xMax, nx := roundedAxis(xMin, xMax, binWidthX)
	yMin, yMax, ny := roundedAxis(yMin, yMax, binWidthY)

	// Epsilon expansion: boundary points must be strictly inside the range,
	// otherwise cell assignment at the edge is ambiguous.
	padX := 1e-9 * (xMax - xMin)
	padY := 1e-9 * (yMax - yMin)
	xMin, xMax = xMin-padX, xMax+padX
	yMin, yMax = yMin-padY, yMax+padY

	return &Lattice{
		XMin: xMin, XMax: xMax,
		YMin: yMin, YMax: yMax,
		NX: nx, NY: ny,
		SX:         (xMax - xMin) / float64(nx),
		SY:         (yMax - yMin) / float64(ny),
		ShapeRatio: float64(ny) / float64(nx),
	}, nil
}

// roundedAxis rounds lo down and hi up to the nearest multiple of width and
// returns the resulting bin count, forcing at least one bin.
func roundedAxis(lo, hi, width float64) (float64, float64, int) {
	lo = math.Floor(lo/width) * width
	hi = math.Ceil(hi/width) * width
	n := int(math.Round((hi - lo) / width))
	if n < 1 {
		hi = lo + width
		n = 1
	}
	return lo, hi, n
}

// NumCells returns the total id space: aligned lattice plus offset lattice.
func (l *Lattice) NumCells() int {
	return (l.NX+1)*(l.NY+1) + l.NX*l.NY
}

// CellID maps a point inside the lattice bounds to its hexagonal cell id.
// The point's fractional grid coordinates are compared against the two
// candidate centers, one per sub-lattice, by squared distance in grid units
// (the y term weighted by 3 to account for hexagonal row spacing); the
// nearer center wins. Identical locations always yield identical ids.
func (l *Lattice) CellID(x, y float64) int {
	ix := (x - l.XMin) / l.SX
	iy := (y - l.YMin) / l.SY

	ix1 := math.Round(ix)
	iy1 := math.Round(iy)
	ix2 := math.Floor(ix)
	iy2 := math.Floor(iy)

	d1 := (ix-ix1)*(ix-ix1) + 3*(iy-iy1)*(iy-iy1)
	d2 := (ix-ix2-0.5)*(ix-ix2-0.5) + 3*(iy-iy2-0.5)*(iy-iy2-0.5)

	nx1 := l.NX + 1
	if d1 < d2 {
		return int(iy1)*nx1 + int(ix1)
	}
	return nx1*(l.NY+1) + int(iy2)*l.NX + int(ix2)
}

// CellCenter returns the centroid of the cell with the given id.
func (l *Lattice) CellCenter(id int) r2.Point {
	nAligned := (l.NX + 1) * (l.NY + 1)
	if id < nAligned {
		row, col := id/(l.NX+1), id%(l.NX+1)
		return r2.Point{
			X: l.XMin + float64(col)*l.SX,
			Y: l.YMin + float64(row)*l.SY,
		}
	}
	id -= nAligned
	row, col := id/l.NX, id%l.NX
	return r2.Point{
		X: l.XMin + (float64(col)+0.5)*l.SX,
		Y: l.YMin + (float64(row)+0.5)*l.SY,
	}
}

// CellVertices returns the six vertices of the cell's hexagon, unclosed,
// counterclockwise from the lower-right corner. The hexagon is point-topped
// with half-width SX/2 and corner height SY/3, which tiles exactly under the
// SY/2 vertical spacing of adjacent rows.
func (l *Lattice) CellVertices(id int) []r2.Point {
	c := l.CellCenter(id)
	hw := l.SX / 2
	corner := l.SY / 3
	edge := l.SY / 6
	return []r2.Point{
		{X: c.X + hw, Y: c.Y - edge},
		{X: c.X + hw, Y: c.Y + edge},
		{X: c.X, Y: c.Y + corner},
		{X: c.X - hw, Y: c.Y + edge},
		{X: c.X - hw, Y: c.Y - edge},
		{X: c.X, Y: c.Y - corner},
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
