package grid

import (
	"fmt"
	"iter"
	"math"
)

// World translates between world-space positions and grid points. It holds
// no cell data and never changes after NewWorld, so it may be shared freely
// between goroutines.
//
// A point returned by WorldToGrid is not bounds-checked; pair it with
// Contains or a Dense/Sparse grid of the same size.
type World struct {
	size   Size
	cell   Vec2
	pivot  Pivot
	origin Vec2 // pivot * (size * cell)
}

// NewWorld validates the configuration and caches the pivot offset.
func NewWorld(s Size, cell Vec2, pivot Pivot) (*World, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if !positiveFinite(cell.X) || !positiveFinite(cell.Y) {
		return nil, fmt.Errorf("cell size %s: %w", cell, ErrInvalidConfiguration)
	}
	if err := pivot.Validate(); err != nil {
		return nil, err
	}
	extent := Vec2{X: float64(s.W), Y: float64(s.H)}.Mul(cell)
	return &World{
		size:   s,
		cell:   cell,
		pivot:  pivot,
		origin: Vec2{X: pivot.X, Y: pivot.Y}.Mul(extent),
	}, nil
}

// Size returns the grid's dimensions.
func (w *World) Size() Size { return w.size }

// CellSize returns the world-space extent of one cell.
func (w *World) CellSize() Vec2 { return w.cell }

// Pivot returns the pivot the world was built with.
func (w *World) Pivot() Pivot { return w.pivot }

// Origin returns the world-space offset from the grid's minimum corner to
// the pivot.
func (w *World) Origin() Vec2 { return w.origin }

// WorldToGrid returns the cell containing pos. Division floors toward
// negative infinity, so (-0.5) lands in cell -1 rather than 0. The result
// always satisfies GridToWorld(p) <= pos < GridToWorld(p+1) on each axis,
// so snapping a corner back yields the same cell for any cell size.
//
// pos should be finite. NaN maps to 0 and positions beyond the int range
// clamp to math.MinInt or math.MaxInt.
func (w *World) WorldToGrid(pos Vec2) Point {
	return Point{
		X: cellIndex(pos.X, w.cell.X, w.origin.X),
		Y: cellIndex(pos.Y, w.cell.Y, w.origin.Y),
	}
}

// GridToWorld returns the minimum corner of cell p in world space.
func (w *World) GridToWorld(p Point) Vec2 {
	return Vec2{
		X: corner(p.X, w.cell.X, w.origin.X),
		Y: corner(p.Y, w.cell.Y, w.origin.Y),
	}
}

// maxCell bounds the floats that convert to int without overflow.
const maxCell = 1 << 62

// cellIndex floors (pos+origin)/cell, then moves one cell either way if
// rounding put pos outside the corners GridToWorld reports.
func cellIndex(pos, cell, origin float64) int {
	f := math.Floor((pos + origin) / cell)
	switch {
	case math.IsNaN(f):
		return 0
	case f >= maxCell:
		return math.MaxInt
	case f <= -maxCell:
		return math.MinInt
	}
	i := int(f)
	if corner(i, cell, origin) > pos {
		i--
	} else if corner(i+1, cell, origin) <= pos {
		i++
	}
	return i
}

// corner is one axis of GridToWorld. The explicit conversion keeps the
// product from being fused with the subtraction, so both directions round
// identically.
func corner(i int, cell, origin float64) float64 {
	return float64(float64(i)*cell) - origin
}

// CellCenter returns the centre of cell p in world space.
func (w *World) CellCenter(p Point) Vec2 {
	return w.GridToWorld(p).Add(Vec2{X: w.cell.X / 2, Y: w.cell.Y / 2})
}

// Snap returns the minimum corner of the cell containing pos.
func (w *World) Snap(pos Vec2) Vec2 {
	return w.GridToWorld(w.WorldToGrid(pos))
}

// Contains reports whether p is inside the grid's size.
func (w *World) Contains(p Point) bool { return InBounds(p, w.size) }

// Bounds returns the world-space corners of the whole grid.
func (w *World) Bounds() (lo, hi Vec2) {
	lo = w.origin.Mul(Vec2{X: -1, Y: -1})
	hi = lo.Add(Vec2{X: float64(w.size.W), Y: float64(w.size.H)}.Mul(w.cell))
	return lo, hi
}

// Cells yields each in-bounds cell with its world-space minimum corner, in
// row-major order.
func (w *World) Cells() iter.Seq2[Point, Vec2] {
	return func(yield func(Point, Vec2) bool) {
		for i := range w.size.Len() {
			p := point(i, w.size.W)
			if !yield(p, w.GridToWorld(p)) {
				return
			}
		}
	}
}
