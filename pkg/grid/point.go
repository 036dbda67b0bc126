// Package grid provides fixed-size dense and sparse 2D containers and a
// translator between grid cells and world-space positions.
package grid

import (
	"fmt"
	"math"
)

// Point is a discrete cell coordinate. It carries no bounds of its own;
// whether it addresses a cell depends on the Size it is checked against.
type Point struct {
	X int
	Y int
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Size is the fixed width/height of a grid.
type Size struct {
	W int
	H int
}

// Validate rejects negative or zero extents and areas that overflow int.
func (s Size) Validate() error {
	if s.W <= 0 || s.H <= 0 {
		return fmt.Errorf("size %dx%d: %w", s.W, s.H, ErrInvalidDimensions)
	}
	if s.W > math.MaxInt/s.H {
		return fmt.Errorf("size %dx%d overflows: %w", s.W, s.H, ErrInvalidDimensions)
	}
	return nil
}

// Len returns the number of cells, W*H.
func (s Size) Len() int { return s.W * s.H }

// Contains reports whether p lies inside [0,W) x [0,H).
func (s Size) Contains(p Point) bool { return InBounds(p, s) }

// PivotPoint returns the cell under pivot, rounding (W-1, H-1) scaled by
// the pivot to the nearest cell. PivotCenter on an even side picks the
// upper of the two middle cells.
func (s Size) PivotPoint(pivot Pivot) Point {
	return Point{
		X: int(math.Round(float64(s.W-1) * pivot.X)),
		Y: int(math.Round(float64(s.H-1) * pivot.Y)),
	}
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.W, s.H) }

// Vec2 is a world-space position or extent.
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Mul multiplies component-wise.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{X: v.X * o.X, Y: v.Y * o.Y} }

func (v Vec2) String() string { return fmt.Sprintf("(%g,%g)", v.X, v.Y) }

// Rect is a half-open block of cells starting at Min and spanning Size.
type Rect struct {
	Min  Point
	Size Size
}

// RectFromCorners builds the rect covering both corners inclusively.
func RectFromCorners(a, b Point) Rect {
	minX, maxX := min(a.X, b.X), max(a.X, b.X)
	minY, maxY := min(a.Y, b.Y), max(a.Y, b.Y)
	return Rect{
		Min:  Point{X: minX, Y: minY},
		Size: Size{W: maxX - minX + 1, H: maxY - minY + 1},
	}
}

// Max returns the last cell inside the rect.
func (r Rect) Max() Point {
	return Point{X: r.Min.X + r.Size.W - 1, Y: r.Min.Y + r.Size.H - 1}
}

// Within reports whether every cell of r lies inside s. Empty rects are
// never within anything.
func (r Rect) Within(s Size) bool {
	if r.Size.W <= 0 || r.Size.H <= 0 {
		return false
	}
	return InBounds(r.Min, s) && InBounds(r.Max(), s)
}
