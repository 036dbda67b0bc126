package grid

import (
	"fmt"
	"iter"
)

// Dense stores one value for every cell of a fixed-size grid in a flat,
// row-major slice. Not safe for concurrent mutation.
type Dense[T any] struct {
	size  Size
	cells []T
}

// NewDense allocates a grid of size s with every cell set to def.
func NewDense[T any](s Size, def T) (*Dense[T], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	cells := make([]T, s.Len())
	for i := range cells {
		cells[i] = def
	}
	return &Dense[T]{size: s, cells: cells}, nil
}

// Size returns the fixed shape of the grid.
func (g *Dense[T]) Size() Size { return g.size }

// Len returns the number of cells.
func (g *Dense[T]) Len() int { return len(g.cells) }

// Get returns the value at p.
func (g *Dense[T]) Get(p Point) (T, error) {
	i, err := ToLinear(p, g.size)
	if err != nil {
		var zero T
		return zero, err
	}
	return g.cells[i], nil
}

// Ref returns a pointer to the cell at p for in-place mutation. The pointer
// stays valid for the lifetime of the grid.
func (g *Dense[T]) Ref(p Point) (*T, error) {
	i, err := ToLinear(p, g.size)
	if err != nil {
		return nil, err
	}
	return &g.cells[i], nil
}

// Set replaces the value at p.
func (g *Dense[T]) Set(p Point, v T) error {
	i, err := ToLinear(p, g.size)
	if err != nil {
		return err
	}
	g.cells[i] = v
	return nil
}

// Fill sets every cell to v.
func (g *Dense[T]) Fill(v T) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

// Values exposes the backing row-major slice. Writes go straight to the grid.
func (g *Dense[T]) Values() []T { return g.cells }

// All yields every cell once, y ascending then x ascending. Each call
// returns a fresh sequence.
func (g *Dense[T]) All() iter.Seq2[Point, T] {
	return func(yield func(Point, T) bool) {
		w := g.size.W
		for i, v := range g.cells {
			if !yield(point(i, w), v) {
				return
			}
		}
	}
}

// Row yields the cells of row y from left to right.
func (g *Dense[T]) Row(y int) (iter.Seq2[Point, T], error) {
	if y < 0 || y >= g.size.H {
		return nil, fmt.Errorf("row %d in %s grid: %w", y, g.size, ErrOutOfBounds)
	}
	return g.Rect(Rect{Min: Point{Y: y}, Size: Size{W: g.size.W, H: 1}})
}

// Column yields the cells of column x from y=0 upward.
func (g *Dense[T]) Column(x int) (iter.Seq2[Point, T], error) {
	if x < 0 || x >= g.size.W {
		return nil, fmt.Errorf("column %d in %s grid: %w", x, g.size, ErrOutOfBounds)
	}
	return g.Rect(Rect{Min: Point{X: x}, Size: Size{W: 1, H: g.size.H}})
}

// Rect yields the cells of r in row-major order. r must lie fully inside
// the grid.
func (g *Dense[T]) Rect(r Rect) (iter.Seq2[Point, T], error) {
	if !r.Within(g.size) {
		return nil, fmt.Errorf("rect %s+%s in %s grid: %w", r.Min, r.Size, g.size, ErrOutOfBounds)
	}
	return func(yield func(Point, T) bool) {
		w := g.size.W
		for y := r.Min.Y; y < r.Min.Y+r.Size.H; y++ {
			for x := r.Min.X; x < r.Min.X+r.Size.W; x++ {
				p := Point{X: x, Y: y}
				if !yield(p, g.cells[linear(p, w)]) {
					return
				}
			}
		}
	}, nil
}

// Refs yields a pointer to every cell in row-major order, for in-place
// updates during a walk.
func (g *Dense[T]) Refs() iter.Seq2[Point, *T] {
	return func(yield func(Point, *T) bool) {
		w := g.size.W
		for i := range g.cells {
			if !yield(point(i, w), &g.cells[i]) {
				return
			}
		}
	}
}

// SetRow writes values into row y starting at x=0, stopping at whichever
// runs out first: the row or the values. It returns the number written.
func (g *Dense[T]) SetRow(y int, values iter.Seq[T]) (int, error) {
	if y < 0 || y >= g.size.H {
		return 0, fmt.Errorf("row %d in %s grid: %w", y, g.size, ErrOutOfBounds)
	}
	return g.SetRowAt(Point{Y: y}, values)
}

// SetRowAt is SetRow starting from start instead of the left edge.
func (g *Dense[T]) SetRowAt(start Point, values iter.Seq[T]) (int, error) {
	i, err := ToLinear(start, g.size)
	if err != nil {
		return 0, fmt.Errorf("row start: %w", err)
	}
	row := g.cells[i : (start.Y+1)*g.size.W]
	n := 0
	for v := range values {
		if n == len(row) {
			break
		}
		row[n] = v
		n++
	}
	return n, nil
}

// SetColumn writes values into column x starting at y=0, stopping at the
// top of the grid or when values runs out. It returns the number written.
func (g *Dense[T]) SetColumn(x int, values iter.Seq[T]) (int, error) {
	if x < 0 || x >= g.size.W {
		return 0, fmt.Errorf("column %d in %s grid: %w", x, g.size, ErrOutOfBounds)
	}
	return g.SetColumnAt(Point{X: x}, values)
}

// SetColumnAt is SetColumn starting from start instead of the bottom edge.
func (g *Dense[T]) SetColumnAt(start Point, values iter.Seq[T]) (int, error) {
	i, err := ToLinear(start, g.size)
	if err != nil {
		return 0, fmt.Errorf("column start: %w", err)
	}
	limit := g.size.H - start.Y
	n := 0
	for v := range values {
		if n == limit {
			break
		}
		g.cells[i+n*g.size.W] = v
		n++
	}
	return n, nil
}
