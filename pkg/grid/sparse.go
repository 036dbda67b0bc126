package grid

import (
	"fmt"
	"iter"

	"github.com/MobRulesGames/GoLLRB/llrb"
)

// sparseCell is the tree item; cells order by their linear index.
type sparseCell[T any] struct {
	index int
	value T
}

func lessCell[T any](a, b interface{}) bool {
	return a.(*sparseCell[T]).index < b.(*sparseCell[T]).index
}

// Sparse holds values only for occupied cells of a fixed-size grid. Cells
// are kept in an LLRB tree keyed by linear index, so iteration follows the
// same row-major order as Dense. Not safe for concurrent mutation.
type Sparse[T any] struct {
	size  Size
	cells *llrb.Tree
}

// NewSparse returns an empty grid of size s.
func NewSparse[T any](s Size) (*Sparse[T], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Sparse[T]{size: s, cells: llrb.New(lessCell[T])}, nil
}

// Size returns the fixed shape of the grid.
func (g *Sparse[T]) Size() Size { return g.size }

// Occupancy returns the number of present cells.
func (g *Sparse[T]) Occupancy() int { return g.cells.Len() }

func (g *Sparse[T]) lookup(p Point) (*sparseCell[T], error) {
	i, err := ToLinear(p, g.size)
	if err != nil {
		return nil, err
	}
	item := g.cells.Get(&sparseCell[T]{index: i})
	if item == nil {
		return nil, nil
	}
	return item.(*sparseCell[T]), nil
}

// Get returns the value at p and whether the cell is occupied.
func (g *Sparse[T]) Get(p Point) (T, bool, error) {
	var zero T
	c, err := g.lookup(p)
	if err != nil || c == nil {
		return zero, false, err
	}
	return c.value, true, nil
}

// Ref returns a pointer to the stored value at p, or nil if the cell is
// empty. The pointer is valid until the cell is removed or overwritten.
func (g *Sparse[T]) Ref(p Point) (*T, bool, error) {
	c, err := g.lookup(p)
	if err != nil || c == nil {
		return nil, false, err
	}
	return &c.value, true, nil
}

// Insert stores v at p and returns the value it displaced, if any.
func (g *Sparse[T]) Insert(p Point, v T) (T, bool, error) {
	var zero T
	i, err := ToLinear(p, g.size)
	if err != nil {
		return zero, false, err
	}
	old := g.cells.ReplaceOrInsert(&sparseCell[T]{index: i, value: v})
	if old == nil {
		return zero, false, nil
	}
	return old.(*sparseCell[T]).value, true, nil
}

// Remove deletes the value at p and hands it back. Removing an empty cell
// is a no-op.
func (g *Sparse[T]) Remove(p Point) (T, bool, error) {
	var zero T
	i, err := ToLinear(p, g.size)
	if err != nil {
		return zero, false, err
	}
	old := g.cells.Delete(&sparseCell[T]{index: i})
	if old == nil {
		return zero, false, nil
	}
	return old.(*sparseCell[T]).value, true, nil
}

// Clear removes every value.
func (g *Sparse[T]) Clear() {
	g.cells = llrb.New(lessCell[T])
}

// All yields the occupied cells in ascending linear index order. Each call
// returns a fresh sequence. Mutating the grid while ranging is not supported.
func (g *Sparse[T]) All() iter.Seq2[Point, T] {
	return func(yield func(Point, T) bool) {
		w := g.size.W
		for item := g.cells.Min(); item != nil; item = g.cells.UpperBound(item) {
			c := item.(*sparseCell[T])
			if !yield(point(c.index, w), c.value) {
				return
			}
		}
	}
}

// Refs yields a pointer to every stored value in ascending linear index
// order. Values may be changed through the pointers; cells may not be
// added or removed during the walk.
func (g *Sparse[T]) Refs() iter.Seq2[Point, *T] {
	return func(yield func(Point, *T) bool) {
		w := g.size.W
		for item := g.cells.Min(); item != nil; item = g.cells.UpperBound(item) {
			c := item.(*sparseCell[T])
			if !yield(point(c.index, w), &c.value) {
				return
			}
		}
	}
}

// SetRow inserts values into row y from x=0 until the row or the values
// run out. It returns the number of cells written.
func (g *Sparse[T]) SetRow(y int, values iter.Seq[T]) (int, error) {
	if y < 0 || y >= g.size.H {
		return 0, fmt.Errorf("row %d in %s grid: %w", y, g.size, ErrOutOfBounds)
	}
	return g.SetRowAt(Point{Y: y}, values)
}

// SetRowAt is SetRow starting from start instead of the left edge.
func (g *Sparse[T]) SetRowAt(start Point, values iter.Seq[T]) (int, error) {
	i, err := ToLinear(start, g.size)
	if err != nil {
		return 0, fmt.Errorf("row start: %w", err)
	}
	return g.insertRun(i, 1, g.size.W-start.X, values), nil
}

// SetColumn inserts values into column x from y=0 until the column or the
// values run out. It returns the number of cells written.
func (g *Sparse[T]) SetColumn(x int, values iter.Seq[T]) (int, error) {
	if x < 0 || x >= g.size.W {
		return 0, fmt.Errorf("column %d in %s grid: %w", x, g.size, ErrOutOfBounds)
	}
	return g.SetColumnAt(Point{X: x}, values)
}

// SetColumnAt is SetColumn starting from start instead of the bottom edge.
func (g *Sparse[T]) SetColumnAt(start Point, values iter.Seq[T]) (int, error) {
	i, err := ToLinear(start, g.size)
	if err != nil {
		return 0, fmt.Errorf("column start: %w", err)
	}
	return g.insertRun(i, g.size.W, g.size.H-start.Y, values), nil
}

// insertRun stores up to limit values at index first, first+step, ...
func (g *Sparse[T]) insertRun(first, step, limit int, values iter.Seq[T]) int {
	n := 0
	for v := range values {
		if n == limit {
			break
		}
		g.cells.ReplaceOrInsert(&sparseCell[T]{index: first + n*step, value: v})
		n++
	}
	return n
}
