package grid

import "fmt"

// Linear indexing is row-major: index = y*W + x.

// InBounds reports whether p addresses a cell of a grid of size s.
func InBounds(p Point, s Size) bool {
	return p.X >= 0 && p.X < s.W && p.Y >= 0 && p.Y < s.H
}

// ToLinear converts p to its linear index under s.
func ToLinear(p Point, s Size) (int, error) {
	if !InBounds(p, s) {
		return 0, fmt.Errorf("point %s in %s grid: %w", p, s, ErrOutOfBounds)
	}
	return p.Y*s.W + p.X, nil
}

// ToPoint converts a linear index back to its point under s.
func ToPoint(i int, s Size) (Point, error) {
	if i < 0 || i >= s.W*s.H {
		return Point{}, fmt.Errorf("index %d in %s grid: %w", i, s, ErrOutOfBounds)
	}
	return Point{X: i % s.W, Y: i / s.W}, nil
}

// linear and point skip the checks; callers have already validated.
func linear(p Point, w int) int { return p.Y*w + p.X }

func point(i, w int) Point { return Point{X: i % w, Y: i / w} }
