package grid

import (
	"fmt"
	"math"
	"strings"
)

// Pivot picks the point of the grid that sits on the world origin, as a
// fraction of the grid's extent on each axis. (0,0) is the minimum corner,
// (1,1) the opposite one.
type Pivot struct {
	X float64
	Y float64
}

// Named pivots for the corners and centre of a grid.
var (
	PivotBottomLeft  = Pivot{X: 0, Y: 0}
	PivotBottomRight = Pivot{X: 1, Y: 0}
	PivotTopLeft     = Pivot{X: 0, Y: 1}
	PivotTopRight    = Pivot{X: 1, Y: 1}
	PivotCenter      = Pivot{X: 0.5, Y: 0.5}
)

var namedPivots = map[string]Pivot{
	"bottom_left":  PivotBottomLeft,
	"bottom_right": PivotBottomRight,
	"top_left":     PivotTopLeft,
	"top_right":    PivotTopRight,
	"center":       PivotCenter,
}

// ParsePivot resolves a preset name such as "center" or "top_left".
func ParsePivot(name string) (Pivot, error) {
	p, ok := namedPivots[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Pivot{}, fmt.Errorf("pivot %q: %w", name, ErrInvalidConfiguration)
	}
	return p, nil
}

// Validate checks both axes lie in [0,1].
func (p Pivot) Validate() error {
	if !unit(p.X) || !unit(p.Y) {
		return fmt.Errorf("pivot (%g,%g) outside [0,1]: %w", p.X, p.Y, ErrInvalidConfiguration)
	}
	return nil
}

// unit is false for NaN.
func unit(v float64) bool { return v >= 0 && v <= 1 }

func positiveFinite(v float64) bool { return v > 0 && !math.IsInf(v, 1) }
