package grid_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/l1jgo/tilegrid/pkg/grid"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSparseOccupancy(t *testing.T) {
	Convey("A fresh 4x4 sparse grid", t, func() {
		g, err := grid.NewSparse[string](grid.Size{W: 4, H: 4})
		So(err, ShouldBeNil)
		So(g.Occupancy(), ShouldEqual, 0)
		So(g.Size(), ShouldResemble, grid.Size{W: 4, H: 4})

		p := grid.Point{X: 1, Y: 1}

		Convey("holds a value after insert", func() {
			_, displaced, err := g.Insert(p, "a")
			So(err, ShouldBeNil)
			So(displaced, ShouldBeFalse)
			So(g.Occupancy(), ShouldEqual, 1)

			v, ok, err := g.Get(p)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "a")

			Convey("and is empty again after remove", func() {
				v, ok, err := g.Remove(p)
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, "a")
				So(g.Occupancy(), ShouldEqual, 0)

				_, ok, err = g.Get(p)
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)

				Convey("a second remove is a no-op", func() {
					_, ok, err := g.Remove(p)
					So(err, ShouldBeNil)
					So(ok, ShouldBeFalse)
					So(g.Occupancy(), ShouldEqual, 0)
				})
			})

			Convey("insert over it returns the displaced value", func() {
				old, displaced, err := g.Insert(p, "b")
				So(err, ShouldBeNil)
				So(displaced, ShouldBeTrue)
				So(old, ShouldEqual, "a")
				So(g.Occupancy(), ShouldEqual, 1)

				v, _, _ := g.Get(p)
				So(v, ShouldEqual, "b")
			})

			Convey("Ref mutates the stored value", func() {
				ref, ok, err := g.Ref(p)
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				*ref = "z"

				v, _, _ := g.Get(p)
				So(v, ShouldEqual, "z")
			})
		})

		Convey("Ref on an empty cell is absent, not an error", func() {
			ref, ok, err := g.Ref(p)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
			So(ref, ShouldBeNil)
		})

		Convey("Clear empties it", func() {
			g.Insert(grid.Point{X: 0, Y: 0}, "x")
			g.Insert(grid.Point{X: 3, Y: 3}, "y")
			g.Clear()
			So(g.Occupancy(), ShouldEqual, 0)
			_, ok, _ := g.Get(grid.Point{X: 3, Y: 3})
			So(ok, ShouldBeFalse)
		})
	})
}

func TestSparseOutOfBounds(t *testing.T) {
	Convey("Out-of-bounds points are errors, distinct from absence", t, func() {
		g, err := grid.NewSparse[int](grid.Size{W: 2, H: 2})
		So(err, ShouldBeNil)

		for _, p := range []grid.Point{{X: 2, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 5}} {
			_, ok, err := g.Get(p)
			So(errors.Is(err, grid.ErrOutOfBounds), ShouldBeTrue)
			So(ok, ShouldBeFalse)

			_, _, err = g.Insert(p, 1)
			So(errors.Is(err, grid.ErrOutOfBounds), ShouldBeTrue)

			_, _, err = g.Remove(p)
			So(errors.Is(err, grid.ErrOutOfBounds), ShouldBeTrue)

			_, _, err = g.Ref(p)
			So(errors.Is(err, grid.ErrOutOfBounds), ShouldBeTrue)
		}
		So(g.Occupancy(), ShouldEqual, 0)
	})

	Convey("Degenerate sizes are rejected", t, func() {
		_, err := grid.NewSparse[int](grid.Size{W: 4, H: 0})
		So(errors.Is(err, grid.ErrInvalidDimensions), ShouldBeTrue)
	})
}

func TestSparseIteration(t *testing.T) {
	Convey("Sparse iteration", t, func() {
		size := grid.Size{W: 5, H: 4}
		sparse, err := grid.NewSparse[int](size)
		So(err, ShouldBeNil)
		dense, err := grid.NewDense(size, -1)
		So(err, ShouldBeNil)

		inserts := []struct {
			p grid.Point
			v int
		}{
			{grid.Point{X: 4, Y: 3}, 1},
			{grid.Point{X: 0, Y: 0}, 2},
			{grid.Point{X: 2, Y: 1}, 3},
			{grid.Point{X: 1, Y: 3}, 4},
			{grid.Point{X: 3, Y: 0}, 5},
		}
		placed := make(map[grid.Point]bool)
		for _, in := range inserts {
			_, _, err := sparse.Insert(in.p, in.v)
			So(err, ShouldBeNil)
			So(dense.Set(in.p, in.v), ShouldBeNil)
			placed[in.p] = true
		}

		Convey("visits only occupied cells in row-major order", func() {
			pts, vals := collect(sparse.All())
			So(pts, ShouldResemble, []grid.Point{
				{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 3}, {X: 4, Y: 3},
			})
			So(vals, ShouldResemble, []int{2, 5, 3, 4, 1})
		})

		Convey("matches dense iteration filtered to the same cells", func() {
			var want []grid.Point
			var wantVals []int
			for p, v := range dense.All() {
				if placed[p] {
					want = append(want, p)
					wantVals = append(wantVals, v)
				}
			}
			pts, vals := collect(sparse.All())
			So(pts, ShouldResemble, want)
			So(vals, ShouldResemble, wantVals)
		})

		Convey("is restartable and stops early on break", func() {
			first, _ := collect(sparse.All())
			second, _ := collect(sparse.All())
			So(second, ShouldResemble, first)

			n := 0
			for range sparse.All() {
				n++
				if n == 2 {
					break
				}
			}
			So(n, ShouldEqual, 2)
		})

		Convey("of an empty grid yields nothing", func() {
			empty, _ := grid.NewSparse[int](size)
			pts, _ := collect(empty.All())
			So(pts, ShouldBeEmpty)
		})
	})
}

func TestSparseRowsAndColumns(t *testing.T) {
	Convey("Writing runs into a 5x4 sparse grid", t, func() {
		g, err := grid.NewSparse[rune](grid.Size{W: 5, H: 4})
		So(err, ShouldBeNil)

		Convey("a row fills from the left edge and stops at the right", func() {
			n, err := g.SetRow(2, slices.Values([]rune("abcdefg")))
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 5)
			So(g.Occupancy(), ShouldEqual, 5)
			v, ok, _ := g.Get(grid.Point{X: 4, Y: 2})
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 'e')
		})

		Convey("a column from an offset stops at the top", func() {
			n, err := g.SetColumnAt(grid.Point{X: 1, Y: 2}, slices.Values([]rune("xyz")))
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 2)
			pts, vals := collect(g.All())
			So(pts, ShouldResemble, []grid.Point{{X: 1, Y: 2}, {X: 1, Y: 3}})
			So(string(vals), ShouldEqual, "xy")
		})

		Convey("a row from an offset overwrites existing cells", func() {
			_, _, err := g.Insert(grid.Point{X: 3, Y: 0}, 'q')
			So(err, ShouldBeNil)
			n, err := g.SetRowAt(grid.Point{X: 2, Y: 0}, slices.Values([]rune("mn")))
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 2)
			So(g.Occupancy(), ShouldEqual, 2)
			v, _, _ := g.Get(grid.Point{X: 3, Y: 0})
			So(v, ShouldEqual, 'n')
		})

		Convey("a column fills from the bottom edge", func() {
			n, err := g.SetColumn(4, slices.Values([]rune("ab")))
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 2)
			_, ok, _ := g.Get(grid.Point{X: 4, Y: 1})
			So(ok, ShouldBeTrue)
		})

		Convey("targets outside the grid write nothing", func() {
			_, err := g.SetRow(4, slices.Values([]rune("a")))
			So(errors.Is(err, grid.ErrOutOfBounds), ShouldBeTrue)
			_, err = g.SetColumn(-1, slices.Values([]rune("a")))
			So(errors.Is(err, grid.ErrOutOfBounds), ShouldBeTrue)
			_, err = g.SetRowAt(grid.Point{X: 5, Y: 0}, slices.Values([]rune("a")))
			So(errors.Is(err, grid.ErrOutOfBounds), ShouldBeTrue)
			_, err = g.SetColumnAt(grid.Point{X: 0, Y: 4}, slices.Values([]rune("a")))
			So(errors.Is(err, grid.ErrOutOfBounds), ShouldBeTrue)
			So(g.Occupancy(), ShouldEqual, 0)
		})
	})
}

func TestSparseRefs(t *testing.T) {
	Convey("Walking refs of a sparse grid", t, func() {
		g, err := grid.NewSparse[int](grid.Size{W: 3, H: 3})
		So(err, ShouldBeNil)
		_, _, _ = g.Insert(grid.Point{X: 2, Y: 2}, 5)
		_, _, _ = g.Insert(grid.Point{X: 0, Y: 1}, 7)

		for _, v := range g.Refs() {
			*v *= 10
		}

		_, vals := collect(g.All())
		So(vals, ShouldResemble, []int{70, 50})
		So(g.Occupancy(), ShouldEqual, 2)
	})
}
