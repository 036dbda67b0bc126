package scripting

import (
	"github.com/l1jgo/tilegrid/pkg/grid"
	lua "github.com/yuin/gopher-lua"
)

const (
	denseType  = "grid.dense"
	sparseType = "grid.sparse"
	worldType  = "grid.world"
)

// register installs the global `grid` table and the userdata metatables.
//
//	grid.dense(w, h, default)      -> dense grid of Lua values
//	grid.sparse(w, h)              -> sparse grid of Lua values
//	grid.world(w, h, cw, ch, piv)  -> world translator; piv is a preset
//	                                  name or {x=, y=}, default "center"
//	grid.layout(name)              -> world from the layout table, or nil
func (e *Engine) register() {
	L := e.vm

	e.newType(denseType, map[string]lua.LGFunction{
		"get":  denseGet,
		"set":  denseSet,
		"fill": denseFill,
		"size": denseSize,
		"each": denseEach,
	})
	e.newType(sparseType, map[string]lua.LGFunction{
		"get":       sparseGet,
		"insert":    sparseInsert,
		"remove":    sparseRemove,
		"occupancy": sparseOccupancy,
		"size":      sparseSize,
		"each":      sparseEach,
	})
	e.newType(worldType, map[string]lua.LGFunction{
		"to_grid":  worldToGrid,
		"to_world": worldToWorld,
		"center":   worldCenter,
		"snap":     worldSnap,
		"contains": worldContains,
		"size":     worldSize,
	})

	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"dense":  newDense,
		"sparse": newSparse,
		"world":  newWorld,
		"layout": e.layout,
	})
	L.SetGlobal("grid", mod)
}

func (e *Engine) newType(name string, methods map[string]lua.LGFunction) {
	L := e.vm
	mt := L.NewTypeMetatable(name)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), methods))
	L.SetField(mt, "__name", lua.LString(name))
}

func pushUserData(L *lua.LState, typ string, v interface{}) int {
	ud := L.NewUserData()
	ud.Value = v
	L.SetMetatable(ud, L.GetTypeMetatable(typ))
	L.Push(ud)
	return 1
}

func checkSize(L *lua.LState, n int) grid.Size {
	return grid.Size{W: L.CheckInt(n), H: L.CheckInt(n + 1)}
}

func checkPoint(L *lua.LState, n int) grid.Point {
	return grid.Point{X: L.CheckInt(n), Y: L.CheckInt(n + 1)}
}

func checkVec(L *lua.LState, n int) grid.Vec2 {
	return grid.Vec2{X: float64(L.CheckNumber(n)), Y: float64(L.CheckNumber(n + 1))}
}

// raise turns a Go error into a Lua error. It does not return.
func raise(L *lua.LState, err error) {
	L.RaiseError("%s", err.Error())
}

// callEach runs fn(x, y, v) and reports whether iteration should go on.
// Returning false from fn stops it.
func callEach(L *lua.LState, fn *lua.LFunction, p grid.Point, v lua.LValue) bool {
	L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: false},
		lua.LNumber(p.X), lua.LNumber(p.Y), v)
	ret := L.Get(-1)
	L.Pop(1)
	return ret != lua.LFalse
}

// ── dense ──────────────────────────────────────────────────────────

func newDense(L *lua.LState) int {
	g, err := grid.NewDense[lua.LValue](checkSize(L, 1), L.Get(3))
	if err != nil {
		raise(L, err)
	}
	return pushUserData(L, denseType, g)
}

func checkDense(L *lua.LState) *grid.Dense[lua.LValue] {
	ud := L.CheckUserData(1)
	if g, ok := ud.Value.(*grid.Dense[lua.LValue]); ok {
		return g
	}
	L.ArgError(1, denseType+" expected")
	return nil
}

func denseGet(L *lua.LState) int {
	v, err := checkDense(L).Get(checkPoint(L, 2))
	if err != nil {
		raise(L, err)
	}
	L.Push(v)
	return 1
}

func denseSet(L *lua.LState) int {
	if err := checkDense(L).Set(checkPoint(L, 2), L.Get(4)); err != nil {
		raise(L, err)
	}
	return 0
}

func denseFill(L *lua.LState) int {
	checkDense(L).Fill(L.Get(2))
	return 0
}

func denseSize(L *lua.LState) int {
	s := checkDense(L).Size()
	L.Push(lua.LNumber(s.W))
	L.Push(lua.LNumber(s.H))
	return 2
}

func denseEach(L *lua.LState) int {
	g := checkDense(L)
	fn := L.CheckFunction(2)
	for p, v := range g.All() {
		if !callEach(L, fn, p, v) {
			break
		}
	}
	return 0
}

// ── sparse ─────────────────────────────────────────────────────────

func newSparse(L *lua.LState) int {
	g, err := grid.NewSparse[lua.LValue](checkSize(L, 1))
	if err != nil {
		raise(L, err)
	}
	return pushUserData(L, sparseType, g)
}

func checkSparse(L *lua.LState) *grid.Sparse[lua.LValue] {
	ud := L.CheckUserData(1)
	if g, ok := ud.Value.(*grid.Sparse[lua.LValue]); ok {
		return g
	}
	L.ArgError(1, sparseType+" expected")
	return nil
}

// pushOptional pushes v, or nil when the cell was empty.
func pushOptional(L *lua.LState, v lua.LValue, ok bool) int {
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(v)
	return 1
}

func sparseGet(L *lua.LState) int {
	v, ok, err := checkSparse(L).Get(checkPoint(L, 2))
	if err != nil {
		raise(L, err)
	}
	return pushOptional(L, v, ok)
}

// sparseInsert rejects nil values; use remove to empty a cell.
func sparseInsert(L *lua.LState) int {
	g := checkSparse(L)
	p := checkPoint(L, 2)
	v := L.CheckAny(4)
	if v == lua.LNil {
		L.ArgError(4, "non-nil value expected")
	}
	old, ok, err := g.Insert(p, v)
	if err != nil {
		raise(L, err)
	}
	return pushOptional(L, old, ok)
}

func sparseRemove(L *lua.LState) int {
	old, ok, err := checkSparse(L).Remove(checkPoint(L, 2))
	if err != nil {
		raise(L, err)
	}
	return pushOptional(L, old, ok)
}

func sparseOccupancy(L *lua.LState) int {
	L.Push(lua.LNumber(checkSparse(L).Occupancy()))
	return 1
}

func sparseSize(L *lua.LState) int {
	s := checkSparse(L).Size()
	L.Push(lua.LNumber(s.W))
	L.Push(lua.LNumber(s.H))
	return 2
}

func sparseEach(L *lua.LState) int {
	g := checkSparse(L)
	fn := L.CheckFunction(2)
	for p, v := range g.All() {
		if !callEach(L, fn, p, v) {
			break
		}
	}
	return 0
}

// ── world ──────────────────────────────────────────────────────────

func checkPivot(L *lua.LState, n int) grid.Pivot {
	switch v := L.Get(n).(type) {
	case lua.LString:
		p, err := grid.ParsePivot(string(v))
		if err != nil {
			raise(L, err)
		}
		return p
	case *lua.LTable:
		return grid.Pivot{
			X: float64(lua.LVAsNumber(v.RawGetString("x"))),
			Y: float64(lua.LVAsNumber(v.RawGetString("y"))),
		}
	case *lua.LNilType:
		return grid.PivotCenter
	}
	L.ArgError(n, "pivot name or {x=, y=} expected")
	return grid.Pivot{}
}

func newWorld(L *lua.LState) int {
	w, err := grid.NewWorld(checkSize(L, 1), checkVec(L, 3), checkPivot(L, 5))
	if err != nil {
		raise(L, err)
	}
	return pushUserData(L, worldType, w)
}

func (e *Engine) layout(L *lua.LState) int {
	name := L.CheckString(1)
	if e.layouts == nil {
		L.Push(lua.LNil)
		return 1
	}
	w := e.layouts.Get(name)
	if w == nil {
		L.Push(lua.LNil)
		return 1
	}
	return pushUserData(L, worldType, w)
}

func checkWorld(L *lua.LState) *grid.World {
	ud := L.CheckUserData(1)
	if w, ok := ud.Value.(*grid.World); ok {
		return w
	}
	L.ArgError(1, worldType+" expected")
	return nil
}

func pushVec(L *lua.LState, v grid.Vec2) int {
	L.Push(lua.LNumber(v.X))
	L.Push(lua.LNumber(v.Y))
	return 2
}

func worldToGrid(L *lua.LState) int {
	p := checkWorld(L).WorldToGrid(checkVec(L, 2))
	L.Push(lua.LNumber(p.X))
	L.Push(lua.LNumber(p.Y))
	return 2
}

func worldToWorld(L *lua.LState) int {
	return pushVec(L, checkWorld(L).GridToWorld(checkPoint(L, 2)))
}

func worldCenter(L *lua.LState) int {
	return pushVec(L, checkWorld(L).CellCenter(checkPoint(L, 2)))
}

func worldSnap(L *lua.LState) int {
	return pushVec(L, checkWorld(L).Snap(checkVec(L, 2)))
}

func worldContains(L *lua.LState) int {
	L.Push(lua.LBool(checkWorld(L).Contains(checkPoint(L, 2))))
	return 1
}

func worldSize(L *lua.LState) int {
	s := checkWorld(L).Size()
	L.Push(lua.LNumber(s.W))
	L.Push(lua.LNumber(s.H))
	return 2
}
