package scripting

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/l1jgo/tilegrid/internal/layout"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM with the grid API preloaded as the
// global table `grid`. Single-goroutine access only.
type Engine struct {
	vm      *lua.LState
	log     *zap.Logger
	layouts *layout.Table
}

// NewEngine creates a VM and registers the grid bindings. layouts may be
// nil, in which case grid.layout always returns nil.
func NewEngine(layouts *layout.Table, log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log, layouts: layouts}
	e.register()
	return e
}

// LoadDir runs the helper scripts in dir, sorted by file name, so later
// scripts can call grid helpers defined by earlier ones. Non-Lua files are
// ignored and a missing dir means there are no helpers.
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		e.log.Debug("no grid helper scripts", zap.String("dir", dir))
		return nil
	}
	if err != nil {
		return fmt.Errorf("read scripts dir %s: %w", dir, err)
	}
	loaded := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".lua") {
			continue
		}
		if err := e.vm.DoFile(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("load helper %s: %w", name, err)
		}
		loaded++
	}
	e.log.Debug("grid helpers loaded", zap.String("dir", dir), zap.Int("scripts", loaded))
	return nil
}

// DoFile runs a single script.
func (e *Engine) DoFile(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("run %s: %w", path, err)
	}
	e.log.Debug("ran lua script", zap.String("file", path))
	return nil
}

// DoString runs a chunk of Lua source.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// Call invokes a global Lua function and returns its single result.
func (e *Engine) Call(name string, args ...lua.LValue) (lua.LValue, error) {
	fn := e.vm.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return lua.LNil, fmt.Errorf("lua function %s not found", name)
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua call error", zap.String("fn", name), zap.Error(err))
		return lua.LNil, fmt.Errorf("call %s: %w", name, err)
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	return ret, nil
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
