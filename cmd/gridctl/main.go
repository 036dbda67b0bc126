// gridctl converts coordinates between world space and grid cells, lists
// layout presets and runs Lua scripts against the grid API.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/l1jgo/tilegrid/internal/config"
	"github.com/l1jgo/tilegrid/internal/layout"
	"github.com/l1jgo/tilegrid/internal/scripting"
	"github.com/l1jgo/tilegrid/pkg/grid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const usage = `Usage:
  gridctl to-grid <x> <y> [layout]    world position -> grid cell
  gridctl to-world <x> <y> [layout]   grid cell -> world min corner and centre
  gridctl layouts                     list layout presets
  gridctl run <script.lua>            run a Lua script`

var errUsage = errors.New("bad usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
		}
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	layouts, err := loadLayouts(cfg.Layouts.Path, log)
	if err != nil {
		return err
	}

	switch cmd := args[0]; cmd {
	case "to-grid", "to-world":
		if len(args) < 3 {
			return fmt.Errorf("%s needs two coordinates: %w", cmd, errUsage)
		}
		name := ""
		if len(args) > 3 {
			name = args[3]
		}
		w, err := pickWorld(cfg.Grid, layouts, name)
		if err != nil {
			return err
		}
		if cmd == "to-grid" {
			return toGrid(out, w, args[1], args[2])
		}
		return toWorld(out, w, args[1], args[2])

	case "layouts":
		for _, name := range layouts.Names() {
			w := layouts.Get(name)
			lo, hi := w.Bounds()
			fmt.Fprintf(out, "%-16s %-8s cell=%s pivot=(%g,%g) bounds=%s..%s\n",
				name, w.Size(), w.CellSize(), w.Pivot().X, w.Pivot().Y, lo, hi)
		}
		return nil

	case "run":
		if len(args) < 2 {
			return fmt.Errorf("run needs a script: %w", errUsage)
		}
		engine := scripting.NewEngine(layouts, log)
		defer engine.Close()
		if err := engine.LoadDir(cfg.Scripting.Dir); err != nil {
			return fmt.Errorf("load scripts: %w", err)
		}
		return engine.DoFile(args[1])

	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

const defaultConfigPath = "config/gridctl.toml"

// loadConfig reads GRIDCTL_CONFIG when set, which must exist. Otherwise the
// default path is tried and built-in settings cover its absence.
func loadConfig() (*config.Config, error) {
	if p := os.Getenv("GRIDCTL_CONFIG"); p != "" {
		return config.Load(p)
	}
	return config.LoadOrDefault(defaultConfigPath)
}

// loadLayouts returns an empty table when the presets file is absent.
func loadLayouts(path string, log *zap.Logger) (*layout.Table, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Debug("no layout file", zap.String("path", path))
		return layout.Parse(nil, log)
	}
	table, err := layout.LoadLayouts(path, log)
	if err != nil {
		return nil, fmt.Errorf("load layouts: %w", err)
	}
	log.Debug("layouts loaded", zap.String("path", path), zap.Int("count", table.Count()))
	return table, nil
}

func pickWorld(gc config.GridConfig, layouts *layout.Table, name string) (*grid.World, error) {
	if name == "" {
		return gc.World()
	}
	w := layouts.Get(name)
	if w == nil {
		return nil, fmt.Errorf("unknown layout %q", name)
	}
	return w, nil
}

func toGrid(out io.Writer, w *grid.World, xs, ys string) error {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return fmt.Errorf("y: %w", err)
	}
	p := w.WorldToGrid(grid.Vec2{X: x, Y: y})
	idx := "-"
	if i, err := grid.ToLinear(p, w.Size()); err == nil {
		idx = strconv.Itoa(i)
	}
	fmt.Fprintf(out, "cell=%s index=%s in_bounds=%t\n", p, idx, w.Contains(p))
	return nil
}

func toWorld(out io.Writer, w *grid.World, xs, ys string) error {
	x, err := strconv.Atoi(xs)
	if err != nil {
		return fmt.Errorf("x: %w", err)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return fmt.Errorf("y: %w", err)
	}
	p := grid.Point{X: x, Y: y}
	fmt.Fprintf(out, "corner=%s center=%s in_bounds=%t\n", w.GridToWorld(p), w.CellCenter(p), w.Contains(p))
	return nil
}

// newLogger writes to stderr only; stdout carries command output.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("logging level %q: %w", cfg.Level, err)
		}
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Format != "json" {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = level
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Named("gridctl"), nil
}
