package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/l1jgo/tilegrid/pkg/grid"
)

type Config struct {
	Grid      GridConfig      `toml:"grid"`
	Layouts   LayoutsConfig   `toml:"layouts"`
	Scripting ScriptingConfig `toml:"scripting"`
	Logging   LoggingConfig   `toml:"logging"`
}

// GridConfig describes the default world grid used when no layout is named.
type GridConfig struct {
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
	Pivot      string  `toml:"pivot"`   // preset name; empty means use PivotX/PivotY
	PivotX     float64 `toml:"pivot_x"` // 0.0-1.0
	PivotY     float64 `toml:"pivot_y"` // 0.0-1.0
}

type LayoutsConfig struct {
	Path string `toml:"path"`
}

type ScriptingConfig struct {
	Dir string `toml:"dir"` // scripts preloaded before `gridctl run`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load overlays the TOML file at path on the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns the defaults when path does
// not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaults(), nil
	}
	return cfg, err
}

// World builds the grid.World described by the [grid] section.
func (c GridConfig) World() (*grid.World, error) {
	pivot := grid.Pivot{X: c.PivotX, Y: c.PivotY}
	if c.Pivot != "" {
		p, err := grid.ParsePivot(c.Pivot)
		if err != nil {
			return nil, err
		}
		pivot = p
	}
	w, err := grid.NewWorld(
		grid.Size{W: c.Width, H: c.Height},
		grid.Vec2{X: c.CellWidth, Y: c.CellHeight},
		pivot,
	)
	if err != nil {
		return nil, fmt.Errorf("grid config: %w", err)
	}
	return w, nil
}

func defaults() *Config {
	return &Config{
		Grid: GridConfig{
			Width:      10,
			Height:     10,
			CellWidth:  1.0,
			CellHeight: 1.0,
			Pivot:      "center",
		},
		Layouts: LayoutsConfig{
			Path: "data/yaml/layouts.yaml",
		},
		Scripting: ScriptingConfig{
			Dir: "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
