package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/l1jgo/tilegrid/pkg/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridctl.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
[grid]
width = 32
cell_width = 0.5
pivot = "bottom_left"

[logging]
level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.Grid.Width)
	assert.Equal(t, 10, cfg.Grid.Height, "unset keys keep their defaults")
	assert.Equal(t, 0.5, cfg.Grid.CellWidth)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "data/yaml/layouts.yaml", cfg.Layouts.Path)

	w, err := cfg.Grid.World()
	require.NoError(t, err)
	assert.Equal(t, grid.Size{W: 32, H: 10}, w.Size())
	assert.Equal(t, grid.PivotBottomLeft, w.Pivot())
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml"))
		require.NoError(t, err)
		assert.Equal(t, defaults(), cfg)
	})

	t.Run("bad toml", func(t *testing.T) {
		_, err := Load(writeFile(t, "[grid\nwidth = "))
		assert.Error(t, err)
	})
}

func TestGridConfigWorld(t *testing.T) {
	t.Run("explicit pivot axes", func(t *testing.T) {
		c := GridConfig{Width: 4, Height: 2, CellWidth: 1, CellHeight: 1, PivotX: 0.25, PivotY: 1}
		w, err := c.World()
		require.NoError(t, err)
		assert.Equal(t, grid.Vec2{X: 1, Y: 2}, w.Origin())
	})

	t.Run("unknown pivot name", func(t *testing.T) {
		c := defaults().Grid
		c.Pivot = "north"
		_, err := c.World()
		assert.ErrorIs(t, err, grid.ErrInvalidConfiguration)
	})

	t.Run("bad cell size", func(t *testing.T) {
		c := defaults().Grid
		c.CellHeight = 0
		_, err := c.World()
		assert.ErrorIs(t, err, grid.ErrInvalidConfiguration)
	})
}
