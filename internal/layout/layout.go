package layout

import (
	"fmt"
	"os"
	"sort"

	"github.com/l1jgo/tilegrid/pkg/grid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Preset is one named world grid as written in layouts.yaml.
type Preset struct {
	Name       string   `yaml:"name"`
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	CellWidth  float64  `yaml:"cell_width"`
	CellHeight float64  `yaml:"cell_height"`
	Pivot      string   `yaml:"pivot"`
	PivotX     *float64 `yaml:"pivot_x"`
	PivotY     *float64 `yaml:"pivot_y"`
}

type layoutFile struct {
	Layouts []Preset `yaml:"layouts"`
}

// Table holds the world grids built from the presets that validated.
type Table struct {
	presets map[string]Preset
	worlds  map[string]*grid.World
}

// LoadLayouts reads presets from a YAML file. Presets that fail validation
// are logged and skipped; duplicate names fail the whole load.
func LoadLayouts(path string, log *zap.Logger) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layouts %s: %w", path, err)
	}
	return Parse(raw, log)
}

// Parse builds a Table from YAML bytes.
func Parse(raw []byte, log *zap.Logger) (*Table, error) {
	var file layoutFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	t := &Table{
		presets: make(map[string]Preset, len(file.Layouts)),
		worlds:  make(map[string]*grid.World, len(file.Layouts)),
	}
	seen := make(map[string]bool, len(file.Layouts))
	for _, p := range file.Layouts {
		if p.Name == "" {
			log.Warn("skipping unnamed layout", zap.Int("width", p.Width), zap.Int("height", p.Height))
			continue
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate layout %q", p.Name)
		}
		seen[p.Name] = true
		w, err := p.World()
		if err != nil {
			log.Warn("skipping invalid layout", zap.String("name", p.Name), zap.Error(err))
			continue
		}
		t.presets[p.Name] = p
		t.worlds[p.Name] = w
	}
	return t, nil
}

// World validates the preset and builds its grid.World. A missing pivot
// axis defaults to 0.5 unless a pivot name is given.
func (p Preset) World() (*grid.World, error) {
	pivot := grid.PivotCenter
	if p.Pivot != "" {
		named, err := grid.ParsePivot(p.Pivot)
		if err != nil {
			return nil, err
		}
		pivot = named
	}
	if p.PivotX != nil {
		pivot.X = *p.PivotX
	}
	if p.PivotY != nil {
		pivot.Y = *p.PivotY
	}
	return grid.NewWorld(
		grid.Size{W: p.Width, H: p.Height},
		grid.Vec2{X: p.CellWidth, Y: p.CellHeight},
		pivot,
	)
}

// Count returns the number of usable layouts.
func (t *Table) Count() int {
	return len(t.worlds)
}

// Get returns the world grid for name, or nil if not found.
func (t *Table) Get(name string) *grid.World {
	return t.worlds[name]
}

// Preset returns the raw preset for name.
func (t *Table) Preset(name string) (Preset, bool) {
	p, ok := t.presets[name]
	return p, ok
}

// Names returns layout names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.worlds))
	for n := range t.worlds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
