package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/lawnchairsociety/screenworld/internal/grid"
	"gopkg.in/yaml.v3"
)

// FileYAML represents a catalog file
type FileYAML struct {
	Tilesheets []TilesheetYAML `yaml:"tilesheets"`
	Regions    []RegionYAML    `yaml:"regions"`
	Blueprints []BlueprintYAML `yaml:"blueprints"`
}

// TilesheetYAML represents a tilesheet in the YAML file
type TilesheetYAML struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	Path  string `yaml:"path"`
	Tiles int    `yaml:"tiles"`
}

// RegionYAML represents a region in the YAML file
type RegionYAML struct {
	ID        int         `yaml:"id"`
	Name      string      `yaml:"name"`
	Tilesheet int         `yaml:"tilesheet"`
	Shapes    []ShapeYAML `yaml:"shapes"`
}

// ShapeYAML represents a shape in the YAML file
type ShapeYAML struct {
	Name    string `yaml:"name"`
	Style   string `yaml:"style"`
	Physics string `yaml:"physics"`
	Tile    int    `yaml:"tile"`
}

// BlueprintYAML represents a blueprint in the YAML file.
// Rows use the glyphs '.', '#', 'h', '=' and '^'.
type BlueprintYAML struct {
	ID        int            `yaml:"id"`
	Name      string         `yaml:"name"`
	Entry     string         `yaml:"entry,omitempty"`
	Exit      string         `yaml:"exit,omitempty"`
	Rows      []string       `yaml:"rows"`
	POIs      []POIYAML      `yaml:"pois,omitempty"`
	Solutions []SolutionYAML `yaml:"solutions,omitempty"`
}

// POIYAML represents a point of interest in the YAML file
type POIYAML struct {
	Kind string `yaml:"kind"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Arg  int    `yaml:"arg,omitempty"`
}

// SolutionYAML represents a solution in the YAML file
type SolutionYAML struct {
	Players    [2]int `yaml:"players"`
	Difficulty int    `yaml:"difficulty"`
	Preference int    `yaml:"preference,omitempty"`
	Skills     uint32 `yaml:"skills,omitempty"`
}

// LoadFromYAML loads a catalog from a YAML file
func LoadFromYAML(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalog from YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var file FileYAML
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	return file.ToCatalog()
}

// ToCatalog converts the YAML representation to a validated Catalog.
// Tilesheets are registered before the regions that reference them.
func (f *FileYAML) ToCatalog() (*Catalog, error) {
	c := New()

	for _, ty := range f.Tilesheets {
		ts := &Tilesheet{ID: ty.ID, Name: ty.Name, Path: ty.Path, TileCount: ty.Tiles}
		if err := c.AddTilesheet(ts); err != nil {
			return nil, err
		}
	}

	for _, ry := range f.Regions {
		r, err := ry.toRegion()
		if err != nil {
			return nil, err
		}
		if err := c.AddRegion(r); err != nil {
			return nil, err
		}
	}

	for _, by := range f.Blueprints {
		bp, err := by.toBlueprint()
		if err != nil {
			return nil, err
		}
		if err := c.AddBlueprint(bp); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (ry *RegionYAML) toRegion() (*Region, error) {
	r := &Region{ID: ry.ID, Name: ry.Name, TilesheetID: ry.Tilesheet}
	for _, sy := range ry.Shapes {
		style, err := ParseStyle(sy.Style)
		if err != nil {
			return nil, fmt.Errorf("region %d shape %q: %w", ry.ID, sy.Name, err)
		}
		phys, err := grid.ParsePhysics(sy.Physics)
		if err != nil {
			return nil, fmt.Errorf("region %d shape %q: %w", ry.ID, sy.Name, err)
		}
		if sy.Tile < 0 {
			return nil, fmt.Errorf("%w: region %d shape %q has negative tile", ErrInvalid, ry.ID, sy.Name)
		}
		r.Shapes = append(r.Shapes, Shape{
			Name:     sy.Name,
			Style:    style,
			Physics:  phys,
			BaseTile: grid.TileID(sy.Tile),
		})
	}
	return r, nil
}

func (by *BlueprintYAML) toBlueprint() (*Blueprint, error) {
	cells, err := ParseRows(by.Rows)
	if err != nil {
		return nil, fmt.Errorf("blueprint %d: %w", by.ID, err)
	}

	bp := &Blueprint{
		ID:    by.ID,
		Name:  by.Name,
		Cells: cells,
		Entry: grid.ParseDirection(by.Entry),
		Exit:  grid.ParseDirection(by.Exit),
	}

	for _, py := range by.POIs {
		kind, err := grid.ParsePOIKind(py.Kind)
		if err != nil {
			return nil, fmt.Errorf("blueprint %d: %w", by.ID, err)
		}
		bp.POIs = append(bp.POIs, grid.POI{Kind: kind, X: py.X, Y: py.Y, Arg: py.Arg})
	}

	for _, sy := range by.Solutions {
		bp.Solutions = append(bp.Solutions, Solution{
			MinPlayers: sy.Players[0],
			MaxPlayers: sy.Players[1],
			Difficulty: sy.Difficulty,
			Preference: sy.Preference,
			Skills:     Skill(sy.Skills),
		})
	}

	return bp, nil
}

// ParseRows decodes blueprint rows into row-major physics cells.
func ParseRows(rows []string) ([]grid.Physics, error) {
	if len(rows) != grid.BlueprintH {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrInvalid, len(rows), grid.BlueprintH)
	}
	cells := make([]grid.Physics, 0, grid.BlueprintW*grid.BlueprintH)
	for y, row := range rows {
		row = strings.TrimRight(row, " \t\r")
		runes := []rune(row)
		if len(runes) != grid.BlueprintW {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalid, y, len(runes), grid.BlueprintW)
		}
		for x, r := range runes {
			p, ok := grid.PhysicsFromGlyph(r)
			if !ok {
				return nil, fmt.Errorf("%w: row %d column %d has unknown glyph %q", ErrInvalid, y, x, r)
			}
			cells = append(cells, p)
		}
	}
	return cells, nil
}
