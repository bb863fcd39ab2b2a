// Package grid holds the per-screen cell grid and the primitives shared by
// every generation stage: directions, mirror transforms, physics kinds and
// points of interest.
package grid

import (
	"errors"
	"fmt"
)

// Grid and blueprint dimensions. A blueprint is the grid interior; the grid
// adds a Margin-deep border on every side that is stitched to neighbours.
const (
	GridW      = 24
	GridH      = 16
	Margin     = 2
	BlueprintW = GridW - 2*Margin
	BlueprintH = GridH - 2*Margin
)

var ErrTemplateSize = errors.New("grid: template does not match blueprint dimensions")

// TileID indexes a tile in a region's tilesheet.
type TileID uint16

// Cell is one square of a screen.
type Cell struct {
	Tile    TileID
	Physics Physics
	Shape   uint8 // neighbour mask the tile was resolved from
}

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// POIKind identifies what a point of interest marks.
type POIKind uint8

const (
	POITreasure  POIKind = iota // Treasure chest, Arg is the treasure id once assigned
	POIHeroSpawn                // Party spawn point, only on home blueprints
	POIBarrier                  // Skill-gated barrier
	POISprite                   // Sprite spawn, Arg is the sprite id
)

// String returns the string representation of a POIKind
func (k POIKind) String() string {
	switch k {
	case POITreasure:
		return "treasure"
	case POIHeroSpawn:
		return "hero_spawn"
	case POIBarrier:
		return "barrier"
	case POISprite:
		return "sprite"
	default:
		return "unknown"
	}
}

// ParsePOIKind converts a POI kind name to a POIKind.
func ParsePOIKind(s string) (POIKind, error) {
	switch s {
	case "treasure":
		return POITreasure, nil
	case "hero_spawn", "hero":
		return POIHeroSpawn, nil
	case "barrier":
		return POIBarrier, nil
	case "sprite":
		return POISprite, nil
	}
	return POISprite, fmt.Errorf("unknown poi kind %q", s)
}

// POI is a point of interest inside a blueprint or grid.
type POI struct {
	Kind POIKind
	X, Y int
	Arg  int
}

// Grid is the finalized cell array of one screen.
type Grid struct {
	Cells     []Cell
	POIs      []POI
	Finalized bool // margins have been stitched
}

// New allocates a grid with every cell solid.
func New() *Grid {
	g := &Grid{Cells: make([]Cell, GridW*GridH)}
	for i := range g.Cells {
		g.Cells[i].Physics = PhysicsSolid
	}
	return g
}

// NewFromTemplate builds a grid from blueprint physics and POIs. The
// interior is copied with rows and/or columns reversed according to t, POIs
// are mirrored the same way and shifted by the margin. The margin is solid
// until PopulateMargins runs.
func NewFromTemplate(cells []Physics, pois []POI, t Transform) (*Grid, error) {
	if len(cells) != BlueprintW*BlueprintH {
		return nil, fmt.Errorf("%w: got %d cells, want %d", ErrTemplateSize, len(cells), BlueprintW*BlueprintH)
	}

	g := New()

	dy, y0 := 1, 0
	if t.Vert() {
		dy, y0 = -1, BlueprintH-1
	}
	dx, x0 := 1, 0
	if t.Horz() {
		dx, x0 = -1, BlueprintW-1
	}

	for gy, by := Margin, y0; gy < Margin+BlueprintH; gy, by = gy+1, by+dy {
		row := cells[by*BlueprintW : (by+1)*BlueprintW]
		for gx, bx := Margin, x0; gx < Margin+BlueprintW; gx, bx = gx+1, bx+dx {
			g.Cells[gy*GridW+gx].Physics = row[bx]
		}
	}

	g.POIs = make([]POI, 0, len(pois))
	for _, p := range pois {
		x, y := t.Apply(p.X, p.Y)
		p.X, p.Y = x+Margin, y+Margin
		g.POIs = append(g.POIs, p)
	}

	return g, nil
}

// InBounds checks if coordinates are within the grid
func InBounds(x, y int) bool {
	return x >= 0 && x < GridW && y >= 0 && y < GridH
}

// At returns the cell at (x, y). Coordinates must be in bounds.
func (g *Grid) At(x, y int) *Cell {
	return &g.Cells[y*GridW+x]
}

// Physics returns the physics at (x, y); out-of-bounds cells are solid.
func (g *Grid) Physics(x, y int) Physics {
	if !InBounds(x, y) {
		return PhysicsSolid
	}
	return g.Cells[y*GridW+x].Physics
}

// SetPhysics sets the physics at (x, y) when in bounds.
func (g *Grid) SetPhysics(x, y int, p Physics) {
	if InBounds(x, y) {
		g.Cells[y*GridW+x].Physics = p
	}
}

// CountPOIs returns how many POIs of kind k the grid holds.
func (g *Grid) CountPOIs(k POIKind) int {
	n := 0
	for _, p := range g.POIs {
		if p.Kind == k {
			n++
		}
	}
	return n
}

// String renders the physics layer, one row per line.
func (g *Grid) String() string {
	buf := make([]rune, 0, (GridW+1)*GridH)
	for y := 0; y < GridH; y++ {
		for x := 0; x < GridW; x++ {
			buf = append(buf, g.Cells[y*GridW+x].Physics.Glyph())
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
