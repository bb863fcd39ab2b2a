// Package catalogtest builds small, valid catalogs for tests.
package catalogtest

import (
	"github.com/lawnchairsociety/screenworld/internal/catalog"
	"github.com/lawnchairsociety/screenworld/internal/grid"
)

// Rows is the standard test layout. It has a doorway through the rim on
// every side, a lone 3x3 block, a 2x4 block with a one-wide tail, a
// one-wide ledge, platforms, hazards and hero-only cells.
var Rows = []string{
	"########....########",
	"#..................#",
	"#..###......====...#",
	"#..###.............#",
	"...###....####......",
	"..........####......",
	"..........#.........",
	"#.........#........#",
	"#..####...........^#",
	"#..................#",
	"#..^^.....hh.......#",
	"########....########",
}

// Cells returns a fresh copy of the standard layout.
func Cells() []grid.Physics {
	cells, err := catalog.ParseRows(Rows)
	if err != nil {
		panic(err)
	}
	return cells
}

// OpenCells returns a fully vacant layout.
func OpenCells() []grid.Physics {
	return make([]grid.Physics, grid.BlueprintW*grid.BlueprintH)
}

// Home returns a home blueprint with a hero spawn.
func Home(id int) *catalog.Blueprint {
	return &catalog.Blueprint{
		ID:    id,
		Name:  "home",
		Cells: Cells(),
		POIs:  []grid.POI{{Kind: grid.POIHeroSpawn, X: 5, Y: 9}},
		Entry: grid.DirNone,
		Exit:  grid.DirNone,
	}
}

// Treasure returns a treasure blueprint with exactly one treasure marker.
func Treasure(id int) *catalog.Blueprint {
	return &catalog.Blueprint{
		ID:    id,
		Name:  "treasure",
		Cells: Cells(),
		POIs:  []grid.POI{{Kind: grid.POITreasure, X: 15, Y: 9}},
		Entry: grid.DirNone,
		Exit:  grid.DirNone,
	}
}

// Challenge returns a challenge blueprint entered from entry and left by exit.
func Challenge(id int, entry, exit grid.Direction, solutions ...catalog.Solution) *catalog.Blueprint {
	return &catalog.Blueprint{
		ID:    id,
		Name:  "challenge",
		Cells: Cells(),
		POIs: []grid.POI{
			{Kind: grid.POIBarrier, X: 9, Y: 5},
			{Kind: grid.POISprite, X: 14, Y: 9, Arg: 3},
		},
		Solutions: solutions,
		Entry:     entry,
		Exit:      exit,
	}
}

// Filler returns an unchallenged blueprint with no special POIs.
func Filler(id int) *catalog.Blueprint {
	return &catalog.Blueprint{
		ID:    id,
		Name:  "filler",
		Cells: Cells(),
		Entry: grid.DirNone,
		Exit:  grid.DirNone,
	}
}

// Solo returns a solution any party of up to eight can use at difficulty d.
func Solo(d int) catalog.Solution {
	return catalog.Solution{MinPlayers: 1, MaxPlayers: 8, Difficulty: d}
}

// TilesheetTiles is the tile count of the test tilesheet.
const TilesheetTiles = 128

// Region returns a region that can skin every physics kind in every style.
func Region(id, tilesheetID int) *catalog.Region {
	return &catalog.Region{
		ID:          id,
		Name:        "test",
		TilesheetID: tilesheetID,
		Shapes: []catalog.Shape{
			{Name: "air", Style: catalog.StyleAlt16, Physics: grid.PhysicsVacant, BaseTile: 0},
			{Name: "air-plain", Style: catalog.StyleSingle, Physics: grid.PhysicsVacant, BaseTile: 16},
			{Name: "rock", Style: catalog.StyleFat, Physics: grid.PhysicsSolid, BaseTile: 17},
			{Name: "ledge", Style: catalog.StyleSkinny, Physics: grid.PhysicsSolid, BaseTile: 31},
			{Name: "pillar", Style: catalog.Style3x3, Physics: grid.PhysicsSolid, BaseTile: 47},
			{Name: "rubble", Style: catalog.StyleAlt4, Physics: grid.PhysicsSolid, BaseTile: 56},
			{Name: "plank", Style: catalog.StyleEven4, Physics: grid.PhysicsPlatform, BaseTile: 60},
			{Name: "spikes", Style: catalog.StyleAlt8, Physics: grid.PhysicsHazard, BaseTile: 64},
		},
	}
}

// Standard returns a catalog with one home, two treasure, six challenge and
// two filler blueprints, and two regions sharing one tilesheet.
func Standard() *catalog.Catalog {
	c := catalog.New()
	must(c.AddTilesheet(&catalog.Tilesheet{ID: 1, Name: "test", TileCount: TilesheetTiles}))
	must(c.AddRegion(Region(1, 1)))
	r2 := Region(2, 1)
	r2.Name = "test-alt"
	must(c.AddRegion(r2))

	must(c.AddBlueprint(Home(1)))
	must(c.AddBlueprint(Treasure(2)))
	must(c.AddBlueprint(Treasure(3)))
	must(c.AddBlueprint(Challenge(10, grid.West, grid.East, Solo(1))))
	must(c.AddBlueprint(Challenge(11, grid.North, grid.South, Solo(2), Solo(3))))
	must(c.AddBlueprint(Challenge(12, grid.West, grid.DirNone, Solo(4))))
	must(c.AddBlueprint(Challenge(13, grid.South, grid.East, catalog.Solution{MinPlayers: 2, MaxPlayers: 4, Difficulty: 2, Preference: 40})))
	must(c.AddBlueprint(Challenge(14, grid.East, grid.West, catalog.Solution{MinPlayers: 1, MaxPlayers: 8, Difficulty: 1, Skills: 0x4})))
	must(c.AddBlueprint(Challenge(15, grid.DirNone, grid.DirNone, Solo(9))))
	must(c.AddBlueprint(Filler(20)))
	must(c.AddBlueprint(Filler(21)))
	return c
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
