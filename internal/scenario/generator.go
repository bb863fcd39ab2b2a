// Package scenario builds complete worlds: it lays out screens and doors,
// places home and treasure, then drives blueprint choice, grid assembly,
// region assignment and skinning.
package scenario

import (
	"fmt"
	"math/rand"

	"github.com/lawnchairsociety/screenworld/internal/catalog"
	"github.com/lawnchairsociety/screenworld/internal/chooser"
	"github.com/lawnchairsociety/screenworld/internal/logger"
	"github.com/lawnchairsociety/screenworld/internal/skin"
	"github.com/lawnchairsociety/screenworld/internal/worldmap"
	"github.com/zyedidia/generic/mapset"
)

// Generator builds one world per call. All randomness comes from rng, so a
// generator seeded the same way over the same catalog reproduces the world.
// It is not safe for concurrent use.
type Generator struct {
	cfg Config
	src catalog.Source
	rng *rand.Rand

	// Scratch shared by the graph searches, cleared between uses.
	stack   []*worldmap.Screen
	visited mapset.Set[*worldmap.Screen]

	treasurec    int
	homeX, homeY int
	world        *worldmap.World
	skinner      *skin.Skinner
}

// NewGenerator creates a generator for cfg over the catalog src.
func NewGenerator(cfg Config, src catalog.Source, rng *rand.Rand) *Generator {
	return &Generator{
		cfg:     cfg,
		src:     src,
		rng:     rng,
		visited: mapset.New[*worldmap.Screen](),
		skinner: skin.NewSkinner(rng),
	}
}

// Generate builds a world using weighted blueprint choice.
func (g *Generator) Generate() (*worldmap.World, error) {
	classes, err := g.begin()
	if err != nil {
		return nil, err
	}
	if err := g.layout(true); err != nil {
		return nil, err
	}
	if err := chooser.Choose(g.world, classes, g.rng); err != nil {
		return nil, err
	}
	if err := g.assemble(nil); err != nil {
		return nil, err
	}
	return g.world, nil
}

// GenerateTest builds a world that places every blueprint in t.BlueprintIDs
// and, when t.RegionID is set, skins every screen with that region. Prime
// challenges are not flagged and weights are not used.
func (g *Generator) GenerateTest(t TestConfig) (*worldmap.World, error) {
	g.cfg = t.Config
	var region *catalog.Region
	if t.RegionID != 0 {
		region = g.src.Region(t.RegionID)
		if region == nil {
			return nil, fmt.Errorf("%w: region %d does not exist", chooser.ErrCatalog, t.RegionID)
		}
	}

	classes, err := g.begin()
	if err != nil {
		return nil, err
	}
	if err := g.layout(false); err != nil {
		return nil, err
	}
	if err := chooser.ChooseExplicit(g.world, g.src, classes, t.BlueprintIDs, g.rng); err != nil {
		return nil, err
	}
	if err := g.assemble(region); err != nil {
		return nil, err
	}
	return g.world, nil
}

// begin validates the inputs, sorts the catalog and allocates a fresh world.
func (g *Generator) begin() (*chooser.Classes, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	size, err := SizeFor(g.cfg.Length)
	if err != nil {
		return nil, err
	}

	classes, err := chooser.Classify(g.src, g.cfg.Party())
	if err != nil {
		return nil, err
	}
	if err := classes.Covers(size.W*size.H, size.Treasures); err != nil {
		return nil, err
	}

	g.treasurec = size.Treasures
	g.world = worldmap.New(size.W, size.H)
	g.world.TreasureCount = size.Treasures
	g.stack = g.stack[:0]
	g.visited.Clear()

	logger.Debug("World sized", "length", g.cfg.Length, "w", size.W, "h", size.H, "treasures", size.Treasures)
	return classes, nil
}

// layout runs the topology steps in order.
func (g *Generator) layout(primeChallenges bool) error {
	if err := g.placeHome(); err != nil {
		return err
	}
	if err := g.placeTreasures(); err != nil {
		return err
	}
	if err := g.forgePaths(); err != nil {
		return err
	}
	if err := g.repairReachability(); err != nil {
		return err
	}
	g.finalizeDoors()
	g.labelHomeward()
	g.pushTreasures()
	if primeChallenges {
		g.primeChallenges()
	}
	return nil
}

// assemble builds, stitches and skins every grid, then numbers the treasures.
func (g *Generator) assemble(region *catalog.Region) error {
	if err := g.buildGrids(); err != nil {
		return err
	}
	g.populateMargins()
	if err := g.assignRegions(region); err != nil {
		return err
	}
	if err := g.skinGrids(); err != nil {
		return err
	}
	return g.assignTreasureIDs()
}

func screenName(s *worldmap.Screen) string {
	return fmt.Sprintf("%d,%d", s.X, s.Y)
}
