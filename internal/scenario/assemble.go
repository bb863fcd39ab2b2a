package scenario

import (
	"fmt"

	"github.com/lawnchairsociety/screenworld/internal/catalog"
	"github.com/lawnchairsociety/screenworld/internal/chooser"
	"github.com/lawnchairsociety/screenworld/internal/grid"
	"github.com/lawnchairsociety/screenworld/internal/logger"
	"github.com/lawnchairsociety/screenworld/internal/worldmap"
	"github.com/zyedidia/generic/queue"
)

// screensPerRegion sets how many region seeds a world gets.
const screensPerRegion = 6

// buildGrids gives every screen the inner grid of its blueprint.
func (g *Generator) buildGrids() error {
	for _, s := range g.world.Screens {
		inner, err := grid.NewFromTemplate(s.Blueprint.Cells, s.Blueprint.POIs, s.Transform)
		if err != nil {
			return fmt.Errorf("screen (%s) blueprint %d: %w", screenName(s), s.Blueprint.ID, err)
		}
		s.Grid = inner
	}
	return nil
}

// populateMargins stitches every grid to the neighbours it has open doors to,
// in row-major order.
func (g *Generator) populateMargins() {
	w := g.world
	through := func(s *worldmap.Screen, d grid.Direction) *grid.Grid {
		if !w.Connected(s, d) {
			return nil
		}
		return w.Neighbor(s, d).Grid
	}
	for _, s := range w.Screens {
		grid.PopulateMargins(s.Grid,
			through(s, grid.North), through(s, grid.South),
			through(s, grid.West), through(s, grid.East))
	}
}

// assignRegions gives every screen a region. A fixed region skins the
// whole world; otherwise a few seed screens take distinct regions and the
// regions flood outwards through open doors.
func (g *Generator) assignRegions(fixed *catalog.Region) error {
	w := g.world
	if fixed != nil {
		for _, s := range w.Screens {
			s.Region = fixed
		}
		return nil
	}

	regions := g.src.Regions()
	if len(regions) == 0 {
		return fmt.Errorf("%w: no regions", chooser.ErrCatalog)
	}

	k := min(len(regions), max(1, len(w.Screens)/screensPerRegion))
	screenOrder := g.rng.Perm(len(w.Screens))
	regionOrder := g.rng.Perm(len(regions))

	q := queue.New[*worldmap.Screen]()
	for i := 0; i < k; i++ {
		seed := w.Screens[screenOrder[i]]
		seed.Region = regions[regionOrder[i]]
		q.Enqueue(seed)
	}
	for !q.Empty() {
		s := q.Dequeue()
		for _, d := range grid.AllDirections() {
			if !w.Connected(s, d) {
				continue
			}
			n := w.Neighbor(s, d)
			if n.Region == nil {
				n.Region = s.Region
				q.Enqueue(n)
			}
		}
	}

	for _, s := range w.Screens {
		if s.Region == nil {
			s.Region = regions[regionOrder[0]]
		}
	}
	logger.Debug("Regions assigned", "seeds", k)
	return nil
}

func (g *Generator) skinGrids() error {
	for _, s := range g.world.Screens {
		if err := g.skinner.SkinGrid(s.Grid, s.Region); err != nil {
			return fmt.Errorf("screen (%s) region %d: %w", screenName(s), s.Region.ID, err)
		}
	}
	return nil
}

// assignTreasureIDs numbers treasure POIs from zero in row-major screen
// order, then POI order.
func (g *Generator) assignTreasureIDs() error {
	w := g.world
	if got := len(w.ScreensWith(worldmap.FeatureTreasure)); got != g.treasurec {
		return fmt.Errorf("%w: %d treasure screens, want %d", ErrTreasureCount, got, g.treasurec)
	}

	next := 0
	for _, s := range w.Screens {
		for i := range s.Grid.POIs {
			if s.Grid.POIs[i].Kind == grid.POITreasure {
				s.Grid.POIs[i].Arg = next
				next++
			}
		}
	}
	if next != g.treasurec {
		return fmt.Errorf("%w: assigned %d treasure ids, want %d", ErrTreasureCount, next, g.treasurec)
	}
	return nil
}
