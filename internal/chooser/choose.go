package chooser

import (
	"fmt"
	"math/rand"

	"github.com/lawnchairsociety/screenworld/internal/catalog"
	"github.com/lawnchairsociety/screenworld/internal/grid"
	"github.com/lawnchairsociety/screenworld/internal/logger"
	"github.com/lawnchairsociety/screenworld/internal/worldmap"
)

// pool is the challenge blueprints not yet handed out, in id order.
type pool struct {
	bps     []*catalog.Blueprint
	weights map[int]int
}

func (p *pool) remove(i int) *catalog.Blueprint {
	bp := p.bps[i]
	p.bps = append(p.bps[:i], p.bps[i+1:]...)
	return bp
}

// best takes the highest-weight blueprint, the first one on ties.
func (p *pool) best() *catalog.Blueprint {
	if len(p.bps) == 0 {
		return nil
	}
	bi := 0
	for i, bp := range p.bps {
		if p.weights[bp.ID] > p.weights[p.bps[bi].ID] {
			bi = i
		}
	}
	return p.remove(bi)
}

// roulette takes a blueprint with probability proportional to its weight.
func (p *pool) roulette(rng *rand.Rand) *catalog.Blueprint {
	if len(p.bps) == 0 {
		return nil
	}
	total := 0
	for _, bp := range p.bps {
		total += p.weights[bp.ID]
	}
	r := rng.Intn(total)
	for i, bp := range p.bps {
		r -= p.weights[bp.ID]
		if r < 0 {
			return p.remove(i)
		}
	}
	return p.remove(len(p.bps) - 1)
}

func uniform(bps []*catalog.Blueprint, rng *rand.Rand) *catalog.Blueprint {
	return bps[rng.Intn(len(bps))]
}

// Choose assigns a blueprint and transform to every screen of w.
//
// Screens flagged as challenges are served first, in row-major order, each
// taking the best remaining challenge. A single random pass then fills the
// rest: home and treasure screens draw from their classes, dead ends prefer
// filler, and everything else draws a challenge by weight until they run
// out, then filler.
func Choose(w *worldmap.World, c *Classes, rng *rand.Rand) error {
	if err := c.Covers(len(w.Screens), w.TreasureCount); err != nil {
		return err
	}

	challenges := &pool{bps: append([]*catalog.Blueprint(nil), c.Challenge...), weights: c.Weights}

	for _, s := range w.Screens {
		if !s.Has(worldmap.FeatureChallenge) {
			continue
		}
		if bp := challenges.best(); bp != nil {
			s.Blueprint = bp
			logger.Debug("Prime challenge assigned", "screen", fmt.Sprintf("%d,%d", s.X, s.Y),
				"blueprint", bp.ID, "weight", c.Weights[bp.ID])
		}
	}

	for _, s := range w.Screens {
		if s.Blueprint != nil {
			continue
		}
		switch {
		case s.Has(worldmap.FeatureHome):
			s.Blueprint = uniform(c.Home, rng)
		case s.Has(worldmap.FeatureTreasure):
			s.Blueprint = uniform(c.Treasure, rng)
		case s.OpenDoorCount() == 1 && len(c.Filler) > 0:
			s.Blueprint = uniform(c.Filler, rng)
		default:
			if bp := challenges.roulette(rng); bp != nil {
				s.Blueprint = bp
			} else if len(c.Filler) > 0 {
				s.Blueprint = uniform(c.Filler, rng)
			} else {
				return fmt.Errorf("%w: nothing left for screen (%d,%d)", ErrCatalog, s.X, s.Y)
			}
		}
	}

	for _, s := range w.Screens {
		s.Transform = TransformFor(s, rng)
	}
	return nil
}

// ChooseExplicit places the requested blueprints, bypassing weights. Home
// and treasure blueprints go to the home and treasure screens in row-major
// order; the rest go to the remaining screens in order. Screens left over
// are filled from c: home and treasure screens from their classes, others
// from filler, then from the requested non-feature blueprints again, then
// from any challenge.
func ChooseExplicit(w *worldmap.World, src catalog.Source, c *Classes, ids []int, rng *rand.Rand) error {
	var homes, treasures, others []*catalog.Blueprint
	for _, id := range ids {
		bp := src.Blueprint(id)
		if bp == nil {
			return fmt.Errorf("%w: requested blueprint %d does not exist", ErrCatalog, id)
		}
		switch ClassOf(bp) {
		case ClassHome:
			homes = append(homes, bp)
		case ClassTreasure:
			treasures = append(treasures, bp)
		default:
			others = append(others, bp)
		}
	}

	treasureScreens := w.ScreensWith(worldmap.FeatureTreasure)
	if len(homes) > 1 {
		return fmt.Errorf("%w: %d home blueprints requested, world has one home", ErrCatalog, len(homes))
	}
	if len(treasures) > len(treasureScreens) {
		return fmt.Errorf("%w: %d treasure blueprints requested, world has %d treasures",
			ErrCatalog, len(treasures), len(treasureScreens))
	}
	if len(homes) == 1 {
		w.Home.Blueprint = homes[0]
	}
	for i, bp := range treasures {
		treasureScreens[i].Blueprint = bp
	}

	var plain []*worldmap.Screen
	for _, s := range w.Screens {
		if !s.Has(worldmap.FeatureHome) && !s.Has(worldmap.FeatureTreasure) {
			plain = append(plain, s)
		}
	}
	if len(others) > len(plain) {
		return fmt.Errorf("%w: %d blueprints requested for %d screens", ErrCatalog, len(others), len(plain))
	}
	for i, bp := range others {
		plain[i].Blueprint = bp
	}

	reuse := others
	if len(c.Filler) > 0 {
		reuse = c.Filler
	}
	if len(reuse) == 0 {
		reuse = c.Challenge
	}
	for _, s := range w.Screens {
		if s.Blueprint != nil {
			continue
		}
		switch {
		case s.Has(worldmap.FeatureHome):
			s.Blueprint = uniform(c.Home, rng)
		case s.Has(worldmap.FeatureTreasure):
			s.Blueprint = uniform(c.Treasure, rng)
		case len(reuse) > 0:
			s.Blueprint = uniform(reuse, rng)
		default:
			return fmt.Errorf("%w: nothing left for screen (%d,%d)", ErrCatalog, s.X, s.Y)
		}
	}

	for _, s := range w.Screens {
		s.Transform = TransformFor(s, rng)
	}
	return nil
}

// RandomTransform returns any of the four mirror transforms.
func RandomTransform(rng *rand.Rand) grid.Transform {
	return grid.Transform(rng.Intn(4))
}

// TransformFor picks the transform of a screen whose blueprint is set.
// Unchallenged blueprints are mirrored at random. A challenge is mirrored
// so that its entry side faces home and, on a screen with exactly two open
// doors, its exit side faces the other door. An axis neither side pins is
// flipped at random.
func TransformFor(s *worldmap.Screen, rng *rand.Rand) grid.Transform {
	bp := s.Blueprint
	if bp == nil || !bp.Challenged() {
		return RandomTransform(rng)
	}

	var t grid.Transform
	horzFixed, vertFixed := false, false

	orient := func(side, want grid.Direction) {
		if !side.Valid() || !want.Valid() || side.Horizontal() != want.Horizontal() {
			return
		}
		fixed, bit := &vertFixed, grid.TransformVert
		if side.Horizontal() {
			fixed, bit = &horzFixed, grid.TransformHorz
		}
		if *fixed {
			return
		}
		*fixed = true
		if t.ApplyDirection(side) != want {
			t ^= bit
		}
	}

	home := s.DirectionHome
	orient(bp.Entry, home)
	if s.OpenDoorCount() == 2 {
		for _, d := range s.OpenDirections() {
			if d != home {
				orient(bp.Exit, d)
			}
		}
	}

	if !horzFixed && rng.Intn(2) == 0 {
		t |= grid.TransformHorz
	}
	if !vertFixed && rng.Intn(2) == 0 {
		t |= grid.TransformVert
	}
	return t
}
