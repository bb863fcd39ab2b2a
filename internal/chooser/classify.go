// Package chooser matches catalog blueprints to world screens. It sorts the
// usable blueprints into classes, weights challenge blueprints against the
// party and assigns a blueprint and mirror transform to every screen.
package chooser

import (
	"errors"
	"fmt"

	"github.com/lawnchairsociety/screenworld/internal/catalog"
	"github.com/lawnchairsociety/screenworld/internal/grid"
)

var ErrCatalog = errors.New("chooser: catalog cannot cover world")

// Class is the role a blueprint can fill.
type Class int

const (
	ClassHome Class = iota
	ClassTreasure
	ClassChallenge
	ClassFiller
)

// String returns the string representation of a Class
func (c Class) String() string {
	switch c {
	case ClassHome:
		return "home"
	case ClassTreasure:
		return "treasure"
	case ClassChallenge:
		return "challenge"
	case ClassFiller:
		return "filler"
	default:
		return "unknown"
	}
}

// ClassOf sorts a blueprint by content: a hero spawn makes it a home, a
// treasure marker a treasure, any solution a challenge.
func ClassOf(bp *catalog.Blueprint) Class {
	switch {
	case bp.HasPOI(grid.POIHeroSpawn):
		return ClassHome
	case bp.HasPOI(grid.POITreasure):
		return ClassTreasure
	case bp.Challenged():
		return ClassChallenge
	default:
		return ClassFiller
	}
}

// Classes holds the usable blueprints of a catalog split by class, each list
// ordered by blueprint id.
type Classes struct {
	Party     catalog.Party
	Home      []*catalog.Blueprint
	Treasure  []*catalog.Blueprint
	Challenge []*catalog.Blueprint
	Filler    []*catalog.Blueprint
	Weights   map[int]int // challenge blueprint id -> weight
}

// Classify filters src to the blueprints the party can use and sorts them
// into classes. It fails if there is no usable home or treasure blueprint.
func Classify(src catalog.Source, party catalog.Party) (*Classes, error) {
	c := &Classes{Party: party, Weights: make(map[int]int)}

	for _, bp := range src.Blueprints() {
		if !bp.Usable(party) {
			continue
		}
		switch ClassOf(bp) {
		case ClassHome:
			c.Home = append(c.Home, bp)
		case ClassTreasure:
			c.Treasure = append(c.Treasure, bp)
		case ClassChallenge:
			c.Challenge = append(c.Challenge, bp)
			c.Weights[bp.ID] = Weight(bp, party)
		default:
			c.Filler = append(c.Filler, bp)
		}
	}

	if len(c.Home) == 0 {
		return nil, fmt.Errorf("%w: no usable home blueprint for %d players at difficulty %d",
			ErrCatalog, party.Players, party.Difficulty)
	}
	if len(c.Treasure) == 0 {
		return nil, fmt.Errorf("%w: no usable treasure blueprint for %d players at difficulty %d",
			ErrCatalog, party.Players, party.Difficulty)
	}
	return c, nil
}

// Covers checks that a world of screens screens with treasurec treasures can
// be filled: every screen other than home and the treasures needs its own
// challenge blueprint unless there is filler to reuse.
func (c *Classes) Covers(screens, treasurec int) error {
	others := screens - treasurec - 1
	if others > len(c.Challenge) && len(c.Filler) == 0 {
		return fmt.Errorf("%w: %d screens need blueprints but only %d challenges and no filler are usable",
			ErrCatalog, others, len(c.Challenge))
	}
	return nil
}

// Weight scores how well a challenge blueprint suits the party. It uses the
// matching solution with the lowest difficulty, the first one on ties.
func Weight(bp *catalog.Blueprint, party catalog.Party) int {
	matching := bp.MatchingSolutions(party)
	if len(matching) == 0 {
		return 1
	}
	best := matching[0]
	for _, s := range matching[1:] {
		if s.Difficulty < best.Difficulty {
			best = s
		}
	}
	w := 100 + 20*len(matching) + 64*best.Difficulty + 32*best.MinPlayers + best.Preference
	return max(1, w)
}
