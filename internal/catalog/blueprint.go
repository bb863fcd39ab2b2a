package catalog

import (
	"fmt"

	"github.com/lawnchairsociety/screenworld/internal/grid"
)

// Skill is a bitmask of abilities the party has unlocked.
type Skill uint32

// Has reports whether every bit of req is present in s.
func (s Skill) Has(req Skill) bool {
	return req&^s == 0
}

// Party describes who a world is generated for.
type Party struct {
	Players    int
	Skills     Skill
	Difficulty int
}

// Solution is one authored way through a blueprint's challenge.
type Solution struct {
	MinPlayers int
	MaxPlayers int
	Difficulty int
	Preference int
	Skills     Skill // required skills
}

// Matches reports whether the party can use this solution.
func (s Solution) Matches(p Party) bool {
	return p.Players >= s.MinPlayers &&
		p.Players <= s.MaxPlayers &&
		s.Difficulty <= p.Difficulty &&
		p.Skills.Has(s.Skills)
}

// Blueprint is a hand-authored physics template for one screen's interior.
type Blueprint struct {
	ID        int
	Name      string
	Cells     []grid.Physics // BlueprintW x BlueprintH, row-major
	POIs      []grid.POI
	Solutions []Solution
	Entry     grid.Direction // side the challenge is entered from, DirNone if any
	Exit      grid.Direction // side the challenge is left by, DirNone if any
}

// Physics returns the cell at blueprint coordinate (x, y).
func (bp *Blueprint) Physics(x, y int) grid.Physics {
	return bp.Cells[y*grid.BlueprintW+x]
}

// HasPOI reports whether the blueprint holds a POI of kind k.
func (bp *Blueprint) HasPOI(k grid.POIKind) bool {
	for _, p := range bp.POIs {
		if p.Kind == k {
			return true
		}
	}
	return false
}

// Challenged reports whether the blueprint has at least one authored solution.
func (bp *Blueprint) Challenged() bool {
	return len(bp.Solutions) > 0
}

// MatchingSolutions returns the solutions the party can use, in authored order.
func (bp *Blueprint) MatchingSolutions(p Party) []Solution {
	var out []Solution
	for _, s := range bp.Solutions {
		if s.Matches(p) {
			out = append(out, s)
		}
	}
	return out
}

// Usable reports whether the party may be given this blueprint: either it is
// unchallenged or at least one solution matches.
func (bp *Blueprint) Usable(p Party) bool {
	if !bp.Challenged() {
		return true
	}
	for _, s := range bp.Solutions {
		if s.Matches(p) {
			return true
		}
	}
	return false
}

// Validate checks dimensions, POI bounds and solution ranges.
func (bp *Blueprint) Validate() error {
	if len(bp.Cells) != grid.BlueprintW*grid.BlueprintH {
		return fmt.Errorf("%w: blueprint %d has %d cells, want %d",
			ErrInvalid, bp.ID, len(bp.Cells), grid.BlueprintW*grid.BlueprintH)
	}
	for i, p := range bp.POIs {
		if p.X < 0 || p.X >= grid.BlueprintW || p.Y < 0 || p.Y >= grid.BlueprintH {
			return fmt.Errorf("%w: blueprint %d poi %d at (%d,%d) out of bounds", ErrInvalid, bp.ID, i, p.X, p.Y)
		}
	}
	for i, s := range bp.Solutions {
		if s.MinPlayers < 1 || s.MaxPlayers < s.MinPlayers {
			return fmt.Errorf("%w: blueprint %d solution %d has player range %d-%d",
				ErrInvalid, bp.ID, i, s.MinPlayers, s.MaxPlayers)
		}
		if s.Difficulty < 1 {
			return fmt.Errorf("%w: blueprint %d solution %d has difficulty %d", ErrInvalid, bp.ID, i, s.Difficulty)
		}
	}
	return nil
}
