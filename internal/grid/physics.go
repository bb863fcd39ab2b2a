package grid

import "fmt"

// Physics is the collision kind of a single cell.
type Physics uint8

const (
	PhysicsVacant   Physics = iota // Open air
	PhysicsSolid                   // Impassable wall
	PhysicsHeroOnly                // Passable by heroes, blocks sprites
	PhysicsPlatform                // One-way platform
	PhysicsHazard                  // Damaging terrain
)

// String returns the string representation of a Physics kind
func (p Physics) String() string {
	switch p {
	case PhysicsVacant:
		return "vacant"
	case PhysicsSolid:
		return "solid"
	case PhysicsHeroOnly:
		return "hero_only"
	case PhysicsPlatform:
		return "platform"
	case PhysicsHazard:
		return "hazard"
	default:
		return "unknown"
	}
}

// ParsePhysics converts a physics name to a Physics kind.
func ParsePhysics(s string) (Physics, error) {
	switch s {
	case "vacant", "":
		return PhysicsVacant, nil
	case "solid":
		return PhysicsSolid, nil
	case "hero_only":
		return PhysicsHeroOnly, nil
	case "platform":
		return PhysicsPlatform, nil
	case "hazard":
		return PhysicsHazard, nil
	}
	return PhysicsVacant, fmt.Errorf("unknown physics %q", s)
}

// Passable reports whether heroes can move through the cell.
func (p Physics) Passable() bool {
	return p != PhysicsSolid
}

// Normalize folds physics kinds that are skinned together.
// Hero-only cells look like vacant cells.
func (p Physics) Normalize() Physics {
	if p == PhysicsHeroOnly {
		return PhysicsVacant
	}
	return p
}

// Glyphs used by blueprint rows in catalog files and by map dumps.
const (
	GlyphVacant   = '.'
	GlyphSolid    = '#'
	GlyphHeroOnly = 'h'
	GlyphPlatform = '='
	GlyphHazard   = '^'
)

// PhysicsFromGlyph decodes one blueprint row character.
func PhysicsFromGlyph(r rune) (Physics, bool) {
	switch r {
	case GlyphVacant:
		return PhysicsVacant, true
	case GlyphSolid:
		return PhysicsSolid, true
	case GlyphHeroOnly:
		return PhysicsHeroOnly, true
	case GlyphPlatform:
		return PhysicsPlatform, true
	case GlyphHazard:
		return PhysicsHazard, true
	}
	return PhysicsVacant, false
}

// Glyph returns the row character for p.
func (p Physics) Glyph() rune {
	switch p {
	case PhysicsSolid:
		return GlyphSolid
	case PhysicsHeroOnly:
		return GlyphHeroOnly
	case PhysicsPlatform:
		return GlyphPlatform
	case PhysicsHazard:
		return GlyphHazard
	default:
		return GlyphVacant
	}
}
