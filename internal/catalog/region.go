package catalog

import (
	"fmt"

	"github.com/lawnchairsociety/screenworld/internal/grid"
)

// Style is the tiling rule a shape uses.
type Style int

const (
	StyleSingle Style = iota // One tile everywhere
	StyleAlt4                // Base tile with three alternates
	StyleAlt8                // Base tile with seven alternates
	StyleEven4               // Four tiles, equally likely
	StyleAlt16               // Sixteen tiles, the first four common
	StyleSkinny              // Edge-aware, 16 tiles keyed by cardinal neighbours
	StyleFat                 // Block-aware, 14 tiles for 2x2-or-larger masses
	Style3x3                 // Exactly one 3x3 block
)

// String returns the string representation of a Style
func (s Style) String() string {
	switch s {
	case StyleSingle:
		return "single"
	case StyleAlt4:
		return "alt4"
	case StyleAlt8:
		return "alt8"
	case StyleEven4:
		return "even4"
	case StyleAlt16:
		return "alt16"
	case StyleSkinny:
		return "skinny"
	case StyleFat:
		return "fat"
	case Style3x3:
		return "3x3"
	default:
		return "unknown"
	}
}

// ParseStyle converts a style name to a Style.
func ParseStyle(s string) (Style, error) {
	for st := StyleSingle; st <= Style3x3; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return StyleSingle, fmt.Errorf("unknown shape style %q", s)
}

// Span is how many consecutive tiles, starting at the base tile, the style uses.
func (s Style) Span() int {
	switch s {
	case StyleSingle:
		return 1
	case StyleAlt4, StyleEven4:
		return 4
	case StyleAlt8:
		return 8
	case StyleAlt16, StyleSkinny:
		return 16
	case StyleFat:
		return 14
	case Style3x3:
		return 9
	default:
		return 1
	}
}

// Shape is a named tiling rule within a region.
type Shape struct {
	Name     string
	Style    Style
	Physics  grid.Physics
	BaseTile grid.TileID
}

// Region is a visual theme: a tilesheet plus the shapes that skin each physics kind.
type Region struct {
	ID          int
	Name        string
	TilesheetID int
	Shapes      []Shape
}

// ShapesFor returns the region's shapes for a normalized physics kind.
func (r *Region) ShapesFor(p grid.Physics) []*Shape {
	var out []*Shape
	for i := range r.Shapes {
		if r.Shapes[i].Physics.Normalize() == p.Normalize() {
			out = append(out, &r.Shapes[i])
		}
	}
	return out
}

// Validate checks that every shape's tiles fit in the tilesheet.
func (r *Region) Validate(ts *Tilesheet) error {
	if len(r.Shapes) == 0 {
		return fmt.Errorf("%w: region %d has no shapes", ErrInvalid, r.ID)
	}
	for _, sh := range r.Shapes {
		if int(sh.BaseTile)+sh.Style.Span() > ts.TileCount {
			return fmt.Errorf("%w: region %d shape %q needs tiles %d-%d, tilesheet %d has %d",
				ErrInvalid, r.ID, sh.Name, sh.BaseTile, int(sh.BaseTile)+sh.Style.Span()-1, ts.ID, ts.TileCount)
		}
	}
	return nil
}
