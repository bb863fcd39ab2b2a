// Package render draws generated worlds as text for terminals and files.
package render

import (
	"fmt"
	"strings"

	"github.com/gookit/color"

	"github.com/lawnchairsociety/screenworld/internal/grid"
	"github.com/lawnchairsociety/screenworld/internal/worldmap"
)

// Renderer turns worlds and screens into text, optionally with ANSI colour.
type Renderer struct {
	color bool

	home      color.Style
	treasure  color.Style
	challenge color.Style
	door      color.Style
	subtle    color.Style

	solid    color.Style
	heroOnly color.Style
	platform color.Style
	hazard   color.Style
	spawn    color.Style
	barrier  color.Style
	sprite   color.Style
}

// New returns a renderer. With useColor false the output is plain ASCII.
func New(useColor bool) *Renderer {
	return &Renderer{
		color:     useColor,
		home:      color.Style{color.FgGreen, color.OpBold},
		treasure:  color.Style{color.FgYellow, color.OpBold},
		challenge: color.Style{color.FgRed, color.OpBold},
		door:      color.Style{color.FgGreen},
		subtle:    color.Style{color.FgGray},
		solid:     color.Style{color.FgGray},
		heroOnly:  color.Style{color.FgCyan},
		platform:  color.Style{color.FgYellow},
		hazard:    color.Style{color.FgRed},
		spawn:     color.Style{color.FgGreen, color.OpBold},
		barrier:   color.Style{color.FgMagenta, color.OpBold},
		sprite:    color.Style{color.FgBlue},
	}
}

func (r *Renderer) paint(s color.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Sprint(text)
}

// ScreenSymbol is the one-character map symbol of a screen.
func ScreenSymbol(s *worldmap.Screen) byte {
	switch {
	case s.Has(worldmap.FeatureHome):
		return 'H'
	case s.Has(worldmap.FeatureTreasure):
		return '$'
	case s.Has(worldmap.FeatureChallenge):
		return '!'
	case s.Blueprint != nil && s.Blueprint.Challenged():
		return 'c'
	default:
		return '.'
	}
}

func (r *Renderer) symbol(s *worldmap.Screen) string {
	sym := string(ScreenSymbol(s))
	switch sym {
	case "H":
		return r.paint(r.home, sym)
	case "$":
		return r.paint(r.treasure, sym)
	case "!", "c":
		return r.paint(r.challenge, sym)
	default:
		return r.paint(r.subtle, sym)
	}
}

// World draws the screen layout, one [X] box per screen with - and |
// marking open doors to the east and south.
func (r *Renderer) World(w *worldmap.World) string {
	var b strings.Builder
	for y := 0; y < w.H; y++ {
		for x := 0; x < w.W; x++ {
			s := w.Screen(x, y)
			b.WriteString("[")
			b.WriteString(r.symbol(s))
			b.WriteString("]")
			if x < w.W-1 {
				if w.Connected(s, grid.East) {
					b.WriteString(r.paint(r.door, "-"))
				} else {
					b.WriteString(" ")
				}
			}
		}
		b.WriteString("\n")

		if y == w.H-1 {
			break
		}
		for x := 0; x < w.W; x++ {
			if w.Connected(w.Screen(x, y), grid.South) {
				b.WriteString(" " + r.paint(r.door, "|") + " ")
			} else {
				b.WriteString("   ")
			}
			if x < w.W-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Screen draws one finalized grid with POIs over the physics glyphs.
func (r *Renderer) Screen(s *worldmap.Screen) string {
	if s.Grid == nil {
		return ""
	}
	pois := make(map[grid.Point]grid.POIKind, len(s.Grid.POIs))
	for _, p := range s.Grid.POIs {
		if grid.InBounds(p.X, p.Y) {
			pois[grid.Point{X: p.X, Y: p.Y}] = p.Kind
		}
	}

	var b strings.Builder
	for y := 0; y < grid.GridH; y++ {
		for x := 0; x < grid.GridW; x++ {
			if k, ok := pois[grid.Point{X: x, Y: y}]; ok {
				b.WriteString(r.poi(k))
				continue
			}
			b.WriteString(r.cell(s.Grid.Physics(x, y)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) cell(p grid.Physics) string {
	g := string(p.Glyph())
	switch p {
	case grid.PhysicsSolid:
		return r.paint(r.solid, g)
	case grid.PhysicsHeroOnly:
		return r.paint(r.heroOnly, g)
	case grid.PhysicsPlatform:
		return r.paint(r.platform, g)
	case grid.PhysicsHazard:
		return r.paint(r.hazard, g)
	default:
		return g
	}
}

func (r *Renderer) poi(k grid.POIKind) string {
	switch k {
	case grid.POITreasure:
		return r.paint(r.treasure, "T")
	case grid.POIHeroSpawn:
		return r.paint(r.spawn, "@")
	case grid.POIBarrier:
		return r.paint(r.barrier, "B")
	default:
		return r.paint(r.sprite, "s")
	}
}

// Details lists every screen with its doors, blueprint and transform.
func (r *Renderer) Details(w *worldmap.World) string {
	var b strings.Builder
	for _, s := range w.Screens {
		doors := make([]string, 0, 4)
		for _, d := range s.OpenDirections() {
			doors = append(doors, d.String())
		}
		bp, region := "-", "-"
		if s.Blueprint != nil {
			bp = fmt.Sprintf("%d", s.Blueprint.ID)
		}
		if s.Region != nil {
			region = s.Region.Name
		}
		fmt.Fprintf(&b, "  (%d,%d) %s %-9s bp=%-4s region=%-10s home=%-5s doors=%s\n",
			s.X, s.Y, r.symbol(s), s.Features, bp, region, s.DirectionHome, strings.Join(doors, ","))
	}
	return b.String()
}

// Legend explains the symbols used by World and Screen.
func Legend() string {
	return `Legend:
  [H] Home       [$] Treasure   [!] Prime challenge
  [c] Challenge  [.] Plain
  -   Open door east/west
  |   Open door north/south

  # solid  . vacant  h hero-only  = platform  ^ hazard
  @ hero spawn  T treasure  B barrier  s sprite
`
}
