// Package worldmap holds the generated world: a rectangle of screens joined
// by doors, each with its blueprint, region and skinned grid.
package worldmap

import (
	"fmt"
	"strings"

	"github.com/lawnchairsociety/screenworld/internal/catalog"
	"github.com/lawnchairsociety/screenworld/internal/grid"
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// Door is the state of one side of a screen.
type Door uint8

const (
	DoorUnset Door = iota // Not yet decided, only exists during generation
	DoorClosed
	DoorOpen
)

// String returns the string representation of a Door
func (d Door) String() string {
	switch d {
	case DoorUnset:
		return "unset"
	case DoorClosed:
		return "closed"
	case DoorOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Feature flags what a screen is for.
type Feature uint8

const (
	FeatureHome Feature = 1 << iota
	FeatureTreasure
	FeatureChallenge
)

// String returns the feature names joined by '|', or "none".
func (f Feature) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	if f&FeatureHome != 0 {
		parts = append(parts, "home")
	}
	if f&FeatureTreasure != 0 {
		parts = append(parts, "treasure")
	}
	if f&FeatureChallenge != 0 {
		parts = append(parts, "challenge")
	}
	return strings.Join(parts, "|")
}

// Screen is one room of the world.
type Screen struct {
	X, Y          int
	Doors         [4]Door
	Features      Feature
	DirectionHome grid.Direction
	Blueprint     *catalog.Blueprint
	Transform     grid.Transform
	Region        *catalog.Region
	Grid          *grid.Grid
}

// Has reports whether the screen carries every flag in f.
func (s *Screen) Has(f Feature) bool {
	return s.Features&f == f
}

// Featureless reports whether the screen has no feature at all.
func (s *Screen) Featureless() bool {
	return s.Features == 0
}

// OpenDoorCount returns how many of the screen's doors are open.
func (s *Screen) OpenDoorCount() int {
	n := 0
	for _, d := range s.Doors {
		if d == DoorOpen {
			n++
		}
	}
	return n
}

// OpenDirections returns the directions of the screen's open doors, in
// North, East, South, West order.
func (s *Screen) OpenDirections() []grid.Direction {
	var out []grid.Direction
	for _, d := range grid.AllDirections() {
		if s.Doors[d] == DoorOpen {
			out = append(out, d)
		}
	}
	return out
}

// World is a w x h rectangle of screens stored row-major.
type World struct {
	W, H          int
	Screens       []*Screen
	TreasureCount int
	Home          *Screen
}

// New allocates a world of featureless screens with every door unset.
func New(w, h int) *World {
	world := &World{W: w, H: h, Screens: make([]*Screen, 0, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			world.Screens = append(world.Screens, &Screen{X: x, Y: y, DirectionHome: grid.DirNone})
		}
	}
	return world
}

// InBounds reports whether (x, y) is a screen coordinate.
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && x < w.W && y >= 0 && y < w.H
}

// Screen returns the screen at (x, y), or nil outside the world.
func (w *World) Screen(x, y int) *Screen {
	if !w.InBounds(x, y) {
		return nil
	}
	return w.Screens[y*w.W+x]
}

// Neighbor returns the screen next to s in direction d, or nil.
func (w *World) Neighbor(s *Screen, d grid.Direction) *Screen {
	if !d.Valid() {
		return nil
	}
	dx, dy := d.Delta()
	return w.Screen(s.X+dx, s.Y+dy)
}

// SetDoor sets the door on side d of s and the matching door of the
// neighbour, keeping the shared edge in sync. Doors on the world boundary
// can only be closed.
func (w *World) SetDoor(s *Screen, d grid.Direction, state Door) error {
	n := w.Neighbor(s, d)
	if n == nil {
		if state == DoorOpen {
			return fmt.Errorf("screen (%d,%d) has no %s neighbour to open a door to", s.X, s.Y, d)
		}
		s.Doors[d] = state
		return nil
	}
	s.Doors[d] = state
	n.Doors[d.Opposite()] = state
	return nil
}

// Connected reports whether s has an open door towards d with a neighbour behind it.
func (w *World) Connected(s *Screen, d grid.Direction) bool {
	return d.Valid() && s.Doors[d] == DoorOpen && w.Neighbor(s, d) != nil
}

// ScreensWith returns every screen carrying f, in row-major order.
func (w *World) ScreensWith(f Feature) []*Screen {
	var out []*Screen
	for _, s := range w.Screens {
		if s.Has(f) {
			out = append(out, s)
		}
	}
	return out
}

// ReachableFrom returns the set of screens joined to start by open doors.
func (w *World) ReachableFrom(start *Screen) mapset.Set[*Screen] {
	seen := mapset.New[*Screen]()
	seen.Put(start)
	q := queue.New[*Screen]()
	q.Enqueue(start)
	for !q.Empty() {
		s := q.Dequeue()
		for _, d := range grid.AllDirections() {
			if !w.Connected(s, d) {
				continue
			}
			n := w.Neighbor(s, d)
			if seen.Has(n) {
				continue
			}
			seen.Put(n)
			q.Enqueue(n)
		}
	}
	return seen
}

// Reachable reports whether every screen can be reached from home.
func (w *World) Reachable() bool {
	if w.Home == nil {
		return false
	}
	return w.ReachableFrom(w.Home).Size() == len(w.Screens)
}

// HomewardPathOK reports whether following DirectionHome from every screen
// reaches home through open doors without revisiting a screen.
func (w *World) HomewardPathOK() error {
	if w.Home == nil {
		return fmt.Errorf("world has no home screen")
	}
	for _, start := range w.Screens {
		visited := mapset.New[*Screen]()
		s := start
		for s != w.Home {
			if visited.Has(s) {
				return fmt.Errorf("homeward path from (%d,%d) loops at (%d,%d)", start.X, start.Y, s.X, s.Y)
			}
			if visited.Size() > len(w.Screens) {
				return fmt.Errorf("homeward path from (%d,%d) is too long", start.X, start.Y)
			}
			visited.Put(s)
			if !w.Connected(s, s.DirectionHome) {
				return fmt.Errorf("screen (%d,%d) points %s through a closed door", s.X, s.Y, s.DirectionHome)
			}
			s = w.Neighbor(s, s.DirectionHome)
		}
	}
	return nil
}

// TreasureIDs returns the Arg of every treasure POI, in row-major screen
// order and POI order.
func (w *World) TreasureIDs() []int {
	var ids []int
	for _, s := range w.Screens {
		if s.Grid == nil {
			continue
		}
		for _, p := range s.Grid.POIs {
			if p.Kind == grid.POITreasure {
				ids = append(ids, p.Arg)
			}
		}
	}
	return ids
}

// DoorsSettled reports whether every door is open or closed and every shared
// edge agrees on both sides.
func (w *World) DoorsSettled() error {
	for _, s := range w.Screens {
		for _, d := range grid.AllDirections() {
			if s.Doors[d] == DoorUnset {
				return fmt.Errorf("screen (%d,%d) %s door is unset", s.X, s.Y, d)
			}
			if n := w.Neighbor(s, d); n != nil && n.Doors[d.Opposite()] != s.Doors[d] {
				return fmt.Errorf("screen (%d,%d) %s door disagrees with its neighbour", s.X, s.Y, d)
			}
		}
	}
	return nil
}
