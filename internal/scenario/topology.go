package scenario

import (
	"fmt"

	"github.com/lawnchairsociety/screenworld/internal/grid"
	"github.com/lawnchairsociety/screenworld/internal/logger"
	"github.com/lawnchairsociety/screenworld/internal/worldmap"
	"github.com/zyedidia/generic/queue"
)

// treasurePushBudget is how many screens a treasure may be pushed away from home.
const treasurePushBudget = 8

// centre picks the middle index of n, either of the two when n is even.
func (g *Generator) centre(n int) int {
	if n%2 == 1 {
		return n / 2
	}
	return n/2 - 1 + g.rng.Intn(2)
}

func (g *Generator) placeHome() error {
	w := g.world
	var home *worldmap.Screen
	if g.treasurec == 1 {
		var edge []*worldmap.Screen
		for _, s := range w.Screens {
			if s.X == 0 || s.Y == 0 || s.X == w.W-1 || s.Y == w.H-1 {
				edge = append(edge, s)
			}
		}
		home = edge[g.rng.Intn(len(edge))]
	} else {
		home = w.Screen(g.centre(w.W), g.centre(w.H))
	}

	home.Features |= worldmap.FeatureHome
	w.Home = home
	g.homeX, g.homeY = home.X, home.Y
	logger.Debug("Home placed", "screen", screenName(home))
	return nil
}

// lonely reports whether s and all its neighbours are featureless.
func (g *Generator) lonely(s *worldmap.Screen) bool {
	if !s.Featureless() {
		return false
	}
	for _, d := range grid.AllDirections() {
		if n := g.world.Neighbor(s, d); n != nil && !n.Featureless() {
			return false
		}
	}
	return true
}

func (g *Generator) placeTreasures() error {
	for i := 0; i < g.treasurec; i++ {
		var lonely, free []*worldmap.Screen
		for _, s := range g.world.Screens {
			if !s.Featureless() {
				continue
			}
			free = append(free, s)
			if g.lonely(s) {
				lonely = append(lonely, s)
			}
		}

		candidates := lonely
		if len(candidates) == 0 {
			candidates = free
		}
		if len(candidates) == 0 {
			return fmt.Errorf("%w: treasure %d of %d", ErrPlacement, i+1, g.treasurec)
		}
		s := candidates[g.rng.Intn(len(candidates))]
		s.Features |= worldmap.FeatureTreasure
		logger.Debug("Treasure placed", "screen", screenName(s), "lonely", len(lonely) > 0)
	}
	return nil
}

// connected reports whether open doors already join from and to. It runs a
// depth-first search over the generator's stack.
func (g *Generator) connected(from, to *worldmap.Screen) bool {
	g.stack = append(g.stack[:0], from)
	g.visited.Clear()
	g.visited.Put(from)
	for len(g.stack) > 0 {
		s := g.stack[len(g.stack)-1]
		g.stack = g.stack[:len(g.stack)-1]
		if s == to {
			return true
		}
		for _, d := range grid.AllDirections() {
			if !g.world.Connected(s, d) {
				continue
			}
			n := g.world.Neighbor(s, d)
			if !g.visited.Has(n) {
				g.visited.Put(n)
				g.stack = append(g.stack, n)
			}
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// directionOrder lists the directions to try from s when heading home:
// those that close the distance, the axis with the larger gap first, then
// sideways along the other axis, then away.
func (g *Generator) directionOrder(s *worldmap.Screen) []grid.Direction {
	dx, dy := g.homeX-s.X, g.homeY-s.Y

	h, v := grid.DirNone, grid.DirNone
	switch {
	case dx > 0:
		h = grid.East
	case dx < 0:
		h = grid.West
	}
	switch {
	case dy > 0:
		v = grid.South
	case dy < 0:
		v = grid.North
	}

	order := make([]grid.Direction, 0, 4)
	add := func(d grid.Direction) {
		if !d.Valid() {
			return
		}
		for _, o := range order {
			if o == d {
				return
			}
		}
		order = append(order, d)
	}

	if abs(dx) >= abs(dy) {
		add(h)
		add(v)
		add(grid.North)
		add(grid.South)
	} else {
		add(v)
		add(h)
		add(grid.East)
		add(grid.West)
	}
	for _, d := range grid.AllDirections() {
		add(d)
	}
	return order
}

// search extends the path on the stack from s towards home. In strict mode
// it will not pass through other treasure screens.
func (g *Generator) search(s *worldmap.Screen, strict bool) bool {
	g.visited.Put(s)
	g.stack = append(g.stack, s)
	if s == g.world.Home {
		return true
	}
	for _, d := range g.directionOrder(s) {
		n := g.world.Neighbor(s, d)
		if n == nil || g.visited.Has(n) {
			continue
		}
		if strict && n.Has(worldmap.FeatureTreasure) {
			continue
		}
		if g.search(n, strict) {
			return true
		}
	}
	g.stack = g.stack[:len(g.stack)-1]
	return false
}

// forge finds a path from t to home and opens every door along it.
func (g *Generator) forge(t *worldmap.Screen, strict bool) (bool, error) {
	g.stack = g.stack[:0]
	g.visited.Clear()
	if !g.search(t, strict) {
		return false, nil
	}
	for i := 0; i+1 < len(g.stack); i++ {
		a, b := g.stack[i], g.stack[i+1]
		for _, d := range grid.AllDirections() {
			if g.world.Neighbor(a, d) == b {
				if err := g.world.SetDoor(a, d, worldmap.DoorOpen); err != nil {
					return false, err
				}
				break
			}
		}
	}
	return true, nil
}

func (g *Generator) forgePaths() error {
	home := g.world.Home
	for _, t := range g.world.ScreensWith(worldmap.FeatureTreasure) {
		if g.connected(t, home) {
			continue
		}
		ok, err := g.forge(t, true)
		if err != nil {
			return err
		}
		if !ok {
			logger.Debug("Strict path forge failed, relaxing", "screen", screenName(t))
			ok, err = g.forge(t, false)
			if err != nil {
				return err
			}
		}
		if !ok {
			return fmt.Errorf("%w: treasure at (%s)", ErrPathForge, screenName(t))
		}
		logger.Debug("Path forged", "screen", screenName(t), "length", len(g.stack))
	}
	return nil
}

// repairReachability opens a random unset door on every screen home cannot
// reach, until home reaches them all.
func (g *Generator) repairReachability() error {
	w := g.world
	budget := 4 * len(w.Screens)
	for round := 0; ; round++ {
		reach := w.ReachableFrom(w.Home)
		if reach.Size() == len(w.Screens) {
			return nil
		}
		if round >= budget {
			return fmt.Errorf("%w: %d of %d screens unreachable after %d rounds",
				ErrRepair, len(w.Screens)-reach.Size(), len(w.Screens), round)
		}

		for _, s := range w.Screens {
			if reach.Has(s) {
				continue
			}
			var unset []grid.Direction
			for _, d := range grid.AllDirections() {
				if s.Doors[d] == worldmap.DoorUnset && w.Neighbor(s, d) != nil {
					unset = append(unset, d)
				}
			}
			if len(unset) == 0 {
				continue
			}
			d := unset[g.rng.Intn(len(unset))]
			if err := w.SetDoor(s, d, worldmap.DoorOpen); err != nil {
				return err
			}
		}
	}
}

func (g *Generator) finalizeDoors() {
	for _, s := range g.world.Screens {
		for _, d := range grid.AllDirections() {
			if s.Doors[d] == worldmap.DoorUnset {
				s.Doors[d] = worldmap.DoorClosed
			}
		}
	}
}

// labelHomeward floods out from home through open doors. Each screen points
// back at the screen that discovered it.
func (g *Generator) labelHomeward() {
	w := g.world
	g.visited.Clear()
	g.visited.Put(w.Home)
	w.Home.DirectionHome = grid.DirNone

	q := queue.New[*worldmap.Screen]()
	q.Enqueue(w.Home)
	for !q.Empty() {
		s := q.Dequeue()
		for _, d := range grid.AllDirections() {
			if !w.Connected(s, d) {
				continue
			}
			n := w.Neighbor(s, d)
			if g.visited.Has(n) {
				continue
			}
			g.visited.Put(n)
			n.DirectionHome = d.Opposite()
			q.Enqueue(n)
		}
	}
}

// pushTreasures moves each treasure further from home, one screen at a
// time, onto a featureless screen behind an open door that lies downstream.
func (g *Generator) pushTreasures() {
	w := g.world
	for _, t := range w.ScreensWith(worldmap.FeatureTreasure) {
		cur := t
		for i := 0; i < treasurePushBudget; i++ {
			away := cur.DirectionHome.Opposite()
			if !away.Valid() {
				break
			}
			var next *worldmap.Screen
			for _, d := range []grid.Direction{away, away.Clockwise(), away.CounterClockwise()} {
				n := w.Neighbor(cur, d)
				if n == nil || !n.Featureless() || !w.Connected(cur, d) || n.DirectionHome != d.Opposite() {
					continue
				}
				next = n
				break
			}
			if next == nil {
				break
			}
			cur.Features &^= worldmap.FeatureTreasure
			next.Features |= worldmap.FeatureTreasure
			cur = next
		}
		if cur != t {
			logger.Debug("Treasure pushed", "from", screenName(t), "to", screenName(cur))
		}
	}
}

// primeChallenges flags featureless two-door screens next to a treasure,
// whether or not a door joins them to it.
func (g *Generator) primeChallenges() {
	w := g.world
	for _, s := range w.Screens {
		if !s.Featureless() || s.OpenDoorCount() != 2 {
			continue
		}
		for _, d := range grid.AllDirections() {
			if n := w.Neighbor(s, d); n != nil && n.Has(worldmap.FeatureTreasure) {
				s.Features |= worldmap.FeatureChallenge
				break
			}
		}
	}
}
