package grid

// edge addresses one side of a grid: index runs along the side, depth runs
// inward from the outermost margin line (depth 0).
type edge struct {
	side Direction
}

func (e edge) length() int {
	if e.side.Vertical() {
		return GridW
	}
	return GridH
}

// depthLimit is how far inward depth may go before leaving the grid.
func (e edge) depthLimit() int {
	if e.side.Vertical() {
		return GridH
	}
	return GridW
}

func (e edge) coord(index, depth int) (int, int) {
	switch e.side {
	case North:
		return index, depth
	case South:
		return index, GridH - 1 - depth
	case West:
		return depth, index
	default:
		return GridW - 1 - depth, index
	}
}

// span is a contiguous run of cells along an edge.
type span struct {
	start, length int
}

func (s span) end() int { return s.start + s.length }

// widestRun finds the widest passable run on the line at depth, ignoring
// the corner cells that belong to the perpendicular margins.
func widestRun(g *Grid, e edge, depth int) span {
	best := span{}
	cur := span{}
	for i := Margin; i < e.length()-Margin; i++ {
		x, y := e.coord(i, depth)
		if g.Physics(x, y).Passable() {
			if cur.length == 0 {
				cur.start = i
			}
			cur.length++
			if cur.length > best.length {
				best = cur
			}
		} else {
			cur.length = 0
		}
	}
	return best
}

// PopulateMargins stitches the margins of g to its neighbours. A nil
// neighbour seals that side. A neighbour that is already finalized dictates
// the exact opening; otherwise the opening is the average of both facing
// edges so that whichever screen is stitched second lines up with it. The
// four 2x2 corners are always solid.
func PopulateMargins(g, north, south, west, east *Grid) {
	neighbours := [4]*Grid{North: north, East: east, South: south, West: west}

	for _, d := range AllDirections() {
		e := edge{side: d}
		n := neighbours[d]
		if n == nil {
			seal(g, e)
			continue
		}
		open := opening(g, n, e)
		carve(g, e, open)
	}

	sealCorners(g)
	g.Finalized = true
}

// opening decides where the doorway on edge e goes.
func opening(g, n *Grid, e edge) span {
	theirs := edge{side: e.side.Opposite()}

	if n.Finalized {
		if exact := widestRun(n, theirs, 0); exact.length > 0 {
			return exact
		}
	}

	mine := widestRun(g, e, Margin)
	other := widestRun(n, theirs, Margin)
	if mine.length == 0 {
		mine = centreSpan(e)
	}
	if other.length == 0 {
		other = centreSpan(e)
	}

	s := span{
		start:  (mine.start + other.start) / 2,
		length: (mine.length + other.length) / 2,
	}
	if s.length < 1 {
		s.length = 1
	}
	if s.end() > e.length()-Margin {
		s.start = e.length() - Margin - s.length
	}
	return s
}

func centreSpan(e edge) span {
	return span{start: e.length()/2 - 1, length: 2}
}

// seal fills the whole margin on edge e with solid cells.
func seal(g *Grid, e edge) {
	for i := 0; i < e.length(); i++ {
		for depth := 0; depth < Margin; depth++ {
			x, y := e.coord(i, depth)
			g.SetPhysics(x, y, PhysicsSolid)
		}
	}
}

// carve seals the margin on edge e except for the opening, then tunnels from
// the opening into the interior until every opening lane meets a passable cell.
func carve(g *Grid, e edge, open span) {
	seal(g, e)
	for i := open.start; i < open.end(); i++ {
		for depth := 0; depth < Margin; depth++ {
			x, y := e.coord(i, depth)
			g.SetPhysics(x, y, PhysicsVacant)
		}
		for depth := Margin; depth < e.depthLimit()-Margin; depth++ {
			x, y := e.coord(i, depth)
			if g.Physics(x, y).Passable() {
				break
			}
			g.SetPhysics(x, y, PhysicsVacant)
		}
	}
}

func sealCorners(g *Grid) {
	for _, cx := range []int{0, GridW - Margin} {
		for _, cy := range []int{0, GridH - Margin} {
			for y := cy; y < cy+Margin; y++ {
				for x := cx; x < cx+Margin; x++ {
					g.SetPhysics(x, y, PhysicsSolid)
				}
			}
		}
	}
}

// Opening reports the passable run on the outermost margin line of side d,
// as (start, length). A sealed side returns length 0.
func (g *Grid) Opening(d Direction) (int, int) {
	s := widestRun(g, edge{side: d}, 0)
	return s.start, s.length
}
