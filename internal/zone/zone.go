// Package zone partitions a screen grid into connected regions of matching
// physics and analyzes their shape so the skinner can pick a tiling style.
package zone

import (
	"slices"

	"github.com/lawnchairsociety/screenworld/internal/catalog"
	"github.com/lawnchairsociety/screenworld/internal/grid"
)

// Neighbour mask bits, clockwise from north.
const (
	MaskN uint8 = 1 << iota
	MaskNE
	MaskE
	MaskSE
	MaskS
	MaskSW
	MaskW
	MaskNW

	MaskCardinals = MaskN | MaskE | MaskS | MaskW
	MaskDiagonals = MaskNE | MaskSE | MaskSW | MaskNW
	MaskAll       = MaskCardinals | MaskDiagonals
)

// neighbours lists the offset of every mask bit, in bit order.
var neighbours = [8]struct {
	bit    uint8
	dx, dy int
}{
	{MaskN, 0, -1},
	{MaskNE, 1, -1},
	{MaskE, 1, 0},
	{MaskSE, 1, 1},
	{MaskS, 0, 1},
	{MaskSW, -1, 1},
	{MaskW, -1, 0},
	{MaskNW, -1, -1},
}

// opposite returns the bit a neighbour uses to point back at this cell.
func opposite(bit uint8) uint8 {
	return bit<<4 | bit>>4
}

// Zone is a 4-connected set of cells with one normalized physics kind.
// Cells are kept sorted in row-major order. Masks is parallel to Cells and
// only meaningful after Analyze.
type Zone struct {
	Physics grid.Physics
	Cells   []grid.Point
	Masks   []uint8

	FoursquareC int
	EdgeC       int
	FatFailC    int
	Contains3x3 bool
	Exact3x3    bool

	Shape *catalog.Shape
}

func comparePoints(a, b grid.Point) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}

// clear empties the zone while keeping its buffers.
func (z *Zone) clear() {
	z.Physics = grid.PhysicsVacant
	z.Cells = z.Cells[:0]
	z.Masks = z.Masks[:0]
	z.FoursquareC = 0
	z.EdgeC = 0
	z.FatFailC = 0
	z.Contains3x3 = false
	z.Exact3x3 = false
	z.Shape = nil
}

// Len returns the number of cells in the zone.
func (z *Zone) Len() int { return len(z.Cells) }

func (z *Zone) index(x, y int) (int, bool) {
	return slices.BinarySearchFunc(z.Cells, grid.Point{X: x, Y: y}, comparePoints)
}

// Contains reports whether (x, y) belongs to the zone.
func (z *Zone) Contains(x, y int) bool {
	_, ok := z.index(x, y)
	return ok
}

// Add inserts (x, y) in sorted position. It returns false if already present.
func (z *Zone) Add(x, y int) bool {
	i, ok := z.index(x, y)
	if ok {
		return false
	}
	z.Cells = slices.Insert(z.Cells, i, grid.Point{X: x, Y: y})
	z.Masks = slices.Insert(z.Masks, i, 0)
	return true
}

// set adds (x, y) with a known mask.
func (z *Zone) set(x, y int, m uint8) {
	z.Add(x, y)
	i, _ := z.index(x, y)
	z.Masks[i] = m
}

// Remove deletes (x, y). It returns false if it was not present.
func (z *Zone) Remove(x, y int) bool {
	i, ok := z.index(x, y)
	if !ok {
		return false
	}
	z.Cells = slices.Delete(z.Cells, i, i+1)
	z.Masks = slices.Delete(z.Masks, i, i+1)
	return true
}

// Mask returns the neighbour mask of (x, y), or 0 if it is not in the zone.
func (z *Zone) Mask(x, y int) uint8 {
	i, ok := z.index(x, y)
	if !ok {
		return 0
	}
	return z.Masks[i]
}

// First returns the first cell in row-major order.
func (z *Zone) First() (grid.Point, bool) {
	if len(z.Cells) == 0 {
		return grid.Point{}, false
	}
	return z.Cells[0], true
}

// FoursquareMember reports whether a cell with mask m is one corner of a
// fully present 2x2 block in any orientation.
func FoursquareMember(m uint8) bool {
	return m&(MaskE|MaskSE|MaskS) == MaskE|MaskSE|MaskS ||
		m&(MaskW|MaskSW|MaskS) == MaskW|MaskSW|MaskS ||
		m&(MaskN|MaskNE|MaskE) == MaskN|MaskNE|MaskE ||
		m&(MaskN|MaskNW|MaskW) == MaskN|MaskNW|MaskW
}

// Isthmus reports whether a cell with mask m has every cardinal neighbour
// but exactly one opposing pair of diagonals. Such a cell joins two blocks
// corner to corner and no block tile can draw it.
func Isthmus(m uint8) bool {
	if m&MaskCardinals != MaskCardinals {
		return false
	}
	d := m & MaskDiagonals
	return d == MaskNW|MaskSE || d == MaskNE|MaskSW
}
