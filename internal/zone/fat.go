package zone

import (
	"github.com/lawnchairsociety/screenworld/internal/grid"
	"github.com/zyedidia/generic/stack"
)

// ForceFATCompatibility splits z so that every resulting zone either tiles
// as solid blocks or contains no block at all.
//
// Isthmus cells are pulled out first and their bits cleared from the masks
// of the cells around them. The remaining cells are bucketed into good
// cells (a corner of some 2x2 block) and bad cells. z keeps the connected
// good component of its first good cell; every other component, good or
// bad, becomes a new zone spawned from the pool. All affected zones are
// re-analyzed. The spawned zones are returned.
func (p *Pool) ForceFATCompatibility(z *Zone, w, h int) []*Zone {
	Analyze(z, w, h)

	good := p.Spawn(z.Physics)
	bad := p.Spawn(z.Physics)

	var isthmus []grid.Point
	for i, c := range z.Cells {
		if Isthmus(z.Masks[i]) {
			isthmus = append(isthmus, c)
		}
	}
	for _, c := range isthmus {
		detach(z, c)
		bad.set(c.X, c.Y, 0)
	}

	for i, c := range z.Cells {
		if FoursquareMember(z.Masks[i]) {
			good.set(c.X, c.Y, z.Masks[i])
		} else {
			bad.set(c.X, c.Y, z.Masks[i])
		}
	}

	physics := z.Physics
	z.clear()
	z.Physics = physics

	keep := good
	if good.Len() == 0 {
		keep = bad
	}
	if first, ok := keep.First(); ok {
		extract(keep, z, first)
	}

	var spawned []*Zone
	for _, src := range []*Zone{good, bad} {
		for src.Len() > 0 {
			first, _ := src.First()
			nz := p.Spawn(physics)
			extract(src, nz, first)
			spawned = append(spawned, nz)
		}
	}

	Analyze(z, w, h)
	for _, nz := range spawned {
		Analyze(nz, w, h)
	}

	p.release(good, bad)
	return spawned
}

// detach removes c from z and clears the bits that pointed at it from the
// masks of its neighbours.
func detach(z *Zone, c grid.Point) {
	for _, n := range neighbours {
		if i, ok := z.index(c.X+n.dx, c.Y+n.dy); ok {
			z.Masks[i] &^= opposite(n.bit)
		}
	}
	z.Remove(c.X, c.Y)
}

var cardinalBits = [4]struct {
	bit uint8
	dir grid.Direction
}{
	{MaskN, grid.North},
	{MaskE, grid.East},
	{MaskS, grid.South},
	{MaskW, grid.West},
}

// extract moves the component of src containing start into dst, following
// only the cardinal bits of each cell's mask. Cells are removed from src as
// they are taken so none is visited twice.
func extract(src, dst *Zone, start grid.Point) {
	type item struct {
		c grid.Point
		m uint8
	}

	m := src.Mask(start.X, start.Y)
	if !src.Remove(start.X, start.Y) {
		return
	}
	todo := stack.New[item]()
	todo.Push(item{start, m})
	for todo.Size() > 0 {
		it := todo.Pop()
		dst.Add(it.c.X, it.c.Y)
		for _, cb := range cardinalBits {
			if it.m&cb.bit == 0 {
				continue
			}
			dx, dy := cb.dir.Delta()
			n := grid.Point{X: it.c.X + dx, Y: it.c.Y + dy}
			nm := src.Mask(n.X, n.Y)
			if src.Remove(n.X, n.Y) {
				todo.Push(item{n, nm})
			}
		}
	}
}

// release returns scratch zones to the pool. Later slots shift down over
// them, so zones spawned after the scratch keep their relative order.
func (p *Pool) release(scratch ...*Zone) {
	for _, s := range scratch {
		for i := 0; i < p.active; i++ {
			if p.slots[i] != s {
				continue
			}
			copy(p.slots[i:], p.slots[i+1:p.active])
			p.slots[p.active-1] = s
			p.active--
			s.clear()
			break
		}
	}
}
