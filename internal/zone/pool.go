package zone

import (
	"github.com/lawnchairsociety/screenworld/internal/grid"
	"github.com/zyedidia/generic/stack"
)

// Pool is an arena of zones reused across screens. Slots past the active
// count keep their buffers and are cleared when spawned again.
type Pool struct {
	slots   []*Zone
	active  int
	visited []bool
}

// NewPool creates an empty pool
func NewPool() *Pool {
	return &Pool{visited: make([]bool, grid.GridW*grid.GridH)}
}

// Reset releases every zone back to the pool.
func (p *Pool) Reset() {
	p.active = 0
}

// Spawn hands out a cleared zone with the given physics.
func (p *Pool) Spawn(phys grid.Physics) *Zone {
	if p.active == len(p.slots) {
		p.slots = append(p.slots, &Zone{})
	}
	z := p.slots[p.active]
	p.active++
	z.clear()
	z.Physics = phys
	return z
}

// Zones returns the zones currently in use, in spawn order.
func (p *Pool) Zones() []*Zone {
	return p.slots[:p.active]
}

// capacity returns how many zone slots have ever been allocated.
func (p *Pool) capacity() int {
	return len(p.slots)
}

// Rebuild resets the pool and partitions g into 4-connected zones of equal
// normalized physics, seeded in row-major order. The returned slice is only
// valid until the next Rebuild.
func (p *Pool) Rebuild(g *grid.Grid) []*Zone {
	p.Reset()
	clear(p.visited)

	todo := stack.New[grid.Point]()
	for y := 0; y < grid.GridH; y++ {
		for x := 0; x < grid.GridW; x++ {
			if p.visited[y*grid.GridW+x] {
				continue
			}
			phys := g.Physics(x, y).Normalize()
			z := p.Spawn(phys)

			p.visited[y*grid.GridW+x] = true
			todo.Push(grid.Point{X: x, Y: y})
			for todo.Size() > 0 {
				c := todo.Pop()
				z.Add(c.X, c.Y)
				for _, d := range grid.AllDirections() {
					dx, dy := d.Delta()
					nx, ny := c.X+dx, c.Y+dy
					if !grid.InBounds(nx, ny) || p.visited[ny*grid.GridW+nx] {
						continue
					}
					if g.Physics(nx, ny).Normalize() != phys {
						continue
					}
					p.visited[ny*grid.GridW+nx] = true
					todo.Push(grid.Point{X: nx, Y: ny})
				}
			}
		}
	}
	return p.Zones()
}
