package skin

import (
	"fmt"
	"math/rand"

	"github.com/lawnchairsociety/screenworld/internal/catalog"
	"github.com/lawnchairsociety/screenworld/internal/grid"
	"github.com/lawnchairsociety/screenworld/internal/zone"
)

// Skinner tiles grids one at a time, reusing a single zone pool.
type Skinner struct {
	pool *zone.Pool
	rng  *rand.Rand
}

// NewSkinner creates a skinner drawing randomness from rng.
func NewSkinner(rng *rand.Rand) *Skinner {
	return &Skinner{pool: zone.NewPool(), rng: rng}
}

// SkinGrid partitions g into zones, picks a shape from r for each, splitting
// zones that need it, and writes every cell's tile and neighbour mask.
func (s *Skinner) SkinGrid(g *grid.Grid, r *catalog.Region) error {
	s.pool.Rebuild(g)

	// Zones spawned by a split are appended and picked up by this loop.
	splits := 0
	for i := 0; i < len(s.pool.Zones()); i++ {
		z := s.pool.Zones()[i]
		zone.Analyze(z, grid.GridW, grid.GridH)

		for {
			shape, split, err := SelectShape(z, r, s.rng)
			if err != nil {
				return err
			}
			if !split {
				z.Shape = shape
				break
			}
			if splits++; splits > grid.GridW*grid.GridH {
				return fmt.Errorf("%w: zone at %v will not split", ErrNoShape, z.Cells[0])
			}
			s.pool.ForceFATCompatibility(z, grid.GridW, grid.GridH)
		}

		for ci, c := range z.Cells {
			cell := g.At(c.X, c.Y)
			cell.Shape = z.Masks[ci]
			cell.Tile = ResolveTile(z.Shape, z.Masks[ci], s.rng)
		}
	}
	return nil
}

// Zones returns the zones of the last skinned grid.
func (s *Skinner) Zones() []*zone.Zone {
	return s.pool.Zones()
}
