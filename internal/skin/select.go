// Package skin assigns tiles to a screen grid: it picks a region shape for
// every zone and resolves each cell's tile from that shape's style.
package skin

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/lawnchairsociety/screenworld/internal/catalog"
	"github.com/lawnchairsociety/screenworld/internal/grid"
	"github.com/lawnchairsociety/screenworld/internal/zone"
)

var ErrNoShape = errors.New("skin: no shape fits zone")

// fatCompatible reports whether every cell of z can be drawn by a FAT tile.
func fatCompatible(z *zone.Zone) bool {
	return z.FatFailC == 0
}

// skinnyCompatible reports whether z has no block SKINNY tiles would hide.
func skinnyCompatible(z *zone.Zone) bool {
	return z.FoursquareC == 0
}

func pick(shapes []*catalog.Shape, rng *rand.Rand) *catalog.Shape {
	return shapes[rng.Intn(len(shapes))]
}

func withStyle(shapes []*catalog.Shape, st catalog.Style) []*catalog.Shape {
	var out []*catalog.Shape
	for _, sh := range shapes {
		if sh.Style == st {
			out = append(out, sh)
		}
	}
	return out
}

// SelectShape picks the region shape for an analyzed zone. When split is
// true no shape was chosen: the zone has blocks that a FAT shape could draw
// but also cells that would break it, and it must be split with
// ForceFATCompatibility before selecting again.
func SelectShape(z *zone.Zone, r *catalog.Region, rng *rand.Rand) (shape *catalog.Shape, split bool, err error) {
	shapes := r.ShapesFor(z.Physics)
	if len(shapes) == 0 {
		return nil, false, fmt.Errorf("%w: region %d has no %s shapes", ErrNoShape, r.ID, z.Physics)
	}

	if z.Physics.Normalize() == grid.PhysicsVacant {
		if c := withStyle(shapes, catalog.StyleAlt16); len(c) > 0 {
			return pick(c, rng), false, nil
		}
	}
	if z.Exact3x3 {
		if c := withStyle(shapes, catalog.Style3x3); len(c) > 0 {
			return pick(c, rng), false, nil
		}
	}
	fat := withStyle(shapes, catalog.StyleFat)
	if z.FoursquareC > 0 && z.FatFailC == 0 && len(fat) > 0 {
		return pick(fat, rng), false, nil
	}
	if z.FoursquareC == 0 && z.Len() > 1 {
		if c := withStyle(shapes, catalog.StyleSkinny); len(c) > 0 {
			return pick(c, rng), false, nil
		}
	}
	if z.FoursquareC > 0 && z.FatFailC > 0 && len(fat) > 0 {
		return nil, true, nil
	}

	var universal []*catalog.Shape
	for _, sh := range shapes {
		switch sh.Style {
		case catalog.StyleFat:
			if !fatCompatible(z) {
				continue
			}
		case catalog.StyleSkinny:
			if !skinnyCompatible(z) {
				continue
			}
		case catalog.Style3x3:
			if !z.Exact3x3 {
				continue
			}
		}
		universal = append(universal, sh)
	}
	if len(universal) == 0 {
		return nil, false, fmt.Errorf("%w: region %d, %d-cell %s zone at %v",
			ErrNoShape, r.ID, z.Len(), z.Physics, z.Cells[0])
	}
	return pick(universal, rng), false, nil
}
