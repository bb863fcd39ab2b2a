package skin

import (
	"math/rand"

	"github.com/lawnchairsociety/screenworld/internal/catalog"
	"github.com/lawnchairsociety/screenworld/internal/grid"
	"github.com/lawnchairsociety/screenworld/internal/zone"
)

// rule maps a neighbour mask to a tile offset. It matches when the bits in
// care are exactly want.
type rule struct {
	care, want uint8
	offset     int
}

func match(rules []rule, mask uint8, fallback int) int {
	for _, r := range rules {
		if mask&r.care == r.want {
			return r.offset
		}
	}
	return fallback
}

const (
	mN    = zone.MaskN
	mNE   = zone.MaskNE
	mE    = zone.MaskE
	mSE   = zone.MaskSE
	mS    = zone.MaskS
	mSW   = zone.MaskSW
	mW    = zone.MaskW
	mNW   = zone.MaskNW
	mCard = zone.MaskCardinals
	mAll  = zone.MaskAll
)

// FAT tile offsets. The first nine are the 3x3 block layout read row by
// row; 9-12 are inner corners named by their missing diagonal.
const (
	fatNW = iota
	fatN
	fatNE
	fatW
	fatInterior
	fatE
	fatSW
	fatS
	fatSE
	fatInnerNW
	fatInnerNE
	fatInnerSW
	fatInnerSE
	fatSingle
)

// Most specific first.
var fatRules = []rule{
	{mAll, mAll, fatInterior},

	{mCard | mNW, mCard, fatInnerNW},
	{mCard | mNE, mCard, fatInnerNE},
	{mCard | mSW, mCard, fatInnerSW},
	{mCard | mSE, mCard, fatInnerSE},
	{mCard, mCard, fatInterior},

	{mCard, mE | mS | mW, fatN},
	{mCard, mN | mE | mW, fatS},
	{mCard, mN | mE | mS, fatW},
	{mCard, mN | mS | mW, fatE},

	{mCard, mE | mS, fatNW},
	{mCard, mS | mW, fatNE},
	{mCard, mN | mE, fatSW},
	{mCard, mN | mW, fatSE},
}

// 3X3 offsets follow the same row-by-row layout as the first nine FAT tiles.
var nineRules = []rule{
	{mCard, mE | mS, fatNW},
	{mCard, mE | mS | mW, fatN},
	{mCard, mS | mW, fatNE},
	{mCard, mN | mE | mS, fatW},
	{mCard, mN | mS | mW, fatE},
	{mCard, mN | mE, fatSW},
	{mCard, mN | mE | mW, fatS},
	{mCard, mN | mW, fatSE},
}

// SKINNY offsets index the cardinal neighbours as a nibble: N=1, E=2, S=4, W=8.
var skinnyRules = func() []rule {
	rules := make([]rule, 0, 16)
	for nib := 15; nib >= 0; nib-- {
		var want uint8
		if nib&1 != 0 {
			want |= mN
		}
		if nib&2 != 0 {
			want |= mE
		}
		if nib&4 != 0 {
			want |= mS
		}
		if nib&8 != 0 {
			want |= mW
		}
		rules = append(rules, rule{mCard, want, nib})
	}
	return rules
}()

// ResolveTile picks the tile for one cell of a zone skinned with sh.
func ResolveTile(sh *catalog.Shape, mask uint8, rng *rand.Rand) grid.TileID {
	base := sh.BaseTile
	switch sh.Style {
	case catalog.StyleAlt4:
		return base + alternate(4, rng)
	case catalog.StyleAlt8:
		return base + alternate(8, rng)
	case catalog.StyleEven4:
		return base + grid.TileID(rng.Intn(4))
	case catalog.StyleAlt16:
		if rng.Intn(8) < 7 {
			return base + grid.TileID(rng.Intn(4))
		}
		return base + 4 + grid.TileID(rng.Intn(12))
	case catalog.StyleSkinny:
		return base + grid.TileID(match(skinnyRules, mask, 0))
	case catalog.StyleFat:
		return base + grid.TileID(match(fatRules, mask, fatSingle))
	case catalog.Style3x3:
		return base + grid.TileID(match(nineRules, mask, fatInterior))
	default:
		return base
	}
}

// alternate returns the base offset half the time, otherwise any of the
// style's span tiles.
func alternate(span int, rng *rand.Rand) grid.TileID {
	if rng.Intn(2) == 0 {
		return 0
	}
	return grid.TileID(rng.Intn(span))
}
