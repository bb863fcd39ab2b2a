package zone

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Analyze computes every cell's neighbour mask against the zone and the
// zone-level counts. Neighbour queries outside the w x h grid are clamped to
// the nearest in-bounds cell, so cells on the grid boundary do not look open
// towards it.
func Analyze(z *Zone, w, h int) {
	if cap(z.Masks) < len(z.Cells) {
		z.Masks = make([]uint8, len(z.Cells))
	}
	z.Masks = z.Masks[:len(z.Cells)]

	for i, c := range z.Cells {
		var m uint8
		for _, n := range neighbours {
			nx := clamp(c.X+n.dx, 0, w-1)
			ny := clamp(c.Y+n.dy, 0, h-1)
			if z.Contains(nx, ny) {
				m |= n.bit
			}
		}
		z.Masks[i] = m
	}

	summarize(z, w, h)
}

// summarize derives the zone counts from masks that are already set.
func summarize(z *Zone, w, h int) {
	z.FoursquareC = 0
	z.EdgeC = 0
	z.FatFailC = 0
	z.Contains3x3 = false

	singleton := len(z.Cells) == 1
	for i, c := range z.Cells {
		m := z.Masks[i]
		if m&(MaskE|MaskSE|MaskS) == MaskE|MaskSE|MaskS {
			z.FoursquareC++
		}
		if m == MaskAll {
			z.Contains3x3 = true
		}
		if c.X == 0 || c.Y == 0 || c.X == w-1 || c.Y == h-1 {
			z.EdgeC++
		}
		if !singleton && !FoursquareMember(m) {
			z.FatFailC++
		}
	}
	z.Exact3x3 = z.Contains3x3 && len(z.Cells) == 9
}
