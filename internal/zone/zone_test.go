package zone

import (
	"testing"

	"github.com/lawnchairsociety/screenworld/internal/catalog/catalogtest"
	"github.com/lawnchairsociety/screenworld/internal/grid"
)

// zoneFrom builds a zone from a picture. '#' marks a member cell; the
// picture's top-left corner lands on (ox, oy).
func zoneFrom(p *Pool, ox, oy int, rows ...string) *Zone {
	z := p.Spawn(grid.PhysicsSolid)
	for y, row := range rows {
		for x, r := range row {
			if r == '#' {
				z.Add(ox+x, oy+y)
			}
		}
	}
	Analyze(z, grid.GridW, grid.GridH)
	return z
}

func TestAddKeepsCellsSorted(t *testing.T) {
	z := NewPool().Spawn(grid.PhysicsSolid)
	z.Add(3, 2)
	z.Add(1, 5)
	z.Add(7, 0)
	z.Add(0, 2)
	if z.Add(3, 2) {
		t.Error("Add of an existing cell returned true")
	}

	want := []grid.Point{{X: 7, Y: 0}, {X: 0, Y: 2}, {X: 3, Y: 2}, {X: 1, Y: 5}}
	if len(z.Cells) != len(want) {
		t.Fatalf("len(Cells) = %d, want %d", len(z.Cells), len(want))
	}
	for i, c := range z.Cells {
		if c != want[i] {
			t.Errorf("Cells[%d] = %v, want %v", i, c, want[i])
		}
	}
	if !z.Contains(0, 2) || z.Contains(2, 0) {
		t.Error("Contains gave the wrong answer")
	}
	if !z.Remove(3, 2) || z.Remove(3, 2) {
		t.Error("Remove should succeed once")
	}
	if len(z.Masks) != len(z.Cells) {
		t.Errorf("len(Masks) = %d, want %d", len(z.Masks), len(z.Cells))
	}
}

func TestRebuildPartitionsGrid(t *testing.T) {
	g, err := grid.NewFromTemplate(catalogtest.Cells(), nil, grid.TransformBoth)
	if err != nil {
		t.Fatalf("NewFromTemplate failed: %v", err)
	}

	p := NewPool()
	zones := p.Rebuild(g)

	seen := make(map[grid.Point]int)
	for zi, z := range zones {
		if z.Len() == 0 {
			t.Errorf("zone %d is empty", zi)
		}
		for _, c := range z.Cells {
			if prev, dup := seen[c]; dup {
				t.Errorf("cell %v in zones %d and %d", c, prev, zi)
			}
			seen[c] = zi
			if got := g.Physics(c.X, c.Y).Normalize(); got != z.Physics {
				t.Errorf("cell %v has physics %v in a %v zone", c, got, z.Physics)
			}
		}
	}
	if len(seen) != grid.GridW*grid.GridH {
		t.Errorf("zones cover %d cells, want %d", len(seen), grid.GridW*grid.GridH)
	}

	// Hero-only cells join the surrounding vacant zone.
	hx, hy := grid.TransformBoth.Apply(10, 10)
	hz := zones[seen[grid.Point{X: hx + grid.Margin, Y: hy + grid.Margin}]]
	if hz.Physics != grid.PhysicsVacant {
		t.Errorf("hero-only cell zone physics = %v, want vacant", hz.Physics)
	}
}

func TestRebuildReusesSlots(t *testing.T) {
	g, err := grid.NewFromTemplate(catalogtest.Cells(), nil, grid.TransformNone)
	if err != nil {
		t.Fatalf("NewFromTemplate failed: %v", err)
	}
	p := NewPool()
	first := len(p.Rebuild(g))
	slots := p.capacity()
	second := len(p.Rebuild(g))
	if first != second {
		t.Errorf("zone count changed between rebuilds: %d then %d", first, second)
	}
	if p.capacity() != slots {
		t.Errorf("capacity() = %d after second rebuild, want %d", p.capacity(), slots)
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name       string
		x, y       int
		rows       []string
		foursquare int
		fatFail    int
		edge       int
		contains   bool
		exact      bool
	}{
		{"3x3 block", 5, 5, []string{"###", "###", "###"}, 4, 0, 0, true, true},
		{"4x3 block", 5, 5, []string{"####", "####", "####"}, 6, 0, 0, true, false},
		{"horizontal line", 5, 5, []string{"####"}, 0, 4, 0, false, false},
		{"block with tail", 5, 5, []string{"##", "##", "#.", "#."}, 1, 2, 0, false, false},
		{"singleton", 5, 5, []string{"#"}, 0, 0, 0, false, false},
		{"column on west edge", 0, 4, []string{"#", "#", "#"}, 0, 0, 3, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := zoneFrom(NewPool(), tt.x, tt.y, tt.rows...)
			if z.FoursquareC != tt.foursquare {
				t.Errorf("FoursquareC = %d, want %d", z.FoursquareC, tt.foursquare)
			}
			if z.FatFailC != tt.fatFail {
				t.Errorf("FatFailC = %d, want %d", z.FatFailC, tt.fatFail)
			}
			if z.EdgeC != tt.edge {
				t.Errorf("EdgeC = %d, want %d", z.EdgeC, tt.edge)
			}
			if z.Contains3x3 != tt.contains {
				t.Errorf("Contains3x3 = %v, want %v", z.Contains3x3, tt.contains)
			}
			if z.Exact3x3 != tt.exact {
				t.Errorf("Exact3x3 = %v, want %v", z.Exact3x3, tt.exact)
			}
		})
	}
}

func TestAnalyzeClampsAtGridEdge(t *testing.T) {
	z := zoneFrom(NewPool(), 0, 0, "#")
	want := MaskN | MaskW | MaskNW
	if got := z.Mask(0, 0); got != want {
		t.Errorf("Mask(0, 0) = %08b, want %08b", got, want)
	}
}

func TestForceFATCompatibilitySplitsTail(t *testing.T) {
	p := NewPool()
	z := zoneFrom(p, 5, 5,
		"##.",
		"##.",
		"#..",
		"#..",
	)

	spawned := p.ForceFATCompatibility(z, grid.GridW, grid.GridH)

	if z.Len() != 4 || z.FatFailC != 0 || z.FoursquareC != 1 {
		t.Errorf("kept zone: len %d, fatfail %d, foursquare %d; want 4, 0, 1", z.Len(), z.FatFailC, z.FoursquareC)
	}
	if len(spawned) != 1 {
		t.Fatalf("len(spawned) = %d, want 1", len(spawned))
	}
	tail := spawned[0]
	if tail.Len() != 2 || !tail.Contains(5, 7) || !tail.Contains(5, 8) {
		t.Errorf("tail cells = %v, want (5,7) and (5,8)", tail.Cells)
	}
	if tail.FoursquareC != 0 {
		t.Errorf("tail FoursquareC = %d, want 0", tail.FoursquareC)
	}
	if got := len(p.Zones()); got != 2 {
		t.Errorf("active zones = %d, want 2 (scratch zones released)", got)
	}
}

func TestForceFATCompatibilityBreaksIsthmus(t *testing.T) {
	p := NewPool()
	z := zoneFrom(p, 5, 5,
		"##.",
		"###",
		".##",
	)
	if !Isthmus(z.Mask(6, 6)) {
		t.Fatalf("centre mask %08b is not an isthmus", z.Mask(6, 6))
	}

	spawned := p.ForceFATCompatibility(z, grid.GridW, grid.GridH)

	if len(spawned) != 2 {
		t.Fatalf("len(spawned) = %d, want 2", len(spawned))
	}
	if z.Len() != 3 || !z.Contains(5, 5) {
		t.Errorf("kept zone = %v, want the north-west corner", z.Cells)
	}
	if spawned[0].Len() != 1 || !spawned[0].Contains(6, 6) {
		t.Errorf("spawned[0] = %v, want the isthmus cell", spawned[0].Cells)
	}
	if spawned[1].Len() != 3 || !spawned[1].Contains(7, 7) {
		t.Errorf("spawned[1] = %v, want the south-east corner", spawned[1].Cells)
	}
}

// Every cell of the original zone ends up in exactly one zone, and no
// resulting zone both has blocks and breaks them.
func TestForceFATCompatibilityCoversOriginal(t *testing.T) {
	pictures := [][]string{
		{"####..", "####..", "#.....", "######", "....##", "....##"},
		{"###.", "###.", "###.", "..#.", "..##"},
		{"##..##", "##..##", "######", "..#...", "..#..."},
	}

	for i, rows := range pictures {
		p := NewPool()
		z := zoneFrom(p, 4, 4, rows...)
		original := append([]grid.Point(nil), z.Cells...)
		if z.FatFailC == 0 || z.FoursquareC == 0 {
			t.Fatalf("picture %d is not a split candidate", i)
		}

		all := append([]*Zone{z}, p.ForceFATCompatibility(z, grid.GridW, grid.GridH)...)

		seen := make(map[grid.Point]bool)
		for _, r := range all {
			if r.FoursquareC > 0 && r.FatFailC > 0 {
				t.Errorf("picture %d: zone %v still mixes blocks and fat-fail cells", i, r.Cells)
			}
			for _, c := range r.Cells {
				if seen[c] {
					t.Errorf("picture %d: cell %v appears twice", i, c)
				}
				seen[c] = true
			}
		}
		for _, c := range original {
			if !seen[c] {
				t.Errorf("picture %d: cell %v lost", i, c)
			}
		}
		if len(seen) != len(original) {
			t.Errorf("picture %d: %d cells after split, want %d", i, len(seen), len(original))
		}
	}
}
