package grid

import "testing"

// openTemplate returns a blueprint that is vacant inside a one-cell solid rim.
func openTemplate() []Physics {
	cells := make([]Physics, BlueprintW*BlueprintH)
	for y := 0; y < BlueprintH; y++ {
		for x := 0; x < BlueprintW; x++ {
			if x == 0 || y == 0 || x == BlueprintW-1 || y == BlueprintH-1 {
				cells[y*BlueprintW+x] = PhysicsSolid
			}
		}
	}
	return cells
}

// doorwayTemplate is an open template with a doorway cut through every rim side.
func doorwayTemplate() []Physics {
	cells := openTemplate()
	for y := 4; y < 7; y++ {
		cells[y*BlueprintW] = PhysicsVacant
		cells[y*BlueprintW+BlueprintW-1] = PhysicsVacant
	}
	for x := 8; x < 12; x++ {
		cells[x] = PhysicsVacant
		cells[(BlueprintH-1)*BlueprintW+x] = PhysicsVacant
	}
	return cells
}

func TestTransformApplyIsInvolution(t *testing.T) {
	for _, tr := range []Transform{TransformNone, TransformHorz, TransformVert, TransformBoth} {
		t.Run(tr.String(), func(t *testing.T) {
			for y := 0; y < BlueprintH; y++ {
				for x := 0; x < BlueprintW; x++ {
					x1, y1 := tr.Apply(x, y)
					x2, y2 := tr.Apply(x1, y1)
					if x2 != x || y2 != y {
						t.Fatalf("Apply(Apply(%d,%d)) = (%d,%d)", x, y, x2, y2)
					}
				}
			}
			for _, d := range AllDirections() {
				if got := tr.ApplyDirection(tr.ApplyDirection(d)); got != d {
					t.Errorf("ApplyDirection twice on %v = %v", d, got)
				}
			}
		})
	}
}

func TestTransformApplyDirection(t *testing.T) {
	tests := []struct {
		tr   Transform
		in   Direction
		want Direction
	}{
		{TransformNone, West, West},
		{TransformHorz, West, East},
		{TransformHorz, North, North},
		{TransformVert, North, South},
		{TransformVert, East, East},
		{TransformBoth, South, North},
		{TransformBoth, East, West},
	}
	for _, tt := range tests {
		if got := tt.tr.ApplyDirection(tt.in); got != tt.want {
			t.Errorf("%v.ApplyDirection(%v) = %v, want %v", tt.tr, tt.in, got, tt.want)
		}
	}
}

func TestNewFromTemplateMirrorsCellsAndPOIs(t *testing.T) {
	cells := make([]Physics, BlueprintW*BlueprintH)
	cells[0] = PhysicsHazard // top-left of the blueprint
	pois := []POI{{Kind: POITreasure, X: 0, Y: 0}}

	for _, tr := range []Transform{TransformNone, TransformHorz, TransformVert, TransformBoth} {
		g, err := NewFromTemplate(cells, pois, tr)
		if err != nil {
			t.Fatalf("NewFromTemplate(%v) failed: %v", tr, err)
		}
		bx, by := tr.Apply(0, 0)
		gx, gy := bx+Margin, by+Margin
		if got := g.Physics(gx, gy); got != PhysicsHazard {
			t.Errorf("%v: physics at (%d,%d) = %v, want hazard", tr, gx, gy, got)
		}
		if len(g.POIs) != 1 || g.POIs[0].X != gx || g.POIs[0].Y != gy {
			t.Errorf("%v: POIs = %+v, want treasure at (%d,%d)", tr, g.POIs, gx, gy)
		}
		if g.Physics(0, 0) != PhysicsSolid {
			t.Errorf("%v: margin cell should start solid", tr)
		}
	}
}

func TestNewFromTemplateRejectsWrongSize(t *testing.T) {
	if _, err := NewFromTemplate(make([]Physics, 3), nil, TransformNone); err == nil {
		t.Error("expected an error for an undersized template")
	}
}

func TestDirectionHelpers(t *testing.T) {
	for _, d := range AllDirections() {
		if d.Opposite().Opposite() != d {
			t.Errorf("%v: Opposite twice = %v", d, d.Opposite().Opposite())
		}
		if d.Clockwise().CounterClockwise() != d {
			t.Errorf("%v: Clockwise then CounterClockwise = %v", d, d.Clockwise().CounterClockwise())
		}
		dx, dy := d.Delta()
		ox, oy := d.Opposite().Delta()
		if dx != -ox || dy != -oy {
			t.Errorf("%v: Delta not mirrored by Opposite", d)
		}
	}
	if North.Clockwise() != East {
		t.Errorf("North.Clockwise() = %v, want east", North.Clockwise())
	}
	if DirNone.Opposite() != DirNone {
		t.Error("DirNone.Opposite() should stay DirNone")
	}
}

func TestPopulateMarginsSealsMissingNeighbours(t *testing.T) {
	g, err := NewFromTemplate(doorwayTemplate(), nil, TransformNone)
	if err != nil {
		t.Fatal(err)
	}
	PopulateMargins(g, nil, nil, nil, nil)

	if !g.Finalized {
		t.Error("grid should be finalized")
	}
	for _, d := range AllDirections() {
		if _, n := g.Opening(d); n != 0 {
			t.Errorf("side %v has an opening of %d cells, want sealed", d, n)
		}
	}
}

func TestPopulateMarginsAlignsNeighbours(t *testing.T) {
	west, _ := NewFromTemplate(doorwayTemplate(), nil, TransformNone)
	east, _ := NewFromTemplate(doorwayTemplate(), nil, TransformVert)

	// west is stitched first and must average, east then copies the result.
	PopulateMargins(west, nil, nil, nil, east)
	PopulateMargins(east, nil, nil, west, nil)

	ws, wn := west.Opening(East)
	es, en := east.Opening(West)
	if wn == 0 || en == 0 {
		t.Fatalf("expected openings on both facing sides, got %d and %d", wn, en)
	}
	if ws != es || wn != en {
		t.Errorf("openings disagree: west side (%d,%d), east side (%d,%d)", ws, wn, es, en)
	}
	if ws < Margin || ws+wn > GridH-Margin {
		t.Errorf("opening (%d,%d) intrudes into a corner", ws, wn)
	}
}

func TestPopulateMarginsTunnelsThroughSolidEdge(t *testing.T) {
	// A fully rimmed blueprint has no doorway; the stitch must dig one.
	a, _ := NewFromTemplate(openTemplate(), nil, TransformNone)
	b, _ := NewFromTemplate(openTemplate(), nil, TransformNone)
	PopulateMargins(a, nil, b, nil, nil)
	PopulateMargins(b, a, nil, nil, nil)

	start, n := a.Opening(South)
	if n == 0 {
		t.Fatal("expected a carved opening on the south side")
	}
	// The lane must reach the open interior: the rim cell is carved too.
	x, y := start, GridH-1-Margin
	if !a.Physics(x, y).Passable() {
		t.Errorf("rim cell (%d,%d) still solid after tunnelling", x, y)
	}
	bs, bn := b.Opening(North)
	if bs != start || bn != n {
		t.Errorf("north opening of b (%d,%d) != south opening of a (%d,%d)", bs, bn, start, n)
	}
}

func TestPopulateMarginsCornersAlwaysSolid(t *testing.T) {
	g, _ := NewFromTemplate(make([]Physics, BlueprintW*BlueprintH), nil, TransformNone)
	other, _ := NewFromTemplate(make([]Physics, BlueprintW*BlueprintH), nil, TransformNone)
	PopulateMargins(g, other, other, other, other)

	corners := []Point{{0, 0}, {1, 1}, {GridW - 1, 0}, {GridW - 2, 1}, {0, GridH - 1}, {GridW - 1, GridH - 1}, {GridW - 2, GridH - 2}}
	for _, p := range corners {
		if g.Physics(p.X, p.Y) != PhysicsSolid {
			t.Errorf("corner cell (%d,%d) = %v, want solid", p.X, p.Y, g.Physics(p.X, p.Y))
		}
	}
}
