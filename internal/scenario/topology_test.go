package scenario

import (
	"math/rand"
	"testing"

	"github.com/lawnchairsociety/screenworld/internal/catalog/catalogtest"
	"github.com/lawnchairsociety/screenworld/internal/grid"
	"github.com/lawnchairsociety/screenworld/internal/worldmap"
)

// newTestGenerator returns a generator over a blank w x h world with home at (hx, hy).
func newTestGenerator(w, h, hx, hy int) *Generator {
	g := NewGenerator(soloConfig, catalogtest.Standard(), rand.New(rand.NewSource(1)))
	g.world = worldmap.New(w, h)
	g.world.Home = g.world.Screen(hx, hy)
	g.world.Home.Features = worldmap.FeatureHome
	g.homeX, g.homeY = hx, hy
	return g
}

func TestDirectionOrder(t *testing.T) {
	g := newTestGenerator(5, 5, 2, 2)

	tests := []struct {
		name string
		x, y int
		want []grid.Direction
	}{
		{"wider gap is horizontal", 0, 1, []grid.Direction{grid.East, grid.South, grid.North, grid.West}},
		{"straight below", 2, 0, []grid.Direction{grid.South, grid.East, grid.West, grid.North}},
		{"diagonal tie goes horizontal", 4, 4, []grid.Direction{grid.West, grid.North, grid.South, grid.East}},
		{"taller gap is vertical", 3, 4, []grid.Direction{grid.North, grid.West, grid.East, grid.South}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.directionOrder(g.world.Screen(tt.x, tt.y))
			if len(got) != 4 {
				t.Fatalf("directionOrder() = %v, want 4 directions", got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("directionOrder() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestForgeStrictAvoidsTreasure(t *testing.T) {
	// Home at the left end of a 3x2 world, a treasure at each other top screen.
	g := newTestGenerator(3, 2, 0, 0)
	far := g.world.Screen(2, 0)
	mid := g.world.Screen(1, 0)
	far.Features = worldmap.FeatureTreasure
	mid.Features = worldmap.FeatureTreasure

	ok, err := g.forge(far, true)
	if err != nil || !ok {
		t.Fatalf("forge(strict) = %v, %v", ok, err)
	}
	for _, s := range g.stack {
		if s == mid {
			t.Fatal("strict path went through another treasure")
		}
	}
	if !g.connected(far, g.world.Home) {
		t.Error("Expected forged doors to join treasure and home")
	}
	if far.Doors[grid.West] == worldmap.DoorOpen {
		t.Error("strict path opened the door into the other treasure")
	}
}

func TestForgeRelaxedWhenBoxedIn(t *testing.T) {
	// In a 1x3 corridor the only way home runs through the middle treasure.
	g := newTestGenerator(1, 3, 0, 0)
	g.world.Screen(0, 1).Features = worldmap.FeatureTreasure
	g.world.Screen(0, 2).Features = worldmap.FeatureTreasure
	g.treasurec = 2

	if ok, _ := g.forge(g.world.Screen(0, 2), true); ok {
		t.Fatal("strict forge should fail when boxed in")
	}
	if err := g.forgePaths(); err != nil {
		t.Fatalf("forgePaths failed: %v", err)
	}
	if !g.world.Reachable() {
		t.Error("Expected the relaxed pass to connect the corridor")
	}
}

func TestRepairReachability(t *testing.T) {
	g := newTestGenerator(4, 3, 1, 1)
	if err := g.repairReachability(); err != nil {
		t.Fatalf("repairReachability failed: %v", err)
	}
	if !g.world.Reachable() {
		t.Error("Expected every screen to be reachable after repair")
	}
}

func TestLabelHomewardAndPush(t *testing.T) {
	// A 1x5 corridor with every door open, home at the top.
	g := newTestGenerator(1, 5, 0, 0)
	for y := 0; y < 4; y++ {
		if err := g.world.SetDoor(g.world.Screen(0, y), grid.South, worldmap.DoorOpen); err != nil {
			t.Fatalf("SetDoor failed: %v", err)
		}
	}
	g.finalizeDoors()
	g.labelHomeward()

	for y := 1; y < 5; y++ {
		if got := g.world.Screen(0, y).DirectionHome; got != grid.North {
			t.Errorf("screen (0,%d) homeward = %v, want north", y, got)
		}
	}
	if err := g.world.HomewardPathOK(); err != nil {
		t.Fatal(err)
	}

	g.world.Screen(0, 1).Features = worldmap.FeatureTreasure
	g.pushTreasures()
	if !g.world.Screen(0, 4).Has(worldmap.FeatureTreasure) {
		t.Error("Expected the treasure to be pushed to the far end")
	}
	if got := len(g.world.ScreensWith(worldmap.FeatureTreasure)); got != 1 {
		t.Errorf("treasure screens after push = %d, want 1", got)
	}

	g.primeChallenges()
	if !g.world.Screen(0, 3).Has(worldmap.FeatureChallenge) {
		t.Error("Expected the screen before the treasure to be a prime challenge")
	}
	if g.world.Screen(0, 2).Has(worldmap.FeatureChallenge) {
		t.Error("screen two away from the treasure should not be a prime challenge")
	}
}

func TestPrimeChallengesNeedOnlyAdjacency(t *testing.T) {
	// (1,1) opens west and north; the treasure east of it stays behind a
	// closed door.
	g := newTestGenerator(3, 3, 0, 0)
	center := g.world.Screen(1, 1)
	for _, d := range []grid.Direction{grid.West, grid.North} {
		if err := g.world.SetDoor(center, d, worldmap.DoorOpen); err != nil {
			t.Fatalf("SetDoor failed: %v", err)
		}
	}
	g.finalizeDoors()
	g.world.Screen(2, 1).Features = worldmap.FeatureTreasure

	g.primeChallenges()

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"two doors beside treasure", 1, 1, true},
		{"no open doors beside treasure", 2, 0, false},
		{"one door, not beside treasure", 0, 1, false},
		{"one door, not beside treasure above", 1, 0, false},
		{"treasure itself", 2, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.world.Screen(tt.x, tt.y).Has(worldmap.FeatureChallenge); got != tt.want {
				t.Errorf("screen (%d,%d) challenge = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPushStopsAtBudget(t *testing.T) {
	g := newTestGenerator(1, 12, 0, 0)
	for y := 0; y < 11; y++ {
		if err := g.world.SetDoor(g.world.Screen(0, y), grid.South, worldmap.DoorOpen); err != nil {
			t.Fatalf("SetDoor failed: %v", err)
		}
	}
	g.finalizeDoors()
	g.labelHomeward()
	g.world.Screen(0, 1).Features = worldmap.FeatureTreasure
	g.pushTreasures()

	if !g.world.Screen(0, 1+treasurePushBudget).Has(worldmap.FeatureTreasure) {
		t.Errorf("Expected the treasure to stop %d screens further out", treasurePushBudget)
	}
}
