package savefile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math/rand"
	"testing"

	"github.com/lawnchairsociety/screenworld/internal/catalog"
	"github.com/lawnchairsociety/screenworld/internal/catalog/catalogtest"
	"github.com/lawnchairsociety/screenworld/internal/grid"
	"github.com/lawnchairsociety/screenworld/internal/scenario"
	"github.com/lawnchairsociety/screenworld/internal/worldmap"
)

func generated(t *testing.T, src catalog.Source) *worldmap.World {
	t.Helper()
	cfg := scenario.Config{Players: 1, Difficulty: 4, Length: 2}
	w, err := scenario.NewGenerator(cfg, src, rand.New(rand.NewSource(11))).Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return w
}

func TestEncodeDecode(t *testing.T) {
	src := catalogtest.Standard()
	w := generated(t, src)

	var buf bytes.Buffer
	if err := Encode(&buf, w); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("SCNW")) {
		t.Errorf("file starts with %q, want SCNW", buf.Bytes()[:4])
	}

	got, err := Decode(bytes.NewReader(buf.Bytes()), src)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if got.W != w.W || got.H != w.H || got.TreasureCount != w.TreasureCount {
		t.Fatalf("decoded %dx%d/%d, want %dx%d/%d", got.W, got.H, got.TreasureCount, w.W, w.H, w.TreasureCount)
	}
	if got.Home.X != w.Home.X || got.Home.Y != w.Home.Y {
		t.Errorf("home = (%d,%d), want (%d,%d)", got.Home.X, got.Home.Y, w.Home.X, w.Home.Y)
	}
	for i, s := range w.Screens {
		d := got.Screens[i]
		if d.Doors != s.Doors || d.Features != s.Features || d.DirectionHome != s.DirectionHome || d.Transform != s.Transform {
			t.Errorf("screen %d header differs", i)
		}
		if d.Blueprint != s.Blueprint || d.Region != s.Region {
			t.Errorf("screen %d resources differ", i)
		}
		if !d.Grid.Finalized {
			t.Errorf("screen %d grid not finalized", i)
		}
		for c := range s.Grid.Cells {
			if d.Grid.Cells[c] != s.Grid.Cells[c] {
				t.Fatalf("screen %d cell %d = %+v, want %+v", i, c, d.Grid.Cells[c], s.Grid.Cells[c])
			}
		}
		if len(d.Grid.POIs) != len(s.Grid.POIs) {
			t.Fatalf("screen %d has %d pois, want %d", i, len(d.Grid.POIs), len(s.Grid.POIs))
		}
		for p := range s.Grid.POIs {
			if d.Grid.POIs[p] != s.Grid.POIs[p] {
				t.Errorf("screen %d poi %d = %+v, want %+v", i, p, d.Grid.POIs[p], s.Grid.POIs[p])
			}
		}
	}
	if !got.Reachable() {
		t.Error("Expected decoded world to stay reachable")
	}
}

// headerOnly encodes just a file header, with no screen records after it.
func headerOnly(t *testing.T, h header) []byte {
	t.Helper()
	h.Magic = magic
	h.Version = Version
	h.GridW, h.GridH = grid.GridW, grid.GridH
	var buf bytes.Buffer
	if err := binary.Write(&buf, order, &h); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeRejectsBadInput(t *testing.T) {
	src := catalogtest.Standard()
	var buf bytes.Buffer
	if err := Encode(&buf, generated(t, src)); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	good := buf.Bytes()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrFormat},
		{"wrong magic", append([]byte("NOPE"), good[4:]...), ErrFormat},
		{"future version", append(append([]byte(nil), good[:4]...), append([]byte{9, 0}, good[6:]...)...), ErrVersion},
		{"truncated", good[:len(good)/2], ErrFormat},
		{"oversized world", headerOnly(t, header{W: 4000, H: 4000}), ErrFormat},
		{"widest allowed plus one", headerOnly(t, header{W: MaxWorldW + 1, H: 1}), ErrFormat},
		{"treasure on every screen", headerOnly(t, header{W: 2, H: 2, Treasures: 4}), ErrFormat},
		{"home outside world", headerOnly(t, header{W: 2, H: 2, HomeX: 2}), ErrFormat},
		{"header only", headerOnly(t, header{W: 3, H: 4, Treasures: 1}), ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(bytes.NewReader(tt.data), src); !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := Decode(bytes.NewReader(good), catalog.New()); !errors.Is(err, ErrUnknownResource) {
		t.Errorf("Decode() with empty catalog error = %v, want ErrUnknownResource", err)
	}
}

func TestLimitsCoverEveryWorldSize(t *testing.T) {
	for length := scenario.MinLength; length <= scenario.MaxLength; length++ {
		size, err := scenario.SizeFor(length)
		if err != nil {
			t.Fatal(err)
		}
		if size.W > MaxWorldW || size.H > MaxWorldH {
			t.Errorf("length %d world %dx%d exceeds the %dx%d file limit", length, size.W, size.H, MaxWorldW, MaxWorldH)
		}
	}
}
