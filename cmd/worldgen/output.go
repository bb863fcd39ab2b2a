package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/screenworld/internal/catalog"
	"github.com/lawnchairsociety/screenworld/internal/config"
	"github.com/lawnchairsociety/screenworld/internal/database"
	"github.com/lawnchairsociety/screenworld/internal/grid"
	"github.com/lawnchairsociety/screenworld/internal/render"
	"github.com/lawnchairsociety/screenworld/internal/savefile"
	"github.com/lawnchairsociety/screenworld/internal/worldmap"
)

// Summary is the YAML dump of a generated world.
type Summary struct {
	Seed        int64           `yaml:"seed"`
	Players     int             `yaml:"players"`
	Skills      uint32          `yaml:"skills"`
	Difficulty  int             `yaml:"difficulty"`
	Length      int             `yaml:"length"`
	Width       int             `yaml:"width"`
	Height      int             `yaml:"height"`
	Treasures   int             `yaml:"treasures"`
	Home        [2]int          `yaml:"home,flow"`
	GeneratedAt time.Time       `yaml:"generated_at"`
	Screens     []ScreenSummary `yaml:"screens"`
}

type ScreenSummary struct {
	X         int      `yaml:"x"`
	Y         int      `yaml:"y"`
	Features  string   `yaml:"features,omitempty"`
	Doors     []string `yaml:"doors,flow"`
	Home      string   `yaml:"home"`
	Blueprint int      `yaml:"blueprint"`
	Transform int      `yaml:"transform"`
	Region    string   `yaml:"region"`
	Treasure  []int    `yaml:"treasure_ids,flow,omitempty"`
}

func describe(r *render.Renderer, w *worldmap.World, seed int64, opts options) string {
	var out strings.Builder
	if seed != 0 {
		fmt.Fprintf(&out, "World %s (Seed: %d, %dx%d, %d treasures)\n", opts.name, seed, w.W, w.H, w.TreasureCount)
	} else {
		fmt.Fprintf(&out, "World %s (%dx%d, %d treasures)\n", opts.loadPath, w.W, w.H, w.TreasureCount)
	}
	out.WriteString(strings.Repeat("=", 60) + "\n\n")
	out.WriteString(r.World(w))

	if opts.showDetails {
		out.WriteString("\nScreens:\n")
		out.WriteString(r.Details(w))
	}
	if opts.showScreens {
		for _, s := range w.Screens {
			fmt.Fprintf(&out, "\nScreen (%d,%d) %s\n", s.X, s.Y, s.Features)
			out.WriteString(r.Screen(s))
		}
	}
	if opts.showLegend {
		out.WriteString("\n" + render.Legend())
	}
	return out.String()
}

func summarize(w *worldmap.World, seed int64, gen config.GenerationConfig) Summary {
	sum := Summary{
		Seed:        seed,
		Players:     gen.Players,
		Skills:      gen.Skills,
		Difficulty:  gen.Difficulty,
		Length:      gen.Length,
		Width:       w.W,
		Height:      w.H,
		Treasures:   w.TreasureCount,
		Home:        [2]int{w.Home.X, w.Home.Y},
		GeneratedAt: time.Now().UTC(),
	}
	for _, s := range w.Screens {
		ss := ScreenSummary{
			X:         s.X,
			Y:         s.Y,
			Home:      s.DirectionHome.String(),
			Blueprint: s.Blueprint.ID,
			Transform: int(s.Transform),
			Region:    s.Region.Name,
		}
		if s.Features != 0 {
			ss.Features = s.Features.String()
		}
		for _, d := range s.OpenDirections() {
			ss.Doors = append(ss.Doors, d.String())
		}
		for _, p := range s.Grid.POIs {
			if p.Kind == grid.POITreasure {
				ss.Treasure = append(ss.Treasure, p.Arg)
			}
		}
		sum.Screens = append(sum.Screens, ss)
	}
	return sum
}

func writeSummary(path string, w *worldmap.World, seed int64, gen config.GenerationConfig) error {
	data, err := yaml.Marshal(summarize(w, seed, gen))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func saveWorld(path string, w *worldmap.World) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := savefile.Encode(f, w); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func loadWorld(path string, cat *catalog.Catalog) (*worldmap.World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return savefile.Decode(f, cat)
}

func storeWorld(cfg *config.Config, name string, seed int64, w *worldmap.World) (int64, error) {
	var buf bytes.Buffer
	if err := savefile.Encode(&buf, w); err != nil {
		return 0, err
	}

	db, err := database.OpenWithConfig(cfg.Database)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	gen := cfg.Generation
	return db.SaveScenario(&database.Scenario{
		Name:       name,
		Seed:       seed,
		Players:    gen.Players,
		Skills:     int(gen.Skills),
		Difficulty: gen.Difficulty,
		Length:     gen.Length,
		Width:      w.W,
		Height:     w.H,
		Treasures:  w.TreasureCount,
		Data:       buf.Bytes(),
	})
}
