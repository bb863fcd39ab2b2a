// worldgen generates a screen world from a blueprint catalog and prints it.
//
// Usage:
//
//	go run ./cmd/worldgen -config config/worldgen.yaml -length 4 -seed 42
//	go run ./cmd/worldgen -test-blueprints 3,15,14 -test-region 2
//	go run ./cmd/worldgen -load out/cave.scnw
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gookit/color"
	"golang.org/x/term"

	"github.com/lawnchairsociety/screenworld/internal/catalog"
	"github.com/lawnchairsociety/screenworld/internal/config"
	"github.com/lawnchairsociety/screenworld/internal/logger"
	"github.com/lawnchairsociety/screenworld/internal/render"
	"github.com/lawnchairsociety/screenworld/internal/scenario"
	"github.com/lawnchairsociety/screenworld/internal/worldmap"
)

type options struct {
	configPath     string
	name           string
	showScreens    bool
	showDetails    bool
	showLegend     bool
	savePath       string
	yamlPath       string
	loadPath       string
	testBlueprints string
	testRegion     int
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "config/worldgen.yaml", "Path to worldgen.yaml")
	catalogPath := flag.String("catalog", "", "Catalog YAML (overrides config)")
	players := flag.Int("players", 0, "Party size (overrides config)")
	skills := flag.String("skills", "", "Party skill bitmask, e.g. 0x5 (overrides config)")
	difficulty := flag.Int("difficulty", 0, "Difficulty 1-9 (overrides config)")
	length := flag.Int("length", 0, "Length 1-9 (overrides config)")
	seed := flag.Int64("seed", 0, "Seed, 0 for time based (overrides config)")
	attempts := flag.Int("attempts", 0, "Seeds to try before giving up (overrides config)")
	colorMode := flag.String("color", "", "auto, always or never (overrides config)")
	store := flag.Bool("store", false, "Store the world in the scenario database")
	flag.StringVar(&opts.name, "name", "", "Scenario name used for -store and -save (default: seed based)")
	flag.BoolVar(&opts.showScreens, "screens", false, "Print every screen grid")
	flag.BoolVar(&opts.showDetails, "details", true, "Print per-screen details")
	flag.BoolVar(&opts.showLegend, "legend", true, "Show legend")
	flag.StringVar(&opts.savePath, "save", "", "Write the world to this .scnw file")
	flag.StringVar(&opts.yamlPath, "yaml", "", "Write a YAML summary to this file")
	flag.StringVar(&opts.loadPath, "load", "", "Render a saved .scnw file instead of generating")
	flag.StringVar(&opts.testBlueprints, "test-blueprints", "", "Comma-separated blueprint ids to place (test mode)")
	flag.IntVar(&opts.testRegion, "test-region", 0, "Region id for every screen (test mode)")
	flag.Parse()

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		fatalf("Error loading config: %v", err)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "catalog":
			cfg.Catalog.Path = *catalogPath
		case "players":
			cfg.Generation.Players = *players
		case "skills":
			v, err := strconv.ParseUint(*skills, 0, 32)
			if err != nil {
				fatalf("Invalid -skills %q: %v", *skills, err)
			}
			cfg.Generation.Skills = uint32(v)
		case "difficulty":
			cfg.Generation.Difficulty = *difficulty
		case "length":
			cfg.Generation.Length = *length
		case "seed":
			cfg.Generation.Seed = *seed
		case "attempts":
			cfg.Generation.MaxAttempts = *attempts
		case "color":
			cfg.Output.Color = *colorMode
		case "store":
			cfg.Output.Store = *store
		}
	})

	if err := cfg.Validate(); err != nil {
		fatalf("Invalid configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logging); err != nil {
		fatalf("Error initializing logger: %v", err)
	}
	setupColor(cfg.Output.Color)

	cat, err := catalog.LoadFromYAML(cfg.Catalog.Path)
	if err != nil {
		fatalf("Error loading catalog: %v", err)
	}
	bps, regions, sheets := cat.Counts()
	logger.Info("Catalog loaded", "path", cfg.Catalog.Path, "blueprints", bps, "regions", regions, "tilesheets", sheets)

	r := render.New(color.Enable && color.SupportColor())

	if opts.loadPath != "" {
		world, err := loadWorld(opts.loadPath, cat)
		if err != nil {
			fatalf("Error loading %s: %v", opts.loadPath, err)
		}
		fmt.Print(describe(r, world, 0, opts))
		return
	}

	startSeed := cfg.Generation.Seed
	if startSeed == 0 {
		startSeed = time.Now().UnixNano()
	}

	attempt, err := newAttempt(cfg, cat, opts)
	if err != nil {
		fatalf("Invalid test mode: %v", err)
	}

	started := time.Now()
	world, usedSeed, err := scenario.GenerateWithRetry(startSeed, cfg.Generation.MaxAttempts, attempt)
	if err != nil {
		logger.Error("Generation failed", "seed", startSeed, "error", err)
		fatalf("Generation failed: %v", err)
	}
	if err := verify(world); err != nil {
		fatalf("Generated world failed verification: %v", err)
	}
	logger.Always("Generated world",
		"seed", usedSeed,
		"size", fmt.Sprintf("%dx%d", world.W, world.H),
		"treasures", world.TreasureCount,
		"elapsed", time.Since(started).Round(time.Millisecond))

	if opts.name == "" {
		opts.name = fmt.Sprintf("world-%d", usedSeed)
	}

	fmt.Print(describe(r, world, usedSeed, opts))

	if opts.savePath == "" && cfg.Output.SaveDir != "" {
		opts.savePath = filepath.Join(cfg.Output.SaveDir, opts.name+".scnw")
	}
	if opts.savePath != "" {
		if err := saveWorld(opts.savePath, world); err != nil {
			fatalf("Error saving world: %v", err)
		}
		fmt.Printf("World written to %s\n", opts.savePath)
	}
	if opts.yamlPath != "" {
		if err := writeSummary(opts.yamlPath, world, usedSeed, cfg.Generation); err != nil {
			fatalf("Error writing summary: %v", err)
		}
		fmt.Printf("Summary written to %s\n", opts.yamlPath)
	}
	if cfg.Output.Store {
		id, err := storeWorld(cfg, opts.name, usedSeed, world)
		if err != nil {
			fatalf("Error storing world: %v", err)
		}
		fmt.Printf("Stored as scenario %d (%s)\n", id, opts.name)
	}
}

// newAttempt builds the per-seed generation function for normal or test mode.
func newAttempt(cfg *config.Config, cat *catalog.Catalog, opts options) (scenario.Attempt, error) {
	gen := cfg.Generation.Scenario()
	if opts.testBlueprints == "" && opts.testRegion == 0 {
		return func(rng *rand.Rand) (*worldmap.World, error) {
			return scenario.NewGenerator(gen, cat, rng).Generate()
		}, nil
	}

	tc := scenario.TestConfig{Config: gen, RegionID: opts.testRegion}
	if opts.testBlueprints != "" {
		for _, field := range strings.Split(opts.testBlueprints, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("bad blueprint id %q", field)
			}
			tc.BlueprintIDs = append(tc.BlueprintIDs, id)
		}
	}
	if tc.RegionID == 0 {
		return nil, fmt.Errorf("-test-region is required with -test-blueprints")
	}
	logger.Info("Test mode", "blueprints", tc.BlueprintIDs, "region", tc.RegionID)
	return func(rng *rand.Rand) (*worldmap.World, error) {
		return scenario.NewGenerator(gen, cat, rng).GenerateTest(tc)
	}, nil
}

func verify(w *worldmap.World) error {
	if !w.Reachable() {
		return fmt.Errorf("not every screen is reachable from home")
	}
	if err := w.DoorsSettled(); err != nil {
		return err
	}
	return w.HomewardPathOK()
}

func setupColor(mode string) {
	switch mode {
	case "always":
		color.ForceColor()
	case "never":
		color.Disable()
	default:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			color.Disable()
		}
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
