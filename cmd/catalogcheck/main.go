// catalogcheck loads a blueprint catalog and reports how it classifies for a
// party: which blueprints are usable in each role and how challenges weigh.
//
// Usage:
//
//	go run ./cmd/catalogcheck -catalog data/catalog.yaml -players 2 -skills 0x5 -difficulty 6
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/gookit/color"
	"golang.org/x/term"

	"github.com/lawnchairsociety/screenworld/internal/catalog"
	"github.com/lawnchairsociety/screenworld/internal/chooser"
	"github.com/lawnchairsociety/screenworld/internal/scenario"
)

var heading = color.Style{color.FgCyan, color.OpBold}

func main() {
	path := flag.String("catalog", "data/catalog.yaml", "Catalog YAML")
	players := flag.Int("players", 1, "Party size")
	skills := flag.String("skills", "0", "Party skill bitmask")
	difficulty := flag.Int("difficulty", 5, "Difficulty 1-9")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.Disable()
	}

	sk, err := strconv.ParseUint(*skills, 0, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -skills %q: %v\n", *skills, err)
		os.Exit(2)
	}
	cfg := scenario.Config{Players: *players, Skills: catalog.Skill(sk), Difficulty: *difficulty, Length: scenario.MinLength}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cat, err := catalog.LoadFromYAML(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	if err := report(os.Stdout, cat, cfg.Party()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// report writes the classification and the largest world length the catalog
// can fill for party.
func report(out io.Writer, cat *catalog.Catalog, party catalog.Party) error {
	bps, regions, sheets := cat.Counts()
	fmt.Fprintln(out, heading.Sprint("Catalog"))
	fmt.Fprintf(out, "  %d blueprints, %d regions, %d tilesheets\n\n", bps, regions, sheets)

	classes, err := chooser.Classify(cat, party)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, heading.Sprintf("Party: %d players, skills %#x, difficulty %d",
		party.Players, int(party.Skills), party.Difficulty))
	for _, row := range []struct {
		class chooser.Class
		bps   []*catalog.Blueprint
	}{
		{chooser.ClassHome, classes.Home},
		{chooser.ClassTreasure, classes.Treasure},
		{chooser.ClassChallenge, classes.Challenge},
		{chooser.ClassFiller, classes.Filler},
	} {
		fmt.Fprintf(out, "  %-10s %d:", row.class, len(row.bps))
		for _, bp := range row.bps {
			fmt.Fprintf(out, " %d", bp.ID)
		}
		fmt.Fprintln(out)
	}

	if len(classes.Challenge) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, heading.Sprint("Challenge weights"))
		ranked := append([]*catalog.Blueprint(nil), classes.Challenge...)
		sort.SliceStable(ranked, func(i, j int) bool {
			return classes.Weights[ranked[i].ID] > classes.Weights[ranked[j].ID]
		})
		for _, bp := range ranked {
			fmt.Fprintf(out, "  %4d  %-24s weight %d\n", bp.ID, bp.Name, classes.Weights[bp.ID])
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, heading.Sprint("Lengths"))
	for length := scenario.MinLength; length <= scenario.MaxLength; length++ {
		size, err := scenario.SizeFor(length)
		if err != nil {
			return err
		}
		status := "ok"
		if err := classes.Covers(size.W*size.H, size.Treasures); err != nil {
			status = "not enough blueprints"
		}
		fmt.Fprintf(out, "  %d  %2dx%-2d %2d treasures  %s\n", length, size.W, size.H, size.Treasures, status)
	}
	return nil
}
