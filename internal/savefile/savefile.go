// Package savefile reads and writes generated worlds in a compact binary
// format: a fixed header followed by one record per screen in row-major
// order. Blueprints and regions are stored by id and resolved against a
// catalog when loading.
package savefile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/lawnchairsociety/screenworld/internal/catalog"
	"github.com/lawnchairsociety/screenworld/internal/grid"
	"github.com/lawnchairsociety/screenworld/internal/worldmap"
)

// Version is the format version written by Encode.
const Version = 1

// MaxWorldW and MaxWorldH bound the world a file may describe. Decode
// rejects larger headers before allocating any screens.
const (
	MaxWorldW = 32
	MaxWorldH = 32
)

var (
	ErrFormat          = errors.New("savefile: not a scenario file")
	ErrVersion         = errors.New("savefile: unsupported version")
	ErrUnknownResource = errors.New("savefile: resource missing from catalog")
)

var magic = [4]byte{'S', 'C', 'N', 'W'}

var order = binary.LittleEndian

type header struct {
	Magic     [4]byte
	Version   uint16
	W, H      uint16
	Treasures uint16
	HomeX     uint16
	HomeY     uint16
	GridW     uint16
	GridH     uint16
}

type screenRecord struct {
	Doors         [4]uint8
	Features      uint8
	DirectionHome uint8
	Transform     uint8
	Finalized     uint8
	Blueprint     int32
	Region        int32
	POICount      uint16
}

type cellRecord struct {
	Tile    uint16
	Physics uint8
	Shape   uint8
}

type poiRecord struct {
	Kind uint8
	X, Y uint8
	Arg  int32
}

// Encode writes w. Every screen must have a blueprint, region and grid.
func Encode(out io.Writer, w *worldmap.World) error {
	if w.Home == nil {
		return fmt.Errorf("savefile: world has no home")
	}
	if w.W > MaxWorldW || w.H > MaxWorldH {
		return fmt.Errorf("savefile: world is %dx%d, limit %dx%d", w.W, w.H, MaxWorldW, MaxWorldH)
	}
	bw := bufio.NewWriter(out)

	h := header{
		Magic:     magic,
		Version:   Version,
		W:         uint16(w.W),
		H:         uint16(w.H),
		Treasures: uint16(w.TreasureCount),
		HomeX:     uint16(w.Home.X),
		HomeY:     uint16(w.Home.Y),
		GridW:     grid.GridW,
		GridH:     grid.GridH,
	}
	if err := binary.Write(bw, order, &h); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	cells := make([]cellRecord, grid.GridW*grid.GridH)
	for _, s := range w.Screens {
		if s.Blueprint == nil || s.Region == nil || s.Grid == nil {
			return fmt.Errorf("savefile: screen (%d,%d) is not fully generated", s.X, s.Y)
		}
		rec := screenRecord{
			Features:      uint8(s.Features),
			DirectionHome: uint8(s.DirectionHome),
			Transform:     uint8(s.Transform),
			Blueprint:     int32(s.Blueprint.ID),
			Region:        int32(s.Region.ID),
			POICount:      uint16(len(s.Grid.POIs)),
		}
		for i, d := range s.Doors {
			rec.Doors[i] = uint8(d)
		}
		if s.Grid.Finalized {
			rec.Finalized = 1
		}
		if err := binary.Write(bw, order, &rec); err != nil {
			return fmt.Errorf("failed to write screen (%d,%d): %w", s.X, s.Y, err)
		}

		for i, c := range s.Grid.Cells {
			cells[i] = cellRecord{Tile: uint16(c.Tile), Physics: uint8(c.Physics), Shape: c.Shape}
		}
		if err := binary.Write(bw, order, cells); err != nil {
			return fmt.Errorf("failed to write screen (%d,%d) cells: %w", s.X, s.Y, err)
		}

		for _, p := range s.Grid.POIs {
			pr := poiRecord{Kind: uint8(p.Kind), X: uint8(p.X), Y: uint8(p.Y), Arg: int32(p.Arg)}
			if err := binary.Write(bw, order, &pr); err != nil {
				return fmt.Errorf("failed to write screen (%d,%d) pois: %w", s.X, s.Y, err)
			}
		}
	}
	return bw.Flush()
}

// Decode reads a world written by Encode, resolving blueprint and region ids
// through src.
func Decode(in io.Reader, src catalog.Source) (*worldmap.World, error) {
	br := bufio.NewReader(in)

	var h header
	if err := binary.Read(br, order, &h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if h.Magic != magic {
		return nil, ErrFormat
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}
	if h.GridW != grid.GridW || h.GridH != grid.GridH {
		return nil, fmt.Errorf("%w: grid is %dx%d, want %dx%d", ErrFormat, h.GridW, h.GridH, grid.GridW, grid.GridH)
	}
	if h.W == 0 || h.H == 0 || h.W > MaxWorldW || h.H > MaxWorldH {
		return nil, fmt.Errorf("%w: world is %dx%d, limit %dx%d", ErrFormat, h.W, h.H, MaxWorldW, MaxWorldH)
	}
	if h.HomeX >= h.W || h.HomeY >= h.H {
		return nil, fmt.Errorf("%w: home (%d,%d) outside world", ErrFormat, h.HomeX, h.HomeY)
	}
	if int(h.Treasures) >= int(h.W)*int(h.H) {
		return nil, fmt.Errorf("%w: %d treasures in %d screens", ErrFormat, h.Treasures, int(h.W)*int(h.H))
	}

	w := worldmap.New(int(h.W), int(h.H))
	w.TreasureCount = int(h.Treasures)
	w.Home = w.Screen(int(h.HomeX), int(h.HomeY))

	cells := make([]cellRecord, grid.GridW*grid.GridH)
	for _, s := range w.Screens {
		var rec screenRecord
		if err := binary.Read(br, order, &rec); err != nil {
			return nil, fmt.Errorf("%w: screen (%d,%d): %v", ErrFormat, s.X, s.Y, err)
		}
		for i, d := range rec.Doors {
			s.Doors[i] = worldmap.Door(d)
		}
		s.Features = worldmap.Feature(rec.Features)
		s.DirectionHome = grid.Direction(rec.DirectionHome)
		s.Transform = grid.Transform(rec.Transform)

		s.Blueprint = src.Blueprint(int(rec.Blueprint))
		if s.Blueprint == nil {
			return nil, fmt.Errorf("%w: blueprint %d", ErrUnknownResource, rec.Blueprint)
		}
		s.Region = src.Region(int(rec.Region))
		if s.Region == nil {
			return nil, fmt.Errorf("%w: region %d", ErrUnknownResource, rec.Region)
		}

		if err := binary.Read(br, order, cells); err != nil {
			return nil, fmt.Errorf("%w: screen (%d,%d) cells: %v", ErrFormat, s.X, s.Y, err)
		}
		g := &grid.Grid{Cells: make([]grid.Cell, len(cells)), Finalized: rec.Finalized != 0}
		for i, c := range cells {
			g.Cells[i] = grid.Cell{Tile: grid.TileID(c.Tile), Physics: grid.Physics(c.Physics), Shape: c.Shape}
		}

		if int(rec.POICount) > len(cells) {
			return nil, fmt.Errorf("%w: screen (%d,%d) lists %d pois", ErrFormat, s.X, s.Y, rec.POICount)
		}
		g.POIs = make([]grid.POI, 0, rec.POICount)
		for i := 0; i < int(rec.POICount); i++ {
			var pr poiRecord
			if err := binary.Read(br, order, &pr); err != nil {
				return nil, fmt.Errorf("%w: screen (%d,%d) pois: %v", ErrFormat, s.X, s.Y, err)
			}
			g.POIs = append(g.POIs, grid.POI{Kind: grid.POIKind(pr.Kind), X: int(pr.X), Y: int(pr.Y), Arg: int(pr.Arg)})
		}
		s.Grid = g
	}
	return w, nil
}
