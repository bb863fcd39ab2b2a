// Package catalog holds the read-only resources the generator draws from:
// blueprints, regions and tilesheets.
package catalog

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrDuplicateID = errors.New("catalog: duplicate resource id")
	ErrInvalid     = errors.New("catalog: invalid resource")
)

// Source is the resource-manager view the generator reads from. Lookups
// return nil for unknown ids. Returned resources must not be modified.
type Source interface {
	Blueprint(id int) *Blueprint
	Blueprints() []*Blueprint
	Region(id int) *Region
	Regions() []*Region
	Tilesheet(id int) *Tilesheet
}

// Tilesheet is an image of tiles a region draws from.
type Tilesheet struct {
	ID        int
	Name      string
	Path      string
	TileCount int
}

// Catalog is an in-memory Source.
type Catalog struct {
	blueprints map[int]*Blueprint
	regions    map[int]*Region
	tilesheets map[int]*Tilesheet
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{
		blueprints: make(map[int]*Blueprint),
		regions:    make(map[int]*Region),
		tilesheets: make(map[int]*Tilesheet),
	}
}

// AddBlueprint validates and registers a blueprint.
func (c *Catalog) AddBlueprint(bp *Blueprint) error {
	if _, exists := c.blueprints[bp.ID]; exists {
		return fmt.Errorf("%w: blueprint %d", ErrDuplicateID, bp.ID)
	}
	if err := bp.Validate(); err != nil {
		return err
	}
	c.blueprints[bp.ID] = bp
	return nil
}

// AddTilesheet registers a tilesheet.
func (c *Catalog) AddTilesheet(ts *Tilesheet) error {
	if _, exists := c.tilesheets[ts.ID]; exists {
		return fmt.Errorf("%w: tilesheet %d", ErrDuplicateID, ts.ID)
	}
	if ts.TileCount <= 0 {
		return fmt.Errorf("%w: tilesheet %d has no tiles", ErrInvalid, ts.ID)
	}
	c.tilesheets[ts.ID] = ts
	return nil
}

// AddRegion validates a region against its tilesheet and registers it.
// The tilesheet must be added first.
func (c *Catalog) AddRegion(r *Region) error {
	if _, exists := c.regions[r.ID]; exists {
		return fmt.Errorf("%w: region %d", ErrDuplicateID, r.ID)
	}
	ts := c.tilesheets[r.TilesheetID]
	if ts == nil {
		return fmt.Errorf("%w: region %d references unknown tilesheet %d", ErrInvalid, r.ID, r.TilesheetID)
	}
	if err := r.Validate(ts); err != nil {
		return err
	}
	c.regions[r.ID] = r
	return nil
}

// Blueprint returns the blueprint with the given id, or nil.
func (c *Catalog) Blueprint(id int) *Blueprint { return c.blueprints[id] }

// Region returns the region with the given id, or nil.
func (c *Catalog) Region(id int) *Region { return c.regions[id] }

// Tilesheet returns the tilesheet with the given id, or nil.
func (c *Catalog) Tilesheet(id int) *Tilesheet { return c.tilesheets[id] }

// Blueprints returns all blueprints ordered by id.
func (c *Catalog) Blueprints() []*Blueprint {
	out := make([]*Blueprint, 0, len(c.blueprints))
	for _, bp := range c.blueprints {
		out = append(out, bp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Regions returns all regions ordered by id.
func (c *Catalog) Regions() []*Region {
	out := make([]*Region, 0, len(c.regions))
	for _, r := range c.regions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Counts returns the number of blueprints, regions and tilesheets.
func (c *Catalog) Counts() (blueprints, regions, tilesheets int) {
	return len(c.blueprints), len(c.regions), len(c.tilesheets)
}
