package scenario

import (
	"errors"
	"fmt"

	"github.com/lawnchairsociety/screenworld/internal/catalog"
)

var (
	ErrInvalidConfig = errors.New("scenario: invalid configuration")
	ErrPlacement     = errors.New("scenario: no screen left for a feature")
	ErrPathForge     = errors.New("scenario: no path from treasure to home")
	ErrRepair        = errors.New("scenario: could not make every screen reachable")
	ErrTreasureCount = errors.New("scenario: treasure count mismatch")
)

// Limits on generation inputs.
const (
	MinPlayers    = 1
	MaxPlayers    = 8
	MinDifficulty = 1
	MaxDifficulty = 9
	MinLength     = 1
	MaxLength     = 9
)

// Config is what a world is generated for.
type Config struct {
	Players    int
	Skills     catalog.Skill
	Difficulty int
	Length     int
}

// Validate checks every input against its range.
func (c Config) Validate() error {
	if c.Players < MinPlayers || c.Players > MaxPlayers {
		return fmt.Errorf("%w: player count %d not in %d-%d", ErrInvalidConfig, c.Players, MinPlayers, MaxPlayers)
	}
	if c.Difficulty < MinDifficulty || c.Difficulty > MaxDifficulty {
		return fmt.Errorf("%w: difficulty %d not in %d-%d", ErrInvalidConfig, c.Difficulty, MinDifficulty, MaxDifficulty)
	}
	if c.Length < MinLength || c.Length > MaxLength {
		return fmt.Errorf("%w: length %d not in %d-%d", ErrInvalidConfig, c.Length, MinLength, MaxLength)
	}
	return nil
}

// Party returns the party the blueprints are matched against.
func (c Config) Party() catalog.Party {
	return catalog.Party{Players: c.Players, Skills: c.Skills, Difficulty: c.Difficulty}
}

// TestConfig drives the explicit entry point: the listed blueprints are all
// placed, and RegionID, when non-zero, skins every screen.
type TestConfig struct {
	Config
	BlueprintIDs []int
	RegionID     int
}

// Size is the world shape for one length.
type Size struct {
	W, H      int
	Treasures int
}

var sizes = [MaxLength]Size{
	{3, 4, 1},
	{4, 4, 2},
	{5, 4, 3},
	{5, 5, 4},
	{6, 5, 6},
	{7, 6, 8},
	{8, 7, 10},
	{10, 8, 13},
	{12, 9, 16},
}

// SizeFor returns the world shape for a length.
func SizeFor(length int) (Size, error) {
	if length < MinLength || length > MaxLength {
		return Size{}, fmt.Errorf("%w: length %d not in %d-%d", ErrInvalidConfig, length, MinLength, MaxLength)
	}
	return sizes[length-1], nil
}
