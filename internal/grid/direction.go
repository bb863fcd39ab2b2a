package grid

// Direction represents a cardinal direction between screens or cells.
type Direction int

const (
	North Direction = iota
	East
	South
	West
	DirNone // No direction (the home screen has no homeward direction)
)

// String returns the string representation of a Direction
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	case DirNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseDirection converts a direction name to a Direction.
// Unknown names (including "") yield DirNone.
func ParseDirection(s string) Direction {
	switch s {
	case "north", "n":
		return North
	case "east", "e":
		return East
	case "south", "s":
		return South
	case "west", "w":
		return West
	default:
		return DirNone
	}
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= North && d <= West
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	if !d.Valid() {
		return d
	}
	return (d + 2) % 4
}

// Clockwise returns the direction a quarter turn clockwise from d.
func (d Direction) Clockwise() Direction {
	if !d.Valid() {
		return d
	}
	return (d + 1) % 4
}

// CounterClockwise returns the direction a quarter turn counter-clockwise from d.
func (d Direction) CounterClockwise() Direction {
	if !d.Valid() {
		return d
	}
	return (d + 3) % 4
}

// Horizontal reports whether d lies on the east-west axis.
func (d Direction) Horizontal() bool {
	return d == East || d == West
}

// Vertical reports whether d lies on the north-south axis.
func (d Direction) Vertical() bool {
	return d == North || d == South
}

// Delta returns the x/y offset of one step in direction d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}

// AllDirections returns all four cardinal directions
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}
