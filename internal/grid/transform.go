package grid

// Transform mirrors a blueprint horizontally, vertically or both.
type Transform uint8

const (
	TransformNone Transform = 0
	TransformHorz Transform = 1 << 0
	TransformVert Transform = 1 << 1
	TransformBoth           = TransformHorz | TransformVert
)

// String returns the string representation of a Transform
func (t Transform) String() string {
	switch t & TransformBoth {
	case TransformNone:
		return "none"
	case TransformHorz:
		return "horz"
	case TransformVert:
		return "vert"
	default:
		return "both"
	}
}

// Horz reports whether columns are mirrored.
func (t Transform) Horz() bool { return t&TransformHorz != 0 }

// Vert reports whether rows are mirrored.
func (t Transform) Vert() bool { return t&TransformVert != 0 }

// Apply mirrors a blueprint-space coordinate. Applying the same transform
// twice returns the original coordinate.
func (t Transform) Apply(x, y int) (int, int) {
	if t.Horz() {
		x = BlueprintW - 1 - x
	}
	if t.Vert() {
		y = BlueprintH - 1 - y
	}
	return x, y
}

// ApplyDirection returns the side a blueprint edge ends up on after mirroring.
func (t Transform) ApplyDirection(d Direction) Direction {
	if t.Horz() && d.Horizontal() {
		return d.Opposite()
	}
	if t.Vert() && d.Vertical() {
		return d.Opposite()
	}
	return d
}
