package grid

// Direction is a Cartesian coupling direction.
type Direction int

const (
	X Direction = iota
	Y
	Z
	NoDirection
)

// NumDirections counts the Cartesian directions.
const NumDirections = 3

func (d Direction) String() string {
	switch d {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	}
	return "none"
}

// Cycle returns the direction n cyclic steps after d (x -> y -> z -> x).
func Cycle(d Direction, n int) Direction {
	return Direction((int(d) + n) % 3)
}

// Component identifies one direction of one physical field. E and H are the
// fields seen by the wave equation; D and B are the paired flux/displacement
// fields that polarization is subtracted from.
type Component int

const (
	Ex Component = iota
	Ey
	Ez
	Hx
	Hy
	Hz
	Dx
	Dy
	Dz
	Bx
	By
	Bz
	NumComponents = 12
)

// NumCopies is the number of parallel field copies per component.
const NumCopies = 2

var componentNames = [NumComponents]string{
	"Ex", "Ey", "Ez", "Hx", "Hy", "Hz", "Dx", "Dy", "Dz", "Bx", "By", "Bz",
}

func (c Component) String() string {
	if c < 0 || c >= NumComponents {
		return "invalid"
	}
	return componentNames[c]
}

// ParseComponent resolves a component name such as "Ex" or "hz".
func ParseComponent(name string) (Component, bool) {
	for i, n := range componentNames {
		if equalFold(n, name) {
			return Component(i), true
		}
	}
	return 0, false
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// Direction returns the Cartesian direction of the component itself.
func (c Component) Direction() Direction { return Direction(int(c) % 3) }

func (c Component) IsElectric() bool { return c >= Ex && c <= Ez }
func (c Component) IsMagnetic() bool { return c >= Hx && c <= Hz }

// WithDirection returns the component of the same field with direction d,
// e.g. Ey.WithDirection(Z) == Ez.
func (c Component) WithDirection(d Direction) Component {
	return Component(int(c)-int(c.Direction())) + Component(d)
}

// FieldType groups components by physical field.
type FieldType int

const (
	EStuff FieldType = iota
	HStuff
	DStuff
	BStuff
)

func (ft FieldType) String() string {
	switch ft {
	case EStuff:
		return "E"
	case HStuff:
		return "H"
	case DStuff:
		return "D"
	case BStuff:
		return "B"
	}
	return "invalid"
}

// FieldType returns the field the component belongs to.
func (c Component) FieldType() FieldType { return FieldType(int(c) / 3) }

// TypeComponent returns the component of field type ft in direction d.
func TypeComponent(ft FieldType, d Direction) Component {
	return Component(int(ft)*3 + int(d))
}

// FluxType maps a field type to its paired flux/displacement type
// (E -> D, H -> B).
func FluxType(ft FieldType) FieldType {
	if ft == EStuff {
		return DStuff
	}
	return BStuff
}
