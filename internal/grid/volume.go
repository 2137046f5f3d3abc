package grid

// Coords selects the coordinate system of a chunk.
type Coords int

const (
	Cartesian Coords = iota
	Cylindrical
)

// Volume describes one spatial chunk: its extent, memory strides, and the
// owned interior region that per-point update loops run over. Points outside
// the owned region are ghost values kept for stable off-diagonal averaging
// across chunk boundaries.
type Volume struct {
	n      [3]int
	stride [3]int
	ntot   int
	coords Coords
}

// NewVolume builds a Cartesian chunk of nx x ny x nz points. Dimensions of
// size 1 are absent: their stride is zero, so stride-shifted neighbor reads
// fold back onto the point itself.
func NewVolume(nx, ny, nz int) *Volume {
	if nx < 1 {
		nx = 1
	}
	if ny < 1 {
		ny = 1
	}
	if nz < 1 {
		nz = 1
	}
	v := &Volume{n: [3]int{nx, ny, nz}, coords: Cartesian}
	v.stride = [3]int{ny * nz, nz, 1}
	for d := 0; d < 3; d++ {
		if v.n[d] == 1 {
			v.stride[d] = 0
		}
	}
	v.ntot = nx * ny * nz
	return v
}

// NewCylindricalVolume builds a chunk flagged as cylindrical. The dispersion
// recurrences treat it like a 2D Cartesian chunk; models that require
// Cartesian geometry must reject it.
func NewCylindricalVolume(nr, nz int) *Volume {
	v := NewVolume(nr, 1, nz)
	v.coords = Cylindrical
	return v
}

func (v *Volume) NumPoints() int { return v.ntot }
func (v *Volume) Coords() Coords { return v.coords }

// Size returns the point count along direction d.
func (v *Volume) Size(d Direction) int { return v.n[d] }

// Stride returns the index shift of one step along direction d, zero when
// the dimension is absent.
func (v *Volume) Stride(d Direction) int { return v.stride[d] }

// Index returns the linear index of grid coordinates (x, y, z).
func (v *Volume) Index(x, y, z int) int {
	return x*v.n[1]*v.n[2] + y*v.n[2] + z
}

func (v *Volume) ownedRange(d int) (int, int) {
	if v.n[d] == 1 {
		return 0, 0
	}
	return 1, v.n[d] - 2
}

// ForOwned calls fn for every owned point. The owned region excludes one
// boundary layer in each present dimension so that stride-shifted neighbor
// reads stay in bounds.
func (v *Volume) ForOwned(fn func(i int)) {
	x0, x1 := v.ownedRange(0)
	y0, y1 := v.ownedRange(1)
	z0, z1 := v.ownedRange(2)
	sy, sz := v.n[1]*v.n[2], v.n[2]
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			base := x*sy + y*sz
			for z := z0; z <= z1; z++ {
				fn(base + z)
			}
		}
	}
}

// NumOwned counts the points ForOwned visits.
func (v *Volume) NumOwned() int {
	n := 1
	for d := 0; d < 3; d++ {
		lo, hi := v.ownedRange(d)
		n *= hi - lo + 1
	}
	return n
}
