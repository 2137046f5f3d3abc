package susceptibility

import (
	"errors"
	"sync"

	"github.com/seewhydee/meep/internal/grid"
)

// Domain errors.
var (
	// ErrCylindrical indicates a term that requires Cartesian geometry was
	// configured on a cylindrical chunk.
	ErrCylindrical = errors.New("susceptibility: gyrotropic media require Cartesian coordinates")

	// ErrBadRecord indicates a checkpoint parameter record that cannot be
	// mapped back to a term.
	ErrBadRecord = errors.New("susceptibility: malformed parameter record")
)

// Checkpoint model tags. The tag is the first field of every parameter
// record and doubles as the dispatch key on restore.
const (
	TagLorentzian      = 4
	TagNoisyLorentzian = 5
	TagGyrotropic      = 8
)

// ParamWriter receives fixed-order numeric parameter records.
type ParamWriter interface {
	WriteChunk(vals []float64)
}

// Susceptibility is one additive dispersive contribution to a material's
// polarization response. Implementations advance their own per-chunk
// internal state; the field solver owns the driving field arrays and the
// chunk geometry.
type Susceptibility interface {
	// ID returns the process-unique identifier assigned at construction.
	ID() int

	// Clone deep-copies the sigma coefficient set. Per-chunk internal
	// state is never cloned; it belongs to the chunk.
	Clone() Susceptibility

	// Sigma exposes the term's coupling coefficients.
	Sigma() *SigmaMap

	// NeedsP reports whether polarization storage must be allocated for
	// (c, cmp) given the available driving field arrays.
	NeedsP(c grid.Component, cmp int, w *grid.FieldSet) bool

	// NeedsWNotowned reports whether the update reads ghost values of
	// component c, i.e. whether any off-diagonal sigma couples to it.
	NeedsWNotowned(c grid.Component, w *grid.FieldSet) bool

	// NewInternalData allocates the per-chunk polarization state, sized
	// from the needed components. Returns nil when nothing is needed.
	NewInternalData(w *grid.FieldSet, gv *grid.Volume) *PolarizationState

	// InitInternalData zeroes the state and lays out its sub-arrays.
	InitInternalData(w *grid.FieldSet, dt float64, gv *grid.Volume, st *PolarizationState)

	// CopyInternalData deep-copies state preserving layout; nil in, nil out.
	CopyInternalData(st *PolarizationState) *PolarizationState

	// UpdateP advances polarization by one time step.
	UpdateP(w, wPrev *grid.FieldSet, dt float64, gv *grid.Volume, st *PolarizationState)

	// SubtractP subtracts every populated polarization component from the
	// caller-owned flux arrays, in place.
	SubtractP(ft grid.FieldType, fMinusP *grid.FieldSet, st *PolarizationState)

	// NumNotownedNeeded reports how many ghost polarization values of
	// component c the communication layer must exchange per point.
	NumNotownedNeeded(c grid.Component, st *PolarizationState) int

	// NotownedValues returns the storage holding those values, nil if the
	// component has no polarization here.
	NotownedValues(c grid.Component, cmp int, st *PolarizationState) []float64

	// DumpParams serializes the term's tagged parameter record.
	DumpParams(w ParamWriter)
}

// Term identifiers are process-scoped and monotonically increasing; they
// must remain stable across checkpoint/restore.
var (
	idMu   sync.Mutex
	lastID int
)

func nextID() int {
	idMu.Lock()
	defer idMu.Unlock()
	lastID++
	return lastID
}

// EnsureIDFloor advances the identifier counter past floor so that terms
// created after a restore never collide with restored identifiers.
func EnsureIDFloor(floor int) {
	idMu.Lock()
	defer idMu.Unlock()
	if lastID < floor {
		lastID = floor
	}
}

// base carries the sigma map, identifier, and the storage-need queries
// shared by every model.
type base struct {
	id    int
	sigma *SigmaMap
}

func (b *base) ID() int          { return b.id }
func (b *base) Sigma() *SigmaMap { return b.sigma }

// NeedsP is deliberately wasteful: if sigma is non-trivial on any chunk,
// P is allocated on every chunk owning the component, so that a chunk with
// a P always borders chunks with the same P and ghost exchange never has
// to special-case absent neighbors.
func (b *base) NeedsP(c grid.Component, cmp int, w *grid.FieldSet) bool {
	if !c.IsElectric() && !c.IsMagnetic() {
		return false
	}
	for d := grid.X; d < grid.NumDirections; d++ {
		if !b.sigma.Trivial(c, d) && w.Has(c.WithDirection(d), cmp) {
			return true
		}
	}
	return false
}

func (b *base) NeedsWNotowned(c grid.Component, w *grid.FieldSet) bool {
	for d := grid.X; d < grid.NumDirections; d++ {
		if d == c.Direction() {
			continue
		}
		cP := c.WithDirection(d)
		if b.NeedsP(cP, 0, w) && !b.sigma.Trivial(cP, c.Direction()) {
			return true
		}
	}
	return false
}
