package susceptibility

import "github.com/seewhydee/meep/internal/grid"

// PolarizationState is the opaque per-(chunk, term) blob for the Lorentzian
// family: current and previous-step polarization for every needed
// (component, copy) pair. All sub-arrays are views into one backing
// allocation; the layout is fixed at allocation time and preserved by Copy.
//
// The state is exclusively owned by one (chunk, term) pair; no locking.
type PolarizationState struct {
	ntot  int
	buf   []float64
	p     [grid.NumComponents][grid.NumCopies][]float64
	pPrev [grid.NumComponents][grid.NumCopies][]float64
}

func newPolarizationState(needed [grid.NumComponents][grid.NumCopies]bool, ntot int) *PolarizationState {
	num := 0
	for c := 0; c < grid.NumComponents; c++ {
		for cmp := 0; cmp < grid.NumCopies; cmp++ {
			if needed[c][cmp] {
				num++
			}
		}
	}
	if num == 0 {
		return nil
	}
	st := &PolarizationState{ntot: ntot, buf: make([]float64, 2*num*ntot)}
	st.layout(needed)
	return st
}

func (st *PolarizationState) layout(needed [grid.NumComponents][grid.NumCopies]bool) {
	off := 0
	for c := 0; c < grid.NumComponents; c++ {
		for cmp := 0; cmp < grid.NumCopies; cmp++ {
			if !needed[c][cmp] {
				continue
			}
			st.p[c][cmp] = st.buf[off : off+st.ntot]
			st.pPrev[c][cmp] = st.buf[off+st.ntot : off+2*st.ntot]
			off += 2 * st.ntot
		}
	}
}

// NumPoints returns the chunk's local point count.
func (st *PolarizationState) NumPoints() int { return st.ntot }

// P returns the current polarization for (c, cmp), nil if not stored.
func (st *PolarizationState) P(c grid.Component, cmp int) []float64 {
	if st == nil {
		return nil
	}
	return st.p[c][cmp]
}

// PPrev returns the previous-step polarization for (c, cmp). The gyrotropic
// update also uses this slot as pass-1 scratch.
func (st *PolarizationState) PPrev(c grid.Component, cmp int) []float64 {
	if st == nil {
		return nil
	}
	return st.pPrev[c][cmp]
}

// Zero clears every stored value, keeping the layout.
func (st *PolarizationState) Zero() {
	if st == nil {
		return
	}
	for i := range st.buf {
		st.buf[i] = 0
	}
}

// Copy deep-copies the state wholesale, preserving the sub-array layout.
func (st *PolarizationState) Copy() *PolarizationState {
	if st == nil {
		return nil
	}
	var needed [grid.NumComponents][grid.NumCopies]bool
	for c := 0; c < grid.NumComponents; c++ {
		for cmp := 0; cmp < grid.NumCopies; cmp++ {
			needed[c][cmp] = st.p[c][cmp] != nil
		}
	}
	out := &PolarizationState{ntot: st.ntot, buf: make([]float64, len(st.buf))}
	copy(out.buf, st.buf)
	out.layout(needed)
	return out
}
