package susceptibility

import "github.com/seewhydee/meep/internal/grid"

// SigmaMap holds one spatial coefficient array per (component, direction)
// pair. A pair is "trivial" when its sigma is identically zero; trivial
// pairs carry no array at all. Triviality must agree across adjoining
// chunks so that polarization storage is allocated symmetrically.
type SigmaMap struct {
	ntot    int
	sigma   [grid.NumComponents][grid.NumDirections][]float64
	trivial [grid.NumComponents][grid.NumDirections]bool
}

// NewSigmaMap returns an all-trivial map for a chunk of ntot points.
func NewSigmaMap(ntot int) *SigmaMap {
	m := &SigmaMap{ntot: ntot}
	for c := 0; c < grid.NumComponents; c++ {
		for d := 0; d < grid.NumDirections; d++ {
			m.trivial[c][d] = true
		}
	}
	return m
}

func (m *SigmaMap) NumPoints() int { return m.ntot }

// Get returns the sigma array for (c, d), nil when trivial.
func (m *SigmaMap) Get(c grid.Component, d grid.Direction) []float64 {
	if d >= grid.NumDirections {
		return nil
	}
	return m.sigma[c][d]
}

// Trivial reports whether sigma for (c, d) is identically absent.
func (m *SigmaMap) Trivial(c grid.Component, d grid.Direction) bool {
	if d >= grid.NumDirections {
		return true
	}
	return m.trivial[c][d]
}

// Set installs a dense sigma array for (c, d) and clears the trivial flag.
// The array must cover every point of the chunk; partial population is not
// representable.
func (m *SigmaMap) Set(c grid.Component, d grid.Direction, values []float64) {
	m.sigma[c][d] = values
	m.trivial[c][d] = false
}

// Fill sets sigma for (c, d) to a uniform value over the whole chunk. A zero
// value still marks the pair non-trivial: triviality is a cross-chunk
// allocation decision, not a local one.
func (m *SigmaMap) Fill(c grid.Component, d grid.Direction, value float64) {
	s := make([]float64, m.ntot)
	for i := range s {
		s[i] = value
	}
	m.Set(c, d, s)
}

// FillOwned sets sigma for (c, d) to value over the owned region only,
// leaving the boundary layer zero. This is the usual shape of a material
// truncated at the chunk edge.
func (m *SigmaMap) FillOwned(v *grid.Volume, c grid.Component, d grid.Direction, value float64) {
	s := make([]float64, m.ntot)
	v.ForOwned(func(i int) { s[i] = value })
	m.Set(c, d, s)
}

// Clone deep-copies the coefficient set and trivial-flag table.
func (m *SigmaMap) Clone() *SigmaMap {
	out := NewSigmaMap(m.ntot)
	for c := 0; c < grid.NumComponents; c++ {
		for d := 0; d < grid.NumDirections; d++ {
			if m.sigma[c][d] != nil {
				s := make([]float64, len(m.sigma[c][d]))
				copy(s, m.sigma[c][d])
				out.sigma[c][d] = s
			}
			out.trivial[c][d] = m.trivial[c][d]
		}
	}
	return out
}
