package susceptibility

import "github.com/seewhydee/meep/internal/grid"

// Lorentzian models damped-harmonic-oscillator dispersion:
//
//	d2P/dt2 + gamma dP/dt + omega0^2 P = omega0^2 sigma W
//
// discretized with a centered leapfrog scheme. Omega0 and Gamma are in
// cycles (the 2*pi angular factors are applied inside the update).
type Lorentzian struct {
	base
	Omega0 float64
	Gamma  float64

	// NoOmega0Denominator omits the restoring-force contribution from the
	// update denominator, for susceptibilities defined without it.
	NoOmega0Denominator bool
}

// NewLorentzian builds a Lorentzian term over the given coupling map.
func NewLorentzian(sigma *SigmaMap, omega0, gamma float64, noOmega0Denominator bool) *Lorentzian {
	return &Lorentzian{
		base:                base{id: nextID(), sigma: sigma},
		Omega0:              omega0,
		Gamma:               gamma,
		NoOmega0Denominator: noOmega0Denominator,
	}
}

func (l *Lorentzian) Clone() Susceptibility {
	out := *l
	out.sigma = l.sigma.Clone()
	return &out
}

// NewInternalData sizes the state from the components that need storage.
func (l *Lorentzian) NewInternalData(w *grid.FieldSet, gv *grid.Volume) *PolarizationState {
	return newPolarizationState(l.neededComponents(w), gv.NumPoints())
}

// InitInternalData zeroes the state and recomputes the sub-array layout.
func (l *Lorentzian) InitInternalData(w *grid.FieldSet, dt float64, gv *grid.Volume, st *PolarizationState) {
	if st == nil {
		return
	}
	st.Zero()
	st.ntot = gv.NumPoints()
	st.layout(l.neededComponents(w))
}

func (l *Lorentzian) CopyInternalData(st *PolarizationState) *PolarizationState {
	return st.Copy()
}

func (l *Lorentzian) neededComponents(w *grid.FieldSet) [grid.NumComponents][grid.NumCopies]bool {
	var needed [grid.NumComponents][grid.NumCopies]bool
	for c := grid.Component(0); c < grid.NumComponents; c++ {
		for cmp := 0; cmp < grid.NumCopies; cmp++ {
			needed[c][cmp] = l.NeedsP(c, cmp, w)
		}
	}
	return needed
}

// offdiag is the stable average of an off-diagonal sigma-field product: four
// equally weighted terms combining the point and its stride-shifted
// neighbors. A naive one-point product is unstable at material interfaces.
func offdiag(s, w []float64, i, sw, ss int) float64 {
	return 0.25 * ((w[i]+w[i-sw])*s[i] + (w[i+ss]+w[(i+ss)-sw])*s[i+ss])
}

// UpdateP advances the leapfrog recurrence
//
//	P_new = (1/g) (P (2 - w0^2 dt^2 k) - g' P_prev + w0^2 dt^2 sigma W_eff)
//
// with g = 1 + gamma pi dt, g' = 1 - gamma pi dt, selecting the isotropic,
// 2-direction, or full 3x3 anisotropic branch per component from which
// off-diagonal sigmas are non-trivial.
func (l *Lorentzian) UpdateP(w, wPrev *grid.FieldSet, dt float64, gv *grid.Volume, st *PolarizationState) {
	if st == nil {
		return
	}
	_ = wPrev
	omega2pi := 2 * pi * l.Omega0
	g2pi := 2 * pi * l.Gamma
	omega0dtsqr := omega2pi * omega2pi * dt * dt
	gamma1inv := 1 / (1 + g2pi*dt/2)
	gamma1 := 1 - g2pi*dt/2
	omega0dtsqrDenom := omega0dtsqr
	if l.NoOmega0Denominator {
		omega0dtsqrDenom = 0
	}

	// Unstable(l.Omega0, l.Gamma, dt) is available as a diagnostic but is
	// too conservative to enforce here.

	for c := grid.Component(0); c < grid.NumComponents; c++ {
		for cmp := 0; cmp < grid.NumCopies; cmp++ {
			p := st.P(c, cmp)
			if p == nil {
				continue
			}
			wc := w.Get(c, cmp)
			s := l.sigma.Get(c, c.Direction())
			if wc == nil || s == nil {
				continue
			}
			pp := st.PPrev(c, cmp)

			// Strides for the off-diagonal averages follow the
			// staggered-lattice orientation of the component.
			sign := 1
			if c.IsMagnetic() {
				sign = -1
			}
			d0 := c.Direction()
			is := gv.Stride(d0) * sign

			d1 := grid.Cycle(d0, 1)
			is1 := gv.Stride(d1) * sign
			w1 := w.Get(c.WithDirection(d1), cmp)
			var s1 []float64
			if w1 != nil {
				s1 = l.sigma.Get(c, d1)
			}

			d2 := grid.Cycle(d0, 2)
			is2 := gv.Stride(d2) * sign
			w2 := w.Get(c.WithDirection(d2), cmp)
			var s2 []float64
			if w2 != nil {
				s2 = l.sigma.Get(c, d2)
			}

			// Canonicalize so a single non-trivial off-diagonal is
			// always in slot 1.
			if s2 != nil && s1 == nil {
				is1, is2 = is2, is1
				w1, w2 = w2, w1
				s1, s2 = s2, s1
			}

			switch {
			case s1 != nil && s2 != nil: // 3x3 anisotropic
				gv.ForOwned(func(i int) {
					// Points where sigma vanishes are skipped: updating
					// them excites instabilities at sharply truncated
					// material boundaries.
					if s[i] == 0 {
						return
					}
					pcur := p[i]
					p[i] = gamma1inv * (pcur*(2-omega0dtsqrDenom) - gamma1*pp[i] +
						omega0dtsqr*(s[i]*wc[i]+offdiag(s1, w1, i, is1, is)+
							offdiag(s2, w2, i, is2, is)))
					pp[i] = pcur
				})
			case s1 != nil: // 2x2 anisotropic
				gv.ForOwned(func(i int) {
					if s[i] == 0 {
						return
					}
					pcur := p[i]
					p[i] = gamma1inv * (pcur*(2-omega0dtsqrDenom) - gamma1*pp[i] +
						omega0dtsqr*(s[i]*wc[i]+offdiag(s1, w1, i, is1, is)))
					pp[i] = pcur
				})
			default: // isotropic
				gv.ForOwned(func(i int) {
					pcur := p[i]
					p[i] = gamma1inv * (pcur*(2-omega0dtsqrDenom) - gamma1*pp[i] +
						omega0dtsqr*(s[i]*wc[i]))
					pp[i] = pcur
				})
			}
		}
	}
}

// SubtractP subtracts every populated polarization component from the
// paired flux arrays (E components from D, H components from B), in place.
func (l *Lorentzian) SubtractP(ft grid.FieldType, fMinusP *grid.FieldSet, st *PolarizationState) {
	if st == nil {
		return
	}
	ft2 := grid.FluxType(ft)
	for d := grid.X; d < grid.NumDirections; d++ {
		ec := grid.TypeComponent(ft, d)
		for cmp := 0; cmp < grid.NumCopies; cmp++ {
			p := st.P(ec, cmp)
			if p == nil {
				continue
			}
			fmp := fMinusP.Get(grid.TypeComponent(ft2, d), cmp)
			if fmp == nil {
				continue
			}
			for i := 0; i < st.ntot; i++ {
				fmp[i] -= p[i]
			}
		}
	}
}

// NumNotownedNeeded reports one ghost value per point for components with
// polarization storage, zero otherwise.
func (l *Lorentzian) NumNotownedNeeded(c grid.Component, st *PolarizationState) int {
	if st == nil || st.P(c, 0) == nil {
		return 0
	}
	return 1
}

// NotownedValues exposes the polarization storage the exchange layer copies
// ghost values into.
func (l *Lorentzian) NotownedValues(c grid.Component, cmp int, st *PolarizationState) []float64 {
	if st == nil {
		return nil
	}
	return st.P(c, cmp)
}

func (l *Lorentzian) DumpParams(w ParamWriter) {
	w.WriteChunk([]float64{TagLorentzian, float64(l.id), l.Omega0, l.Gamma, boolFloat(l.NoOmega0Denominator)})
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
