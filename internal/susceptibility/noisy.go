package susceptibility

import (
	"math"

	"github.com/seewhydee/meep/internal/grid"
	"github.com/seewhydee/meep/internal/noise"
)

// NoisyLorentzian adds stochastic forcing to the Lorentzian recurrence:
// after each deterministic update, every owned point receives an increment
// drawn from the source with mean zero and standard deviation
// amp * sqrt(sigma_local). With a Gaussian source the increments are
// normally distributed; a [noise.Uniform] source is an acceptable variant
// (it carries the sqrt(3) amplitude scaling itself).
type NoisyLorentzian struct {
	Lorentzian
	NoiseAmp float64
	src      noise.Source
}

// NewNoisyLorentzian builds a noisy term drawing from src.
func NewNoisyLorentzian(sigma *SigmaMap, noiseAmp, omega0, gamma float64, noOmega0Denominator bool, src noise.Source) *NoisyLorentzian {
	return &NoisyLorentzian{
		Lorentzian: Lorentzian{
			base:                base{id: nextID(), sigma: sigma},
			Omega0:              omega0,
			Gamma:               gamma,
			NoOmega0Denominator: noOmega0Denominator,
		},
		NoiseAmp: noiseAmp,
		src:      src,
	}
}

func (n *NoisyLorentzian) Clone() Susceptibility {
	out := *n
	out.sigma = n.sigma.Clone()
	return &out
}

func (n *NoisyLorentzian) UpdateP(w, wPrev *grid.FieldSet, dt float64, gv *grid.Volume, st *PolarizationState) {
	n.Lorentzian.UpdateP(w, wPrev, dt, gv, st)
	if st == nil || n.NoiseAmp == 0 {
		return
	}

	g2pi := 2 * pi * n.Gamma
	w2pi := 2 * pi * n.Omega0
	amp := w2pi * n.NoiseAmp * math.Sqrt(g2pi) * dt * dt / (1 + g2pi*dt/2)

	for c := grid.Component(0); c < grid.NumComponents; c++ {
		for cmp := 0; cmp < grid.NumCopies; cmp++ {
			p := st.P(c, cmp)
			if p == nil {
				continue
			}
			s := n.sigma.Get(c, c.Direction())
			if s == nil {
				continue
			}
			gv.ForOwned(func(i int) {
				p[i] += n.src.Draw(0, amp*math.Sqrt(s[i]))
			})
		}
	}
}

func (n *NoisyLorentzian) DumpParams(w ParamWriter) {
	w.WriteChunk([]float64{TagNoisyLorentzian, float64(n.id), n.NoiseAmp, n.Omega0, n.Gamma, boolFloat(n.NoOmega0Denominator)})
}
