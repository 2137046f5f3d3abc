package susceptibility

import (
	"math"

	"github.com/seewhydee/meep/internal/grid"
)

// Gyrotropic models magneto-optic media: a bias vector defines a
// skew-symmetric precession tensor coupling the three Cartesian polarization
// components on top of the Lorentzian damping. The per-step update is
// implicit in the cross-coupling and solved with a closed-form 3x3 inverse.
//
// Cylindrical chunks are unsupported; UpdateP panics with [ErrCylindrical]
// and CheckVolume rejects them at configuration time.
type Gyrotropic struct {
	Lorentzian
	Alpha float64
	gyro  [3][3]float64
}

// NewGyrotropic builds a gyrotropic term. The bias vector sets the
// precession axis; only its direction matters, the magnitude is normalized
// away (with a 1e-10 floor to avoid dividing by zero).
func NewGyrotropic(sigma *SigmaMap, bias [3]float64, alpha, omega0, gamma float64) *Gyrotropic {
	g := &Gyrotropic{
		Lorentzian: Lorentzian{
			base:   base{id: nextID(), sigma: sigma},
			Omega0: omega0,
			Gamma:  gamma,
		},
		Alpha: alpha,
	}
	norm := math.Max(math.Sqrt(bias[0]*bias[0]+bias[1]*bias[1]+bias[2]*bias[2]), 1e-10)
	bn := [3]float64{bias[0] / norm, bias[1] / norm, bias[2] / norm}
	g.gyro[grid.X][grid.Y] = bn[2]
	g.gyro[grid.Y][grid.X] = -bn[2]
	g.gyro[grid.Y][grid.Z] = bn[0]
	g.gyro[grid.Z][grid.Y] = -bn[0]
	g.gyro[grid.Z][grid.X] = bn[1]
	g.gyro[grid.X][grid.Z] = -bn[1]
	return g
}

func (g *Gyrotropic) Clone() Susceptibility {
	out := *g
	out.sigma = g.sigma.Clone()
	return &out
}

// Bias returns the normalized bias vector encoded in the precession tensor.
func (g *Gyrotropic) Bias() [3]float64 {
	return [3]float64{g.gyro[grid.Y][grid.Z], g.gyro[grid.Z][grid.X], g.gyro[grid.X][grid.Y]}
}

// CheckVolume rejects chunk geometries the model cannot run on.
func (g *Gyrotropic) CheckVolume(gv *grid.Volume) error {
	if gv.Coords() == grid.Cylindrical {
		return ErrCylindrical
	}
	return nil
}

// UpdateP advances the gyrotropic recurrence in two passes. Pass 1 writes an
// intermediate value per component into the P_prev slot (scratch); it must
// complete for every coupled component before pass 2 runs. Pass 2 applies
// the closed-form inverse of (I ub - T vb), exploiting the skew symmetry of
// the precession tensor.
func (g *Gyrotropic) UpdateP(w, wPrev *grid.FieldSet, dt float64, gv *grid.Volume, st *PolarizationState) {
	if st == nil {
		return
	}
	_ = wPrev
	omega2pi := 2 * pi * g.Omega0
	g2pi := 2 * pi * g.Gamma
	alpha2pi := 2 * pi * g.Alpha
	ua := 1 - 0.5*g2pi*dt
	va := alpha2pi - 0.5*omega2pi*dt
	ub := 1 + 0.5*g2pi*dt
	vb := alpha2pi + 0.5*omega2pi*dt

	for c := grid.Component(0); c < grid.NumComponents; c++ {
		for cmp := 0; cmp < grid.NumCopies; cmp++ {
			p := st.P(c, cmp)
			if p == nil {
				continue
			}
			wc := w.Get(c, cmp)
			if wc == nil {
				continue
			}
			if gv.Coords() == grid.Cylindrical {
				panic(ErrCylindrical)
			}
			pp := st.PPrev(c, cmp)

			d0 := c.Direction()
			d1 := grid.Cycle(d0, 1)
			d2 := grid.Cycle(d0, 2)
			c1 := c.WithDirection(d1)
			c2 := c.WithDirection(d2)

			w1 := w.Get(c1, cmp)
			w2 := w.Get(c2, cmp)
			var s1, s2 []float64
			if w1 != nil {
				s1 = g.sigma.Get(c1, d1)
			}
			if w2 != nil {
				s2 = g.sigma.Get(c2, d2)
			}
			p1 := st.P(c1, cmp)
			p2 := st.P(c2, cmp)

			vab1 := va * g.gyro[d0][d1]
			vab2 := va * g.gyro[d0][d2]
			ndt1 := 2 * pi * dt * g.gyro[d0][d1]
			ndt2 := 2 * pi * dt * g.gyro[d0][d2]

			gv.ForOwned(func(i int) {
				pp[i] = ua * p[i]
				if p1 != nil {
					pp[i] += vab1 * p1[i]
				}
				if p2 != nil {
					pp[i] += vab2 * p2[i]
				}
				if s1 != nil {
					pp[i] += ndt1 * s1[i] * w1[i]
				}
				if s2 != nil {
					pp[i] += ndt2 * s2[i] * w2[i]
				}
			})
		}
	}

	// 3x3 matrix inversion exploiting skew symmetry: the system matrix is
	// ub I minus vb T, so det = ub (ub^2 + gx^2 + gy^2 + gz^2).
	gx := vb * g.gyro[grid.Y][grid.Z]
	gy := vb * g.gyro[grid.Z][grid.X]
	gz := vb * g.gyro[grid.X][grid.Y]
	invdet := 1.0 / ub / (ub*ub + gx*gx + gy*gy + gz*gz)
	var inv [3][3]float64
	inv[grid.X][grid.X] = invdet * (ub*ub + gx*gx)
	inv[grid.Y][grid.Y] = invdet * (ub*ub + gy*gy)
	inv[grid.Z][grid.Z] = invdet * (ub*ub + gz*gz)
	inv[grid.X][grid.Y] = invdet * (gx*gy - ub*gz)
	inv[grid.Y][grid.X] = invdet * (gy*gx + ub*gz)
	inv[grid.Z][grid.X] = invdet * (gz*gx - ub*gy)
	inv[grid.X][grid.Z] = invdet * (gx*gz + ub*gy)
	inv[grid.Y][grid.Z] = invdet * (gy*gz - ub*gx)
	inv[grid.Z][grid.Y] = invdet * (gz*gy + ub*gx)

	for c := grid.Component(0); c < grid.NumComponents; c++ {
		for cmp := 0; cmp < grid.NumCopies; cmp++ {
			p := st.P(c, cmp)
			if p == nil {
				continue
			}
			d0 := c.Direction()
			if w.Get(c, cmp) == nil || g.sigma.Get(c, d0) == nil {
				continue
			}
			pp := st.PPrev(c, cmp)
			d1 := grid.Cycle(d0, 1)
			d2 := grid.Cycle(d0, 2)
			var pp1, pp2 []float64
			if w.Has(c.WithDirection(d1), cmp) {
				pp1 = st.PPrev(c.WithDirection(d1), cmp)
			}
			if w.Has(c.WithDirection(d2), cmp) {
				pp2 = st.PPrev(c.WithDirection(d2), cmp)
			}
			gv.ForOwned(func(i int) {
				p[i] = inv[d0][d0] * pp[i]
				if pp1 != nil {
					p[i] += inv[d0][d1] * pp1[i]
				}
				if pp2 != nil {
					p[i] += inv[d0][d2] * pp2[i]
				}
			})
		}
	}
}

func (g *Gyrotropic) DumpParams(w ParamWriter) {
	bias := g.Bias()
	w.WriteChunk([]float64{
		TagGyrotropic, float64(g.id), bias[0], bias[1], bias[2],
		g.Alpha, g.Omega0, g.Gamma, boolFloat(g.NoOmega0Denominator),
	})
}
