package susceptibility

import "math"

const pi = math.Pi

// Unstable reports whether the discretized Lorentzian ODE is intrinsically
// unstable for the given parameters, i.e. whether it corresponds to a filter
// with a pole z outside the unit circle. The pole satisfies
//
//	(z + 1/z - 2)/dt^2 + g (z - 1/z)/(2 dt) + w^2 = 0
//
// with w = 2 pi omega0 and g = 2 pi gamma; the condition below follows from
// requiring a root with |z| > 1.
//
// The test is known to be overly conservative, so the update path never
// enforces it. Callers wanting strict safety should check it at
// configuration time and warn or reject.
func Unstable(omega0, gamma, dt float64) bool {
	w := 2 * pi * omega0
	g := 2 * pi * gamma
	g2 := g * dt / 2
	w2 := (w * dt) * (w * dt)
	b := (1 - w2/2) / (1 + g2)
	c := (1 - g2) / (1 + g2)
	return b*b > c && 2*b*b-c+2*math.Abs(b)*math.Sqrt(b*b-c) > 1
}
