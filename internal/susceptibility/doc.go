// Package susceptibility implements the time-stepped auxiliary polarization
// fields that model frequency-dependent material response in an FDTD solver.
//
// Each dispersive mechanism is one [Susceptibility] term: it owns a spatial
// [SigmaMap] of coupling coefficients and advances a per-chunk
// [PolarizationState] in lock-step with the driving field W, via
//
//	P = chi(omega) W
//
// discretized as a damped-oscillator recurrence. Implemented models:
//
//   - [Lorentzian]: damped harmonic oscillator dispersion
//   - [NoisyLorentzian]: Lorentzian plus stochastic thermal/quantum forcing
//   - [Gyrotropic]: magneto-optic media with skew-symmetric tensor coupling
//
// Terms superpose additively; the field solver subtracts every term's
// polarization from the flux field after the updates. The per-point loops
// have no inter-point dependencies within one call and are safe to run
// concurrently across chunks.
package susceptibility
