// Package analysis turns recorded polarization traces into frequency-domain
// quantities: the power spectrum of a trace and the complex response
// P(omega)/W(omega) of a driven run, which is the discrete estimate of the
// susceptibility the material stack was configured to produce.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform with the radix-2
// Cooley-Tukey recursion. The input length must be a power of two; use
// [PadPow2] first for arbitrary trace lengths.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		out := make([]complex128, n)
		for i := range data {
			out[i] = complex(data[i], 0)
		}
		return out
	}
	if n%2 != 0 {
		panic("analysis: fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}
	feven := FFT(even)
	fodd := FFT(odd)

	out := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		out[k] = feven[k] + w*fodd[k]
		out[k+n/2] = feven[k] - w*fodd[k]
	}
	return out
}

// PadPow2 zero-pads data up to the next power of two.
func PadPow2(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n <<= 1
	}
	if n == len(data) {
		return data
	}
	out := make([]float64, n)
	copy(out, data)
	return out
}

// PowerSpectrum returns |X_k| for the non-negative frequency half of the
// transform, zero-padding as needed.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(PadPow2(data))
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// Frequencies returns the frequency axis matching [PowerSpectrum] for a
// trace sampled at interval dt: bin k sits at k/(n dt) with n the padded
// length.
func Frequencies(sampleCount int, dt float64) []float64 {
	n := 1
	for n < sampleCount {
		n <<= 1
	}
	out := make([]float64, n/2)
	for k := range out {
		out[k] = float64(k) / (float64(n) * dt)
	}
	return out
}

// Response estimates the complex transfer function P(omega)/W(omega) from a
// simultaneously sampled drive and response trace. Bins where the drive
// amplitude is negligible are left zero rather than amplified.
func Response(drive, response []float64) []complex128 {
	n := len(drive)
	if len(response) < n {
		n = len(response)
	}
	fw := FFT(PadPow2(drive[:n]))
	fp := FFT(PadPow2(response[:n]))

	const floor = 1e-12
	out := make([]complex128, len(fw)/2)
	for k := range out {
		if cmplx.Abs(fw[k]) > floor {
			out[k] = fp[k] / fw[k]
		}
	}
	return out
}

// PeakBin returns the index of the largest spectral amplitude, skipping the
// DC bin.
func PeakBin(ps []float64) int {
	best, bestVal := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > bestVal {
			best, bestVal = k, ps[k]
		}
	}
	return best
}
