package analysis

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestFFTSingleTone(t *testing.T) {
	const (
		n   = 256
		bin = 16
	)
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Cos(2 * math.Pi * float64(bin) * float64(i) / n)
	}

	fft := FFT(data)
	// A real cosine puts amplitude n/2 in the tone bin and its mirror.
	if got := cmplx.Abs(fft[bin]); math.Abs(got-n/2) > 1e-9 {
		t.Errorf("tone bin amplitude: got %g, want %d", got, n/2)
	}
	if got := cmplx.Abs(fft[1]); got > 1e-9 {
		t.Errorf("off-tone bin not empty: %g", got)
	}
}

func TestFFTParseval(t *testing.T) {
	data := []float64{1, 2, -1, 0.5, 0, -2, 3, 1}
	fft := FFT(data)

	timeE := 0.0
	for _, v := range data {
		timeE += v * v
	}
	freqE := 0.0
	for _, v := range fft {
		freqE += real(v)*real(v) + imag(v)*imag(v)
	}
	if math.Abs(timeE-freqE/float64(len(data))) > 1e-12 {
		t.Errorf("Parseval violated: %g vs %g", timeE, freqE/float64(len(data)))
	}
}

func TestPadPow2(t *testing.T) {
	if got := len(PadPow2(make([]float64, 5))); got != 8 {
		t.Errorf("padded length: got %d, want 8", got)
	}
	in := []float64{1, 2, 3, 4}
	if got := PadPow2(in); len(got) != 4 || &got[0] != &in[0] {
		t.Error("power-of-2 input should pass through unchanged")
	}
	padded := PadPow2([]float64{1, 2, 3})
	if padded[3] != 0 {
		t.Errorf("pad not zero: %v", padded)
	}
}

func TestPowerSpectrumPeak(t *testing.T) {
	const (
		n    = 300 // pads to 512
		dt   = 0.01
		freq = 5.0
	)
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * freq * float64(i) * dt)
	}

	ps := PowerSpectrum(data)
	freqs := Frequencies(n, dt)
	if len(ps) != len(freqs) {
		t.Fatalf("axis mismatch: %d vs %d", len(ps), len(freqs))
	}
	peak := freqs[PeakBin(ps)]
	// Bin spacing is 1/(512*0.01); the peak must land within one bin.
	if math.Abs(peak-freq) > 1/(512*dt) {
		t.Errorf("peak at %g, want %g", peak, freq)
	}
}

func TestResponseRecoversGain(t *testing.T) {
	const n = 128
	drive := make([]float64, n)
	resp := make([]float64, n)
	for i := range drive {
		drive[i] = math.Cos(2 * math.Pi * 8 * float64(i) / n)
		resp[i] = 2.5 * drive[i]
	}

	h := Response(drive, resp)
	if got := cmplx.Abs(h[8]); math.Abs(got-2.5) > 1e-9 {
		t.Errorf("gain at tone bin: got %g, want 2.5", got)
	}
}

func TestResponseGuardsEmptyDrive(t *testing.T) {
	drive := make([]float64, 64)
	resp := make([]float64, 64)
	for i := range resp {
		resp[i] = math.Sin(float64(i))
	}
	for _, v := range Response(drive, resp) {
		if v != 0 {
			t.Fatalf("empty drive produced response %v", v)
		}
	}
}
