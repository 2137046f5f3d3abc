package susceptibility

import (
	"errors"
	"testing"

	"github.com/seewhydee/meep/internal/grid"
	"github.com/seewhydee/meep/internal/noise"
)

func TestIDsMonotonic(t *testing.T) {
	s := NewSigmaMap(1)
	a := NewLorentzian(s.Clone(), 1, 0.1, false)
	b := NewLorentzian(s.Clone(), 1, 0.1, false)
	if b.ID() <= a.ID() {
		t.Errorf("ids not increasing: %d then %d", a.ID(), b.ID())
	}
}

func TestEnsureIDFloor(t *testing.T) {
	s := NewSigmaMap(1)
	a := NewLorentzian(s.Clone(), 1, 0.1, false)
	EnsureIDFloor(a.ID() + 100)
	b := NewLorentzian(s.Clone(), 1, 0.1, false)
	if b.ID() <= a.ID()+100 {
		t.Errorf("floor not honored: got %d after floor %d", b.ID(), a.ID()+100)
	}
	// Lowering the floor is a no-op.
	EnsureIDFloor(1)
	c := NewLorentzian(s.Clone(), 1, 0.1, false)
	if c.ID() <= b.ID() {
		t.Errorf("floor regressed the counter: %d then %d", b.ID(), c.ID())
	}
}

func TestSigmaMapTriviality(t *testing.T) {
	m := NewSigmaMap(4)
	if !m.Trivial(grid.Ex, grid.X) || m.Get(grid.Ex, grid.X) != nil {
		t.Error("fresh map should be all-trivial")
	}

	// Zero fill still clears the trivial flag: storage symmetry across
	// chunks matters more than the local value.
	m.Fill(grid.Ex, grid.Y, 0)
	if m.Trivial(grid.Ex, grid.Y) {
		t.Error("zero fill left pair trivial")
	}
	if s := m.Get(grid.Ex, grid.Y); len(s) != 4 {
		t.Errorf("fill allocated %d points, want 4", len(s))
	}
}

func TestSigmaMapFillOwned(t *testing.T) {
	gv := grid.NewVolume(4, 1, 1)
	m := NewSigmaMap(gv.NumPoints())
	m.FillOwned(gv, grid.Ex, grid.X, 2.5)
	s := m.Get(grid.Ex, grid.X)
	if s[0] != 0 || s[3] != 0 {
		t.Errorf("boundary not left zero: %v", s)
	}
	if s[1] != 2.5 || s[2] != 2.5 {
		t.Errorf("interior not filled: %v", s)
	}
}

func TestSigmaMapClone(t *testing.T) {
	m := NewSigmaMap(2)
	m.Fill(grid.Ex, grid.X, 1)
	c := m.Clone()
	c.Get(grid.Ex, grid.X)[0] = 9
	if m.Get(grid.Ex, grid.X)[0] == 9 {
		t.Error("clone aliases storage")
	}
	if !c.Trivial(grid.Ey, grid.X) {
		t.Error("clone lost trivial flags")
	}
}

func TestRecordLen(t *testing.T) {
	tests := []struct{ tag, want int }{
		{TagLorentzian, 5},
		{TagNoisyLorentzian, 6},
		{TagGyrotropic, 9},
		{7, 0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := RecordLen(tt.tag); got != tt.want {
			t.Errorf("RecordLen(%d): got %d, want %d", tt.tag, got, tt.want)
		}
	}
}

func TestFromRecordRoundTrip(t *testing.T) {
	sigma := NewSigmaMap(1)
	sigma.Fill(grid.Ex, grid.X, 1)
	src := noise.NewGaussian(1)

	l := NewLorentzian(sigma.Clone(), 1.5, 0.25, true)
	var rec recordSink
	l.DumpParams(&rec)
	got, err := FromRecord(rec.vals, sigma.Clone(), src)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	rl, ok := got.(*Lorentzian)
	if !ok {
		t.Fatalf("restored wrong type %T", got)
	}
	if rl.ID() != l.ID() || rl.Omega0 != 1.5 || rl.Gamma != 0.25 || !rl.NoOmega0Denominator {
		t.Errorf("restored params wrong: %+v", rl)
	}

	n := NewNoisyLorentzian(sigma.Clone(), 0.3, 1.0, 0.1, false, src)
	rec.vals = nil
	n.DumpParams(&rec)
	got, err = FromRecord(rec.vals, sigma.Clone(), src)
	if err != nil {
		t.Fatalf("restore noisy: %v", err)
	}
	rn, ok := got.(*NoisyLorentzian)
	if !ok {
		t.Fatalf("restored wrong type %T", got)
	}
	if rn.ID() != n.ID() || rn.NoiseAmp != 0.3 {
		t.Errorf("restored noisy params wrong: %+v", rn)
	}

	g := NewGyrotropic(sigma.Clone(), [3]float64{0, 0, 1}, 0.5, 1.1, 0.2)
	rec.vals = nil
	g.DumpParams(&rec)
	got, err = FromRecord(rec.vals, sigma.Clone(), src)
	if err != nil {
		t.Fatalf("restore gyrotropic: %v", err)
	}
	rg, ok := got.(*Gyrotropic)
	if !ok {
		t.Fatalf("restored wrong type %T", got)
	}
	if rg.ID() != g.ID() || rg.Alpha != 0.5 || rg.Bias() != g.Bias() {
		t.Errorf("restored gyrotropic params wrong: %+v", rg)
	}

	// Restored identifiers become the floor for new allocations.
	fresh := NewLorentzian(sigma.Clone(), 1, 0.1, false)
	if fresh.ID() <= g.ID() {
		t.Errorf("fresh id %d collides with restored range ending at %d", fresh.ID(), g.ID())
	}
}

func TestFromRecordRejectsMalformed(t *testing.T) {
	sigma := NewSigmaMap(1)
	cases := [][]float64{
		nil,
		{99, 1, 2},
		{TagLorentzian, 1, 2},
		{TagGyrotropic, 1, 2, 3},
	}
	for _, rec := range cases {
		if _, err := FromRecord(rec, sigma, nil); !errors.Is(err, ErrBadRecord) {
			t.Errorf("record %v: expected ErrBadRecord, got %v", rec, err)
		}
	}
}

func TestUnstable(t *testing.T) {
	tests := []struct {
		name              string
		omega0, gamma, dt float64
		want              bool
	}{
		{"undamped coarse step", 1.0, 0, 0.5, true},
		{"damped fine step", 1.0, 0.1, 0.01, false},
		{"damped moderate step", 1.0, 0.1, 0.05, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Unstable(tt.omega0, tt.gamma, tt.dt); got != tt.want {
				t.Errorf("Unstable(%g, %g, %g) = %v, want %v",
					tt.omega0, tt.gamma, tt.dt, got, tt.want)
			}
		})
	}
}
