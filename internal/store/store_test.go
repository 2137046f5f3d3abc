package store

import (
	"testing"
)

func TestSaveListLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	meta := RunMetadata{
		Preset:    "decay",
		Seed:      7,
		Dt:        0.01,
		Steps:     3,
		Component: "Ex",
		TermTypes: []string{"lorentzian"},
		TermIDs:   []int{1},
	}
	times := []float64{0, 0.01, 0.02}
	traces := []Trace{
		{Name: "P", Values: []float64{0, 0.1, 0.15}},
		{Name: "W", Values: []float64{1, 1, 1}},
	}

	runID, err := s.Save(meta, times, traces)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if runID == "" {
		t.Fatal("empty run id")
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one run, got %d", len(runs))
	}
	if runs[0].ID != runID || runs[0].Preset != "decay" || runs[0].Seed != 7 {
		t.Errorf("metadata mismatch: %+v", runs[0])
	}

	gotTimes, gotTraces, err := s.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace: %v", err)
	}
	if len(gotTimes) != 3 || gotTimes[2] != 0.02 {
		t.Errorf("times mismatch: %v", gotTimes)
	}
	if len(gotTraces) != 2 || gotTraces[0].Name != "P" || gotTraces[1].Name != "W" {
		t.Fatalf("trace names mismatch: %+v", gotTraces)
	}
	for i, want := range traces[0].Values {
		if gotTraces[0].Values[i] != want {
			t.Errorf("P[%d]: got %g, want %g", i, gotTraces[0].Values[i], want)
		}
	}
}

func TestListEmptyStore(t *testing.T) {
	s := New(t.TempDir() + "/never-created")
	runs, err := s.List()
	if err != nil {
		t.Fatalf("list on missing dir: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadTraceMissingRun(t *testing.T) {
	s := New(t.TempDir())
	if _, _, err := s.LoadTrace("run_0"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestTraceShorterThanTimes(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	// A trace shorter than the time axis is padded with zeros, not an error.
	runID, err := s.Save(RunMetadata{}, []float64{0, 0.01}, []Trace{{Name: "P", Values: []float64{0.5}}})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	_, traces, err := s.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if traces[0].Values[1] != 0 {
		t.Errorf("missing sample not zero-padded: %v", traces[0].Values)
	}
}
