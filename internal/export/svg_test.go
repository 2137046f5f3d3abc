package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seewhydee/meep/internal/store"
)

func TestTracesToSVG(t *testing.T) {
	times := []float64{0, 0.01, 0.02, 0.03}
	traces := []store.Trace{
		{Name: "P", Values: []float64{0, 0.5, -0.5, 0.2}},
		{Name: "W", Values: []float64{1, 1, 1, 1}},
	}

	svg := TracesToSVG(times, traces, 640, 240)
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if strings.Count(svg, "<path") != 2 {
		t.Errorf("expected 2 paths, got %d", strings.Count(svg, "<path"))
	}
	if !strings.Contains(svg, ">P</text>") || !strings.Contains(svg, ">W</text>") {
		t.Error("trace labels missing")
	}
	// Values straddle zero, so the zero line must be drawn.
	if !strings.Contains(svg, "<line") {
		t.Error("zero line missing")
	}
}

func TestTracesToSVGEmpty(t *testing.T) {
	if TracesToSVG(nil, nil, 640, 240) != "" {
		t.Error("empty input should yield empty output")
	}
	if TracesToSVG([]float64{0}, []store.Trace{{Name: "P", Values: []float64{1}}}, 640, 240) != "" {
		t.Error("single sample should yield empty output")
	}
}

func TestWriteSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.svg")
	times := []float64{0, 0.01, 0.02}
	traces := []store.Trace{{Name: "P", Values: []float64{0, 1, 0}}}

	if err := WriteSVG(path, times, traces, 320, 120); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "</svg>") {
		t.Error("file is not a complete SVG document")
	}

	if err := WriteSVG(path, nil, nil, 320, 120); err == nil {
		t.Error("expected error for empty input")
	}
}
