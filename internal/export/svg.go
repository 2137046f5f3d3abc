// Package export renders stored traces as standalone SVG line plots.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/seewhydee/meep/internal/store"
)

var strokeColors = []string{"#00ff00", "#00bfff", "#ff8c00", "#ff4d6d"}

// TracesToSVG plots every trace against the shared time axis on a dark
// background, one polyline per trace. Empty input yields an empty string.
func TracesToSVG(times []float64, traces []store.Trace, width, height int) string {
	if len(times) < 2 || len(traces) == 0 {
		return ""
	}

	minV, maxV := traces[0].Values[0], traces[0].Values[0]
	for _, tr := range traces {
		for _, v := range tr.Values {
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}
	rangeV := maxV - minV
	if rangeV == 0 {
		rangeV = 1
	}
	minV -= rangeV * 0.1
	maxV += rangeV * 0.1
	rangeV = maxV - minV

	t0 := times[0]
	rangeT := times[len(times)-1] - t0
	if rangeT == 0 {
		rangeT = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	// Zero line, when visible.
	if minV < 0 && maxV > 0 {
		y0 := float64(height) - (0-minV)/rangeV*float64(height)
		sb.WriteString(fmt.Sprintf(
			"<line x1=\"0\" y1=\"%.1f\" x2=\"%d\" y2=\"%.1f\" stroke=\"#333333\" stroke-width=\"1\"/>\n",
			y0, width, y0))
	}

	for ti, tr := range traces {
		color := strokeColors[ti%len(strokeColors)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		n := len(tr.Values)
		if n > len(times) {
			n = len(times)
		}
		for i := 0; i < n; i++ {
			x := (times[i] - t0) / rangeT * float64(width)
			y := float64(height) - (tr.Values[i]-minV)/rangeV*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
		sb.WriteString(fmt.Sprintf(
			"<text x=\"8\" y=\"%d\" fill=\"%s\" font-family=\"monospace\" font-size=\"12\">%s</text>\n",
			16+ti*16, color, tr.Name))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteSVG renders the traces and writes the result to path.
func WriteSVG(path string, times []float64, traces []store.Trace, width, height int) error {
	svg := TracesToSVG(times, traces, width, height)
	if svg == "" {
		return fmt.Errorf("export: nothing to plot")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
