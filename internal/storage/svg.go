package storage

import (
	"fmt"
	"io"
	"strings"

	"github.com/VincentCucchietti/hipparchus/internal/ode"
)

// ExportSVG renders one state component of a trajectory as an SVG
// polyline, time on the horizontal axis.
func ExportSVG(w io.Writer, times []float64, states []ode.State, index, width, height int) error {
	if len(times) < 2 || len(times) != len(states) {
		return fmt.Errorf("need at least two samples to plot, got %d", len(times))
	}
	if index < 0 || index >= len(states[0]) {
		return fmt.Errorf("state index %d out of range [0, %d)", index, len(states[0]))
	}

	minT, maxT := times[0], times[0]
	minY, maxY := states[0][index], states[0][index]
	for i, t := range times {
		if t < minT {
			minT = t
		}
		if t > maxT {
			maxT = t
		}
		v := states[i][index]
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeT := maxT - minT
	rangeY := maxY - minY
	if rangeT == 0 {
		rangeT = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="#00ff00" stroke-width="1.5" d="M`,
		width, height, width, height))

	for i, t := range times {
		x := (t - minT) / rangeT * float64(width)
		y := float64(height) - (states[i][index]-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString("\"/>\n</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
