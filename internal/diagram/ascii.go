package diagram

import (
	"fmt"
	"strings"

	"github.com/structura/structura/internal/analysis"
)

// DrawBeamElevation creates an ASCII elevation of the simply supported beam
// with its load
func DrawBeamElevation(data BeamDiagramData) string {
	var sb strings.Builder

	beamChars := 40

	title := "POINT LOAD AT MIDSPAN"
	if data.LoadType == analysis.UDL {
		title = "UNIFORMLY DISTRIBUTED LOAD"
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  BEAM ELEVATION - %s\n", title))
	sb.WriteString("  " + strings.Repeat("─", len(title)+17) + "\n\n")

	// Load arrows
	if data.LoadType == analysis.UDL {
		sb.WriteString(fmt.Sprintf("   %s\n", centered(fmt.Sprintf("%g kg total", data.LoadKg), beamChars)))
		sb.WriteString("   " + strings.Repeat("▼ ", beamChars/2) + "\n")
	} else {
		label := fmt.Sprintf("▼ %g kg", data.LoadKg)
		sb.WriteString("   " + strings.Repeat(" ", beamChars/2) + label + "\n")
		sb.WriteString("   " + strings.Repeat(" ", beamChars/2) + "│\n")
	}

	// Beam and supports
	sb.WriteString("  ╞" + strings.Repeat("═", beamChars) + "╡\n")
	sb.WriteString("  ▲" + strings.Repeat(" ", beamChars) + "▲\n")

	// Span dimension
	dim := fmt.Sprintf(" L = %g m ", data.Span)
	left := (beamChars - len(dim)) / 2
	if left < 0 {
		left = 0
	}
	right := beamChars - left - len(dim)
	if right < 0 {
		right = 0
	}
	sb.WriteString(fmt.Sprintf("  |%s%s%s|\n", strings.Repeat("─", left), dim, strings.Repeat("─", right)))

	sb.WriteString("\n")
	if data.MaterialName != "" {
		sb.WriteString(fmt.Sprintf("  Material: %s\n", data.MaterialName))
	}
	if data.ShapeLabel != "" {
		sb.WriteString(fmt.Sprintf("  Section:  %s\n", data.ShapeLabel))
	}

	return sb.String()
}

// DrawDeflectedShape creates an ASCII deflection profile along the span
func DrawDeflectedShape(data BeamDiagramData) string {
	var sb strings.Builder

	rows := 10
	width := 40

	sb.WriteString("\n")
	sb.WriteString("  DEFLECTED SHAPE\n")
	sb.WriteString("  ───────────────\n\n")

	pts := DeflectedShape(data, rows)
	for i, pt := range pts {
		xi := float64(i) / float64(rows)
		barLen := int(NormalizedDeflection(data.LoadType, xi)*float64(width) + 0.5)

		marker := "│"
		if i == 0 || i == rows {
			marker = "▲"
		}
		sb.WriteString(fmt.Sprintf("  x=%6.2f m %s%s", pt.X, marker, strings.Repeat("█", barLen)))
		if i == rows/2 {
			sb.WriteString(fmt.Sprintf("▶ δmax = %.3f mm", data.MaxDeflectionMm))
		}
		sb.WriteString("\n")
	}

	status := "✓ within the 5 mm ceiling"
	if data.MaxDeflectionMm >= analysis.DeflectionCeilingMm {
		status = "✗ exceeds the 5 mm ceiling"
	}
	sb.WriteString(fmt.Sprintf("\n  Deflection %s\n", status))

	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	pad := func(s string) string {
		return s + strings.Repeat(" ", maxLen-4-len([]rune(s)))
	}

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

func centered(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return strings.Repeat(" ", (width-n)/2) + s
}
