package ui

import (
	"fmt"
	"math"
	"strings"

	"irradiance-map.klederson.com/internal/emitter"
)

// RenderProfilePanel renders the active angular profile as a two-column table
// with a bar per factor.
func RenderProfilePanel(points []emitter.ProfilePoint, width, height int) string {
	innerW := max(20, width-4)
	barW := max(4, innerW-18)

	lines := []string{
		StyleTableHeader.Render(fmt.Sprintf("%-7s %-8s", "Angle", "Factor")),
		Separator(innerW),
	}
	for _, p := range points {
		angle := StyleTableCell.Render(fmt.Sprintf("%-7s", FormatAngle(p.Angle)))
		factor := StyleFieldValue.Render(fmt.Sprintf("%-8s", fmt.Sprintf("%.2f", p.Factor)))
		lines = append(lines, angle+" "+factor+" "+renderFactorBar(p.Factor, barW))
	}

	return RenderPanel(width, height, "ANGULAR PROFILE", strings.Join(lines, "\n"), false)
}

// renderFactorBar maps a factor in [0, 1] to filled cells. Out-of-range
// factors are clamped for display only.
func renderFactorBar(f float64, width int) string {
	ratio := math.Max(0, math.Min(1, f))
	if math.IsNaN(ratio) {
		ratio = 0
	}
	filled := int(math.Round(ratio * float64(width)))
	return StyleFactorBar.Render(strings.Repeat("|", filled)) +
		StyleHelp.Render(strings.Repeat("-", width-filled))
}
