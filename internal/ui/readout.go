package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"irradiance-map.klederson.com/internal/grid"
	"irradiance-map.klederson.com/internal/heatmap"
)

// Reading is the sample under the probe.
type Reading struct {
	Distance float64
	Angle    float64
	Density  float64   // Linear, mW/m²
	Falloff  []float64 // Log densities along distance at this angle
	Scale    heatmap.Scale
}

// RenderReadout renders the probe line, a level bar and the distance falloff
// sparkline for the probe's angle.
func RenderReadout(r Reading, width int) string {
	innerW := max(20, width)
	labelSty := lipgloss.NewStyle().Foreground(ColorMidGreen)
	valSty := lipgloss.NewStyle().Foreground(ColorMatrixGreen).Bold(true)

	probe := labelSty.Render("distance = ") + valSty.Render(fmt.Sprintf("%.2f m", r.Distance)) +
		labelSty.Render("  angle = ") + valSty.Render(FormatAngle(r.Angle)) +
		labelSty.Render("  power density = ") + valSty.Render(FormatDensity(r.Density)+" mW/m²")

	barW := max(10, innerW/2-8)
	level := labelSty.Render("Level ") + renderLevelBar(r.Scale.Norm(grid.Log10Floor(r.Density)), barW)

	lines := []string{probe, level}
	if len(r.Falloff) > 0 {
		spark := renderSparkline(r.Falloff, max(10, innerW-9))
		lines = append(lines, labelSty.Render("Falloff ")+lipgloss.NewStyle().Foreground(ColorGreen).Render(spark))
	}
	return strings.Join(lines, "\n")
}

// renderLevelBar fills ratio of width with the colour the heatmap uses at
// that level.
func renderLevelBar(ratio float64, width int) string {
	filled := int(math.Round(ratio * float64(width)))
	filled = max(0, min(width, filled))

	color := heatmap.RampColor(ratio)
	filledPart := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("|", filled))
	emptyPart := lipgloss.NewStyle().Foreground(ColorDimGreen).Render(strings.Repeat("-", width-filled))
	return StyleHelp.Render("[") + filledPart + emptyPart + StyleHelp.Render("]")
}

// renderSparkline scales values onto a five-level character ramp, sampling
// evenly when there are more values than columns.
func renderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	rng := maxV - minV
	if rng <= 0 {
		rng = 1
	}

	n := min(width, len(values))
	var sb strings.Builder
	for c := 0; c < n; c++ {
		v := values[heatmap.ColumnIndex(c, n, len(values))]
		idx := int((v - minV) / rng * float64(len(chars)-1))
		idx = max(0, min(len(chars)-1, idx))
		sb.WriteByte(chars[idx])
	}
	return sb.String()
}
