package heatmap

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tick is one labelled value on the colour bar.
type Tick struct {
	Value float64 // Linear density, mW/m²
	Label string
}

// DecadeTicks are the colour bar labels.
var DecadeTicks = []Tick{
	{100, "100"},
	{1e3, "1K"},
	{1e4, "10K"},
	{1e5, "100K"},
	{1e6, "1M"},
}

// VisibleTicks returns the ticks whose log10 value lies inside s.
func VisibleTicks(s Scale) []Tick {
	var out []Tick
	for _, t := range DecadeTicks {
		lv := math.Log10(t.Value)
		if lv >= s.Lo && lv <= s.Hi {
			out = append(out, t)
		}
	}
	return out
}

// RenderColorBar draws a two-line horizontal colour bar for s: the ramp on the
// first line and decade tick labels under it.
func RenderColorBar(width int, s Scale) string {
	title := "mW/m² "
	barW := width - lipgloss.Width(title)
	if barW < 5 {
		return ""
	}

	var bar strings.Builder
	for c := 0; c < barW; c++ {
		t := float64(c) / float64(max(1, barW-1))
		bar.WriteString(lipgloss.NewStyle().Foreground(RampColor(t)).Render("▀"))
	}

	labels := []byte(strings.Repeat(" ", barW))
	next := 0
	for _, tick := range VisibleTicks(s) {
		pos := int(math.Round(s.Norm(math.Log10(tick.Value)) * float64(barW-1)))
		if pos+len(tick.Label) > barW {
			pos = barW - len(tick.Label)
		}
		if pos < next {
			continue
		}
		copy(labels[pos:], tick.Label)
		next = pos + len(tick.Label) + 1
	}

	pad := strings.Repeat(" ", lipgloss.Width(title))
	return styleAxis.Render(title) + bar.String() + "\n" + pad + styleLabel.Render(string(labels))
}
