package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusInfo is the parameter summary shown on the status bar.
type StatusInfo struct {
	Count       int
	Intensity   float64
	Aggregate   float64
	Environment float64 // Effective value after default substitution
	Windshield  float64 // Effective value after default substitution
	MaxRange    float64
	Err         error
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, s StatusInfo) string {
	status := StyleStatusOK.Render("[OK]")
	if s.Err != nil {
		status = StyleStatusError.Render("[" + s.Err.Error() + "]")
	}

	info := fmt.Sprintf(" LEDs: %d  I: %s mW/sr  Total: %s mW/sr  Env: %g  Windshield: %g  Range: 0-%.0fm",
		s.Count, FormatDensity(s.Intensity), FormatDensity(s.Aggregate),
		s.Environment, s.Windshield, s.MaxRange)

	content := status + StyleStatusBar.Foreground(ColorGreen).Render(info)

	gap := width - lipgloss.Width(content) - 2
	if gap < 0 {
		gap = 0
	}
	return StyleStatusBar.Width(width).Render(Fit(content+strings.Repeat(" ", gap), max(1, width-2), 1))
}
