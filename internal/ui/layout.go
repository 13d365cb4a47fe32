package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ComposeLayout stacks the left column (parameters, profile) beside the right
// column (map, table), with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, left, right, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}

// RenderPanel wraps content with a titled border of exactly width × height
// cells. Lines that do not fit are truncated.
func RenderPanel(width, height int, title, content string, active bool) string {
	innerW := max(1, width-4)
	innerH := max(1, height-2)

	lines := []string{StylePanelTitle.Render(title)}
	if content != "" {
		lines = append(lines, strings.Split(content, "\n")...)
	}
	body := Fit(strings.Join(lines, "\n"), innerW, innerH)

	style := StylePanelBorder
	if active {
		style = StylePanelActive
	}
	return style.Width(width - 2).Height(innerH).Padding(0, 1).Render(body)
}

// Fit truncates each line to w cells and pads or cuts the block to h lines.
func Fit(content string, w, h int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, w, "")
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// Separator is a dim horizontal rule w cells wide.
func Separator(w int) string {
	return StyleSeparator.Render(strings.Repeat("-", max(0, w)))
}
