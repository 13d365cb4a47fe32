package ui

import (
	"fmt"
	"strings"

	"irradiance-map.klederson.com/internal/grid"
)

const (
	angleColW = 7
	cellColW  = 9
)

// RenderTablePanel renders the coarse linear grid: one row per angle, one
// column per whole-meter distance. Columns that do not fit are dropped from
// the right.
func RenderTablePanel(g grid.Result, width, height int) string {
	innerW := max(angleColW+cellColW, width-4)
	cols := min(len(g.CoarseDistances), (innerW-angleColW)/cellColW)

	var header strings.Builder
	header.WriteString(fmt.Sprintf("%-*s", angleColW, "Ang\\m"))
	for j := 0; j < cols; j++ {
		header.WriteString(fmt.Sprintf("%*s", cellColW, fmt.Sprintf("%g m", g.CoarseDistances[j])))
	}

	lines := []string{StyleTableHeader.Render(header.String()), Separator(angleColW + cols*cellColW)}
	for i, a := range g.Angles {
		var row strings.Builder
		row.WriteString(StyleTableHeader.Render(fmt.Sprintf("%-*s", angleColW, FormatAngle(a))))
		for j := 0; j < cols; j++ {
			row.WriteString(StyleTableCell.Render(fmt.Sprintf("%*s", cellColW, FormatDensity(g.Table[i][j]))))
		}
		lines = append(lines, row.String())
	}
	if cols < len(g.CoarseDistances) {
		lines = append(lines, StyleHelp.Render(fmt.Sprintf("(%d of %d distances shown, widen the terminal for more)",
			cols, len(g.CoarseDistances))))
	}

	return RenderPanel(width, height, "POWER DENSITY (mW/m²)", strings.Join(lines, "\n"), false)
}
