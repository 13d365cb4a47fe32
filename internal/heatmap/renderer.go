package heatmap

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"irradiance-map.klederson.com/internal/grid"
)

var (
	colorAxis  = lipgloss.Color("#008F11")
	colorProbe = lipgloss.Color("#FF3300")

	styleAxis  = lipgloss.NewStyle().Foreground(colorAxis)
	styleLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#00CC33"))
	styleProbe = lipgloss.NewStyle().Foreground(colorProbe).Bold(true)
)

const (
	cellGlyph  = "█"
	probeGlyph = "+"
	gutter     = 5 // "50° " plus one space
)

// Probe is the highlighted heatmap cell: Row indexes Angles, Col indexes
// FineDistances.
type Probe struct {
	Row, Col int
}

// Clamp keeps the probe inside an rows × cols grid.
func (p Probe) Clamp(rows, cols int) Probe {
	p.Row = max(0, min(p.Row, rows-1))
	p.Col = max(0, min(p.Col, cols-1))
	return p
}

// Layout describes how fine samples map onto terminal columns.
type Layout struct {
	Cols     int // Displayed sample columns
	ColWidth int // Characters per displayed column
	RowLines int // Lines per angle row
}

// NewLayout fits rows × samples into a width × height character area. One
// line is reserved for the distance axis.
func NewLayout(width, height, rows, samples int) Layout {
	avail := width - gutter
	if avail < 1 {
		avail = 1
	}
	l := Layout{Cols: avail, ColWidth: 1, RowLines: 1}
	if avail >= samples {
		l.Cols = samples
		l.ColWidth = avail / samples
	}
	if rows > 0 && height-1 > rows {
		l.RowLines = (height - 1) / rows
	}
	return l
}

// Render draws the log-scaled heatmap. Rows are angles (boresight on top),
// columns are distances increasing to the right, with the distance axis above.
func Render(width, height int, r grid.Result, probe Probe) string {
	rows := len(r.Angles)
	samples := len(r.FineDistances)
	if rows == 0 || samples == 0 || width < gutter+2 || height < 2 {
		return ""
	}

	l := NewLayout(width, height, rows, samples)
	scale := NewScale(r.Heatmap)
	probe = probe.Clamp(rows, samples)
	probeCol := displayColumn(probe.Col, l.Cols, samples)

	lines := []string{renderAxis(r.FineDistances, l)}
	for i, angle := range r.Angles {
		for sub := 0; sub < l.RowLines; sub++ {
			var sb strings.Builder
			if sub == 0 {
				sb.WriteString(styleLabel.Render(fmt.Sprintf("%3.0f° ", angle)))
			} else {
				sb.WriteString(strings.Repeat(" ", gutter))
			}
			for c := 0; c < l.Cols; c++ {
				v := r.Heatmap[i][ColumnIndex(c, l.Cols, samples)]
				glyph := strings.Repeat(cellGlyph, l.ColWidth)
				if i == probe.Row && c == probeCol && sub == l.RowLines/2 {
					sb.WriteString(styleProbe.Background(scale.Color(v)).Render(
						strings.Repeat(probeGlyph, l.ColWidth)))
					continue
				}
				sb.WriteString(lipgloss.NewStyle().Foreground(scale.Color(v)).Render(glyph))
			}
			lines = append(lines, sb.String())
		}
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// NewScale spans the finite range of a log grid.
func NewScale(logGrid [][]float64) Scale {
	lo, hi := grid.Range(logGrid)
	return Scale{Lo: lo, Hi: hi}
}

// displayColumn is the inverse of ColumnIndex: the display column showing
// sample idx, or the nearest one when samples are skipped.
func displayColumn(idx, cols, samples int) int {
	if cols >= samples || samples <= 1 {
		return idx
	}
	return int(math.Round(float64(idx) * float64(cols-1) / float64(samples-1)))
}

// renderAxis labels every whole meter that has room for its label.
func renderAxis(distances []float64, l Layout) string {
	width := gutter + l.Cols*l.ColWidth
	buf := []byte(strings.Repeat(" ", width))
	copy(buf, "m")

	next := gutter
	for c := 0; c < l.Cols; c++ {
		d := distances[ColumnIndex(c, l.Cols, len(distances))]
		if d != float64(int(d)) {
			continue
		}
		pos := gutter + c*l.ColWidth
		label := fmt.Sprintf("%d", int(d))
		if pos < next || pos+len(label) > width {
			continue
		}
		copy(buf[pos:], label)
		next = pos + len(label) + 1
	}
	return styleAxis.Render(string(buf))
}
