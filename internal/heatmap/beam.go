package heatmap

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"irradiance-map.klederson.com/internal/config"
	"irradiance-map.klederson.com/internal/grid"
)

var (
	styleOrigin = lipgloss.NewStyle().Foreground(lipgloss.Color("#FDE725")).Bold(true)
	styleRing   = lipgloss.NewStyle().Foreground(lipgloss.Color("#004A0A"))
)

// RenderBeam draws the fan view: the emitter sits at the bottom centre with
// boresight pointing up. Each profile angle is drawn as a mirrored sector
// coloured by the log density at the cell's distance.
func RenderBeam(width, height int, r grid.Result, probe Probe) string {
	if width < 10 || height < 5 || len(r.Angles) == 0 || len(r.FineDistances) == 0 {
		return ""
	}

	originX := width / 2
	originY := height - 1
	radius := math.Min(float64(originX-1), float64(originY)/config.AspectRatio)
	if radius < 3 {
		radius = 3
	}

	ringRadii := make([]float64, config.RingCount)
	for i := range ringRadii {
		ringRadii[i] = radius * float64(i+1) / float64(config.RingCount)
	}

	scale := NewScale(r.Heatmap)
	probe = probe.Clamp(len(r.Angles), len(r.FineDistances))
	edge := r.Angles[len(r.Angles)-1] + halfSpacing(r.Angles)

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			sb.WriteString(beamCell(col, row, originX, originY, radius, edge, ringRadii, r, scale, probe))
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func beamCell(col, row, originX, originY int, radius, edge float64, ringRadii []float64, r grid.Result, scale Scale, probe Probe) string {
	if col == originX && row == originY {
		return styleOrigin.Render("*")
	}

	dist := CellDistance(col, row, originX, originY)
	if dist > radius+0.5 {
		return " "
	}

	angle := CellAngle(col, row, originX, originY)
	if angle > edge {
		for _, ringR := range ringRadii {
			if math.Abs(dist-ringR) < 0.5 && angle <= 90 {
				return styleRing.Render(".")
			}
		}
		return " "
	}

	ai := NearestIndex(r.Angles, angle)
	di := NearestIndex(r.FineDistances, RadiusToMeters(dist, radius, config.MaxDistance))
	color := scale.Color(r.Heatmap[ai][di])

	if ai == probe.Row && di == probe.Col {
		return styleProbe.Background(color).Render(probeGlyph)
	}
	return lipgloss.NewStyle().Foreground(color).Render(cellGlyph)
}
