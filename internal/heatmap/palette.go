package heatmap

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Viridis colour stops, dark (low density) to bright (high density).
var viridisHex = []string{
	"#440154", "#482878", "#3E4A89", "#31688E", "#26828E",
	"#1F9E89", "#35B779", "#6DCD59", "#B4DE2C", "#FDE725",
}

var viridis = func() []colorful.Color {
	out := make([]colorful.Color, len(viridisHex))
	for i, h := range viridisHex {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}()

// Scale maps a value range onto the viridis ramp.
type Scale struct {
	Lo, Hi float64
}

// Norm returns v's position in [0, 1]. A flat scale maps everything to 1.
func (s Scale) Norm(v float64) float64 {
	if s.Hi <= s.Lo || math.IsNaN(v) {
		return 1
	}
	t := (v - s.Lo) / (s.Hi - s.Lo)
	return math.Max(0, math.Min(1, t))
}

// Color returns the ramp colour for v.
func (s Scale) Color(v float64) lipgloss.Color {
	return RampColor(s.Norm(v))
}

// RampColor returns the viridis colour at t in [0, 1].
func RampColor(t float64) lipgloss.Color {
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(viridis)-1)
	i := int(math.Floor(pos))
	frac := pos - float64(i)
	if i >= len(viridis)-1 || frac == 0 {
		return lipgloss.Color(viridis[min(i, len(viridis)-1)].Hex())
	}
	c := viridis[i].BlendLab(viridis[i+1], frac).Clamped()
	return lipgloss.Color(c.Hex())
}
