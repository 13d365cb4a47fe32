package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irradiance-map.klederson.com/internal/emitter"
	"irradiance-map.klederson.com/internal/grid"
	"irradiance-map.klederson.com/internal/heatmap"
)

func assertBlock(t *testing.T, out string, width, height int) {
	t.Helper()
	lines := strings.Split(out, "\n")
	require.Len(t, lines, height)
	for i, l := range lines {
		assert.Equal(t, width, lipgloss.Width(l), "line %d: %q", i, l)
	}
}

func TestFormatDensity(t *testing.T) {
	assert.Equal(t, "56.25", FormatDensity(56.2494))
	assert.Equal(t, "0.00", FormatDensity(0))
	assert.Equal(t, "1.50K", FormatDensity(1500))
	assert.Equal(t, "5.63M", FormatDensity(5625562.5))
}

func TestFormatAngle(t *testing.T) {
	assert.Equal(t, "30°", FormatAngle(30))
	assert.Equal(t, "7.5°", FormatAngle(7.5))
}

func TestFit(t *testing.T) {
	out := Fit("abcdef\nxy", 4, 3)
	assert.Equal(t, "abcd\nxy\n", out)
}

func TestRenderPanel_ExactSize(t *testing.T) {
	content := strings.Repeat("a very long line that will not fit\n", 20)
	assertBlock(t, RenderPanel(30, 8, "TITLE", content, true), 30, 8)
}

func TestRenderParamsPanel(t *testing.T) {
	fields := []ParamField{
		{Label: "LED type", Value: "POWER"},
		{Label: "Environment", Value: "22.22", Hint: "(0 = 22.22)"},
		{Label: "Windshield", Editing: true, Buffer: "3.5"},
	}
	out := RenderParamsPanel(fields, 2, 40, 10, true)

	assertBlock(t, out, 40, 10)
	assert.Contains(t, out, "PARAMETERS")
	assert.Contains(t, out, "3.5_")
	assert.Contains(t, out, "esc cancel")
}

func TestRenderProfilePanel(t *testing.T) {
	preset, ok := emitter.DefaultCatalog().Lookup("TSAL6400")
	require.True(t, ok)

	out := RenderProfilePanel(preset.Profile.Points(), 36, 12)
	assertBlock(t, out, 36, 12)
	assert.Contains(t, out, "50°")
	assert.Contains(t, out, "0.05")
}

func TestRenderTablePanel(t *testing.T) {
	cat := emitter.DefaultCatalog()
	m, err := emitter.DefaultParams(cat).Model(cat)
	require.NoError(t, err)
	g := grid.ComputeDefault(m)

	wide := RenderTablePanel(g, 120, 12)
	assertBlock(t, wide, 120, 12)
	assert.Contains(t, wide, "10 m")

	narrow := RenderTablePanel(g, 50, 12)
	assertBlock(t, narrow, 50, 12)
	assert.NotContains(t, narrow, "10 m")
}

func TestRenderReadout(t *testing.T) {
	out := RenderReadout(Reading{
		Distance: 2.4,
		Angle:    20,
		Density:  1234.5,
		Falloff:  []float64{5, 4, 3, 2, 1},
		Scale:    heatmap.Scale{Lo: 0, Hi: 6},
	}, 60)

	lines := strings.Split(ansi.Strip(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "distance = 2.40 m")
	assert.Contains(t, lines[0], "angle = 20°")
	assert.Contains(t, lines[0], "1.23K mW/m²")
	assert.Contains(t, lines[2], "^~-._")
}

func TestRenderSparkline(t *testing.T) {
	assert.Equal(t, "_.-~^", renderSparkline([]float64{0, 1, 2, 3, 4}, 10))
	assert.Equal(t, "___", renderSparkline([]float64{2, 2, 2}, 10))
	assert.Len(t, renderSparkline(make([]float64, 51), 20), 20)
}

func TestRenderStatusBar(t *testing.T) {
	ok := RenderStatusBar(120, StatusInfo{Count: 2, Intensity: 2500, Aggregate: 5000, Environment: 22.22, Windshield: 1, MaxRange: 10})
	assert.Equal(t, 120, lipgloss.Width(ok))
	assert.Contains(t, ok, "[OK]")
	assert.Contains(t, ok, "5.00K")

	bad := RenderStatusBar(80, StatusInfo{Err: errors.New("invalid intensity: must be positive")})
	assert.Equal(t, 80, lipgloss.Width(bad))
	assert.Contains(t, bad, "invalid intensity")
}

func TestRenderMenuBar(t *testing.T) {
	out := RenderMenuBar(100, "TSAL6400", "heatmap")
	assert.Equal(t, 100, lipgloss.Width(out))
	assert.Contains(t, out, "IRRADIANCE-MAP")
	assert.Contains(t, out, "TSAL6400")
	assert.Contains(t, ansi.Strip(out), "[E]xport")

	narrow := RenderMenuBar(60, "TSAL6400", "beam")
	assert.Equal(t, 60, lipgloss.Width(narrow))
	assert.Contains(t, ansi.Strip(narrow), "TSAL6400")
}
