package heatmap

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irradiance-map.klederson.com/internal/emitter"
	"irradiance-map.klederson.com/internal/grid"
)

func testResult(t *testing.T) grid.Result {
	t.Helper()
	cat := emitter.DefaultCatalog()
	m, err := emitter.DefaultParams(cat).Model(cat)
	require.NoError(t, err)
	return grid.ComputeDefault(m)
}

func TestScale_Norm(t *testing.T) {
	s := Scale{Lo: 0, Hi: 10}

	assert.Equal(t, 0.0, s.Norm(-5))
	assert.Equal(t, 0.5, s.Norm(5))
	assert.Equal(t, 1.0, s.Norm(50))
	assert.Equal(t, 1.0, Scale{Lo: 3, Hi: 3}.Norm(3))
}

func TestRampColor_Ends(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#440154"), RampColor(0))
	assert.Equal(t, lipgloss.Color("#fde725"), RampColor(1))
	assert.Equal(t, RampColor(1), RampColor(7))
}

func TestColumnIndex(t *testing.T) {
	assert.Equal(t, 0, ColumnIndex(0, 20, 51))
	assert.Equal(t, 50, ColumnIndex(19, 20, 51))
	assert.Equal(t, 7, ColumnIndex(7, 51, 51))
	assert.Equal(t, 0, ColumnIndex(3, 1, 51))
}

func TestNearestIndex(t *testing.T) {
	xs := []float64{0, 10, 20, 30}

	assert.Equal(t, 0, NearestIndex(xs, 4))
	assert.Equal(t, 1, NearestIndex(xs, 6))
	assert.Equal(t, 3, NearestIndex(xs, 90))
	assert.Equal(t, -1, NearestIndex(nil, 1))
}

func TestCellAngle(t *testing.T) {
	assert.InDelta(t, 0, CellAngle(10, 0, 10, 10), 1e-9)
	assert.InDelta(t, 90, CellAngle(15, 10, 10, 10), 1e-9)
	assert.InDelta(t, CellAngle(7, 4, 10, 10), CellAngle(13, 4, 10, 10), 1e-9)
}

func TestNewLayout(t *testing.T) {
	l := NewLayout(5+102, 13, 6, 51)
	assert.Equal(t, Layout{Cols: 51, ColWidth: 2, RowLines: 2}, l)

	l = NewLayout(5+30, 4, 6, 51)
	assert.Equal(t, Layout{Cols: 30, ColWidth: 1, RowLines: 1}, l)
}

func TestRender_Dimensions(t *testing.T) {
	r := testResult(t)
	out := Render(80, 20, r, Probe{Row: 2, Col: 10})
	require.NotEmpty(t, out)

	lines := strings.Split(out, "\n")
	assert.LessOrEqual(t, len(lines), 20)
	assert.GreaterOrEqual(t, len(lines), 1+len(r.Angles))
	for _, l := range lines {
		assert.LessOrEqual(t, lipgloss.Width(l), 80)
	}
	assert.Contains(t, out, probeGlyph)
	assert.Contains(t, out, "50°")
}

func TestRender_TooSmall(t *testing.T) {
	assert.Empty(t, Render(4, 20, testResult(t), Probe{}))
	assert.Empty(t, Render(80, 20, grid.Result{}, Probe{}))
}

func TestRenderBeam_Dimensions(t *testing.T) {
	out := RenderBeam(60, 16, testResult(t), Probe{Row: 0, Col: 5})
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 16)
	for _, l := range lines {
		assert.Equal(t, 60, lipgloss.Width(l))
	}
	assert.Contains(t, lines[15], "*")
}

func TestVisibleTicks(t *testing.T) {
	ticks := VisibleTicks(Scale{Lo: 2.5, Hi: 5.5})
	require.Len(t, ticks, 3)
	assert.Equal(t, "1K", ticks[0].Label)
	assert.Equal(t, "100K", ticks[2].Label)
}

func TestRenderColorBar(t *testing.T) {
	out := RenderColorBar(60, Scale{Lo: 1, Hi: 7})
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "100")
	assert.Contains(t, lines[1], "1M")
	assert.Empty(t, RenderColorBar(4, Scale{}))
}
