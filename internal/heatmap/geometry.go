package heatmap

import (
	"math"

	"irradiance-map.klederson.com/internal/config"
)

// CellDistance computes the distance from a cell to the emitter origin,
// accounting for terminal aspect ratio.
func CellDistance(col, row, originX, originY int) float64 {
	dx := float64(col - originX)
	dy := float64(originY-row) / config.AspectRatio
	return math.Sqrt(dx*dx + dy*dy)
}

// CellAngle returns the absolute angle in degrees between boresight
// (straight up from the origin) and the cell. Cells below the origin
// report more than 90.
func CellAngle(col, row, originX, originY int) float64 {
	dx := math.Abs(float64(col - originX))
	dy := float64(originY-row) / config.AspectRatio
	return math.Atan2(dx, dy) * 180 / math.Pi
}

// RadiusToMeters converts a distance in cells back to meters.
func RadiusToMeters(cells, radius, maxRange float64) float64 {
	if radius <= 0 {
		return 0
	}
	return cells / radius * maxRange
}

// NearestIndex returns the index of the value in ascending xs closest to v,
// or -1 when xs is empty.
func NearestIndex(xs []float64, v float64) int {
	if len(xs) == 0 {
		return -1
	}
	best := 0
	for i := range xs {
		if math.Abs(xs[i]-v) < math.Abs(xs[best]-v) {
			best = i
		}
	}
	return best
}

// ColumnIndex maps display column c of cols onto a sequence of n samples.
func ColumnIndex(c, cols, n int) int {
	if cols <= 1 || n <= 1 {
		return 0
	}
	if cols >= n {
		return c * n / cols
	}
	return int(math.Round(float64(c) * float64(n-1) / float64(cols-1)))
}

// halfSpacing is half the gap between the two widest angles, used as the
// angular edge of the beam fan.
func halfSpacing(angles []float64) float64 {
	if len(angles) < 2 {
		return 5
	}
	return (angles[len(angles)-1] - angles[len(angles)-2]) / 2
}
