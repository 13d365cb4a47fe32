package grid

import (
	"math"

	"irradiance-map.klederson.com/internal/config"
	"irradiance-map.klederson.com/internal/emitter"
)

// Sampler is anything that can produce a power density sample.
type Sampler interface {
	Density(distance, angle float64) float64
}

// Result holds one full evaluation. Rows follow Angles, columns follow the
// matching distance sequence.
type Result struct {
	Angles []float64 `json:"angles"`

	CoarseDistances []float64   `json:"coarseDistances"`
	Table           [][]float64 `json:"table"` // Linear density, coarse distances

	FineDistances []float64   `json:"fineDistances"`
	Fine          [][]float64 `json:"fine"`    // Linear density, fine distances
	Heatmap       [][]float64 `json:"heatmap"` // log10 of Fine, floored
}

// Sequence returns from, from+step, ... up to and including to. Values are
// computed by multiplication so the last column lands on to exactly.
func Sequence(from, to, step float64) []float64 {
	if step <= 0 || to < from {
		return []float64{from}
	}
	n := int(math.Floor((to-from)/step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = round(from+float64(i)*step, 1e9)
	}
	return out
}

func round(v, scale float64) float64 {
	return math.Round(v*scale) / scale
}

// CoarseDistances is the table sweep: 0, 1, ..., 10 m.
func CoarseDistances() []float64 {
	return Sequence(0, config.MaxDistance, config.CoarseStep)
}

// FineDistances is the heatmap sweep: 0, 0.2, ..., 10 m.
func FineDistances() []float64 {
	return Sequence(0, config.MaxDistance, config.FineStep)
}

// Evaluate samples s at every angle × distance pair.
func Evaluate(s Sampler, angles, distances []float64) [][]float64 {
	out := make([][]float64, len(angles))
	for i, a := range angles {
		row := make([]float64, len(distances))
		for j, d := range distances {
			row[j] = s.Density(d, a)
		}
		out[i] = row
	}
	return out
}

// Log10Floor applies the display transform: non-positive and NaN values are
// floored to LogFloor before taking log10.
func Log10Floor(v float64) float64 {
	if !(v > config.LogFloor) {
		v = config.LogFloor
	}
	return math.Log10(v)
}

// LogGrid applies Log10Floor to every cell.
func LogGrid(linear [][]float64) [][]float64 {
	out := make([][]float64, len(linear))
	for i, row := range linear {
		lr := make([]float64, len(row))
		for j, v := range row {
			lr[j] = Log10Floor(v)
		}
		out[i] = lr
	}
	return out
}

// Compute evaluates m over its profile angles. Heatmap distances are shifted
// by HeatmapOffset before sampling; the reported FineDistances are not.
func Compute(m emitter.Model, coarse, fine []float64) Result {
	angles := m.Profile.Angles()

	shifted := make([]float64, len(fine))
	for i, d := range fine {
		shifted[i] = d + config.HeatmapOffset
	}
	fineLinear := Evaluate(m, angles, shifted)

	return Result{
		Angles:          angles,
		CoarseDistances: append([]float64(nil), coarse...),
		Table:           Evaluate(m, angles, coarse),
		FineDistances:   append([]float64(nil), fine...),
		Fine:            fineLinear,
		Heatmap:         LogGrid(fineLinear),
	}
}

// ComputeDefault evaluates m over the standard coarse and fine sweeps.
func ComputeDefault(m emitter.Model) Result {
	return Compute(m, CoarseDistances(), FineDistances())
}

// Range returns the smallest and largest finite cell of g.
func Range(g [][]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range g {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}
