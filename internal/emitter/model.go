package emitter

import (
	"math"

	"irradiance-map.klederson.com/internal/config"
)

// Config describes the emitter array. Units are treated as co-located and
// additive.
type Config struct {
	Count     int     // Number of units
	Intensity float64 // Per-unit radiant intensity (mW/sr)
}

// Aggregate returns the total radiant intensity of the array.
func (c Config) Aggregate() float64 {
	return float64(c.Count) * c.Intensity
}

// Attenuation holds the two transmission loss divisors. A zero or NaN value
// means "not supplied".
type Attenuation struct {
	Environment float64
	Windshield  float64
}

// EnvironmentOrDefault substitutes DefaultEnvironment for a zero/absent value.
// Negative values are passed through untouched.
func (a Attenuation) EnvironmentOrDefault() float64 {
	if falsy(a.Environment) {
		return config.DefaultEnvironment
	}
	return a.Environment
}

// WindshieldOrDefault substitutes 1 (no loss) for a zero/absent value.
// Negative values are passed through untouched.
func (a Attenuation) WindshieldOrDefault() float64 {
	if falsy(a.Windshield) {
		return config.DefaultWindshield
	}
	return a.Windshield
}

func falsy(v float64) bool {
	return v == 0 || math.IsNaN(v)
}

// Model evaluates received power density for one parameter snapshot.
type Model struct {
	Emitter     Config
	Profile     Profile
	Attenuation Attenuation
}

// Density returns the received power density (mW/m²) at distance meters and
// angle degrees off boresight. Negative and NaN distances are clamped to 0.
// Angles missing from the profile yield 0.
func (m Model) Density(distance, angle float64) float64 {
	if !(distance > 0) {
		distance = 0
	}
	radiant := m.Emitter.Aggregate() * m.Profile.Factor(angle)
	return radiant / (distance*distance + config.Epsilon) /
		m.Attenuation.EnvironmentOrDefault() / m.Attenuation.WindshieldOrDefault()
}
