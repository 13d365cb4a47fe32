package emitter

import (
	"fmt"
	"math"

	"irradiance-map.klederson.com/internal/config"
)

// ValidationError reports a parameter rejected at the input boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Params is one snapshot of every user-controlled input. Zero Environment or
// Windshield means "not supplied". Params is copied by value; the Custom map
// is never written after construction.
type Params struct {
	Type        string
	Count       int
	Intensity   float64
	Environment float64
	Windshield  float64
	Custom      map[float64]any
}

// DefaultParams returns the initial parameter snapshot for a catalog.
func DefaultParams(cat Catalog) Params {
	p := Params{
		Type:        config.DefaultType,
		Count:       config.DefaultCount,
		Environment: config.DefaultEnvironmentInput,
		Windshield:  config.DefaultWindshieldInput,
	}
	if preset, ok := cat.Lookup(p.Type); ok {
		p.Intensity = preset.Intensity
	}
	return p
}

// Validate rejects values that cannot be coerced to a sane default.
func (p Params) Validate(cat Catalog) error {
	if p.Count < 1 {
		return &ValidationError{Field: "count", Reason: fmt.Sprintf("must be at least 1, got %d", p.Count)}
	}
	if math.IsNaN(p.Intensity) || math.IsInf(p.Intensity, 0) || p.Intensity <= 0 {
		return &ValidationError{Field: "intensity", Reason: fmt.Sprintf("must be a positive number, got %g", p.Intensity)}
	}
	if err := validateFactor("environment", p.Environment); err != nil {
		return err
	}
	if err := validateFactor("windshield", p.Windshield); err != nil {
		return err
	}
	sel, err := cat.Resolve(p.Type, p.Custom)
	if err != nil {
		return err
	}
	return validatePeak(p, sel.Profile)
}

// validatePeak rejects inputs whose density at 0 m, the grid maximum, does
// not fit in a float64.
func validatePeak(p Params, profile Profile) error {
	peak := 1.0
	for _, pt := range profile.points {
		peak = math.Max(peak, math.Abs(pt.Factor))
	}
	att := Attenuation{Environment: p.Environment, Windshield: p.Windshield}
	peak = float64(p.Count) * p.Intensity * peak / config.Epsilon / att.EnvironmentOrDefault() / att.WindshieldOrDefault()
	if math.IsInf(peak, 0) || math.IsNaN(peak) {
		return &ValidationError{
			Field:  "intensity",
			Reason: fmt.Sprintf("%d x %g mW/sr overflows the density at 0 m", p.Count, p.Intensity),
		}
	}
	return nil
}

// NaN and zero are accepted: both fall back to the documented default.
func validateFactor(field string, v float64) error {
	if math.IsInf(v, 0) || v < 0 {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be zero (default) or positive, got %g", v)}
	}
	return nil
}

// Model validates the snapshot and resolves it into a density model.
func (p Params) Model(cat Catalog) (Model, error) {
	if err := p.Validate(cat); err != nil {
		return Model{}, err
	}
	sel, err := cat.Resolve(p.Type, p.Custom)
	if err != nil {
		return Model{}, err
	}
	return Model{
		Emitter:     Config{Count: p.Count, Intensity: p.Intensity},
		Profile:     sel.Profile,
		Attenuation: Attenuation{Environment: p.Environment, Windshield: p.Windshield},
	}, nil
}

// WithType switches the profile token. Selecting a preset resets Intensity to
// the preset default; selecting TypeCustom leaves it unchanged.
func (p Params) WithType(cat Catalog, token string) (Params, error) {
	sel, err := cat.Resolve(token, p.Custom)
	if err != nil {
		return p, err
	}
	p.Type = sel.Type
	if !sel.IsCustom() {
		p.Intensity = sel.Intensity
	}
	return p, nil
}

// WithCustom returns a copy with one custom profile entry replaced.
func (p Params) WithCustom(angle float64, value any) Params {
	custom := make(map[float64]any, len(p.Custom)+1)
	for k, v := range p.Custom {
		custom[k] = v
	}
	custom[angle] = value
	p.Custom = custom
	return p
}

// ParamsFromSettings builds the initial snapshot from configuration. A zero
// configured intensity takes the preset default.
func ParamsFromSettings(cat Catalog, s config.Settings) Params {
	p := DefaultParams(cat)
	if s.LED.Type != "" {
		p.Type = s.LED.Type
		if sel, err := cat.Resolve(s.LED.Type, nil); err == nil {
			p.Type = sel.Type
			if !sel.IsCustom() {
				p.Intensity = sel.Intensity
			}
		}
	}
	if s.LED.Count != 0 {
		p.Count = s.LED.Count
	}
	if s.LED.Intensity != 0 {
		p.Intensity = s.LED.Intensity
	}
	p.Environment = s.Attenuation.Environment
	p.Windshield = s.Attenuation.Windshield
	return p
}
