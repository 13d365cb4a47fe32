package emitter

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"irradiance-map.klederson.com/internal/config"
)

// TypeCustom selects a user-entered profile instead of a preset.
const TypeCustom = "custom"

// Preset is a named profile with its default per-unit intensity.
type Preset struct {
	Name      string  `json:"name"`
	Label     string  `json:"label"`
	Intensity float64 `json:"intensity"`
	Profile   Profile `json:"-"`
}

// Catalog is a read-only registry of presets. Lookups return copies, so a
// single Catalog can be shared by every session.
type Catalog struct {
	presets map[string]Preset
	order   []string
}

// DefaultCatalog returns the built-in presets.
func DefaultCatalog() Catalog {
	power, _ := ProfileFromFactors(StandardAngles, []float64{1, 0.95, 0.85, 0.73, 0.6, 0.45})
	tsal, _ := ProfileFromFactors(StandardAngles, []float64{1, 0.8, 0.6, 0.3, 0.1, 0.05})

	return NewCatalog(
		Preset{Name: "POWER", Label: "Power LED", Intensity: 2500, Profile: power},
		Preset{Name: "TSAL6400", Label: "TSAL6400", Intensity: 420, Profile: tsal},
	)
}

// NewCatalog builds a catalog. Names are matched case-insensitively; a later
// preset with the same name replaces an earlier one.
func NewCatalog(presets ...Preset) Catalog {
	c := Catalog{presets: make(map[string]Preset, len(presets))}
	return c.With(presets...)
}

// With returns a new catalog extended with presets. The receiver is unchanged.
func (c Catalog) With(presets ...Preset) Catalog {
	out := Catalog{
		presets: make(map[string]Preset, len(c.presets)+len(presets)),
		order:   append([]string(nil), c.order...),
	}
	for k, v := range c.presets {
		out.presets[k] = v
	}
	for _, p := range presets {
		key := strings.ToUpper(p.Name)
		if _, exists := out.presets[key]; !exists {
			out.order = append(out.order, key)
		}
		if p.Label == "" {
			p.Label = p.Name
		}
		out.presets[key] = p
	}
	return out
}

// Lookup finds a preset by name.
func (c Catalog) Lookup(name string) (Preset, bool) {
	p, ok := c.presets[strings.ToUpper(name)]
	return p, ok
}

// Presets returns all presets in registration order.
func (c Catalog) Presets() []Preset {
	out := make([]Preset, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.presets[k])
	}
	return out
}

// Types returns the selectable tokens: every preset name followed by
// TypeCustom.
func (c Catalog) Types() []string {
	out := make([]string, 0, len(c.order)+1)
	for _, k := range c.order {
		out = append(out, c.presets[k].Name)
	}
	return append(out, TypeCustom)
}

// Selection is the outcome of resolving a profile token.
type Selection struct {
	Type    string
	Profile Profile
	// Intensity is the preset's default per-unit intensity. It is zero for
	// the custom profile, which leaves the current intensity unchanged.
	Intensity float64
}

// IsCustom reports whether the selection came from user-entered values.
func (s Selection) IsCustom() bool {
	return s.Type == TypeCustom
}

// Resolve maps a selection token to a profile. For TypeCustom the factors
// come from custom keyed by angle; absent, non-numeric or non-finite entries
// become 0.
func (c Catalog) Resolve(token string, custom map[float64]any) (Selection, error) {
	if strings.EqualFold(token, TypeCustom) {
		return Selection{Type: TypeCustom, Profile: CustomProfile(custom)}, nil
	}

	p, ok := c.Lookup(token)
	if !ok {
		names := c.Types()
		sort.Strings(names)
		return Selection{}, &ValidationError{
			Field:  "type",
			Reason: fmt.Sprintf("unknown LED type %q (want one of %s)", token, strings.Join(names, ", ")),
		}
	}
	return Selection{Type: p.Name, Profile: p.Profile, Intensity: p.Intensity}, nil
}

// CustomProfile builds a profile over StandardAngles from raw user values.
func CustomProfile(custom map[float64]any) Profile {
	points := make([]ProfilePoint, len(StandardAngles))
	for i, a := range StandardAngles {
		f, err := cast.ToFloat64E(custom[a])
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			f = 0
		}
		points[i] = ProfilePoint{Angle: a, Factor: f}
	}
	return NewProfile(points...)
}

// WithSettings extends c with presets declared in the config file.
func (c Catalog) WithSettings(settings []config.PresetSetting) (Catalog, error) {
	presets := make([]Preset, 0, len(settings))
	for _, s := range settings {
		if s.Name == "" || strings.EqualFold(s.Name, TypeCustom) {
			return c, &ValidationError{Field: "presets", Reason: fmt.Sprintf("invalid preset name %q", s.Name)}
		}
		if !(s.Intensity > 0) {
			return c, &ValidationError{Field: "presets", Reason: fmt.Sprintf("preset %s needs a positive intensity", s.Name)}
		}
		profile, err := ProfileFromFactors(s.Angles, s.Factors)
		if err != nil {
			return c, &ValidationError{Field: "presets", Reason: fmt.Sprintf("preset %s: %v", s.Name, err)}
		}
		presets = append(presets, Preset{Name: s.Name, Label: s.Label, Intensity: s.Intensity, Profile: profile})
	}
	return c.With(presets...), nil
}
