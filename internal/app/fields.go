package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"irradiance-map.klederson.com/internal/config"
	"irradiance-map.klederson.com/internal/emitter"
	"irradiance-map.klederson.com/internal/ui"
)

type fieldKind int

const (
	fieldType fieldKind = iota
	fieldCount
	fieldIntensity
	fieldEnvironment
	fieldWindshield
	fieldCustom
)

// field is one editable input. angle is only set for fieldCustom.
type field struct {
	kind  fieldKind
	angle float64
}

// fields lists the form rows for p. Custom profile rows only appear while
// the custom profile is selected.
func fields(p emitter.Params) []field {
	out := []field{
		{kind: fieldType},
		{kind: fieldCount},
		{kind: fieldIntensity},
		{kind: fieldEnvironment},
		{kind: fieldWindshield},
	}
	if p.Type == emitter.TypeCustom {
		for _, a := range emitter.StandardAngles {
			out = append(out, field{kind: fieldCustom, angle: a})
		}
	}
	return out
}

func (f field) label() string {
	switch f.kind {
	case fieldType:
		return "LED type"
	case fieldCount:
		return "Number of LEDs"
	case fieldIntensity:
		return "Intensity mW/sr"
	case fieldEnvironment:
		return "Environment"
	case fieldWindshield:
		return "Windshield"
	default:
		return fmt.Sprintf("Factor @ %s", ui.FormatAngle(f.angle))
	}
}

// text is the current value as shown in the form and as the initial edit
// buffer.
func (f field) text(p emitter.Params) string {
	switch f.kind {
	case fieldType:
		return p.Type
	case fieldCount:
		return strconv.Itoa(p.Count)
	case fieldIntensity:
		return formatFloat(p.Intensity)
	case fieldEnvironment:
		return formatFloat(p.Environment)
	case fieldWindshield:
		return formatFloat(p.Windshield)
	default:
		v, ok := p.Custom[f.angle]
		if !ok {
			return ""
		}
		return cast.ToString(v)
	}
}

func (f field) hint(p emitter.Params) string {
	switch f.kind {
	case fieldType:
		return "(left/right)"
	case fieldCount:
		return fmt.Sprintf("(%d-%d)", config.MinCount, config.MaxCount)
	case fieldEnvironment:
		return fmt.Sprintf("(0 = %g)", config.DefaultEnvironment)
	case fieldWindshield:
		return fmt.Sprintf("(0 = %g)", config.DefaultWindshield)
	case fieldCustom:
		if _, err := strconv.ParseFloat(strings.TrimSpace(f.text(p)), 64); err != nil {
			return "(= 0)"
		}
	}
	return ""
}

func (f field) editable() bool {
	return f.kind != fieldType
}

// commit parses text into a copy of p. Empty attenuation input means "not
// supplied"; custom profile entries are stored verbatim.
func (f field) commit(p emitter.Params, text string) (emitter.Params, error) {
	text = strings.TrimSpace(text)
	switch f.kind {
	case fieldCount:
		n, err := strconv.Atoi(text)
		if err != nil {
			return p, &emitter.ValidationError{Field: "count", Reason: fmt.Sprintf("%q is not a whole number", text)}
		}
		p.Count = n
	case fieldIntensity:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return p, &emitter.ValidationError{Field: "intensity", Reason: fmt.Sprintf("%q is not a number", text)}
		}
		p.Intensity = v
	case fieldEnvironment, fieldWindshield:
		v := 0.0
		if text != "" {
			var err error
			if v, err = strconv.ParseFloat(text, 64); err != nil {
				name := "environment"
				if f.kind == fieldWindshield {
					name = "windshield"
				}
				return p, &emitter.ValidationError{Field: name, Reason: fmt.Sprintf("%q is not a number", text)}
			}
		}
		if f.kind == fieldEnvironment {
			p.Environment = v
		} else {
			p.Windshield = v
		}
	case fieldCustom:
		p = p.WithCustom(f.angle, text)
	}
	return p, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formFields renders fields for the params panel.
func formFields(p emitter.Params, fs []field, cursor int, editing bool, buffer string) []ui.ParamField {
	out := make([]ui.ParamField, len(fs))
	for i, f := range fs {
		out[i] = ui.ParamField{
			Label:   f.label(),
			Value:   f.text(p),
			Hint:    f.hint(p),
			Editing: editing && i == cursor,
			Buffer:  buffer,
		}
	}
	return out
}
