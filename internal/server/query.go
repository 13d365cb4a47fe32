package server

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"irradiance-map.klederson.com/internal/emitter"
)

// paramsFromQuery overlays query parameters on base. Selecting a preset type
// without an explicit intensity takes the preset's intensity.
func paramsFromQuery(cat emitter.Catalog, base emitter.Params, q url.Values) (emitter.Params, error) {
	p := base

	if t := q.Get("type"); t != "" {
		var err error
		if p, err = p.WithType(cat, t); err != nil {
			return p, err
		}
	}

	if s := q.Get("count"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return p, &emitter.ValidationError{Field: "count", Reason: fmt.Sprintf("%q is not a whole number", s)}
		}
		p.Count = n
	}

	for _, f := range []struct {
		param string
		name  string
		dst   *float64
	}{
		{"intensity", "intensity", &p.Intensity},
		{"env", "environment", &p.Environment},
		{"windshield", "windshield", &p.Windshield},
	} {
		s := q.Get(f.param)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return p, &emitter.ValidationError{Field: f.name, Reason: fmt.Sprintf("%q is not a number", s)}
		}
		*f.dst = v
	}

	if s := q.Get("custom"); s != "" {
		for _, entry := range strings.Split(s, ",") {
			angle, value, ok := strings.Cut(entry, ":")
			if !ok {
				return p, &emitter.ValidationError{Field: "custom", Reason: fmt.Sprintf("%q is not angle:value", entry)}
			}
			a, err := strconv.ParseFloat(strings.TrimSpace(angle), 64)
			if err != nil {
				return p, &emitter.ValidationError{Field: "custom", Reason: fmt.Sprintf("angle %q is not a number", angle)}
			}
			p = p.WithCustom(a, strings.TrimSpace(value))
		}
	}

	return p, nil
}

func floatParam(q url.Values, name string) (float64, error) {
	s := q.Get(name)
	if s == "" {
		return 0, &emitter.ValidationError{Field: name, Reason: "is required"}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &emitter.ValidationError{Field: name, Reason: fmt.Sprintf("%q is not a finite number", s)}
	}
	return v, nil
}
