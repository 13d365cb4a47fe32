package emitter

import (
	"fmt"
	"sort"
	"strings"
)

// StandardAngles is the angular displacement set (degrees) every preset and the
// custom profile editor are defined over.
var StandardAngles = []float64{0, 10, 20, 30, 40, 50}

// ProfilePoint is one row of an angular profile.
type ProfilePoint struct {
	Angle  float64 `json:"angle"`  // Degrees off boresight
	Factor float64 `json:"factor"` // Relative radiant intensity, 1 = boresight
}

// Profile maps angular displacement to a relative intensity factor.
// Points are kept in ascending angle order. A Profile is a value: the
// constructor copies its input and no method mutates it.
type Profile struct {
	points []ProfilePoint
}

// NewProfile builds a profile from points in any order. When an angle is
// given twice the last point wins.
func NewProfile(points ...ProfilePoint) Profile {
	byAngle := make(map[float64]float64, len(points))
	for _, p := range points {
		byAngle[p.Angle] = p.Factor
	}

	out := make([]ProfilePoint, 0, len(byAngle))
	for a, f := range byAngle {
		out = append(out, ProfilePoint{Angle: a, Factor: f})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Angle < out[j].Angle
	})
	return Profile{points: out}
}

// ProfileFromFactors pairs angles with factors index by index.
func ProfileFromFactors(angles, factors []float64) (Profile, error) {
	if len(angles) != len(factors) {
		return Profile{}, fmt.Errorf("profile has %d angles but %d factors", len(angles), len(factors))
	}
	points := make([]ProfilePoint, len(angles))
	for i := range angles {
		points[i] = ProfilePoint{Angle: angles[i], Factor: factors[i]}
	}
	return NewProfile(points...), nil
}

// Factor returns the intensity factor for an exact angle match, or 0 when
// the angle is not part of the profile.
func (p Profile) Factor(angle float64) float64 {
	i := sort.Search(len(p.points), func(i int) bool {
		return p.points[i].Angle >= angle
	})
	if i < len(p.points) && p.points[i].Angle == angle {
		return p.points[i].Factor
	}
	return 0
}

// Angles returns the profile's angles in ascending order.
func (p Profile) Angles() []float64 {
	out := make([]float64, len(p.points))
	for i, pt := range p.points {
		out[i] = pt.Angle
	}
	return out
}

// Points returns a copy of the profile rows.
func (p Profile) Points() []ProfilePoint {
	out := make([]ProfilePoint, len(p.points))
	copy(out, p.points)
	return out
}

// Len returns the number of angles in the profile.
func (p Profile) Len() int {
	return len(p.points)
}

// MaxAngle returns the widest angle in the profile, or 0 if empty.
func (p Profile) MaxAngle() float64 {
	if len(p.points) == 0 {
		return 0
	}
	return p.points[len(p.points)-1].Angle
}

func (p Profile) String() string {
	parts := make([]string, len(p.points))
	for i, pt := range p.points {
		parts[i] = fmt.Sprintf("%g:%g", pt.Angle, pt.Factor)
	}
	return "{" + strings.Join(parts, " ") + "}"
}
