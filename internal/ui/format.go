package ui

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatDensity prints a value with an SI suffix, e.g. 56.25, 1.23K, 5.63M.
func FormatDensity(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	if math.Abs(v) < 1000 {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	value, prefix := humanize.ComputeSI(v)
	if prefix == "k" {
		prefix = "K"
	}
	return strconv.FormatFloat(value, 'f', 2, 64) + prefix
}

// FormatAngle prints an angle in whole degrees when possible.
func FormatAngle(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64) + "°"
}
