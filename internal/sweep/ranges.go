// Package sweep runs the bedrock accuracy sweep: for each target fraction it
// generates a truth grid, derives a model grid with the configured error
// model, and records the accuracy metrics. It also holds the range parsing,
// statistics and CSV/JSON export used around a run.
package sweep

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// RangeSpec defines a floating-point parameter range for sweeping.
type RangeSpec struct {
	Min  float64
	Max  float64
	Step float64
}

// ParseRangeSpec parses a "min:max:step" string into a RangeSpec.
// Returns an error if the format is invalid or values cannot be parsed.
func ParseRangeSpec(s string) (RangeSpec, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return RangeSpec{}, fmt.Errorf("invalid range format %q: expected min:max:step", s)
	}

	vals := make([]float64, 3)
	names := [3]string{"min", "max", "step"}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return RangeSpec{}, fmt.Errorf("invalid %s value %q: %w", names[i], p, err)
		}
		vals[i] = v
	}

	if vals[2] <= 0 {
		return RangeSpec{}, fmt.Errorf("step must be positive, got %f", vals[2])
	}

	return RangeSpec{Min: vals[0], Max: vals[1], Step: vals[2]}, nil
}

// GenerateRange generates values from min to max (inclusive) stepping by
// step. Returns nil if min > max, step <= 0, or the range would hold more
// than 10000 values.
func GenerateRange(min, max, step float64) []float64 {
	if step <= 0 || min > max {
		return nil
	}

	const maxValues = 10000
	expectedCount := int((max-min)/step) + 1
	if expectedCount > maxValues || expectedCount < 0 {
		return nil
	}

	var result []float64
	for i := 0; i < expectedCount+1; i++ {
		// Round to avoid floating point accumulation errors
		rounded := math.Round((min+float64(i)*step)*1e6) / 1e6
		if rounded > max+step/1000 {
			break
		}
		result = append(result, math.Min(rounded, max))
	}
	return result
}

// Linspace returns n evenly spaced values from start to end inclusive.
// n == 1 yields just start; n < 1 yields nil.
func Linspace(start, end float64, n int) []float64 {
	switch {
	case n < 1:
		return nil
	case n == 1:
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, end)
}

// ParseCSVFloat64s parses a comma-separated list of float64 values.
// Returns nil, nil for empty input strings.
func ParseCSVFloat64s(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float '%s': %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseFractions parses a comma-separated list of fractions or a
// "min:max:step" range. Every value must lie in [0,1].
func ParseFractions(s string) ([]float64, error) {
	var (
		vals []float64
		err  error
	)
	if strings.Contains(s, ":") {
		spec, perr := ParseRangeSpec(s)
		if perr != nil {
			return nil, perr
		}
		vals = GenerateRange(spec.Min, spec.Max, spec.Step)
		if vals == nil {
			return nil, fmt.Errorf("range %q produces no values", s)
		}
	} else {
		vals, err = ParseCSVFloat64s(s)
		if err != nil {
			return nil, err
		}
	}

	for _, v := range vals {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return nil, fmt.Errorf("fraction %v out of range [0,1]", v)
		}
	}
	return vals, nil
}
