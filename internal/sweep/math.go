package sweep

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MeanStddev calculates the mean and sample standard deviation of a slice.
// Returns (0, 0) for empty slices and a zero stddev for a single value.
func MeanStddev(xs []float64) (mean float64, stddev float64) {
	switch len(xs) {
	case 0:
		return 0, 0
	case 1:
		return xs[0], 0
	}
	return stat.MeanStdDev(xs, nil)
}

// RMSD returns the root-mean-square difference between two equal-length
// series, such as truth and model bedrock fractions across a sweep.
func RMSD(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("rmsd: length mismatch %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}
	return floats.Distance(a, b, 2) / math.Sqrt(float64(len(a))), nil
}

// nearestIndex returns the index of the value in xs closest to target,
// preferring the earliest on ties. Returns -1 for an empty slice.
func nearestIndex(xs []float64, target float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, v := range xs {
		if d := math.Abs(v - target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
