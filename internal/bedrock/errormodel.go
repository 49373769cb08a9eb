package bedrock

import (
	"fmt"
	"math"
)

// Axis names the direction of an offset.
type Axis int

const (
	// AxisX shifts along columns.
	AxisX Axis = iota
	// AxisY shifts along rows.
	AxisY
)

// ModelConstant ignores the truth grid and generates a model at the fixed
// bedrock fraction constFrac. It does not try to match the truth's fraction.
func ModelConstant(length int, constFrac float64, seed int64, scale int) (*Grid, float64, error) {
	return GenerateGrid(length, constFrac, seed, scale)
}

// ModelIndependent generates a model at the truth's target fraction with an
// independent seed. Achieved fractions can still differ from the truth's
// because placement overshoots.
func ModelIndependent(length int, frac float64, seed int64, scale int) (*Grid, float64, error) {
	return GenerateGrid(length, frac, seed, scale)
}

// ModelRandErr flips each cell of src independently with probability
// errRate. The model fraction is not renormalized.
func ModelRandErr(src *Grid, errRate float64, seed int64) (*Grid, float64, error) {
	if src == nil {
		return nil, 0, fmt.Errorf("%w: nil source grid", ErrInvalidParameter)
	}
	if math.IsNaN(errRate) || errRate < 0 || errRate > 1 {
		return nil, 0, fmt.Errorf("%w: error rate must be in [0,1], got %v", ErrInvalidParameter, errRate)
	}

	rng := newRNG(seed)
	out := src.clone()
	for i, v := range out.cells {
		if rng.Float64() < errRate {
			out.cells[i] = v ^ Bedrock
		}
	}
	return out, out.Fraction(), nil
}

// ModelOffset shifts truth by dn columns with wrap-around. A positive dn
// moves cells towards higher column indices.
func ModelOffset(truth *Grid, dn int) (*Grid, float64, error) {
	return ModelOffsetAxis(truth, dn, AxisX)
}

// ModelOffsetAxis shifts truth by dn cells along axis with wrap-around.
// |dn| must be smaller than the grid length. The bedrock count is preserved
// exactly.
func ModelOffsetAxis(truth *Grid, dn int, axis Axis) (*Grid, float64, error) {
	if truth == nil {
		return nil, 0, fmt.Errorf("%w: nil truth grid", ErrInvalidParameter)
	}
	n := truth.n
	if dn <= -n || dn >= n {
		return nil, 0, fmt.Errorf("%w: offset %d out of range for grid length %d", ErrInvalidParameter, dn, n)
	}
	if axis != AxisX && axis != AxisY {
		return nil, 0, fmt.Errorf("%w: unknown axis %d", ErrInvalidParameter, axis)
	}

	shift := (dn%n + n) % n
	out := newGrid(n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if axis == AxisX {
				out.set(r, (c+shift)%n, truth.At(r, c))
			} else {
				out.set((r+shift)%n, c, truth.At(r, c))
			}
		}
	}
	return out, out.Fraction(), nil
}

// ModelCombined applies ModelOffset and then ModelRandErr to the result.
func ModelCombined(truth *Grid, dn int, errRate float64, seed int64) (*Grid, float64, error) {
	shifted, _, err := ModelOffset(truth, dn)
	if err != nil {
		return nil, 0, err
	}
	return ModelRandErr(shifted, errRate, seed)
}

// ErrorModel holds the parameters for every scenario; each scenario reads
// only the fields it needs.
type ErrorModel struct {
	Scenario Scenario

	// ConstantFraction is the constant target class (bedrock) fraction used
	// by ScenarioConstant.
	ConstantFraction float64
	// Offset is the wrap-around shift in cells for ScenarioOffset and
	// ScenarioCombined.
	Offset int
	// ErrorRate is the per-cell flip probability for ScenarioRandom and
	// ScenarioCombined.
	ErrorRate float64
	// Seed drives the model's own random draws. Use a seed distinct from
	// the truth grid's to avoid correlated grids.
	Seed int64
	// Scale is the tor side length for the generating scenarios.
	Scale int
}

// Validate checks the parameters used by the selected scenario.
func (m ErrorModel) Validate() error {
	switch m.Scenario {
	case ScenarioConstant:
		if math.IsNaN(m.ConstantFraction) || m.ConstantFraction < 0 || m.ConstantFraction > 1 {
			return fmt.Errorf("%w: constant fraction must be in [0,1], got %v", ErrInvalidParameter, m.ConstantFraction)
		}
		return m.validateScale()
	case ScenarioIndependent:
		return m.validateScale()
	case ScenarioRandom:
		return validateRate(m.ErrorRate)
	case ScenarioOffset:
		return nil
	case ScenarioCombined:
		return validateRate(m.ErrorRate)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownScenario, int(m.Scenario))
	}
}

func (m ErrorModel) validateScale() error {
	if m.Scale < 1 {
		return fmt.Errorf("%w: tor scale must be >= 1, got %d", ErrInvalidParameter, m.Scale)
	}
	return nil
}

func validateRate(rate float64) error {
	if math.IsNaN(rate) || rate < 0 || rate > 1 {
		return fmt.Errorf("%w: error rate must be in [0,1], got %v", ErrInvalidParameter, rate)
	}
	return nil
}

// Apply derives a model grid from truth. targetFrac is the fraction the
// truth was generated for; only ScenarioIndependent uses it.
func (m ErrorModel) Apply(truth *Grid, targetFrac float64) (*Grid, float64, error) {
	if truth == nil {
		return nil, 0, fmt.Errorf("%w: nil truth grid", ErrInvalidParameter)
	}
	switch m.Scenario {
	case ScenarioConstant:
		return ModelConstant(truth.n, m.ConstantFraction, m.Seed, m.Scale)
	case ScenarioIndependent:
		return ModelIndependent(truth.n, targetFrac, m.Seed, m.Scale)
	case ScenarioRandom:
		return ModelRandErr(truth, m.ErrorRate, m.Seed)
	case ScenarioOffset:
		return ModelOffset(truth, m.Offset)
	case ScenarioCombined:
		return ModelCombined(truth, m.Offset, m.ErrorRate, m.Seed)
	default:
		return nil, 0, fmt.Errorf("%w: %d", ErrUnknownScenario, int(m.Scenario))
	}
}
