package bedrock

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrInvalidParameter indicates an out-of-range size, fraction,
	// probability or offset.
	ErrInvalidParameter = errors.New("bedrock: invalid parameter")

	// ErrShapeMismatch indicates two grids that must align have different
	// side lengths. It wraps ErrInvalidParameter.
	ErrShapeMismatch = fmt.Errorf("%w: grid shapes differ", ErrInvalidParameter)

	// ErrUnknownScenario indicates an error-model code outside the defined set.
	ErrUnknownScenario = errors.New("bedrock: unknown error-model scenario")
)
