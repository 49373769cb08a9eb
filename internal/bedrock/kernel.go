package bedrock

import "fmt"

// Kernel is the square stamp used to rasterize one tor. Every cell is
// bedrock, so a kernel is fully described by its side length.
type Kernel struct {
	size int
}

// NewKernel returns a size×size all-bedrock kernel.
func NewKernel(size int) (Kernel, error) {
	if size < 1 {
		return Kernel{}, fmt.Errorf("%w: tor scale must be >= 1, got %d", ErrInvalidParameter, size)
	}
	return Kernel{size: size}, nil
}

// Size returns the kernel side length.
func (k Kernel) Size() int { return k.size }

// Cells returns the kernel as a size×size array of ones.
func (k Kernel) Cells() [][]uint8 {
	out := make([][]uint8, k.size)
	for r := range out {
		out[r] = make([]uint8, k.size)
		for c := range out[r] {
			out[r][c] = Bedrock
		}
	}
	return out
}

// footprint returns the first row/column covered by a stamp centred on p.
// For even sizes the extra cell falls after the centre, matching a
// zero-filled "same" convolution of a point with the kernel.
func (k Kernel) footprint(p int) int {
	return p - (k.size-1)/2
}
