package bedrock

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// PlacementCapMultiplier scales the placement safety cap. A run stops after
// PlacementCapMultiplier * ceil(L²/S²) tors even if the target fraction was
// not reached.
const PlacementCapMultiplier = 20

// Placement is the outcome of PlaceTors.
type Placement struct {
	Grid     *Grid
	Fraction float64 // achieved bedrock fraction; may overshoot the target
	Placed   int     // number of tors stamped
	Capped   bool    // true when the safety cap stopped the run short of the target
}

// TorPlacer stamps tors one at a time onto an initially empty grid.
// It is not safe for concurrent use.
type TorPlacer struct {
	grid     *Grid
	kernel   Kernel
	rng      *rand.Rand
	occupied int
	placed   int
}

// NewTorPlacer returns a placer for a length×length grid whose centres are
// drawn from a generator seeded with seed.
func NewTorPlacer(length int, k Kernel, seed int64) (*TorPlacer, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: grid length must be >= 1, got %d", ErrInvalidParameter, length)
	}
	if k.size < 1 {
		return nil, fmt.Errorf("%w: tor scale must be >= 1, got %d", ErrInvalidParameter, k.size)
	}
	if k.size > length {
		return nil, fmt.Errorf("%w: tor scale %d exceeds grid length %d", ErrInvalidParameter, k.size, length)
	}
	return &TorPlacer{
		grid:   newGrid(length),
		kernel: k,
		rng:    newRNG(seed),
	}, nil
}

// Place draws one centre and fills the kernel footprint around it, clipped
// at the grid edge. It returns the centre that was drawn.
func (p *TorPlacer) Place() (row, col int) {
	n := p.grid.n
	row = p.rng.IntN(n)
	col = p.rng.IntN(n)

	r0 := max(p.kernel.footprint(row), 0)
	r1 := min(p.kernel.footprint(row)+p.kernel.size, n)
	c0 := max(p.kernel.footprint(col), 0)
	c1 := min(p.kernel.footprint(col)+p.kernel.size, n)

	for r := r0; r < r1; r++ {
		base := r * n
		for c := c0; c < c1; c++ {
			if p.grid.cells[base+c] == Soil {
				p.grid.cells[base+c] = Bedrock
				p.occupied++
			}
		}
	}
	p.placed++
	return row, col
}

// Fraction returns the current bedrock fraction.
func (p *TorPlacer) Fraction() float64 {
	return float64(p.occupied) / float64(len(p.grid.cells))
}

// Placed returns the number of tors stamped so far.
func (p *TorPlacer) Placed() int { return p.placed }

// Grid returns a snapshot of the current grid.
func (p *TorPlacer) Grid() *Grid { return p.grid.clone() }

// PlacementCap returns the maximum number of tors PlaceTors will stamp for a
// grid of side length and a kernel of side scale.
func PlacementCap(length, scale int) int {
	area := length * length
	stamp := scale * scale
	return PlacementCapMultiplier * ((area + stamp - 1) / stamp)
}

// PlaceTors stamps tors until the bedrock fraction reaches frac or the
// safety cap is hit. Tors are never removed, so the result usually
// overshoots frac slightly. frac <= 0 yields an all-soil grid.
func PlaceTors(length int, frac float64, k Kernel, seed int64) (Placement, error) {
	if math.IsNaN(frac) || math.IsInf(frac, 0) {
		return Placement{}, fmt.Errorf("%w: target fraction must be finite, got %v", ErrInvalidParameter, frac)
	}
	p, err := NewTorPlacer(length, k, seed)
	if err != nil {
		return Placement{}, err
	}

	limit := PlacementCap(length, k.size)
	for p.Fraction() < frac && p.placed < limit {
		p.Place()
	}

	return Placement{
		Grid:     p.grid,
		Fraction: p.Fraction(),
		Placed:   p.placed,
		Capped:   p.Fraction() < frac,
	}, nil
}
