package bedrock

import "fmt"

// Cell values.
const (
	Soil    uint8 = 0
	Bedrock uint8 = 1
)

// Grid is a square binary raster stored row-major.
// A Grid returned by this package is never modified afterwards.
type Grid struct {
	n     int
	cells []uint8
}

// newGrid allocates an all-soil grid. Callers validate n.
func newGrid(n int) *Grid {
	return &Grid{n: n, cells: make([]uint8, n*n)}
}

// NewEmptyGrid returns an all-soil grid of side length n.
func NewEmptyGrid(n int) (*Grid, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: grid length must be >= 1, got %d", ErrInvalidParameter, n)
	}
	return newGrid(n), nil
}

// GridFromRows copies rows into a new Grid. Rows must form a non-empty
// square and every value must be 0 or 1.
func GridFromRows(rows [][]uint8) (*Grid, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: grid has no rows", ErrInvalidParameter)
	}
	g := newGrid(n)
	for r, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidParameter, r, len(row), n)
		}
		for c, v := range row {
			if v > Bedrock {
				return nil, fmt.Errorf("%w: cell (%d,%d) = %d is not binary", ErrInvalidParameter, r, c, v)
			}
			g.cells[r*n+c] = v
		}
	}
	return g, nil
}

// Len returns the side length.
func (g *Grid) Len() int { return g.n }

// At returns the value at row r, column c.
func (g *Grid) At(r, c int) uint8 { return g.cells[r*g.n+c] }

func (g *Grid) set(r, c int, v uint8) { g.cells[r*g.n+c] = v }

// Count returns the number of bedrock cells.
func (g *Grid) Count() int {
	count := 0
	for _, v := range g.cells {
		count += int(v)
	}
	return count
}

// Fraction returns the occupied (bedrock) fraction, Count / Len².
func (g *Grid) Fraction() float64 {
	return float64(g.Count()) / float64(len(g.cells))
}

// Equal reports whether both grids have the same shape and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.n != o.n {
		return false
	}
	for i, v := range g.cells {
		if o.cells[i] != v {
			return false
		}
	}
	return true
}

// Rows returns a deep copy of the grid as a slice of rows.
func (g *Grid) Rows() [][]uint8 {
	rows := make([][]uint8, g.n)
	for r := range rows {
		rows[r] = make([]uint8, g.n)
		copy(rows[r], g.cells[r*g.n:(r+1)*g.n])
	}
	return rows
}

func (g *Grid) clone() *Grid {
	out := &Grid{n: g.n, cells: make([]uint8, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// String renders the grid with '#' for bedrock and '.' for soil, one row per
// line. Intended for test failure output.
func (g *Grid) String() string {
	buf := make([]byte, 0, g.n*(g.n+1))
	for r := 0; r < g.n; r++ {
		for c := 0; c < g.n; c++ {
			if g.At(r, c) == Bedrock {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

func sameShape(a, b *Grid) error {
	if a == nil || b == nil {
		return fmt.Errorf("%w: nil grid", ErrShapeMismatch)
	}
	if a.n != b.n {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch, a.n, a.n, b.n, b.n)
	}
	return nil
}
