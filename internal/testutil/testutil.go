// Package testutil provides shared test utilities and fixtures.
//
// Grids in tests are written as strings, one row per argument, with '#' for
// bedrock and '.' for soil.
package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/synthetic-bedrock/internal/bedrock"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// ParseRows converts '#'/'.' strings to cell rows. Any other rune fails
// the test.
func ParseRows(t testing.TB, rows ...string) [][]uint8 {
	t.Helper()
	out := make([][]uint8, len(rows))
	for r, row := range rows {
		out[r] = make([]uint8, 0, len(row))
		for c, ch := range row {
			switch ch {
			case '#':
				out[r] = append(out[r], bedrock.Bedrock)
			case '.':
				out[r] = append(out[r], bedrock.Soil)
			default:
				t.Fatalf("row %d col %d: unexpected rune %q", r, c, ch)
			}
		}
	}
	return out
}

// Grid builds a bedrock.Grid from '#'/'.' rows.
func Grid(t testing.TB, rows ...string) *bedrock.Grid {
	t.Helper()
	g, err := bedrock.GridFromRows(ParseRows(t, rows...))
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}
	return g
}

// Filled returns an n×n grid with every cell set to v.
func Filled(t testing.TB, n int, v uint8) *bedrock.Grid {
	t.Helper()
	rows := make([][]uint8, n)
	for r := range rows {
		rows[r] = make([]uint8, n)
		for c := range rows[r] {
			rows[r][c] = v
		}
	}
	g, err := bedrock.GridFromRows(rows)
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}
	return g
}

// GridDiff returns a human-readable diff of two grids' cells, or "" when
// they are equal.
func GridDiff(want, got *bedrock.Grid) string {
	return cmp.Diff(want.Rows(), got.Rows())
}

// AssertGridEqual fails the test with a cell diff when the grids differ.
func AssertGridEqual(t testing.TB, want, got *bedrock.Grid) {
	t.Helper()
	if diff := GridDiff(want, got); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
}
