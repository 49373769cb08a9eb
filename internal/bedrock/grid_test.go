package bedrock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/synthetic-bedrock/internal/bedrock"
	"github.com/banshee-data/synthetic-bedrock/internal/testutil"
)

func TestGridFromRows(t *testing.T) {
	t.Parallel()

	rows := [][]uint8{{1, 0}, {0, 0}}
	g, err := bedrock.GridFromRows(rows)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, 1, g.Count())
	assert.Equal(t, 0.25, g.Fraction())

	// The grid owns its cells.
	rows[0][1] = 1
	assert.Equal(t, bedrock.Soil, g.At(0, 1))
}

func TestGridFromRows_Invalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		rows [][]uint8
	}{
		{"no_rows", nil},
		{"not_square", [][]uint8{{0, 0, 0}, {0, 0, 0}}},
		{"ragged", [][]uint8{{0, 0}, {0}}},
		{"non_binary", [][]uint8{{0, 2}, {0, 0}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := bedrock.GridFromRows(tc.rows)
			assert.ErrorIs(t, err, bedrock.ErrInvalidParameter)
		})
	}
}

func TestNewEmptyGrid(t *testing.T) {
	t.Parallel()

	g, err := bedrock.NewEmptyGrid(4)
	require.NoError(t, err)
	assert.Zero(t, g.Count())

	_, err = bedrock.NewEmptyGrid(0)
	assert.ErrorIs(t, err, bedrock.ErrInvalidParameter)
}

func TestGrid_EqualAndString(t *testing.T) {
	t.Parallel()

	a := testutil.Grid(t, "#.", ".#")
	b := testutil.Grid(t, "#.", ".#")
	c := testutil.Grid(t, "##", ".#")
	d := testutil.Grid(t, "#..", "...", "...")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
	assert.False(t, a.Equal(nil))
	assert.Equal(t, "#.\n.#\n", a.String())
}
