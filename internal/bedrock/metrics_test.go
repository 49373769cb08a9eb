package bedrock_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/synthetic-bedrock/internal/bedrock"
	"github.com/banshee-data/synthetic-bedrock/internal/testutil"
)

func TestAccuracyMetrics_IdenticalGrids(t *testing.T) {
	t.Parallel()

	truth, _, err := bedrock.GenerateGrid(10, 0.3, 1, 2)
	require.NoError(t, err)
	require.Greater(t, truth.Count(), 0)
	require.Less(t, truth.Count(), 100)

	acc, err := bedrock.AccuracyMetrics(truth, truth)
	require.NoError(t, err)
	assert.Zero(t, acc.FP)
	assert.Zero(t, acc.FN)
	assert.Equal(t, truth.Count(), acc.TP)
	assert.Equal(t, 100-truth.Count(), acc.TN)
	assert.Equal(t, 1.0, acc.F1)
	assert.Equal(t, 1.0, acc.NMCC)
	assert.Equal(t, 1.0, acc.Precision)
	assert.Equal(t, 1.0, acc.Recall)
}

func TestAccuracyMetrics_AllSoil(t *testing.T) {
	t.Parallel()

	zero := testutil.Filled(t, 5, bedrock.Soil)
	acc, err := bedrock.AccuracyMetrics(zero, zero)
	require.NoError(t, err)

	assert.Equal(t, bedrock.Confusion{TN: 25}, acc.Confusion)
	assert.Equal(t, 0.0, acc.F1)
	assert.Equal(t, 0.0, acc.MCC)
	assert.Equal(t, 0.5, acc.NMCC)
}

func TestAccuracyMetrics_AllBedrockIdentical(t *testing.T) {
	t.Parallel()

	// TN+FP is 0, so MCC takes the degenerate branch even though the maps agree.
	full := testutil.Filled(t, 5, bedrock.Bedrock)
	acc, err := bedrock.AccuracyMetrics(full, full)
	require.NoError(t, err)

	assert.Equal(t, bedrock.Confusion{TP: 25}, acc.Confusion)
	assert.Equal(t, 1.0, acc.F1)
	assert.Equal(t, 0.0, acc.MCC)
	assert.Equal(t, 0.5, acc.NMCC)
}

func TestAccuracyMetrics_SmallCases(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		truth    []string
		model    []string
		want     bedrock.Confusion
		wantF1   float64
		wantNMCC float64
	}{
		{
			name:     "swapped_single_cells",
			truth:    []string{"#.", ".."},
			model:    []string{".#", ".."},
			want:     bedrock.Confusion{TN: 2, FP: 1, FN: 1},
			wantF1:   0,
			wantNMCC: (1 - 1.0/3) / 2,
		},
		{
			name:     "complement",
			truth:    []string{"##", ".."},
			model:    []string{"..", "##"},
			want:     bedrock.Confusion{FP: 2, FN: 2},
			wantF1:   0,
			wantNMCC: 0,
		},
		{
			name:     "over_prediction",
			truth:    []string{"#..", "...", "..."},
			model:    []string{"##.", "...", "..."},
			want:     bedrock.Confusion{TP: 1, FP: 1, TN: 7},
			wantF1:   2.0 / 3,
			wantNMCC: (7/math.Sqrt(2*56) + 1) / 2,
		},
		{
			name:     "model_all_soil",
			truth:    []string{"#.", ".."},
			model:    []string{"..", ".."},
			want:     bedrock.Confusion{FN: 1, TN: 3},
			wantF1:   0,
			wantNMCC: 0.5,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			acc, err := bedrock.AccuracyMetrics(testutil.Grid(t, tc.truth...), testutil.Grid(t, tc.model...))
			require.NoError(t, err)
			assert.Equal(t, tc.want, acc.Confusion)
			assert.InDelta(t, tc.wantF1, acc.F1, 1e-12)
			assert.InDelta(t, tc.wantNMCC, acc.NMCC, 1e-12)
		})
	}
}

func TestAccuracyMetrics_ClassifiedCodes(t *testing.T) {
	t.Parallel()

	truth := testutil.Grid(t, "##", "..")
	model := testutil.Grid(t, "#.", "#.")
	acc, err := bedrock.AccuracyMetrics(truth, model)
	require.NoError(t, err)

	lbl := acc.Classified
	require.Equal(t, 2, lbl.Len())
	assert.Equal(t, bedrock.ClassTP, lbl.At(0, 0))
	assert.Equal(t, bedrock.ClassFN, lbl.At(0, 1))
	assert.Equal(t, bedrock.ClassFP, lbl.At(1, 0))
	assert.Equal(t, bedrock.ClassTN, lbl.At(1, 1))

	assert.Equal(t, bedrock.Class(1), bedrock.ClassTN)
	assert.Equal(t, bedrock.Class(2), bedrock.ClassFP)
	assert.Equal(t, bedrock.Class(3), bedrock.ClassFN)
	assert.Equal(t, bedrock.Class(4), bedrock.ClassTP)
	assert.Equal(t, []string{"TN", "FP", "FN", "TP"}, []string{
		bedrock.Classes[0].String(), bedrock.Classes[1].String(),
		bedrock.Classes[2].String(), bedrock.Classes[3].String(),
	})
}

func TestAccuracyMetrics_ShapeMismatch(t *testing.T) {
	t.Parallel()

	a := testutil.Filled(t, 2, bedrock.Soil)
	b := testutil.Filled(t, 3, bedrock.Soil)

	_, err := bedrock.AccuracyMetrics(a, b)
	assert.ErrorIs(t, err, bedrock.ErrShapeMismatch)
	assert.ErrorIs(t, err, bedrock.ErrInvalidParameter)

	_, err = bedrock.AccuracyMetrics(a, nil)
	assert.ErrorIs(t, err, bedrock.ErrShapeMismatch)
}

func TestAccuracyMetrics_CompletenessAndBounds(t *testing.T) {
	t.Parallel()

	const n = 30
	for i, frac := range []float64{0.05, 0.2, 0.5, 0.8, 0.95} {
		truth := mustGenerate(t, n, frac, int64(i+1), 2)
		for _, rate := range []float64{0, 0.01, 0.2, 0.5, 0.9, 1} {
			model, _, err := bedrock.ModelRandErr(truth, rate, int64(100+i))
			require.NoError(t, err)

			acc, err := bedrock.AccuracyMetrics(truth, model)
			require.NoError(t, err)
			require.Equal(t, n*n, acc.Total())
			assert.GreaterOrEqual(t, acc.F1, 0.0)
			assert.LessOrEqual(t, acc.F1, 1.0)
			assert.GreaterOrEqual(t, acc.NMCC, 0.0)
			assert.LessOrEqual(t, acc.NMCC, 1.0)
			assert.GreaterOrEqual(t, acc.MCC, -1.0)
			assert.LessOrEqual(t, acc.MCC, 1.0)
		}
	}
}

func TestMCC_LargeCounts(t *testing.T) {
	t.Parallel()

	cm := bedrock.Confusion{TP: 45000, TN: 45000}
	assert.Equal(t, 1.0, bedrock.MCC(cm))

	cm = bedrock.Confusion{FP: 45000, FN: 45000}
	assert.Equal(t, -1.0, bedrock.MCC(cm))
}

func TestEdgeToArea(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		rows []string
		want float64
	}{
		{"empty", []string{"...", "...", "..."}, 0},
		{"single_cell", []string{"...", ".#.", "..."}, 1},
		{"full_3x3", []string{"###", "###", "###"}, 8.0 / 9},
		{"full_4x4", []string{"####", "####", "####", "####"}, 12.0 / 16},
		{"block_with_interior", []string{".....", ".###.", ".###.", ".###.", "....."}, 8.0 / 9},
		{"diagonal", []string{"#..", ".#.", "..#"}, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, bedrock.EdgeToArea(testutil.Grid(t, tc.rows...)), 1e-12)
		})
	}
}

func TestEdgeToArea_Bounds(t *testing.T) {
	t.Parallel()

	for i, frac := range []float64{0.01, 0.1, 0.4, 0.7, 0.99} {
		g := mustGenerate(t, 40, frac, int64(i), 3)
		ratio := bedrock.EdgeToArea(g)
		assert.Greater(t, ratio, 0.0)
		assert.LessOrEqual(t, ratio, 1.0)
	}
	assert.Zero(t, bedrock.EdgeToArea(nil))
}
