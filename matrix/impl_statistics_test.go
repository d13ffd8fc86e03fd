// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvla/matrix"
)

func TestCenterColumnsRows(t *testing.T) {
	t.Parallel()
	x := MustRows(t, [][]float64{{1, 2, 3}, {10, 20, 30}})

	c, means := x.CenterColumns()
	require.Equal(t, []float64{5.5, 11, 16.5}, means)
	requireRows(t, [][]float64{{-4.5, -9, -13.5}, {4.5, 9, 13.5}}, c)

	r, rmeans := x.CenterRows()
	require.Equal(t, []float64{2, 20}, rmeans)
	requireRows(t, [][]float64{{-1, 0, 1}, {-10, 0, 10}}, r)

	requireRows(t, [][]float64{{1, 2, 3}, {10, 20, 30}}, x)

	e, em := MustNew(t, 0, 3).CenterColumns()
	require.True(t, e.IsEmpty())
	require.Len(t, em, 3)
}

func TestNormalizeRows(t *testing.T) {
	t.Parallel()
	x := MustRows(t, [][]float64{{3, -4}, {0, 0}, {1, 1}})

	l2, norms, err := x.NormalizeRows(matrix.NormFrobenius)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{5, 0, math.Sqrt2}, norms, 1e-12)
	requireClose(t, MustRows(t, [][]float64{{0.6, -0.8}, {0, 0}, {1 / math.Sqrt2, 1 / math.Sqrt2}}), l2, 1e-12)

	l1, norms, err := x.NormalizeRows(matrix.NormL1)
	require.NoError(t, err)
	require.Equal(t, []float64{7, 0, 2}, norms)
	requireClose(t, MustRows(t, [][]float64{{3.0 / 7, -4.0 / 7}, {0, 0}, {0.5, 0.5}}), l1, 1e-12)

	inf, _, err := x.NormalizeRows(matrix.NormInf)
	require.NoError(t, err)
	requireClose(t, MustRows(t, [][]float64{{0.75, -1}, {0, 0}, {1, 1}}), inf, 1e-12)

	_, _, err = x.NormalizeRows(matrix.NormKind(0))
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)
}

func TestCorrelation(t *testing.T) {
	t.Parallel()
	x := MustRows(t, [][]float64{{1, 2, 5}, {2, 4, 5}, {3, 6, 5}, {4, 8.5, 5}})
	c, err := x.Correlation()
	require.NoError(t, err)
	require.True(t, c.IsSymmetric(matrix.WithEpsilon(0)))
	require.Equal(t, []float64{1, 1, 0}, c.Diagonal(), "constant column has zero correlation")
	require.InDelta(t, 1, MustAt(t, c, 0, 1), 1e-2)
	require.Equal(t, 0.0, MustAt(t, c, 0, 2))

	// Scale invariance.
	s, err := x.CopyMultScalar(3.5).Correlation()
	require.NoError(t, err)
	requireClose(t, c, s, 1e-12)

	_, err = MustNew(t, 1, 2).Correlation()
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)
}
