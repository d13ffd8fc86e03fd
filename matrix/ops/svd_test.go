// SPDX-License-Identifier: MIT

package ops_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvla/matrix"
	"github.com/katalvlaran/lvla/matrix/ops"
)

type svdFunc func(matrix.Matrix, ...matrix.Option) (*matrix.Dense, []float64, *matrix.Dense, error)

func TestSVD_Variants(t *testing.T) {
	t.Parallel()
	algos := map[string]svdFunc{
		"svd":         ops.SVD,
		"golub-kahan": ops.SVDGolubKahan,
		"eigen":       ops.SVDEigen,
	}
	shapes := [][2]int{{0, 0}, {1, 1}, {1, 5}, {5, 1}, {10, 10}, {10, 7}, {7, 10}}
	for name, f := range algos {
		for _, sh := range shapes {
			rows, cols := sh[0], sh[1]
			t.Run(fmt.Sprintf("%s %dx%d", name, rows, cols), func(t *testing.T) {
				a := randn(t, rows, cols, uint64(rows*17+cols))
				u, s, v, err := f(a)
				require.NoError(t, err)
				k := min(rows, cols)
				require.Equal(t, []int{rows, k}, []int{u.Rows(), u.Cols()})
				require.Len(t, s, k)
				require.Equal(t, []int{cols, k}, []int{v.Rows(), v.Cols()})
				requireDescending(t, s)
				for _, x := range s {
					require.GreaterOrEqual(t, x, 0.0)
				}
				requireClose(t, a, dot(t, dot(t, u, matrix.Diag(s)), v.T()), tolLoose)
				requireOrthonormalCols(t, u, tolLoose)
				requireOrthonormalCols(t, v, tolLoose)

				if k > 0 {
					var ref mat.SVD
					require.True(t, ref.Factorize(mat.NewDense(rows, cols, a.ToFlat()), mat.SVDNone))
					require.InDeltaSlice(t, ref.Values(nil), s, tolLoose)
				}
			})
		}
	}
}

func TestSVD_RankDeficient(t *testing.T) {
	t.Parallel()
	// Rank 1: every row is a multiple of [1 2 3].
	a := fromRows(t, [][]float64{{1, 2, 3}, {2, 4, 6}, {-1, -2, -3}, {0, 0, 0}})
	for name, f := range map[string]svdFunc{"golub-kahan": ops.SVDGolubKahan, "eigen": ops.SVDEigen} {
		t.Run(name, func(t *testing.T) {
			u, s, v, err := f(a)
			require.NoError(t, err)
			require.InDelta(t, 0, s[1], tolLoose)
			require.InDelta(t, 0, s[2], tolLoose)
			requireClose(t, a, dot(t, dot(t, u, matrix.Diag(s)), v.T()), tolLoose)
			requireOrthonormalCols(t, u, tolLoose)
			requireOrthonormalCols(t, v, tolLoose)
		})
	}
}

func TestSingularValues(t *testing.T) {
	t.Parallel()
	a := randn(t, 6, 4, 99)
	s, err := ops.SingularValues(a)
	require.NoError(t, err)
	// Squares of the singular values are the eigenvalues of AᵀA.
	ev, err := ops.EigenValues(a.Gram())
	require.NoError(t, err)
	for i := range s {
		require.InDelta(t, ev[i], s[i]*s[i], tolLoose)
	}

	s, err = ops.SingularValues(matrix.Diag([]float64{-3, 1, 2}))
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{3, 2, 1}, s, tolTight)
}
