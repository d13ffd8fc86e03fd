// SPDX-License-Identifier: MIT

package ops_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvla/matrix"
	"github.com/katalvlaran/lvla/matrix/ops"
)

func TestLU_RoundTrip(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, 1, 2, 3, 5, 10} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			a := randn(t, n, n, uint64(100+n))
			L, U, err := ops.LU(a)
			require.NoError(t, err)
			require.True(t, L.IsLowerTriangular())
			require.True(t, U.IsUpperTriangular())
			for i := 0; i < n; i++ {
				require.Equal(t, 1.0, at(t, L, i, i))
			}
			requireClose(t, a, dot(t, L, U), tolTight)
		})
	}
}

func TestLU_Errors(t *testing.T) {
	t.Parallel()
	for _, sh := range [][2]int{{2, 3}, {3, 2}} {
		_, _, err := ops.LU(randn(t, sh[0], sh[1], 1))
		require.ErrorIs(t, err, matrix.ErrNonSquare)
	}
	// Leading zero pivot: no row exchanges are made.
	_, _, err := ops.LU(fromRows(t, [][]float64{{0, 1}, {1, 0}}))
	require.ErrorIs(t, err, matrix.ErrSingular)
	// A zero in the very last pivot is fine.
	L, U, err := ops.LU(fromRows(t, [][]float64{{1, 2}, {2, 4}}))
	require.NoError(t, err)
	require.Equal(t, 0.0, at(t, U, 1, 1))
	requireClose(t, fromRows(t, [][]float64{{1, 2}, {2, 4}}), dot(t, L, U), tolTight)
}

func TestQR_Variants(t *testing.T) {
	t.Parallel()
	shapes := [][2]int{{0, 0}, {1, 10}, {10, 1}, {10, 10}, {10, 7}, {7, 10}}
	for _, sh := range shapes {
		rows, cols := sh[0], sh[1]
		a := randn(t, rows, cols, uint64(rows*31+cols))

		t.Run(fmt.Sprintf("householder %dx%d", rows, cols), func(t *testing.T) {
			q, r, err := ops.QRHouseholder(a)
			require.NoError(t, err)
			require.Equal(t, []int{rows, rows}, []int{q.Rows(), q.Cols()})
			require.Equal(t, []int{rows, cols}, []int{r.Rows(), r.Cols()})
			requireClose(t, a, dot(t, q, r), tolTight)
			requireOrthonormalCols(t, q, tolTight)
			require.True(t, r.IsUpperTriangular())
		})

		if rows >= cols {
			t.Run(fmt.Sprintf("gram-schmidt %dx%d", rows, cols), func(t *testing.T) {
				q, r, err := ops.QRGramSchmidt(a)
				require.NoError(t, err)
				require.Equal(t, []int{rows, cols}, []int{q.Rows(), q.Cols()})
				require.Equal(t, []int{cols, cols}, []int{r.Rows(), r.Cols()})
				requireClose(t, a, dot(t, q, r), tolTight)
				requireOrthonormalCols(t, q, tolTight)
				require.True(t, r.IsUpperTriangular())
			})
		}
	}
}

func TestQR_GramSchmidtWide(t *testing.T) {
	t.Parallel()
	a := randn(t, 3, 5, 9)
	q, r, err := ops.QRGramSchmidt(a)
	require.NoError(t, err)
	require.Equal(t, 3, q.Rows())
	require.Equal(t, 5, q.Cols())
	requireClose(t, a, dot(t, q, r), tolTight)
	for j := 3; j < 5; j++ {
		require.Equal(t, 0.0, at(t, r, j, j))
	}
}

func TestQR_Generic(t *testing.T) {
	t.Parallel()
	// Auto: a single column goes through Gram-Schmidt (thin Q).
	col := randn(t, 10, 1, 3)
	q, r, err := ops.QR(col)
	require.NoError(t, err)
	require.Equal(t, 10, q.Rows())
	require.Equal(t, 1, q.Cols())
	require.Equal(t, 1, r.Rows())
	require.InDelta(t, 1, at(t, q.Gram(), 0, 0), tolTight)

	sq := randn(t, 6, 4, 4)
	q, _, err = ops.QR(sq)
	require.NoError(t, err)
	require.Equal(t, 6, q.Cols())

	q, r, err = ops.QR(sq, matrix.WithQRMethod(matrix.QRGramSchmidt))
	require.NoError(t, err)
	require.Equal(t, 4, q.Cols())
	requireClose(t, sq, dot(t, q, r), tolTight)
}

func TestCholeskyFamily(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, 1, 2, 3, 5, 10} {
		a := spd(t, n, uint64(7+n))
		t.Run(fmt.Sprintf("cholesky n=%d", n), func(t *testing.T) {
			L, err := ops.Cholesky(a)
			require.NoError(t, err)
			require.True(t, L.IsLowerTriangular())
			requireClose(t, a, dot(t, L, L.T()), tolLoose)
		})
		t.Run(fmt.Sprintf("banachiewicz n=%d", n), func(t *testing.T) {
			L, err := ops.CholeskyBanachiewicz(a)
			require.NoError(t, err)
			require.True(t, L.IsLowerTriangular())
			requireClose(t, a, dot(t, L, L.T()), tolLoose)
		})
		t.Run(fmt.Sprintf("ldl n=%d", n), func(t *testing.T) {
			L, d, err := ops.CholeskyLDL(a)
			require.NoError(t, err)
			require.Len(t, d, n)
			requireClose(t, a, dot(t, dot(t, L, matrix.Diag(d)), L.T()), tolLoose)
		})
	}
}

func TestCholeskyFamily_Errors(t *testing.T) {
	t.Parallel()
	nonSym := fromRows(t, nonSymmetric4)
	for name, f := range map[string]func(matrix.Matrix, ...matrix.Option) error{
		"cholesky":     func(a matrix.Matrix, o ...matrix.Option) error { _, err := ops.Cholesky(a, o...); return err },
		"banachiewicz": func(a matrix.Matrix, o ...matrix.Option) error { _, err := ops.CholeskyBanachiewicz(a, o...); return err },
		"ldl":          func(a matrix.Matrix, o ...matrix.Option) error { _, _, err := ops.CholeskyLDL(a, o...); return err },
	} {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, f(randn(t, 2, 3, 1)), matrix.ErrNonSquare)
			require.ErrorIs(t, f(randn(t, 3, 2, 1)), matrix.ErrNonSquare)
			require.ErrorIs(t, f(nonSym), matrix.ErrAsymmetry)
		})
	}
	_, err := ops.Cholesky(fromRows(t, [][]float64{{1, 2}, {2, 1}}))
	require.ErrorIs(t, err, matrix.ErrNotPositiveDefinite)
	// LDL handles indefinite input.
	L, d, err := ops.CholeskyLDL(fromRows(t, [][]float64{{1, 2}, {2, 1}}))
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{1, -3}, d, tolTight)
	require.InDelta(t, 2, at(t, L, 1, 0), tolTight)
}

// requireBand asserts zeros more than `upper` above or `lower` below the diagonal.
func requireBand(t *testing.T, m *matrix.Dense, lower, upper int) {
	t.Helper()
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			if i-j > lower || j-i > upper {
				require.InDelta(t, 0, at(t, m, i, j), tolTight, "(%d,%d)", i, j)
			}
		}
	}
}

// requireSameSpectrum asserts det(T - λI) ≈ 0 for every eigenvalue λ of A.
func requireSameSpectrum(t *testing.T, a, tr *matrix.Dense) {
	t.Helper()
	vals, err := ops.EigenValues(a)
	require.NoError(t, err)
	got, err := ops.EigenValues(tr)
	require.NoError(t, err)
	for i, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		require.InDelta(t, v, got[i], tolLoose*math.Max(1, math.Abs(v)))
	}
}

func TestTridiag(t *testing.T) {
	t.Parallel()
	algos := map[string]func(matrix.Matrix, ...matrix.Option) (*matrix.Dense, error){
		"tridiag":     ops.Tridiag,
		"householder": ops.TridiagHouseholder,
		"lanczos":     ops.TridiagLanczos,
	}
	for name, f := range algos {
		for _, n := range []int{0, 1, 2, 5} {
			t.Run(fmt.Sprintf("%s n=%d", name, n), func(t *testing.T) {
				a := spd(t, n, uint64(50+n))
				tr, err := f(a)
				require.NoError(t, err)
				requireBand(t, tr, 1, 1)
				require.True(t, tr.IsSymmetric())
				requireSameSpectrum(t, a, tr)
			})
		}
		t.Run(name+" errors", func(t *testing.T) {
			_, err := f(randn(t, 2, 3, 1))
			require.ErrorIs(t, err, matrix.ErrNonSquare)
			_, err = f(fromRows(t, nonSymmetric4))
			require.ErrorIs(t, err, matrix.ErrAsymmetry)
		})
	}
}

func TestTridiagLanczos_Breakdown(t *testing.T) {
	t.Parallel()
	// e₁ is an eigenvector: the Krylov space collapses after one step.
	a := matrix.Diag([]float64{3, 1, 2})
	tr, err := ops.TridiagLanczos(a)
	require.NoError(t, err)
	requireBand(t, tr, 1, 1)
	requireSameSpectrum(t, a, tr)
}

func TestHessenberg(t *testing.T) {
	t.Parallel()
	algos := map[string]func(matrix.Matrix) (*matrix.Dense, error){
		"householder": ops.Hessenberg,
		"arnoldi":     ops.HessenbergArnoldi,
	}
	for name, f := range algos {
		for _, n := range []int{0, 1, 2, 5} {
			t.Run(fmt.Sprintf("%s symmetric n=%d", name, n), func(t *testing.T) {
				a := spd(t, n, uint64(60+n))
				h, err := f(a)
				require.NoError(t, err)
				requireBand(t, h, 1, n)
				requireSameSpectrum(t, a, h)
			})
		}
		t.Run(name+" non-symmetric", func(t *testing.T) {
			a := fromRows(t, nonSymmetric4)
			h, err := f(a)
			require.NoError(t, err)
			requireBand(t, h, 1, 4)
			requireSameSpectrum(t, a, h)
		})
		t.Run(name+" errors", func(t *testing.T) {
			_, err := f(randn(t, 3, 2, 1))
			require.ErrorIs(t, err, matrix.ErrNonSquare)
		})
	}
}

func TestBidiag(t *testing.T) {
	t.Parallel()
	for _, sh := range [][2]int{{2, 3}, {3, 2}, {6, 4}, {4, 6}} {
		t.Run(fmt.Sprintf("%dx%d", sh[0], sh[1]), func(t *testing.T) {
			a := randn(t, sh[0], sh[1], uint64(sh[0]*10+sh[1]))
			b, err := ops.Bidiag(a)
			require.NoError(t, err)
			for i := 0; i < b.Rows(); i++ {
				for j := 0; j < b.Cols(); j++ {
					if j != i && j != i+1 {
						require.Equal(t, 0.0, at(t, b, i, j))
					}
				}
			}
			want, err := ops.SingularValues(a)
			require.NoError(t, err)
			got, err := ops.SingularValues(b)
			require.NoError(t, err)
			require.InDeltaSlice(t, want, got, tolLoose)
		})
	}
}
