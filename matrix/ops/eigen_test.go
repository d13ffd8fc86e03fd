// SPDX-License-Identifier: MIT

package ops_test

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvla/internal/logger"
	"github.com/katalvlaran/lvla/matrix"
	"github.com/katalvlaran/lvla/matrix/ops"
)

// gonumSymValues returns the eigenvalues of symmetric a, descending.
func gonumSymValues(t *testing.T, a *matrix.Dense) []float64 {
	t.Helper()
	n := a.Rows()
	var es mat.EigenSym
	require.True(t, es.Factorize(mat.NewSymDense(n, a.ToFlat()), false))
	v := es.Values(nil)
	sort.Sort(sort.Reverse(sort.Float64Slice(v)))
	return v
}

func requireDetZero(t *testing.T, a *matrix.Dense, lambda float64) {
	t.Helper()
	d, err := ops.Det(shifted(a, lambda))
	require.NoError(t, err)
	// |det(A-λI)| is bounded by the product of the other eigenvalue gaps;
	// compare against the scale of the matrix.
	s := math.Max(1, scaleOf(a))
	require.InDelta(t, 0, d/math.Pow(s, float64(a.Rows())), tolLoose)
}

func TestEigen_Symmetric(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, 1, 2, 5, 10} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			a := spd(t, n, uint64(200+n))
			vals, vecs, err := ops.Eigen(a)
			require.NoError(t, err)
			require.Len(t, vals, n)
			requireDescending(t, vals)
			for i, l := range vals {
				requireDetZero(t, a, l)
				requireEigenpair(t, a, col(t, vecs, i), l)
			}
			requireOrthonormalCols(t, vecs, tolTight)
			if n > 0 {
				require.InDeltaSlice(t, gonumSymValues(t, a), vals, tolLoose)
			}
		})
	}
}

func TestEigen_NonSymmetric(t *testing.T) {
	t.Parallel()
	// The structure checks are relative, so a scaled copy must take the same
	// non-symmetric path and yield scaled eigenvalues.
	for _, scale := range []float64{1, 1e-10, 1e8} {
		t.Run(fmt.Sprintf("scale=%g", scale), func(t *testing.T) {
			a := fromRows(t, nonSymmetric4).MultScalar(scale)
			vals, vecs, err := ops.Eigen(a)
			require.NoError(t, err)
			requireDescending(t, vals)

			var ge mat.Eigen
			require.True(t, ge.Factorize(mat.NewDense(4, 4, a.ToFlat()), mat.EigenNone))
			want := make([]float64, 0, 4)
			for _, c := range ge.Values(nil) {
				require.Zero(t, imag(c))
				want = append(want, real(c))
			}
			sort.Sort(sort.Reverse(sort.Float64Slice(want)))
			require.InDeltaSlice(t, want, vals, tolLoose*scale)

			for i, l := range vals {
				v := col(t, vecs, i)
				require.InDelta(t, 1, v.Gram().Data()[0], tolTight)
				requireClose(t, v.CopyMultScalar(l), dot(t, a, v), tolLoose*scaleOf(a))
			}
		})
	}
}

func TestEigen_ComplexSpectrum(t *testing.T) {
	t.Parallel()
	rot := fromRows(t, [][]float64{{0, -1}, {1, 0}})
	_, _, err := ops.Eigen(rot)
	require.ErrorIs(t, err, matrix.ErrComplexEigen)

	vals, err := ops.EigenValues(rot)
	require.NoError(t, err)
	require.Len(t, vals, 2)
	require.True(t, math.IsNaN(vals[0]) && math.IsNaN(vals[1]))

	mixed := fromRows(t, [][]float64{{0, -1, 0}, {1, 0, 0}, {0, 0, 5}})
	vals, err = ops.EigenValuesQR(mixed)
	require.NoError(t, err)
	require.InDelta(t, 5, vals[0], tolTight)
	require.True(t, math.IsNaN(vals[1]) && math.IsNaN(vals[2]))
}

func TestEigen_Errors(t *testing.T) {
	t.Parallel()
	wide, tall := randn(t, 2, 3, 1), randn(t, 3, 2, 1)
	for _, a := range []*matrix.Dense{wide, tall} {
		_, _, err := ops.Eigen(a)
		require.ErrorIs(t, err, matrix.ErrNonSquare)
		_, err = ops.EigenValues(a)
		require.ErrorIs(t, err, matrix.ErrNonSquare)
		_, err = ops.EigenVectors(a)
		require.ErrorIs(t, err, matrix.ErrNonSquare)
		_, err = ops.EigenValuesLR(a)
		require.ErrorIs(t, err, matrix.ErrNonSquare)
		_, err = ops.EigenValuesQR(a)
		require.ErrorIs(t, err, matrix.ErrNonSquare)
		_, err = ops.EigenValuesBisection(a)
		require.ErrorIs(t, err, matrix.ErrNonSquare)
		_, err = ops.EigenJacobi(a)
		require.ErrorIs(t, err, matrix.ErrNonSquare)
		_, _, err = ops.EigenPowerIteration(a)
		require.ErrorIs(t, err, matrix.ErrNonSquare)
		_, _, err = ops.EigenInverseIteration(a, 0)
		require.ErrorIs(t, err, matrix.ErrNonSquare)
	}
	nonSym := fromRows(t, nonSymmetric4)
	_, err := ops.EigenJacobi(nonSym)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)
	_, err = ops.EigenValuesBisection(nonSym)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)
}

func TestEigenVectors(t *testing.T) {
	t.Parallel()
	a := spd(t, 5, 77)
	vecs, err := ops.EigenVectors(a)
	require.NoError(t, err)
	requireOrthonormalCols(t, vecs, tolTight)
	// A·v / v is constant per column (where v is not ~0).
	for i := 0; i < 5; i++ {
		v := col(t, vecs, i)
		av := dot(t, a, v)
		var ref float64
		first := true
		for k := 0; k < 5; k++ {
			vk := at(t, v, k, 0)
			if math.Abs(vk) < 1e-3 {
				continue
			}
			r := at(t, av, k, 0) / vk
			if first {
				ref, first = r, false
				continue
			}
			require.InDelta(t, ref, r, tolLoose*scaleOf(a))
		}
	}
}

func TestEigenValueAlgorithms_AgreeOnSymmetric(t *testing.T) {
	t.Parallel()
	algos := map[string]func(matrix.Matrix, ...matrix.Option) ([]float64, error){
		"values":    ops.EigenValues,
		"bisection": ops.EigenValuesBisection,
		"lr":        ops.EigenValuesLR,
		"qr":        ops.EigenValuesQR,
	}
	for name, f := range algos {
		for _, n := range []int{0, 1, 2, 3, 5} {
			t.Run(fmt.Sprintf("%s n=%d", name, n), func(t *testing.T) {
				a := spd(t, n, uint64(300+n))
				vals, err := f(a)
				require.NoError(t, err)
				require.Len(t, vals, n)
				requireDescending(t, vals)
				for _, l := range vals {
					requireDetZero(t, a, l)
				}
				if n > 0 {
					require.InDeltaSlice(t, gonumSymValues(t, a), vals, tolLoose*math.Max(1, scaleOf(a)))
				}
			})
		}
	}
}

func TestEigenValueAlgorithms_NonSymmetric(t *testing.T) {
	t.Parallel()
	a := fromRows(t, nonSymmetric4)
	want, err := ops.EigenValues(a)
	require.NoError(t, err)
	for name, f := range map[string]func(matrix.Matrix, ...matrix.Option) ([]float64, error){
		"lr": ops.EigenValuesLR,
		"qr": ops.EigenValuesQR,
	} {
		t.Run(name, func(t *testing.T) {
			vals, err := f(a)
			require.NoError(t, err)
			requireDescending(t, vals)
			require.InDeltaSlice(t, want, vals, tolLoose)
			for _, l := range vals {
				requireDetZero(t, a, l)
			}
		})
	}
}

func TestEigenJacobi(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, 1, 2, 5} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			a := spd(t, n, uint64(400+n))
			res, err := ops.EigenJacobi(a)
			require.NoError(t, err)
			require.True(t, res.Converged)
			requireDescending(t, res.Values)
			for i, l := range res.Values {
				requireDetZero(t, a, l)
				requireEigenpair(t, a, col(t, res.Vectors, i), l)
			}
			requireOrthonormalCols(t, res.Vectors, tolTight)
		})
	}
}

func TestEigenJacobi_NotConverged(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logger.New(&buf, logger.FormatText, logger.ParseLevel("debug"))

	a := spd(t, 10, 500)
	res, err := ops.EigenJacobi(a, matrix.WithMaxIter(1), matrix.WithLogger(log))
	require.NoError(t, err)
	require.False(t, res.Converged)
	require.Equal(t, 1, res.Iterations)
	require.Len(t, res.Values, 10)
	require.Contains(t, buf.String(), "eigenJacobi not converged")
}

func TestEigenPowerIteration(t *testing.T) {
	t.Parallel()
	for _, n := range []int{1, 2, 5} {
		t.Run(fmt.Sprintf("symmetric n=%d", n), func(t *testing.T) {
			a := spd(t, n, uint64(600+n))
			l, v, err := ops.EigenPowerIteration(a)
			require.NoError(t, err)
			requireDetZero(t, a, l)
			requireEigenpair(t, a, v, l)
			require.InDelta(t, 1, v.Gram().Data()[0], tolTight)
			want := gonumSymValues(t, a)
			require.InDelta(t, want[0], l, tolLoose*math.Max(1, want[0]))
		})
	}
	t.Run("non-symmetric", func(t *testing.T) {
		a := fromRows(t, nonSymmetric4)
		l, v, err := ops.EigenPowerIteration(a)
		require.NoError(t, err)
		requireDetZero(t, a, l)
		requireEigenpair(t, a, v, l)
		vals, err := ops.EigenValues(a)
		require.NoError(t, err)
		dominant := vals[0]
		for _, x := range vals {
			if math.Abs(x) > math.Abs(dominant) {
				dominant = x
			}
		}
		require.InDelta(t, dominant, l, tolLoose)
	})
}

func TestEigenInverseIteration(t *testing.T) {
	t.Parallel()
	cases := map[string]*matrix.Dense{
		"symmetric":     spd(t, 5, 700),
		"non-symmetric": fromRows(t, nonSymmetric4),
	}
	for name, a := range cases {
		t.Run(name, func(t *testing.T) {
			ev, err := ops.EigenValues(a)
			require.NoError(t, err)
			for i := range ev {
				next := ev[i] - 1
				if i+1 < len(ev) {
					next = ev[i+1]
				}
				shift := ev[i] - (ev[i]-next)/4
				l, v, err := ops.EigenInverseIteration(a, shift)
				require.NoError(t, err)
				require.InDelta(t, ev[i], l, tolLoose*math.Max(1, math.Abs(ev[i])))
				requireEigenpair(t, a, v, l)
				require.InDelta(t, 1, v.Gram().Data()[0], tolTight)
			}
		})
	}
	t.Run("exact shift", func(t *testing.T) {
		a := matrix.Diag([]float64{4, 2, 1})
		l, v, err := ops.EigenInverseIteration(a, 2)
		require.NoError(t, err)
		require.InDelta(t, 2, l, tolTight)
		require.InDelta(t, 1, math.Abs(at(t, v, 1, 0)), tolLoose)
	})
}
