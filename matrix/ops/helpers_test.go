// SPDX-License-Identifier: MIT

package ops_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvla/matrix"
)

const (
	tolTight = 1e-9
	tolLoose = 1e-6
)

// nonSymmetric4 has four distinct real eigenvalues.
var nonSymmetric4 = [][]float64{
	{16, -1, 1, 2},
	{2, 12, 1, -1},
	{1, 3, -24, 2},
	{4, -2, 1, 20},
}

func randn(t *testing.T, rows, cols int, seed uint64) *matrix.Dense {
	t.Helper()
	m, err := matrix.Randn(rows, cols, matrix.WithRand(matrix.NewRand(seed)))
	require.NoError(t, err)
	return m
}

// spd returns MᵀM for a random n×n M.
func spd(t *testing.T, n int, seed uint64) *matrix.Dense {
	t.Helper()
	return randn(t, n, n, seed).Gram()
}

func fromRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)
	return m
}

func dot(t *testing.T, a, b *matrix.Dense) *matrix.Dense {
	t.Helper()
	out, err := a.Dot(b)
	require.NoError(t, err)
	return out
}

func col(t *testing.T, m *matrix.Dense, j int) *matrix.Dense {
	t.Helper()
	c, err := m.Col(j)
	require.NoError(t, err)
	return c
}

func at(t *testing.T, m *matrix.Dense, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)
	return v
}

// requireClose asserts equal shapes and element-wise |want-got| <= tol.
func requireClose(t *testing.T, want, got *matrix.Dense, tol float64) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows(), "rows")
	require.Equal(t, want.Cols(), got.Cols(), "cols")
	require.InDeltaSlice(t, want.Data(), got.Data(), tol)
}

// requireOrthonormalCols asserts QᵀQ == I.
func requireOrthonormalCols(t *testing.T, q *matrix.Dense, tol float64) {
	t.Helper()
	g := q.Gram()
	id, err := matrix.Identity(q.Cols())
	require.NoError(t, err)
	requireClose(t, id, g, tol)
}

func requireDescending(t *testing.T, v []float64) {
	t.Helper()
	for i := 1; i < len(v); i++ {
		require.LessOrEqual(t, v[i], v[i-1], "index %d", i)
	}
}

// shifted returns A - λI.
func shifted(a *matrix.Dense, lambda float64) *matrix.Dense {
	s := a.Copy()
	for k := 0; k < s.Rows(); k++ {
		_ = s.SubAt(k, k, lambda)
	}
	return s
}

// requireEigenpair asserts A·v ≈ λ·v relative to the scale of A.
func requireEigenpair(t *testing.T, a, v *matrix.Dense, lambda float64) {
	t.Helper()
	av := dot(t, a, v)
	lv := v.CopyMultScalar(lambda)
	requireClose(t, lv, av, tolLoose*math.Max(1, scaleOf(a)))
}

func scaleOf(a *matrix.Dense) float64 {
	s, _ := a.Norm(matrix.NormInf)
	return s
}

// bruteDet expands the determinant over all permutations.
func bruteDet(m [][]float64) float64 {
	n := len(m)
	if n == 0 {
		return 0
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	var total float64
	var rec func(k int, sign float64)
	rec = func(k int, sign float64) {
		if k == n {
			p := sign
			for i := 0; i < n; i++ {
				p *= m[i][perm[i]]
			}
			total += p
			return
		}
		for i := k; i < n; i++ {
			perm[k], perm[i] = perm[i], perm[k]
			s := sign
			if i != k {
				s = -s
			}
			rec(k+1, s)
			perm[k], perm[i] = perm[i], perm[k]
		}
	}
	rec(0, 1)
	return total
}
