// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.
//
// Purpose:
//   - Small deterministic fixtures and assertions shared by the matrix tests.
//   - Every random matrix is drawn from a seeded generator.

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvla/matrix"
)

// hide wraps a Matrix to hide its concrete type, forcing the generic
// (non-*Dense) paths of ToDense.
type hide struct{ matrix.Matrix }

// MustNew allocates an r×c zero matrix or fails the test.
func MustNew(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.New(r, c)
	require.NoError(t, err)
	return m
}

// MustRows builds a matrix from nested rows or fails the test.
func MustRows(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)
	return m
}

// MustSlice builds an r×c matrix from row-major values or fails the test.
func MustSlice(t testing.TB, r, c int, values ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromSlice(r, c, values)
	require.NoError(t, err)
	return m
}

// MustAt reads (i, j) or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)
	return v
}

// randomDense draws an r×c matrix uniform on [-1, 1) from a seeded source.
func randomDense(t testing.TB, r, c int, seed uint64) *matrix.Dense {
	t.Helper()
	m, err := matrix.Random(r, c, -1, 1, matrix.WithRand(matrix.NewRand(seed)))
	require.NoError(t, err)
	return m
}

// requireRows asserts shape and exact values.
func requireRows(t testing.TB, want [][]float64, got *matrix.Dense) {
	t.Helper()
	require.Equal(t, want, got.ToArray())
}

// requireClose asserts equal shapes and |want-got| <= tol element-wise.
func requireClose(t testing.TB, want, got *matrix.Dense, tol float64) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows(), "rows")
	require.Equal(t, want.Cols(), got.Cols(), "cols")
	require.InDeltaSlice(t, want.Data(), got.Data(), tol)
}
