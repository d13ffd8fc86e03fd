// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvla/matrix"
)

func TestBroadcastShape(t *testing.T) {
	t.Parallel()
	cases := []struct {
		ar, ac, br, bc int
		r, c           int
		ok             bool
	}{
		{2, 3, 2, 3, 2, 3, true},
		{4, 6, 2, 3, 4, 6, true},
		{2, 3, 4, 6, 4, 6, true},
		{4, 6, 1, 1, 4, 6, true},
		{4, 6, 1, 6, 4, 6, true},
		{4, 6, 4, 1, 4, 6, true},
		{0, 0, 0, 0, 0, 0, true},
		{4, 6, 3, 3, 0, 0, false},
		{4, 1, 1, 6, 0, 0, false}, // neither dominates on both axes
		{2, 3, 0, 0, 0, 0, false},
	}
	for _, tc := range cases {
		name := fmt.Sprintf("%dx%d_%dx%d", tc.ar, tc.ac, tc.br, tc.bc)
		t.Run(name, func(t *testing.T) {
			r, c, err := matrix.BroadcastShape(tc.ar, tc.ac, tc.br, tc.bc)
			if !tc.ok {
				require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.r, r)
			require.Equal(t, tc.c, c)
		})
	}
	require.True(t, matrix.Tiles_TestOnly(6, 9, 2, 3))
	require.False(t, matrix.Tiles_TestOnly(6, 9, 4, 3))
}

// A.add(B).at(i,j) == A.at(i,j) + B.at(i % r, j % c)
func TestAdd_BroadcastLaw(t *testing.T) {
	t.Parallel()
	shapes := [][2]int{{1, 1}, {1, 6}, {4, 1}, {2, 3}, {4, 6}, {2, 2}, {4, 3}}
	for k, sh := range shapes {
		t.Run(fmt.Sprintf("B=%dx%d", sh[0], sh[1]), func(t *testing.T) {
			A := randomDense(t, 4, 6, uint64(10+k))
			B := randomDense(t, sh[0], sh[1], uint64(100+k))
			sum, err := A.CopyAdd(B)
			require.NoError(t, err)
			for i := 0; i < 4; i++ {
				for j := 0; j < 6; j++ {
					want := MustAt(t, A, i, j) + MustAt(t, B, i%sh[0], j%sh[1])
					require.Equal(t, want, MustAt(t, sum, i, j))
				}
			}
		})
	}
}

func TestBroadcast_SmallReceiverGrows(t *testing.T) {
	t.Parallel()
	row := MustRows(t, [][]float64{{1, 2, 3}})
	big := MustRows(t, [][]float64{{10, 20, 30}, {40, 50, 60}})
	got, err := row.Add(big)
	require.NoError(t, err)
	require.Same(t, row, got)
	requireRows(t, [][]float64{{11, 22, 33}, {41, 52, 63}}, row)
}

// Matrix.zeros(2,3).add(2) yields all entries 2.
func TestAddScalar_Literal(t *testing.T) {
	t.Parallel()
	z, err := matrix.Zeros(2, 3)
	require.NoError(t, err)
	require.Same(t, z, z.AddScalar(2))
	require.True(t, z.Every(func(x float64) bool { return x == 2 }))
}

func TestInPlaceVsCopy(t *testing.T) {
	t.Parallel()
	a := MustRows(t, [][]float64{{8, 6}, {4, 2}})
	b := MustRows(t, [][]float64{{2, 3}, {4, 1}})
	type op struct {
		name    string
		inPlace func(*matrix.Dense, *matrix.Dense) (*matrix.Dense, error)
		copyOp  func(*matrix.Dense, *matrix.Dense) (*matrix.Dense, error)
		want    [][]float64
	}
	ops := []op{
		{"Add", (*matrix.Dense).Add, (*matrix.Dense).CopyAdd, [][]float64{{10, 9}, {8, 3}}},
		{"Sub", (*matrix.Dense).Sub, (*matrix.Dense).CopySub, [][]float64{{6, 3}, {0, 1}}},
		{"ISub", (*matrix.Dense).ISub, (*matrix.Dense).CopyISub, [][]float64{{-6, -3}, {0, -1}}},
		{"Mult", (*matrix.Dense).Mult, (*matrix.Dense).CopyMult, [][]float64{{16, 18}, {16, 2}}},
		{"Div", (*matrix.Dense).Div, (*matrix.Dense).CopyDiv, [][]float64{{4, 2}, {1, 2}}},
		{"IDiv", (*matrix.Dense).IDiv, (*matrix.Dense).CopyIDiv, [][]float64{{0.25, 0.5}, {1, 0.5}}},
	}
	for _, o := range ops {
		t.Run(o.name, func(t *testing.T) {
			orig := a.Copy()
			c, err := o.copyOp(orig, b)
			require.NoError(t, err)
			require.NotSame(t, orig, c)
			requireRows(t, o.want, c)
			require.True(t, orig.Equals(a, matrix.WithEpsilon(0)), "copy form must not mutate")

			got, err := o.inPlace(orig, b)
			require.NoError(t, err)
			require.Same(t, orig, got)
			requireRows(t, o.want, orig)
		})
	}
}

func TestScalarFamilies(t *testing.T) {
	t.Parallel()
	base := MustRows(t, [][]float64{{2, 4}})
	requireRows(t, [][]float64{{3, 5}}, base.CopyAddScalar(1))
	requireRows(t, [][]float64{{1, 3}}, base.CopySubScalar(1))
	requireRows(t, [][]float64{{8, 6}}, base.CopyISubScalar(10))
	requireRows(t, [][]float64{{6, 12}}, base.CopyMultScalar(3))
	requireRows(t, [][]float64{{1, 2}}, base.CopyDivScalar(2))
	requireRows(t, [][]float64{{4, 2}}, base.CopyIDivScalar(8))
	requireRows(t, [][]float64{{2, 4}}, base)

	m := base.Copy()
	m.MultScalar(2).SubScalar(1).ISubScalar(0)
	requireRows(t, [][]float64{{-3, -7}}, m)
	m.DivScalar(-1).IDivScalar(21)
	requireRows(t, [][]float64{{7, 3}}, m)
}

func TestElementwise_Errors(t *testing.T) {
	t.Parallel()
	a := MustNew(t, 4, 6)
	b := MustNew(t, 3, 3)
	_, err := a.Add(b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	require.EqualError(t, err, "Add: 4x6 vs 3x3: matrix: size invalid")
	_, err = a.CopyDiv(b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = a.Mult(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = a.Operate(b, math.Max)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestOperate(t *testing.T) {
	t.Parallel()
	a := MustRows(t, [][]float64{{1, 5}, {7, 3}})
	col := MustRows(t, [][]float64{{4}, {4}})
	c, err := a.CopyOperate(col, math.Max)
	require.NoError(t, err)
	requireRows(t, [][]float64{{4, 5}, {7, 4}}, c)
	requireRows(t, [][]float64{{1, 5}, {7, 3}}, a)

	_, err = a.Operate(col, math.Min)
	require.NoError(t, err)
	requireRows(t, [][]float64{{1, 4}, {4, 3}}, a)
}
