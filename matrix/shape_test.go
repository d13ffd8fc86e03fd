// SPDX-License-Identifier: MIT

package matrix_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvla/matrix"
)

func seq(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	vals := make([]float64, r*c)
	for k := range vals {
		vals[k] = float64(k)
	}
	return MustSlice(t, r, c, vals...)
}

func TestTranspose(t *testing.T) {
	t.Parallel()
	m := seq(t, 2, 3)
	tr := m.Transpose()
	requireRows(t, [][]float64{{0, 3}, {1, 4}, {2, 5}}, tr)
	require.True(t, tr.T().Equals(m, matrix.WithEpsilon(0)))
	require.Equal(t, 0, MustNew(t, 0, 4).T().Cols())
}

// reshape(3,8 → 4,6) keeps the flat sequence and the length (24).
func TestReshape_Literal(t *testing.T) {
	t.Parallel()
	m := seq(t, 3, 8)
	before := m.ToFlat()
	got, err := m.Reshape(4, 6)
	require.NoError(t, err)
	require.Same(t, m, got)
	r, c := m.Shape()
	require.Equal(t, [2]int{4, 6}, [2]int{r, c})
	require.Equal(t, 24, m.Len())
	require.Equal(t, before, m.ToFlat())

	_, err = m.Reshape(5, 5)
	require.ErrorIs(t, err, matrix.ErrLengthDifferent)
	_, err = m.Reshape(-4, -6)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestFlipSwap(t *testing.T) {
	t.Parallel()
	m := seq(t, 3, 2)
	_, err := m.Flip(matrix.AxisRow)
	require.NoError(t, err)
	requireRows(t, [][]float64{{4, 5}, {2, 3}, {0, 1}}, m)
	_, err = m.Flip(matrix.AxisCol)
	require.NoError(t, err)
	requireRows(t, [][]float64{{5, 4}, {3, 2}, {1, 0}}, m)

	_, err = m.Swap(0, 2, matrix.AxisRow)
	require.NoError(t, err)
	requireRows(t, [][]float64{{1, 0}, {3, 2}, {5, 4}}, m)
	_, err = m.Swap(0, 1, matrix.AxisCol)
	require.NoError(t, err)
	requireRows(t, [][]float64{{0, 1}, {2, 3}, {4, 5}}, m)

	_, err = m.Swap(0, 3, matrix.AxisRow)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.Swap(0, 2, matrix.AxisCol)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.Flip(matrix.AxisAll)
	require.ErrorIs(t, err, matrix.ErrInvalidAxis)
}

func TestSort_Lexicographic(t *testing.T) {
	t.Parallel()
	m := MustRows(t, [][]float64{{3, 1}, {1, 9}, {3, 0}, {1, 2}})
	p, err := m.Sort(matrix.AxisRow)
	require.NoError(t, err)
	require.Equal(t, []int{3, 1, 2, 0}, p)
	requireRows(t, [][]float64{{1, 2}, {1, 9}, {3, 0}, {3, 1}}, m)

	c := MustRows(t, [][]float64{{2, 1, 2}, {0, 5, -1}})
	p, err = c.Sort(matrix.AxisCol)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 0}, p)
	requireRows(t, [][]float64{{1, 2, 2}, {5, -1, 0}}, c)
}

func TestShuffle_Permutation(t *testing.T) {
	t.Parallel()
	m := seq(t, 6, 2)
	orig := m.Copy()
	p, err := m.Shuffle(matrix.AxisRow, matrix.WithRand(matrix.NewRand(4)))
	require.NoError(t, err)
	sorted := slices.Clone(p)
	slices.Sort(sorted)
	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, sorted)
	for k, src := range p {
		want, err := orig.Row(src)
		require.NoError(t, err)
		got, err := m.Row(k)
		require.NoError(t, err)
		require.Equal(t, want.ToFlat(), got.ToFlat())
	}
	require.Equal(t, orig.Sum(), m.Sum())
}

func TestResize(t *testing.T) {
	t.Parallel()
	m := seq(t, 2, 2)
	_, err := m.Resize(3, 3, -1)
	require.NoError(t, err)
	requireRows(t, [][]float64{{0, 1, -1}, {2, 3, -1}, {-1, -1, -1}}, m)
	_, err = m.Resize(1, 2, 0)
	require.NoError(t, err)
	requireRows(t, [][]float64{{0, 1}}, m)
	_, err = m.Resize(-1, 0, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestRepeatTile(t *testing.T) {
	t.Parallel()
	m := MustRows(t, [][]float64{{1, 2}})
	_, err := m.Repeat(2, matrix.AxisRow)
	require.NoError(t, err)
	requireRows(t, [][]float64{{1, 2}, {1, 2}}, m)
	_, err = m.Repeat(2, matrix.AxisCol)
	require.NoError(t, err)
	requireRows(t, [][]float64{{1, 2, 1, 2}, {1, 2, 1, 2}}, m)
	_, err = m.Repeat(0, matrix.AxisRow)
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)
}

func TestConcat(t *testing.T) {
	t.Parallel()
	a := seq(t, 2, 2)
	b := MustRows(t, [][]float64{{9, 9}})
	v, err := a.Concat(b, matrix.AxisRow)
	require.NoError(t, err)
	requireRows(t, [][]float64{{0, 1}, {2, 3}, {9, 9}}, v)

	h, err := a.Concat(MustRows(t, [][]float64{{7}, {8}}), matrix.AxisCol)
	require.NoError(t, err)
	requireRows(t, [][]float64{{0, 1, 7}, {2, 3, 8}}, h)

	_, err = a.Concat(b, matrix.AxisCol)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = a.Concat(MustNew(t, 1, 3), matrix.AxisRow)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestRemove(t *testing.T) {
	t.Parallel()
	m := seq(t, 4, 3)
	_, err := m.Remove(matrix.AxisRow, 1, 3, 1)
	require.NoError(t, err)
	requireRows(t, [][]float64{{0, 1, 2}, {6, 7, 8}}, m)
	_, err = m.Remove(matrix.AxisCol, 0)
	require.NoError(t, err)
	requireRows(t, [][]float64{{1, 2}, {7, 8}}, m)
	_, err = m.Remove(matrix.AxisCol, 5)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	n := seq(t, 3, 3)
	_, err = n.RemoveIf(matrix.AxisCol, func(v []float64) bool { return v[0] == 1 })
	require.NoError(t, err)
	requireRows(t, [][]float64{{0, 2}, {3, 5}, {6, 8}}, n)
	_, err = n.RemoveIf(matrix.AxisRow, func(v []float64) bool { return v[1] > 4 })
	require.NoError(t, err)
	requireRows(t, [][]float64{{0, 2}}, n)
}

func TestExtraction(t *testing.T) {
	t.Parallel()
	m := seq(t, 3, 4)

	r, err := m.Row(1)
	require.NoError(t, err)
	requireRows(t, [][]float64{{4, 5, 6, 7}}, r)
	require.NoError(t, r.Set(0, 0, 100))
	require.Equal(t, 4.0, MustAt(t, m, 1, 0), "extraction never aliases")

	c, err := m.Col(2)
	require.NoError(t, err)
	requireRows(t, [][]float64{{2}, {6}, {10}}, c)

	rs, err := m.SelectRows(2, 0, 2)
	require.NoError(t, err)
	requireRows(t, [][]float64{{8, 9, 10, 11}, {0, 1, 2, 3}, {8, 9, 10, 11}}, rs)

	cm, err := m.SelectColsMask([]bool{true, false, false, true})
	require.NoError(t, err)
	requireRows(t, [][]float64{{0, 3}, {4, 7}, {8, 11}}, cm)

	rm, err := m.SelectRowsMask([]bool{false, true, false})
	require.NoError(t, err)
	requireRows(t, [][]float64{{4, 5, 6, 7}}, rm)

	_, err = m.SelectRowsMask([]bool{true})
	require.ErrorIs(t, err, matrix.ErrInvalidLength)
	_, err = m.SelectColsMask(make([]bool, 5))
	require.ErrorIs(t, err, matrix.ErrInvalidLength)
	_, err = m.Row(3)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.Col(-1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestSliceBlock(t *testing.T) {
	t.Parallel()
	m := seq(t, 4, 4)
	s, err := m.Slice(1, 3, matrix.AxisRow)
	require.NoError(t, err)
	requireRows(t, [][]float64{{4, 5, 6, 7}, {8, 9, 10, 11}}, s)

	s, err = m.Slice(2, matrix.End, matrix.AxisCol)
	require.NoError(t, err)
	requireRows(t, [][]float64{{2, 3}, {6, 7}, {10, 11}, {14, 15}}, s)

	b, err := m.Block(1, 1, 3, 3)
	require.NoError(t, err)
	requireRows(t, [][]float64{{5, 6}, {9, 10}}, b)

	b, err = m.Block(0, 0, 0, matrix.End)
	require.NoError(t, err)
	require.True(t, b.IsEmpty())

	_, err = m.Block(2, 0, 1, 1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.Block(0, 0, 5, 1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.Slice(0, 1, matrix.AxisAll)
	require.ErrorIs(t, err, matrix.ErrInvalidAxis)
}

func TestSample(t *testing.T) {
	t.Parallel()
	m := seq(t, 5, 2)
	s, idx, err := m.Sample(3, matrix.AxisRow, matrix.WithRand(matrix.NewRand(8)))
	require.NoError(t, err)
	require.Len(t, idx, 3)
	seen := map[int]bool{}
	for k, i := range idx {
		require.False(t, seen[i], "distinct")
		seen[i] = true
		require.Equal(t, MustAt(t, m, i, 1), MustAt(t, s, k, 1))
	}

	_, _, err = m.Sample(3, matrix.AxisCol)
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)
	_, _, err = m.Sample(1, matrix.AxisAll)
	require.ErrorIs(t, err, matrix.ErrInvalidAxis)
}

func TestMapFillForEach(t *testing.T) {
	t.Parallel()
	m := seq(t, 2, 2)
	m.Map(func(x float64) float64 { return x * x })
	requireRows(t, [][]float64{{0, 1}, {4, 9}}, m)

	c := m.CopyMap(func(x float64) float64 { return -x })
	requireRows(t, [][]float64{{0, -1}, {-4, -9}}, c)

	m.MapIndexed(func(x float64, i, j int) float64 { return x + float64(10*i+j) })
	requireRows(t, [][]float64{{0, 2}, {14, 20}}, m)

	var visited [][3]float64
	m.ForEach(func(x float64, i, j int) { visited = append(visited, [3]float64{x, float64(i), float64(j)}) })
	require.Equal(t, [][3]float64{{0, 0, 0}, {2, 0, 1}, {14, 1, 0}, {20, 1, 1}}, visited)

	m.Negative()
	requireRows(t, [][]float64{{0, -2}, {-14, -20}}, m)
	m.Abs()
	requireRows(t, [][]float64{{0, 2}, {14, 20}}, m)
	m.Fill(3)
	requireRows(t, [][]float64{{3, 3}, {3, 3}}, m)
}
