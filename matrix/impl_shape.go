// SPDX-License-Identifier: MIT

// Package matrix - shape transforms.
//
// Mutating transforms (Flip, Swap, Sort, Shuffle, Resize, Reshape, Repeat,
// Remove, RemoveIf, Fill, Map, Negative, Abs) rewrite the receiver and return
// it for chaining. Transpose and Concat return a new matrix.
package matrix

import (
	"fmt"
	"math"
	"slices"
)

const (
	opFlip     = "Flip"
	opSwap     = "Swap"
	opSort     = "Sort"
	opShuffle  = "Shuffle"
	opResize   = "Resize"
	opReshape  = "Reshape"
	opRepeat   = "Repeat"
	opConcat   = "Concat"
	opRemove   = "Remove"
	opRemoveIf = "RemoveIf"
)

// Transpose returns a new cols×rows matrix with out[j][i] = m[i][j].
func (m *Dense) Transpose() *Dense {
	out := newDense(m.c, m.r)
	var i, j int
	for i = 0; i < m.r; i++ {
		base := i * m.c
		for j = 0; j < m.c; j++ {
			out.data[j*m.r+i] = m.data[base+j]
		}
	}
	return out
}

// T is shorthand for Transpose.
func (m *Dense) T() *Dense { return m.Transpose() }

// Flip reverses the order of rows (AxisRow) or columns (AxisCol).
func (m *Dense) Flip(axis Axis) (*Dense, error) {
	switch axis {
	case AxisRow:
		for i, k := 0, m.r-1; i < k; i, k = i+1, k-1 {
			m.swapRows(i, k)
		}
	case AxisCol:
		for i := 0; i < m.r; i++ {
			slices.Reverse(m.data[i*m.c : (i+1)*m.c])
		}
	default:
		return nil, matrixErrorf(opFlip, ErrInvalidAxis)
	}
	return m, nil
}

// Swap exchanges rows (AxisRow) or columns (AxisCol) a and b.
func (m *Dense) Swap(a, b int, axis Axis) (*Dense, error) {
	switch axis {
	case AxisRow:
		if a < 0 || b < 0 || a >= m.r || b >= m.r {
			return nil, denseErrorf(opSwap, a, b, ErrOutOfRange)
		}
		m.swapRows(a, b)
	case AxisCol:
		if a < 0 || b < 0 || a >= m.c || b >= m.c {
			return nil, denseErrorf(opSwap, a, b, ErrOutOfRange)
		}
		m.swapCols(a, b)
	default:
		return nil, matrixErrorf(opSwap, ErrInvalidAxis)
	}
	return m, nil
}

func (m *Dense) swapRows(a, b int) {
	if a == b {
		return
	}
	ra := m.data[a*m.c : (a+1)*m.c]
	rb := m.data[b*m.c : (b+1)*m.c]
	for j := range ra {
		ra[j], rb[j] = rb[j], ra[j]
	}
}

func (m *Dense) swapCols(a, b int) {
	if a == b {
		return
	}
	for i := 0; i < m.r; i++ {
		m.data[i*m.c+a], m.data[i*m.c+b] = m.data[i*m.c+b], m.data[i*m.c+a]
	}
}

// permute rearranges rows (or columns) so that new[k] = old[p[k]].
func (m *Dense) permute(p []int, axis Axis) {
	out := make([]float64, len(m.data))
	var i, k int
	if axis == AxisRow {
		for k = range p {
			copy(out[k*m.c:(k+1)*m.c], m.data[p[k]*m.c:(p[k]+1)*m.c])
		}
	} else {
		for i = 0; i < m.r; i++ {
			for k = range p {
				out[i*m.c+k] = m.data[i*m.c+p[k]]
			}
		}
	}
	m.data = out
}

// Sort orders rows (AxisRow) or columns (AxisCol) ascending by lexicographic
// comparison of their entries and returns the applied permutation p, so that
// new row k is old row p[k].
func (m *Dense) Sort(axis Axis) ([]int, error) {
	var n int
	var get func(k, t int) float64
	var width int
	switch axis {
	case AxisRow:
		n, width = m.r, m.c
		get = func(k, t int) float64 { return m.data[k*m.c+t] }
	case AxisCol:
		n, width = m.c, m.r
		get = func(k, t int) float64 { return m.data[t*m.c+k] }
	default:
		return nil, matrixErrorf(opSort, ErrInvalidAxis)
	}
	p := make([]int, n)
	for k := range p {
		p[k] = k
	}
	slices.SortStableFunc(p, func(a, b int) int {
		for t := 0; t < width; t++ {
			va, vb := get(a, t), get(b, t)
			if va < vb {
				return -1
			}
			if va > vb {
				return 1
			}
		}
		return 0
	})
	m.permute(p, axis)
	return p, nil
}

// Shuffle randomly permutes rows (AxisRow) or columns (AxisCol) and returns
// the permutation applied.
func (m *Dense) Shuffle(axis Axis, opts ...Option) ([]int, error) {
	var n int
	switch axis {
	case AxisRow:
		n = m.r
	case AxisCol:
		n = m.c
	default:
		return nil, matrixErrorf(opShuffle, ErrInvalidAxis)
	}
	p := NewOptions(opts...).Rand().Perm(n)
	m.permute(p, axis)
	return p, nil
}

// Resize changes the shape to rows×cols keeping the overlapping top-left
// block; new cells are set to fill.
func (m *Dense) Resize(rows, cols int, fill float64) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, matrixErrorf(opResize, ErrInvalidDimensions)
	}
	out := make([]float64, rows*cols)
	if fill != 0 {
		for k := range out {
			out[k] = fill
		}
	}
	rr, cc := min(rows, m.r), min(cols, m.c)
	for i := 0; i < rr; i++ {
		copy(out[i*cols:i*cols+cc], m.data[i*m.c:i*m.c+cc])
	}
	m.r, m.c, m.data = rows, cols, out
	return m, nil
}

// Reshape reinterprets the row-major buffer as rows×cols.
// Errors:
//   - ErrLengthDifferent when rows*cols != Len().
func (m *Dense) Reshape(rows, cols int) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, matrixErrorf(opReshape, ErrInvalidDimensions)
	}
	if rows*cols != len(m.data) {
		return nil, shapeErrorf(opReshape, m.r, m.c, rows, cols, ErrLengthDifferent)
	}
	m.r, m.c = rows, cols
	return m, nil
}

// Repeat tiles the matrix n times along axis (AxisRow stacks copies below,
// AxisCol side by side).
func (m *Dense) Repeat(n int, axis Axis) (*Dense, error) {
	switch axis {
	case AxisRow:
		return m.Tile(n, 1)
	case AxisCol:
		return m.Tile(1, n)
	}
	return nil, matrixErrorf(opRepeat, ErrInvalidAxis)
}

// Tile repeats the matrix nr times vertically and nc times horizontally.
func (m *Dense) Tile(nr, nc int) (*Dense, error) {
	if nr < 1 || nc < 1 {
		return nil, fmt.Errorf("%s: counts %d,%d: %w", opRepeat, nr, nc, ErrInvalidArgument)
	}
	R, C := m.r*nr, m.c*nc
	out := make([]float64, R*C)
	for i := 0; i < R; i++ {
		src := m.data[(i%m.r)*m.c : (i%m.r+1)*m.c]
		for t := 0; t < nc; t++ {
			copy(out[i*C+t*m.c:], src)
		}
	}
	m.r, m.c, m.data = R, C, out
	return m, nil
}

// Concat returns m and b joined along axis: AxisRow stacks b below m,
// AxisCol appends b on the right.
// Errors:
//   - ErrDimensionMismatch when the other extents differ.
func (m *Dense) Concat(b *Dense, axis Axis) (*Dense, error) {
	if b == nil {
		return nil, matrixErrorf(opConcat, ErrNilMatrix)
	}
	switch axis {
	case AxisRow:
		if m.c != b.c {
			return nil, shapeErrorf(opConcat, m.r, m.c, b.r, b.c, ErrDimensionMismatch)
		}
		out := newDense(m.r+b.r, m.c)
		copy(out.data, m.data)
		copy(out.data[len(m.data):], b.data)
		return out, nil
	case AxisCol:
		if m.r != b.r {
			return nil, shapeErrorf(opConcat, m.r, m.c, b.r, b.c, ErrDimensionMismatch)
		}
		C := m.c + b.c
		out := newDense(m.r, C)
		for i := 0; i < m.r; i++ {
			copy(out.data[i*C:], m.data[i*m.c:(i+1)*m.c])
			copy(out.data[i*C+m.c:], b.data[i*b.c:(i+1)*b.c])
		}
		return out, nil
	}
	return nil, matrixErrorf(opConcat, ErrInvalidAxis)
}

// Remove deletes the listed rows (AxisRow) or columns (AxisCol).
// Duplicate indices are removed once.
func (m *Dense) Remove(axis Axis, idx ...int) (*Dense, error) {
	var extent int
	switch axis {
	case AxisRow:
		extent = m.r
	case AxisCol:
		extent = m.c
	default:
		return nil, matrixErrorf(opRemove, ErrInvalidAxis)
	}
	drop := make([]bool, extent)
	for _, k := range idx {
		if k < 0 || k >= extent {
			return nil, fmt.Errorf("%s: index %d of %d: %w", opRemove, k, extent, ErrOutOfRange)
		}
		drop[k] = true
	}
	return m.keep(axis, drop), nil
}

// RemoveIf deletes every row (AxisRow) or column (AxisCol) for which pred
// returns true. pred receives a copy of the row/column values.
func (m *Dense) RemoveIf(axis Axis, pred func(v []float64) bool) (*Dense, error) {
	var drop []bool
	switch axis {
	case AxisRow:
		drop = make([]bool, m.r)
		for i := range drop {
			drop[i] = pred(append([]float64(nil), m.data[i*m.c:(i+1)*m.c]...))
		}
	case AxisCol:
		drop = make([]bool, m.c)
		col := make([]float64, m.r)
		for j := range drop {
			for i := 0; i < m.r; i++ {
				col[i] = m.data[i*m.c+j]
			}
			drop[j] = pred(append([]float64(nil), col...))
		}
	default:
		return nil, matrixErrorf(opRemoveIf, ErrInvalidAxis)
	}
	return m.keep(axis, drop), nil
}

// keep compacts the receiver dropping the flagged rows/columns.
func (m *Dense) keep(axis Axis, drop []bool) *Dense {
	kept := make([]int, 0, len(drop))
	for k, d := range drop {
		if !d {
			kept = append(kept, k)
		}
	}
	var out *Dense
	if axis == AxisRow {
		out, _ = m.SelectRows(kept...)
	} else {
		out, _ = m.SelectCols(kept...)
	}
	m.r, m.c, m.data = out.r, out.c, out.data
	return m
}

// Fill sets every element to v.
func (m *Dense) Fill(v float64) *Dense {
	for k := range m.data {
		m.data[k] = v
	}
	return m
}

// Map replaces every element x with f(x).
func (m *Dense) Map(f func(x float64) float64) *Dense {
	for k, v := range m.data {
		m.data[k] = f(v)
	}
	return m
}

// MapIndexed replaces every element with f(x, i, j).
func (m *Dense) MapIndexed(f func(x float64, i, j int) float64) *Dense {
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			m.data[i*m.c+j] = f(m.data[i*m.c+j], i, j)
		}
	}
	return m
}

// CopyMap returns a new matrix with f applied to every element.
func (m *Dense) CopyMap(f func(x float64) float64) *Dense { return m.Copy().Map(f) }

// ForEach visits every element in row-major order.
func (m *Dense) ForEach(f func(x float64, i, j int)) {
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			f(m.data[i*m.c+j], i, j)
		}
	}
}

// Negative negates every element.
func (m *Dense) Negative() *Dense { return m.MultScalar(-1) }

// Abs replaces every element with its absolute value.
func (m *Dense) Abs() *Dense { return m.Map(math.Abs) }
