// SPDX-License-Identifier: MIT

// Package matrix - row/column extraction and sub-matrix copies.
//
// Every extraction returns a NEW Dense; nothing here aliases the receiver.
package matrix

import "fmt"

const (
	opSelectRows = "SelectRows"
	opSelectCols = "SelectCols"
	opRowMask    = "SelectRowsMask"
	opColMask    = "SelectColsMask"
	opSlice      = "Slice"
	opBlock      = "Block"
	opSample     = "Sample"
)

// Row returns row i as a 1×cols matrix.
func (m *Dense) Row(i int) (*Dense, error) { return m.SelectRows(i) }

// Col returns column j as a rows×1 matrix.
func (m *Dense) Col(j int) (*Dense, error) { return m.SelectCols(j) }

// SelectRows gathers the listed rows (repeats allowed) into a len(idx)×cols matrix.
func (m *Dense) SelectRows(idx ...int) (*Dense, error) {
	out := newDense(len(idx), m.c)
	for k, i := range idx {
		if i < 0 || i >= m.r {
			return nil, denseErrorf(opSelectRows, i, 0, ErrOutOfRange)
		}
		copy(out.data[k*m.c:(k+1)*m.c], m.data[i*m.c:(i+1)*m.c])
	}
	return out, nil
}

// SelectCols gathers the listed columns into a rows×len(idx) matrix.
func (m *Dense) SelectCols(idx ...int) (*Dense, error) {
	n := len(idx)
	out := newDense(m.r, n)
	for k, j := range idx {
		if j < 0 || j >= m.c {
			return nil, denseErrorf(opSelectCols, 0, j, ErrOutOfRange)
		}
		for i := 0; i < m.r; i++ {
			out.data[i*n+k] = m.data[i*m.c+j]
		}
	}
	return out, nil
}

// SelectRowsMask keeps the rows whose mask entry is true.
// Errors:
//   - ErrInvalidLength when len(mask) != Rows().
func (m *Dense) SelectRowsMask(mask []bool) (*Dense, error) {
	if len(mask) != m.r {
		return nil, fmt.Errorf("%s: mask %d for %d rows: %w", opRowMask, len(mask), m.r, ErrInvalidLength)
	}
	return m.SelectRows(maskIndices(mask)...)
}

// SelectColsMask keeps the columns whose mask entry is true.
func (m *Dense) SelectColsMask(mask []bool) (*Dense, error) {
	if len(mask) != m.c {
		return nil, fmt.Errorf("%s: mask %d for %d cols: %w", opColMask, len(mask), m.c, ErrInvalidLength)
	}
	return m.SelectCols(maskIndices(mask)...)
}

func maskIndices(mask []bool) []int {
	idx := make([]int, 0, len(mask))
	for k, keep := range mask {
		if keep {
			idx = append(idx, k)
		}
	}
	return idx
}

// Slice copies the half-open range [from, to) along axis; to == End means the
// full extent. AxisRow slices rows, AxisCol slices columns.
func (m *Dense) Slice(from, to int, axis Axis) (*Dense, error) {
	switch axis {
	case AxisRow:
		return m.Block(from, 0, to, End)
	case AxisCol:
		return m.Block(0, from, End, to)
	}
	return nil, matrixErrorf(opSlice, ErrInvalidAxis)
}

// Block copies rows [rowFrom, rowTo) and columns [colFrom, colTo); End as an
// upper bound means the full extent.
func (m *Dense) Block(rowFrom, colFrom, rowTo, colTo int) (*Dense, error) {
	if rowTo == End {
		rowTo = m.r
	}
	if colTo == End {
		colTo = m.c
	}
	if rowFrom < 0 || colFrom < 0 || rowTo > m.r || colTo > m.c || rowFrom > rowTo || colFrom > colTo {
		return nil, fmt.Errorf("%s: [%d:%d, %d:%d] of %dx%d: %w", opBlock, rowFrom, rowTo, colFrom, colTo, m.r, m.c, ErrOutOfRange)
	}
	out := newDense(rowTo-rowFrom, colTo-colFrom)
	for i := rowFrom; i < rowTo; i++ {
		copy(out.data[(i-rowFrom)*out.c:(i-rowFrom+1)*out.c], m.data[i*m.c+colFrom:i*m.c+colTo])
	}
	return out, nil
}

// Sample draws n distinct rows (AxisRow) or columns (AxisCol) uniformly at
// random and returns them together with their source indices.
// Errors:
//   - ErrInvalidArgument when n exceeds the extent or is negative.
func (m *Dense) Sample(n int, axis Axis, opts ...Option) (*Dense, []int, error) {
	var extent int
	switch axis {
	case AxisRow:
		extent = m.r
	case AxisCol:
		extent = m.c
	default:
		return nil, nil, matrixErrorf(opSample, ErrInvalidAxis)
	}
	if n < 0 || n > extent {
		return nil, nil, fmt.Errorf("%s: n=%d of %d: %w", opSample, n, extent, ErrInvalidArgument)
	}
	perm := NewOptions(opts...).Rand().Perm(extent)[:n]
	var (
		out *Dense
		err error
	)
	if axis == AxisRow {
		out, err = m.SelectRows(perm...)
	} else {
		out, err = m.SelectCols(perm...)
	}
	if err != nil {
		return nil, nil, err
	}
	return out, perm, nil
}

// Diagonal returns the main diagonal as a slice of length min(rows, cols).
func (m *Dense) Diagonal() []float64 {
	n := min(m.r, m.c)
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		d[i] = m.data[i*m.c+i]
	}
	return d
}
