// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Statistical transforms over the rows/columns of a Dense built on the
//     broadcasting and reduction kernels: centering, row normalization and
//     Pearson correlation (Cov lives with the products).
//
// Determinism & Performance:
//   - Fixed i→j traversal; every transform returns a new matrix and leaves
//     the receiver untouched.
//   - Zero-size matrices (0×N or N×0) are valid and produce zero-size results.
//
// AI-Hints:
//   - The returned means/norms let callers undo a transform:
//     X == Xc + means (broadcast), X == Y * norms (per row).

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	opCenterColumns = "CenterColumns"
	opCenterRows    = "CenterRows"
	opNormalizeRows = "NormalizeRows"
	opCorrelation   = "Correlation"
)

// CenterColumns returns a copy with every column mean subtracted, plus the
// column means (len == Cols()).
// Implementation:
//   - Stage 1: column means via MeanAxis(AxisRow) (1×c row).
//   - Stage 2: broadcast-subtract the row over every row of a copy.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func (m *Dense) CenterColumns() (*Dense, []float64) {
	if m.r == 0 || m.c == 0 {
		return m.Copy(), make([]float64, m.c)
	}
	mu, _ := m.reduceLines(opCenterColumns, AxisRow, mean)
	out, _ := m.CopySub(mu)
	return out, mu.data
}

// CenterRows returns a copy with every row mean subtracted, plus the row means.
func (m *Dense) CenterRows() (*Dense, []float64) {
	if m.r == 0 || m.c == 0 {
		return m.Copy(), make([]float64, m.r)
	}
	mu, _ := m.reduceLines(opCenterRows, AxisCol, mean)
	out, _ := m.CopySub(mu)
	return out, mu.data
}

// NormalizeRows returns a copy whose rows have unit norm of the given kind
// (NormL1, NormFrobenius for L2, NormInf), plus the original row norms.
// Rows with zero norm are left unchanged.
// Errors:
//   - ErrInvalidArgument for an unknown kind.
func (m *Dense) NormalizeRows(kind NormKind) (*Dense, []float64, error) {
	var p float64
	switch kind {
	case NormL1:
		p = 1
	case NormFrobenius:
		p = 2
	case NormInf:
		p = math.Inf(1)
	default:
		return nil, nil, fmt.Errorf("%s: kind %d: %w", opNormalizeRows, kind, ErrInvalidArgument)
	}
	out := m.Copy()
	norms := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		row := out.data[i*m.c : (i+1)*m.c]
		norms[i] = floats.Norm(row, p)
		if norms[i] > 0 {
			floats.Scale(1/norms[i], row)
		}
	}
	return out, norms, nil
}

// Correlation returns the c×c Pearson correlation of the columns.
// Implementation:
//   - Stage 1: center the columns.
//   - Stage 2: scale every centered column to unit L2 norm; constant
//     columns have zero norm and stay zero.
//   - Stage 3: Corr = ZᵀZ (Gram), diagonal forced to exactly 1 for
//     non-constant columns.
//
// Errors:
//   - ErrInvalidArgument for fewer than two rows.
func (m *Dense) Correlation() (*Dense, error) {
	if m.r < 2 {
		return nil, fmt.Errorf("%s: rows=%d: %w", opCorrelation, m.r, ErrInvalidArgument)
	}
	z, _ := m.CenterColumns()
	norms := make([]float64, m.c)
	col := make([]float64, m.r)
	var i, j int
	for j = 0; j < m.c; j++ {
		for i = 0; i < m.r; i++ {
			col[i] = z.data[i*m.c+j]
		}
		norms[j] = floats.Norm(col, 2)
	}
	z.MapIndexed(func(x float64, _, j int) float64 {
		if norms[j] == 0 {
			return 0
		}
		return x / norms[j]
	})
	corr := z.Gram()
	for j = 0; j < m.c; j++ {
		if norms[j] != 0 {
			corr.data[j*m.c+j] = 1
		}
	}
	return corr, nil
}
