// SPDX-License-Identifier: MIT
// Package matrix - universal products and scalar summaries.
//
// Purpose:
//   - Dot (A·B), TDot (Aᵀ·B), Gram (Aᵀ·A), Kron (A⊗B), Cov (column covariance),
//     Convolute (2-D correlation with a centered kernel), Trace, Norm.
//
// Determinism & Performance:
//   - Products use the i-k-j loop order with a row axpy (floats.AddScaled), so
//     B is streamed row by row; zero entries of the left operand are skipped.
//
// AI-Hints:
//   - Gram and Cov produce exactly symmetric output (upper triangle mirrored).

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	opDot       = "Dot"
	opTDot      = "TDot"
	opKron      = "Kron"
	opCov       = "Cov"
	opConvolute = "Convolute"
	opNorm      = "Norm"
)

// Dot returns the matrix product m·b.
// Errors:
//   - ErrDimensionMismatch when m.Cols() != b.Rows().
func (m *Dense) Dot(b *Dense) (*Dense, error) {
	if b == nil {
		return nil, matrixErrorf(opDot, ErrNilMatrix)
	}
	if m.c != b.r {
		return nil, shapeErrorf(opDot, m.r, m.c, b.r, b.c, ErrDimensionMismatch)
	}
	return mulDense(m, b), nil
}

// mulDense is the unchecked i-k-j product kernel.
func mulDense(a, b *Dense) *Dense {
	out := newDense(a.r, b.c)
	var i, k int
	var aik float64
	for i = 0; i < a.r; i++ {
		orow := out.data[i*b.c : (i+1)*b.c]
		for k = 0; k < a.c; k++ {
			aik = a.data[i*a.c+k]
			if aik == 0 {
				continue
			}
			floats.AddScaled(orow, aik, b.data[k*b.c:(k+1)*b.c])
		}
	}
	return out
}

// Mul returns a·b for any Matrix implementations.
func Mul(a, b Matrix) (*Dense, error) {
	da, err := ToDense(a)
	if err != nil {
		return nil, matrixErrorf(opDot, err)
	}
	db, err := ToDense(b)
	if err != nil {
		return nil, matrixErrorf(opDot, err)
	}
	return da.Dot(db)
}

// TDot returns mᵀ·b without materializing the transpose.
// Errors:
//   - ErrDimensionMismatch when m.Rows() != b.Rows().
func (m *Dense) TDot(b *Dense) (*Dense, error) {
	if b == nil {
		return nil, matrixErrorf(opTDot, ErrNilMatrix)
	}
	if m.r != b.r {
		return nil, shapeErrorf(opTDot, m.r, m.c, b.r, b.c, ErrDimensionMismatch)
	}
	out := newDense(m.c, b.c)
	var i, k int
	var aki float64
	for k = 0; k < m.r; k++ {
		brow := b.data[k*b.c : (k+1)*b.c]
		for i = 0; i < m.c; i++ {
			aki = m.data[k*m.c+i]
			if aki == 0 {
				continue
			}
			floats.AddScaled(out.data[i*b.c:(i+1)*b.c], aki, brow)
		}
	}
	return out, nil
}

// Gram returns the Gram matrix mᵀ·m (symmetric positive semi-definite).
func (m *Dense) Gram() *Dense {
	n := m.c
	out := newDense(n, n)
	var i, j, k int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			var s float64
			for k = 0; k < m.r; k++ {
				s += m.data[k*n+i] * m.data[k*n+j]
			}
			out.data[i*n+j] = s
			out.data[j*n+i] = s
		}
	}
	return out
}

// Kron returns the Kronecker product m ⊗ b.
func (m *Dense) Kron(b *Dense) (*Dense, error) {
	if b == nil {
		return nil, matrixErrorf(opKron, ErrNilMatrix)
	}
	R, C := m.r*b.r, m.c*b.c
	out := newDense(R, C)
	var i, j, p int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			a := m.data[i*m.c+j]
			for p = 0; p < b.r; p++ {
				dst := out.data[(i*b.r+p)*C+j*b.c : (i*b.r+p)*C+(j+1)*b.c]
				floats.ScaleTo(dst, a, b.data[p*b.c:(p+1)*b.c])
			}
		}
	}
	return out, nil
}

// Cov returns the c×c covariance of the columns of m:
// (X - mean)ᵀ(X - mean) / (rows - ddof).
// Errors:
//   - ErrInvalidArgument when rows - ddof <= 0.
func (m *Dense) Cov(ddof int) (*Dense, error) {
	den := m.r - ddof
	if den <= 0 {
		return nil, fmt.Errorf("%s: rows=%d ddof=%d: %w", opCov, m.r, ddof, ErrInvalidArgument)
	}
	if m.c == 0 {
		return newDense(0, 0), nil
	}
	mu, err := m.MeanAxis(AxisRow)
	if err != nil {
		return nil, matrixErrorf(opCov, err)
	}
	centered, err := m.CopySub(mu)
	if err != nil {
		return nil, matrixErrorf(opCov, err)
	}
	return centered.Gram().DivScalar(float64(den)), nil
}

// Convolute correlates m in place with kernel centered on every cell. Cells of
// the kernel falling outside m are skipped; with normalize the sum is divided
// by the total weight of the kernel cells actually used.
func (m *Dense) Convolute(kernel *Dense, normalize bool) (*Dense, error) {
	if kernel == nil {
		return nil, matrixErrorf(opConvolute, ErrNilMatrix)
	}
	kr, kc := kernel.r, kernel.c
	or, oc := kr/2, kc/2
	out := make([]float64, len(m.data))
	var i, j, s, t int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			var v, w float64
			for s = max(0, i-or); s < min(m.r, i-or+kr); s++ {
				for t = max(0, j-oc); t < min(m.c, j-oc+kc); t++ {
					kv := kernel.data[(s-i+or)*kc+(t-j+oc)]
					v += m.data[s*m.c+t] * kv
					w += kv
				}
			}
			if normalize {
				v /= w
			}
			out[i*m.c+j] = v
		}
	}
	m.data = out
	return m, nil
}

// Trace returns the sum of the main diagonal.
func (m *Dense) Trace() float64 { return floats.Sum(m.Diagonal()) }

// Norm returns the entrywise norm selected by kind.
// Errors:
//   - ErrInvalidArgument for an unknown kind.
func (m *Dense) Norm(kind NormKind) (float64, error) {
	switch kind {
	case NormL1:
		return floats.Norm(m.data, 1), nil
	case NormFrobenius:
		return floats.Norm(m.data, 2), nil
	case NormInf:
		return floats.Norm(m.data, math.Inf(1)), nil
	}
	return 0, fmt.Errorf("%s: kind %d: %w", opNorm, kind, ErrInvalidArgument)
}
