// SPDX-License-Identifier: MIT

package ops

import (
	"github.com/katalvlaran/lvla/matrix"
)

const (
	opQR            = "QR"
	opQRHouseholder = "QRHouseholder"
	opQRGramSchmidt = "QRGramSchmidt"
)

// QR factors an m×n matrix as Q·R with the algorithm picked by WithQRMethod.
//
// QRAuto (the default) uses Gram-Schmidt for single-column input and
// Householder otherwise, so the result shapes follow the chosen algorithm:
//   - Householder:  Q m×m, R m×n.
//   - Gram-Schmidt: Q m×n, R n×n.
func QR(a matrix.Matrix, opts ...matrix.Option) (*matrix.Dense, *matrix.Dense, error) {
	A, err := dense(opQR, a)
	if err != nil {
		return nil, nil, err
	}
	switch matrix.NewOptions(opts...).QR() {
	case matrix.QRHouseholder:
		return QRHouseholder(A)
	case matrix.QRGramSchmidt:
		return QRGramSchmidt(A)
	}
	if A.Cols() == 1 {
		return QRGramSchmidt(A)
	}
	return QRHouseholder(A)
}

// QRHouseholder computes the full QR decomposition of an m×n matrix using
// Householder reflections.
//
// Stage 1 (Prepare): R ← copy(A), Q ← I(m).
// Stage 2 (Execute): for k < min(m-1, n) build the reflector zeroing
// R[k+1:m, k] and apply it to R from the left and to Q from the right.
//
// Returns Q (m×m, orthogonal) and R (m×n, zero below the diagonal).
// Complexity: O(m²n) time, O(m² + mn) memory.
func QRHouseholder(a matrix.Matrix) (*matrix.Dense, *matrix.Dense, error) {
	// Stage 1: Prepare working copies
	A, err := dense(opQRHouseholder, a)
	if err != nil {
		return nil, nil, err
	}
	m, n := A.Rows(), A.Cols()
	R := A.Copy()
	Q := eye(m)
	r, q := R.Data(), Q.Data()

	// Stage 2: Execute reflections
	x := make([]float64, m)
	for k := 0; k < min(m-1, n); k++ {
		x = x[:m-k]
		for i := k; i < m; i++ {
			x[i-k] = r[i*n+k]
		}
		v, _, ok := householder(x)
		if !ok {
			continue
		}
		reflectLeft(r, n, k, k, v)
		reflectRight(q, m, m, k, v)
		for i := k + 1; i < m; i++ {
			r[i*n+k] = 0
		}
	}
	return Q, R, nil
}

// QRGramSchmidt computes the thin QR decomposition of an m×n matrix by
// Gram-Schmidt orthogonalization with one re-orthogonalization pass (CGS2).
//
// Returns Q (m×n) with orthonormal columns and R (n×n, upper triangular).
// A column that is (numerically) dependent on the previous ones yields a
// zero column in Q and a zero diagonal entry in R, so Q·R == A still holds;
// this always happens for the trailing columns when m < n.
func QRGramSchmidt(a matrix.Matrix) (*matrix.Dense, *matrix.Dense, error) {
	A, err := dense(opQRGramSchmidt, a)
	if err != nil {
		return nil, nil, err
	}
	m, n := A.Rows(), A.Cols()
	Q, R := zeros(m, n), zeros(n, n)
	src, q, r := A.Data(), Q.Data(), R.Data()

	thresh := 1e-12 * maxAbs(src)

	v := make([]float64, m)
	qi := make([]float64, m)
	var i, j, k, pass int
	for j = 0; j < n; j++ {
		for k = 0; k < m; k++ {
			v[k] = src[k*n+j]
		}
		// Two classical passes: project out every previous q_i.
		for pass = 0; pass < 2; pass++ {
			for i = 0; i < j; i++ {
				for k = 0; k < m; k++ {
					qi[k] = q[k*n+i]
				}
				c := dot(qi, v)
				r[i*n+j] += c
				for k = 0; k < m; k++ {
					v[k] -= c * qi[k]
				}
			}
		}
		nrm := normalize(v)
		if nrm <= thresh {
			continue
		}
		r[j*n+j] = nrm
		for k = 0; k < m; k++ {
			q[k*n+j] = v[k]
		}
	}
	return Q, R, nil
}
