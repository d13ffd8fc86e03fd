// SPDX-License-Identifier: MIT

package ops

import (
	"math"

	"github.com/katalvlaran/lvla/matrix"
)

const (
	opInv             = "Inv"
	opInvLower        = "InvLowerTriangular"
	opInvUpper        = "InvUpperTriangular"
	opInvRowReduction = "InvRowReduction"
	opInvLU           = "InvLU"
)

// Inv returns the inverse of a square matrix, dispatching on structure:
// exactly lower or upper triangular input (every entry off the triangle is
// 0) is inverted by substitution, anything else by InvRowReduction.
//
// Errors:
//   - ErrNonSquare, ErrSingular.
func Inv(a matrix.Matrix, opts ...matrix.Option) (*matrix.Dense, error) {
	A, _, err := squareDense(opInv, a)
	if err != nil {
		return nil, err
	}
	exact := matrix.WithEpsilon(0)
	switch {
	case A.IsLowerTriangular(exact):
		return InvLowerTriangular(A)
	case A.IsUpperTriangular(exact):
		return InvUpperTriangular(A)
	}
	return InvRowReduction(A, opts...)
}

// InvLowerTriangular inverts a lower-triangular matrix by forward
// substitution against I. The upper triangle is ignored.
func InvLowerTriangular(a matrix.Matrix) (*matrix.Dense, error) {
	_, n, err := squareDense(opInvLower, a)
	if err != nil {
		return nil, err
	}
	X, err := SolveLowerTriangular(a, eye(n))
	if err != nil {
		return nil, opErrorf(opInvLower, err)
	}
	return X, nil
}

// InvUpperTriangular inverts an upper-triangular matrix by back substitution
// against I. The lower triangle is ignored.
func InvUpperTriangular(a matrix.Matrix) (*matrix.Dense, error) {
	_, n, err := squareDense(opInvUpper, a)
	if err != nil {
		return nil, err
	}
	X, err := SolveUpperTriangular(a, eye(n))
	if err != nil {
		return nil, opErrorf(opInvUpper, err)
	}
	return X, nil
}

// InvRowReduction inverts a square matrix by Gauss-Jordan elimination on
// [A | I] with partial row pivoting.
//
// Stage 1 (Prepare): W ← copy(A), X ← I.
// Stage 2 (Execute): per column pick the largest pivot, swap, scale, and
// eliminate the column from every other row.
//
// Errors:
//   - ErrSingular when the best pivot is within WithTolerance·max|A| of 0.
//
// Complexity: O(n³).
func InvRowReduction(a matrix.Matrix, opts ...matrix.Option) (*matrix.Dense, error) {
	// Stage 1: Prepare
	A, n, err := squareDense(opInvRowReduction, a)
	if err != nil {
		return nil, err
	}
	W, X := A.Copy(), eye(n)
	w, x := W.Data(), X.Data()
	var scale float64
	for _, v := range w {
		scale = math.Max(scale, math.Abs(v))
	}
	floor := matrix.NewOptions(opts...).Tolerance() * scale

	// Stage 2: Execute elimination
	var i, j, k, p int
	for k = 0; k < n; k++ {
		p = k
		for i = k + 1; i < n; i++ {
			if math.Abs(w[i*n+k]) > math.Abs(w[p*n+k]) {
				p = i
			}
		}
		if math.Abs(w[p*n+k]) <= floor || w[p*n+k] == 0 {
			return nil, opErrorf(opInvRowReduction, matrix.ErrSingular)
		}
		if p != k {
			for j = 0; j < n; j++ {
				w[k*n+j], w[p*n+j] = w[p*n+j], w[k*n+j]
				x[k*n+j], x[p*n+j] = x[p*n+j], x[k*n+j]
			}
		}
		inv := 1 / w[k*n+k]
		for j = 0; j < n; j++ {
			w[k*n+j] *= inv
			x[k*n+j] *= inv
		}
		for i = 0; i < n; i++ {
			f := w[i*n+k]
			if i == k || f == 0 {
				continue
			}
			for j = 0; j < n; j++ {
				w[i*n+j] -= f * w[k*n+j]
				x[i*n+j] -= f * x[k*n+j]
			}
		}
	}
	return X, nil
}

// InvLU inverts a square matrix as U⁻¹·L⁻¹ from the unpivoted LU
// decomposition.
//
// Errors:
//   - ErrSingular from LU or from a zero last pivot of U.
func InvLU(a matrix.Matrix) (*matrix.Dense, error) {
	L, U, err := LU(a)
	if err != nil {
		return nil, opErrorf(opInvLU, err)
	}
	Li, err := InvLowerTriangular(L)
	if err != nil {
		return nil, opErrorf(opInvLU, err)
	}
	Ui, err := InvUpperTriangular(U)
	if err != nil {
		return nil, opErrorf(opInvLU, err)
	}
	return mul(Ui, Li), nil
}
