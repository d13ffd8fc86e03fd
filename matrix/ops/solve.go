// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"

	"github.com/katalvlaran/lvla/matrix"
)

const (
	opSolve      = "Solve"
	opSolveLower = "SolveLowerTriangular"
	opSolveUpper = "SolveUpperTriangular"
)

// Solve returns X with A·X == B.
//
//   - Square A: pivoted LU solve.
//   - Wide A (rows < cols): the minimum-norm solution X = Aᵀ·(A·Aᵀ)⁻¹·B.
//
// Errors:
//   - ErrOverdetermined when A has more rows than columns.
//   - ErrDimensionMismatch when B.Rows() != A.Rows().
//   - ErrSingular when A (or A·Aᵀ) is singular.
func Solve(a, b matrix.Matrix) (*matrix.Dense, error) {
	// Stage 1: Validate shapes
	A, err := dense(opSolve, a)
	if err != nil {
		return nil, err
	}
	B, err := dense(opSolve, b)
	if err != nil {
		return nil, err
	}
	m, n := A.Rows(), A.Cols()
	if m > n {
		return nil, fmt.Errorf("%s: %dx%d: %w", opSolve, m, n, matrix.ErrOverdetermined)
	}
	if B.Rows() != m {
		return nil, fmt.Errorf("%s: %dx%d vs %dx%d: %w", opSolve, m, n, B.Rows(), B.Cols(), matrix.ErrDimensionMismatch)
	}

	// Stage 2: Execute
	if m == n {
		f := factorPLU(A, 0)
		if f.singular {
			return nil, opErrorf(opSolve, matrix.ErrSingular)
		}
		return f.solve(B), nil
	}
	At := A.Transpose()
	f := factorPLU(mul(A, At), 0)
	if f.singular {
		return nil, opErrorf(opSolve, matrix.ErrSingular)
	}
	return mul(At, f.solve(B)), nil
}

// triangularSetup validates a square A and B with matching rows.
func triangularSetup(tag string, a, b matrix.Matrix) (*matrix.Dense, *matrix.Dense, int, error) {
	A, n, err := squareDense(tag, a)
	if err != nil {
		return nil, nil, 0, err
	}
	B, err := dense(tag, b)
	if err != nil {
		return nil, nil, 0, err
	}
	if B.Rows() != n {
		return nil, nil, 0, fmt.Errorf("%s: %dx%d vs %dx%d: %w", tag, n, n, B.Rows(), B.Cols(), matrix.ErrDimensionMismatch)
	}
	return A, B, n, nil
}

// SolveLowerTriangular solves A·X == B by forward substitution. Only the
// lower triangle (diagonal included) of A is read.
//
// Errors:
//   - ErrNonSquare, ErrDimensionMismatch.
//   - ErrSingular for a zero on the diagonal.
func SolveLowerTriangular(a, b matrix.Matrix) (*matrix.Dense, error) {
	A, B, n, err := triangularSetup(opSolveLower, a, b)
	if err != nil {
		return nil, err
	}
	c := B.Cols()
	X := B.Copy()
	l, x := A.Data(), X.Data()
	var i, j, k int
	for i = 0; i < n; i++ {
		p := l[i*n+i]
		if p == 0 {
			return nil, opErrorf(opSolveLower, matrix.ErrSingular)
		}
		for k = 0; k < i; k++ {
			if lik := l[i*n+k]; lik != 0 {
				for j = 0; j < c; j++ {
					x[i*c+j] -= lik * x[k*c+j]
				}
			}
		}
		for j = 0; j < c; j++ {
			x[i*c+j] /= p
		}
	}
	return X, nil
}

// SolveUpperTriangular solves A·X == B by back substitution. Only the upper
// triangle (diagonal included) of A is read.
//
// Errors:
//   - ErrNonSquare, ErrDimensionMismatch.
//   - ErrSingular for a zero on the diagonal.
func SolveUpperTriangular(a, b matrix.Matrix) (*matrix.Dense, error) {
	A, B, n, err := triangularSetup(opSolveUpper, a, b)
	if err != nil {
		return nil, err
	}
	c := B.Cols()
	X := B.Copy()
	u, x := A.Data(), X.Data()
	var i, j, k int
	for i = n - 1; i >= 0; i-- {
		p := u[i*n+i]
		if p == 0 {
			return nil, opErrorf(opSolveUpper, matrix.ErrSingular)
		}
		for k = i + 1; k < n; k++ {
			if uik := u[i*n+k]; uik != 0 {
				for j = 0; j < c; j++ {
					x[i*c+j] -= uik * x[k*c+j]
				}
			}
		}
		for j = 0; j < c; j++ {
			x[i*c+j] /= p
		}
	}
	return X, nil
}
