// SPDX-License-Identifier: MIT

package ops

import (
	"math"

	"github.com/katalvlaran/lvla/matrix"
)

const (
	opRREF = "ReducedRowEchelonForm"
	opRank = "Rank"

	opRREFInPlace = "ReducedRowEchelonFormInPlace"
)

// ReducedRowEchelonForm returns the reduced row-echelon form of an m×n
// matrix computed by Gauss-Jordan elimination with partial pivoting. Entries
// with magnitude <= tol·max|A| count as zero, so rows that vanish end up at
// the bottom as exact zero rows. The input is left untouched; see
// ReducedRowEchelonFormInPlace for the mutating form.
func ReducedRowEchelonForm(a matrix.Matrix, tol float64) (*matrix.Dense, error) {
	A, err := dense(opRREF, a)
	if err != nil {
		return nil, err
	}
	R := A.Copy()
	rrefInPlace(R, tol)
	return R, nil
}

// ReducedRowEchelonFormInPlace overwrites a with its reduced row-echelon
// form and returns the number of pivots (the rank at tolerance tol).
func ReducedRowEchelonFormInPlace(a *matrix.Dense, tol float64) (int, error) {
	if err := matrix.ValidateNotNil(a); err != nil {
		return 0, opErrorf(opRREFInPlace, err)
	}
	return rrefInPlace(a, tol), nil
}

// Rank returns the number of pivots in the reduced row-echelon form of A
// with the given pivot tolerance.
func Rank(a matrix.Matrix, tol float64) (int, error) {
	A, err := dense(opRank, a)
	if err != nil {
		return 0, err
	}
	return rrefInPlace(A.Copy(), tol), nil
}

// rrefInPlace eliminates R in place and returns the pivot count.
func rrefInPlace(R *matrix.Dense, tol float64) int {
	m, n := R.Rows(), R.Cols()
	r := R.Data()
	floor := math.Abs(tol) * maxAbs(r)

	row := 0
	var i, j, p int
	for col := 0; col < n && row < m; col++ {
		p = row
		for i = row + 1; i < m; i++ {
			if math.Abs(r[i*n+col]) > math.Abs(r[p*n+col]) {
				p = i
			}
		}
		if math.Abs(r[p*n+col]) <= floor {
			for i = row; i < m; i++ {
				r[i*n+col] = 0
			}
			continue
		}
		if p != row {
			for j = 0; j < n; j++ {
				r[row*n+j], r[p*n+j] = r[p*n+j], r[row*n+j]
			}
		}
		inv := 1 / r[row*n+col]
		for j = col; j < n; j++ {
			r[row*n+j] *= inv
		}
		r[row*n+col] = 1
		for i = 0; i < m; i++ {
			f := r[i*n+col]
			if i == row || f == 0 {
				continue
			}
			for j = col; j < n; j++ {
				r[i*n+j] -= f * r[row*n+j]
			}
			r[i*n+col] = 0
		}
		row++
	}
	for i = row; i < m; i++ {
		for j = 0; j < n; j++ {
			r[i*n+j] = 0
		}
	}
	for j = range r {
		if math.Abs(r[j]) <= floor {
			r[j] = 0
		}
	}
	return row
}
