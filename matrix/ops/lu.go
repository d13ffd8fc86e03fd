// SPDX-License-Identifier: MIT

package ops

import (
	"math"

	"github.com/katalvlaran/lvla/matrix"
)

const opLU = "LU"

// LU performs Doolittle LU decomposition of a square matrix without pivoting.
// It returns L (unit lower triangular) and U (upper triangular) with L·U == A.
//
// Stage 1 (Validate): square input.
// Stage 2 (Execute): row i of U, then column i of L, for i = 0..n-1.
//
// Errors:
//   - ErrNonSquare for non-square input.
//   - ErrSingular when a zero pivot U[i][i] is met before the last row.
//
// Complexity: O(n³) time, O(n²) memory.
func LU(a matrix.Matrix) (*matrix.Dense, *matrix.Dense, error) {
	// Stage 1: Validate input is square
	A, n, err := squareDense(opLU, a)
	if err != nil {
		return nil, nil, err
	}
	// Stage 2: Prepare L and U
	L, U := eye(n), zeros(n, n)
	src, l, u := A.Data(), L.Data(), U.Data()

	// Stage 3: Execute decomposition
	var (
		i, j, k int
		sum     float64
	)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			sum = 0
			for k = 0; k < i; k++ {
				sum += l[i*n+k] * u[k*n+j]
			}
			u[i*n+j] = src[i*n+j] - sum
		}
		if i < n-1 && u[i*n+i] == 0 {
			return nil, nil, opErrorf(opLU, matrix.ErrSingular)
		}
		for j = i + 1; j < n; j++ {
			sum = 0
			for k = 0; k < i; k++ {
				sum += l[j*n+k] * u[k*n+i]
			}
			l[j*n+i] = (src[j*n+i] - sum) / u[i*n+i]
		}
	}
	return L, U, nil
}

// plu is an LU factorization with partial (row) pivoting, P·A = L·U, stored
// compactly: the strict lower part of lu holds L, the upper part holds U.
type plu struct {
	n        int
	lu       []float64
	piv      []int // row piv[i] of A is row i of P·A
	sign     float64
	singular bool
}

// factorPLU factors a square matrix with partial pivoting. Pivots with
// magnitude <= tol·scale mark the factorization singular.
func factorPLU(A *matrix.Dense, tol float64) plu {
	n := A.Rows()
	f := plu{n: n, lu: append([]float64(nil), A.Data()...), piv: make([]int, n), sign: 1}
	for i := range f.piv {
		f.piv[i] = i
	}
	var scale float64
	for _, v := range f.lu {
		scale = math.Max(scale, math.Abs(v))
	}
	a := f.lu
	var i, j, k, p int
	for k = 0; k < n; k++ {
		p = k
		for i = k + 1; i < n; i++ {
			if math.Abs(a[i*n+k]) > math.Abs(a[p*n+k]) {
				p = i
			}
		}
		if p != k {
			for j = 0; j < n; j++ {
				a[k*n+j], a[p*n+j] = a[p*n+j], a[k*n+j]
			}
			f.piv[k], f.piv[p] = f.piv[p], f.piv[k]
			f.sign = -f.sign
		}
		pivot := a[k*n+k]
		if math.Abs(pivot) <= tol*scale || pivot == 0 {
			f.singular = true
			continue
		}
		for i = k + 1; i < n; i++ {
			a[i*n+k] /= pivot
			m := a[i*n+k]
			if m == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				a[i*n+j] -= m * a[k*n+j]
			}
		}
	}
	return f
}

// det returns the determinant (sign-adjusted product of U's diagonal).
func (f plu) det() float64 {
	d := f.sign
	for i := 0; i < f.n; i++ {
		d *= f.lu[i*f.n+i]
	}
	return d
}

// solveVec solves A·x = b in place of a copy of b.
func (f plu) solveVec(b []float64) []float64 {
	n, a := f.n, f.lu
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = b[f.piv[i]]
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < i; j++ {
			x[i] -= a[i*n+j] * x[j]
		}
	}
	for i = n - 1; i >= 0; i-- {
		for j = i + 1; j < n; j++ {
			x[i] -= a[i*n+j] * x[j]
		}
		x[i] /= a[i*n+i]
	}
	return x
}

// solve solves A·X = B column by column.
func (f plu) solve(B *matrix.Dense) *matrix.Dense {
	r, c := B.Rows(), B.Cols()
	X := zeros(r, c)
	b, x := B.Data(), X.Data()
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			col[i] = b[i*c+j]
		}
		sol := f.solveVec(col)
		for i := 0; i < r; i++ {
			x[i*c+j] = sol[i]
		}
	}
	return X
}
