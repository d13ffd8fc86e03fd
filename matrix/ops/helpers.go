// SPDX-License-Identifier: MIT

// Package ops is the decomposition and solver layer of lvla, built strictly on
// top of matrix.Dense: LU, QR, Cholesky, tridiagonal / Hessenberg / bidiagonal
// reductions, six eigenvalue algorithms, SVD, linear solvers, inverses,
// rank / determinant / reduced row-echelon form, and the spectral matrix
// functions Sqrt, Power, Exp and Log.
//
// Every algorithm family shares one result shape and is exposed as separate
// free functions so callers pick the numerical trade-off explicitly
// (QRHouseholder vs QRGramSchmidt, EigenJacobi vs EigenValuesQR, ...).
//
// Inputs are never modified: every function works on private copies.
package ops

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvla/matrix"
)

// opErrorf wraps a sentinel with an operation tag, like matrix does.
func opErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// dense converts a to *Dense (no copy for *Dense input).
func dense(tag string, a matrix.Matrix) (*matrix.Dense, error) {
	d, err := matrix.ToDense(a)
	if err != nil {
		return nil, opErrorf(tag, err)
	}
	return d, nil
}

// squareDense converts a and checks it is square.
func squareDense(tag string, a matrix.Matrix) (*matrix.Dense, int, error) {
	d, err := dense(tag, a)
	if err != nil {
		return nil, 0, err
	}
	if err = matrix.ValidateSquare(d); err != nil {
		return nil, 0, fmt.Errorf("%s: %dx%d: %w", tag, d.Rows(), d.Cols(), err)
	}
	return d, d.Rows(), nil
}

// symmetricDense converts a and checks it is symmetric within eps.
func symmetricDense(tag string, a matrix.Matrix, eps float64) (*matrix.Dense, int, error) {
	d, n, err := squareDense(tag, a)
	if err != nil {
		return nil, 0, err
	}
	if err = matrix.ValidateSymmetric(d, eps); err != nil {
		return nil, 0, opErrorf(tag, err)
	}
	return d, n, nil
}

// symmetryTol scales the predicate epsilon with the magnitude of a, so the
// symmetry gate means the same thing for 1e-10·A, A and 1e10·A. An all-zero
// (or non-finite) a gets 0: only exact equality passes.
func symmetryTol(a *matrix.Dense, eps float64) float64 {
	tol := eps * maxAbs(a.Data())
	if math.IsInf(tol, 0) || math.IsNaN(tol) {
		return 0
	}
	return tol
}

// maxAbs returns the largest magnitude in v, skipping NaN.
func maxAbs(v []float64) float64 {
	var mx float64
	for _, x := range v {
		if ax := math.Abs(x); ax > mx {
			mx = ax
		}
	}
	return mx
}

// zeros allocates an r×c zero matrix (r, c >= 0 by construction).
func zeros(r, c int) *matrix.Dense {
	d, _ := matrix.New(r, c)
	return d
}

// eye allocates the n×n identity.
func eye(n int) *matrix.Dense {
	d := zeros(n, n)
	a := d.Data()
	for i := 0; i < n; i++ {
		a[i*n+i] = 1
	}
	return d
}

// fromData adopts a row-major slice of length r*c.
func fromData(r, c int, data []float64) *matrix.Dense {
	d, _ := matrix.NewFromSlice(r, c, data)
	return d
}

// mul returns a·b (shapes compatible by construction).
func mul(a, b *matrix.Dense) *matrix.Dense {
	out, _ := a.Dot(b)
	return out
}

// hypot-based Givens rotation: returns c, s, r with [c s; -s c]·[f g]ᵀ = [r 0]ᵀ.
func givens(f, g float64) (c, s, r float64) {
	if g == 0 {
		return 1, 0, f
	}
	if f == 0 {
		return 0, 1, g
	}
	r = math.Hypot(f, g)
	return f / r, g / r, r
}

// householder computes a unit vector v such that (I - 2vvᵀ)x = alpha·e1 with
// alpha = -sign(x0)·‖x‖. ok is false when x is already zero below its head.
func householder(x []float64) (v []float64, alpha float64, ok bool) {
	var norm float64
	for _, e := range x {
		norm = math.Hypot(norm, e)
	}
	if norm == 0 {
		return nil, 0, false
	}
	alpha = -math.Copysign(norm, x[0])
	v = append([]float64(nil), x...)
	v[0] -= alpha
	var vn float64
	for _, e := range v {
		vn = math.Hypot(vn, e)
	}
	if vn == 0 {
		return nil, alpha, false
	}
	for i := range v {
		v[i] /= vn
	}
	return v, alpha, true
}

// reflectLeft applies (I - 2vvᵀ) to rows r0..r0+len(v)-1 of a (r×c, row-major),
// columns c0..c-1.
func reflectLeft(a []float64, c, r0, c0 int, v []float64) {
	for j := c0; j < c; j++ {
		var s float64
		for k, vk := range v {
			s += vk * a[(r0+k)*c+j]
		}
		if s == 0 {
			continue
		}
		s *= 2
		for k, vk := range v {
			a[(r0+k)*c+j] -= s * vk
		}
	}
}

// reflectRight applies (I - 2vvᵀ) from the right to columns c0..c0+len(v)-1
// of rows 0..rows-1 of a (row-major with c columns).
func reflectRight(a []float64, rows, c, c0 int, v []float64) {
	for i := 0; i < rows; i++ {
		row := a[i*c+c0 : i*c+c0+len(v)]
		var s float64
		for k, vk := range v {
			s += row[k] * vk
		}
		if s == 0 {
			continue
		}
		s *= 2
		for k, vk := range v {
			row[k] -= s * vk
		}
	}
}

// normalize scales v to unit Euclidean norm and returns the original norm.
func normalize(v []float64) float64 {
	n := norm2(v)
	if n > 0 {
		for i := range v {
			v[i] /= n
		}
	}
	return n
}

func dot(a, b []float64) float64 { return floats.Dot(a, b) }

func norm2(v []float64) float64 { return floats.Norm(v, 2) }
