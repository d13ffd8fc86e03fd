// SPDX-License-Identifier: MIT

package ops

import (
	"math"

	"github.com/katalvlaran/lvla/matrix"
)

const (
	opTridiag            = "Tridiag"
	opTridiagHouseholder = "TridiagHouseholder"
	opTridiagLanczos     = "TridiagLanczos"
)

// Tridiag reduces a symmetric matrix to a similar symmetric tridiagonal one.
// It is TridiagHouseholder under the default name.
func Tridiag(a matrix.Matrix, opts ...matrix.Option) (*matrix.Dense, error) {
	T, _, err := tridiagHouseholder(opTridiag, a, opts)
	return T, err
}

// TridiagHouseholder reduces symmetric A to T = Qᵀ·A·Q with n-2 Householder
// similarity transforms.
//
// Errors:
//   - ErrNonSquare, ErrAsymmetry.
//
// Complexity: O(n³).
func TridiagHouseholder(a matrix.Matrix, opts ...matrix.Option) (*matrix.Dense, error) {
	T, _, err := tridiagHouseholder(opTridiagHouseholder, a, opts)
	return T, err
}

// tridiagHouseholder returns T and the accumulated orthogonal Q (A = Q·T·Qᵀ).
func tridiagHouseholder(tag string, a matrix.Matrix, opts []matrix.Option) (*matrix.Dense, *matrix.Dense, error) {
	A, err := dense(tag, a)
	if err != nil {
		return nil, nil, err
	}
	A, n, err := symmetricDense(tag, A, symmetryTol(A, matrix.NewOptions(opts...).Epsilon()))
	if err != nil {
		return nil, nil, err
	}
	T, Q := householderSimilarity(A)
	t := T.Data()
	// Clean up: exact zeros outside the band and exact symmetry inside it.
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			switch {
			case j > i+1 || i > j+1:
				t[i*n+j] = 0
			case j == i+1:
				m := (t[i*n+j] + t[j*n+i]) / 2
				t[i*n+j], t[j*n+i] = m, m
			}
		}
	}
	return T, Q, nil
}

// householderSimilarity reduces square A to upper Hessenberg form with
// Householder similarity transforms; for symmetric A the result is
// tridiagonal. Returns H and Q with A = Q·H·Qᵀ.
func householderSimilarity(A *matrix.Dense) (*matrix.Dense, *matrix.Dense) {
	n := A.Rows()
	H := A.Copy()
	Q := eye(n)
	h, q := H.Data(), Q.Data()
	x := make([]float64, n)
	for k := 0; k < n-2; k++ {
		x = x[:n-k-1]
		for i := k + 1; i < n; i++ {
			x[i-k-1] = h[i*n+k]
		}
		var tail float64
		for _, e := range x[1:] {
			tail = math.Max(tail, math.Abs(e))
		}
		if tail == 0 {
			continue
		}
		v, _, ok := householder(x)
		if !ok {
			continue
		}
		reflectLeft(h, n, k+1, 0, v)
		reflectRight(h, n, n, k+1, v)
		reflectRight(q, n, n, k+1, v)
		for i := k + 2; i < n; i++ {
			h[i*n+k] = 0
		}
	}
	return H, Q
}

// TridiagLanczos reduces symmetric A to tridiagonal T = Qᵀ·A·Q with the
// Lanczos recurrence and full re-orthogonalization. The Krylov sequence
// starts from e₁; on breakdown it restarts from the unit vector least
// represented in the current basis, leaving a zero off-diagonal.
func TridiagLanczos(a matrix.Matrix, opts ...matrix.Option) (*matrix.Dense, error) {
	A, err := dense(opTridiagLanczos, a)
	if err != nil {
		return nil, err
	}
	A, n, err := symmetricDense(opTridiagLanczos, A, symmetryTol(A, matrix.NewOptions(opts...).Epsilon()))
	if err != nil {
		return nil, err
	}
	T := zeros(n, n)
	if n == 0 {
		return T, nil
	}
	t := T.Data()
	krylov(A, func(j int, coef []float64, next float64) {
		t[j*n+j] = coef[j]
		if j+1 < n {
			t[(j+1)*n+j] = next
			t[j*n+j+1] = next
		}
	})
	return T, nil
}

// krylov builds an orthonormal basis q₀..q_{n-1} of Rⁿ by Arnoldi steps on A
// (two Gram-Schmidt passes each). For every step j it calls emit with the
// projection coefficients of A·q_j on q₀..q_j and the norm of the residual
// (0 after a breakdown restart).
func krylov(A *matrix.Dense, emit func(j int, coef []float64, next float64)) [][]float64 {
	n := A.Rows()
	a := A.Data()
	tiny := 1e-12 * maxAbs(a)

	basis := make([][]float64, 0, n)
	q0 := make([]float64, n)
	q0[0] = 1
	basis = append(basis, q0)
	coef := make([]float64, n)
	for j := 0; j < n; j++ {
		qj := basis[j]
		w := make([]float64, n)
		for r := 0; r < n; r++ {
			w[r] = dot(a[r*n:(r+1)*n], qj)
		}
		for i := range coef {
			coef[i] = 0
		}
		for pass := 0; pass < 2; pass++ {
			for i := 0; i <= j; i++ {
				c := dot(basis[i], w)
				coef[i] += c
				for r := range w {
					w[r] -= c * basis[i][r]
				}
			}
		}
		if j == n-1 {
			emit(j, coef, 0)
			break
		}
		next := normalize(w)
		if next <= tiny {
			next = 0
			w = restartVector(basis, n)
		}
		emit(j, coef, next)
		basis = append(basis, w)
	}
	return basis
}

// restartVector returns a unit vector orthogonal to basis, built from the
// standard unit vector with the largest residual.
func restartVector(basis [][]float64, n int) []float64 {
	var best []float64
	bestNorm := -1.0
	for e := 0; e < n; e++ {
		v := make([]float64, n)
		v[e] = 1
		for pass := 0; pass < 2; pass++ {
			for _, b := range basis {
				c := dot(b, v)
				for r := range v {
					v[r] -= c * b[r]
				}
			}
		}
		if nrm := norm2(v); nrm > bestNorm {
			best, bestNorm = v, nrm
		}
	}
	normalize(best)
	return best
}
