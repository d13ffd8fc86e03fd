// SPDX-License-Identifier: MIT

package ops

import (
	"math"

	"github.com/katalvlaran/lvla/matrix"
)

const (
	opCholesky             = "Cholesky"
	opCholeskyBanachiewicz = "CholeskyBanachiewicz"
	opCholeskyLDL          = "CholeskyLDL"
)

// cholSetup validates symmetric input and returns it with the pivot floor
// below which a negative pivot is treated as rounding noise.
func cholSetup(tag string, a matrix.Matrix, opts []matrix.Option) (*matrix.Dense, int, float64, error) {
	o := matrix.NewOptions(opts...)
	A, err := dense(tag, a)
	if err != nil {
		return nil, 0, 0, err
	}
	A, n, err := symmetricDense(tag, A, symmetryTol(A, o.Epsilon()))
	if err != nil {
		return nil, 0, 0, err
	}
	return A, n, o.Epsilon() * maxAbs(A.Diagonal()), nil
}

// pivotSqrt returns √s, clamping tiny negative pivots to 0.
func pivotSqrt(tag string, s, floor float64) (float64, error) {
	if s < 0 {
		if s < -floor {
			return 0, opErrorf(tag, matrix.ErrNotPositiveDefinite)
		}
		return 0, nil
	}
	return math.Sqrt(s), nil
}

// Cholesky returns the lower-triangular L with L·Lᵀ == A, computed column by
// column (Cholesky-Crout).
//
// Stage 1 (Validate): A symmetric within WithEpsilon (scaled by max|A|).
// Stage 2 (Execute): for each column j, the pivot L[j][j] then L[i][j], i > j.
//
// Errors:
//   - ErrNonSquare, ErrAsymmetry for structural violations.
//   - ErrNotPositiveDefinite for a clearly negative pivot.
//
// Semi-definite input is accepted: a zero pivot leaves its column zero.
func Cholesky(a matrix.Matrix, opts ...matrix.Option) (*matrix.Dense, error) {
	// Stage 1: Validate
	A, n, floor, err := cholSetup(opCholesky, a, opts)
	if err != nil {
		return nil, err
	}
	// Stage 2: Execute column sweep
	L := zeros(n, n)
	src, l := A.Data(), L.Data()
	var (
		i, j, k int
		s, d    float64
	)
	for j = 0; j < n; j++ {
		s = src[j*n+j]
		for k = 0; k < j; k++ {
			s -= l[j*n+k] * l[j*n+k]
		}
		if d, err = pivotSqrt(opCholesky, s, floor); err != nil {
			return nil, err
		}
		l[j*n+j] = d
		if d == 0 {
			continue
		}
		for i = j + 1; i < n; i++ {
			s = src[i*n+j]
			for k = 0; k < j; k++ {
				s -= l[i*n+k] * l[j*n+k]
			}
			l[i*n+j] = s / d
		}
	}
	return L, nil
}

// CholeskyBanachiewicz returns the same factor as Cholesky but fills L row by
// row, each entry needing only rows already computed.
func CholeskyBanachiewicz(a matrix.Matrix, opts ...matrix.Option) (*matrix.Dense, error) {
	A, n, floor, err := cholSetup(opCholeskyBanachiewicz, a, opts)
	if err != nil {
		return nil, err
	}
	L := zeros(n, n)
	src, l := A.Data(), L.Data()
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j <= i; j++ {
			s := src[i*n+j] - dot(l[i*n:i*n+j], l[j*n:j*n+j])
			if i == j {
				if l[i*n+i], err = pivotSqrt(opCholeskyBanachiewicz, s, floor); err != nil {
					return nil, err
				}
				continue
			}
			if d := l[j*n+j]; d != 0 {
				l[i*n+j] = s / d
			}
		}
	}
	return L, nil
}

// CholeskyLDL returns unit lower-triangular L and the diagonal d with
// L·diag(d)·Lᵀ == A. No square roots are taken, so indefinite symmetric
// input factors as long as no pivot vanishes.
//
// Errors:
//   - ErrSingular when a zero pivot meets a non-zero entry below it.
func CholeskyLDL(a matrix.Matrix, opts ...matrix.Option) (*matrix.Dense, []float64, error) {
	A, n, _, err := cholSetup(opCholeskyLDL, a, opts)
	if err != nil {
		return nil, nil, err
	}
	L := eye(n)
	d := make([]float64, n)
	src, l := A.Data(), L.Data()
	var i, j, k int
	for j = 0; j < n; j++ {
		s := src[j*n+j]
		for k = 0; k < j; k++ {
			s -= l[j*n+k] * l[j*n+k] * d[k]
		}
		d[j] = s
		for i = j + 1; i < n; i++ {
			t := src[i*n+j]
			for k = 0; k < j; k++ {
				t -= l[i*n+k] * l[j*n+k] * d[k]
			}
			if s == 0 {
				if t != 0 {
					return nil, nil, opErrorf(opCholeskyLDL, matrix.ErrSingular)
				}
				continue
			}
			l[i*n+j] = t / s
		}
	}
	return L, d, nil
}
