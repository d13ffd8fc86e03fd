// SPDX-License-Identifier: MIT

package ops

import (
	"github.com/katalvlaran/lvla/matrix"
)

const (
	opHessenberg        = "Hessenberg"
	opHessenbergArnoldi = "HessenbergArnoldi"
)

// Hessenberg reduces a square matrix to upper Hessenberg form H = Qᵀ·A·Q
// (zero below the first subdiagonal) with Householder similarity transforms.
// The spectrum of A is preserved.
//
// Errors:
//   - ErrNonSquare.
//
// Complexity: O(n³).
func Hessenberg(a matrix.Matrix) (*matrix.Dense, error) {
	H, _, err := hessenberg(opHessenberg, a)
	return H, err
}

// hessenberg returns H and Q with A = Q·H·Qᵀ.
func hessenberg(tag string, a matrix.Matrix) (*matrix.Dense, *matrix.Dense, error) {
	A, _, err := squareDense(tag, a)
	if err != nil {
		return nil, nil, err
	}
	H, Q := householderSimilarity(A)
	return H, Q, nil
}

// HessenbergArnoldi reduces a square matrix to upper Hessenberg form with the
// Arnoldi process (Krylov basis from e₁, re-orthogonalized, restarted on
// breakdown). H[i][j] = q_iᵀ·A·q_j.
func HessenbergArnoldi(a matrix.Matrix) (*matrix.Dense, error) {
	A, n, err := squareDense(opHessenbergArnoldi, a)
	if err != nil {
		return nil, err
	}
	H := zeros(n, n)
	if n == 0 {
		return H, nil
	}
	h := H.Data()
	krylov(A, func(j int, coef []float64, next float64) {
		for i := 0; i <= j; i++ {
			h[i*n+j] = coef[i]
		}
		if j+1 < n {
			h[(j+1)*n+j] = next
		}
	})
	return H, nil
}
