// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvla/matrix"
)

const (
	opSqrt  = "Sqrt"
	opPower = "Power"
	opExp   = "Exp"
	opLog   = "Log"
)

// Sqrt returns the principal square root S of a square matrix (S·S == A)
// by taking the square root of every eigenvalue.
//
// Errors:
//   - ErrNonSquare.
//   - ErrComplexEigen for complex eigenvalues.
//   - ErrEigenDomain for a negative eigenvalue.
func Sqrt(a matrix.Matrix, opts ...matrix.Option) (*matrix.Dense, error) {
	A, _, err := squareDense(opSqrt, a)
	if err != nil {
		return nil, err
	}
	return spectral(opSqrt, A, matrix.NewOptions(opts...), func(l, floor float64) (float64, error) {
		if l < 0 {
			if l < -floor {
				return 0, matrix.ErrEigenDomain
			}
			return 0, nil
		}
		return math.Sqrt(l), nil
	})
}

// Power returns A^p.
//
//   - p == 0: the identity.
//   - p == 1: a copy of A.
//   - integer p: binary exponentiation; negative p inverts A first.
//   - fractional p: eigenvalues raised to p (they must be real and, for a
//     non-integer exponent, non-negative; zero only for p > 0).
//
// Errors:
//   - ErrNonSquare, ErrSingular (negative p), ErrComplexEigen, ErrEigenDomain.
func Power(a matrix.Matrix, p float64, opts ...matrix.Option) (*matrix.Dense, error) {
	A, n, err := squareDense(opPower, a)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return nil, fmt.Errorf("%s: p=%v: %w", opPower, p, matrix.ErrInvalidArgument)
	}
	switch {
	case p == 0:
		return eye(n), nil
	case p == 1:
		return A.Copy(), nil
	case p == math.Trunc(p):
		base := A
		if p < 0 {
			if base, err = Inv(A, opts...); err != nil {
				return nil, opErrorf(opPower, err)
			}
		}
		return intPower(base, uint64(math.Abs(p))), nil
	}
	return spectral(opPower, A, matrix.NewOptions(opts...), func(l, floor float64) (float64, error) {
		if l < 0 {
			if l < -floor {
				return 0, matrix.ErrEigenDomain
			}
			l = 0
		}
		if l == 0 && p < 0 {
			return 0, matrix.ErrEigenDomain
		}
		return math.Pow(l, p), nil
	})
}

// intPower computes B^k by repeated squaring.
func intPower(B *matrix.Dense, k uint64) *matrix.Dense {
	result := eye(B.Rows())
	sq := B.Copy()
	for k > 0 {
		if k&1 == 1 {
			result = mul(result, sq)
		}
		k >>= 1
		if k > 0 {
			sq = mul(sq, sq)
		}
	}
	return result
}

// Exp returns the matrix exponential. Symmetric input goes through its
// eigen-decomposition; other input uses a Taylor series with scaling and
// squaring, which needs no real spectrum.
func Exp(a matrix.Matrix, opts ...matrix.Option) (*matrix.Dense, error) {
	A, n, err := squareDense(opExp, a)
	if err != nil {
		return nil, err
	}
	o := matrix.NewOptions(opts...)
	if A.IsSymmetric(matrix.WithEpsilon(symmetryTol(A, o.Epsilon()))) {
		return spectral(opExp, A, o, func(l, _ float64) (float64, error) { return math.Exp(l), nil })
	}

	// Scale so that ‖A/2^s‖₁ < 1/2.
	norm, _ := A.Norm(matrix.NormInf)
	norm *= float64(n)
	s := 0
	if norm > 0.5 {
		s = int(math.Ceil(math.Log2(norm/0.5)))
	}
	X := A.CopyDivScalar(math.Ldexp(1, s))
	sum, term := eye(n), eye(n)
	for k := 1; k <= 64; k++ {
		term = mul(term, X).DivScalar(float64(k))
		_, _ = sum.Add(term)
		if tn, _ := term.Norm(matrix.NormInf); tn <= machEps {
			break
		}
	}
	for ; s > 0; s-- {
		sum = mul(sum, sum)
	}
	return sum, nil
}

// Log returns the principal matrix logarithm via the eigen-decomposition.
//
// Errors:
//   - ErrNonSquare, ErrComplexEigen.
//   - ErrEigenDomain for a non-positive eigenvalue.
func Log(a matrix.Matrix, opts ...matrix.Option) (*matrix.Dense, error) {
	A, _, err := squareDense(opLog, a)
	if err != nil {
		return nil, err
	}
	return spectral(opLog, A, matrix.NewOptions(opts...), func(l, _ float64) (float64, error) {
		if l <= 0 {
			return 0, matrix.ErrEigenDomain
		}
		return math.Log(l), nil
	})
}

// spectral evaluates f on the spectrum of A: V·diag(f(λ))·V⁻¹ (Vᵀ for
// symmetric A). f receives each eigenvalue and the magnitude below which
// the value counts as rounding noise around zero.
func spectral(tag string, A *matrix.Dense, o matrix.Options, f func(l, floor float64) (float64, error)) (*matrix.Dense, error) {
	n := A.Rows()
	if n == 0 {
		return A.Copy(), nil
	}
	floor := math.Max(o.Epsilon(), machEps) * maxAbs(A.Data())

	apply := func(vals []float64) ([]float64, error) {
		out := make([]float64, len(vals))
		for i, l := range vals {
			v, err := f(l, floor)
			if err != nil {
				return nil, fmt.Errorf("%s: eigenvalue %g: %w", tag, l, err)
			}
			out[i] = v
		}
		return out, nil
	}

	if A.IsSymmetric(matrix.WithEpsilon(symmetryTol(A, o.Epsilon()))) {
		vals, V := symmetricEigen(tag, A, o, true)
		fv, err := apply(vals)
		if err != nil {
			return nil, err
		}
		VD := V.Copy()
		vd := VD.Data()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				vd[i*n+j] *= fv[j]
			}
		}
		R := mul(VD, V.Transpose())
		// Restore exact symmetry.
		r := R.Data()
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				m := (r[i*n+j] + r[j*n+i]) / 2
				r[i*n+j], r[j*n+i] = m, m
			}
		}
		return R, nil
	}

	wr, wi := generalEigenValues(tag, A, o)
	for _, im := range wi {
		if im != 0 {
			return nil, opErrorf(tag, matrix.ErrComplexEigen)
		}
	}
	fv, err := apply(wr)
	if err != nil {
		return nil, err
	}
	V := eigenVectorsByInverseIteration(A, wr, o)
	fac := factorPLU(V, 1e-10)
	if fac.singular {
		// Defective (non-diagonalizable) input.
		return nil, opErrorf(tag, matrix.ErrSingular)
	}
	VD := V.Copy()
	vd := VD.Data()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			vd[i*n+j] *= fv[j]
		}
	}
	// R = VD·V⁻¹  ⇔  Vᵀ·Rᵀ = VDᵀ.
	Rt := factorPLU(V.Transpose(), 0).solve(VD.Transpose())
	return Rt.Transpose(), nil
}
