// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvla/matrix"
	"github.com/katalvlaran/lvla/matrix/ops"
)

// defaultRankTol is the pivot tolerance of rank and rref when the request
// carries no scalar.
const defaultRankTol = 1e-10

func registerBuiltins(e *Engine) {
	// Elementwise and products.
	e.register("add", 2, "", false, "A + B with broadcasting", binary((*matrix.Dense).CopyAdd))
	e.register("sub", 2, "", false, "A - B with broadcasting", binary((*matrix.Dense).CopySub))
	e.register("mult", 2, "", false, "A ∘ B (Hadamard) with broadcasting", binary((*matrix.Dense).CopyMult))
	e.register("div", 2, "", false, "A / B elementwise with broadcasting", binary((*matrix.Dense).CopyDiv))
	e.register("dot", 2, "", false, "matrix product A·B", binary((*matrix.Dense).Dot))
	e.register("kron", 2, "", false, "Kronecker product A⊗B", binary((*matrix.Dense).Kron))
	e.register("transpose", 1, "", false, "Aᵀ", func(c call) (Result, error) {
		return Result{"result": c.args[0].Transpose()}, nil
	})

	// Scalar summaries.
	e.register("trace", 1, "", false, "sum of the diagonal", func(c call) (Result, error) {
		return Result{"result": c.args[0].Trace()}, nil
	})
	e.register("norm", 1, "kind: 1, 2 (Frobenius) or inf", false, "entrywise norm (default Frobenius)", func(c call) (Result, error) {
		var kind matrix.NormKind
		switch p := scalarOr(c, 2); {
		case p == 1:
			kind = matrix.NormL1
		case p == 2:
			kind = matrix.NormFrobenius
		case math.IsInf(p, 1):
			kind = matrix.NormInf
		default:
			return nil, fmt.Errorf("norm: p=%v: %w", p, matrix.ErrInvalidArgument)
		}
		v, err := c.args[0].Norm(kind)
		if err != nil {
			return nil, err
		}
		return Result{"result": v}, nil
	})
	e.register("det", 1, "", false, "determinant", func(c call) (Result, error) {
		v, err := ops.Det(c.args[0])
		if err != nil {
			return nil, err
		}
		return Result{"result": v}, nil
	})
	e.register("rank", 1, "pivot tolerance", false, "rank by row reduction", func(c call) (Result, error) {
		r, err := ops.Rank(c.args[0], scalarOr(c, defaultRankTol))
		if err != nil {
			return nil, err
		}
		return Result{"result": r}, nil
	})
	e.register("properties", 1, "", false, "structural predicates", func(c call) (Result, error) {
		a := c.args[0]
		return Result{
			"square":           a.IsSquare(),
			"zero":             a.IsZero(c.opts...),
			"diagonal":         a.IsDiag(c.opts...),
			"identity":         a.IsIdentity(c.opts...),
			"lower_triangular": a.IsLowerTriangular(c.opts...),
			"upper_triangular": a.IsUpperTriangular(c.opts...),
			"symmetric":        a.IsSymmetric(c.opts...),
			"skew_symmetric":   a.IsAlternating(c.opts...),
			"normal":           a.IsNormal(c.opts...),
			"orthogonal":       a.IsOrthogonal(c.opts...),
			"nilpotent":        a.IsNilpotent(c.opts...),
			"regular":          ops.IsRegular(a, c.opts...),
		}, nil
	})

	// Statistics.
	e.register("cov", 1, "ddof", false, "column covariance", func(c call) (Result, error) {
		m, err := c.args[0].Cov(int(scalarOr(c, 0)))
		if err != nil {
			return nil, err
		}
		return Result{"result": m}, nil
	})
	e.register("correlation", 1, "", false, "Pearson correlation of the columns", unary((*matrix.Dense).Correlation))

	// Solvers.
	e.register("solve", 2, "", false, "X with A·X = B", func(c call) (Result, error) {
		x, err := ops.Solve(c.args[0], c.args[1])
		if err != nil {
			return nil, err
		}
		return Result{"result": x}, nil
	})
	e.register("inv", 1, "", false, "inverse", withOpts(ops.Inv))
	e.register("rref", 1, "pivot tolerance", false, "reduced row-echelon form", func(c call) (Result, error) {
		r, err := ops.ReducedRowEchelonForm(c.args[0], scalarOr(c, defaultRankTol))
		if err != nil {
			return nil, err
		}
		return Result{"result": r}, nil
	})

	// Decompositions.
	e.register("lu", 1, "", false, "A = L·U (no pivoting)", func(c call) (Result, error) {
		l, u, err := ops.LU(c.args[0])
		if err != nil {
			return nil, err
		}
		return Result{"l": l, "u": u}, nil
	})
	e.register("qr", 1, "", false, "A = Q·R", func(c call) (Result, error) {
		q, r, err := ops.QR(c.args[0], c.opts...)
		if err != nil {
			return nil, err
		}
		return Result{"q": q, "r": r}, nil
	})
	e.register("cholesky", 1, "", false, "A = L·Lᵀ", withOpts(ops.Cholesky))
	e.register("ldl", 1, "", false, "A = L·D·Lᵀ", func(c call) (Result, error) {
		l, d, err := ops.CholeskyLDL(c.args[0], c.opts...)
		if err != nil {
			return nil, err
		}
		return Result{"l": l, "d": d}, nil
	})
	e.register("tridiag", 1, "", false, "Householder tridiagonalization of a symmetric matrix", withOpts(ops.Tridiag))
	e.register("hessenberg", 1, "", false, "upper Hessenberg form", func(c call) (Result, error) {
		h, err := ops.Hessenberg(c.args[0])
		if err != nil {
			return nil, err
		}
		return Result{"result": h}, nil
	})
	e.register("bidiag", 1, "", false, "Golub-Kahan bidiagonal form", func(c call) (Result, error) {
		b, err := ops.Bidiag(c.args[0])
		if err != nil {
			return nil, err
		}
		return Result{"result": b}, nil
	})
	e.register("eigen", 1, "", false, "real eigenvalues (descending) and eigenvectors", func(c call) (Result, error) {
		vals, vecs, err := ops.Eigen(c.args[0], c.opts...)
		if err != nil {
			return nil, err
		}
		return Result{"values": vals, "vectors": vecs}, nil
	})
	e.register("eigenvalues", 1, "", false, "eigenvalues (descending, null for complex pairs)", func(c call) (Result, error) {
		vals, err := ops.EigenValues(c.args[0], c.opts...)
		if err != nil {
			return nil, err
		}
		return Result{"values": nullable(vals)}, nil
	})
	e.register("jacobi", 1, "", false, "Jacobi eigen-solver for symmetric input", func(c call) (Result, error) {
		r, err := ops.EigenJacobi(c.args[0], c.opts...)
		if err != nil {
			return nil, err
		}
		return Result{"values": r.Values, "vectors": r.Vectors, "converged": r.Converged, "iterations": r.Iterations}, nil
	})
	e.register("svd", 1, "", false, "A = U·diag(s)·Vᵀ", func(c call) (Result, error) {
		u, s, v, err := ops.SVD(c.args[0], c.opts...)
		if err != nil {
			return nil, err
		}
		return Result{"u": u, "s": s, "v": v}, nil
	})

	// Matrix functions.
	e.register("exp", 1, "", false, "matrix exponential", withOpts(ops.Exp))
	e.register("log", 1, "", false, "principal matrix logarithm", withOpts(ops.Log))
	e.register("sqrt", 1, "", false, "principal square root", withOpts(ops.Sqrt))
	e.register("power", 1, "exponent", true, "A^p", func(c call) (Result, error) {
		p, err := ops.Power(c.args[0], *c.scalar, c.opts...)
		if err != nil {
			return nil, err
		}
		return Result{"result": p}, nil
	})
}

func binary(f func(a, b *matrix.Dense) (*matrix.Dense, error)) handler {
	return func(c call) (Result, error) {
		m, err := f(c.args[0], c.args[1])
		if err != nil {
			return nil, err
		}
		return Result{"result": m}, nil
	}
}

func unary(f func(a *matrix.Dense) (*matrix.Dense, error)) handler {
	return func(c call) (Result, error) {
		m, err := f(c.args[0])
		if err != nil {
			return nil, err
		}
		return Result{"result": m}, nil
	}
}

func withOpts(f func(a matrix.Matrix, opts ...matrix.Option) (*matrix.Dense, error)) handler {
	return func(c call) (Result, error) {
		m, err := f(c.args[0], c.opts...)
		if err != nil {
			return nil, err
		}
		return Result{"result": m}, nil
	}
}

func scalarOr(c call, def float64) float64 {
	if c.scalar == nil {
		return def
	}
	return *c.scalar
}

// nullable maps NaN entries to nil so the vector stays JSON-encodable.
func nullable(vs []float64) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		if !math.IsNaN(v) {
			out[i] = v
		}
	}
	return out
}
