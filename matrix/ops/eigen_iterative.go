// SPDX-License-Identifier: MIT

package ops

import (
	"math"

	"github.com/katalvlaran/lvla/matrix"
)

const (
	opEigenJacobi           = "eigenJacobi"
	opEigenBisection        = "EigenValuesBisection"
	opEigenLR               = "EigenValuesLR"
	opEigenQR               = "EigenValuesQR"
	opEigenPowerIteration   = "EigenPowerIteration"
	opEigenInverseIteration = "EigenInverseIteration"
)

// EigenResult is the outcome of an iterative eigen-solver that may stop on
// its iteration budget. Converged is false when the budget ran out; Values and
// Vectors then hold the best current estimate.
type EigenResult struct {
	Values     []float64
	Vectors    *matrix.Dense
	Converged  bool
	Iterations int
}

// EigenJacobi diagonalizes a symmetric matrix with classical Jacobi
// rotations, always annihilating the largest off-diagonal entry.
//
// Iteration stops when every off-diagonal entry is below WithTolerance
// (relative to the largest entry of A) or after WithMaxIter rotations. Running
// out of rotations is not an error: the result is returned with
// Converged=false and a warning "eigenJacobi not converged" is logged.
//
// Errors:
//   - ErrNonSquare, ErrAsymmetry.
func EigenJacobi(a matrix.Matrix, opts ...matrix.Option) (EigenResult, error) {
	// Stage 1: Validate
	o := matrix.NewOptions(opts...)
	A, err := dense(opEigenJacobi, a)
	if err != nil {
		return EigenResult{}, err
	}
	A, n, err := symmetricDense(opEigenJacobi, A, symmetryTol(A, o.Epsilon()))
	if err != nil {
		return EigenResult{}, err
	}

	// Stage 2: Prepare working copy and rotation accumulator
	W, V := A.Copy(), eye(n)
	w, v := W.Data(), V.Data()
	thresh := math.Max(o.Tolerance(), machEps) * maxAbs(w)

	// Stage 3: Execute rotations
	res := EigenResult{Converged: true}
	var (
		p, q, r, i, j int
		big           float64
	)
	for {
		p, q, big = 0, 0, 0
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				if x := math.Abs(w[i*n+j]); x > big {
					p, q, big = i, j, x
				}
			}
		}
		if big <= thresh {
			break
		}
		if res.Iterations >= o.MaxIter() {
			res.Converged = false
			break
		}
		res.Iterations++

		apq := w[p*n+q]
		theta := (w[q*n+q] - w[p*n+p]) / (2 * apq)
		t := 1 / (math.Abs(theta) + math.Sqrt(theta*theta+1))
		if theta < 0 {
			t = -t
		}
		c := 1 / math.Sqrt(t*t+1)
		s := t * c

		w[p*n+p] -= t * apq
		w[q*n+q] += t * apq
		w[p*n+q], w[q*n+p] = 0, 0
		for r = 0; r < n; r++ {
			if r != p && r != q {
				g, h := w[r*n+p], w[r*n+q]
				w[r*n+p] = c*g - s*h
				w[p*n+r] = w[r*n+p]
				w[r*n+q] = s*g + c*h
				w[q*n+r] = w[r*n+q]
			}
			g, h := v[r*n+p], v[r*n+q]
			v[r*n+p] = c*g - s*h
			v[r*n+q] = s*g + c*h
		}
	}

	// Stage 4: Finalize
	if !res.Converged {
		o.Logger().Warn("eigenJacobi not converged", "iterations", res.Iterations, "offDiagonal", big)
	}
	res.Values = W.Diagonal()
	res.Vectors = V
	sortDescending(res.Values, res.Vectors)
	return res, nil
}

// EigenValuesBisection returns the eigenvalues of a symmetric matrix sorted
// descending, located one by one by bisection with Sturm sequence counts on
// its Householder tridiagonal form, starting from Gershgorin bounds.
//
// Errors:
//   - ErrNonSquare, ErrAsymmetry.
func EigenValuesBisection(a matrix.Matrix, opts ...matrix.Option) ([]float64, error) {
	o := matrix.NewOptions(opts...)
	T, _, err := tridiagHouseholder(opEigenBisection, a, opts)
	if err != nil {
		return nil, err
	}
	n := T.Rows()
	if n == 0 {
		return []float64{}, nil
	}
	t := T.Data()
	d := make([]float64, n)
	e := make([]float64, n) // e[i] = T[i][i-1]
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		d[i] = t[i*n+i]
		r := 0.0
		if i > 0 {
			e[i] = t[i*n+i-1]
			r += math.Abs(e[i])
		}
		if i+1 < n {
			r += math.Abs(t[(i+1)*n+i])
		}
		lo = math.Min(lo, d[i]-r)
		hi = math.Max(hi, d[i]+r)
	}
	pad := machEps * math.Max(1, math.Max(math.Abs(lo), math.Abs(hi)))
	lo, hi = lo-pad, hi+pad

	// below counts the eigenvalues strictly less than x.
	below := func(x float64) int {
		count := 0
		var q float64
		for i := 0; i < n; i++ {
			if i == 0 {
				q = d[0] - x
			} else {
				q = d[i] - x - e[i]*e[i]/q
			}
			if q == 0 {
				q = machEps * (math.Abs(x) + 1)
			}
			if q < 0 {
				count++
			}
		}
		return count
	}

	tol := math.Max(o.Tolerance(), machEps)
	vals := make([]float64, n)
	for k := 0; k < n; k++ {
		// k-th smallest eigenvalue: the smallest x with below(x) > k.
		a, b := lo, hi
		for it := 0; it < o.MaxIter() && b-a > tol*(math.Abs(a)+math.Abs(b)); it++ {
			mid := a + (b-a)/2
			if mid == a || mid == b {
				break
			}
			if below(mid) > k {
				b = mid
			} else {
				a = mid
			}
		}
		vals[n-1-k] = a + (b-a)/2
	}
	return vals, nil
}

// EigenValuesLR returns eigenvalues of a square matrix sorted descending by
// the LR (Rutishauser) iteration A ← U·L where A = L·U. A zero pivot during
// the factorization shifts the iterate by a multiple of I, undone at the end.
// Input with complex eigenvalues does not converge; the diagonal reached
// within WithMaxIter steps is returned and a warning is logged.
func EigenValuesLR(a matrix.Matrix, opts ...matrix.Option) ([]float64, error) {
	A, n, err := squareDense(opEigenLR, a)
	if err != nil {
		return nil, err
	}
	o := matrix.NewOptions(opts...)
	X := A.Copy()
	scale := maxAbs(X.Data())
	thresh := math.Max(o.Tolerance(), machEps) * scale

	var shift float64
	converged := false
	for it := 0; it < o.MaxIter(); it++ {
		if lowerMax(X) <= thresh {
			converged = true
			break
		}
		L, U, err := LU(X)
		if err != nil {
			step := 1e-3 * scale
			x := X.Data()
			for i := 0; i < n; i++ {
				x[i*n+i] += step
			}
			shift += step
			continue
		}
		X = mul(U, L)
	}
	if !converged && lowerMax(X) > thresh {
		o.Logger().Warn(opEigenLR+" not converged", "size", n)
	}
	vals := X.Diagonal()
	for i := range vals {
		vals[i] -= shift
	}
	sortDescending(vals, nil)
	return vals, nil
}

// lowerMax returns the largest magnitude strictly below the diagonal.
func lowerMax(X *matrix.Dense) float64 {
	n := X.Rows()
	x := X.Data()
	var m float64
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			m = math.Max(m, math.Abs(x[i*n+j]))
		}
	}
	return m
}

// EigenValuesQR returns eigenvalues of a square matrix sorted descending by
// the shifted QR algorithm on its Hessenberg form. Complex pairs are
// reported as NaN, as in EigenValues.
func EigenValuesQR(a matrix.Matrix, opts ...matrix.Option) ([]float64, error) {
	A, _, err := squareDense(opEigenQR, a)
	if err != nil {
		return nil, err
	}
	wr, wi := generalEigenValues(opEigenQR, A, matrix.NewOptions(opts...))
	for i, im := range wi {
		if im != 0 {
			wr[i] = math.NaN()
		}
	}
	sortDescending(wr, nil)
	return wr, nil
}

// EigenPowerIteration returns the dominant eigenvalue (largest magnitude) and
// its unit eigenvector (n×1) by repeated multiplication and renormalization.
// The eigenvalue is the Rayleigh quotient of the current vector. Stagnation
// (e.g. two dominant eigenvalues of equal magnitude) logs a warning and
// returns the last estimate.
func EigenPowerIteration(a matrix.Matrix, opts ...matrix.Option) (float64, *matrix.Dense, error) {
	A, n, err := squareDense(opEigenPowerIteration, a)
	if err != nil {
		return 0, nil, err
	}
	if n == 0 {
		return 0, zeros(0, 1), nil
	}
	o := matrix.NewOptions(opts...)
	src := A.Data()
	scale := maxAbs(src)
	x := startVector(n)
	y := make([]float64, n)
	var lambda float64
	converged := false
	for it := 0; it < o.MaxIter(); it++ {
		matVec(src, n, x, y)
		lambda = dot(x, y)
		if residual(y, x, lambda) <= iterTol(o, lambda, scale) {
			converged = true
			break
		}
		if normalize(y) == 0 {
			converged = true
			break
		}
		x, y = y, x
	}
	if !converged {
		o.Logger().Warn(opEigenPowerIteration+" not converged", "size", n, "eigenvalue", lambda)
	}
	return lambda, fromData(n, 1, x), nil
}

// EigenInverseIteration returns the eigenpair whose eigenvalue is nearest to
// shift, by repeated solves against A - shift·I. The vector is unit (n×1) and
// the value is its Rayleigh quotient.
func EigenInverseIteration(a matrix.Matrix, shift float64, opts ...matrix.Option) (float64, *matrix.Dense, error) {
	A, n, err := squareDense(opEigenInverseIteration, a)
	if err != nil {
		return 0, nil, err
	}
	if n == 0 {
		return 0, zeros(0, 1), nil
	}
	o := matrix.NewOptions(opts...)
	x, lambda, ok := inverseIterate(A, shift, o)
	if !ok {
		o.Logger().Warn(opEigenInverseIteration+" not converged", "size", n, "shift", shift)
	}
	return lambda, fromData(n, 1, x), nil
}

// inverseIterate runs inverse iteration with a fixed shift and returns the
// unit vector, its Rayleigh quotient and whether the residual converged.
func inverseIterate(A *matrix.Dense, shift float64, o matrix.Options) ([]float64, float64, bool) {
	n := A.Rows()
	src := A.Data()
	scale := maxAbs(src)
	// An exact eigenvalue as shift makes A - shift·I singular; nudge it.
	sigma := shift
	var f plu
	for attempt := 0; ; attempt++ {
		S := A.Copy()
		s := S.Data()
		for i := 0; i < n; i++ {
			s[i*n+i] -= sigma
		}
		f = factorPLU(S, 0)
		if !f.singular || attempt >= 8 {
			break
		}
		sigma += (1e-10 * scale) * math.Pow(10, float64(attempt))
	}

	x := startVector(n)
	y := make([]float64, n)
	var lambda float64
	for it := 0; it < min(o.MaxIter(), 1000); it++ {
		z := f.solveVec(x)
		if normalize(z) == 0 || hasNaN(z) {
			break
		}
		if dot(z, x) < 0 {
			for i := range z {
				z[i] = -z[i]
			}
		}
		x = z
		matVec(src, n, x, y)
		lambda = dot(x, y)
		if residual(y, x, lambda) <= iterTol(o, lambda, scale) {
			return x, lambda, true
		}
	}
	return x, lambda, false
}

// startVector is a deterministic unit vector with no zero components.
func startVector(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = 1 + float64(i)/float64(n+1)
	}
	normalize(x)
	return x
}

func matVec(a []float64, n int, x, y []float64) {
	for i := 0; i < n; i++ {
		y[i] = dot(a[i*n:(i+1)*n], x)
	}
}

// residual returns ‖y - λx‖₂.
func residual(y, x []float64, lambda float64) float64 {
	var s float64
	for i := range y {
		d := y[i] - lambda*x[i]
		s += d * d
	}
	return math.Sqrt(s)
}

// iterTol is the residual bound of the vector iterations, relative to the
// larger of |λ| and max|A|.
func iterTol(o matrix.Options, lambda, scale float64) float64 {
	return math.Max(o.Tolerance(), 1e-10) * math.Max(math.Abs(lambda), scale)
}

func hasNaN(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return true
		}
	}
	return false
}
