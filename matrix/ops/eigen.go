// SPDX-License-Identifier: MIT

package ops

import (
	"math"
	"sort"

	"github.com/katalvlaran/lvla/matrix"
)

const (
	opEigen        = "Eigen"
	opEigenValues  = "EigenValues"
	opEigenVectors = "EigenVectors"
)

// machEps is the float64 unit roundoff.
const machEps = 0x1p-52

// Eigen returns the eigenvalues of a square matrix sorted descending and the
// matching unit eigenvectors as columns of V, with A·V[:,i] == λ_i·V[:,i].
//
// Symmetric input (within WithEpsilon) is tridiagonalized and diagonalized by
// implicit QL; its eigenvectors are orthonormal. Other input is reduced to
// Hessenberg form and iterated with shifted QR; eigenvectors come from
// inverse iteration.
//
// Errors:
//   - ErrNonSquare.
//   - ErrComplexEigen when a non-symmetric input has a complex pair.
func Eigen(a matrix.Matrix, opts ...matrix.Option) ([]float64, *matrix.Dense, error) {
	A, _, err := squareDense(opEigen, a)
	if err != nil {
		return nil, nil, err
	}
	o := matrix.NewOptions(opts...)
	if A.IsSymmetric(matrix.WithEpsilon(symmetryTol(A, o.Epsilon()))) {
		vals, V := symmetricEigen(opEigen, A, o, true)
		return vals, V, nil
	}
	wr, wi := generalEigenValues(opEigen, A, o)
	for _, im := range wi {
		if im != 0 {
			return nil, nil, opErrorf(opEigen, matrix.ErrComplexEigen)
		}
	}
	sortDescending(wr, nil)
	return wr, eigenVectorsByInverseIteration(A, wr, o), nil
}

// EigenValues returns the eigenvalues of a square matrix sorted descending.
// For non-symmetric input each member of a complex-conjugate pair is reported
// as NaN and sorted last.
func EigenValues(a matrix.Matrix, opts ...matrix.Option) ([]float64, error) {
	A, _, err := squareDense(opEigenValues, a)
	if err != nil {
		return nil, err
	}
	o := matrix.NewOptions(opts...)
	if A.IsSymmetric(matrix.WithEpsilon(symmetryTol(A, o.Epsilon()))) {
		vals, _ := symmetricEigen(opEigenValues, A, o, false)
		return vals, nil
	}
	wr, wi := generalEigenValues(opEigenValues, A, o)
	for i, im := range wi {
		if im != 0 {
			wr[i] = math.NaN()
		}
	}
	sortDescending(wr, nil)
	return wr, nil
}

// EigenVectors returns the eigenvector matrix of Eigen.
func EigenVectors(a matrix.Matrix, opts ...matrix.Option) (*matrix.Dense, error) {
	if _, _, err := squareDense(opEigenVectors, a); err != nil {
		return nil, err
	}
	_, V, err := Eigen(a, opts...)
	if err != nil {
		return nil, opErrorf(opEigenVectors, err)
	}
	return V, nil
}

// symmetricEigen diagonalizes symmetric A: Householder tridiagonalization
// followed by implicit QL (tql2). Vectors are accumulated only when wanted.
func symmetricEigen(tag string, A *matrix.Dense, o matrix.Options, wantVectors bool) ([]float64, *matrix.Dense) {
	n := A.Rows()
	T, Q := householderSimilarity(A)
	d := make([]float64, n)
	e := make([]float64, n)
	for i := 0; i < n; i++ {
		d[i], _ = T.At(i, i)
		if i > 0 {
			e[i], _ = T.At(i, i-1)
		}
	}
	var V *matrix.Dense
	if wantVectors {
		V = Q
	}
	if !tql2(d, e, V, o.MaxIter()) {
		o.Logger().Warn(tag+" not converged", "method", "tql2", "size", n)
	}
	sortDescending(d, V)
	return d, V
}

// tql2 diagonalizes the symmetric tridiagonal matrix (d, e) in place by
// implicit QL with Wilkinson-style shifts. e[i] is the entry (i, i-1); e[0]
// is ignored. When V is non-nil its columns are rotated along. It reports
// false if some eigenvalue exhausted maxIter sweeps.
func tql2(d, e []float64, V *matrix.Dense, maxIter int) bool {
	n := len(d)
	if n == 0 {
		return true
	}
	var v []float64
	if V != nil {
		v = V.Data()
	}
	for i := 1; i < n; i++ {
		e[i-1] = e[i]
	}
	e[n-1] = 0

	converged := true
	var f, tst1 float64
	for l := 0; l < n; l++ {
		// Find a small subdiagonal element.
		tst1 = math.Max(tst1, math.Abs(d[l])+math.Abs(e[l]))
		m := l
		for m < n-1 && math.Abs(e[m]) > machEps*tst1 {
			m++
		}
		if m > l {
			for iter := 0; ; iter++ {
				if iter >= maxIter {
					converged = false
					break
				}
				// Compute the implicit shift.
				g := d[l]
				p := (d[l+1] - g) / (2 * e[l])
				r := math.Hypot(p, 1)
				if p < 0 {
					r = -r
				}
				d[l] = e[l] / (p + r)
				d[l+1] = e[l] * (p + r)
				dl1 := d[l+1]
				h := g - d[l]
				for i := l + 2; i < n; i++ {
					d[i] -= h
				}
				f += h

				// Implicit QL transformation.
				p = d[m]
				c, c2, c3 := 1.0, 1.0, 1.0
				el1 := e[l+1]
				var s, s2 float64
				for i := m - 1; i >= l; i-- {
					c3 = c2
					c2 = c
					s2 = s
					g = c * e[i]
					h = c * p
					r = math.Hypot(p, e[i])
					e[i+1] = s * r
					s = e[i] / r
					c = p / r
					p = c*d[i] - s*g
					d[i+1] = h + s*(c*g+s*d[i])
					if v != nil {
						for k := 0; k < n; k++ {
							h = v[k*n+i+1]
							v[k*n+i+1] = s*v[k*n+i] + c*h
							v[k*n+i] = c*v[k*n+i] - s*h
						}
					}
				}
				p = -s * s2 * c3 * el1 * e[l] / dl1
				e[l] = s * p
				d[l] = c * p
				if math.Abs(e[l]) <= machEps*tst1 {
					break
				}
			}
		}
		d[l] += f
		e[l] = 0
	}
	return converged
}

// generalEigenValues returns real and imaginary parts of the eigenvalues of
// a square matrix via Hessenberg reduction and shifted QR.
func generalEigenValues(tag string, A *matrix.Dense, o matrix.Options) ([]float64, []float64) {
	H, _ := householderSimilarity(A)
	wr, wi, ok := hessenbergQR(H, o)
	if !ok {
		o.Logger().Warn(tag+" not converged", "method", "qr", "size", A.Rows())
	}
	return wr, wi
}

// hessenbergQR runs single-shift QR steps (Givens) on the active window of
// the upper Hessenberg matrix H, deflating 1×1 and 2×2 blocks. A 2×2 block
// with complex eigenvalues yields a conjugate pair (wi = ±im). H is consumed.
func hessenbergQR(H *matrix.Dense, o matrix.Options) (wr, wi []float64, ok bool) {
	n := H.Rows()
	h := H.Data()
	wr, wi = make([]float64, n), make([]float64, n)
	tol := math.Max(o.Tolerance(), machEps)
	var norm float64
	for _, x := range h {
		norm = math.Max(norm, math.Abs(x))
	}

	hi, iter, stall := n-1, 0, 0
	for hi >= 0 {
		if hi == 0 {
			wr[0] = h[0]
			break
		}
		// Locate the top of the unreduced block ending at hi.
		l := hi
		for l > 0 {
			s := math.Abs(h[(l-1)*n+l-1]) + math.Abs(h[l*n+l])
			if s == 0 {
				s = norm
			}
			if math.Abs(h[l*n+l-1]) <= tol*s {
				h[l*n+l-1] = 0
				break
			}
			l--
		}
		switch {
		case l == hi:
			wr[hi] = h[hi*n+hi]
			hi--
			stall = 0
			continue
		case l == hi-1:
			wr[hi-1], wr[hi], wi[hi-1], wi[hi] = block2(h[l*n+l], h[l*n+hi], h[hi*n+l], h[hi*n+hi])
			hi -= 2
			stall = 0
			continue
		}
		if iter >= o.MaxIter() {
			for i := 0; i <= hi; i++ {
				wr[i] = h[i*n+i]
			}
			return wr, wi, false
		}
		iter++
		stall++

		mu := wilkinsonShift(h[(hi-1)*n+hi-1], h[(hi-1)*n+hi], h[hi*n+hi-1], h[hi*n+hi])
		if stall%11 == 0 {
			mu = h[hi*n+hi] + 0.75*math.Abs(h[hi*n+hi-1])
		}
		qrStep(h, n, l, hi, mu)
	}
	return wr, wi, true
}

// block2 returns the eigenvalues of [a b; c d] as (re1, re2, im1, im2).
func block2(a, b, c, d float64) (float64, float64, float64, float64) {
	p := (a - d) / 2
	disc := p*p + b*c
	mid := (a + d) / 2
	if disc >= 0 {
		sq := math.Sqrt(disc)
		return mid + sq, mid - sq, 0, 0
	}
	im := math.Sqrt(-disc)
	return mid, mid, im, -im
}

// wilkinsonShift picks the eigenvalue of [a b; c d] closest to d, or d itself
// when the pair is complex.
func wilkinsonShift(a, b, c, d float64) float64 {
	r1, r2, im, _ := block2(a, b, c, d)
	if im != 0 {
		return d
	}
	if math.Abs(r1-d) < math.Abs(r2-d) {
		return r1
	}
	return r2
}

// qrStep performs H - μI = QR, H ← RQ + μI on rows/cols l..hi of h (n×n).
func qrStep(h []float64, n, l, hi int, mu float64) {
	for k := l; k <= hi; k++ {
		h[k*n+k] -= mu
	}
	cs := make([][2]float64, hi-l)
	for k := l; k < hi; k++ {
		c, s, _ := givens(h[k*n+k], h[(k+1)*n+k])
		cs[k-l] = [2]float64{c, s}
		for j := k; j <= hi; j++ {
			x, y := h[k*n+j], h[(k+1)*n+j]
			h[k*n+j] = c*x + s*y
			h[(k+1)*n+j] = -s*x + c*y
		}
	}
	for k := l; k < hi; k++ {
		c, s := cs[k-l][0], cs[k-l][1]
		for i := l; i <= min(k+2, hi); i++ {
			x, y := h[i*n+k], h[i*n+k+1]
			h[i*n+k] = c*x + s*y
			h[i*n+k+1] = -s*x + c*y
		}
	}
	for k := l; k <= hi; k++ {
		h[k*n+k] += mu
	}
}

// eigenVectorsByInverseIteration returns unit eigenvectors (columns) for the
// real eigenvalues vals of A.
func eigenVectorsByInverseIteration(A *matrix.Dense, vals []float64, o matrix.Options) *matrix.Dense {
	n := A.Rows()
	V := zeros(n, n)
	v := V.Data()
	for j, lambda := range vals {
		x, _, _ := inverseIterate(A, lambda, o)
		for i := 0; i < n; i++ {
			v[i*n+j] = x[i]
		}
	}
	return V
}

// sortDescending orders vals descending (NaN last) and permutes the columns
// of V accordingly when V is non-nil.
func sortDescending(vals []float64, V *matrix.Dense) {
	n := len(vals)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(p, q int) bool {
		a, b := vals[idx[p]], vals[idx[q]]
		if math.IsNaN(a) {
			return false
		}
		return math.IsNaN(b) || a > b
	})
	sorted := make([]float64, n)
	for i, k := range idx {
		sorted[i] = vals[k]
	}
	copy(vals, sorted)
	if V == nil {
		return
	}
	src := append([]float64(nil), V.Data()...)
	dst := V.Data()
	for i := 0; i < n; i++ {
		for j, k := range idx {
			dst[i*n+j] = src[i*n+k]
		}
	}
}
