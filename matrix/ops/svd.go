// SPDX-License-Identifier: MIT

package ops

import (
	"math"

	"github.com/katalvlaran/lvla/matrix"
)

const (
	opSVD            = "SVD"
	opSVDEigen       = "SVDEigen"
	opSVDGolubKahan  = "SVDGolubKahan"
	opSingularValues = "SingularValues"
	opBidiag         = "Bidiag"
)

// SVD returns the thin singular value decomposition A = U·diag(s)·Vᵀ of an
// m×n matrix: U is m×k, s has length k = min(m, n) (descending, >= 0) and
// V is n×k; U and V have orthonormal columns. It uses SVDGolubKahan.
func SVD(a matrix.Matrix, opts ...matrix.Option) (*matrix.Dense, []float64, *matrix.Dense, error) {
	A, err := dense(opSVD, a)
	if err != nil {
		return nil, nil, nil, err
	}
	return svdGolubKahan(opSVD, A, matrix.NewOptions(opts...))
}

// SingularValues returns the singular values of A in descending order.
func SingularValues(a matrix.Matrix, opts ...matrix.Option) ([]float64, error) {
	A, err := dense(opSingularValues, a)
	if err != nil {
		return nil, err
	}
	_, s, _, err := svdGolubKahan(opSingularValues, A, matrix.NewOptions(opts...))
	return s, err
}

// SVDGolubKahan computes the SVD by Householder bidiagonalization followed by
// implicit-shift QR sweeps on the bidiagonal (Golub-Kahan-Reinsch).
func SVDGolubKahan(a matrix.Matrix, opts ...matrix.Option) (*matrix.Dense, []float64, *matrix.Dense, error) {
	A, err := dense(opSVDGolubKahan, a)
	if err != nil {
		return nil, nil, nil, err
	}
	return svdGolubKahan(opSVDGolubKahan, A, matrix.NewOptions(opts...))
}

func svdGolubKahan(tag string, A *matrix.Dense, o matrix.Options) (*matrix.Dense, []float64, *matrix.Dense, error) {
	m, n := A.Rows(), A.Cols()
	if m < n {
		// Aᵀ = U'·S·V'ᵀ  ⇒  A = V'·S·U'ᵀ.
		V, s, U, err := svdGolubKahan(tag, A.Transpose(), o)
		return U, s, V, err
	}

	// Stage 1: Bidiagonalize A = U·B·Vᵀ.
	B, Uf, V := bidiagonalize(A)
	b := B.Data()
	d := make([]float64, n)
	e := make([]float64, max(n-1, 0))
	for i := 0; i < n; i++ {
		d[i] = b[i*n+i]
		if i+1 < n {
			e[i] = b[i*n+i+1]
		}
	}
	U, _ := Uf.Block(0, 0, matrix.End, n)
	u, v := U.Data(), V.Data()

	// Stage 2: Diagonalize B with Golub-Kahan sweeps.
	if !bidiagQR(d, e, u, m, v, n, o) {
		o.Logger().Warn(tag+" not converged", "rows", m, "cols", n)
	}

	// Stage 3: Non-negative values, descending order.
	var i, k int
	for i = 0; i < n; i++ {
		if d[i] < 0 {
			d[i] = -d[i]
			for k = 0; k < n; k++ {
				v[k*n+i] = -v[k*n+i]
			}
		}
	}
	sortSVD(d, U, V)
	return U, d, V, nil
}

// bidiagonalize reduces an m×n matrix to upper bidiagonal B = Uᵀ·A·V with
// alternating left and right Householder reflections. U is m×m, V is n×n.
func bidiagonalize(A *matrix.Dense) (B, U, V *matrix.Dense) {
	m, n := A.Rows(), A.Cols()
	B, U, V = A.Copy(), eye(m), eye(n)
	b, u, v := B.Data(), U.Data(), V.Data()
	var i, j, k int
	for k = 0; k < min(m, n); k++ {
		if m-k >= 2 {
			x := make([]float64, m-k)
			for i = k; i < m; i++ {
				x[i-k] = b[i*n+k]
			}
			if w, _, ok := householder(x); ok {
				reflectLeft(b, n, k, k, w)
				reflectRight(u, m, m, k, w)
			}
		}
		if n-k-1 >= 2 {
			x := append([]float64(nil), b[k*n+k+1:(k+1)*n]...)
			if w, _, ok := householder(x); ok {
				reflectRight(b, m, n, k+1, w)
				reflectRight(v, n, n, k+1, w)
			}
		}
	}
	for i = 0; i < m; i++ {
		for j = 0; j < n; j++ {
			if j != i && j != i+1 {
				b[i*n+j] = 0
			}
		}
	}
	return B, U, V
}

// Bidiag returns the upper bidiagonal form B = Uᵀ·A·V of an m×n matrix: all
// entries other than B[i][i] and B[i][i+1] are zero, and B has the singular
// values of A.
func Bidiag(a matrix.Matrix) (*matrix.Dense, error) {
	A, err := dense(opBidiag, a)
	if err != nil {
		return nil, err
	}
	B, _, _ := bidiagonalize(A)
	return B, nil
}

// bidiagQR diagonalizes the n×n upper bidiagonal (d, e) in place. Left
// rotations are applied to the columns of u (m×n), right rotations to the
// columns of v (n×n). It reports false if the sweep budget ran out.
func bidiagQR(d, e []float64, u []float64, m int, v []float64, n int, o matrix.Options) bool {
	if n < 2 {
		return true
	}
	tol := math.Max(o.Tolerance(), machEps)
	var bnorm float64
	for i := 0; i < n; i++ {
		x := math.Abs(d[i])
		if i < n-1 {
			x += math.Abs(e[i])
		}
		bnorm = math.Max(bnorm, x)
	}
	if bnorm == 0 {
		return true
	}
	rotCols := func(a []float64, rows, cols, p, q int, c, s float64) {
		for r := 0; r < rows; r++ {
			x, y := a[r*cols+p], a[r*cols+q]
			a[r*cols+p] = c*x + s*y
			a[r*cols+q] = -s*x + c*y
		}
	}

	for iter := 0; iter < o.MaxIter(); iter++ {
		// Deflate negligible superdiagonal entries.
		for i := 0; i < n-1; i++ {
			if math.Abs(e[i]) <= tol*(math.Abs(d[i])+math.Abs(d[i+1])) || math.Abs(e[i]) <= machEps*bnorm {
				e[i] = 0
			}
		}
		hi := n - 1
		for hi > 0 && e[hi-1] == 0 {
			hi--
		}
		if hi == 0 {
			return true
		}
		lo := hi - 1
		for lo > 0 && e[lo-1] != 0 {
			lo--
		}

		// A zero on the diagonal splits the block after chasing its row
		// (or, at the bottom, its column) out with Givens rotations.
		split := false
		for i := lo; i < hi; i++ {
			if math.Abs(d[i]) > tol*bnorm {
				continue
			}
			d[i] = 0
			f := e[i]
			e[i] = 0
			for j := i + 1; j <= hi && f != 0; j++ {
				c, s, r := givens(d[j], f)
				d[j] = r
				if j < hi {
					f = -s * e[j]
					e[j] = c * e[j]
				}
				rotCols(u, m, n, j, i, c, s)
			}
			split = true
			break
		}
		if split {
			continue
		}
		if math.Abs(d[hi]) <= tol*bnorm {
			d[hi] = 0
			f := e[hi-1]
			e[hi-1] = 0
			for j := hi - 1; j >= lo && f != 0; j-- {
				c, s, r := givens(d[j], f)
				d[j] = r
				if j > lo {
					f = -s * e[j-1]
					e[j-1] = c * e[j-1]
				}
				rotCols(v, n, n, j, hi, c, s)
			}
			continue
		}

		// Wilkinson shift from the trailing 2×2 of BᵀB.
		t11 := d[hi-1] * d[hi-1]
		if hi-1 > lo {
			t11 += e[hi-2] * e[hi-2]
		}
		t12 := d[hi-1] * e[hi-1]
		t22 := d[hi]*d[hi] + e[hi-1]*e[hi-1]
		mu := wilkinsonShift(t11, t12, t12, t22)

		// Implicit QR step: chase the bulge from (lo+1, lo) to the bottom.
		y := d[lo]*d[lo] - mu
		z := d[lo] * e[lo]
		for k := lo; k < hi; k++ {
			c, s, r := givens(y, z)
			if k > lo {
				e[k-1] = r
			}
			dk, ek := d[k], e[k]
			d[k] = c*dk + s*ek
			e[k] = -s*dk + c*ek
			bulge := s * d[k+1]
			d[k+1] *= c
			rotCols(v, n, n, k, k+1, c, s)

			c, s, r = givens(d[k], bulge)
			d[k] = r
			ek, dk1 := e[k], d[k+1]
			e[k] = c*ek + s*dk1
			d[k+1] = -s*ek + c*dk1
			rotCols(u, m, n, k, k+1, c, s)
			if k+1 < hi {
				y = e[k]
				z = s * e[k+1]
				e[k+1] *= c
			}
		}
	}
	return false
}

// sortSVD orders s descending and permutes the columns of U and V alike.
func sortSVD(s []float64, U, V *matrix.Dense) {
	k := len(s)
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for i := 1; i < k; i++ {
		for j := i; j > 0 && s[idx[j]] > s[idx[j-1]]; j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
	permuteCols(U, idx)
	permuteCols(V, idx)
	sorted := make([]float64, k)
	for i, p := range idx {
		sorted[i] = s[p]
	}
	copy(s, sorted)
}

// permuteCols sets column j of M to its former column idx[j].
func permuteCols(M *matrix.Dense, idx []int) {
	r, c := M.Rows(), M.Cols()
	src := append([]float64(nil), M.Data()...)
	dst := M.Data()
	for i := 0; i < r; i++ {
		for j, p := range idx {
			dst[i*c+j] = src[i*c+p]
		}
	}
}

// SVDEigen computes the SVD through the symmetric eigen-decomposition of the
// Gram matrix AᵀA (or AAᵀ when m < n): s = √λ, V = eigenvectors and
// U = A·V·diag(1/s). Columns of U belonging to negligible singular values are
// completed to an orthonormal set. Faster than Golub-Kahan but squares the
// condition number.
func SVDEigen(a matrix.Matrix, opts ...matrix.Option) (*matrix.Dense, []float64, *matrix.Dense, error) {
	A, err := dense(opSVDEigen, a)
	if err != nil {
		return nil, nil, nil, err
	}
	o := matrix.NewOptions(opts...)
	if A.Rows() < A.Cols() {
		V, s, U := svdEigen(A.Transpose(), o)
		return U, s, V, nil
	}
	U, s, V := svdEigen(A, o)
	return U, s, V, nil
}

// svdEigen handles m >= n.
func svdEigen(A *matrix.Dense, o matrix.Options) (*matrix.Dense, []float64, *matrix.Dense) {
	m, n := A.Rows(), A.Cols()
	lambda, V := symmetricEigen(opSVDEigen, A.Gram(), o, true)
	s := make([]float64, n)
	for i, l := range lambda {
		s[i] = math.Sqrt(math.Max(l, 0))
	}
	AV := mul(A, V)
	av := AV.Data()
	tiny := math.Max(o.Tolerance(), machEps) * firstOr(s, 0) * float64(max(m, n))

	U := zeros(m, n)
	u := U.Data()
	cols := make([][]float64, 0, n)
	for j := 0; j < n; j++ {
		col := make([]float64, m)
		if s[j] > tiny {
			for i := 0; i < m; i++ {
				col[i] = av[i*n+j] / s[j]
			}
			// Re-orthogonalize against previous columns.
			for _, prev := range cols {
				c := dot(prev, col)
				for i := range col {
					col[i] -= c * prev[i]
				}
			}
			if normalize(col) <= 0.5 {
				col = restartVector(cols, m)
			}
		} else {
			col = restartVector(cols, m)
		}
		cols = append(cols, col)
		for i := 0; i < m; i++ {
			u[i*n+j] = col[i]
		}
	}
	return U, s, V
}

func firstOr(v []float64, def float64) float64 {
	if len(v) == 0 {
		return def
	}
	return v[0]
}
