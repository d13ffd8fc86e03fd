// SPDX-License-Identifier: MIT

// Package matrix - structural predicates.
//
// Every predicate takes an optional WithEpsilon tolerance (DefaultEpsilon
// otherwise) and compares the relevant entries within it. Real arithmetic
// only: Hermitian coincides with symmetric, unitary with orthogonal.
//
// Predicates that need a square matrix return false for non-square input.
// IsRegular lives in matrix/ops since it needs the determinant.
package matrix

import "math"

func epsOf(opts []Option) float64 { return NewOptions(opts...).Epsilon() }

// IsSquare reports rows == cols.
func (m *Dense) IsSquare() bool { return m.r == m.c }

// IsZero reports whether every element is within eps of 0.
func (m *Dense) IsZero(opts ...Option) bool {
	eps := epsOf(opts)
	for _, v := range m.data {
		if !(math.Abs(v) <= eps) {
			return false
		}
	}
	return true
}

// IsDiag reports whether every off-diagonal element is within eps of 0.
// Rectangular matrices are allowed.
func (m *Dense) IsDiag(opts ...Option) bool {
	eps := epsOf(opts)
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			if i != j && math.Abs(m.data[i*m.c+j]) > eps {
				return false
			}
		}
	}
	return true
}

// IsIdentity reports whether m is diagonal with ones on the diagonal.
func (m *Dense) IsIdentity(opts ...Option) bool {
	if !m.IsDiag(opts...) {
		return false
	}
	eps := epsOf(opts)
	for _, d := range m.Diagonal() {
		if math.Abs(d-1) > eps {
			return false
		}
	}
	return true
}

// IsLowerTriangular reports whether every element above the diagonal is ~0.
func (m *Dense) IsLowerTriangular(opts ...Option) bool {
	eps := epsOf(opts)
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = i + 1; j < m.c; j++ {
			if math.Abs(m.data[i*m.c+j]) > eps {
				return false
			}
		}
	}
	return true
}

// IsUpperTriangular reports whether every element below the diagonal is ~0.
func (m *Dense) IsUpperTriangular(opts ...Option) bool {
	eps := epsOf(opts)
	var i, j int
	for i = 1; i < m.r; i++ {
		for j = 0; j < min(i, m.c); j++ {
			if math.Abs(m.data[i*m.c+j]) > eps {
				return false
			}
		}
	}
	return true
}

// IsTriangular reports whether m is lower or upper triangular.
func (m *Dense) IsTriangular(opts ...Option) bool {
	return m.IsLowerTriangular(opts...) || m.IsUpperTriangular(opts...)
}

// IsSymmetric reports m == mᵀ within eps; non-square is never symmetric.
func (m *Dense) IsSymmetric(opts ...Option) bool {
	return m.r == m.c && isSymmetric(m, epsOf(opts))
}

// IsHermitian equals IsSymmetric for real matrices.
func (m *Dense) IsHermitian(opts ...Option) bool { return m.IsSymmetric(opts...) }

// IsAlternating reports m == -mᵀ within eps (skew-symmetric).
func (m *Dense) IsAlternating(opts ...Option) bool {
	if m.r != m.c {
		return false
	}
	eps := epsOf(opts)
	n := m.r
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			if math.Abs(m.data[i*n+j]+m.data[j*n+i]) > eps {
				return false
			}
		}
	}
	return true
}

// IsSkewHermitian equals IsAlternating for real matrices.
func (m *Dense) IsSkewHermitian(opts ...Option) bool { return m.IsAlternating(opts...) }

// IsNormal reports m·mᵀ == mᵀ·m within eps.
func (m *Dense) IsNormal(opts ...Option) bool {
	if m.r != m.c {
		return false
	}
	mt := m.Transpose()
	return mulDense(m, mt).Equals(mulDense(mt, m), opts...)
}

// IsOrthogonal reports mᵀ·m == I within eps.
func (m *Dense) IsOrthogonal(opts ...Option) bool {
	if m.r != m.c {
		return false
	}
	return m.Gram().IsIdentity(opts...)
}

// IsUnitary equals IsOrthogonal for real matrices.
func (m *Dense) IsUnitary(opts ...Option) bool { return m.IsOrthogonal(opts...) }

// IsNilpotent reports whether m^k is the zero matrix (within eps) for some
// k <= n. An empty matrix is nilpotent; any NaN along the way yields false.
func (m *Dense) IsNilpotent(opts ...Option) bool {
	if m.r != m.c {
		return false
	}
	if m.r == 0 {
		return true
	}
	p := m.Copy()
	for k := 1; k <= m.r; k++ {
		if p.Some(math.IsNaN) {
			return false
		}
		if p.IsZero(opts...) {
			return true
		}
		p = mulDense(p, m)
	}
	return !p.Some(math.IsNaN) && p.IsZero(opts...)
}
