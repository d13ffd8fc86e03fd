// SPDX-License-Identifier: MIT

// Package matrix - named constructors.
//
// Purpose:
//   - zeros / ones / eye / diag / random / randn / fromArray, the constructor
//     family every consumer of the engine starts from.
//   - Normalize loosely typed initializers (numbers, flat or nested slices,
//     []any trees decoded from JSON) into a row-major buffer.
package matrix

import (
	"fmt"
	"math"
)

const (
	opNewWithInit = "NewWithInit"
	opFromArray   = "FromArray"
	opEye         = "Eye"
	opRandom      = "Random"
	opRandn       = "Randn"
)

// Zeros returns an r×c zero matrix.
func Zeros(rows, cols int) (*Dense, error) { return New(rows, cols) }

// Ones returns an r×c matrix of ones.
func Ones(rows, cols int) (*Dense, error) { return NewFilled(rows, cols, 1) }

// Eye returns an r×c matrix with scalar on the main diagonal and zeros elsewhere.
// Eye(100, 10, 1).At(i, j) == 1 iff i == j.
func Eye(rows, cols int, scalar float64) (*Dense, error) {
	m, err := New(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opEye, err)
	}
	n := min(rows, cols)
	for i := 0; i < n; i++ {
		m.data[i*cols+i] = scalar
	}
	return m, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) (*Dense, error) { return Eye(n, n, 1) }

// Diag returns the square matrix with values on its diagonal.
func Diag(values []float64) *Dense {
	n := len(values)
	m := newDense(n, n)
	for i, v := range values {
		m.data[i*n+i] = v
	}
	return m
}

// DiagBlocks places each block on the diagonal of a block-diagonal matrix
// whose extents are the sums of the block extents.
func DiagBlocks(blocks ...*Dense) (*Dense, error) {
	var r, c int
	for _, b := range blocks {
		if b == nil {
			return nil, matrixErrorf("DiagBlocks", ErrNilMatrix)
		}
		r += b.r
		c += b.c
	}
	out := newDense(r, c)
	var i, j int
	for _, b := range blocks {
		if err := out.SetBlock(i, j, b); err != nil {
			return nil, err
		}
		i += b.r
		j += b.c
	}
	return out, nil
}

// FromArray normalizes value into a Matrix:
//   - *Dense     → returned unchanged (same instance)
//   - number     → 1×1
//   - []float64  → 1×n row vector; an empty slice yields 0×0
//   - [][]float64 and []any trees → nested rows
func FromArray(value any) (*Dense, error) {
	if d, ok := value.(*Dense); ok {
		return d, nil
	}
	if v, ok := toFloat(value); ok {
		return wrapDense(1, 1, []float64{v}), nil
	}
	nested, flat, err := flattenInit(value)
	if err != nil {
		return nil, matrixErrorf(opFromArray, err)
	}
	if nested != nil {
		m, err := NewFromRows(nested)
		if err != nil {
			return nil, matrixErrorf(opFromArray, err)
		}
		return m, nil
	}
	if len(flat) == 0 {
		return newDense(0, 0), nil
	}
	return NewFromSlice(1, len(flat), flat)
}

// Random returns an r×c matrix with entries drawn uniformly from [lo, hi).
func Random(rows, cols int, lo, hi float64, opts ...Option) (*Dense, error) {
	m, err := New(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opRandom, err)
	}
	rng := NewOptions(opts...).Rand()
	w := hi - lo
	for k := range m.data {
		m.data[k] = lo + w*rng.Float64()
	}
	return m, nil
}

// Randn returns an r×c matrix of independent normal samples with mean 0 and
// variance 1.
func Randn(rows, cols int, opts ...Option) (*Dense, error) {
	return RandnWith(rows, cols, 0.0, 1.0, opts...)
}

// RandnWith samples rows of a (multivariate) normal distribution.
//   - mean: number (shared by every column), []float64 of length cols, or a 1×cols *Dense.
//   - sigma: number (shared variance) or a cols×cols covariance *Dense / [][]float64.
//
// A covariance is applied through its Cholesky factor: x = mean + z·Lᵀ.
// Errors:
//   - ErrDimensionMismatch when mean is not 1×cols or sigma is not cols×cols.
//   - ErrAsymmetry when sigma is not symmetric.
func RandnWith(rows, cols int, mean, sigma any, opts ...Option) (*Dense, error) {
	m, err := New(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opRandn, err)
	}
	o := NewOptions(opts...)
	rng := o.Rand()

	mu := make([]float64, cols)
	if v, ok := toFloat(mean); ok {
		for j := range mu {
			mu[j] = v
		}
	} else {
		md, err := FromArray(mean)
		if err != nil {
			return nil, matrixErrorf(opRandn, err)
		}
		if md.r != 1 || md.c != cols {
			return nil, fmt.Errorf("%s: mean must be 1x%d, got %dx%d: %w", opRandn, cols, md.r, md.c, ErrDimensionMismatch)
		}
		copy(mu, md.data)
	}

	if v, ok := toFloat(sigma); ok {
		sd := math.Sqrt(v)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				m.data[i*cols+j] = mu[j] + sd*rng.NormFloat64()
			}
		}
		return m, nil
	}

	sd, err := FromArray(sigma)
	if err != nil {
		return nil, matrixErrorf(opRandn, err)
	}
	if sd.r != cols || sd.c != cols {
		return nil, fmt.Errorf("%s: sigma must be %dx%d, got %dx%d: %w", opRandn, cols, cols, sd.r, sd.c, ErrDimensionMismatch)
	}
	L, err := choleskyFactor(sd, o.Epsilon())
	if err != nil {
		return nil, matrixErrorf(opRandn, err)
	}
	z := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := range z {
			z[j] = rng.NormFloat64()
		}
		row := m.data[i*cols : (i+1)*cols]
		for j := 0; j < cols; j++ {
			s := mu[j]
			for k := 0; k <= j; k++ {
				s += L.data[j*cols+k] * z[k]
			}
			row[j] = s
		}
	}
	return m, nil
}

// choleskyFactor returns the lower factor of a symmetric positive
// semi-definite matrix; tiny negative pivots from rounding are clamped to 0.
// Symmetry is checked within eps·max|a|.
func choleskyFactor(a *Dense, eps float64) (*Dense, error) {
	if a.r != a.c {
		return nil, ErrNonSquare
	}
	if !isSymmetric(a, eps*absMax(a.data)) {
		return nil, ErrAsymmetry
	}
	n := a.r
	L := newDense(n, n)
	var i, j, k int
	for j = 0; j < n; j++ {
		s := a.data[j*n+j]
		for k = 0; k < j; k++ {
			s -= L.data[j*n+k] * L.data[j*n+k]
		}
		if s < 0 {
			s = 0
		}
		d := math.Sqrt(s)
		L.data[j*n+j] = d
		for i = j + 1; i < n; i++ {
			t := a.data[i*n+j]
			for k = 0; k < j; k++ {
				t -= L.data[i*n+k] * L.data[j*n+k]
			}
			if d != 0 {
				L.data[i*n+j] = t / d
			}
		}
	}
	return L, nil
}

// absMax returns the largest magnitude in v, skipping NaN.
func absMax(v []float64) float64 {
	var mx float64
	for _, x := range v {
		if ax := math.Abs(x); ax > mx {
			mx = ax
		}
	}
	return mx
}

// toFloat reports whether v is a scalar number and returns it as float64.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// flattenInit converts a slice initializer into either nested rows (2-D input)
// or a flat row-major slice (1-D input). Exactly one result is non-nil on
// success; an empty 1-D input yields an empty, non-nil flat slice.
func flattenInit(v any) ([][]float64, []float64, error) {
	switch x := v.(type) {
	case []float64:
		out := make([]float64, len(x))
		copy(out, x)
		return nil, out, nil
	case []int:
		out := make([]float64, len(x))
		for k, e := range x {
			out[k] = float64(e)
		}
		return nil, out, nil
	case [][]float64:
		out := make([][]float64, len(x))
		for i, row := range x {
			out[i] = append([]float64(nil), row...)
		}
		return out, nil, nil
	case [][]int:
		out := make([][]float64, len(x))
		for i, row := range x {
			out[i] = make([]float64, len(row))
			for j, e := range row {
				out[i][j] = float64(e)
			}
		}
		return out, nil, nil
	case []any:
		if len(x) == 0 {
			return nil, []float64{}, nil
		}
		if _, ok := toFloat(x[0]); ok {
			out := make([]float64, len(x))
			for k, e := range x {
				f, ok := toFloat(e)
				if !ok {
					return nil, nil, ErrUnsupportedInit
				}
				out[k] = f
			}
			return nil, out, nil
		}
		out := make([][]float64, len(x))
		for i, e := range x {
			_, row, err := flattenInit(e)
			if err != nil || row == nil {
				return nil, nil, ErrUnsupportedInit
			}
			out[i] = row
		}
		return out, nil, nil
	case *Dense:
		return x.ToArray(), nil, nil
	}
	return nil, nil, ErrUnsupportedInit
}
