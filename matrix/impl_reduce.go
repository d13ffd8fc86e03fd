// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Whole-matrix reductions returning a scalar (Sum, Mean, ..., Quantile).
//   - Axis reductions returning a 1×cols (AxisRow) or rows×1 (AxisCol) matrix.
//
// Design:
//   - Every axis reduction is a vector function applied per line by
//     reduceLines, so Sum/Mean/Prod/... share one traversal.
//   - Vector kernels come from gonum/floats.
//
// Notes:
//   - Variance is the population variance (divide by n).
//   - Quantile interpolates linearly at position (n-1)·q between order statistics.
//   - Empty inputs: Sum=0, Prod=1, Mean/Variance/Median/Quantile=NaN,
//     Max=-Inf, Min=+Inf, Argmax/Argmin=(-1,-1).
package matrix

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

const (
	opReduce   = "ReduceAxis"
	opQuantile = "Quantile"
)

// reduceLines applies f to every column (AxisRow) or row (AxisCol) and
// collects the results into a 1×cols or rows×1 matrix.
func (m *Dense) reduceLines(tag string, axis Axis, f func(v []float64) float64) (*Dense, error) {
	switch axis {
	case AxisRow:
		out := newDense(1, m.c)
		col := make([]float64, m.r)
		for j := 0; j < m.c; j++ {
			for i := 0; i < m.r; i++ {
				col[i] = m.data[i*m.c+j]
			}
			out.data[j] = f(col)
		}
		return out, nil
	case AxisCol:
		out := newDense(m.r, 1)
		for i := 0; i < m.r; i++ {
			out.data[i] = f(m.data[i*m.c : (i+1)*m.c])
		}
		return out, nil
	}
	return nil, matrixErrorf(tag, ErrInvalidAxis)
}

// Reduce folds every element into acc in row-major order starting from init.
func (m *Dense) Reduce(f func(acc, x float64) float64, init float64) float64 {
	acc := init
	for _, v := range m.data {
		acc = f(acc, v)
	}
	return acc
}

// ReduceAxis folds each column (AxisRow) or row (AxisCol) starting from init.
func (m *Dense) ReduceAxis(f func(acc, x float64) float64, init float64, axis Axis) (*Dense, error) {
	return m.reduceLines(opReduce, axis, func(v []float64) float64 {
		acc := init
		for _, x := range v {
			acc = f(acc, x)
		}
		return acc
	})
}

// Sum returns the sum of all elements.
func (m *Dense) Sum() float64 { return floats.Sum(m.data) }

// SumAxis returns per-column (AxisRow) or per-row (AxisCol) sums.
func (m *Dense) SumAxis(axis Axis) (*Dense, error) {
	return m.reduceLines("SumAxis", axis, floats.Sum)
}

// Mean returns the arithmetic mean of all elements.
func (m *Dense) Mean() float64 { return mean(m.data) }

// MeanAxis returns per-line means.
func (m *Dense) MeanAxis(axis Axis) (*Dense, error) {
	return m.reduceLines("MeanAxis", axis, mean)
}

// Prod returns the product of all elements.
func (m *Dense) Prod() float64 { return floats.Prod(m.data) }

// ProdAxis returns per-line products.
func (m *Dense) ProdAxis(axis Axis) (*Dense, error) {
	return m.reduceLines("ProdAxis", axis, floats.Prod)
}

// Variance returns the population variance of all elements.
func (m *Dense) Variance() float64 { return variance(m.data) }

// VarianceAxis returns per-line population variances.
func (m *Dense) VarianceAxis(axis Axis) (*Dense, error) {
	return m.reduceLines("VarianceAxis", axis, variance)
}

// Std returns the population standard deviation of all elements.
func (m *Dense) Std() float64 { return math.Sqrt(variance(m.data)) }

// StdAxis returns per-line standard deviations.
func (m *Dense) StdAxis(axis Axis) (*Dense, error) {
	return m.reduceLines("StdAxis", axis, func(v []float64) float64 { return math.Sqrt(variance(v)) })
}

// Median returns the median of all elements (mean of the two middle values
// for an even count).
func (m *Dense) Median() float64 { return quantile(m.data, 0.5) }

// MedianAxis returns per-line medians.
func (m *Dense) MedianAxis(axis Axis) (*Dense, error) {
	return m.reduceLines("MedianAxis", axis, func(v []float64) float64 { return quantile(v, 0.5) })
}

// Quantile returns the q-quantile of all elements, q in [0, 1].
func (m *Dense) Quantile(q float64) (float64, error) {
	if q < 0 || q > 1 || math.IsNaN(q) {
		return 0, fmt.Errorf("%s: q=%v: %w", opQuantile, q, ErrInvalidArgument)
	}
	return quantile(m.data, q), nil
}

// QuantileAxis returns per-line q-quantiles.
func (m *Dense) QuantileAxis(q float64, axis Axis) (*Dense, error) {
	if q < 0 || q > 1 || math.IsNaN(q) {
		return nil, fmt.Errorf("%s: q=%v: %w", opQuantile, q, ErrInvalidArgument)
	}
	return m.reduceLines(opQuantile, axis, func(v []float64) float64 { return quantile(v, q) })
}

// Max returns the largest element.
func (m *Dense) Max() float64 { return maxOf(m.data) }

// MaxAxis returns per-line maxima.
func (m *Dense) MaxAxis(axis Axis) (*Dense, error) { return m.reduceLines("MaxAxis", axis, maxOf) }

// Min returns the smallest element.
func (m *Dense) Min() float64 { return minOf(m.data) }

// MinAxis returns per-line minima.
func (m *Dense) MinAxis(axis Axis) (*Dense, error) { return m.reduceLines("MinAxis", axis, minOf) }

// Argmax returns the (row, col) of the first largest element.
func (m *Dense) Argmax() (int, int) {
	if len(m.data) == 0 {
		return -1, -1
	}
	k := floats.MaxIdx(m.data)
	return k / m.c, k % m.c
}

// Argmin returns the (row, col) of the first smallest element.
func (m *Dense) Argmin() (int, int) {
	if len(m.data) == 0 {
		return -1, -1
	}
	k := floats.MinIdx(m.data)
	return k / m.c, k % m.c
}

// ArgmaxAxis returns the index of the largest entry of every line.
func (m *Dense) ArgmaxAxis(axis Axis) (*Dense, error) {
	return m.reduceLines("ArgmaxAxis", axis, func(v []float64) float64 {
		if len(v) == 0 {
			return -1
		}
		return float64(floats.MaxIdx(v))
	})
}

// ArgminAxis returns the index of the smallest entry of every line.
func (m *Dense) ArgminAxis(axis Axis) (*Dense, error) {
	return m.reduceLines("ArgminAxis", axis, func(v []float64) float64 {
		if len(v) == 0 {
			return -1
		}
		return float64(floats.MinIdx(v))
	})
}

// Every reports whether pred holds for all elements (true when empty).
func (m *Dense) Every(pred func(x float64) bool) bool {
	return !slices.ContainsFunc(m.data, func(x float64) bool { return !pred(x) })
}

// Some reports whether pred holds for at least one element.
func (m *Dense) Some(pred func(x float64) bool) bool {
	return slices.ContainsFunc(m.data, pred)
}

// EveryAxis returns 1/0 per line telling whether pred holds for all entries.
func (m *Dense) EveryAxis(pred func(x float64) bool, axis Axis) (*Dense, error) {
	return m.reduceLines("EveryAxis", axis, func(v []float64) float64 {
		return boolToFloat(!slices.ContainsFunc(v, func(x float64) bool { return !pred(x) }))
	})
}

// SomeAxis returns 1/0 per line telling whether pred holds for any entry.
func (m *Dense) SomeAxis(pred func(x float64) bool, axis Axis) (*Dense, error) {
	return m.reduceLines("SomeAxis", axis, func(v []float64) float64 {
		return boolToFloat(slices.ContainsFunc(v, pred))
	})
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return math.NaN()
	}
	return floats.Sum(v) / float64(len(v))
}

func variance(v []float64) float64 {
	if len(v) == 0 {
		return math.NaN()
	}
	mu := mean(v)
	var s float64
	for _, x := range v {
		s += (x - mu) * (x - mu)
	}
	return s / float64(len(v))
}

func maxOf(v []float64) float64 {
	if len(v) == 0 {
		return math.Inf(-1)
	}
	return floats.Max(v)
}

func minOf(v []float64) float64 {
	if len(v) == 0 {
		return math.Inf(1)
	}
	return floats.Min(v)
}

// quantile sorts a copy of v and interpolates at (n-1)·q.
func quantile(v []float64, q float64) float64 {
	n := len(v)
	if n == 0 {
		return math.NaN()
	}
	s := slices.Clone(v)
	slices.Sort(s)
	pos := float64(n-1) * q
	lo := int(math.Floor(pos))
	if lo >= n-1 {
		return s[n-1]
	}
	return s[lo] + (pos-float64(lo))*(s[lo+1]-s[lo])
}
