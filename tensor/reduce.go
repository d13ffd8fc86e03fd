// SPDX-License-Identifier: MIT

// Package tensor - reductions along one axis.
//
// A reduction removes the axis: a (2,3,4) tensor reduced on axis 1 yields a
// (2,4) tensor. Reducing a rank-1 tensor yields a scalar tensor (rank 0).
package tensor

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	opReduce = "Reduce"
	opSum    = "Sum"
	opMean   = "Mean"
	opMax    = "Max"
	opMin    = "Min"
)

// Reduce folds f over axis starting from init at every output position.
func (t *Tensor) Reduce(f func(acc, x float64) float64, init float64, axis int) (*Tensor, error) {
	return t.reduce(opReduce, f, init, axis)
}

func (t *Tensor) reduce(tag string, f func(acc, x float64) float64, init float64, axis int) (*Tensor, error) {
	if err := t.checkAxis(tag, axis); err != nil {
		return nil, err
	}
	sizes := make(Shape, 0, len(t.sizes)-1)
	sizes = append(sizes, t.sizes[:axis]...)
	sizes = append(sizes, t.sizes[axis+1:]...)
	out := newTensor(sizes)
	// outer blocks of n*inner elements; each output cell walks n entries
	// spaced inner apart.
	n, inner := t.sizes[axis], t.strides[axis]
	outer := len(out.data)
	if inner > 0 {
		outer /= inner
	}
	var o, k, p int
	for o = 0; o < outer; o++ {
		for p = 0; p < inner; p++ {
			acc := init
			base := o*n*inner + p
			for k = 0; k < n; k++ {
				acc = f(acc, t.data[base+k*inner])
			}
			out.data[o*inner+p] = acc
		}
	}
	return out, nil
}

// Sum adds the entries along axis.
func (t *Tensor) Sum(axis int) (*Tensor, error) {
	return t.reduce(opSum, func(acc, x float64) float64 { return acc + x }, 0, axis)
}

// Mean averages the entries along axis; an empty axis yields NaN.
func (t *Tensor) Mean(axis int) (*Tensor, error) {
	out, err := t.reduce(opMean, func(acc, x float64) float64 { return acc + x }, 0, axis)
	if err != nil {
		return nil, err
	}
	n := float64(t.sizes[axis])
	if n == 0 {
		return out.Fill(math.NaN()), nil
	}
	floats.Scale(1/n, out.data)
	return out, nil
}

// Max returns the largest entry along axis (-Inf for an empty axis).
func (t *Tensor) Max(axis int) (*Tensor, error) {
	return t.reduce(opMax, math.Max, math.Inf(-1), axis)
}

// Min returns the smallest entry along axis (+Inf for an empty axis).
func (t *Tensor) Min(axis int) (*Tensor, error) {
	return t.reduce(opMin, math.Min, math.Inf(1), axis)
}

// Total returns the sum of every element.
func (t *Tensor) Total() float64 { return floats.Sum(t.data) }
