// SPDX-License-Identifier: MIT

// Package tensor - shape manipulation.
//
// Reshape and Flip mutate the receiver; Transpose, Concat and Slice return a
// new tensor.
package tensor

import (
	"fmt"
	"slices"
)

const (
	opReshape   = "Reshape"
	opTranspose = "Transpose"
	opFlip      = "Flip"
	opConcat    = "Concat"
	opSlice     = "Slice"
)

func (t *Tensor) checkAxis(tag string, axis int) error {
	if axis < 0 || axis >= len(t.sizes) {
		return fmt.Errorf("%s: axis %d of rank %d: %w", tag, axis, len(t.sizes), ErrInvalidAxis)
	}
	return nil
}

// Reshape reinterprets the buffer with new extents. One extent may be -1 and
// is then inferred from the element count.
// Errors:
//   - ErrInvalidLength when the element count changes or -1 cannot be inferred.
func (t *Tensor) Reshape(sizes ...int) (*Tensor, error) {
	s := Shape(sizes).Clone()
	infer := -1
	known := 1
	for i, d := range s {
		switch {
		case d == -1 && infer < 0:
			infer = i
		case d < 0:
			return nil, tensorErrorf(opReshape, ErrInvalidShape)
		default:
			known *= d
		}
	}
	if infer >= 0 {
		if known == 0 || len(t.data)%known != 0 {
			return nil, shapeErrorf(opReshape, t.sizes, s, ErrInvalidLength)
		}
		s[infer] = len(t.data) / known
	}
	if s.NumElements() != len(t.data) {
		return nil, shapeErrorf(opReshape, t.sizes, s, ErrInvalidLength)
	}
	t.sizes, t.strides = s, s.Strides()
	return t, nil
}

// Transpose returns a new tensor whose axis i is the receiver's axis
// perm[i]. With no arguments the axis order is reversed.
// Errors:
//   - ErrInvalidPermutation when perm is not a permutation of 0..rank-1.
func (t *Tensor) Transpose(perm ...int) (*Tensor, error) {
	n := len(t.sizes)
	if len(perm) == 0 {
		perm = make([]int, n)
		for i := range perm {
			perm[i] = n - 1 - i
		}
	}
	if len(perm) != n {
		return nil, fmt.Errorf("%s: %v for rank %d: %w", opTranspose, perm, n, ErrInvalidPermutation)
	}
	seen := make([]bool, n)
	for _, p := range perm {
		if p < 0 || p >= n || seen[p] {
			return nil, fmt.Errorf("%s: %v: %w", opTranspose, perm, ErrInvalidPermutation)
		}
		seen[p] = true
	}
	sizes := make(Shape, n)
	for i, p := range perm {
		sizes[i] = t.sizes[p]
	}
	out := newTensor(sizes)
	idx := make([]int, n)
	for off := range out.data {
		out.unravel(off, idx)
		src := 0
		for i, p := range perm {
			src += idx[i] * t.strides[p]
		}
		out.data[off] = t.data[src]
	}
	return out, nil
}

// Flip reverses the order of the entries along axis.
func (t *Tensor) Flip(axis int) (*Tensor, error) {
	if err := t.checkAxis(opFlip, axis); err != nil {
		return nil, err
	}
	n, stride := t.sizes[axis], t.strides[axis]
	block := n * stride
	for base := 0; base < len(t.data); base += block {
		for lo, hi := 0, n-1; lo < hi; lo, hi = lo+1, hi-1 {
			a := t.data[base+lo*stride : base+(lo+1)*stride]
			b := t.data[base+hi*stride : base+(hi+1)*stride]
			for k := range a {
				a[k], b[k] = b[k], a[k]
			}
		}
	}
	return t, nil
}

// Concat returns t and other joined along axis.
// Errors:
//   - ErrDimensionMismatch when ranks or the other extents differ.
func (t *Tensor) Concat(other *Tensor, axis int) (*Tensor, error) {
	if other == nil {
		return nil, tensorErrorf(opConcat, ErrNilTensor)
	}
	if err := t.checkAxis(opConcat, axis); err != nil {
		return nil, err
	}
	if len(t.sizes) != len(other.sizes) {
		return nil, shapeErrorf(opConcat, t.sizes, other.sizes, ErrDimensionMismatch)
	}
	for i := range t.sizes {
		if i != axis && t.sizes[i] != other.sizes[i] {
			return nil, shapeErrorf(opConcat, t.sizes, other.sizes, ErrDimensionMismatch)
		}
	}
	sizes := t.sizes.Clone()
	sizes[axis] += other.sizes[axis]
	outer := 1
	for _, d := range t.sizes[:axis] {
		outer *= d
	}
	ca := t.sizes[axis] * t.strides[axis]
	cb := other.sizes[axis] * other.strides[axis]
	data := make([]float64, 0, sizes.NumElements())
	for o := 0; o < outer; o++ {
		data = append(data, t.data[o*ca:(o+1)*ca]...)
		data = append(data, other.data[o*cb:(o+1)*cb]...)
	}
	return wrap(sizes, data), nil
}

// Slice copies the half-open range [from, to) along axis; to == -1 means the
// full extent.
func (t *Tensor) Slice(from, to, axis int) (*Tensor, error) {
	if err := t.checkAxis(opSlice, axis); err != nil {
		return nil, err
	}
	n := t.sizes[axis]
	if to == -1 {
		to = n
	}
	if from < 0 || to > n || from > to {
		return nil, fmt.Errorf("%s: [%d:%d] of %d: %w", opSlice, from, to, n, ErrOutOfRange)
	}
	sizes := t.sizes.Clone()
	sizes[axis] = to - from
	stride := t.strides[axis]
	block := n * stride
	data := make([]float64, 0, sizes.NumElements())
	if block > 0 {
		for base := 0; base < len(t.data); base += block {
			data = append(data, t.data[base+from*stride:base+to*stride]...)
		}
	}
	return wrap(sizes, slices.Clip(data)), nil
}
