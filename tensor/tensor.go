// SPDX-License-Identifier: MIT

// Package tensor - storage, constructors and element access.
//
// Purpose:
//   - Own a flat row-major buffer with len(data) == sizes.NumElements().
//   - Address elements by index tuple through precomputed strides.
package tensor

import (
	"fmt"

	"github.com/katalvlaran/lvla/matrix"
)

const (
	ctxAt     = "At"
	ctxSet    = "Set"
	opNew     = "New"
	opRandom  = "Random"
	opRandn   = "Randn"
	opFromMat = "FromMatrix"
)

// Tensor is a dense N-dimensional float64 array.
type Tensor struct {
	sizes   Shape
	strides []int
	data    []float64
}

var _ fmt.Stringer = (*Tensor)(nil)

func newTensor(sizes Shape) *Tensor {
	return &Tensor{sizes: sizes, strides: sizes.Strides(), data: make([]float64, sizes.NumElements())}
}

// wrap adopts data without copying (len(data) == sizes.NumElements()).
func wrap(sizes Shape, data []float64) *Tensor {
	return &Tensor{sizes: sizes, strides: sizes.Strides(), data: data}
}

// New returns a zero tensor with the given extents. No extents yields a
// scalar tensor holding one zero.
// Errors:
//   - ErrInvalidShape for a negative extent.
func New(sizes ...int) (*Tensor, error) {
	s := Shape(sizes).Clone()
	if err := s.Validate(); err != nil {
		return nil, tensorErrorf(opNew, err)
	}
	return newTensor(s), nil
}

// Zeros is New.
func Zeros(sizes ...int) (*Tensor, error) { return New(sizes...) }

// Ones returns a tensor filled with ones.
func Ones(sizes ...int) (*Tensor, error) {
	t, err := New(sizes...)
	if err != nil {
		return nil, err
	}
	return t.Fill(1), nil
}

// NewFromSlice returns a tensor with the given extents over a copy of values.
// Errors:
//   - ErrInvalidLength when len(values) != product(sizes).
func NewFromSlice(sizes Shape, values []float64) (*Tensor, error) {
	t, err := New(sizes...)
	if err != nil {
		return nil, err
	}
	if len(values) != len(t.data) {
		return nil, fmt.Errorf("%s: %d values for %v: %w", opNew, len(values), []int(sizes), ErrInvalidLength)
	}
	copy(t.data, values)
	return t, nil
}

// Random returns a tensor with entries uniform on [lo, hi). The random source
// follows matrix.WithRand, falling back to the shared matrix source.
func Random(sizes Shape, lo, hi float64, opts ...matrix.Option) (*Tensor, error) {
	t, err := New(sizes...)
	if err != nil {
		return nil, tensorErrorf(opRandom, err)
	}
	rng := matrix.NewOptions(opts...).Rand()
	for k := range t.data {
		t.data[k] = lo + (hi-lo)*rng.Float64()
	}
	return t, nil
}

// Randn returns a tensor of independent normal samples with the given mean
// and standard deviation.
func Randn(sizes Shape, mean, std float64, opts ...matrix.Option) (*Tensor, error) {
	t, err := New(sizes...)
	if err != nil {
		return nil, tensorErrorf(opRandn, err)
	}
	rng := matrix.NewOptions(opts...).Rand()
	for k := range t.data {
		t.data[k] = mean + std*rng.NormFloat64()
	}
	return t, nil
}

// FromMatrix copies a matrix into a rank-2 tensor.
func FromMatrix(m *matrix.Dense) (*Tensor, error) {
	if m == nil {
		return nil, tensorErrorf(opFromMat, ErrNilTensor)
	}
	r, c := m.Shape()
	return wrap(Shape{r, c}, m.ToFlat()), nil
}

// Sizes returns a copy of the extents.
func (t *Tensor) Sizes() Shape { return t.sizes.Clone() }

// Dims returns the rank.
func (t *Tensor) Dims() int { return len(t.sizes) }

// Len returns the number of elements.
func (t *Tensor) Len() int { return len(t.data) }

// Data returns the backing row-major slice. Writes through it mutate t.
func (t *Tensor) Data() []float64 { return t.data }

// offset converts an index tuple to a flat offset.
func (t *Tensor) offset(idx []int) (int, bool) {
	if len(idx) != len(t.sizes) {
		return 0, false
	}
	off := 0
	for i, k := range idx {
		if k < 0 || k >= t.sizes[i] {
			return 0, false
		}
		off += k * t.strides[i]
	}
	return off, true
}

// At returns the element at the index tuple.
// Errors:
//   - ErrOutOfRange when len(idx) != Dims() or any index is out of bounds.
func (t *Tensor) At(idx ...int) (float64, error) {
	off, ok := t.offset(idx)
	if !ok {
		return 0, fmt.Errorf("Tensor.%s%v: %w", ctxAt, idx, ErrOutOfRange)
	}
	return t.data[off], nil
}

// Set writes v at the index tuple.
func (t *Tensor) Set(v float64, idx ...int) error {
	off, ok := t.offset(idx)
	if !ok {
		return fmt.Errorf("Tensor.%s%v: %w", ctxSet, idx, ErrOutOfRange)
	}
	t.data[off] = v
	return nil
}

// Copy returns an independent deep copy.
func (t *Tensor) Copy() *Tensor {
	return wrap(t.sizes.Clone(), append([]float64(nil), t.data...))
}

// Equals reports equal shapes and element-wise |a-b| <= eps.
func (t *Tensor) Equals(other *Tensor, eps float64) bool {
	if other == nil || !t.sizes.Equal(other.sizes) {
		return false
	}
	for k, v := range t.data {
		d := v - other.data[k]
		if v != other.data[k] && (d > eps || d < -eps) {
			return false
		}
	}
	return true
}

// Fill sets every element to v and returns t.
func (t *Tensor) Fill(v float64) *Tensor {
	for k := range t.data {
		t.data[k] = v
	}
	return t
}

// Map replaces every element x with f(x) and returns t.
func (t *Tensor) Map(f func(x float64) float64) *Tensor {
	for k, v := range t.data {
		t.data[k] = f(v)
	}
	return t
}

// CopyMap returns a new tensor with f applied to every element.
func (t *Tensor) CopyMap(f func(x float64) float64) *Tensor { return t.Copy().Map(f) }

// unravel writes the index tuple of flat offset off into idx.
func (t *Tensor) unravel(off int, idx []int) {
	for i, s := range t.strides {
		idx[i] = off / s
		off %= s
	}
}
