// SPDX-License-Identifier: MIT

package tensor

import "slices"

// Shape holds the extent of every axis, outermost first.
type Shape []int

// NumElements returns the product of the extents (1 for a scalar).
func (s Shape) NumElements() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Validate reports ErrInvalidShape when an extent is negative.
func (s Shape) Validate() error {
	for _, d := range s {
		if d < 0 {
			return ErrInvalidShape
		}
	}
	return nil
}

// Equal reports whether both shapes have the same rank and extents.
func (s Shape) Equal(other Shape) bool { return slices.Equal(s, other) }

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape { return append(make(Shape, 0, len(s)), s...) }

// Strides returns the row-major strides: stride[i] is the product of every
// extent after i.
func (s Shape) Strides() []int {
	strides := make([]int, len(s))
	acc := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= s[i]
	}
	return strides
}

// padLeft returns s left-padded with ones up to rank n.
func (s Shape) padLeft(n int) Shape {
	if len(s) >= n {
		return s
	}
	out := make(Shape, n)
	k := n - len(s)
	for i := 0; i < k; i++ {
		out[i] = 1
	}
	copy(out[k:], s)
	return out
}

// BroadcastShapes returns the result shape of a broadcast between a and b.
// The lower-rank shape is left-padded with ones; then the shapes must be
// equal, or one must dominate the other on every axis with each of its
// extents an exact multiple of the smaller one (modulo tiling).
func BroadcastShapes(a, b Shape) (Shape, error) {
	n := max(len(a), len(b))
	pa, pb := a.padLeft(n), b.padLeft(n)
	if pa.Equal(pb) {
		return pa.Clone(), nil
	}
	if tiles(pa, pb) {
		return pa.Clone(), nil
	}
	if tiles(pb, pa) {
		return pb.Clone(), nil
	}
	return nil, ErrDimensionMismatch
}

// tiles reports whether small tiles large axis by axis (same rank).
func tiles(large, small Shape) bool {
	for i := range large {
		if small[i] <= 0 || large[i] < small[i] || large[i]%small[i] != 0 {
			return false
		}
	}
	return true
}
