// SPDX-License-Identifier: MIT

package tensor

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers match with errors.Is; every operation wraps them
// with its tag ("Reshape: tensor: ...").
var (
	// ErrInvalidShape is returned for negative extents.
	ErrInvalidShape = errors.New("tensor: extents must be >= 0")

	// ErrOutOfRange is returned for an index outside the tensor, or an index
	// tuple whose length differs from the rank.
	ErrOutOfRange = errors.New("tensor: index out of bounds")

	// ErrInvalidLength is returned when an initializer or a reshape target
	// does not hold exactly product(sizes) values.
	ErrInvalidLength = errors.New("tensor: length is invalid")

	// ErrDimensionMismatch is returned when two shapes cannot be broadcast or
	// concatenated.
	ErrDimensionMismatch = errors.New("tensor: size invalid")

	// ErrInvalidAxis is returned for an axis outside [0, rank).
	ErrInvalidAxis = errors.New("tensor: invalid axis")

	// ErrInvalidPermutation is returned by Transpose when the axes are not a
	// permutation of 0..rank-1.
	ErrInvalidPermutation = errors.New("tensor: invalid axis permutation")

	// ErrUnsupportedInit is returned by FromArray for non-numeric input or
	// ragged nesting.
	ErrUnsupportedInit = errors.New("tensor: unsupported initializer")

	// ErrNilTensor is returned when a nil operand is passed.
	ErrNilTensor = errors.New("tensor: nil tensor")
)

func tensorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

func shapeErrorf(tag string, a, b Shape, err error) error {
	return fmt.Errorf("%s: %v vs %v: %w", tag, []int(a), []int(b), err)
}
