// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package and its ops sub-package. All algorithms MUST return these sentinels
// and tests MUST check them via errors.Is. No algorithm should panic on
// user-triggered error conditions. Panics are reserved for programmer errors
// in option constructors.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Operations wrap the sentinel with their tag
// (see matrixErrorf), callers still match with errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> index/length -> dimension mismatch -> structural violations
// -> numeric domain (singular, complex spectrum).

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are negative.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be >= 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of bounds")

	// ErrInvalidLength is returned when a supplied sequence (initializer, boolean
	// mask, index list) does not have the length the shape requires.
	ErrInvalidLength = errors.New("matrix: length is invalid")

	// ErrLengthDifferent is returned by Reshape when rows*cols changes.
	ErrLengthDifferent = errors.New("matrix: length is different")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. a broadcast pair where neither operand tiles the other, or Dot where
	// a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: size invalid")

	// ErrInvalidAxis is returned when an axis argument is not one of the
	// supported values for the operation.
	ErrInvalidAxis = errors.New("matrix: invalid axis")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: only defined for square matrix")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the configured tolerance.
	ErrAsymmetry = errors.New("matrix: only defined for symmetric matrix")

	// ErrNotScalar is returned by ToScalar for any shape other than 1×1.
	ErrNotScalar = errors.New("matrix: cannot convert to scalar")

	// ErrSingular is returned when a zero pivot is encountered during
	// inversion, solving, or non-pivoting LU.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrNotPositiveDefinite is returned by the Cholesky family when a pivot
	// turns clearly negative.
	ErrNotPositiveDefinite = errors.New("matrix: matrix is not positive definite")

	// ErrOverdetermined is returned by Solve when A has more rows than columns.
	ErrOverdetermined = errors.New("matrix: only square matrix or matrix with more columns than rows can be solved")

	// ErrComplexEigen signals that a spectral function needs real eigenvalues
	// but the input has a complex-conjugate pair.
	ErrComplexEigen = errors.New("matrix: eigenvalues are not real")

	// ErrEigenDomain signals that a real eigenvalue lies outside the domain of
	// the requested matrix function (e.g. log of a non-positive eigenvalue).
	ErrEigenDomain = errors.New("matrix: eigenvalue outside function domain")

	// ErrInvalidArgument covers out-of-domain scalar arguments (quantile q,
	// sample size, repeat count).
	ErrInvalidArgument = errors.New("matrix: invalid argument")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrUnsupportedInit is returned by FromArray/NewWithInit for initializer
	// values that are neither numbers, flat nor nested numeric slices.
	ErrUnsupportedInit = errors.New("matrix: unsupported initializer")
)

// matrixErrorf wraps a sentinel with an operation tag.
// Implementation:
//   - Stage 1: format "<tag>: %w" so errors.Is keeps matching the sentinel.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// The result reads "Dense.<method>(row,col): <sentinel>".
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// shapeErrorf wraps a dimension error with both operand shapes for diagnostics.
func shapeErrorf(tag string, ar, ac, br, bc int, err error) error {
	return fmt.Errorf("%s: %dx%d vs %dx%d: %w", tag, ar, ac, br, bc, err)
}
