// SPDX-License-Identifier: MIT

// Package matrix: core types.
//
// Purpose:
//   - Define the minimal Matrix contract every algorithm can fall back to.
//   - Define Axis, the selector shared by shape transforms and reductions.
//
// AI-Hints:
//   - Algorithms take Matrix and convert once with ToDense to reach the
//     flat row-major fast paths.
package matrix

// Matrix is the read/write contract for a dense rows×cols numeric container.
// Implementations MUST return ErrOutOfRange (wrapped) for invalid indices.
type Matrix interface {
	// Rows returns the number of rows (>= 0).
	Rows() int
	// Cols returns the number of columns (>= 0).
	Cols() int
	// At returns the element at (i, j).
	At(i, j int) (float64, error)
	// Set writes v at (i, j).
	Set(i, j int, v float64) error
	// Clone returns a deep copy.
	Clone() Matrix
}

// Axis selects the dimension a transform or reduction runs along.
type Axis int

const (
	// AxisAll reduces over every element and yields a scalar.
	AxisAll Axis = -1
	// AxisRow runs down the rows: reductions yield a 1×cols row, transforms
	// permute/remove/repeat whole rows.
	AxisRow Axis = 0
	// AxisCol runs across the columns: reductions yield a rows×1 column,
	// transforms act on whole columns.
	AxisCol Axis = 1
)

// End is the "to the end" bound accepted by Slice and Block.
const End = -1

// NormKind selects the entrywise norm computed by Dense.Norm.
type NormKind int

const (
	// NormL1 is the sum of absolute values.
	NormL1 NormKind = 1
	// NormFrobenius is the square root of the sum of squares.
	NormFrobenius NormKind = 2
	// NormInf is the largest absolute value.
	NormInf NormKind = -1
)
