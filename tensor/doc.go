// Package tensor is the N-dimensional sibling of matrix.Dense.
//
// A Tensor owns a flat row-major float64 buffer whose length always equals
// the product of its sizes. Rank 0 is a scalar (one element); zero extents
// are legal and give an empty tensor.
//
// Elementwise arithmetic follows the same two families as matrix:
// in-place (Add, Sub, Mult, Div and their Scalar forms) mutating the
// receiver, and copying (CopyAdd, ...) returning a new tensor. Operands of
// different shapes broadcast by modulo tiling on every axis after the
// lower-rank operand is left-padded with ones:
//
//	a, _ := tensor.Ones(2, 3, 4)
//	b, _ := tensor.FromArray([]float64{1, 2, 3, 4}) // sizes [4]
//	a.Add(b)                                         // a[i][j][k] += b[k]
//
// Rank-2 tensors convert to and from matrix.Dense without copying semantics
// leaking: both directions allocate.
package tensor
