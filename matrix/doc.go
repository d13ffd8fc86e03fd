// Package matrix is the dense, row-major numeric container at the heart of lvla.
//
// The matrix package provides:
//
//   - Dense, a rows×cols double-precision matrix that exclusively owns its
//     flat buffer (empty 0×n / n×0 shapes are legal).
//   - Named constructors: Zeros, Ones, Eye, Diag, DiagBlocks, Random, Randn,
//     FromArray, NewWithInit.
//   - Broadcasting arithmetic in two families: in-place (Add, Sub, ISub, Mult,
//     Div, IDiv and their Scalar forms) and copying (CopyAdd, ...).
//   - Shape transforms (Transpose, Flip, Swap, Sort, Shuffle, Resize, Reshape,
//     Repeat, Concat, Slice, Block, Remove, RemoveIf) and reductions over the
//     whole matrix or along an Axis.
//   - Products (Dot, TDot, Gram, Kron), Cov, Convolute, Trace, Norm.
//   - Structural predicates with a tolerance (IsSymmetric, IsOrthogonal,
//     IsNilpotent, ...).
//
// Decompositions, solvers and matrix functions live in matrix/ops.
//
// Broadcasting rule: two shapes are compatible when they are equal, or when
// one operand is at least as large on both axes and each of its extents is an
// exact multiple of the other's; the smaller operand is then tiled with
// modulo addressing.
//
//	a := matrix.Eye(4, 6, 1)          // 4×6
//	b, _ := matrix.NewFromRows(...)   // 2×3
//	a.Add(b)                          // a[i][j] += b[i%2][j%3]
//
// Errors are package-level sentinels matched with errors.Is.
package matrix
