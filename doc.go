// Package lvla is a dense numeric matrix / tensor engine for Go.
//
// Under the hood, everything is organized under a few subpackages:
//
//	matrix/       Dense matrix: construction, broadcasting arithmetic, shape
//	              transforms, reductions, structural predicates
//	matrix/ops/   decompositions (LU, QR, Cholesky, tridiagonal, Hessenberg,
//	              bidiagonal, eigen, SVD), solvers, inverses, matrix functions
//	tensor/       N-dimensional tensors with the same storage rules
//	cmd/lvla/     command line and HTTP front-end over the engine
//	examples/     runnable scenarios
//
// Quick example:
//
//	a, _ := matrix.NewFromRows([][]float64{{4, 1}, {1, 3}})
//	b, _ := matrix.NewFromRows([][]float64{{1}, {2}})
//	vals, vecs, _ := ops.Eigen(a)
//	x, _ := ops.Solve(a, b)
//
// Everything is real double precision, synchronous and deterministic except
// the randomized constructors, which draw from a seedable shared source.
package lvla
