// SPDX-License-Identifier: MIT

package ops

import (
	"math"

	"github.com/katalvlaran/lvla/matrix"
)

const (
	opDet = "Det"
)

// Det returns the determinant of a square matrix.
//
//   - 0×0 → 0.
//   - 1×1 → the single element.
//   - otherwise the sign-adjusted product of U's diagonal of a pivoted LU.
//
// Errors:
//   - ErrNonSquare for non-square input.
func Det(a matrix.Matrix) (float64, error) {
	A, n, err := squareDense(opDet, a)
	if err != nil {
		return 0, err
	}
	switch n {
	case 0:
		return 0, nil
	case 1:
		return A.Data()[0], nil
	case 2:
		d := A.Data()
		return d[0]*d[3] - d[1]*d[2], nil
	}
	return factorPLU(A, 0).det(), nil
}

// IsRegular reports whether a is square with |det(a)| > eps (WithEpsilon).
// Non-square input is reported as not regular.
func IsRegular(a matrix.Matrix, opts ...matrix.Option) bool {
	d, err := Det(a)
	if err != nil {
		return false
	}
	return math.Abs(d) > matrix.NewOptions(opts...).Epsilon()
}
