// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Broadcasting element-wise arithmetic in two method families:
//     in-place (Add, Sub, ...) mutating the receiver and returning it, and
//     copying (CopyAdd, CopySub, ...) leaving the receiver untouched.
//   - A scalar operand applies uniformly; two matrices broadcast by tiling
//     the smaller one with modulo addressing:
//     out[i][j] = f(a[i % a.rows][j % a.cols], b[i % b.rows][j % b.cols]).
//
// Design:
//   - BroadcastShape is computed once before dispatch; kernels never branch
//     on shape compatibility.
//   - Equal-shape matrix operands and scalar operands run on gonum/floats
//     vector kernels over the flat buffer.
//
// Determinism & Performance:
//   - Fixed row-major traversal; O(R*C) time, O(R*C) space for copies.
//
// AI-Hints:
//   - ISub / IDiv are the reversed forms: m.ISub(b) stores b - m.
//   - An in-place op whose broadcast result is larger than the receiver
//     replaces the receiver's buffer (it still owns the new one).

package matrix

import (
	"gonum.org/v1/gonum/floats"
)

// Operation tags (error messages read "Add: 3x4 vs 2x3: matrix: size invalid").
const (
	opAdd  = "Add"
	opSub  = "Sub"
	opISub = "ISub"
	opMult = "Mult"
	opDiv  = "Div"
	opIDiv = "IDiv"
	opOp   = "Operate"
)

// BroadcastShape returns the result shape of a broadcast between an ar×ac and
// a br×bc operand.
// Implementation:
//   - Stage 1: equal shapes broadcast trivially.
//   - Stage 2: otherwise one operand must dominate the other on BOTH axes and
//     each of its extents must be an exact multiple of the smaller extent.
//
// Errors:
//   - ErrDimensionMismatch when neither operand tiles the other.
func BroadcastShape(ar, ac, br, bc int) (int, int, error) {
	if ar == br && ac == bc {
		return ar, ac, nil
	}
	if tiles(ar, ac, br, bc) {
		return ar, ac, nil
	}
	if tiles(br, bc, ar, ac) {
		return br, bc, nil
	}
	return 0, 0, ErrDimensionMismatch
}

// tiles reports whether an sr×sc operand tiles an lr×lc one.
func tiles(lr, lc, sr, sc int) bool {
	return sr > 0 && sc > 0 && lr >= sr && lc >= sc && lr%sr == 0 && lc%sc == 0
}

type binaryKind int

const (
	kindAdd binaryKind = iota
	kindSub
	kindISub
	kindMult
	kindDiv
	kindIDiv
)

func (k binaryKind) tag() string {
	return [...]string{opAdd, opSub, opISub, opMult, opDiv, opIDiv}[k]
}

func (k binaryKind) fn() func(x, y float64) float64 {
	switch k {
	case kindAdd:
		return func(x, y float64) float64 { return x + y }
	case kindSub:
		return func(x, y float64) float64 { return x - y }
	case kindISub:
		return func(x, y float64) float64 { return y - x }
	case kindMult:
		return func(x, y float64) float64 { return x * y }
	case kindDiv:
		return func(x, y float64) float64 { return x / y }
	default:
		return func(x, y float64) float64 { return y / x }
	}
}

// ewSameShape applies k to dst (== a's values) and b of identical length.
func ewSameShape(k binaryKind, dst, b []float64) {
	switch k {
	case kindAdd:
		floats.Add(dst, b)
	case kindSub:
		floats.Sub(dst, b)
	case kindMult:
		floats.Mul(dst, b)
	case kindDiv:
		floats.Div(dst, b)
	default:
		f := k.fn()
		for i, v := range dst {
			dst[i] = f(v, b[i])
		}
	}
}

// ewScalar applies k between every element of dst and v.
func ewScalar(k binaryKind, dst []float64, v float64) {
	switch k {
	case kindAdd:
		floats.AddConst(v, dst)
	case kindSub:
		floats.AddConst(-v, dst)
	case kindMult:
		floats.Scale(v, dst)
	default:
		f := k.fn()
		for i, x := range dst {
			dst[i] = f(x, v)
		}
	}
}

// ewBroadcast writes f(a, b) tiled to R×C into dst (len R*C). dst may alias
// a.data when a is already R×C.
func ewBroadcast(dst []float64, R, C int, a, b *Dense, f func(x, y float64) float64) {
	var i, j, ai, bi int
	for i = 0; i < R; i++ {
		ai = (i % a.r) * a.c
		bi = (i % b.r) * b.c
		row := dst[i*C : (i+1)*C]
		for j = 0; j < C; j++ {
			row[j] = f(a.data[ai+j%a.c], b.data[bi+j%b.c])
		}
	}
}

// binaryInPlace is the shared driver of the in-place matrix family.
func (m *Dense) binaryInPlace(k binaryKind, b *Dense) (*Dense, error) {
	if b == nil {
		return nil, matrixErrorf(k.tag(), ErrNilMatrix)
	}
	R, C, err := BroadcastShape(m.r, m.c, b.r, b.c)
	if err != nil {
		return nil, shapeErrorf(k.tag(), m.r, m.c, b.r, b.c, err)
	}
	if R == m.r && C == m.c && R == b.r && C == b.c {
		ewSameShape(k, m.data, b.data)
		return m, nil
	}
	dst := m.data
	if R != m.r || C != m.c {
		dst = make([]float64, R*C)
	}
	ewBroadcast(dst, R, C, m, b, k.fn())
	m.r, m.c, m.data = R, C, dst
	return m, nil
}

// binaryCopy is the shared driver of the Copy* family.
func (m *Dense) binaryCopy(k binaryKind, b *Dense) (*Dense, error) {
	if b == nil {
		return nil, matrixErrorf(k.tag(), ErrNilMatrix)
	}
	R, C, err := BroadcastShape(m.r, m.c, b.r, b.c)
	if err != nil {
		return nil, shapeErrorf(k.tag(), m.r, m.c, b.r, b.c, err)
	}
	out := newDense(R, C)
	if R == m.r && C == m.c && R == b.r && C == b.c {
		copy(out.data, m.data)
		ewSameShape(k, out.data, b.data)
		return out, nil
	}
	ewBroadcast(out.data, R, C, m, b, k.fn())
	return out, nil
}

// Add stores m + b (broadcast) in m and returns m.
func (m *Dense) Add(b *Dense) (*Dense, error) { return m.binaryInPlace(kindAdd, b) }

// Sub stores m - b in m.
func (m *Dense) Sub(b *Dense) (*Dense, error) { return m.binaryInPlace(kindSub, b) }

// ISub stores b - m in m.
func (m *Dense) ISub(b *Dense) (*Dense, error) { return m.binaryInPlace(kindISub, b) }

// Mult stores the element-wise product m ∘ b in m.
func (m *Dense) Mult(b *Dense) (*Dense, error) { return m.binaryInPlace(kindMult, b) }

// Div stores m / b in m.
func (m *Dense) Div(b *Dense) (*Dense, error) { return m.binaryInPlace(kindDiv, b) }

// IDiv stores b / m in m.
func (m *Dense) IDiv(b *Dense) (*Dense, error) { return m.binaryInPlace(kindIDiv, b) }

// CopyAdd returns m + b without modifying m.
func (m *Dense) CopyAdd(b *Dense) (*Dense, error) { return m.binaryCopy(kindAdd, b) }

// CopySub returns m - b.
func (m *Dense) CopySub(b *Dense) (*Dense, error) { return m.binaryCopy(kindSub, b) }

// CopyISub returns b - m.
func (m *Dense) CopyISub(b *Dense) (*Dense, error) { return m.binaryCopy(kindISub, b) }

// CopyMult returns m ∘ b.
func (m *Dense) CopyMult(b *Dense) (*Dense, error) { return m.binaryCopy(kindMult, b) }

// CopyDiv returns m / b.
func (m *Dense) CopyDiv(b *Dense) (*Dense, error) { return m.binaryCopy(kindDiv, b) }

// CopyIDiv returns b / m.
func (m *Dense) CopyIDiv(b *Dense) (*Dense, error) { return m.binaryCopy(kindIDiv, b) }

// AddScalar adds v to every element in place.
func (m *Dense) AddScalar(v float64) *Dense { ewScalar(kindAdd, m.data, v); return m }

// SubScalar subtracts v from every element in place.
func (m *Dense) SubScalar(v float64) *Dense { ewScalar(kindSub, m.data, v); return m }

// ISubScalar replaces every element x with v - x.
func (m *Dense) ISubScalar(v float64) *Dense { ewScalar(kindISub, m.data, v); return m }

// MultScalar scales every element by v in place.
func (m *Dense) MultScalar(v float64) *Dense { ewScalar(kindMult, m.data, v); return m }

// DivScalar divides every element by v in place.
func (m *Dense) DivScalar(v float64) *Dense { ewScalar(kindDiv, m.data, v); return m }

// IDivScalar replaces every element x with v / x.
func (m *Dense) IDivScalar(v float64) *Dense { ewScalar(kindIDiv, m.data, v); return m }

// CopyAddScalar returns m + v.
func (m *Dense) CopyAddScalar(v float64) *Dense { return m.Copy().AddScalar(v) }

// CopySubScalar returns m - v.
func (m *Dense) CopySubScalar(v float64) *Dense { return m.Copy().SubScalar(v) }

// CopyISubScalar returns v - m.
func (m *Dense) CopyISubScalar(v float64) *Dense { return m.Copy().ISubScalar(v) }

// CopyMultScalar returns v·m.
func (m *Dense) CopyMultScalar(v float64) *Dense { return m.Copy().MultScalar(v) }

// CopyDivScalar returns m / v.
func (m *Dense) CopyDivScalar(v float64) *Dense { return m.Copy().DivScalar(v) }

// CopyIDivScalar returns v / m.
func (m *Dense) CopyIDivScalar(v float64) *Dense { return m.Copy().IDivScalar(v) }

// Operate applies an arbitrary binary function with the same broadcasting
// rules and stores the result in m.
func (m *Dense) Operate(b *Dense, f func(x, y float64) float64) (*Dense, error) {
	if b == nil {
		return nil, matrixErrorf(opOp, ErrNilMatrix)
	}
	R, C, err := BroadcastShape(m.r, m.c, b.r, b.c)
	if err != nil {
		return nil, shapeErrorf(opOp, m.r, m.c, b.r, b.c, err)
	}
	dst := m.data
	if R != m.r || C != m.c {
		dst = make([]float64, R*C)
	}
	ewBroadcast(dst, R, C, m, b, f)
	m.r, m.c, m.data = R, C, dst
	return m, nil
}

// CopyOperate is the non-mutating form of Operate.
func (m *Dense) CopyOperate(b *Dense, f func(x, y float64) float64) (*Dense, error) {
	return m.Copy().Operate(b, f)
}
