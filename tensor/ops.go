// SPDX-License-Identifier: MIT

// Package tensor - broadcasting elementwise arithmetic.
//
// out[idx] = f(a[idx mod a.sizes], b[idx mod b.sizes]) over the broadcast
// shape, after left-padding the lower-rank operand with ones.
package tensor

import "gonum.org/v1/gonum/floats"

const (
	opAdd  = "Add"
	opSub  = "Sub"
	opMult = "Mult"
	opDiv  = "Div"
)

type binaryOp struct {
	tag string
	f   func(x, y float64) float64
	// same is the equal-shape vector kernel (dst op= src).
	same func(dst, src []float64)
}

var (
	addOp  = binaryOp{opAdd, func(x, y float64) float64 { return x + y }, floats.Add}
	subOp  = binaryOp{opSub, func(x, y float64) float64 { return x - y }, floats.Sub}
	multOp = binaryOp{opMult, func(x, y float64) float64 { return x * y }, floats.Mul}
	divOp  = binaryOp{opDiv, func(x, y float64) float64 { return x / y }, floats.Div}
)

// broadcastInto writes f(a, b) over the shape of out.
func broadcastInto(out, a, b *Tensor, f func(x, y float64) float64) {
	n := len(out.sizes)
	pa, pb := a.sizes.padLeft(n), b.sizes.padLeft(n)
	sa, sb := pa.Strides(), pb.Strides()
	idx := make([]int, n)
	for off := range out.data {
		out.unravel(off, idx)
		var ia, ib int
		for i, k := range idx {
			ia += (k % pa[i]) * sa[i]
			ib += (k % pb[i]) * sb[i]
		}
		out.data[off] = f(a.data[ia], b.data[ib])
	}
}

func (t *Tensor) binary(op binaryOp, other *Tensor, inPlace bool) (*Tensor, error) {
	if other == nil {
		return nil, tensorErrorf(op.tag, ErrNilTensor)
	}
	sh, err := BroadcastShapes(t.sizes, other.sizes)
	if err != nil {
		return nil, shapeErrorf(op.tag, t.sizes, other.sizes, err)
	}
	if t.sizes.Equal(other.sizes) {
		out := t
		if !inPlace {
			out = t.Copy()
		}
		op.same(out.data, other.data)
		return out, nil
	}
	out := newTensor(sh)
	broadcastInto(out, t, other, op.f)
	if !inPlace {
		return out, nil
	}
	// The receiver takes the broadcast shape and owns the new buffer.
	t.sizes, t.strides, t.data = out.sizes, out.strides, out.data
	return t, nil
}

// Add stores t + other (broadcast) in t and returns t.
func (t *Tensor) Add(other *Tensor) (*Tensor, error) { return t.binary(addOp, other, true) }

// Sub stores t - other in t.
func (t *Tensor) Sub(other *Tensor) (*Tensor, error) { return t.binary(subOp, other, true) }

// Mult stores the element-wise product in t.
func (t *Tensor) Mult(other *Tensor) (*Tensor, error) { return t.binary(multOp, other, true) }

// Div stores the element-wise quotient t / other in t.
func (t *Tensor) Div(other *Tensor) (*Tensor, error) { return t.binary(divOp, other, true) }

// CopyAdd returns t + other without mutating t.
func (t *Tensor) CopyAdd(other *Tensor) (*Tensor, error) { return t.binary(addOp, other, false) }

// CopySub returns t - other.
func (t *Tensor) CopySub(other *Tensor) (*Tensor, error) { return t.binary(subOp, other, false) }

// CopyMult returns the element-wise product.
func (t *Tensor) CopyMult(other *Tensor) (*Tensor, error) { return t.binary(multOp, other, false) }

// CopyDiv returns the element-wise quotient.
func (t *Tensor) CopyDiv(other *Tensor) (*Tensor, error) { return t.binary(divOp, other, false) }

// AddScalar adds v to every element of t.
func (t *Tensor) AddScalar(v float64) *Tensor { floats.AddConst(v, t.data); return t }

// SubScalar subtracts v from every element of t.
func (t *Tensor) SubScalar(v float64) *Tensor { floats.AddConst(-v, t.data); return t }

// MultScalar scales every element of t by v.
func (t *Tensor) MultScalar(v float64) *Tensor { floats.Scale(v, t.data); return t }

// DivScalar divides every element of t by v.
func (t *Tensor) DivScalar(v float64) *Tensor {
	for k := range t.data {
		t.data[k] /= v
	}
	return t
}

// CopyAddScalar returns t + v.
func (t *Tensor) CopyAddScalar(v float64) *Tensor { return t.Copy().AddScalar(v) }

// CopySubScalar returns t - v.
func (t *Tensor) CopySubScalar(v float64) *Tensor { return t.Copy().SubScalar(v) }

// CopyMultScalar returns t * v.
func (t *Tensor) CopyMultScalar(v float64) *Tensor { return t.Copy().MultScalar(v) }

// CopyDivScalar returns t / v.
func (t *Tensor) CopyDivScalar(v float64) *Tensor { return t.Copy().DivScalar(v) }
