// SPDX-License-Identifier: MIT

// Package tensor - conversions between Tensor and nested Go values.
//
// Nested values follow the JSON shape: a number is a scalar tensor, a list of
// numbers is rank 1, a list of lists is rank 2 and so on. Every list at one
// depth must have the same length.
package tensor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/katalvlaran/lvla/matrix"
)

const (
	opFromArray = "FromArray"
	opToMatrix  = "ToMatrix"
	opUnmarshal = "UnmarshalJSON"
)

// FromArray builds a tensor from a number or arbitrarily nested []any,
// []float64 and [][]float64 values.
// Errors:
//   - ErrUnsupportedInit for ragged nesting or non-numeric leaves.
func FromArray(v any) (*Tensor, error) {
	var sizes Shape
	probe := v
	for {
		n, next, ok := listHead(probe)
		if !ok {
			break
		}
		sizes = append(sizes, n)
		if n == 0 {
			break
		}
		probe = next
	}
	t := newTensor(sizes)
	pos := 0
	if err := fill(v, sizes, t.data, &pos); err != nil {
		return nil, tensorErrorf(opFromArray, err)
	}
	return t, nil
}

// listHead returns the length and first element of a list value.
func listHead(v any) (int, any, bool) {
	switch x := v.(type) {
	case []any:
		if len(x) == 0 {
			return 0, nil, true
		}
		return len(x), x[0], true
	case []float64:
		if len(x) == 0 {
			return 0, nil, true
		}
		return len(x), x[0], true
	case [][]float64:
		if len(x) == 0 {
			return 0, nil, true
		}
		return len(x), x[0], true
	}
	return 0, nil, false
}

// fill walks v against sizes, writing leaves into data in row-major order.
func fill(v any, sizes Shape, data []float64, pos *int) error {
	if len(sizes) == 0 {
		f, ok := number(v)
		if !ok {
			return ErrUnsupportedInit
		}
		data[*pos] = f
		*pos++
		return nil
	}
	switch x := v.(type) {
	case []any:
		if len(x) != sizes[0] {
			return ErrUnsupportedInit
		}
		for _, e := range x {
			if err := fill(e, sizes[1:], data, pos); err != nil {
				return err
			}
		}
	case []float64:
		if len(x) != sizes[0] || len(sizes) != 1 {
			return ErrUnsupportedInit
		}
		*pos += copy(data[*pos:], x)
	case [][]float64:
		if len(x) != sizes[0] || len(sizes) != 2 {
			return ErrUnsupportedInit
		}
		for _, row := range x {
			if len(row) != sizes[1] {
				return ErrUnsupportedInit
			}
			*pos += copy(data[*pos:], row)
		}
	default:
		return ErrUnsupportedInit
	}
	return nil
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	return 0, false
}

// ToArray returns the elements as nested []any of float64 (a bare float64 for
// a scalar tensor).
func (t *Tensor) ToArray() any {
	if len(t.sizes) == 0 {
		return t.data[0]
	}
	return t.nest(0, 0)
}

func (t *Tensor) nest(axis, base int) []any {
	n := t.sizes[axis]
	out := make([]any, n)
	for k := 0; k < n; k++ {
		off := base + k*t.strides[axis]
		if axis == len(t.sizes)-1 {
			out[k] = t.data[off]
		} else {
			out[k] = t.nest(axis+1, off)
		}
	}
	return out
}

// ToMatrix copies a rank-2 tensor into a matrix.
// Errors:
//   - ErrDimensionMismatch for any other rank.
func (t *Tensor) ToMatrix() (*matrix.Dense, error) {
	if len(t.sizes) != 2 {
		return nil, fmt.Errorf("%s: rank %d: %w", opToMatrix, len(t.sizes), ErrDimensionMismatch)
	}
	m, err := matrix.NewFromSlice(t.sizes[0], t.sizes[1], t.data)
	if err != nil {
		return nil, tensorErrorf(opToMatrix, err)
	}
	return m, nil
}

// String renders the nested form, e.g. "[[1, 2], [3, 4]]".
func (t *Tensor) String() string {
	var sb strings.Builder
	if len(t.sizes) == 0 {
		sb.WriteString(strconv.FormatFloat(t.data[0], 'g', -1, 64))
		return sb.String()
	}
	t.write(&sb, 0, 0)
	return sb.String()
}

func (t *Tensor) write(sb *strings.Builder, axis, base int) {
	sb.WriteByte('[')
	for k := 0; k < t.sizes[axis]; k++ {
		if k > 0 {
			sb.WriteString(", ")
		}
		off := base + k*t.strides[axis]
		if axis == len(t.sizes)-1 {
			sb.WriteString(strconv.FormatFloat(t.data[off], 'g', -1, 64))
		} else {
			t.write(sb, axis+1, off)
		}
	}
	sb.WriteByte(']')
}

// MarshalJSON encodes the nested form.
func (t *Tensor) MarshalJSON() ([]byte, error) { return json.Marshal(t.ToArray()) }

// UnmarshalJSON accepts a number or nested arrays of numbers.
func (t *Tensor) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return tensorErrorf(opUnmarshal, err)
	}
	v, err := FromArray(raw)
	if err != nil {
		return tensorErrorf(opUnmarshal, err)
	}
	t.sizes, t.strides, t.data = v.sizes, v.strides, v.data
	return nil
}
