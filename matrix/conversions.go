// SPDX-License-Identifier: MIT

// Package matrix - conversions out of (and into) Dense.
//
// Purpose:
//   - ToArray / ToFlat / ToScalar read results back as plain Go values.
//   - String renders "[[1, 2, 3],\n [4, 5, 6]]".
//   - MarshalJSON / UnmarshalJSON use nested arrays, so JSON produced by any
//     client ([[...], ...], a flat row or a bare number) decodes directly.
package matrix

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

const (
	opToScalar  = "ToScalar"
	opUnmarshal = "UnmarshalJSON"
)

// ToArray returns the rows as freshly allocated slices.
func (m *Dense) ToArray() [][]float64 {
	out := make([][]float64, m.r)
	for i := range out {
		out[i] = append([]float64(nil), m.data[i*m.c:(i+1)*m.c]...)
	}
	return out
}

// ToFlat returns a copy of the row-major values.
func (m *Dense) ToFlat() []float64 { return append([]float64(nil), m.data...) }

// ToScalar returns the single element of a 1×1 matrix.
// Errors:
//   - ErrNotScalar for any other shape.
func (m *Dense) ToScalar() (float64, error) {
	if m.r != 1 || m.c != 1 {
		return 0, fmt.Errorf("%s: %dx%d: %w", opToScalar, m.r, m.c, ErrNotScalar)
	}
	return m.data[0], nil
}

// String implements fmt.Stringer.
func (m *Dense) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < m.r; i++ {
		if i > 0 {
			sb.WriteString(",\n ")
		}
		sb.WriteByte('[')
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.FormatFloat(m.data[i*m.c+j], 'g', -1, 64))
		}
		sb.WriteByte(']')
	}
	sb.WriteByte(']')
	return sb.String()
}

// MarshalJSON encodes the matrix as an array of rows.
func (m *Dense) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToArray())
}

// UnmarshalJSON accepts an array of rows, a flat array (1×n row) or a number (1×1).
func (m *Dense) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return matrixErrorf(opUnmarshal, err)
	}
	d, err := FromArray(raw)
	if err != nil {
		return matrixErrorf(opUnmarshal, err)
	}
	m.r, m.c, m.data = d.r, d.c, d.data
	return nil
}
