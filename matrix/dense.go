// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep ownership explicit: every Dense owns its buffer; Copy/Clone never alias.
//
// AI-Hints:
//   - Prefer fast-paths on *Dense in hot algebra: operate on the flat data slice directly.
//   - Data() exposes the backing slice for kernels in matrix/ops; writes through it are visible.
//
// Complexity quicksheet:
//   - New: O(r*c) zero-init; At/Set: O(1); Copy: O(r*c).
package matrix

import "fmt"

// ---------- error context tags ----------

const (
	ctxAt       = "At"       // method tag used in error wrappers
	ctxSet      = "Set"      // method tag used in error wrappers
	ctxSetBlock = "SetBlock" // method tag used in error wrappers
	ctxAddAt    = "AddAt"
	ctxSubAt    = "SubAt"
	ctxMultAt   = "MultAt"
	ctxDivAt    = "DivAt"
)

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols); either may be zero.
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts (>= 0)
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// New creates an r×c zero matrix. Zero extents are legal (empty matrix).
// Implementation:
//   - Stage 1: validate rows>=0 && cols>=0; else ErrInvalidDimensions.
//   - Stage 2: allocate a zero-filled buffer of length rows*cols.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func New(rows, cols int) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// newDense is the unchecked internal constructor (callers guarantee rows,cols >= 0).
func newDense(rows, cols int) *Dense {
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}
}

// wrapDense adopts data without copying (internal; len(data) == rows*cols).
func wrapDense(rows, cols int, data []float64) *Dense {
	return &Dense{r: rows, c: cols, data: data}
}

// NewFilled creates an r×c matrix with every element set to v.
func NewFilled(rows, cols int, v float64) (*Dense, error) {
	m, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	if v != 0 {
		for k := range m.data {
			m.data[k] = v
		}
	}
	return m, nil
}

// NewFromSlice creates an r×c matrix from a row-major flat slice (copied).
// Errors:
//   - ErrInvalidDimensions for negative extents.
//   - ErrInvalidLength when len(values) != rows*cols.
func NewFromSlice(rows, cols int, values []float64) (*Dense, error) {
	m, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(values) != rows*cols {
		return nil, fmt.Errorf("NewFromSlice: %d values for %dx%d: %w", len(values), rows, cols, ErrInvalidLength)
	}
	copy(m.data, values)
	return m, nil
}

// NewFromRows creates a matrix from nested rows; every row must have the same length.
// An empty outer slice yields a 0×0 matrix.
func NewFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 {
		return newDense(0, 0), nil
	}
	c := len(rows[0])
	m := newDense(len(rows), c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("NewFromRows: row %d has %d values, want %d: %w", i, len(row), c, ErrInvalidLength)
		}
		copy(m.data[i*c:(i+1)*c], row)
	}
	return m, nil
}

// NewWithInit builds a rows×cols matrix from a loosely typed initializer:
//   - nil           → zero fill
//   - number        → fill with that value
//   - []float64     → row-major values (len must be rows*cols)
//   - [][]float64   → nested rows (must be exactly rows×cols)
//   - []any / [][]any are accepted when every leaf is numeric.
//
// Errors:
//   - ErrInvalidLength when the initializer size does not match rows*cols.
//   - ErrUnsupportedInit for non-numeric initializers.
func NewWithInit(rows, cols int, init any) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}
	if init == nil {
		return newDense(rows, cols), nil
	}
	if v, ok := toFloat(init); ok {
		return NewFilled(rows, cols, v)
	}
	nested, flat, err := flattenInit(init)
	if err != nil {
		return nil, matrixErrorf(opNewWithInit, err)
	}
	if nested != nil {
		if len(nested) != rows {
			return nil, fmt.Errorf("%s: %d rows for %dx%d: %w", opNewWithInit, len(nested), rows, cols, ErrInvalidLength)
		}
		m := newDense(rows, cols)
		for i, row := range nested {
			if len(row) != cols {
				return nil, fmt.Errorf("%s: row %d has %d values, want %d: %w", opNewWithInit, i, len(row), cols, ErrInvalidLength)
			}
			copy(m.data[i*cols:], row)
		}
		return m, nil
	}
	return NewFromSlice(rows, cols, flat)
}

// ToDense returns m itself when it is already *Dense, otherwise a Dense copy.
func ToDense(m Matrix) (*Dense, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	if d, ok := m.(*Dense); ok {
		if d == nil {
			return nil, ErrNilMatrix
		}
		return d, nil
	}
	r, c := m.Rows(), m.Cols()
	out := newDense(r, c)
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*c+j] = v
		}
	}
	return out, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// Shape returns (rows, cols).
func (m *Dense) Shape() (int, int) { return m.r, m.c }

// Len returns rows*cols.
func (m *Dense) Len() int { return len(m.data) }

// IsEmpty reports whether the matrix has no elements.
func (m *Dense) IsEmpty() bool { return len(m.data) == 0 }

// Data returns the backing row-major slice. Writes through it mutate m.
func (m *Dense) Data() []float64 { return m.data }

// RowView returns row i of the backing buffer (aliasing, no bounds check
// beyond the slice's own).
func (m *Dense) RowView(i int) []float64 { return m.data[i*m.c : (i+1)*m.c] }

// At returns the element at (i, j).
// Errors:
//   - ErrOutOfRange when i or j is negative or beyond the extent.
func (m *Dense) At(i, j int) (float64, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, denseErrorf(ctxAt, i, j, ErrOutOfRange)
	}
	return m.data[i*m.c+j], nil
}

// Set writes v at (i, j).
func (m *Dense) Set(i, j int, v float64) error {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return denseErrorf(ctxSet, i, j, ErrOutOfRange)
	}
	m.data[i*m.c+j] = v
	return nil
}

// at / set are unchecked accessors for algorithm internals.
func (m *Dense) at(i, j int) float64     { return m.data[i*m.c+j] }
func (m *Dense) set(i, j int, v float64) { m.data[i*m.c+j] = v }

// AddAt adds v to the element at (i, j).
func (m *Dense) AddAt(i, j int, v float64) error {
	return m.updateAt(ctxAddAt, i, j, func(x float64) float64 { return x + v })
}

// SubAt subtracts v from the element at (i, j).
func (m *Dense) SubAt(i, j int, v float64) error {
	return m.updateAt(ctxSubAt, i, j, func(x float64) float64 { return x - v })
}

// MultAt multiplies the element at (i, j) by v.
func (m *Dense) MultAt(i, j int, v float64) error {
	return m.updateAt(ctxMultAt, i, j, func(x float64) float64 { return x * v })
}

// DivAt divides the element at (i, j) by v.
func (m *Dense) DivAt(i, j int, v float64) error {
	return m.updateAt(ctxDivAt, i, j, func(x float64) float64 { return x / v })
}

func (m *Dense) updateAt(tag string, i, j int, f func(float64) float64) error {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return denseErrorf(tag, i, j, ErrOutOfRange)
	}
	k := i*m.c + j
	m.data[k] = f(m.data[k])
	return nil
}

// SetBlock writes b into m with its top-left corner at (i, j).
// Errors:
//   - ErrOutOfRange when (i, j) is outside m or b would overflow it.
func (m *Dense) SetBlock(i, j int, b *Dense) error {
	if b == nil {
		return matrixErrorf(ctxSetBlock, ErrNilMatrix)
	}
	if i < 0 || j < 0 || i+b.r > m.r || j+b.c > m.c {
		return denseErrorf(ctxSetBlock, i, j, ErrOutOfRange)
	}
	for bi := 0; bi < b.r; bi++ {
		copy(m.data[(i+bi)*m.c+j:(i+bi)*m.c+j+b.c], b.data[bi*b.c:(bi+1)*b.c])
	}
	return nil
}

// Clone returns a deep copy typed as Matrix.
func (m *Dense) Clone() Matrix { return m.Copy() }

// Copy returns an independent deep copy.
func (m *Dense) Copy() *Dense {
	out := &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data))}
	copy(out.data, m.data)
	return out
}

// CopyTo overwrites dst with the contents of m, reallocating dst's buffer when
// its length differs, and returns dst.
func (m *Dense) CopyTo(dst *Dense) *Dense {
	if dst == nil {
		return m.Copy()
	}
	if len(dst.data) != len(m.data) {
		dst.data = make([]float64, len(m.data))
	}
	dst.r, dst.c = m.r, m.c
	copy(dst.data, m.data)
	return dst
}

// Equals reports whether other has the same shape and every element differs
// by at most the configured epsilon (exact comparison with WithEpsilon(0)).
func (m *Dense) Equals(other *Dense, opts ...Option) bool {
	if other == nil || m.r != other.r || m.c != other.c {
		return false
	}
	eps := NewOptions(opts...).Epsilon()
	for k, v := range m.data {
		if !closeEnough(v, other.data[k], eps) {
			return false
		}
	}
	return true
}

// closeEnough compares with absolute tolerance; equal infinities compare equal.
func closeEnough(a, b, eps float64) bool {
	if a == b {
		return true
	}
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
