// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a row-major buffer of field elements with the index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep every stored value canonical (reduced into the bound field on Set).
//
// AI-Hints:
//   - Hot loops in blackbox leaves use RowView to avoid per-element bounds checks.
//   - Use Resize to reshape a result buffer before a basis computation fills it.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); RowView: O(1).

package matrix

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/fibb/field"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"
	ctxSet = "Set"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Format: "Dense.<method>(row,col): %w"; the sentinel is preserved.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix over a field.
//   - f is the field every entry belongs to.
//   - r,c hold dimensions; either may be zero.
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	f    field.Field
	r, c int
	data []field.Element
}

var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix over f.
//
// Implementation:
//   - Stage 1: validate f != nil and rows, cols >= 0.
//   - Stage 2: allocate a zero-filled buffer.
//
// Errors:
//   - ErrNilField, ErrInvalidDimensions.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(f field.Field, rows, cols int) (*Dense, error) {
	if f == nil {
		return nil, matrixErrorf(opNewDense, ErrNilField)
	}
	if rows < 0 || cols < 0 {
		return nil, matrixErrorf(opNewDense, ErrInvalidDimensions)
	}

	return &Dense{f: f, r: rows, c: cols, data: make([]field.Element, rows*cols)}, nil
}

// NewDenseData creates an r×c matrix from row-major values, reducing each into f.
// The input slice is copied.
//
// Errors:
//   - ErrNilField, ErrInvalidDimensions, ErrDimensionMismatch when len(vals) != r*c.
func NewDenseData(f field.Field, rows, cols int, vals []int64) (*Dense, error) {
	m, err := NewDense(f, rows, cols)
	if err != nil {
		return nil, matrixErrorf(opFromData, err)
	}
	if len(vals) != rows*cols {
		return nil, matrixErrorf(opFromData, ErrDimensionMismatch)
	}
	for i, v := range vals {
		m.data[i] = f.FromInt64(v)
	}

	return m, nil
}

// NewIdentity returns I_n over f.
func NewIdentity(f field.Field, n int) (*Dense, error) {
	m, err := NewDense(f, n, n)
	if err != nil {
		return nil, matrixErrorf(opIdentity, err)
	}
	one := f.One()
	for i := 0; i < n; i++ {
		m.data[i*n+i] = one
	}

	return m, nil
}

// Field returns the field the entries belong to.
func (m *Dense) Field() field.Field { return m.f }

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (field.Element, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v (reduced into the field) at (row, col) or returns ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v field.Element) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	m.data[off] = m.f.Reduce(v)

	return nil
}

// RowView returns row i as a slice aliasing the backing buffer.
// Writes through the view must keep values canonical.
// The caller guarantees 0 <= i < Rows(); out-of-range indices panic.
func (m *Dense) RowView(i int) []field.Element {
	return m.data[i*m.c : (i+1)*m.c : (i+1)*m.c]
}

// Column returns a copy of column j.
func (m *Dense) Column(j int) ([]field.Element, error) {
	if j < 0 || j >= m.c {
		return nil, denseErrorf(ctxAt, 0, j, ErrOutOfRange)
	}
	out := make([]field.Element, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// Clone returns a deep copy bound to the same field.
// Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	cp := make([]field.Element, len(m.data))
	copy(cp, m.data)

	return &Dense{f: m.f, r: m.r, c: m.c, data: cp}
}

// Resize reshapes m to rows×cols, discarding its content (all entries zero).
// Errors: ErrInvalidDimensions for negative dimensions.
func (m *Dense) Resize(rows, cols int) error {
	if rows < 0 || cols < 0 {
		return matrixErrorf(opResize, ErrInvalidDimensions)
	}
	n := rows * cols
	if cap(m.data) >= n {
		m.data = m.data[:n]
		clear(m.data)
	} else {
		m.data = make([]field.Element, n)
	}
	m.r, m.c = rows, cols

	return nil
}

// CopyFrom overwrites m with src. Shapes and fields must match.
func (m *Dense) CopyFrom(src *Dense) error {
	if err := ValidateSameShape(m, src); err != nil {
		return matrixErrorf(opCopy, err)
	}
	if err := ValidateSameField(m, src); err != nil {
		return matrixErrorf(opCopy, err)
	}
	copy(m.data, src.data)

	return nil
}

// Zero sets every entry to zero.
func (m *Dense) Zero() { clear(m.data) }

// Transpose returns a new matrix holding mᵀ.
// Complexity: O(r*c).
func (m *Dense) Transpose() *Dense {
	t := &Dense{f: m.f, r: m.c, c: m.r, data: make([]field.Element, len(m.data))}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			t.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return t
}

// Equal reports whether m and o have the same field, shape and entries.
func (m *Dense) Equal(o *Dense) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.r != o.r || m.c != o.c || !field.SameField(m.f, o.f) {
		return false
	}
	for i := range m.data {
		if m.data[i] != o.data[i] {
			return false
		}
	}

	return true
}

// IsZero reports whether every entry is zero. Empty matrices are zero.
func (m *Dense) IsZero() bool {
	for _, v := range m.data {
		if v != 0 {
			return false
		}
	}

	return true
}

// String renders rows as "[a, b]\n" lines for diagnostics.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			sb.WriteString(strconv.FormatUint(m.data[i*m.c+j], 10))
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
