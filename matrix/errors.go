// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All kernels return these sentinels (possibly wrapped with an operation tag);
// tests match them via errors.Is. No kernel panics on user-triggered errors.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates that requested dimensions are negative.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be >= 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes,
	// e.g. SubIn on different shapes or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNilMatrix indicates that a nil *Dense was passed.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrFieldMismatch indicates operands defined over different fields.
	ErrFieldMismatch = errors.New("matrix: field mismatch")

	// ErrNilField indicates a constructor was called without a field.
	ErrNilField = errors.New("matrix: nil field")

	// ErrInconsistent is returned by solvers when the right-hand side is
	// not in the range of the operator.
	ErrInconsistent = errors.New("matrix: inconsistent system")
)

// Operation name constants for unified error wrapping.
const (
	opMul      = "Mul"
	opSubIn    = "SubIn"
	opAddIn    = "AddIn"
	opCopy     = "CopyFrom"
	opResize   = "Resize"
	opDet      = "Det"
	opSolveR   = "SolveRight"
	opSolveL   = "SolveLeft"
	opNullR    = "NullspaceBasisRight"
	opNullL    = "NullspaceBasisLeft"
	opNewDense = "NewDense"
	opFromData = "NewDenseData"
	opIdentity = "NewIdentity"
)

// matrixErrorf wraps err with an operation tag, preserving the sentinel via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
