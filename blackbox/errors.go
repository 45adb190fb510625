// SPDX-License-Identifier: MIT
// Package blackbox: sentinel error set.
// Shape, field and consistency failures reuse the matrix sentinels
// (matrix.ErrDimensionMismatch, matrix.ErrFieldMismatch, matrix.ErrInconsistent)
// so callers match one set across both packages with errors.Is.

package blackbox

import (
	"errors"
	"fmt"
)

var (
	// ErrNilOperand indicates a nil FIBB passed to a constructor or NewProduct.
	ErrNilOperand = errors.New("blackbox: nil operand")

	// ErrTooFewOperands indicates a product of fewer than two factors.
	ErrTooFewOperands = errors.New("blackbox: product needs at least two operands")

	// ErrUnbound indicates an operation on a Product that was never initialized
	// or has been released.
	ErrUnbound = errors.New("blackbox: product is not bound")

	// ErrSelfReference indicates an Init whose factors contain the product itself.
	ErrSelfReference = errors.New("blackbox: product cannot contain itself")

	// ErrSingular indicates a zero on the diagonal of a Triangular leaf.
	ErrSingular = errors.New("blackbox: singular triangular matrix")

	// ErrNotPermutation indicates an index vector that is not a bijection of [0,n).
	ErrNotPermutation = errors.New("blackbox: not a permutation")

	// ErrKindMismatch indicates Read found a serialized kind different from the receiver's.
	ErrKindMismatch = errors.New("blackbox: serialized kind does not match receiver")

	// ErrMalformed indicates serialized input that does not describe a valid blackbox.
	ErrMalformed = errors.New("blackbox: malformed serialized form")
)

// Operation tags for error wrapping and log records.
const (
	opApplyRight   = "ApplyRight"
	opApplyLeft    = "ApplyLeft"
	opSolveRight   = "SolveRight"
	opSolveLeft    = "SolveLeft"
	opNullRandR    = "NullspaceRandomRight"
	opNullRandL    = "NullspaceRandomLeft"
	opNullBasisR   = "NullspaceBasisRight"
	opNullBasisL   = "NullspaceBasisLeft"
	opInit         = "Init"
	opWrite        = "Write"
	opRead         = "Read"
	opParse        = "Parse"
	opApplyVector  = "ApplyVector"
	opApplyVectorT = "ApplyTransposeVector"
)

// bbErrorf wraps err with the receiver kind and an operation tag.
func bbErrorf(k Kind, op string, err error) error {
	return fmt.Errorf("%s.%s: %w", k, op, err)
}
