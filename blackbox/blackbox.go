// SPDX-License-Identifier: MIT

// Package blackbox - BlackBox and FIBB contracts.
//
// Purpose:
//   - BlackBox: dimensions, field, left/right apply, serialization.
//   - FIBB: BlackBox plus rank, determinant, consistent solves and nullspaces,
//     all without materializing the operator.
//
// Shape conventions (A is rows×cols, k is any batch width):
//   - ApplyRight(Y, X):  Y = A·X,  X cols×k,  Y rows×k.
//   - ApplyLeft(Y, X):   Y = X·A,  X k×rows,  Y k×cols.
//   - SolveRight(Y, X):  A·Y = X,  X rows×k,  Y cols×k.
//   - SolveLeft(Y, X):   Y·A = X,  X k×cols,  Y k×rows.
//   - NullspaceRandomRight(N): N cols×k; NullspaceRandomLeft(N): N k×rows.
//   - NullspaceBasisRight/Left(B): B is resized by the callee.
//
// The variant set is closed (see Kind): the unexported method keeps
// implementations inside this package so ApplyVector can dispatch exhaustively.

package blackbox

import (
	"io"

	"github.com/katalvlaran/fibb/field"
	"github.com/katalvlaran/fibb/matrix"
)

// BlackBox is a matrix exposed only through its action on dense matrices.
// Dimensions are immutable after construction (Read counts as construction).
type BlackBox interface {
	Kind() Kind
	Label() string
	Rows() int
	Cols() int
	Field() field.Field

	// ApplyRight computes Y = A·X.
	ApplyRight(Y, X *matrix.Dense) error
	// ApplyLeft computes Y = X·A.
	ApplyLeft(Y, X *matrix.Dense) error

	// Write emits the MatrixMarket-style serialized form.
	Write(w io.Writer) error
	// Read replaces the receiver with the serialized form read from r.
	Read(r io.Reader) error

	sealed()
}

// FIBB is a fast invertible blackbox.
//
// All solvers assume a consistent system (nonsingular, or singular with X in
// the range). For a consistent singular system an arbitrary solution is
// returned; Y + Z is a random point of the solution space after
// SolveRight(Y, X) and NullspaceRandomRight(Z).
type FIBB interface {
	BlackBox

	Rank() int
	Det() field.Element

	// SolveRight finds Y with A·Y = X.
	SolveRight(Y, X *matrix.Dense) error
	// SolveLeft finds Y with Y·A = X.
	SolveLeft(Y, X *matrix.Dense) error

	// NullspaceRandomRight fills N with random columns satisfying A·N = 0.
	NullspaceRandomRight(N *matrix.Dense) error
	// NullspaceRandomLeft fills N with random rows satisfying N·A = 0.
	NullspaceRandomLeft(N *matrix.Dense) error

	// NullspaceBasisRight resizes and fills B so that A·B = 0, every x with
	// A·x = 0 is B·y for some y, and B has full column rank.
	NullspaceBasisRight(B *matrix.Dense) error
	// NullspaceBasisLeft resizes and fills B so that B·A = 0, every x with
	// x·A = 0 is y·B for some y, and B has full row rank.
	NullspaceBasisLeft(B *matrix.Dense) error
}

// isSquareFullRank reports whether a is square with rank equal to its dimension,
// i.e. invertible on both sides.
func isSquareFullRank(a FIBB) bool {
	return a.Rows() == a.Cols() && a.Rank() == a.Cols()
}
