// SPDX-License-Identifier: MIT

package blackbox

import (
	"fmt"

	"github.com/katalvlaran/fibb/field"
	"github.com/katalvlaran/fibb/matrix"
)

// ApplyVector computes y = A·x for plain vectors (len(x) == Cols, len(y) == Rows).
// Diagonal and Permutation take direct O(n) paths; the other kinds go through
// ApplyRight on one-column matrices. y may alias x only for Diagonal.
//
// Errors: ErrNilOperand, ErrUnbound, matrix.ErrDimensionMismatch.
func ApplyVector(A BlackBox, y, x []field.Element) error {
	if err := checkVectors(A, len(y), len(x)); err != nil {
		return fmt.Errorf("%s: %w", opApplyVector, err)
	}
	switch a := A.(type) {
	case *Diagonal:
		for i, d := range a.d {
			y[i] = a.f.Mul(d, x[i])
		}
	case *Permutation:
		for i, pi := range a.p {
			y[i] = x[pi]
		}
	case *Triangular, *DenseBox, *Product:
		return viaColumns(A, y, x, false)
	default:
		return fmt.Errorf("%s: %w: %T", opApplyVector, ErrKindMismatch, A)
	}
	return nil
}

// ApplyTransposeVector computes y = x·A, i.e. Aᵀ·x (len(x) == Rows, len(y) == Cols).
func ApplyTransposeVector(A BlackBox, y, x []field.Element) error {
	if err := checkVectors(A, len(x), len(y)); err != nil {
		return fmt.Errorf("%s: %w", opApplyVectorT, err)
	}
	switch a := A.(type) {
	case *Diagonal:
		for i, d := range a.d {
			y[i] = a.f.Mul(x[i], d)
		}
	case *Permutation:
		for i, pi := range a.p {
			y[pi] = x[i]
		}
	case *Triangular, *DenseBox, *Product:
		return viaColumns(A, y, x, true)
	default:
		return fmt.Errorf("%s: %w: %T", opApplyVectorT, ErrKindMismatch, A)
	}
	return nil
}

// checkVectors validates len(rowsSide) == A.Rows() and len(colsSide) == A.Cols().
func checkVectors(A BlackBox, rowsSide, colsSide int) error {
	if A == nil {
		return ErrNilOperand
	}
	if A.Field() == nil {
		return ErrUnbound
	}
	if rowsSide != A.Rows() || colsSide != A.Cols() {
		return fmt.Errorf("want %d and %d entries, got %d and %d: %w",
			A.Rows(), A.Cols(), rowsSide, colsSide, matrix.ErrDimensionMismatch)
	}
	return nil
}

// viaColumns wraps x as an n×1 (or 1×n when transposed) matrix and applies A.
func viaColumns(A BlackBox, y, x []field.Element, transposed bool) error {
	f := A.Field()
	var (
		X, Y *matrix.Dense
		err  error
	)
	if transposed {
		X, err = matrix.NewDense(f, 1, len(x))
		if err == nil {
			Y, err = matrix.NewDense(f, 1, len(y))
		}
	} else {
		X, err = matrix.NewDense(f, len(x), 1)
		if err == nil {
			Y, err = matrix.NewDense(f, len(y), 1)
		}
	}
	if err != nil {
		return err
	}
	if transposed {
		copy(X.RowView(0), x)
		if err = A.ApplyLeft(Y, X); err != nil {
			return err
		}
		copy(y, Y.RowView(0))
		return nil
	}

	for i, v := range x {
		X.RowView(i)[0] = v
	}
	if err = A.ApplyRight(Y, X); err != nil {
		return err
	}
	for i := range y {
		y[i] = Y.RowView(i)[0]
	}
	return nil
}
