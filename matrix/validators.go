// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for shape/field checks.
//  - Keep kernels and blackbox leaves minimal by delegating guards here.
//  - Return sentinels wrapped with the validator tag so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure and allocate nothing beyond the error value.

package matrix

import (
	"fmt"

	"github.com/katalvlaran/fibb/field"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures every matrix reference is non-nil.
// Complexity: O(k).
func ValidateNotNil(ms ...*Dense) error {
	for _, m := range ms {
		if m == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	}

	return nil
}

// ValidateSameShape ensures a and b have equal dimensions.
// Assumes a and b are not nil.
func ValidateSameShape(a, b *Dense) error {
	if a.r != b.r {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.c != b.c {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateShape ensures m is exactly rows×cols.
func ValidateShape(m *Dense, rows, cols int) error {
	if m == nil {
		return validatorErrorf("ValidateShape", ErrNilMatrix)
	}
	if m.r != rows || m.c != cols {
		return validatorErrorf(fmt.Sprintf("ValidateShape: want %dx%d, got %dx%d", rows, cols, m.r, m.c), ErrDimensionMismatch)
	}

	return nil
}

// ValidateMulCompatible ensures a.Cols == b.Rows.
func ValidateMulCompatible(a, b *Dense) error {
	if a.c != b.r {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is square.
func ValidateSquare(m *Dense) error {
	if m.r != m.c {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateSameField ensures a and b are over the same field.
func ValidateSameField(a, b *Dense) error {
	if !field.SameField(a.f, b.f) {
		return validatorErrorf("ValidateSameField", ErrFieldMismatch)
	}

	return nil
}

// ValidateField ensures m is over f.
func ValidateField(m *Dense, f field.Field) error {
	if !field.SameField(m.f, f) {
		return validatorErrorf("ValidateField", ErrFieldMismatch)
	}

	return nil
}
