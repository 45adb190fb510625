// SPDX-License-Identifier: MIT

package field

import (
	"fmt"
	"math/rand/v2"
)

// Element is a field element in canonical form (0 <= e < Modulus()).
type Element = uint64

// Field is the arithmetic capability consumed by dense kernels and blackboxes.
// All inputs must be canonical; all outputs are canonical.
type Field interface {
	fmt.Stringer

	// Modulus returns the characteristic p.
	Modulus() uint64

	// Name returns a short identifier such as "GF(101)".
	Name() string

	Zero() Element
	One() Element

	Add(a, b Element) Element
	Sub(a, b Element) Element
	Neg(a Element) Element
	Mul(a, b Element) Element

	// Inv returns a^-1 or ErrNotInvertible when a == 0.
	Inv(a Element) (Element, error)

	// Div returns a*b^-1 or ErrNotInvertible when b == 0.
	Div(a, b Element) (Element, error)

	IsZero(a Element) bool
	Equal(a, b Element) bool

	// FromInt64 maps an integer (possibly negative) into the field.
	FromInt64(v int64) Element

	// Reduce maps an arbitrary uint64 into canonical form.
	Reduce(v uint64) Element

	// Random draws a uniform element using r.
	Random(r *rand.Rand) Element

	// RandomNonZero draws a uniform non-zero element using r.
	RandomNonZero(r *rand.Rand) Element
}

// SameField reports whether a and b describe the same field.
// Two prime fields are equal iff their moduli are equal.
func SameField(a, b Field) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Modulus() == b.Modulus()
}
