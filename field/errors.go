// SPDX-License-Identifier: MIT

package field

import "errors"

var (
	// ErrNotPrime is returned by NewPrime when the modulus has a non-trivial divisor.
	ErrNotPrime = errors.New("field: modulus is not prime")

	// ErrModulusRange is returned by NewPrime when p < 2 or p >= 2^32.
	ErrModulusRange = errors.New("field: modulus out of range")

	// ErrNotInvertible is returned by Inv/Div on a zero divisor.
	ErrNotInvertible = errors.New("field: element is not invertible")
)
