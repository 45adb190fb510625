// SPDX-License-Identifier: MIT

package field

import (
	"fmt"
	"math/rand/v2"
)

// maxModulus bounds p so that (p-1)^2 fits into a uint64.
const maxModulus = uint64(1) << 32

// Prime is GF(p) for a prime p < 2^32.
type Prime struct {
	p uint64
}

var _ Field = Prime{}

// NewPrime returns GF(p).
// Errors: ErrModulusRange for p < 2 or p >= 2^32, ErrNotPrime for composite p.
// Complexity: O(sqrt(p)) trial division, performed once.
func NewPrime(p uint64) (Prime, error) {
	if p < 2 || p >= maxModulus {
		return Prime{}, fmt.Errorf("NewPrime(%d): %w", p, ErrModulusRange)
	}
	if !isPrime(p) {
		return Prime{}, fmt.Errorf("NewPrime(%d): %w", p, ErrNotPrime)
	}

	return Prime{p: p}, nil
}

// MustPrime is NewPrime that panics on error. Intended for constants and tests.
func MustPrime(p uint64) Prime {
	f, err := NewPrime(p)
	if err != nil {
		panic(err)
	}
	return f
}

func isPrime(p uint64) bool {
	if p < 4 {
		return p >= 2
	}
	if p%2 == 0 {
		return false
	}
	for d := uint64(3); d*d <= p; d += 2 {
		if p%d == 0 {
			return false
		}
	}
	return true
}

func (f Prime) Modulus() uint64 { return f.p }
func (f Prime) Name() string    { return fmt.Sprintf("GF(%d)", f.p) }
func (f Prime) String() string  { return f.Name() }
func (f Prime) Zero() Element   { return 0 }
func (f Prime) One() Element    { return 1 % f.p }

func (f Prime) Add(a, b Element) Element {
	s := a + b // < 2^33, no overflow
	if s >= f.p {
		s -= f.p
	}
	return s
}

func (f Prime) Sub(a, b Element) Element {
	if a >= b {
		return a - b
	}
	return a + f.p - b
}

func (f Prime) Neg(a Element) Element {
	if a == 0 {
		return 0
	}
	return f.p - a
}

func (f Prime) Mul(a, b Element) Element {
	return (a * b) % f.p
}

// Inv computes a^-1 with the extended Euclidean algorithm.
// Complexity: O(log p).
func (f Prime) Inv(a Element) (Element, error) {
	if a == 0 {
		return 0, ErrNotInvertible
	}
	var (
		t, newT int64 = 0, 1
		r, newR int64 = int64(f.p), int64(a)
	)
	for newR != 0 {
		q := r / newR
		t, newT = newT, t-q*newT
		r, newR = newR, r-q*newR
	}
	if t < 0 {
		t += int64(f.p)
	}
	return Element(t), nil
}

func (f Prime) Div(a, b Element) (Element, error) {
	inv, err := f.Inv(b)
	if err != nil {
		return 0, err
	}
	return f.Mul(a, inv), nil
}

func (f Prime) IsZero(a Element) bool   { return a == 0 }
func (f Prime) Equal(a, b Element) bool { return a == b }

func (f Prime) FromInt64(v int64) Element {
	m := v % int64(f.p)
	if m < 0 {
		m += int64(f.p)
	}
	return Element(m)
}

func (f Prime) Reduce(v uint64) Element { return v % f.p }

func (f Prime) Random(r *rand.Rand) Element {
	return r.Uint64N(f.p)
}

func (f Prime) RandomNonZero(r *rand.Rand) Element {
	return 1 + r.Uint64N(f.p-1)
}
