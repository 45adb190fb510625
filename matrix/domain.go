// SPDX-License-Identifier: MIT

// Package matrix - Domain: the matrix-domain capability over a fixed field.
//
// Purpose:
//   - Perform raw multiply / subtract-in-place / add-in-place on materialized matrices.
//   - Supply random matrices for sampling (nullspace fallbacks, tests).
//   - Host the echelon-form kernels (see echelon.go).
//
// Concurrency:
//   - Arithmetic methods are pure with respect to the Domain.
//   - The random generator is guarded by a mutex, so one Domain may be shared
//     by blackboxes used from several goroutines.

package matrix

import (
	"math/rand/v2"
	"sync"

	"github.com/katalvlaran/fibb/field"
)

// Domain performs dense arithmetic over a single field.
type Domain struct {
	f field.Field

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewDomain returns a Domain over f.
// Errors: ErrNilField.
func NewDomain(f field.Field, opts ...Option) (*Domain, error) {
	if f == nil {
		return nil, ErrNilField
	}
	o := gatherOptions(opts...)

	return &Domain{f: f, rng: rand.New(o.src)}, nil
}

// MustDomain is NewDomain that panics on error. Intended for tests and examples.
func MustDomain(f field.Field, opts ...Option) *Domain {
	d, err := NewDomain(f, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Field returns the domain's field.
func (d *Domain) Field() field.Field { return d.f }

// New allocates a rows×cols zero matrix over the domain's field.
func (d *Domain) New(rows, cols int) (*Dense, error) {
	return NewDense(d.f, rows, cols)
}

// Mul computes dst = a·b. dst must be pre-shaped a.Rows()×b.Cols();
// it may alias a or b.
//
// Implementation:
//   - Stage 1: validate nil/shape/field.
//   - Stage 2: i-k-j accumulation into a scratch buffer (skip zero a[i,k]).
//   - Stage 3: copy scratch into dst.
//
// Complexity: O(r*n*c) field operations.
func (d *Domain) Mul(dst, a, b *Dense) error {
	if err := ValidateNotNil(dst, a, b); err != nil {
		return matrixErrorf(opMul, err)
	}
	if err := ValidateMulCompatible(a, b); err != nil {
		return matrixErrorf(opMul, err)
	}
	if err := ValidateShape(dst, a.r, b.c); err != nil {
		return matrixErrorf(opMul, err)
	}
	if err := d.sameField(dst, a, b); err != nil {
		return matrixErrorf(opMul, err)
	}

	f := d.f
	out := make([]field.Element, a.r*b.c)
	var (
		i, k, j  int
		av       field.Element
		rowA     []field.Element
		rowB     []field.Element
		rowOut   []field.Element
		aCols, c = a.c, b.c
	)
	for i = 0; i < a.r; i++ {
		rowA = a.data[i*aCols : (i+1)*aCols]
		rowOut = out[i*c : (i+1)*c]
		for k = 0; k < aCols; k++ {
			av = rowA[k]
			if av == 0 {
				continue
			}
			rowB = b.data[k*c : (k+1)*c]
			for j = 0; j < c; j++ {
				rowOut[j] = f.Add(rowOut[j], f.Mul(av, rowB[j]))
			}
		}
	}
	copy(dst.data, out)

	return nil
}

// SubIn computes dst = dst - rhs.
// Complexity: O(r*c).
func (d *Domain) SubIn(dst, rhs *Dense) error {
	if err := d.inPlaceGuard(dst, rhs); err != nil {
		return matrixErrorf(opSubIn, err)
	}
	for i, v := range rhs.data {
		dst.data[i] = d.f.Sub(dst.data[i], v)
	}

	return nil
}

// AddIn computes dst = dst + rhs.
// Complexity: O(r*c).
func (d *Domain) AddIn(dst, rhs *Dense) error {
	if err := d.inPlaceGuard(dst, rhs); err != nil {
		return matrixErrorf(opAddIn, err)
	}
	for i, v := range rhs.data {
		dst.data[i] = d.f.Add(dst.data[i], v)
	}

	return nil
}

// Resize reshapes m in place, discarding content.
func (d *Domain) Resize(m *Dense, rows, cols int) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opResize, err)
	}
	return m.Resize(rows, cols)
}

// Random fills m with uniform field elements.
// Errors: ErrNilMatrix, ErrFieldMismatch.
func (d *Domain) Random(m *Dense) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if err := ValidateField(m, d.f); err != nil {
		return err
	}
	d.mu.Lock()
	for i := range m.data {
		m.data[i] = d.f.Random(d.rng)
	}
	d.mu.Unlock()

	return nil
}

// RandomElement draws one uniform field element.
func (d *Domain) RandomElement() field.Element {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.f.Random(d.rng)
}

// RandomNonZero draws one uniform non-zero field element.
func (d *Domain) RandomNonZero() field.Element {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.f.RandomNonZero(d.rng)
}

// Perm draws a uniform permutation of [0, n).
func (d *Domain) Perm(n int) []int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.rng.Perm(n)
}

// inPlaceGuard validates the common preconditions of SubIn/AddIn.
func (d *Domain) inPlaceGuard(dst, rhs *Dense) error {
	if err := ValidateNotNil(dst, rhs); err != nil {
		return err
	}
	if err := ValidateSameShape(dst, rhs); err != nil {
		return err
	}
	return d.sameField(dst, rhs)
}

// sameField ensures every operand is over the domain's field.
func (d *Domain) sameField(ms ...*Dense) error {
	for _, m := range ms {
		if err := ValidateField(m, d.f); err != nil {
			return err
		}
	}

	return nil
}
