// SPDX-License-Identifier: MIT

// Package field provides the scalar arithmetic consumed by matrix and blackbox.
//
// The package exposes:
//
//   - Element, a canonical residue stored in a uint64.
//   - Field, the capability set every matrix kernel calls into (Add, Mul, Inv, ...).
//   - Prime, the GF(p) implementation for primes p < 2^32, so that a product of
//     two residues always fits in 64 bits.
//
// Fields are immutable values and are safe for concurrent use.
// Random sampling takes an explicit *rand.Rand owned by the caller.
package field
