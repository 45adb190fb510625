// SPDX-License-Identifier: MIT

// Package blackbox provides matrices over a prime field that are known only
// through their action, and the Product engine that composes them.
//
// The blackbox package provides:
//
//   - BlackBox and FIBB, the sealed contracts (see Kind for the closed set).
//   - Leaves: Diagonal, Permutation, Triangular and DenseBox.
//   - Product, the composite left·right, built from any chain of two or more
//     FIBBs with NewProduct, Compose or Init.
//   - GenericNullspaceRandomRight/Left, the apply-and-solve nullspace sampler
//     for FIBBs without a structural shortcut.
//   - ApplyVector and ApplyTransposeVector for plain []field.Element vectors.
//   - Write, Read and Parse over a MatrixMarket-style text form, and
//     Fingerprint (BLAKE3-256 of that form).
//
// Errors follow the matrix package: sentinels matched with errors.Is, wrapped as
// "<kind>.<Operation>: ...". Shape and field failures reuse
// matrix.ErrDimensionMismatch and matrix.ErrFieldMismatch.
//
// Logging is off unless WithLogger is given; Product then emits one debug
// record per dispatch decision.
package blackbox
