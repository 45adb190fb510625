// SPDX-License-Identifier: MIT

// Package matrix provides explicit dense matrices over a prime field and the
// Domain that performs arithmetic on them.
//
// The matrix package provides:
//
//   - Dense, a row-major matrix of field.Element bound to its field.
//   - Domain, the matrix-domain capability: multiply, subtract/add in place,
//     random fill, and echelon-form kernels (rank, determinant, consistent
//     solve, nullspace basis).
//   - Central validators and sentinel errors shared by blackbox leaves.
//
// Dense matrices may be empty (0×k or k×0): a nullspace basis of a
// nonsingular operator has no columns.
//
// See the examples in this package and in blackbox for usage patterns.
package matrix
