// Package fibb is an algebra of implicit matrices over prime fields: operators
// known only through their action on dense matrices, composed into products
// and queried for rank, determinant, solutions and nullspaces without ever
// being materialized.
//
// 🚀 What is fibb?
//
//	A small, exact, dependency-light toolkit that brings together:
//		• Prime fields GF(p), p < 2^32, with canonical uint64 residues
//		• Dense matrices and a matrix Domain (multiply, solve, rank, nullspace)
//		• Fast invertible blackboxes: diagonal, permutation, triangular, dense
//		• Product: composes any chain of blackboxes and resolves every query
//		  through its two children
//		• A MatrixMarket-style serialized form with a real parser and BLAKE3
//		  fingerprints
//
// ✨ Why choose fibb?
//
//   - Exact: no floating point, no tolerances
//   - Explicit: every operation returns an error instead of panicking
//   - Observable: Product dispatch decisions are logged through log/slog
//
// Under the hood, everything is organized under three subpackages:
//
//	field/    GF(p) arithmetic
//	matrix/   Dense, Domain, validators & echelon kernels
//	blackbox/ BlackBox & FIBB contracts, leaves, Product, serialization
//
// Quick example: a permutation times a singular diagonal has a one-dimensional
// right nullspace, found without multiplying the two factors.
//
//	P, _ := blackbox.NewPermutation(f, []int{2, 0, 1})
//	D, _ := blackbox.NewDiagonal(f, []field.Element{1, 0, 3})
//	A := blackbox.MustCompose(P, D)
//	B, _ := matrix.NewDense(f, 0, 0)
//	_ = A.NullspaceBasisRight(B) // B = [0 1 0]ᵀ
//
//	go get github.com/katalvlaran/fibb
package fibb
