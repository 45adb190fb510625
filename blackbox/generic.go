// SPDX-License-Identifier: MIT

package blackbox

import "github.com/katalvlaran/fibb/matrix"

// GenericNullspaceRandomRight samples N with A·N = 0 using only apply and solve:
// draw X, solve A·Y' = A·X, and set N = Y' - X. Any FIBB whose SolveRight returns
// a solution for consistent right-hand sides can use it.
//
// Complexity: one ApplyRight, one SolveRight and O(cols*k) arithmetic.
func GenericNullspaceRandomRight(md *matrix.Domain, N *matrix.Dense, A FIBB) error {
	if A == nil {
		return ErrNilOperand
	}
	if err := checkNullRight(A, N); err != nil {
		return bbErrorf(A.Kind(), opNullRandR, err)
	}
	X, err := md.New(N.Rows(), N.Cols())
	if err != nil {
		return bbErrorf(A.Kind(), opNullRandR, err)
	}
	if err = md.Random(X); err != nil {
		return bbErrorf(A.Kind(), opNullRandR, err)
	}
	Y, err := md.New(A.Rows(), N.Cols())
	if err != nil {
		return bbErrorf(A.Kind(), opNullRandR, err)
	}
	if err = A.ApplyRight(Y, X); err != nil {
		return err
	}
	if err = A.SolveRight(N, Y); err != nil {
		return err
	}

	return md.SubIn(N, X)
}

// GenericNullspaceRandomLeft is the left-sided counterpart: N = Y' - X where
// Y'·A = X·A.
func GenericNullspaceRandomLeft(md *matrix.Domain, N *matrix.Dense, A FIBB) error {
	if A == nil {
		return ErrNilOperand
	}
	if err := checkNullLeft(A, N); err != nil {
		return bbErrorf(A.Kind(), opNullRandL, err)
	}
	X, err := md.New(N.Rows(), N.Cols())
	if err != nil {
		return bbErrorf(A.Kind(), opNullRandL, err)
	}
	if err = md.Random(X); err != nil {
		return bbErrorf(A.Kind(), opNullRandL, err)
	}
	Y, err := md.New(N.Rows(), A.Cols())
	if err != nil {
		return bbErrorf(A.Kind(), opNullRandL, err)
	}
	if err = A.ApplyLeft(Y, X); err != nil {
		return err
	}
	if err = A.SolveLeft(N, Y); err != nil {
		return err
	}

	return md.SubIn(N, X)
}
