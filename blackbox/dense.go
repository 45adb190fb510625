// SPDX-License-Identifier: MIT

package blackbox

import (
	"io"

	"github.com/katalvlaran/fibb/field"
	"github.com/katalvlaran/fibb/matrix"
)

// DenseBox wraps an explicit matrix of any shape and rank.
// Solves and bases run the echelon kernels of matrix.Domain; random nullspace
// samples use GenericNullspaceRandomRight/Left. Rank and determinant are
// computed once at construction.
type DenseBox struct {
	leaf
	m    *matrix.Dense
	rank int
	det  field.Element
}

var _ FIBB = (*DenseBox)(nil)

// NewDenseBox copies m into a new leaf.
func NewDenseBox(m *matrix.Dense, opts ...Option) (*DenseBox, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, bbErrorf(KindDense, opInit, err)
	}
	l, err := newLeaf(m.Field(), opts...)
	if err != nil {
		return nil, bbErrorf(KindDense, opInit, err)
	}
	a := &DenseBox{leaf: l, m: m.Clone()}
	a.rank = l.md.Rank(a.m)
	if a.m.Rows() == a.m.Cols() {
		a.det, _ = l.md.Det(a.m) // square: cannot fail
	}

	return a, nil
}

func (a *DenseBox) Kind() Kind { return KindDense }
func (a *DenseBox) Rows() int  { return a.m.Rows() }
func (a *DenseBox) Cols() int  { return a.m.Cols() }

// Matrix returns a copy of the wrapped matrix.
func (a *DenseBox) Matrix() *matrix.Dense { return a.m.Clone() }

// ApplyRight computes Y = M·X.
func (a *DenseBox) ApplyRight(Y, X *matrix.Dense) error {
	if err := checkApplyRight(a, Y, X); err != nil {
		return bbErrorf(KindDense, opApplyRight, err)
	}
	if err := a.md.Mul(Y, a.m, X); err != nil {
		return bbErrorf(KindDense, opApplyRight, err)
	}
	return nil
}

// ApplyLeft computes Y = X·M.
func (a *DenseBox) ApplyLeft(Y, X *matrix.Dense) error {
	if err := checkApplyLeft(a, Y, X); err != nil {
		return bbErrorf(KindDense, opApplyLeft, err)
	}
	if err := a.md.Mul(Y, X, a.m); err != nil {
		return bbErrorf(KindDense, opApplyLeft, err)
	}
	return nil
}

func (a *DenseBox) Rank() int { return a.rank }

// Det is the determinant for square matrices and zero otherwise.
func (a *DenseBox) Det() field.Element { return a.det }

func (a *DenseBox) SolveRight(Y, X *matrix.Dense) error {
	if err := checkSolveRight(a, Y, X); err != nil {
		return bbErrorf(KindDense, opSolveRight, err)
	}
	if err := a.md.SolveRight(Y, a.m, X); err != nil {
		return bbErrorf(KindDense, opSolveRight, err)
	}
	return nil
}

func (a *DenseBox) SolveLeft(Y, X *matrix.Dense) error {
	if err := checkSolveLeft(a, Y, X); err != nil {
		return bbErrorf(KindDense, opSolveLeft, err)
	}
	if err := a.md.SolveLeft(Y, a.m, X); err != nil {
		return bbErrorf(KindDense, opSolveLeft, err)
	}
	return nil
}

// NullspaceRandomRight has no structural shortcut and uses the generic fallback.
func (a *DenseBox) NullspaceRandomRight(N *matrix.Dense) error {
	return GenericNullspaceRandomRight(a.md, N, a)
}

// NullspaceRandomLeft has no structural shortcut and uses the generic fallback.
func (a *DenseBox) NullspaceRandomLeft(N *matrix.Dense) error {
	return GenericNullspaceRandomLeft(a.md, N, a)
}

func (a *DenseBox) NullspaceBasisRight(B *matrix.Dense) error {
	if err := checkBasis(a, B); err != nil {
		return bbErrorf(KindDense, opNullBasisR, err)
	}
	if err := a.md.NullspaceBasisRight(B, a.m); err != nil {
		return bbErrorf(KindDense, opNullBasisR, err)
	}
	return nil
}

func (a *DenseBox) NullspaceBasisLeft(B *matrix.Dense) error {
	if err := checkBasis(a, B); err != nil {
		return bbErrorf(KindDense, opNullBasisL, err)
	}
	if err := a.md.NullspaceBasisLeft(B, a.m); err != nil {
		return bbErrorf(KindDense, opNullBasisL, err)
	}
	return nil
}

// Write emits the header, "rows cols" and the entries row-major.
func (a *DenseBox) Write(w io.Writer) error {
	lw := &lineWriter{w: w}
	lw.header(KindDense, a.f)
	lw.dims(a.m.Rows(), a.m.Cols())
	lw.dense(a.m)
	if lw.err != nil {
		return bbErrorf(KindDense, opWrite, lw.err)
	}
	return nil
}

// Read replaces the receiver with a serialized dense matrix.
func (a *DenseBox) Read(r io.Reader) error {
	built, err := readInto(r, KindDense, a.inherit)
	if err != nil {
		return err
	}
	*a = *built.(*DenseBox)
	return nil
}
