// SPDX-License-Identifier: MIT

package blackbox

import (
	"io"

	"github.com/katalvlaran/fibb/field"
	"github.com/katalvlaran/fibb/matrix"
)

// Diagonal is diag(d_0, ..., d_{n-1}). Zero entries make it singular; its
// nullspaces are spanned by the unit vectors on the zero positions.
type Diagonal struct {
	leaf
	d []field.Element
}

var _ FIBB = (*Diagonal)(nil)

// NewDiagonal builds diag(d) over f. Entries are reduced into f and copied.
func NewDiagonal(f field.Field, d []field.Element, opts ...Option) (*Diagonal, error) {
	l, err := newLeaf(f, opts...)
	if err != nil {
		return nil, bbErrorf(KindDiagonal, opInit, err)
	}
	cp := make([]field.Element, len(d))
	for i, v := range d {
		cp[i] = f.Reduce(v)
	}

	return &Diagonal{leaf: l, d: cp}, nil
}

func (a *Diagonal) Kind() Kind { return KindDiagonal }
func (a *Diagonal) Rows() int  { return len(a.d) }
func (a *Diagonal) Cols() int  { return len(a.d) }

// Entries returns a copy of the diagonal.
func (a *Diagonal) Entries() []field.Element {
	return append([]field.Element(nil), a.d...)
}

// ApplyRight scales row i of X by d_i.
// Complexity: O(n*k).
func (a *Diagonal) ApplyRight(Y, X *matrix.Dense) error {
	if err := checkApplyRight(a, Y, X); err != nil {
		return bbErrorf(KindDiagonal, opApplyRight, err)
	}
	for i, di := range a.d {
		xr, yr := X.RowView(i), Y.RowView(i)
		for j := range xr {
			yr[j] = a.f.Mul(di, xr[j])
		}
	}
	return nil
}

// ApplyLeft scales column j of X by d_j.
func (a *Diagonal) ApplyLeft(Y, X *matrix.Dense) error {
	if err := checkApplyLeft(a, Y, X); err != nil {
		return bbErrorf(KindDiagonal, opApplyLeft, err)
	}
	for r := 0; r < X.Rows(); r++ {
		xr, yr := X.RowView(r), Y.RowView(r)
		for j, dj := range a.d {
			yr[j] = a.f.Mul(xr[j], dj)
		}
	}
	return nil
}

// Rank counts the non-zero entries.
func (a *Diagonal) Rank() int {
	r := 0
	for _, v := range a.d {
		if v != 0 {
			r++
		}
	}
	return r
}

// Det is the product of the entries.
func (a *Diagonal) Det() field.Element {
	det := a.f.One()
	for _, v := range a.d {
		det = a.f.Mul(det, v)
	}
	return det
}

// SolveRight divides row i of X by d_i. Rows on zero entries must be zero in X
// (else matrix.ErrInconsistent) and are zero in Y.
func (a *Diagonal) SolveRight(Y, X *matrix.Dense) error {
	if err := checkSolveRight(a, Y, X); err != nil {
		return bbErrorf(KindDiagonal, opSolveRight, err)
	}
	for i, di := range a.d {
		xr, yr := X.RowView(i), Y.RowView(i)
		if di == 0 {
			if !allZero(xr) {
				return bbErrorf(KindDiagonal, opSolveRight, matrix.ErrInconsistent)
			}
			clear(yr)
			continue
		}
		inv, _ := a.f.Inv(di)
		for j := range xr {
			yr[j] = a.f.Mul(xr[j], inv)
		}
	}
	return nil
}

// SolveLeft divides column j of X by d_j.
func (a *Diagonal) SolveLeft(Y, X *matrix.Dense) error {
	if err := checkSolveLeft(a, Y, X); err != nil {
		return bbErrorf(KindDiagonal, opSolveLeft, err)
	}
	invs := make([]field.Element, len(a.d))
	for j, dj := range a.d {
		if dj != 0 {
			invs[j], _ = a.f.Inv(dj)
		}
	}
	for r := 0; r < X.Rows(); r++ {
		xr, yr := X.RowView(r), Y.RowView(r)
		for j, dj := range a.d {
			if dj == 0 {
				if xr[j] != 0 {
					return bbErrorf(KindDiagonal, opSolveLeft, matrix.ErrInconsistent)
				}
				yr[j] = 0
				continue
			}
			yr[j] = a.f.Mul(xr[j], invs[j])
		}
	}
	return nil
}

// NullspaceRandomRight fills the rows of N on zero entries with random values
// and zeroes the others.
func (a *Diagonal) NullspaceRandomRight(N *matrix.Dense) error {
	if err := checkNullRight(a, N); err != nil {
		return bbErrorf(KindDiagonal, opNullRandR, err)
	}
	for i, di := range a.d {
		nr := N.RowView(i)
		for j := range nr {
			if di == 0 {
				nr[j] = a.md.RandomElement()
			} else {
				nr[j] = 0
			}
		}
	}
	return nil
}

// NullspaceRandomLeft fills the columns of N on zero entries with random values.
func (a *Diagonal) NullspaceRandomLeft(N *matrix.Dense) error {
	if err := checkNullLeft(a, N); err != nil {
		return bbErrorf(KindDiagonal, opNullRandL, err)
	}
	for r := 0; r < N.Rows(); r++ {
		nr := N.RowView(r)
		for j, dj := range a.d {
			if dj == 0 {
				nr[j] = a.md.RandomElement()
			} else {
				nr[j] = 0
			}
		}
	}
	return nil
}

// NullspaceBasisRight resizes B to n×z (z zero entries); column t is the unit
// vector on the t-th zero position.
func (a *Diagonal) NullspaceBasisRight(B *matrix.Dense) error {
	if err := checkBasis(a, B); err != nil {
		return bbErrorf(KindDiagonal, opNullBasisR, err)
	}
	zeros := a.zeros()
	if err := B.Resize(len(a.d), len(zeros)); err != nil {
		return bbErrorf(KindDiagonal, opNullBasisR, err)
	}
	for t, i := range zeros {
		B.RowView(i)[t] = a.f.One()
	}
	return nil
}

// NullspaceBasisLeft resizes B to z×n; row t is the unit vector on the t-th zero position.
func (a *Diagonal) NullspaceBasisLeft(B *matrix.Dense) error {
	if err := checkBasis(a, B); err != nil {
		return bbErrorf(KindDiagonal, opNullBasisL, err)
	}
	zeros := a.zeros()
	if err := B.Resize(len(zeros), len(a.d)); err != nil {
		return bbErrorf(KindDiagonal, opNullBasisL, err)
	}
	for t, i := range zeros {
		B.RowView(t)[i] = a.f.One()
	}
	return nil
}

func (a *Diagonal) zeros() []int {
	var out []int
	for i, v := range a.d {
		if v == 0 {
			out = append(out, i)
		}
	}
	return out
}

// Write emits the header, "n n" and the diagonal entries.
func (a *Diagonal) Write(w io.Writer) error {
	lw := &lineWriter{w: w}
	lw.header(KindDiagonal, a.f)
	lw.dims(len(a.d), len(a.d))
	lw.elements(a.d)
	if lw.err != nil {
		return bbErrorf(KindDiagonal, opWrite, lw.err)
	}
	return nil
}

// Read replaces the receiver with a serialized diagonal.
func (a *Diagonal) Read(r io.Reader) error {
	built, err := readInto(r, KindDiagonal, a.inherit)
	if err != nil {
		return err
	}
	*a = *built.(*Diagonal)
	return nil
}

func allZero(vs []field.Element) bool {
	for _, v := range vs {
		if v != 0 {
			return false
		}
	}
	return true
}
