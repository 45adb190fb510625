// SPDX-License-Identifier: MIT

package blackbox

import (
	"io"

	"github.com/katalvlaran/fibb/field"
	"github.com/katalvlaran/fibb/matrix"
)

// Permutation is the matrix P with P[i][p[i]] = 1, so (P·X)[i,:] = X[p[i],:].
// It is always square and invertible; both nullspaces are trivial.
type Permutation struct {
	leaf
	p   []int
	inv []int
}

var _ FIBB = (*Permutation)(nil)

// NewPermutation builds P from the index vector p.
// Errors: ErrNotPermutation when p is not a bijection of [0, len(p)).
func NewPermutation(f field.Field, p []int, opts ...Option) (*Permutation, error) {
	l, err := newLeaf(f, opts...)
	if err != nil {
		return nil, bbErrorf(KindPermutation, opInit, err)
	}
	inv := make([]int, len(p))
	seen := make([]bool, len(p))
	for i, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return nil, bbErrorf(KindPermutation, opInit, ErrNotPermutation)
		}
		seen[v] = true
		inv[v] = i
	}

	return &Permutation{leaf: l, p: append([]int(nil), p...), inv: inv}, nil
}

func (a *Permutation) Kind() Kind { return KindPermutation }
func (a *Permutation) Rows() int  { return len(a.p) }
func (a *Permutation) Cols() int  { return len(a.p) }

// Indices returns a copy of the index vector.
func (a *Permutation) Indices() []int { return append([]int(nil), a.p...) }

// ApplyRight gathers rows: Y[i,:] = X[p[i],:]. Y may alias X.
func (a *Permutation) ApplyRight(Y, X *matrix.Dense) error {
	if err := checkApplyRight(a, Y, X); err != nil {
		return bbErrorf(KindPermutation, opApplyRight, err)
	}
	src := X.Clone()
	for i, pi := range a.p {
		copy(Y.RowView(i), src.RowView(pi))
	}
	return nil
}

// ApplyLeft permutes columns: Y[:,j] = X[:,inv[j]].
func (a *Permutation) ApplyLeft(Y, X *matrix.Dense) error {
	if err := checkApplyLeft(a, Y, X); err != nil {
		return bbErrorf(KindPermutation, opApplyLeft, err)
	}
	scatterColumns(Y, X, a.inv)
	return nil
}

func (a *Permutation) Rank() int { return len(a.p) }

// Det is the sign of the permutation: (-1)^(n - #cycles).
func (a *Permutation) Det() field.Element {
	visited := make([]bool, len(a.p))
	cycles := 0
	for i := range a.p {
		if visited[i] {
			continue
		}
		cycles++
		for j := i; !visited[j]; j = a.p[j] {
			visited[j] = true
		}
	}
	if (len(a.p)-cycles)%2 == 1 {
		return a.f.Neg(a.f.One())
	}
	return a.f.One()
}

// SolveRight applies P^-1: Y[p[i],:] = X[i,:].
func (a *Permutation) SolveRight(Y, X *matrix.Dense) error {
	if err := checkSolveRight(a, Y, X); err != nil {
		return bbErrorf(KindPermutation, opSolveRight, err)
	}
	src := X.Clone()
	for i, pi := range a.p {
		copy(Y.RowView(pi), src.RowView(i))
	}
	return nil
}

// SolveLeft applies P^-1 on the right: Y[:,i] = X[:,p[i]].
func (a *Permutation) SolveLeft(Y, X *matrix.Dense) error {
	if err := checkSolveLeft(a, Y, X); err != nil {
		return bbErrorf(KindPermutation, opSolveLeft, err)
	}
	scatterColumns(Y, X, a.p)
	return nil
}

// NullspaceRandomRight zeroes N: the only vector P annihilates is 0.
func (a *Permutation) NullspaceRandomRight(N *matrix.Dense) error {
	if err := checkNullRight(a, N); err != nil {
		return bbErrorf(KindPermutation, opNullRandR, err)
	}
	N.Zero()
	return nil
}

func (a *Permutation) NullspaceRandomLeft(N *matrix.Dense) error {
	if err := checkNullLeft(a, N); err != nil {
		return bbErrorf(KindPermutation, opNullRandL, err)
	}
	N.Zero()
	return nil
}

// NullspaceBasisRight resizes B to n×0.
func (a *Permutation) NullspaceBasisRight(B *matrix.Dense) error {
	if err := checkBasis(a, B); err != nil {
		return bbErrorf(KindPermutation, opNullBasisR, err)
	}
	return B.Resize(len(a.p), 0)
}

// NullspaceBasisLeft resizes B to 0×n.
func (a *Permutation) NullspaceBasisLeft(B *matrix.Dense) error {
	if err := checkBasis(a, B); err != nil {
		return bbErrorf(KindPermutation, opNullBasisL, err)
	}
	return B.Resize(0, len(a.p))
}

// Write emits the header, "n n" and the index vector.
func (a *Permutation) Write(w io.Writer) error {
	lw := &lineWriter{w: w}
	lw.header(KindPermutation, a.f)
	lw.dims(len(a.p), len(a.p))
	lw.ints(a.p)
	if lw.err != nil {
		return bbErrorf(KindPermutation, opWrite, lw.err)
	}
	return nil
}

// Read replaces the receiver with a serialized permutation.
func (a *Permutation) Read(r io.Reader) error {
	built, err := readInto(r, KindPermutation, a.inherit)
	if err != nil {
		return err
	}
	*a = *built.(*Permutation)
	return nil
}

// scatterColumns sets Y[:,j] = X[:,idx[j]] row by row. Y may alias X.
func scatterColumns(Y, X *matrix.Dense, idx []int) {
	buf := make([]field.Element, len(idx))
	for r := 0; r < X.Rows(); r++ {
		xr := X.RowView(r)
		for j, src := range idx {
			buf[j] = xr[src]
		}
		copy(Y.RowView(r), buf)
	}
}
