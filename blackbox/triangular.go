// SPDX-License-Identifier: MIT

package blackbox

import (
	"io"

	"github.com/katalvlaran/fibb/field"
	"github.com/katalvlaran/fibb/matrix"
)

// Triangle selects which triangle of a Triangular leaf is stored.
type Triangle uint8

const (
	Upper Triangle = iota
	Lower
)

func (t Triangle) String() string {
	if t == Lower {
		return "lower"
	}
	return "upper"
}

// Triangular is a nonsingular upper or lower triangular matrix.
// Solves are forward/backward substitutions; both nullspaces are trivial.
type Triangular struct {
	leaf
	m    *matrix.Dense   // n×n, zero outside the stored triangle
	tri  Triangle        // stored triangle
	dinv []field.Element // inverses of the diagonal
}

var _ FIBB = (*Triangular)(nil)

// NewTriangular copies the selected triangle of the square matrix m.
// Entries outside the triangle are ignored.
//
// Errors: matrix.ErrNonSquare, matrix.ErrFieldMismatch (injected domain),
// ErrSingular when a diagonal entry is zero.
func NewTriangular(m *matrix.Dense, tri Triangle, opts ...Option) (*Triangular, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, bbErrorf(KindTriangular, opInit, err)
	}
	if err := matrix.ValidateSquare(m); err != nil {
		return nil, bbErrorf(KindTriangular, opInit, err)
	}
	l, err := newLeaf(m.Field(), opts...)
	if err != nil {
		return nil, bbErrorf(KindTriangular, opInit, err)
	}

	n := m.Rows()
	cp := m.Clone()
	dinv := make([]field.Element, n)
	for i := 0; i < n; i++ {
		row := cp.RowView(i)
		for j := range row {
			if (tri == Upper && j < i) || (tri == Lower && j > i) {
				row[j] = 0
			}
		}
		if row[i] == 0 {
			return nil, bbErrorf(KindTriangular, opInit, ErrSingular)
		}
		dinv[i], _ = l.f.Inv(row[i])
	}

	return &Triangular{leaf: l, m: cp, tri: tri, dinv: dinv}, nil
}

func (a *Triangular) Kind() Kind         { return KindTriangular }
func (a *Triangular) Rows() int          { return a.m.Rows() }
func (a *Triangular) Cols() int          { return a.m.Cols() }
func (a *Triangular) Triangle() Triangle { return a.tri }

// Matrix returns a copy of the stored matrix.
func (a *Triangular) Matrix() *matrix.Dense { return a.m.Clone() }

// ApplyRight computes Y = T·X.
func (a *Triangular) ApplyRight(Y, X *matrix.Dense) error {
	if err := checkApplyRight(a, Y, X); err != nil {
		return bbErrorf(KindTriangular, opApplyRight, err)
	}
	if err := a.md.Mul(Y, a.m, X); err != nil {
		return bbErrorf(KindTriangular, opApplyRight, err)
	}
	return nil
}

// ApplyLeft computes Y = X·T.
func (a *Triangular) ApplyLeft(Y, X *matrix.Dense) error {
	if err := checkApplyLeft(a, Y, X); err != nil {
		return bbErrorf(KindTriangular, opApplyLeft, err)
	}
	if err := a.md.Mul(Y, X, a.m); err != nil {
		return bbErrorf(KindTriangular, opApplyLeft, err)
	}
	return nil
}

func (a *Triangular) Rank() int { return a.m.Rows() }

// Det is the product of the diagonal.
func (a *Triangular) Det() field.Element {
	det := a.f.One()
	for i := 0; i < a.m.Rows(); i++ {
		det = a.f.Mul(det, a.m.RowView(i)[i])
	}
	return det
}

// SolveRight solves T·Y = X column by column.
// Upper: back substitution (i descending); Lower: forward substitution.
// Complexity: O(n^2 * k).
func (a *Triangular) SolveRight(Y, X *matrix.Dense) error {
	if err := checkSolveRight(a, Y, X); err != nil {
		return bbErrorf(KindTriangular, opSolveRight, err)
	}
	f, n, k := a.f, a.m.Rows(), X.Cols()
	sol := make([]field.Element, n*k)
	step := func(i int) {
		row := a.m.RowView(i)
		xr := X.RowView(i)
		for c := 0; c < k; c++ {
			acc := xr[c]
			for j := range row {
				if j == i || row[j] == 0 {
					continue
				}
				acc = f.Sub(acc, f.Mul(row[j], sol[j*k+c]))
			}
			sol[i*k+c] = f.Mul(acc, a.dinv[i])
		}
	}
	if a.tri == Upper {
		for i := n - 1; i >= 0; i-- {
			step(i)
		}
	} else {
		for i := 0; i < n; i++ {
			step(i)
		}
	}
	for i := 0; i < n; i++ {
		copy(Y.RowView(i), sol[i*k:(i+1)*k])
	}
	return nil
}

// SolveLeft solves Y·T = X row by row.
// Upper: y[j] depends on y[i], i < j (j ascending); Lower: j descending.
func (a *Triangular) SolveLeft(Y, X *matrix.Dense) error {
	if err := checkSolveLeft(a, Y, X); err != nil {
		return bbErrorf(KindTriangular, opSolveLeft, err)
	}
	f, n := a.f, a.m.Rows()
	y := make([]field.Element, n)
	for r := 0; r < X.Rows(); r++ {
		xr := X.RowView(r)
		step := func(j int) {
			acc := xr[j]
			for i := 0; i < n; i++ {
				if i == j || y[i] == 0 {
					continue
				}
				t := a.m.RowView(i)[j]
				if t != 0 {
					acc = f.Sub(acc, f.Mul(y[i], t))
				}
			}
			y[j] = f.Mul(acc, a.dinv[j])
		}
		clear(y)
		if a.tri == Upper {
			for j := 0; j < n; j++ {
				step(j)
			}
		} else {
			for j := n - 1; j >= 0; j-- {
				step(j)
			}
		}
		copy(Y.RowView(r), y)
	}
	return nil
}

// NullspaceRandomRight zeroes N (T is nonsingular).
func (a *Triangular) NullspaceRandomRight(N *matrix.Dense) error {
	if err := checkNullRight(a, N); err != nil {
		return bbErrorf(KindTriangular, opNullRandR, err)
	}
	N.Zero()
	return nil
}

func (a *Triangular) NullspaceRandomLeft(N *matrix.Dense) error {
	if err := checkNullLeft(a, N); err != nil {
		return bbErrorf(KindTriangular, opNullRandL, err)
	}
	N.Zero()
	return nil
}

func (a *Triangular) NullspaceBasisRight(B *matrix.Dense) error {
	if err := checkBasis(a, B); err != nil {
		return bbErrorf(KindTriangular, opNullBasisR, err)
	}
	return B.Resize(a.m.Rows(), 0)
}

func (a *Triangular) NullspaceBasisLeft(B *matrix.Dense) error {
	if err := checkBasis(a, B); err != nil {
		return bbErrorf(KindTriangular, opNullBasisL, err)
	}
	return B.Resize(0, a.m.Rows())
}

// Write emits the header, "n n upper|lower" and the n*n entries row-major.
func (a *Triangular) Write(w io.Writer) error {
	lw := &lineWriter{w: w}
	lw.header(KindTriangular, a.f)
	lw.dims(a.m.Rows(), a.m.Cols(), a.tri.String())
	lw.dense(a.m)
	if lw.err != nil {
		return bbErrorf(KindTriangular, opWrite, lw.err)
	}
	return nil
}

// Read replaces the receiver with a serialized triangular matrix.
func (a *Triangular) Read(r io.Reader) error {
	built, err := readInto(r, KindTriangular, a.inherit)
	if err != nil {
		return err
	}
	*a = *built.(*Triangular)
	return nil
}
