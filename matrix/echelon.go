// SPDX-License-Identifier: MIT

// Package matrix - echelon-form kernels.
//
// Purpose:
//   - One Gauss-Jordan routine (reduce) shared by Rank, Det, SolveRight/Left and
//     NullspaceBasisRight/Left. Exact arithmetic: any non-zero entry is a pivot.
//
// Determinism:
//   - Pivot search scans rows top-down and takes the first non-zero entry, so the
//     arbitrary solution of a singular system is fixed (free variables are zero).
//
// Complexity quicksheet:
//   - reduce on r×c: O(r*c*min(r,c)). Every public kernel is one reduce plus O(r*c).

package matrix

import "github.com/katalvlaran/fibb/field"

// reduction records the outcome of reduce.
type reduction struct {
	pivots  []int         // pivots[i] is the pivot column of row i, i < rank
	swaps   int           // number of row exchanges
	product field.Element // product of the pivots before normalization
}

// reduce brings the first n columns of m to reduced row echelon form, in place.
// Row operations are applied to entire rows, so columns n.. act as an augmented part.
func reduce(m *Dense, n int) reduction {
	f := m.f
	red := reduction{product: f.One()}
	row := 0
	for col := 0; col < n && row < m.r; col++ {
		// Stage 1: pivot search.
		p := -1
		for i := row; i < m.r; i++ {
			if m.data[i*m.c+col] != 0 {
				p = i
				break
			}
		}
		if p < 0 {
			continue
		}
		if p != row {
			swapRows(m, p, row)
			red.swaps++
		}

		// Stage 2: normalize the pivot row.
		pr := m.RowView(row)
		pv := pr[col]
		red.product = f.Mul(red.product, pv)
		inv, _ := f.Inv(pv) // pv != 0
		for j := range pr {
			pr[j] = f.Mul(pr[j], inv)
		}

		// Stage 3: eliminate the column everywhere else.
		for i := 0; i < m.r; i++ {
			if i == row {
				continue
			}
			ri := m.RowView(i)
			factor := ri[col]
			if factor == 0 {
				continue
			}
			for j := range ri {
				ri[j] = f.Sub(ri[j], f.Mul(factor, pr[j]))
			}
		}
		red.pivots = append(red.pivots, col)
		row++
	}

	return red
}

func swapRows(m *Dense, a, b int) {
	ra, rb := m.RowView(a), m.RowView(b)
	for j := range ra {
		ra[j], rb[j] = rb[j], ra[j]
	}
}

// Rank returns the rank of m.
// Complexity: O(r*c*min(r,c)).
func (d *Domain) Rank(m *Dense) int {
	if m == nil {
		return 0
	}
	w := m.Clone()

	return len(reduce(w, w.c).pivots)
}

// Det returns the determinant of the square matrix m.
// Errors: ErrNilMatrix, ErrNonSquare.
func (d *Domain) Det(m *Dense) (field.Element, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opDet, err)
	}
	if err := ValidateSquare(m); err != nil {
		return 0, matrixErrorf(opDet, err)
	}
	w := m.Clone()
	red := reduce(w, w.c)
	if len(red.pivots) < w.r {
		return d.f.Zero(), nil
	}
	if red.swaps%2 == 1 {
		return d.f.Neg(red.product), nil
	}

	return red.product, nil
}

// SolveRight fills Y with a solution of A·Y = X.
// Shapes: A r×c, X r×k, Y c×k. Free variables are set to zero.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrFieldMismatch,
//   - ErrInconsistent when X is not in the column space of A.
func (d *Domain) SolveRight(Y, A, X *Dense) error {
	if err := ValidateNotNil(Y, A, X); err != nil {
		return matrixErrorf(opSolveR, err)
	}
	if err := ValidateShape(X, A.r, X.c); err != nil {
		return matrixErrorf(opSolveR, err)
	}
	if err := ValidateShape(Y, A.c, X.c); err != nil {
		return matrixErrorf(opSolveR, err)
	}
	if err := d.sameField(Y, A, X); err != nil {
		return matrixErrorf(opSolveR, err)
	}

	// Stage 1: augmented [A | X].
	n, k := A.c, X.c
	aug := &Dense{f: d.f, r: A.r, c: n + k, data: make([]field.Element, A.r*(n+k))}
	for i := 0; i < A.r; i++ {
		row := aug.RowView(i)
		copy(row[:n], A.RowView(i))
		copy(row[n:], X.RowView(i))
	}

	// Stage 2: reduce and check consistency of the zero rows.
	red := reduce(aug, n)
	rank := len(red.pivots)
	for i := rank; i < aug.r; i++ {
		for _, v := range aug.RowView(i)[n:] {
			if v != 0 {
				return matrixErrorf(opSolveR, ErrInconsistent)
			}
		}
	}

	// Stage 3: back-read pivot variables; free variables stay zero.
	Y.Zero()
	for i, pc := range red.pivots {
		copy(Y.RowView(pc), aug.RowView(i)[n:])
	}

	return nil
}

// SolveLeft fills Y with a solution of Y·A = X.
// Shapes: A r×c, X k×c, Y k×r. Solved as Aᵀ·Yᵀ = Xᵀ.
func (d *Domain) SolveLeft(Y, A, X *Dense) error {
	if err := ValidateNotNil(Y, A, X); err != nil {
		return matrixErrorf(opSolveL, err)
	}
	if err := ValidateShape(X, X.r, A.c); err != nil {
		return matrixErrorf(opSolveL, err)
	}
	if err := ValidateShape(Y, X.r, A.r); err != nil {
		return matrixErrorf(opSolveL, err)
	}
	Yt := &Dense{f: d.f, r: A.r, c: X.r, data: make([]field.Element, A.r*X.r)}
	if err := d.SolveRight(Yt, A.Transpose(), X.Transpose()); err != nil {
		return matrixErrorf(opSolveL, err)
	}

	return Y.CopyFrom(Yt.Transpose())
}

// NullspaceBasisRight resizes B to c×(c-rank) and fills its columns with a basis
// of {x : A·x = 0}. Column t is the unit vector on the t-th free column
// corrected on the pivot rows.
func (d *Domain) NullspaceBasisRight(B, A *Dense) error {
	if err := ValidateNotNil(B, A); err != nil {
		return matrixErrorf(opNullR, err)
	}
	if err := ValidateSameField(B, A); err != nil {
		return matrixErrorf(opNullR, err)
	}
	w := A.Clone()
	red := reduce(w, w.c)

	isPivot := make([]bool, w.c)
	for _, pc := range red.pivots {
		isPivot[pc] = true
	}
	free := make([]int, 0, w.c-len(red.pivots))
	for j := 0; j < w.c; j++ {
		if !isPivot[j] {
			free = append(free, j)
		}
	}

	if err := B.Resize(w.c, len(free)); err != nil {
		return matrixErrorf(opNullR, err)
	}
	one := d.f.One()
	for t, fc := range free {
		B.data[fc*B.c+t] = one
		for i, pc := range red.pivots {
			B.data[pc*B.c+t] = d.f.Neg(w.data[i*w.c+fc])
		}
	}

	return nil
}

// NullspaceBasisLeft resizes B to (r-rank)×r and fills its rows with a basis of
// {y : y·A = 0}.
func (d *Domain) NullspaceBasisLeft(B, A *Dense) error {
	if err := ValidateNotNil(B, A); err != nil {
		return matrixErrorf(opNullL, err)
	}
	Bt := &Dense{f: B.f}
	if err := d.NullspaceBasisRight(Bt, A.Transpose()); err != nil {
		return matrixErrorf(opNullL, err)
	}
	t := Bt.Transpose()
	if err := B.Resize(t.r, t.c); err != nil {
		return matrixErrorf(opNullL, err)
	}
	copy(B.data, t.data)

	return nil
}
