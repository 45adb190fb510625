// SPDX-License-Identifier: MIT

package blackbox

import (
	"github.com/katalvlaran/fibb/field"
	"github.com/katalvlaran/fibb/matrix"
)

// leaf carries the state every directly implemented FIBB shares.
type leaf struct {
	f     field.Field
	md    *matrix.Domain
	label string
}

func newLeaf(f field.Field, opts ...Option) (leaf, error) {
	if f == nil {
		return leaf{}, matrix.ErrNilField
	}
	o, err := gatherOptions(f, opts...)
	if err != nil {
		return leaf{}, err
	}

	return leaf{f: f, md: o.domain, label: o.label}, nil
}

func (l *leaf) Field() field.Field { return l.f }
func (l *leaf) Label() string      { return l.label }
func (l *leaf) sealed()            {}

// inherit returns the options a Read should rebuild the receiver with:
// the label always, the domain only when it is over the parsed field.
func (l *leaf) inherit(modulus uint64) []Option {
	var opts []Option
	if l.label != "" {
		opts = append(opts, WithLabel(l.label))
	}
	if l.md != nil && l.md.Field().Modulus() == modulus {
		opts = append(opts, WithDomain(l.md))
	}
	return opts
}

// ---------- shape guards (shared by leaves and Product) ----------

// checkApplyRight validates Y = A·X: X cols×k, Y rows×k, both over A's field.
func checkApplyRight(a BlackBox, Y, X *matrix.Dense) error {
	if err := matrix.ValidateNotNil(Y, X); err != nil {
		return err
	}
	if err := matrix.ValidateShape(X, a.Cols(), X.Cols()); err != nil {
		return err
	}
	if err := matrix.ValidateShape(Y, a.Rows(), X.Cols()); err != nil {
		return err
	}
	return checkFields(a.Field(), Y, X)
}

// checkApplyLeft validates Y = X·A: X k×rows, Y k×cols.
func checkApplyLeft(a BlackBox, Y, X *matrix.Dense) error {
	if err := matrix.ValidateNotNil(Y, X); err != nil {
		return err
	}
	if err := matrix.ValidateShape(X, X.Rows(), a.Rows()); err != nil {
		return err
	}
	if err := matrix.ValidateShape(Y, X.Rows(), a.Cols()); err != nil {
		return err
	}
	return checkFields(a.Field(), Y, X)
}

// checkSolveRight validates A·Y = X: X rows×k, Y cols×k.
// The shapes are those of ApplyRight with the operands swapped.
func checkSolveRight(a BlackBox, Y, X *matrix.Dense) error {
	return checkApplyRight(a, X, Y)
}

// checkSolveLeft validates Y·A = X: X k×cols, Y k×rows.
func checkSolveLeft(a BlackBox, Y, X *matrix.Dense) error {
	return checkApplyLeft(a, X, Y)
}

// checkNullRight validates N cols×k.
func checkNullRight(a BlackBox, N *matrix.Dense) error {
	if err := matrix.ValidateShape(N, a.Cols(), colsOf(N)); err != nil {
		return err
	}
	return checkFields(a.Field(), N)
}

// checkNullLeft validates N k×rows.
func checkNullLeft(a BlackBox, N *matrix.Dense) error {
	if err := matrix.ValidateShape(N, rowsOf(N), a.Rows()); err != nil {
		return err
	}
	return checkFields(a.Field(), N)
}

// checkBasis validates the output buffer of a nullspace basis.
func checkBasis(a BlackBox, B *matrix.Dense) error {
	if err := matrix.ValidateNotNil(B); err != nil {
		return err
	}
	return checkFields(a.Field(), B)
}

func checkFields(f field.Field, ms ...*matrix.Dense) error {
	for _, m := range ms {
		if err := matrix.ValidateField(m, f); err != nil {
			return err
		}
	}
	return nil
}

func rowsOf(m *matrix.Dense) int {
	if m == nil {
		return 0
	}
	return m.Rows()
}

func colsOf(m *matrix.Dense) int {
	if m == nil {
		return 0
	}
	return m.Cols()
}
