// SPDX-License-Identifier: MIT

// Package blackbox - Product: the composite FIBB A = left·right.
//
// Resolution protocol (every operation reads only the two children):
//   - dims: rows from left, cols from right, field from left.
//   - ApplyRight: X1 = right·X, Y = left·X1.  ApplyLeft: X1 = X·left, Y = X1·right.
//   - Rank = min(rank(left), rank(right)); exact for generic factors only.
//   - Det  = det(left)·det(right).
//   - SolveRight: left·Z = X, then right·Y = Z.  SolveLeft: Z·right = X, then Y·left = Z.
//   - NullspaceRandomRight: left invertible => right's sample; otherwise a sample
//     N1 of left's nullspace is pulled back through right (right·N = N1).
//   - NullspaceBasisRight: same branching with a full basis of left.
//   - Left-sided operations mirror the above, keyed on right.
//
// A factor counts as invertible when it is square and its rank equals its
// dimension (isSquareFullRank). The fast branches trust the factor's Rank; a
// factor misreporting its rank yields silently wrong results.
//
// Composition of k operands (NewProduct / Init):
//   - k=2: A1 | A2                 (both borrowed)
//   - k=3: A1 | (A2·A3)            (right owned)
//   - k=4: (A1·A2) | (A3·A4)       (both owned)
//   - k=5: A1 | ((A2·A3)·(A4·A5))  (right owned)
//   - k>5: first k/2 | the rest    (both owned, built recursively)
//
// Concurrency: a Product holds no locks and must not be used from several
// goroutines at once. Distinct products may share borrowed leaves.

package blackbox

import (
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/katalvlaran/fibb/field"
	"github.com/katalvlaran/fibb/matrix"
)

// Dispatch branch names reported in log records: direct delegates to one
// factor, solve pulls a sample back through the other, two-stage chains both.
const (
	branchDirect = "direct"
	branchSolve  = "solve"
	branchStaged = "two-stage"
)

// Product is the composite FIBB left·right.
// The zero value is an unbound product: every operation returns ErrUnbound
// until Init binds it.
type Product struct {
	left, right operand

	md     *matrix.Domain
	logger *slog.Logger
	label  string
	id     uuid.UUID
}

var _ FIBB = (*Product)(nil)

// NewProduct composes factors (k >= 2) into a product tree. The factors are
// borrowed: the caller keeps them alive and may share them between products.
//
// Errors: ErrTooFewOperands, ErrNilOperand, ErrUnbound (an unbound Product as
// factor), matrix.ErrFieldMismatch, matrix.ErrDimensionMismatch.
func NewProduct(factors []FIBB, opts ...Option) (*Product, error) {
	if err := validateChain(factors); err != nil {
		return nil, bbErrorf(KindProduct, opInit, err)
	}
	o, err := gatherOptions(factors[0].Field(), opts...)
	if err != nil {
		return nil, bbErrorf(KindProduct, opInit, err)
	}
	p := &Product{md: o.domain, logger: o.logger, label: o.label, id: uuid.New()}
	p.bind(factors)

	return p, nil
}

// Compose is NewProduct with default options.
func Compose(factors ...FIBB) (*Product, error) {
	return NewProduct(factors)
}

// MustCompose is Compose that panics on error. Intended for tests and examples.
func MustCompose(factors ...FIBB) *Product {
	p, err := Compose(factors...)
	if err != nil {
		panic(err)
	}
	return p
}

// Init (re)binds p to the product of factors. Owned children of a previous
// binding are released after the new binding is in place, except those passed
// back in as factors (they become borrowed). Borrowed ones are left alone. On
// error the previous binding is kept.
//
// Errors: as NewProduct, plus ErrSelfReference when p occurs in the tree of
// any factor.
func (p *Product) Init(factors ...FIBB) error {
	if err := validateChain(factors); err != nil {
		return bbErrorf(KindProduct, opInit, err)
	}
	for _, a := range factors {
		if contains(a, p) {
			return bbErrorf(KindProduct, opInit, ErrSelfReference)
		}
	}
	f := factors[0].Field()
	if p.md == nil || !field.SameField(p.md.Field(), f) {
		md, err := matrix.NewDomain(f)
		if err != nil {
			return bbErrorf(KindProduct, opInit, err)
		}
		p.md = md
	}
	if p.logger == nil {
		p.logger = discardLogger
	}
	if p.id == uuid.Nil {
		p.id = uuid.New()
	}
	oldLeft, oldRight := p.left, p.right
	p.left, p.right = operand{}, operand{}
	p.bind(factors)

	keep := make(map[FIBB]bool, len(factors))
	for _, a := range factors {
		keep[a] = true
	}
	oldLeft.releaseExcept(keep)
	oldRight.releaseExcept(keep)

	return nil
}

// contains reports whether node occurs in the product tree rooted at a.
func contains(a FIBB, node *Product) bool {
	q, ok := a.(*Product)
	if !ok {
		return false
	}
	if q == node {
		return true
	}
	return contains(q.left.fibb, node) || contains(q.right.fibb, node)
}

// Release unbinds p and releases its owned sub-products transitively.
// Borrowed factors are never touched. Release on an unbound product is a no-op.
func (p *Product) Release() {
	p.left.release()
	p.right.release()
}

// bind applies the pairing policy to already validated factors.
func (p *Product) bind(fs []FIBB) {
	switch k := len(fs); k {
	case 2:
		p.left, p.right = borrow(fs[0]), borrow(fs[1])
	case 3:
		p.left, p.right = borrow(fs[0]), own(p.sub(fs[1:]))
	case 4:
		p.left, p.right = own(p.sub(fs[:2])), own(p.sub(fs[2:]))
	case 5:
		p.left, p.right = borrow(fs[0]), own(p.sub(fs[1:]))
	default:
		h := k / 2
		p.left, p.right = own(p.sub(fs[:h])), own(p.sub(fs[h:]))
	}
	p.logger.Debug("product bound",
		slog.String("node", p.id.String()),
		slog.String("label", p.label),
		slog.Int("operands", len(fs)),
		slog.Int("rows", p.Rows()),
		slog.Int("cols", p.Cols()),
	)
}

// sub builds an owned sub-product sharing p's domain and logger.
func (p *Product) sub(fs []FIBB) *Product {
	child := &Product{md: p.md, logger: p.logger, id: uuid.New()}
	child.bind(fs)
	return child
}

// validateChain checks operand count, nil operands, fields and chain shapes.
func validateChain(fs []FIBB) error {
	if len(fs) < 2 {
		return ErrTooFewOperands
	}
	for _, a := range fs {
		if a == nil {
			return ErrNilOperand
		}
		if a.Field() == nil {
			return ErrUnbound
		}
	}
	for i := 1; i < len(fs); i++ {
		if !field.SameField(fs[i-1].Field(), fs[i].Field()) {
			return matrix.ErrFieldMismatch
		}
		if fs[i-1].Cols() != fs[i].Rows() {
			return matrix.ErrDimensionMismatch
		}
	}
	return nil
}

// ---------- accessors ----------

func (p *Product) Kind() Kind    { return KindProduct }
func (p *Product) Label() string { return p.label }
func (p *Product) sealed()       {}

// ID identifies the node in log records.
func (p *Product) ID() uuid.UUID { return p.id }

// Left returns the left factor, or nil when unbound.
func (p *Product) Left() FIBB { return p.left.fibb }

// Right returns the right factor, or nil when unbound.
func (p *Product) Right() FIBB { return p.right.fibb }

func (p *Product) bound() bool { return p.left.bound() && p.right.bound() }

func (p *Product) Rows() int {
	if !p.bound() {
		return 0
	}
	return p.left.fibb.Rows()
}

func (p *Product) Cols() int {
	if !p.bound() {
		return 0
	}
	return p.right.fibb.Cols()
}

// Field is the left factor's field, or nil when unbound.
func (p *Product) Field() field.Field {
	if !p.bound() {
		return nil
	}
	return p.left.fibb.Field()
}

// trace records one dispatch decision.
func (p *Product) trace(op, branch string) {
	p.logger.Debug("product dispatch",
		slog.String("op", op),
		slog.String("node", p.id.String()),
		slog.String("label", p.label),
		slog.String("branch", branch),
	)
}

// ---------- apply ----------

// ApplyRight computes Y = left·(right·X).
func (p *Product) ApplyRight(Y, X *matrix.Dense) error {
	if !p.bound() {
		return bbErrorf(KindProduct, opApplyRight, ErrUnbound)
	}
	if err := checkApplyRight(p, Y, X); err != nil {
		return bbErrorf(KindProduct, opApplyRight, err)
	}
	X1, err := p.md.New(p.right.fibb.Rows(), X.Cols())
	if err != nil {
		return bbErrorf(KindProduct, opApplyRight, err)
	}
	if err = p.right.fibb.ApplyRight(X1, X); err != nil {
		return bbErrorf(KindProduct, opApplyRight, err)
	}
	if err = p.left.fibb.ApplyRight(Y, X1); err != nil {
		return bbErrorf(KindProduct, opApplyRight, err)
	}
	return nil
}

// ApplyLeft computes Y = (X·left)·right.
func (p *Product) ApplyLeft(Y, X *matrix.Dense) error {
	if !p.bound() {
		return bbErrorf(KindProduct, opApplyLeft, ErrUnbound)
	}
	if err := checkApplyLeft(p, Y, X); err != nil {
		return bbErrorf(KindProduct, opApplyLeft, err)
	}
	X1, err := p.md.New(X.Rows(), p.left.fibb.Cols())
	if err != nil {
		return bbErrorf(KindProduct, opApplyLeft, err)
	}
	if err = p.left.fibb.ApplyLeft(X1, X); err != nil {
		return bbErrorf(KindProduct, opApplyLeft, err)
	}
	if err = p.right.fibb.ApplyLeft(Y, X1); err != nil {
		return bbErrorf(KindProduct, opApplyLeft, err)
	}
	return nil
}

// ---------- rank & determinant ----------

// Rank returns min(rank(left), rank(right)). This is an upper bound on the true
// rank and equals it for generic factors. Zero when unbound.
func (p *Product) Rank() int {
	if !p.bound() {
		return 0
	}
	return min(p.left.fibb.Rank(), p.right.fibb.Rank())
}

// Det returns det(left)·det(right). Zero when unbound.
func (p *Product) Det() field.Element {
	if !p.bound() {
		return 0
	}
	return p.Field().Mul(p.left.fibb.Det(), p.right.fibb.Det())
}

// ---------- solve ----------

// SolveRight solves left·Z = X, then right·Y = Z.
// For a singular but consistent system Z must lie in the range of right.
func (p *Product) SolveRight(Y, X *matrix.Dense) error {
	if !p.bound() {
		return bbErrorf(KindProduct, opSolveRight, ErrUnbound)
	}
	if err := checkSolveRight(p, Y, X); err != nil {
		return bbErrorf(KindProduct, opSolveRight, err)
	}
	p.trace(opSolveRight, branchStaged)
	Z, err := p.md.New(p.left.fibb.Cols(), X.Cols())
	if err != nil {
		return bbErrorf(KindProduct, opSolveRight, err)
	}
	if err = p.left.fibb.SolveRight(Z, X); err != nil {
		return bbErrorf(KindProduct, opSolveRight, err)
	}
	if err = p.right.fibb.SolveRight(Y, Z); err != nil {
		return bbErrorf(KindProduct, opSolveRight, err)
	}
	return nil
}

// SolveLeft solves Z·right = X, then Y·left = Z.
func (p *Product) SolveLeft(Y, X *matrix.Dense) error {
	if !p.bound() {
		return bbErrorf(KindProduct, opSolveLeft, ErrUnbound)
	}
	if err := checkSolveLeft(p, Y, X); err != nil {
		return bbErrorf(KindProduct, opSolveLeft, err)
	}
	p.trace(opSolveLeft, branchStaged)
	Z, err := p.md.New(X.Rows(), p.right.fibb.Rows())
	if err != nil {
		return bbErrorf(KindProduct, opSolveLeft, err)
	}
	if err = p.right.fibb.SolveLeft(Z, X); err != nil {
		return bbErrorf(KindProduct, opSolveLeft, err)
	}
	if err = p.left.fibb.SolveLeft(Y, Z); err != nil {
		return bbErrorf(KindProduct, opSolveLeft, err)
	}
	return nil
}

// ---------- nullspace sampling ----------

// NullspaceRandomRight fills N (cols×k) with A·N = 0.
// left invertible: right's own sample. Otherwise a sample N1 of left's right
// nullspace is pulled back: right·N = N1, so left·right·N = left·N1 = 0.
// When right is singular too, N1 may fall outside its range and the pull-back
// fails with matrix.ErrInconsistent although A has a non-trivial nullspace.
func (p *Product) NullspaceRandomRight(N *matrix.Dense) error {
	if !p.bound() {
		return bbErrorf(KindProduct, opNullRandR, ErrUnbound)
	}
	if err := checkNullRight(p, N); err != nil {
		return bbErrorf(KindProduct, opNullRandR, err)
	}
	left, right := p.left.fibb, p.right.fibb
	if isSquareFullRank(left) {
		p.trace(opNullRandR, branchDirect)
		if err := right.NullspaceRandomRight(N); err != nil {
			return bbErrorf(KindProduct, opNullRandR, err)
		}
		return nil
	}

	p.trace(opNullRandR, branchSolve)
	N1, err := p.md.New(left.Cols(), N.Cols())
	if err != nil {
		return bbErrorf(KindProduct, opNullRandR, err)
	}
	if err = left.NullspaceRandomRight(N1); err != nil {
		return bbErrorf(KindProduct, opNullRandR, err)
	}
	if err = right.SolveRight(N, N1); err != nil {
		return bbErrorf(KindProduct, opNullRandR, err)
	}
	return nil
}

// NullspaceRandomLeft fills N (k×rows) with N·A = 0, keyed on right.
func (p *Product) NullspaceRandomLeft(N *matrix.Dense) error {
	if !p.bound() {
		return bbErrorf(KindProduct, opNullRandL, ErrUnbound)
	}
	if err := checkNullLeft(p, N); err != nil {
		return bbErrorf(KindProduct, opNullRandL, err)
	}
	left, right := p.left.fibb, p.right.fibb
	if isSquareFullRank(right) {
		p.trace(opNullRandL, branchDirect)
		if err := left.NullspaceRandomLeft(N); err != nil {
			return bbErrorf(KindProduct, opNullRandL, err)
		}
		return nil
	}

	p.trace(opNullRandL, branchSolve)
	N1, err := p.md.New(N.Rows(), right.Rows())
	if err != nil {
		return bbErrorf(KindProduct, opNullRandL, err)
	}
	if err = right.NullspaceRandomLeft(N1); err != nil {
		return bbErrorf(KindProduct, opNullRandL, err)
	}
	if err = left.SolveLeft(N, N1); err != nil {
		return bbErrorf(KindProduct, opNullRandL, err)
	}
	return nil
}

// ---------- nullspace bases ----------

// NullspaceBasisRight resizes B and fills it with a right-nullspace basis.
// left invertible: right's basis. Otherwise left's basis is pulled back through
// right column-wise, which is a basis of A's nullspace when right is invertible.
// With both factors singular the pull-back may fail with matrix.ErrInconsistent.
func (p *Product) NullspaceBasisRight(B *matrix.Dense) error {
	if !p.bound() {
		return bbErrorf(KindProduct, opNullBasisR, ErrUnbound)
	}
	if err := checkBasis(p, B); err != nil {
		return bbErrorf(KindProduct, opNullBasisR, err)
	}
	left, right := p.left.fibb, p.right.fibb
	if isSquareFullRank(left) {
		p.trace(opNullBasisR, branchDirect)
		if err := right.NullspaceBasisRight(B); err != nil {
			return bbErrorf(KindProduct, opNullBasisR, err)
		}
		return nil
	}

	p.trace(opNullBasisR, branchSolve)
	N1, err := p.md.New(0, 0)
	if err != nil {
		return bbErrorf(KindProduct, opNullBasisR, err)
	}
	if err = left.NullspaceBasisRight(N1); err != nil {
		return bbErrorf(KindProduct, opNullBasisR, err)
	}
	if err = p.md.Resize(B, right.Cols(), N1.Cols()); err != nil {
		return bbErrorf(KindProduct, opNullBasisR, err)
	}
	if err = right.SolveRight(B, N1); err != nil {
		return bbErrorf(KindProduct, opNullBasisR, err)
	}
	return nil
}

// NullspaceBasisLeft mirrors NullspaceBasisRight, keyed on right.
func (p *Product) NullspaceBasisLeft(B *matrix.Dense) error {
	if !p.bound() {
		return bbErrorf(KindProduct, opNullBasisL, ErrUnbound)
	}
	if err := checkBasis(p, B); err != nil {
		return bbErrorf(KindProduct, opNullBasisL, err)
	}
	left, right := p.left.fibb, p.right.fibb
	if isSquareFullRank(right) {
		p.trace(opNullBasisL, branchDirect)
		if err := left.NullspaceBasisLeft(B); err != nil {
			return bbErrorf(KindProduct, opNullBasisL, err)
		}
		return nil
	}

	p.trace(opNullBasisL, branchSolve)
	N1, err := p.md.New(0, 0)
	if err != nil {
		return bbErrorf(KindProduct, opNullBasisL, err)
	}
	if err = right.NullspaceBasisLeft(N1); err != nil {
		return bbErrorf(KindProduct, opNullBasisL, err)
	}
	if err = p.md.Resize(B, N1.Rows(), left.Rows()); err != nil {
		return bbErrorf(KindProduct, opNullBasisL, err)
	}
	if err = left.SolveLeft(B, N1); err != nil {
		return bbErrorf(KindProduct, opNullBasisL, err)
	}
	return nil
}

// ---------- serialization ----------

// Write emits the product header, a provenance comment, then left and right.
func (p *Product) Write(w io.Writer) error {
	if !p.bound() {
		return bbErrorf(KindProduct, opWrite, ErrUnbound)
	}
	lw := &lineWriter{w: w}
	lw.header(KindProduct, p.Field())
	lw.comment("written by Product< " + p.Field().Name() + " >")
	if lw.err != nil {
		return bbErrorf(KindProduct, opWrite, lw.err)
	}
	if err := p.left.fibb.Write(w); err != nil {
		return bbErrorf(KindProduct, opWrite, err)
	}
	if err := p.right.fibb.Write(w); err != nil {
		return bbErrorf(KindProduct, opWrite, err)
	}
	return nil
}

// Read rebinds p to a serialized product tree. The parsed children are owned by
// p. The receiver keeps its id, logger and label.
func (p *Product) Read(r io.Reader) error {
	built, err := readInto(r, KindProduct, p.inherit)
	if err != nil {
		return err
	}
	np := built.(*Product)
	p.Release()
	p.left, p.right, p.md = np.left, np.right, np.md
	if p.logger == nil {
		p.logger = discardLogger
	}
	if p.id == uuid.Nil {
		p.id = uuid.New()
	}
	return nil
}

func (p *Product) inherit(modulus uint64) []Option {
	var opts []Option
	if p.logger != nil {
		opts = append(opts, WithLogger(p.logger))
	}
	if p.md != nil && p.md.Field().Modulus() == modulus {
		opts = append(opts, WithDomain(p.md))
	}
	return opts
}
