// SPDX-License-Identifier: MIT

package blackbox

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/katalvlaran/fibb/field"
	"github.com/katalvlaran/fibb/matrix"
)

type wireNode struct {
	Product *wireProduct `parser:"  @@"`
	Leaf    *wireLeaf    `parser:"| @@"`
}

type wireProduct struct {
	Field *wireField `parser:"Header \"blackbox\" \"product\" @@"`
	Left  *wireNode  `parser:"@@"`
	Right *wireNode  `parser:"@@"`
}

type wireLeaf struct {
	Kind    string     `parser:"Header \"blackbox\" @(\"diagonal\" | \"permutation\" | \"triangular\" | \"dense\")"`
	Field   *wireField `parser:"@@"`
	Rows    int        `parser:"@Int"`
	Cols    int        `parser:"@Int"`
	Flags   []string   `parser:"@Ident*"`
	Entries []uint64   `parser:"@Int*"`
}

type wireField struct {
	Modulus uint64 `parser:"\"GF\" \"(\" @Int \")\""`
}

func (n *wireNode) kind() Kind {
	if n.Product != nil {
		return KindProduct
	}
	k, _ := parseKind(n.Leaf.Kind)
	return k
}

func (n *wireNode) modulus() uint64 {
	if n.Product != nil {
		return n.Product.Field.Modulus
	}
	return n.Leaf.Field.Modulus
}

// wireLexer tokenizes the serialized form. Header must precede Comment.
var wireLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Header", Pattern: `%%MatrixMarket`},
	{Name: "Comment", Pattern: `%[^\n]*`},
	{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9_]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[()]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// wireParser needs lookahead: products and leaves share their first two tokens.
var wireParser = participle.MustBuild[wireNode](
	participle.Lexer(wireLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(4),
)

// Parse reads one serialized blackbox tree from r. Every node is built with
// opts; WithLabel applies to the root only. The children of parsed products are
// owned by their parent.
//
// Errors: ErrMalformed (syntax, bad field, inconsistent dimensions, entries out
// of range), matrix.ErrFieldMismatch (children over different fields, or a
// WithDomain over another field).
func Parse(r io.Reader, opts ...Option) (FIBB, error) {
	root, err := parseWire(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opParse, err)
	}
	a, err := build(root, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opParse, err)
	}
	return a, nil
}

// readInto parses r for the Read method of a receiver of kind want.
// inherit supplies the receiver's options once the serialized field is known.
func readInto(r io.Reader, want Kind, inherit func(modulus uint64) []Option) (FIBB, error) {
	root, err := parseWire(r)
	if err != nil {
		return nil, bbErrorf(want, opRead, err)
	}
	if got := root.kind(); got != want {
		return nil, bbErrorf(want, opRead, fmt.Errorf("%w: got %s", ErrKindMismatch, got))
	}
	a, err := build(root, inherit(root.modulus()))
	if err != nil {
		return nil, bbErrorf(want, opRead, err)
	}
	return a, nil
}

func parseWire(r io.Reader) (*wireNode, error) {
	root, err := wireParser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return root, nil
}

// build turns a syntax tree into FIBB values. Children are built without the
// root label.
func build(n *wireNode, opts []Option) (FIBB, error) {
	if n.Product != nil {
		return buildProduct(n.Product, opts)
	}
	return buildLeaf(n.Leaf, opts)
}

func buildProduct(w *wireProduct, opts []Option) (FIBB, error) {
	f, err := wireFieldOf(w.Field)
	if err != nil {
		return nil, err
	}
	childOpts := append(append([]Option(nil), opts...), WithLabel(""))
	left, err := build(w.Left, childOpts)
	if err != nil {
		return nil, err
	}
	right, err := build(w.Right, childOpts)
	if err != nil {
		return nil, err
	}
	if !field.SameField(f, left.Field()) {
		return nil, matrix.ErrFieldMismatch
	}
	p, err := NewProduct([]FIBB{left, right}, opts...)
	if err != nil {
		return nil, err
	}
	p.left.owned, p.right.owned = true, true

	return p, nil
}

func buildLeaf(w *wireLeaf, opts []Option) (FIBB, error) {
	f, err := wireFieldOf(w.Field)
	if err != nil {
		return nil, err
	}
	k, _ := parseKind(w.Kind)
	if k != KindPermutation {
		for _, v := range w.Entries {
			if v >= f.Modulus() {
				return nil, fmt.Errorf("%w: entry %d out of range for %s", ErrMalformed, v, f.Name())
			}
		}
	}
	if k != KindTriangular && len(w.Flags) != 0 {
		return nil, fmt.Errorf("%w: unexpected flags %v for %s", ErrMalformed, w.Flags, k)
	}
	if k != KindDense && w.Rows != w.Cols {
		return nil, fmt.Errorf("%w: %s must be square, got %dx%d", ErrMalformed, k, w.Rows, w.Cols)
	}

	switch k {
	case KindDiagonal:
		if err = wantEntries(w, w.Rows); err != nil {
			return nil, err
		}
		a, derr := NewDiagonal(f, w.Entries, opts...)
		if derr != nil {
			return nil, derr
		}
		return a, nil

	case KindPermutation:
		if err = wantEntries(w, w.Rows); err != nil {
			return nil, err
		}
		// Indices are positions in [0, n), not field elements.
		n := uint64(len(w.Entries))
		p := make([]int, len(w.Entries))
		for i, v := range w.Entries {
			if v >= n {
				return nil, fmt.Errorf("%w: index %d out of range for size %d", ErrMalformed, v, n)
			}
			p[i] = int(v)
		}
		a, perr := NewPermutation(f, p, opts...)
		if perr != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, perr)
		}
		return a, nil

	case KindTriangular:
		if len(w.Flags) != 1 || (w.Flags[0] != Upper.String() && w.Flags[0] != Lower.String()) {
			return nil, fmt.Errorf("%w: triangular needs exactly one of upper|lower", ErrMalformed)
		}
		m, merr := denseFromWire(f, w)
		if merr != nil {
			return nil, merr
		}
		tri := Upper
		if w.Flags[0] == Lower.String() {
			tri = Lower
		}
		a, terr := NewTriangular(m, tri, opts...)
		if terr != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, terr)
		}
		return a, nil

	default: // KindDense
		m, merr := denseFromWire(f, w)
		if merr != nil {
			return nil, merr
		}
		a, derr := NewDenseBox(m, opts...)
		if derr != nil {
			return nil, derr
		}
		return a, nil
	}
}

func wireFieldOf(w *wireField) (field.Field, error) {
	f, err := field.NewPrime(w.Modulus)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return f, nil
}

func wantEntries(w *wireLeaf, n int) error {
	if len(w.Entries) != n {
		return fmt.Errorf("%w: %s wants %d entries, got %d", ErrMalformed, w.Kind, n, len(w.Entries))
	}
	return nil
}

func denseFromWire(f field.Field, w *wireLeaf) (*matrix.Dense, error) {
	if w.Rows < 0 || w.Cols < 0 {
		return nil, fmt.Errorf("%w: negative dimensions", ErrMalformed)
	}
	if err := wantEntries(w, w.Rows*w.Cols); err != nil {
		return nil, err
	}
	m, err := matrix.NewDense(f, w.Rows, w.Cols)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	for i := 0; i < w.Rows; i++ {
		copy(m.RowView(i), w.Entries[i*w.Cols:(i+1)*w.Cols])
	}
	return m, nil
}
