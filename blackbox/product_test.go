// SPDX-License-Identifier: MIT

package blackbox_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/katalvlaran/fibb/blackbox"
	"github.com/katalvlaran/fibb/field"
	"github.com/katalvlaran/fibb/matrix"
	"github.com/stretchr/testify/require"
)

// productCase builds one composite for a property run.
type productCase struct {
	name  string
	build func(t *testing.T, fx fixture) *blackbox.Product
}

// consistentCases have at least one invertible factor, so every consistent
// system is solved and every nullspace path is exact.
var consistentCases = []productCase{
	{"perm*singular-diag", func(t *testing.T, fx fixture) *blackbox.Product {
		return fx.product(t, fx.permutation(t, 5), fx.diagonal(t, 5, 2))
	}},
	{"singular-diag*perm", func(t *testing.T, fx fixture) *blackbox.Product {
		return fx.product(t, fx.diagonal(t, 5, 2), fx.permutation(t, 5))
	}},
	{"upper*low-rank", func(t *testing.T, fx fixture) *blackbox.Product {
		return fx.product(t, fx.triangular(t, 5, blackbox.Upper), fx.lowRank(t, 5, 5, 3))
	}},
	{"low-rank*lower", func(t *testing.T, fx fixture) *blackbox.Product {
		return fx.product(t, fx.lowRank(t, 5, 5, 3), fx.triangular(t, 5, blackbox.Lower))
	}},
	{"perm*singular-diag*upper", func(t *testing.T, fx fixture) *blackbox.Product {
		return fx.product(t, fx.permutation(t, 5), fx.diagonal(t, 5, 1), fx.triangular(t, 5, blackbox.Upper))
	}},
}

// TestProductApply checks ApplyRight/ApplyLeft against the explicit two-step product.
func TestProductApply(t *testing.T) {
	shapes := [][3]int{{1, 1, 1}, {2, 3, 4}, {5, 2, 3}, {4, 4, 4}, {3, 6, 2}}
	for _, p := range testPrimes {
		fx := newFixture(t, p)
		for _, s := range shapes {
			A := fx.denseBox(t, fx.random(t, s[0], s[1]))
			B := fx.denseBox(t, fx.random(t, s[1], s[2]))
			AB := fx.product(t, A, B)
			require.Equal(t, s[0], AB.Rows())
			require.Equal(t, s[2], AB.Cols())
			require.True(t, field.SameField(fx.f, AB.Field()))

			X := fx.random(t, s[2], 3)
			want := fx.applyRight(t, A, fx.applyRight(t, B, X))
			require.True(t, want.Equal(fx.applyRight(t, AB, X)), "GF(%d) %v", p, s)

			XL := fx.random(t, 2, s[0])
			wantL := fx.applyLeft(t, B, fx.applyLeft(t, A, XL))
			require.True(t, wantL.Equal(fx.applyLeft(t, AB, XL)), "GF(%d) %v", p, s)
		}
	}
}

// TestProductApplyMixedLeaves checks a chain of every leaf kind against the
// explicit matrix product.
func TestProductApplyMixedLeaves(t *testing.T) {
	for _, p := range testPrimes {
		fx := newFixture(t, p)
		D := fx.diagonal(t, 4, 1)
		P := fx.permutation(t, 4)
		T := fx.triangular(t, 4, blackbox.Lower)
		M := fx.denseBox(t, fx.random(t, 4, 4))
		A := fx.product(t, D, P, T, M)

		want := fx.mul(t, fx.mul(t, fx.materialize(t, D), fx.materialize(t, P)),
			fx.mul(t, fx.materialize(t, T), M.Matrix()))
		require.True(t, want.Equal(fx.materialize(t, A)), "GF(%d)", p)
	}
}

// TestProductDet checks det(A·B) == det(A)·det(B) for square factors.
func TestProductDet(t *testing.T) {
	for _, p := range testPrimes {
		fx := newFixture(t, p)
		pairs := [][2]blackbox.FIBB{
			{fx.triangular(t, 4, blackbox.Upper), fx.permutation(t, 4)},
			{fx.diagonal(t, 4, 0), fx.triangular(t, 4, blackbox.Lower)},
			{fx.denseBox(t, fx.random(t, 4, 4)), fx.denseBox(t, fx.random(t, 4, 4))},
			{fx.permutation(t, 4), fx.diagonal(t, 4, 1)},
		}
		for _, pr := range pairs {
			AB := fx.product(t, pr[0], pr[1])
			require.Equal(t, fx.f.Mul(pr[0].Det(), pr[1].Det()), AB.Det())

			det, err := fx.md.Det(fx.materialize(t, AB))
			require.NoError(t, err)
			require.Equal(t, det, AB.Det(), "GF(%d) %s*%s", p, pr[0].Kind(), pr[1].Kind())
		}
	}
}

// TestProductRank checks Rank == min of the factor ranks, which bounds the
// true rank from above and matches it for generic factors.
func TestProductRank(t *testing.T) {
	for _, p := range testPrimes {
		fx := newFixture(t, p)
		for trial := 0; trial < 10; trial++ {
			A := fx.lowRank(t, 5, 6, 1+trial%4)
			B := fx.lowRank(t, 6, 4, 1+(trial+2)%4)
			AB := fx.product(t, A, B)
			require.Equal(t, min(A.Rank(), B.Rank()), AB.Rank())
			require.GreaterOrEqual(t, AB.Rank(), fx.md.Rank(fx.materialize(t, AB)))
		}
	}

	// Generic instances over a large field: the bound is exact.
	fx := newFixture(t, largePrime)
	for _, ks := range [][2]int{{1, 3}, {2, 2}, {3, 1}, {4, 4}, {2, 4}} {
		A := fx.lowRank(t, 5, 6, ks[0])
		B := fx.lowRank(t, 6, 4, ks[1])
		AB := fx.product(t, A, B)
		require.Equal(t, fx.md.Rank(fx.materialize(t, AB)), AB.Rank(), "%v", ks)
	}
}

// TestProductSolve checks A·solve(X) == X and solve(X)·A == X for consistent X.
func TestProductSolve(t *testing.T) {
	cases := append([]productCase{
		{"upper*perm", func(t *testing.T, fx fixture) *blackbox.Product {
			return fx.product(t, fx.triangular(t, 5, blackbox.Upper), fx.permutation(t, 5))
		}},
		{"upper*rectangular", func(t *testing.T, fx fixture) *blackbox.Product {
			return fx.product(t, fx.triangular(t, 4, blackbox.Upper), fx.lowRank(t, 4, 6, 2))
		}},
	}, consistentCases...)

	for _, p := range testPrimes {
		for _, tc := range cases {
			t.Run(fmt.Sprintf("GF(%d)/%s", p, tc.name), func(t *testing.T) {
				fx := newFixture(t, p)
				A := tc.build(t, fx)

				X := fx.applyRight(t, A, fx.random(t, A.Cols(), 3))
				Y := fx.dense(t, A.Cols(), 3)
				require.NoError(t, A.SolveRight(Y, X))
				require.True(t, X.Equal(fx.applyRight(t, A, Y)))

				XL := fx.applyLeft(t, A, fx.random(t, 2, A.Rows()))
				YL := fx.dense(t, 2, A.Rows())
				require.NoError(t, A.SolveLeft(YL, XL))
				require.True(t, XL.Equal(fx.applyLeft(t, A, YL)))
			})
		}
	}
}

// TestProductSolveInconsistent checks a leaf failure propagates with its sentinel.
func TestProductSolveInconsistent(t *testing.T) {
	fx := newFixture(t, 5)
	D, err := blackbox.NewDiagonal(fx.f, []field.Element{1, 0}, fx.opts()...)
	require.NoError(t, err)
	A := fx.product(t, D, fx.permutation(t, 2))

	err = A.SolveRight(fx.dense(t, 2, 1), fx.data(t, 2, 1, 1, 1))
	require.ErrorIs(t, err, matrix.ErrInconsistent)
}

// TestProductNullspaceRandom checks A·N == 0 (and N·A == 0) over 100 trials per field.
func TestProductNullspaceRandom(t *testing.T) {
	cases := append([]productCase{
		{"singular-diag*surjective", func(t *testing.T, fx fixture) *blackbox.Product {
			return fx.product(t, fx.diagonal(t, 4, 2), fx.surjective(t, 4, 2))
		}},
		{"injective*singular-diag", func(t *testing.T, fx fixture) *blackbox.Product {
			inj := fx.denseBox(t, fx.surjective(t, 4, 2).Matrix().Transpose())
			return fx.product(t, inj, fx.diagonal(t, 4, 2))
		}},
	}, consistentCases...)

	for _, p := range testPrimes {
		fx := newFixture(t, p)
		built := make([]*blackbox.Product, len(cases))
		for i, tc := range cases {
			built[i] = tc.build(t, fx)
		}
		for trial := 0; trial < 100; trial++ {
			tc, A := cases[trial%len(cases)], built[trial%len(cases)]
			k := 1 + trial%3

			N := fx.random(t, A.Cols(), k)
			require.NoError(t, A.NullspaceRandomRight(N), "GF(%d) %s", p, tc.name)
			require.True(t, fx.applyRight(t, A, N).IsZero(), "GF(%d) %s trial %d", p, tc.name, trial)

			NL := fx.random(t, k, A.Rows())
			require.NoError(t, A.NullspaceRandomLeft(NL), "GF(%d) %s", p, tc.name)
			require.True(t, fx.applyLeft(t, A, NL).IsZero(), "GF(%d) %s trial %d", p, tc.name, trial)
		}
	}
}

// TestProductNullspaceBasis checks both bases annihilate A, have full rank and,
// with an invertible factor, span the whole nullspace.
func TestProductNullspaceBasis(t *testing.T) {
	for _, p := range testPrimes {
		for _, tc := range consistentCases {
			t.Run(fmt.Sprintf("GF(%d)/%s", p, tc.name), func(t *testing.T) {
				fx := newFixture(t, p)
				A := tc.build(t, fx)
				rank := fx.md.Rank(fx.materialize(t, A))

				B := fx.dense(t, 0, 0)
				require.NoError(t, A.NullspaceBasisRight(B))
				require.Equal(t, A.Cols(), B.Rows())
				require.Equal(t, A.Cols()-rank, B.Cols())
				require.Equal(t, B.Cols(), fx.md.Rank(B))
				require.True(t, fx.applyRight(t, A, B).IsZero())

				BL := fx.dense(t, 0, 0)
				require.NoError(t, A.NullspaceBasisLeft(BL))
				require.Equal(t, A.Rows(), BL.Cols())
				require.Equal(t, A.Rows()-rank, BL.Rows())
				require.Equal(t, BL.Rows(), fx.md.Rank(BL))
				require.True(t, fx.applyLeft(t, A, BL).IsZero())
			})
		}
	}
}

// TestProductNullspaceBasisRectangular checks the pulled-back basis through a
// non-square right factor: it still annihilates A and has full column rank.
func TestProductNullspaceBasisRectangular(t *testing.T) {
	fx := newFixture(t, 101)
	A := fx.product(t, fx.diagonal(t, 4, 2), fx.surjective(t, 4, 3))

	B := fx.dense(t, 0, 0)
	require.NoError(t, A.NullspaceBasisRight(B))
	require.Equal(t, 7, B.Rows())
	require.Equal(t, 2, B.Cols())
	require.Equal(t, 2, fx.md.Rank(B))
	require.True(t, fx.applyRight(t, A, B).IsZero())
}

// TestProductFastPath checks that an invertible left factor delegates the
// nullspace sample to the right factor, and that the delegated sample and the
// generic fallback land in the same nullspace.
func TestProductFastPath(t *testing.T) {
	fx := newFixture(t, 101)
	logger, buf := debugLogger()
	d := []field.Element{3, 0, 7, 0, 1}
	D, err := blackbox.NewDiagonal(fx.f, d, fx.opts()...)
	require.NoError(t, err)
	A, err := blackbox.NewProduct([]blackbox.FIBB{fx.permutation(t, 5), D},
		blackbox.WithLogger(logger), blackbox.WithDomain(fx.md), blackbox.WithLabel("PD"))
	require.NoError(t, err)

	hit := make([]bool, len(d))
	for trial := 0; trial < 5; trial++ {
		fast := fx.dense(t, 5, 3)
		require.NoError(t, A.NullspaceRandomRight(fast))
		slow := fx.dense(t, 5, 3)
		require.NoError(t, blackbox.GenericNullspaceRandomRight(fx.md, slow, A))

		for _, N := range []*matrix.Dense{fast, slow} {
			require.True(t, fx.applyRight(t, A, N).IsZero())
			for i, di := range d {
				if di != 0 {
					require.Equal(t, []field.Element{0, 0, 0}, N.RowView(i), "row %d outside the nullspace", i)
				}
			}
		}
		for i := range d {
			for _, v := range fast.RowView(i) {
				hit[i] = hit[i] || v != 0
			}
		}
	}
	require.Equal(t, []bool{false, true, false, true, false}, hit, "delegated sample covers every free position")

	out := buf.String()
	require.Contains(t, out, `"op":"NullspaceRandomRight"`)
	require.Contains(t, out, `"branch":"direct"`)
	require.Contains(t, out, `"label":"PD"`)
	require.Contains(t, out, A.ID().String())
	require.NotContains(t, out, `"branch":"solve"`)

	// The mirrored product takes the solve branch.
	buf.Reset()
	B, err := blackbox.NewProduct([]blackbox.FIBB{D, fx.permutation(t, 5)}, blackbox.WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, B.NullspaceRandomRight(fx.dense(t, 5, 1)))
	require.Contains(t, buf.String(), `"branch":"solve"`)
}

// TestComposeFiveOperands checks the k=5 tree: A1 | ((A2·A3)·(A4·A5)), not a
// left fold and not a balanced split.
func TestComposeFiveOperands(t *testing.T) {
	fx := newFixture(t, 5)
	dims := []int{2, 3, 4, 5, 6, 7}
	fs := make([]blackbox.FIBB, 5)
	ms := make([]*matrix.Dense, 5)
	for i := range fs {
		ms[i] = fx.random(t, dims[i], dims[i+1])
		a, err := blackbox.NewDenseBox(ms[i], blackbox.WithLabel(fmt.Sprintf("A%d", i+1)))
		require.NoError(t, err)
		fs[i] = a
	}
	A, err := blackbox.NewProduct(fs, blackbox.WithLabel("root"))
	require.NoError(t, err)
	require.Equal(t, 2, A.Rows())
	require.Equal(t, 7, A.Cols())
	require.Equal(t, "root", A.Label())

	require.Same(t, fs[0], A.Left())
	right, ok := A.Right().(*blackbox.Product)
	require.True(t, ok)
	require.Equal(t, 3, right.Rows())
	require.Equal(t, 7, right.Cols())

	rl, ok := right.Left().(*blackbox.Product)
	require.True(t, ok)
	require.Equal(t, 3, rl.Rows())
	require.Equal(t, 5, rl.Cols())
	require.Equal(t, "A2", rl.Left().Label())
	require.Equal(t, "A3", rl.Right().Label())

	rr, ok := right.Right().(*blackbox.Product)
	require.True(t, ok)
	require.Equal(t, 5, rr.Rows())
	require.Equal(t, 7, rr.Cols())
	require.Equal(t, "A4", rr.Left().Label())
	require.Equal(t, "A5", rr.Right().Label())

	want := ms[0]
	for _, m := range ms[1:] {
		want = fx.mul(t, want, m)
	}
	require.True(t, want.Equal(fx.materialize(t, A)))
}

// TestComposeShapes checks the pairing for the other operand counts.
func TestComposeShapes(t *testing.T) {
	fx := newFixture(t, 5)
	chain := func(k int) []blackbox.FIBB {
		fs := make([]blackbox.FIBB, k)
		for i := range fs {
			fs[i] = fx.denseBox(t, fx.random(t, i+1, i+2))
		}
		return fs
	}
	dims := func(a blackbox.FIBB) [2]int { return [2]int{a.Rows(), a.Cols()} }

	cases := []struct {
		k           int
		left, right [2]int
		leftOwned   bool
	}{
		{2, [2]int{1, 2}, [2]int{2, 3}, false},
		{3, [2]int{1, 2}, [2]int{2, 4}, false},
		{4, [2]int{1, 3}, [2]int{3, 5}, true},
		{5, [2]int{1, 2}, [2]int{2, 6}, false},
		{6, [2]int{1, 4}, [2]int{4, 7}, true},
		{7, [2]int{1, 4}, [2]int{4, 8}, true},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("k=%d", tc.k), func(t *testing.T) {
			fs := chain(tc.k)
			A := fx.product(t, fs...)
			require.Equal(t, tc.left, dims(A.Left()))
			require.Equal(t, tc.right, dims(A.Right()))
			_, leftIsProduct := A.Left().(*blackbox.Product)
			require.Equal(t, tc.leftOwned, leftIsProduct)
			if !tc.leftOwned {
				require.Same(t, fs[0], A.Left())
			}
		})
	}
}

// TestComposeRejects checks construction errors.
func TestComposeRejects(t *testing.T) {
	fx := newFixture(t, 5)
	a := fx.permutation(t, 3)
	b := fx.permutation(t, 4)
	other, err := blackbox.NewPermutation(field.MustPrime(7), []int{0, 1, 2})
	require.NoError(t, err)

	_, err = blackbox.Compose(a)
	require.ErrorIs(t, err, blackbox.ErrTooFewOperands)
	_, err = blackbox.Compose(a, nil)
	require.ErrorIs(t, err, blackbox.ErrNilOperand)
	_, err = blackbox.Compose(a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = blackbox.Compose(a, other)
	require.ErrorIs(t, err, matrix.ErrFieldMismatch)
	_, err = blackbox.Compose(a, &blackbox.Product{})
	require.ErrorIs(t, err, blackbox.ErrUnbound)
	_, err = blackbox.NewProduct([]blackbox.FIBB{a, a}, blackbox.WithDomain(matrix.MustDomain(field.MustPrime(7))))
	require.ErrorIs(t, err, matrix.ErrFieldMismatch)
}

// TestProductInitRelease checks ownership: re-Init and Release free owned
// sub-products and never touch borrowed factors.
func TestProductInitRelease(t *testing.T) {
	fx := newFixture(t, 101)
	a, b, c := fx.permutation(t, 3), fx.diagonal(t, 3, 1), fx.triangular(t, 3, blackbox.Upper)
	A := fx.product(t, a, b, c)
	sub, ok := A.Right().(*blackbox.Product)
	require.True(t, ok)
	require.Same(t, b, sub.Left())

	d, e := fx.permutation(t, 3), fx.diagonal(t, 3, 0)
	require.NoError(t, A.Init(d, e))
	require.Same(t, d, A.Left())
	require.Same(t, e, A.Right())
	require.Nil(t, sub.Left(), "owned sub-product released")
	require.ErrorIs(t, sub.ApplyRight(fx.dense(t, 3, 1), fx.dense(t, 3, 1)), blackbox.ErrUnbound)

	// Borrowed factors are still usable.
	for _, leaf := range []blackbox.FIBB{a, b, c} {
		require.Equal(t, 3, leaf.Rows())
		X := fx.random(t, 3, 2)
		require.NoError(t, leaf.ApplyRight(fx.dense(t, 3, 2), X))
	}

	// A failed Init keeps the previous binding.
	require.ErrorIs(t, A.Init(d), blackbox.ErrTooFewOperands)
	require.Same(t, d, A.Left())

	A.Release()
	require.Nil(t, A.Left())
	require.Nil(t, A.Field())
	require.Zero(t, A.Rows())
	require.Zero(t, A.Cols())
	require.Zero(t, A.Rank())
	require.Zero(t, A.Det())
	require.ErrorIs(t, A.ApplyLeft(fx.dense(t, 1, 3), fx.dense(t, 1, 3)), blackbox.ErrUnbound)
	require.ErrorIs(t, A.NullspaceBasisRight(fx.dense(t, 0, 0)), blackbox.ErrUnbound)
	require.Equal(t, 3, d.Rows())
	A.Release() // no-op
}

// TestProductInitReusesOwnChildren checks re-binding a product over parts of
// its own tree: reused sub-products stay bound, the rest is released, and a
// product never binds to itself.
func TestProductInitReusesOwnChildren(t *testing.T) {
	fx := newFixture(t, 101)
	d := fx.diagonal(t, 2, 0)

	A := fx.product(t, d, d, d, d)
	left, ok := A.Left().(*blackbox.Product)
	require.True(t, ok)
	right, ok := A.Right().(*blackbox.Product)
	require.True(t, ok)

	require.NoError(t, A.Init(left, d))
	require.Same(t, left, A.Left())
	require.Equal(t, 2, A.Rows())
	require.Equal(t, 2, A.Cols())
	require.Same(t, d, left.Left(), "reused child stays bound")
	require.Nil(t, right.Left(), "dropped child released")
	want := fx.mul(t, fx.materialize(t, left), fx.materialize(t, d))
	require.True(t, want.Equal(fx.materialize(t, A)))

	// A node deeper in the old tree survives too.
	B := fx.product(t, d, d, d, d, d, d)
	half, ok := B.Left().(*blackbox.Product)
	require.True(t, ok)
	deep, ok := half.Right().(*blackbox.Product)
	require.True(t, ok)
	require.NoError(t, B.Init(deep, d))
	require.Same(t, d, deep.Left())
	require.Nil(t, half.Left())
	require.Equal(t, 2, B.Rank())

	// Self references are refused and keep the binding.
	require.ErrorIs(t, A.Init(A, d), blackbox.ErrSelfReference)
	outer := fx.product(t, A, d)
	require.ErrorIs(t, A.Init(d, outer), blackbox.ErrSelfReference)
	require.Same(t, left, A.Left())
	require.Equal(t, 2, A.Rows())
}

// TestProductNullspaceBothSingular pins the documented limit of the pull-back:
// with both factors singular the left sample may leave right's range.
func TestProductNullspaceBothSingular(t *testing.T) {
	fx := newFixture(t, largePrime)
	d1, err := blackbox.NewDiagonal(fx.f, []field.Element{1, 0}, fx.opts()...)
	require.NoError(t, err)
	d2, err := blackbox.NewDiagonal(fx.f, []field.Element{1, 0}, fx.opts()...)
	require.NoError(t, err)
	A := fx.product(t, d1, d2)

	require.ErrorIs(t, A.NullspaceBasisRight(fx.dense(t, 0, 0)), matrix.ErrInconsistent)
	require.ErrorIs(t, A.NullspaceRandomRight(fx.dense(t, 2, 4)), matrix.ErrInconsistent)
}

// TestProductZeroValue checks that the zero Product is unbound until Init.
func TestProductZeroValue(t *testing.T) {
	fx := newFixture(t, 5)
	var A blackbox.Product
	require.Equal(t, uuid.Nil, A.ID())
	require.ErrorIs(t, A.SolveRight(fx.dense(t, 1, 1), fx.dense(t, 1, 1)), blackbox.ErrUnbound)
	require.ErrorIs(t, A.NullspaceRandomLeft(fx.dense(t, 1, 1)), blackbox.ErrUnbound)

	require.NoError(t, A.Init(fx.permutation(t, 2), fx.diagonal(t, 2, 1)))
	require.NotEqual(t, uuid.Nil, A.ID())
	require.Equal(t, 1, A.Rank())
	require.True(t, fx.applyRight(t, &A, fx.dense(t, 2, 1)).IsZero())
}

// TestProductGuards checks shape validation on the composite itself.
func TestProductGuards(t *testing.T) {
	fx := newFixture(t, 5)
	A := fx.product(t, fx.denseBox(t, fx.random(t, 2, 3)), fx.denseBox(t, fx.random(t, 3, 4)))

	require.ErrorIs(t, A.ApplyRight(fx.dense(t, 2, 1), fx.dense(t, 3, 1)), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, A.SolveLeft(fx.dense(t, 1, 4), fx.dense(t, 1, 4)), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, A.NullspaceRandomRight(fx.dense(t, 3, 1)), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, A.NullspaceRandomLeft(nil), matrix.ErrNilMatrix)
}
