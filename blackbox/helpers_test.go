// SPDX-License-Identifier: MIT
// Package blackbox_test contains shared fixtures.
//
// Purpose:
//   • Build random leaves of a requested shape/rank from a seeded Domain.
//   • Materialize any blackbox for independent checks (explicit products, rank).

package blackbox_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/katalvlaran/fibb/blackbox"
	"github.com/katalvlaran/fibb/field"
	"github.com/katalvlaran/fibb/matrix"
	"github.com/stretchr/testify/require"
)

// testPrimes are the field sizes every property runs over.
var testPrimes = []uint64{2, 5, 101}

// largePrime makes rank-genericity failures negligible.
const largePrime = 1000003

type fixture struct {
	f  field.Field
	md *matrix.Domain
}

func newFixture(t *testing.T, p uint64) fixture {
	t.Helper()
	f := field.MustPrime(p)
	return fixture{f: f, md: matrix.MustDomain(f, matrix.WithSeed(p*7919+1))}
}

func (fx fixture) opts() []blackbox.Option {
	return []blackbox.Option{blackbox.WithDomain(fx.md)}
}

// dense allocates an r×c zero matrix.
func (fx fixture) dense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(fx.f, r, c)
	require.NoError(t, err)
	return m
}

// data builds an r×c matrix from row-major integers.
func (fx fixture) data(t *testing.T, r, c int, vals ...int64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseData(fx.f, r, c, vals)
	require.NoError(t, err)
	return m
}

// random allocates an r×c uniformly random matrix.
func (fx fixture) random(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m := fx.dense(t, r, c)
	require.NoError(t, fx.md.Random(m))
	return m
}

func (fx fixture) mul(t *testing.T, a, b *matrix.Dense) *matrix.Dense {
	t.Helper()
	out := fx.dense(t, a.Rows(), b.Cols())
	require.NoError(t, fx.md.Mul(out, a, b))
	return out
}

// diagonal builds an n×n diagonal whose first `zeros` entries (after a random
// shuffle) are zero and the others random non-zero.
func (fx fixture) diagonal(t *testing.T, n, zeros int) *blackbox.Diagonal {
	t.Helper()
	d := make([]field.Element, n)
	for i, pos := range fx.md.Perm(n) {
		if i >= zeros {
			d[pos] = fx.md.RandomNonZero()
		}
	}
	a, err := blackbox.NewDiagonal(fx.f, d, fx.opts()...)
	require.NoError(t, err)
	return a
}

func (fx fixture) permutation(t *testing.T, n int) *blackbox.Permutation {
	t.Helper()
	a, err := blackbox.NewPermutation(fx.f, fx.md.Perm(n), fx.opts()...)
	require.NoError(t, err)
	return a
}

// triangular builds a random nonsingular n×n triangular leaf.
func (fx fixture) triangular(t *testing.T, n int, tri blackbox.Triangle) *blackbox.Triangular {
	t.Helper()
	m := fx.random(t, n, n)
	for i := 0; i < n; i++ {
		m.RowView(i)[i] = fx.md.RandomNonZero()
	}
	a, err := blackbox.NewTriangular(m, tri, fx.opts()...)
	require.NoError(t, err)
	return a
}

func (fx fixture) denseBox(t *testing.T, m *matrix.Dense) *blackbox.DenseBox {
	t.Helper()
	a, err := blackbox.NewDenseBox(m, fx.opts()...)
	require.NoError(t, err)
	return a
}

// lowRank builds an r×c DenseBox of rank at most k as U·V.
func (fx fixture) lowRank(t *testing.T, r, c, k int) *blackbox.DenseBox {
	t.Helper()
	return fx.denseBox(t, fx.mul(t, fx.random(t, r, k), fx.random(t, k, c)))
}

// surjective builds an n×(n+extra) DenseBox [I | R] of full row rank.
func (fx fixture) surjective(t *testing.T, n, extra int) *blackbox.DenseBox {
	t.Helper()
	m := fx.dense(t, n, n+extra)
	r := fx.random(t, n, extra)
	for i := 0; i < n; i++ {
		row := m.RowView(i)
		row[i] = fx.f.One()
		copy(row[n:], r.RowView(i))
	}
	return fx.denseBox(t, m)
}

func (fx fixture) product(t *testing.T, factors ...blackbox.FIBB) *blackbox.Product {
	t.Helper()
	p, err := blackbox.NewProduct(factors, fx.opts()...)
	require.NoError(t, err)
	return p
}

// materialize returns the explicit matrix of A as A·I.
func (fx fixture) materialize(t *testing.T, A blackbox.BlackBox) *matrix.Dense {
	t.Helper()
	id, err := matrix.NewIdentity(fx.f, A.Cols())
	require.NoError(t, err)
	out := fx.dense(t, A.Rows(), A.Cols())
	require.NoError(t, A.ApplyRight(out, id))
	return out
}

// applyRight returns A·X.
func (fx fixture) applyRight(t *testing.T, A blackbox.BlackBox, X *matrix.Dense) *matrix.Dense {
	t.Helper()
	Y := fx.dense(t, A.Rows(), X.Cols())
	require.NoError(t, A.ApplyRight(Y, X))
	return Y
}

// applyLeft returns X·A.
func (fx fixture) applyLeft(t *testing.T, A blackbox.BlackBox, X *matrix.Dense) *matrix.Dense {
	t.Helper()
	Y := fx.dense(t, X.Rows(), A.Cols())
	require.NoError(t, A.ApplyLeft(Y, X))
	return Y
}

// debugLogger captures JSON log records at debug level.
func debugLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}
