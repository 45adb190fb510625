// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures over GF(2), GF(5), GF(101).
//   • Keep randomness seeded so failures are reproducible.

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/fibb/field"
	"github.com/katalvlaran/fibb/matrix"
	"github.com/stretchr/testify/require"
)

// testPrimes are the field sizes every property runs over.
var testPrimes = []uint64{2, 5, 101}

// MustDense allocates an r×c zero matrix or fails the test.
func MustDense(t *testing.T, f field.Field, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(f, r, c)
	require.NoError(t, err)
	return m
}

// MustData builds an r×c matrix from row-major integers or fails the test.
func MustData(t *testing.T, f field.Field, r, c int, vals ...int64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseData(f, r, c, vals)
	require.NoError(t, err)
	return m
}

// MustRandom allocates an r×c matrix filled from md.
func MustRandom(t *testing.T, md *matrix.Domain, r, c int) *matrix.Dense {
	t.Helper()
	m := MustDense(t, md.Field(), r, c)
	require.NoError(t, md.Random(m))
	return m
}

// MustMul returns a·b.
func MustMul(t *testing.T, md *matrix.Domain, a, b *matrix.Dense) *matrix.Dense {
	t.Helper()
	out := MustDense(t, md.Field(), a.Rows(), b.Cols())
	require.NoError(t, md.Mul(out, a, b))
	return out
}
