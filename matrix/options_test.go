// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/fibb/field"
	"github.com/katalvlaran/fibb/matrix"
	"github.com/stretchr/testify/require"
)

// 1) TestWithSeed_Reproducible verifies equal seeds give equal samples.
func TestWithSeed_Reproducible(t *testing.T) {
	f := field.MustPrime(101)
	a := MustRandom(t, matrix.MustDomain(f, matrix.WithSeed(42)), 4, 4)
	b := MustRandom(t, matrix.MustDomain(f, matrix.WithSeed(42)), 4, 4)
	c := MustRandom(t, matrix.MustDomain(f, matrix.WithSeed(43)), 4, 4)

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c), "distinct seeds should diverge on 16 draws over GF(101)")
}

// 2) TestWithSource_LastWins ensures a later option overrides an earlier one.
func TestWithSource_LastWins(t *testing.T) {
	f := field.MustPrime(101)
	want := MustRandom(t, matrix.MustDomain(f, matrix.WithSource(rand.NewPCG(1, 2))), 3, 3)
	got := MustRandom(t, matrix.MustDomain(f, matrix.WithSeed(99), matrix.WithSource(rand.NewPCG(1, 2))), 3, 3)

	require.True(t, want.Equal(got))
}

// 3) TestWithSource_PanicsOnNil verifies the nil guard.
func TestWithSource_PanicsOnNil(t *testing.T) {
	require.Panics(t, func() { matrix.WithSource(nil) })
}

// 4) TestDefaultDomain_Samples verifies an unseeded Domain still samples in range.
func TestDefaultDomain_Samples(t *testing.T) {
	f := field.MustPrime(2)
	md := matrix.MustDomain(f)
	for i := 0; i < 64; i++ {
		require.Less(t, md.RandomElement(), uint64(2))
		require.Equal(t, uint64(1), md.RandomNonZero())
	}
	require.ElementsMatch(t, []int{0, 1, 2, 3}, md.Perm(4))
}
