// Package blackbox_test provides benchmarks for Product dispatch over
// deterministic random leaves.
package blackbox_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/fibb/blackbox"
	"github.com/katalvlaran/fibb/field"
	"github.com/katalvlaran/fibb/matrix"
)

var benchSizes = []int{32, 128}

// benchChain builds P·D·U over GF(1000003) with one zero on the diagonal,
// so both the solve and the pull-back nullspace branches are exercised.
func benchChain(b *testing.B, n int) (*blackbox.Product, *matrix.Domain) {
	b.Helper()
	f := field.MustPrime(largePrime)
	md := matrix.MustDomain(f, matrix.WithSeed(uint64(n)))
	opts := []blackbox.Option{blackbox.WithDomain(md)}

	perm, err := blackbox.NewPermutation(f, md.Perm(n), opts...)
	if err != nil {
		b.Fatal(err)
	}
	d := make([]field.Element, n)
	for i := 1; i < n; i++ {
		d[i] = md.RandomNonZero()
	}
	diag, err := blackbox.NewDiagonal(f, d, opts...)
	if err != nil {
		b.Fatal(err)
	}
	u, _ := md.New(n, n)
	_ = md.Random(u)
	for i := 0; i < n; i++ {
		u.RowView(i)[i] = md.RandomNonZero()
	}
	upper, err := blackbox.NewTriangular(u, blackbox.Upper, opts...)
	if err != nil {
		b.Fatal(err)
	}
	p, err := blackbox.NewProduct([]blackbox.FIBB{perm, diag, upper}, opts...)
	if err != nil {
		b.Fatal(err)
	}
	return p, md
}

func BenchmarkProductApplyRight(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			p, md := benchChain(b, n)
			X, _ := md.New(n, 4)
			_ = md.Random(X)
			Y, _ := md.New(n, 4)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := p.ApplyRight(Y, X); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkProductNullspaceRandomRight(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			p, md := benchChain(b, n)
			N, _ := md.New(n, 4)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := p.NullspaceRandomRight(N); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkProductNullspaceBasisLeft(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			p, md := benchChain(b, n)
			B, _ := md.New(0, 0)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := p.NullspaceBasisLeft(B); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
