// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for Domain.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults,
//   - WithX constructors (panic on nonsensical values),
//   - gatherOptions helper.
//
// Notes:
//   - Without WithSeed/WithSource the Domain draws its seed from the runtime's
//     random generator; pass WithSeed in tests for reproducible samples.

package matrix

import "math/rand/v2"

const panicNilSource = "matrix: WithSource: source must be non-nil"

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective Domain configuration.
type Options struct {
	src rand.Source // random source behind Domain.Random; nil => runtime seeded PCG
}

// WithSeed seeds the Domain's PCG generator with (seed, seed^golden).
func WithSeed(seed uint64) Option {
	return func(o *Options) {
		o.src = rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	}
}

// WithSource installs a caller-supplied random source.
// Panics if src is nil (programmer error).
func WithSource(src rand.Source) Option {
	if src == nil {
		panic(panicNilSource)
	}
	return func(o *Options) { o.src = src }
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) Options {
	var o Options
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.src == nil {
		o.src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	return o
}
