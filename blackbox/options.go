// SPDX-License-Identifier: MIT

// Package blackbox: functional configuration shared by leaves and products.
//
// Defaults:
//   - logger: discards everything (the library is silent unless a logger is given).
//   - domain: a fresh matrix.Domain over the blackbox field, runtime seeded.
//   - label:  empty.
//
// Sub-products built by NewProduct/Init inherit the logger of their parent.

package blackbox

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/fibb/field"
	"github.com/katalvlaran/fibb/matrix"
)

const (
	panicNilLogger = "blackbox: WithLogger: logger must be non-nil"
	panicNilDomain = "blackbox: WithDomain: domain must be non-nil"
)

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	logger *slog.Logger
	domain *matrix.Domain
	label  string
}

// WithLogger routes dispatch records to l. Panics if l is nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}
	return func(o *Options) { o.logger = l }
}

// WithDomain injects the matrix domain used for random sampling and dense kernels.
// Panics if md is nil.
func WithDomain(md *matrix.Domain) Option {
	if md == nil {
		panic(panicNilDomain)
	}
	return func(o *Options) { o.domain = md }
}

// WithLabel attaches a free-form label, reported by Label() and in log records.
func WithLabel(label string) Option {
	return func(o *Options) { o.label = label }
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))

// gatherOptions applies opts over the defaults for a blackbox over f.
// Errors: matrix.ErrFieldMismatch when an injected domain is over another field.
func gatherOptions(f field.Field, opts ...Option) (Options, error) {
	var o Options
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = discardLogger
	}
	if o.domain == nil {
		md, err := matrix.NewDomain(f)
		if err != nil {
			return Options{}, err
		}
		o.domain = md
	} else if !field.SameField(o.domain.Field(), f) {
		return Options{}, matrix.ErrFieldMismatch
	}

	return o, nil
}
