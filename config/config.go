// Package config provides functional-options configuration for a solve —
// block width, worker count, and random source — grounded on the teacher's
// builder package (builder/config.go's BuilderOption/builderConfig
// pattern): one exported Option type, an Options struct mutated in place,
// Resolve applying options left-to-right over sensible defaults.
package config

import (
	"math/rand"
	"runtime"

	"github.com/kcning/lanczos16/internal/xrand"
)

// Width is the Block Lanczos block size B, the compile-time choice of
// spec.md §1/§6 resolved here as a runtime parameter (SPEC_FULL.md §6).
type Width int

// Supported block widths, chosen to match the widest integer/SIMD lane
// available on the host: 64-bit scalars, 128/256-bit vector registers, or
// 512-bit vector registers.
const (
	W64  Width = 64
	W128 Width = 128
	W256 Width = 256
	W512 Width = 512
)

// Valid reports whether w is one of the four supported widths.
func (w Width) Valid() bool {
	switch w {
	case W64, W128, W256, W512:
		return true
	default:
		return false
	}
}

// Words returns the number of 64-bit words a BitVec of this width needs.
func (w Width) Words() int {
	return int(w) / 64
}

// Options holds the resolved configuration for a solve.
type Options struct {
	Width   Width
	Workers int
	Rand    xrand.Source
	Debug   bool // enables debug-only assertions (spec.md §7)
}

// Option mutates an in-progress Options during Resolve.
type Option func(*Options)

// WithWidth sets the block width. Ignored if w is not one of the four
// supported widths (mirrors the teacher's "invalid input is a no-op"
// option convention rather than panicking deep inside Resolve).
func WithWidth(w Width) Option {
	return func(o *Options) {
		if w.Valid() {
			o.Width = w
		}
	}
}

// WithWorkers sets the worker-pool size. n <= 0 is a no-op (defaults to
// runtime.NumCPU()).
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Workers = n
		}
	}
}

// WithSeed creates a new deterministic xrand.Source seeded with seed and
// installs it as the random source, mirroring builder.WithSeed.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Rand = xrand.New(seed)
	}
}

// WithRand installs an explicit *rand.Rand as the random source,
// mirroring builder.WithRand. A nil rng is a no-op.
func WithRand(rng *rand.Rand) Option {
	return func(o *Options) {
		if rng != nil {
			o.Rand = xrand.Wrap(rng)
		}
	}
}

// WithDebugAssertions toggles debug-only invariant checks (spec.md §7:
// non-symmetric w after Gauss-Jordan). Dimension checks run regardless.
func WithDebugAssertions(on bool) Option {
	return func(o *Options) {
		o.Debug = on
	}
}

// Resolve applies opts in order over the package defaults: Width: W128,
// Workers: runtime.NumCPU(), a fresh time-opaque-but-fixed-seed Rand,
// Debug: false.
func Resolve(opts ...Option) Options {
	o := Options{
		Width:   W128,
		Workers: runtime.NumCPU(),
		Rand:    xrand.New(1),
		Debug:   false,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
