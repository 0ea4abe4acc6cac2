// Package xrand wraps math/rand behind a narrow interface so every
// consumer of randomness in lanczos16 (GrpB.Rand, sparse row sampling,
// test fixtures) draws from one deterministic, explicitly-seeded stream.
//
// Resolves SPEC_FULL.md §2.3 / §6's "rand source" open question: the
// teacher's builder package already standardizes on a *rand.Rand field
// threaded through functional options (WithSeed/WithRand); this package
// generalizes that convention into a shared, reusable wrapper.
package xrand

import "math/rand"

// Source supplies the randomness primitives the solver needs. A
// *rand.Rand satisfies it directly via New.
//
// *rand.Rand is not goroutine-safe (the same caveat lvlath/tsp/rng.go
// documents for its own RNG use): callers must give each goroutine-bound
// workspace (each lanczos.Arg, each parallel worker's local sampling) its
// own Source, never share one across goroutines without external locking.
type Source interface {
	Uint64() uint64
	Intn(n int) int
	Float64() float64
}

// rngSource adapts *rand.Rand to Source.
type rngSource struct {
	r *rand.Rand
}

// New returns a Source seeded deterministically with seed.
func New(seed int64) Source {
	return rngSource{r: rand.New(rand.NewSource(seed))}
}

// Wrap adapts an existing *rand.Rand (e.g. one the caller seeded and
// wants to share deliberately across a single-threaded sequence of calls).
func Wrap(r *rand.Rand) Source {
	if r == nil {
		panic("xrand: nil *rand.Rand")
	}
	return rngSource{r: r}
}

func (s rngSource) Uint64() uint64   { return s.r.Uint64() }
func (s rngSource) Intn(n int) int   { return s.r.Intn(n) }
func (s rngSource) Float64() float64 { return s.r.Float64() }
