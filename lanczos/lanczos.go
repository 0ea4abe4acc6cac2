// Package lanczos implements the Block Lanczos driver (C8) and its
// workspace (C9): the recurrence that drives an N x B block vector
// toward a non-trivial left null-space basis of a sparse GF(16) matrix.
//
// Grounded directly on original_source/src/mrs/block_lanczos_gf16.c:
// Arg mirrors struct BLKGF16Arg, NewArg mirrors blkgf16_arg_create
// (validated up front instead of via a goto-cleanup chain, since nothing
// after validation in Go's make()-based allocation can fail the way a
// malloc-per-field C loop can), and Run is a line-for-line translation of
// blk_lczs_gf16_generic's twelve-step iteration body, including its
// ordering constraints.
package lanczos

import (
	"math"
	"sync"

	"github.com/kcning/lanczos16/bitvec"
	"github.com/kcning/lanczos16/config"
	"github.com/kcning/lanczos16/internal/xrand"
	"github.com/kcning/lanczos16/lanczoserr"
	"github.com/kcning/lanczos16/rcmatrix"
	"github.com/kcning/lanczos16/rmatrix"
	"github.com/kcning/lanczos16/sparse"
)

// Threadpool is the job-submission contract Run needs, identical in
// shape to sparse.Pool (workerpool.Pool satisfies both).
type Threadpool = sparse.Pool

// Arg is the Block Lanczos workspace (C9): every buffer the recurrence
// reuses across iterations, allocated once per solve and mutated in
// place. Exclusively owns everything it allocates.
type Arg struct {
	v, p, av, mtv     rmatrix.RMatrix
	vtAv, vtA2v, c, w rcmatrix.RCMatrix
	avPartials        []*rmatrix.RMatrix
	gramianPartials   []rcmatrix.RCMatrix
	mu                sync.Mutex
	tnum              int
	rnum, cnum, width int

	// Debug enables the post-Gauss-Jordan symmetry assertion (spec.md
	// §7 / config.WithDebugAssertions). Off by default: the assertion
	// is a correctness diagnostic, not part of the algorithm.
	Debug bool
}

// NewArg allocates a Block Lanczos workspace for an rnum x cnum sparse
// matrix, tnum parallel workers, and the given block width. Every
// dimension is validated before any buffer is allocated, so there is no
// partial-allocation state to tear down on failure — the Go equivalent
// of blkgf16_arg_create's goto-based cleanup chain collapses to "fail
// before touching the heap."
func NewArg(rnum, cnum, tnum int, width config.Width) (*Arg, error) {
	if !width.Valid() {
		return nil, lanczoserr.ErrInvalidWidth
	}
	if rnum <= 0 || cnum <= 0 || tnum <= 0 {
		return nil, lanczoserr.ErrDimensionMismatch
	}
	w := int(width)

	arg := &Arg{tnum: tnum, rnum: rnum, cnum: cnum, width: w}
	arg.v = rmatrix.Zero(rnum, w)
	arg.p = rmatrix.Zero(rnum, w)
	arg.av = rmatrix.Zero(rnum, w)
	arg.mtv = rmatrix.Zero(cnum, w)
	arg.vtAv = rcmatrix.Zero(w)
	arg.vtA2v = rcmatrix.Zero(w)
	arg.c = rcmatrix.Zero(w)
	arg.w = rcmatrix.Zero(w)

	arg.avPartials = make([]*rmatrix.RMatrix, tnum)
	for i := range arg.avPartials {
		part := rmatrix.Zero(rnum, w)
		arg.avPartials[i] = &part
	}
	arg.gramianPartials = make([]rcmatrix.RCMatrix, tnum)
	for i := range arg.gramianPartials {
		arg.gramianPartials[i] = rcmatrix.Zero(w)
	}

	return arg, nil
}

// NewArgFromOptions allocates a workspace the way NewArg does, but reads
// the worker count, block width, and debug-assertion gate from a resolved
// config.Options instead of three bare parameters — the entry point for
// callers that built their configuration via config.Resolve or
// config.LoadProfile rather than wiring NewArg's parameters by hand.
func NewArgFromOptions(rnum, cnum int, opts config.Options) (*Arg, error) {
	arg, err := NewArg(rnum, cnum, opts.Workers, opts.Width)
	if err != nil {
		return nil, err
	}
	arg.Debug = opts.Debug
	return arg, nil
}

// V exposes the current block vector. Valid any time, but only meaningful
// as a null-space candidate once Run has returned.
func (a *Arg) V() *rmatrix.RMatrix { return &a.v }

// Init seeds the workspace for a fresh solve: v gets a uniformly random
// fill, p is zeroed (spec.md §4.6 "Initialization").
func (a *Arg) Init(src xrand.Source) {
	a.v.Rand(src)
	a.p.ResetZero()
}

// Run drives the Block Lanczos recurrence to termination: the loop
// continues while the Gauss-Jordan independent-column mask `di` is
// non-zero, and returns once a round's Gramian vanishes completely
// (di == 0), at which point Arg.V() holds a non-trivial left null-space
// block for m. Callers must call Init before the first Run.
func Run(arg *Arg, m *sparse.CMSM, pool Threadpool) (iterations uint32, err error) {
	if m.Rnum() != arg.rnum || m.Cnum() != arg.cnum {
		return 0, lanczoserr.ErrDimensionMismatch
	}

	for {
		di := Step(arg, m, pool)
		iterations++
		if di.IsZero() {
			return iterations, nil
		}
	}
}

// Step runs exactly one iteration of the recurrence (spec.md §4.6 steps
// 1-11) and returns the Gauss-Jordan independent-column mask `di` this
// round produced: a non-zero di means the loop should continue, a zero
// di means the current v (already swapped into place) is a non-trivial
// left null-space block. Run is Step called in a loop; Step is exposed
// separately so callers (and tests pinning scenarios that are not
// expected to terminate, e.g. spec.md §8 S1) can drive a bounded number
// of rounds without relying on Run's unconditional "run to termination"
// contract.
//
// Step panics if arg.Debug is set and w turns out non-symmetric after
// Gauss-Jordan — a programmer error (a fault in a GF(16) kernel), not
// a recoverable runtime condition, so it is a debug-only assertion rather
// than a returned error.
func Step(arg *Arg, m *sparse.CMSM, pool Threadpool) bitvec.DiagMask {
	// 1. mtv = Mᵀ·v ; av = M·mtv (parallel).
	sparse.MulTParallel(&arg.mtv, m, &arg.v, arg.tnum, pool)
	sparse.MulParallel(&arg.av, m, &arg.mtv, arg.tnum, arg.avPartials, pool, &arg.mu)

	// 2. vtAv = mtvᵀ·mtv ; vtA2v = avᵀ·av (parallel Gramians).
	rmatrix.GramianParallel(arg.mtv, arg.vtAv, arg.tnum, arg.gramianPartials, pool)
	rmatrix.GramianParallel(arg.av, arg.vtA2v, arg.tnum, arg.gramianPartials, pool)

	// 3. c = vtAv (copy — Gauss-Jordan workspace).
	rcmatrix.Copy(arg.c, arg.vtAv)
	// 4. w = I.
	arg.w.SetIdentity()
	// 5. Gauss-Jordan: w becomes vtAv's pseudo-inverse on di's
	// independent subspace.
	di := arg.c.GaussJordan(arg.w)
	// 6. Project w onto the independent subspace if needed.
	if !di.IsMax() {
		arg.w.ZeroSubsetRC(di)
	}
	// 7. Assert w is symmetric (debug-only diagnostic).
	if arg.Debug {
		lanczoserr.DebugAssert(arg.w.IsSymmetric(), "w not symmetric after Gauss-Jordan")
	}

	// 8. C_{i+1,i}: vtA2v = mix(vtA2v, vtAv, di), then c = w·vtA2v.
	// Only vtA2v is mixed; vtAv keeps its value for fms_diag in step 9.
	rcmatrix.Mixi(arg.vtA2v, arg.vtAv, di)
	rcmatrix.MulNaive(arg.c, arg.w, arg.vtA2v)

	// 9. New v, computed into av.
	rmatrix.Mixi(arg.av, arg.v, di)
	rmatrix.FmsDiag(arg.av, arg.p, arg.vtAv, di)
	rmatrix.Fms(arg.av, arg.v, arg.c)

	// 10. New p.
	ndi := bitvec.New(arg.width)
	bitvec.Not(ndi, di)
	rmatrix.DiagFma(arg.p, arg.v, arg.w, ndi)

	// 11. Swap the roles of v and av — a plain variable exchange, not a
	// copy.
	arg.v, arg.av = arg.av, arg.v

	return di
}

// BlkIterNum approximates the expected iteration count for a q-ary field
// (q=16 for GF(16)) and target rank r, via the singular-Gramian-
// probability recurrence of spec.md §4.6. Purely advisory: Run does not
// consume it.
func BlkIterNum(width config.Width, q uint32, rank uint32) uint64 {
	b := float64(int(width))
	prob := 1.0 / float64(q)
	probPowN := math.Pow(prob, b)

	e1, e2 := 0.0, prob
	for i := 2; i <= int(width); i++ {
		eNext := (1 + prob - 2*probPowN) + (1-prob+probPowN)*e2 + (prob-probPowN)*e1
		e1, e2 = e2, eNext
	}
	return uint64(math.Floor(float64(rank) / e2))
}
