// Package rmatrix implements RMatrix, a dense Rnum() x Width() matrix
// over GF(16) stored as Rnum() GrpB rows — the shape of v, av, and every
// other "tall" Lanczos workspace quantity (as opposed to RCMatrix's
// square B x B shape).
//
// Grounded directly on original_source/src/mrs/r256m_gf16.c: every
// exported function here mirrors one r256m_gf16_* routine, generalized
// from a fixed 256-lane struct to a runtime-width []grpb.GrpB slice with
// an explicit row count.
package rmatrix

import (
	"sync"

	"github.com/kcning/lanczos16/bitvec"
	"github.com/kcning/lanczos16/gf16"
	"github.com/kcning/lanczos16/grpb"
	"github.com/kcning/lanczos16/internal/xrand"
	"github.com/kcning/lanczos16/rcmatrix"
)

// Pool is the minimal job-submission contract GramianParallel needs:
// submit exactly len(fns) jobs, block until every one completes.
// workerpool.Pool and sparse.Pool both satisfy this via their Run method.
type Pool interface {
	Run(fns []func())
}

// RMatrix is an rnum x width dense GF(16) matrix.
type RMatrix struct {
	rows  []grpb.GrpB
	width int
}

// Zero allocates a zeroed rnum x width matrix.
func Zero(rnum, width int) RMatrix {
	rows := make([]grpb.GrpB, rnum)
	for i := range rows {
		rows[i] = grpb.New(width)
	}
	return RMatrix{rows: rows, width: width}
}

// Rnum returns m's row count.
func (m RMatrix) Rnum() int { return len(m.rows) }

// Width returns m's column count (the block width).
func (m RMatrix) Width() int { return m.width }

// Row exposes row i directly, mirroring r256m_gf16_raddr.
func (m RMatrix) Row(i int) grpb.GrpB { return m.rows[i] }

// At returns entry (ri, ci).
func (m RMatrix) At(ri, ci int) gf16.Elem {
	return m.rows[ri].At(ci)
}

// Set assigns entry (ri, ci).
func (m RMatrix) Set(ri, ci int, v gf16.Elem) {
	m.rows[ri].Set(ci, v)
}

// Rand fills m with uniformly random GF(16) entries.
func (m RMatrix) Rand(src xrand.Source) {
	for i := range m.rows {
		m.rows[i].Rand(src)
	}
}

// ResetZero clears every entry to 0.
func (m RMatrix) ResetZero() {
	for i := range m.rows {
		m.rows[i].Zero()
	}
}

// Copy overwrites dst's entries with src's. Both must share rnum and
// width.
func Copy(dst, src RMatrix) {
	mustSameShape(dst, src)
	for i := range dst.rows {
		grpb.Copy(dst.rows[i], src.rows[i])
	}
}

// Gramian computes p = mᵀ·m, an rnum-independent Width() x Width()
// result: for each row of m, every nonzero entry c at column i
// contributes c*row into p's row i (r256m_gf16_gramian — "subtraction
// equals addition" lets the source's fmsubi_scalar collapse to the same
// fmadd every other routine here uses).
func Gramian(m RMatrix, p rcmatrix.RCMatrix) {
	if m.width != p.Width() {
		panic("rmatrix: Gramian dimension mismatch")
	}
	p.ResetZero()
	for ri := 0; ri < m.Rnum(); ri++ {
		row := m.rows[ri]
		for i := 0; i < m.width; i++ {
			c := row.At(i)
			if c == 0 {
				continue
			}
			grpb.FmaddiScalar(p.Row(i), row, c)
		}
	}
}

// GramianParallel is Gramian partitioned into tnum contiguous row strips:
// each worker accumulates its strip's contribution into a private
// partial RCMatrix, then a single mutex-serialized reduction XORs every
// partial into p — mirrors r128m_gf16_parallel.c's gramian_parallel,
// whose worker threads each lock only once, to merge their local result,
// never during the per-row accumulation itself.
func GramianParallel(m RMatrix, p rcmatrix.RCMatrix, tnum int, partials []rcmatrix.RCMatrix, pool Pool) {
	if m.width != p.Width() {
		panic("rmatrix: Gramian dimension mismatch")
	}
	if tnum <= 1 || m.Rnum() < tnum || len(partials) < tnum {
		Gramian(m, p)
		return
	}
	p.ResetZero()

	var mu sync.Mutex
	strip := (m.Rnum() + tnum - 1) / tnum
	fns := make([]func(), tnum)
	for w := 0; w < tnum; w++ {
		sidx := w * strip
		eidx := sidx + strip
		if eidx > m.Rnum() {
			eidx = m.Rnum()
		}
		partial := partials[w]
		fns[w] = func(sidx, eidx int, partial rcmatrix.RCMatrix) func() {
			return func() {
				partial.ResetZero()
				for ri := sidx; ri < eidx; ri++ {
					row := m.rows[ri]
					for i := 0; i < m.width; i++ {
						c := row.At(i)
						if c == 0 {
							continue
						}
						grpb.FmaddiScalar(partial.Row(i), row, c)
					}
				}
				mu.Lock()
				rcmatrix.Addi(p, partial)
				mu.Unlock()
			}
		}(sidx, eidx, partial)
	}
	pool.Run(fns)
}

// ZCPos returns a mask with bit i set iff column i is entirely zero
// across every row of m.
func (m RMatrix) ZCPos() bitvec.BitVec {
	out := bitvec.New(m.width)
	out.Ones()
	for i := range m.rows {
		tmp := m.rows[i].ZPos()
		bitvec.And(out, out, tmp)
		if out.IsZero() {
			break
		}
	}
	return out
}

// NZCPos returns a mask with bit i set iff column i has at least one
// nonzero entry.
func (m RMatrix) NZCPos() bitvec.BitVec {
	out := m.ZCPos()
	bitvec.Not(out, out)
	return out
}

// SubsetZCPos is ZCPos restricted to the rows indexed by ridxs.
func (m RMatrix) SubsetZCPos(ridxs []int) bitvec.BitVec {
	out := bitvec.New(m.width)
	out.Ones()
	for _, ri := range ridxs {
		tmp := m.rows[ri].ZPos()
		bitvec.And(out, out, tmp)
		if out.IsZero() {
			break
		}
	}
	return out
}

// Fma sets a = a + b*c (c is a Width() x Width() RCMatrix, applied to
// every row of b).
func Fma(a, b RMatrix, c rcmatrix.RCMatrix) {
	mustSameShape(a, b)
	for i := range a.rows {
		bRow := b.rows[i]
		dst := a.rows[i]
		for j := 0; j < b.width; j++ {
			coeff := bRow.At(j)
			if coeff == 0 {
				continue
			}
			grpb.FmaddiScalar(dst, c.Row(j), coeff)
		}
	}
}

// FmaDiag sets a = a + b*c*d, where d is a 0/1 diagonal mask applied
// after the b*c product (entries outside d are left untouched in a).
func FmaDiag(a, b RMatrix, c rcmatrix.RCMatrix, d bitvec.DiagMask) {
	mustSameShape(a, b)
	for i := range a.rows {
		bRow := b.rows[i]
		dst := a.rows[i]
		for j := 0; j < b.width; j++ {
			coeff := bRow.At(j)
			if coeff == 0 {
				continue
			}
			grpb.FmaddiScalarMask(dst, c.Row(j), coeff, d)
		}
	}
}

// DiagFma sets a = a*d + b*c: a's entries outside d are zeroed first,
// then b*c accumulates in as usual.
func DiagFma(a, b RMatrix, c rcmatrix.RCMatrix, d bitvec.DiagMask) {
	mustSameShape(a, b)
	for i := range a.rows {
		bRow := b.rows[i]
		dst := a.rows[i]
		dst.ZeroSubset(d)
		for j := 0; j < b.width; j++ {
			coeff := bRow.At(j)
			if coeff == 0 {
				continue
			}
			grpb.FmaddiScalar(dst, c.Row(j), coeff)
		}
	}
}

// Fms sets a = a - b*c. Identical to Fma: characteristic-2 fields have
// no distinct subtraction.
func Fms(a, b RMatrix, c rcmatrix.RCMatrix) {
	Fma(a, b, c)
}

// FmsDiag sets a = a - b*c*d. Identical to FmaDiag.
func FmsDiag(a, b RMatrix, c rcmatrix.RCMatrix, d bitvec.DiagMask) {
	FmaDiag(a, b, c, d)
}

// Mixi replaces, for every column j where di's bit j is 0, a's column j
// with b's column j; columns where di is 1 are left untouched.
func Mixi(a, b RMatrix, di bitvec.DiagMask) {
	mustSameShape(a, b)
	for i := range a.rows {
		grpb.Mix(a.rows[i], b.rows[i], di)
	}
}

// Addi sets a = a + b in place.
func Addi(a, b RMatrix) {
	mustSameShape(a, b)
	for i := range a.rows {
		a.rows[i].Addi(b.rows[i])
	}
}

func mustSameShape(a, b RMatrix) {
	if a.width != b.width || len(a.rows) != len(b.rows) {
		panic("rmatrix: shape mismatch")
	}
}
