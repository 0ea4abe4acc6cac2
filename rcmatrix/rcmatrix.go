// Package rcmatrix implements RCMatrix, a dense Width() x Width() matrix
// over GF(16) stored as Width() GrpB rows — the "square" dense matrix
// kind the Block Lanczos driver uses for vtAv, its Gauss-Jordan inverse,
// and the per-iteration Winv/D mixing matrices.
//
// Grounded directly on original_source/src/mrs/rc256m_gf16.c: every
// exported function here mirrors one rc256m_gf16_* routine, generalized
// from a fixed 256-row struct to a runtime-width []grpb.GrpB slice.
package rcmatrix

import (
	"github.com/kcning/lanczos16/bitvec"
	"github.com/kcning/lanczos16/gf16"
	"github.com/kcning/lanczos16/grpb"
	"github.com/kcning/lanczos16/internal/xrand"
)

// RCMatrix is a square Width() x Width() dense GF(16) matrix.
type RCMatrix struct {
	rows  []grpb.GrpB
	width int
}

// Zero allocates a zeroed width x width matrix.
func Zero(width int) RCMatrix {
	rows := make([]grpb.GrpB, width)
	for i := range rows {
		rows[i] = grpb.New(width)
	}
	return RCMatrix{rows: rows, width: width}
}

// Identity allocates the width x width identity matrix.
func Identity(width int) RCMatrix {
	m := Zero(width)
	for i := 0; i < width; i++ {
		m.rows[i].Set(i, 1)
	}
	return m
}

// SetIdentity resets m in place to the width x width identity matrix,
// reusing its existing row storage rather than allocating a fresh
// matrix — the Gauss-Jordan "w = I" reset every Lanczos iteration
// performs on an already-owned workspace buffer.
func (m RCMatrix) SetIdentity() {
	m.ResetZero()
	for i := 0; i < m.width; i++ {
		m.rows[i].Set(i, 1)
	}
}

// Width returns m's row/column count.
func (m RCMatrix) Width() int { return m.width }

// Row exposes row i directly, mirroring rc256m_gf16_raddr: callers use
// this to drive grpb's fmadd family without going through At/Set
// one element at a time.
func (m RCMatrix) Row(i int) grpb.GrpB { return m.rows[i] }

// Rand fills m with uniformly random GF(16) entries.
func (m RCMatrix) Rand(src xrand.Source) {
	for i := range m.rows {
		m.rows[i].Rand(src)
	}
}

// ResetZero clears every entry to 0.
func (m RCMatrix) ResetZero() {
	for i := range m.rows {
		m.rows[i].Zero()
	}
}

// Copy overwrites dst's entries with src's. Both must share a width.
func Copy(dst, src RCMatrix) {
	mustSameWidth(dst, src)
	for i := range dst.rows {
		grpb.Copy(dst.rows[i], src.rows[i])
	}
}

// Addi sets a = a + b in place, row by row.
func Addi(a, b RCMatrix) {
	mustSameWidth(a, b)
	for i := range a.rows {
		a.rows[i].Addi(b.rows[i])
	}
}

// SwapRows exchanges rows i and j in place.
func (m RCMatrix) SwapRows(i, j int) {
	m.rows[i], m.rows[j] = m.rows[j], m.rows[i]
}

// At returns entry (i, j).
func (m RCMatrix) At(i, j int) gf16.Elem {
	return m.rows[i].At(j)
}

// Set assigns entry (i, j).
func (m RCMatrix) Set(i, j int, v gf16.Elem) {
	m.rows[i].Set(j, v)
}

// IsSymmetric reports whether m equals its own transpose.
func (m RCMatrix) IsSymmetric() bool {
	for i := 0; i < m.width; i++ {
		for j := 0; j < i; j++ {
			if m.At(i, j) != m.At(j, i) {
				return false
			}
		}
	}
	return true
}

// Mixi replaces, for every column j where di's bit j is 0, a's column j
// with b's column j; columns where di is 1 are left untouched. Operates
// row-by-row, delegating to grpb.Mix per row (rc256m_gf16_mixi).
func Mixi(a, b RCMatrix, di bitvec.DiagMask) {
	mustSameWidth(a, b)
	for i := range a.rows {
		grpb.Mix(a.rows[i], b.rows[i], di)
	}
}

// ZeroSubsetRC zeroes both the rows and the columns whose bit is 0 in di,
// leaving the submatrix indexed by di's set bits untouched. Mirrors
// rc256m_gf16_zero_subset_rc: rows outside di are wholesale-zeroed; rows
// inside di have their columns masked via grpb.ZeroSubset.
func (m RCMatrix) ZeroSubsetRC(di bitvec.DiagMask) {
	for i := 0; i < m.width; i++ {
		if di.Bit(i) {
			m.rows[i].ZeroSubset(di)
		} else {
			m.rows[i].Zero()
		}
	}
}

// MulNaive sets p = m*n via schoolbook multiplication: for each row of m,
// accumulate n's rows scaled by m's entries (rc256m_gf16_mul_naive).
func MulNaive(p, m, n RCMatrix) {
	mustSameWidth(p, m)
	mustSameWidth(p, n)
	p.ResetZero()
	for ri := 0; ri < m.width; ri++ {
		mRow := m.rows[ri]
		dstRow := p.rows[ri]
		for ci := 0; ci < m.width; ci++ {
			v := mRow.At(ci)
			if v == 0 {
				continue
			}
			grpb.FmaddiScalar(dstRow, n.rows[ci], v)
		}
	}
}

// GaussJordan performs in-place Gauss-Jordan elimination on m, also
// applying every row operation to inv (pass an identity matrix to obtain
// m's inverse on the independent subspace, or a constant column to solve
// a linear system). Returns the independent-column mask: bit i is 1 iff
// column i had a nonzero pivot.
//
// Pivot search takes the first nonzero entry scanning rows top-down from
// the current row (not the numerically-largest candidate): this
// preserves row order deterministically rather than minimizing fill, the
// same scan rc256m_gf16_gj performs.
func (m RCMatrix) GaussJordan(inv RCMatrix) bitvec.DiagMask {
	mustSameWidth(m, inv)
	di := bitvec.New(m.width)
	di.Ones()

	for i := 0; i < m.width; i++ {
		pivotRow := -1
		var invCoeff gf16.Elem
		for r := i; r < m.width; r++ {
			coeff := m.rows[r].At(i)
			if coeff != 0 {
				invCoeff = gf16.Inv(coeff)
				pivotRow = r
				break
			}
		}

		if pivotRow < 0 {
			di.ClearBit(i)
			continue
		}

		grpb.MuliScalar(m.rows[pivotRow], invCoeff)
		grpb.MuliScalar(inv.rows[pivotRow], invCoeff)

		for j := 0; j < i; j++ {
			rowReduce(m.rows[j], m.rows[pivotRow], inv.rows[j], inv.rows[pivotRow], i)
		}
		for j := pivotRow + 1; j < m.width; j++ {
			rowReduce(m.rows[j], m.rows[pivotRow], inv.rows[j], inv.rows[pivotRow], i)
		}

		m.SwapRows(pivotRow, i)
		inv.SwapRows(pivotRow, i)
	}

	return di
}

// rowReduce eliminates column pivotCol from dstRow using pivotRow
// (already normalized to a leading 1), applying the identical scalar
// multiple to dstInvRow/invRow.
func rowReduce(dstRow, pivotRow, dstInvRow, invRow grpb.GrpB, pivotCol int) {
	scalar := dstRow.At(pivotCol)
	if scalar == 0 {
		return
	}
	grpb.FmaddiScalar(dstRow, pivotRow, scalar)
	grpb.FmaddiScalar(dstInvRow, invRow, scalar)
}

func mustSameWidth(a, b RCMatrix) {
	if a.width != b.width {
		panic("rcmatrix: width mismatch")
	}
}
