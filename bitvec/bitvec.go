// Package bitvec implements fixed-width bit sets used throughout the
// GF(16) Block Lanczos solver: as GrpB's coefficient planes, as column
// masks ("alive"/"independent"/"mix" selections), and — via the DiagMask
// alias — as the diagonal of a 0/1 B x B selection matrix.
//
// A BitVec's width is chosen at construction (see SPEC_FULL.md §6 for why
// this is a runtime parameter rather than a compile-time array size), so
// the same package serves all four supported block widths without
// rebuilding.
package bitvec

import (
	"math/bits"

	"github.com/kcning/lanczos16/internal/xrand"
)

// BitVec is an ordered set of Width() bits, stored as contiguous 64-bit
// words. Bit i lives in word i/64, at bit position i%64.
type BitVec struct {
	width int
	words []uint64
}

// New allocates a zeroed BitVec of the given width. width must be a
// positive multiple of 64 (the four supported block widths 64/128/256/512
// all satisfy this; New does not itself restrict callers to that set, so
// it composes with any bitsliced-group width config validates upstream).
func New(width int) BitVec {
	if width <= 0 || width%64 != 0 {
		panic("bitvec: width must be a positive multiple of 64")
	}
	return BitVec{width: width, words: make([]uint64, width/64)}
}

// Width returns the number of bits in v.
func (v BitVec) Width() int { return v.width }

// Words exposes the backing words read-only, for callers (grpb, simdkit
// kernels) that need direct word-at-a-time access for performance.
func (v BitVec) Words() []uint64 { return v.words }

// Zero clears every bit.
func (v BitVec) Zero() {
	for i := range v.words {
		v.words[i] = 0
	}
}

// Ones sets every bit.
func (v BitVec) Ones() {
	for i := range v.words {
		v.words[i] = ^uint64(0)
	}
}

// Rand fills v with uniformly random bits drawn from src.
func (v BitVec) Rand(src xrand.Source) {
	for i := range v.words {
		v.words[i] = src.Uint64()
	}
}

// Copy overwrites dst's contents with src's. Both must share the same
// width.
func Copy(dst, src BitVec) {
	mustSameWidth(dst, src)
	copy(dst.words, src.words)
}

// Clone returns an independent copy of v.
func (v BitVec) Clone() BitVec {
	out := New(v.width)
	copy(out.words, v.words)
	return out
}

// Bit returns the value of bit i.
func (v BitVec) Bit(i int) bool {
	return v.words[i>>6]&(uint64(1)<<uint(i&63)) != 0
}

// SetBit sets bit i to 1.
func (v BitVec) SetBit(i int) {
	v.words[i>>6] |= uint64(1) << uint(i&63)
}

// ClearBit sets bit i to 0.
func (v BitVec) ClearBit(i int) {
	v.words[i>>6] &^= uint64(1) << uint(i&63)
}

// ToggleBit flips bit i.
func (v BitVec) ToggleBit(i int) {
	v.words[i>>6] ^= uint64(1) << uint(i&63)
}

// And sets dst = a & b.
func And(dst, a, b BitVec) {
	mustSameWidth(dst, a)
	mustSameWidth(dst, b)
	for i := range dst.words {
		dst.words[i] = a.words[i] & b.words[i]
	}
}

// Or sets dst = a | b.
func Or(dst, a, b BitVec) {
	mustSameWidth(dst, a)
	mustSameWidth(dst, b)
	for i := range dst.words {
		dst.words[i] = a.words[i] | b.words[i]
	}
}

// Xor sets dst = a ^ b.
func Xor(dst, a, b BitVec) {
	mustSameWidth(dst, a)
	mustSameWidth(dst, b)
	for i := range dst.words {
		dst.words[i] = a.words[i] ^ b.words[i]
	}
}

// AndNot sets dst = a &^ b.
func AndNot(dst, a, b BitVec) {
	mustSameWidth(dst, a)
	mustSameWidth(dst, b)
	for i := range dst.words {
		dst.words[i] = a.words[i] &^ b.words[i]
	}
}

// Not sets dst = ^src.
func Not(dst, src BitVec) {
	mustSameWidth(dst, src)
	for i := range dst.words {
		dst.words[i] = ^src.words[i]
	}
}

// PopCount returns the number of set bits.
func (v BitVec) PopCount() int {
	n := 0
	for _, w := range v.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// SetBits appends the indices of set bits to out, in ascending order, and
// returns the updated slice. Mirrors the C source's out-parameter
// enumeration style rather than allocating a fresh slice per call.
func (v BitVec) SetBits(out []int) []int {
	for wi, w := range v.words {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			out = append(out, wi*64+tz)
			w &= w - 1
		}
	}
	return out
}

// IsZero reports whether every bit is 0.
func (v BitVec) IsZero() bool {
	for _, w := range v.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// IsMax reports whether every bit is 1.
func (v BitVec) IsMax() bool {
	for _, w := range v.words {
		if w != ^uint64(0) {
			return false
		}
	}
	return true
}

// Equal reports whether a and b have identical bits (and width).
func Equal(a, b BitVec) bool {
	if a.width != b.width {
		return false
	}
	for i := range a.words {
		if a.words[i] != b.words[i] {
			return false
		}
	}
	return true
}

// Broadcast64 returns a 64-bit word with every bit set to the value of
// bit i of v — i.e. all-ones if bit i is 1, all-zero otherwise. Used by
// the masked fused-multiply-add kernels to turn a single DiagMask bit into
// a word-wide AND mask.
func (v BitVec) Broadcast64(i int) uint64 {
	if v.Bit(i) {
		return ^uint64(0)
	}
	return 0
}

// DiagMask is a BitVec interpreted as the diagonal of a 0/1 B x B matrix:
// bit i set means column/row i is kept (spec.md §3.4).
type DiagMask = BitVec

func mustSameWidth(a, b BitVec) {
	if a.width != b.width {
		panic("bitvec: width mismatch")
	}
}
