// Package mdmac specifies the multi-degree Macaulay matrix generator as
// an external collaborator interface only: spec.md §1 places MDMac and
// its column iterator out of scope, so this package carries just the
// shape sparse.BuildFromColumnSource consumes, plus an in-memory Static
// implementation used by tests to exercise that consumer path without a
// real Macaulay loader.
package mdmac

import "github.com/kcning/lanczos16/gf16"

// Entry is a single non-zero (row, value) pair within one column.
type Entry struct {
	Row int
	Val gf16.Elem
}

// Source is an opaque non-zero-entry oracle over columns of a sparse
// GF(16) matrix — the MDMac collaborator of spec.md §1.
type Source interface {
	// ColNonZeros returns the non-zero entries of column col.
	ColNonZeros(col int) []Entry
	// Cols returns the total column count of the source.
	Cols() int
}

// ColIterator enumerates a (possibly filtered) subset of column indices
// for a Source — the MDMacColIterator collaborator of spec.md §1.
type ColIterator interface {
	// Next returns the next column index, or ok=false when exhausted.
	Next() (col int, ok bool)
	// Reset rewinds the iterator to its first column.
	Reset()
}

// Static is an in-memory Source/ColIterator pair over a literal
// [][]Entry, one slice per column. It exists only to give
// sparse.BuildFromColumnSource and the test suite something concrete to
// drive — no real multi-degree Macaulay generator ships here.
type Static struct {
	cols []([]Entry)
	pos  int
}

// NewStatic wraps cols (one non-zero-entry list per column) as a Static
// Source.
func NewStatic(cols [][]Entry) *Static {
	return &Static{cols: cols}
}

// Cols implements Source.
func (s *Static) Cols() int { return len(s.cols) }

// ColNonZeros implements Source.
func (s *Static) ColNonZeros(col int) []Entry { return s.cols[col] }

// Next implements ColIterator, walking every column of s in order.
func (s *Static) Next() (int, bool) {
	if s.pos >= len(s.cols) {
		return 0, false
	}
	col := s.pos
	s.pos++
	return col, true
}

// Reset implements ColIterator.
func (s *Static) Reset() { s.pos = 0 }
