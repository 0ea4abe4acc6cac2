package rcmatrix

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kcning/lanczos16/gf16"
)

// TestGaussJordanPivotOrderPrefersFirstNonzeroRow pins spec.md §9's
// Gauss-Jordan pivot-search design note: GaussJordan scans candidate rows
// top-down starting at the current row and commits to the first nonzero
// entry it finds, rather than searching further for, say, a numerically
// larger one. Column 0 below has two candidate pivots — row 1 (value 1)
// and row 2 (value 3) — so a "prefer the larger entry" search would pick
// row 2, while the first-nonzero-row rule picks row 1. All entries are
// chosen from {0, 1} plus one further value (3) so every product the
// elimination needs reduces to the a*1 == a and a*0 == 0 field axioms
// TestFieldAxioms already pins, without needing a full multiplication
// table to predict the result by hand.
func TestGaussJordanPivotOrderPrefersFirstNonzeroRow(t *testing.T) {
	const width = 64
	m := Identity(width)

	// Row 0 has no column-0 candidate at all.
	m.Set(0, 0, 0)
	m.Set(0, 1, 1)
	// Row 1: the first column-0 candidate, value 1.
	m.Set(1, 0, 1)
	m.Set(1, 1, 0)
	// Row 2: a second column-0 candidate, value 3 — picked only if the
	// search preferred a later or "larger" entry over the first one.
	m.Set(2, 0, 3)
	m.Set(2, 1, 0)
	m.Set(2, 2, 1)

	inv := Identity(width)
	di := m.GaussJordan(inv)
	require.True(t, di.IsMax(), "this matrix is full rank")

	for i := 0; i < width; i++ {
		for j := 0; j < width; j++ {
			want := gf16.Elem(0)
			if i == j {
				want = 1
			}
			require.Equal(t, want, m.At(i, j), "m[%d][%d] must reduce to identity", i, j)
		}
	}

	// inv row 0 carries whichever identity row was used as the column-0
	// pivot. A nonzero entry at column 1 (row 1's original position) and
	// a zero at column 2 (row 2's) confirms row 1, not row 2, was chosen.
	require.Equal(t, gf16.Elem(1), inv.At(0, 1), "row 1 must have been used as the column-0 pivot")
	require.Equal(t, gf16.Elem(0), inv.At(0, 2), "row 2 must not have been used as the column-0 pivot")
	require.Equal(t, gf16.Elem(1), inv.At(1, 0))
	require.Equal(t, gf16.Elem(3), inv.At(2, 1), "row 2's elimination against the column-0 pivot must survive into inv")
	require.Equal(t, gf16.Elem(1), inv.At(2, 2))
}
