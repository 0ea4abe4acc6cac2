package grpb

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kcning/lanczos16/gf16"
	"github.com/kcning/lanczos16/internal/xrand"
)

// TestGenericBatchedConsistency pins SPEC_FULL.md §4.3's requirement: the
// word-at-a-time and pair-at-a-time scalar-multiply kernels must agree
// bit for bit across every scalar and a range of widths, including widths
// with an odd number of 64-bit words.
func TestGenericBatchedConsistency(t *testing.T) {
	src := xrand.New(42)
	for _, width := range []int{64, 128, 192, 256, 512} {
		for c := gf16.Elem(0); c <= gf16.Max; c++ {
			g := New(width)
			g.Rand(src)

			m := scalarMasks(c)
			words := width / 64

			pg := planes(g)
			dGeneric := [4][]uint64{
				make([]uint64, words), make([]uint64, words),
				make([]uint64, words), make([]uint64, words),
			}
			dBatched := [4][]uint64{
				make([]uint64, words), make([]uint64, words),
				make([]uint64, words), make([]uint64, words),
			}

			mulScalarGeneric(&dGeneric, &pg, words, m)
			mulScalarBatched(&dBatched, &pg, words, m)

			require.Equal(t, dGeneric, dBatched, "width=%d c=%d", width, c)
		}
	}
}

// TestMulScalarAgreesWithAt cross-checks the bitsliced MulScalar kernel
// against gf16.Mul applied element-by-element.
func TestMulScalarAgreesWithAt(t *testing.T) {
	src := xrand.New(7)
	g := New(128)
	g.Rand(src)

	for c := gf16.Elem(0); c <= gf16.Max; c++ {
		out := New(128)
		MulScalar(out, g, c)
		for i := 0; i < 128; i++ {
			require.Equal(t, gf16.Mul(g.At(i), c), out.At(i), "i=%d c=%d", i, c)
		}
	}
}

// TestFmaddiScalarBSMatchesAt checks the broadcast-scalar fmadd kernel
// against the plain scalar fmadd driven by an explicitly read element.
func TestFmaddiScalarBSMatchesAt(t *testing.T) {
	src := xrand.New(11)
	a1, a2 := New(64), New(64)
	b := New(64)
	g := New(64)
	a1.Rand(src)
	Copy(a2, a1)
	b.Rand(src)
	g.Rand(src)

	const idx = 5
	FmaddiScalarBS(a1, b, g, idx)
	FmaddiScalar(a2, b, g.At(idx))

	for i := 0; i < 64; i++ {
		require.Equal(t, a2.At(i), a1.At(i), "i=%d", i)
	}
}
