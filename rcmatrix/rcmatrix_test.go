package rcmatrix

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kcning/lanczos16/bitvec"
	"github.com/kcning/lanczos16/gf16"
	"github.com/kcning/lanczos16/internal/xrand"
)

func TestIdentityMulNaiveRoundTrip(t *testing.T) {
	src := xrand.New(1)
	const width = 64
	m := Zero(width)
	m.Rand(src)

	id := Identity(width)
	p := Zero(width)
	MulNaive(p, id, m)
	for i := 0; i < width; i++ {
		for j := 0; j < width; j++ {
			require.Equal(t, m.At(i, j), p.At(i, j), "i=%d j=%d", i, j)
		}
	}

	MulNaive(p, m, id)
	for i := 0; i < width; i++ {
		for j := 0; j < width; j++ {
			require.Equal(t, m.At(i, j), p.At(i, j), "i=%d j=%d", i, j)
		}
	}
}

func TestIsSymmetric(t *testing.T) {
	const width = 64
	m := Zero(width)
	require.True(t, m.IsSymmetric())
	m.Set(3, 9, 5)
	require.False(t, m.IsSymmetric())
	m.Set(9, 3, 5)
	require.True(t, m.IsSymmetric())
}

func TestSwapRows(t *testing.T) {
	const width = 64
	m := Zero(width)
	m.Set(0, 2, 7)
	m.Set(1, 5, 3)
	m.SwapRows(0, 1)
	require.Equal(t, gf16.Elem(0), m.At(0, 2))
	require.Equal(t, gf16.Elem(7), m.At(1, 2))
	require.Equal(t, gf16.Elem(3), m.At(0, 5))
}

func TestZeroSubsetRC(t *testing.T) {
	const width = 64
	src := xrand.New(9)
	a := Zero(width)
	a.Rand(src)

	mask := bitvec.New(width)
	for i := 0; i < width; i += 2 {
		mask.SetBit(i)
	}

	b := Zero(width)
	Copy(b, a)
	b.ZeroSubsetRC(mask)

	for i := 0; i < width; i++ {
		for j := 0; j < width; j++ {
			if mask.Bit(i) && mask.Bit(j) {
				require.Equal(t, a.At(i, j), b.At(i, j), "kept i=%d j=%d", i, j)
			} else {
				require.Equal(t, gf16.Elem(0), b.At(i, j), "zeroed i=%d j=%d", i, j)
			}
		}
	}
}

// TestGaussJordanRankDeficientS5 pins spec.md §8 S5: a symmetric 64x64
// diagonal matrix with 1 everywhere on the diagonal except at (7,7), so its
// leading 8x8 block has rank 7 and its 8th column/row (index 7) is the zero
// linear combination of the rest, must leave gj's independent-mask
// with bit 7 clear and every other bit set; after zero_subset_rc the
// resulting matrix is symmetric and idempotent as a pseudo-inverse:
// w * orig * w == w.
func TestGaussJordanRankDeficientS5(t *testing.T) {
	const width = 64
	orig := Zero(width)
	for i := 0; i < width; i++ {
		if i == 7 {
			continue
		}
		orig.Set(i, i, 1)
	}
	require.True(t, orig.IsSymmetric())

	a := Zero(width)
	Copy(a, orig)
	w := Identity(width)

	di := a.GaussJordan(w)

	for i := 0; i < width; i++ {
		require.Equal(t, i != 7, di.Bit(i), "bit %d", i)
	}

	w.ZeroSubsetRC(di)
	require.True(t, w.IsSymmetric())

	tmp := Zero(width)
	MulNaive(tmp, w, orig)
	result := Zero(width)
	MulNaive(result, tmp, w)

	for i := 0; i < width; i++ {
		for j := 0; j < width; j++ {
			require.Equal(t, w.At(i, j), result.At(i, j), "i=%d j=%d", i, j)
		}
	}
}
