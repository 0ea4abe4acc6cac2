package rmatrix

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kcning/lanczos16/bitvec"
	"github.com/kcning/lanczos16/gf16"
	"github.com/kcning/lanczos16/internal/xrand"
	"github.com/kcning/lanczos16/rcmatrix"
	"github.com/kcning/lanczos16/workerpool"
)

func TestGramianIsSymmetric(t *testing.T) {
	src := xrand.New(1)
	const rnum, width = 40, 64
	m := Zero(rnum, width)
	m.Rand(src)

	p := rcmatrix.Zero(width)
	Gramian(m, p)
	require.True(t, p.IsSymmetric())
}

func TestGramianAgreesWithDefinition(t *testing.T) {
	src := xrand.New(2)
	const rnum, width = 8, 64
	m := Zero(rnum, width)
	m.Rand(src)

	p := rcmatrix.Zero(width)
	Gramian(m, p)

	for i := 0; i < width; i++ {
		for j := 0; j < width; j++ {
			var want gf16.Elem
			for r := 0; r < rnum; r++ {
				want = gf16.Add(want, gf16.Mul(m.At(r, i), m.At(r, j)))
			}
			require.Equal(t, want, p.At(i, j), "i=%d j=%d", i, j)
		}
	}
}

func TestFmsEqualsFma(t *testing.T) {
	src := xrand.New(3)
	const rnum, width = 16, 64
	a1 := Zero(rnum, width)
	a2 := Zero(rnum, width)
	a1.Rand(src)
	Copy(a2, a1)

	b := Zero(rnum, width)
	b.Rand(src)
	c := rcmatrix.Zero(width)
	c.Rand(src)

	Fma(a1, b, c)
	Fms(a2, b, c)

	for i := 0; i < rnum; i++ {
		for j := 0; j < width; j++ {
			require.Equal(t, a1.At(i, j), a2.At(i, j), "i=%d j=%d", i, j)
		}
	}
}

func TestFmaDiagRestrictsColumns(t *testing.T) {
	src := xrand.New(4)
	const rnum, width = 8, 64
	a := Zero(rnum, width)
	before := Zero(rnum, width)
	a.Rand(src)
	Copy(before, a)

	b := Zero(rnum, width)
	b.Rand(src)
	c := rcmatrix.Identity(width)

	d := bitvec.New(width)
	for i := 0; i < width; i += 2 {
		d.SetBit(i)
	}

	FmaDiag(a, b, c, d)

	for i := 0; i < rnum; i++ {
		for j := 0; j < width; j++ {
			if d.Bit(j) {
				require.Equal(t, gf16.Add(before.At(i, j), b.At(i, j)), a.At(i, j), "i=%d j=%d", i, j)
			} else {
				require.Equal(t, before.At(i, j), a.At(i, j), "untouched i=%d j=%d", i, j)
			}
		}
	}
}

func TestDiagFmaZeroesOutsideMaskFirst(t *testing.T) {
	src := xrand.New(5)
	const rnum, width = 8, 64
	a := Zero(rnum, width)
	a.Rand(src)

	b := Zero(rnum, width)
	c := rcmatrix.Zero(width) // zero C, so only the a*d zeroing is observable

	d := bitvec.New(width)
	for i := 0; i < width; i += 2 {
		d.SetBit(i)
	}

	DiagFma(a, b, c, d)

	for i := 0; i < rnum; i++ {
		for j := 0; j < width; j++ {
			if d.Bit(j) {
				continue // kept, value depends on prior random fill
			}
			require.Equal(t, gf16.Elem(0), a.At(i, j), "i=%d j=%d", i, j)
		}
	}
}

func TestZCPosNZCPos(t *testing.T) {
	const rnum, width = 4, 64
	m := Zero(rnum, width)
	m.Set(0, 1, 5)
	m.Set(2, 1, 3)

	zc := m.ZCPos()
	nzc := m.NZCPos()
	require.False(t, zc.Bit(1))
	require.True(t, nzc.Bit(1))
	require.True(t, zc.Bit(0))
	require.False(t, nzc.Bit(0))
}

func TestGramianParallelAgreesWithSerial(t *testing.T) {
	src := xrand.New(10)
	const rnum, width = 37, 64
	m := Zero(rnum, width)
	m.Rand(src)

	want := rcmatrix.Zero(width)
	Gramian(m, want)

	const tnum = 4
	pool := workerpool.New(tnum)
	defer pool.Close()
	partials := make([]rcmatrix.RCMatrix, tnum)
	for i := range partials {
		partials[i] = rcmatrix.Zero(width)
	}
	got := rcmatrix.Zero(width)
	GramianParallel(m, got, tnum, partials, pool)

	for i := 0; i < width; i++ {
		for j := 0; j < width; j++ {
			require.Equal(t, want.At(i, j), got.At(i, j), "i=%d j=%d", i, j)
		}
	}
}

func TestMixiAndAddi(t *testing.T) {
	src := xrand.New(6)
	const rnum, width = 4, 64
	a := Zero(rnum, width)
	b := Zero(rnum, width)
	a.Rand(src)
	b.Rand(src)

	sum := Zero(rnum, width)
	Copy(sum, a)
	Addi(sum, b)
	for i := 0; i < rnum; i++ {
		for j := 0; j < width; j++ {
			require.Equal(t, gf16.Add(a.At(i, j), b.At(i, j)), sum.At(i, j))
		}
	}

	di := bitvec.New(width)
	for i := 0; i < width; i++ {
		if i%3 == 0 {
			di.SetBit(i)
		}
	}
	mixed := Zero(rnum, width)
	Copy(mixed, a)
	Mixi(mixed, b, di)
	for i := 0; i < rnum; i++ {
		for j := 0; j < width; j++ {
			if di.Bit(j) {
				require.Equal(t, a.At(i, j), mixed.At(i, j), "kept i=%d j=%d", i, j)
			} else {
				require.Equal(t, b.At(i, j), mixed.At(i, j), "replaced i=%d j=%d", i, j)
			}
		}
	}
}
