package bitvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kcning/lanczos16/internal/xrand"
)

func TestSetClearToggleBit(t *testing.T) {
	v := New(128)
	require.True(t, v.IsZero())

	v.SetBit(5)
	v.SetBit(127)
	assert.True(t, v.Bit(5))
	assert.True(t, v.Bit(127))
	assert.False(t, v.Bit(6))
	assert.Equal(t, 2, v.PopCount())

	v.ToggleBit(5)
	assert.False(t, v.Bit(5))

	v.ClearBit(127)
	assert.True(t, v.IsZero())
}

func TestOnesAndIsMax(t *testing.T) {
	v := New(64)
	v.Ones()
	assert.True(t, v.IsMax())
	assert.Equal(t, 64, v.PopCount())

	v.ClearBit(0)
	assert.False(t, v.IsMax())
}

func TestAndOrXorAndNotNot(t *testing.T) {
	a := New(64)
	b := New(64)
	a.SetBit(0)
	a.SetBit(1)
	b.SetBit(1)
	b.SetBit(2)

	and := New(64)
	And(and, a, b)
	assert.True(t, and.Bit(1))
	assert.False(t, and.Bit(0))
	assert.False(t, and.Bit(2))

	or := New(64)
	Or(or, a, b)
	assert.True(t, or.Bit(0))
	assert.True(t, or.Bit(1))
	assert.True(t, or.Bit(2))

	xor := New(64)
	Xor(xor, a, b)
	assert.True(t, xor.Bit(0))
	assert.False(t, xor.Bit(1))
	assert.True(t, xor.Bit(2))

	andNot := New(64)
	AndNot(andNot, a, b)
	assert.True(t, andNot.Bit(0))
	assert.False(t, andNot.Bit(1))

	not := New(64)
	Not(not, a)
	assert.False(t, not.Bit(0))
	assert.False(t, not.Bit(1))
	assert.True(t, not.Bit(2))
}

func TestCopyCloneEqual(t *testing.T) {
	a := New(64)
	a.SetBit(10)

	clone := a.Clone()
	require.True(t, Equal(a, clone))
	clone.SetBit(11)
	assert.False(t, Equal(a, clone))

	b := New(64)
	Copy(b, a)
	assert.True(t, Equal(a, b))
}

func TestSetBitsEnumeratesAscending(t *testing.T) {
	v := New(128)
	v.SetBit(3)
	v.SetBit(64)
	v.SetBit(127)

	got := v.SetBits(nil)
	assert.Equal(t, []int{3, 64, 127}, got)
}

func TestBroadcast64(t *testing.T) {
	v := New(64)
	v.SetBit(2)
	assert.Equal(t, ^uint64(0), v.Broadcast64(2))
	assert.Equal(t, uint64(0), v.Broadcast64(3))
}

func TestRandFillsWords(t *testing.T) {
	v := New(128)
	v.Rand(xrand.New(1))
	assert.False(t, v.IsZero(), "a 128-bit random fill being all-zero is implausible")
}

func TestNewRejectsNonMultipleOf64(t *testing.T) {
	assert.Panics(t, func() { New(63) })
	assert.Panics(t, func() { New(0) })
}
