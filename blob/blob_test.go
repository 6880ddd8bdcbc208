package blob

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockIsEmpty(t *testing.T) {
	empty := Block{X: 10, Y: 20, Count: NoCount}
	assert.True(t, empty.IsEmpty())

	zero := Block{Count: NoCount}
	assert.True(t, zero.IsEmpty())

	seen := Block{Signature: 1, X: 10, Y: 20, Width: 5, Height: 6, Count: NoCount}
	assert.False(t, seen.IsEmpty())
	assert.Equal(t, 30, seen.Area())

	// Only one dimension zero is still a block.
	thin := Block{Width: 3}
	assert.False(t, thin.IsEmpty())
}

func TestBlockString(t *testing.T) {
	b := Block{Signature: 2, X: 1, Y: 2, Width: 3, Height: 4, Count: NoCount}
	assert.Equal(t, "sig: 2 x: 1 y: 2 width: 3 height: 4", b.String())

	b.Count = 5
	assert.Equal(t, "sig: 2 x: 1 y: 2 width: 3 height: 4 cnt: 5", b.String())

	cc := Block{Signature: 035, X: 1, Y: 2, Width: 3, Height: 4, Angle: -90, Count: NoCount}
	assert.Equal(t, "CC block sig: 35 (29 decimal) x: 1 y: 2 width: 3 height: 4 angle: -90", cc.String())
}

func TestListBiggest(t *testing.T) {
	l := List{Total: 2, Blocks: []Block{
		{Count: NoCount},
		{Signature: 3, Width: 10, Height: 10, Count: NoCount},
		{Signature: 4, Width: 5, Height: 5, Count: NoCount},
	}}

	b, ok := l.Biggest()
	require.True(t, ok)
	assert.Equal(t, Signature(3), b.Signature)
	assert.Len(t, l.Detected(), 2)

	_, ok = List{}.Biggest()
	assert.False(t, ok)
}

func TestListBiggestUnsorted(t *testing.T) {
	l := List{Total: 3, Blocks: []Block{
		{Signature: 1, Width: 10, Height: 10, Count: NoCount},
		{Signature: 035, Width: 30, Height: 20, Count: NoCount},
		{Signature: 2, Width: 20, Height: 30, Count: NoCount},
	}}

	b, ok := l.Biggest()
	require.True(t, ok)
	assert.Equal(t, Signature(035), b.Signature, "largest area wins, earlier block on ties")

	_, ok = List{Blocks: []Block{{Count: NoCount}}}.Biggest()
	assert.False(t, ok)
}

func TestCheckSignature(t *testing.T) {
	for sig := MinSignature; sig <= MaxSignature; sig++ {
		assert.NoError(t, CheckSignature(sig), "signature %d", sig)
	}
	for _, sig := range []int{0, 8, -1, 255} {
		err := CheckSignature(sig)
		var rangeErr *OutOfRangeError
		require.True(t, errors.As(err, &rangeErr), "signature %d", sig)
		assert.Equal(t, sig, rangeErr.Signature)
	}
}

func TestColorCodeRoundTrip(t *testing.T) {
	tests := [][]int{
		{3, 5},
		{1, 2, 3},
		{7, 7, 7, 7, 7},
		{1},
	}
	for _, digits := range tests {
		sig, err := ColorCode(digits...)
		require.NoError(t, err)
		assert.Equal(t, digits, sig.Digits())
	}

	sig, err := ColorCode(3, 5)
	require.NoError(t, err)
	assert.Equal(t, Signature(035), sig)
	assert.True(t, sig.IsColorCode())
	assert.Equal(t, "35", sig.String())
}

func TestColorCodeInvalid(t *testing.T) {
	_, err := ColorCode()
	assert.Error(t, err)

	_, err = ColorCode(1, 2, 3, 4, 5, 6)
	assert.Error(t, err)

	_, err = ColorCode(3, 0)
	var rangeErr *OutOfRangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestSignatureDigitsSkipsLeadingZeros(t *testing.T) {
	assert.Equal(t, []int{1, 0, 2}, Signature(0102).Digits())
	assert.Empty(t, Signature(0).Digits())
	assert.Equal(t, "0", Signature(0).String())
	assert.False(t, Signature(7).IsColorCode())
}

func TestParseSignature(t *testing.T) {
	sig, err := ParseSignature("4")
	require.NoError(t, err)
	assert.Equal(t, Signature(4), sig)

	sig, err = ParseSignature("CC35")
	require.NoError(t, err)
	assert.Equal(t, Signature(035), sig)

	_, err = ParseSignature("9")
	assert.Error(t, err)
	_, err = ParseSignature("cc3x")
	assert.Error(t, err)
	_, err = ParseSignature("red")
	assert.Error(t, err)
}

func TestRGBClamp(t *testing.T) {
	var c RGB
	c.SetR(300)
	assert.Equal(t, uint8(255), c.R())
	c.SetR(-10)
	assert.Equal(t, uint8(0), c.R())

	c.Set(12, 256, -1)
	assert.Equal(t, [3]int{12, 255, 0}, c.Color())

	// Clamping an in-range value leaves it unchanged.
	for _, v := range []int{0, 1, 128, 254, 255} {
		c.SetG(v)
		assert.Equal(t, uint8(v), c.G())
		c.SetG(int(c.G()))
		assert.Equal(t, uint8(v), c.G())
	}

	c.SetColor([3]int{1000, 20, 30})
	assert.Equal(t, [3]int{255, 20, 30}, c.Color())

	assert.Equal(t, [3]int{0, 128, 255}, NewRGB(-5, 128, 999).Color())
}

func TestRGBPacked(t *testing.T) {
	var c RGB
	c.SetPacked(0x12abef)
	assert.Equal(t, uint8(0x12), c.R())
	assert.Equal(t, uint8(0xab), c.G())
	assert.Equal(t, uint8(0xef), c.B())
	assert.Equal(t, uint32(0x12abef), c.Packed())

	c.SetPacked(0xff000001)
	assert.Equal(t, [3]int{0, 0, 1}, c.Color())
}
