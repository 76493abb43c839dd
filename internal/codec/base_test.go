package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewBaseCodecRejectsOutOfRangeBase(t *testing.T) {
	var _, err = NewBaseCodec(1)
	require.Error(t, err)

	_, err = NewBaseCodec(256)
	require.Error(t, err)
}

// TestBaseCodecDoubleRoundTrip reproduces the literal scenario: the IEEE-754
// little-endian bytes of 98.2 as an 8-byte payload, base 254.
func TestBaseCodecDoubleRoundTrip(t *testing.T) {
	var c, err = NewBaseCodec(254)
	require.NoError(t, err)

	var original = []byte{0xcd, 0xcc, 0xcc, 0xcc, 0xcc, 0x8c, 0x58, 0x40}

	var digits = c.Encode(original, len(original))
	var decoded, decErr = c.Decode(digits, len(original))
	require.NoError(t, decErr)

	assert.Equal(t, original, decoded)
}

func TestBaseCodecDecodeRejectsInvalidDigit(t *testing.T) {
	var c, err = NewBaseCodec(10)
	require.NoError(t, err)

	var _, decErr = c.Decode([]byte{1, 2, 200}, 2)
	require.ErrorIs(t, decErr, ErrInvalidDigit)
}

func TestBaseCodecEmptyInput(t *testing.T) {
	var c, err = NewBaseCodec(240)
	require.NoError(t, err)

	assert.Nil(t, c.Encode(nil, 1))

	var decoded, decErr = c.Decode(nil, 1)
	require.NoError(t, decErr)
	assert.Nil(t, decoded)
}

// TestBaseCodecRoundTripAllLengths covers spec's property: decode(encode(x,
// L), L) == x for every L in {1,2,4,8,16} and every base in [2,255].
func TestBaseCodecRoundTripAllLengths(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var base = rapid.IntRange(2, 255).Draw(t, "base")
		var length = rapid.SampledFrom([]int{1, 2, 4, 8, 16}).Draw(t, "length")

		var c, err = NewBaseCodec(base)
		require.NoError(t, err)

		var original = rapid.SliceOfN(rapid.Byte(), length, length).Draw(t, "payload")

		var digits = c.Encode(original, length)
		var decoded, decErr = c.Decode(digits, length)
		require.NoError(t, decErr)

		assert.Equal(t, original, decoded)
	})
}

func TestBaseCodecDigitCountIsStable(t *testing.T) {
	var c, err = NewBaseCodec(16)
	require.NoError(t, err)

	// base 16, length 1: max value 255, ceil(log16(256)) == 2.
	assert.Equal(t, 2, c.computeDigits(1))
}
