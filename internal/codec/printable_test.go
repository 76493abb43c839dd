package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestPrintableCodecBaseIs190(t *testing.T) {
	var c = NewPrintableCodec()
	assert.Equal(t, 190, c.Base())
}

func TestPrintableCodecOnlyUsesPrintableChars(t *testing.T) {
	var c = NewPrintableCodec()

	var encoded = c.Encode([]byte{0xff, 0x00, 0x7f, 0x01}, 4)
	for _, r := range encoded {
		assert.True(t, (r >= 32 && r <= 126) || (r >= 161 && r <= 255), "rune %d not printable", r)
	}
}

func TestPrintableCodecRoundTrip(t *testing.T) {
	var c = NewPrintableCodec()

	var original = []byte{0xcd, 0xcc, 0xcc, 0xcc, 0xcc, 0x8c, 0x58, 0x40}
	var encoded = c.Encode(original, len(original))

	var decoded, err = c.Decode(encoded, len(original))
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestPrintableCodecDecodeRejectsForeignChar(t *testing.T) {
	var c = NewPrintableCodec()

	var _, err = c.Decode(string(rune(10)), 1) // newline is outside the alphabet
	require.ErrorIs(t, err, ErrInvalidChar)
}

func TestPrintableCodecEmptyInput(t *testing.T) {
	var c = NewPrintableCodec()

	assert.Equal(t, "", c.Encode(nil, 1))

	var decoded, err = c.Decode("", 1)
	require.NoError(t, err)
	assert.Nil(t, decoded)
}

func TestPrintableCodecRoundTripAllLengths(t *testing.T) {
	var c = NewPrintableCodec()

	rapid.Check(t, func(t *rapid.T) {
		var length = rapid.SampledFrom([]int{1, 2, 4, 8, 16}).Draw(t, "length")
		var original = rapid.SliceOfN(rapid.Byte(), length, length).Draw(t, "payload")

		var encoded = c.Encode(original, length)
		var decoded, err = c.Decode(encoded, length)
		require.NoError(t, err)

		assert.Equal(t, original, decoded)
	})
}
