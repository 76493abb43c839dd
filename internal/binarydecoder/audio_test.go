package binarydecoder

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemetryingest/core/internal/codec"
)

func TestAudioRawMono16(t *testing.T) {
	var decode = audioRawDecoder(1, 16)

	var body = make([]byte, 4)
	binary.LittleEndian.PutUint16(body[0:2], uint16(int16(1000)))
	binary.LittleEndian.PutUint16(body[2:4], uint16(int16(-1000)))

	var payload, err = decode(body, nil)
	require.NoError(t, err)
	assert.Equal(t, PayloadAudioMono16, payload.Kind)
	assert.Equal(t, []int16{1000, -1000}, payload.AudioSamples)
}

func TestAudioRawMono8IsSignedNotCentered(t *testing.T) {
	var decode = audioRawDecoder(1, 8)

	// 0x7F = int8 127, 0x80 = int8 -128, 0x01 = int8 1.
	var payload, err = decode([]byte{0x7F, 0x80, 0x01}, nil)
	require.NoError(t, err)
	assert.Equal(t, PayloadAudioMono16, payload.Kind)
	assert.Equal(t, []int16{127, -128, 1}, payload.AudioSamples)
}

func TestAudioAdpcmMono16RoundTripsThroughDecoder(t *testing.T) {
	var d = New(nil)

	var c, err = codec.NewAdpcmCodec(1, 16)
	require.NoError(t, err)

	var samples = []int16{100, 200, 300, -400, 500}
	var nibbles = c.Encode(samples)

	var header = make([]byte, 2)
	binary.LittleEndian.PutUint16(header, uint16(len(samples)))
	var body = append(header, nibbles...)

	var decode = audioAdpcmDecoder(1, 16)
	var payload, decErr = decode(body, d)
	require.NoError(t, decErr)
	assert.Equal(t, PayloadAudioMono16, payload.Kind)
	assert.Len(t, payload.AudioSamples, len(samples))
}

func TestAudioAdpcmSharesDecoderCodecInstance(t *testing.T) {
	var d = New(nil)
	assert.Same(t, d.adpcmFor(1, 16), d.adpcmFor(1, 16))
	assert.NotSame(t, d.adpcmFor(1, 16), d.adpcmFor(2, 16))
}
