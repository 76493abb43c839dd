package binarydecoder

import (
	"encoding/binary"
)

// audioRawDecoder builds a decoder for tags 200-203: raw (non-ADPCM) PCM,
// channels interleaved, sampleWidth bits per sample. 8-bit audio is signed
// i8 (handle_int8 in the source, not 8-bit-unsigned-centered WAV PCM).
func audioRawDecoder(channels, sampleWidth int) func([]byte, *BinaryDecoder) (Payload, error) {
	return func(body []byte, _ *BinaryDecoder) (Payload, error) {
		var bytesPerSample = sampleWidth / 8
		if len(body) == 0 || len(body)%(bytesPerSample*channels) != 0 {
			return Payload{}, ErrTypeDecode
		}

		var n = len(body) / bytesPerSample
		var samples = make([]int16, n)

		if sampleWidth == 8 {
			for i, v := range body {
				samples[i] = int16(int8(v))
			}
		} else {
			for i := 0; i < n; i++ {
				samples[i] = int16(binary.LittleEndian.Uint16(body[i*2 : i*2+2]))
			}
		}

		var kind = PayloadAudioMono16
		if channels == 2 {
			kind = PayloadAudioStereo16
		}
		return Payload{Kind: kind, AudioChannels: channels, AudioSamples: samples}, nil
	}
}

// audioAdpcmDecoder builds a decoder for tags 204-207: IMA ADPCM-packed
// audio, dispatching to the BinaryDecoder's shared per-shape AdpcmCodec
// (its predictor/index state always resets at the start of Decode, so
// sharing the instance across frames is safe).
func audioAdpcmDecoder(channels, sampleWidth int) func([]byte, *BinaryDecoder) (Payload, error) {
	return func(body []byte, d *BinaryDecoder) (Payload, error) {
		if len(body) < 2 {
			return Payload{}, ErrTypeDecode
		}

		// First two bytes (little-endian u16) carry the per-channel sample
		// count, since nibble count alone can't disambiguate an odd final
		// half-byte from padding.
		var numSamples = int(binary.LittleEndian.Uint16(body[:2])) * channels
		var nibbles = body[2:]

		var c = d.adpcmFor(channels, sampleWidth)
		if numSamples <= 0 || numSamples > len(nibbles)*2 {
			return Payload{}, ErrTypeDecode
		}

		var samples = c.Decode(nibbles, numSamples)

		var kind = PayloadAudioMono16
		if channels == 2 {
			kind = PayloadAudioStereo16
		}
		return Payload{Kind: kind, AudioChannels: channels, AudioSamples: samples}, nil
	}
}
