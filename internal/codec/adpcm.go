package codec

import "errors"

// stepSizeTable is the standard IMA ADPCM step-size table, indexed by the
// quantizer index; it mirrors ADPCMCodec.STEP_SIZE_TABLE byte for byte.
var stepSizeTable = [89]int32{
	7, 8, 9, 10, 11, 12, 13, 14, 16, 17,
	19, 21, 23, 25, 28, 31, 34, 37, 41, 45,
	50, 55, 60, 66, 73, 80, 88, 97, 107, 118,
	130, 143, 157, 173, 190, 209, 230, 253, 279, 307,
	337, 371, 408, 449, 494, 544, 598, 658, 724, 796,
	876, 963, 1060, 1166, 1282, 1411, 1552, 1707, 1878, 2066,
	2272, 2499, 2749, 3024, 3327, 3660, 4026, 4428, 4871, 5358,
	5894, 6484, 7132, 7845, 8630, 9493, 10442, 11487, 12635, 13899,
	15289, 16818, 18500, 20350, 22385, 24623, 27086, 29794, 32767,
}

// indexTable adjusts the quantizer index per 4-bit nibble, mirroring
// ADPCMCodec.INDEX_TABLE.
var indexTable = [16]int32{
	-1, -1, -1, -1, 2, 4, 6, 8,
	-1, -1, -1, -1, 2, 4, 6, 8,
}

// ErrInvalidChannels is returned by NewAdpcmCodec for channel counts other
// than 1 (mono) or 2 (stereo).
var ErrInvalidChannels = errors.New("codec: adpcm channels must be 1 or 2")

// ErrInvalidSampleWidth is returned by NewAdpcmCodec for sample widths other
// than 8 or 16 bits.
var ErrInvalidSampleWidth = errors.New("codec: adpcm sample width must be 8 or 16")

// adpcmState is the per-channel predictor/quantizer-index pair carried
// across samples of a single Encode or Decode call. State is reset to zero
// at the start of every call, matching the Python codec's per-call
// reinitialization — there is no state retained between calls.
type adpcmState struct {
	predictor int32
	index     int32
}

func (s *adpcmState) encodeSample(sample int16) byte {
	var step = stepSizeTable[s.index]

	var diff = int32(sample) - s.predictor
	var sign byte
	if diff < 0 {
		sign = 8
		diff = -diff
	}

	var delta byte
	var tmpStep = step
	if diff >= tmpStep {
		delta |= 4
		diff -= tmpStep
	}
	tmpStep >>= 1
	if diff >= tmpStep {
		delta |= 2
		diff -= tmpStep
	}
	tmpStep >>= 1
	if diff >= tmpStep {
		delta |= 1
	}

	var nibble = sign | delta

	var diffq = step >> 3
	if delta&4 != 0 {
		diffq += step
	}
	if delta&2 != 0 {
		diffq += step >> 1
	}
	if delta&1 != 0 {
		diffq += step >> 2
	}

	if sign != 0 {
		s.predictor -= diffq
	} else {
		s.predictor += diffq
	}
	s.predictor = clampInt32(s.predictor, -32768, 32767)

	s.index = clampInt32(s.index+indexTable[nibble], 0, 88)

	return nibble
}

func (s *adpcmState) decodeNibble(nibble byte) int16 {
	var step = stepSizeTable[s.index]

	var diff = step >> 3
	if nibble&4 != 0 {
		diff += step
	}
	if nibble&2 != 0 {
		diff += step >> 1
	}
	if nibble&1 != 0 {
		diff += step >> 2
	}

	if nibble&8 != 0 {
		s.predictor -= diff
	} else {
		s.predictor += diff
	}
	s.predictor = clampInt32(s.predictor, -32768, 32767)

	s.index = clampInt32(s.index+indexTable[nibble], 0, 88)

	return int16(s.predictor)
}

func clampInt32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AdpcmCodec implements IMA ADPCM 4:1 compression over interleaved,
// multi-channel PCM. It mirrors helpers/Codec_helper.py's ADPCMCodec:
// channel count and sample width are fixed at construction, and predictor/
// index state is local to one Encode/Decode call (never carried across
// calls), so every call is self-contained and order-independent across
// separate streams.
type AdpcmCodec struct {
	channels    int
	sampleWidth int
}

// NewAdpcmCodec builds a codec for the given channel count (1 or 2) and
// sample width in bits (8 or 16).
func NewAdpcmCodec(channels, sampleWidth int) (*AdpcmCodec, error) {
	if channels != 1 && channels != 2 {
		return nil, ErrInvalidChannels
	}
	if sampleWidth != 8 && sampleWidth != 16 {
		return nil, ErrInvalidSampleWidth
	}

	return &AdpcmCodec{channels: channels, sampleWidth: sampleWidth}, nil
}

// Channels returns the configured channel count.
func (c *AdpcmCodec) Channels() int {
	return c.channels
}

// SampleWidth returns the configured sample width in bits.
func (c *AdpcmCodec) SampleWidth() int {
	return c.sampleWidth
}

// Encode compresses interleaved int16 PCM samples (one slot per channel,
// round-robin) into packed 4-bit ADPCM nibbles, two nibbles per output byte,
// low nibble first.
func (c *AdpcmCodec) Encode(samples []int16) []byte {
	if len(samples) == 0 {
		return nil
	}

	var states = make([]adpcmState, c.channels)
	var out = make([]byte, 0, (len(samples)+1)/2)

	var pending byte
	var havePending bool

	for i, sample := range samples {
		var ch = i % c.channels
		var nibble = states[ch].encodeSample(sample)

		if !havePending {
			pending = nibble
			havePending = true
		} else {
			out = append(out, pending|(nibble<<4))
			havePending = false
		}
	}

	if havePending {
		out = append(out, pending)
	}

	return out
}

// Decode expands packed ADPCM nibbles back into numSamples interleaved int16
// PCM samples. numSamples must not exceed len(encoded)*2.
func (c *AdpcmCodec) Decode(encoded []byte, numSamples int) []int16 {
	if numSamples <= 0 || len(encoded) == 0 {
		return nil
	}
	if numSamples > len(encoded)*2 {
		numSamples = len(encoded) * 2
	}

	var states = make([]adpcmState, c.channels)
	var out = make([]int16, numSamples)

	for i := 0; i < numSamples; i++ {
		var b = encoded[i/2]
		var nibble byte
		if i%2 == 0 {
			nibble = b & 0x0f
		} else {
			nibble = (b >> 4) & 0x0f
		}

		var ch = i % c.channels
		out[i] = states[ch].decodeNibble(nibble)
	}

	return out
}

// EncodeBytes encodes raw PCM bytes (unsigned centered-at-128 for an 8-bit
// width, little-endian signed for a 16-bit width) rather than pre-converted
// int16 samples, for callers that only have wire bytes.
func (c *AdpcmCodec) EncodeBytes(pcm []byte) ([]byte, error) {
	var samples, err = c.bytesToSamples(pcm)
	if err != nil {
		return nil, err
	}
	return c.Encode(samples), nil
}

// DecodeBytes decodes packed ADPCM nibbles directly into raw PCM bytes in
// this codec's configured sample width.
func (c *AdpcmCodec) DecodeBytes(encoded []byte, numSamples int) []byte {
	var samples = c.Decode(encoded, numSamples)
	return c.samplesToBytes(samples)
}

// ErrBadPCMLength is returned by EncodeBytes when the input length is not
// consistent with the codec's sample width.
var ErrBadPCMLength = errors.New("codec: pcm byte length inconsistent with sample width")

func (c *AdpcmCodec) bytesToSamples(pcm []byte) ([]int16, error) {
	if c.sampleWidth == 8 {
		var samples = make([]int16, len(pcm))
		for i, v := range pcm {
			samples[i] = (int16(v) - 128) << 8
		}
		return samples, nil
	}

	if len(pcm)%2 != 0 {
		return nil, ErrBadPCMLength
	}
	var samples = make([]int16, len(pcm)/2)
	for i := range samples {
		samples[i] = int16(uint16(pcm[2*i]) | uint16(pcm[2*i+1])<<8)
	}
	return samples, nil
}

func (c *AdpcmCodec) samplesToBytes(samples []int16) []byte {
	if c.sampleWidth == 8 {
		var out = make([]byte, len(samples))
		for i, s := range samples {
			var v = clampInt32(int32(s>>8)+128, 0, 255)
			out[i] = byte(v)
		}
		return out
	}

	var out = make([]byte, len(samples)*2)
	for i, s := range samples {
		out[2*i] = byte(uint16(s))
		out[2*i+1] = byte(uint16(s) >> 8)
	}
	return out
}
