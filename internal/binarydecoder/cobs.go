// Package binarydecoder turns a raw byte stream into typed, timestamped
// samples: COBS frame extraction, optional zlib/tamp decompression, and
// dispatch through a ~220-entry tag registry.
//
// The outer framing state machine (accumulate, split on a terminator byte,
// keep the trailing partial segment for next time) follows the same shape
// as kiss_frame.go's FEND-delimited KISS frame reader; COBS itself replaces
// KISS's FEND/FESC escaping with length-prefixed zero-elimination, per the
// wire format this decoder actually speaks.
package binarydecoder

import "errors"

// ErrEmptyFrame is returned by cobsDecode for a zero-length input.
var ErrEmptyFrame = errors.New("binarydecoder: empty cobs frame")

// ErrZeroCodeByte is returned by cobsDecode when a code byte is 0, which
// COBS never produces — a literal 0x00 inside an encoded frame means the
// frame is corrupt.
var ErrZeroCodeByte = errors.New("binarydecoder: zero code byte in cobs frame")

// ErrTruncatedFrame is returned by cobsDecode when a code byte claims more
// data than remains in the input.
var ErrTruncatedFrame = errors.New("binarydecoder: truncated cobs frame")

// cobsEncode applies Consistent Overhead Byte Stuffing to data, producing a
// byte stream containing no 0x00 (the caller appends the 0x00 terminator
// separately when framing the packet).
func cobsEncode(data []byte) []byte {
	var encoded = make([]byte, 0, len(data)+len(data)/254+2)
	encoded = append(encoded, 0) // placeholder code byte
	var insertIndex = 0

	for _, b := range data {
		if b == 0 {
			encoded[insertIndex] = byte(len(encoded) - insertIndex)
			insertIndex = len(encoded)
			encoded = append(encoded, 0)
			continue
		}

		encoded = append(encoded, b)
		if len(encoded)-insertIndex == 0xFF {
			encoded[insertIndex] = 0xFF
			insertIndex = len(encoded)
			encoded = append(encoded, 0)
		}
	}

	encoded[insertIndex] = byte(len(encoded) - insertIndex)
	return encoded
}

// cobsDecode reverses cobsEncode. data must not include the 0x00 frame
// terminator.
func cobsDecode(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFrame
	}

	var decoded = make([]byte, 0, len(data))
	var i = 0

	for i < len(data) {
		var code = int(data[i])
		if code == 0 {
			return nil, ErrZeroCodeByte
		}

		var j = i + 1
		for ; j < i+code; j++ {
			if j >= len(data) {
				return nil, ErrTruncatedFrame
			}
			decoded = append(decoded, data[j])
		}

		i += code
		if code < 0xFF && i < len(data) {
			decoded = append(decoded, 0)
		}
	}

	return decoded, nil
}
