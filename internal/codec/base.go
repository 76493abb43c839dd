// Package codec holds the small, self-contained byte-level codecs consumed
// by the binary stream decoder: base-N digit encoding, a printable-ASCII
// variant of it, run-length encoding, and IMA ADPCM.
//
// These mirror helpers/Codec_helper.py's GeneralCodec, PrintableCodec,
// Compressor (rle branch), and ADPCMCodec one-to-one. Values are handled
// with math/big rather than a fixed-width integer because spec.md's
// round-trip property covers byte lengths up to 16 (128 bits), wider than a
// uint64.
package codec

import (
	"errors"
	"math"
	"math/big"
)

// ErrInvalidDigit is returned by BaseCodec.Decode when an input digit is >=
// the configured base.
var ErrInvalidDigit = errors.New("codec: digit out of range for base")

// BaseCodec encodes an unsigned big-endian byte integer into a fixed number
// of base-B digits (one digit per output byte, value in [0, B)).
type BaseCodec struct {
	base        int
	digitsCache map[int]int
}

// NewBaseCodec builds a BaseCodec for 2 <= base <= 255.
func NewBaseCodec(base int) (*BaseCodec, error) {
	if base < 2 || base > 255 {
		return nil, errors.New("codec: base must be between 2 and 255 inclusive")
	}

	var c = &BaseCodec{base: base, digitsCache: make(map[int]int)}
	for _, length := range []int{1, 2, 4, 8, 16} {
		c.computeDigits(length)
	}
	return c, nil
}

// Base returns the codec's configured base.
func (c *BaseCodec) Base() int {
	return c.base
}

// computeDigits returns D = ceil(length*log_base(256)), the number of digits
// needed to represent any unsigned integer of `length` bytes.
func (c *BaseCodec) computeDigits(length int) int {
	return computeDigits(c.digitsCache, length, c.base)
}

func computeDigits(cache map[int]int, length, base int) int {
	if d, ok := cache[length]; ok {
		return d
	}
	if length <= 0 {
		cache[length] = 0
		return 0
	}

	var maxVal = maxUintValue(length)
	var digits int
	if maxVal.Sign() == 0 {
		digits = 1
	} else {
		// max_digits = ceil(log_base(max_val + 1))
		var maxValPlus1 = new(big.Float).SetInt(new(big.Int).Add(maxVal, big.NewInt(1)))
		var logMaxVal, _ = maxValPlus1.Float64()
		digits = int(math.Ceil(math.Log(logMaxVal) / math.Log(float64(base))))
	}

	cache[length] = digits
	return digits
}

func maxUintValue(length int) *big.Int {
	var v = new(big.Int).Lsh(big.NewInt(1), uint(8*length))
	return v.Sub(v, big.NewInt(1))
}

// Encode converts data (big-endian unsigned) into D digit bytes, left-padded
// with zero digits, where D = computeDigits(length).
func (c *BaseCodec) Encode(data []byte, length int) []byte {
	if len(data) == 0 {
		return nil
	}

	var digits = c.computeDigits(length)
	return encodeBigEndianDigits(data, c.base, digits)
}

// Decode converts D base digit bytes back into `length` big-endian bytes.
// It fails if any digit is >= the configured base.
func (c *BaseCodec) Decode(digits []byte, length int) ([]byte, error) {
	if len(digits) == 0 {
		return nil, nil
	}

	for _, d := range digits {
		if int(d) >= c.base {
			return nil, ErrInvalidDigit
		}
	}

	return decodeDigitsBig(digits, c.base, length), nil
}

// decodeDigitsBig folds a slice of base-N digit values (most significant
// first) into a big.Int and renders it as `length` big-endian bytes. Shared
// by BaseCodec and PrintableCodec, whose only difference is the alphabet
// used to get from wire bytes/chars to digit values.
func decodeDigitsBig(digits []byte, base, length int) []byte {
	var value = new(big.Int)
	var baseBig = big.NewInt(int64(base))
	for _, d := range digits {
		value.Mul(value, baseBig)
		value.Add(value, big.NewInt(int64(d)))
	}

	return bigIntToBigEndian(value, length)
}

// encodeBigEndianDigits interprets data as a big-endian unsigned integer,
// then emits exactly `digits` base-N digit values (most significant first).
func encodeBigEndianDigits(data []byte, base int, digits int) []byte {
	var value = new(big.Int).SetBytes(data)
	var baseBig = big.NewInt(int64(base))

	var out = make([]byte, digits)

	var idx = digits - 1
	var mod = new(big.Int)
	for value.Sign() > 0 && idx >= 0 {
		value.DivMod(value, baseBig, mod)
		out[idx] = byte(mod.Int64())
		idx--
	}

	return out
}

func bigIntToBigEndian(value *big.Int, length int) []byte {
	var raw = value.Bytes()
	var out = make([]byte, length)
	if len(raw) > length {
		raw = raw[len(raw)-length:]
	}
	copy(out[length-len(raw):], raw)
	return out
}
