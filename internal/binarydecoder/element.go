package binarydecoder

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrTypeDecode covers body-length and range failures in typed decoding:
// wrong element size, non-multiple vector length, out-of-range nibble or
// palette index. Per spec, this is per-frame: the caller logs and drops the
// frame, it never aborts the batch.
var ErrTypeDecode = errors.New("binarydecoder: typed decode failed")

// elementSize returns the wire size in bytes of one scalar of kind k.
func elementSize(k ElementKind) int {
	switch k {
	case ElementU8, ElementI8, ElementBool:
		return 1
	case ElementU16, ElementI16:
		return 2
	case ElementU32, ElementI32, ElementF32:
		return 4
	case ElementU64, ElementI64, ElementF64:
		return 8
	default:
		return 0
	}
}

// decodeElement reads one little-endian scalar of kind k from exactly
// elementSize(k) bytes and returns it widened to float64.
func decodeElement(b []byte, k ElementKind) float64 {
	switch k {
	case ElementU8, ElementBool:
		return float64(b[0])
	case ElementI8:
		return float64(int8(b[0]))
	case ElementU16:
		return float64(binary.LittleEndian.Uint16(b))
	case ElementI16:
		return float64(int16(binary.LittleEndian.Uint16(b)))
	case ElementU32:
		return float64(binary.LittleEndian.Uint32(b))
	case ElementI32:
		return float64(int32(binary.LittleEndian.Uint32(b)))
	case ElementU64:
		return float64(binary.LittleEndian.Uint64(b))
	case ElementI64:
		return float64(int64(binary.LittleEndian.Uint64(b)))
	case ElementF32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	case ElementF64:
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	default:
		return 0
	}
}
