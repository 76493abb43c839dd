package binarydecoder

import (
	"bytes"
	"compress/zlib"
	"errors"
	"io"
	"time"

	"github.com/telemetryingest/core/internal/codec"
	"github.com/telemetryingest/core/internal/telemetrylog"
)

// maxRecursionDepth bounds nested compressed-frame decoding (spec.md §3,
// §4.F): a frame may itself decompress into further COBS frames, which may
// again be compressed, but not indefinitely.
const maxRecursionDepth = 3

// ErrUnsupportedCompression is returned for tag 253 (tamp). No ecosystem Go
// implementation of the tamp format exists in the example corpus or the
// broader Go ecosystem this module draws from; rather than vendor an
// unverified reimplementation, the dispatch path is wired (tag, depth
// bookkeeping, per-frame recovery) and the decompression step itself
// reports DecompressionError. See DESIGN.md.
var ErrUnsupportedCompression = errors.New("binarydecoder: tamp decompression not supported")

// EopByte is the fixed binary end-of-packet marker (spec.md §6).
const EopByte = 0x00

// BinaryDecoder turns a raw byte stream into typed Sample records: COBS
// frame extraction, optional zlib/tamp decompression, and tag dispatch
// through the type registry. It mirrors the accumulate/split/keep-partial
// shape of kiss_frame.go's frame reader, generalized from FEND-delimited
// AX.25 frames to 0x00-delimited COBS frames.
type BinaryDecoder struct {
	partial []byte
	clock   func() int64

	registry map[byte]RegistryEntry
	logger   telemetrylog.Logger

	adpcmMono8    *codec.AdpcmCodec
	adpcmStereo8  *codec.AdpcmCodec
	adpcmMono16   *codec.AdpcmCodec
	adpcmStereo16 *codec.AdpcmCodec
}

// New builds a BinaryDecoder with the full static type registry and a
// logger for per-frame diagnostics. A nil logger uses telemetrylog.Nop.
func New(logger telemetrylog.Logger) *BinaryDecoder {
	if logger == nil {
		logger = telemetrylog.Nop
	}

	var mono8, _ = codec.NewAdpcmCodec(1, 8)
	var stereo8, _ = codec.NewAdpcmCodec(2, 8)
	var mono16, _ = codec.NewAdpcmCodec(1, 16)
	var stereo16, _ = codec.NewAdpcmCodec(2, 16)

	return &BinaryDecoder{
		clock:         func() int64 { return time.Now().UnixNano() },
		registry:      buildRegistry(),
		logger:        logger,
		adpcmMono8:    mono8,
		adpcmStereo8:  stereo8,
		adpcmMono16:   mono16,
		adpcmStereo16: stereo16,
	}
}

func (d *BinaryDecoder) adpcmFor(channels, sampleWidth int) *codec.AdpcmCodec {
	switch {
	case channels == 1 && sampleWidth == 8:
		return d.adpcmMono8
	case channels == 2 && sampleWidth == 8:
		return d.adpcmStereo8
	case channels == 1 && sampleWidth == 16:
		return d.adpcmMono16
	default:
		return d.adpcmStereo16
	}
}

// Process appends data to the partial-packet accumulator, extracts every
// complete 0x00-terminated frame, and returns the Samples decoded from
// them in stream order. Bytes after the last 0x00 are kept for the next
// call.
func (d *BinaryDecoder) Process(data []byte) []Sample {
	d.partial = append(d.partial, data...)

	var samples []Sample

	for {
		var idx = bytes.IndexByte(d.partial, EopByte)
		if idx < 0 {
			break
		}

		var frame = d.partial[:idx]
		d.partial = d.partial[idx+1:]

		samples = append(samples, d.processFrame(frame, 0)...)
	}

	return samples
}

// processFrame COBS-decodes one frame and dispatches it by tag, recursing
// into decompressed bodies up to maxRecursionDepth. Any failure at any
// stage is logged and the frame is dropped; it never stops the batch.
func (d *BinaryDecoder) processFrame(frame []byte, depth int) []Sample {
	if len(frame) == 0 {
		return nil
	}

	var decoded, err = cobsDecode(frame)
	if err != nil {
		d.logger.Warn("cobs decode failed", "err", err)
		return nil
	}
	if len(decoded) == 0 {
		return nil
	}

	var tag = decoded[0]
	var body = decoded[1:]

	switch {
	case tag == 252:
		return d.processCompressed(body, depth, zlibInflate)
	case tag == 253:
		return d.processCompressed(body, depth, tampInflate)
	case tag == 254:
		return d.processExtension(body)
	case int(tag) <= 249:
		return d.dispatch(tag, body)
	default:
		d.logger.Warn("dropping frame with unassigned tag", "tag", tag)
		return nil
	}
}

func (d *BinaryDecoder) processCompressed(body []byte, depth int, inflate func([]byte) ([]byte, error)) []Sample {
	if depth >= maxRecursionDepth {
		d.logger.Warn("dropping compressed frame: recursion depth exceeded", "depth", depth)
		return nil
	}

	var inner, err = inflate(body)
	if err != nil {
		d.logger.Warn("decompression failed", "err", err)
		return nil
	}

	var samples []Sample
	for {
		var idx = bytes.IndexByte(inner, EopByte)
		if idx < 0 {
			break
		}
		samples = append(samples, d.processFrame(inner[:idx], depth+1)...)
		inner = inner[idx+1:]
	}
	return samples
}

func (d *BinaryDecoder) processExtension(body []byte) []Sample {
	if len(body) == 0 {
		d.logger.Warn("dropping empty extension frame")
		return nil
	}

	var secondaryTag = body[0]
	var rest = body[1:]

	entry, ok := d.registry[secondaryTag]
	if !ok {
		d.logger.Warn("unknown extension secondary tag", "tag", secondaryTag)
		return nil
	}

	var payload, err = entry.Decode(rest, d)
	if err != nil {
		d.logger.Warn("extension typed decode failed", "tag", secondaryTag, "err", err)
		return nil
	}

	return []Sample{{Tag: secondaryTag, Name: entry.Name, Payload: payload, Timestamp: d.clock()}}
}

func (d *BinaryDecoder) dispatch(tag byte, body []byte) []Sample {
	var entry, ok = d.registry[tag]
	if !ok {
		// Unassigned slot: no-op decoder, per spec.md §4.G.
		return nil
	}

	var payload, err = entry.Decode(body, d)
	if err != nil {
		d.logger.Warn("typed decode failed", "tag", tag, "name", entry.Name, "err", err)
		return nil
	}

	return []Sample{{Tag: tag, Name: entry.Name, Payload: payload, Timestamp: d.clock()}}
}

func zlibInflate(body []byte) ([]byte, error) {
	var r, err = zlib.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}

func tampInflate(_ []byte) ([]byte, error) {
	return nil, ErrUnsupportedCompression
}
