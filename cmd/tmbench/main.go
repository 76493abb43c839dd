// Command tmbench generates a synthetic stream of COBS-framed float
// samples and measures BinaryDecoder throughput, playing the offline
// synthetic-traffic role gen_packets.go plays for the audio modem: no
// hardware required, flags select the shape of the generated load.
package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/telemetryingest/core/internal/binarydecoder"
	"github.com/telemetryingest/core/internal/telemetrylog"
)

func main() {
	var frameCount = pflag.IntP("frame-count", "N", 100000, "Number of synthetic frames to generate")
	var chunkSize = pflag.IntP("chunk-size", "c", 4096, "Bytes per simulated read() call")
	var help = pflag.Bool("help", false, "Display help text")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - benchmark BinaryDecoder against a synthetic frame stream.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	var stream = generateStream(*frameCount)
	var bd = binarydecoder.New(telemetrylog.Nop)

	var start = time.Now()
	var total int
	for offset := 0; offset < len(stream); offset += *chunkSize {
		var end = offset + *chunkSize
		if end > len(stream) {
			end = len(stream)
		}
		total += len(bd.Process(stream[offset:end]))
	}
	var elapsed = time.Since(start)

	fmt.Printf("frames=%d decoded_samples=%d bytes=%d elapsed=%s rate=%.0f frames/s\n",
		*frameCount, total, len(stream), elapsed, float64(*frameCount)/elapsed.Seconds())
}

// generateStream builds frameCount COBS-framed {tag=10 (f32)} frames, a
// sine wave scaled into a plausible sensor range.
func generateStream(frameCount int) []byte {
	var out []byte
	for i := 0; i < frameCount; i++ {
		var v = float32(math.Sin(float64(i)/100) * 100)
		var body = make([]byte, 5)
		body[0] = 10
		binary.LittleEndian.PutUint32(body[1:], math.Float32bits(v))
		out = append(out, frameBytes(body)...)
	}
	return out
}

func frameBytes(body []byte) []byte {
	var encoded = cobsEncodeForBench(body)
	return append(encoded, 0x00)
}

// cobsEncodeForBench is a self-contained COBS encoder for generating test
// traffic; it intentionally does not import the decoder's internal codec,
// since a benchmark generator should not depend on the correctness of the
// thing it's measuring.
func cobsEncodeForBench(data []byte) []byte {
	var out = make([]byte, 0, len(data)+len(data)/254+2)
	var codeIdx = 0
	out = append(out, 0) // placeholder code byte
	var code byte = 1

	for _, b := range data {
		if b == 0 {
			out[codeIdx] = code
			codeIdx = len(out)
			out = append(out, 0)
			code = 1
			continue
		}
		out = append(out, b)
		code++
		if code == 0xFF {
			out[codeIdx] = code
			codeIdx = len(out)
			out = append(out, 0)
			code = 1
		}
	}
	out[codeIdx] = code

	return out
}
