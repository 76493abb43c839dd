// Package transport is a minimal serial-port byte pump feeding decoded
// bytes to a BinaryDecoder or TextDecoder. Per spec.md §1/§7 the core never
// owns I/O, device discovery, or reconnect policy — this package is a
// replaceable example collaborator, grounded the way cmd/can-server's
// backend_serial.go wires one up: open the port, read in a loop on the
// caller's goroutine, hand completed chunks to a decoder, and stop on context
// cancellation or a fatal read error.
//
// Two openers are provided: Open (github.com/tarm/serial, the primary path,
// following internal/serial/port.go's Port abstraction) and OpenRaw
// (github.com/pkg/term, adapted from the teacher's serial_port_open, kept
// as the low-level raw-mode opener on platforms without tarm/serial's
// termios support).
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pkg/term"
	"github.com/tarm/serial"

	"github.com/telemetryingest/core/internal/telemetrylog"
	"github.com/telemetryingest/core/internal/telemetrystats"
)

// Port abstracts a serial connection for testability, matching
// internal/serial/port.go's shape.
type Port interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}

// Open opens name at baud via tarm/serial, the primary path.
func Open(name string, baud int, readTimeout time.Duration) (Port, error) {
	var cfg = &serial.Config{Name: name, Baud: baud, ReadTimeout: readTimeout}
	var p, err = serial.OpenPort(cfg)
	if err != nil {
		return nil, fmt.Errorf("transport: opening %s: %w", name, err)
	}
	return p, nil
}

var supportedBauds = map[int]bool{
	1200: true, 2400: true, 4800: true, 9600: true,
	19200: true, 38400: true, 57600: true, 115200: true,
}

// termPort adapts *term.Term to Port (it already has matching Read/Write,
// but Close has no error-returning ambiguity here, so this is a thin
// pass-through).
type termPort struct{ t *term.Term }

func (p termPort) Read(b []byte) (int, error)  { return p.t.Read(b) }
func (p termPort) Write(b []byte) (int, error) { return p.t.Write(b) }
func (p termPort) Close() error                { return p.t.Close() }

// OpenRaw opens name in raw mode via pkg/term, adapted from
// serial_port_open: baud 0 leaves the device's current speed alone, an
// unsupported baud is rejected rather than silently substituted (the
// teacher's C-derived fallback to 4800 baud is a footgun this module
// doesn't reproduce).
func OpenRaw(name string, baud int) (Port, error) {
	var t, err = term.Open(name, term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("transport: opening %s raw: %w", name, err)
	}

	if baud != 0 {
		if !supportedBauds[baud] {
			t.Close()
			return nil, fmt.Errorf("transport: unsupported baud rate %d", baud)
		}
		if err := t.SetSpeed(baud); err != nil {
			t.Close()
			return nil, fmt.Errorf("transport: setting baud %d: %w", baud, err)
		}
	}

	return termPort{t: t}, nil
}

// Pump reads bytes from a Port in a loop (Run, on the caller's goroutine)
// and hands each completed read to feed — typically a BinaryDecoder's Process or a
// TextDecoder's Process, adapted to the func([]byte) error shape by the
// caller. It tracks received bytes in stats (nil disables this).
type Pump struct {
	port    Port
	feed    func([]byte) error
	stats   *telemetrystats.Throughput
	log     telemetrylog.Logger
	bufSize int
}

// NewPump builds a Pump. A nil log discards diagnostics; a nil stats skips
// throughput accounting.
func NewPump(port Port, feed func([]byte) error, stats *telemetrystats.Throughput, log telemetrylog.Logger) *Pump {
	if log == nil {
		log = telemetrylog.Nop
	}
	return &Pump{port: port, feed: feed, stats: stats, log: log, bufSize: 4096}
}

// Run blocks, reading from the port and feeding the decoder until ctx is
// canceled or the port reports a fatal error. It returns nil on a clean
// cancellation and the fatal error otherwise.
func (p *Pump) Run(ctx context.Context) error {
	var buf = make([]byte, p.bufSize)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		var n, err = p.port.Read(buf)
		if n > 0 {
			if p.stats != nil {
				p.stats.AddRx(n)
			}
			if feedErr := p.feed(buf[:n]); feedErr != nil {
				p.log.Error("transport: feed error", "error", feedErr)
			}
		}

		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, io.EOF) {
				continue
			}
			p.log.Error("transport: read error", "error", err)
			return fmt.Errorf("transport: read: %w", err)
		}
	}
}
