// Package telemetrylog is a thin wrapper around charmbracelet/log giving every
// codec and decoder in this module a common, leveled logger to report
// per-frame and per-line errors without interrupting a batch.
//
// It plays the role the Dire Wolf C code gave to textcolor.c/dw_printf: a
// single place to set a verbosity level and format messages, except here it
// is backed by a real structured logger instead of ANSI color codes.
package telemetrylog

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the interface codecs and decoders depend on. It is satisfied by
// *log.Logger, and by Nop for callers that don't want any output.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

// New builds a logger writing to w at the given level. A nil w defaults to
// os.Stderr.
func New(w io.Writer, level log.Level) *log.Logger {
	if w == nil {
		w = os.Stderr
	}

	var logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})

	return logger
}

// Default is a ready-to-use logger at INFO level, the level spec.md's error
// taxonomy (§7) expects for routine per-frame recoveries.
func Default() *log.Logger {
	return New(os.Stderr, log.InfoLevel)
}

// nopLogger discards everything. Useful in tests that don't want decoder
// chatter mixed into `go test -v` output.
type nopLogger struct{}

func (nopLogger) Debug(interface{}, ...interface{}) {}
func (nopLogger) Info(interface{}, ...interface{})  {}
func (nopLogger) Warn(interface{}, ...interface{})  {}
func (nopLogger) Error(interface{}, ...interface{}) {}

// Nop is a Logger that discards everything.
var Nop Logger = nopLogger{}
