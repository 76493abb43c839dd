// Package textdecoder parses Arduino Serial Plotter-style text lines into
// either a flat list of named samples or a dense float64 matrix with a
// stable column-name index, sharing one line-tokenization pass between the
// two (spec.md §9: "a single faithful implementation should provide both").
//
// It generalizes the line-accumulate-and-split shape dwgpsnmea.go uses for
// reading NMEA sentences off a serial port thread, except here the
// terminator and label grammar are configurable rather than fixed to NMEA.
package textdecoder

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/telemetryingest/core/internal/ring"
	"github.com/telemetryingest/core/internal/telemetrylog"
)

// ErrInvalidEOL is returned by New for an eol value outside spec.md §6's
// enumerated set.
var ErrInvalidEOL = errors.New("textdecoder: eol must be one of \"\", \"\\n\", \"\\r\", \"\\n\\r\", \"\\r\\n\"")

var validEOLs = map[string]bool{
	"":     true,
	"\n":   true,
	"\r":   true,
	"\n\r": true,
	"\r\n": true,
}

var labelRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*:\s*(.+)$`)

// Config holds TextDecoder construction options (spec.md §6).
type Config struct {
	EOL           string
	LabelsEnabled bool
	Strict        bool
}

// ParseError is returned in strict mode when a token fails float parsing.
// It carries enough position information for the caller to point a user at
// the offending input.
type ParseError struct {
	Line   int
	Column int
	Token  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("textdecoder: line %d column %d: invalid float %q", e.Line, e.Column, e.Token)
}

// Sample is one parsed channel from one line: always tag 10 (float), per
// spec.md §4.E.
type Sample struct {
	Tag       byte
	Name      string
	Data      []float64
	Timestamp int64
}

// Result is the combined output of one Process call: the sample-list view
// and the dense-matrix view, computed from the same parsed lines.
type Result struct {
	Samples     []Sample
	Matrix      ring.Matrix
	ColumnIndex map[string]int
}

// channel is one parsed comma-delimited group within a line, already
// whitespace-tokenized into floats.
type channel struct {
	name   string
	values []float64
}

// TextDecoder holds the partial-line accumulator and the stable column
// registry across the decoder's lifetime.
type TextDecoder struct {
	cfg   Config
	clock func() int64
	log   telemetrylog.Logger

	partial []byte

	columnIndex map[string]int
	columnOrder []string
	matrixRows  [][]float64

	lineCounter int
}

// New validates cfg and builds a TextDecoder.
func New(cfg Config, clock func() int64, log telemetrylog.Logger) (*TextDecoder, error) {
	if !validEOLs[cfg.EOL] {
		return nil, ErrInvalidEOL
	}
	if clock == nil {
		clock = func() int64 { return 0 }
	}
	if log == nil {
		log = telemetrylog.Nop
	}

	return &TextDecoder{
		cfg:         cfg,
		clock:       clock,
		log:         log,
		columnIndex: make(map[string]int),
	}, nil
}

// Process appends data to the partial-line accumulator, extracts every
// complete line, and returns both the sample-list and matrix views of
// everything newly completed. In strict mode, the first malformed token
// aborts the call with a *ParseError; lines parsed before the failure are
// still reflected in the returned Result.
func (d *TextDecoder) Process(data []byte) (Result, error) {
	var lines = d.extractLines(data)

	var result Result
	result.ColumnIndex = d.columnIndex

	for _, line := range lines {
		var chans, err = d.parseLine(line)
		if err != nil {
			result.Matrix = d.snapshotMatrix()
			return result, err
		}

		for _, ch := range chans {
			result.Samples = append(result.Samples, Sample{
				Tag:       10,
				Name:      ch.name,
				Data:      ch.values,
				Timestamp: d.clock(),
			})
		}

		d.appendMatrixRows(chans)
		d.lineCounter++
	}

	result.Matrix = d.snapshotMatrix()
	return result, nil
}

// extractLines splits accumulated bytes into complete lines per cfg.EOL,
// keeping any trailing unterminated bytes in d.partial.
func (d *TextDecoder) extractLines(data []byte) []string {
	if d.cfg.EOL == "" {
		// No framing: the whole chunk is one line, per spec.md §6.
		return []string{string(data)}
	}

	d.partial = append(d.partial, data...)
	var eol = d.cfg.EOL

	var lines []string
	var buf = string(d.partial)
	for {
		var idx = strings.Index(buf, eol)
		if idx < 0 {
			break
		}
		lines = append(lines, buf[:idx])
		buf = buf[idx+len(eol):]
	}
	d.partial = []byte(buf)

	return lines
}

// parseLine runs spec.md §4.E's per-line algorithm: normalize, segment,
// extract labels, split into channels, tokenize floats.
func (d *TextDecoder) parseLine(line string) ([]channel, error) {
	line = strings.ReplaceAll(line, ";", ",")

	var segments []string
	if d.cfg.LabelsEnabled {
		segments = splitLabeledSegments(line)
	} else {
		segments = []string{line}
	}

	var chans []channel
	var scalarCounter, vectorCounter int
	var labelOccurrences = make(map[string]int)

	for _, seg := range segments {
		var trimmed = strings.TrimSpace(seg)
		if trimmed == "" {
			continue
		}

		if d.cfg.LabelsEnabled {
			if m := labelRe.FindStringSubmatch(trimmed); m != nil {
				var label = m[1]
				var body = m[2]

				labelOccurrences[label]++
				var name = label
				if n := labelOccurrences[label]; n > 1 {
					name = label + "_" + strconv.Itoa(n)
				}

				var values, err = d.tokenizeFloats(body, splitCommaOrSpace)
				if err != nil {
					return nil, err
				}
				chans = append(chans, channel{name: name, values: values})
				continue
			}
		}

		// Unlabeled: split this segment into comma-delimited channels.
		for _, rawPart := range splitComma(trimmed) {
			var part = strings.TrimSpace(rawPart)
			if part == "" {
				continue
			}

			var values, err = d.tokenizeFloats(part, splitWhitespace)
			if err != nil {
				return nil, err
			}

			var name string
			if len(values) <= 1 {
				name = "S" + strconv.Itoa(scalarCounter)
				scalarCounter++
			} else {
				name = "V" + strconv.Itoa(vectorCounter)
				vectorCounter++
			}
			chans = append(chans, channel{name: name, values: values})
		}
	}

	return chans, nil
}

func (d *TextDecoder) tokenizeFloats(body string, split func(string) []string) ([]float64, error) {
	var tokens = split(strings.TrimSpace(body))
	var values = make([]float64, len(tokens))

	for i, tok := range tokens {
		var v, err = strconv.ParseFloat(tok, 64)
		if err != nil {
			if d.cfg.Strict {
				return nil, &ParseError{Line: d.lineCounter, Column: i, Token: tok}
			}
			v = math.NaN()
		}
		values[i] = v
	}

	return values, nil
}

func splitWhitespace(s string) []string {
	return strings.Fields(s)
}

func splitComma(s string) []string {
	return strings.Split(s, ",")
}

func splitCommaOrSpace(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		out = append(out, strings.Fields(part)...)
	}
	return out
}

// labelLookaheadRe finds a comma that precedes a new label, the boundary
// between two labeled segments on one line.
var labelLookaheadRe = regexp.MustCompile(`,\s*(?:[A-Za-z_][A-Za-z0-9_]*\s*:)`)

func splitLabeledSegments(line string) []string {
	var matches = labelLookaheadRe.FindAllStringIndex(line, -1)
	if len(matches) == 0 {
		return []string{line}
	}

	var segments []string
	var start = 0
	for _, m := range matches {
		segments = append(segments, line[start:m[0]])
		start = m[0] + 1 // keep the label onward, drop only the comma
	}
	segments = append(segments, line[start:])

	return segments
}

// growColumn assigns a stable index to name if it's new, backfilling every
// existing matrix row with NaN in the new column — the same column-growth
// policy ring.Buffer uses for row batches.
func (d *TextDecoder) growColumn(name string) int {
	if idx, ok := d.columnIndex[name]; ok {
		return idx
	}

	var idx = len(d.columnOrder)
	d.columnOrder = append(d.columnOrder, name)
	d.columnIndex[name] = idx

	for i := range d.matrixRows {
		d.matrixRows[i] = append(d.matrixRows[i], math.NaN())
	}

	return idx
}

func (d *TextDecoder) appendMatrixRows(chans []channel) {
	if len(chans) == 0 {
		return
	}

	var indices = make([]int, len(chans))
	var maxLen = 0
	for i, ch := range chans {
		indices[i] = d.growColumn(ch.name)
		if len(ch.values) > maxLen {
			maxLen = len(ch.values)
		}
	}

	var width = len(d.columnOrder)
	var newRows = make([][]float64, maxLen)
	for r := 0; r < maxLen; r++ {
		newRows[r] = make([]float64, width)
		for c := 0; c < width; c++ {
			newRows[r][c] = math.NaN()
		}
	}

	for i, ch := range chans {
		var col = indices[i]
		for r, v := range ch.values {
			newRows[r][col] = v
		}
	}

	d.matrixRows = append(d.matrixRows, newRows...)
}

func (d *TextDecoder) snapshotMatrix() ring.Matrix {
	var rows = len(d.matrixRows)
	var cols = len(d.columnOrder)
	if rows == 0 || cols == 0 {
		return ring.Matrix{Cols: cols}
	}

	var flat = make([]float64, rows*cols)
	for r, row := range d.matrixRows {
		copy(flat[r*cols:(r+1)*cols], row)
	}

	return ring.NewMatrix(flat, rows, cols)
}
