package textdecoder

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func fixedClock() int64 { return 42 }

// TestLabeledVoltageCurrent is spec.md §8 scenario 5.
func TestLabeledVoltageCurrent(t *testing.T) {
	var d, err = New(Config{EOL: "\n", LabelsEnabled: true}, fixedClock, nil)
	require.NoError(t, err)

	var result, procErr = d.Process([]byte("Voltage: 12, 11.8, 11.6\nCurrent: 1.2, 1.3, 1.4\n"))
	require.NoError(t, procErr)

	require.Len(t, result.Samples, 2)
	assert.Equal(t, "Voltage", result.Samples[0].Name)
	assert.Equal(t, []float64{12, 11.8, 11.6}, result.Samples[0].Data)
	assert.Equal(t, "Current", result.Samples[1].Name)
	assert.Equal(t, []float64{1.2, 1.3, 1.4}, result.Samples[1].Data)
	for _, s := range result.Samples {
		assert.Equal(t, byte(10), s.Tag)
	}
}

// TestUnlabeledMatrix is spec.md §8 scenario 6.
func TestUnlabeledMatrix(t *testing.T) {
	var d, err = New(Config{EOL: "\n", LabelsEnabled: false}, fixedClock, nil)
	require.NoError(t, err)

	var result, procErr = d.Process([]byte("1 2 3, 4 5 6\n10 20, 30 40 50\n"))
	require.NoError(t, procErr)

	require.Equal(t, 2, result.Matrix.Cols)
	require.Equal(t, 6, result.Matrix.Rows)

	var want = [][]float64{
		{1, 4},
		{2, 5},
		{3, 6},
		{10, 30},
		{20, 40},
		{math.NaN(), 50},
	}
	for r := 0; r < 6; r++ {
		for c := 0; c < 2; c++ {
			var got = result.Matrix.At(r, c)
			if math.IsNaN(want[r][c]) {
				assert.True(t, math.IsNaN(got), "row %d col %d", r, c)
			} else {
				assert.Equal(t, want[r][c], got, "row %d col %d", r, c)
			}
		}
	}
}

func TestLabelCollisionDisambiguation(t *testing.T) {
	var d, err = New(Config{EOL: "\n", LabelsEnabled: true}, fixedClock, nil)
	require.NoError(t, err)

	var result, procErr = d.Process([]byte("Temp: 1, Temp: 2\n"))
	require.NoError(t, procErr)

	require.Len(t, result.Samples, 2)
	assert.Equal(t, "Temp", result.Samples[0].Name)
	assert.Equal(t, "Temp_2", result.Samples[1].Name)
}

func TestSemicolonNormalizedToComma(t *testing.T) {
	var d, err = New(Config{EOL: "\n", LabelsEnabled: false}, fixedClock, nil)
	require.NoError(t, err)

	var result, procErr = d.Process([]byte("1; 2; 3\n"))
	require.NoError(t, procErr)
	require.Len(t, result.Samples, 3)
	assert.Equal(t, []float64{1}, result.Samples[0].Data)
	assert.Equal(t, []float64{2}, result.Samples[1].Data)
	assert.Equal(t, []float64{3}, result.Samples[2].Data)
}

func TestNonStrictBadTokenBecomesNaN(t *testing.T) {
	var d, err = New(Config{EOL: "\n", LabelsEnabled: false, Strict: false}, fixedClock, nil)
	require.NoError(t, err)

	var result, procErr = d.Process([]byte("1, abc\n"))
	require.NoError(t, procErr)
	require.Len(t, result.Samples, 2)
	assert.True(t, math.IsNaN(result.Samples[1].Data[0]))
}

func TestStrictBadTokenReturnsParseError(t *testing.T) {
	var d, err = New(Config{EOL: "\n", LabelsEnabled: false, Strict: true}, fixedClock, nil)
	require.NoError(t, err)

	var _, procErr = d.Process([]byte("1, abc\n"))
	require.Error(t, procErr)
	var parseErr *ParseError
	require.ErrorAs(t, procErr, &parseErr)
}

func TestNoFramingTreatsWholeChunkAsOneLine(t *testing.T) {
	var d, err = New(Config{EOL: "", LabelsEnabled: false}, fixedClock, nil)
	require.NoError(t, err)

	var result, procErr = d.Process([]byte("1, 2, 3"))
	require.NoError(t, procErr)
	require.Len(t, result.Samples, 3)
}

func TestInvalidEOLRejected(t *testing.T) {
	var _, err = New(Config{EOL: "xx"}, fixedClock, nil)
	require.ErrorIs(t, err, ErrInvalidEOL)
}

// TestChunkingIndependence mirrors spec.md §8's chunking-independence
// property for the binary decoder, applied to line-based text framing: any
// split of the same byte stream across Process calls yields the same
// sample sequence.
func TestChunkingIndependence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var numLines = rapid.IntRange(1, 4).Draw(t, "numLines")
		var full []byte
		for i := 0; i < numLines; i++ {
			var v = rapid.IntRange(0, 99).Draw(t, "v")
			full = append(full, []byte("S: "+strconv.Itoa(v)+"\n")...)
		}

		var whole, err = New(Config{EOL: "\n", LabelsEnabled: true}, fixedClock, nil)
		require.NoError(t, err)
		var wholeResult, wholeErr = whole.Process(full)
		require.NoError(t, wholeErr)

		var chunked, chunkErr = New(Config{EOL: "\n", LabelsEnabled: true}, fixedClock, nil)
		require.NoError(t, chunkErr)

		var chunkSize = rapid.IntRange(1, 5).Draw(t, "chunkSize")
		var allSamples []Sample
		for i := 0; i < len(full); i += chunkSize {
			var end = i + chunkSize
			if end > len(full) {
				end = len(full)
			}
			var r, e = chunked.Process(full[i:end])
			require.NoError(t, e)
			allSamples = append(allSamples, r.Samples...)
		}

		require.Len(t, allSamples, len(wholeResult.Samples))
		for i := range wholeResult.Samples {
			assert.Equal(t, wholeResult.Samples[i].Name, allSamples[i].Name)
			assert.Equal(t, wholeResult.Samples[i].Data, allSamples[i].Data)
		}
	})
}

