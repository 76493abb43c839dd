package transport

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemetryingest/core/internal/telemetrystats"
)

// fakePort replays a fixed sequence of reads, then returns io.EOF forever
// (a benign, ignorable condition for Pump.Run) unless failErr is set.
type fakePort struct {
	mu      sync.Mutex
	chunks  [][]byte
	idx     int
	failErr error
	closed  bool
}

func (f *fakePort) Read(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.idx < len(f.chunks) {
		var n = copy(p, f.chunks[f.idx])
		f.idx++
		return n, nil
	}
	if f.failErr != nil {
		return 0, f.failErr
	}
	return 0, io.EOF
}

func (f *fakePort) Write(p []byte) (int, error) { return len(p), nil }

func (f *fakePort) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func TestPumpFeedsCompleteChunksAndTracksThroughput(t *testing.T) {
	var port = &fakePort{chunks: [][]byte{[]byte("abc"), []byte("de")}}
	var stats = telemetrystats.New("test_pump", time.Nanosecond)

	var mu sync.Mutex
	var received []byte
	var feed = func(b []byte) error {
		mu.Lock()
		received = append(received, b...)
		mu.Unlock()
		return nil
	}

	var pump = NewPump(port, feed, stats, nil)

	var ctx, cancel = context.WithCancel(context.Background())
	var done = make(chan error, 1)
	go func() { done <- pump.Run(ctx) }()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return string(received) == "abcde"
	}, time.Second, time.Millisecond)

	cancel()
	var err = <-done
	assert.NoError(t, err)
}

func TestPumpReturnsOnFatalReadError(t *testing.T) {
	var wantErr = errors.New("device gone")
	var port = &fakePort{failErr: wantErr}

	var pump = NewPump(port, func([]byte) error { return nil }, nil, nil)

	var err = pump.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
}

func TestPumpStopsCleanlyOnCancelDuringEOF(t *testing.T) {
	var port = &fakePort{}
	var pump = NewPump(port, func([]byte) error { return nil }, nil, nil)

	var ctx, cancel = context.WithCancel(context.Background())
	var done = make(chan error, 1)
	go func() { done <- pump.Run(ctx) }()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("pump did not stop after cancel")
	}
}
