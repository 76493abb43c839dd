// Package telemetrystats accumulates simple throughput counters for a
// long-running ingest process and exposes them both as a cheap in-process
// snapshot and as Prometheus gauges.
//
// The accumulate-then-report shape is the same one audio_stats.go uses to
// turn a running sample count into a periodic "Sample rate approx." line;
// here the gate is pull-based (Read resets the window) rather than a timed
// background print, and the report goes to a Prometheus gauge instead of
// dw_printf, following metrics.go's promauto wiring.
package telemetrystats

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Snapshot is the bytes/sec rate computed over one Read window.
type Snapshot struct {
	RxBytesPerSec float64
	TxBytesPerSec float64
	Elapsed       time.Duration
}

// Throughput tracks received/transmitted byte counts since the last Read
// and reports rates scaled by the actual elapsed wall time, not a fixed
// interval — interval only sizes the minimum window Read will report
// against, avoiding a division by a near-zero duration on a hot read loop.
type Throughput struct {
	mu          sync.Mutex
	minInterval time.Duration
	windowStart time.Time
	rxBytes     int64
	txBytes     int64
	clock       func() time.Time

	registry *prometheus.Registry
	rxGauge  prometheus.Gauge
	txGauge  prometheus.Gauge
}

// New builds a Throughput accumulator, registering two Prometheus gauges
// named "<name>_rx_bytes_per_second" / "<name>_tx_bytes_per_second".
// minInterval bounds how often Read will actually recompute a rate; calls
// within the window return the zero Snapshot without resetting counters.
func New(name string, minInterval time.Duration) *Throughput {
	return newWithClock(name, minInterval, time.Now)
}

func newWithClock(name string, minInterval time.Duration, clock func() time.Time) *Throughput {
	// Each Throughput gets its own registry rather than registering against
	// prometheus.DefaultRegisterer, so constructing more than one (e.g. one
	// per serial device, or repeatedly in tests) never panics on a
	// duplicate metric name. Registry() exposes it for a caller that wants
	// to fold it into a process-wide /metrics mux.
	var reg = prometheus.NewRegistry()
	var factory = promauto.With(reg)

	return &Throughput{
		minInterval: minInterval,
		windowStart: clock(),
		clock:       clock,
		registry:    reg,
		rxGauge: factory.NewGauge(prometheus.GaugeOpts{
			Name: name + "_rx_bytes_per_second",
			Help: "Received bytes per second over the last reporting window.",
		}),
		txGauge: factory.NewGauge(prometheus.GaugeOpts{
			Name: name + "_tx_bytes_per_second",
			Help: "Transmitted bytes per second over the last reporting window.",
		}),
	}
}

// Registry returns the Prometheus registry this Throughput's gauges are
// registered against, for a caller assembling a combined /metrics handler.
func (t *Throughput) Registry() *prometheus.Registry {
	return t.registry
}

// AddRx adds n bytes to the current window's receive count.
func (t *Throughput) AddRx(n int) {
	t.mu.Lock()
	t.rxBytes += int64(n)
	t.mu.Unlock()
}

// AddTx adds n bytes to the current window's transmit count.
func (t *Throughput) AddTx(n int) {
	t.mu.Lock()
	t.txBytes += int64(n)
	t.mu.Unlock()
}

// Read computes the current window's rates, updates the Prometheus gauges,
// and resets the accumulator for the next window. If less than
// minInterval has elapsed since the last Read, it returns the zero
// Snapshot and leaves the accumulator untouched.
func (t *Throughput) Read() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	var now = t.clock()
	var elapsed = now.Sub(t.windowStart)
	if elapsed < t.minInterval {
		return Snapshot{}
	}

	var seconds = elapsed.Seconds()
	var snap = Snapshot{
		RxBytesPerSec: float64(t.rxBytes) / seconds,
		TxBytesPerSec: float64(t.txBytes) / seconds,
		Elapsed:       elapsed,
	}

	t.rxGauge.Set(snap.RxBytesPerSec)
	t.txGauge.Set(snap.TxBytesPerSec)

	t.windowStart = now
	t.rxBytes = 0
	t.txBytes = 0

	return snap
}
