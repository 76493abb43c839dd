package telemetrystats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThroughputWithinMinIntervalReturnsZero(t *testing.T) {
	var now = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var clock = func() time.Time { return now }

	var th = newWithClock("t_zero", time.Second, clock)
	th.AddRx(100)

	var snap = th.Read()
	assert.Equal(t, Snapshot{}, snap)
}

func TestThroughputComputesRatePerSecond(t *testing.T) {
	var now = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var clock = func() time.Time { return now }

	var th = newWithClock("t_rate", time.Second, clock)
	th.AddRx(1000)
	th.AddTx(500)

	now = now.Add(2 * time.Second)
	var snap = th.Read()

	assert.Equal(t, 500.0, snap.RxBytesPerSec)
	assert.Equal(t, 250.0, snap.TxBytesPerSec)
	assert.Equal(t, 2*time.Second, snap.Elapsed)
}

func TestThroughputResetsWindowAfterRead(t *testing.T) {
	var now = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var clock = func() time.Time { return now }

	var th = newWithClock("t_reset", time.Second, clock)
	th.AddRx(1000)
	now = now.Add(time.Second)
	var first = th.Read()
	require.NotZero(t, first.RxBytesPerSec)

	now = now.Add(time.Second)
	var second = th.Read()
	assert.Equal(t, 0.0, second.RxBytesPerSec)
}

func TestNewRegistersDistinctRegistryPerInstance(t *testing.T) {
	var a = New("t_multi_a", time.Millisecond)
	var b = New("t_multi_b", time.Millisecond)
	assert.NotSame(t, a.Registry(), b.Registry())

	var metrics, err = a.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, metrics)
}
