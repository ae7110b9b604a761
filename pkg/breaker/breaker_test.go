package breaker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBroker = errors.New("broker unreachable")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(name string) Config {
	return Config{
		Name:         name,
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      100 * time.Millisecond,
		FailureRatio: 0.5,
		MinRequests:  3,
	}
}

func fail(context.Context) error    { return errBroker }
func succeed(context.Context) error { return nil }

func TestBreaker_ClosedPassesThrough(t *testing.T) {
	b := New(testConfig("test-closed"), testLogger())

	require.NoError(t, b.Do(context.Background(), succeed))
	assert.ErrorIs(t, b.Do(context.Background(), fail), errBroker)
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreaker_TripsOnFailures(t *testing.T) {
	b := New(testConfig("test-trip"), testLogger())

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, b.Do(context.Background(), fail), errBroker)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())
	assert.Equal(t, float64(2), testutil.ToFloat64(stateGauge.WithLabelValues("test-trip")))

	called := false
	err := b.Do(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
	assert.Equal(t, float64(1), testutil.ToFloat64(rejectedTotal.WithLabelValues("test-trip")))
}

func TestBreaker_HalfOpenRecovery(t *testing.T) {
	b := New(testConfig("test-recovery"), testLogger())

	for i := 0; i < 3; i++ {
		_ = b.Do(context.Background(), fail)
	}
	require.Equal(t, gobreaker.StateOpen, b.State())

	time.Sleep(150 * time.Millisecond)

	require.NoError(t, b.Do(context.Background(), succeed))
	assert.Equal(t, gobreaker.StateClosed, b.State())
	assert.Equal(t, float64(0), testutil.ToFloat64(stateGauge.WithLabelValues("test-recovery")))
}

func TestBreaker_CancelledContextSkipsCall(t *testing.T) {
	b := New(testConfig("test-cancel"), testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := b.Do(ctx, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("events")
	assert.Equal(t, "events", cfg.Name)
	assert.Equal(t, uint32(1), cfg.MaxRequests)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 0.5, cfg.FailureRatio)
	assert.Equal(t, uint32(5), cfg.MinRequests)
}
