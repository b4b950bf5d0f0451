package duration

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func requirePanicsWith(t *testing.T, target error, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		assert.True(t, errors.Is(err, target), "got %v, want %v", err, target)
	}()
	f()
}

func TestNamedDurations(t *testing.T) {
	assert.Equal(t, uint128.From64(1), Tick.Ticks())
	assert.Equal(t, Second.Mul(60), Minute)
	assert.Equal(t, Minute.Mul(60), Hour)
	assert.Equal(t, Hour.Mul(24), Day)
	assert.Equal(t, Day.Mul(365), Year)
	assert.True(t, Instant.IsZero())
	assert.Equal(t, Duration{}, Instant)
}

func TestGranularityDividesNamedDurations(t *testing.T) {
	for _, d := range []Duration{Tick, Second, Minute, Hour, Day, Year} {
		assert.Zero(t, Granularity%d.Ticks().Lo, "granularity not divisible by %s", d)
	}
	for _, den := range []uint64{2, 3, 5, 7, 10, 12, 120, 5040} {
		assert.Zero(t, Granularity%den, "granularity not divisible by %d", den)
	}
}

func TestArithmetic(t *testing.T) {
	d := Second.Add(Minute)
	assert.Equal(t, FromSeconds(61), d)
	assert.Equal(t, Minute, d.Sub(Second))
	assert.Equal(t, Instant, Second.Sub(Second))
	assert.Equal(t, FromSeconds(10), Second.Mul(10))
	assert.Equal(t, Instant, Year.Mul(0))
}

func TestCompare(t *testing.T) {
	assert.True(t, Second.Less(Minute))
	assert.False(t, Minute.Less(Second))
	assert.False(t, Second.Less(Second))
	assert.Equal(t, 0, Day.Cmp(Hour.Mul(24)))
	assert.Equal(t, 1, Year.Cmp(Day))
}

func TestSubUnderflowPanics(t *testing.T) {
	requirePanicsWith(t, ErrNonMonotonic, func() {
		Second.Sub(Minute)
	})
}

func TestSince(t *testing.T) {
	assert.Equal(t, Second, Since(Minute, Minute.Add(Second)))
	assert.Equal(t, Instant, Since(Day, Day))
	requirePanicsWith(t, ErrNonMonotonic, func() {
		Since(Day, Hour)
	})
}

func TestFromStd(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want Duration
	}{
		{"zero", 0, Instant},
		{"one second", time.Second, Second},
		{"truncates sub-tick", 1999 * time.Microsecond, FromTicks64(1)},
		{"sub-tick is zero", 999 * time.Microsecond, Instant},
		{"minutes and millis", 2*time.Minute + 5*time.Millisecond, Minute.Mul(2).Add(FromTicks64(5))},
		{"large", 1000 * time.Hour, Hour.Mul(1000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromStd(tt.in))
		})
	}
}

func TestFromStdNegativePanics(t *testing.T) {
	requirePanicsWith(t, ErrNonMonotonic, func() {
		FromStd(-time.Nanosecond)
	})
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, 1000.0, Second.Milliseconds())
	assert.Equal(t, 1.0, Tick.Milliseconds())
	assert.Equal(t, time.Minute, Minute.Std())
	assert.Equal(t, "1m0s", Minute.String())
	assert.Equal(t, "8760h0m0s", Year.String())
	assert.Equal(t, time.Duration(1<<63-1), Year.Mul(1000).Std())
}
