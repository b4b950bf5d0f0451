package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jogru0/save-the-planet/internal/duration"
	"github.com/jogru0/save-the-planet/internal/quantity"
)

// steppingNow returns a fake clock that advances by step on every call.
func steppingNow(step time.Duration) func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now := t
		t = t.Add(step)
		return now
	}
}

func TestRunDeliversWarpedTotals(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var totals []duration.Duration
	e := NewEngine()
	e.Interval = time.Millisecond
	e.Warp = 60
	e.Now = steppingNow(10 * time.Millisecond)
	e.OnFrame = func(total duration.Duration) {
		totals = append(totals, total)
		if len(totals) == 5 {
			cancel()
		}
	}

	last := e.Run(ctx)

	require.Len(t, totals, 5)
	for i, total := range totals {
		assert.Equal(t, duration.FromTicks64(uint64(i+1)*600), total, "frame %d", i)
	}
	assert.Equal(t, totals[4], last)
	assert.Equal(t, uint64(5), e.Frames)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEngine()
	e.OnFrame = func(duration.Duration) { t.Fatal("no frame expected") }
	assert.True(t, e.Run(ctx).IsZero())
}

func TestClockPanicsWhenTimeRunsBackwards(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	times := []time.Time{base, base.Add(time.Second), base.Add(500 * time.Millisecond)}
	now := func() time.Time {
		t := times[0]
		times = times[1:]
		return t
	}

	c := NewClock(now, 1)
	assert.Equal(t, duration.Second, c.Elapsed())

	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, duration.ErrNonMonotonic))
	}()
	c.Elapsed()
}

func TestJitterIsDeterministic(t *testing.T) {
	a := NewJitter(7, 16*time.Millisecond, 10*time.Millisecond)
	b := NewJitter(7, 16*time.Millisecond, 10*time.Millisecond)

	seen := map[duration.Duration]bool{}
	for i := range 1000 {
		d := a.Next()
		require.Equal(t, d, b.Next(), "frame %d", i)
		assert.False(t, duration.FromTicks64(26).Less(d), "frame %d above base+spread: %s", i, d)
		assert.False(t, d.Less(duration.FromTicks64(6)), "frame %d below base-spread: %s", i, d)
		seen[d] = true
	}
	assert.Greater(t, len(seen), 5, "deltas should vary")
}

func TestJitterClampsAtZero(t *testing.T) {
	j := NewJitter(1, 0, 50*time.Millisecond)
	for range 500 {
		assert.NotPanics(t, func() { j.Next() })
	}
}

func TestReplayMatchesSingleStep(t *testing.T) {
	rate := quantity.NewRate(quantity.New[quantity.Emission](100_000), duration.Year)

	var (
		saved quantity.Quantity[quantity.Emission]
		prev  duration.Duration
	)
	e := NewEngine()
	e.OnFrame = func(total duration.Duration) {
		saved = saved.Add(rate.Integrate(duration.Since(prev, total)))
		prev = total
	}

	total := e.Replay(50_000, NewJitter(42, 16*time.Millisecond, 15*time.Millisecond))

	assert.Equal(t, prev, total)
	assert.Equal(t, rate.Integrate(total), saved)
	assert.Equal(t, uint64(50_000), e.Frames)
}

func TestSimTime(t *testing.T) {
	tests := []struct {
		name string
		d    duration.Duration
		want string
	}{
		{"start", duration.Instant, "Year 1 Day 1, 00:00:00"},
		{"sub-second", duration.FromTicks64(999), "Year 1 Day 1, 00:00:00"},
		{"one of each", duration.Year.Add(duration.Day).Add(duration.Hour).Add(duration.Minute).Add(duration.Second), "Year 2 Day 2, 01:01:01"},
		{"last second of year", duration.Year.Sub(duration.Second), "Year 1 Day 365, 23:59:59"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SimTime(tt.d))
		})
	}
}
