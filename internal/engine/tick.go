// Package engine drives the world with frames: either following the wall
// clock or replaying irregular frames back to back.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lukechampine.com/uint128"

	"github.com/jogru0/save-the-planet/internal/duration"
)

// Engine turns wall-clock time into simulated total time.
type Engine struct {
	Frames   uint64        // frames delivered so far
	Warp     uint64        // simulated time per wall-clock time; 0 means 1
	Interval time.Duration // time between frames (default 100ms)

	// OnFrame receives the total simulated time at every frame. Totals never
	// decrease.
	OnFrame func(total duration.Duration)

	// Now replaces time.Now in tests.
	Now func() time.Time
}

// NewEngine creates an engine running in real time.
func NewEngine() *Engine {
	return &Engine{
		Warp:     1,
		Interval: 100 * time.Millisecond,
	}
}

// Run delivers frames until ctx is done and returns the last total handed to
// OnFrame.
func (e *Engine) Run(ctx context.Context) duration.Duration {
	now := e.Now
	if now == nil {
		now = time.Now
	}
	clock := NewClock(now, max(e.Warp, 1))
	ticker := time.NewTicker(e.Interval)
	defer ticker.Stop()

	slog.Info("frame loop started", "interval", e.Interval, "warp", e.Warp)

	var total duration.Duration
	for {
		select {
		case <-ctx.Done():
			slog.Info("frame loop stopped", "frames", e.Frames, "total", SimTime(total))
			return total
		case <-ticker.C:
			if ctx.Err() != nil {
				continue
			}
			total = clock.Elapsed()
			e.step(total)
		}
	}
}

// step delivers one frame.
func (e *Engine) step(total duration.Duration) {
	e.Frames++
	if e.OnFrame != nil {
		e.OnFrame(total)
	}
}

// Replay delivers frames back to back, advancing each by the next jitter
// delta, and returns the final total.
func (e *Engine) Replay(frames int, jitter *Jitter) duration.Duration {
	var total duration.Duration
	for range frames {
		total = total.Add(jitter.Next())
		e.step(total)
	}
	slog.Info("replay finished", "frames", e.Frames, "total", SimTime(total))
	return total
}

// SimTime returns a human-readable simulation time such as
// "Year 1 Day 1, 00:00:00".
func SimTime(d duration.Duration) string {
	years, rest := d.Ticks().QuoRem64(duration.TicksPerYear)
	days := rest / duration.TicksPerDay
	rest %= duration.TicksPerDay
	hours := rest / duration.TicksPerHour
	rest %= duration.TicksPerHour
	minutes := rest / duration.TicksPerMinute
	rest %= duration.TicksPerMinute
	seconds := rest / duration.TicksPerSecond

	return fmt.Sprintf("Year %s Day %d, %02d:%02d:%02d",
		years.Add(uint128.From64(1)), days+1, hours, minutes, seconds)
}
