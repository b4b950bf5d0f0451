// Package duration provides the simulation's tick clock.
//
// A Duration counts ticks in a non-negative 128-bit integer. All named
// durations and the fixed-point Granularity used by package quantity are
// derived from the calendar constants below, so every whole amount per whole
// number of named durations can be expressed as an exact per-tick rate.
package duration

import (
	"errors"
	"fmt"
	"math"
	"time"

	"lukechampine.com/uint128"
)

// Calendar and clock constants.
const (
	TicksPerSecond  = 1000 // one tick is one simulated millisecond
	SecondsInMinute = 60
	MinutesInHour   = 60
	HoursInDay      = 24
	DaysInYear      = 365

	TicksPerMinute = TicksPerSecond * SecondsInMinute
	TicksPerHour   = TicksPerMinute * MinutesInHour
	TicksPerDay    = TicksPerHour * HoursInDay
	TicksPerYear   = TicksPerDay * DaysInYear
)

// Granularity is the fixed-point denominator for quantity residuals.
//
// It is a multiple of TicksPerYear (and therefore of every named duration)
// and of 5040 = 7!, which covers every fractional denominator used by game
// content (2, 5, 7, 10, 120, ...).
const Granularity uint64 = TicksPerYear * 5040

// ErrNonMonotonic reports that simulated time would run backwards.
var ErrNonMonotonic = errors.New("duration: non-monotonic time")

// Duration is an immutable, non-negative number of ticks.
// The zero value is Instant.
type Duration struct {
	ticks uint128.Uint128
}

// Named durations.
var (
	Instant = Duration{}
	Tick    = FromTicks64(1)
	Second  = FromTicks64(TicksPerSecond)
	Minute  = FromTicks64(TicksPerMinute)
	Hour    = FromTicks64(TicksPerHour)
	Day     = FromTicks64(TicksPerDay)
	Year    = FromTicks64(TicksPerYear)
)

// FromTicks returns a Duration of exactly n ticks.
func FromTicks(n uint128.Uint128) Duration {
	return Duration{ticks: n}
}

// FromTicks64 returns a Duration of exactly n ticks.
func FromTicks64(n uint64) Duration {
	return Duration{ticks: uint128.From64(n)}
}

// FromSeconds returns a Duration of n whole seconds.
func FromSeconds(n uint64) Duration {
	return Second.Mul(n)
}

// FromStd converts a wall-clock interval, truncating toward zero.
// A negative interval panics with ErrNonMonotonic.
func FromStd(d time.Duration) Duration {
	if d < 0 {
		panic(fmt.Errorf("%w: negative wall-clock interval %s", ErrNonMonotonic, d))
	}
	// Whole seconds first so the nanosecond product cannot overflow.
	secs := uint64(d / time.Second)
	nanos := uint64(d % time.Second)
	ticks := uint128.From64(secs).Mul64(TicksPerSecond).Add64(nanos * TicksPerSecond / uint64(time.Second))
	return Duration{ticks: ticks}
}

// Since returns next - prev, panicking with ErrNonMonotonic if next is
// earlier than prev.
func Since(prev, next Duration) Duration {
	if next.Less(prev) {
		panic(fmt.Errorf("%w: %s is before %s", ErrNonMonotonic, next, prev))
	}
	return Duration{ticks: next.ticks.Sub(prev.ticks)}
}

// Ticks returns the raw tick count.
func (d Duration) Ticks() uint128.Uint128 {
	return d.ticks
}

// Add returns d + o.
func (d Duration) Add(o Duration) Duration {
	return Duration{ticks: d.ticks.Add(o.ticks)}
}

// Sub returns d - o. The caller guarantees o <= d; violating that panics
// with ErrNonMonotonic.
func (d Duration) Sub(o Duration) Duration {
	return Since(o, d)
}

// Mul returns d scaled by n.
func (d Duration) Mul(n uint64) Duration {
	return Duration{ticks: d.ticks.Mul64(n)}
}

// Cmp compares d and o and returns -1, 0 or +1.
func (d Duration) Cmp(o Duration) int {
	return d.ticks.Cmp(o.ticks)
}

// Less reports whether d < o.
func (d Duration) Less(o Duration) bool {
	return d.Cmp(o) < 0
}

// IsZero reports whether d is Instant.
func (d Duration) IsZero() bool {
	return d.ticks.IsZero()
}

// Milliseconds returns d in milliseconds for display. The conversion is not
// exact for very large durations.
func (d Duration) Milliseconds() float64 {
	return toFloat(d.ticks) * 1000 / TicksPerSecond
}

// Std converts d to a time.Duration, saturating at the largest
// representable value. Display only.
func (d Duration) Std() time.Duration {
	const nanosPerTick = uint64(time.Second) / TicksPerSecond
	limit := uint128.From64(math.MaxInt64 / nanosPerTick)
	if d.ticks.Cmp(limit) > 0 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d.ticks.Lo * nanosPerTick)
}

// String formats d the way time.Duration does.
func (d Duration) String() string {
	return d.Std().String()
}

func toFloat(u uint128.Uint128) float64 {
	return float64(u.Hi)*0x1p64 + float64(u.Lo)
}
