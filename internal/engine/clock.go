package engine

import (
	"fmt"
	"time"

	"github.com/jogru0/save-the-planet/internal/duration"
)

// Clock measures simulated time since it was created.
type Clock struct {
	now   func() time.Time
	start time.Time
	warp  uint64
	last  duration.Duration
}

// NewClock starts a clock at now(). Every wall-clock nanosecond counts as
// warp simulated nanoseconds.
func NewClock(now func() time.Time, warp uint64) *Clock {
	return &Clock{now: now, start: now(), warp: warp}
}

// Elapsed returns the simulated time since the clock started. It panics with
// duration.ErrNonMonotonic if the wall clock runs backwards.
func (c *Clock) Elapsed() duration.Duration {
	total := duration.FromStd(c.now().Sub(c.start)).Mul(c.warp)
	if total.Less(c.last) {
		panic(fmt.Errorf("%w: clock went from %s back to %s", duration.ErrNonMonotonic, c.last, total))
	}
	c.last = total
	return total
}
