package quantity

import (
	"math/big"

	"lukechampine.com/uint128"

	"github.com/jogru0/save-the-planet/internal/duration"
)

// Rate is a change of U per tick.
type Rate[U Unit] struct {
	perTick Quantity[U]
}

// NewRate returns the rate that accrues amount over d. amount must be exactly
// divisible by d's tick count at Granularity resolution; otherwise NewRate
// panics with ErrInexactDivision.
func NewRate[U Unit](amount Quantity[U], d duration.Duration) Rate[U] {
	return Rate[U]{perTick: amount.divideExactly(d.Ticks())}
}

// ZeroRate returns a rate that accrues nothing.
func ZeroRate[U Unit]() Rate[U] {
	return Rate[U]{}
}

// PerTick returns the amount accrued in a single tick.
func (r Rate[U]) PerTick() Quantity[U] {
	return r.perTick
}

// IsZero reports whether r accrues nothing.
func (r Rate[U]) IsZero() bool {
	return r.perTick.IsZero()
}

// Cmp compares r and o and returns -1, 0 or +1.
func (r Rate[U]) Cmp(o Rate[U]) int {
	return r.perTick.Cmp(o.perTick)
}

// Integrate returns the amount accrued over d.
//
// Integration is exact: integrating over d1 and d2 separately and adding the
// results equals integrating over d1+d2.
func (r Rate[U]) Integrate(d duration.Duration) Quantity[U] {
	return r.perTick.Mul128(d.Ticks())
}

// Add returns the combined rate of two independent sources.
func (r Rate[U]) Add(o Rate[U]) Rate[U] {
	return Rate[U]{perTick: r.perTick.Add(o.perTick)}
}

// Mul returns the rate of n identical sources.
func (r Rate[U]) Mul(n uint64) Rate[U] {
	return Rate[U]{perTick: r.perTick.Mul(n)}
}

// ETA estimates how long r needs to accrue gap. The estimate is rounded up
// so it never understates the wait. It reports false for a zero rate.
func (r Rate[U]) ETA(gap Quantity[U]) (duration.Duration, bool) {
	if r.IsZero() {
		return duration.Instant, false
	}
	if gap.IsZero() {
		return duration.Instant, true
	}
	ticks, rest := new(big.Int).QuoRem(scaled(gap), scaled(r.perTick), new(big.Int))
	if rest.Sign() != 0 {
		ticks.Add(ticks, big.NewInt(1))
	}
	if ticks.BitLen() > 128 {
		return duration.FromTicks(uint128.Max), true
	}
	return duration.FromTicks(uint128.FromBig(ticks)), true
}

// Text renders the per-second amount, e.g. "0.0031g/s".
func (r Rate[U]) Text(precision int) string {
	return r.Integrate(duration.Second).Text(precision) + "/s"
}

func (r Rate[U]) String() string {
	return r.Text(4)
}

// scaled returns q in 1/Granularity units. The product can exceed 128 bits,
// which is why ETA and text rendering work on big integers.
func scaled[U Unit](q Quantity[U]) *big.Int {
	v := q.whole.Big()
	v.Mul(v, granularity.Big())
	return v.Add(v, q.residual.Big())
}
