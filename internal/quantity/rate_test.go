package quantity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	"github.com/jogru0/save-the-planet/internal/duration"
)

var flyerEffectiveness = NewRate(New[Emission](100_000), duration.Year)

func TestRateAnnualContributionPerSecondIsSubUnit(t *testing.T) {
	perSecond := flyerEffectiveness.Integrate(duration.Second)
	assert.True(t, perSecond.Whole().IsZero())
	assert.False(t, perSecond.IsZero())

	assert.Equal(t, New[Emission](100_000), flyerEffectiveness.Integrate(duration.Year))
}

func TestRateRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		amount Quantity[Emission]
		over   duration.Duration
	}{
		{"per year", New[Emission](100_000), duration.Year},
		{"per minute", New[Emission](6), duration.Minute},
		{"fraction per second", Fraction[Emission](1, 10), duration.Second},
		{"per three days", New[Emission](7), duration.Day.Mul(3)},
		{"per tick", New[Emission](3), duration.Tick},
		{"zero", Quantity[Emission]{}, duration.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRate(tt.amount, tt.over)
			assert.Equal(t, tt.amount, r.Integrate(tt.over))
		})
	}
}

func TestNewRateInexactPanics(t *testing.T) {
	requirePanicsWith(t, ErrInexactDivision, func() {
		NewRate(New[Emission](1), duration.FromTicks64(11))
	})
	requirePanicsWith(t, ErrInexactDivision, func() {
		NewRate(New[Emission](1), duration.Instant)
	})
}

func TestIntegrationIsAdditive(t *testing.T) {
	rates := []Rate[Emission]{
		flyerEffectiveness,
		NewRate(Fraction[Emission](1, 7), duration.Second),
		NewRate(New[Emission](123_456_789), duration.Day),
		flyerEffectiveness.Mul(37),
	}
	spans := []duration.Duration{
		duration.Instant,
		duration.Tick,
		duration.FromTicks64(17),
		duration.FromTicks64(16_667),
		duration.Second,
		duration.Minute.Add(duration.FromTicks64(3)),
		duration.Year,
	}
	for _, r := range rates {
		for _, d1 := range spans {
			for _, d2 := range spans {
				assert.Equal(t, r.Integrate(d1.Add(d2)), r.Integrate(d1).Add(r.Integrate(d2)))
			}
		}
	}
}

func TestIrregularFramesMatchSingleStep(t *testing.T) {
	r := flyerEffectiveness.Mul(3)
	frames := []uint64{16, 17, 16, 33, 1, 0, 250, 16, 17, 999, 4, 16}

	var total duration.Duration
	var accrued Quantity[Emission]
	for i := range 10_000 {
		d := duration.FromTicks64(frames[i%len(frames)])
		total = total.Add(d)
		accrued = accrued.Add(r.Integrate(d))
	}
	assert.Equal(t, r.Integrate(total), accrued)
}

func TestRateSuperposition(t *testing.T) {
	one := NewRate(New[Emission](1), duration.Second)
	three := NewRate(New[Emission](3), duration.Second)
	assert.Equal(t, three, one.Mul(3))
	assert.Equal(t, three, one.Add(one).Add(one))
	assert.Equal(t, 0, three.Cmp(one.Mul(3)))
	assert.Equal(t, -1, one.Cmp(three))

	assert.True(t, ZeroRate[Emission]().IsZero())
	assert.Equal(t, one, ZeroRate[Emission]().Add(one))
	assert.True(t, one.Mul(0).IsZero())
}

func TestPerTick(t *testing.T) {
	r := NewRate(New[Emission](1), duration.Second)
	assert.Equal(t, Fraction[Emission](1, duration.TicksPerSecond), r.PerTick())
}

func TestETA(t *testing.T) {
	perSecond := NewRate(New[Emission](1), duration.Second)

	eta, ok := perSecond.ETA(New[Emission](10))
	require.True(t, ok)
	assert.Equal(t, duration.FromSeconds(10), eta)

	eta, ok = perSecond.ETA(Fraction[Emission](1, 2000))
	require.True(t, ok)
	assert.Equal(t, duration.Tick, eta, "half a tick rounds up")

	eta, ok = perSecond.ETA(New[Emission](1).Add(Fraction[Emission](1, 5040)))
	require.True(t, ok)
	assert.Equal(t, duration.Second.Add(duration.Tick), eta)

	eta, ok = flyerEffectiveness.ETA(New[Emission](100_000))
	require.True(t, ok)
	assert.Equal(t, duration.Year, eta)

	eta, ok = perSecond.ETA(Quantity[Emission]{})
	require.True(t, ok)
	assert.True(t, eta.IsZero())

	_, ok = ZeroRate[Emission]().ETA(New[Emission](1))
	assert.False(t, ok)
}

func TestETANeverUnderstates(t *testing.T) {
	r := NewRate(Fraction[Emission](1, 7), duration.Second)
	for _, gap := range []Quantity[Emission]{
		New[Emission](1), Fraction[Emission](3, 10), New[Emission](1_000_000), Fraction[Emission](1, 5040),
	} {
		eta, ok := r.ETA(gap)
		require.True(t, ok)
		assert.False(t, r.Integrate(eta).Less(gap), "eta %s too short for %s", eta, gap)
		if !eta.IsZero() {
			short := eta.Sub(duration.Tick)
			assert.True(t, r.Integrate(short).Less(gap), "eta %s not minimal for %s", eta, gap)
		}
	}
}

func TestETASaturates(t *testing.T) {
	tiny := Rate[Emission]{perTick: Quantity[Emission]{residual: uint128.From64(1)}}
	eta, ok := tiny.ETA(NewWhole[Emission](uint128.Max))
	require.True(t, ok)
	assert.Equal(t, duration.FromTicks(uint128.Max), eta)
}

func TestRateText(t *testing.T) {
	assert.Equal(t, "0.0031g/s", flyerEffectiveness.Text(4))
	assert.Equal(t, "0.0031g/s", flyerEffectiveness.String())
	assert.Equal(t, "2g/s", NewRate(New[Emission](120), duration.Minute).Text(2))
}
