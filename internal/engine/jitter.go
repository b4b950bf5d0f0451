package engine

import (
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/jogru0/save-the-planet/internal/duration"
)

// jitterFrequency controls how quickly consecutive frame deltas drift apart.
const jitterFrequency = 0.37

// Jitter produces deterministic, irregular frame deltas around a base
// interval. The same seed always yields the same sequence.
type Jitter struct {
	noise  opensimplex.Noise
	base   time.Duration
	spread time.Duration
	frame  int
}

// NewJitter returns deltas in [base-spread, base+spread], clamped at zero.
func NewJitter(seed int64, base, spread time.Duration) *Jitter {
	return &Jitter{
		noise:  opensimplex.NewNormalized(seed),
		base:   base,
		spread: spread,
	}
}

// Next returns the next frame delta.
func (j *Jitter) Next() duration.Duration {
	n := j.noise.Eval2(float64(j.frame)*jitterFrequency, 0)
	j.frame++

	d := j.base + time.Duration((n*2-1)*float64(j.spread))
	return duration.FromStd(max(d, 0))
}
