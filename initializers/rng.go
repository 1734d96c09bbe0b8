package initializers

import (
	"math/rand"
	"time"
)

// RNG needs no explanation
type RNG interface {
	Gen() float64
}

// source returns rng, or a new generator seeded from the current time if rng is nil.
func source(rng *rand.Rand) *rand.Rand {
	if rng == nil {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rng
}

type uniform struct {
	rng          *rand.Rand
	lower, upper float64
}

// Uniform returns an RNG that gives values uniformly spread between its bounds, which can be set
// by Bounds. Values are drawn from rng; a nil rng is replaced by one seeded from the current time.
//
// The default bounds can be set by SetDefault for "uniform-lower" and "uniform-upper".
func Uniform(rng *rand.Rand) *uniform {
	return &uniform{source(rng), defaultValue["uniform-lower"], defaultValue["uniform-upper"]}
}

// Bounds sets the range of a Uniform RNG, returning it.
func (u *uniform) Bounds(lower, upper float64) *uniform {
	if lower > upper {
		lower, upper = upper, lower
	}

	u.lower = lower
	u.upper = upper
	return u
}

// Gen is the implementation of RNG for Uniform. It returns a random number.
func (u *uniform) Gen() float64 {
	return u.rng.Float64()*(u.upper-u.lower) + u.lower
}

type normal struct {
	rng  *rand.Rand
	µ, σ float64
}

// Normal returns an RNG that gives values within a normal distribution. The center and standard
// deviation can be set by Mean and SD, respectively.
//
// Default centers and standard deviations can be set by SetDefault for "normal-mean" and
// "normal-sd".
func Normal(rng *rand.Rand) *normal {
	return &normal{source(rng), defaultValue["normal-mean"], defaultValue["normal-sd"]}
}

// SD sets the value of the standard deviation of the normal distribution.
func (n *normal) SD(sd float64) *normal {
	n.σ = sd
	return n
}

// Mean sets the center of the normal distribution.
func (n *normal) Mean(mean float64) *normal {
	n.µ = mean
	return n
}

// Gen is the implementation of RNG for Normal. It returns a random number.
func (n *normal) Gen() float64 {
	return n.rng.NormFloat64()*n.σ + n.µ
}

type truncNormal struct {
	*normal
	trunc float64
}

const defaultTrunc float64 = 2.0

// TruncNormal returns an RNG that gives values within a truncated normal distribution. The
// distribution is truncated at 2 standard deviations. The center and standard deviation can be set
// in the same way as Normal, because Normal is embedded in the TruncNormal type.
//
// Additionally, the number of standard deviations to truncate at can be set by Trunc.
func TruncNormal(rng *rand.Rand) *truncNormal {
	return &truncNormal{Normal(rng), defaultTrunc}
}

// Trunc sets the number of standard deviations to keep on either side. Trunc will panic if given
// sds <= 0.
func (t *truncNormal) Trunc(sds float64) *truncNormal {
	if sds <= 0 {
		panic("given number of standard deviations to truncate after is <= 0")
	}

	t.trunc = sds
	return t
}

// SD sets the value of the standard deviation, returning the TruncNormal.
func (t *truncNormal) SD(sd float64) *truncNormal {
	t.normal.SD(sd)
	return t
}

// Gen is the implementation of RNG for TruncNormal. It returns a random number.
func (t *truncNormal) Gen() float64 {
	for {
		v := t.rng.NormFloat64()
		if v < -t.trunc || v > t.trunc {
			continue
		}

		return v*t.σ + t.µ
	}
}
