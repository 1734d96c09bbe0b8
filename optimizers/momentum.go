package optimizers

import (
	"math"

	"github.com/pkg/errors"
)

type momentum struct {
	m float64
}

// Momentum returns an Optimizer that adds a fraction m of the previous change to each weight
// along with its delta-rule step. Momentum returns an error if m is not in [0, 1).
func Momentum(m float64) (momentum, error) {
	if math.IsNaN(m) || m < 0 || m >= 1 {
		return momentum{}, errors.Errorf("momentum must be in [0, 1), got %v", m)
	}

	return momentum{m}, nil
}

// Momentum_Lazy calls Momentum, but panics instead of returning an error
func Momentum_Lazy(m float64) momentum {
	o, err := Momentum(m)
	if err != nil {
		panic(err)
	}
	return o
}

// Change is the implementation of backprop.Optimizer
func (o momentum) Change(step, previous float64) float64 {
	return step + o.m*previous
}

func (o momentum) TypeString() string {
	return "momentum"
}

// Factor returns the fraction of the previous change that is carried over.
func (o momentum) Factor() float64 {
	return o.m
}
