package initializers

import (
	"math"
	"math/rand"

	bp "github.com/sharnoff/backprop"
)

type varianceScaling struct {
	rng *rand.Rand

	// either: "in", "out", "avg"
	mode   string
	factor float64
}

const defaultVarianceMode string = "avg"

// VarianceScaling returns the variance scaling initializer, which has 3 modes and a user-defined
// scaling factor. The three modes can be set by In, Out, and Avg. It defaults to Avg.
//
// Each layer is drawn from a normal distribution truncated at 2 standard deviations, with variance
// factor / n, where n depends on the mode and the size of that layer.
func VarianceScaling(rng *rand.Rand) *varianceScaling {
	return &varianceScaling{source(rng), defaultVarianceMode, defaultValue["varscl-factor"]}
}

// Factor sets the scaling factor to be used for the Initializer. The default factor can be set by
// SetDefault("varscl-factor")
func (v *varianceScaling) Factor(f float64) *varianceScaling {
	v.factor = f
	return v
}

// In sets the scaling to be based on the number of inputs to the layer.
func (v *varianceScaling) In() *varianceScaling {
	v.mode = "in"
	return v
}

// Out sets the scaling to be based on the number of units in the layer.
func (v *varianceScaling) Out() *varianceScaling {
	v.mode = "out"
	return v
}

// Avg sets the scaling to be based on the average of the number of inputs and the number of units.
func (v *varianceScaling) Avg() *varianceScaling {
	v.mode = "avg"
	return v
}

// SD returns the standard deviation used for a layer with the given sizes.
func (v *varianceScaling) SD(inputs, units int) float64 {
	var scale float64
	if v.mode == "in" {
		scale = float64(inputs)
	} else if v.mode == "out" {
		scale = float64(units)
	} else { // must be "avg"
		scale = float64(inputs+units) / 2
	}

	return math.Sqrt(v.factor / scale)
}

// Set is the implementation of Initializer
func (v *varianceScaling) Set(net *bp.Network) {
	ws := make([]float64, 0, net.NumWeights())

	for i := 0; i < net.NumLayers(); i++ {
		l, _ := net.Layer(i)

		gen := &truncNormal{&normal{v.rng, 0, v.SD(l.InputSize(), l.OutputSize())}, defaultTrunc}
		for n := l.InputSize() * l.OutputSize(); n > 0; n-- {
			ws = append(ws, gen.Gen())
		}
	}

	// the length always matches
	net.SetWeights(ws)
}
