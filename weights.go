package backprop

import (
	"math/rand"
	"time"
)

// NumWeights returns the total number of weights in the Network, summed over every layer.
func (net *Network) NumWeights() int {
	total := 0
	for _, l := range net.layers {
		total += l.inSize * l.outSize
	}
	return total
}

// InitWeights sets every weight in the Network to a value given by gen, in the same order as
// Weights(). All deltas are reset to zero.
func (net *Network) InitWeights(gen func() float64) {
	for _, l := range net.layers {
		for i := range l.rawWeights.Data {
			l.rawWeights.Data[i] = gen()
			l.rawDeltas.Data[i] = 0
		}
	}
}

// InitGaussian sets every weight to an independent sample of the standard normal distribution
// drawn from rng. If rng is nil, a source seeded from the current time is used.
func (net *Network) InitGaussian(rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	net.InitWeights(rng.NormFloat64)
}

// Weights returns a copy of every weight in the Network as a single vector: layer by layer, and
// within a layer by input first, then by unit. That is, weights[in][out] of a layer is at offset
// in*OutputSize() + out from the start of that layer.
func (net *Network) Weights() []float64 {
	ws := make([]float64, 0, net.NumWeights())
	for _, l := range net.layers {
		ws = append(ws, l.rawWeights.Data...)
	}
	return ws
}

// SetWeights sets every weight in the Network from a vector in the order given by Weights(). All
// deltas are reset to zero. If len(values) is not NumWeights(), type SizeMismatchError is returned
// and nothing is changed.
func (net *Network) SetWeights(values []float64) error {
	if len(values) != net.NumWeights() {
		return net.fail(SizeMismatchError{net.NumWeights(), len(values), "weights"})
	}

	for _, l := range net.layers {
		n := copy(l.rawWeights.Data, values)
		values = values[n:]

		for i := range l.rawDeltas.Data {
			l.rawDeltas.Data[i] = 0
		}
	}

	return nil
}
