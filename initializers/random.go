package initializers

import (
	bp "github.com/sharnoff/backprop"
)

// Initializer sets every weight of a Network. Deltas are reset as a side effect.
type Initializer interface {
	Set(net *bp.Network)
}

type random struct {
	RNG
}

// Random returns an Initializer that uses the provided RNG to generate the weights. There is no
// scaling beyond that of the RNG.
func Random(g RNG) random {
	return random{g}
}

// Set is the implementation of Initializer
func (r random) Set(net *bp.Network) {
	net.InitWeights(r.Gen)
}
