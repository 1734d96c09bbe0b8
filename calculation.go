package backprop

// ProcessInputs runs a forward pass over the Network with the given inputs and returns the outputs
// of the last layer.
//
// The inputs are not copied: the first layer reads them in place, so they must not be changed
// until ProcessInputs returns. The returned slice is the last layer's own buffer, which is
// overwritten by the next call to ProcessInputs. Copy it to keep it.
//
// ProcessInputs returns ErrNoLayers if the Network is empty and type SizeMismatchError if the
// number of inputs doesn't match InputSize(). In either case, no layer is changed.
func (net *Network) ProcessInputs(inputs []float64) ([]float64, error) {
	if len(net.layers) == 0 {
		return nil, net.fail(ErrNoLayers)
	} else if len(inputs) != net.layers[0].inSize {
		return nil, net.fail(SizeMismatchError{net.layers[0].inSize, len(inputs), "inputs"})
	}

	net.layers[0].setInputs(inputs)

	pool := net.workers()
	for _, l := range net.layers {
		pool.Run(l.outSize, l.forward)
	}

	return net.layers[len(net.layers)-1].outputs, nil
}

// ProcessErrors runs a backward pass over the Network, given the error of each network output
// (typically target - output), and adjusts every weight by the delta rule with the current
// learning rate.
//
// ProcessErrors relies on the state left by the most recent call to ProcessInputs, which must
// have been made with the inputs of the same pattern. This isn't checked; without that call the
// weights are adjusted with stale values.
//
// ProcessErrors returns ErrNoLayers if the Network is empty and type SizeMismatchError if the
// number of errors doesn't match OutputSize().
func (net *Network) ProcessErrors(outErrs []float64) error {
	if len(net.layers) == 0 {
		return net.fail(ErrNoLayers)
	} else if len(outErrs) != net.OutputSize() {
		return net.fail(SizeMismatchError{net.OutputSize(), len(outErrs), "errors"})
	}

	pool := net.workers()

	last := net.layers[len(net.layers)-1]
	last.backOut.reset(outErrs, net.learningRate, net.opt)
	pool.Run(last.outSize, last.backOut)
	last.backOut.reset(nil, 0, nil)

	for i := len(net.layers) - 2; i >= 0; i-- {
		l := net.layers[i]
		l.backHid.reset(net.layers[i+1], net.learningRate, net.opt)
		pool.Run(l.outSize, l.backHid)
	}

	return nil
}
