package backprop

import (
	"math"
	"runtime"

	"github.com/sharnoff/backprop/utils"
)

// Network is a feed-forward, fully connected multilayer perceptron. A Network is created by:
//
//	net := new(Network)
//
// The first layer is added with AddFirst, every following one with Add or AddLayer.
//
// A Network must not be used from multiple goroutines at once; it parallelizes each layer
// internally.
type Network struct {
	layers []*Layer

	learningRate float64
	opt          Optimizer

	// number of worker goroutines. 0 means runtime.NumCPU()
	threads int
	pool    *utils.Pool

	// whether or not the network should panic when it encounters an error
	panicErrors bool
}

// fail returns err, or panics with it if PanicErrors() has been called.
func (net *Network) fail(err error) error {
	if net.panicErrors {
		panic(err)
	}
	return err
}

// PanicErrors makes the Network panic with any contract violation it would otherwise return.
func (net *Network) PanicErrors() *Network {
	net.panicErrors = true
	return net
}

// AddFirst adds the first layer of the Network, which takes inputSize values as input and has
// outputSize units. AddFirst returns a TopologyError if the Network already has a layer or if
// either size is less than one.
func (net *Network) AddFirst(inputSize, outputSize int) error {
	if len(net.layers) != 0 {
		return net.fail(TopologyError{"the first layer has already been added"})
	} else if inputSize < 1 || outputSize < 1 {
		return net.fail(TopologyError{"layer sizes must be >= 1"})
	}

	net.layers = append(net.layers, newLayer(0, inputSize, outputSize, nil))
	return nil
}

// Add appends a layer with outputSize units, taking the outputs of the current last layer as its
// inputs. Add returns a TopologyError if there are no layers yet or if outputSize is less than one.
func (net *Network) Add(outputSize int) error {
	if len(net.layers) == 0 {
		return net.fail(TopologyError{"the first layer must be added with AddFirst"})
	}

	return net.AddLayer(net.OutputSize(), outputSize)
}

// AddLayer appends a layer with an explicit input size, which must equal the output size of the
// current last layer. Otherwise, a TopologyError is returned.
func (net *Network) AddLayer(inputSize, outputSize int) error {
	if len(net.layers) == 0 {
		return net.fail(TopologyError{"the first layer must be added with AddFirst"})
	} else if outputSize < 1 {
		return net.fail(TopologyError{"layer sizes must be >= 1"})
	}

	prev := net.layers[len(net.layers)-1]
	if inputSize != prev.outSize {
		return net.fail(TopologyError{"input size of a layer must equal the output size of the one before"})
	}

	net.layers = append(net.layers, newLayer(len(net.layers), inputSize, outputSize, prev))
	return nil
}

// NumLayers returns the number of layers in the Network.
func (net *Network) NumLayers() int {
	return len(net.layers)
}

// Layer returns the layer at the given index, or an OutOfRangeError.
func (net *Network) Layer(index int) (*Layer, error) {
	if index < 0 || index >= len(net.layers) {
		return nil, net.fail(OutOfRangeError{index, len(net.layers)})
	}

	return net.layers[index], nil
}

// InputSize returns the number of input values the Network expects, or -1 if it has no layers.
func (net *Network) InputSize() int {
	if len(net.layers) == 0 {
		return -1
	}
	return net.layers[0].inSize
}

// OutputSize returns the number of output values of the Network, or -1 if it has no layers.
func (net *Network) OutputSize() int {
	if len(net.layers) == 0 {
		return -1
	}
	return net.layers[len(net.layers)-1].outSize
}

// SetLearningRate sets the rate used by ProcessErrors. It returns ErrBadRate if the rate is not a
// positive, finite number.
func (net *Network) SetLearningRate(rate float64) error {
	if !(rate > 0) || math.IsInf(rate, 0) {
		return net.fail(ErrBadRate)
	}

	net.learningRate = rate
	return nil
}

// LearningRate returns the rate used by ProcessErrors.
func (net *Network) LearningRate() float64 {
	return net.learningRate
}

// SetOptimizer sets the Optimizer used to turn delta-rule steps into weight changes. A nil
// Optimizer applies the steps unchanged, which is also the default.
func (net *Network) SetOptimizer(opt Optimizer) *Network {
	net.opt = opt
	return net
}

// SetThreads sets the number of goroutines used to compute layers. Values below one mean
// runtime.NumCPU(). Changing the number of threads replaces the worker pool.
func (net *Network) SetThreads(threads int) *Network {
	if threads < 1 {
		threads = 0
	}

	if threads != net.threads && net.pool != nil {
		net.pool.Close()
		net.pool = nil
	}

	net.threads = threads
	return net
}

// Threads returns the number of goroutines used to compute layers.
func (net *Network) Threads() int {
	if net.threads == 0 {
		return runtime.NumCPU()
	}
	return net.threads
}

// workers returns the worker pool of the Network, starting it on first use.
func (net *Network) workers() *utils.Pool {
	if net.pool == nil {
		net.pool = utils.NewPool(net.threads)
	}
	return net.pool
}

// Close stops the worker goroutines of the Network. The Network remains usable; a new pool is
// started if it is used again.
func (net *Network) Close() {
	if net.pool != nil {
		net.pool.Close()
		net.pool = nil
	}
}
