package backprop

import (
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Layer is a single fully-connected layer of sigmoid units. All of its buffers are allocated once,
// when it is added to a Network, and are never resized.
//
// A Layer's input vector is not its own: for every layer after the first, it is a view of the
// previous layer's outputs, so a forward pass chains through the Network without copying.
type Layer struct {
	index int

	inSize, outSize int

	// weights and deltas are inSize x outSize. weights[in][out] connects input 'in' to unit 'out'
	weights, deltas *mat.Dense

	// the raw storage behind weights and deltas, row-major (in-major)
	rawWeights, rawDeltas blas64.General

	// one view per unit of its column of incoming weights, built once so that evaluating a unit
	// doesn't allocate
	columns []mat.Vector

	// in is the current input vector. inVec wraps the same memory for gonum
	in    []float64
	inVec *mat.VecDense

	outputs []float64
	signals []float64
	errors  []float64

	// cached units of work, reset and rerun for every pattern
	forward *forwardTask
	backOut *outputErrorTask
	backHid *hiddenErrorTask
}

// newLayer allocates a Layer. If prev is not nil, the input of the Layer is bound to prev's
// outputs.
func newLayer(index, inSize, outSize int, prev *Layer) *Layer {
	l := &Layer{
		index:   index,
		inSize:  inSize,
		outSize: outSize,
		weights: mat.NewDense(inSize, outSize, nil),
		deltas:  mat.NewDense(inSize, outSize, nil),
		columns: make([]mat.Vector, outSize),
		outputs: make([]float64, outSize),
		signals: make([]float64, outSize),
		errors:  make([]float64, outSize),
	}

	l.rawWeights = l.weights.RawMatrix()
	l.rawDeltas = l.deltas.RawMatrix()

	for out := range l.columns {
		l.columns[out] = l.weights.ColView(out)
	}

	if prev != nil {
		l.in = prev.outputs
		l.inVec = mat.NewVecDense(inSize, prev.outputs)
	} else {
		l.inVec = new(mat.VecDense)
	}

	l.forward = &forwardTask{l}
	l.backOut = &outputErrorTask{l: l}
	l.backHid = &hiddenErrorTask{l: l}

	return l
}

// setInputs rebinds the input of the first layer to the given slice, without copying it.
func (l *Layer) setInputs(inputs []float64) {
	l.in = inputs
	l.inVec.SetRawVector(blas64.Vector{N: len(inputs), Inc: 1, Data: inputs})
}

// Index returns the position of the Layer in its Network.
func (l *Layer) Index() int {
	return l.index
}

// InputSize returns the number of values the Layer takes as input.
func (l *Layer) InputSize() int {
	return l.inSize
}

// OutputSize returns the number of units in the Layer.
func (l *Layer) OutputSize() int {
	return l.outSize
}

// Weight returns the strength of the connection from input 'in' to unit 'out'. Weight allows
// panicking with index-out-of-bounds.
func (l *Layer) Weight(in, out int) float64 {
	return l.weights.At(in, out)
}

// Delta returns the last change applied to the weight from input 'in' to unit 'out'.
func (l *Layer) Delta(in, out int) float64 {
	return l.deltas.At(in, out)
}

// Inputs returns a copy of the Layer's current input values. Before the first forward pass, the
// first layer has no inputs and Inputs returns nil.
func (l *Layer) Inputs() []float64 {
	if l.in == nil {
		return nil
	}
	return dupe(l.in)
}

// Outputs returns a copy of the activations of the Layer from the most recent forward pass.
func (l *Layer) Outputs() []float64 {
	return dupe(l.outputs)
}

// Signals returns a copy of the pre-activation sums of the Layer from the most recent forward
// pass.
func (l *Layer) Signals() []float64 {
	return dupe(l.signals)
}

// Errors returns a copy of the error terms of the Layer from the most recent backward pass.
func (l *Layer) Errors() []float64 {
	return dupe(l.errors)
}

func dupe(fs []float64) []float64 {
	c := make([]float64, len(fs))
	copy(c, fs)
	return c
}
