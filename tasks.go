package backprop

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// The tasks below are the per-unit work of the forward and backward passes. Each Layer owns one of
// each, created with the Layer and reset before every use, so passing them to the worker pool
// doesn't allocate.
//
// A task run for unit 'out' writes only to outputs[out], signals[out], errors[out] and column
// 'out' of the weights and deltas of its own layer. Concurrent units never share a write location.

// forwardTask computes the signal and activation of one unit.
type forwardTask struct {
	l *Layer
}

func (t *forwardTask) Run(out int) {
	l := t.l
	sum := mat.Dot(l.inVec, l.columns[out])

	l.signals[out] = sum
	l.outputs[out] = Sigmoid(sum)
}

// outputErrorTask computes the error of one unit of the last layer from the error of the network
// output, then updates that unit's incoming weights.
type outputErrorTask struct {
	l *Layer

	outErrs []float64
	rate    float64
	opt     Optimizer
}

func (t *outputErrorTask) reset(outErrs []float64, rate float64, opt Optimizer) {
	t.outErrs = outErrs
	t.rate = rate
	t.opt = opt
}

func (t *outputErrorTask) Run(out int) {
	l := t.l
	l.errors[out] = t.outErrs[out] * SigmoidDeriv(l.signals[out])
	l.updateWeights(out, t.rate, t.opt)
}

// hiddenErrorTask computes the error of one unit of a hidden layer from the errors of the layer
// above it, then updates that unit's incoming weights.
//
// The index 'u' is both the unit's position in its own layer and its input position in the layer
// above, since the output size of one layer is the input size of the next.
type hiddenErrorTask struct {
	l, above *Layer

	rate float64
	opt  Optimizer
}

func (t *hiddenErrorTask) reset(above *Layer, rate float64, opt Optimizer) {
	t.above = above
	t.rate = rate
	t.opt = opt
}

func (t *hiddenErrorTask) Run(u int) {
	l, above := t.l, t.above

	// row u of the layer above holds the weights leaving unit u
	weighted := floats.Dot(above.weights.RawRowView(u), above.errors)

	l.errors[u] = weighted * SigmoidDeriv(l.signals[u])
	l.updateWeights(u, t.rate, t.opt)
}

// updateWeights applies the delta rule to every incoming weight of unit 'out', recording each
// change in the Layer's deltas.
func (l *Layer) updateWeights(out int, rate float64, opt Optimizer) {
	e := l.errors[out]
	ws, ds := l.rawWeights.Data, l.rawDeltas.Data
	stride := l.rawWeights.Stride

	for in, x := range l.in {
		i := in*stride + out
		change := rate * e * x
		if opt != nil {
			change = opt.Change(change, ds[i])
		}

		ws[i] += change
		ds[i] = change
	}
}
