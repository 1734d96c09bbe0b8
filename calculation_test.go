package backprop

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
)

// reference is a plain, sequential version of the propagation, used to check the Network.
// weights[l][in][out]
type reference struct {
	weights [][][]float64
	inputs  [][]float64
	signals [][]float64
}

func newReference(sizes []int, flat []float64) *reference {
	r := new(reference)
	for l := 0; l < len(sizes)-1; l++ {
		w := make([][]float64, sizes[l])
		for in := range w {
			w[in] = make([]float64, sizes[l+1])
			for out := range w[in] {
				w[in][out] = flat[0]
				flat = flat[1:]
			}
		}
		r.weights = append(r.weights, w)
	}
	return r
}

func (r *reference) forward(x []float64) []float64 {
	r.inputs, r.signals = nil, nil
	for _, w := range r.weights {
		r.inputs = append(r.inputs, x)
		sig := make([]float64, len(w[0]))
		next := make([]float64, len(w[0]))
		for out := range sig {
			for in := range x {
				sig[out] += x[in] * w[in][out]
			}
			next[out] = Sigmoid(sig[out])
		}
		r.signals = append(r.signals, sig)
		x = next
	}
	return x
}

func (r *reference) backward(outErrs []float64, rate float64) {
	last := len(r.weights) - 1
	errs := make([][]float64, len(r.weights))

	update := func(l, out int) {
		for in := range r.weights[l] {
			r.weights[l][in][out] += rate * errs[l][out] * r.inputs[l][in]
		}
	}

	errs[last] = make([]float64, len(outErrs))
	for out := range outErrs {
		errs[last][out] = outErrs[out] * SigmoidDeriv(r.signals[last][out])
		update(last, out)
	}

	for l := last - 1; l >= 0; l-- {
		above := r.weights[l+1]
		errs[l] = make([]float64, len(r.signals[l]))
		for u := range errs[l] {
			var sum float64
			for out2 := range above[u] {
				sum += errs[l+1][out2] * above[u][out2]
			}
			errs[l][u] = sum * SigmoidDeriv(r.signals[l][u])
			update(l, u)
		}
	}
}

func (r *reference) flat() []float64 {
	var f []float64
	for _, w := range r.weights {
		for in := range w {
			f = append(f, w[in]...)
		}
	}
	return f
}

func build(t *testing.T, sizes ...int) *Network {
	t.Helper()

	net := new(Network)
	if err := net.AddFirst(sizes[0], sizes[1]); err != nil {
		t.Fatalf("AddFirst: %v", err)
	}
	for _, s := range sizes[2:] {
		if err := net.Add(s); err != nil {
			t.Fatalf("Add(%d): %v", s, err)
		}
	}

	t.Cleanup(net.Close)
	return net
}

func closeTo(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestForwardSingleLayer(t *testing.T) {
	net := build(t, 2, 1)
	if err := net.SetWeights([]float64{0.5, -0.5}); err != nil {
		t.Fatal(err)
	}

	outs, err := net.ProcessInputs([]float64{1, 0})
	if err != nil {
		t.Fatal(err)
	}

	if len(outs) != 1 || math.Abs(outs[0]-Sigmoid(0.5)) > 1e-12 {
		t.Errorf("outputs = %v, want [%v]", outs, Sigmoid(0.5))
	}

	l, _ := net.Layer(0)
	if s := l.Signals(); s[0] != 0.5 {
		t.Errorf("signal = %v, want 0.5", s[0])
	}
}

func TestForwardMatchesReference(t *testing.T) {
	sizes := []int{4, 6, 3, 2}
	net := build(t, sizes...)
	net.SetThreads(4)
	net.InitGaussian(rand.New(rand.NewSource(3)))

	ref := newReference(sizes, net.Weights())

	rng := rand.New(rand.NewSource(4))
	for trial := 0; trial < 10; trial++ {
		x := make([]float64, sizes[0])
		for i := range x {
			x[i] = rng.Float64()*2 - 1
		}

		outs, err := net.ProcessInputs(x)
		if err != nil {
			t.Fatal(err)
		}

		if want := ref.forward(x); !closeTo(outs, want, 1e-12) {
			t.Errorf("trial %d: outputs %v, want %v", trial, outs, want)
		}
	}
}

func TestLayersShareBuffers(t *testing.T) {
	net := build(t, 2, 3, 2)
	net.InitGaussian(rand.New(rand.NewSource(1)))

	outs, _ := net.ProcessInputs([]float64{0.3, -0.7})

	first, _ := net.Layer(0)
	second, _ := net.Layer(1)
	if !reflect.DeepEqual(second.Inputs(), first.Outputs()) {
		t.Errorf("layer 1 inputs %v != layer 0 outputs %v", second.Inputs(), first.Outputs())
	}
	if &second.in[0] != &first.outputs[0] {
		t.Errorf("layer 1 inputs are a copy of layer 0 outputs, not the same buffer")
	}

	// the returned outputs are live
	before := outs[0]
	net.ProcessInputs([]float64{5, 5})
	if outs[0] == before {
		t.Errorf("returned outputs did not change with the next forward pass")
	}
}

type layerState struct {
	in, outputs, signals, errors []float64
	weights                      []float64
}

func snapshot(net *Network) []layerState {
	var s []layerState
	for _, l := range net.layers {
		s = append(s, layerState{l.Inputs(), l.Outputs(), l.Signals(), l.Errors(), dupe(l.rawWeights.Data)})
	}
	return s
}

func TestProcessInputsSizeMismatch(t *testing.T) {
	net := build(t, 3, 2, 1)
	net.InitGaussian(rand.New(rand.NewSource(9)))
	net.SetLearningRate(0.5)

	x := []float64{1, 2, 3}
	outs, _ := net.ProcessInputs(x)
	net.ProcessErrors([]float64{1 - outs[0]})

	before := snapshot(net)

	for _, bad := range [][]float64{nil, {1}, {1, 2, 3, 4}} {
		_, err := net.ProcessInputs(bad)
		if !IsSizeMismatch(err) {
			t.Fatalf("ProcessInputs(%v): got %v, want SizeMismatchError", bad, err)
		}

		e := err.(SizeMismatchError)
		if e.Expected != 3 || e.Got != len(bad) || e.What != "inputs" {
			t.Errorf("ProcessInputs(%v): error %+v", bad, e)
		}
	}

	if after := snapshot(net); !reflect.DeepEqual(before, after) {
		t.Errorf("failed ProcessInputs changed the Network")
	}
}

func TestProcessErrorsSizeMismatch(t *testing.T) {
	net := build(t, 2, 2)
	net.SetLearningRate(1)
	net.ProcessInputs([]float64{1, 1})

	err := net.ProcessErrors([]float64{1})
	if !IsSizeMismatch(err) {
		t.Fatalf("got %v, want SizeMismatchError", err)
	}
	if e := err.(SizeMismatchError); e.Expected != 2 || e.Got != 1 || e.What != "errors" {
		t.Errorf("error %+v", e)
	}
}

func TestEmptyNetwork(t *testing.T) {
	net := new(Network)
	if _, err := net.ProcessInputs([]float64{1}); err != ErrNoLayers {
		t.Errorf("ProcessInputs: got %v, want ErrNoLayers", err)
	}
	if err := net.ProcessErrors([]float64{1}); err != ErrNoLayers {
		t.Errorf("ProcessErrors: got %v, want ErrNoLayers", err)
	}
}

func TestBackwardMatchesReference(t *testing.T) {
	sizes := []int{3, 4, 2}
	net := build(t, sizes...)
	net.InitGaussian(rand.New(rand.NewSource(11)))
	net.SetLearningRate(0.7)

	ref := newReference(sizes, net.Weights())

	patterns := [][2][]float64{
		{{1, 0, 0.5}, {1, 0}},
		{{0, 1, -0.5}, {0, 1}},
		{{0.2, 0.2, 0.2}, {0.5, 0.5}},
	}

	for round := 0; round < 5; round++ {
		for _, p := range patterns {
			outs, err := net.ProcessInputs(p[0])
			if err != nil {
				t.Fatal(err)
			}
			errs := make([]float64, len(outs))
			PatternError(outs, p[1], errs)
			if err = net.ProcessErrors(errs); err != nil {
				t.Fatal(err)
			}

			refOuts := ref.forward(p[0])
			refErrs := make([]float64, len(refOuts))
			PatternError(refOuts, p[1], refErrs)
			ref.backward(refErrs, 0.7)
		}
	}

	if !closeTo(net.Weights(), ref.flat(), 1e-10) {
		t.Errorf("weights after training:\n%v\nwant\n%v", net.Weights(), ref.flat())
	}
}

func TestDeltasRecordChanges(t *testing.T) {
	net := build(t, 2, 2, 1)
	net.InitGaussian(rand.New(rand.NewSource(5)))
	net.SetLearningRate(0.3)

	before := net.Weights()
	outs, _ := net.ProcessInputs([]float64{0.5, -1})
	net.ProcessErrors([]float64{1 - outs[0]})
	after := net.Weights()

	i := 0
	for _, l := range net.layers {
		for in := 0; in < l.InputSize(); in++ {
			for out := 0; out < l.OutputSize(); out++ {
				if d := l.Delta(in, out); d != after[i]-before[i] && math.Abs(d-(after[i]-before[i])) > 1e-15 {
					t.Errorf("layer %d delta[%d][%d] = %v, weight moved by %v", l.Index(), in, out, d, after[i]-before[i])
				}
				i++
			}
		}
	}
}

// runPatterns trains a copy of the given weights on fixed patterns and returns every output seen
// and the final weights
func runPatterns(t *testing.T, threads int, weights []float64) ([]float64, []float64) {
	net := build(t, 5, 16, 9, 3)
	net.SetThreads(threads)
	net.SetLearningRate(0.4)
	if err := net.SetWeights(weights); err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(21))
	var seen []float64
	for p := 0; p < 30; p++ {
		x := make([]float64, 5)
		for i := range x {
			x[i] = rng.Float64()
		}
		target := []float64{rng.Float64(), rng.Float64(), rng.Float64()}

		outs, err := net.ProcessInputs(x)
		if err != nil {
			t.Fatal(err)
		}
		seen = append(seen, outs...)

		errs := make([]float64, 3)
		PatternError(outs, target, errs)
		if err = net.ProcessErrors(errs); err != nil {
			t.Fatal(err)
		}
	}

	return seen, net.Weights()
}

func TestDeterministicAcrossThreads(t *testing.T) {
	seeded := build(t, 5, 16, 9, 3)
	seeded.InitGaussian(rand.New(rand.NewSource(17)))
	weights := seeded.Weights()

	wantOuts, wantWeights := runPatterns(t, 1, weights)

	for _, threads := range []int{2, 3, 8} {
		outs, ws := runPatterns(t, threads, weights)
		if !reflect.DeepEqual(outs, wantOuts) {
			t.Errorf("%d threads: outputs differ from a single thread", threads)
		}
		if !reflect.DeepEqual(ws, wantWeights) {
			t.Errorf("%d threads: weights differ from a single thread", threads)
		}
	}
}

func TestBackwardReducesError(t *testing.T) {
	net := build(t, 2, 2, 1)
	net.SetLearningRate(1)
	if err := net.SetWeights([]float64{0.1, 0.2, 0.3, 0.4, -1, -1}); err != nil {
		t.Fatal(err)
	}

	x, target := []float64{1, 1}, []float64{1}
	errs := make([]float64, 1)

	var first, last float64
	for i := 0; i < 500; i++ {
		outs, err := net.ProcessInputs(x)
		if err != nil {
			t.Fatal(err)
		}

		e := PatternError(outs, target, errs)
		if i == 0 {
			first = e
		} else if i > 3 && e > last {
			t.Fatalf("iteration %d: error rose from %v to %v", i, last, e)
		}
		last = e

		if err = net.ProcessErrors(errs); err != nil {
			t.Fatal(err)
		}
	}

	if first <= 0.1 {
		t.Errorf("starting error %v, expected > 0.1", first)
	}
	if last >= 0.01 {
		t.Errorf("error after 500 iterations %v, expected < 0.01", last)
	}
}

type halfStep struct{}

func (halfStep) Change(step, previous float64) float64 { return step / 2 }
func (halfStep) TypeString() string                    { return "half" }

func TestOptimizerIsUsed(t *testing.T) {
	plain := build(t, 2, 1)
	halved := build(t, 2, 1)
	halved.SetOptimizer(halfStep{})

	for _, net := range []*Network{plain, halved} {
		net.SetWeights([]float64{0.2, 0.4})
		net.SetLearningRate(1)
		outs, _ := net.ProcessInputs([]float64{1, 1})
		net.ProcessErrors([]float64{1 - outs[0]})
	}

	p, _ := plain.Layer(0)
	h, _ := halved.Layer(0)
	if math.Abs(h.Delta(0, 0)-p.Delta(0, 0)/2) > 1e-15 {
		t.Errorf("delta with optimizer %v, without %v", h.Delta(0, 0), p.Delta(0, 0))
	}
}
