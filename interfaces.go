package backprop

// Optimizer decides the change applied to a single weight during a backward pass.
//
// step is the pure delta-rule change for the weight, learningRate * error * input. previous is the
// change that was applied to the same weight on the previous pattern (zero before the first).
// Change returns the value that is added to the weight and then stored as its new delta.
//
// Change is called concurrently for weights of different units, so it must not keep state of its
// own.
type Optimizer interface {
	Change(step, previous float64) float64

	// TypeString returns the name of the type of the Optimizer, for example "momentum".
	TypeString() string
}
