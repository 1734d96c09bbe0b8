package optimizers

type gradientdescent int8

// GradientDescent returns the plain delta-rule Optimizer: every weight changes by exactly its step.
// This is what a Network does when no Optimizer is set.
func GradientDescent() gradientdescent {
	return gradientdescent(0)
}

// Change is the implementation of backprop.Optimizer
func (g gradientdescent) Change(step, previous float64) float64 {
	return step
}

func (g gradientdescent) TypeString() string {
	return "gradient-descent"
}
