package backprop

import "math"

// Sigmoid is the logistic function, 1/(1+e^-x). It saturates to exactly 0 or 1 for large |x|
// without producing NaN.
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// SigmoidDeriv returns the derivative of Sigmoid, evaluated at the pre-activation signal (not at
// the already activated output).
func SigmoidDeriv(signal float64) float64 {
	s := Sigmoid(signal)
	return s * (1 - s)
}
