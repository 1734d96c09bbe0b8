package backprop

// PatternError measures the error of a single pattern: the sum over every output of
// 0.5*(target - output)^2. The sum is not divided by the number of outputs.
//
// If errs is not nil, PatternError also stores target - output for each output into it, which is
// the vector ProcessErrors expects. outputs, targets and errs (if given) must have the same length.
func PatternError(outputs, targets, errs []float64) float64 {
	var total float64
	for i := range outputs {
		e := targets[i] - outputs[i]
		if errs != nil {
			errs[i] = e
		}

		total += 0.5 * e * e
	}

	return total
}
