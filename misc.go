package backprop

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// CorrectRound returns a function that reports whether each output equals its target once both
// are rounded to the given number of decimal places. With precision 0, outputs are rounded to the
// nearest integer.
//
// The returned function assumes len(outs) == len(targets).
func CorrectRound(precision int) func(outs, targets []float64) bool {
	scale := math.Pow10(precision)
	round := func(x float64) float64 {
		return math.Round(x*scale) / scale
	}

	return func(outs, targets []float64) bool {
		for i := range outs {
			if round(outs[i]) != round(targets[i]) {
				return false
			}
		}

		return true
	}
}

// CorrectHighest returns whether the largest output is at the same index as the largest target.
func CorrectHighest(outs, targets []float64) bool {
	return floats.MaxIdx(outs) == floats.MaxIdx(targets)
}

// TrainUntil returns a function that satisfies TrainArgs.RunCondition, stopping once the given
// number of epochs have run.
func TrainUntil(maxEpochs int) func(int, float64) bool {
	return func(epoch int, totalError float64) bool {
		return epoch < maxEpochs
	}
}

// UntilError returns a function that satisfies TrainArgs.RunCondition, stopping once the total
// error of an epoch is at or below target.
func UntilError(target float64) func(int, float64) bool {
	return func(epoch int, totalError float64) bool {
		return totalError > target
	}
}

// Both combines two run conditions; training continues only while both allow it.
func Both(a, b func(int, float64) bool) func(int, float64) bool {
	return func(epoch int, totalError float64) bool {
		return a(epoch, totalError) && b(epoch, totalError)
	}
}
