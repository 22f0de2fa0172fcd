package ml

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// MAE returns the mean absolute error between predictions and truth.
// Lower is better. Returns +Inf for empty input so a degenerate candidate
// never wins a selection.
func MAE(predicted, actual []float64) float64 {
	if len(predicted) == 0 || len(predicted) != len(actual) {
		return math.Inf(1)
	}
	diff := make([]float64, len(predicted))
	floats.SubTo(diff, predicted, actual)
	var sum float64
	for _, d := range diff {
		sum += math.Abs(d)
	}
	return sum / float64(len(diff))
}

// Accuracy returns the fraction of matching labels. Higher is better.
// Returns 0 for empty input.
func Accuracy(predicted, actual []string) float64 {
	if len(predicted) == 0 || len(predicted) != len(actual) {
		return 0
	}
	hits := 0
	for i := range predicted {
		if predicted[i] == actual[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(predicted))
}
