package ml

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// LogisticRegression is a multinomial (softmax) classifier trained by
// full-batch gradient descent from a zero initialization, so training is
// deterministic for a fixed input.
type LogisticRegression struct {
	// LearningRate defaults to 0.1, Iterations to 1000.
	LearningRate float64
	Iterations   int

	classes []string
	weights [][]float64 // [class][feature]
	bias    []float64
}

func (lr *LogisticRegression) Fit(x [][]float64, y []string) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("invalid training set: %d rows, %d labels", len(x), len(y))
	}

	rate := lr.LearningRate
	if rate == 0 {
		rate = 0.1
	}
	iters := lr.Iterations
	if iters == 0 {
		iters = 1000
	}

	classSet := make(map[string]int)
	for _, label := range y {
		classSet[label] = 0
	}
	lr.classes = make([]string, 0, len(classSet))
	for label := range classSet {
		lr.classes = append(lr.classes, label)
	}
	sort.Strings(lr.classes)
	for i, label := range lr.classes {
		classSet[label] = i
	}

	nClasses := len(lr.classes)
	nFeatures := len(x[0])
	n := float64(len(x))

	lr.weights = make([][]float64, nClasses)
	for c := range lr.weights {
		lr.weights[c] = make([]float64, nFeatures)
	}
	lr.bias = make([]float64, nClasses)

	probs := make([]float64, nClasses)
	gradW := make([][]float64, nClasses)
	for c := range gradW {
		gradW[c] = make([]float64, nFeatures)
	}
	gradB := make([]float64, nClasses)

	for iter := 0; iter < iters; iter++ {
		for c := range gradW {
			for j := range gradW[c] {
				gradW[c][j] = 0
			}
			gradB[c] = 0
		}

		for i, row := range x {
			lr.softmax(row, probs)
			target := classSet[y[i]]
			for c := 0; c < nClasses; c++ {
				err := probs[c]
				if c == target {
					err -= 1
				}
				floats.AddScaled(gradW[c], err, row)
				gradB[c] += err
			}
		}

		for c := 0; c < nClasses; c++ {
			floats.AddScaled(lr.weights[c], -rate/n, gradW[c])
			lr.bias[c] -= rate / n * gradB[c]
		}
	}
	return nil
}

func (lr *LogisticRegression) Predict(x [][]float64) ([]string, error) {
	if lr.weights == nil {
		return nil, ErrNotFitted
	}
	probs := make([]float64, len(lr.classes))
	out := make([]string, len(x))
	for i, row := range x {
		lr.softmax(row, probs)
		best := 0
		for c := 1; c < len(probs); c++ {
			if probs[c] > probs[best] {
				best = c
			}
		}
		out[i] = lr.classes[best]
	}
	return out, nil
}

// softmax fills probs with the class probabilities for one feature row,
// shifting by the max logit for numeric stability.
func (lr *LogisticRegression) softmax(row []float64, probs []float64) {
	maxLogit := math.Inf(-1)
	for c := range lr.classes {
		logit := lr.bias[c] + floats.Dot(lr.weights[c], row)
		probs[c] = logit
		if logit > maxLogit {
			maxLogit = logit
		}
	}
	var sum float64
	for c := range probs {
		probs[c] = math.Exp(probs[c] - maxLogit)
		sum += probs[c]
	}
	for c := range probs {
		probs[c] /= sum
	}
}

var _ Classifier = (*LogisticRegression)(nil)
