package ml

import (
	"fmt"
	"math"
	"sort"
)

// BernoulliNB is a Bernoulli naive Bayes classifier. Features are binarized
// at zero (value > 0 counts as present) and per-class feature probabilities
// carry Laplace smoothing, so unseen feature/class pairs never zero out a
// posterior.
type BernoulliNB struct {
	// Alpha is the smoothing strength; defaults to 1.
	Alpha float64

	classes   []string
	logPrior  []float64
	logProb   [][]float64 // log P(feature=1 | class)
	logProbC  [][]float64 // log P(feature=0 | class)
	nFeatures int
}

func (nb *BernoulliNB) Fit(x [][]float64, y []string) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("invalid training set: %d rows, %d labels", len(x), len(y))
	}

	alpha := nb.Alpha
	if alpha == 0 {
		alpha = 1
	}
	nb.nFeatures = len(x[0])

	counts := make(map[string]int)
	featureCounts := make(map[string][]float64)
	for i, row := range x {
		label := y[i]
		counts[label]++
		if featureCounts[label] == nil {
			featureCounts[label] = make([]float64, nb.nFeatures)
		}
		for j, v := range row {
			if v > 0 {
				featureCounts[label][j]++
			}
		}
	}

	nb.classes = make([]string, 0, len(counts))
	for label := range counts {
		nb.classes = append(nb.classes, label)
	}
	sort.Strings(nb.classes)

	n := float64(len(x))
	nb.logPrior = make([]float64, len(nb.classes))
	nb.logProb = make([][]float64, len(nb.classes))
	nb.logProbC = make([][]float64, len(nb.classes))

	for c, label := range nb.classes {
		classN := float64(counts[label])
		nb.logPrior[c] = math.Log(classN / n)
		nb.logProb[c] = make([]float64, nb.nFeatures)
		nb.logProbC[c] = make([]float64, nb.nFeatures)
		for j := 0; j < nb.nFeatures; j++ {
			p := (featureCounts[label][j] + alpha) / (classN + 2*alpha)
			nb.logProb[c][j] = math.Log(p)
			nb.logProbC[c][j] = math.Log(1 - p)
		}
	}
	return nil
}

func (nb *BernoulliNB) Predict(x [][]float64) ([]string, error) {
	if nb.classes == nil {
		return nil, ErrNotFitted
	}
	out := make([]string, len(x))
	for i, row := range x {
		best, bestScore := 0, math.Inf(-1)
		for c := range nb.classes {
			score := nb.logPrior[c]
			for j := 0; j < nb.nFeatures && j < len(row); j++ {
				if row[j] > 0 {
					score += nb.logProb[c][j]
				} else {
					score += nb.logProbC[c][j]
				}
			}
			if score > bestScore {
				best, bestScore = c, score
			}
		}
		out[i] = nb.classes[best]
	}
	return out, nil
}

var _ Classifier = (*BernoulliNB)(nil)
