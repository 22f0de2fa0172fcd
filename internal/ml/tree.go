package ml

import (
	"fmt"
	"sort"
)

// DecisionTree is a CART classifier splitting on Gini impurity. Splits are
// searched exhaustively over midpoints between consecutive distinct feature
// values; growth stops on pure nodes, exhausted features or MaxDepth.
type DecisionTree struct {
	// MaxDepth limits tree growth; 0 means unlimited.
	MaxDepth int

	root *treeNode
}

type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	label     string // set on leaves
	leaf      bool
}

func (t *DecisionTree) Fit(x [][]float64, y []string) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("invalid training set: %d rows, %d labels", len(x), len(y))
	}
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	t.root = t.grow(x, y, idx, 0)
	return nil
}

func (t *DecisionTree) Predict(x [][]float64) ([]string, error) {
	if t.root == nil {
		return nil, ErrNotFitted
	}
	out := make([]string, len(x))
	for i, row := range x {
		node := t.root
		for !node.leaf {
			if row[node.feature] <= node.threshold {
				node = node.left
			} else {
				node = node.right
			}
		}
		out[i] = node.label
	}
	return out, nil
}

func (t *DecisionTree) grow(x [][]float64, y []string, idx []int, depth int) *treeNode {
	majority, pure := majorityLabel(y, idx)
	if pure || len(idx) < 2 || (t.MaxDepth > 0 && depth >= t.MaxDepth) {
		return &treeNode{leaf: true, label: majority}
	}

	feature, threshold, ok := bestSplit(x, y, idx)
	if !ok {
		return &treeNode{leaf: true, label: majority}
	}

	var left, right []int
	for _, i := range idx {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &treeNode{leaf: true, label: majority}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      t.grow(x, y, left, depth+1),
		right:     t.grow(x, y, right, depth+1),
	}
}

// bestSplit finds the (feature, threshold) pair with the lowest weighted
// Gini impurity over the given rows.
func bestSplit(x [][]float64, y []string, idx []int) (int, float64, bool) {
	bestGini := gini(y, idx)
	bestFeature, bestThreshold := -1, 0.0
	nFeatures := len(x[idx[0]])

	values := make([]float64, 0, len(idx))
	for f := 0; f < nFeatures; f++ {
		values = values[:0]
		for _, i := range idx {
			values = append(values, x[i][f])
		}
		sort.Float64s(values)

		for v := 1; v < len(values); v++ {
			if values[v] == values[v-1] {
				continue
			}
			threshold := (values[v] + values[v-1]) / 2

			var left, right []int
			for _, i := range idx {
				if x[i][f] <= threshold {
					left = append(left, i)
				} else {
					right = append(right, i)
				}
			}

			weighted := (float64(len(left))*gini(y, left) +
				float64(len(right))*gini(y, right)) / float64(len(idx))
			if weighted < bestGini {
				bestGini = weighted
				bestFeature = f
				bestThreshold = threshold
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

func gini(y []string, idx []int) float64 {
	counts := make(map[string]int)
	for _, i := range idx {
		counts[y[i]]++
	}
	impurity := 1.0
	n := float64(len(idx))
	for _, c := range counts {
		p := float64(c) / n
		impurity -= p * p
	}
	return impurity
}

// majorityLabel returns the most common label among the rows (ties broken
// lexicographically for determinism) and whether the node is pure.
func majorityLabel(y []string, idx []int) (string, bool) {
	counts := make(map[string]int)
	for _, i := range idx {
		counts[y[i]]++
	}
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	best, bestCount := "", -1
	for _, label := range labels {
		if counts[label] > bestCount {
			best, bestCount = label, counts[label]
		}
	}
	return best, len(counts) == 1
}

var _ Classifier = (*DecisionTree)(nil)
