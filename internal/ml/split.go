package ml

import "math/rand"

// HoldoutSplit cuts a sequence at the 80% mark without shuffling: the first
// part trains, the tail evaluates. Ordering is preserved so a time series
// split never leaks future rows into training.
func HoldoutSplit(n int, testFraction float64) (trainEnd int) {
	testSize := int(float64(n)*testFraction + 0.999999) // ceil
	if testSize < 1 && n > 1 {
		testSize = 1
	}
	trainEnd = n - testSize
	if trainEnd < 1 {
		trainEnd = 1
	}
	return trainEnd
}

// StratifiedSplit partitions indices 0..n-1 into train and test sets,
// holding out testFraction of each label group. The shuffle is driven by
// the given seed so repeated runs on identical input are reproducible.
// Groups of one stay entirely in the training set.
func StratifiedSplit(labels []string, testFraction float64, seed int64) (train, test []int) {
	groups := make(map[string][]int)
	var order []string
	for i, label := range labels {
		if _, ok := groups[label]; !ok {
			order = append(order, label)
		}
		groups[label] = append(groups[label], i)
	}

	rng := rand.New(rand.NewSource(seed))
	for _, label := range order {
		idx := groups[label]
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		testSize := int(float64(len(idx)) * testFraction)
		if testSize < 1 && len(idx) >= 2 {
			testSize = 1
		}
		test = append(test, idx[:testSize]...)
		train = append(train, idx[testSize:]...)
	}
	return train, test
}
