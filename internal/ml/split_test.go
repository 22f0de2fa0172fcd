package ml

import "testing"

func TestHoldoutSplit(t *testing.T) {
	tests := []struct {
		n        int
		fraction float64
		want     int
	}{
		{10, 0.2, 8},
		{11, 0.2, 8}, // test size rounds up
		{100, 0.2, 80},
		{5, 0.2, 4},
		{2, 0.2, 1},
	}
	for _, tt := range tests {
		if got := HoldoutSplit(tt.n, tt.fraction); got != tt.want {
			t.Errorf("HoldoutSplit(%d, %v) = %d, want %d", tt.n, tt.fraction, got, tt.want)
		}
	}
}

func TestStratifiedSplitHoldsOutEachLabel(t *testing.T) {
	labels := []string{
		"A", "A", "A", "A",
		"B", "B", "B", "B",
		"C", "C", "C", "C",
	}

	train, test := StratifiedSplit(labels, 0.25, 42)

	if len(train)+len(test) != len(labels) {
		t.Fatalf("split covers %d indices, want %d", len(train)+len(test), len(labels))
	}

	testByLabel := make(map[string]int)
	for _, i := range test {
		testByLabel[labels[i]]++
	}
	for _, label := range []string{"A", "B", "C"} {
		if testByLabel[label] != 1 {
			t.Errorf("label %s has %d test rows, want 1", label, testByLabel[label])
		}
	}

	seen := make(map[int]bool)
	for _, i := range append(append([]int{}, train...), test...) {
		if seen[i] {
			t.Errorf("index %d appears twice", i)
		}
		seen[i] = true
	}
}

func TestStratifiedSplitReproducible(t *testing.T) {
	labels := []string{"A", "A", "A", "B", "B", "B", "C", "C", "C"}

	train1, test1 := StratifiedSplit(labels, 0.25, 42)
	train2, test2 := StratifiedSplit(labels, 0.25, 42)

	for i := range train1 {
		if train1[i] != train2[i] {
			t.Fatalf("train split differs between runs at %d", i)
		}
	}
	for i := range test1 {
		if test1[i] != test2[i] {
			t.Fatalf("test split differs between runs at %d", i)
		}
	}
}

func TestStratifiedSplitSingletonStaysInTrain(t *testing.T) {
	labels := []string{"A", "A", "B"}

	train, test := StratifiedSplit(labels, 0.25, 42)

	for _, i := range test {
		if labels[i] == "B" {
			t.Error("singleton label B landed in the test set")
		}
	}
	foundB := false
	for _, i := range train {
		if labels[i] == "B" {
			foundB = true
		}
	}
	if !foundB {
		t.Error("singleton label B missing from the train set")
	}
}
