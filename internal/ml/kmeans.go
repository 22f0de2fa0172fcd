package ml

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// KMeansResult carries the best clustering run: one assignment per input
// row, the final centroids and the total within-cluster sum of squares.
type KMeansResult struct {
	Assignments []int
	Centroids   [][]float64
	Inertia     float64
}

// KMeans runs Lloyd's algorithm nInit times from seeded random centroid
// choices and keeps the lowest-inertia run. Cluster IDs carry no semantic
// ordering and are only stable for a fixed input and seed.
func KMeans(rows [][]float64, k, nInit int, seed int64) (*KMeansResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("invalid cluster count %d", k)
	}
	if len(rows) < k {
		return nil, fmt.Errorf("%d rows cannot form %d clusters", len(rows), k)
	}
	if nInit < 1 {
		nInit = 1
	}

	rng := rand.New(rand.NewSource(seed))
	best := &KMeansResult{Inertia: math.Inf(1)}

	for run := 0; run < nInit; run++ {
		result := lloyd(rows, k, rng)
		if result.Inertia < best.Inertia {
			best = result
		}
	}
	return best, nil
}

// lloyd runs one k-means pass to convergence from random distinct seeds.
func lloyd(rows [][]float64, k int, rng *rand.Rand) *KMeansResult {
	dims := len(rows[0])

	// pick k distinct rows as initial centroids
	perm := rng.Perm(len(rows))
	centroids := make([][]float64, k)
	for c := 0; c < k; c++ {
		centroids[c] = append([]float64(nil), rows[perm[c]]...)
	}

	assignments := make([]int, len(rows))
	const maxIter = 300

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, row := range rows {
			c := nearestCentroid(row, centroids)
			if c != assignments[i] {
				assignments[i] = c
				changed = true
			}
		}
		if iter > 0 && !changed {
			break
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, row := range rows {
			floats.Add(sums[assignments[i]], row)
			counts[assignments[i]]++
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				// re-seed an emptied cluster from a random row
				centroids[c] = append([]float64(nil), rows[rng.Intn(len(rows))]...)
				continue
			}
			floats.Scale(1/float64(counts[c]), sums[c])
			centroids[c] = sums[c]
		}
	}

	var inertia float64
	for i, row := range rows {
		inertia += squaredDistance(row, centroids[assignments[i]])
	}
	return &KMeansResult{
		Assignments: assignments,
		Centroids:   centroids,
		Inertia:     inertia,
	}
}

func nearestCentroid(row []float64, centroids [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for c, centroid := range centroids {
		if d := squaredDistance(row, centroid); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
