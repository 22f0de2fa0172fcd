package ml

import (
	"math"
	"testing"
)

func TestOneHotEncoder(t *testing.T) {
	var enc OneHotEncoder
	enc.Fit([]string{"Electronics", "Books", "Electronics", "Clothing"})

	if enc.Width() != 3 {
		t.Fatalf("Width() = %d, want 3", enc.Width())
	}

	// columns are in sorted category order: Books, Clothing, Electronics
	rows := enc.Transform([]string{"Electronics", "Books", "Garden"})
	want := [][]float64{
		{0, 0, 1},
		{1, 0, 0},
		{0, 0, 0}, // unknown category encodes to all zeros
	}
	for i, row := range rows {
		for j, v := range row {
			if v != want[i][j] {
				t.Errorf("Transform()[%d][%d] = %v, want %v", i, j, v, want[i][j])
			}
		}
	}
}

func TestStandardScaler(t *testing.T) {
	rows := [][]float64{
		{1, 100},
		{2, 200},
		{3, 300},
		{4, 400},
	}

	var scaler StandardScaler
	scaled := scaler.FitTransform(rows)

	for j := 0; j < 2; j++ {
		var mean, ss float64
		for _, row := range scaled {
			mean += row[j]
		}
		mean /= float64(len(scaled))
		for _, row := range scaled {
			d := row[j] - mean
			ss += d * d
		}
		std := math.Sqrt(ss / float64(len(scaled)))

		if !almostEqual(mean, 0, 1e-9) {
			t.Errorf("column %d mean = %v, want 0", j, mean)
		}
		if !almostEqual(std, 1, 1e-9) {
			t.Errorf("column %d std = %v, want 1", j, std)
		}
	}
}

func TestStandardScalerConstantColumn(t *testing.T) {
	rows := [][]float64{{5, 1}, {5, 2}, {5, 3}}

	var scaler StandardScaler
	scaled := scaler.FitTransform(rows)

	for i, row := range scaled {
		if row[0] != 0 {
			t.Errorf("row %d constant column = %v, want 0", i, row[0])
		}
	}
}
