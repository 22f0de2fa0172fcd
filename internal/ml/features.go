package ml

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// OneHotEncoder maps category strings to binary indicator columns. The
// column order is the sorted set of categories seen at Fit time; unknown
// categories at transform time encode to all zeros rather than failing.
type OneHotEncoder struct {
	columns map[string]int
	width   int
}

// Fit records the distinct categories of the training set.
func (e *OneHotEncoder) Fit(categories []string) {
	set := make(map[string]bool, len(categories))
	for _, c := range categories {
		set[c] = true
	}
	names := make([]string, 0, len(set))
	for c := range set {
		names = append(names, c)
	}
	sort.Strings(names)

	e.columns = make(map[string]int, len(names))
	for i, c := range names {
		e.columns[c] = i
	}
	e.width = len(names)
}

// Transform encodes each category as an indicator row.
func (e *OneHotEncoder) Transform(categories []string) [][]float64 {
	out := make([][]float64, len(categories))
	for i, c := range categories {
		row := make([]float64, e.width)
		if j, ok := e.columns[c]; ok {
			row[j] = 1
		}
		out[i] = row
	}
	return out
}

// Width returns the number of indicator columns.
func (e *OneHotEncoder) Width() int {
	return e.width
}

// StandardScaler centers each feature column to zero mean and scales it to
// unit variance. Constant columns are left centered but unscaled.
type StandardScaler struct {
	means []float64
	stds  []float64
}

// Fit computes per-column means and population standard deviations.
func (s *StandardScaler) Fit(rows [][]float64) {
	if len(rows) == 0 {
		return
	}
	cols := len(rows[0])
	s.means = make([]float64, cols)
	s.stds = make([]float64, cols)

	col := make([]float64, len(rows))
	for j := 0; j < cols; j++ {
		for i, row := range rows {
			col[i] = row[j]
		}
		mean := stat.Mean(col, nil)

		var ss float64
		for _, v := range col {
			d := v - mean
			ss += d * d
		}
		std := math.Sqrt(ss / float64(len(col)))

		s.means[j] = mean
		if std == 0 {
			std = 1
		}
		s.stds[j] = std
	}
}

// Transform returns standardized copies of the input rows.
func (s *StandardScaler) Transform(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.means[j]) / s.stds[j]
		}
		out[i] = scaled
	}
	return out
}

// FitTransform fits the scaler and transforms the input in one step.
func (s *StandardScaler) FitTransform(rows [][]float64) [][]float64 {
	s.Fit(rows)
	return s.Transform(rows)
}
