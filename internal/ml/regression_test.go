package ml

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestLinearRegressionRecoversLine(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5}
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = 3 + 2*xi
	}

	model := NewLinearRegression()
	if err := model.Fit(x, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	pred, err := model.Predict([]float64{10})
	if err != nil {
		t.Fatalf("Predict() error: %v", err)
	}
	if !almostEqual(pred[0], 23, 1e-6) {
		t.Errorf("Predict(10) = %v, want 23", pred[0])
	}

	coeffs := model.Coefficients()
	if !almostEqual(coeffs[0], 3, 1e-6) || !almostEqual(coeffs[1], 2, 1e-6) {
		t.Errorf("Coefficients() = %v, want [3 2]", coeffs)
	}
}

func TestPolynomialRegressionRecoversCubic(t *testing.T) {
	x := []float64{-2, -1, 0, 1, 2, 3, 4}
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = 1 - 2*xi + 0.5*xi*xi + 0.25*xi*xi*xi
	}

	model := NewPolynomialRegression(3)
	if err := model.Fit(x, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	pred, err := model.Predict([]float64{5})
	if err != nil {
		t.Fatalf("Predict() error: %v", err)
	}
	want := 1 - 2*5.0 + 0.5*25 + 0.25*125
	if !almostEqual(pred[0], want, 1e-6) {
		t.Errorf("Predict(5) = %v, want %v", pred[0], want)
	}
}

func TestPolynomialRegressionErrors(t *testing.T) {
	tests := []struct {
		name  string
		model *PolynomialRegression
		x, y  []float64
	}{
		{"empty input", NewLinearRegression(), nil, nil},
		{"mismatched lengths", NewLinearRegression(), []float64{1, 2}, []float64{1}},
		{"invalid degree", NewPolynomialRegression(0), []float64{1, 2}, []float64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.model.Fit(tt.x, tt.y); err == nil {
				t.Error("Fit() returned nil error, want non-nil")
			}
		})
	}
}

func TestPredictBeforeFit(t *testing.T) {
	model := NewLinearRegression()
	if _, err := model.Predict([]float64{1}); err != ErrNotFitted {
		t.Errorf("Predict() error = %v, want ErrNotFitted", err)
	}
}
