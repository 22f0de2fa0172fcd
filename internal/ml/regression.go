// Package ml implements the small model-fitting toolkit behind the
// prediction pipelines: polynomial least squares, three classifiers,
// k-means, feature encoding/scaling, splits and scoring metrics.
// Estimators are deterministic for a fixed input and seed.
package ml

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrNotFitted is returned when Predict is called before Fit.
var ErrNotFitted = errors.New("model has not been fitted")

// PolynomialRegression fits y = c0 + c1*x + ... + cd*x^d by least squares.
// Degree 1 is plain linear regression.
type PolynomialRegression struct {
	Degree int
	coeffs []float64
}

// NewLinearRegression returns a degree-1 regressor.
func NewLinearRegression() *PolynomialRegression {
	return &PolynomialRegression{Degree: 1}
}

// NewPolynomialRegression returns a regressor of the given degree.
func NewPolynomialRegression(degree int) *PolynomialRegression {
	return &PolynomialRegression{Degree: degree}
}

// Fit solves the least-squares problem over the Vandermonde expansion of x.
func (p *PolynomialRegression) Fit(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("mismatched lengths: %d x values, %d y values", len(x), len(y))
	}
	if len(x) == 0 {
		return errors.New("cannot fit on empty input")
	}
	if p.Degree < 1 {
		return fmt.Errorf("invalid degree %d", p.Degree)
	}

	cols := p.Degree + 1
	a := mat.NewDense(len(x), cols, nil)
	for i, xi := range x {
		v := 1.0
		for j := 0; j < cols; j++ {
			a.Set(i, j, v)
			v *= xi
		}
	}
	b := mat.NewVecDense(len(y), y)

	var qr mat.QR
	qr.Factorize(a)

	coeffs := mat.NewVecDense(cols, nil)
	if err := qr.SolveVecTo(coeffs, false, b); err != nil {
		return fmt.Errorf("solve least squares: %w", err)
	}

	p.coeffs = make([]float64, cols)
	copy(p.coeffs, coeffs.RawVector().Data)
	return nil
}

// Predict evaluates the fitted polynomial at each x via Horner's rule.
func (p *PolynomialRegression) Predict(x []float64) ([]float64, error) {
	if p.coeffs == nil {
		return nil, ErrNotFitted
	}
	out := make([]float64, len(x))
	for i, xi := range x {
		v := 0.0
		for j := len(p.coeffs) - 1; j >= 0; j-- {
			v = v*xi + p.coeffs[j]
		}
		out[i] = v
	}
	return out, nil
}

// Coefficients returns the fitted coefficients in ascending-degree order.
func (p *PolynomialRegression) Coefficients() []float64 {
	return append([]float64(nil), p.coeffs...)
}
