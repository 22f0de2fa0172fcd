package predict

import (
	"fmt"
	"math"
	"sort"
	"time"

	apperrors "salespulse/internal/errors"
	"salespulse/internal/ml"
	"salespulse/pkg/contracts/domain"
)

const (
	forecastMinRows  = 10
	forecastHorizon  = 30
	forecastTestFrac = 0.2
)

// Forecaster predicts future daily revenue by fitting linear and degree-3
// polynomial candidates over a row-index time axis. One chronologically
// sorted row is one time step; rows are not bucketed by calendar day, so a
// day with several sales contributes several steps.
type Forecaster struct{}

// Forecast runs the full pipeline: sort, split, score both candidates on
// the held-out tail, select one, refit the winner on the whole series and
// extrapolate 30 daily points past the last observed date. Explicit
// "linear"/"polynomial" requests are honored; any other name, "best"
// included, falls back to the automatic lowest-MAE selection.
func (f *Forecaster) Forecast(txs []domain.Transaction, model string) (*domain.ForecastResult, error) {
	rows := sortableRows(txs)
	if len(rows) < forecastMinRows {
		return nil, apperrors.InsufficientDataError(
			fmt.Sprintf("forecast requires at least %d dated transactions, got %d",
				forecastMinRows, len(rows)))
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].date.Before(rows[j].date) })

	x := make([]float64, len(rows))
	y := make([]float64, len(rows))
	for i, row := range rows {
		x[i] = float64(i)
		y[i] = row.revenue
	}

	trainEnd := ml.HoldoutSplit(len(rows), forecastTestFrac)

	candidates := []struct {
		name  string
		build func() *ml.PolynomialRegression
	}{
		{domain.ForecastModelLinear, ml.NewLinearRegression},
		{domain.ForecastModelPolynomial, func() *ml.PolynomialRegression { return ml.NewPolynomialRegression(3) }},
	}

	maes := make(map[string]float64, len(candidates))
	for _, cand := range candidates {
		reg := cand.build()
		if err := reg.Fit(x[:trainEnd], y[:trainEnd]); err != nil {
			return nil, fmt.Errorf("fit %s candidate: %w", cand.name, err)
		}
		pred, err := reg.Predict(x[trainEnd:])
		if err != nil {
			return nil, fmt.Errorf("score %s candidate: %w", cand.name, err)
		}
		maes[cand.name] = ml.MAE(pred, y[trainEnd:])
	}

	selected := model
	switch selected {
	case domain.ForecastModelLinear, domain.ForecastModelPolynomial:
	default:
		selected = chooseForecastModel(
			maes[domain.ForecastModelLinear],
			maes[domain.ForecastModelPolynomial])
	}

	// the held-out split only chose the model family; the final fit sees
	// the whole series
	final := ml.NewLinearRegression()
	if selected == domain.ForecastModelPolynomial {
		final = ml.NewPolynomialRegression(3)
	}
	if err := final.Fit(x, y); err != nil {
		return nil, fmt.Errorf("refit %s on full series: %w", selected, err)
	}

	future := make([]float64, forecastHorizon)
	for i := range future {
		future[i] = float64(len(rows) + i)
	}
	predicted, err := final.Predict(future)
	if err != nil {
		return nil, fmt.Errorf("forecast %s: %w", selected, err)
	}

	lastDate := rows[len(rows)-1].date
	points := make([]domain.ForecastPoint, forecastHorizon)
	for i := range points {
		points[i] = domain.ForecastPoint{
			Date:     lastDate.AddDate(0, 0, i+1).Format("2006-01-02"),
			Forecast: round2(predicted[i]),
		}
	}

	return &domain.ForecastResult{
		Forecast: points,
		MAE:      round2(maes[selected]),
	}, nil
}

// chooseForecastModel picks linear only when it scores strictly lower;
// a tie goes to the polynomial candidate.
func chooseForecastModel(linearMAE, polyMAE float64) string {
	if linearMAE < polyMAE {
		return domain.ForecastModelLinear
	}
	return domain.ForecastModelPolynomial
}

type datedRow struct {
	date    time.Time
	revenue float64
}

// sortableRows keeps only rows whose date parses; undated rows cannot be
// placed on the time axis.
func sortableRows(txs []domain.Transaction) []datedRow {
	rows := make([]datedRow, 0, len(txs))
	for _, tx := range txs {
		d, ok := tx.ParsedDate()
		if !ok {
			continue
		}
		rows = append(rows, datedRow{date: d, revenue: tx.TotalRevenue})
	}
	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
