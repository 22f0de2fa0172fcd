package services

import (
	"context"
	"log/slog"

	"salespulse/internal/analytics"
	"salespulse/internal/dataset"
	"salespulse/pkg/contracts/domain"
)

// ChartService recomputes the dashboard aggregates on every call; there is
// no cross-request cache, so appended transactions show up immediately.
type ChartService struct {
	provider dataset.Provider
	logger   *slog.Logger
}

// NewChartService creates a chart service over the given provider.
func NewChartService(provider dataset.Provider, logger *slog.Logger) *ChartService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartService{
		provider: provider,
		logger:   logger.With(slog.String("component", "chart-service")),
	}
}

// GetChartData loads both sources and assembles every aggregate view.
func (s *ChartService) GetChartData(ctx context.Context) (*domain.ChartData, error) {
	txs, err := s.provider.LoadTransactions(ctx)
	if err != nil {
		return nil, mapDatasetError(err)
	}
	products, err := s.provider.LoadProducts(ctx)
	if err != nil {
		return nil, mapDatasetError(err)
	}

	data := analytics.BuildChartData(txs, products)

	s.logger.DebugContext(ctx, "chart data computed",
		slog.Int("transactions", len(txs)),
		slog.Int("categories", len(data.Categories)))
	return &data, nil
}
