package services

import (
	"context"
	"log/slog"
	"time"

	"salespulse/internal/dataset"
	"salespulse/internal/predict"
	"salespulse/pkg/contracts/domain"
)

// PredictionService runs the three prediction pipelines. Every call loads
// the dataset fresh and refits from scratch: freshness over latency.
type PredictionService struct {
	provider   dataset.Provider
	forecaster predict.Forecaster
	classifier predict.Classifier
	clusterer  predict.Clusterer
	logger     *slog.Logger
}

// NewPredictionService creates a prediction service over the given provider.
func NewPredictionService(provider dataset.Provider, logger *slog.Logger) *PredictionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PredictionService{
		provider: provider,
		logger:   logger.With(slog.String("component", "prediction-service")),
	}
}

// GetForecast returns 30 days of predicted revenue for the chosen model.
func (s *PredictionService) GetForecast(ctx context.Context, model string) (*domain.ForecastResult, error) {
	txs, err := s.provider.LoadTransactions(ctx)
	if err != nil {
		return nil, mapDatasetError(err)
	}

	start := time.Now()
	result, err := s.forecaster.Forecast(txs, model)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "forecast computed",
		slog.String("model", model),
		slog.Float64("mae", result.MAE),
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

// GetClassification tiers every product and reports the selected model's
// held-out accuracy.
func (s *PredictionService) GetClassification(ctx context.Context, model string) (*domain.ClassificationResult, error) {
	txs, err := s.provider.LoadTransactions(ctx)
	if err != nil {
		return nil, mapDatasetError(err)
	}

	start := time.Now()
	result, err := s.classifier.Classify(ctx, txs, model)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "classification computed",
		slog.String("model_used", result.ModelUsed),
		slog.Float64("accuracy", result.ModelAccuracy),
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

// GetClustering segments the product set into 3 clusters.
func (s *PredictionService) GetClustering(ctx context.Context) (*domain.ClusteringResult, error) {
	txs, err := s.provider.LoadTransactions(ctx)
	if err != nil {
		return nil, mapDatasetError(err)
	}

	result, err := s.clusterer.Cluster(txs)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "clustering computed",
		slog.Int("products", len(result.ClusteredProducts)))
	return result, nil
}
