// Package http contains the chi handlers exposing the analytics API.
// Handlers depend on narrow service interfaces so tests can substitute
// mocks without touching the real provider.
package http

import (
	"context"

	"salespulse/internal/services"
	"salespulse/pkg/contracts/domain"
)

// DataServiceInterface serves catalog and transaction operations.
type DataServiceInterface interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	GetTransactions(ctx context.Context) ([]domain.Transaction, error)
	AddTransaction(ctx context.Context, nt domain.NewTransaction) (domain.Transaction, error)
}

// ChartServiceInterface serves the aggregate chart views.
type ChartServiceInterface interface {
	GetChartData(ctx context.Context) (*domain.ChartData, error)
}

// PredictionServiceInterface serves the three prediction pipelines.
type PredictionServiceInterface interface {
	GetForecast(ctx context.Context, model string) (*domain.ForecastResult, error)
	GetClassification(ctx context.Context, model string) (*domain.ClassificationResult, error)
	GetClustering(ctx context.Context) (*domain.ClusteringResult, error)
}

// ExportServiceInterface writes chart reports to disk.
type ExportServiceInterface interface {
	ExportCSV(data *domain.ChartData) (string, error)
	ExportWorkbook(data *domain.ChartData) (string, error)
}

// HealthServiceInterface reports service and data-source status.
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	LivenessCheck(ctx context.Context) services.HealthStatus
}
