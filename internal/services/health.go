package services

import (
	"context"
	"log/slog"
	"time"

	"salespulse/internal/dataset"
)

// HealthStatus is the response of the health endpoint.
type HealthStatus struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// HealthService reports liveness plus the availability of both data
// sources. A missing dataset degrades the status but the process itself
// still reports healthy transport.
type HealthService struct {
	provider dataset.Provider
	version  string
	started  time.Time
	logger   *slog.Logger
}

// NewHealthService creates a health service over the given provider.
func NewHealthService(provider dataset.Provider, version string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		provider: provider,
		version:  version,
		started:  time.Now(),
		logger:   logger.With(slog.String("component", "health-service")),
	}
}

// HealthCheck probes both data sources and summarizes overall status:
// "healthy" when both load, "degraded" otherwise.
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	checks := make(map[string]string, 2)
	status := "healthy"

	if _, err := s.provider.LoadTransactions(ctx); err != nil {
		checks["dataset"] = err.Error()
		status = "degraded"
	} else {
		checks["dataset"] = "ok"
	}

	if _, err := s.provider.LoadProducts(ctx); err != nil {
		checks["catalog"] = err.Error()
		status = "degraded"
	} else {
		checks["catalog"] = "ok"
	}

	return HealthStatus{
		Status:    status,
		Version:   s.version,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}
}

// LivenessCheck reports only that the process is serving.
func (s *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Version:   s.version,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
