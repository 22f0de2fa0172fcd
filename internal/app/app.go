// Package app assembles the application: configuration, logging, the
// dataset store, services, and the HTTP server with its middleware chain.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"salespulse/internal/config"
	"salespulse/internal/dataset"
	apierrors "salespulse/internal/errors"
	"salespulse/internal/exporter"
	"salespulse/internal/infrastructure"
	custommw "salespulse/internal/middleware"
	"salespulse/internal/services"
	handlers "salespulse/internal/transport/http"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Application is the dependency container behind cmd/web.
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Router *chi.Mux
	Server *http.Server

	store      dataset.Provider
	storeClose func() error
}

// New builds the application from configuration: logger, dataset backend,
// services, handlers and the middleware chain.
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	app := &Application{
		Config: cfg,
		Logger: logger,
	}

	if err := app.setupStore(); err != nil {
		return nil, err
	}
	app.setupRouter()

	app.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        app.Router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return app, nil
}

// setupStore opens the configured dataset backend.
func (a *Application) setupStore() error {
	switch a.Config.Dataset.Backend {
	case "sqlite":
		store, err := dataset.OpenSQLiteStore(a.Config.SQLitePath(), a.Logger)
		if err != nil {
			return fmt.Errorf("open sqlite store: %w", err)
		}
		a.store = store
		a.storeClose = store.Close
	default:
		a.store = dataset.NewCSVStore(a.Config.SalesPath(), a.Config.ProductsPath(), a.Logger)
	}

	a.Logger.Info("dataset store ready",
		slog.String("backend", a.Config.Dataset.Backend))
	return nil
}

// setupRouter builds the middleware chain and mounts every handler.
func (a *Application) setupRouter() {
	errorHandler := apierrors.NewErrorHandler(a.Logger, false)

	dataSvc := services.NewDataService(a.store, a.Logger)
	chartSvc := services.NewChartService(a.store, a.Logger)
	predictSvc := services.NewPredictionService(a.store, a.Logger)
	healthSvc := services.NewHealthService(a.store, Version, a.Logger)
	reporter := exporter.NewChartReporter(a.Config.Export.ReportsDir, a.Logger)

	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(custommw.SecurityHeaders)
	r.Use(custommw.Compress(5))

	if a.Config.Security.EnableCORS {
		r.Use(custommw.CORS(custommw.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
			Logger:         a.Logger,
		}))
	}
	if a.Config.Security.RateLimit.Enabled {
		limiter := custommw.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		)
		r.Use(limiter.Handler)
	}
	r.Use(custommw.Timeout(a.Config.Server.WriteTimeout, a.Logger))

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/", handlers.NewDataHandler(dataSvc, a.Logger, errorHandler).Routes())
		r.Mount("/predict", handlers.NewPredictHandler(predictSvc, a.Logger, errorHandler).Routes())
		r.Mount("/health", handlers.NewHealthHandler(healthSvc, a.Logger).Routes())

		chart := handlers.NewChartHandler(chartSvc, reporter, a.Logger, errorHandler)
		r.Get("/chart-data", chart.GetChartData)
		r.Post("/export/chart-data", chart.ExportChartData)
	})

	a.Router = r
}

// Run starts the HTTP server and blocks until a shutdown signal arrives,
// then drains in-flight requests within the configured timeout.
func (a *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server starting",
			slog.String("addr", a.Server.Addr),
			slog.String("version", Version))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		a.Logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return a.Close()
}

// Close releases held resources.
func (a *Application) Close() error {
	var firstErr error
	if a.storeClose != nil {
		if err := a.storeClose(); err != nil {
			firstErr = err
		}
	}
	if err := infrastructure.CloseLogFile(); err != nil && firstErr == nil {
		firstErr = err
	}
	if firstErr != nil {
		return firstErr
	}

	a.Logger.Info("application stopped")
	return nil
}

// WaitForReady polls the health endpoint until the server responds or the
// timeout elapses. Used by integration tests.
func (a *Application) WaitForReady(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	url := fmt.Sprintf("http://localhost:%d/api/health/live", a.Config.Server.Port)

	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server not ready within %s", timeout)
}
