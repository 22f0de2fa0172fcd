package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	apierrors "salespulse/internal/errors"
)

// ChartHandler serves the aggregate chart views and their report exports.
type ChartHandler struct {
	charts       ChartServiceInterface
	exports      ExportServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(charts ChartServiceInterface, exports ExportServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ChartHandler {
	return &ChartHandler{
		charts:       charts,
		exports:      exports,
		logger:       logger.With(slog.String("component", "chart_handler")),
		errorHandler: errorHandler,
	}
}

// GetChartData handles GET /api/chart-data
func (h *ChartHandler) GetChartData(w http.ResponseWriter, r *http.Request) {
	data, err := h.charts.GetChartData(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, data)
}

// ExportChartData handles POST /api/export/chart-data. The format query
// parameter selects csv (default) or xlsx.
func (h *ChartHandler) ExportChartData(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	switch format {
	case "", "csv", "xlsx":
	default:
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", "must be csv or xlsx"))
		return
	}

	data, err := h.charts.GetChartData(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var path string
	if format == "xlsx" {
		path, err = h.exports.ExportWorkbook(data)
	} else {
		path, err = h.exports.ExportCSV(data)
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.FileSystemError("export", err))
		return
	}

	h.logger.InfoContext(r.Context(), "chart data exported",
		slog.String("path", path),
		slog.String("format", format))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]string{"path": path})
}
