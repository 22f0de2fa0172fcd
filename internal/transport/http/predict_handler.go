package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// PredictHandler serves the three prediction endpoints. Model selection is
// a query parameter defaulting to "best".
type PredictHandler struct {
	service      PredictionServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewPredictHandler creates a new prediction handler.
func NewPredictHandler(service PredictionServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *PredictHandler {
	return &PredictHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "predict_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the prediction routes.
func (h *PredictHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/forecast", h.GetForecast)
	r.Get("/classification", h.GetClassification)
	r.Get("/clustering", h.GetClustering)

	return r
}

// GetForecast handles GET /api/predict/forecast?model=
func (h *PredictHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	model := modelParam(r)
	result, err := h.service.GetForecast(r.Context(), model)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// GetClassification handles GET /api/predict/classification?model=
func (h *PredictHandler) GetClassification(w http.ResponseWriter, r *http.Request) {
	model := modelParam(r)
	result, err := h.service.GetClassification(r.Context(), model)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// GetClustering handles GET /api/predict/clustering
func (h *PredictHandler) GetClustering(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetClustering(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

func modelParam(r *http.Request) string {
	if model := r.URL.Query().Get("model"); model != "" {
		return model
	}
	return domain.ForecastModelBest
}
