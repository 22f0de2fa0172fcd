package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// DataHandler handles catalog and transaction requests with RFC 7807
// error responses.
type DataHandler struct {
	service      DataServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates a new data handler.
func NewDataHandler(service DataServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the data routes.
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/products", h.GetProducts)
	r.Get("/transactions", h.GetTransactions)
	r.Post("/transactions", h.AddTransaction)

	return r
}

// GetProducts handles GET /api/products
func (h *DataHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetProducts(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, products)
}

// GetTransactions handles GET /api/transactions
func (h *DataHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.service.GetTransactions(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, txs)
}

// AddTransaction handles POST /api/transactions
func (h *DataHandler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var nt domain.NewTransaction
	if err := render.DecodeJSON(r.Body, &nt); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(errors.New("request body is not valid JSON")))
		return
	}

	tx, err := h.service.AddTransaction(r.Context(), nt)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "transaction created",
		slog.Int64("transaction_id", tx.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, tx)
}
