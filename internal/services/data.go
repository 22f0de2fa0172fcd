// Package services wires the dataset provider to the aggregation and
// prediction engines and translates storage-level failures into the API
// error taxonomy.
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"salespulse/internal/dataset"
	apperrors "salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// DataService serves raw catalog and transaction reads plus appends.
type DataService struct {
	provider dataset.Provider
	validate *validator.Validate
	logger   *slog.Logger
}

// NewDataService creates a data service over the given provider.
func NewDataService(provider dataset.Provider, logger *slog.Logger) *DataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataService{
		provider: provider,
		validate: validator.New(),
		logger:   logger.With(slog.String("component", "data-service")),
	}
}

// GetProducts returns the product catalog.
func (s *DataService) GetProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.provider.LoadProducts(ctx)
	if err != nil {
		return nil, mapDatasetError(err)
	}
	return products, nil
}

// GetTransactions returns the full transaction log.
func (s *DataService) GetTransactions(ctx context.Context) ([]domain.Transaction, error) {
	txs, err := s.provider.LoadTransactions(ctx)
	if err != nil {
		return nil, mapDatasetError(err)
	}
	return txs, nil
}

// AddTransaction validates and durably appends a new sale, returning the
// stored record with its assigned ID.
func (s *DataService) AddTransaction(ctx context.Context, nt domain.NewTransaction) (domain.Transaction, error) {
	if err := s.validate.Struct(nt); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]apperrors.ValidationError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, apperrors.ValidationError{
					Field:   fe.Field(),
					Message: fe.Tag(),
				})
			}
			return domain.Transaction{}, apperrors.NewValidationErrors(fields)
		}
		return domain.Transaction{}, apperrors.InvalidRequestWithError(err)
	}

	tx, err := s.provider.AppendTransaction(ctx, nt)
	if err != nil {
		return domain.Transaction{}, mapDatasetError(err)
	}

	s.logger.InfoContext(ctx, "transaction recorded",
		slog.Int64("transaction_id", tx.ID),
		slog.String("category", tx.Category))
	return tx, nil
}

// mapDatasetError translates provider failures into the API taxonomy.
// APIErrors produced further down pass through unchanged.
func mapDatasetError(err error) error {
	var apiErr *apperrors.APIError
	if errors.As(err, &apiErr) {
		return err
	}

	var verr *dataset.ValidationError
	switch {
	case errors.Is(err, dataset.ErrNoDataset):
		return apperrors.ErrDatasetNotFound
	case errors.Is(err, dataset.ErrNoCatalog):
		return apperrors.ErrCatalogNotFound
	case errors.Is(err, dataset.ErrMissingColumns):
		return apperrors.DataError(err.Error())
	case errors.As(err, &verr):
		return apperrors.ErrValidation(verr.Field, verr.Reason)
	default:
		return err
	}
}
