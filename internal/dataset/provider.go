// Package dataset provides the durable stores behind the analytics pipeline:
// an append-only transaction log and a read-only product catalog. Loading is
// tolerant of malformed rows; appending is the one operation that requires
// mutual exclusion so transaction IDs stay unique and strictly increasing.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"salespulse/pkg/contracts/domain"
)

// Sentinel errors distinguishing "absent" from "broken".
var (
	// ErrNoDataset is returned when the transaction log does not exist yet.
	ErrNoDataset = errors.New("sales dataset not found")
	// ErrNoCatalog is returned when the product catalog does not exist.
	ErrNoCatalog = errors.New("product catalog not found")
	// ErrMissingColumns is returned when the log exists but lacks the
	// numeric columns the pipeline depends on.
	ErrMissingColumns = errors.New("dataset is missing required columns")
)

// Provider is the dataset capability the rest of the system consumes.
// Implementations must serialize AppendTransaction so that ID assignment
// remains collision-free under concurrent writers.
type Provider interface {
	LoadTransactions(ctx context.Context) ([]domain.Transaction, error)
	LoadProducts(ctx context.Context) ([]domain.Product, error)
	AppendTransaction(ctx context.Context, nt domain.NewTransaction) (domain.Transaction, error)
}

// ValidationError reports a caller-supplied field that failed a constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}

// validateNew checks the caller-supplied fields of a transaction to append.
func validateNew(nt domain.NewTransaction) error {
	if strings.TrimSpace(nt.Category) == "" {
		return &ValidationError{Field: "product_category", Reason: "required"}
	}
	if strings.TrimSpace(nt.ProductName) == "" {
		return &ValidationError{Field: "product_name", Reason: "required"}
	}
	if strings.TrimSpace(nt.PaymentMethod) == "" {
		return &ValidationError{Field: "payment_method", Reason: "required"}
	}
	if math.IsNaN(nt.UnitPrice) || math.IsInf(nt.UnitPrice, 0) || nt.UnitPrice < 0 {
		return &ValidationError{Field: "unit_price", Reason: "must be a non-negative number"}
	}
	return nil
}

// normalizeHeader strips all whitespace from a column name so callers can
// rely on a fixed schema regardless of source formatting
// ("Transaction ID" and "TransactionID" address the same column).
func normalizeHeader(name string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(name)), "")
}

// nextID implements the ID invariant: max existing ID + 1, or 1 when the
// log is empty.
func nextID(txs []domain.Transaction) int64 {
	var maxID int64
	for _, tx := range txs {
		if tx.ID > maxID {
			maxID = tx.ID
		}
	}
	return maxID + 1
}
