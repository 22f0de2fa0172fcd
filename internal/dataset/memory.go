package dataset

import (
	"context"
	"sync"
	"time"

	"salespulse/pkg/contracts/domain"
)

// MemoryStore is an in-memory Provider used by tests and by the service
// layer's cached reads. It mirrors the file stores' semantics, including
// the "no dataset yet" sentinel for an empty log.
type MemoryStore struct {
	mu           sync.RWMutex
	transactions []domain.Transaction
	products     []domain.Product
}

// NewMemoryStore seeds a store with the given rows.
func NewMemoryStore(txs []domain.Transaction, products []domain.Product) *MemoryStore {
	return &MemoryStore{
		transactions: append([]domain.Transaction(nil), txs...),
		products:     append([]domain.Product(nil), products...),
	}
}

func (s *MemoryStore) LoadTransactions(ctx context.Context) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.transactions) == 0 {
		return nil, ErrNoDataset
	}
	return append([]domain.Transaction(nil), s.transactions...), nil
}

func (s *MemoryStore) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.products) == 0 {
		return nil, ErrNoCatalog
	}
	return append([]domain.Product(nil), s.products...), nil
}

func (s *MemoryStore) AppendTransaction(ctx context.Context, nt domain.NewTransaction) (domain.Transaction, error) {
	if err := validateNew(nt); err != nil {
		return domain.Transaction{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := domain.Transaction{
		ID:            nextID(s.transactions),
		Date:          time.Now().Format(domain.DateLayout),
		Category:      nt.Category,
		ProductName:   nt.ProductName,
		UnitsSold:     1,
		UnitPrice:     nt.UnitPrice,
		TotalRevenue:  nt.UnitPrice,
		PaymentMethod: nt.PaymentMethod,
	}
	s.transactions = append(s.transactions, tx)
	return tx, nil
}

var _ Provider = (*MemoryStore)(nil)
