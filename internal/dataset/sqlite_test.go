package dataset

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/pkg/contracts/domain"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "sales.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreEmptyTables(t *testing.T) {
	store := newSQLiteStore(t)

	_, err := store.LoadTransactions(context.Background())
	assert.ErrorIs(t, err, ErrNoDataset)

	_, err = store.LoadProducts(context.Background())
	assert.ErrorIs(t, err, ErrNoCatalog)
}

func TestSQLiteStoreAppendAndLoad(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	first, err := store.AppendTransaction(ctx, domain.NewTransaction{
		Category:      "Electronics",
		ProductName:   "Phone",
		UnitPrice:     500,
		PaymentMethod: "Card",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, 1, first.UnitsSold)
	assert.Equal(t, 500.0, first.TotalRevenue)

	second, err := store.AppendTransaction(ctx, domain.NewTransaction{
		Category:      "Electronics",
		ProductName:   "Charger",
		UnitPrice:     20,
		PaymentMethod: "Card",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)

	txs, err := store.LoadTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "Phone", txs[0].ProductName)
	assert.Equal(t, "Charger", txs[1].ProductName)
}

func TestSQLiteStoreAppendValidation(t *testing.T) {
	store := newSQLiteStore(t)

	_, err := store.AppendTransaction(context.Background(), domain.NewTransaction{
		ProductName:   "Phone",
		UnitPrice:     500,
		PaymentMethod: "Card",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "product_category", verr.Field)
}

func TestSQLiteStoreSeedTransactions(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedTransactions(ctx, []domain.Transaction{
		{ID: 3, Date: "01/03/2024", Category: "Electronics", ProductName: "Phone",
			UnitsSold: 2, UnitPrice: 500, TotalRevenue: 1000, PaymentMethod: "Card"},
		{ID: 7, Date: "02/03/2024", Category: "Clothing", ProductName: "Shirt",
			UnitsSold: 1, UnitPrice: 20, TotalRevenue: 20, PaymentMethod: "Cash"},
	}))

	txs, err := store.LoadTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, int64(3), txs[0].ID)
	assert.Equal(t, int64(7), txs[1].ID)

	// the next append continues past the seeded IDs
	next, err := store.AppendTransaction(ctx, domain.NewTransaction{
		Category:      "Clothing",
		ProductName:   "Hat",
		UnitPrice:     15,
		PaymentMethod: "Cash",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8), next.ID)

	// reseeding replaces, not appends
	require.NoError(t, store.SeedTransactions(ctx, []domain.Transaction{
		{ID: 1, Date: "03/03/2024", Category: "Books", ProductName: "Novel",
			UnitsSold: 1, UnitPrice: 10, TotalRevenue: 10, PaymentMethod: "Cash"},
	}))
	txs, err = store.LoadTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
}

func TestSQLiteStoreSeedProducts(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedProducts(ctx, []domain.Product{
		{Name: "Phone", Category: "Electronics", UnitPrice: 500},
		{Name: "Shirt", Category: "Clothing", UnitPrice: 20},
	}))

	products, err := store.LoadProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Phone", products[0].Name)

	// reseeding replaces, not appends
	require.NoError(t, store.SeedProducts(ctx, []domain.Product{
		{Name: "Hat", Category: "Clothing", UnitPrice: 15},
	}))
	products, err = store.LoadProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
}
