package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/pkg/contracts/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestStore(t *testing.T) (*CSVStore, string, string) {
	t.Helper()
	dir := t.TempDir()
	salesPath := filepath.Join(dir, "sales.csv")
	productsPath := filepath.Join(dir, "products.csv")
	return NewCSVStore(salesPath, productsPath, nil), salesPath, productsPath
}

func TestCSVStoreLoadTransactions(t *testing.T) {
	store, salesPath, _ := newTestStore(t)

	writeFile(t, salesPath,
		"Transaction ID,Date,Product Category,Product Name,Units Sold,Unit Price,Total Revenue,Payment Method\n"+
			"1,01/03/2024,Electronics,Phone,2,500,1000,Card\n"+
			"2,02/03/2024,Clothing,Shirt,3,20,60,Cash\n")

	txs, err := store.LoadTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, int64(1), txs[0].ID)
	assert.Equal(t, "Electronics", txs[0].Category)
	assert.Equal(t, 2, txs[0].UnitsSold)
	assert.Equal(t, 1000.0, txs[0].TotalRevenue)
	assert.Equal(t, "Cash", txs[1].PaymentMethod)
}

func TestCSVStoreLoadTransactionsMissingFile(t *testing.T) {
	store, _, _ := newTestStore(t)

	_, err := store.LoadTransactions(context.Background())
	assert.ErrorIs(t, err, ErrNoDataset)
}

func TestCSVStoreLoadTransactionsHeaderWhitespace(t *testing.T) {
	store, salesPath, _ := newTestStore(t)

	// column names may carry stray spaces from upstream exports
	writeFile(t, salesPath,
		" Transaction ID , Date ,Product Category,Product Name, Units Sold ,Unit Price, Total Revenue ,Payment Method\n"+
			"7,05/03/2024,Books,Novel,1,12.5,12.5,Card\n")

	txs, err := store.LoadTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, int64(7), txs[0].ID)
	assert.Equal(t, 12.5, txs[0].TotalRevenue)
}

func TestCSVStoreLoadTransactionsMissingColumns(t *testing.T) {
	store, salesPath, _ := newTestStore(t)

	writeFile(t, salesPath,
		"Transaction ID,Date,Product Category,Product Name,Unit Price,Payment Method\n"+
			"1,01/03/2024,Electronics,Phone,500,Card\n")

	_, err := store.LoadTransactions(context.Background())
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestCSVStoreLoadTransactionsCoercesJunkNumbers(t *testing.T) {
	store, salesPath, _ := newTestStore(t)

	writeFile(t, salesPath,
		"Transaction ID,Date,Product Category,Product Name,Units Sold,Unit Price,Total Revenue,Payment Method\n"+
			"1,01/03/2024,Electronics,Phone,abc,500,n/a,Card\n")

	txs, err := store.LoadTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, 0, txs[0].UnitsSold)
	assert.Equal(t, 0.0, txs[0].TotalRevenue)
	assert.Equal(t, 500.0, txs[0].UnitPrice)
}

func TestReadTransactionsCountsUnparseableRows(t *testing.T) {
	in := strings.NewReader(
		"Transaction ID,Date,Product Category,Product Name,Units Sold,Unit Price,Total Revenue,Payment Method\n" +
			"1,01/03/2024,Electronics,Phone,2,500,1000,Card\n" +
			"2,02/03/2024,Cloth\"ing,Shirt,3,20,60,Cash\n" +
			"3,03/03/2024,Books,Novel,1,12.5,12.5,Card\n")

	txs, skipped, err := readTransactions(in)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, txs, 2)
	assert.Equal(t, int64(1), txs[0].ID)
	assert.Equal(t, int64(3), txs[1].ID)
}

func TestReadTransactionsKeepsShortRows(t *testing.T) {
	// seven fields, payment method missing
	in := strings.NewReader(
		"Transaction ID,Date,Product Category,Product Name,Units Sold,Unit Price,Total Revenue,Payment Method\n" +
			"1,01/03/2024,Electronics,Phone,2,500,1000\n")

	txs, skipped, err := readTransactions(in)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, txs, 1)
	assert.Equal(t, 1000.0, txs[0].TotalRevenue)
	assert.Empty(t, txs[0].PaymentMethod)
}

func TestCSVStoreAppendTransaction(t *testing.T) {
	store, salesPath, _ := newTestStore(t)

	writeFile(t, salesPath,
		"Transaction ID,Date,Product Category,Product Name,Units Sold,Unit Price,Total Revenue,Payment Method\n"+
			"1,01/03/2024,Electronics,Phone,2,500,1000,Card\n")

	tx, err := store.AppendTransaction(context.Background(), domain.NewTransaction{
		Category:      "Electronics",
		ProductName:   "Charger",
		UnitPrice:     20.0,
		PaymentMethod: "Card",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), tx.ID)
	assert.Equal(t, 1, tx.UnitsSold)
	assert.Equal(t, 20.0, tx.TotalRevenue)
	assert.NotEmpty(t, tx.Date)

	txs, err := store.LoadTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "Charger", txs[1].ProductName)
}

func TestCSVStoreAppendTransactionEmptyLog(t *testing.T) {
	store, salesPath, _ := newTestStore(t)

	tx, err := store.AppendTransaction(context.Background(), domain.NewTransaction{
		Category:      "Books",
		ProductName:   "Atlas",
		UnitPrice:     30.0,
		PaymentMethod: "Cash",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), tx.ID)

	data, err := os.ReadFile(salesPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Transaction ID,Date,Product Category"))
}

func TestCSVStoreAppendTransactionValidation(t *testing.T) {
	store, _, _ := newTestStore(t)

	tests := []struct {
		name  string
		input domain.NewTransaction
		field string
	}{
		{
			name:  "missing category",
			input: domain.NewTransaction{ProductName: "X", UnitPrice: 1, PaymentMethod: "Card"},
			field: "product_category",
		},
		{
			name:  "missing product name",
			input: domain.NewTransaction{Category: "Books", UnitPrice: 1, PaymentMethod: "Card"},
			field: "product_name",
		},
		{
			name:  "negative price",
			input: domain.NewTransaction{Category: "Books", ProductName: "X", UnitPrice: -1, PaymentMethod: "Card"},
			field: "unit_price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.AppendTransaction(context.Background(), tt.input)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCSVStoreAppendAfterNonSequentialIDs(t *testing.T) {
	store, salesPath, _ := newTestStore(t)

	writeFile(t, salesPath,
		"Transaction ID,Date,Product Category,Product Name,Units Sold,Unit Price,Total Revenue,Payment Method\n"+
			"3,01/03/2024,Electronics,Phone,2,500,1000,Card\n"+
			"9,02/03/2024,Clothing,Shirt,3,20,60,Cash\n")

	tx, err := store.AppendTransaction(context.Background(), domain.NewTransaction{
		Category:      "Clothing",
		ProductName:   "Hat",
		UnitPrice:     15,
		PaymentMethod: "Cash",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), tx.ID)
}

func TestCSVStoreLoadProducts(t *testing.T) {
	store, _, productsPath := newTestStore(t)

	writeFile(t, productsPath,
		"Product Name,Product Category,Unit Price\n"+
			"Phone,Electronics,500\n"+
			"Shirt,Clothing,20\n")

	products, err := store.LoadProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Phone", products[0].Name)
	assert.Equal(t, 20.0, products[1].UnitPrice)
}

func TestCSVStoreLoadProductsMissingFile(t *testing.T) {
	store, _, _ := newTestStore(t)

	_, err := store.LoadProducts(context.Background())
	assert.ErrorIs(t, err, ErrNoCatalog)
}
