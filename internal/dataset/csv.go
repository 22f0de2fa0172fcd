package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"salespulse/pkg/contracts/domain"
)

// canonical column order of the transaction log on disk
var salesHeader = []string{
	"Transaction ID",
	"Date",
	"Product Category",
	"Product Name",
	"Units Sold",
	"Unit Price",
	"Total Revenue",
	"Payment Method",
}

// CSVStore persists the transaction log and product catalog as CSV files.
// Reads go straight to disk so out-of-band edits are picked up; the append
// path is serialized with a mutex so ID assignment never races.
type CSVStore struct {
	salesPath    string
	productsPath string
	logger       *slog.Logger

	mu sync.Mutex // guards read-modify-append on the sales file
}

// NewCSVStore creates a store over the given file paths.
func NewCSVStore(salesPath, productsPath string, logger *slog.Logger) *CSVStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVStore{
		salesPath:    salesPath,
		productsPath: productsPath,
		logger:       logger.With(slog.String("component", "dataset.csv")),
	}
}

// LoadTransactions reads the full transaction log. Rows that fail CSV
// parsing are skipped and counted; short or long rows are kept, with
// missing cells read as empty and extra cells ignored. Unparseable numeric
// cells coerce to zero.
func (s *CSVStore) LoadTransactions(ctx context.Context) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.salesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoDataset
		}
		return nil, fmt.Errorf("open sales file: %w", err)
	}
	defer f.Close()

	txs, skipped, err := readTransactions(f)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		s.logger.WarnContext(ctx, "malformed rows skipped",
			slog.Int("count", skipped),
			slog.String("path", s.salesPath))
	}

	s.logger.DebugContext(ctx, "transactions loaded",
		slog.Int("count", len(txs)),
		slog.String("path", s.salesPath))
	return txs, nil
}

// LoadProducts reads the product catalog.
func (s *CSVStore) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.productsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoCatalog
		}
		return nil, fmt.Errorf("open products file: %w", err)
	}
	defer f.Close()

	return readProducts(f)
}

// AppendTransaction validates the input, assigns the next ID and appends a
// row to the sales file. Units sold defaults to 1 and total revenue is
// derived from the unit price. The write is flushed and synced before the
// new transaction is returned.
func (s *CSVStore) AppendTransaction(ctx context.Context, nt domain.NewTransaction) (domain.Transaction, error) {
	if err := validateNew(nt); err != nil {
		return domain.Transaction{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.loadForAppend()
	if err != nil {
		return domain.Transaction{}, err
	}

	tx := domain.Transaction{
		ID:            nextID(existing),
		Date:          time.Now().Format(domain.DateLayout),
		Category:      nt.Category,
		ProductName:   nt.ProductName,
		UnitsSold:     1,
		UnitPrice:     nt.UnitPrice,
		TotalRevenue:  nt.UnitPrice,
		PaymentMethod: nt.PaymentMethod,
	}

	needHeader := true
	if info, err := os.Stat(s.salesPath); err == nil && info.Size() > 0 {
		needHeader = false
	}
	if err := s.appendRow(tx, needHeader); err != nil {
		return domain.Transaction{}, err
	}

	s.logger.InfoContext(ctx, "transaction appended",
		slog.Int64("transaction_id", tx.ID),
		slog.String("product", tx.ProductName))
	return tx, nil
}

// loadForAppend reads existing transactions for ID assignment, treating a
// missing file as an empty log rather than an error.
func (s *CSVStore) loadForAppend() ([]domain.Transaction, error) {
	f, err := os.Open(s.salesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open sales file: %w", err)
	}
	defer f.Close()

	txs, _, err := readTransactions(f)
	return txs, err
}

func (s *CSVStore) appendRow(tx domain.Transaction, writeHeader bool) error {
	f, err := os.OpenFile(s.salesPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open sales file for append: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(salesHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	record := []string{
		strconv.FormatInt(tx.ID, 10),
		tx.Date,
		tx.Category,
		tx.ProductName,
		strconv.Itoa(tx.UnitsSold),
		formatFloat(tx.UnitPrice),
		formatFloat(tx.TotalRevenue),
		tx.PaymentMethod,
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("write transaction: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush transaction: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync sales file: %w", err)
	}
	return nil
}

// readTransactions parses a transaction log stream. The column index is
// resolved from the normalized header, so both "Transaction ID" and
// "TransactionID" headers are accepted. Rows the CSV reader rejects, a
// stray bare quote for instance, are skipped and counted; rows with too
// few or too many fields still parse, missing cells reading as empty.
// Returns the parsed rows and the skipped-row count.
func readTransactions(r io.Reader) ([]domain.Transaction, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[normalizeHeader(name)] = i
	}

	// the aggregation pipeline cannot run without these two
	if _, ok := idx["TotalRevenue"]; !ok {
		return nil, 0, fmt.Errorf("%w: Total Revenue", ErrMissingColumns)
	}
	if _, ok := idx["UnitsSold"]; !ok {
		return nil, 0, fmt.Errorf("%w: Units Sold", ErrMissingColumns)
	}

	cell := func(record []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var txs []domain.Transaction
	skipped := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		if len(record) == 0 || (len(record) == 1 && record[0] == "") {
			continue
		}

		id, _ := strconv.ParseInt(cell(record, "TransactionID"), 10, 64)
		units := int(coerceFloat(cell(record, "UnitsSold")))
		txs = append(txs, domain.Transaction{
			ID:            id,
			Date:          cell(record, "Date"),
			Category:      cell(record, "ProductCategory"),
			ProductName:   cell(record, "ProductName"),
			UnitsSold:     units,
			UnitPrice:     coerceFloat(cell(record, "UnitPrice")),
			TotalRevenue:  coerceFloat(cell(record, "TotalRevenue")),
			PaymentMethod: cell(record, "PaymentMethod"),
		})
	}

	return txs, skipped, nil
}

// readProducts parses the product catalog stream.
func readProducts(r io.Reader) ([]domain.Product, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[normalizeHeader(name)] = i
	}

	cell := func(record []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var products []domain.Product
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		name := cell(record, "ProductName")
		if name == "" {
			continue
		}
		products = append(products, domain.Product{
			Name:      name,
			Category:  cell(record, "ProductCategory"),
			UnitPrice: coerceFloat(cell(record, "UnitPrice")),
		})
	}

	return products, nil
}

// coerceFloat parses a numeric cell, treating junk as zero so a single bad
// cell never rejects the whole dataset.
func coerceFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var _ Provider = (*CSVStore)(nil)
