package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"salespulse/pkg/contracts/domain"
)

// SQLiteStore keeps the transaction log and product catalog in a SQLite
// database. It serves the same Provider contract as CSVStore; the backend
// is selected by configuration.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLiteStore opens (creating if needed) the database at path and
// ensures the schema exists.
func OpenSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS transactions (
		id             INTEGER PRIMARY KEY,
		date           TEXT NOT NULL,
		category       TEXT NOT NULL,
		product_name   TEXT NOT NULL,
		units_sold     INTEGER NOT NULL,
		unit_price     REAL NOT NULL,
		total_revenue  REAL NOT NULL,
		payment_method TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS products (
		name       TEXT PRIMARY KEY,
		category   TEXT NOT NULL,
		unit_price REAL NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With(slog.String("component", "dataset.sqlite")),
	}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LoadTransactions returns every row of the transaction log in ID order.
// An empty table means no dataset has been seeded yet.
func (s *SQLiteStore) LoadTransactions(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, category, product_name, units_sold,
		       unit_price, total_revenue, payment_method
		FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(&tx.ID, &tx.Date, &tx.Category, &tx.ProductName,
			&tx.UnitsSold, &tx.UnitPrice, &tx.TotalRevenue, &tx.PaymentMethod); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	if len(txs) == 0 {
		return nil, ErrNoDataset
	}
	return txs, nil
}

// LoadProducts returns the product catalog.
func (s *SQLiteStore) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, category, unit_price FROM products ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.Name, &p.Category, &p.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	if len(products) == 0 {
		return nil, ErrNoCatalog
	}
	return products, nil
}

// AppendTransaction inserts a new row inside a write transaction so the
// MAX(id)+1 assignment cannot race with another writer.
func (s *SQLiteStore) AppendTransaction(ctx context.Context, nt domain.NewTransaction) (domain.Transaction, error) {
	if err := validateNew(nt); err != nil {
		return domain.Transaction{}, err
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	var maxID sql.NullInt64
	if err := dbTx.QueryRowContext(ctx,
		`SELECT MAX(id) FROM transactions`).Scan(&maxID); err != nil {
		return domain.Transaction{}, fmt.Errorf("query max id: %w", err)
	}

	tx := domain.Transaction{
		ID:            maxID.Int64 + 1,
		Date:          time.Now().Format(domain.DateLayout),
		Category:      nt.Category,
		ProductName:   nt.ProductName,
		UnitsSold:     1,
		UnitPrice:     nt.UnitPrice,
		TotalRevenue:  nt.UnitPrice,
		PaymentMethod: nt.PaymentMethod,
	}

	if _, err := dbTx.ExecContext(ctx, `
		INSERT INTO transactions
			(id, date, category, product_name, units_sold,
			 unit_price, total_revenue, payment_method)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Date, tx.Category, tx.ProductName, tx.UnitsSold,
		tx.UnitPrice, tx.TotalRevenue, tx.PaymentMethod); err != nil {
		return domain.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return domain.Transaction{}, fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "transaction appended",
		slog.Int64("transaction_id", tx.ID),
		slog.String("product", tx.ProductName))
	return tx, nil
}

// SeedTransactions replaces the transaction log, preserving the incoming
// IDs. Command import uses it to migrate a CSV log into this backend.
func (s *SQLiteStore) SeedTransactions(ctx context.Context, txs []domain.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	for _, tx := range txs {
		if _, err := dbTx.ExecContext(ctx, `
			INSERT INTO transactions
				(id, date, category, product_name, units_sold,
				 unit_price, total_revenue, payment_method)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			tx.ID, tx.Date, tx.Category, tx.ProductName, tx.UnitsSold,
			tx.UnitPrice, tx.TotalRevenue, tx.PaymentMethod); err != nil {
			return fmt.Errorf("insert transaction %d: %w", tx.ID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}

	s.logger.InfoContext(ctx, "transaction log seeded", slog.Int("count", len(txs)))
	return nil
}

// SeedProducts replaces the product catalog. Command import uses it to
// migrate a CSV catalog into this backend.
func (s *SQLiteStore) SeedProducts(ctx context.Context, products []domain.Product) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}
	for _, p := range products {
		if _, err := dbTx.ExecContext(ctx,
			`INSERT INTO products (name, category, unit_price) VALUES (?, ?, ?)`,
			p.Name, p.Category, p.UnitPrice); err != nil {
			return fmt.Errorf("insert product %s: %w", p.Name, err)
		}
	}

	return dbTx.Commit()
}

var _ Provider = (*SQLiteStore)(nil)
