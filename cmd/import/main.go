// Command import migrates the CSV transaction log and product catalog into
// the SQLite backend, so a deployment can switch dataset.backend to sqlite
// without losing data.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"salespulse/internal/config"
	"salespulse/internal/dataset"
	"salespulse/internal/infrastructure"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	ctx := context.Background()
	src := dataset.NewCSVStore(cfg.SalesPath(), cfg.ProductsPath(), logger)

	txs, err := src.LoadTransactions(ctx)
	if err != nil {
		return fmt.Errorf("load transaction log: %w", err)
	}
	products, err := src.LoadProducts(ctx)
	if err != nil {
		return fmt.Errorf("load product catalog: %w", err)
	}

	dst, err := dataset.OpenSQLiteStore(cfg.SQLitePath(), logger)
	if err != nil {
		return err
	}
	defer dst.Close()

	if err := dst.SeedTransactions(ctx, txs); err != nil {
		return fmt.Errorf("seed transactions: %w", err)
	}
	if err := dst.SeedProducts(ctx, products); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	logger.InfoContext(ctx, "import complete",
		slog.String("database", cfg.SQLitePath()),
		slog.Int("transactions", len(txs)),
		slog.Int("products", len(products)))
	return nil
}
