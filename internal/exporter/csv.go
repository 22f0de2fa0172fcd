// Package exporter writes chart aggregates to report files for offline
// use: plain CSV and Excel workbooks.
package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"salespulse/pkg/contracts/domain"
)

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // UTF-8 BOM so Excel opens the file correctly
}

// WriteCSV writes a record set to path, creating parent directories.
func WriteCSV(path string, options WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open report file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	w := csv.NewWriter(file)
	if len(options.Headers) > 0 {
		if err := w.Write(options.Headers); err != nil {
			return fmt.Errorf("write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}

// revenueRecords flattens the category time series into (category, date,
// revenue) rows, categories in the order given.
func revenueRecords(categories []string, series map[string][]domain.RevenuePoint) [][]string {
	var records [][]string
	for _, category := range categories {
		for _, p := range series[category] {
			records = append(records, []string{category, p.Date, formatFloat(p.TotalRevenue)})
		}
	}
	return records
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}
