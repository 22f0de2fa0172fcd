package exporter

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"salespulse/pkg/contracts/domain"
)

// ChartReporter writes chart aggregates into a reports directory. File
// names carry a timestamp so repeated exports never overwrite each other.
type ChartReporter struct {
	reportsDir string
	logger     *slog.Logger
	now        func() time.Time
}

// NewChartReporter creates a reporter writing into reportsDir.
func NewChartReporter(reportsDir string, logger *slog.Logger) *ChartReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartReporter{
		reportsDir: reportsDir,
		logger:     logger.With(slog.String("component", "exporter")),
		now:        time.Now,
	}
}

// ExportCSV writes the category time series as one CSV report and returns
// its path.
func (r *ChartReporter) ExportCSV(data *domain.ChartData) (string, error) {
	path := filepath.Join(r.reportsDir,
		fmt.Sprintf("chart-data-%s.csv", r.now().Format("20060102-150405")))

	err := WriteCSV(path, WriteOptions{
		Headers:   []string{"Product Category", "Date", "Total Revenue"},
		Records:   revenueRecords(data.Categories, data.CategoryTimeSeries),
		BOMPrefix: true,
	})
	if err != nil {
		return "", err
	}

	r.logger.Info("chart data exported",
		slog.String("path", path),
		slog.Int("categories", len(data.Categories)))
	return path, nil
}

// ExportWorkbook writes the full aggregate set as an Excel workbook with
// one sheet per view and returns its path.
func (r *ChartReporter) ExportWorkbook(data *domain.ChartData) (string, error) {
	path := filepath.Join(r.reportsDir,
		fmt.Sprintf("chart-data-%s.xlsx", r.now().Format("20060102-150405")))

	f := excelize.NewFile()
	defer f.Close()

	if err := r.writeRevenueSheet(f, data); err != nil {
		return "", err
	}
	if err := r.writeDistributionSheet(f, data); err != nil {
		return "", err
	}
	if err := r.writeHistorySheet(f, data); err != nil {
		return "", err
	}

	// drop the default sheet left over from NewFile
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	r.logger.Info("chart workbook exported", slog.String("path", path))
	return path, nil
}

func (r *ChartReporter) writeRevenueSheet(f *excelize.File, data *domain.ChartData) error {
	const sheet = "Revenue by Category"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{"Product Category", "Date", "Total Revenue"}}
	for _, category := range data.Categories {
		for _, p := range data.CategoryTimeSeries[category] {
			rows = append(rows, []interface{}{category, p.Date, p.TotalRevenue})
		}
	}
	return writeRows(f, sheet, rows)
}

func (r *ChartReporter) writeDistributionSheet(f *excelize.File, data *domain.ChartData) error {
	const sheet = "Units by Product"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{"Product Category", "Product Name", "Units Sold"}}
	for _, category := range data.Categories {
		for _, share := range data.ProductDistribution[category] {
			rows = append(rows, []interface{}{category, share.ProductName, share.UnitsSold})
		}
	}
	return writeRows(f, sheet, rows)
}

func (r *ChartReporter) writeHistorySheet(f *excelize.File, data *domain.ChartData) error {
	const sheet = "Product History"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{"Product Name", "Date", "Units Sold"}}
	for _, product := range data.Products {
		for _, p := range data.ProductHistory[product.Name] {
			rows = append(rows, []interface{}{product.Name, p.Date, p.UnitsSold})
		}
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name for row %d: %w", i, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d of %s: %w", i, sheet, err)
		}
	}
	return nil
}
