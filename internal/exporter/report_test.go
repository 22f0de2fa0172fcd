package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"salespulse/pkg/contracts/domain"
)

func chartFixture() *domain.ChartData {
	return &domain.ChartData{
		Categories: []string{"Electronics", "Clothing"},
		Products: []domain.Product{
			{Name: "Phone", Category: "Electronics", UnitPrice: 500},
			{Name: "Shirt", Category: "Clothing", UnitPrice: 20},
		},
		CategoryTimeSeries: map[string][]domain.RevenuePoint{
			"Electronics": {{Date: "2024-03-01", TotalRevenue: 1000}, {Date: "2024-03-02", TotalRevenue: 0}},
			"Clothing":    {{Date: "2024-03-01", TotalRevenue: 0}, {Date: "2024-03-02", TotalRevenue: 60}},
		},
		ProductDistribution: map[string][]domain.ProductShare{
			"Electronics": {{ProductName: "Phone", UnitsSold: 2}},
			"Clothing":    {{ProductName: "Shirt", UnitsSold: 3}},
		},
		ProductHistory: map[string][]domain.UnitsPoint{
			"Phone": {{Date: "2024-03-01", UnitsSold: 2}},
			"Shirt": {{Date: "2024-03-02", UnitsSold: 3}},
		},
	}
}

func fixedReporter(t *testing.T) (*ChartReporter, string) {
	t.Helper()
	dir := t.TempDir()
	r := NewChartReporter(dir, nil)
	r.now = func() time.Time { return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC) }
	return r, dir
}

func TestExportCSV(t *testing.T) {
	r, dir := fixedReporter(t)

	path, err := r.ExportCSV(chartFixture())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "chart-data-20240315-103000.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := strings.TrimPrefix(string(data), "\xef\xbb\xbf")
	records, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 5) // header + 2 categories x 2 dates
	assert.Equal(t, []string{"Product Category", "Date", "Total Revenue"}, records[0])
	assert.Equal(t, []string{"Electronics", "2024-03-01", "1000.00"}, records[1])
	assert.Equal(t, []string{"Clothing", "2024-03-02", "60.00"}, records[4])
}

func TestExportWorkbook(t *testing.T) {
	r, _ := fixedReporter(t)

	path, err := r.ExportWorkbook(chartFixture())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.ElementsMatch(t,
		[]string{"Revenue by Category", "Units by Product", "Product History"}, sheets)

	rows, err := f.GetRows("Units by Product")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Product Category", "Product Name", "Units Sold"}, rows[0])
}
