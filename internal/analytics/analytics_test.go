package analytics

import (
	"math"
	"testing"

	"salespulse/pkg/contracts/domain"
)

func tx(id int64, date, category, product string, units int, revenue float64) domain.Transaction {
	return domain.Transaction{
		ID:           id,
		Date:         date,
		Category:     category,
		ProductName:  product,
		UnitsSold:    units,
		TotalRevenue: revenue,
	}
}

func TestCategoriesFirstSeenOrder(t *testing.T) {
	txs := []domain.Transaction{
		tx(1, "01/03/2024", "Clothing", "Shirt", 1, 20),
		tx(2, "01/03/2024", "Electronics", "Phone", 1, 500),
		tx(3, "02/03/2024", "Clothing", "Hat", 1, 15),
	}

	got := Categories(txs)
	want := []string{"Clothing", "Electronics"}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCategoryTimeSeriesDateUnion(t *testing.T) {
	// two categories with 3 distinct dates each plus 1 shared date
	txs := []domain.Transaction{
		tx(1, "01/03/2024", "Electronics", "Phone", 1, 100),
		tx(2, "02/03/2024", "Electronics", "Phone", 1, 200),
		tx(3, "05/03/2024", "Electronics", "Phone", 1, 300),
		tx(4, "03/03/2024", "Clothing", "Shirt", 1, 40),
		tx(5, "04/03/2024", "Clothing", "Shirt", 1, 50),
		tx(6, "05/03/2024", "Clothing", "Shirt", 1, 60),
	}

	series := CategoryTimeSeries(txs)

	wantDates := []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04", "2024-03-05"}
	for category, points := range series {
		if len(points) != len(wantDates) {
			t.Fatalf("%s series has %d points, want %d", category, len(points), len(wantDates))
		}
		for i, p := range points {
			if p.Date != wantDates[i] {
				t.Errorf("%s series[%d].Date = %q, want %q", category, i, p.Date, wantDates[i])
			}
		}
	}

	// zero-filled cells where the category had no sales
	if got := series["Electronics"][2].TotalRevenue; got != 0 {
		t.Errorf("Electronics on 2024-03-03 = %v, want 0", got)
	}
	if got := series["Clothing"][0].TotalRevenue; got != 0 {
		t.Errorf("Clothing on 2024-03-01 = %v, want 0", got)
	}
	if got := series["Electronics"][4].TotalRevenue; got != 300 {
		t.Errorf("Electronics on 2024-03-05 = %v, want 300", got)
	}
}

func TestCategoryTimeSeriesConservation(t *testing.T) {
	txs := []domain.Transaction{
		tx(1, "01/03/2024", "Electronics", "Phone", 2, 123.45),
		tx(2, "01/03/2024", "Electronics", "Laptop", 1, 999.99),
		tx(3, "02/03/2024", "Electronics", "Phone", 1, 61.725),
		tx(4, "02/03/2024", "Books", "Novel", 3, 37.5),
	}

	series := CategoryTimeSeries(txs)

	totals := make(map[string]float64)
	for _, x := range txs {
		totals[x.Category] += x.TotalRevenue
	}

	for category, want := range totals {
		var got float64
		for _, p := range series[category] {
			got += p.TotalRevenue
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("%s series sums to %v, want %v", category, got, want)
		}
	}
}

func TestCategoryTimeSeriesSkipsBadDates(t *testing.T) {
	txs := []domain.Transaction{
		tx(1, "01/03/2024", "Electronics", "Phone", 1, 100),
		tx(2, "not-a-date", "Electronics", "Phone", 1, 999),
	}

	series := CategoryTimeSeries(txs)
	points := series["Electronics"]
	if len(points) != 1 {
		t.Fatalf("series has %d points, want 1", len(points))
	}
	if points[0].TotalRevenue != 100 {
		t.Errorf("TotalRevenue = %v, want 100", points[0].TotalRevenue)
	}
}

func TestProductDistribution(t *testing.T) {
	txs := []domain.Transaction{
		tx(1, "01/03/2024", "Electronics", "Phone", 2, 1000),
		tx(2, "02/03/2024", "Electronics", "Phone", 3, 1500),
		tx(3, "02/03/2024", "Electronics", "Laptop", 1, 2000),
		tx(4, "03/03/2024", "Books", "Novel", 4, 50),
	}

	dist := ProductDistribution(txs)

	electronics := dist["Electronics"]
	if len(electronics) != 2 {
		t.Fatalf("Electronics has %d products, want 2", len(electronics))
	}
	if electronics[0].ProductName != "Phone" || electronics[0].UnitsSold != 5 {
		t.Errorf("Electronics[0] = %+v, want Phone with 5 units", electronics[0])
	}
	if electronics[1].ProductName != "Laptop" || electronics[1].UnitsSold != 1 {
		t.Errorf("Electronics[1] = %+v, want Laptop with 1 unit", electronics[1])
	}
	if books := dist["Books"]; len(books) != 1 || books[0].UnitsSold != 4 {
		t.Errorf("Books = %+v, want Novel with 4 units", books)
	}
}

func TestProductHistoryOrderedByDate(t *testing.T) {
	txs := []domain.Transaction{
		tx(1, "05/03/2024", "Electronics", "Phone", 2, 1000),
		tx(2, "01/03/2024", "Electronics", "Phone", 1, 500),
		tx(3, "01/03/2024", "Electronics", "Phone", 3, 1500),
	}

	history := ProductHistory(txs)
	points := history["Phone"]
	if len(points) != 2 {
		t.Fatalf("Phone history has %d points, want 2", len(points))
	}
	if points[0].Date != "2024-03-01" || points[0].UnitsSold != 4 {
		t.Errorf("points[0] = %+v, want 2024-03-01 with 4 units", points[0])
	}
	if points[1].Date != "2024-03-05" || points[1].UnitsSold != 2 {
		t.Errorf("points[1] = %+v, want 2024-03-05 with 2 units", points[1])
	}
}

func TestBuildChartDataEmptyInput(t *testing.T) {
	data := BuildChartData(nil, nil)
	if len(data.Categories) != 0 {
		t.Errorf("Categories = %v, want empty", data.Categories)
	}
	if len(data.CategoryTimeSeries) != 0 {
		t.Errorf("CategoryTimeSeries = %v, want empty", data.CategoryTimeSeries)
	}
}
