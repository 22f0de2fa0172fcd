// Package analytics computes the chart-ready aggregate views of the
// transaction log. Every function is a pure function of its input; views
// are recomputed on demand and never cached.
package analytics

import (
	"sort"
	"time"

	"salespulse/pkg/contracts/domain"
)

// isoDate is the order-safe date form used in chart output.
const isoDate = "2006-01-02"

// Categories returns the distinct categories in first-seen order.
func Categories(txs []domain.Transaction) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tx := range txs {
		if tx.Category == "" || seen[tx.Category] {
			continue
		}
		seen[tx.Category] = true
		out = append(out, tx.Category)
	}
	return out
}

// CategoryTimeSeries groups revenue by (date, category) and reshapes the
// result into one date-ordered series per category. Every category's series
// spans the union of distinct dates in the whole dataset, zero-filled where
// the category had no sales. Rows whose date does not parse are excluded.
func CategoryTimeSeries(txs []domain.Transaction) map[string][]domain.RevenuePoint {
	type cell struct {
		date     time.Time
		category string
	}

	sums := make(map[cell]float64)
	dateSet := make(map[time.Time]bool)
	categories := Categories(txs)

	for _, tx := range txs {
		d, ok := tx.ParsedDate()
		if !ok || tx.Category == "" {
			continue
		}
		sums[cell{d, tx.Category}] += tx.TotalRevenue
		dateSet[d] = true
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	series := make(map[string][]domain.RevenuePoint, len(categories))
	for _, category := range categories {
		points := make([]domain.RevenuePoint, 0, len(dates))
		for _, d := range dates {
			points = append(points, domain.RevenuePoint{
				Date:         d.Format(isoDate),
				TotalRevenue: sums[cell{d, category}],
			})
		}
		series[category] = points
	}
	return series
}

// ProductDistribution groups units sold by (category, product), preserving
// first-seen product order within each category.
func ProductDistribution(txs []domain.Transaction) map[string][]domain.ProductShare {
	type key struct {
		category string
		product  string
	}

	sums := make(map[key]int)
	order := make(map[string][]string)
	seen := make(map[key]bool)

	for _, tx := range txs {
		if tx.Category == "" || tx.ProductName == "" {
			continue
		}
		k := key{tx.Category, tx.ProductName}
		sums[k] += tx.UnitsSold
		if !seen[k] {
			seen[k] = true
			order[tx.Category] = append(order[tx.Category], tx.ProductName)
		}
	}

	dist := make(map[string][]domain.ProductShare, len(order))
	for category, products := range order {
		shares := make([]domain.ProductShare, 0, len(products))
		for _, product := range products {
			shares = append(shares, domain.ProductShare{
				ProductName: product,
				UnitsSold:   sums[key{category, product}],
			})
		}
		dist[category] = shares
	}
	return dist
}

// ProductHistory groups units sold by (product, date) into one date-ordered
// sequence per product. Rows whose date does not parse are excluded.
func ProductHistory(txs []domain.Transaction) map[string][]domain.UnitsPoint {
	type cell struct {
		product string
		date    time.Time
	}

	sums := make(map[cell]int)
	productDates := make(map[string]map[time.Time]bool)

	for _, tx := range txs {
		d, ok := tx.ParsedDate()
		if !ok || tx.ProductName == "" {
			continue
		}
		sums[cell{tx.ProductName, d}] += tx.UnitsSold
		if productDates[tx.ProductName] == nil {
			productDates[tx.ProductName] = make(map[time.Time]bool)
		}
		productDates[tx.ProductName][d] = true
	}

	history := make(map[string][]domain.UnitsPoint, len(productDates))
	for product, dateSet := range productDates {
		dates := make([]time.Time, 0, len(dateSet))
		for d := range dateSet {
			dates = append(dates, d)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		points := make([]domain.UnitsPoint, 0, len(dates))
		for _, d := range dates {
			points = append(points, domain.UnitsPoint{
				Date:      d.Format(isoDate),
				UnitsSold: sums[cell{product, d}],
			})
		}
		history[product] = points
	}
	return history
}

// BuildChartData assembles every aggregate view into the chart response.
func BuildChartData(txs []domain.Transaction, products []domain.Product) domain.ChartData {
	return domain.ChartData{
		Categories:          Categories(txs),
		Products:            products,
		CategoryTimeSeries:  CategoryTimeSeries(txs),
		ProductDistribution: ProductDistribution(txs),
		ProductHistory:      ProductHistory(txs),
	}
}
