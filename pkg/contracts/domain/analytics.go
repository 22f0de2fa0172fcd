package domain

// RevenuePoint is one (date, summed revenue) cell of a category series.
// Dates are rendered in ISO yyyy-mm-dd order-safe form.
type RevenuePoint struct {
	Date         string  `json:"date"`
	TotalRevenue float64 `json:"total_revenue"`
}

// UnitsPoint is one (date, summed units) cell of a product history.
type UnitsPoint struct {
	Date      string `json:"date"`
	UnitsSold int    `json:"units_sold"`
}

// ProductShare is a (product, summed units) slice of a category pie.
type ProductShare struct {
	ProductName string `json:"product_name"`
	UnitsSold   int    `json:"units_sold"`
}

// ChartData bundles every aggregate view the dashboard charts consume.
// All views are recomputed from the transaction log on each request.
type ChartData struct {
	Categories          []string                  `json:"categories"`
	Products            []Product                 `json:"products"`
	CategoryTimeSeries  map[string][]RevenuePoint `json:"category_time_series"`
	ProductDistribution map[string][]ProductShare `json:"product_distribution"`
	ProductHistory      map[string][]UnitsPoint   `json:"product_history"`
}
