package domain

import (
	"strings"
	"time"
)

// DateLayout is the day/month/year layout used by the transaction log.
// Rows whose date does not parse with this layout are excluded from
// time-based aggregates but still served from the raw log.
const DateLayout = "02/01/2006"

// Transaction represents a single sale in the append-only transaction log.
// IDs are unique and strictly increasing in insertion order.
type Transaction struct {
	ID            int64   `json:"transaction_id"`
	Date          string  `json:"date"`
	Category      string  `json:"product_category"`
	ProductName   string  `json:"product_name"`
	UnitsSold     int     `json:"units_sold"`
	UnitPrice     float64 `json:"unit_price"`
	TotalRevenue  float64 `json:"total_revenue"`
	PaymentMethod string  `json:"payment_method"`
}

// ParsedDate parses the transaction date using DateLayout.
func (t Transaction) ParsedDate() (time.Time, bool) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(t.Date))
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// NewTransaction carries the caller-supplied fields of a sale to append.
// Units sold is fixed to 1 at creation, so total revenue equals unit price.
type NewTransaction struct {
	Category      string  `json:"product_category" validate:"required"`
	ProductName   string  `json:"product_name" validate:"required"`
	UnitPrice     float64 `json:"unit_price" validate:"gte=0"`
	PaymentMethod string  `json:"payment_method" validate:"required"`
}

// Product is a read-only catalog entry keyed by name.
type Product struct {
	Name      string  `json:"product_name"`
	Category  string  `json:"product_category"`
	UnitPrice float64 `json:"unit_price"`
}
