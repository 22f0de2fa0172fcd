// Package predict orchestrates the three prediction pipelines. Each follows
// the same shape: fit a fixed candidate set, score on a held-out split,
// select one by explicit name or automatic best, then produce predictions.
// Models are refit from scratch on every call; nothing persists across
// requests.
package predict

import (
	"salespulse/pkg/contracts/domain"
)

// ProductStats is the per-product aggregate feeding the classifier and
// clusterer: summed units, summed revenue, mean unit price and the
// product's category, in first-seen product order.
type ProductStats struct {
	ProductName  string
	Category     string
	TotalUnits   int
	TotalRevenue float64
	AveragePrice float64
}

// AggregateProducts folds the transaction log into one ProductStats per
// product, preserving first-seen order.
func AggregateProducts(txs []domain.Transaction) []ProductStats {
	index := make(map[string]int)
	var stats []ProductStats
	counts := make(map[string]int)

	for _, tx := range txs {
		if tx.ProductName == "" {
			continue
		}
		i, ok := index[tx.ProductName]
		if !ok {
			i = len(stats)
			index[tx.ProductName] = i
			stats = append(stats, ProductStats{
				ProductName: tx.ProductName,
				Category:    tx.Category,
			})
		}
		stats[i].TotalUnits += tx.UnitsSold
		stats[i].TotalRevenue += tx.TotalRevenue
		stats[i].AveragePrice += tx.UnitPrice
		counts[tx.ProductName]++
	}

	for i := range stats {
		if n := counts[stats[i].ProductName]; n > 0 {
			stats[i].AveragePrice /= float64(n)
		}
	}
	return stats
}

// RankByUnits assigns each product a 1-based sales rank in ascending order
// of total units sold. Ties keep first-seen order, so ranks are unique.
// The returned slice is parallel to stats.
func RankByUnits(stats []ProductStats) []int {
	order := make([]int, len(stats))
	for i := range order {
		order[i] = i
	}
	// stable insertion-order tie break via index comparison
	sortByUnits(order, stats)

	ranks := make([]int, len(stats))
	for rank, i := range order {
		ranks[i] = rank + 1
	}
	return ranks
}

func sortByUnits(order []int, stats []ProductStats) {
	// insertion sort keeps the tie-break obvious for small product sets
	for i := 1; i < len(order); i++ {
		for j := i; j > 0; j-- {
			a, b := order[j-1], order[j]
			if stats[a].TotalUnits > stats[b].TotalUnits ||
				(stats[a].TotalUnits == stats[b].TotalUnits && a > b) {
				order[j-1], order[j] = order[j], order[j-1]
			} else {
				break
			}
		}
	}
}

// TierForRank cuts the rank distribution of n products into 3
// equal-frequency tiers. Ranks are 1-based; each tier ends up with
// floor(n/3) or ceil(n/3) members.
func TierForRank(rank, n int) string {
	switch (rank - 1) * 3 / n {
	case 0:
		return domain.TierSlowMoving
	case 1:
		return domain.TierAverageSeller
	default:
		return domain.TierBestSeller
	}
}

// TierLabels bootstraps a tier label per product from its sales rank.
func TierLabels(stats []ProductStats) ([]int, []string) {
	ranks := RankByUnits(stats)
	labels := make([]string, len(stats))
	for i, rank := range ranks {
		labels[i] = TierForRank(rank, len(stats))
	}
	return ranks, labels
}
