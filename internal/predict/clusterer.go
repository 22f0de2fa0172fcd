package predict

import (
	"fmt"

	apperrors "salespulse/internal/errors"
	"salespulse/internal/ml"
	"salespulse/pkg/contracts/domain"
)

const (
	clustererMinProducts = 5
	clustererK           = 3
	clustererInits       = 10
	clustererSeed        = 42
)

// Clusterer segments products by k-means over (units, revenue, price)
// features. The cluster count is fixed at 3 in this version. Features are
// standardized first because the three columns have incomparable scales.
type Clusterer struct{}

// Cluster runs the segmentation pipeline over the transaction log.
func (c *Clusterer) Cluster(txs []domain.Transaction) (*domain.ClusteringResult, error) {
	stats := AggregateProducts(txs)
	if len(stats) < clustererMinProducts {
		return nil, apperrors.InsufficientDataError(
			fmt.Sprintf("clustering requires at least %d products, got %d",
				clustererMinProducts, len(stats)))
	}

	rows := make([][]float64, len(stats))
	for i, s := range stats {
		rows[i] = []float64{float64(s.TotalUnits), s.TotalRevenue, s.AveragePrice}
	}

	var scaler ml.StandardScaler
	scaled := scaler.FitTransform(rows)

	result, err := ml.KMeans(scaled, clustererK, clustererInits, clustererSeed)
	if err != nil {
		return nil, fmt.Errorf("cluster products: %w", err)
	}

	products := make([]domain.ClusteredProduct, len(stats))
	for i, s := range stats {
		products[i] = domain.ClusteredProduct{
			ProductName:    s.ProductName,
			TotalUnitsSold: s.TotalUnits,
			TotalRevenue:   round2(s.TotalRevenue),
			AveragePrice:   round2(s.AveragePrice),
			Cluster:        result.Assignments[i],
		}
	}

	return &domain.ClusteringResult{
		ClusteredProducts: products,
		OptimalK:          clustererK,
	}, nil
}
