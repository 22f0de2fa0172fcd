package domain

// Forecast model names accepted by the forecast endpoint.
const (
	ForecastModelBest       = "best"
	ForecastModelLinear     = "linear"
	ForecastModelPolynomial = "polynomial"
)

// Classifier model names accepted by the classification endpoint.
const (
	ClassifierModelBest               = "best"
	ClassifierModelDecisionTree       = "decision_tree"
	ClassifierModelLogisticRegression = "logistic_regression"
	ClassifierModelNaiveBayes         = "naive_bayes"
)

// Performance tiers assigned by equal-frequency ranking of total units sold,
// in ascending order of sales rank.
const (
	TierSlowMoving    = "Slow-Moving"
	TierAverageSeller = "Average Seller"
	TierBestSeller    = "Best Seller"
)

// ForecastPoint is one predicted future day of revenue.
type ForecastPoint struct {
	Date     string  `json:"date"`
	Forecast float64 `json:"forecast"`
}

// ForecastResult is the revenue forecast response: 30 daily points starting
// the day after the last observed date, plus the held-out MAE of the
// selected candidate.
type ForecastResult struct {
	Forecast []ForecastPoint `json:"forecast"`
	MAE      float64         `json:"mae"`
}

// ClassifiedProduct annotates a product with its bootstrapped tier label and
// the tier the selected model predicts for it.
type ClassifiedProduct struct {
	ProductName          string  `json:"product_name"`
	Category             string  `json:"category"`
	TotalUnitsSold       int     `json:"total_units_sold"`
	AveragePrice         float64 `json:"average_price"`
	SalesRank            int     `json:"sales_rank"`
	Performance          string  `json:"performance"`
	PredictedPerformance string  `json:"predicted_performance"`
}

// ClassificationResult is the product performance tiering response.
type ClassificationResult struct {
	ModelAccuracy      float64             `json:"model_accuracy"`
	ModelUsed          string              `json:"model_used"`
	ClassifiedProducts []ClassifiedProduct `json:"classified_products"`
}

// ClusteredProduct annotates a product with its k-means cluster assignment.
// Cluster IDs carry no semantic ordering.
type ClusteredProduct struct {
	ProductName    string  `json:"product_name"`
	TotalUnitsSold int     `json:"total_units_sold"`
	TotalRevenue   float64 `json:"total_revenue"`
	AveragePrice   float64 `json:"average_price"`
	Cluster        int     `json:"cluster"`
}

// ClusteringResult is the product segmentation response.
type ClusteringResult struct {
	ClusteredProducts []ClusteredProduct `json:"clustered_products"`
	OptimalK          int                `json:"optimal_k"`
}
