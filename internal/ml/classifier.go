package ml

// Classifier is the contract shared by the tiering candidates: fit on
// feature rows with string labels, then predict labels for new rows.
type Classifier interface {
	Fit(x [][]float64, y []string) error
	Predict(x [][]float64) ([]string, error)
}
