package predict

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	apperrors "salespulse/internal/errors"
	"salespulse/internal/ml"
	"salespulse/pkg/contracts/domain"
)

const (
	classifierMinProducts = 3
	classifierTestFrac    = 0.25
	classifierSeed        = 42
)

// displayNames maps classifier model keys to the names reported to callers.
var displayNames = map[string]string{
	domain.ClassifierModelDecisionTree:       "Decision Tree",
	domain.ClassifierModelLogisticRegression: "Logistic Regression",
	domain.ClassifierModelNaiveBayes:         "Naive Bayes",
}

// Classifier tiers products into performance labels. The labels themselves
// are bootstrapped from the data by equal-frequency ranking, then three
// candidate models compete to reproduce them on a stratified held-out
// quarter. The winning model, still trained on the 75% split, labels the
// full product set: for tier assignment the evaluation model is the
// serving model.
type Classifier struct{}

type fittedCandidate struct {
	model    ml.Classifier
	accuracy float64
}

// Classify runs the pipeline for the requested model name. Anything other
// than an explicit candidate name, "best" and unknown names alike, picks
// the highest-accuracy candidate.
func (c *Classifier) Classify(ctx context.Context, txs []domain.Transaction, model string) (*domain.ClassificationResult, error) {
	stats := AggregateProducts(txs)
	if len(stats) < classifierMinProducts {
		return nil, apperrors.InsufficientDataError(
			fmt.Sprintf("classification requires at least %d products, got %d",
				classifierMinProducts, len(stats)))
	}

	ranks, labels := TierLabels(stats)

	train, test := ml.StratifiedSplit(labels, classifierTestFrac, classifierSeed)
	if len(test) == 0 {
		return nil, apperrors.InsufficientDataError(
			"product set too small to hold out an evaluation split")
	}

	categories := make([]string, len(stats))
	for i, s := range stats {
		categories[i] = s.Category
	}

	var enc ml.OneHotEncoder
	trainCategories := make([]string, len(train))
	for i, idx := range train {
		trainCategories[i] = categories[idx]
	}
	enc.Fit(trainCategories)

	features := encodeFeatures(&enc, stats)
	trainX, trainY := subset(features, labels, train)
	testX, testY := subset(features, labels, test)

	candidates := map[string]ml.Classifier{
		domain.ClassifierModelDecisionTree:       &ml.DecisionTree{},
		domain.ClassifierModelLogisticRegression: &ml.LogisticRegression{},
		domain.ClassifierModelNaiveBayes:         &ml.BernoulliNB{},
	}

	var mu sync.Mutex
	fitted := make(map[string]fittedCandidate, len(candidates))

	g, _ := errgroup.WithContext(ctx)
	for name, clf := range candidates {
		name, clf := name, clf
		g.Go(func() error {
			if err := clf.Fit(trainX, trainY); err != nil {
				return fmt.Errorf("fit %s: %w", name, err)
			}
			pred, err := clf.Predict(testX)
			if err != nil {
				return fmt.Errorf("score %s: %w", name, err)
			}
			mu.Lock()
			fitted[name] = fittedCandidate{model: clf, accuracy: ml.Accuracy(pred, testY)}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	selected, modelUsed := selectCandidate(fitted, model)
	winner := fitted[selected]

	predicted, err := winner.model.Predict(features)
	if err != nil {
		return nil, fmt.Errorf("label full product set with %s: %w", selected, err)
	}

	products := make([]domain.ClassifiedProduct, len(stats))
	for i, s := range stats {
		products[i] = domain.ClassifiedProduct{
			ProductName:          s.ProductName,
			Category:             s.Category,
			TotalUnitsSold:       s.TotalUnits,
			AveragePrice:         round2(s.AveragePrice),
			SalesRank:            ranks[i],
			Performance:          labels[i],
			PredictedPerformance: predicted[i],
		}
	}

	return &domain.ClassificationResult{
		ModelAccuracy:      round2(winner.accuracy),
		ModelUsed:          modelUsed,
		ClassifiedProducts: products,
	}, nil
}

// selectCandidate resolves the caller's choice: an explicit candidate name
// is used verbatim; anything else falls back to the arg-max accuracy with
// a deterministic order for ties and prefixes the reported name.
func selectCandidate(fitted map[string]fittedCandidate, model string) (key, display string) {
	if display, ok := displayNames[model]; ok {
		return model, display
	}

	order := []string{
		domain.ClassifierModelDecisionTree,
		domain.ClassifierModelLogisticRegression,
		domain.ClassifierModelNaiveBayes,
	}
	best := order[0]
	for _, name := range order[1:] {
		if fitted[name].accuracy > fitted[best].accuracy {
			best = name
		}
	}
	return best, fmt.Sprintf("Best (%s)", displayNames[best])
}

// encodeFeatures builds each product's feature row: one-hot category
// columns followed by the raw average price.
func encodeFeatures(enc *ml.OneHotEncoder, stats []ProductStats) [][]float64 {
	categories := make([]string, len(stats))
	for i, s := range stats {
		categories[i] = s.Category
	}
	encoded := enc.Transform(categories)

	rows := make([][]float64, len(stats))
	for i, s := range stats {
		rows[i] = append(encoded[i], s.AveragePrice)
	}
	return rows
}

func subset(x [][]float64, y []string, idx []int) ([][]float64, []string) {
	subX := make([][]float64, len(idx))
	subY := make([]string, len(idx))
	for i, j := range idx {
		subX[i] = x[j]
		subY[i] = y[j]
	}
	return subX, subY
}
