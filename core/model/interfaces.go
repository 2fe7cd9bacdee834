package model

import "gonum.org/v1/gonum/mat"

// Fitter is the interface of models fitted on a batch of points.
type Fitter interface {
	// Fit fits the model on the rows of X.
	Fit(X mat.Matrix) error
}

// DensityScorer is the interface of fitted density models.
type DensityScorer interface {
	// ScoreSamples returns the per-row log-density of X under the model.
	ScoreSamples(X mat.Matrix) ([]float64, error)
}

// DensityModel combines fitting and scoring, the contract the evaluators
// require from a density backend.
type DensityModel interface {
	Fitter
	DensityScorer
}
