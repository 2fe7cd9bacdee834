package eval

import (
	"github.com/mixturelab/ganeval/samples"
)

// Generator is the upstream generative-model collaborator. The core only
// needs to draw fake batches from the current mixture and read the current
// per-real-point boosting weights; training the mixture is entirely the
// caller's concern. Both methods are synchronous and must have no side
// effects visible to the evaluator.
type Generator interface {
	// SampleMixture draws n fake points from the current mixture.
	SampleMixture(n int) (*samples.Batch, error)

	// DataWeights returns the most recent non-negative weight per real
	// point. The weights need not sum to 1; they are used only for
	// visualization overlays.
	DataWeights() []float64
}
