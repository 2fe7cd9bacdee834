package eval

import (
	"github.com/mixturelab/ganeval/pkg/errors"
	"github.com/mixturelab/ganeval/samples"
)

// Inputs bundles the batches and collaborators of one evaluation call.
// The orchestrator produces them fresh per step; the evaluators borrow
// them read-only and retain nothing across calls.
type Inputs struct {
	// Step identifies the boosting/experiment step, used for plot naming.
	Step int

	// Real is the batch of real observations.
	Real *samples.Batch

	// Fake is the batch of model-generated observations.
	Fake *samples.Batch

	// Validation is an optional disjoint batch of additional fake points
	// for bandwidth refinement. Continuous kinds only.
	Validation *samples.Batch

	// Classifier is the call-scoped classifier handle. Discrete kinds only.
	Classifier Classifier

	// Gallery optionally receives the mode-gallery side effect. Discrete
	// kinds only; may be nil.
	Gallery GalleryPlotter
}

// Result is the metric tuple of one evaluation call. Exactly one field is
// non-nil, according to the configured dataset kind.
type Result struct {
	Continuous *ContinuousResult
	Modes      *ModeResult
}

// Evaluate runs the evaluator selected by cfg.Kind on the given inputs.
// It is a convenience wrapper for orchestrators; the per-variant
// evaluators can equally be constructed and driven directly.
func Evaluate(cfg Config, in Inputs) (Result, error) {
	switch cfg.Kind {
	case Continuous1D, Continuous2D:
		e, err := NewContinuousEvaluator(cfg)
		if err != nil {
			return Result{}, err
		}
		r, err := e.Evaluate(in.Real, in.Fake, in.Validation)
		if err != nil {
			return Result{}, err
		}
		return Result{Continuous: &r}, nil

	case DiscreteSingle, DiscreteComposite:
		e, err := NewDiscreteModeEvaluator(cfg)
		if err != nil {
			return Result{}, err
		}
		r, err := e.Evaluate(in.Classifier, in.Step, in.Fake, in.Gallery)
		if err != nil {
			return Result{}, err
		}
		return Result{Modes: &r}, nil

	case Unsupported:
		return Result{}, errors.WithStack(errors.ErrUnsupportedKind)
	default:
		return Result{}, errors.WithStack(errors.ErrUnsupportedKind)
	}
}
