package eval

import (
	"gonum.org/v1/gonum/stat"

	"github.com/mixturelab/ganeval/density"
	"github.com/mixturelab/ganeval/pkg/errors"
	"github.com/mixturelab/ganeval/pkg/log"
	"github.com/mixturelab/ganeval/samples"
)

// ContinuousResult is the metric tuple of the continuous evaluator.
type ContinuousResult struct {
	// LogLikelihood is the mean log-density of the real points under the
	// model density fitted on the fake points.
	LogLikelihood float64

	// Coverage is the fraction of real mass falling inside the model's
	// empirically-defined 95% high-density region.
	Coverage float64
}

// ContinuousEvaluator computes log-likelihood and Coverage for continuous
// low-dimensional data by kernel density estimation over the fake batch.
// Every Evaluate call is a pure function of its inputs; the bandwidth is
// re-derived from the current fake batch each call.
type ContinuousEvaluator struct {
	cfg    Config
	logger log.Logger
}

// NewContinuousEvaluator creates an evaluator for a continuous dataset
// kind. The configuration is validated here, before any evaluation call.
func NewContinuousEvaluator(cfg Config) (*ContinuousEvaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Kind.Continuous() {
		return nil, errors.NewValidationError("Kind", "requires a continuous dataset kind", cfg.Kind)
	}
	return &ContinuousEvaluator{
		cfg:    cfg,
		logger: log.GetLoggerWithName("eval"),
	}, nil
}

// Evaluate fits a kernel density on fakePoints, optionally refining the
// bandwidth on the disjoint validationFake batch, and scores realPoints
// against the model's 95% high-density region. validationFake may be nil
// to skip refinement; fakePoints must hold at least 2 points.
func (e *ContinuousEvaluator) Evaluate(realPoints, fakePoints, validationFake *samples.Batch) (ContinuousResult, error) {
	if realPoints == nil || realPoints.Len() == 0 {
		return ContinuousResult{}, errors.NewValueError("ContinuousEvaluator.Evaluate", "empty real batch")
	}
	if fakePoints == nil || fakePoints.Len() < 2 {
		return ContinuousResult{}, errors.NewValueError("ContinuousEvaluator.Evaluate",
			"need at least 2 fake points to fit a density")
	}

	fakeM := fakePoints.Matrix()
	bandwidth, err := density.MedianConsecutiveDistance(fakeM)
	if err != nil {
		return ContinuousResult{}, errors.Wrap(err, "estimating bandwidth")
	}
	if validationFake != nil {
		if validationFake.Len() == 0 {
			return ContinuousResult{}, errors.NewValueError("ContinuousEvaluator.Evaluate",
				"empty validation batch")
		}
		bandwidth, err = density.SelectBandwidth(fakeM, validationFake.Matrix(), bandwidth)
		if err != nil {
			return ContinuousResult{}, errors.Wrap(err, "refining bandwidth")
		}
		e.logger.Debug("bandwidth refined on validation batch",
			log.BandwidthKey, bandwidth,
			log.SamplesKey, validationFake.Len(),
		)
	}

	kde := density.NewKernelDensity(density.WithBandwidth(bandwidth))
	if err := kde.Fit(fakeM); err != nil {
		return ContinuousResult{}, errors.Wrap(err, "fitting density")
	}

	modelLogDensity, err := kde.ScoreSamples(fakeM)
	if err != nil {
		return ContinuousResult{}, errors.Wrap(err, "scoring fake points")
	}
	threshold := percentile(modelLogDensity, coveragePercentile)

	realLogDensity, err := kde.ScoreSamples(realPoints.Matrix())
	if err != nil {
		return ContinuousResult{}, errors.Wrap(err, "scoring real points")
	}

	result := ContinuousResult{
		LogLikelihood: stat.Mean(realLogDensity, nil),
		Coverage:      1 - fractionAtMost(realLogDensity, threshold),
	}
	e.logger.Info("evaluated continuous batch",
		log.OperationKey, "evaluate",
		log.DatasetKey, e.cfg.Kind.String(),
		log.BandwidthKey, bandwidth,
		log.LogLikelihoodKey, result.LogLikelihood,
		log.CoverageKey, result.Coverage,
	)
	return result, nil
}
