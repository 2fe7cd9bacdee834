// Package eval implements the evaluation engine: the density-based
// coverage/likelihood metric for continuous low-dimensional data and the
// classifier-based mode-coverage metrics for discrete-labelled image data,
// in single-digit and composite triple-digit variants.
package eval

import (
	"github.com/mixturelab/ganeval/pkg/errors"
)

// DatasetKind selects the evaluator and plot variant for a dataset. The
// kind is resolved and validated once at configuration time; an
// unsupported kind never reaches an evaluation call.
type DatasetKind int

const (
	// Unsupported is the zero value and always fails validation.
	Unsupported DatasetKind = iota
	// Continuous1D is scalar continuous data, e.g. a 1-D Gaussian mixture.
	Continuous1D
	// Continuous2D is 2-vector continuous data.
	Continuous2D
	// DiscreteSingle is single-digit image data with 10 modes.
	DiscreteSingle
	// DiscreteComposite is triple-digit image data with 1000 modes.
	DiscreteComposite
)

// String returns the dataset kind name used in logs and filenames.
func (k DatasetKind) String() string {
	switch k {
	case Continuous1D:
		return "continuous-1d"
	case Continuous2D:
		return "continuous-2d"
	case DiscreteSingle:
		return "discrete-single"
	case DiscreteComposite:
		return "discrete-composite"
	default:
		return "unsupported"
	}
}

// Continuous reports whether the kind uses the density-based evaluator.
func (k DatasetKind) Continuous() bool {
	return k == Continuous1D || k == Continuous2D
}

// Discrete reports whether the kind uses the classifier-based evaluator.
func (k DatasetKind) Discrete() bool {
	return k == DiscreteSingle || k == DiscreteComposite
}

// Mode-space sizes of the discrete evaluator variants.
const (
	SingleLabelSpace    = 10
	CompositeLabelSpace = 1000
)

// Percentile of the model density (or label histogram) that bounds the
// high-density region used by the Coverage metric.
const coveragePercentile = 5.0

// Config holds the options the evaluation core consumes. It is owned by
// the caller; evaluators and the plot dispatcher only read it.
type Config struct {
	// Kind selects the evaluator and plot variant.
	Kind DatasetKind

	// NormalizeSym indicates the ambient data convention is the symmetric
	// range [-1, 1]. Image batches are rescaled to [0, 1] before the
	// classifier sees them and back for plotting.
	NormalizeSym bool

	// ClassifierBatchSize bounds per-call classifier memory.
	ClassifierBatchSize int

	// ConfidenceThreshold is the top-class probability above which a
	// prediction counts as confident.
	ConfidenceThreshold float64

	// CompositeByChannel selects the composite digit layout: three
	// channel-stacked sub-images when true, width-concatenated otherwise.
	CompositeByChannel bool

	// OutDir is the directory diagnostic plots are written to.
	OutDir string

	// PlotEvery is the step cadence of the auxiliary loss-curve axis.
	PlotEvery int

	// MaxVal bounds the plotting axes for continuous data.
	MaxVal float64

	// MaxRows is the maximum number of tiles per mosaic column.
	MaxRows int
}

// DefaultConfig returns a Config for the given kind with the defaults of
// the evaluation pipeline.
func DefaultConfig(kind DatasetKind) Config {
	return Config{
		Kind:                kind,
		ClassifierBatchSize: 100,
		ConfidenceThreshold: 0.999,
		PlotEvery:           500,
		MaxVal:              15,
		MaxRows:             16,
	}
}

// Validate checks the configuration. It must be called (directly or via an
// evaluator constructor) before any evaluation; reaching an evaluator with
// an invalid configuration is a caller defect, not a data condition.
func (c *Config) Validate() error {
	switch c.Kind {
	case Continuous1D, Continuous2D, DiscreteSingle, DiscreteComposite:
	default:
		return errors.NewValidationError("Kind", "unsupported dataset kind", c.Kind)
	}
	if c.Kind.Discrete() {
		if c.ClassifierBatchSize <= 0 {
			return errors.NewValidationError("ClassifierBatchSize", "must be positive", c.ClassifierBatchSize)
		}
		if c.ConfidenceThreshold <= 0 || c.ConfidenceThreshold >= 1 {
			return errors.NewValidationError("ConfidenceThreshold", "must be in (0, 1)", c.ConfidenceThreshold)
		}
		if c.MaxRows <= 0 {
			return errors.NewValidationError("MaxRows", "must be positive", c.MaxRows)
		}
	}
	return nil
}
