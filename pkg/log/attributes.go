// Standard attribute keys for evaluation operations. Using these keys
// keeps records filterable across runs, steps and evaluator variants.
package log

// Evaluation context.
const (
	// ComponentKey identifies which package is performing the operation.
	// Examples: "density", "eval", "plots"
	ComponentKey = "ml.component"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "score", "evaluate", "classify", "plot"
	OperationKey = "ml.operation"

	// StepKey is the boosting/experiment step of the current evaluation.
	StepKey = "eval.step"

	// RunKey is the index of the current independent run.
	RunKey = "eval.run"

	// DatasetKey names the dataset kind being evaluated.
	// Examples: "continuous-1d", "discrete-single"
	DatasetKey = "eval.dataset"
)

// Data shape.
const (
	// SamplesKey is the number of points in the batch being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the flattened dimensionality of each point.
	FeaturesKey = "data.features"

	// BatchSizeKey is the chunk size used for classifier invocations.
	BatchSizeKey = "data.batch_size"
)

// Metric values.
const (
	// BandwidthKey is the kernel bandwidth selected for a density fit.
	BandwidthKey = "metric.bandwidth"

	// LogLikelihoodKey is the mean log-density of real points.
	LogLikelihoodKey = "metric.log_likelihood"

	// CoverageKey is the percentile-threshold coverage value.
	CoverageKey = "metric.coverage"

	// ActualCoverageKey is the distinct-confident-mode coverage ratio.
	ActualCoverageKey = "metric.actual_coverage"

	// JSDivergenceKey is the Jensen-Shannon divergence against uniform.
	JSDivergenceKey = "metric.js_divergence"

	// ConfidenceKey is the mean top-class probability over a batch.
	ConfidenceKey = "metric.confidence"
)
