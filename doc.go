// Package ganeval evaluates batches of generated samples against held-out
// real data, in the style of the metrics used for boosted generative
// mixture training.
//
// For continuous low-dimensional data it fits a Gaussian kernel density
// model to the fake samples and reports the mean log-density of the real
// points together with a coverage score, the fraction of real points that
// fall inside the model's high-density region.
//
// For labelled image data it drives a caller-supplied classifier over the
// fake samples and reports mode-coverage metrics: the Jensen-Shannon
// divergence of the confident-label histogram from uniform, the fraction
// of probability mass on well-populated modes, the fraction of the label
// space actually reached, and the classifier's mean confidence. The
// single-digit variant covers a 10-mode space, the composite triple-digit
// variant a 1000-mode space.
//
// # Quick Start
//
//	cfg := eval.DefaultConfig(eval.Continuous2D)
//	res, err := eval.Evaluate(cfg, eval.Inputs{
//	    Step:       step,
//	    Real:       realBatch,
//	    Fake:       fakeBatch,
//	    Validation: validationBatch,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Continuous.LogLikelihood, res.Continuous.Coverage)
//
// # Packages
//
//   - samples: the shared batch type for vector and image data
//   - density: Gaussian kernel density estimation and bandwidth selection
//   - eval: the evaluation engine and its configuration
//   - plots: diagnostic PNG output for every dataset kind
//   - core/model: estimator interfaces and fitted-state bookkeeping
//   - pkg/errors: error types and the metric warning channel
//   - pkg/log: structured logging
package ganeval
