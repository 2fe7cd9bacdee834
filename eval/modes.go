package eval

import (
	"gonum.org/v1/gonum/stat"

	"github.com/mixturelab/ganeval/pkg/errors"
	"github.com/mixturelab/ganeval/pkg/log"
	"github.com/mixturelab/ganeval/samples"
)

// ModeResult is the metric tuple of the discrete evaluators.
type ModeResult struct {
	// JSDivergence is the Jensen-Shannon divergence between the confident
	// label histogram and the uniform distribution over the label space.
	JSDivergence float64

	// Coverage mirrors the continuous Coverage definition over the label
	// histogram: 1 minus the fraction of labels at or below its 5th
	// percentile frequency.
	Coverage float64

	// ActualCoverage is the ratio of distinct confidently-hit labels to
	// the size of the label space.
	ActualCoverage float64

	// MeanConfidence is the mean top-class probability over all classified
	// points, confident or not. For the composite variant it averages the
	// three sub-scores of every point.
	MeanConfidence float64
}

// sentinelJS is the designed worst-case ceiling returned when no
// prediction is confident. It sits strictly above any reachable
// Jensen-Shannon value.
const sentinelJS = 2.0

// GalleryPlotter receives one representative fake point per first-seen
// confident mode for a diagnostic gallery image. The plots package
// provides the production implementation.
type GalleryPlotter interface {
	SaveModeGallery(step int, points *samples.Batch, prefix string) error
}

// DiscreteModeEvaluator quantifies mode coverage and uniformity of
// classifier-labelled generative output. The single-label variant covers
// a 10-way digit space; the composite variant decodes three stacked or
// concatenated digits into a 1000-way space.
type DiscreteModeEvaluator struct {
	cfg    Config
	logger log.Logger
}

// NewDiscreteModeEvaluator creates an evaluator for a discrete dataset
// kind. The configuration is validated here, before any evaluation call.
func NewDiscreteModeEvaluator(cfg Config) (*DiscreteModeEvaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Kind.Discrete() {
		return nil, errors.NewValidationError("Kind", "requires a discrete dataset kind", cfg.Kind)
	}
	return &DiscreteModeEvaluator{
		cfg:    cfg,
		logger: log.GetLoggerWithName("eval"),
	}, nil
}

// Evaluate classifies every fake point with clf and computes the mode
// metrics. The classifier handle is scoped to this call and not retained.
// gallery may be nil to skip the mode-gallery side effect; when non-nil it
// receives one representative point per first-seen confident mode, in the
// caller's value convention.
func (e *DiscreteModeEvaluator) Evaluate(clf Classifier, step int, fakePoints *samples.Batch, gallery GalleryPlotter) (ModeResult, error) {
	if fakePoints == nil || fakePoints.Len() == 0 {
		return ModeResult{}, errors.NewValueError("DiscreteModeEvaluator.Evaluate", "no fake points to evaluate")
	}
	if clf == nil {
		return ModeResult{}, errors.NewCollaboratorError("classifier", "Evaluate", errors.New("nil classifier handle"))
	}

	// The classifier expects intensities in [0, 1].
	work := fakePoints
	if e.cfg.NormalizeSym {
		work = samples.ToUnitRange(fakePoints)
	}

	var (
		labels    []int
		confident []bool
		meanConf  float64
		space     int
		err       error
	)
	if e.cfg.Kind == DiscreteComposite {
		labels, confident, meanConf, err = e.classifyComposite(clf, work)
		space = CompositeLabelSpace
	} else {
		labels, confident, meanConf, err = e.classifySingle(clf, work)
		space = SingleLabelSpace
	}
	if err != nil {
		return ModeResult{}, err
	}

	numConfident := 0
	for _, ok := range confident {
		if ok {
			numConfident++
		}
	}
	e.logger.Debug("classified fake points",
		log.SamplesKey, fakePoints.Len(),
		log.ConfidenceKey, meanConf,
		"confident_ratio", float64(numConfident)/float64(len(confident)),
	)

	// One representative fake point per first-seen confident mode.
	if gallery != nil {
		representatives := firstSeenConfident(labels, confident)
		if len(representatives) > 0 {
			points := fakePoints.Gather(representatives)
			if err := gallery.SaveModeGallery(step, points, "modes_"); err != nil {
				return ModeResult{}, errors.Wrap(err, "plotting mode gallery")
			}
		}
	}

	if numConfident == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("js_divergence",
			"no confident predictions", sentinelJS))
		return ModeResult{
			JSDivergence:   sentinelJS,
			MeanConfidence: meanConf,
		}, nil
	}

	result := modeMetrics(labels, confident, space)
	result.MeanConfidence = meanConf
	e.logger.Info("evaluated discrete batch",
		log.OperationKey, "evaluate",
		log.DatasetKey, e.cfg.Kind.String(),
		log.JSDivergenceKey, result.JSDivergence,
		log.CoverageKey, result.Coverage,
		log.ActualCoverageKey, result.ActualCoverage,
		log.ConfidenceKey, result.MeanConfidence,
	)
	return result, nil
}

// classifySingle classifies whole images against the 10-way digit space.
func (e *DiscreteModeEvaluator) classifySingle(clf Classifier, points *samples.Batch) ([]int, []bool, float64, error) {
	labels, probs, confident, err := classifyBatched(clf, points.Matrix(),
		e.cfg.ClassifierBatchSize, e.cfg.ConfidenceThreshold)
	if err != nil {
		return nil, nil, 0, err
	}
	return labels, confident, stat.Mean(probs, nil), nil
}

// classifyComposite splits every image into three digit sub-images,
// classifies each independently and decodes the base-10 positional code
// 100*d1 + 10*d2 + d3. A point is confident only when all three
// sub-classifications exceed the threshold; the mean confidence averages
// all three sub-scores of all points.
func (e *DiscreteModeEvaluator) classifyComposite(clf Classifier, points *samples.Batch) ([]int, []bool, float64, error) {
	first, second, third, err := samples.SplitTriple(points, e.cfg.CompositeByChannel)
	if err != nil {
		return nil, nil, 0, err
	}

	n := points.Len()
	labels := make([]int, n)
	confident := make([]bool, n)
	var probSum float64
	for i, sub := range []*samples.Batch{first, second, third} {
		subLabels, subProbs, subConfident, err := classifyBatched(clf, sub.Matrix(),
			e.cfg.ClassifierBatchSize, e.cfg.ConfidenceThreshold)
		if err != nil {
			return nil, nil, 0, err
		}
		place := []int{100, 10, 1}[i]
		for j := 0; j < n; j++ {
			labels[j] += place * subLabels[j]
			if i == 0 {
				confident[j] = subConfident[j]
			} else {
				confident[j] = confident[j] && subConfident[j]
			}
			probSum += subProbs[j]
		}
	}
	return labels, confident, probSum / float64(3*n), nil
}

// modeMetrics computes the histogram-based metric tuple over a label
// space. At least one prediction must be confident.
func modeMetrics(labels []int, confident []bool, space int) ModeResult {
	counts := make([]float64, space)
	distinct := 0
	total := 0.0
	for i, label := range labels {
		if !confident[i] {
			continue
		}
		if counts[label] == 0 {
			distinct++
		}
		counts[label]++
		total++
	}

	phat := counts
	for i := range phat {
		phat[i] /= total
	}
	uniform := make([]float64, space)
	for i := range uniform {
		uniform[i] = 1 / float64(space)
	}

	threshold := percentile(phat, coveragePercentile)
	return ModeResult{
		JSDivergence:   stat.JensenShannon(phat, uniform),
		Coverage:       1 - fractionAtMost(phat, threshold),
		ActualCoverage: float64(distinct) / float64(space),
	}
}

// firstSeenConfident returns the index of the first confident occurrence
// of each distinct label, in order of first appearance.
func firstSeenConfident(labels []int, confident []bool) []int {
	seen := make(map[int]bool)
	var indices []int
	for i, label := range labels {
		if !confident[i] || seen[label] {
			continue
		}
		seen[label] = true
		indices = append(indices, i)
	}
	return indices
}
