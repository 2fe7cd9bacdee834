package eval

import (
	"gonum.org/v1/gonum/mat"

	"github.com/mixturelab/ganeval/pkg/errors"
)

// Classifier is the pre-trained label classifier the discrete evaluators
// query. Rows of the batch are flattened images with intensities in
// [0, 1]; the classifier returns one predicted label and one top-class
// probability per row, in input order. Predictions must be deterministic
// for fixed classifier weights.
//
// The handle is supplied per evaluation call and must not be retained by
// the core across calls.
type Classifier interface {
	Predict(batch *mat.Dense) (labels []int, probs []float64, err error)
}

// classifyBatched invokes the classifier in fixed-size chunks to bound
// per-call memory and concatenates the results in input order. The derived
// confident flag is probs > threshold. Classifier failures and empty
// prediction batches are unrecoverable collaborator errors.
func classifyBatched(clf Classifier, images *mat.Dense, batchSize int, threshold float64) (labels []int, probs []float64, confident []bool, err error) {
	n, d := images.Dims()
	labels = make([]int, 0, n)
	probs = make([]float64, 0, n)
	confident = make([]bool, 0, n)

	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}
		chunk := images.Slice(start, end, 0, d).(*mat.Dense)

		chunkLabels, chunkProbs, err := clf.Predict(chunk)
		if err != nil {
			return nil, nil, nil, errors.NewCollaboratorError("classifier", "Predict", err)
		}
		if len(chunkLabels) == 0 || len(chunkProbs) == 0 {
			return nil, nil, nil, errors.NewCollaboratorError("classifier", "Predict",
				errors.New("empty prediction output"))
		}
		if len(chunkLabels) != end-start || len(chunkProbs) != end-start {
			return nil, nil, nil, errors.NewCollaboratorError("classifier", "Predict",
				errors.Newf("prediction count %d does not match batch size %d", len(chunkLabels), end-start))
		}

		labels = append(labels, chunkLabels...)
		probs = append(probs, chunkProbs...)
		for _, p := range chunkProbs {
			confident = append(confident, p > threshold)
		}
	}
	return labels, probs, confident, nil
}
