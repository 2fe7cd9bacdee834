package density

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/mixturelab/ganeval/pkg/errors"
)

// Number of candidates in the refinement grid: the initial estimate scaled
// by 2^k for k in [-7, 6].
const (
	gridSize  = 14
	gridShift = 7
)

// MedianConsecutiveDistance returns the median Euclidean distance between
// consecutive rows of X (row i vs row i+1, not all pairs). It is a cheap
// proxy for the kernel bandwidth. X must have at least 2 rows.
func MedianConsecutiveDistance(X mat.Matrix) (float64, error) {
	n, d := X.Dims()
	if n < 2 {
		return 0, errors.NewValueError("MedianConsecutiveDistance", "need at least 2 points")
	}

	dists := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		var d2 float64
		for j := 0; j < d; j++ {
			diff := X.At(i, j) - X.At(i+1, j)
			d2 += diff * diff
		}
		dists[i] = math.Sqrt(d2)
	}
	sort.Float64s(dists)
	mid := len(dists) / 2
	if len(dists)%2 == 1 {
		return dists[mid], nil
	}
	return (dists[mid-1] + dists[mid]) / 2, nil
}

// SelectBandwidth refines an initial bandwidth estimate by a 1-D grid
// search: for each candidate initial*2^k, k = -7..6, it fits a Gaussian
// kernel density on fit and scores val, keeping the candidate with the
// highest mean log-density on val. Scoring a disjoint validation batch
// avoids overfitting the bandwidth to the batch being scored.
//
// When no candidate improves on the floor score the initial estimate is
// returned unchanged.
func SelectBandwidth(fit, val mat.Matrix, initial float64) (float64, error) {
	vn, _ := val.Dims()
	if vn == 0 {
		return 0, errors.NewValueError("SelectBandwidth", "empty validation batch")
	}

	best := initial
	maxScore := -1000000.0
	for k := 0; k < gridSize; k++ {
		h := initial * math.Pow(2, float64(k-gridShift))
		kde := NewKernelDensity(WithBandwidth(h))
		if err := kde.Fit(fit); err != nil {
			return 0, errors.Wrap(err, "SelectBandwidth: fitting candidate")
		}
		scores, err := kde.ScoreSamples(val)
		if err != nil {
			return 0, errors.Wrap(err, "SelectBandwidth: scoring validation batch")
		}
		score := stat.Mean(scores, nil)
		if score > maxScore {
			best = h
			maxScore = score
		}
	}
	return best, nil
}
