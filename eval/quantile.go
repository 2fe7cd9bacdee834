package eval

import (
	"math"
	"sort"
)

// percentile returns the p-th percentile of values using fractional-rank
// linear interpolation: the returned threshold t satisfies
// mean(values <= t) >= p/100, matching the convention the coverage
// thresholds are defined against. gonum's Quantile cumulant kinds define
// the interpolation differently, so this is computed directly.
func percentile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// fractionAtMost returns the fraction of values less than or equal to the
// threshold.
func fractionAtMost(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v <= threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}
