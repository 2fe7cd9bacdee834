package eval

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixturelab/ganeval/samples"
)

// gaussianBatch draws n points from N(mean, I) in the given dimension.
func gaussianBatch(t *testing.T, rng *rand.Rand, n, dim int, mean []float64) *samples.Batch {
	t.Helper()
	data := make([]float64, n*dim)
	for i := 0; i < n; i++ {
		for j := 0; j < dim; j++ {
			data[i*dim+j] = mean[j] + rng.NormFloat64()
		}
	}
	b, err := samples.NewVector(n, dim, data)
	require.NoError(t, err)
	return b
}

func TestContinuousEvaluatorInputErrors(t *testing.T) {
	e, err := NewContinuousEvaluator(DefaultConfig(Continuous2D))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	real := gaussianBatch(t, rng, 10, 2, []float64{0, 0})
	fake := gaussianBatch(t, rng, 10, 2, []float64{0, 0})
	single := gaussianBatch(t, rng, 1, 2, []float64{0, 0})
	empty, err := samples.NewVector(0, 2, nil)
	require.NoError(t, err)

	tests := []struct {
		name            string
		real, fake, val *samples.Batch
	}{
		{name: "nil real", real: nil, fake: fake},
		{name: "empty real", real: empty, fake: fake},
		{name: "nil fake", real: real, fake: nil},
		{name: "single fake point", real: real, fake: single},
		{name: "empty validation", real: real, fake: fake, val: empty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Evaluate(tt.real, tt.fake, tt.val)
			assert.Error(t, err)
		})
	}
}

func TestNewContinuousEvaluatorRejectsDiscreteKind(t *testing.T) {
	if _, err := NewContinuousEvaluator(DefaultConfig(DiscreteSingle)); err == nil {
		t.Fatal("expected error for a discrete dataset kind")
	}
}

func TestContinuousCoverageBounds(t *testing.T) {
	e, err := NewContinuousEvaluator(DefaultConfig(Continuous2D))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(5))
	for trial := 0; trial < 5; trial++ {
		real := gaussianBatch(t, rng, 50, 2, []float64{rng.Float64() * 4, 0})
		fake := gaussianBatch(t, rng, 50, 2, []float64{0, rng.Float64() * 4})

		result, err := e.Evaluate(real, fake, nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Coverage, 0.0)
		assert.LessOrEqual(t, result.Coverage, 1.0)
	}
}

func TestContinuousOverlapMonotonicity(t *testing.T) {
	e, err := NewContinuousEvaluator(DefaultConfig(Continuous2D))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(9))
	fake := gaussianBatch(t, rng, 300, 2, []float64{0, 0})
	overlapping := gaussianBatch(t, rng, 300, 2, []float64{0, 0})
	disjoint := gaussianBatch(t, rng, 300, 2, []float64{8, 0})

	high, err := e.Evaluate(overlapping, fake, nil)
	require.NoError(t, err)
	low, err := e.Evaluate(disjoint, fake, nil)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, high.Coverage, low.Coverage,
		"more overlap must not decrease coverage")
}

func TestContinuousMatchingDistributions(t *testing.T) {
	// real and fake both N(0, I_2): the model's high-density region should
	// cover nearly all real mass and the likelihood should sit near the
	// true Gaussian differential entropy.
	e, err := NewContinuousEvaluator(DefaultConfig(Continuous2D))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	real := gaussianBatch(t, rng, 1000, 2, []float64{0, 0})
	fake := gaussianBatch(t, rng, 1000, 2, []float64{0, 0})
	validation := gaussianBatch(t, rng, 500, 2, []float64{0, 0})

	result, err := e.Evaluate(real, fake, validation)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.Coverage, 0.85)

	// -E[log p] for N(0, I_2) is 1 + log(2*pi) ~ 2.838; allow generous
	// estimation slack around it.
	trueEntropy := 1 + math.Log(2*math.Pi)
	assert.InDelta(t, -trueEntropy, result.LogLikelihood, 0.5)
}

func TestContinuousDisjointDistributions(t *testing.T) {
	// Fake mass far from all real mass: almost no real point can land in
	// the model's high-density region.
	e, err := NewContinuousEvaluator(DefaultConfig(Continuous2D))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(43))
	real := gaussianBatch(t, rng, 1000, 2, []float64{0, 0})
	fake := gaussianBatch(t, rng, 1000, 2, []float64{10, 0})
	validation := gaussianBatch(t, rng, 500, 2, []float64{10, 0})

	result, err := e.Evaluate(real, fake, validation)
	require.NoError(t, err)

	assert.LessOrEqual(t, result.Coverage, 0.2)
}

func TestEvaluateDispatchContinuous(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	in := Inputs{
		Real: gaussianBatch(t, rng, 100, 1, []float64{0}),
		Fake: gaussianBatch(t, rng, 100, 1, []float64{0}),
	}

	result, err := Evaluate(DefaultConfig(Continuous1D), in)
	require.NoError(t, err)
	require.NotNil(t, result.Continuous)
	assert.Nil(t, result.Modes)
}
