// Package rng_test validates determinism and the distributional contracts of
// the random variate source.
package rng_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/ctmcsim/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_SeedDeterminism checks that equal seeds produce identical streams
// and that seed 0 maps onto DefaultSeed.
func TestNew_SeedDeterminism(t *testing.T) {
	a, b := rng.New(7), rng.New(7)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Uniform(), b.Uniform(), "draw %d", i)
	}

	z, d := rng.New(0), rng.New(rng.DefaultSeed)
	require.Equal(t, rng.DefaultSeed, z.Seed())
	require.Equal(t, d.Uniform(), z.Uniform())
}

// TestUniform_Range checks every draw lies in [0,1).
func TestUniform_Range(t *testing.T) {
	src := rng.New(3)
	for i := 0; i < 10000; i++ {
		u := src.Uniform()
		require.GreaterOrEqual(t, u, 0.0)
		require.Less(t, u, 1.0)
	}
}

// TestExponential_Mean checks the empirical mean against the requested one.
func TestExponential_Mean(t *testing.T) {
	const n = 200000
	src := rng.New(11)
	for _, mean := range []float64{0.5, 1, 4} {
		var sum float64
		for i := 0; i < n; i++ {
			x := src.Exponential(mean)
			require.GreaterOrEqual(t, x, 0.0)
			sum += x
		}
		// Standard error of the mean is mean/sqrt(n) ≈ 0.0022·mean; allow ~5σ.
		assert.InDelta(t, mean, sum/n, 0.012*mean, "mean %g", mean)
	}
}

// TestExponential_InvalidMean yields NaN rather than a silently infinite wait.
func TestExponential_InvalidMean(t *testing.T) {
	src := rng.New(1)
	for _, mean := range []float64{0, -1, math.Inf(1), math.NaN()} {
		assert.True(t, math.IsNaN(src.Exponential(mean)), "mean %v", mean)
		assert.False(t, rng.ValidMean(mean))
	}
	assert.True(t, rng.ValidMean(0.25))
}

// TestWeightedPick_Frequencies checks [0,3,1] converges to [0,.75,.25].
func TestWeightedPick_Frequencies(t *testing.T) {
	const n = 200000
	src := rng.New(5)
	w := []float64{0, 3, 1}
	var hits [3]int
	for i := 0; i < n; i++ {
		k, err := src.WeightedPick(w)
		require.NoError(t, err)
		hits[k]++
	}
	assert.Zero(t, hits[0], "zero-weight index must never be picked")
	assert.InDelta(t, 0.75, float64(hits[1])/n, 0.01)
	assert.InDelta(t, 0.25, float64(hits[2])/n, 0.01)
}

// TestWeightedPick_SkipsNonPositive ensures negative and infinite weights are ignored.
func TestWeightedPick_SkipsNonPositive(t *testing.T) {
	src := rng.New(9)
	w := []float64{-5, math.Inf(1), 2, math.NaN(), 0}
	for i := 0; i < 1000; i++ {
		k, err := src.WeightedPick(w)
		require.NoError(t, err)
		require.Equal(t, 2, k)
	}
}

// TestWeightedPick_NoCandidate returns the sentinel for empty or all non-positive input.
func TestWeightedPick_NoCandidate(t *testing.T) {
	src := rng.New(1)
	for _, w := range [][]float64{nil, {}, {0, 0}, {-1, -2}} {
		_, err := src.WeightedPick(w)
		require.ErrorIs(t, err, rng.ErrNoPositiveWeight, "weights %v", w)
	}
}

// TestDerive_Independence checks derived streams are reproducible and distinct.
func TestDerive_Independence(t *testing.T) {
	base := rng.New(42)
	a1, a2 := base.Derive(1), base.Derive(1)
	b := base.Derive(2)
	require.Equal(t, a1.Seed(), a2.Seed())
	require.NotEqual(t, a1.Seed(), b.Seed())

	// Drawing from the parent does not change what a child looks like.
	_ = base.Uniform()
	require.Equal(t, a1.Seed(), base.Derive(1).Seed())
	require.Equal(t, a1.Uniform(), a2.Uniform())
}
