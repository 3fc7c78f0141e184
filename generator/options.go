// SPDX-License-Identifier: MIT
// Package: ctmcsim/generator
//
// options.go — functional options and the resolved generatorConfig.
//
// Contract:
//   • Options are functional (type Option func(*generatorConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves never panic.
//   • Determinism is explicit: randomness only through WithSeed/WithRand.
//
// Deterministic defaults:
//   • rateFn = constant DefaultRate (1.0)
//   • rng    = nil (RandomSparse requires one)

package generator

import (
	"math"
	"math/rand"
)

// DefaultRate is the rate emitted for every transition when no rate option is set.
const DefaultRate = 1.0

// RateFn yields the rate for transition from→to. It may draw from r, which is
// nil unless WithSeed or WithRand was given. Results must be finite and ≥ 0.
type RateFn func(from, to int, r *rand.Rand) float64

// Option customizes generator construction by mutating a generatorConfig.
// Complexity: applying N options costs O(N) time, O(1) space.
type Option func(*generatorConfig)

// generatorConfig aggregates the knobs used by constructors.
// It is passed by value to constructors.
type generatorConfig struct {
	rateFn RateFn
	rng    *rand.Rand
}

// WithRate makes every emitted transition use the constant rate r.
// Panics if r is negative or non-finite.
func WithRate(r float64) Option {
	if !validRate(r) {
		panic("generator: WithRate(r<0 or non-finite)")
	}
	return func(c *generatorConfig) {
		c.rateFn = func(int, int, *rand.Rand) float64 { return r }
	}
}

// WithRateFn overrides the per-transition rate generator. Panics on nil.
func WithRateFn(fn RateFn) Option {
	if fn == nil {
		panic("generator: WithRateFn(nil)")
	}
	return func(c *generatorConfig) {
		c.rateFn = fn
	}
}

// WithRand provides an explicit RNG for stochastic constructors. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("generator: WithRand(nil)")
	}
	return func(c *generatorConfig) {
		c.rng = r
	}
}

// WithSeed creates a seeded RNG so stochastic constructors are reproducible.
func WithSeed(seed int64) Option {
	return func(c *generatorConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// newGeneratorConfig applies options over the defaults; last wins.
func newGeneratorConfig(opts ...Option) generatorConfig {
	cfg := generatorConfig{
		rateFn: func(int, int, *rand.Rand) float64 { return DefaultRate },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// validRate reports whether r is usable as an off-diagonal rate.
func validRate(r float64) bool {
	return r >= 0 && !math.IsNaN(r) && !math.IsInf(r, 0)
}
