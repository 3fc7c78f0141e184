// Package rng provides the seeded random variate source consumed by the
// continuous-time Markov chain engine: uniform reals, exponential holding
// times and weighted index selection.
//
// Every stream is reproducible from its seed. Parallel replicas obtain
// independent streams with Rand.Derive, which applies a SplitMix64 mix to
// (seed, stream id).
//
//	src := rng.New(42)
//	hold := src.Exponential(1 / rate)
//	next, err := src.WeightedPick(offDiagonalRow)
package rng
