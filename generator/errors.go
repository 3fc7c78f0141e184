// SPDX-License-Identifier: MIT
// Package: ctmcsim/generator
//
// errors.go — sentinel errors for the generator package.
//
// Error policy:
//   • Only package-level sentinels are exposed; branch with errors.Is.
//   • Constructors attach context with %w ("Cycle: n=1 < min=2: ...").
//   • Runtime paths never panic; option constructors (WithX) may.
//
// Priority when several validations fail:
//   ErrTooFewStates → ErrInvalidProbability → ErrInvalidRate →
//   ErrNeedRandSource → ErrConstructFailed.

package generator

import "errors"

// ErrTooFewStates indicates that the state count is below the minimum the
// requested constructor supports (e.g. Cycle on a single state).
var ErrTooFewStates = errors.New("generator: too few states")

// ErrInvalidProbability indicates that a probability lies outside [0,1].
var ErrInvalidProbability = errors.New("generator: probability out of range")

// ErrInvalidRate indicates a negative, NaN or infinite transition rate,
// either passed explicitly or produced by the configured rate function.
var ErrInvalidRate = errors.New("generator: invalid transition rate")

// ErrNeedRandSource indicates that a stochastic constructor needs an RNG
// (WithSeed or WithRand) and none was configured.
var ErrNeedRandSource = errors.New("generator: rng is required")

// ErrConstructFailed indicates that assembling or validating the final
// generator failed (nil constructor, shape mismatch, invalid result).
var ErrConstructFailed = errors.New("generator: construction failed")
