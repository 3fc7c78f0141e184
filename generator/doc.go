// SPDX-License-Identifier: MIT

// Package generator assembles CTMC generator matrices Q from reusable
// transition topologies.
//
// A generator is built by composing Constructors over n states:
//
//	q, err := generator.Build(3, []generator.Option{generator.WithRate(2)},
//		generator.Cycle(),
//	)
//
// Constructors add off-diagonal rates only. Build closes every row by setting
// q_ii = -Σ_{j≠i} q_ij and then runs matrix.ValidateGenerator, so the result
// always satisfies the generator invariants. FromRows accepts a fully
// explicit Q and validates it without rewriting the diagonal.
//
// Available topologies: Cycle, Complete, Star, BirthDeath, RandomSparse and
// Rates (explicit off-diagonal table). Rates per transition come from
// WithRate or WithRateFn; stochastic constructors need WithSeed or WithRand.
package generator
