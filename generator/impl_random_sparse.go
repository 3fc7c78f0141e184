// SPDX-License-Identifier: MIT
// Package: ctmcsim/generator
//
// impl_random_sparse.go - RandomSparse(p) constructor.
//
// Canonical model:
//   - Erdős–Rényi-like: every ordered pair (i,j), i≠j, carries a transition
//     independently with probability p.
//
// Contract:
//   - n ≥ 1 (guaranteed by Build).
//   - 0 ≤ p ≤ 1 (else ErrInvalidProbability).
//   - cfg.rng is required when 0 < p < 1 (else ErrNeedRandSource).
//   - Trial order is stable: i asc, j asc.
//   - States left without outgoing transitions become absorbing.

package generator

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ctmcsim/matrix"
)

const (
	methodRandomSparse = "RandomSparse"
	probMin            = 0.0
	probMax            = 1.0
)

// RandomSparse returns a Constructor that samples a random transition
// structure with edge probability p.
//
// Complexity: O(n²) Bernoulli trials.
func RandomSparse(p float64) Constructor {
	return func(q *matrix.Dense, cfg generatorConfig) error {
		if p < probMin || p > probMax || math.IsNaN(p) {
			return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
				methodRandomSparse, p, probMin, probMax, ErrInvalidProbability)
		}
		rng := cfg.rng
		if rng == nil && p > probMin && p < probMax {
			return fmt.Errorf("%s: %w", methodRandomSparse, ErrNeedRandSource)
		}

		n := q.Rows()
		var i, j int
		for i = 0; i < n; i++ {
			for j = 0; j < n; j++ {
				if i == j {
					continue
				}
				switch {
				case p == probMin:
					continue
				case p == probMax:
				case rng.Float64() >= p:
					continue
				}
				if err := emit(q, cfg, methodRandomSparse, i, j); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
