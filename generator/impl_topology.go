// SPDX-License-Identifier: MIT
// Package: ctmcsim/generator
//
// impl_topology.go — deterministic transition topologies.
//
// Contract (all constructors here):
//   • Every emitted transition i→j (i≠j) gets cfg.rateFn(i, j, cfg.rng).
//   • Emission order is stable: i asc, then j asc.
//   • Return only sentinel errors; never panic at runtime.

package generator

import (
	"fmt"

	"github.com/katalvlaran/ctmcsim/matrix"
)

const (
	methodCycle    = "Cycle"
	methodComplete = "Complete"
	methodStar     = "Star"

	minCycleStates    = 2
	minCompleteStates = 2
	minStarStates     = 2
)

// Cycle emits the directed ring 0→1→…→n-1→0.
// No state can be revisited before every other state is hit, so the direct
// and moving hitting times coincide on a ring.
//
// Complexity: O(n).
func Cycle() Constructor {
	return func(q *matrix.Dense, cfg generatorConfig) error {
		n := q.Rows()
		if n < minCycleStates {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleStates, ErrTooFewStates)
		}
		for i := 0; i < n; i++ {
			if err := emit(q, cfg, methodCycle, i, (i+1)%n); err != nil {
				return err
			}
		}

		return nil
	}
}

// Complete emits every transition i→j with i≠j.
//
// Complexity: O(n²).
func Complete() Constructor {
	return func(q *matrix.Dense, cfg generatorConfig) error {
		n := q.Rows()
		if n < minCompleteStates {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minCompleteStates, ErrTooFewStates)
		}
		var i, j int
		for i = 0; i < n; i++ {
			for j = 0; j < n; j++ {
				if i == j {
					continue
				}
				if err := emit(q, cfg, methodComplete, i, j); err != nil {
					return err
				}
			}
		}

		return nil
	}
}

// Star emits hub transitions 0→k and k→0 for every leaf k in 1..n-1.
//
// Complexity: O(n).
func Star() Constructor {
	return func(q *matrix.Dense, cfg generatorConfig) error {
		n := q.Rows()
		if n < minStarStates {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarStates, ErrTooFewStates)
		}
		for k := 1; k < n; k++ {
			if err := emit(q, cfg, methodStar, 0, k); err != nil {
				return err
			}
			if err := emit(q, cfg, methodStar, k, 0); err != nil {
				return err
			}
		}

		return nil
	}
}
