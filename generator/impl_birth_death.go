// SPDX-License-Identifier: MIT
// Package: ctmcsim/generator
//
// impl_birth_death.go — BirthDeath(up, down) constructor.
//
// Contract:
//   • n ≥ 2 (else ErrTooFewStates).
//   • up, down finite and ≥ 0 (else ErrInvalidRate).
//   • Emits i→i+1 at rate up and i+1→i at rate down for i=0..n-2.
//   • Explicit rates: cfg.rateFn is not consulted.
//
// The stationary law is geometric with ratio up/down, which gives tests a
// closed form: π_i ∝ (up/down)^i.

package generator

import (
	"fmt"

	"github.com/katalvlaran/ctmcsim/matrix"
)

const (
	methodBirthDeath    = "BirthDeath"
	minBirthDeathStates = 2
)

// BirthDeath returns a Constructor for a truncated birth-death chain.
//
// Complexity: O(n).
func BirthDeath(up, down float64) Constructor {
	return func(q *matrix.Dense, _ generatorConfig) error {
		n := q.Rows()
		if n < minBirthDeathStates {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodBirthDeath, n, minBirthDeathStates, ErrTooFewStates)
		}
		if !validRate(up) || !validRate(down) {
			return fmt.Errorf("%s: up=%g down=%g: %w", methodBirthDeath, up, down, ErrInvalidRate)
		}
		for i := 0; i+1 < n; i++ {
			if err := addRate(q, methodBirthDeath, i, i+1, up); err != nil {
				return err
			}
			if err := addRate(q, methodBirthDeath, i+1, i, down); err != nil {
				return err
			}
		}

		return nil
	}
}
