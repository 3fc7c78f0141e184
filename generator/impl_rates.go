// SPDX-License-Identifier: MIT
// Package: ctmcsim/generator
//
// impl_rates.go — Rates(rows) constructor for explicit off-diagonal rates.

package generator

import (
	"fmt"

	"github.com/katalvlaran/ctmcsim/matrix"
)

const methodRates = "Rates"

// Rates returns a Constructor that adds the explicit off-diagonal rates in
// rows. rows must be n×n for the n passed to Build; the diagonal entries are
// ignored because Build recomputes them.
//
// Errors: ErrConstructFailed wrapping matrix.ErrDimensionMismatch on shape
// mismatch, ErrInvalidRate on a negative or non-finite off-diagonal value.
//
// Complexity: O(n²).
func Rates(rows [][]float64) Constructor {
	return func(q *matrix.Dense, _ generatorConfig) error {
		n := q.Rows()
		if len(rows) != n {
			return fmt.Errorf("%s: %d rows for %d states: %w: %w",
				methodRates, len(rows), n, matrix.ErrDimensionMismatch, ErrConstructFailed)
		}
		var i, j int
		for i = 0; i < n; i++ {
			if len(rows[i]) != n {
				return fmt.Errorf("%s: row %d has %d cols, want %d: %w: %w",
					methodRates, i, len(rows[i]), n, matrix.ErrDimensionMismatch, ErrConstructFailed)
			}
			for j = 0; j < n; j++ {
				if i == j {
					continue
				}
				if err := addRate(q, methodRates, i, j, rows[i][j]); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
