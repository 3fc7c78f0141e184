// SPDX-License-Identifier: MIT
// Package: ctmcsim/generator
//
// api.go - public entry points for the generator package.
//
// Design contract:
//   - One orchestrator: Build(n, opts, cons...). Allocates an n×n zero rate
//     matrix, resolves cfg, runs constructors in order, then closes every row
//     by setting q_ii = -Σ_{j≠i} q_ij and validates the result.
//   - Constructors only ADD off-diagonal rates; composing two constructors
//     that emit the same transition sums their rates.
//   - Determinism: same n, options, seed and constructor order ⇒ identical Q.

package generator

import (
	"fmt"

	"github.com/katalvlaran/ctmcsim/matrix"
)

const (
	methodBuild    = "Build"
	methodFromRows = "FromRows"
	minStates      = 1
)

// Constructor emits off-diagonal transition rates into q using the resolved
// generatorConfig. Constructors validate their parameters first and return
// sentinel errors; they never write the diagonal.
type Constructor func(q *matrix.Dense, cfg generatorConfig) error

// Build creates an n-state generator by applying all constructors in order.
// The diagonal is recomputed from the off-diagonal rates, so every row sums
// to zero by construction. A state with no outgoing rate is absorbing; that
// is a valid generator and is reported later by the jump engine.
//
// Complexity: O(n²) allocation and closing pass, plus Σ constructor cost.
//
// Errors: ErrTooFewStates for n < 1; any constructor error wrapped as
// "Build: %w"; ErrConstructFailed for nil constructors or an invalid result.
func Build(n int, opts []Option, cons ...Constructor) (*matrix.Dense, error) {
	if n < minStates {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodBuild, n, minStates, ErrTooFewStates)
	}

	q, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodBuild, err)
	}
	cfg := newGeneratorConfig(opts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("%s: nil constructor at index %d: %w", methodBuild, i, ErrConstructFailed)
		}
		if err = fn(q, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", methodBuild, err)
		}
	}

	if err = closeRows(q); err != nil {
		return nil, fmt.Errorf("%s: %w", methodBuild, err)
	}
	if err = matrix.ValidateGenerator(q, matrix.DefaultEpsilon); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", methodBuild, err, ErrConstructFailed)
	}

	return q, nil
}

// FromRows wraps a fully explicit generator. Unlike Rates, the diagonal is
// taken verbatim and the matrix must already satisfy the generator
// invariants (square, finite, off-diagonal ≥ 0, rows summing to zero).
//
// Errors are those of matrix.FromRows and matrix.ValidateGenerator, wrapped
// with the "FromRows:" prefix so errors.Is on the matrix sentinels works.
func FromRows(rows [][]float64) (*matrix.Dense, error) {
	q, err := matrix.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodFromRows, err)
	}
	if err = matrix.ValidateGenerator(q, matrix.DefaultEpsilon); err != nil {
		return nil, fmt.Errorf("%s: %w", methodFromRows, err)
	}

	return q, nil
}

// emit adds cfg.rateFn(i, j) to q[i][j].
func emit(q *matrix.Dense, cfg generatorConfig, method string, i, j int) error {
	return addRate(q, method, i, j, cfg.rateFn(i, j, cfg.rng))
}

// addRate adds r to q[i][j] after validating it. Zero is accepted and is a no-op.
func addRate(q *matrix.Dense, method string, i, j int, r float64) error {
	if !validRate(r) {
		return fmt.Errorf("%s: rate(%d→%d)=%g: %w", method, i, j, r, ErrInvalidRate)
	}
	if r == 0 {
		return nil
	}
	cur, err := q.At(i, j)
	if err != nil {
		return fmt.Errorf("%s: At(%d,%d): %w", method, i, j, err)
	}
	if err = q.Set(i, j, cur+r); err != nil {
		return fmt.Errorf("%s: Set(%d,%d): %w", method, i, j, err)
	}

	return nil
}

// closeRows sets each diagonal entry to the negated off-diagonal row sum.
func closeRows(q *matrix.Dense) error {
	n := q.Rows()
	var (
		i, j int
		sum  float64
		v    float64
		err  error
	)
	for i = 0; i < n; i++ {
		sum = 0
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			if v, err = q.At(i, j); err != nil {
				return err
			}
			sum += v
		}
		if err = q.Set(i, i, -sum); err != nil {
			return err
		}
	}

	return nil
}
