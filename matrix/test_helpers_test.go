// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic test fixtures for kernels and validators.
//   - Keep all data finite and well-formed unless a test targets the numeric policy.

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/ctmcsim/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing the generic (non-*Dense) paths in code under test.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		t.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}

	return m
}

// mustRows builds a *Dense from literal rows or fails the test.
func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}

	return m
}

// twoState is the generator [[-1,1],[2,-2]] used across packages.
func twoState(t *testing.T) *matrix.Dense {
	t.Helper()
	return mustRows(t, [][]float64{{-1, 1}, {2, -2}})
}
