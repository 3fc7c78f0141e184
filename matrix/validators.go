// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating nil/shape/generator checks here.
//  - Return sentinel errors wrapped with the validator tag so call sites can
//    branch with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - The generator check runs O(n²) in a fixed i→j order.
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Square → values).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// isNonFinite reports whether v is NaN or ±Inf.
func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix if m == nil (including a typed nil *Dense).
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures matrices a and b have equal dimensions.
// Assumes a and b are not nil (caller must ensure).
// Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
//
// Errors: ErrNilMatrix if nil, ErrDimensionMismatch if not square.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquare", err)
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateGenerator checks that m is a transition-rate (generator) matrix:
//   - square and non-nil,
//   - every entry finite,
//   - every off-diagonal entry ≥ 0,
//   - every row sums to zero within eps·max(1, |m[i,i]|).
//
// The scaled tolerance keeps the check meaningful for both small and large
// rates. A negative eps is treated as its absolute value; NaN/Inf eps is
// rejected with ErrNaNInf.
//
// Errors (priority order): ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf,
// ErrNegativeOffDiagonal, ErrNonZeroRowSum. Each is wrapped with the offending
// coordinates.
//
// Complexity: O(n²) time, O(1) space.
func ValidateGenerator(m Matrix, eps float64) error {
	const tag = "ValidateGenerator"
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf(tag, err)
	}
	if isNonFinite(eps) {
		return validatorErrorf(tag, ErrNaNInf)
	}
	eps = math.Abs(eps)

	n := m.Rows()
	var (
		i, j    int
		v, diag float64
		offSum  float64
	)
	for i = 0; i < n; i++ {
		offSum = 0
		for j = 0; j < n; j++ {
			v, _ = m.At(i, j) // indices are in range after the shape check
			if isNonFinite(v) {
				return fmt.Errorf("%s: entry (%d,%d): %w", tag, i, j, ErrNaNInf)
			}
			if i == j {
				diag = v
				continue
			}
			if v < 0 {
				return fmt.Errorf("%s: entry (%d,%d)=%g: %w", tag, i, j, v, ErrNegativeOffDiagonal)
			}
			offSum += v
		}
		if math.Abs(offSum+diag) > eps*math.Max(1, math.Abs(diag)) {
			return fmt.Errorf("%s: row %d sums to %g: %w", tag, i, offSum+diag, ErrNonZeroRowSum)
		}
	}

	return nil
}
