// SPDX-License-Identifier: MIT
// Package matrix — public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for the operations the
//     simulation layers need: row sums, the off-diagonal view of a generator,
//     element-wise quotients for estimator normalization, scaling.
//   - Each facade delegates to a canonical kernel (ops_elementwise.go) or a
//     single explicit loop.
//
// Determinism & Policy:
//   - Facades never change loop orders or the numeric policy of kernels.
//   - DivElements deliberately produces NaN/±Inf for zero denominators.

package matrix

import "fmt"

// matrixErrorf wraps an underlying error with the given tag.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// RowSums returns vector r where r[i] = Σ_j m[i,j].
// Complexity: O(rc).
//
// Used to derive the diagonal of generator matrices and to check that
// finalized occupancy vectors are normalized.
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("RowSums", err)
	}
	rows, cols := m.Rows(), m.Cols()
	out := make([]float64, rows)

	if d, ok := m.(*Dense); ok {
		var i, j, base int
		for i = 0; i < rows; i++ {
			base = i * cols
			for j = 0; j < cols; j++ {
				out[i] += d.data[base+j]
			}
		}
		return out, nil
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf("RowSums", err)
			}
			out[i] += v
		}
	}

	return out, nil
}

// DropDiagonal returns the n×(n−1) off-diagonal view of a square matrix:
// row i holds m[i,0..i-1] followed by m[i,i+1..n-1], in original column order.
// Index k of row i maps back to column k when k < i and to k+1 otherwise.
//
// For n == 1 the result is a legal 1×0 matrix.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (non-square).
// Complexity: O(n²).
func DropDiagonal(m Matrix) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf("DropDiagonal", err)
	}
	n := m.Rows()
	out, err := newDenseZeroOK(n, n-1, DefaultValidateNaNInf)
	if err != nil {
		return nil, matrixErrorf("DropDiagonal", err)
	}

	var i, j, k int
	var v float64
	for i = 0; i < n; i++ {
		k = 0
		for j = 0; j < n; j++ {
			if j == i {
				continue // the elided diagonal column
			}
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf("DropDiagonal", err)
			}
			out.data[i*(n-1)+k] = v
			k++
		}
	}

	return out, nil
}

// DivElements returns a new matrix q with q[i,j] = a[i,j] / b[i,j].
// Zero denominators are not an error: the cell becomes NaN (0/0) or ±Inf,
// and the result has NaN/Inf validation disabled so the markers survive.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(rc).
func DivElements(a, b Matrix) (*Dense, error) {
	return ewDivide(a, b)
}

// Scale returns alpha·m as a new matrix.
// Errors: ErrNilMatrix; ErrNaNInf when alpha is not finite.
// Complexity: O(rc).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	return ewScale(m, alpha)
}
