// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Column-wise summary statistics over a sample matrix whose rows are
//     independent observations (e.g. one invariant estimate per replica).
//
// Determinism & Performance:
//   - Fixed i→j traversal; two passes (mean, then squared deviations).
//   - Dense fast-path on the flat buffer; At fallback for other Matrix types.

package matrix

import "math"

// Operation name constants for unified error wrapping.
const (
	opColumnMeans = "ColumnMeans"
	opColumnStats = "ColumnStats"
)

// ColumnMeans returns mean[j] = Σ_i X[i,j] / r.
//
// Errors: ErrNilMatrix; wrapped At errors on the fallback path.
// Complexity: O(rc).
func ColumnMeans(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}
	r, c := X.Rows(), X.Cols()
	means := make([]float64, c)
	if r == 0 {
		return means, nil
	}
	if err := eachCell(X, func(_, j int, v float64) { means[j] += v }); err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}

	invR := 1.0 / float64(r)
	for j := range means {
		means[j] *= invR
	}

	return means, nil
}

// ColumnStats returns the column means and the unbiased sample standard
// deviations (divisor r−1). With fewer than two rows the deviations are NaN.
// NaN cells propagate into their column.
//
// Errors: ErrNilMatrix; wrapped At errors on the fallback path.
// Complexity: O(rc).
func ColumnStats(X Matrix) (means, stddev []float64, err error) {
	if means, err = ColumnMeans(X); err != nil {
		return nil, nil, matrixErrorf(opColumnStats, err)
	}
	r := X.Rows()
	stddev = make([]float64, len(means))
	if r < 2 {
		for j := range stddev {
			stddev[j] = math.NaN()
		}
		return means, stddev, nil
	}

	err = eachCell(X, func(_, j int, v float64) {
		d := v - means[j]
		stddev[j] += d * d
	})
	if err != nil {
		return nil, nil, matrixErrorf(opColumnStats, err)
	}
	inv := 1.0 / float64(r-1)
	for j := range stddev {
		stddev[j] = math.Sqrt(stddev[j] * inv)
	}

	return means, stddev, nil
}

// eachCell visits X in row-major order.
func eachCell(X Matrix, f func(i, j int, v float64)) error {
	r, c := X.Rows(), X.Cols()
	if d, ok := X.(*Dense); ok {
		var i, j, base int
		for i = 0; i < r; i++ {
			base = i * c
			for j = 0; j < c; j++ {
				f(i, j, d.data[base+j])
			}
		}
		return nil
	}

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := X.At(i, j)
			if err != nil {
				return err
			}
			f(i, j, v)
		}
	}

	return nil
}
