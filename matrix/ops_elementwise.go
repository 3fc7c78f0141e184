// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, *private* element-wise kernels (ew*) to avoid duplicating
//     tight loops across the public facades in api.go.
//   - Keep all loops deterministic and cache-friendly with Dense fast-paths.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - Dense fast-path operates on a single flat buffer (row-major).
//   - No hidden allocations beyond the output Dense; O(r*c) time and space.

package matrix

// ewDivide computes out[i,j] = a[i,j] / b[i,j] with IEEE-754 semantics.
// Division by zero is NOT an error here: x/0 yields ±Inf and 0/0 yields NaN,
// and the output is allocated with NaN/Inf validation disabled so those
// markers survive. Time: O(r*c). Space: O(r*c).
func ewDivide(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf("divide", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf("divide", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf("divide", err)
	}
	r, c := a.Rows(), a.Cols()
	out, err := newDenseZeroOK(r, c, false)
	if err != nil {
		return nil, matrixErrorf("divide", err)
	}

	// Dense fast-path: single pass over both flat buffers.
	da, okA := a.(*Dense)
	db, okB := b.(*Dense)
	if okA && okB {
		for k := range out.data {
			out.data[k] = da.data[k] / db.data[k]
		}
		return out, nil
	}

	// Generic fallback via At (still deterministic).
	var i, j int
	var x, y float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if x, err = a.At(i, j); err != nil {
				return nil, matrixErrorf("divide", err)
			}
			if y, err = b.At(i, j); err != nil {
				return nil, matrixErrorf("divide", err)
			}
			out.data[i*c+j] = x / y
		}
	}

	return out, nil
}

// ewScale computes out[i,j] = alpha * X[i,j], preserving X's numeric policy
// when X is *Dense. Time: O(r*c). Space: O(r*c).
func ewScale(X Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf("scale", err)
	}
	if isNonFinite(alpha) {
		return nil, matrixErrorf("scale", ErrNaNInf)
	}
	r, c := X.Rows(), X.Cols()
	validate := DefaultValidateNaNInf
	if d, ok := X.(*Dense); ok {
		validate = d.validateNaNInf
	}
	out, err := newDenseZeroOK(r, c, validate)
	if err != nil {
		return nil, matrixErrorf("scale", err)
	}

	if d, ok := X.(*Dense); ok {
		for k, v := range d.data {
			out.data[k] = alpha * v
		}
		return out, nil
	}

	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, matrixErrorf("scale", err)
			}
			out.data[i*c+j] = alpha * v
		}
	}

	return out, nil
}
