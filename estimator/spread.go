// SPDX-License-Identifier: MIT

package estimator

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ctmcsim/matrix"
)

// InvariantSpread returns, per state, the mean of the replica invariant
// estimates and its standard error sd/√k, where sd is the sample standard
// deviation across the k replicas. With a single replica the errors are NaN.
//
// The mean is the unweighted replica average and may differ slightly from
// Merge, which pools by elapsed time.
//
// Errors: ErrReportMismatch for no reports, a nil report or differing
// state counts.
// Complexity: O(k·n).
func InvariantSpread(reports ...*Report) (mean, stderr []float64, err error) {
	const method = "InvariantSpread"
	if len(reports) == 0 || reports[0] == nil {
		return nil, nil, fmt.Errorf("%s: no reports: %w", method, ErrReportMismatch)
	}
	n := reports[0].States
	x, err := matrix.NewDenseWithOptions(len(reports), n, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", method, err)
	}
	for k, r := range reports {
		if r == nil || r.States != n || len(r.Invariant) != n {
			return nil, nil, fmt.Errorf("%s: report %d: %w", method, k, ErrReportMismatch)
		}
		for j, v := range r.Invariant {
			if err = x.Set(k, j, v); err != nil {
				return nil, nil, fmt.Errorf("%s: %w", method, err)
			}
		}
	}

	mean, sd, err := matrix.ColumnStats(x)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", method, err)
	}
	scale := 1 / math.Sqrt(float64(len(reports)))
	for j := range sd {
		sd[j] *= scale
	}

	return mean, sd, nil
}
