// SPDX-License-Identifier: MIT

package estimator

import (
	"fmt"

	"github.com/katalvlaran/ctmcsim/matrix"
)

// Merge pools the reports of independent replicas of the same chain.
// Sums and counts are added cell-wise before dividing (Σsum/Σcount), and
// occupancy is pooled over the total elapsed time, so each replica weighs
// in proportion to its data rather than equally.
//
// Errors: ErrReportMismatch for no reports, a nil report or differing
// state counts.
// Complexity: O(k·n²) for k reports.
func Merge(reports ...*Report) (*Report, error) {
	const method = "Merge"
	if len(reports) == 0 || reports[0] == nil {
		return nil, fmt.Errorf("%s: no reports: %w", method, ErrReportMismatch)
	}
	first := reports[0]
	n := first.States
	out := &Report{
		States:    n,
		Start:     first.Start,
		Occupancy: make([]float64, n),
	}
	var err error
	for _, p := range []**matrix.Dense{
		&out.DirectSum, &out.DirectCount, &out.MovingSum,
		&out.MovingCount, &out.JumpSum, &out.JumpCount,
	} {
		if *p, err = matrix.NewDense(n, n); err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
	}

	for idx, r := range reports {
		if r == nil || r.States != n || len(r.Occupancy) != n {
			return nil, fmt.Errorf("%s: report %d: %w", method, idx, ErrReportMismatch)
		}
		out.Elapsed += r.Elapsed
		out.Jumps += r.Jumps
		for k, v := range r.Occupancy {
			out.Occupancy[k] += v
		}
		pairs := [][2]*matrix.Dense{
			{out.DirectSum, r.DirectSum}, {out.DirectCount, r.DirectCount},
			{out.MovingSum, r.MovingSum}, {out.MovingCount, r.MovingCount},
			{out.JumpSum, r.JumpSum}, {out.JumpCount, r.JumpCount},
		}
		for _, p := range pairs {
			if err = addInto(p[0], p[1]); err != nil {
				return nil, fmt.Errorf("%s: report %d: %w: %w", method, idx, err, ErrReportMismatch)
			}
		}
	}
	if err = out.normalize(); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	return out, nil
}

// addInto performs dst += src cell-wise.
func addInto(dst, src *matrix.Dense) error {
	if err := matrix.ValidateNotNil(src); err != nil {
		return err
	}
	if err := matrix.ValidateSameShape(dst, src); err != nil {
		return err
	}
	return dst.Apply(func(i, j int, v float64) float64 {
		w, _ := src.At(i, j)
		return v + w
	})
}
