// SPDX-License-Identifier: MIT

package estimator

import (
	"fmt"

	"github.com/katalvlaran/ctmcsim/ctmc"
	"github.com/katalvlaran/ctmcsim/matrix"
)

// Kind selects one of the three pairwise estimators of a Report.
type Kind int

const (
	// KindDirect is the hitting time from the most recent visit to i.
	KindDirect Kind = iota
	// KindMoving is the hitting time from the first visit to i since the
	// last time j was hit.
	KindMoving
	// KindJumps is the jump count from the most recent visit to i.
	KindJumps
)

// String returns the estimator name.
func (k Kind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindMoving:
		return "moving"
	case KindJumps:
		return "jumps"
	default:
		return "unknown"
	}
}

// Pair is an ordered state pair (I, J).
type Pair struct{ I, J int }

// Report holds the finalized estimates of one measurement window. Matrices
// are n×n; cells whose pair was never observed are NaN.
//
// The raw Sum/Count matrices and Occupancy are kept so that reports of
// independent replicas can be pooled with Merge.
type Report struct {
	States  int
	Start   float64 // clock reading at the window start
	Elapsed float64 // window length
	Jumps   int64   // measured jumps inside the window

	Occupancy []float64 // time spent in each state
	Invariant []float64 // Occupancy / Elapsed

	DirectHitting *matrix.Dense
	MovingHitting *matrix.Dense
	JumpCounts    *matrix.Dense

	DirectSum, DirectCount *matrix.Dense
	MovingSum, MovingCount *matrix.Dense
	JumpSum, JumpCount     *matrix.Dense
}

// Observed reports whether at least one sample of kind exists for (i, j).
// Out-of-range indices report false.
func (r *Report) Observed(kind Kind, i, j int) bool {
	cnt := r.counts(kind)
	if cnt == nil {
		return false
	}
	v, err := cnt.At(i, j)
	return err == nil && v > 0
}

// Unobserved lists the pairs with no sample of kind, row-major.
func (r *Report) Unobserved(kind Kind) []Pair {
	cnt := r.counts(kind)
	if cnt == nil {
		return nil
	}
	var out []Pair
	cnt.Do(func(i, j int, v float64) bool {
		if v == 0 {
			out = append(out, Pair{I: i, J: j})
		}
		return true
	})
	return out
}

// Estimate returns the estimate matrix for kind, or nil for an unknown kind.
func (r *Report) Estimate(kind Kind) *matrix.Dense {
	switch kind {
	case KindDirect:
		return r.DirectHitting
	case KindMoving:
		return r.MovingHitting
	case KindJumps:
		return r.JumpCounts
	}
	return nil
}

func (r *Report) counts(kind Kind) *matrix.Dense {
	switch kind {
	case KindDirect:
		return r.DirectCount
	case KindMoving:
		return r.MovingCount
	case KindJumps:
		return r.JumpCount
	}
	return nil
}

// newReport normalizes raw accumulators into a Report.
func newReport(n int, start ctmc.Step, elapsed float64, jumps int64, occupancy []float64,
	direct, moving *tally[float64], steps *tally[int64]) (*Report, error) {
	r := &Report{
		States:    n,
		Start:     start.Time,
		Elapsed:   elapsed,
		Jumps:     jumps,
		Occupancy: append([]float64(nil), occupancy...),
	}
	raw := []struct {
		sum, count []float64
		dsum, dcnt **matrix.Dense
	}{
		{direct.sums(), direct.counts(), &r.DirectSum, &r.DirectCount},
		{moving.sums(), moving.counts(), &r.MovingSum, &r.MovingCount},
		{steps.sums(), steps.counts(), &r.JumpSum, &r.JumpCount},
	}
	var err error
	for _, m := range raw {
		if *m.dsum, err = matrix.FromFlat(n, n, m.sum); err != nil {
			return nil, fmt.Errorf("newReport: %w", err)
		}
		if *m.dcnt, err = matrix.FromFlat(n, n, m.count); err != nil {
			return nil, fmt.Errorf("newReport: %w", err)
		}
	}
	if err = r.normalize(); err != nil {
		return nil, err
	}

	return r, nil
}

// normalize derives Invariant and the estimate matrices from the raw fields.
func (r *Report) normalize() error {
	r.Invariant = make([]float64, r.States)
	for k, v := range r.Occupancy {
		r.Invariant[k] = v / r.Elapsed
	}
	var err error
	if r.DirectHitting, err = matrix.DivElements(r.DirectSum, r.DirectCount); err != nil {
		return fmt.Errorf("normalize: direct: %w", err)
	}
	if r.MovingHitting, err = matrix.DivElements(r.MovingSum, r.MovingCount); err != nil {
		return fmt.Errorf("normalize: moving: %w", err)
	}
	if r.JumpCounts, err = matrix.DivElements(r.JumpSum, r.JumpCount); err != nil {
		return fmt.Errorf("normalize: jumps: %w", err)
	}

	return nil
}
