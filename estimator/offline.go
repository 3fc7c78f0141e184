// SPDX-License-Identifier: MIT

package estimator

import (
	"fmt"

	"github.com/katalvlaran/ctmcsim/ctmc"
)

// NewOffline builds an estimator from a recorded trajectory. The step at
// index burnIn becomes the baseline and every later step is replayed through
// the same OnJump the online estimator uses, so both produce identical
// accumulators for the same jumps.
//
// Errors: ErrEmptyPath, ErrBurnInOutOfRange, and those of New.
// Complexity: O(len(path)·n).
func NewOffline(path *ctmc.Path, n, burnIn int) (*Estimator, error) {
	const method = "NewOffline"
	if path.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", method, ErrEmptyPath)
	}
	if burnIn < 0 || burnIn >= path.Len() {
		return nil, fmt.Errorf("%s: burn-in %d not in [0,%d): %w", method, burnIn, path.Len(), ErrBurnInOutOfRange)
	}

	steps := path.Steps
	e, err := New(n, steps[burnIn])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	for k := burnIn + 1; k < len(steps); k++ {
		e.OnJump(ctmc.Event{
			Prev:     steps[k-1].State,
			State:    steps[k].State,
			PrevTime: steps[k-1].Time,
			Time:     steps[k].Time,
			Jump:     steps[k].Jump,
		})
	}
	if e.err != nil {
		return nil, fmt.Errorf("%s: %w", method, e.err)
	}

	return e, nil
}

// Replay runs NewOffline and finalizes over the window from the baseline
// step to path.End.
func Replay(path *ctmc.Path, n, burnIn int) (*Report, error) {
	e, err := NewOffline(path, n, burnIn)
	if err != nil {
		return nil, err
	}

	return e.Finalize(path.End - e.start.Time)
}
