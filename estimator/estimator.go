// SPDX-License-Identifier: MIT

package estimator

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ctmcsim/ctmc"
)

// endSlack is the relative rounding tolerance between the window end and
// the last event time.
const endSlack = 1e-12

// Estimator is the streaming statistics engine. It implements ctmc.Observer
// and keeps O(n²) accumulators; the trajectory itself is never stored.
//
// Per event (prev → s at time t, jump index k):
//
//	occupancy[prev]    += t - last
//	direct row s       arm(t)         then column s consume(t)
//	moving row s       armIdle(t)     then column s consume(t)
//	jump-count row s   arm(k)         then column s consume(k)
//
// Arming precedes consuming, so every diagonal cell records one zero-length
// sample per visit.
//
// An Estimator is single-use and not safe for concurrent use.
type Estimator struct {
	n     int
	start ctmc.Step
	state int
	last  float64
	jumps int64

	occupancy []float64
	direct    tally[float64]
	moving    tally[float64]
	steps     tally[int64]

	err  error
	done bool
}

var _ ctmc.Observer = (*Estimator)(nil)

// New returns an online estimator for an n-state chain whose measurement
// window starts at start (state occupied and clock reading when Run began).
// The baseline is not an arrival: it arms nothing.
//
// Errors: ErrBadStateCount, ErrStateOutOfRange.
// Complexity: O(n²) memory.
func New(n int, start ctmc.Step) (*Estimator, error) {
	if n < 1 {
		return nil, fmt.Errorf("New: n=%d: %w", n, ErrBadStateCount)
	}
	if start.State < 0 || start.State >= n {
		return nil, fmt.Errorf("New: start state %d not in [0,%d): %w", start.State, n, ErrStateOutOfRange)
	}

	return &Estimator{
		n:         n,
		start:     start,
		state:     start.State,
		last:      start.Time,
		occupancy: make([]float64, n),
		direct:    newTally[float64](n),
		moving:    newTally[float64](n),
		steps:     newTally[int64](n),
	}, nil
}

// OnJump folds one measured jump into the accumulators.
//
// Events after Finalize are ignored. An out-of-range state is remembered and
// reported by Finalize; the offending event is dropped.
//
// Complexity: O(n).
func (e *Estimator) OnJump(ev ctmc.Event) {
	if e.done || e.err != nil {
		return
	}
	if ev.Prev < 0 || ev.Prev >= e.n || ev.State < 0 || ev.State >= e.n {
		e.err = fmt.Errorf("OnJump: jump %d %d→%d with n=%d: %w", ev.Jump, ev.Prev, ev.State, e.n, ErrStateOutOfRange)
		return
	}

	e.occupancy[ev.Prev] += ev.Time - e.last

	e.direct.arm(ev.State, ev.Time)
	e.direct.consume(ev.State, ev.Time)

	e.moving.armIdle(ev.State, ev.Time)
	e.moving.consume(ev.State, ev.Time)

	e.steps.arm(ev.State, ev.Jump)
	e.steps.consume(ev.State, ev.Jump)

	e.state = ev.State
	e.last = ev.Time
	e.jumps++
}

// Jumps returns the number of events consumed so far.
func (e *Estimator) Jumps() int64 { return e.jumps }

// Finalize closes the window of length elapsed (measured from the baseline
// time) and normalizes the accumulators into a Report. The censored sojourn
// from the last jump to the end of the window is credited to the state
// occupied at that time, so the invariant estimate sums to one.
//
// elapsed == 0 is legal and yields a NaN invariant vector. Finalize may be
// called once; a second call returns ErrAlreadyFinalized.
//
// Errors: ErrAlreadyFinalized, a remembered ErrStateOutOfRange,
// ErrInvalidElapsed.
// Complexity: O(n²).
func (e *Estimator) Finalize(elapsed float64) (*Report, error) {
	const method = "Finalize"
	if e.done {
		return nil, fmt.Errorf("%s: %w", method, ErrAlreadyFinalized)
	}
	if e.err != nil {
		return nil, e.err
	}
	end := e.start.Time + elapsed
	if end < e.last && e.last-end <= endSlack*math.Max(1, math.Abs(e.last)) {
		// start+elapsed may round just below a jump that landed on the boundary.
		end = e.last
	}
	if elapsed < 0 || math.IsNaN(elapsed) || math.IsInf(elapsed, 0) || end < e.last {
		return nil, fmt.Errorf("%s: elapsed=%g (last event at %g, window starts %g): %w",
			method, elapsed, e.last, e.start.Time, ErrInvalidElapsed)
	}
	e.done = true
	e.occupancy[e.state] += end - e.last

	return newReport(e.n, e.start, elapsed, e.jumps, e.occupancy,
		&e.direct, &e.moving, &e.steps)
}
