// SPDX-License-Identifier: MIT

package ctmc

import (
	"fmt"
	"math"
)

// Advance performs at most one transition within the given time budget.
//
// A holding time is drawn from Exp(mean 1/exit(s)). If it fits into budget
// the chain jumps: the destination is picked from the off-diagonal row in
// proportion to its rates, time advances by the holding time, the jump
// counter increments, the path log (if any) grows by one step and every
// observer receives the Event. Otherwise the clock advances by exactly
// budget, the state is unchanged and nobody is notified.
//
// budget may be +Inf, in which case the chain always jumps.
//
// Errors: ErrNotStarted / ErrChainFinished outside Running, ErrInvalidBudget
// for negative or NaN budgets, ErrAbsorbingState, ErrNoDestination.
// On error the cursor is unchanged.
//
// Complexity: O(n) for the weighted pick.
func (c *Chain) Advance(budget float64) (bool, error) {
	const method = "Advance"
	switch c.phase {
	case Idle:
		return false, fmt.Errorf("%s: %w", method, ErrNotStarted)
	case Finished:
		return false, fmt.Errorf("%s: %w", method, ErrChainFinished)
	}
	if budget < 0 || math.IsNaN(budget) {
		return false, fmt.Errorf("%s: budget=%g: %w", method, budget, ErrInvalidBudget)
	}

	hold, err := c.holding(method)
	if err != nil {
		return false, err
	}
	if hold > budget {
		c.cur.Time += budget
		return false, nil
	}

	next, err := c.destination(method)
	if err != nil {
		return false, err
	}
	entered := c.move(next, hold)
	c.cur.Jumps++

	if c.path != nil {
		c.path.Steps = append(c.path.Steps, Step{State: next, Time: c.cur.Time, Jump: c.cur.Jumps})
		c.path.End = c.cur.Time
	}
	if len(c.obs) > 0 {
		c.obs.OnJump(Event{
			Prev:     c.cur.Prev,
			State:    c.cur.State,
			PrevTime: entered,
			Time:     c.cur.Time,
			Jump:     c.cur.Jumps,
		})
	}

	return true, nil
}

// JumpSilently performs one unconditional transition without notifying
// observers or touching the path log. It is used for burn-in and is legal
// in the Idle and Running phases. The clock advances by the holding time.
//
// Errors: ErrChainFinished, ErrAbsorbingState, ErrNoDestination.
func (c *Chain) JumpSilently() error {
	const method = "JumpSilently"
	if c.phase == Finished {
		return fmt.Errorf("%s: %w", method, ErrChainFinished)
	}
	hold, err := c.holding(method)
	if err != nil {
		return err
	}
	next, err := c.destination(method)
	if err != nil {
		return err
	}
	c.move(next, hold)
	c.cur.Silent++

	return nil
}

// holding draws the sojourn time in the current state.
func (c *Chain) holding(method string) (float64, error) {
	s := c.cur.State
	rate := c.exit[s]
	if !(rate > 0) {
		return 0, fmt.Errorf("%s: state %d at t=%g: %w", method, s, c.cur.Time, ErrAbsorbingState)
	}
	hold := c.src.Exponential(1 / rate)
	if math.IsNaN(hold) {
		return 0, fmt.Errorf("%s: state %d exit rate %g: %w", method, s, rate, ErrAbsorbingState)
	}

	return hold, nil
}

// destination picks the next state from the off-diagonal row of the current
// state and maps the (n-1)-wide index back to the full state space.
func (c *Chain) destination(method string) (int, error) {
	s := c.cur.State
	k, err := c.src.WeightedPick(c.off[s])
	if err != nil {
		return 0, fmt.Errorf("%s: state %d: %w: %w", method, s, ErrNoDestination, err)
	}
	if k >= s {
		k++
	}

	return k, nil
}

// move commits a transition to next after a further wait of hold and
// returns the time the state being left was entered. Holding times are
// memoryless, so hold is measured from the current clock even when earlier
// budget-exhausting calls already advanced it.
func (c *Chain) move(next int, hold float64) float64 {
	entered := c.cur.Entered
	c.cur.Prev = c.cur.State
	c.cur.Time += hold
	c.cur.Entered = c.cur.Time
	c.cur.State = next

	return entered
}
