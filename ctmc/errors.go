// SPDX-License-Identifier: MIT

package ctmc

import "errors"

// Sentinel errors. Every message is prefixed "ctmc: ..."; methods wrap them
// with context via %w and callers branch with errors.Is.
//
// ERROR PRIORITY (Advance/JumpSilently): phase → budget → absorbing →
// destination. A failed call leaves the cursor untouched.
var (
	// ErrInvalidGenerator indicates that Q is nil, not square, non-finite, has a
	// negative off-diagonal rate or a row that does not sum to zero.
	ErrInvalidGenerator = errors.New("ctmc: invalid generator matrix")

	// ErrInvalidState indicates an initial state outside [0, n).
	ErrInvalidState = errors.New("ctmc: state out of range")

	// ErrInvalidBudget indicates a negative or NaN time budget.
	ErrInvalidBudget = errors.New("ctmc: invalid time budget")

	// ErrAbsorbingState indicates a jump was attempted from a state with no
	// positive outgoing rate. It is fatal for the run.
	ErrAbsorbingState = errors.New("ctmc: jump attempted from absorbing state")

	// ErrNoDestination indicates that the weighted pick over the off-diagonal
	// row found no eligible destination. It is fatal for the run and must not
	// be retried.
	ErrNoDestination = errors.New("ctmc: no valid destination")

	// ErrNotStarted indicates Advance was called before Start.
	ErrNotStarted = errors.New("ctmc: chain not started")

	// ErrChainFinished indicates any transition attempt after Finish.
	ErrChainFinished = errors.New("ctmc: chain finished")
)
