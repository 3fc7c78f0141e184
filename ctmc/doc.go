// SPDX-License-Identifier: MIT

// Package ctmc implements the jump engine of a continuous-time Markov chain
// over a finite state space defined by a generator matrix Q.
//
// A Chain samples exact trajectories: in state s it waits an exponential
// holding time with mean 1/(-Q[s][s]) and then moves to j ≠ s with
// probability Q[s][j]/(-Q[s][s]). Advance performs at most one jump within a
// time budget; when the holding time overruns the budget only the clock
// moves, so a window ends exactly on its boundary.
//
// Lifecycle:
//
//	Idle ──Start──▶ Running ──Finish──▶ Finished
//
// JumpSilently (burn-in) is legal while Idle or Running and never reaches
// observers or the path log. Advance requires Running.
//
// Measured jumps are published as Events to the configured Observers, which
// is how the estimator and metrics packages consume the stream without the
// chain knowing about them. With WithPathLog(true) the chain additionally
// keeps the trajectory in memory for offline analysis.
//
// Errors are sentinels (ErrAbsorbingState, ErrNoDestination, ...) wrapped
// with context; a failed Advance leaves the cursor untouched.
package ctmc
