// SPDX-License-Identifier: MIT

package simulate

import "errors"

var (
	// ErrInvalidDuration indicates a negative or non-finite run duration.
	ErrInvalidDuration = errors.New("simulate: invalid duration")

	// ErrInvalidJumpTarget indicates a negative jump count for BurnIn or RunJumps.
	ErrInvalidJumpTarget = errors.New("simulate: invalid jump target")

	// ErrAlreadyRun indicates a second Run/RunJumps, or BurnIn after a run.
	// A Driver owns one accumulator set and is single-use.
	ErrAlreadyRun = errors.New("simulate: driver already ran")

	// ErrLowBurnIn is a warning, never returned: BurnIn records it in
	// Warnings and logs it when fewer than MinBurnIn jumps are requested.
	ErrLowBurnIn = errors.New("simulate: burn-in below recommended minimum")

	// ErrNoReplicas indicates Replicate was asked for fewer than one replica.
	ErrNoReplicas = errors.New("simulate: no replicas requested")

	// ErrPathLoggingDisabled indicates Analyze on a driver built without
	// ctmc.WithPathLog(true).
	ErrPathLoggingDisabled = errors.New("simulate: path logging disabled")
)
