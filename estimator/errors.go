// SPDX-License-Identifier: MIT

package estimator

import "errors"

// Sentinel errors for the estimator package ("estimator: ..." prefix).
// Unobserved (i, j) pairs are NOT errors: they surface as NaN cells.
var (
	// ErrBadStateCount indicates n < 1.
	ErrBadStateCount = errors.New("estimator: state count must be > 0")

	// ErrStateOutOfRange indicates an event or baseline state outside [0, n).
	// OnJump cannot return errors, so the first such event is remembered and
	// reported by Finalize.
	ErrStateOutOfRange = errors.New("estimator: state out of range")

	// ErrAlreadyFinalized indicates a second Finalize call.
	ErrAlreadyFinalized = errors.New("estimator: already finalized")

	// ErrInvalidElapsed indicates a negative or non-finite window length, or
	// one shorter than the span of the events already consumed.
	ErrInvalidElapsed = errors.New("estimator: invalid elapsed time")

	// ErrBurnInOutOfRange indicates an offline burn-in offset outside the path.
	ErrBurnInOutOfRange = errors.New("estimator: burn-in offset out of range")

	// ErrEmptyPath indicates a nil or empty recorded path.
	ErrEmptyPath = errors.New("estimator: empty path")

	// ErrReportMismatch indicates reports that cannot be merged.
	ErrReportMismatch = errors.New("estimator: reports cannot be merged")
)
