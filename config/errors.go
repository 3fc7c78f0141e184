// SPDX-License-Identifier: MIT

package config

import "errors"

var (
	// ErrUnknownKind indicates an unsupported generator kind.
	ErrUnknownKind = errors.New("config: unknown generator kind")

	// ErrMissingRates indicates a rates/explicit generator without rows.
	ErrMissingRates = errors.New("config: generator rows required")

	// ErrInvalidConfig indicates an out-of-range or malformed setting.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)
