// SPDX-License-Identifier: MIT

package ctmc

import (
	"math"

	"github.com/katalvlaran/ctmcsim/rng"
)

// Defaults for a Chain built without options.
const (
	DefaultInitialState = 0
	DefaultInitialTime  = 0.0
	DefaultPathLog      = false
)

// Option configures a Chain. Option constructors panic on values that can
// never be valid; range checks that depend on Q happen in New.
type Option func(*config)

type config struct {
	state    int
	time     float64
	src      rng.Source
	pathLog  bool
	observer Observers
}

// WithInitialState sets the state the chain starts in. Panics if s < 0;
// s ≥ n is reported by New as ErrInvalidState.
func WithInitialState(s int) Option {
	if s < 0 {
		panic("ctmc: WithInitialState(s<0)")
	}
	return func(c *config) { c.state = s }
}

// WithInitialTime sets the simulated clock origin. Panics if t is negative
// or non-finite.
func WithInitialTime(t float64) Option {
	if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		panic("ctmc: WithInitialTime(t<0 or non-finite)")
	}
	return func(c *config) { c.time = t }
}

// WithSource sets the random variate source. Panics on nil.
func WithSource(src rng.Source) Option {
	if src == nil {
		panic("ctmc: WithSource(nil)")
	}
	return func(c *config) { c.src = src }
}

// WithSeed uses rng.New(seed) as the random variate source.
func WithSeed(seed int64) Option {
	return func(c *config) { c.src = rng.New(seed) }
}

// WithPathLog enables or disables the in-memory trajectory log.
func WithPathLog(on bool) Option {
	return func(c *config) { c.pathLog = on }
}

// WithObserver appends o to the observers notified on every measured jump.
// Panics on nil.
func WithObserver(o Observer) Option {
	if o == nil {
		panic("ctmc: WithObserver(nil)")
	}
	return func(c *config) { c.observer = append(c.observer, o) }
}

func gatherOptions(opts ...Option) config {
	c := config{
		state:   DefaultInitialState,
		time:    DefaultInitialTime,
		pathLog: DefaultPathLog,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.src == nil {
		c.src = rng.New(0)
	}

	return c
}
