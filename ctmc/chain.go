// SPDX-License-Identifier: MIT

package ctmc

import (
	"fmt"

	"github.com/katalvlaran/ctmcsim/matrix"
	"github.com/katalvlaran/ctmcsim/rng"
)

// Chain is a single continuous-time Markov chain trajectory.
//
// A Chain owns its copy of the off-diagonal rates, its exit-rate vector, its
// random source and its cursor. It is not safe for concurrent use; run one
// Chain per goroutine.
type Chain struct {
	n     int
	off   [][]float64 // n rows of n-1 off-diagonal rates
	exit  []float64   // -Q[i][i]
	src   rng.Source
	cur   Cursor
	phase Phase
	obs   Observers
	path  *Path
}

// New validates q and returns an Idle chain positioned at the initial state.
//
// Stage 1 (validate): q must satisfy matrix.ValidateGenerator, otherwise the
// matrix error is wrapped together with ErrInvalidGenerator.
// Stage 2 (prepare): the off-diagonal view and exit rates are built once and
// never change afterwards.
//
// Complexity: O(n²) time and memory.
func New(q matrix.Matrix, opts ...Option) (*Chain, error) {
	const method = "New"
	if err := matrix.ValidateGenerator(q, matrix.DefaultEpsilon); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", method, ErrInvalidGenerator, err)
	}
	cfg := gatherOptions(opts...)

	n := q.Rows()
	if cfg.state >= n {
		return nil, fmt.Errorf("%s: initial state %d not in [0,%d): %w", method, cfg.state, n, ErrInvalidState)
	}

	view, err := matrix.DropDiagonal(q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", method, ErrInvalidGenerator, err)
	}
	c := &Chain{
		n:    n,
		off:  make([][]float64, n),
		exit: make([]float64, n),
		src:  cfg.src,
		obs:  cfg.observer,
		cur: Cursor{
			State:   cfg.state,
			Prev:    cfg.state,
			Time:    cfg.time,
			Entered: cfg.time,
		},
	}
	var d float64
	for i := 0; i < n; i++ {
		if c.off[i], err = view.Row(i); err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
		if d, err = q.At(i, i); err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
		c.exit[i] = -d
	}
	if cfg.pathLog {
		c.path = &Path{}
	}

	return c, nil
}

// Start moves an Idle chain to Running. When path logging is on, the current
// position becomes the baseline step of the log. Calling Start on a Running
// chain is a no-op.
func (c *Chain) Start() error {
	switch c.phase {
	case Finished:
		return fmt.Errorf("Start: %w", ErrChainFinished)
	case Running:
		return nil
	}
	c.phase = Running
	if c.path != nil {
		c.path.Steps = append(c.path.Steps, Step{State: c.cur.State, Time: c.cur.Time, Jump: c.cur.Jumps})
		c.path.End = c.cur.Time
	}

	return nil
}

// Finish moves the chain to the terminal Finished phase and stamps the path
// end time. Finish is idempotent.
func (c *Chain) Finish() {
	if c.phase == Finished {
		return
	}
	c.phase = Finished
	if c.path != nil {
		c.path.End = c.cur.Time
	}
}

// Cursor returns a copy of the current position.
func (c *Chain) Cursor() Cursor { return c.cur }

// States returns n.
func (c *Chain) States() int { return c.n }

// Phase returns the lifecycle phase.
func (c *Chain) Phase() Phase { return c.phase }

// ExitRate returns -Q[i][i], or 0 if i is out of range.
func (c *Chain) ExitRate(i int) float64 {
	if i < 0 || i >= c.n {
		return 0
	}
	return c.exit[i]
}

// IsAbsorbing reports whether state i has no positive outgoing rate.
func (c *Chain) IsAbsorbing(i int) bool {
	return !(c.ExitRate(i) > 0)
}

// Path returns the recorded trajectory, or nil when path logging is off.
// The returned value is shared with the chain; treat it as read-only.
func (c *Chain) Path() *Path { return c.path }
