// SPDX-License-Identifier: MIT

package simulate

import (
	"log/slog"

	"github.com/katalvlaran/ctmcsim/internal/logging"
	"github.com/katalvlaran/ctmcsim/metrics"
)

const (
	// MinBurnIn is the recommended minimum number of silent burn-in jumps.
	MinBurnIn = 1000

	// LogInterval is the number of measured jumps between Debug progress records.
	LogInterval = 100000
)

// Option configures a Driver. Constructors panic on nil arguments.
type Option func(*options)

type options struct {
	log   *slog.Logger
	rec   *metrics.Recorder
	runID string
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("simulate: WithLogger(nil)")
	}
	return func(o *options) { o.log = l }
}

// WithMetrics attaches a Prometheus recorder that observes every measured
// jump, burn-in totals and run outcomes.
func WithMetrics(r *metrics.Recorder) Option {
	if r == nil {
		panic("simulate: WithMetrics(nil)")
	}
	return func(o *options) { o.rec = r }
}

// WithRunID sets the identifier attached to every log record of the run.
// An empty id keeps the generated UUID.
func WithRunID(id string) Option {
	return func(o *options) {
		if id != "" {
			o.runID = id
		}
	}
}

func gatherOptions(opts ...Option) options {
	o := options{log: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
