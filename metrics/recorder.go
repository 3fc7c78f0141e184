// SPDX-License-Identifier: MIT

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/ctmcsim/ctmc"
)

// Run outcome label values for ctmcsim_runs_total.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Recorder collects jump and run metrics. Counters and gauges are safe for
// concurrent use, so one Recorder may be shared by parallel replicas.
type Recorder struct {
	reg *prometheus.Registry

	jumps       prometheus.Counter
	burnInJumps prometheus.Counter
	runs        *prometheus.CounterVec
	simTime     prometheus.Gauge
	runSeconds  prometheus.Histogram
}

var _ ctmc.Observer = (*Recorder)(nil)

// NewRecorder registers the ctmcsim_* collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Recorder{
		reg: reg,
		jumps: f.NewCounter(prometheus.CounterOpts{
			Name: "ctmcsim_jumps_total",
			Help: "Measured CTMC jumps.",
		}),
		burnInJumps: f.NewCounter(prometheus.CounterOpts{
			Name: "ctmcsim_burnin_jumps_total",
			Help: "Silent burn-in jumps.",
		}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ctmcsim_runs_total",
			Help: "Completed runs by outcome.",
		}, []string{"outcome"}),
		simTime: f.NewGauge(prometheus.GaugeOpts{
			Name: "ctmcsim_simulated_time",
			Help: "Simulated clock reading at the most recent jump or run end.",
		}),
		runSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "ctmcsim_run_duration_seconds",
			Help:    "Wall-clock duration of runs.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
}

// OnJump counts a measured jump and tracks the simulated clock.
func (r *Recorder) OnJump(ev ctmc.Event) {
	r.jumps.Inc()
	r.simTime.Set(ev.Time)
}

// BurnInJumps adds k silent jumps.
func (r *Recorder) BurnInJumps(k int) {
	if k > 0 {
		r.burnInJumps.Add(float64(k))
	}
}

// RunDone records the outcome of one run, its simulated end time and its
// wall-clock duration.
func (r *Recorder) RunDone(err error, simEnd float64, wall time.Duration) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	r.runs.WithLabelValues(outcome).Inc()
	r.simTime.Set(simEnd)
	r.runSeconds.Observe(wall.Seconds())
}

// Registry returns the registry holding the ctmcsim_* collectors.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// WriteTextfile writes the current metric values to path in the text
// exposition format, atomically (temp file + rename).
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
