// SPDX-License-Identifier: MIT

package simulate

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/ctmcsim/ctmc"
	"github.com/katalvlaran/ctmcsim/estimator"
	"github.com/katalvlaran/ctmcsim/matrix"
	"github.com/katalvlaran/ctmcsim/metrics"
)

// Driver orchestrates one simulation: optional burn-in, a single measured
// run, and normalization of the accumulators. It is single-use and must be
// driven from one goroutine.
type Driver struct {
	chain *ctmc.Chain
	est   *estimator.Estimator
	log   *slog.Logger
	rec   *metrics.Recorder
	runID string

	warnings []error
	ran      bool
}

// New builds the chain from q and chainOpts and wires the driver's own
// observer (estimator feed, progress logging, metrics) in front of any
// observers already present in chainOpts.
//
// Errors: those of ctmc.New.
func New(q matrix.Matrix, chainOpts []ctmc.Option, opts ...Option) (*Driver, error) {
	o := gatherOptions(opts...)
	d := &Driver{log: o.log, rec: o.rec, runID: o.runID}
	if d.runID == "" {
		d.runID = uuid.New().String()
	}
	d.log = d.log.With("run_id", d.runID)

	all := make([]ctmc.Option, 0, len(chainOpts)+2)
	all = append(all, ctmc.WithObserver(ctmc.ObserverFunc(d.onJump)))
	if d.rec != nil {
		all = append(all, ctmc.WithObserver(d.rec))
	}
	all = append(all, chainOpts...)

	c, err := ctmc.New(q, all...)
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}
	d.chain = c

	return d, nil
}

// onJump feeds the estimator once a run is in progress and emits a Debug
// progress record every LogInterval jumps.
func (d *Driver) onJump(ev ctmc.Event) {
	if d.est != nil {
		d.est.OnJump(ev)
	}
	if ev.Jump%LogInterval == 0 {
		d.log.Debug("progress", "jumps", ev.Jump, "sim_time", ev.Time, "state", ev.State)
	}
}

// BurnIn performs k silent jumps. Fewer than MinBurnIn jumps is legal but
// records ErrLowBurnIn in Warnings and logs it; it is never returned.
//
// Errors: ErrInvalidJumpTarget (k < 0), ErrAlreadyRun, and any jump error
// (ctmc.ErrAbsorbingState, ctmc.ErrNoDestination).
func (d *Driver) BurnIn(k int) error {
	if k < 0 {
		return fmt.Errorf("BurnIn: k=%d: %w", k, ErrInvalidJumpTarget)
	}
	if d.ran {
		return fmt.Errorf("BurnIn: %w", ErrAlreadyRun)
	}
	if k < MinBurnIn {
		w := fmt.Errorf("BurnIn: k=%d < %d: %w", k, MinBurnIn, ErrLowBurnIn)
		d.warnings = append(d.warnings, w)
		d.log.Warn("low burn-in, estimates may be biased by the initial state", "burn_in", k, "recommended", MinBurnIn)
	}

	done := 0
	defer func() {
		if d.rec != nil {
			d.rec.BurnInJumps(done)
		}
	}()
	for ; done < k; done++ {
		if err := d.chain.JumpSilently(); err != nil {
			d.log.Error("burn-in failed", "after", done, "error", err)
			return fmt.Errorf("BurnIn: after %d jumps: %w", done, err)
		}
	}
	cur := d.chain.Cursor()
	d.log.Info("burn-in complete", "jumps", k, "state", cur.State, "sim_time", cur.Time)

	return nil
}

// Run measures the chain over a window of the given simulated duration,
// starting where burn-in left it, and returns the finalized report.
// Advance is called only while the clock is short of the window end, so
// duration 0 draws no variates, leaves the cursor unchanged (even in an
// absorbing state) and yields a NaN invariant.
//
// Errors: ErrInvalidDuration, ErrAlreadyRun, and jump errors; on a jump
// error no report is produced.
func (d *Driver) Run(duration float64) (*estimator.Report, error) {
	if duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("Run: duration=%g: %w", duration, ErrInvalidDuration)
	}

	return d.measure("Run", func(start ctmc.Step) (float64, error) {
		end := start.Time + duration
		for d.chain.Cursor().Time < end {
			jumped, err := d.chain.Advance(end - d.chain.Cursor().Time)
			if err != nil {
				return 0, err
			}
			if !jumped {
				break
			}
		}
		return duration, nil
	})
}

// RunJumps measures exactly k jumps; the window closes on the k-th jump.
//
// Errors: ErrInvalidJumpTarget (k < 0), ErrAlreadyRun, and jump errors.
func (d *Driver) RunJumps(k int64) (*estimator.Report, error) {
	if k < 0 {
		return nil, fmt.Errorf("RunJumps: k=%d: %w", k, ErrInvalidJumpTarget)
	}

	return d.measure("RunJumps", func(start ctmc.Step) (float64, error) {
		for i := int64(0); i < k; i++ {
			if _, err := d.chain.Advance(math.Inf(1)); err != nil {
				return 0, err
			}
		}
		return d.chain.Cursor().Time - start.Time, nil
	})
}

// measure runs loop between Start and Finish with a fresh estimator and
// finalizes over the elapsed time loop reports.
func (d *Driver) measure(method string, loop func(start ctmc.Step) (float64, error)) (*estimator.Report, error) {
	if d.ran {
		return nil, fmt.Errorf("%s: %w", method, ErrAlreadyRun)
	}
	d.ran = true

	if err := d.chain.Start(); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	cur := d.chain.Cursor()
	start := ctmc.Step{State: cur.State, Time: cur.Time, Jump: cur.Jumps}
	est, err := estimator.New(d.chain.States(), start)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	d.est = est
	d.log.Info("run started", "states", d.chain.States(), "state", start.State, "sim_time", start.Time)

	began := time.Now()
	elapsed, err := loop(start)
	d.chain.Finish()
	end := d.chain.Cursor()

	var report *estimator.Report
	if err == nil {
		report, err = est.Finalize(elapsed)
	}
	if d.rec != nil {
		d.rec.RunDone(err, end.Time, time.Since(began))
	}
	if err != nil {
		d.log.Error("run failed", "jumps", end.Jumps-start.Jump, "sim_time", end.Time, "error", err)
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	d.log.Info("run finished",
		"jumps", report.Jumps,
		"elapsed", report.Elapsed,
		"sim_time", end.Time,
		"wall", time.Since(began),
	)

	return report, nil
}

// Analyze re-derives a report offline from the logged path, skipping the
// first burnIn measured jumps. With burnIn 0 it reproduces the Run report.
//
// Errors: ErrPathLoggingDisabled, and those of estimator.Replay.
func (d *Driver) Analyze(burnIn int) (*estimator.Report, error) {
	p := d.chain.Path()
	if p == nil {
		return nil, fmt.Errorf("Analyze: %w", ErrPathLoggingDisabled)
	}
	r, err := estimator.Replay(p, d.chain.States(), burnIn)
	if err != nil {
		return nil, fmt.Errorf("Analyze: %w", err)
	}

	return r, nil
}

// Path returns the logged trajectory, or nil without path logging.
func (d *Driver) Path() *ctmc.Path { return d.chain.Path() }

// Cursor returns the chain position.
func (d *Driver) Cursor() ctmc.Cursor { return d.chain.Cursor() }

// RunID returns the identifier used in log records.
func (d *Driver) RunID() string { return d.runID }

// Warnings returns the non-fatal conditions recorded so far.
func (d *Driver) Warnings() []error {
	return append([]error(nil), d.warnings...)
}
