// SPDX-License-Identifier: MIT

package simulate

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/ctmcsim/ctmc"
	"github.com/katalvlaran/ctmcsim/estimator"
	"github.com/katalvlaran/ctmcsim/matrix"
	"github.com/katalvlaran/ctmcsim/rng"
)

// Plan describes a batch of independent replicas of the same chain.
type Plan struct {
	Replicas int     // number of independent chains (≥ 1)
	Seed     int64   // parent seed; replica k uses rng.New(Seed).Derive(k)
	BurnIn   int     // silent jumps per replica
	Duration float64 // measured window per replica, used when Jumps == 0
	Jumps    int64   // if > 0, measure this many jumps instead of Duration
	Parallel int     // max concurrent replicas; ≤ 0 means unlimited

	// ChainOptions apply to every replica. The random source is always
	// replaced by the replica's derived stream. Observers listed here are
	// shared across goroutines and must be safe for concurrent use.
	ChainOptions []ctmc.Option
}

// Replicate runs plan.Replicas independent drivers concurrently, one
// goroutine per chain. Each replica owns its chain, accumulators and random
// stream; nothing mutable is shared except the optional logger and metrics
// recorder, which are concurrency-safe. Reports are returned in replica
// order, ready for estimator.Merge.
//
// The first replica error cancels ctx for the replicas that have not begun
// measuring yet and is returned. A running replica is never interrupted.
//
// Errors: ErrNoReplicas, ctx.Err(), and any driver error.
func Replicate(ctx context.Context, q matrix.Matrix, plan Plan, opts ...Option) ([]*estimator.Report, error) {
	if plan.Replicas < 1 {
		return nil, fmt.Errorf("Replicate: replicas=%d: %w", plan.Replicas, ErrNoReplicas)
	}
	parent := rng.New(plan.Seed)
	o := gatherOptions(opts...)

	reports := make([]*estimator.Report, plan.Replicas)
	g, ctx := errgroup.WithContext(ctx)
	if plan.Parallel > 0 {
		g.SetLimit(plan.Parallel)
	}
	for k := 0; k < plan.Replicas; k++ {
		k := k
		src := parent.Derive(uint64(k))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chainOpts := append(append([]ctmc.Option(nil), plan.ChainOptions...), ctmc.WithSource(src))
			dopts := append(append([]Option(nil), opts...), WithLogger(o.log.With("replica", k)))
			if o.runID != "" {
				dopts = append(dopts, WithRunID(fmt.Sprintf("%s-%d", o.runID, k)))
			}
			d, err := New(q, chainOpts, dopts...)
			if err != nil {
				return fmt.Errorf("replica %d: %w", k, err)
			}
			if err = d.BurnIn(plan.BurnIn); err != nil {
				return fmt.Errorf("replica %d: %w", k, err)
			}
			if err = ctx.Err(); err != nil {
				return err
			}
			var r *estimator.Report
			if plan.Jumps > 0 {
				r, err = d.RunJumps(plan.Jumps)
			} else {
				r, err = d.Run(plan.Duration)
			}
			if err != nil {
				return fmt.Errorf("replica %d: %w", k, err)
			}
			reports[k] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("Replicate: %w", err)
	}

	return reports, nil
}
