package simulate_test

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ctmcsim/ctmc"
	"github.com/katalvlaran/ctmcsim/estimator"
	"github.com/katalvlaran/ctmcsim/generator"
	"github.com/katalvlaran/ctmcsim/internal/logging"
	"github.com/katalvlaran/ctmcsim/matrix"
	"github.com/katalvlaran/ctmcsim/metrics"
	"github.com/katalvlaran/ctmcsim/rng"
	"github.com/katalvlaran/ctmcsim/simulate"
)

func mustQ(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	q, err := matrix.FromRows(rows)
	require.NoError(t, err)
	return q
}

func twoState(t *testing.T) *matrix.Dense {
	return mustQ(t, [][]float64{{-1, 1}, {2, -2}})
}

func cell(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)
	return v
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

func TestRun_TwoStateEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("long run")
	}
	d, err := simulate.New(twoState(t), []ctmc.Option{ctmc.WithSeed(12345)})
	require.NoError(t, err)
	require.NoError(t, d.BurnIn(simulate.MinBurnIn))
	assert.Empty(t, d.Warnings())

	r, err := d.Run(1e5)
	require.NoError(t, err)

	assert.InDelta(t, 2.0/3, r.Invariant[0], 0.02)
	assert.InDelta(t, 1.0/3, r.Invariant[1], 0.02)
	assert.InDelta(t, 1.0, sum(r.Invariant), 1e-9)
	assert.Equal(t, 1e5, r.Elapsed)

	// Leaving 0 takes Exp(1), leaving 1 takes Exp(2); with two states the
	// direct and moving estimators coincide and every passage is one jump.
	assert.InDelta(t, 1.0, cell(t, r.DirectHitting, 0, 1), 0.05)
	assert.InDelta(t, 0.5, cell(t, r.DirectHitting, 1, 0), 0.05)
	assert.Equal(t, cell(t, r.DirectHitting, 0, 1), cell(t, r.MovingHitting, 0, 1))
	assert.Equal(t, 1.0, cell(t, r.JumpCounts, 0, 1))
	assert.Equal(t, 1.0, cell(t, r.JumpCounts, 1, 0))
	assert.Equal(t, 0.0, cell(t, r.DirectHitting, 0, 0))
}

func TestRun_ZeroIsIdempotent(t *testing.T) {
	d, err := simulate.New(twoState(t), []ctmc.Option{ctmc.WithSeed(1)})
	require.NoError(t, err)
	before := d.Cursor()

	require.NoError(t, d.BurnIn(0))
	r, err := d.Run(0)
	require.NoError(t, err)

	after := d.Cursor()
	assert.Equal(t, before.State, after.State)
	assert.Equal(t, before.Time, after.Time)
	assert.Zero(t, r.Jumps)
	for _, v := range r.Invariant {
		assert.True(t, math.IsNaN(v))
	}
}

// countingSource counts every variate drawn from the wrapped stream.
type countingSource struct {
	*rng.Rand
	draws int
}

func (c *countingSource) Uniform() float64 {
	c.draws++
	return c.Rand.Uniform()
}

func (c *countingSource) Exponential(mean float64) float64 {
	c.draws++
	return c.Rand.Exponential(mean)
}

func (c *countingSource) WeightedPick(w []float64) (int, error) {
	c.draws++
	return c.Rand.WeightedPick(w)
}

func TestRun_ZeroDrawsNothing(t *testing.T) {
	src := &countingSource{Rand: rng.New(1)}
	d, err := simulate.New(twoState(t), []ctmc.Option{ctmc.WithSource(src)})
	require.NoError(t, err)

	_, err = d.Run(0)
	require.NoError(t, err)
	assert.Zero(t, src.draws)
}

func TestRun_ZeroFromAbsorbingState(t *testing.T) {
	q := mustQ(t, [][]float64{{0, 0}, {1, -1}})
	d, err := simulate.New(q, []ctmc.Option{ctmc.WithSeed(3)})
	require.NoError(t, err)
	require.NoError(t, d.BurnIn(0))

	r, err := d.Run(0)
	require.NoError(t, err)
	assert.Zero(t, r.Jumps)
	assert.Zero(t, d.Cursor().State)
	assert.True(t, math.IsNaN(r.Invariant[0]))
}

func TestBurnIn_LowWarning(t *testing.T) {
	var buf bytes.Buffer
	d, err := simulate.New(twoState(t), []ctmc.Option{ctmc.WithSeed(1)},
		simulate.WithLogger(logging.NewWriter(&buf, slog.LevelDebug)),
		simulate.WithRunID("run-7"),
	)
	require.NoError(t, err)
	require.NoError(t, d.BurnIn(10))

	ws := d.Warnings()
	require.Len(t, ws, 1)
	assert.ErrorIs(t, ws[0], simulate.ErrLowBurnIn)
	assert.Equal(t, int64(10), d.Cursor().Silent)
	assert.Positive(t, d.Cursor().Time, "burn-in advances the clock")
	assert.Equal(t, "run-7", d.RunID())
	assert.Contains(t, buf.String(), "low burn-in")
	assert.Contains(t, buf.String(), "run_id=run-7")
	assert.Contains(t, buf.String(), "burn-in complete")
}

func TestDriver_SingleUse(t *testing.T) {
	d, err := simulate.New(twoState(t), []ctmc.Option{ctmc.WithSeed(1)})
	require.NoError(t, err)
	_, err = d.Run(1)
	require.NoError(t, err)

	_, err = d.Run(1)
	require.ErrorIs(t, err, simulate.ErrAlreadyRun)
	_, err = d.RunJumps(1)
	require.ErrorIs(t, err, simulate.ErrAlreadyRun)
	require.ErrorIs(t, d.BurnIn(1), simulate.ErrAlreadyRun)
}

func TestDriver_InvalidArguments(t *testing.T) {
	d, err := simulate.New(twoState(t), nil)
	require.NoError(t, err)
	for _, dur := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err = d.Run(dur)
		require.ErrorIs(t, err, simulate.ErrInvalidDuration)
	}
	_, err = d.RunJumps(-1)
	require.ErrorIs(t, err, simulate.ErrInvalidJumpTarget)
	require.ErrorIs(t, d.BurnIn(-1), simulate.ErrInvalidJumpTarget)

	_, err = simulate.New(mustQ(t, [][]float64{{-1, 1}, {1, 0}}), nil)
	require.ErrorIs(t, err, ctmc.ErrInvalidGenerator)

	assert.Panics(t, func() { simulate.WithLogger(nil) })
	assert.Panics(t, func() { simulate.WithMetrics(nil) })
}

func TestRun_AbsorbingState(t *testing.T) {
	rec := metrics.NewRecorder()
	d, err := simulate.New(mustQ(t, [][]float64{{-1, 1}, {0, 0}}), []ctmc.Option{ctmc.WithSeed(5)},
		simulate.WithMetrics(rec))
	require.NoError(t, err)

	_, err = d.Run(1e6)
	require.ErrorIs(t, err, ctmc.ErrAbsorbingState)
	expected := `
# HELP ctmcsim_runs_total Completed runs by outcome.
# TYPE ctmcsim_runs_total counter
ctmcsim_runs_total{outcome="error"} 1
`
	require.NoError(t, testutil.GatherAndCompare(rec.Registry(), strings.NewReader(expected), "ctmcsim_runs_total"))
}

func TestRun_RingHittingTimesCoincide(t *testing.T) {
	q, err := generator.Build(3, nil, generator.Cycle())
	require.NoError(t, err)
	d, err := simulate.New(q, []ctmc.Option{ctmc.WithSeed(8)})
	require.NoError(t, err)
	require.NoError(t, d.BurnIn(simulate.MinBurnIn))

	r, err := d.Run(1000)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.True(t, r.Observed(estimator.KindDirect, i, j), "(%d,%d)", i, j)
			assert.Equal(t, cell(t, r.DirectHitting, i, j), cell(t, r.MovingHitting, i, j), "(%d,%d)", i, j)
		}
	}
	// Around the ring the jump count from i to j is fixed by the distance.
	assert.Equal(t, 2.0, cell(t, r.JumpCounts, 0, 2))
	assert.Equal(t, 1.0, cell(t, r.JumpCounts, 2, 0))
}

func TestRunJumps(t *testing.T) {
	rec := metrics.NewRecorder()
	d, err := simulate.New(twoState(t), []ctmc.Option{ctmc.WithSeed(3)}, simulate.WithMetrics(rec))
	require.NoError(t, err)
	require.NoError(t, d.BurnIn(1500))
	r, err := d.RunJumps(500)
	require.NoError(t, err)
	assert.Equal(t, int64(500), r.Jumps)
	assert.InDelta(t, 1.0, sum(r.Invariant), 1e-9)
	assert.Positive(t, r.Elapsed)
}

func TestAnalyze_MatchesRun(t *testing.T) {
	q := mustQ(t, [][]float64{{-2, 1, 1}, {1, -1, 0}, {0, 3, -3}})
	d, err := simulate.New(q, []ctmc.Option{ctmc.WithSeed(8), ctmc.WithPathLog(true)})
	require.NoError(t, err)
	require.NoError(t, d.BurnIn(2000))
	online, err := d.Run(500)
	require.NoError(t, err)

	offline, err := d.Analyze(0)
	require.NoError(t, err)
	assert.Equal(t, online.Jumps, offline.Jumps)
	assert.InDeltaSlice(t, online.Invariant, offline.Invariant, 1e-9)
	for _, k := range []estimator.Kind{estimator.KindDirect, estimator.KindMoving, estimator.KindJumps} {
		a, b := online.Estimate(k), offline.Estimate(k)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				x, y := cell(t, a, i, j), cell(t, b, i, j)
				if math.IsNaN(x) {
					assert.True(t, math.IsNaN(y))
					continue
				}
				assert.InDelta(t, x, y, 1e-9, "%s (%d,%d)", k, i, j)
			}
		}
	}

	later, err := d.Analyze(100)
	require.NoError(t, err)
	assert.Equal(t, online.Jumps-100, later.Jumps)

	_, err = d.Analyze(d.Path().Len())
	require.ErrorIs(t, err, estimator.ErrBurnInOutOfRange)
}

func TestAnalyze_Disabled(t *testing.T) {
	d, err := simulate.New(twoState(t), nil)
	require.NoError(t, err)
	_, err = d.Analyze(0)
	require.ErrorIs(t, err, simulate.ErrPathLoggingDisabled)
	assert.Nil(t, d.Path())
}

func TestReplicate(t *testing.T) {
	plan := simulate.Plan{Replicas: 4, Seed: 99, BurnIn: 1000, Duration: 5000, Parallel: 2}
	a, err := simulate.Replicate(context.Background(), twoState(t), plan)
	require.NoError(t, err)
	b, err := simulate.Replicate(context.Background(), twoState(t), plan)
	require.NoError(t, err)
	require.Len(t, a, 4)

	for k := range a {
		assert.Equal(t, a[k].Invariant, b[k].Invariant, "replica %d reproducible", k)
	}
	assert.NotEqual(t, a[0].Invariant, a[1].Invariant, "replicas use distinct streams")

	pooled, err := estimator.Merge(a...)
	require.NoError(t, err)
	assert.Equal(t, 20000.0, pooled.Elapsed)
	assert.InDelta(t, 2.0/3, pooled.Invariant[0], 0.03)
}

func TestReplicate_Jumps(t *testing.T) {
	rec := metrics.NewRecorder()
	plan := simulate.Plan{Replicas: 3, Seed: 1, BurnIn: 1000, Jumps: 200}
	rs, err := simulate.Replicate(context.Background(), twoState(t), plan,
		simulate.WithMetrics(rec), simulate.WithRunID("batch"))
	require.NoError(t, err)
	for _, r := range rs {
		assert.Equal(t, int64(200), r.Jumps)
	}
	expected := `
# HELP ctmcsim_jumps_total Measured CTMC jumps.
# TYPE ctmcsim_jumps_total counter
ctmcsim_jumps_total 600
# HELP ctmcsim_burnin_jumps_total Silent burn-in jumps.
# TYPE ctmcsim_burnin_jumps_total counter
ctmcsim_burnin_jumps_total 3000
`
	require.NoError(t, testutil.GatherAndCompare(rec.Registry(), strings.NewReader(expected),
		"ctmcsim_jumps_total", "ctmcsim_burnin_jumps_total"))
}

func TestReplicate_Errors(t *testing.T) {
	_, err := simulate.Replicate(context.Background(), twoState(t), simulate.Plan{})
	require.ErrorIs(t, err, simulate.ErrNoReplicas)

	absorbing := mustQ(t, [][]float64{{-1, 1}, {0, 0}})
	_, err = simulate.Replicate(context.Background(), absorbing, simulate.Plan{Replicas: 2, Duration: 1e6})
	require.ErrorIs(t, err, ctmc.ErrAbsorbingState)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = simulate.Replicate(ctx, twoState(t), simulate.Plan{Replicas: 2, Duration: 1})
	require.ErrorIs(t, err, context.Canceled)
}
