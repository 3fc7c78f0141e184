// Package estimator_test checks the accumulator protocols against
// hand-computed trajectories and the online/offline equivalence.
package estimator_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/ctmcsim/ctmc"
	"github.com/katalvlaran/ctmcsim/estimator"
	"github.com/katalvlaran/ctmcsim/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// revisitPath starts in 2 at t=0 and visits 0 twice before reaching 2:
//
//	2 →(t=1) 0 →(t=2) 1 →(t=3) 0 →(t=5) 2, window closes at t=6.
func revisitPath() []ctmc.Event {
	return []ctmc.Event{
		{Prev: 2, State: 0, PrevTime: 0, Time: 1, Jump: 1},
		{Prev: 0, State: 1, PrevTime: 1, Time: 2, Jump: 2},
		{Prev: 1, State: 0, PrevTime: 2, Time: 3, Jump: 3},
		{Prev: 0, State: 2, PrevTime: 3, Time: 5, Jump: 4},
	}
}

func feed(t *testing.T, n int, start ctmc.Step, evs []ctmc.Event, elapsed float64) *estimator.Report {
	t.Helper()
	e, err := estimator.New(n, start)
	require.NoError(t, err)
	for _, ev := range evs {
		e.OnJump(ev)
	}
	require.Equal(t, int64(len(evs)), e.Jumps())
	r, err := e.Finalize(elapsed)
	require.NoError(t, err)
	return r
}

func cell(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)
	return v
}

// requireSameMatrix compares cell-wise, treating NaN as equal to NaN.
func requireSameMatrix(t *testing.T, want, got matrix.Matrix) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows())
	require.Equal(t, want.Cols(), got.Cols())
	for i := 0; i < want.Rows(); i++ {
		for j := 0; j < want.Cols(); j++ {
			w, g := cell(t, want, i, j), cell(t, got, i, j)
			if math.IsNaN(w) {
				require.True(t, math.IsNaN(g), "cell (%d,%d) = %g, want NaN", i, j, g)
				continue
			}
			require.Equal(t, w, g, "cell (%d,%d)", i, j)
		}
	}
}

func requireSameReport(t *testing.T, want, got *estimator.Report) {
	t.Helper()
	require.Equal(t, want.States, got.States)
	require.Equal(t, want.Jumps, got.Jumps)
	require.Equal(t, want.Elapsed, got.Elapsed)
	require.Equal(t, want.Occupancy, got.Occupancy)
	for _, k := range []estimator.Kind{estimator.KindDirect, estimator.KindMoving, estimator.KindJumps} {
		requireSameMatrix(t, want.Estimate(k), got.Estimate(k))
	}
}

func TestOnJump_Invariant(t *testing.T) {
	r := feed(t, 3, ctmc.Step{State: 2}, revisitPath(), 6)
	assert.Equal(t, []float64{3, 1, 2}, r.Occupancy)
	assert.InDeltaSlice(t, []float64{0.5, 1.0 / 6, 1.0 / 3}, r.Invariant, 1e-15)
	assert.Equal(t, int64(4), r.Jumps)
	assert.Equal(t, 6.0, r.Elapsed)
}

func TestOnJump_DirectResetsOnRevisit(t *testing.T) {
	r := feed(t, 3, ctmc.Step{State: 2}, revisitPath(), 6)
	d := r.DirectHitting
	// (0,2) is measured from the second visit to 0 (t=3), not the first.
	assert.Equal(t, 2.0, cell(t, d, 0, 2))
	assert.Equal(t, 1.0, cell(t, d, 0, 1))
	assert.Equal(t, 1.0, cell(t, d, 1, 0))
	assert.Equal(t, 3.0, cell(t, d, 1, 2))
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.0, cell(t, d, i, i), "diagonal %d", i)
	}
	assert.Equal(t, 2.0, cell(t, r.DirectCount, 0, 0), "one diagonal sample per visit")
}

func TestOnJump_MovingKeepsFirstArrival(t *testing.T) {
	r := feed(t, 3, ctmc.Step{State: 2}, revisitPath(), 6)
	m := r.MovingHitting
	// (0,2) is measured from the first visit to 0 (t=1).
	assert.Equal(t, 4.0, cell(t, m, 0, 2))
	assert.NotEqual(t, cell(t, r.DirectHitting, 0, 2), cell(t, m, 0, 2))
	assert.Equal(t, 1.0, cell(t, m, 0, 1))
	assert.Equal(t, 1.0, cell(t, m, 1, 0))
	assert.Equal(t, 3.0, cell(t, m, 1, 2))
}

func TestOnJump_JumpCounts(t *testing.T) {
	r := feed(t, 3, ctmc.Step{State: 2}, revisitPath(), 6)
	j := r.JumpCounts
	assert.Equal(t, 1.0, cell(t, j, 0, 1))
	assert.Equal(t, 1.0, cell(t, j, 0, 2))
	assert.Equal(t, 1.0, cell(t, j, 1, 0))
	assert.Equal(t, 2.0, cell(t, j, 1, 2))
	assert.Equal(t, 0.0, cell(t, j, 2, 2))
}

func TestReport_Unobserved(t *testing.T) {
	r := feed(t, 3, ctmc.Step{State: 2}, revisitPath(), 6)
	want := []estimator.Pair{{I: 2, J: 0}, {I: 2, J: 1}}
	for _, k := range []estimator.Kind{estimator.KindDirect, estimator.KindMoving, estimator.KindJumps} {
		assert.Equal(t, want, r.Unobserved(k), k.String())
		assert.True(t, math.IsNaN(cell(t, r.Estimate(k), 2, 0)))
		assert.False(t, r.Observed(k, 2, 1))
		assert.True(t, r.Observed(k, 0, 2))
	}
	assert.False(t, r.Observed(estimator.KindDirect, 9, 9))
	assert.Nil(t, r.Unobserved(estimator.Kind(7)))
	assert.Nil(t, r.Estimate(estimator.Kind(7)))
	assert.Equal(t, "unknown", estimator.Kind(7).String())
}

func TestOnJump_ZeroTimestampArms(t *testing.T) {
	// A tagged mark armed at t=0 must be distinguishable from "not armed".
	evs := []ctmc.Event{
		{Prev: 1, State: 0, Time: 0, Jump: 0},
		{Prev: 0, State: 1, Time: 2, Jump: 1},
	}
	r := feed(t, 2, ctmc.Step{State: 1}, evs, 2)
	assert.Equal(t, 2.0, cell(t, r.DirectHitting, 0, 1))
	assert.Equal(t, 1.0, cell(t, r.JumpCounts, 0, 1))
}

func TestFinalize_Errors(t *testing.T) {
	e, err := estimator.New(3, ctmc.Step{State: 2})
	require.NoError(t, err)
	for _, ev := range revisitPath() {
		e.OnJump(ev)
	}
	for _, bad := range []float64{-1, 4.9, math.NaN(), math.Inf(1)} {
		_, err = e.Finalize(bad)
		require.ErrorIs(t, err, estimator.ErrInvalidElapsed, "elapsed %v", bad)
	}
	_, err = e.Finalize(5)
	require.NoError(t, err)
	_, err = e.Finalize(5)
	require.ErrorIs(t, err, estimator.ErrAlreadyFinalized)

	// Events after finalization are ignored.
	e.OnJump(ctmc.Event{Prev: 2, State: 0, Time: 7, Jump: 5})
	assert.Equal(t, int64(4), e.Jumps())
}

func TestFinalize_ZeroElapsed(t *testing.T) {
	e, err := estimator.New(2, ctmc.Step{State: 0, Time: 4})
	require.NoError(t, err)
	r, err := e.Finalize(0)
	require.NoError(t, err)
	for _, v := range r.Invariant {
		assert.True(t, math.IsNaN(v))
	}
	assert.Len(t, r.Unobserved(estimator.KindDirect), 4)
}

func TestNew_Errors(t *testing.T) {
	_, err := estimator.New(0, ctmc.Step{})
	require.ErrorIs(t, err, estimator.ErrBadStateCount)
	_, err = estimator.New(2, ctmc.Step{State: 2})
	require.ErrorIs(t, err, estimator.ErrStateOutOfRange)

	e, err := estimator.New(2, ctmc.Step{})
	require.NoError(t, err)
	e.OnJump(ctmc.Event{Prev: 0, State: 5, Time: 1, Jump: 1})
	_, err = e.Finalize(2)
	require.ErrorIs(t, err, estimator.ErrStateOutOfRange)
}

func TestOnlineEqualsOffline(t *testing.T) {
	q, err := matrix.FromRows([][]float64{
		{-3, 1, 2, 0},
		{1, -2, 0, 1},
		{0, 2, -3, 1},
		{1, 1, 1, -3},
	})
	require.NoError(t, err)

	const burn = 25
	var late *estimator.Estimator
	online, err := estimator.New(4, ctmc.Step{})
	require.NoError(t, err)
	lateObs := ctmc.ObserverFunc(func(ev ctmc.Event) {
		switch {
		case ev.Jump == burn:
			late, err = estimator.New(4, ctmc.Step{State: ev.State, Time: ev.Time, Jump: ev.Jump})
			require.NoError(t, err)
		case ev.Jump > burn:
			late.OnJump(ev)
		}
	})
	c, err := ctmc.New(q, ctmc.WithSeed(2024), ctmc.WithPathLog(true),
		ctmc.WithObserver(online), ctmc.WithObserver(lateObs))
	require.NoError(t, err)
	require.NoError(t, c.Start())

	const window = 200.0
	for {
		jumped, err := c.Advance(window - c.Cursor().Time)
		require.NoError(t, err)
		if !jumped {
			break
		}
	}
	c.Finish()
	require.Greater(t, c.Cursor().Jumps, int64(burn))

	want, err := online.Finalize(c.Path().End)
	require.NoError(t, err)
	got, err := estimator.Replay(c.Path(), 4, 0)
	require.NoError(t, err)
	requireSameReport(t, want, got)

	wantLate, err := late.Finalize(c.Path().End - c.Path().Steps[burn].Time)
	require.NoError(t, err)
	gotLate, err := estimator.Replay(c.Path(), 4, burn)
	require.NoError(t, err)
	requireSameReport(t, wantLate, gotLate)

	var total float64
	for _, v := range want.Invariant {
		total += v
	}
	assert.InDelta(t, 1.0, total, 1e-12)
}

func TestNewOffline_Errors(t *testing.T) {
	_, err := estimator.NewOffline(nil, 2, 0)
	require.ErrorIs(t, err, estimator.ErrEmptyPath)
	_, err = estimator.NewOffline(&ctmc.Path{}, 2, 0)
	require.ErrorIs(t, err, estimator.ErrEmptyPath)

	p := &ctmc.Path{Steps: []ctmc.Step{{State: 0}, {State: 1, Time: 1, Jump: 1}}, End: 2}
	for _, b := range []int{-1, 2} {
		_, err = estimator.NewOffline(p, 2, b)
		require.ErrorIs(t, err, estimator.ErrBurnInOutOfRange)
	}
	bad := &ctmc.Path{Steps: []ctmc.Step{{State: 0}, {State: 3, Time: 1, Jump: 1}}, End: 2}
	_, err = estimator.NewOffline(bad, 2, 0)
	require.ErrorIs(t, err, estimator.ErrStateOutOfRange)

	r, err := estimator.Replay(p, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, r.Invariant)
	assert.Zero(t, r.Jumps)
}

func TestMerge(t *testing.T) {
	a := feed(t, 3, ctmc.Step{State: 2}, revisitPath(), 6)
	b := feed(t, 3, ctmc.Step{State: 2}, revisitPath(), 10)

	m, err := estimator.Merge(a, b)
	require.NoError(t, err)
	assert.Equal(t, 16.0, m.Elapsed)
	assert.Equal(t, int64(8), m.Jumps)
	assert.Equal(t, []float64{6, 2, 8}, m.Occupancy)
	assert.InDeltaSlice(t, []float64{6.0 / 16, 2.0 / 16, 8.0 / 16}, m.Invariant, 1e-15)
	assert.Equal(t, 4.0, cell(t, m.DirectCount, 0, 0))
	requireSameMatrix(t, a.DirectHitting, m.DirectHitting)
	requireSameMatrix(t, a.MovingHitting, m.MovingHitting)
	requireSameMatrix(t, a.JumpCounts, m.JumpCounts)
}

func TestMerge_Errors(t *testing.T) {
	_, err := estimator.Merge()
	require.ErrorIs(t, err, estimator.ErrReportMismatch)

	a := feed(t, 3, ctmc.Step{State: 2}, revisitPath(), 6)
	c := feed(t, 2, ctmc.Step{}, nil, 1)
	_, err = estimator.Merge(a, c)
	require.ErrorIs(t, err, estimator.ErrReportMismatch)
	_, err = estimator.Merge(a, nil)
	require.ErrorIs(t, err, estimator.ErrReportMismatch)
}

func TestInvariantSpread(t *testing.T) {
	a := feed(t, 3, ctmc.Step{State: 2}, revisitPath(), 6)  // π = [.5, 1/6, 1/3]
	b := feed(t, 3, ctmc.Step{State: 2}, revisitPath(), 10) // π = [.3, .1, .6]

	mean, se, err := estimator.InvariantSpread(a, b)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.4, 0.4 / 3, 1.4 / 3}, mean, 1e-12)
	// Two samples: se = |a-b|/2.
	assert.InDeltaSlice(t, []float64{0.1, 0.1 / 3, 0.4 / 3}, se, 1e-12)

	_, se, err = estimator.InvariantSpread(a)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(se[0]))

	_, _, err = estimator.InvariantSpread()
	require.ErrorIs(t, err, estimator.ErrReportMismatch)
	c := feed(t, 2, ctmc.Step{}, nil, 1)
	_, _, err = estimator.InvariantSpread(a, c)
	require.ErrorIs(t, err, estimator.ErrReportMismatch)
}
