package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/thermosim/internal/analytic"
	"github.com/san-kum/thermosim/internal/integrators"
	"github.com/san-kum/thermosim/internal/model"
	"github.com/san-kum/thermosim/internal/profile"
	"github.com/san-kum/thermosim/internal/thermo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solve(t *testing.T, params thermo.Params, load profile.Profile, cfg thermo.Config) *thermo.Result {
	t.Helper()
	res, err := Solve(context.Background(), params, load, cfg)
	require.NoError(t, err)
	return res
}

func TestTrajectoryShape(t *testing.T) {
	params := thermo.DefaultParams()
	cfg := thermo.DefaultConfig()

	loads := []profile.Profile{
		profile.NewIdle(),
		profile.NewStepLoad(),
		profile.NewPeriodicLoad(),
	}

	for _, load := range loads {
		res := solve(t, params, load, cfg)
		tr := res.Trajectory

		require.Equal(t, cfg.Samples, tr.Len(), "sample count for %s", load.Name())
		assert.Equal(t, cfg.Start, tr.Times[0], "first time for %s", load.Name())
		assert.Equal(t, params.Initial, tr.Temps[0], "first temp for %s", load.Name())
		assert.Equal(t, cfg.End, tr.Times[tr.Len()-1], "last time for %s", load.Name())
		assert.True(t, tr.IsValid(), "finite temps for %s", load.Name())

		for i := 1; i < tr.Len(); i++ {
			require.Greater(t, tr.Times[i], tr.Times[i-1],
				"times not strictly increasing for %s at i=%d", load.Name(), i)
		}
	}
}

func TestIdleMatchesAnalytical(t *testing.T) {
	params := thermo.DefaultParams()
	cfg := thermo.DefaultConfig()

	res := solve(t, params, profile.NewIdle(), cfg)

	dev := analytic.Compare(params, res.Trajectory, params.Initial, 10)
	assert.Less(t, dev.Max, 0.01, "max deviation %g degC at t=%g", dev.Max, dev.AtTime)
}

func TestIdleMatchesAnalyticalFromHotStart(t *testing.T) {
	params := thermo.DefaultParams()
	params.Initial = 90
	cfg := thermo.DefaultConfig()

	res := solve(t, params, profile.NewIdle(), cfg)

	dev := analytic.Compare(params, res.Trajectory, 90, 10)
	assert.Less(t, dev.Max, 0.01)
}

func TestSteadyStateConvergence(t *testing.T) {
	params := thermo.DefaultParams()
	cfg := thermo.DefaultConfig()
	cfg.End = 100 // 10*tau

	res := solve(t, params, profile.NewIdle(), cfg)
	_, final := res.Trajectory.Final()
	assert.InDelta(t, params.SteadyState(10), final, 0.1)
}

func TestMonotoneRelaxation(t *testing.T) {
	params := thermo.DefaultParams()
	cfg := thermo.DefaultConfig()

	// Cooling from above steady state.
	params.Initial = 60
	res := solve(t, params, profile.NewIdle(), cfg)
	for i := 1; i < res.Trajectory.Len(); i++ {
		require.LessOrEqual(t, res.Trajectory.Temps[i], res.Trajectory.Temps[i-1],
			"cooling trajectory increased at i=%d", i)
	}

	// Heating from below steady state.
	params.Initial = 25
	res = solve(t, params, profile.NewIdle(), cfg)
	for i := 1; i < res.Trajectory.Len(); i++ {
		require.GreaterOrEqual(t, res.Trajectory.Temps[i], res.Trajectory.Temps[i-1],
			"heating trajectory decreased at i=%d", i)
	}
}

func TestStepResponseNoOvershoot(t *testing.T) {
	params := thermo.DefaultParams()
	cfg := thermo.DefaultConfig()
	cfg.End = 120

	res := solve(t, params, profile.NewStepLoad(), cfg)
	tr := res.Trajectory

	high := params.SteadyState(80)
	rising := false
	for i := 1; i < tr.Len(); i++ {
		require.LessOrEqual(t, tr.Temps[i], high+1e-6,
			"overshoot above %g at t=%g", high, tr.Times[i])

		if tr.Times[i-1] >= 5 {
			require.Greater(t, tr.Temps[i], tr.Temps[i-1],
				"temperature not rising after step at t=%g", tr.Times[i])
			rising = true
		}
	}
	require.True(t, rising)

	_, final := tr.Final()
	assert.InDelta(t, high, final, 0.1)
}

func TestPeriodicBounded(t *testing.T) {
	params := thermo.DefaultParams()
	cfg := thermo.DefaultConfig()
	cfg.End = 200

	res := solve(t, params, profile.NewPeriodicLoad(), cfg)

	lo, hi := res.Trajectory.Bounds()
	eps := 0.5
	assert.GreaterOrEqual(t, lo, params.SteadyState(10)-eps)
	assert.LessOrEqual(t, hi, params.SteadyState(80)+eps)
}

func TestPeriodicTailRepeats(t *testing.T) {
	params := thermo.DefaultParams()
	load := profile.NewPeriodicLoad()
	cfg := thermo.DefaultConfig()
	cfg.End = 200
	cfg.Samples = 2001 // dt = 0.1, so one period is exactly 200 samples

	res := solve(t, params, load, cfg)
	tail := res.Trajectory.Tail(5 * params.TimeConstant())

	// After transients decay, T(t + 20) tracks T(t).
	perSamples := 200
	require.Greater(t, tail.Len(), 2*perSamples)
	for i := 0; i+perSamples < tail.Len(); i++ {
		require.InDelta(t, tail.Temps[i], tail.Temps[i+perSamples], 0.05,
			"tail not 20 s periodic at t=%g", tail.Times[i])
	}
}

func TestInvalidRequests(t *testing.T) {
	params := thermo.DefaultParams()

	inverted := thermo.DefaultConfig()
	inverted.Start, inverted.End = 10, 5
	_, err := Solve(context.Background(), params, profile.NewIdle(), inverted)
	require.ErrorIs(t, err, thermo.ErrInvalidSpan)

	var spanErr *thermo.SpanError
	require.ErrorAs(t, err, &spanErr)
	assert.Equal(t, 10.0, spanErr.Start)
	assert.Equal(t, 5.0, spanErr.End)

	onePoint := thermo.DefaultConfig()
	onePoint.Samples = 1
	_, err = Solve(context.Background(), params, profile.NewIdle(), onePoint)
	require.ErrorIs(t, err, thermo.ErrTooFewSamples)

	badTol := thermo.DefaultConfig()
	badTol.Tolerance = 0
	_, err = Solve(context.Background(), params, profile.NewIdle(), badTol)
	require.ErrorIs(t, err, thermo.ErrInvalidTolerance)
}

func TestInvalidParamsSurfaceBeforeIntegration(t *testing.T) {
	params := thermo.Params{HeatCapacity: -1, Conductivity: 5, Ambient: 25, Initial: 25}
	_, err := Solve(context.Background(), params, profile.NewIdle(), thermo.DefaultConfig())
	require.ErrorIs(t, err, thermo.ErrInvalidParam)
}

func TestFixedStepIntegrators(t *testing.T) {
	params := thermo.DefaultParams()
	load := profile.NewIdle()
	m, err := model.New(params, load)
	require.NoError(t, err)

	for name, integ := range map[string]thermo.Integrator{
		"euler": integrators.NewEuler(),
		"rk4":   integrators.NewRK4(),
	} {
		res, err := New(m, load, integ).Run(context.Background(), params.Initial, thermo.DefaultConfig())
		require.NoError(t, err, name)

		dev := analytic.Compare(params, res.Trajectory, params.Initial, 10)
		assert.Less(t, dev.Max, 0.05, "%s deviation %g", name, dev.Max)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	params := thermo.DefaultParams()
	load := profile.NewIdle()
	m, err := model.New(params, load)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = New(m, load, integrators.NewRK45()).Run(ctx, params.Initial, thermo.DefaultConfig())
	require.True(t, errors.Is(err, context.Canceled))
}

type failingAdaptive struct {
	err error
}

func (f failingAdaptive) Step(sys thermo.System, T, t, dt float64) float64 { return T }

func (f failingAdaptive) StepAdaptive(sys thermo.System, T, t, dt, tol float64) (float64, float64, error) {
	return T, dt, f.err
}

func TestAdaptiveStepErrorAbortsRun(t *testing.T) {
	params := thermo.DefaultParams()
	load := profile.NewIdle()
	m, err := model.New(params, load)
	require.NoError(t, err)

	stepErr := errors.New("step size underflow")
	res, err := New(m, load, failingAdaptive{err: stepErr}).Run(context.Background(), params.Initial, thermo.DefaultConfig())
	require.Nil(t, res, "no partial trajectory on failure")
	require.ErrorIs(t, err, stepErr)

	var stateErr *thermo.StateError
	require.ErrorAs(t, err, &stateErr)
}

type countingMetric struct {
	n int
}

func (c *countingMetric) Name() string            { return "samples" }
func (c *countingMetric) Observe(T, P, t float64) { c.n++ }
func (c *countingMetric) Value() float64          { return float64(c.n) }
func (c *countingMetric) Reset()                  { c.n = 0 }

func TestMetricsObserveEverySample(t *testing.T) {
	params := thermo.DefaultParams()
	load := profile.NewIdle()
	m, err := model.New(params, load)
	require.NoError(t, err)

	d := New(m, load, integrators.NewRK45())
	counter := &countingMetric{}
	d.AddMetric(counter)

	cfg := thermo.DefaultConfig()
	res, err := d.Run(context.Background(), params.Initial, cfg)
	require.NoError(t, err)

	assert.Equal(t, float64(cfg.Samples), res.Metrics["samples"])
	assert.NotZero(t, res.Steps)
}

func TestPowersAlignedWithSamples(t *testing.T) {
	params := thermo.DefaultParams()
	load := profile.NewStepLoad()
	cfg := thermo.DefaultConfig()
	cfg.Start, cfg.End, cfg.Samples = 0, 10, 11

	res := solve(t, params, load, cfg)
	require.Len(t, res.Powers, 11)

	for i, tm := range res.Trajectory.Times {
		assert.Equal(t, load.Power(tm), res.Powers[i], "power at t=%g", tm)
	}
}

func TestFloatSpansLandOnEndpoint(t *testing.T) {
	params := thermo.DefaultParams()
	cfg := thermo.DefaultConfig()
	cfg.Start, cfg.End, cfg.Samples = 0.3, 7.7, 97

	res := solve(t, params, profile.NewPeriodicLoad(), cfg)
	tr := res.Trajectory

	require.Equal(t, 97, tr.Len())
	assert.Equal(t, 0.3, tr.Times[0])
	assert.Equal(t, 7.7, tr.Times[tr.Len()-1])

	// Interior points stay uniformly spaced.
	h := (7.7 - 0.3) / 96
	for i := 1; i < tr.Len(); i++ {
		assert.InDelta(t, h, tr.Times[i]-tr.Times[i-1], 1e-9)
	}
}
