package analytic

import (
	"math"
	"testing"

	"github.com/san-kum/thermosim/internal/thermo"
	"github.com/stretchr/testify/assert"
)

func TestTemperatureLimits(t *testing.T) {
	p := thermo.DefaultParams()

	// At t=0 the solution equals the initial temperature.
	assert.InDelta(t, 25.0, Temperature(p, 0, 25, 10), 1e-12)
	assert.InDelta(t, 60.0, Temperature(p, 0, 60, 10), 1e-12)

	// Far beyond 5*tau the solution is at steady state.
	assert.InDelta(t, 27.0, Temperature(p, 200, 25, 10), 1e-6)
	assert.InDelta(t, 41.0, Temperature(p, 200, 25, 80), 1e-6)
}

func TestTemperatureOneTau(t *testing.T) {
	p := thermo.DefaultParams()

	// After one time constant, 63.2% of the gap to steady state is closed.
	got := Temperature(p, p.TimeConstant(), 25, 10)
	want := 27 + (25-27.0)*math.Exp(-1)
	assert.InDelta(t, want, got, 1e-12)
}

func TestSeriesMatchesPointwise(t *testing.T) {
	p := thermo.DefaultParams()
	times := []float64{0, 1, 2.5, 10, 30, 60}

	series := Series(p, times, 25, 10)
	assert.Len(t, series, len(times))
	for i, tm := range times {
		assert.Equal(t, Temperature(p, tm, 25, 10), series[i])
	}
}

func TestCompareExactTrajectory(t *testing.T) {
	p := thermo.DefaultParams()

	times := make([]float64, 100)
	temps := make([]float64, 100)
	for i := range times {
		times[i] = float64(i) * 0.5
		temps[i] = Temperature(p, times[i], 25, 10)
	}

	dev := Compare(p, thermo.Trajectory{Times: times, Temps: temps}, 25, 10)
	assert.Zero(t, dev.Max)
	assert.Zero(t, dev.Mean)
}

func TestCompareReportsWorstPoint(t *testing.T) {
	p := thermo.DefaultParams()

	times := []float64{0, 1, 2}
	temps := Series(p, times, 25, 10)
	temps[1] += 0.5 // inject a deviation

	dev := Compare(p, thermo.Trajectory{Times: times, Temps: temps}, 25, 10)
	assert.InDelta(t, 0.5, dev.Max, 1e-12)
	assert.Equal(t, 1.0, dev.AtTime)
	assert.InDelta(t, 0.5/3, dev.Mean, 1e-12)
}
