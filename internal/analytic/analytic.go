// Package analytic provides the closed-form solution of the thermal ODE for
// constant power, used to validate the numerical solver.
package analytic

import (
	"math"

	"github.com/san-kum/thermosim/internal/thermo"
)

// Temperature returns the exact solution at time t for a constant power
// draw: exponential relaxation toward steady state,
//
//	T(t) = Tss + (T0 - Tss) * exp(-t/tau)
//
// with Tss = Tenv + P/k and tau = C/k. Precondition: the power draw is
// constant over [0, t]. This is not enforced here; callers must not use
// the closed form for time-varying loads.
func Temperature(p thermo.Params, t, T0, power float64) float64 {
	steady := p.SteadyState(power)
	return steady + (T0-steady)*math.Exp(-t/p.TimeConstant())
}

// Series evaluates the exact solution over a time grid.
func Series(p thermo.Params, times []float64, T0, power float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = Temperature(p, t, T0, power)
	}
	return out
}

// Deviation summarizes the gap between a numerical trajectory and the
// closed form.
type Deviation struct {
	Max    float64 // largest absolute deviation, degC
	Mean   float64 // mean absolute deviation, degC
	AtTime float64 // time of the largest deviation, s
}

// Compare measures a numerical trajectory against the exact constant-power
// solution started from T0. Times in the trajectory are interpreted as
// offsets from the start of the constant-power interval.
func Compare(p thermo.Params, tr thermo.Trajectory, T0, power float64) Deviation {
	var dev Deviation
	if tr.Len() == 0 {
		return dev
	}

	start := tr.Times[0]
	sum := 0.0
	for i := range tr.Times {
		exact := Temperature(p, tr.Times[i]-start, T0, power)
		diff := math.Abs(tr.Temps[i] - exact)
		sum += diff
		if diff > dev.Max {
			dev.Max = diff
			dev.AtTime = tr.Times[i]
		}
	}
	dev.Mean = sum / float64(tr.Len())
	return dev
}
