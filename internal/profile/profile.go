// Package profile defines the power draw profiles that drive the thermal
// model. A profile is a pure, total function of time over t >= 0.
package profile

import "math"

// Profile produces the instantaneous power draw in watts at time t.
type Profile interface {
	Name() string
	Power(t float64) float64
}

// Fixed is implemented by profiles whose power does not vary with time.
// The analytical validator only applies to such profiles.
type Fixed interface {
	Level() float64
}

// Constant draws a fixed power at all times.
type Constant struct {
	Watts float64
}

// NewIdle returns the 10 W idle profile.
func NewIdle() Constant {
	return Constant{Watts: 10}
}

func (c Constant) Name() string            { return "idle" }
func (c Constant) Power(t float64) float64 { return c.Watts }
func (c Constant) Level() float64          { return c.Watts }

// Step jumps from Low to High at time At. The discontinuity is deliberate;
// the solver re-evaluates power at every stage time rather than caching it.
type Step struct {
	Low  float64
	High float64
	At   float64
}

// NewStepLoad returns the 10 W to 80 W step at t=5 s.
func NewStepLoad() Step {
	return Step{Low: 10, High: 80, At: 5}
}

func (s Step) Name() string { return "step" }

func (s Step) Power(t float64) float64 {
	if t < s.At {
		return s.Low
	}
	return s.High
}

// Sinusoid oscillates around Mid with the given Amplitude and Period.
type Sinusoid struct {
	Mid       float64
	Amplitude float64
	Period    float64
}

// NewPeriodicLoad returns the 45 +/- 35 W workload with a 20 s period,
// spanning 10 W to 80 W.
func NewPeriodicLoad() Sinusoid {
	return Sinusoid{Mid: 45, Amplitude: 35, Period: 20}
}

func (s Sinusoid) Name() string { return "periodic" }

func (s Sinusoid) Power(t float64) float64 {
	return s.Mid + s.Amplitude*math.Sin(2*math.Pi*t/s.Period)
}
