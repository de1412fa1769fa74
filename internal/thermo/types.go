package thermo

// System is a scalar first-order ODE dT/dt = f(T, t).
type System interface {
	Derive(T, t float64) float64
}

// Integrator advances a system state by one step of size dt.
type Integrator interface {
	Step(sys System, T, t, dt float64) float64
}

// AdaptiveIntegrator additionally estimates local error and suggests the
// next step size for the given tolerance.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, T, t, dt, tol float64) (newT, nextDt float64, err error)
}

// Metric accumulates a scalar over a run. Observe receives the sampled
// temperature, the instantaneous power draw, and the time.
type Metric interface {
	Name() string
	Observe(T, P, t float64)
	Value() float64
	Reset()
}

// Observer is notified at every output sample.
type Observer interface {
	OnSample(T, P, t float64)
}

// Config holds solver settings for one integration run.
type Config struct {
	Start     float64 // span start, s
	End       float64 // span end, s
	Samples   int     // output samples, inclusive of both endpoints
	Tolerance float64 // local error tolerance for adaptive stepping
	MaxStep   float64 // largest internal step, s
	MinStep   float64 // smallest internal step, s
}

// DefaultConfig matches the reference 60 s / 500 sample run. The tolerance
// is explicit: 1e-8 keeps the deviation from the closed-form constant-power
// solution far below the 0.01 degC acceptance bound.
func DefaultConfig() Config {
	return Config{
		Start:     0,
		End:       60,
		Samples:   500,
		Tolerance: 1e-8,
		MaxStep:   0.5,
		MinStep:   1e-9,
	}
}

// Validate rejects empty or inverted spans, sample counts below two, and
// non-positive tolerances.
func (c Config) Validate() error {
	if c.End <= c.Start {
		return &SpanError{Start: c.Start, End: c.End, Samples: c.Samples, Wrapped: ErrInvalidSpan}
	}
	if c.Samples < 2 {
		return &SpanError{Start: c.Start, End: c.End, Samples: c.Samples, Wrapped: ErrTooFewSamples}
	}
	if c.Tolerance <= 0 {
		return ErrInvalidTolerance
	}
	return nil
}

// Result is the outcome of a simulation run.
type Result struct {
	Trajectory Trajectory
	Powers     []float64 // power draw at each output sample, W
	Metrics    map[string]float64
	Steps      int // internal solver steps taken
}
