// Package sim drives numerical integration of a thermal system over a time
// span, producing a uniformly sampled temperature trajectory.
package sim

import (
	"context"
	"math"

	"github.com/san-kum/thermosim/internal/profile"
	"github.com/san-kum/thermosim/internal/thermo"
)

type Driver struct {
	sys       thermo.System
	load      profile.Profile
	integ     thermo.Integrator
	metrics   []thermo.Metric
	observers []thermo.Observer
}

func New(sys thermo.System, load profile.Profile, integ thermo.Integrator) *Driver {
	return &Driver{
		sys:   sys,
		load:  load,
		integ: integ,
	}
}

func (d *Driver) AddMetric(m thermo.Metric)     { d.metrics = append(d.metrics, m) }
func (d *Driver) AddObserver(o thermo.Observer) { d.observers = append(d.observers, o) }

// Run integrates from T0 over cfg's span and returns cfg.Samples uniformly
// spaced output points, both endpoints included. The first sample is exactly
// (cfg.Start, T0). Between output samples the solver sub-steps: adaptively
// when the integrator supports it, otherwise at MaxStep granularity. The
// load profile is re-evaluated at every stage time, so discontinuous
// profiles need no special handling.
//
// On failure no partial trajectory is returned.
func (d *Driver) Run(ctx context.Context, T0 float64, cfg thermo.Config) (*thermo.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := cfg.Samples
	res := &thermo.Result{
		Trajectory: thermo.Trajectory{
			Times: make([]float64, n),
			Temps: make([]float64, n),
		},
		Powers:  make([]float64, n),
		Metrics: make(map[string]float64),
	}

	for _, m := range d.metrics {
		m.Reset()
	}

	h := (cfg.End - cfg.Start) / float64(n-1)
	adaptive, isAdaptive := d.integ.(thermo.AdaptiveIntegrator)

	T := T0
	t := cfg.Start
	dt := math.Min(h, cfg.MaxStep)

	d.record(res, 0, t, T)

	for i := 1; i < n; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		target := cfg.Start + float64(i)*h
		if i == n-1 {
			target = cfg.End
		}

		for target-t > 1e-12*math.Max(1, math.Abs(target)) {
			step := math.Min(dt, target-t)

			if isAdaptive {
				newT, next, err := adaptive.StepAdaptive(d.sys, T, t, step, cfg.Tolerance)
				if err != nil {
					return nil, &thermo.StateError{Time: t, Wrapped: err}
				}
				T = newT
				dt = math.Min(math.Max(next, cfg.MinStep), cfg.MaxStep)
			} else {
				T = d.integ.Step(d.sys, T, t, step)
			}
			t += step
			res.Steps++

			if math.IsNaN(T) || math.IsInf(T, 0) {
				return nil, &thermo.StateError{Time: t, Wrapped: thermo.ErrInvalidState}
			}
		}

		t = target
		d.record(res, i, t, T)
	}

	for _, m := range d.metrics {
		res.Metrics[m.Name()] = m.Value()
	}

	return res, nil
}

func (d *Driver) record(res *thermo.Result, i int, t, T float64) {
	P := d.load.Power(t)
	res.Trajectory.Times[i] = t
	res.Trajectory.Temps[i] = T
	res.Powers[i] = P

	for _, m := range d.metrics {
		m.Observe(T, P, t)
	}
	for _, o := range d.observers {
		o.OnSample(T, P, t)
	}
}
