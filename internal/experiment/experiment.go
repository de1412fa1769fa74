// Package experiment binds a scenario, integrator, and metrics into one
// reproducible simulation run.
package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/thermosim/internal/model"
	"github.com/san-kum/thermosim/internal/profile"
	"github.com/san-kum/thermosim/internal/sim"
	"github.com/san-kum/thermosim/internal/thermo"
)

type Config struct {
	Scenario   string
	Integrator string
	Params     thermo.Params
	Solver     thermo.Config
}

type Experiment struct {
	cfg    Config
	driver *sim.Driver
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(load profile.Profile, integ thermo.Integrator, ms []thermo.Metric) error {
	m, err := model.New(e.cfg.Params, load)
	if err != nil {
		return err
	}
	e.driver = sim.New(m, load, integ)
	for _, metric := range ms {
		e.driver.AddMetric(metric)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*thermo.Result, error) {
	if e.driver == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.driver.Run(ctx, e.cfg.Params.Initial, e.cfg.Solver)
}

// Driver returns the underlying driver for adding observers.
func (e *Experiment) Driver() *sim.Driver {
	return e.driver
}
