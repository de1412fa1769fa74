package experiment

import (
	"fmt"

	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/integrators"
	"github.com/san-kum/thermosim/internal/metrics"
	"github.com/san-kum/thermosim/internal/profile"
	"github.com/san-kum/thermosim/internal/thermo"
)

type Registry struct {
	scenarios   map[string]func(config.LoadConfig) profile.Profile
	integrators map[string]func() thermo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		scenarios:   make(map[string]func(config.LoadConfig) profile.Profile),
		integrators: make(map[string]func() thermo.Integrator),
	}

	r.scenarios["idle"] = func(lc config.LoadConfig) profile.Profile {
		return profile.Constant{Watts: lc.Level}
	}
	r.scenarios["step"] = func(lc config.LoadConfig) profile.Profile {
		return profile.Step{Low: lc.Low, High: lc.High, At: lc.StepAt}
	}
	r.scenarios["periodic"] = func(lc config.LoadConfig) profile.Profile {
		return profile.Sinusoid{Mid: lc.Mid, Amplitude: lc.Amplitude, Period: lc.Period}
	}

	r.integrators["euler"] = func() thermo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() thermo.Integrator { return integrators.NewRK4() }
	r.integrators["rk45"] = func() thermo.Integrator { return integrators.NewRK45() }

	return r
}

func (r *Registry) GetProfile(scenario string, lc config.LoadConfig) (profile.Profile, error) {
	fn, ok := r.scenarios[scenario]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s", scenario)
	}
	return fn(lc), nil
}

func (r *Registry) GetIntegrator(name string) (thermo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListScenarios() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	return names
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	return names
}

// DefaultMetrics returns the metrics observed on every run: peak
// temperature, settling into a 0.1 degC band around the steady state for
// the given reference power, and the heat budget.
func (r *Registry) DefaultMetrics(params thermo.Params, refPower float64) []thermo.Metric {
	return []thermo.Metric{
		metrics.NewPeakTemperature(),
		metrics.NewSettlingTime(params.SteadyState(refPower), 0.1),
		metrics.NewHeatBudget(params),
	}
}
