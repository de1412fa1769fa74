package config

import "github.com/san-kum/thermosim/internal/thermo"

var Presets = map[string]map[string]*Config{
	"idle": {
		"default": {
			Scenario: "idle", Integrator: "rk45", Params: thermo.DefaultParams(),
			Span: SpanConfig{Start: 0, End: 60}, Samples: 500, Tolerance: DefaultTolerance,
			Load: LoadConfig{Level: 10},
		},
		// Cooling from a thermal-throttle temperature back down to idle.
		"hot-start": {
			Scenario: "idle", Integrator: "rk45", Params: paramsFrom(90),
			Span: SpanConfig{Start: 0, End: 60}, Samples: 500, Tolerance: DefaultTolerance,
			Load: LoadConfig{Level: 10},
		},
	},
	"step": {
		"default": {
			Scenario: "step", Integrator: "rk45", Params: thermo.DefaultParams(),
			Span: SpanConfig{Start: 0, End: 60}, Samples: 500, Tolerance: DefaultTolerance,
			Load: LoadConfig{Low: 10, High: 80, StepAt: 5},
		},
		"long": {
			Scenario: "step", Integrator: "rk45", Params: thermo.DefaultParams(),
			Span: SpanConfig{Start: 0, End: 120}, Samples: 1000, Tolerance: DefaultTolerance,
			Load: LoadConfig{Low: 10, High: 80, StepAt: 5},
		},
	},
	"periodic": {
		"default": {
			Scenario: "periodic", Integrator: "rk45", Params: thermo.DefaultParams(),
			Span: SpanConfig{Start: 0, End: 60}, Samples: 500, Tolerance: DefaultTolerance,
			Load: LoadConfig{Mid: 45, Amplitude: 35, Period: 20},
		},
		"two-minutes": {
			Scenario: "periodic", Integrator: "rk45", Params: thermo.DefaultParams(),
			Span: SpanConfig{Start: 0, End: 120}, Samples: 1200, Tolerance: DefaultTolerance,
			Load: LoadConfig{Mid: 45, Amplitude: 35, Period: 20},
		},
	},
}

func paramsFrom(initial float64) thermo.Params {
	p := thermo.DefaultParams()
	p.Initial = initial
	return p
}

func GetPreset(scenario, name string) *Config {
	group, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := group[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scenario string) []string {
	group, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}
