package config

import (
	"fmt"
	"os"

	"github.com/san-kum/thermosim/internal/profile"
	"github.com/san-kum/thermosim/internal/thermo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultStart     = 0.0
	DefaultEnd       = 60.0
	DefaultSamples   = 500
	DefaultTolerance = 1e-8
)

type Config struct {
	Scenario   string        `yaml:"scenario"`
	Integrator string        `yaml:"integrator"`
	Params     thermo.Params `yaml:"params"`
	Span       SpanConfig    `yaml:"span"`
	Samples    int           `yaml:"samples"`
	Tolerance  float64       `yaml:"tolerance"`
	Load       LoadConfig    `yaml:"load"`
}

type SpanConfig struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// LoadConfig carries the parameters of whichever load profile the scenario
// selects; unrelated fields are ignored.
type LoadConfig struct {
	Level     float64 `yaml:"level"`     // constant
	Low       float64 `yaml:"low"`       // step
	High      float64 `yaml:"high"`      // step
	StepAt    float64 `yaml:"step_at"`   // step
	Mid       float64 `yaml:"mid"`       // periodic
	Amplitude float64 `yaml:"amplitude"` // periodic
	Period    float64 `yaml:"period"`    // periodic
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:   "idle",
		Integrator: "rk45",
		Params:     thermo.DefaultParams(),
		Span:       SpanConfig{Start: DefaultStart, End: DefaultEnd},
		Samples:    DefaultSamples,
		Tolerance:  DefaultTolerance,
		Load: LoadConfig{
			Level:     10,
			Low:       10,
			High:      80,
			StepAt:    5,
			Mid:       45,
			Amplitude: 35,
			Period:    20,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildProfile constructs the load profile the scenario selects.
func (c *Config) BuildProfile() (profile.Profile, error) {
	switch c.Scenario {
	case "idle":
		return profile.Constant{Watts: c.Load.Level}, nil
	case "step":
		return profile.Step{Low: c.Load.Low, High: c.Load.High, At: c.Load.StepAt}, nil
	case "periodic":
		return profile.Sinusoid{Mid: c.Load.Mid, Amplitude: c.Load.Amplitude, Period: c.Load.Period}, nil
	default:
		return nil, fmt.Errorf("unknown scenario: %s", c.Scenario)
	}
}

// SolverConfig translates the file-level settings into a solver Config.
func (c *Config) SolverConfig() thermo.Config {
	sc := thermo.DefaultConfig()
	sc.Start = c.Span.Start
	sc.End = c.Span.End
	sc.Samples = c.Samples
	sc.Tolerance = c.Tolerance
	return sc
}
