// Package model implements the processor heat-balance ODE as a thermo.System.
package model

import (
	"fmt"

	"github.com/san-kum/thermosim/internal/profile"
	"github.com/san-kum/thermosim/internal/thermo"
)

// Thermal is the lumped single-node processor model
//
//	dT/dt = (P(t) - k*(T - Tenv)) / C
//
// P(t) is heat injected by the load, k*(T - Tenv) is heat lost to ambient
// (linear Newton cooling), and C converts net heat rate to temperature rate.
type Thermal struct {
	Params thermo.Params
	Load   profile.Profile
}

// New validates the physical parameters and binds them to a load profile.
func New(p thermo.Params, load profile.Profile) (*Thermal, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Thermal{Params: p, Load: load}, nil
}

func (m *Thermal) Derive(T, t float64) float64 {
	heatIn := m.Load.Power(t)
	heatOut := m.Params.Conductivity * (T - m.Params.Ambient)
	return (heatIn - heatOut) / m.Params.HeatCapacity
}

// HeatLoss returns the instantaneous heat flow to ambient in watts.
func (m *Thermal) HeatLoss(T float64) float64 {
	return m.Params.Conductivity * (T - m.Params.Ambient)
}

// Stored returns the thermal energy held above ambient, C*(T - Tenv), in
// joules. Over a run, heat in minus heat out equals the change in Stored.
func (m *Thermal) Stored(T float64) float64 {
	return m.Params.HeatCapacity * (T - m.Params.Ambient)
}

func (m *Thermal) GetParams() map[string]float64 {
	return map[string]float64{
		"capacity":     m.Params.HeatCapacity,
		"conductivity": m.Params.Conductivity,
		"ambient":      m.Params.Ambient,
	}
}

func (m *Thermal) SetParam(name string, value float64) error {
	switch name {
	case "capacity":
		m.Params.HeatCapacity = value
	case "conductivity":
		m.Params.Conductivity = value
	case "ambient":
		m.Params.Ambient = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return m.Params.Validate()
}
