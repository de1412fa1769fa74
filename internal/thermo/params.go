package thermo

// Params holds the physical parameters of the lumped thermal model.
// HeatCapacity and Conductivity must be strictly positive for the system
// to be well posed (stable exponential decay toward steady state).
type Params struct {
	HeatCapacity float64 `yaml:"heat_capacity"` // C, J/degC
	Conductivity float64 `yaml:"conductivity"`  // k, W/degC
	Ambient      float64 `yaml:"ambient"`       // Tenv, degC
	Initial      float64 `yaml:"initial"`       // T0, degC
}

// DefaultParams returns the reference processor package: C=50 J/degC,
// k=5 W/degC, ambient and initial temperature at 25 degC.
func DefaultParams() Params {
	return Params{
		HeatCapacity: 50,
		Conductivity: 5,
		Ambient:      25,
		Initial:      25,
	}
}

// Validate checks the well-posedness invariants. The returned error wraps
// ErrInvalidParam and names the offending field.
func (p Params) Validate() error {
	if p.HeatCapacity <= 0 {
		return &ParamError{Field: "heat_capacity", Value: p.HeatCapacity, Wrapped: ErrInvalidParam}
	}
	if p.Conductivity <= 0 {
		return &ParamError{Field: "conductivity", Value: p.Conductivity, Wrapped: ErrInvalidParam}
	}
	return nil
}

// TimeConstant returns tau = C/k, the characteristic relaxation timescale.
func (p Params) TimeConstant() float64 {
	return p.HeatCapacity / p.Conductivity
}

// SteadyState returns the equilibrium temperature Tenv + P/k under a
// constant power draw.
func (p Params) SteadyState(power float64) float64 {
	return p.Ambient + power/p.Conductivity
}

// Response times for first-order exponential settling.
func (p Params) ResponseTime63() float64 { return p.TimeConstant() }
func (p Params) ResponseTime95() float64 { return 3 * p.TimeConstant() }
func (p Params) ResponseTime99() float64 { return 5 * p.TimeConstant() }

// RisePerWatt returns the steady-state temperature rise per watt, 1/k.
func (p Params) RisePerWatt() float64 {
	return 1 / p.Conductivity
}
