package integrators

import "github.com/san-kum/thermosim/internal/thermo"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys thermo.System, T, t, dt float64) float64 {
	return T + dt*sys.Derive(T, t)
}
