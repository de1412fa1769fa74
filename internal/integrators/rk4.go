package integrators

import "github.com/san-kum/thermosim/internal/thermo"

type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(sys thermo.System, T, t, dt float64) float64 {
	k1 := sys.Derive(T, t)
	k2 := sys.Derive(T+dt*0.5*k1, t+dt*0.5)
	k3 := sys.Derive(T+dt*0.5*k2, t+dt*0.5)
	k4 := sys.Derive(T+dt*k3, t+dt)

	return T + dt/6.0*(k1+2*k2+2*k3+k4)
}
