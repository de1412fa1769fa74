package integrators

import (
	"math"

	"github.com/san-kum/thermosim/internal/thermo"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

func (r *RK45) Step(sys thermo.System, T, t, dt float64) float64 {
	newT, _, _ := r.StepAdaptive(sys, T, t, dt, 1e-8)
	return newT
}

func (r *RK45) StepAdaptive(sys thermo.System, T, t, dt, tol float64) (float64, float64, error) {
	k1 := sys.Derive(T, t)
	k2 := sys.Derive(T+dt*b21*k1, t+a2*dt)
	k3 := sys.Derive(T+dt*(b31*k1+b32*k2), t+a3*dt)
	k4 := sys.Derive(T+dt*(b41*k1+b42*k2+b43*k3), t+a4*dt)
	k5 := sys.Derive(T+dt*(b51*k1+b52*k2+b53*k3+b54*k4), t+a5*dt)
	k6 := sys.Derive(T+dt*(b61*k1+b62*k2+b63*k3+b64*k4+b65*k5), t+dt)

	newT := T + dt*(c1*k1+c3*k3+c4*k4+c5*k5+c6*k6)

	k7 := sys.Derive(newT, t+dt)

	errEst := dt * (dc1*k1 + dc3*k3 + dc4*k4 + dc5*k5 + dc6*k6 + dc7*k7)
	scale := math.Abs(T) + math.Abs(dt*k1) + 1e-10
	errRatio := math.Abs(errEst) / scale / tol

	var dtNext float64
	if errRatio > 1 {
		dtNext = dt * math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.25))
	} else if errRatio > 0 {
		dtNext = dt * math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2))
	} else {
		dtNext = dt * r.maxScale
	}

	return newT, dtNext, nil
}
