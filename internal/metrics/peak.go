// Package metrics provides scalar observers accumulated during a
// simulation run.
package metrics

import "math"

type PeakTemperature struct {
	name string
	peak float64
	seen bool
}

func NewPeakTemperature() *PeakTemperature {
	return &PeakTemperature{name: "peak_temp"}
}

func (p *PeakTemperature) Name() string { return p.name }

func (p *PeakTemperature) Observe(T, P, t float64) {
	if !p.seen || T > p.peak {
		p.peak = T
		p.seen = true
	}
}

func (p *PeakTemperature) Value() float64 {
	if !p.seen {
		return math.NaN()
	}
	return p.peak
}

func (p *PeakTemperature) Reset() {
	p.peak = 0
	p.seen = false
}
