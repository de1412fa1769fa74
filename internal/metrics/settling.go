package metrics

import "math"

// SettlingTime reports when the temperature entered the band around the
// target and stayed there. Value is the time of the first in-band sample
// after the last out-of-band one, or -1 if the trajectory never settled
// (ended out of band or never entered it).
type SettlingTime struct {
	name    string
	target  float64
	band    float64
	entered float64
	inBand  bool
	seen    bool
}

func NewSettlingTime(target, band float64) *SettlingTime {
	return &SettlingTime{
		name:    "settling_time",
		target:  target,
		band:    band,
		entered: -1,
	}
}

func (s *SettlingTime) Name() string { return s.name }

func (s *SettlingTime) Observe(T, P, t float64) {
	s.seen = true
	if math.Abs(T-s.target) > s.band {
		s.inBand = false
		s.entered = -1
		return
	}
	if !s.inBand {
		s.inBand = true
		s.entered = t
	}
}

func (s *SettlingTime) Value() float64 {
	if !s.seen || !s.inBand {
		return -1
	}
	return s.entered
}

func (s *SettlingTime) Reset() {
	s.entered = -1
	s.inBand = false
	s.seen = false
}
