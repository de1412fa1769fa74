package metrics

import "github.com/san-kum/thermosim/internal/thermo"

// HeatBudget integrates heat in (load power) and heat out (loss to ambient)
// over the observed samples by the trapezoid rule. Value is the net stored
// energy in joules, which for an exact trajectory equals C*(T_end - T_start).
type HeatBudget struct {
	name     string
	params   thermo.Params
	heatIn   float64
	heatOut  float64
	prevTime float64
	prevIn   float64
	prevOut  float64
	samples  int
}

func NewHeatBudget(params thermo.Params) *HeatBudget {
	return &HeatBudget{name: "stored_energy", params: params}
}

func (h *HeatBudget) Name() string { return h.name }

func (h *HeatBudget) Observe(T, P, t float64) {
	loss := h.params.Conductivity * (T - h.params.Ambient)

	if h.samples > 0 {
		dt := t - h.prevTime
		h.heatIn += 0.5 * (P + h.prevIn) * dt
		h.heatOut += 0.5 * (loss + h.prevOut) * dt
	}

	h.prevTime = t
	h.prevIn = P
	h.prevOut = loss
	h.samples++
}

func (h *HeatBudget) Value() float64 {
	return h.heatIn - h.heatOut
}

// HeatIn returns the total injected energy in joules.
func (h *HeatBudget) HeatIn() float64 { return h.heatIn }

// HeatOut returns the total energy lost to ambient in joules.
func (h *HeatBudget) HeatOut() float64 { return h.heatOut }

func (h *HeatBudget) Reset() {
	h.heatIn = 0
	h.heatOut = 0
	h.prevTime = 0
	h.prevIn = 0
	h.prevOut = 0
	h.samples = 0
}
