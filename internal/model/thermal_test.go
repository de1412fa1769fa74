package model

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/thermosim/internal/profile"
	"github.com/san-kum/thermosim/internal/thermo"
)

func TestThermalEquilibrium(t *testing.T) {
	m, err := New(thermo.DefaultParams(), profile.NewIdle())
	if err != nil {
		t.Fatal(err)
	}

	// At the steady state for 10 W, heat in equals heat out.
	steady := m.Params.SteadyState(10)
	if got := m.Derive(steady, 0); math.Abs(got) > 1e-12 {
		t.Errorf("expected zero rate at steady state, got %g", got)
	}
}

func TestThermalCoolingRate(t *testing.T) {
	m, err := New(thermo.DefaultParams(), profile.Constant{Watts: 0})
	if err != nil {
		t.Fatal(err)
	}

	// 10 degC above ambient with no load: dT/dt = -k*10/C = -1.
	if got := m.Derive(35, 0); math.Abs(got+1) > 1e-12 {
		t.Errorf("expected rate -1, got %g", got)
	}
}

func TestThermalHeatingRate(t *testing.T) {
	m, err := New(thermo.DefaultParams(), profile.NewIdle())
	if err != nil {
		t.Fatal(err)
	}

	// At ambient all injected power goes into heating: dT/dt = P/C.
	want := 10.0 / 50.0
	if got := m.Derive(25, 0); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected rate %g, got %g", want, got)
	}
}

func TestThermalRejectsBadParams(t *testing.T) {
	cases := []thermo.Params{
		{HeatCapacity: 0, Conductivity: 5},
		{HeatCapacity: -50, Conductivity: 5},
		{HeatCapacity: 50, Conductivity: 0},
		{HeatCapacity: 50, Conductivity: -5},
	}

	for _, p := range cases {
		if _, err := New(p, profile.NewIdle()); !errors.Is(err, thermo.ErrInvalidParam) {
			t.Errorf("params %+v: expected ErrInvalidParam, got %v", p, err)
		}
	}
}

func TestCharacteristics(t *testing.T) {
	p := thermo.DefaultParams()

	if got := p.TimeConstant(); got != 10 {
		t.Errorf("time constant: got %g, want 10", got)
	}
	if got := p.SteadyState(10); got != 27 {
		t.Errorf("idle steady state: got %g, want 27", got)
	}
	if got := p.SteadyState(80); got != 41 {
		t.Errorf("full-load steady state: got %g, want 41", got)
	}
	if got := p.ResponseTime95(); got != 30 {
		t.Errorf("95%% response time: got %g, want 30", got)
	}
	if got := p.ResponseTime99(); got != 50 {
		t.Errorf("99%% response time: got %g, want 50", got)
	}
	if got := p.RisePerWatt(); got != 0.2 {
		t.Errorf("rise per watt: got %g, want 0.2", got)
	}
}

func TestStoredEnergy(t *testing.T) {
	m, _ := New(thermo.DefaultParams(), profile.NewIdle())

	if got := m.Stored(25); got != 0 {
		t.Errorf("stored at ambient: got %g, want 0", got)
	}
	if got := m.Stored(27); math.Abs(got-100) > 1e-12 {
		t.Errorf("stored 2 degC above ambient: got %g, want 100", got)
	}
	if got := m.HeatLoss(27); math.Abs(got-10) > 1e-12 {
		t.Errorf("loss 2 degC above ambient: got %g, want 10", got)
	}
}

func TestSetParamValidates(t *testing.T) {
	m, _ := New(thermo.DefaultParams(), profile.NewIdle())

	if err := m.SetParam("conductivity", 2.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Params.Conductivity != 2.5 {
		t.Errorf("conductivity not updated: %g", m.Params.Conductivity)
	}

	if err := m.SetParam("capacity", -1); err == nil {
		t.Error("expected error for negative capacity")
	}
	if err := m.SetParam("nope", 1); err == nil {
		t.Error("expected error for unknown param")
	}
}
