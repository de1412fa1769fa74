package analysis

import (
	"math"
	"testing"
)

func TestDominantPeriodExactBin(t *testing.T) {
	// 512 samples at dt=0.1 hold exactly 8 cycles of a 6.4 s sine, so the
	// period lands on a spectral bin with no leakage.
	dt := 0.1
	values := make([]float64, 512)
	for i := range values {
		values[i] = 34 + 2*math.Sin(2*math.Pi*float64(i)*dt/6.4)
	}

	got := DominantPeriod(values, dt)
	if math.Abs(got-6.4) > 1e-9 {
		t.Errorf("dominant period: got %g, want 6.4", got)
	}
}

func TestDominantPeriodLeakyBin(t *testing.T) {
	// 20 s forcing sampled at dt=0.1 over 1024 points: the peak bin is
	// quantized, so allow the bin-width error.
	dt := 0.1
	values := make([]float64, 1024)
	for i := range values {
		values[i] = 45 + 35*math.Sin(2*math.Pi*float64(i)*dt/20)
	}

	got := DominantPeriod(values, dt)
	if math.Abs(got-20) > 1.5 {
		t.Errorf("dominant period: got %g, want ~20", got)
	}
}

func TestDominantPeriodFlatSignal(t *testing.T) {
	values := make([]float64, 256)
	for i := range values {
		values[i] = 27
	}

	if got := DominantPeriod(values, 0.1); got != 0 {
		t.Errorf("flat signal: got %g, want 0", got)
	}
}

func TestDominantPeriodDegenerateInput(t *testing.T) {
	if got := DominantPeriod(nil, 0.1); got != 0 {
		t.Errorf("nil input: got %g, want 0", got)
	}
	if got := DominantPeriod([]float64{1, 2, 3}, 0.1); got != 0 {
		t.Errorf("short input: got %g, want 0", got)
	}
	if got := DominantPeriod(make([]float64, 64), 0); got != 0 {
		t.Errorf("zero dt: got %g, want 0", got)
	}
}

func TestPowerSpectrumLength(t *testing.T) {
	values := make([]float64, 128)
	ps := PowerSpectrum(values)
	if len(ps) != 64 {
		t.Errorf("spectrum length: got %d, want 64", len(ps))
	}
}
