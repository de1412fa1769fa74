package analysis

// Detrend returns a copy of the signal with its mean removed. Raw
// temperature trajectories sit far above zero, so their spectra are
// dominated by the DC bin unless the mean is taken out first.
func Detrend(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v - mean
	}
	return out
}

// DominantPeriod estimates the strongest oscillation period of a uniformly
// sampled signal with sample spacing dt, in the same unit as dt. Returns 0
// if the signal has no oscillatory content.
func DominantPeriod(values []float64, dt float64) float64 {
	if len(values) < 4 || dt <= 0 {
		return 0
	}

	ps := PowerSpectrum(Detrend(values))
	n := 2 * len(ps) // transform length after padding

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ { // skip the DC bin
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}

	if maxIdx == 0 || maxPower == 0 {
		return 0
	}

	freq := float64(maxIdx) / (float64(n) * dt)
	return 1 / freq
}
