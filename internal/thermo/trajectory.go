package thermo

import "math"

// Trajectory is an ordered time/temperature sample sequence with strictly
// increasing times. It is owned by the caller once returned; the solver
// never retains or mutates it.
type Trajectory struct {
	Times []float64
	Temps []float64
}

func (tr Trajectory) Len() int { return len(tr.Times) }

func (tr Trajectory) At(i int) (t, T float64) {
	return tr.Times[i], tr.Temps[i]
}

// Final returns the last sample. Panics on an empty trajectory.
func (tr Trajectory) Final() (t, T float64) {
	n := len(tr.Times)
	return tr.Times[n-1], tr.Temps[n-1]
}

// Bounds returns the minimum and maximum temperature over the trajectory.
func (tr Trajectory) Bounds() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, T := range tr.Temps {
		lo = math.Min(lo, T)
		hi = math.Max(hi, T)
	}
	return lo, hi
}

// Tail returns the samples with t >= from. The returned trajectory shares
// backing arrays with the receiver.
func (tr Trajectory) Tail(from float64) Trajectory {
	i := 0
	for i < len(tr.Times) && tr.Times[i] < from {
		i++
	}
	return Trajectory{Times: tr.Times[i:], Temps: tr.Temps[i:]}
}

// IsValid reports whether every temperature sample is finite.
func (tr Trajectory) IsValid() bool {
	for _, T := range tr.Temps {
		if math.IsNaN(T) || math.IsInf(T, 0) {
			return false
		}
	}
	return true
}
