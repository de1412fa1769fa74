package thermo

import (
	"context"
	"sync"
)

// SweepPoint is the outcome of one parameter set in a sweep.
type SweepPoint struct {
	Params Params
	Result *Result
	Err    error
}

// Sweep runs the given simulation function once per parameter set,
// concurrently. Each run receives its own Params copy, so parameter sets
// stay independent. Results are returned in input order.
func Sweep(ctx context.Context, sets []Params, run func(context.Context, Params) (*Result, error)) []SweepPoint {
	points := make([]SweepPoint, len(sets))

	var wg sync.WaitGroup
	for i, p := range sets {
		wg.Add(1)
		go func(idx int, params Params) {
			defer wg.Done()
			res, err := run(ctx, params)
			points[idx] = SweepPoint{Params: params, Result: res, Err: err}
		}(i, p)
	}

	wg.Wait()
	return points
}
