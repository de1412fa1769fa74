package sim

import (
	"context"

	"github.com/san-kum/thermosim/internal/integrators"
	"github.com/san-kum/thermosim/internal/model"
	"github.com/san-kum/thermosim/internal/profile"
	"github.com/san-kum/thermosim/internal/thermo"
)

// Solve is the one-call path: validate params, build the thermal model, and
// integrate the load profile with the default adaptive solver starting from
// params.Initial.
func Solve(ctx context.Context, params thermo.Params, load profile.Profile, cfg thermo.Config) (*thermo.Result, error) {
	m, err := model.New(params, load)
	if err != nil {
		return nil, err
	}
	return New(m, load, integrators.NewRK45()).Run(ctx, params.Initial, cfg)
}
