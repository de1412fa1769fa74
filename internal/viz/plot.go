// Package viz renders temperature trajectories in the terminal: static
// asciigraph plots and a live simulation view.
package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/thermosim/internal/thermo"
)

const (
	plotWidth  = 80
	plotHeight = 12
)

// PlotTrajectory renders the temperature series of a run.
func PlotTrajectory(tr thermo.Trajectory, caption string) string {
	return asciigraph.Plot(tr.Temps,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotPower renders the power series of a run.
func PlotPower(powers []float64, caption string) string {
	return asciigraph.Plot(powers,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotComparison overlays the numerical trajectory and the analytical
// series on one graph.
func PlotComparison(numerical thermo.Trajectory, analytical []float64) string {
	return asciigraph.PlotMany([][]float64{numerical.Temps, analytical},
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption(fmt.Sprintf("numerical (blue) vs analytical (red), %d samples", numerical.Len())),
	)
}
