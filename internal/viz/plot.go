package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ballsim/internal/dynamo"
)

const (
	plotHeight = 12
	plotWidth  = 72
)

// PlotHeights charts the simulated heights. When exact is non-empty it is
// drawn as a second series aligned with the trajectory's time points.
func PlotHeights(tr dynamo.Trajectory, exact []float64) string {
	heights := tr.Heights()
	if len(heights) == 0 {
		return ""
	}

	caption := fmt.Sprintf("height [m] over %.2fs", span(tr))
	opts := []asciigraph.Option{
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(2),
	}

	if len(exact) == 0 {
		return asciigraph.Plot(heights, append(opts, asciigraph.Caption(caption))...)
	}

	opts = append(opts,
		asciigraph.Caption(caption+" (green: numerical, blue: exact)"),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Blue),
	)
	return asciigraph.PlotMany([][]float64{heights, exact}, opts...)
}

// PlotVelocities charts the simulated velocities.
func PlotVelocities(tr dynamo.Trajectory) string {
	v := tr.Velocities()
	if len(v) == 0 {
		return ""
	}
	return asciigraph.Plot(v,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(2),
		asciigraph.Caption("velocity [m/s]"),
	)
}

func span(tr dynamo.Trajectory) float64 {
	if len(tr) == 0 {
		return 0
	}
	return tr[len(tr)-1].Time - tr[0].Time
}
