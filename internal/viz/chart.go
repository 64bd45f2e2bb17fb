package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/predprey/internal/dynamo"
)

const (
	PreyLabel     = "Prey (Rabbits)"
	PredatorLabel = "Predators (Foxes)"

	PreyColor     = "#3b82f6"
	PredatorColor = "#ef4444"
)

// Chart plots both populations against time. Prey are blue and predators
// red; width 0 keeps one column per sample.
func Chart(tr *dynamo.Trajectory, width, height int) string {
	if tr == nil || tr.Len() == 0 {
		return ""
	}
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.LowerBound(0),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.SeriesLegends(PreyLabel, PredatorLabel),
		asciigraph.Caption(caption(tr)),
	}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	return asciigraph.PlotMany([][]float64{tr.Prey, tr.Predators}, opts...)
}

func caption(tr *dynamo.Trajectory) string {
	t, ok := tr.ExtinctionTime()
	if !ok {
		return "Predator-Prey Dynamics"
	}
	return fmt.Sprintf("Predator-Prey Dynamics (%s at t=%.2f)", tr.Regime, t)
}
