package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/viz"
)

const (
	background     = "#0a0a0a"
	foreground     = "#d4d4d4"
	chartMargin    = 48
	legendRowSpace = 18
)

// ChartSVG draws both populations against time on a dark background.
func ChartSVG(tr *dynamo.Trajectory, width, height int) string {
	if tr == nil || tr.Len() < 2 || width <= 2*chartMargin || height <= 2*chartMargin {
		return ""
	}

	t0, t1 := tr.Times[0], tr.Times[tr.Len()-1]
	top := tr.MaxPopulation() * 1.1
	if top == 0 {
		top = 1
	}

	plotW := float64(width - 2*chartMargin)
	plotH := float64(height - 2*chartMargin)
	project := func(t, v float64) (float64, float64) {
		x := float64(chartMargin) + (t-t0)/(t1-t0)*plotW
		y := float64(chartMargin) + plotH - v/top*plotH
		return x, y
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<text x="%d" y="%d" fill="%s" font-family="monospace" font-size="16" text-anchor="middle">Predator-Prey Dynamics</text>
`, width, height, width, height, background, width/2, chartMargin/2+6, foreground)

	x0, y0 := project(t0, 0)
	x1, y1 := project(t1, top)
	fmt.Fprintf(&sb, `<g stroke="%s" stroke-width="1">
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
</g>
`, foreground, x0, y0, x1, y0, x0, y0, x0, y1)
	fmt.Fprintf(&sb, `<g fill="%s" font-family="monospace" font-size="11">
<text x="%.1f" y="%.1f" text-anchor="middle">Time</text>
<text x="%.1f" y="%.1f" text-anchor="end">%.0f</text>
<text x="%.1f" y="%.1f" text-anchor="end">0</text>
<text x="%.1f" y="%.1f" text-anchor="end">%g</text>
</g>
`, foreground, (x0+x1)/2, y0+30, x0-4, y1+4, top, x0-4, y0+4, x1, y0+16, t1)

	writePath(&sb, tr.Times, tr.Prey, viz.PreyColor, project)
	writePath(&sb, tr.Times, tr.Predators, viz.PredatorColor, project)

	lx, ly := x1-150, float64(chartMargin)+10
	for i, entry := range []struct{ color, label string }{
		{viz.PreyColor, viz.PreyLabel},
		{viz.PredatorColor, viz.PredatorLabel},
	} {
		y := ly + float64(i*legendRowSpace)
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>
<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="11">%s</text>
`, lx, y, lx+20, y, entry.color, lx+26, y+4, foreground, entry.label)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func writePath(sb *strings.Builder, times, values []float64, color string, project func(t, v float64) (float64, float64)) {
	fmt.Fprintf(sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color)
	for i := range times {
		x, y := project(times[i], values[i])
		if i == 0 {
			fmt.Fprintf(sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString(`"/>
`)
}
