package analysis

import (
	"strings"

	"github.com/san-kum/predprey/internal/dynamo"
)

type Point struct{ X, Y float64 }

// PhasePortrait is the prey/predator curve of one trajectory.
type PhasePortrait struct {
	Points      []Point
	Equilibrium *Point
}

func NewPhasePortrait(tr *dynamo.Trajectory) *PhasePortrait {
	if tr == nil {
		return nil
	}
	p := &PhasePortrait{Points: make([]Point, tr.Len())}
	for i := range p.Points {
		p.Points[i] = Point{X: tr.Prey[i], Y: tr.Predators[i]}
	}
	return p
}

// MarkEquilibrium adds a fixed point to be drawn with the curve.
func (p *PhasePortrait) MarkEquilibrium(x dynamo.State) {
	if len(x) < 2 {
		return
	}
	p.Equilibrium = &Point{X: x[0], Y: x[1]}
}

// ASCII renders the portrait with prey on the horizontal axis. The start is
// drawn as 'o' and the equilibrium, if marked, as '+'.
func (p *PhasePortrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width <= 1 || height <= 1 {
		return ""
	}

	all := p.Points
	if p.Equilibrium != nil {
		all = append(append([]Point{}, p.Points...), *p.Equilibrium)
	}

	minX, maxX := all[0].X, all[0].X
	minY, maxY := all[0].Y, all[0].Y
	for _, pt := range all {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	cell := func(pt Point) (int, int, bool) {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		return row, col, row >= 0 && row < height && col >= 0 && col < width
	}

	// Populations are never negative, so only the zero lines can show.
	if minX <= 0 && maxX >= 0 {
		if _, col, ok := cell(Point{0, minY}); ok {
			for row := 0; row < height; row++ {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		if row, _, ok := cell(Point{minX, 0}); ok {
			for col := 0; col < width; col++ {
				canvas[row][col] = '─'
			}
		}
	}

	for _, pt := range p.Points {
		if row, col, ok := cell(pt); ok {
			canvas[row][col] = '•'
		}
	}
	if row, col, ok := cell(p.Points[0]); ok {
		canvas[row][col] = 'o'
	}
	if p.Equilibrium != nil {
		if row, col, ok := cell(*p.Equilibrium); ok {
			canvas[row][col] = '+'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
