package viz

import (
	"math"
	"strings"
)

// Each Braille character holds a 2x4 dot matrix, so a cols x rows canvas has
// 2*cols by 4*rows dots. Bits follow the Unicode dot numbering:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBlank = 0x2800

var brailleDots = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is the phase panel of the animation: predators against prey drawn
// in Braille dots.
type Canvas struct {
	Cols, Rows int
	cells      [][]rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{Cols: cols, Rows: rows, cells: make([][]rune, rows)}
	for r := range c.cells {
		c.cells[r] = make([]rune, cols)
	}
	c.Reset()
	return c
}

// Reset blanks every cell.
func (c *Canvas) Reset() {
	for _, row := range c.cells {
		for i := range row {
			row[i] = brailleBlank
		}
	}
}

// Dot lights the dot in column x, row y, counted from the top left. Dots off
// the canvas are ignored.
func (c *Canvas) Dot(x, y int) {
	if x < 0 || y < 0 || x >= 2*c.Cols || y >= 4*c.Rows {
		return
	}
	c.cells[y/4][x/2] |= brailleDots[y%4][x%2]
}

// Trace joins (prey[i], predators[i]) for i = 0..upto with straight segments.
// Both axes span [0, top]; larger values are pinned to the edge and a sample
// that is not a number breaks the line.
func (c *Canvas) Trace(prey, predators []float64, upto int, top float64) {
	if !(top > 0) || c.Cols == 0 || c.Rows == 0 {
		return
	}
	upto = min(upto, len(prey)-1, len(predators)-1)
	w, h := float64(2*c.Cols-1), float64(4*c.Rows-1)

	scale := func(v, span float64) (int, bool) {
		f := v / top
		if math.IsNaN(f) {
			return 0, false
		}
		return int(math.Round(math.Min(1, math.Max(0, f)) * span)), true
	}

	havePrev := false
	var px, py int
	for i := 0; i <= upto; i++ {
		x, okX := scale(prey[i], w)
		y, okY := scale(predators[i], h)
		if !okX || !okY {
			havePrev = false
			continue
		}
		y = int(h) - y
		if havePrev {
			c.segment(px, py, x, y)
		} else {
			c.Dot(x, y)
		}
		px, py, havePrev = x, y, true
	}
}

// segment lights the dots between two points by stepping along the longer
// axis.
func (c *Canvas) segment(x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	n := max(abs(dx), abs(dy))
	if n == 0 {
		c.Dot(x0, y0)
		return
	}
	for s := 0; s <= n; s++ {
		c.Dot(x0+int(math.Round(float64(dx*s)/float64(n))), y0+int(math.Round(float64(dy*s)/float64(n))))
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
