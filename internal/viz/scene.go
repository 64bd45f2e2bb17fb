package viz

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/predprey/internal/dynamo"
)

// MinFieldSide is the smallest side of the square the animals are scattered
// over, in population units.
const MinFieldSide = 10.0

// Cell is a character position in the scene, column first.
type Cell struct{ Col, Row int }

// Scene is one animation frame: the caption and where each animal is drawn.
type Scene struct {
	Title     string
	Rabbits   int
	Foxes     int
	Prey      []Cell
	Predators []Cell
}

// MaxHeadcount caps Headcount; unbounded growth tails overflow int otherwise.
const MaxHeadcount = math.MaxInt32

// Headcount rounds a population to a whole number of animals in
// [0, MaxHeadcount].
func Headcount(v float64) int {
	if !(v > 0) {
		return 0
	}
	if v >= MaxHeadcount {
		return MaxHeadcount
	}
	return int(math.Round(v))
}

// FieldSide is the side of the scatter square for a trajectory.
func FieldSide(tr *dynamo.Trajectory) float64 {
	return math.Max(MinFieldSide, tr.MaxPopulation()/5)
}

// BuildScene scatters the animals of sample i uniformly over a square of side
// FieldSide(tr) mapped onto a cols x rows grid. At most cols*rows glyphs are
// placed per species.
func BuildScene(tr *dynamo.Trajectory, i int, rng *rand.Rand, cols, rows int) Scene {
	rabbits := Headcount(tr.Prey[i])
	foxes := Headcount(tr.Predators[i])
	s := Scene{
		Title:   fmt.Sprintf("Time: %.1f | Rabbits: %d | Foxes: %d", tr.Times[i], rabbits, foxes),
		Rabbits: rabbits,
		Foxes:   foxes,
	}
	if cols <= 0 || rows <= 0 {
		return s
	}

	side := math.Min(FieldSide(tr), math.MaxFloat64)
	scatter := func(n int) []Cell {
		n = min(n, cols*rows)
		cells := make([]Cell, n)
		for k := range cells {
			x, y := rng.Float64()*side, rng.Float64()*side
			cells[k] = Cell{
				Col: min(cols-1, int(x/side*float64(cols))),
				Row: min(rows-1, int(y/side*float64(rows))),
			}
		}
		return cells
	}
	s.Prey = scatter(rabbits)
	s.Predators = scatter(foxes)
	return s
}

type spriteSet struct {
	rabbit, fox, empty string
}

var (
	spritesOnce sync.Once
	spriteCache spriteSet
)

// sprites renders the animal glyphs once per process.
func sprites() spriteSet {
	spritesOnce.Do(func() {
		spriteCache = spriteSet{
			rabbit: lipgloss.NewStyle().Foreground(lipgloss.Color(PreyColor)).Bold(true).Render("r"),
			fox:    lipgloss.NewStyle().Foreground(lipgloss.Color(PredatorColor)).Bold(true).Render("F"),
			empty:  " ",
		}
	})
	return spriteCache
}

// Render draws the scene on a cols x rows field. Foxes are drawn over
// rabbits when they share a cell.
func (s Scene) Render(cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	sp := sprites()
	grid := make([][]string, rows)
	for r := range grid {
		grid[r] = make([]string, cols)
		for c := range grid[r] {
			grid[r][c] = sp.empty
		}
	}
	for _, c := range s.Prey {
		grid[c.Row][c.Col] = sp.rabbit
	}
	for _, c := range s.Predators {
		grid[c.Row][c.Col] = sp.fox
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(strings.Join(row, ""))
		sb.WriteRune('\n')
	}
	return sb.String()
}
