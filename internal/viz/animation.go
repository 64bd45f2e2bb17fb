package viz

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/experiment"
)

type TickMsg time.Time

var activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)

type AnimationOptions struct {
	Width  int
	Height int
	FPS    int
	Seed   int64
	Theme  Theme

	// Params enables live tuning: the rates can be changed from the
	// keyboard and the trajectory is recomputed with Solver.
	Params *experiment.Params
	Solver experiment.SolverOptions
}

// Animation plays a finished trajectory one sample per frame.
type Animation struct {
	tr      *dynamo.Trajectory
	opts    AnimationOptions
	rng     *rand.Rand
	frame   int
	running bool
	scene   Scene
	phase   *Canvas
	theme   Theme

	params    *experiment.Params
	paramKeys []string
	selected  int
	status    string
}

func NewAnimation(tr *dynamo.Trajectory, opts AnimationOptions) Animation {
	if opts.FPS <= 0 {
		opts.FPS = 10
	}
	if opts.Width <= 0 {
		opts.Width = 60
	}
	if opts.Height <= 0 {
		opts.Height = 20
	}
	if opts.Theme.Name == "" {
		opts.Theme = ThemeDefault
	}
	a := Animation{
		tr:      tr,
		opts:    opts,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		running: true,
		phase:   NewCanvas(24, 8),
		theme:   opts.Theme,
	}
	if opts.Params != nil {
		p := *opts.Params
		a.params = &p
		for k := range p.Model().GetParams() {
			a.paramKeys = append(a.paramKeys, k)
		}
		sort.Strings(a.paramKeys)
	}
	a.render()
	return a
}

func (a Animation) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(a.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (a Animation) Init() tea.Cmd { return a.tick() }

func (a Animation) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return a, tea.Quit
		case " ":
			a.running = !a.running
		case "r":
			a.rng = rand.New(rand.NewSource(a.opts.Seed))
			a.frame = 0
			a.running = true
			a.render()
		case "right", "l":
			a.seek(1)
		case "left", "h":
			a.seek(-1)
		case "t":
			a.theme = a.theme.next()
		case "tab":
			if len(a.paramKeys) > 0 {
				a.selected = (a.selected + 1) % len(a.paramKeys)
			}
		case "up", "k":
			a.adjustParam(1.05)
		case "down", "j":
			a.adjustParam(0.95)
		}
	case TickMsg:
		if a.running {
			if a.frame < a.tr.Len()-1 {
				a.frame++
				a.render()
			} else {
				a.running = false
			}
		}
		return a, a.tick()
	}
	return a, nil
}

func (a *Animation) seek(dir int) {
	a.running = false
	a.frame = max(0, min(a.tr.Len()-1, a.frame+dir))
	a.render()
}

// adjustParam scales the selected rate and recomputes the trajectory,
// keeping the current frame.
func (a *Animation) adjustParam(factor float64) {
	if a.params == nil || len(a.paramKeys) == 0 {
		return
	}
	key := a.paramKeys[a.selected]
	model := a.params.Model()
	var tunable dynamo.Configurable = model
	if err := tunable.SetParam(key, model.GetParams()[key]*factor); err != nil {
		a.status = err.Error()
		return
	}

	p := *a.params
	p.Alpha, p.Beta, p.Delta, p.Gamma = model.Alpha, model.Beta, model.Delta, model.Gamma
	e, err := experiment.New(p, a.opts.Solver)
	if err != nil {
		a.status = err.Error()
		return
	}
	tr, err := e.Run(context.Background())
	if err != nil {
		a.status = err.Error()
		return
	}

	a.params, a.tr, a.status = &p, tr, ""
	a.frame = min(a.frame, tr.Len()-1)
	a.render()
}

// Params returns the rates currently driving the animation, if tunable.
func (a Animation) Params() (experiment.Params, bool) {
	if a.params == nil {
		return experiment.Params{}, false
	}
	return *a.params, true
}

// Frame is the index of the sample on screen.
func (a Animation) Frame() int { return a.frame }

func (a Animation) Scene() Scene { return a.scene }

func (a *Animation) render() {
	if a.tr.Len() == 0 {
		return
	}
	a.scene = BuildScene(a.tr, a.frame, a.rng, a.opts.Width, a.opts.Height)
	a.drawPhase()
}

// drawPhase traces prey against predators up to the current frame.
func (a *Animation) drawPhase() {
	a.phase.Reset()
	a.phase.Trace(a.tr.Prey, a.tr.Predators, a.frame, a.tr.MaxPopulation())
}

func (a Animation) View() string {
	field := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.theme.Border).
		Render(strings.TrimSuffix(a.scene.Render(a.opts.Width, a.opts.Height), "\n"))

	title := lipgloss.NewStyle().Bold(true).Foreground(a.theme.Text).Render(a.scene.Title)

	var side strings.Builder
	side.WriteString(MetricLabel.Render("Rabbits") + lipgloss.NewStyle().Foreground(a.theme.Rabbit).Render(humanize.Comma(int64(a.scene.Rabbits))) + "\n")
	side.WriteString(MetricLabel.Render("Foxes") + lipgloss.NewStyle().Foreground(a.theme.Fox).Render(humanize.Comma(int64(a.scene.Foxes))) + "\n")
	side.WriteString(MetricLabel.Render("Regime") + MetricValue.Render(a.regimeAt(a.frame)) + "\n\n")
	side.WriteString(Subtle.Render("phase (prey → , predators ↑)") + "\n")
	side.WriteString(lipgloss.NewStyle().Foreground(a.theme.Trace).Render(strings.TrimSuffix(a.phase.String(), "\n")) + "\n\n")

	progress := 1.0
	if n := a.tr.Len() - 1; n > 0 {
		progress = float64(a.frame) / float64(n)
	}
	side.WriteString(ProgressBar(progress, 24, lipgloss.NewStyle().Foreground(a.theme.Rabbit)) + "\n")

	status := "PLAYING"
	if !a.running {
		status = "PAUSED"
	}
	side.WriteString(Subtle.Render(status) + "\n")
	if a.status != "" {
		side.WriteString(lipgloss.NewStyle().Foreground(a.theme.Alert).Render(a.status) + "\n")
	}

	if a.params != nil {
		side.WriteString("\nPARAMETERS\n")
		values := a.params.Model().GetParams()
		for i, k := range a.paramKeys {
			line := fmt.Sprintf("%-6s %.4f", k, values[k])
			if i == a.selected {
				side.WriteString(activeParamStyle.Render("> "+line) + "\n")
			} else {
				side.WriteString("  " + Subtle.Render(line) + "\n")
			}
		}
	}

	hints := "SP:Pause R:Restart T:Theme\n←→:Step Q:Quit"
	if a.params != nil {
		hints += "\nTab:Param ↑↓:Tune"
	}
	side.WriteString("\n" + KeyHint.Render(hints))

	body := lipgloss.JoinHorizontal(lipgloss.Top, field, lipgloss.NewStyle().Padding(0, 2).Render(side.String()))
	return title + "\n" + body + "\n"
}

func (a Animation) regimeAt(i int) string {
	if a.tr.ExtinctionIndex >= 0 && i >= a.tr.ExtinctionIndex {
		return a.tr.Regime.String()
	}
	return dynamo.Running.String()
}
