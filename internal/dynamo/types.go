package dynamo

import (
	"context"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Hamiltonian is implemented by systems with a conserved quantity.
type Hamiltonian interface {
	Energy(x State) float64
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Stats counts solver work for one run.
type Stats struct {
	Steps       int `json:"steps"`
	Rejected    int `json:"rejected"`
	Evaluations int `json:"evaluations"`
}

// Integrator solves dyn from x0 at times[0] and returns the solution sampled
// at every entry of times, which must be strictly increasing.
type Integrator interface {
	Integrate(ctx context.Context, dyn System, x0 State, times []float64) ([]State, Stats, error)
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Config struct {
	Duration   float64
	Points     int
	Extinction *ExtinctionPolicy
}

func DefaultConfig() Config {
	return Config{
		Duration: 10.0,
		Points:   100,
	}
}

// Trajectory is the output of one run. Times, Prey and Predators always have
// the same length. It is never modified after Run returns.
type Trajectory struct {
	Times     []float64
	Prey      []float64
	Predators []float64

	// Regime is the terminal regime of the run; ExtinctionIndex is the first
	// sample governed by the extinction law, or -1.
	Regime          Regime
	ExtinctionIndex int

	Stats   Stats
	Metrics map[string]float64
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

// At returns the population pair at sample i.
func (tr *Trajectory) At(i int) State {
	return State{tr.Prey[i], tr.Predators[i]}
}

// ExtinctionTime returns the time of the regime switch, if one happened.
func (tr *Trajectory) ExtinctionTime() (float64, bool) {
	if tr.ExtinctionIndex < 0 {
		return 0, false
	}
	return tr.Times[tr.ExtinctionIndex], true
}

// MaxPopulation returns the largest count of either species over the run.
func (tr *Trajectory) MaxPopulation() float64 {
	m := 0.0
	for i := range tr.Times {
		m = math.Max(m, math.Max(tr.Prey[i], tr.Predators[i]))
	}
	return m
}
