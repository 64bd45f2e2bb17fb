package experiment

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/integrators"
	"github.com/san-kum/predprey/internal/metrics"
	"github.com/san-kum/predprey/internal/models"
)

// Params are the inputs of one simulation request.
type Params struct {
	Alpha  float64 `yaml:"alpha" json:"alpha"`
	Beta   float64 `yaml:"beta" json:"beta"`
	Delta  float64 `yaml:"delta" json:"delta"`
	Gamma  float64 `yaml:"gamma" json:"gamma"`
	X0     float64 `yaml:"x0" json:"x0"`
	Y0     float64 `yaml:"y0" json:"y0"`
	TMax   float64 `yaml:"t_max" json:"t_max"`
	Points int     `yaml:"points" json:"points"`
}

func DefaultParams() Params {
	return Params{
		Alpha:  0.33,
		Beta:   0.02,
		Delta:  0.02,
		Gamma:  0.3,
		X0:     100,
		Y0:     20,
		TMax:   10,
		Points: 100,
	}
}

func (p Params) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"alpha", p.Alpha},
		{"beta", p.Beta},
		{"delta", p.Delta},
		{"gamma", p.Gamma},
		{"x0", p.X0},
		{"y0", p.Y0},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number, got %g", dynamo.ErrInvalidParameter, f.name, f.value)
		}
		if f.value < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %g", dynamo.ErrInvalidParameter, f.name, f.value)
		}
	}
	if math.IsNaN(p.TMax) || math.IsInf(p.TMax, 0) || p.TMax <= 0 {
		return fmt.Errorf("%w: t_max must be positive, got %g", dynamo.ErrInvalidParameter, p.TMax)
	}
	if p.Points < 2 {
		return fmt.Errorf("%w: points must be at least 2, got %d", dynamo.ErrInvalidParameter, p.Points)
	}
	return nil
}

// Model returns the vector field for these rates.
func (p Params) Model() *models.LotkaVolterra {
	return &models.LotkaVolterra{Alpha: p.Alpha, Beta: p.Beta, Delta: p.Delta, Gamma: p.Gamma}
}

// SolverOptions tune the adaptive integrator. Zero values use its defaults.
type SolverOptions struct {
	RTol     float64 `yaml:"rtol" json:"rtol"`
	ATol     float64 `yaml:"atol" json:"atol"`
	MaxSteps int     `yaml:"max_steps" json:"max_steps"`
	MaxStep  float64 `yaml:"max_step" json:"max_step,omitempty"`
}

func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		RTol:     1e-3,
		ATol:     1e-6,
		MaxSteps: 1_000_000,
	}
}

func (o SolverOptions) Validate() error {
	for _, v := range []float64{o.RTol, o.ATol, o.MaxStep} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: solver options %+v", dynamo.ErrInvalidParameter, o)
		}
	}
	if o.MaxSteps < 0 {
		return fmt.Errorf("%w: max_steps must be non-negative, got %d", dynamo.ErrInvalidParameter, o.MaxSteps)
	}
	return nil
}

type Experiment struct {
	params    Params
	model     *models.LotkaVolterra
	simulator *dynamo.Simulator
}

// New validates p and wires the model, solver and trajectory metrics.
func New(p Params, opts SolverOptions) (*Experiment, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	integ := integrators.NewRK45()
	if opts.RTol > 0 {
		integ.RTol = opts.RTol
	}
	if opts.ATol > 0 {
		integ.ATol = opts.ATol
	}
	if opts.MaxSteps > 0 {
		integ.MaxSteps = opts.MaxSteps
	}
	integ.MaxStep = opts.MaxStep

	model := p.Model()
	sim := dynamo.New(model, integ)
	sim.AddMetric(metrics.NewPeak("peak_prey", metrics.Prey))
	sim.AddMetric(metrics.NewPeak("peak_predators", metrics.Predators))
	sim.AddMetric(metrics.NewMean("mean_prey", metrics.Prey))
	sim.AddMetric(metrics.NewMean("mean_predators", metrics.Predators))
	sim.AddMetric(metrics.NewInvariantDrift(model))

	return &Experiment{params: p, model: model, simulator: sim}, nil
}

func (e *Experiment) Params() Params { return e.params }

func (e *Experiment) Model() *models.LotkaVolterra { return e.model }

func (e *Experiment) Run(ctx context.Context) (*dynamo.Trajectory, error) {
	cfg := dynamo.Config{
		Duration:   e.params.TMax,
		Points:     e.params.Points,
		Extinction: dynamo.NewExtinctionPolicy(e.params.Alpha, e.params.Gamma),
	}
	return e.simulator.Run(ctx, dynamo.State{e.params.X0, e.params.Y0}, cfg)
}

// Simulate runs one predator-prey simulation with the default solver.
func Simulate(p Params) (*dynamo.Trajectory, error) {
	e, err := New(p, DefaultSolverOptions())
	if err != nil {
		return nil, err
	}
	return e.Run(context.Background())
}
