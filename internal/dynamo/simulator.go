package dynamo

import (
	"context"
	"math"
)

type Simulator struct {
	dyn        System
	integrator Integrator
	metrics    []Metric
}

func New(dyn System, integrator Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]Metric, 0),
	}
}

func (s *Simulator) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

// Run integrates the two-population system from x0 over [0, cfg.Duration],
// sampled at cfg.Points evenly spaced times, then applies the extinction
// policy if one is configured.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Trajectory, error) {
	if err := s.validateConfig(x0, cfg); err != nil {
		return nil, err
	}

	times := Linspace(0, cfg.Duration, cfg.Points)
	if !StrictlyIncreasing(times) {
		return nil, invalidParam("duration %g too small for %d points", cfg.Duration, cfg.Points)
	}

	states, stats, err := s.integrator.Integrate(ctx, s.dyn, x0, times)
	if err != nil {
		return nil, err
	}
	if len(states) != len(times) {
		return nil, &SimulationError{
			Step:   stats.Steps,
			Time:   cfg.Duration,
			Reason: ErrDimensionMismatch,
		}
	}

	tr := &Trajectory{
		Times:           times,
		Prey:            make([]float64, len(times)),
		Predators:       make([]float64, len(times)),
		Regime:          Running,
		ExtinctionIndex: -1,
		Stats:           stats,
		Metrics:         make(map[string]float64),
	}
	for i, x := range states {
		tr.Prey[i] = x[0]
		tr.Predators[i] = x[1]
	}

	if cfg.Extinction != nil {
		tr.Regime, tr.ExtinctionIndex = cfg.Extinction.Apply(tr.Times, tr.Prey, tr.Predators)
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	for i, t := range tr.Times {
		x := tr.At(i)
		for _, m := range s.metrics {
			m.Observe(x, t)
		}
	}
	for _, m := range s.metrics {
		tr.Metrics[m.Name()] = m.Value()
	}

	return tr, nil
}

func (s *Simulator) validateConfig(x0 State, cfg Config) error {
	if cfg.Points < 2 {
		return invalidParam("points must be at least 2, got %d", cfg.Points)
	}
	if math.IsNaN(cfg.Duration) || math.IsInf(cfg.Duration, 0) || cfg.Duration <= 0 {
		return invalidParam("duration must be positive, got %g", cfg.Duration)
	}
	if s.dyn.StateDim() != 2 || len(x0) != 2 {
		return invalidParam("%v: want 2 populations, system has %d and state has %d",
			ErrDimensionMismatch, s.dyn.StateDim(), len(x0))
	}
	if !x0.IsValid() {
		return invalidParam("initial state %v is not finite", []float64(x0))
	}
	if p := cfg.Extinction; p != nil {
		for _, v := range []float64{p.Threshold, p.PreyGrowth, p.PredatorDecay} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return invalidParam("extinction policy %+v is not finite", *p)
			}
		}
	}
	return nil
}
