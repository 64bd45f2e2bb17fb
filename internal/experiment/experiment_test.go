package experiment

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/integrators"
)

func TestSimulate_DefaultScenario(t *testing.T) {
	tr, err := Simulate(DefaultParams())
	require.NoError(t, err)

	require.Equal(t, 100, tr.Len())
	assert.Len(t, tr.Prey, 100)
	assert.Len(t, tr.Predators, 100)
	assert.Equal(t, 0.0, tr.Times[0])
	assert.Equal(t, 10.0, tr.Times[99])
	for i := 1; i < tr.Len(); i++ {
		assert.Greater(t, tr.Times[i], tr.Times[i-1], "time grid must be strictly increasing at %d", i)
	}
	assert.Equal(t, 100.0, tr.Prey[0])
	assert.Equal(t, 20.0, tr.Predators[0])
	assert.Positive(t, tr.Stats.Steps)
}

func TestSimulate_TimeGrid(t *testing.T) {
	for _, tc := range []struct {
		tMax   float64
		points int
	}{
		{10, 2},
		{10, 100},
		{0.5, 7},
		{100, 1000},
	} {
		p := DefaultParams()
		p.TMax, p.Points = tc.tMax, tc.points

		tr, err := Simulate(p)
		require.NoError(t, err)

		require.Len(t, tr.Times, tc.points)
		assert.Equal(t, 0.0, tr.Times[0])
		assert.Equal(t, tc.tMax, tr.Times[tc.points-1])
		for i := 1; i < tc.points; i++ {
			require.Greater(t, tr.Times[i], tr.Times[i-1])
		}
	}
}

func TestSimulate_PureExponentialGrowth(t *testing.T) {
	p := Params{Alpha: 0.2, X0: 100, Y0: 20, TMax: 10, Points: 50}

	e, err := New(p, SolverOptions{RTol: 1e-9, ATol: 1e-9})
	require.NoError(t, err)
	tr, err := e.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dynamo.Running, tr.Regime)
	for i, ti := range tr.Times {
		want := 100 * math.Exp(0.2*ti)
		assert.InDelta(t, want, tr.Prey[i], 1e-6*want, "prey at t=%g", ti)
		assert.InDelta(t, 20.0, tr.Predators[i], 1e-9, "predators at t=%g", ti)
	}

	// Default tolerances still track the closed form closely.
	tr, err = Simulate(p)
	require.NoError(t, err)
	last := tr.Len() - 1
	assert.InEpsilon(t, 100*math.Exp(2), tr.Prey[last], 1e-2)
}

func TestSimulate_MatchesRawSolutionWithoutCrossing(t *testing.T) {
	p := Params{Alpha: 1, Beta: 0.1, Delta: 0.075, Gamma: 1.5, X0: 10, Y0: 5, TMax: 15, Points: 120}

	tr, err := Simulate(p)
	require.NoError(t, err)
	require.Equal(t, dynamo.Running, tr.Regime)
	require.Equal(t, -1, tr.ExtinctionIndex)

	raw, _, err := integrators.NewRK45().Integrate(context.Background(), p.Model(), dynamo.State{p.X0, p.Y0}, tr.Times)
	require.NoError(t, err)
	for i := range raw {
		assert.Equal(t, raw[i][0], tr.Prey[i], "prey sample %d", i)
		assert.Equal(t, raw[i][1], tr.Predators[i], "predator sample %d", i)
	}

	assert.Less(t, tr.Metrics["invariant_drift"], 5e-2)
}

func TestSimulate_PreyExtinctAtStart(t *testing.T) {
	p := Params{Alpha: 0.33, Beta: 0.02, Delta: 0.02, Gamma: 0.3, X0: 0.5, Y0: 20, TMax: 10, Points: 11}

	tr, err := Simulate(p)
	require.NoError(t, err)

	assert.Equal(t, dynamo.PreyExtinct, tr.Regime)
	assert.Equal(t, 0, tr.ExtinctionIndex)
	for i, ti := range tr.Times {
		assert.Zero(t, tr.Prey[i])
		assert.InDelta(t, 20*math.Exp(-0.3*ti), tr.Predators[i], 1e-12)
	}
}

func TestSimulate_PredatorsExtinctAtStart(t *testing.T) {
	p := Params{Alpha: 0.33, Beta: 0.02, Delta: 0.02, Gamma: 0.3, X0: 100, Y0: 0, TMax: 10, Points: 11}

	tr, err := Simulate(p)
	require.NoError(t, err)

	assert.Equal(t, dynamo.PredatorExtinct, tr.Regime)
	for i, ti := range tr.Times {
		assert.Zero(t, tr.Predators[i])
		assert.InDelta(t, 100*math.Exp(0.33*ti), tr.Prey[i], 1e-9)
	}
}

func TestSimulate_BothBelowThresholdPrefersPrey(t *testing.T) {
	p := Params{Alpha: 0.33, Beta: 0.02, Delta: 0.02, Gamma: 0.3, X0: 0.5, Y0: 0.5, TMax: 10, Points: 11}

	tr, err := Simulate(p)
	require.NoError(t, err)
	assert.Equal(t, dynamo.PreyExtinct, tr.Regime)
	assert.InDelta(t, 0.5*math.Exp(-3), tr.Predators[10], 1e-12)
}

func TestSimulate_Metrics(t *testing.T) {
	tr, err := Simulate(DefaultParams())
	require.NoError(t, err)

	for _, key := range []string{"peak_prey", "peak_predators", "mean_prey", "mean_predators", "invariant_drift"} {
		assert.Contains(t, tr.Metrics, key)
	}
	assert.GreaterOrEqual(t, tr.Metrics["peak_prey"], 100.0)
}

func TestSimulate_InvalidParameter(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"one point", func(p *Params) { p.Points = 1 }},
		{"zero horizon", func(p *Params) { p.TMax = 0 }},
		{"negative horizon", func(p *Params) { p.TMax = -5 }},
		{"NaN horizon", func(p *Params) { p.TMax = math.NaN() }},
		{"negative alpha", func(p *Params) { p.Alpha = -0.1 }},
		{"NaN beta", func(p *Params) { p.Beta = math.NaN() }},
		{"infinite prey", func(p *Params) { p.X0 = math.Inf(1) }},
		{"negative predators", func(p *Params) { p.Y0 = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)

			tr, err := Simulate(p)
			assert.ErrorIs(t, err, dynamo.ErrInvalidParameter)
			assert.Nil(t, tr)
		})
	}
}

func TestNew_InvalidSolverOptions(t *testing.T) {
	_, err := New(DefaultParams(), SolverOptions{RTol: -1})
	assert.ErrorIs(t, err, dynamo.ErrInvalidParameter)

	_, err = New(DefaultParams(), SolverOptions{MaxSteps: -1})
	assert.ErrorIs(t, err, dynamo.ErrInvalidParameter)
}

func TestSimulate_StepBudgetSurfacesFailure(t *testing.T) {
	e, err := New(DefaultParams(), SolverOptions{MaxSteps: 1, MaxStep: 0.001})
	require.NoError(t, err)

	_, err = e.Run(context.Background())
	assert.ErrorIs(t, err, dynamo.ErrSimulationFailed)
}
