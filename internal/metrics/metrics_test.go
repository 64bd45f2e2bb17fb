package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/predprey/internal/dynamo"
)

func TestPeak(t *testing.T) {
	m := NewPeak("peak_prey", Prey)

	for i, v := range []float64{10, 40, 25} {
		m.Observe(dynamo.State{v, 1}, float64(i))
	}

	if m.Value() != 40 {
		t.Errorf("expected peak 40, got %f", m.Value())
	}
	if m.Name() != "peak_prey" {
		t.Errorf("unexpected name %q", m.Name())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero peak after reset")
	}
}

func TestMean(t *testing.T) {
	m := NewMean("mean_predators", Predators)

	// Linear ramp 0 -> 10 over [0, 2]: time average is 5.
	m.Observe(dynamo.State{0, 0}, 0)
	m.Observe(dynamo.State{0, 5}, 1)
	m.Observe(dynamo.State{0, 10}, 2)

	if math.Abs(m.Value()-5) > 1e-12 {
		t.Errorf("expected mean 5, got %f", m.Value())
	}

	m.Reset()
	m.Observe(dynamo.State{0, 7}, 3)
	if m.Value() != 7 {
		t.Errorf("expected single-sample mean 7, got %f", m.Value())
	}
}

type quadratic struct{}

func (quadratic) Energy(x dynamo.State) float64 {
	if x[0] <= 0 {
		return math.Inf(1)
	}
	return x[0]*x[0] + x[1]*x[1]
}

func TestInvariantDrift(t *testing.T) {
	m := NewInvariantDrift(quadratic{})

	m.Observe(dynamo.State{1, 1}, 0)
	m.Observe(dynamo.State{1, 1.1}, 1)
	m.Observe(dynamo.State{0, 9}, 2)

	want := (1 + 1.21 - 2) / 2.0
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("expected drift %f, got %f", want, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}
