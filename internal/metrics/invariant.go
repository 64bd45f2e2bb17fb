package metrics

import (
	"math"

	"github.com/san-kum/predprey/internal/dynamo"
)

// InvariantDrift tracks the largest relative change of a conserved quantity
// while it is defined. Samples where the quantity is not finite (an extinct
// population) are ignored.
type InvariantDrift struct {
	name    string
	sys     dynamo.Hamiltonian
	initial float64
	drift   float64
	samples int
}

func NewInvariantDrift(sys dynamo.Hamiltonian) *InvariantDrift {
	return &InvariantDrift{
		name: "invariant_drift",
		sys:  sys,
	}
}

func (e *InvariantDrift) Name() string { return e.name }

func (e *InvariantDrift) Observe(x dynamo.State, t float64) {
	energy := e.sys.Energy(x)
	if math.IsNaN(energy) || math.IsInf(energy, 0) {
		return
	}

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.drift = math.Max(e.drift, drift)
	}
}

func (e *InvariantDrift) Value() float64 { return e.drift }

func (e *InvariantDrift) Reset() {
	e.initial = 0
	e.drift = 0
	e.samples = 0
}
