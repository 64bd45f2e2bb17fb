package models

import (
	"fmt"
	"math"

	"github.com/san-kum/predprey/internal/dynamo"
)

// LotkaVolterra is the classic predator-prey system. State is
// (prey, predators).
type LotkaVolterra struct {
	Alpha float64 // prey growth rate
	Beta  float64 // predation rate
	Delta float64 // predator growth per prey eaten
	Gamma float64 // predator death rate
}

func NewLotkaVolterra() *LotkaVolterra {
	return &LotkaVolterra{
		Alpha: 0.33,
		Beta:  0.02,
		Delta: 0.02,
		Gamma: 0.3,
	}
}

func (l *LotkaVolterra) StateDim() int { return 2 }

// Derive returns (dx/dt, dy/dt). Negative populations are passed through
// unchanged; the solver may probe them between samples.
func (l *LotkaVolterra) Derive(s dynamo.State, _ float64) dynamo.State {
	x, y := s[0], s[1]
	return dynamo.State{
		l.Alpha*x - l.Beta*x*y,
		l.Delta*x*y - l.Gamma*y,
	}
}

// Energy returns the first integral delta*x - gamma*ln(x) + beta*y - alpha*ln(y),
// constant along exact orbits. NaN outside the positive quadrant.
func (l *LotkaVolterra) Energy(s dynamo.State) float64 {
	x, y := s[0], s[1]
	if x <= 0 || y <= 0 {
		return math.NaN()
	}
	return l.Delta*x - l.Gamma*math.Log(x) + l.Beta*y - l.Alpha*math.Log(y)
}

// Equilibrium returns the coexistence fixed point (gamma/delta, alpha/beta).
func (l *LotkaVolterra) Equilibrium() (dynamo.State, bool) {
	if l.Beta == 0 || l.Delta == 0 {
		return nil, false
	}
	return dynamo.State{l.Gamma / l.Delta, l.Alpha / l.Beta}, true
}

// SmallOscillationPeriod is 2*pi/sqrt(alpha*gamma), the period of orbits
// close to the equilibrium.
func (l *LotkaVolterra) SmallOscillationPeriod() (float64, bool) {
	if l.Alpha <= 0 || l.Gamma <= 0 {
		return 0, false
	}
	return 2 * math.Pi / math.Sqrt(l.Alpha*l.Gamma), true
}

func (l *LotkaVolterra) DefaultState() dynamo.State { return dynamo.State{100, 20} }

func (l *LotkaVolterra) GetParams() map[string]float64 {
	return map[string]float64{"alpha": l.Alpha, "beta": l.Beta, "delta": l.Delta, "gamma": l.Gamma}
}

func (l *LotkaVolterra) SetParam(n string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %s must be a non-negative number, got %g", dynamo.ErrInvalidParameter, n, v)
	}
	switch n {
	case "alpha":
		l.Alpha = v
	case "beta":
		l.Beta = v
	case "delta":
		l.Delta = v
	case "gamma":
		l.Gamma = v
	default:
		return fmt.Errorf("%w: unknown parameter %q", dynamo.ErrInvalidParameter, n)
	}
	return nil
}
