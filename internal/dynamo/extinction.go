package dynamo

import "math"

// Regime is the population regime a trajectory ends in.
type Regime int

const (
	Running Regime = iota
	PreyExtinct
	PredatorExtinct
)

func (r Regime) String() string {
	switch r {
	case PreyExtinct:
		return "prey_extinct"
	case PredatorExtinct:
		return "predator_extinct"
	default:
		return "running"
	}
}

func (r Regime) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// ViabilityThreshold is the smallest population treated as alive.
const ViabilityThreshold = 1.0

// ExtinctionPolicy overrides the raw solution once a population falls below
// Threshold. After prey extinction predators decay at PredatorDecay; after
// predator extinction prey grow at PreyGrowth.
type ExtinctionPolicy struct {
	Threshold     float64
	PreyGrowth    float64
	PredatorDecay float64
}

func NewExtinctionPolicy(alpha, gamma float64) *ExtinctionPolicy {
	return &ExtinctionPolicy{
		Threshold:     ViabilityThreshold,
		PreyGrowth:    alpha,
		PredatorDecay: gamma,
	}
}

// Apply scans t in increasing order and rewrites x and y in place from the
// first sample where a population is below the threshold. Prey are checked
// before predators at each index. Only the first crossing is acted on; the
// returned index is -1 when nothing fired.
func (p *ExtinctionPolicy) Apply(t, x, y []float64) (Regime, int) {
	for i := range t {
		if x[i] < p.Threshold {
			y0, t0 := y[i], t[i]
			for j := i; j < len(t); j++ {
				x[j] = 0
				y[j] = y0 * math.Exp(-p.PredatorDecay*(t[j]-t0))
			}
			return PreyExtinct, i
		}
		if y[i] < p.Threshold {
			x0, t0 := x[i], t[i]
			for j := i; j < len(t); j++ {
				y[j] = 0
				x[j] = x0 * math.Exp(p.PreyGrowth*(t[j]-t0))
			}
			return PredatorExtinct, i
		}
	}
	return Running, -1
}
