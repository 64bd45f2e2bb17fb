package metrics

import (
	"math"

	"github.com/san-kum/predprey/internal/dynamo"
)

// Population indices into a trajectory sample.
const (
	Prey      = 0
	Predators = 1
)

type Peak struct {
	name  string
	index int
	max   float64
}

func NewPeak(name string, index int) *Peak {
	return &Peak{name: name, index: index}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(x dynamo.State, t float64) {
	p.max = math.Max(p.max, x[p.index])
}

func (p *Peak) Value() float64 { return p.max }

func (p *Peak) Reset() { p.max = 0 }

// Mean is the time-weighted (trapezoidal) average of one population.
type Mean struct {
	name     string
	index    int
	area     float64
	lastT    float64
	lastV    float64
	started  bool
	duration float64
}

func NewMean(name string, index int) *Mean {
	return &Mean{name: name, index: index}
}

func (m *Mean) Name() string { return m.name }

func (m *Mean) Observe(x dynamo.State, t float64) {
	v := x[m.index]
	if m.started {
		dt := t - m.lastT
		m.area += 0.5 * (v + m.lastV) * dt
		m.duration += dt
	}
	m.lastT, m.lastV, m.started = t, v, true
}

func (m *Mean) Value() float64 {
	if m.duration == 0 {
		return m.lastV
	}
	return m.area / m.duration
}

func (m *Mean) Reset() {
	m.area, m.duration = 0, 0
	m.lastT, m.lastV = 0, 0
	m.started = false
}
