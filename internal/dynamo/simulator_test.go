package dynamo_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/predprey/internal/dynamo"
)

type pairSystem struct{ dim int }

func (p pairSystem) StateDim() int { return p.dim }
func (p pairSystem) Derive(x dynamo.State, _ float64) dynamo.State {
	return make(dynamo.State, len(x))
}

// scriptedIntegrator replays fixed raw samples instead of solving anything.
type scriptedIntegrator struct {
	prey, predators []float64
	err             error
	gotTimes        []float64
}

func (s *scriptedIntegrator) Integrate(_ context.Context, _ dynamo.System, _ dynamo.State, times []float64) ([]dynamo.State, dynamo.Stats, error) {
	s.gotTimes = times
	if s.err != nil {
		return nil, dynamo.Stats{}, s.err
	}
	out := make([]dynamo.State, len(times))
	for i := range times {
		out[i] = dynamo.State{s.prey[i], s.predators[i]}
	}
	return out, dynamo.Stats{Steps: len(times) - 1}, nil
}

type countMetric struct{ n int }

func (c *countMetric) Name() string                  { return "count" }
func (c *countMetric) Observe(dynamo.State, float64) { c.n++ }
func (c *countMetric) Value() float64                { return float64(c.n) }
func (c *countMetric) Reset()                        { c.n = 0 }

var _ = Describe("Simulator", func() {
	const gamma = 0.3

	var (
		integ *scriptedIntegrator
		cfg   dynamo.Config
	)

	BeforeEach(func() {
		integ = &scriptedIntegrator{
			prey:      []float64{40, 35, 30, 25, 20, 15, 10, 5, 3, 2, 2},
			predators: []float64{10, 12, 14, 16, 18, 20, 18, 16, 14, 12, 10},
		}
		cfg = dynamo.Config{
			Duration:   10,
			Points:     11,
			Extinction: dynamo.NewExtinctionPolicy(0.33, gamma),
		}
	})

	run := func() (*dynamo.Trajectory, error) {
		sim := dynamo.New(pairSystem{dim: 2}, integ)
		return sim.Run(context.Background(), dynamo.State{40, 10}, cfg)
	}

	It("samples the integrator on an evenly spaced grid", func() {
		tr, err := run()
		Expect(err).NotTo(HaveOccurred())

		Expect(integ.gotTimes).To(HaveLen(11))
		Expect(tr.Times[0]).To(Equal(0.0))
		Expect(tr.Times[10]).To(Equal(10.0))
		for i := 1; i < tr.Len(); i++ {
			Expect(tr.Times[i]).To(BeNumerically(">", tr.Times[i-1]))
		}
	})

	It("returns the raw solution when no population drops below one", func() {
		tr, err := run()
		Expect(err).NotTo(HaveOccurred())

		Expect(tr.Prey).To(Equal(integ.prey))
		Expect(tr.Predators).To(Equal(integ.predators))
		Expect(tr.Regime).To(Equal(dynamo.Running))
		Expect(tr.ExtinctionIndex).To(Equal(-1))
		_, ok := tr.ExtinctionTime()
		Expect(ok).To(BeFalse())
	})

	It("applies the prey extinction law from the crossing index", func() {
		integ.prey[5] = 0.5

		tr, err := run()
		Expect(err).NotTo(HaveOccurred())

		Expect(tr.Regime).To(Equal(dynamo.PreyExtinct))
		Expect(tr.ExtinctionIndex).To(Equal(5))
		Expect(tr.Prey[:5]).To(Equal(integ.prey[:5]))
		Expect(tr.Predators[:5]).To(Equal(integ.predators[:5]))
		for j := 5; j < tr.Len(); j++ {
			Expect(tr.Prey[j]).To(BeZero())
			want := integ.predators[5] * math.Exp(-gamma*(tr.Times[j]-tr.Times[5]))
			Expect(tr.Predators[j]).To(BeNumerically("~", want, 1e-12))
		}
		at, ok := tr.ExtinctionTime()
		Expect(ok).To(BeTrue())
		Expect(at).To(Equal(5.0))
	})

	It("does not modify the integrator output", func() {
		integ.prey[5] = 0.5
		_, err := run()
		Expect(err).NotTo(HaveOccurred())
		Expect(integ.prey[6]).To(Equal(10.0))
	})

	It("skips the policy when none is configured", func() {
		integ.prey[5] = 0.5
		cfg.Extinction = nil

		tr, err := run()
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.Prey).To(Equal(integ.prey))
		Expect(tr.Regime).To(Equal(dynamo.Running))
	})

	It("feeds every sample to the registered metrics", func() {
		sim := dynamo.New(pairSystem{dim: 2}, integ)
		sim.AddMetric(&countMetric{})

		tr, err := sim.Run(context.Background(), dynamo.State{40, 10}, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.Metrics).To(HaveKeyWithValue("count", 11.0))
	})

	It("propagates solver failures", func() {
		integ.err = &dynamo.SimulationError{Step: 3, Time: 1.5, Reason: dynamo.ErrStepTooSmall}

		_, err := run()
		Expect(errors.Is(err, dynamo.ErrSimulationFailed)).To(BeTrue())
		Expect(errors.Is(err, dynamo.ErrStepTooSmall)).To(BeTrue())
	})

	DescribeTable("rejects invalid configuration before integrating",
		func(mutate func(*dynamo.Config), x0 dynamo.State, dim int) {
			mutate(&cfg)
			sim := dynamo.New(pairSystem{dim: dim}, integ)

			_, err := sim.Run(context.Background(), x0, cfg)
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
			Expect(integ.gotTimes).To(BeNil())
		},
		Entry("one point", func(c *dynamo.Config) { c.Points = 1 }, dynamo.State{1, 1}, 2),
		Entry("zero points", func(c *dynamo.Config) { c.Points = 0 }, dynamo.State{1, 1}, 2),
		Entry("zero duration", func(c *dynamo.Config) { c.Duration = 0 }, dynamo.State{1, 1}, 2),
		Entry("negative duration", func(c *dynamo.Config) { c.Duration = -1 }, dynamo.State{1, 1}, 2),
		Entry("NaN duration", func(c *dynamo.Config) { c.Duration = math.NaN() }, dynamo.State{1, 1}, 2),
		Entry("infinite duration", func(c *dynamo.Config) { c.Duration = math.Inf(1) }, dynamo.State{1, 1}, 2),
		Entry("wrong system size", func(c *dynamo.Config) {}, dynamo.State{1, 1}, 3),
		Entry("wrong state size", func(c *dynamo.Config) {}, dynamo.State{1}, 2),
		Entry("NaN initial state", func(c *dynamo.Config) {}, dynamo.State{math.NaN(), 1}, 2),
	)
})
