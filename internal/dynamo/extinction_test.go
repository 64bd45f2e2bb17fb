package dynamo_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/predprey/internal/dynamo"
)

var _ = Describe("ExtinctionPolicy", func() {
	const alpha, gamma = 0.5, 0.3

	var (
		policy *dynamo.ExtinctionPolicy
		t      []float64
		x, y   []float64
	)

	BeforeEach(func() {
		policy = dynamo.NewExtinctionPolicy(alpha, gamma)
		t = dynamo.Linspace(0, 9, 10)
		x = []float64{10, 9, 8, 7, 6, 5, 6, 7, 8, 9}
		y = []float64{5, 6, 7, 8, 9, 10, 9, 8, 7, 6}
	})

	It("leaves the series untouched when nothing crosses the threshold", func() {
		wantX := append([]float64(nil), x...)
		wantY := append([]float64(nil), y...)

		regime, idx := policy.Apply(t, x, y)

		Expect(regime).To(Equal(dynamo.Running))
		Expect(idx).To(Equal(-1))
		Expect(x).To(Equal(wantX))
		Expect(y).To(Equal(wantY))
	})

	It("zeroes prey and decays predators from the first prey crossing", func() {
		x[5] = 0.5
		before := append([]float64(nil), x[:5]...)
		beforeY := append([]float64(nil), y[:5]...)

		regime, idx := policy.Apply(t, x, y)

		Expect(regime).To(Equal(dynamo.PreyExtinct))
		Expect(idx).To(Equal(5))
		Expect(x[:5]).To(Equal(before))
		Expect(y[:5]).To(Equal(beforeY))
		for j := 5; j < len(t); j++ {
			Expect(x[j]).To(BeZero())
			Expect(y[j]).To(BeNumerically("~", 10*math.Exp(-gamma*(t[j]-t[5])), 1e-12))
		}
	})

	It("zeroes predators and grows prey from the first predator crossing", func() {
		y[3] = 0.2

		regime, idx := policy.Apply(t, x, y)

		Expect(regime).To(Equal(dynamo.PredatorExtinct))
		Expect(idx).To(Equal(3))
		for j := 3; j < len(t); j++ {
			Expect(y[j]).To(BeZero())
			Expect(x[j]).To(BeNumerically("~", 7*math.Exp(alpha*(t[j]-t[3])), 1e-9))
		}
	})

	It("prefers prey extinction when both populations cross at the same index", func() {
		x[4], y[4] = 0.9, 0.4

		regime, idx := policy.Apply(t, x, y)

		Expect(regime).To(Equal(dynamo.PreyExtinct))
		Expect(idx).To(Equal(4))
		Expect(x[4]).To(BeZero())
		Expect(y[4]).To(Equal(0.4))
		Expect(y[9]).To(BeNumerically("~", 0.4*math.Exp(-gamma*5), 1e-12))
	})

	It("acts only on the earliest crossing", func() {
		y[2] = 0.5
		x[6] = 0.1

		regime, idx := policy.Apply(t, x, y)

		Expect(regime).To(Equal(dynamo.PredatorExtinct))
		Expect(idx).To(Equal(2))
		Expect(x[6]).To(BeNumerically("~", 8*math.Exp(alpha*4), 1e-9))
	})

	It("never reflects a recovery after the switch", func() {
		x[5] = 0.5
		x[6] = 50

		policy.Apply(t, x, y)

		Expect(x[6]).To(BeZero())
	})

	It("fires at the first sample", func() {
		x[0] = 0

		regime, idx := policy.Apply(t, x, y)

		Expect(regime).To(Equal(dynamo.PreyExtinct))
		Expect(idx).To(Equal(0))
		Expect(y[0]).To(Equal(5.0))
	})
})

var _ = DescribeTable("Regime.String",
	func(r dynamo.Regime, want string) {
		Expect(r.String()).To(Equal(want))
	},
	Entry("running", dynamo.Running, "running"),
	Entry("prey", dynamo.PreyExtinct, "prey_extinct"),
	Entry("predator", dynamo.PredatorExtinct, "predator_extinct"),
)
