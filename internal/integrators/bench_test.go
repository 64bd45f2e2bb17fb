package integrators

import (
	"context"
	"testing"

	"github.com/san-kum/predprey/internal/dynamo"
)

type benchDynamics struct{}

func (b *benchDynamics) StateDim() int { return 2 }
func (b *benchDynamics) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{0.33*x[0] - 0.02*x[0]*x[1], 0.02*x[0]*x[1] - 0.3*x[1]}
}

func BenchmarkRK45_Step(b *testing.B) {
	integrator := NewRK45()
	dyn := &benchDynamics{}
	x := dynamo.State{40.0, 10.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkRK45_Integrate(b *testing.B) {
	integrator := NewRK45()
	dyn := &benchDynamics{}
	times := dynamo.Linspace(0, 100, 1000)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := integrator.Integrate(ctx, dyn, dynamo.State{40, 10}, times); err != nil {
			b.Fatal(err)
		}
	}
}
