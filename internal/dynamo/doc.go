// Package dynamo provides the simulation primitives for the predator-prey
// engine.
//
// The package defines the interfaces and types that connect a two-population
// vector field to an adaptive ODE solver and to the extinction policy that
// post-processes the raw solution:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: solver sampling a system on a fixed time grid
//   - [ExtinctionPolicy]: one-shot regime switch applied after integration
//   - [Simulator]: orchestrates a run and produces a [Trajectory]
//
// # Example
//
//	dyn := models.NewLotkaVolterra()
//	sim := dynamo.New(dyn, integrators.NewRK45())
//	traj, err := sim.Run(ctx, dynamo.State{100, 20}, cfg)
//
// # Errors
//
// Invalid configuration fails with [ErrInvalidParameter] before any
// integration work. Solver breakdown is reported as a [*SimulationError]
// that matches [ErrSimulationFailed] under errors.Is.
package dynamo
