// Package analysis provides tools for characterizing a predator-prey run.
//
//   - [DominantPeriod]: strongest cycle length from the power spectrum
//   - [UpCrossings] and [MeanPeriod]: cycle length from level crossings
//   - [NewPhasePortrait]: prey against predators, rendered as ASCII
//
// # Cycle Length
//
// Near the coexistence equilibrium orbits have period 2*pi/sqrt(alpha*gamma);
// larger orbits are slower:
//
//	period, ok := analysis.DominantPeriod(tr.Prey, tr.Times[1]-tr.Times[0])
//	if ok {
//	    // one full boom and bust every period time units
//	}
package analysis
