// Package analysis compares simulated trajectories with the closed-form
// solution of motion under constant acceleration.
//
//   - [AnalyticHeights]: exact heights at arbitrary time points
//   - [Compare]: residuals, max and RMS error of a numerical trajectory
//   - [GlobalErrorBound]: expected semi-implicit Euler error for a span
//
// The analytic functions never stop at the ground, so they can be
// evaluated past the last accepted state of a trajectory:
//
//	traj, _ := sim.Simulate(p)
//	cmp := analysis.Compare(p, traj)
//	fmt.Printf("max error %.4f m\n", cmp.MaxAbsError)
package analysis
