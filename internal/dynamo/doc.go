// Package dynamo provides the core types of the ball-throw simulator.
//
//   - [KinematicState]: height, vertical velocity and time of the ball
//   - [Params]: immutable configuration of one simulation run
//   - [Trajectory]: accepted states of a run, initial state first
//   - [Stepper]: one-step integrator under constant acceleration
//   - [Metric], [Observer]: hooks fed with every accepted state
//
// # Example
//
//	p := dynamo.Params{InitialHeight: 10, InitialVelocity: 2.5, Acceleration: -9.81, Duration: 5, TimeStep: 0.1}
//	traj, err := sim.Simulate(p)
//	if errors.Is(err, dynamo.ErrInvalidConfiguration) {
//	    // bad time step or duration
//	}
package dynamo
