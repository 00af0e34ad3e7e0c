package integrators

import "github.com/san-kum/ballsim/internal/dynamo"

// EulerStep advances x by one step of its rate of change: x + dt*dxdt.
func EulerStep(x, dxdt, dt float64) float64 {
	return x + dt*dxdt
}

// EvolveEquationsOfMotion advances s by dt under constant acceleration.
// The height update uses the already updated velocity.
func EvolveEquationsOfMotion(s dynamo.KinematicState, acceleration, dt float64) dynamo.KinematicState {
	velocity := EulerStep(s.Velocity, acceleration, dt)
	return dynamo.KinematicState{
		Height:   EulerStep(s.Height, velocity, dt),
		Velocity: velocity,
		Time:     s.Time + dt,
	}
}

// SemiImplicitEuler is the symplectic Euler stepper used by default.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) Step(s dynamo.KinematicState, acceleration, dt float64) dynamo.KinematicState {
	return EvolveEquationsOfMotion(s, acceleration, dt)
}

// Euler is the forward Euler stepper: the height is advanced with the
// velocity from the start of the step.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(s dynamo.KinematicState, acceleration, dt float64) dynamo.KinematicState {
	return dynamo.KinematicState{
		Height:   EulerStep(s.Height, s.Velocity, dt),
		Velocity: EulerStep(s.Velocity, acceleration, dt),
		Time:     s.Time + dt,
	}
}
