package dynamo

import (
	"fmt"
	"math"
)

// KinematicState is the vertical position, speed and elapsed time of the
// ball at one step of a simulation.
type KinematicState struct {
	Height   float64
	Velocity float64
	Time     float64
}

// IsFinite reports whether every component is neither NaN nor infinite.
func (s KinematicState) IsFinite() bool {
	for _, v := range [...]float64{s.Height, s.Velocity, s.Time} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s KinematicState) String() string {
	return fmt.Sprintf("h=%.4f v=%.4f t=%.4f", s.Height, s.Velocity, s.Time)
}

// Params configures a single simulation run. It is passed by value and
// never mutated by the simulator.
type Params struct {
	InitialHeight   float64
	InitialVelocity float64
	InitialTime     float64
	Acceleration    float64
	Duration        float64
	TimeStep        float64
}

// InitialState is the first element of every trajectory produced from p.
func (p Params) InitialState() KinematicState {
	return KinematicState{
		Height:   p.InitialHeight,
		Velocity: p.InitialVelocity,
		Time:     p.InitialTime,
	}
}

// NumSteps is floor(Duration/TimeStep). A trailing partial interval is
// never simulated. The result is meaningless for invalid params.
func (p Params) NumSteps() int {
	n := math.Floor(p.Duration / p.TimeStep)
	if n >= math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}

// MaxSteps bounds floor(Duration/TimeStep) so that every valid run
// finishes in bounded time and memory.
const MaxSteps = 10_000_000

// Validate returns a *ConfigError wrapping ErrInvalidConfiguration when the
// step size or duration cannot drive a terminating simulation.
func (p Params) Validate() error {
	if !(p.TimeStep > 0) {
		return &ConfigError{Field: "time_step", Value: p.TimeStep, Reason: "must be positive"}
	}
	if !(p.Duration >= 0) {
		return &ConfigError{Field: "duration", Value: p.Duration, Reason: "must not be negative"}
	}
	if math.IsInf(p.Duration, 1) {
		return &ConfigError{Field: "duration", Value: p.Duration, Reason: "must be finite"}
	}
	if math.Floor(p.Duration/p.TimeStep) > MaxSteps {
		return &ConfigError{
			Field:  "duration",
			Value:  p.Duration,
			Reason: fmt.Sprintf("needs more than %d steps of %g", MaxSteps, p.TimeStep),
		}
	}
	return nil
}

// Trajectory is the ordered sequence of accepted states of one run.
type Trajectory []KinematicState

func (tr Trajectory) Clone() Trajectory {
	if tr == nil {
		return nil
	}
	c := make(Trajectory, len(tr))
	copy(c, tr)
	return c
}

func (tr Trajectory) Heights() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.Height
	}
	return out
}

func (tr Trajectory) Velocities() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.Velocity
	}
	return out
}

func (tr Trajectory) Times() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.Time
	}
	return out
}

// Last returns the final state. ok is false for an empty trajectory.
func (tr Trajectory) Last() (s KinematicState, ok bool) {
	if len(tr) == 0 {
		return KinematicState{}, false
	}
	return tr[len(tr)-1], true
}

// FromColumns rebuilds a trajectory from parallel columns, truncating to
// the shortest one.
func FromColumns(times, heights, velocities []float64) Trajectory {
	n := min(len(times), len(heights), len(velocities))
	tr := make(Trajectory, n)
	for i := 0; i < n; i++ {
		tr[i] = KinematicState{Height: heights[i], Velocity: velocities[i], Time: times[i]}
	}
	return tr
}

// Stepper advances a state by one step of size dt under a constant
// acceleration.
type Stepper interface {
	Step(s KinematicState, acceleration, dt float64) KinematicState
}

type Metric interface {
	Name() string
	Observe(s KinematicState)
	Value() float64
	Reset()
}

// Observer is notified of every accepted state, including the initial one
// at step 0.
type Observer interface {
	OnState(s KinematicState, step int)
}

type Result struct {
	Trajectory Trajectory
	Metrics    map[string]float64
	StepsTaken int
	// Grounded is set when a candidate state below the ground was rejected.
	Grounded   bool
}
