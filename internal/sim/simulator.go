package sim

import (
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/integrators"
)

// Simulate runs the ball-throw simulation with the semi-implicit Euler
// stepper.
//
// The trajectory holds at most NumSteps()+1 states, initial state first.
// A candidate state with negative height ends the run and is discarded;
// a height of exactly zero is accepted. Invalid params yield a nil
// trajectory and an error wrapping dynamo.ErrInvalidConfiguration.
func Simulate(p dynamo.Params) (dynamo.Trajectory, error) {
	res, err := New(integrators.NewSemiImplicitEuler()).Run(p)
	if err != nil {
		return nil, err
	}
	return res.Trajectory, nil
}

// maxPrealloc caps the up-front trajectory allocation; longer runs grow
// the slice as states are accepted.
const maxPrealloc = 1 << 16

type Simulator struct {
	stepper   dynamo.Stepper
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(stepper dynamo.Stepper) *Simulator {
	return &Simulator{
		stepper:   stepper,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Run integrates p and feeds every accepted state to the registered
// metrics and observers. Metrics are reset at the start of each run.
func (s *Simulator) Run(p dynamo.Params) (*dynamo.Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	steps := p.NumSteps()
	result := &dynamo.Result{
		Trajectory: make(dynamo.Trajectory, 0, min(steps, maxPrealloc)+1),
		Metrics:    make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	state := p.InitialState()
	s.accept(result, state, 0)

	for i := 0; i < steps; i++ {
		next := s.stepper.Step(state, p.Acceleration, p.TimeStep)
		if next.Height < 0 {
			result.Grounded = true
			break
		}

		state = next
		result.StepsTaken++
		s.accept(result, state, i+1)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) accept(result *dynamo.Result, state dynamo.KinematicState, step int) {
	result.Trajectory = append(result.Trajectory, state)
	for _, m := range s.metrics {
		m.Observe(state)
	}
	for _, obs := range s.observers {
		obs.OnState(state, step)
	}
}
