package experiment

import (
	"fmt"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/sim"
)

// Experiment binds a configuration to a simulator with the default
// metrics attached.
type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(registry *Registry, observers ...dynamo.Observer) error {
	stepper, err := registry.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}

	e.simulator = sim.New(stepper)
	for _, m := range registry.DefaultMetrics(e.cfg.Params()) {
		e.simulator.AddMetric(m)
	}
	for _, o := range observers {
		e.simulator.AddObserver(o)
	}
	return nil
}

func (e *Experiment) Run() (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(e.cfg.Params())
}

func (e *Experiment) Config() *config.Config {
	return e.cfg
}

// Run is Setup followed by Run.
func Run(registry *Registry, cfg *config.Config, observers ...dynamo.Observer) (*dynamo.Result, error) {
	exp := New(cfg)
	if err := exp.Setup(registry, observers...); err != nil {
		return nil, err
	}
	return exp.Run()
}
