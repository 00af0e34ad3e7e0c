package automation

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballsim/internal/analysis"
	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/experiment"
)

// Scenario defines a scripted sequence of throws.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one throw. Unset fields fall back to the preset, then to
// config.DefaultConfig.
type ScenarioStep struct {
	Preset          string   `yaml:"preset"`
	Integrator      string   `yaml:"integrator"`
	InitialHeight   *float64 `yaml:"initial_height"`
	InitialVelocity *float64 `yaml:"initial_velocity"`
	InitialTime     *float64 `yaml:"initial_time"`
	Acceleration    *float64 `yaml:"acceleration"`
	Duration        *float64 `yaml:"duration"`
	TimeStep        *float64 `yaml:"time_step"`
	SaveAs          string   `yaml:"save_as"`
}

// Config resolves the step into a full configuration.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", s.Preset, config.ListPresets())
		}
	}

	if s.Integrator != "" {
		cfg.Integrator = s.Integrator
	}
	if s.SaveAs != "" {
		cfg.Name = s.SaveAs
	}
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&cfg.Initial.Height, s.InitialHeight)
	set(&cfg.Initial.Velocity, s.InitialVelocity)
	set(&cfg.Initial.Time, s.InitialTime)
	set(&cfg.Acceleration, s.Acceleration)
	set(&cfg.Duration, s.Duration)
	set(&cfg.TimeStep, s.TimeStep)

	return cfg, nil
}

func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseScenario(f)
}

func ParseScenario(r io.Reader) (*Scenario, error) {
	var scenario Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, errors.New("scenario has no steps")
	}
	return &scenario, nil
}

// Saver persists a finished run; storage.Store satisfies it.
type Saver interface {
	Save(name, integrator string, p dynamo.Params, result *dynamo.Result) (string, error)
}

type StepResult struct {
	Name   string
	Config *config.Config
	Result *dynamo.Result
	RunID  string
}

type Runner struct {
	registry *experiment.Registry
	saver    Saver
	logger   *log.Logger
}

// NewRunner builds a runner. saver may be nil, in which case SaveAs is
// ignored.
func NewRunner(registry *experiment.Registry, saver Saver, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{registry: registry, saver: saver, logger: logger}
}

// RunScenario executes the steps in order and stops at the first error.
func (r *Runner) RunScenario(scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		name := cfg.Name
		if name == "" {
			name = fmt.Sprintf("%s_step%d", scenario.Name, i+1)
		}
		r.logger.Info("running step", "step", i+1, "of", len(scenario.Steps), "name", name, "integrator", cfg.Integrator)

		res, err := experiment.Run(r.registry, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		sr := StepResult{Name: name, Config: cfg, Result: res}
		if step.SaveAs != "" && r.saver != nil {
			sr.RunID, err = r.saver.Save(step.SaveAs, cfg.Integrator, cfg.Params(), res)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		results = append(results, sr)
	}

	return results, nil
}

// Sweep varies one parameter of a base configuration over a linear range.
type Sweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

type SweepResult struct {
	ParamValue  float64
	States      int
	Grounded    bool
	Apex        float64
	FlightTime  float64
	ImpactSpeed float64
	MaxAbsError float64
}

var sweepParams = map[string]func(*config.Config, float64){
	"initial_height":   func(c *config.Config, v float64) { c.Initial.Height = v },
	"initial_velocity": func(c *config.Config, v float64) { c.Initial.Velocity = v },
	"acceleration":     func(c *config.Config, v float64) { c.Acceleration = v },
	"time_step":        func(c *config.Config, v float64) { c.TimeStep = v },
	"duration":         func(c *config.Config, v float64) { c.Duration = v },
}

func SweepParams() []string {
	return []string{"acceleration", "duration", "initial_height", "initial_velocity", "time_step"}
}

// RunSweep simulates each parameter value in turn. A single step uses
// ParamMin only.
func (r *Runner) RunSweep(sweep *Sweep) ([]SweepResult, error) {
	apply, ok := sweepParams[sweep.ParamName]
	if !ok {
		return nil, fmt.Errorf("unknown sweep parameter: %s (available: %v)", sweep.ParamName, SweepParams())
	}
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := sweep.Base.Clone()
		apply(cfg, paramVal)

		res, err := experiment.Run(r.registry, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		cmp := analysis.Compare(cfg.Params(), res.Trajectory)
		results = append(results, SweepResult{
			ParamValue:  paramVal,
			States:      len(res.Trajectory),
			Grounded:    res.Grounded,
			Apex:        res.Metrics["apex"],
			FlightTime:  res.Metrics["flight_time"],
			ImpactSpeed: res.Metrics["impact_speed"],
			MaxAbsError: cmp.MaxAbsError,
		})

		r.logger.Debug("sweep point", "param", sweep.ParamName, "value", paramVal, "states", len(res.Trajectory))
	}

	return results, nil
}
