package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballsim/internal/dynamo"
)

const (
	Gravity                = 9.81
	DefaultInitialHeight   = 10.0
	DefaultInitialVelocity = 2.5
	DefaultDuration        = 5.0
	DefaultTimeStep        = 0.1
	DefaultIntegrator      = "semi-implicit"
)

type Config struct {
	Name       string       `yaml:"name,omitempty"`
	Integrator string       `yaml:"integrator"`
	Duration   float64      `yaml:"duration"`
	TimeStep   float64      `yaml:"time_step"`
	Initial    InitialState `yaml:"initial"`

	// Acceleration is signed: negative values point towards the ground.
	Acceleration float64 `yaml:"acceleration"`
}

type InitialState struct {
	Height   float64 `yaml:"height"`
	Velocity float64 `yaml:"velocity"`
	Time     float64 `yaml:"time"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator:   DefaultIntegrator,
		Duration:     DefaultDuration,
		TimeStep:     DefaultTimeStep,
		Acceleration: -Gravity,
		Initial: InitialState{
			Height:   DefaultInitialHeight,
			Velocity: DefaultInitialVelocity,
		},
	}
}

// Load reads a YAML file on top of DefaultConfig, so omitted keys keep
// their defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file on top of a copy of base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the configuration into simulator parameters.
func (c *Config) Params() dynamo.Params {
	return dynamo.Params{
		InitialHeight:   c.Initial.Height,
		InitialVelocity: c.Initial.Velocity,
		InitialTime:     c.Initial.Time,
		Acceleration:    c.Acceleration,
		Duration:        c.Duration,
		TimeStep:        c.TimeStep,
	}
}

// Clone returns a deep copy so presets are never mutated by callers.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
