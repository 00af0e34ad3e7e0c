package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidConfiguration indicates parameters that cannot drive a
	// terminating simulation (non-positive time step or negative duration).
	ErrInvalidConfiguration = errors.New("dynamo: invalid configuration")

	// ErrUnknownIntegrator indicates a stepper name missing from the registry.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")
)

// ConfigError wraps ErrInvalidConfiguration with the offending field.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s, got %g", ErrInvalidConfiguration, e.Field, e.Reason, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}
